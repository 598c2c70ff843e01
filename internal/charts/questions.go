package charts

import (
	"listingscope/domain/listing"
	"listingscope/internal/analysis"
	"listingscope/internal/dataset"
)

// Recipe turns a view into one chart.
type Recipe func(t *dataset.Table) (*ChartSpec, error)

// Part is a narrative paragraph (markdown) optionally followed by a chart.
type Part struct {
	Narrative string
	Requires  []string
	Chart     Recipe
}

// Question is one entry of the analysis questions page.
type Question struct {
	Number int
	Title  string
	Parts  []Part
	// Demand attaches the per-neighbourhood demand table.
	Demand bool
}

// AnsweredPart is a Part evaluated against a view. Chart is nil when the view lacks a required column.
type AnsweredPart struct {
	Narrative string     `json:"narrative"`
	Chart     *ChartSpec `json:"chart,omitempty"`
}

// Answer is a Question evaluated against a view.
type Answer struct {
	Number int                   `json:"number"`
	Title  string                `json:"title"`
	Parts  []AnsweredPart        `json:"parts"`
	Demand *analysis.DemandTable `json:"demand,omitempty"`
}

// demandMeasures are the columns of the location demand table.
var demandMeasures = []string{
	listing.ColReviewsPerMonth,
	listing.ColNumberOfReviews,
	listing.ColAvailability365,
	listing.ColPrice,
}

// Questions returns the fixed catalog, in display order.
func Questions() []Question {
	return []Question{
		{
			Number: 1,
			Title:  "What is the relation between listing price and factors like : service fee, room type, location, reviews, host size, etc..?",
			Parts: []Part{
				{
					Narrative: "- The strong linear relationship between price and service fee indicates that service fee is mostly calculated as a percentage from price. " +
						"While the points surrounding the straight line suggests some hosts use other methods like a fixed figure to set the service fee amount.",
					Requires: []string{listing.ColPrice, listing.ColServiceFee},
					Chart:    scatterRecipe(listing.ColPrice, listing.ColServiceFee, "Price vs Service Fee"),
				},
				{
					Narrative: "- Airbnb market is dominated by small hosts.\n" +
						"- A minority of hosts control many listings.\n" +
						"- Professional hosts exist across all price levels.\n" +
						"- Price is independent of host size.",
					Requires: []string{listing.ColPrice, listing.ColHostListingsCount},
					Chart:    scatterRecipe(listing.ColPrice, listing.ColHostListingsCount, "Price vs Host Listings Count"),
				},
			},
		},
		{
			Number: 2,
			Title:  "What is the distribution of room types by neighbourhood?",
			Parts: []Part{{
				Narrative: "- Manhattan and Brooklyn dominate the market, with the highest number of listings, especially entire homes and private rooms.\n" +
					"- Queens has moderate supply, while Staten Island and the Bronx contribute only a small share of total listings across all room types.",
				Requires: []string{listing.ColNeighbourhoodGroup, listing.ColRoomType},
				Chart:    histogramRecipe(listing.ColNeighbourhoodGroup, listing.ColRoomType, "Listings by Neighbourhood Group and Room Type"),
			}},
		},
		{
			Number: 3,
			Title:  "What is the average price per neighbourhood?",
			Parts: []Part{{
				Narrative: "- The average prices are nearly identical across all neighbourhood groups, indicating minimal price variation by neighbourhood.",
				Requires:  []string{listing.ColPrice},
				Chart:     rankedBarRecipe(listing.ColNeighbourhoodGroup, listing.ColPrice, "Average Price by Neighbourhood Group"),
			}},
		},
		{
			Number: 4,
			Title:  "What is the average price per room type?",
			Parts: []Part{{
				Narrative: "- Average prices are relatively similar across room types, with hotel rooms slightly higher, indicating limited price differentiation by accommodation category.",
				Requires:  []string{listing.ColPrice},
				Chart:     rankedBarRecipe(listing.ColRoomType, listing.ColPrice, "Average Price by Room Type"),
			}},
		},
		{
			Number: 5,
			Title:  "What is the average minimum nights for each type of listing (aka room type) in each neighbourhood?",
			Parts: []Part{{
				Narrative: "- Entire homes/apartments generally require longer minimum stays, especially in Manhattan, indicating a focus on longer bookings.\n" +
					"- Hotel and shared rooms tend to have shorter minimum night requirements, making them more flexible for short-term stays.",
				Requires: []string{listing.ColMinimumNights},
				Chart:    groupedBarRecipe(listing.ColNeighbourhoodGroup, listing.ColRoomType, listing.ColMinimumNights, "Average Minimum Nights by Neighbourhood Group & Room Type"),
			}},
		},
		{
			Number: 6,
			Title:  "What is the average rating for each type of listing (aka room type) in each neighbourhood?",
			Parts: []Part{{
				Narrative: "- Average ratings are fairly consistent across all neighbourhoods and room types, generally ranging between 3.2 and 3.9.\n" +
					"- Hotel rooms and private rooms tend to receive slightly higher ratings compared to entire homes and shared rooms in most neighbourhoods.",
				Requires: []string{listing.ColReviewRateNumber},
				Chart:    groupedBarRecipe(listing.ColNeighbourhoodGroup, listing.ColRoomType, listing.ColReviewRateNumber, "Average Review Rate Number by Neighbourhood Group & Room Type"),
			}},
		},
		{
			Number: 7,
			Title:  "What is the trend of Price by Last Review Year and Neighbourhood Group?",
			Parts: []Part{{
				Narrative: "- After some early fluctuations, average prices across all neighbourhoods remain relatively stable from 2017 onward.",
				Requires:  []string{listing.ColYear, listing.ColPrice},
				Chart:     priceTrend,
			}},
		},
		{
			Number: 8,
			Title:  "What is the average price per Neighbourhood per Room Type?",
			Parts: []Part{{
				Narrative: "- Average prices are fairly consistent across neighbourhoods for most room types, though hotel rooms show greater variation compared to other accommodation categories.",
				Requires:  []string{listing.ColPrice},
				Chart:     groupedBarRecipe(listing.ColNeighbourhoodGroup, listing.ColRoomType, listing.ColPrice, "Average Price per Neighbourhood per Room Type"),
			}},
		},
		{
			Number: 9,
			Title:  "What is the average Number of Reviews per Neighbourhood per Room Type?",
			Parts: []Part{{
				Narrative: "- Manhattan shows the highest average number of reviews, particularly for hotel rooms, indicating stronger guest activity and demand.\n" +
					"- Staten Island and the Bronx have noticeably fewer reviews across most room types, suggesting lower overall booking volume.",
				Requires: []string{listing.ColNumberOfReviews},
				Chart:    groupedBarRecipe(listing.ColNeighbourhoodGroup, listing.ColRoomType, listing.ColNumberOfReviews, "Average number of reviews per Neighbourhood per Room Type"),
			}},
		},
		{
			Number: 10,
			Title:  "What is the average price by cancellation policy and instant bookable status?",
			Parts: []Part{{
				Narrative: "- Listings with strict cancellation policies tend to have slightly higher average prices compared to flexible and moderate policies.\n" +
					"- Instant bookable status shows minimal impact on price, as average prices remain relatively similar across True and False categories.",
				Requires: []string{listing.ColCancellationPolicy, listing.ColInstantBookable, listing.ColPrice},
				Chart:    groupedBarRecipe(listing.ColCancellationPolicy, listing.ColInstantBookable, listing.ColPrice, "Average Price by Cancellation Policy & Instant Bookable"),
			}},
		},
		{
			Number: 11,
			Title:  "Which locations have the strongest demand?",
			Parts: []Part{{
				Narrative: "- Queens shows the highest average reviews per month, indicating relatively stronger booking activity.\n" +
					"- Brooklyn and Manhattan have slightly lower averages, suggesting demand is more evenly distributed rather than heavily concentrated.",
				Requires: []string{listing.ColReviewsPerMonth},
				Chart:    barRecipe(listing.ColNeighbourhoodGroup, listing.ColReviewsPerMonth, "Average Reviews per Month by Neighbourhood"),
			}},
			Demand: true,
		},
	}
}

// Answer evaluates q against t. Parts whose columns t lacks keep their narrative and drop the chart.
func (q Question) Answer(t *dataset.Table) (Answer, error) {
	a := Answer{Number: q.Number, Title: q.Title, Parts: make([]AnsweredPart, 0, len(q.Parts))}
	for _, p := range q.Parts {
		part := AnsweredPart{Narrative: p.Narrative}
		if p.Chart != nil && hasAll(t, p.Requires) {
			chart, err := p.Chart(t)
			if err != nil {
				return Answer{}, err
			}
			part.Chart = chart
		}
		a.Parts = append(a.Parts, part)
	}
	if q.Demand {
		demand, err := analysis.MultiMeanBy(t, listing.ColNeighbourhoodGroup, demandMeasures)
		if err != nil {
			return Answer{}, err
		}
		a.Demand = demand
	}
	return a, nil
}

// AnswerAll evaluates the whole catalog against t.
func AnswerAll(t *dataset.Table) ([]Answer, error) {
	questions := Questions()
	answers := make([]Answer, 0, len(questions))
	for _, q := range questions {
		a, err := q.Answer(t)
		if err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, nil
}

func scatterRecipe(x, y, title string) Recipe {
	return func(t *dataset.Table) (*ChartSpec, error) {
		spec, err := Scatter(t, x, y, title)
		if err != nil {
			return nil, err
		}
		spec.XLabel, spec.YLabel = listing.Label(x), listing.Label(y)
		return spec, nil
	}
}

func histogramRecipe(x, color, title string) Recipe {
	return func(t *dataset.Table) (*ChartSpec, error) {
		counts, err := analysis.CountBy(t, x, color)
		if err != nil {
			return nil, err
		}
		spec := groupedSeries(counts, ShapeHistogram)
		spec.Title = title
		spec.XLabel, spec.YLabel, spec.Legend = listing.Label(x), "count", listing.Label(color)
		return spec, nil
	}
}

func barRecipe(key, measure, title string) Recipe {
	return func(t *dataset.Table) (*ChartSpec, error) {
		means, err := analysis.MeanBy(t, []string{key}, measure)
		if err != nil {
			return nil, err
		}
		return &ChartSpec{
			Shape:  ShapeBar,
			Title:  title,
			XLabel: listing.Label(key),
			YLabel: listing.Label(measure),
			Series: []Series{singleSeries(means, listing.Label(measure))},
		}, nil
	}
}

// rankedBarRecipe is a bar chart with the highest mean first.
func rankedBarRecipe(key, measure, title string) Recipe {
	return func(t *dataset.Table) (*ChartSpec, error) {
		means, err := analysis.MeanBy(t, []string{key}, measure)
		if err != nil {
			return nil, err
		}
		means.SortByValue(true)
		return &ChartSpec{
			Shape:  ShapeBar,
			Title:  title,
			XLabel: listing.Label(key),
			YLabel: listing.Label(measure),
			Series: []Series{singleSeries(means, listing.Label(measure))},
		}, nil
	}
}

func groupedBarRecipe(x, color, measure, title string) Recipe {
	return func(t *dataset.Table) (*ChartSpec, error) {
		means, err := analysis.MeanBy(t, []string{x, color}, measure)
		if err != nil {
			return nil, err
		}
		spec := groupedSeries(means, ShapeGroupedBar)
		spec.Title = title
		spec.XLabel, spec.YLabel, spec.Legend = listing.Label(x), listing.Label(measure), listing.Label(color)
		return spec, nil
	}
}

// priceTrend leaves out year 2000, a placeholder year in the source data.
func priceTrend(t *dataset.Table) (*ChartSpec, error) {
	means, err := analysis.MeanBy(t, []string{listing.ColYear, listing.ColNeighbourhoodGroup}, listing.ColPrice)
	if err != nil {
		return nil, err
	}
	spec := groupedSeries(means.Without(0, "2000"), ShapeLine)
	spec.Title = "Trend of Price by Last Review Year and Neighbourhood"
	spec.XLabel, spec.YLabel, spec.Legend = listing.Label(listing.ColYear), listing.Label(listing.ColPrice), listing.Label(listing.ColNeighbourhoodGroup)
	return spec, nil
}

func hasAll(t *dataset.Table, columns []string) bool {
	for _, c := range columns {
		if !t.Has(c) {
			return false
		}
	}
	return true
}
