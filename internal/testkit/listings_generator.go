package testkit

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"

	"listingscope/domain/listing"
)

// ListingsGeneratorConfig configures the synthetic listings generator
type ListingsGeneratorConfig struct {
	Rows int   `json:"rows"`
	Seed int64 `json:"seed"`
	// MissingRate is the share of optional numeric cells left blank.
	MissingRate float64 `json:"missing_rate"`
	FirstYear   int     `json:"first_year"`
	LastYear    int     `json:"last_year"`
}

// DefaultListingsConfig returns sensible defaults for listings generation
func DefaultListingsConfig() ListingsGeneratorConfig {
	return ListingsGeneratorConfig{
		Rows:        500,
		Seed:        42,
		MissingRate: 0.03,
		FirstYear:   2015,
		LastYear:    2022,
	}
}

// ListingsHeader is the column layout the generator writes.
var ListingsHeader = []string{
	listing.ColID,
	listing.ColNeighbourhoodGroup,
	listing.ColHostVerified,
	listing.ColInstantBookable,
	listing.ColCancellationPolicy,
	listing.ColRoomType,
	listing.ColConstructionYear,
	listing.ColPrice,
	listing.ColServiceFee,
	listing.ColMinimumNights,
	listing.ColNumberOfReviews,
	listing.ColLastReviewDate,
	listing.ColReviewsPerMonth,
	listing.ColReviewRateNumber,
	listing.ColHostListingsCount,
	listing.ColAvailability365,
	listing.ColYear,
	listing.ColPriceRange,
}

var (
	neighbourhoods = []string{"Manhattan", "Brooklyn", "Queens", "Bronx", "Staten Island"}
	roomTypes      = []string{"Entire home/apt", "Private room", "Shared room", "Hotel room"}
	policies       = []string{"flexible", "moderate", "strict"}

	// price multipliers by neighbourhood and room type
	neighbourhoodFactor = map[string]float64{
		"Manhattan": 1.35, "Brooklyn": 1.05, "Queens": 0.85, "Bronx": 0.75, "Staten Island": 0.8,
	}
	roomFactor = map[string]float64{
		"Entire home/apt": 1.4, "Private room": 0.8, "Shared room": 0.5, "Hotel room": 1.2,
	}
)

// ListingsGenerator generates plausible, already-cleaned listings rows
type ListingsGenerator struct {
	config ListingsGeneratorConfig
	rng    *rand.Rand
}

// NewListingsGenerator creates a new listings generator
func NewListingsGenerator(config ListingsGeneratorConfig) *ListingsGenerator {
	return &ListingsGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Records returns the header followed by config.Rows generated rows.
// The same seed always produces the same records.
func (g *ListingsGenerator) Records() [][]string {
	records := make([][]string, 0, g.config.Rows+1)
	records = append(records, append([]string(nil), ListingsHeader...))
	for i := 0; i < g.config.Rows; i++ {
		records = append(records, g.row(1000001+i))
	}
	return records
}

func (g *ListingsGenerator) row(id int) []string {
	neighbourhood := g.pick(neighbourhoods)
	roomType := g.pick(roomTypes)

	base := 50 + g.rng.Float64()*1150
	price := math.Round(base * neighbourhoodFactor[neighbourhood] * roomFactor[roomType] / 1.4)
	if price < 50 {
		price = 50
	}
	fee := math.Round(price * 0.2)

	reviews := g.rng.Intn(400)
	reviewsPerMonth := math.Round(float64(reviews)/(12+g.rng.Float64()*48)*100) / 100

	year := g.config.FirstYear
	if span := g.config.LastYear - g.config.FirstYear; span > 0 {
		year += g.rng.Intn(span + 1)
	}
	month := 1 + g.rng.Intn(12)
	day := 1 + g.rng.Intn(28)

	return []string{
		strconv.Itoa(id),
		neighbourhood,
		g.pick([]string{"verified", "unconfirmed"}),
		g.pick([]string{"True", "False"}),
		g.pick(policies),
		roomType,
		strconv.Itoa(2003 + g.rng.Intn(20)),
		formatNumber(price),
		g.maybeMissing(formatNumber(fee)),
		strconv.Itoa(1 + g.rng.Intn(30)),
		strconv.Itoa(reviews),
		fmt.Sprintf("%d-%02d-%02d", year, month, day),
		g.maybeMissing(formatNumber(reviewsPerMonth)),
		strconv.Itoa(1 + g.rng.Intn(5)),
		strconv.Itoa(1 + g.rng.Intn(12)),
		strconv.Itoa(g.rng.Intn(366)),
		strconv.Itoa(year),
		priceRange(price),
	}
}

func (g *ListingsGenerator) pick(values []string) string {
	return values[g.rng.Intn(len(values))]
}

func (g *ListingsGenerator) maybeMissing(value string) string {
	if g.rng.Float64() < g.config.MissingRate {
		return ""
	}
	return value
}

func priceRange(price float64) string {
	switch {
	case price < 300:
		return "Budget"
	case price < 700:
		return "Mid-range"
	default:
		return "Luxury"
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
