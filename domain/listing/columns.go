// Package listing names the columns of the rental listings dataset and classifies them.
package listing

// Column names used by the filter engine, summaries and the question catalog.
const (
	ColID                 = "id"
	ColNeighbourhoodGroup = "neighbourhood_group"
	ColRoomType           = "room_type"
	ColPrice              = "price"
	ColServiceFee         = "service_fee"
	ColMinimumNights      = "minimum_nights"
	ColNumberOfReviews    = "number_of_reviews"
	ColLastReviewDate     = "last_review_date"
	ColReviewsPerMonth    = "reviews_per_month"
	ColHostListingsCount  = "calculated_host_listings_count"
	ColAvailability365    = "availability_365"
	ColHostVerified       = "host_identity_verified"
	ColCancellationPolicy = "cancellation_policy"
	ColConstructionYear   = "construction_year"
	ColReviewRateNumber   = "review_rate_number"
	ColInstantBookable    = "instant_bookable"
	ColReviewBracket      = "review_bracket"
	ColReviewPerMonthBkt  = "review_permonth_bracket"
	ColHostType           = "host_type"
	ColPriceRange         = "price_range"
	ColReviewsBin         = "reviews_bin"
	ColPriceBin           = "price_bin"
	ColServiceFeeBins     = "service_fee_bins"
	ColYear               = "year"
)

// NotAvailable is what single-value reductions report for an empty table.
const NotAvailable = "N/A"

// ColumnKind is the closed classification of a column, fixed when the table is loaded.
type ColumnKind int

const (
	Categorical ColumnKind = iota
	Numeric
)

func (k ColumnKind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	default:
		return "unknown"
	}
}

// MarshalText lets kinds appear by name in JSON payloads.
func (k ColumnKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsKey reports whether a column identifies rows rather than measuring them.
// Key columns are numeric but never offered for plotting or correlation.
func IsKey(column string) bool {
	return column == ColID
}

var descriptions = map[string]string{
	ColID:                 "Unique identifier for each listing",
	ColNeighbourhoodGroup: "Main neighborhood where the listing is located (e.g., Manhattan, Brooklyn)",
	ColRoomType:           "Type of room: Entire home/apt, Private room, Shared room, Hotel room",
	ColPrice:              "Price per night in USD",
	ColMinimumNights:      "Minimum number of nights required for booking",
	ColNumberOfReviews:    "Total count of reviews received by the listing",
	ColLastReviewDate:     "Date of the most recent review",
	ColReviewsPerMonth:    "Average number of reviews per month (demand proxy)",
	ColHostListingsCount:  "Total number of listings owned by this host",
	ColAvailability365:    "Number of days available in the next 365 days",
	ColHostVerified:       "Whether the host identity has been verified (Yes/No)",
	ColCancellationPolicy: "Type of cancellation policy (Flexible, Moderate, Strict, etc.)",
	ColConstructionYear:   "Year the building was constructed",
	ColServiceFee:         "Airbnb service fee per booking in USD",
	ColReviewRateNumber:   "Average rating score (0-5 scale)",
	ColInstantBookable:    "Whether the listing can be instantly booked (Yes/No)",
	ColReviewBracket:      "Review count categorized into brackets",
	ColReviewPerMonthBkt:  "Reviews per month categorized into brackets",
	ColHostType:           "Type of host (Individual, Company, etc.)",
	ColPriceRange:         "Price categorized into ranges",
	ColReviewsBin:         "Review count binned into ranges",
	ColPriceBin:           "Price binned into ranges",
	ColServiceFeeBins:     "Service fee binned into ranges",
	ColYear:               "Year of the last review",
}

// Describe returns the data dictionary entry for a column.
func Describe(column string) string {
	if desc, ok := descriptions[column]; ok {
		return desc
	}
	return "No description available"
}

var labels = map[string]string{
	ColPrice:              "Price",
	ColServiceFee:         "Service Fee ($)",
	ColNeighbourhoodGroup: "Neighbourhood",
	ColRoomType:           "Room Type",
	ColMinimumNights:      "Minimum Nights",
	ColReviewRateNumber:   "Rating Number",
	ColHostListingsCount:  "Listings per Host",
	ColReviewsPerMonth:    "Avg Reviews per Month",
	ColNumberOfReviews:    "number of reviews",
	ColCancellationPolicy: "Cancellation Policy",
	ColInstantBookable:    "Instant Bookable",
}

// Label is the axis label used for a column when a chart does not override it.
func Label(column string) string {
	if label, ok := labels[column]; ok {
		return label
	}
	return column
}
