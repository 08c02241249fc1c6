package models

// RawRecord is one price listing as supplied by a dataset source. Prices are
// in lakh (1 lakh = 100,000 rupees).
type RawRecord struct {
	Locality     string
	PriceLakh    float64
	AreaSqft     float64
	RateSqft     float64
	Bedrooms     int
	AgeYears     int
	Availability string
}

// RawRentRecord is one rental listing with a monthly rent in rupees.
type RawRentRecord struct {
	Locality string
	Rent     float64
}

// MergedRecord joins a price listing with a rental listing of the same
// canonical locality. ROI is the gross rental yield in percent.
type MergedRecord struct {
	Locality  string  `json:"locality"`
	PriceLakh float64 `json:"price_lakh"`
	RateSqft  float64 `json:"rate_sqft"`
	Rent      float64 `json:"rent"`
	ROI       float64 `json:"roi"`
}
