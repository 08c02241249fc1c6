package services

import (
	"math"

	"proptech-analytics/models"
	"proptech-analytics/utils"
)

// Cleaner canonicalises the locality of raw records and drops rows that
// cannot take part in the merge.
type Cleaner struct {
	logger   *utils.Logger
	resolver *Resolver
}

// NewCleaner creates a Cleaner that resolves localities against resolver.
func NewCleaner(resolver *Resolver, logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger, resolver: resolver}
}

// CleanPrices returns copies of the price records whose locality is known and
// whose price is positive. ROI is undefined for a zero price, so such rows
// never reach the merge.
func (c *Cleaner) CleanPrices(raw []models.RawRecord) []models.RawRecord {
	result := make([]models.RawRecord, 0, len(raw))
	var unknown, badPrice int

	for _, r := range raw {
		locality := c.resolver.ExtractCanonical(r.Locality)
		if locality == UnknownLocality {
			unknown++
			continue
		}
		if !(r.PriceLakh > 0) || math.IsInf(r.PriceLakh, 0) {
			badPrice++
			c.logger.Debug("[cleaner] Dropping %s listing with price %.2f", locality, r.PriceLakh)
			continue
		}

		r.Locality = locality
		result = append(result, r)
	}

	c.logger.Info("[cleaner] Prices %d → %d (unknown locality %d, invalid price %d)",
		len(raw), len(result), unknown, badPrice)
	return result
}

// CleanRents returns copies of the rent records whose locality is known and
// whose rent is non-negative.
func (c *Cleaner) CleanRents(raw []models.RawRentRecord) []models.RawRentRecord {
	result := make([]models.RawRentRecord, 0, len(raw))
	var unknown, badRent int

	for _, r := range raw {
		locality := c.resolver.ExtractCanonical(r.Locality)
		if locality == UnknownLocality {
			unknown++
			continue
		}
		if !(r.Rent >= 0) || math.IsInf(r.Rent, 0) {
			badRent++
			c.logger.Debug("[cleaner] Dropping %s rental with rent %.2f", locality, r.Rent)
			continue
		}

		r.Locality = locality
		result = append(result, r)
	}

	c.logger.Info("[cleaner] Rents %d → %d (unknown locality %d, invalid rent %d)",
		len(raw), len(result), unknown, badRent)
	return result
}
