package bom

import (
	appErr "github.com/caresoft/vave-engine/pkg/errors"
)

// Catalog carries the process-wide material economics: market price and
// emission factor per kilogram, keyed by material name. Materials referenced
// by nodes but absent from the catalog rate at zero until (re)added.
type Catalog struct {
	Prices     map[string]float64
	CO2Factors map[string]float64
}

// Price returns the market rate per kg for a material, zero when unknown.
func (c Catalog) Price(material string) float64 {
	return c.Prices[material]
}

// CO2Factor returns kgCO2 per kg for a material and whether one is defined.
func (c Catalog) CO2Factor(material string) (float64, bool) {
	f, ok := c.CO2Factors[material]
	return f, ok
}

// ValidatePriceUpdate rejects a price change set containing empty names or
// negative prices. The whole update is refused; no partial apply.
func ValidatePriceUpdate(changes map[string]float64) error {
	if len(changes) == 0 {
		return appErr.New(appErr.CodeInvalid, "empty material price update")
	}
	for name, price := range changes {
		if name == "" {
			return appErr.New(appErr.CodeInvalid, "material name cannot be empty")
		}
		if price < 0 {
			return appErr.Newf(appErr.CodeInvalid, "negative price %.2f for material %q", price, name)
		}
	}
	return nil
}
