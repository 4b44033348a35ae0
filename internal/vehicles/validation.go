package vehicles

import (
	"strings"
	"time"

	"github.com/motorhaus/motorhaus/internal/shared"
)

const minModelYear = 1900

// validate checks the whole record and reports a single generic error.
func (s *Service) validate(v Vehicle) error {
	if v.CustomerID <= 0 {
		return shared.ErrValidation
	}
	if strings.TrimSpace(v.Make) == "" {
		return shared.ErrValidation
	}
	if strings.TrimSpace(v.Model) == "" {
		return shared.ErrValidation
	}
	if !validYear(v.Year, time.Now()) {
		return shared.ErrValidation
	}
	if strings.TrimSpace(v.LicensePlate) == "" {
		return shared.ErrValidation
	}
	// VIN is optional but a present one must be the full 17 characters.
	if v.VIN != "" && len(v.VIN) != 17 {
		return shared.ErrValidation
	}
	if v.Mileage < 0 {
		return shared.ErrValidation
	}
	return nil
}

// validYear allows next year's models to be registered ahead of release.
func validYear(year int, now time.Time) bool {
	return year >= minModelYear && year <= now.Year()+1
}
