package catalog

import (
	"strings"

	"github.com/motorhaus/motorhaus/internal/shared"
)

// validate checks the whole record and reports a single generic error.
func (c *Catalog) validate(service Service) error {
	if strings.TrimSpace(service.Name) == "" {
		return shared.ErrValidation
	}
	if service.StandardPrice < 0 {
		return shared.ErrValidation
	}
	if service.EstimatedHours < 0 {
		return shared.ErrValidation
	}
	return nil
}
