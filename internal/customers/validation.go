package customers

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/motorhaus/motorhaus/internal/shared"
)

var nonDigits = regexp.MustCompile(`\D`)

// validate checks the whole record and reports a single generic error.
// Callers only learn that the record was rejected, not which rule tripped.
func (s *Service) validate(c Customer) error {
	if strings.TrimSpace(c.FirstName) == "" {
		return shared.ErrValidation
	}
	if strings.TrimSpace(c.LastName) == "" {
		return shared.ErrValidation
	}
	if !validPhone(c.Phone) {
		return shared.ErrValidation
	}
	if c.Email != "" {
		if err := s.checker.Var(c.Email, "email"); err != nil {
			return shared.ErrValidation
		}
	}
	return nil
}

// validPhone accepts any format that reduces to exactly ten digits,
// so "(555) 123-4567", "555-123-4567" and "5551234567" all pass.
func validPhone(phone string) bool {
	return len(nonDigits.ReplaceAllString(phone, "")) == 10
}

func newChecker() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}
