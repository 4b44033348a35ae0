package customers

import (
	"strings"
	"time"
)

// Customer represents a workshop customer record
type Customer struct {
	ID               int64     `json:"id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Phone            string    `json:"phone"`
	Email            string    `json:"email"`
	Address          string    `json:"address"`
	City             string    `json:"city"`
	State            string    `json:"state"`
	ZipCode          string    `json:"zip_code"`
	RegistrationDate time.Time `json:"registration_date"`
}

func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

func (c Customer) FullAddress() string {
	parts := make([]string, 0, 3)
	if c.Address != "" {
		parts = append(parts, c.Address)
	}
	if c.City != "" {
		parts = append(parts, c.City)
	}
	region := strings.TrimSpace(c.State + " " + c.ZipCode)
	if region != "" {
		parts = append(parts, region)
	}
	return strings.Join(parts, ", ")
}
