package vehicles

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// Vehicle represents a customer vehicle on file
type Vehicle struct {
	ID              int64      `json:"id"`
	CustomerID      int64      `json:"customer_id"`
	Make            string     `json:"make"`
	Model           string     `json:"model"`
	Year            int        `json:"year"`
	LicensePlate    string     `json:"license_plate"`
	VIN             string     `json:"vin"`
	Color           string     `json:"color"`
	Mileage         int        `json:"mileage"`
	LastServiceDate *time.Time `json:"last_service_date"`
}

// Description renders the usual "2019 Toyota Corolla" label.
func (v Vehicle) Description() string {
	parts := make([]string, 0, 3)
	if v.Year > 0 {
		parts = append(parts, strconv.Itoa(v.Year))
	}
	if v.Make != "" {
		parts = append(parts, v.Make)
	}
	if v.Model != "" {
		parts = append(parts, v.Model)
	}
	return strings.Join(parts, " ")
}

// ServiceHistoryEntry is a summary of one workshop visit, shown on the
// vehicle detail page. The job card package adapts its records into this
// shape so the vehicle pages stay decoupled from it.
type ServiceHistoryEntry struct {
	ID        int64
	OpenDate  time.Time
	CloseDate *time.Time
	Status    string
}

// HistoryProvider supplies the visit history for a vehicle.
type HistoryProvider interface {
	VehicleHistory(ctx context.Context, vehicleID int64) ([]ServiceHistoryEntry, error)
}
