package jobcards

import "time"

// JobCard represents one workshop visit for a vehicle
type JobCard struct {
	ID                 int64      `json:"id"`
	VehicleID          int64      `json:"vehicle_id"`
	OpenDate           time.Time  `json:"open_date"`
	CloseDate          *time.Time `json:"close_date"`
	Status             Status     `json:"status"`
	TechnicianNotes    string     `json:"technician_notes"`
	CustomerComplaints string     `json:"customer_complaints"`
}

// JobService is one catalog service attached to a job card. The price
// and hours are copied from the catalog at attach time so later price
// list changes never rewrite past jobs. ServiceName and Description are
// joined in from the catalog for display.
type JobService struct {
	ID          int64            `json:"id"`
	JobCardID   int64            `json:"job_card_id"`
	ServiceID   int64            `json:"service_id"`
	ActualPrice float64          `json:"actual_price"`
	ActualHours float64          `json:"actual_hours"`
	Notes       string           `json:"notes"`
	Status      JobServiceStatus `json:"status"`

	ServiceName string `json:"service_name"`
	Description string `json:"description"`
}
