package catalog

// Service represents an entry in the workshop's service price list
type Service struct {
	ID             int64   `json:"id"`
	Name           string  `json:"service_name"`
	Description    string  `json:"description"`
	StandardPrice  float64 `json:"standard_price"`
	EstimatedHours float64 `json:"estimated_hours"`
}
