package billing

import "time"

// Bill is the billing record for one job card. Amounts are recorded as
// entered at the counter; nothing here recomputes totals from the job's
// service lines.
type Bill struct {
	ID               int64         `json:"id"`
	JobCardID        int64         `json:"job_card_id"`
	BillDate         time.Time     `json:"bill_date"`
	TotalServiceCost float64       `json:"total_service_cost"`
	TotalPartsCost   float64       `json:"total_parts_cost"`
	TaxAmount        float64       `json:"tax_amount"`
	DiscountAmount   float64       `json:"discount_amount"`
	GrandTotal       float64       `json:"grand_total"`
	PaymentStatus    PaymentStatus `json:"payment_status"`
	PaymentMethod    string        `json:"payment_method"`
	PaymentDate      *time.Time    `json:"payment_date"`
	Notes            string        `json:"notes"`
}
