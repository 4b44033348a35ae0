package billing

import (
	"context"
	"strings"
	"time"

	"github.com/motorhaus/motorhaus/internal/shared"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) ListByJobCard(ctx context.Context, jobCardID int64) ([]Bill, error) {
	if jobCardID <= 0 {
		return nil, shared.ErrValidation
	}
	return s.repo.ListByJobCard(ctx, jobCardID)
}

func (s *Service) Get(ctx context.Context, id int64) (Bill, error) {
	if id <= 0 {
		return Bill{}, shared.ErrValidation
	}
	return s.repo.Get(ctx, id)
}

// Record writes a new bill. The bill date is stamped now and payment
// always starts PENDING.
func (s *Service) Record(ctx context.Context, bill Bill) (Bill, error) {
	if err := s.validate(bill); err != nil {
		return Bill{}, err
	}
	bill.BillDate = s.now()
	bill.PaymentStatus = PaymentPending
	bill.PaymentDate = nil
	return s.repo.Create(ctx, bill)
}

// MarkPaid settles the bill with the given payment method.
func (s *Service) MarkPaid(ctx context.Context, id int64, method string) error {
	if id <= 0 {
		return shared.ErrValidation
	}
	if strings.TrimSpace(method) == "" {
		return shared.ErrValidation
	}
	return s.repo.MarkPaid(ctx, id, method, s.now())
}

// validate checks the whole record and reports a single generic error.
func (s *Service) validate(bill Bill) error {
	if bill.JobCardID <= 0 {
		return shared.ErrValidation
	}
	amounts := []float64{bill.TotalServiceCost, bill.TotalPartsCost, bill.TaxAmount, bill.DiscountAmount, bill.GrandTotal}
	for _, amount := range amounts {
		if amount < 0 {
			return shared.ErrValidation
		}
	}
	return nil
}
