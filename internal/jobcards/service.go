package jobcards

import (
	"context"
	"time"

	"github.com/motorhaus/motorhaus/internal/shared"
)

// Fleet records completed visits on the vehicle file.
type Fleet interface {
	SetLastServiceDate(ctx context.Context, vehicleID int64, servicedAt time.Time) error
}

type Service struct {
	repo  Repository
	fleet Fleet
	now   func() time.Time
}

func NewService(repo Repository, fleet Fleet) *Service {
	return &Service{repo: repo, fleet: fleet, now: time.Now}
}

func (s *Service) List(ctx context.Context) ([]JobCard, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByStatus(ctx context.Context, status Status) ([]JobCard, error) {
	if !status.Valid() {
		return nil, shared.ErrValidation
	}
	return s.repo.ListByStatus(ctx, status)
}

func (s *Service) ListByVehicle(ctx context.Context, vehicleID int64) ([]JobCard, error) {
	if vehicleID <= 0 {
		return nil, shared.ErrValidation
	}
	return s.repo.ListByVehicle(ctx, vehicleID)
}

func (s *Service) Get(ctx context.Context, id int64) (JobCard, error) {
	if id <= 0 {
		return JobCard{}, shared.ErrValidation
	}
	return s.repo.Get(ctx, id)
}

// Open creates a job card. Whatever the caller supplied, a new card
// always starts OPEN with the open date stamped now and no close date.
func (s *Service) Open(ctx context.Context, card JobCard) (JobCard, error) {
	if card.VehicleID <= 0 {
		return JobCard{}, shared.ErrValidation
	}
	card.Status = StatusOpen
	card.OpenDate = s.now()
	card.CloseDate = nil
	return s.repo.Create(ctx, card)
}

// Update rewrites the card. The close date follows the submitted status:
// closing statuses stamp it now, any other status clears it. There is no
// guard on the previous state, a card can move between any two statuses.
func (s *Service) Update(ctx context.Context, id int64, card JobCard) error {
	if id <= 0 || card.VehicleID <= 0 {
		return shared.ErrValidation
	}
	if !card.Status.Valid() {
		return shared.ErrValidation
	}
	card.CloseDate = s.closeDateFor(card.Status)
	return s.repo.Update(ctx, id, card)
}

// SetStatus moves the card to the given status with the same close date
// rules as Update.
func (s *Service) SetStatus(ctx context.Context, id int64, status Status) error {
	if id <= 0 {
		return shared.ErrValidation
	}
	if !status.Valid() {
		return shared.ErrValidation
	}
	return s.repo.SetStatus(ctx, id, status, s.closeDateFor(status))
}

// Complete marks the card COMPLETED and stamps the vehicle's last
// service date. The two writes are independent statements.
func (s *Service) Complete(ctx context.Context, id int64) error {
	card, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.SetStatus(ctx, id, StatusCompleted); err != nil {
		return err
	}
	return s.fleet.SetLastServiceDate(ctx, card.VehicleID, s.now())
}

// Cancel marks the card CANCELLED and clears any close date.
func (s *Service) Cancel(ctx context.Context, id int64) error {
	return s.SetStatus(ctx, id, StatusCancelled)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrValidation
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) Services(ctx context.Context, jobCardID int64) ([]JobService, error) {
	if jobCardID <= 0 {
		return nil, shared.ErrValidation
	}
	return s.repo.ListServices(ctx, jobCardID)
}

// AddService attaches a catalog service to the card at today's standard
// price.
func (s *Service) AddService(ctx context.Context, jobCardID, serviceID int64) (JobService, error) {
	if jobCardID <= 0 || serviceID <= 0 {
		return JobService{}, shared.ErrValidation
	}
	return s.repo.AddService(ctx, jobCardID, serviceID)
}

// SetServiceStatus moves one service line. Line progress never touches
// the card's own status.
func (s *Service) SetServiceStatus(ctx context.Context, jobServiceID int64, status JobServiceStatus) error {
	if jobServiceID <= 0 {
		return shared.ErrValidation
	}
	if !status.Valid() {
		return shared.ErrValidation
	}
	return s.repo.SetServiceStatus(ctx, jobServiceID, status)
}

func (s *Service) closeDateFor(status Status) *time.Time {
	if !status.ClosesCard() {
		return nil
	}
	now := s.now()
	return &now
}
