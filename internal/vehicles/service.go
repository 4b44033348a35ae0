package vehicles

import (
	"context"
	"strings"
	"time"

	"github.com/motorhaus/motorhaus/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Vehicle, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByCustomer(ctx context.Context, customerID int64) ([]Vehicle, error) {
	if customerID <= 0 {
		return nil, shared.ErrValidation
	}
	return s.repo.ListByCustomer(ctx, customerID)
}

func (s *Service) ListDueForService(ctx context.Context, before time.Time) ([]Vehicle, error) {
	return s.repo.ListDueForService(ctx, before)
}

func (s *Service) Get(ctx context.Context, id int64) (Vehicle, error) {
	if id <= 0 {
		return Vehicle{}, shared.ErrValidation
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) GetByLicensePlate(ctx context.Context, plate string) (Vehicle, error) {
	if strings.TrimSpace(plate) == "" {
		return Vehicle{}, shared.ErrValidation
	}
	return s.repo.GetByLicensePlate(ctx, plate)
}

func (s *Service) Create(ctx context.Context, vehicle Vehicle) (Vehicle, error) {
	if err := s.validate(vehicle); err != nil {
		return Vehicle{}, err
	}
	return s.repo.Create(ctx, vehicle)
}

func (s *Service) Update(ctx context.Context, id int64, vehicle Vehicle) error {
	if id <= 0 {
		return shared.ErrValidation
	}
	if err := s.validate(vehicle); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, vehicle)
}

// RecordServiceVisit stamps the last service date after a job card is
// completed.
func (s *Service) RecordServiceVisit(ctx context.Context, id int64, servicedAt time.Time) error {
	if id <= 0 {
		return shared.ErrValidation
	}
	return s.repo.SetLastServiceDate(ctx, id, servicedAt)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrValidation
	}
	return s.repo.Delete(ctx, id)
}
