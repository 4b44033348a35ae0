package customers

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/motorhaus/motorhaus/internal/shared"
)

type Service struct {
	repo    Repository
	checker *validator.Validate
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, checker: newChecker()}
}

func (s *Service) List(ctx context.Context) ([]Customer, error) {
	return s.repo.List(ctx)
}

// SearchByName matches the term against first and last names. A blank
// term falls back to the full listing.
func (s *Service) SearchByName(ctx context.Context, term string) ([]Customer, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.repo.List(ctx)
	}
	return s.repo.SearchByName(ctx, term)
}

func (s *Service) Get(ctx context.Context, id int64) (Customer, error) {
	if id <= 0 {
		return Customer{}, shared.ErrValidation
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) GetByPhone(ctx context.Context, phone string) (Customer, error) {
	if strings.TrimSpace(phone) == "" {
		return Customer{}, shared.ErrValidation
	}
	return s.repo.GetByPhone(ctx, phone)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (Customer, error) {
	if strings.TrimSpace(email) == "" {
		return Customer{}, shared.ErrValidation
	}
	return s.repo.GetByEmail(ctx, email)
}

func (s *Service) Create(ctx context.Context, customer Customer) (Customer, error) {
	if err := s.validate(customer); err != nil {
		return Customer{}, err
	}
	return s.repo.Create(ctx, customer)
}

func (s *Service) Update(ctx context.Context, id int64, customer Customer) error {
	if id <= 0 {
		return shared.ErrValidation
	}
	if err := s.validate(customer); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, customer)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrValidation
	}
	return s.repo.Delete(ctx, id)
}
