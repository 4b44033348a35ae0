package catalog

import (
	"context"
	"strings"

	"github.com/motorhaus/motorhaus/internal/shared"
)

type Catalog struct {
	repo Repository
}

func NewCatalog(repo Repository) *Catalog {
	return &Catalog{repo: repo}
}

func (c *Catalog) List(ctx context.Context) ([]Service, error) {
	return c.repo.List(ctx)
}

// SearchByName matches the term against service names. A blank term
// falls back to the full price list.
func (c *Catalog) SearchByName(ctx context.Context, term string) ([]Service, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return c.repo.List(ctx)
	}
	return c.repo.SearchByName(ctx, term)
}

func (c *Catalog) Get(ctx context.Context, id int64) (Service, error) {
	if id <= 0 {
		return Service{}, shared.ErrValidation
	}
	return c.repo.Get(ctx, id)
}

func (c *Catalog) Create(ctx context.Context, service Service) (Service, error) {
	if err := c.validate(service); err != nil {
		return Service{}, err
	}
	return c.repo.Create(ctx, service)
}

func (c *Catalog) Update(ctx context.Context, id int64, service Service) error {
	if id <= 0 {
		return shared.ErrValidation
	}
	if err := c.validate(service); err != nil {
		return err
	}
	return c.repo.Update(ctx, id, service)
}

func (c *Catalog) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrValidation
	}
	return c.repo.Delete(ctx, id)
}
