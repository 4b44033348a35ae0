package dashboard

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/motorhaus/motorhaus/internal/platform/db"
)

// Stats are the headline numbers on the landing page.
type Stats struct {
	Customers    int64
	Vehicles     int64
	Services     int64
	OpenJobCards int64
}

type Repository interface {
	CountCustomers(ctx context.Context) (int64, error)
	CountVehicles(ctx context.Context) (int64, error)
	CountServices(ctx context.Context) (int64, error)
	CountJobCardsByStatus(ctx context.Context, status string) (int64, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

func (r *repository) CountCustomers(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM customers`)
}

func (r *repository) CountVehicles(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM vehicles`)
}

func (r *repository) CountServices(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM services`)
}

func (r *repository) CountJobCardsByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM job_cards WHERE status = $1`, status).Scan(&n)
	if err != nil {
		return 0, db.Translate(err)
	}
	return n, nil
}

func (r *repository) count(ctx context.Context, query string) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, db.Translate(err)
	}
	return n, nil
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Stats gathers the landing page counters. The four counts run
// concurrently; the first failure cancels the rest.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.repo.CountCustomers(ctx)
		stats.Customers = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.CountVehicles(ctx)
		stats.Vehicles = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.CountServices(ctx)
		stats.Services = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.CountJobCardsByStatus(ctx, "OPEN")
		stats.OpenJobCards = n
		return err
	})

	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	return stats, nil
}
