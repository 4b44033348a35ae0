package catalog

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/motorhaus/motorhaus/internal/platform/db"
	"github.com/motorhaus/motorhaus/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Service, error)
	SearchByName(ctx context.Context, term string) ([]Service, error)
	Get(ctx context.Context, id int64) (Service, error)
	Create(ctx context.Context, service Service) (Service, error)
	Update(ctx context.Context, id int64, service Service) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

const serviceColumns = `service_id, service_name, description, standard_price, estimated_hours`

func (r *repository) List(ctx context.Context) ([]Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services ORDER BY service_name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, db.Translate(err)
	}
	defer rows.Close()
	return collectServices(rows)
}

func (r *repository) SearchByName(ctx context.Context, term string) ([]Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE service_name ILIKE $1 ORDER BY service_name`
	rows, err := r.db.Query(ctx, query, "%"+term+"%")
	if err != nil {
		return nil, db.Translate(err)
	}
	defer rows.Close()
	return collectServices(rows)
}

func (r *repository) Get(ctx context.Context, id int64) (Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE service_id = $1`
	var s Service
	err := r.db.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.Description, &s.StandardPrice, &s.EstimatedHours)
	if err != nil {
		return Service{}, db.Translate(err)
	}
	return s, nil
}

func (r *repository) Create(ctx context.Context, service Service) (Service, error) {
	query := `INSERT INTO services (service_name, description, standard_price, estimated_hours)
		VALUES ($1, $2, $3, $4)
		RETURNING service_id`
	err := r.db.QueryRow(ctx, query, service.Name, service.Description, service.StandardPrice, service.EstimatedHours).Scan(&service.ID)
	if err != nil {
		return Service{}, db.Translate(err)
	}
	return service, nil
}

func (r *repository) Update(ctx context.Context, id int64, service Service) error {
	query := `UPDATE services
		SET service_name = $1, description = $2, standard_price = $3, estimated_hours = $4
		WHERE service_id = $5`
	tag, err := r.db.Exec(ctx, query, service.Name, service.Description, service.StandardPrice, service.EstimatedHours, id)
	if err != nil {
		return db.Translate(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM services WHERE service_id = $1`, id)
	if err != nil {
		return db.Translate(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func collectServices(rows pgx.Rows) ([]Service, error) {
	var services []Service
	for rows.Next() {
		var s Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.StandardPrice, &s.EstimatedHours); err != nil {
			return nil, db.Translate(err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Translate(err)
	}
	return services, nil
}
