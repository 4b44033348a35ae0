package vehicles

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/motorhaus/motorhaus/internal/platform/db"
	"github.com/motorhaus/motorhaus/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Vehicle, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]Vehicle, error)
	ListDueForService(ctx context.Context, before time.Time) ([]Vehicle, error)
	Get(ctx context.Context, id int64) (Vehicle, error)
	GetByLicensePlate(ctx context.Context, plate string) (Vehicle, error)
	Create(ctx context.Context, vehicle Vehicle) (Vehicle, error)
	Update(ctx context.Context, id int64, vehicle Vehicle) error
	SetLastServiceDate(ctx context.Context, id int64, servicedAt time.Time) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

const vehicleColumns = `vehicle_id, customer_id, make, model, year, license_plate, vin, color, mileage, last_service_date`

func (r *repository) List(ctx context.Context) ([]Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY make, model, year DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, db.Translate(err)
	}
	defer rows.Close()
	return collectVehicles(rows)
}

func (r *repository) ListByCustomer(ctx context.Context, customerID int64) ([]Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE customer_id = $1 ORDER BY year DESC, make, model`
	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, db.Translate(err)
	}
	defer rows.Close()
	return collectVehicles(rows)
}

// ListDueForService returns vehicles whose last recorded visit is older
// than the cutoff. Vehicles never serviced here are excluded; there is
// nothing to base a reminder on.
func (r *repository) ListDueForService(ctx context.Context, before time.Time) ([]Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles
		WHERE last_service_date IS NOT NULL AND last_service_date <= $1
		ORDER BY last_service_date`
	rows, err := r.db.Query(ctx, query, before)
	if err != nil {
		return nil, db.Translate(err)
	}
	defer rows.Close()
	return collectVehicles(rows)
}

func (r *repository) Get(ctx context.Context, id int64) (Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE vehicle_id = $1`
	return r.scanOne(ctx, query, id)
}

func (r *repository) GetByLicensePlate(ctx context.Context, plate string) (Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE license_plate = $1`
	return r.scanOne(ctx, query, plate)
}

func (r *repository) Create(ctx context.Context, vehicle Vehicle) (Vehicle, error) {
	query := `INSERT INTO vehicles (customer_id, make, model, year, license_plate, vin, color, mileage)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING vehicle_id`
	err := r.db.QueryRow(ctx, query,
		vehicle.CustomerID, vehicle.Make, vehicle.Model, vehicle.Year,
		vehicle.LicensePlate, vehicle.VIN, vehicle.Color, vehicle.Mileage,
	).Scan(&vehicle.ID)
	if err != nil {
		return Vehicle{}, db.Translate(err)
	}
	return vehicle, nil
}

func (r *repository) Update(ctx context.Context, id int64, vehicle Vehicle) error {
	query := `UPDATE vehicles
		SET customer_id = $1, make = $2, model = $3, year = $4,
			license_plate = $5, vin = $6, color = $7, mileage = $8
		WHERE vehicle_id = $9`
	tag, err := r.db.Exec(ctx, query,
		vehicle.CustomerID, vehicle.Make, vehicle.Model, vehicle.Year,
		vehicle.LicensePlate, vehicle.VIN, vehicle.Color, vehicle.Mileage, id)
	if err != nil {
		return db.Translate(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) SetLastServiceDate(ctx context.Context, id int64, servicedAt time.Time) error {
	query := `UPDATE vehicles SET last_service_date = $1 WHERE vehicle_id = $2`
	tag, err := r.db.Exec(ctx, query, servicedAt, id)
	if err != nil {
		return db.Translate(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM vehicles WHERE vehicle_id = $1`, id)
	if err != nil {
		return db.Translate(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) scanOne(ctx context.Context, query string, arg any) (Vehicle, error) {
	var v Vehicle
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&v.ID, &v.CustomerID, &v.Make, &v.Model, &v.Year,
		&v.LicensePlate, &v.VIN, &v.Color, &v.Mileage, &v.LastServiceDate)
	if err != nil {
		return Vehicle{}, db.Translate(err)
	}
	return v, nil
}

func collectVehicles(rows pgx.Rows) ([]Vehicle, error) {
	var vehicles []Vehicle
	for rows.Next() {
		var v Vehicle
		if err := rows.Scan(
			&v.ID, &v.CustomerID, &v.Make, &v.Model, &v.Year,
			&v.LicensePlate, &v.VIN, &v.Color, &v.Mileage, &v.LastServiceDate,
		); err != nil {
			return nil, db.Translate(err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Translate(err)
	}
	return vehicles, nil
}
