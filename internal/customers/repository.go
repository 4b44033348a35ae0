package customers

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/motorhaus/motorhaus/internal/platform/db"
	"github.com/motorhaus/motorhaus/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Customer, error)
	SearchByName(ctx context.Context, term string) ([]Customer, error)
	Get(ctx context.Context, id int64) (Customer, error)
	GetByPhone(ctx context.Context, phone string) (Customer, error)
	GetByEmail(ctx context.Context, email string) (Customer, error)
	Create(ctx context.Context, customer Customer) (Customer, error)
	Update(ctx context.Context, id int64, customer Customer) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

const customerColumns = `customer_id, first_name, last_name, phone, email, address, city, state, zip_code, registration_date`

func (r *repository) List(ctx context.Context) ([]Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY last_name, first_name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, db.Translate(err)
	}
	defer rows.Close()
	return collectCustomers(rows)
}

func (r *repository) SearchByName(ctx context.Context, term string) ([]Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers
		WHERE first_name ILIKE $1 OR last_name ILIKE $1
		ORDER BY last_name, first_name`
	rows, err := r.db.Query(ctx, query, "%"+term+"%")
	if err != nil {
		return nil, db.Translate(err)
	}
	defer rows.Close()
	return collectCustomers(rows)
}

func (r *repository) Get(ctx context.Context, id int64) (Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1`
	return r.scanOne(ctx, query, id)
}

func (r *repository) GetByPhone(ctx context.Context, phone string) (Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE phone = $1`
	return r.scanOne(ctx, query, phone)
}

func (r *repository) GetByEmail(ctx context.Context, email string) (Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE email = $1`
	return r.scanOne(ctx, query, email)
}

func (r *repository) Create(ctx context.Context, customer Customer) (Customer, error) {
	query := `INSERT INTO customers (first_name, last_name, phone, email, address, city, state, zip_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING customer_id, registration_date`
	err := r.db.QueryRow(ctx, query,
		customer.FirstName, customer.LastName, customer.Phone, customer.Email,
		customer.Address, customer.City, customer.State, customer.ZipCode,
	).Scan(&customer.ID, &customer.RegistrationDate)
	if err != nil {
		return Customer{}, db.Translate(err)
	}
	return customer, nil
}

func (r *repository) Update(ctx context.Context, id int64, customer Customer) error {
	query := `UPDATE customers
		SET first_name = $1, last_name = $2, phone = $3, email = $4,
			address = $5, city = $6, state = $7, zip_code = $8
		WHERE customer_id = $9`
	tag, err := r.db.Exec(ctx, query,
		customer.FirstName, customer.LastName, customer.Phone, customer.Email,
		customer.Address, customer.City, customer.State, customer.ZipCode, id)
	if err != nil {
		return db.Translate(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE customer_id = $1`, id)
	if err != nil {
		return db.Translate(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) scanOne(ctx context.Context, query string, arg any) (Customer, error) {
	var c Customer
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Phone, &c.Email,
		&c.Address, &c.City, &c.State, &c.ZipCode, &c.RegistrationDate)
	if err != nil {
		return Customer{}, db.Translate(err)
	}
	return c, nil
}

func collectCustomers(rows pgx.Rows) ([]Customer, error) {
	var customers []Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(
			&c.ID, &c.FirstName, &c.LastName, &c.Phone, &c.Email,
			&c.Address, &c.City, &c.State, &c.ZipCode, &c.RegistrationDate,
		); err != nil {
			return nil, db.Translate(err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Translate(err)
	}
	return customers, nil
}
