package jobcards

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/motorhaus/motorhaus/internal/platform/db"
	"github.com/motorhaus/motorhaus/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]JobCard, error)
	ListByStatus(ctx context.Context, status Status) ([]JobCard, error)
	ListByVehicle(ctx context.Context, vehicleID int64) ([]JobCard, error)
	Get(ctx context.Context, id int64) (JobCard, error)
	Create(ctx context.Context, card JobCard) (JobCard, error)
	Update(ctx context.Context, id int64, card JobCard) error
	SetStatus(ctx context.Context, id int64, status Status, closeDate *time.Time) error
	Delete(ctx context.Context, id int64) error

	ListServices(ctx context.Context, jobCardID int64) ([]JobService, error)
	AddService(ctx context.Context, jobCardID, serviceID int64) (JobService, error)
	SetServiceStatus(ctx context.Context, jobServiceID int64, status JobServiceStatus) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

const jobCardColumns = `job_card_id, vehicle_id, open_date, close_date, status, technician_notes, customer_complaints`

func (r *repository) List(ctx context.Context) ([]JobCard, error) {
	query := `SELECT ` + jobCardColumns + ` FROM job_cards ORDER BY open_date DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, db.Translate(err)
	}
	defer rows.Close()
	return collectJobCards(rows)
}

func (r *repository) ListByStatus(ctx context.Context, status Status) ([]JobCard, error) {
	query := `SELECT ` + jobCardColumns + ` FROM job_cards WHERE status = $1 ORDER BY open_date DESC`
	rows, err := r.db.Query(ctx, query, string(status))
	if err != nil {
		return nil, db.Translate(err)
	}
	defer rows.Close()
	return collectJobCards(rows)
}

func (r *repository) ListByVehicle(ctx context.Context, vehicleID int64) ([]JobCard, error) {
	query := `SELECT ` + jobCardColumns + ` FROM job_cards WHERE vehicle_id = $1 ORDER BY open_date DESC`
	rows, err := r.db.Query(ctx, query, vehicleID)
	if err != nil {
		return nil, db.Translate(err)
	}
	defer rows.Close()
	return collectJobCards(rows)
}

func (r *repository) Get(ctx context.Context, id int64) (JobCard, error) {
	query := `SELECT ` + jobCardColumns + ` FROM job_cards WHERE job_card_id = $1`
	var c JobCard
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.VehicleID, &c.OpenDate, &c.CloseDate, &c.Status, &c.TechnicianNotes, &c.CustomerComplaints)
	if err != nil {
		return JobCard{}, db.Translate(err)
	}
	return c, nil
}

func (r *repository) Create(ctx context.Context, card JobCard) (JobCard, error) {
	query := `INSERT INTO job_cards (vehicle_id, open_date, status, technician_notes, customer_complaints)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING job_card_id`
	err := r.db.QueryRow(ctx, query,
		card.VehicleID, card.OpenDate, string(card.Status), card.TechnicianNotes, card.CustomerComplaints,
	).Scan(&card.ID)
	if err != nil {
		return JobCard{}, db.Translate(err)
	}
	return card, nil
}

func (r *repository) Update(ctx context.Context, id int64, card JobCard) error {
	query := `UPDATE job_cards
		SET vehicle_id = $1, status = $2, close_date = $3, technician_notes = $4, customer_complaints = $5
		WHERE job_card_id = $6`
	tag, err := r.db.Exec(ctx, query,
		card.VehicleID, string(card.Status), card.CloseDate, card.TechnicianNotes, card.CustomerComplaints, id)
	if err != nil {
		return db.Translate(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) SetStatus(ctx context.Context, id int64, status Status, closeDate *time.Time) error {
	query := `UPDATE job_cards SET status = $1, close_date = $2 WHERE job_card_id = $3`
	tag, err := r.db.Exec(ctx, query, string(status), closeDate, id)
	if err != nil {
		return db.Translate(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes the job card and its service lines in one transaction.
// Bills keep their foreign key, so a billed job card stays put and the
// attempt surfaces as a conflict.
func (r *repository) Delete(ctx context.Context, id int64) error {
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM job_services WHERE job_card_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM job_cards WHERE job_card_id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
	return db.Translate(err)
}

func (r *repository) ListServices(ctx context.Context, jobCardID int64) ([]JobService, error) {
	query := `SELECT js.job_service_id, js.job_card_id, js.service_id, js.actual_price, js.actual_hours,
			js.notes, js.status, s.service_name, s.description
		FROM job_services js
		JOIN services s ON s.service_id = js.service_id
		WHERE js.job_card_id = $1
		ORDER BY js.job_service_id`
	rows, err := r.db.Query(ctx, query, jobCardID)
	if err != nil {
		return nil, db.Translate(err)
	}
	defer rows.Close()

	var services []JobService
	for rows.Next() {
		var js JobService
		if err := rows.Scan(
			&js.ID, &js.JobCardID, &js.ServiceID, &js.ActualPrice, &js.ActualHours,
			&js.Notes, &js.Status, &js.ServiceName, &js.Description,
		); err != nil {
			return nil, db.Translate(err)
		}
		services = append(services, js)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Translate(err)
	}
	return services, nil
}

// AddService copies the catalog price and estimate onto a new PENDING
// line. A missing catalog entry fails the whole operation and no line
// is written.
func (r *repository) AddService(ctx context.Context, jobCardID, serviceID int64) (JobService, error) {
	js := JobService{JobCardID: jobCardID, ServiceID: serviceID, Status: JobServicePending}

	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		priceQuery := `SELECT service_name, description, standard_price, estimated_hours FROM services WHERE service_id = $1`
		if err := tx.QueryRow(ctx, priceQuery, serviceID).Scan(
			&js.ServiceName, &js.Description, &js.ActualPrice, &js.ActualHours,
		); err != nil {
			return err
		}

		insertQuery := `INSERT INTO job_services (job_card_id, service_id, actual_price, actual_hours, notes, status)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING job_service_id`
		return tx.QueryRow(ctx, insertQuery,
			js.JobCardID, js.ServiceID, js.ActualPrice, js.ActualHours, js.Notes, string(js.Status),
		).Scan(&js.ID)
	})
	if err != nil {
		return JobService{}, db.Translate(err)
	}
	return js, nil
}

func (r *repository) SetServiceStatus(ctx context.Context, jobServiceID int64, status JobServiceStatus) error {
	query := `UPDATE job_services SET status = $1 WHERE job_service_id = $2`
	tag, err := r.db.Exec(ctx, query, string(status), jobServiceID)
	if err != nil {
		return db.Translate(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func collectJobCards(rows pgx.Rows) ([]JobCard, error) {
	var cards []JobCard
	for rows.Next() {
		var c JobCard
		if err := rows.Scan(
			&c.ID, &c.VehicleID, &c.OpenDate, &c.CloseDate, &c.Status, &c.TechnicianNotes, &c.CustomerComplaints,
		); err != nil {
			return nil, db.Translate(err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Translate(err)
	}
	return cards, nil
}
