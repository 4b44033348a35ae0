package billing

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/motorhaus/motorhaus/internal/platform/db"
	"github.com/motorhaus/motorhaus/internal/shared"
)

type Repository interface {
	ListByJobCard(ctx context.Context, jobCardID int64) ([]Bill, error)
	Get(ctx context.Context, id int64) (Bill, error)
	Create(ctx context.Context, bill Bill) (Bill, error)
	MarkPaid(ctx context.Context, id int64, method string, paidAt time.Time) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

const billColumns = `bill_id, job_card_id, bill_date, total_service_cost, total_parts_cost,
	tax_amount, discount_amount, grand_total, payment_status, payment_method, payment_date, notes`

func (r *repository) ListByJobCard(ctx context.Context, jobCardID int64) ([]Bill, error) {
	query := `SELECT ` + billColumns + ` FROM billing WHERE job_card_id = $1 ORDER BY bill_date DESC`
	rows, err := r.db.Query(ctx, query, jobCardID)
	if err != nil {
		return nil, db.Translate(err)
	}
	defer rows.Close()
	return collectBills(rows)
}

func (r *repository) Get(ctx context.Context, id int64) (Bill, error) {
	query := `SELECT ` + billColumns + ` FROM billing WHERE bill_id = $1`
	var b Bill
	err := r.db.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.JobCardID, &b.BillDate, &b.TotalServiceCost, &b.TotalPartsCost,
		&b.TaxAmount, &b.DiscountAmount, &b.GrandTotal, &b.PaymentStatus, &b.PaymentMethod, &b.PaymentDate, &b.Notes)
	if err != nil {
		return Bill{}, db.Translate(err)
	}
	return b, nil
}

func (r *repository) Create(ctx context.Context, bill Bill) (Bill, error) {
	query := `INSERT INTO billing (job_card_id, bill_date, total_service_cost, total_parts_cost,
			tax_amount, discount_amount, grand_total, payment_status, payment_method, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING bill_id`
	err := r.db.QueryRow(ctx, query,
		bill.JobCardID, bill.BillDate, bill.TotalServiceCost, bill.TotalPartsCost,
		bill.TaxAmount, bill.DiscountAmount, bill.GrandTotal, string(bill.PaymentStatus), bill.PaymentMethod, bill.Notes,
	).Scan(&bill.ID)
	if err != nil {
		return Bill{}, db.Translate(err)
	}
	return bill, nil
}

func (r *repository) MarkPaid(ctx context.Context, id int64, method string, paidAt time.Time) error {
	query := `UPDATE billing SET payment_status = $1, payment_method = $2, payment_date = $3 WHERE bill_id = $4`
	tag, err := r.db.Exec(ctx, query, string(PaymentPaid), method, paidAt, id)
	if err != nil {
		return db.Translate(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func collectBills(rows pgx.Rows) ([]Bill, error) {
	var bills []Bill
	for rows.Next() {
		var b Bill
		if err := rows.Scan(
			&b.ID, &b.JobCardID, &b.BillDate, &b.TotalServiceCost, &b.TotalPartsCost,
			&b.TaxAmount, &b.DiscountAmount, &b.GrandTotal, &b.PaymentStatus, &b.PaymentMethod, &b.PaymentDate, &b.Notes,
		); err != nil {
			return nil, db.Translate(err)
		}
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Translate(err)
	}
	return bills, nil
}
