package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/Brian-Masheti/rentowl-sub001/internal/models"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *models.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)

	ListByLandlordID(ctx context.Context, landlordID uuid.UUID) ([]*models.Payment, error)
	ListAll(ctx context.Context) ([]*models.Payment, error)
	ListOutstanding(ctx context.Context) ([]*models.Payment, error)

	// RecordPayment applies an amount towards a payment and flips it to
	// paid once fully settled.
	RecordPayment(ctx context.Context, id uuid.UUID, amount float64) error

	// MarkOverdue flips every unpaid payment whose due date has passed.
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
}

type paymentRepo struct {
	db DB
}

func NewPaymentRepository(db DB) PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) Create(ctx context.Context, p *models.Payment) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO payments (
            id, tenant_id, property_id, amount, amount_paid, due_date, status,
            created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7, NOW(), NOW())
    `,
		p.ID,
		p.TenantID,
		p.PropertyID,
		p.Amount,
		p.AmountPaid,
		p.DueDate,
		p.Status,
	)
	return err
}

func (r *paymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	row := r.db.QueryRow(ctx, baseSelectPayment()+" WHERE id=$1", id)
	return scanPayment(row)
}

// ListByLandlordID scopes payments through the owning tenant so a
// landlord only ever sees their own ledger.
func (r *paymentRepo) ListByLandlordID(ctx context.Context, landlordID uuid.UUID) ([]*models.Payment, error) {
	rows, err := r.db.Query(ctx, `
        SELECT p.id, p.tenant_id, p.property_id, p.amount, p.amount_paid,
               p.due_date, p.status, p.created_at, p.updated_at
        FROM payments p
        JOIN tenants t ON t.id = p.tenant_id
        WHERE t.landlord_id=$1
        ORDER BY p.due_date
    `, landlordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPayments(rows)
}

func (r *paymentRepo) ListAll(ctx context.Context) ([]*models.Payment, error) {
	rows, err := r.db.Query(ctx, baseSelectPayment()+" ORDER BY due_date")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPayments(rows)
}

func (r *paymentRepo) ListOutstanding(ctx context.Context) ([]*models.Payment, error) {
	rows, err := r.db.Query(ctx, baseSelectPayment()+" WHERE status IN ('unpaid','overdue') ORDER BY due_date")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPayments(rows)
}

func (r *paymentRepo) RecordPayment(ctx context.Context, id uuid.UUID, amount float64) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE payments SET
            amount_paid = amount_paid + $1,
            status = CASE WHEN amount_paid + $1 >= amount THEN 'paid' ELSE status END,
            updated_at = NOW()
        WHERE id=$2
    `, amount, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *paymentRepo) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
        UPDATE payments SET status='overdue', updated_at=NOW()
        WHERE status='unpaid' AND due_date < $1
    `, asOf)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func baseSelectPayment() string {
	return `
        SELECT id, tenant_id, property_id, amount, amount_paid,
               due_date, status, created_at, updated_at
        FROM payments
    `
}

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var p models.Payment
	err := row.Scan(
		&p.ID,
		&p.TenantID,
		&p.PropertyID,
		&p.Amount,
		&p.AmountPaid,
		&p.DueDate,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func scanPayments(rows pgx.Rows) ([]*models.Payment, error) {
	var out []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
