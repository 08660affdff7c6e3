package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/Brian-Masheti/rentowl-sub001/internal/models"
)

type CaretakerRepository interface {
	Create(ctx context.Context, c *models.Caretaker) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Caretaker, error)
	ListAll(ctx context.Context) ([]*models.Caretaker, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type caretakerRepo struct {
	db DB
}

func NewCaretakerRepository(db DB) CaretakerRepository {
	return &caretakerRepo{db: db}
}

func (r *caretakerRepo) Create(ctx context.Context, c *models.Caretaker) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO caretakers (
            id, first_name, last_name, email, phone, is_active,
            created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6, NOW(), NOW())
    `, c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.IsActive)
	return err
}

func (r *caretakerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Caretaker, error) {
	row := r.db.QueryRow(ctx, baseSelectCaretaker()+" WHERE id=$1", id)
	return scanCaretaker(row)
}

func (r *caretakerRepo) ListAll(ctx context.Context) ([]*models.Caretaker, error) {
	rows, err := r.db.Query(ctx, baseSelectCaretaker()+" ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Caretaker
	for rows.Next() {
		c, err := scanCaretaker(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *caretakerRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE caretakers SET is_active=$1, updated_at=NOW() WHERE id=$2`, active, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectCaretaker() string {
	return `
        SELECT id, first_name, last_name, email, phone, is_active,
               created_at, updated_at
        FROM caretakers
    `
}

func scanCaretaker(row pgx.Row) (*models.Caretaker, error) {
	var c models.Caretaker
	err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Phone,
		&c.IsActive,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
