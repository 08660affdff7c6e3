package repositories

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/Brian-Masheti/rentowl-sub001/internal/models"
)

// ActionFilter narrows an action-log query. Zero-valued fields impose
// no constraint; set fields are AND-combined.
type ActionFilter struct {
	Search      string
	CaretakerID *uuid.UUID
	PropertyID  *uuid.UUID
	ActionType  models.ActionType
	Status      models.ActionStatus
	From        *time.Time
	To          *time.Time
}

type CaretakerActionRepository interface {
	// Insert appends one entry. Rows are never updated or deleted.
	Insert(ctx context.Context, a *models.CaretakerAction) error
	List(ctx context.Context, filter ActionFilter) ([]*models.CaretakerAction, error)
}

type caretakerActionRepo struct {
	db DB
}

func NewCaretakerActionRepository(db DB) CaretakerActionRepository {
	return &caretakerActionRepo{db: db}
}

func (r *caretakerActionRepo) Insert(ctx context.Context, a *models.CaretakerAction) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO caretaker_actions (
            id, caretaker_id, property_id, action_type, status, description, created_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7)
    `, a.ID, a.CaretakerID, a.PropertyID, a.ActionType, a.Status, a.Description, a.CreatedAt)
	return err
}

func (r *caretakerActionRepo) List(ctx context.Context, filter ActionFilter) ([]*models.CaretakerAction, error) {
	var (
		qb   strings.Builder
		args []any
		idx  = 1
	)

	and := func(clause string, arg any) {
		if idx == 1 {
			qb.WriteString(" WHERE ")
		} else {
			qb.WriteString(" AND ")
		}
		qb.WriteString(clause)
		qb.WriteString(strconv.Itoa(idx))
		args = append(args, arg)
		idx++
	}

	qb.WriteString(baseSelectAction())
	if filter.Search != "" {
		and("description ILIKE $", "%"+filter.Search+"%")
	}
	if filter.CaretakerID != nil {
		and("caretaker_id = $", *filter.CaretakerID)
	}
	if filter.PropertyID != nil {
		and("property_id = $", *filter.PropertyID)
	}
	if filter.ActionType != "" {
		and("action_type = $", string(filter.ActionType))
	}
	if filter.Status != "" {
		and("status = $", string(filter.Status))
	}
	if filter.From != nil {
		and("created_at >= $", *filter.From)
	}
	if filter.To != nil {
		and("created_at <= $", *filter.To)
	}
	qb.WriteString(" ORDER BY created_at DESC")

	rows, err := r.db.Query(ctx, qb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.CaretakerAction
	for rows.Next() {
		a, err := scanAction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func baseSelectAction() string {
	return `
        SELECT id, caretaker_id, property_id, action_type, status, description, created_at
        FROM caretaker_actions
    `
}

func scanAction(row pgx.Row) (*models.CaretakerAction, error) {
	var a models.CaretakerAction
	err := row.Scan(
		&a.ID,
		&a.CaretakerID,
		&a.PropertyID,
		&a.ActionType,
		&a.Status,
		&a.Description,
		&a.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}
