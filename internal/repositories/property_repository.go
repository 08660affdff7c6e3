package repositories

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"

	"github.com/Brian-Masheti/rentowl-sub001/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type PropertyRepository interface {
	Create(ctx context.Context, p *models.Property) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	ListByLandlordID(ctx context.Context, landlordID uuid.UUID) ([]*models.Property, error)
	ListAll(ctx context.Context) ([]*models.Property, error)

	Update(ctx context.Context, p *models.Property) error
	UpdateIfVersion(ctx context.Context, p *models.Property, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Property) error) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation

   The floor→unit tree and the image list are stored as JSONB columns,
   so a whole-tree mutation is one row write and the row_version CAS
   covers every embedded unit.
------------------------------------------------------------------ */

type propertyRepo struct {
	*BaseVersionedRepo[*models.Property]
	db DB
}

func NewPropertyRepository(db DB) PropertyRepository {
	r := &propertyRepo{db: db}
	selectStmt := baseSelectProperty() + " WHERE id=$1 AND deleted_at IS NULL"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanProperty)
	return r
}

func (r *propertyRepo) Create(ctx context.Context, p *models.Property) error {
	floorsJSON, err := json.Marshal(p.Floors)
	if err != nil {
		return err
	}
	imagesJSON, err := json.Marshal(p.Images)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
        INSERT INTO properties (
            id, landlord_id, caretaker_id, name, address, description,
            images, floors,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8, NOW(), NOW(), 1)
    `,
		p.ID,
		p.LandlordID,
		p.CaretakerID,
		p.Name,
		p.Address,
		p.Description,
		imagesJSON,
		floorsJSON,
	)
	return err
}

func (r *propertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *propertyRepo) ListByLandlordID(ctx context.Context, landlordID uuid.UUID) ([]*models.Property, error) {
	rows, err := r.db.Query(ctx, baseSelectProperty()+" WHERE landlord_id=$1 AND deleted_at IS NULL ORDER BY created_at", landlordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProperties(rows)
}

func (r *propertyRepo) ListAll(ctx context.Context) ([]*models.Property, error) {
	rows, err := r.db.Query(ctx, baseSelectProperty()+" WHERE deleted_at IS NULL ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProperties(rows)
}

func (r *propertyRepo) Update(ctx context.Context, p *models.Property) error {
	_, err := r.update(ctx, p, false, 0)
	return err
}

func (r *propertyRepo) UpdateIfVersion(ctx context.Context, p *models.Property, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, p, true, expected)
}

func (r *propertyRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Property) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *propertyRepo) update(ctx context.Context, p *models.Property, check bool, expected int64) (pgconn.CommandTag, error) {
	floorsJSON, err := json.Marshal(p.Floors)
	if err != nil {
		return nil, err
	}
	imagesJSON, err := json.Marshal(p.Images)
	if err != nil {
		return nil, err
	}

	sql := `
        UPDATE properties SET
            caretaker_id=$1, name=$2, address=$3, description=$4,
            images=$5, floors=$6, updated_at=NOW()
    `
	args := []any{
		p.CaretakerID, p.Name, p.Address, p.Description,
		imagesJSON, floorsJSON,
	}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$7 AND row_version=$8`
		args = append(args, p.ID, expected)
	} else {
		sql += ` WHERE id=$7`
		args = append(args, p.ID)
	}
	return r.db.Exec(ctx, sql, args...)
}

func (r *propertyRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `UPDATE properties SET deleted_at=NOW() WHERE id=$1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectProperty() string {
	return `
        SELECT
            id, landlord_id, caretaker_id, name, address, description,
            images, floors,
            created_at, updated_at, row_version, deleted_at
        FROM properties
    `
}

func scanProperty(row pgx.Row) (*models.Property, error) {
	var (
		p          models.Property
		imagesJSON []byte
		floorsJSON []byte
		deletedAt  pgtype.Timestamptz
	)
	err := row.Scan(
		&p.ID,
		&p.LandlordID,
		&p.CaretakerID,
		&p.Name,
		&p.Address,
		&p.Description,
		&imagesJSON,
		&floorsJSON,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.RowVersion,
		&deletedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if len(imagesJSON) > 0 {
		if err := json.Unmarshal(imagesJSON, &p.Images); err != nil {
			return nil, err
		}
	}
	if len(floorsJSON) > 0 {
		if err := json.Unmarshal(floorsJSON, &p.Floors); err != nil {
			return nil, err
		}
	}
	if deletedAt.Status == pgtype.Present {
		p.DeletedAt = &deletedAt.Time
	}
	return &p, nil
}

func scanProperties(rows pgx.Rows) ([]*models.Property, error) {
	var out []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
