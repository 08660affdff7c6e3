package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"

	"github.com/Brian-Masheti/rentowl-sub001/internal/models"
)

type TenantRepository interface {
	Create(ctx context.Context, t *models.Tenant) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	ListByLandlordID(ctx context.Context, landlordID uuid.UUID) ([]*models.Tenant, error)
	ListAll(ctx context.Context) ([]*models.Tenant, error)

	Update(ctx context.Context, t *models.Tenant) error
	UpdateIfVersion(ctx context.Context, t *models.Tenant, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Tenant) error) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type tenantRepo struct {
	*BaseVersionedRepo[*models.Tenant]
	db DB
}

func NewTenantRepository(db DB) TenantRepository {
	r := &tenantRepo{db: db}
	selectStmt := baseSelectTenant() + " WHERE id=$1 AND deleted_at IS NULL"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanTenant)
	return r
}

func (r *tenantRepo) Create(ctx context.Context, t *models.Tenant) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO tenants (
            id, landlord_id, property_id, first_name, last_name, email, phone,
            property_name, unit_type, floor_label, unit_label,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11, NOW(), NOW(), 1)
    `,
		t.ID,
		t.LandlordID,
		t.PropertyID,
		t.FirstName,
		t.LastName,
		t.Email,
		t.Phone,
		t.PropertyName,
		t.UnitType,
		t.FloorLabel,
		t.UnitLabel,
	)
	return err
}

func (r *tenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *tenantRepo) ListByLandlordID(ctx context.Context, landlordID uuid.UUID) ([]*models.Tenant, error) {
	rows, err := r.db.Query(ctx, baseSelectTenant()+" WHERE landlord_id=$1 AND deleted_at IS NULL ORDER BY created_at", landlordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTenants(rows)
}

func (r *tenantRepo) ListAll(ctx context.Context) ([]*models.Tenant, error) {
	rows, err := r.db.Query(ctx, baseSelectTenant()+" WHERE deleted_at IS NULL ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTenants(rows)
}

func (r *tenantRepo) Update(ctx context.Context, t *models.Tenant) error {
	_, err := r.update(ctx, t, false, 0)
	return err
}

func (r *tenantRepo) UpdateIfVersion(ctx context.Context, t *models.Tenant, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, t, true, expected)
}

func (r *tenantRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Tenant) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *tenantRepo) update(ctx context.Context, t *models.Tenant, check bool, expected int64) (pgconn.CommandTag, error) {
	sql := `
        UPDATE tenants SET
            property_id=$1, first_name=$2, last_name=$3, email=$4, phone=$5,
            property_name=$6, unit_type=$7, floor_label=$8, unit_label=$9,
            updated_at=NOW()
    `
	args := []any{
		t.PropertyID, t.FirstName, t.LastName, t.Email, t.Phone,
		t.PropertyName, t.UnitType, t.FloorLabel, t.UnitLabel,
	}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$10 AND row_version=$11`
		args = append(args, t.ID, expected)
	} else {
		sql += ` WHERE id=$10`
		args = append(args, t.ID)
	}
	return r.db.Exec(ctx, sql, args...)
}

func (r *tenantRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `UPDATE tenants SET deleted_at=NOW() WHERE id=$1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectTenant() string {
	return `
        SELECT
            id, landlord_id, property_id, first_name, last_name, email, phone,
            property_name, unit_type, floor_label, unit_label,
            created_at, updated_at, row_version, deleted_at
        FROM tenants
    `
}

func scanTenant(row pgx.Row) (*models.Tenant, error) {
	var (
		t         models.Tenant
		deletedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&t.ID,
		&t.LandlordID,
		&t.PropertyID,
		&t.FirstName,
		&t.LastName,
		&t.Email,
		&t.Phone,
		&t.PropertyName,
		&t.UnitType,
		&t.FloorLabel,
		&t.UnitLabel,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.RowVersion,
		&deletedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if deletedAt.Status == pgtype.Present {
		t.DeletedAt = &deletedAt.Time
	}
	return &t, nil
}

func scanTenants(rows pgx.Rows) ([]*models.Tenant, error) {
	var out []*models.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
