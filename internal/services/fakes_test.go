package services

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/Brian-Masheti/rentowl-sub001/internal/models"
	"github.com/Brian-Masheti/rentowl-sub001/internal/repositories"
)

// The fakes below hold entities in maps and reproduce the repository
// contracts the services rely on: deep copies on read, row_version
// checks on write, nil for missing rows.

func clone[T any](src *T) *T {
	if src == nil {
		return nil
	}
	raw, err := json.Marshal(src)
	if err != nil {
		panic(err)
	}
	dst := new(T)
	if err := json.Unmarshal(raw, dst); err != nil {
		panic(err)
	}
	return dst
}

/* ------------------------------------------------------------------
   Properties
------------------------------------------------------------------ */

type fakePropertyRepo struct {
	byID map[uuid.UUID]*models.Property

	// listErr / getErr simulate storage failures
	listErr error
	getErr  error

	// beforeCommit runs between read and write inside UpdateWithRetry;
	// tests use it to inject a competing writer.
	beforeCommit func()
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{byID: make(map[uuid.UUID]*models.Property)}
}

func (r *fakePropertyRepo) Create(ctx context.Context, p *models.Property) error {
	p.SetRowVersion(1)
	r.byID[p.ID] = clone(p)
	return nil
}

func (r *fakePropertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	p, ok := r.byID[id]
	if !ok || p.DeletedAt != nil {
		return nil, nil
	}
	return clone(p), nil
}

func (r *fakePropertyRepo) ListByLandlordID(ctx context.Context, landlordID uuid.UUID) ([]*models.Property, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*models.Property
	for _, p := range r.byID {
		if p.LandlordID == landlordID && p.DeletedAt == nil {
			out = append(out, clone(p))
		}
	}
	return out, nil
}

func (r *fakePropertyRepo) ListAll(ctx context.Context) ([]*models.Property, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*models.Property
	for _, p := range r.byID {
		if p.DeletedAt == nil {
			out = append(out, clone(p))
		}
	}
	return out, nil
}

func (r *fakePropertyRepo) Update(ctx context.Context, p *models.Property) error {
	r.byID[p.ID] = clone(p)
	return nil
}

func (r *fakePropertyRepo) UpdateIfVersion(ctx context.Context, p *models.Property, expected int64) (pgconn.CommandTag, error) {
	stored, ok := r.byID[p.ID]
	if !ok || stored.GetRowVersion() != expected {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	next := clone(p)
	next.SetRowVersion(expected + 1)
	r.byID[p.ID] = next
	return pgconn.CommandTag("UPDATE 1"), nil
}

func (r *fakePropertyRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Property) error) error {
	return repositories.WithRetry(ctx, 3, id.String(),
		func(ctx context.Context, _ string) (*models.Property, error) {
			return r.GetByID(ctx, id)
		},
		func(ctx context.Context, p *models.Property, expected int64) (pgconn.CommandTag, error) {
			if r.beforeCommit != nil {
				hook := r.beforeCommit
				r.beforeCommit = nil
				hook()
				// re-check against the possibly changed stored version
			}
			return r.UpdateIfVersion(ctx, p, expected)
		},
		mutate,
	)
}

func (r *fakePropertyRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	p, ok := r.byID[id]
	if !ok || p.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	now := time.Now().UTC()
	p.DeletedAt = &now
	return nil
}

/* ------------------------------------------------------------------
   Tenants
------------------------------------------------------------------ */

type fakeTenantRepo struct {
	byID   map[uuid.UUID]*models.Tenant
	getErr error
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{byID: make(map[uuid.UUID]*models.Tenant)}
}

func (r *fakeTenantRepo) Create(ctx context.Context, t *models.Tenant) error {
	t.SetRowVersion(1)
	r.byID[t.ID] = clone(t)
	return nil
}

func (r *fakeTenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	t, ok := r.byID[id]
	if !ok || t.DeletedAt != nil {
		return nil, nil
	}
	return clone(t), nil
}

func (r *fakeTenantRepo) ListByLandlordID(ctx context.Context, landlordID uuid.UUID) ([]*models.Tenant, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	var out []*models.Tenant
	for _, t := range r.byID {
		if t.LandlordID == landlordID && t.DeletedAt == nil {
			out = append(out, clone(t))
		}
	}
	return out, nil
}

func (r *fakeTenantRepo) ListAll(ctx context.Context) ([]*models.Tenant, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	var out []*models.Tenant
	for _, t := range r.byID {
		if t.DeletedAt == nil {
			out = append(out, clone(t))
		}
	}
	return out, nil
}

func (r *fakeTenantRepo) Update(ctx context.Context, t *models.Tenant) error {
	r.byID[t.ID] = clone(t)
	return nil
}

func (r *fakeTenantRepo) UpdateIfVersion(ctx context.Context, t *models.Tenant, expected int64) (pgconn.CommandTag, error) {
	stored, ok := r.byID[t.ID]
	if !ok || stored.GetRowVersion() != expected {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	next := clone(t)
	next.SetRowVersion(expected + 1)
	r.byID[t.ID] = next
	return pgconn.CommandTag("UPDATE 1"), nil
}

func (r *fakeTenantRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Tenant) error) error {
	return repositories.WithRetry(ctx, 3, id.String(),
		func(ctx context.Context, _ string) (*models.Tenant, error) {
			return r.GetByID(ctx, id)
		},
		r.UpdateIfVersion,
		mutate,
	)
}

func (r *fakeTenantRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	t, ok := r.byID[id]
	if !ok || t.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	now := time.Now().UTC()
	t.DeletedAt = &now
	return nil
}

/* ------------------------------------------------------------------
   Payments
------------------------------------------------------------------ */

type fakePaymentRepo struct {
	byID    map[uuid.UUID]*models.Payment
	listErr error
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{byID: make(map[uuid.UUID]*models.Payment)}
}

func (r *fakePaymentRepo) Create(ctx context.Context, p *models.Payment) error {
	r.byID[p.ID] = clone(p)
	return nil
}

func (r *fakePaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return clone(p), nil
}

func (r *fakePaymentRepo) ListByLandlordID(ctx context.Context, landlordID uuid.UUID) ([]*models.Payment, error) {
	// The fake has no tenant join; tests that need landlord scoping
	// pair it with a tenant fake and filter here.
	return r.ListAll(ctx)
}

func (r *fakePaymentRepo) ListAll(ctx context.Context) ([]*models.Payment, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*models.Payment
	for _, p := range r.byID {
		out = append(out, clone(p))
	}
	return out, nil
}

func (r *fakePaymentRepo) ListOutstanding(ctx context.Context) ([]*models.Payment, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*models.Payment
	for _, p := range r.byID {
		if p.Outstanding() {
			out = append(out, clone(p))
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) RecordPayment(ctx context.Context, id uuid.UUID, amount float64) error {
	p, ok := r.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	p.AmountPaid += amount
	if p.AmountPaid >= p.Amount {
		p.Status = models.PaymentPaid
	}
	return nil
}

func (r *fakePaymentRepo) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	var n int64
	for _, p := range r.byID {
		if p.Status == models.PaymentUnpaid && p.DueDate.Before(asOf) {
			p.Status = models.PaymentOverdue
			n++
		}
	}
	return n, nil
}

/* ------------------------------------------------------------------
   Caretakers
------------------------------------------------------------------ */

type fakeCaretakerRepo struct {
	byID map[uuid.UUID]*models.Caretaker
}

func newFakeCaretakerRepo() *fakeCaretakerRepo {
	return &fakeCaretakerRepo{byID: make(map[uuid.UUID]*models.Caretaker)}
}

func (r *fakeCaretakerRepo) Create(ctx context.Context, c *models.Caretaker) error {
	r.byID[c.ID] = clone(c)
	return nil
}

func (r *fakeCaretakerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Caretaker, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return clone(c), nil
}

func (r *fakeCaretakerRepo) ListAll(ctx context.Context) ([]*models.Caretaker, error) {
	var out []*models.Caretaker
	for _, c := range r.byID {
		out = append(out, clone(c))
	}
	return out, nil
}

func (r *fakeCaretakerRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	c, ok := r.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	c.IsActive = active
	return nil
}

/* ------------------------------------------------------------------
   Caretaker actions
------------------------------------------------------------------ */

type fakeActionRepo struct {
	entries []*models.CaretakerAction
}

func (r *fakeActionRepo) Insert(ctx context.Context, a *models.CaretakerAction) error {
	r.entries = append(r.entries, clone(a))
	return nil
}

// List mirrors the SQL filter semantics: zero-valued fields impose no
// constraint, set fields are AND-combined, newest first.
func (r *fakeActionRepo) List(ctx context.Context, f repositories.ActionFilter) ([]*models.CaretakerAction, error) {
	var out []*models.CaretakerAction
	for _, a := range r.entries {
		if f.Search != "" && !strings.Contains(strings.ToLower(a.Description), strings.ToLower(f.Search)) {
			continue
		}
		if f.CaretakerID != nil && a.CaretakerID != *f.CaretakerID {
			continue
		}
		if f.PropertyID != nil && (a.PropertyID == nil || *a.PropertyID != *f.PropertyID) {
			continue
		}
		if f.ActionType != "" && a.ActionType != f.ActionType {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.From != nil && a.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && a.CreatedAt.After(*f.To) {
			continue
		}
		out = append(out, clone(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type fakeFeed struct {
	published []*models.CaretakerAction
}

func (f *fakeFeed) Publish(ctx context.Context, a *models.CaretakerAction) error {
	f.published = append(f.published, clone(a))
	return nil
}

func (f *fakeFeed) Subscribe(ctx context.Context) (<-chan *models.CaretakerAction, func()) {
	ch := make(chan *models.CaretakerAction)
	close(ch)
	return ch, func() {}
}
