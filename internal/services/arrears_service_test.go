package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brian-Masheti/rentowl-sub001/internal/models"
)

type arrearsFixture struct {
	payments *fakePaymentRepo
	tenants  *fakeTenantRepo
	props    *fakePropertyRepo
	svc      ArrearsService

	landlordID uuid.UUID
	tenant     *models.Tenant
	property   *models.Property
}

func newArrearsFixture(t *testing.T) *arrearsFixture {
	t.Helper()
	f := &arrearsFixture{
		payments:   newFakePaymentRepo(),
		tenants:    newFakeTenantRepo(),
		props:      newFakePropertyRepo(),
		landlordID: uuid.New(),
	}
	f.svc = NewArrearsService(f.payments, f.tenants, f.props)

	f.property = &models.Property{
		ID:         uuid.New(),
		LandlordID: f.landlordID,
		Name:       "Sunrise Court",
	}
	require.NoError(t, f.props.Create(context.Background(), f.property))

	f.tenant = &models.Tenant{
		ID:         uuid.New(),
		LandlordID: f.landlordID,
		FirstName:  "Achieng",
		LastName:   "Odhiambo",
		Email:      "achieng@example.com",
		Phone:      "+254700000001",
	}
	require.NoError(t, f.tenants.Create(context.Background(), f.tenant))
	return f
}

func (f *arrearsFixture) addPayment(t *testing.T, amount, paid float64, status models.PaymentStatus) *models.Payment {
	t.Helper()
	p := &models.Payment{
		ID:         uuid.New(),
		TenantID:   f.tenant.ID,
		PropertyID: f.property.ID,
		Amount:     amount,
		AmountPaid: paid,
		DueDate:    time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Status:     status,
	}
	require.NoError(t, f.payments.Create(context.Background(), p))
	return p
}

func TestArrearsOverviewPartialPayment(t *testing.T) {
	f := newArrearsFixture(t)
	f.addPayment(t, 10000, 4000, models.PaymentUnpaid)

	resp := f.svc.Overview(context.Background(), &f.landlordID)

	assert.Equal(t, 1, resp.TotalTenants)
	assert.Equal(t, float64(10000), resp.TotalDue)
	assert.Equal(t, float64(4000), resp.TotalPaid)
	assert.Equal(t, float64(6000), resp.TotalArrears)
	assert.Equal(t, 1, resp.TenantsInArrears)
	assert.Equal(t, 0, resp.TenantsPaidUp)

	require.Len(t, resp.Rows, 1)
	row := resp.Rows[0]
	assert.Equal(t, "Achieng Odhiambo", row.TenantName)
	assert.Equal(t, "achieng@example.com", row.Email)
	assert.Equal(t, "Sunrise Court", row.PropertyName)
	assert.Equal(t, float64(6000), row.Balance)
	assert.Equal(t, "unpaid", row.Status)
}

func TestArrearsOverviewPaidContributesNothing(t *testing.T) {
	f := newArrearsFixture(t)
	f.addPayment(t, 5000, 5000, models.PaymentPaid)

	resp := f.svc.Overview(context.Background(), &f.landlordID)

	assert.Equal(t, float64(5000), resp.TotalDue)
	assert.Equal(t, float64(5000), resp.TotalPaid)
	assert.Equal(t, float64(0), resp.TotalArrears)
	assert.Equal(t, 0, resp.TenantsInArrears)
	assert.Equal(t, 1, resp.TenantsPaidUp)
	assert.Empty(t, resp.Rows)
}

func TestArrearsOverviewOverdueCounts(t *testing.T) {
	f := newArrearsFixture(t)
	f.addPayment(t, 8000, 0, models.PaymentOverdue)
	f.addPayment(t, 8000, 8000, models.PaymentPaid)

	resp := f.svc.Overview(context.Background(), &f.landlordID)

	assert.Equal(t, float64(16000), resp.TotalDue)
	assert.Equal(t, float64(8000), resp.TotalArrears)
	assert.Equal(t, 1, resp.TenantsInArrears)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, "overdue", resp.Rows[0].Status)
}

func TestArrearsOverviewPropertyNameFallbackChain(t *testing.T) {
	f := newArrearsFixture(t)

	// Payment points at a property that no longer exists; the tenant's
	// denormalized copy is the last resort.
	p := f.addPayment(t, 3000, 0, models.PaymentUnpaid)
	p.PropertyID = uuid.New()
	f.payments.byID[p.ID] = p

	f.tenant.PropertyName = "Old Grove"
	f.tenants.byID[f.tenant.ID] = f.tenant

	resp := f.svc.Overview(context.Background(), &f.landlordID)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, "Old Grove", resp.Rows[0].PropertyName)
}

func TestArrearsOverviewUnknownTenantRowStillReported(t *testing.T) {
	f := newArrearsFixture(t)
	p := f.addPayment(t, 2000, 0, models.PaymentUnpaid)
	p.TenantID = uuid.New()
	f.payments.byID[p.ID] = p

	resp := f.svc.Overview(context.Background(), &f.landlordID)
	require.Len(t, resp.Rows, 1)
	assert.Empty(t, resp.Rows[0].TenantName)
	// One visible tenant, but the debtor is someone else: paid-up count
	// clamps at zero instead of going negative.
	assert.Equal(t, 1, resp.TenantsInArrears)
	assert.Equal(t, 0, resp.TenantsPaidUp)
}

func TestArrearsOverviewFailsClosed(t *testing.T) {
	f := newArrearsFixture(t)
	f.addPayment(t, 10000, 0, models.PaymentUnpaid)
	f.payments.listErr = errors.New("timeout")

	resp := f.svc.Overview(context.Background(), &f.landlordID)
	assert.Equal(t, float64(0), resp.TotalDue)
	assert.Equal(t, float64(0), resp.TotalArrears)
	assert.Equal(t, 0, resp.TotalTenants)
	assert.Empty(t, resp.Rows)
}

func TestArrearsOverviewTenantFetchFailsClosed(t *testing.T) {
	f := newArrearsFixture(t)
	f.addPayment(t, 10000, 0, models.PaymentUnpaid)
	f.tenants.getErr = errors.New("timeout")

	resp := f.svc.Overview(context.Background(), &f.landlordID)
	assert.Empty(t, resp.Rows)
	assert.Equal(t, float64(0), resp.TotalDue)
}
