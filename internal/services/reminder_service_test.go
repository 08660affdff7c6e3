package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brian-Masheti/rentowl-sub001/internal/models"
)

func TestRunOverdueSweepFlipsStaleUnpaid(t *testing.T) {
	payments := newFakePaymentRepo()
	tenants := newFakeTenantRepo()

	stale := &models.Payment{
		ID:       uuid.New(),
		TenantID: uuid.New(),
		Amount:   10000,
		DueDate:  time.Now().UTC().Add(-48 * time.Hour),
		Status:   models.PaymentUnpaid,
	}
	future := &models.Payment{
		ID:       uuid.New(),
		TenantID: uuid.New(),
		Amount:   10000,
		DueDate:  time.Now().UTC().Add(48 * time.Hour),
		Status:   models.PaymentUnpaid,
	}
	settled := &models.Payment{
		ID:         uuid.New(),
		TenantID:   uuid.New(),
		Amount:     10000,
		AmountPaid: 10000,
		DueDate:    time.Now().UTC().Add(-48 * time.Hour),
		Status:     models.PaymentPaid,
	}
	require.NoError(t, payments.Create(context.Background(), stale))
	require.NoError(t, payments.Create(context.Background(), future))
	require.NoError(t, payments.Create(context.Background(), settled))

	// No channel credentials: the sweep still runs, it just sends nothing.
	svc := NewReminderService(payments, tenants, ReminderConfig{})
	require.NoError(t, svc.RunOverdueSweep(context.Background()))

	assert.Equal(t, models.PaymentOverdue, payments.byID[stale.ID].Status)
	assert.Equal(t, models.PaymentUnpaid, payments.byID[future.ID].Status)
	assert.Equal(t, models.PaymentPaid, payments.byID[settled.ID].Status)
}

func TestSendArrearsRemindersWithoutChannels(t *testing.T) {
	payments := newFakePaymentRepo()
	tenants := newFakeTenantRepo()

	tenant := &models.Tenant{
		ID:        uuid.New(),
		FirstName: "Achieng",
		Email:     "achieng@example.com",
	}
	require.NoError(t, tenants.Create(context.Background(), tenant))
	require.NoError(t, payments.Create(context.Background(), &models.Payment{
		ID:       uuid.New(),
		TenantID: tenant.ID,
		Amount:   5000,
		DueDate:  time.Now().UTC().Add(-time.Hour),
		Status:   models.PaymentOverdue,
	}))

	svc := NewReminderService(payments, tenants, ReminderConfig{})
	sent, err := svc.SendArrearsReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
}

func TestSendArrearsRemindersSkipsUnknownTenants(t *testing.T) {
	payments := newFakePaymentRepo()
	tenants := newFakeTenantRepo()

	require.NoError(t, payments.Create(context.Background(), &models.Payment{
		ID:       uuid.New(),
		TenantID: uuid.New(), // no such tenant
		Amount:   5000,
		DueDate:  time.Now().UTC().Add(-time.Hour),
		Status:   models.PaymentOverdue,
	}))

	svc := NewReminderService(payments, tenants, ReminderConfig{})
	sent, err := svc.SendArrearsReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
}

func TestReminderBodyMentionsUnitWhenKnown(t *testing.T) {
	withUnit := &models.Tenant{
		FirstName:    "Achieng",
		PropertyName: "Sunrise Court",
		UnitLabel:    "GB1",
	}
	body := reminderBody(withUnit, 6000)
	assert.Contains(t, body, "GB1")
	assert.Contains(t, body, "Sunrise Court")
	assert.Contains(t, body, "6000.00")

	without := &models.Tenant{FirstName: "Achieng"}
	body = reminderBody(without, 6000)
	assert.NotContains(t, body, "GB1")
	assert.Contains(t, body, "6000.00")
}
