package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brian-Masheti/rentowl-sub001/internal/dtos"
	"github.com/Brian-Masheti/rentowl-sub001/internal/models"
	"github.com/Brian-Masheti/rentowl-sub001/internal/repositories"
	"github.com/Brian-Masheti/rentowl-sub001/internal/utils"
)

type actionFixture struct {
	actions    *fakeActionRepo
	caretakers *fakeCaretakerRepo
	feed       *fakeFeed
	svc        CaretakerActionService
	caretaker  *models.Caretaker
}

func newActionFixture(t *testing.T) *actionFixture {
	t.Helper()
	f := &actionFixture{
		actions:    &fakeActionRepo{},
		caretakers: newFakeCaretakerRepo(),
		feed:       &fakeFeed{},
	}
	f.svc = NewCaretakerActionService(f.actions, f.caretakers, f.feed)

	f.caretaker = &models.Caretaker{
		ID:        uuid.New(),
		FirstName: "Otieno",
		LastName:  "Ouma",
		IsActive:  true,
	}
	require.NoError(t, f.caretakers.Create(context.Background(), f.caretaker))
	return f
}

func (f *actionFixture) log(t *testing.T, actionType, status, desc string) *models.CaretakerAction {
	t.Helper()
	a, err := f.svc.Log(context.Background(), dtos.LogActionRequest{
		CaretakerID: f.caretaker.ID,
		ActionType:  actionType,
		Status:      status,
		Description: desc,
	})
	require.NoError(t, err)
	return a
}

func TestLogActionPublishesToFeed(t *testing.T) {
	f := newActionFixture(t)
	a := f.log(t, "maintenance_update", "pending", "Fixed leaking tap in GB1")

	assert.Equal(t, models.ActionType("maintenance_update"), a.ActionType)
	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.False(t, a.CreatedAt.IsZero())

	require.Len(t, f.actions.entries, 1)
	require.Len(t, f.feed.published, 1)
	assert.Equal(t, a.ID, f.feed.published[0].ID)
}

func TestLogActionRejectsUnknownOrInactiveCaretaker(t *testing.T) {
	f := newActionFixture(t)

	_, err := f.svc.Log(context.Background(), dtos.LogActionRequest{
		CaretakerID: uuid.New(),
		ActionType:  "other",
		Status:      "completed",
		Description: "x",
	})
	assert.ErrorIs(t, err, utils.ErrCaretakerNotFound)

	require.NoError(t, f.caretakers.SetActive(context.Background(), f.caretaker.ID, false))
	_, err = f.svc.Log(context.Background(), dtos.LogActionRequest{
		CaretakerID: f.caretaker.ID,
		ActionType:  "other",
		Status:      "completed",
		Description: "x",
	})
	assert.ErrorIs(t, err, utils.ErrCaretakerInactive)
	assert.Empty(t, f.actions.entries)
	assert.Empty(t, f.feed.published)
}

func TestQueryActionsCombinesFiltersWithAND(t *testing.T) {
	f := newActionFixture(t)
	f.log(t, "maintenance_update", "pending", "Leaking tap")
	f.log(t, "maintenance_update", "completed", "Leaking roof repaired")
	f.log(t, "announcement_sent", "completed", "Water outage notice")

	got, err := f.svc.Query(context.Background(), repositories.ActionFilter{
		ActionType: "maintenance_update",
		Status:     "completed",
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Leaking roof repaired", got[0].Description)

	got, err = f.svc.Query(context.Background(), repositories.ActionFilter{Search: "leaking"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = f.svc.Query(context.Background(), repositories.ActionFilter{})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestExportCSVMatchesQuery(t *testing.T) {
	f := newActionFixture(t)
	f.log(t, "maintenance_update", "pending", "Leaking tap")
	f.log(t, "announcement_sent", "completed", "Water outage notice")

	filter := repositories.ActionFilter{ActionType: "maintenance_update"}
	queried, err := f.svc.Query(context.Background(), filter)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.svc.ExportCSV(context.Background(), filter, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1+len(queried))
	assert.Equal(t, []string{"id", "caretaker_id", "property_id", "action_type", "status", "description", "created_at"}, records[0])
	assert.Equal(t, queried[0].ID.String(), records[1][0])
	assert.Equal(t, "maintenance_update", records[1][3])
	assert.Equal(t, "Leaking tap", records[1][5])
}

func TestExportCSVEmptyResultStillWritesHeader(t *testing.T) {
	f := newActionFixture(t)

	var buf bytes.Buffer
	require.NoError(t, f.svc.ExportCSV(context.Background(), repositories.ActionFilter{}, &buf))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestParseActionFilter(t *testing.T) {
	caretakerID := uuid.New()
	f, err := ParseActionFilter(map[string]string{
		"search":      "tap",
		"caretakerId": caretakerID.String(),
		"actionType":  "maintenance_update",
		"status":      "pending",
		"from":        "2026-08-01T00:00:00Z",
		"to":          "2026-08-31T23:59:59Z",
	})
	require.NoError(t, err)
	assert.Equal(t, "tap", f.Search)
	require.NotNil(t, f.CaretakerID)
	assert.Equal(t, caretakerID, *f.CaretakerID)
	assert.Equal(t, models.ActionType("maintenance_update"), f.ActionType)
	assert.Equal(t, models.ActionStatus("pending"), f.Status)
	require.NotNil(t, f.From)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), f.From.UTC())

	_, err = ParseActionFilter(map[string]string{"actionType": "bogus"})
	assert.Error(t, err)

	_, err = ParseActionFilter(map[string]string{"caretakerId": "not-a-uuid"})
	assert.Error(t, err)

	_, err = ParseActionFilter(map[string]string{"from": "yesterday"})
	assert.Error(t, err)
}
