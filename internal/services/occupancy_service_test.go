package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brian-Masheti/rentowl-sub001/internal/models"
)

func unit(unitType string, occupied bool) models.Unit {
	u := models.Unit{
		ID:     uuid.New(),
		Type:   unitType,
		Rent:   10000,
		Status: models.UnitVacant,
		State:  models.StateActive,
	}
	if occupied {
		tid := uuid.New()
		u.Status = models.UnitOccupied
		u.TenantID = &tid
	}
	return u
}

func TestOccupancyOverviewMixedProperty(t *testing.T) {
	repo := newFakePropertyRepo()
	landlordID := uuid.New()

	p := &models.Property{
		ID:         uuid.New(),
		LandlordID: landlordID,
		Name:       "Sunrise Court",
		Floors: []models.Floor{
			{
				Label: "Ground",
				State: models.StateActive,
				Units: []models.Unit{
					unit("Bedsitter", false),
					unit("Bedsitter", false),
					unit("Bedsitter", false),
				},
			},
			{
				Label: "First",
				State: models.StateActive,
				Units: []models.Unit{
					unit("Studio", true),
					unit("Studio", false),
				},
			},
		},
	}
	require.NoError(t, repo.Create(context.Background(), p))

	svc := NewOccupancyService(repo)
	resp := svc.Overview(context.Background(), &landlordID)

	assert.Equal(t, 5, resp.TotalUnits)
	assert.Equal(t, 1, resp.OccupiedUnits)
	assert.Equal(t, 4, resp.VacantUnits)

	require.Len(t, resp.Properties, 1)
	po := resp.Properties[0]
	assert.Equal(t, p.ID, po.PropertyID)
	assert.Equal(t, "Sunrise Court", po.Name)
	assert.Equal(t, 20, po.OccupiedPercent)
	assert.True(t, po.Mixed)

	require.Len(t, po.UnitTypes, 2)
	assert.Equal(t, "Bedsitter", po.UnitTypes[0].Type)
	assert.Equal(t, 3, po.UnitTypes[0].Total)
	assert.Equal(t, 0, po.UnitTypes[0].Occupied)
	assert.Equal(t, 0, po.UnitTypes[0].OccupiedPercent)
	assert.Equal(t, "Studio", po.UnitTypes[1].Type)
	assert.Equal(t, 2, po.UnitTypes[1].Total)
	assert.Equal(t, 1, po.UnitTypes[1].Occupied)
	assert.Equal(t, 50, po.UnitTypes[1].OccupiedPercent)
}

func TestOccupancyOverviewSkipsDeletedFloorsAndUnits(t *testing.T) {
	repo := newFakePropertyRepo()
	landlordID := uuid.New()

	deletedUnit := unit("Studio", true)
	deletedUnit.State = models.StateDeleted

	p := &models.Property{
		ID:         uuid.New(),
		LandlordID: landlordID,
		Name:       "Hillview",
		Floors: []models.Floor{
			{
				Label: "Ground",
				State: models.StateActive,
				Units: []models.Unit{unit("Studio", true), deletedUnit},
			},
			{
				Label: "First",
				State: models.StateDeleted,
				Units: []models.Unit{unit("Studio", false)},
			},
		},
	}
	require.NoError(t, repo.Create(context.Background(), p))

	resp := NewOccupancyService(repo).Overview(context.Background(), &landlordID)
	assert.Equal(t, 1, resp.TotalUnits)
	assert.Equal(t, 1, resp.OccupiedUnits)
	assert.False(t, resp.Properties[0].Mixed)
}

func TestOccupancyOverviewZeroUnits(t *testing.T) {
	repo := newFakePropertyRepo()
	landlordID := uuid.New()

	require.NoError(t, repo.Create(context.Background(), &models.Property{
		ID:         uuid.New(),
		LandlordID: landlordID,
		Name:       "Empty Lot",
		Floors:     []models.Floor{},
	}))

	resp := NewOccupancyService(repo).Overview(context.Background(), &landlordID)
	require.Len(t, resp.Properties, 1)
	assert.Equal(t, 0, resp.Properties[0].OccupiedPercent)
	assert.Equal(t, 0, resp.TotalUnits)
}

func TestOccupancyOverviewIdempotent(t *testing.T) {
	repo := newFakePropertyRepo()
	landlordID := uuid.New()
	require.NoError(t, repo.Create(context.Background(), &models.Property{
		ID:         uuid.New(),
		LandlordID: landlordID,
		Name:       "Stable",
		Floors: []models.Floor{
			{Label: "Ground", State: models.StateActive, Units: []models.Unit{unit("Loft", true)}},
		},
	}))

	svc := NewOccupancyService(repo)
	first := svc.Overview(context.Background(), &landlordID)
	second := svc.Overview(context.Background(), &landlordID)
	assert.Equal(t, first, second)
}

func TestOccupancyOverviewFailsClosed(t *testing.T) {
	repo := newFakePropertyRepo()
	repo.listErr = errors.New("connection reset")
	landlordID := uuid.New()

	resp := NewOccupancyService(repo).Overview(context.Background(), &landlordID)
	assert.Equal(t, 0, resp.TotalUnits)
	assert.Equal(t, 0, resp.OccupiedUnits)
	assert.Empty(t, resp.Properties)
}

func TestPercentRounding(t *testing.T) {
	assert.Equal(t, 0, percent(0, 0))
	assert.Equal(t, 50, percent(1, 2))
	assert.Equal(t, 33, percent(1, 3))
	assert.Equal(t, 67, percent(2, 3))
	assert.Equal(t, 17, percent(1, 6))
	assert.Equal(t, 13, percent(1, 8)) // 12.5 rounds up
	assert.Equal(t, 100, percent(5, 5))
}
