package services

import (
	"context"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/Brian-Masheti/rentowl-sub001/internal/dtos"
	"github.com/Brian-Masheti/rentowl-sub001/internal/models"
	"github.com/Brian-Masheti/rentowl-sub001/internal/repositories"
	"github.com/Brian-Masheti/rentowl-sub001/internal/utils"
)

// OccupancyService computes the occupancy/vacancy view over the
// embedded floor→unit trees. Aggregation is read-only, computed fresh
// per call, and O(total units).
type OccupancyService interface {
	// Overview aggregates the landlord's properties, or every property
	// when landlordID is nil (super-admin scope). A failed property
	// fetch degrades to the zero-valued shape rather than partial
	// aggregates.
	Overview(ctx context.Context, landlordID *uuid.UUID) *dtos.OccupancyOverviewResponse
}

type occupancyService struct {
	propRepo repositories.PropertyRepository
}

func NewOccupancyService(propRepo repositories.PropertyRepository) OccupancyService {
	return &occupancyService{propRepo: propRepo}
}

func (s *occupancyService) Overview(ctx context.Context, landlordID *uuid.UUID) *dtos.OccupancyOverviewResponse {
	var (
		props []*models.Property
		err   error
	)
	if landlordID != nil {
		props, err = s.propRepo.ListByLandlordID(ctx, *landlordID)
	} else {
		props, err = s.propRepo.ListAll(ctx)
	}
	if err != nil {
		// Fail closed: never mix fresh and stale numbers.
		utils.Logger.WithError(err).Error("Occupancy aggregation: property fetch failed, reporting empty stats")
		return &dtos.OccupancyOverviewResponse{Properties: []dtos.PropertyOccupancy{}}
	}

	out := &dtos.OccupancyOverviewResponse{Properties: []dtos.PropertyOccupancy{}}
	for _, p := range props {
		po := aggregateProperty(p)
		out.TotalUnits += po.TotalUnits
		out.OccupiedUnits += po.OccupiedUnits
		out.VacantUnits += po.VacantUnits
		out.Properties = append(out.Properties, po)
	}
	return out
}

func aggregateProperty(p *models.Property) dtos.PropertyOccupancy {
	po := dtos.PropertyOccupancy{
		PropertyID: p.ID,
		Name:       p.Name,
		UnitTypes:  []dtos.UnitTypeStats{},
	}

	byType := map[string]*dtos.UnitTypeStats{}
	for _, f := range p.Floors {
		if f.State == models.StateDeleted {
			continue
		}
		for _, u := range f.Units {
			if u.State == models.StateDeleted {
				continue
			}
			ts, ok := byType[u.Type]
			if !ok {
				ts = &dtos.UnitTypeStats{Type: u.Type}
				byType[u.Type] = ts
			}
			po.TotalUnits++
			ts.Total++
			if u.Occupied() {
				po.OccupiedUnits++
				ts.Occupied++
			} else {
				po.VacantUnits++
				ts.Vacant++
			}
		}
	}

	po.OccupiedPercent = percent(po.OccupiedUnits, po.TotalUnits)
	po.Mixed = len(byType) > 1

	for _, ts := range byType {
		ts.OccupiedPercent = percent(ts.Occupied, ts.Total)
		po.UnitTypes = append(po.UnitTypes, *ts)
	}
	// Alphabetical for a stable wire shape; a display concern only.
	sort.Slice(po.UnitTypes, func(i, j int) bool {
		return po.UnitTypes[i].Type < po.UnitTypes[j].Type
	})
	return po
}

// percent is round-half-up; 0 when the denominator is 0.
func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Floor(float64(part)/float64(total)*100 + 0.5))
}
