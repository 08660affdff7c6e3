package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Brian-Masheti/rentowl-sub001/internal/dtos"
	"github.com/Brian-Masheti/rentowl-sub001/internal/models"
	"github.com/Brian-Masheti/rentowl-sub001/internal/repositories"
	"github.com/Brian-Masheti/rentowl-sub001/internal/utils"
)

// PropertyService owns every mutation of the embedded floor→unit tree.
// All writes go through the row_version CAS retry loop, so two admins
// editing the same property can never silently clobber each other.
//
// It also keeps the occupied⇔tenant invariant: a unit's status and its
// tenant reference always flip together, in the same property write.
type PropertyService interface {
	Create(ctx context.Context, landlordID uuid.UUID, in dtos.CreatePropertyRequest) (*models.Property, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Property, error)
	ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*models.Property, error)
	UpdateDetails(ctx context.Context, id uuid.UUID, in dtos.UpdatePropertyRequest) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	AddFloor(ctx context.Context, propertyID uuid.UUID, spec dtos.NewFloorSpec) error
	RemoveFloor(ctx context.Context, propertyID uuid.UUID, floorLabel string) error
	AddUnits(ctx context.Context, propertyID uuid.UUID, in dtos.AddUnitsRequest) error
	UpdateUnit(ctx context.Context, propertyID, unitID uuid.UUID, in dtos.UpdateUnitRequest) error
	RemoveUnit(ctx context.Context, propertyID, unitID uuid.UUID) error

	AssignTenant(ctx context.Context, propertyID, unitID, tenantID uuid.UUID) error
	VacateUnit(ctx context.Context, propertyID, unitID uuid.UUID) error
	AssignCaretaker(ctx context.Context, propertyID, caretakerID uuid.UUID) error
}

type propertyService struct {
	propRepo      repositories.PropertyRepository
	tenantRepo    repositories.TenantRepository
	caretakerRepo repositories.CaretakerRepository
}

func NewPropertyService(
	propRepo repositories.PropertyRepository,
	tenantRepo repositories.TenantRepository,
	caretakerRepo repositories.CaretakerRepository,
) PropertyService {
	return &propertyService{
		propRepo:      propRepo,
		tenantRepo:    tenantRepo,
		caretakerRepo: caretakerRepo,
	}
}

/* ------------------------------------------------------------------
   Property lifecycle
------------------------------------------------------------------ */

func (s *propertyService) Create(ctx context.Context, landlordID uuid.UUID, in dtos.CreatePropertyRequest) (*models.Property, error) {
	if in.CaretakerID != nil {
		if err := s.requireActiveCaretaker(ctx, *in.CaretakerID); err != nil {
			return nil, err
		}
	}

	p := &models.Property{
		ID:          uuid.New(),
		LandlordID:  landlordID,
		CaretakerID: in.CaretakerID,
		Name:        in.Name,
		Address:     in.Address,
		Description: in.Description,
		Images:      in.Images,
		Floors:      []models.Floor{},
	}
	for _, spec := range in.Floors {
		if err := addFloor(p, spec); err != nil {
			return nil, err
		}
	}
	if err := s.propRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *propertyService) Get(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	p, err := s.propRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, utils.ErrPropertyNotFound
	}
	return p, nil
}

func (s *propertyService) ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*models.Property, error) {
	return s.propRepo.ListByLandlordID(ctx, landlordID)
}

func (s *propertyService) UpdateDetails(ctx context.Context, id uuid.UUID, in dtos.UpdatePropertyRequest) error {
	return s.propRepo.UpdateWithRetry(ctx, id, func(p *models.Property) error {
		if in.Name != nil {
			p.Name = *in.Name
		}
		if in.Address != nil {
			p.Address = *in.Address
		}
		if in.Description != nil {
			p.Description = *in.Description
		}
		if in.Images != nil {
			p.Images = in.Images
		}
		return nil
	})
}

func (s *propertyService) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return s.propRepo.SoftDelete(ctx, id)
}

/* ------------------------------------------------------------------
   Floor / unit mutations
------------------------------------------------------------------ */

func (s *propertyService) AddFloor(ctx context.Context, propertyID uuid.UUID, spec dtos.NewFloorSpec) error {
	return s.propRepo.UpdateWithRetry(ctx, propertyID, func(p *models.Property) error {
		return addFloor(p, spec)
	})
}

func (s *propertyService) RemoveFloor(ctx context.Context, propertyID uuid.UUID, floorLabel string) error {
	return s.propRepo.UpdateWithRetry(ctx, propertyID, func(p *models.Property) error {
		fi := findFloor(p, floorLabel)
		if fi < 0 {
			return utils.ErrFloorNotFound
		}
		for _, u := range p.Floors[fi].Units {
			if u.State != models.StateDeleted && u.Occupied() {
				return utils.ErrUnitOccupied
			}
		}
		p.Floors[fi].State = models.StateDeleted
		return nil
	})
}

func (s *propertyService) AddUnits(ctx context.Context, propertyID uuid.UUID, in dtos.AddUnitsRequest) error {
	return s.propRepo.UpdateWithRetry(ctx, propertyID, func(p *models.Property) error {
		fi := findFloor(p, in.FloorLabel)
		if fi < 0 {
			return utils.ErrFloorNotFound
		}
		return generateUnits(p, fi, in.UnitType, in.Rent, in.Count)
	})
}

func (s *propertyService) UpdateUnit(ctx context.Context, propertyID, unitID uuid.UUID, in dtos.UpdateUnitRequest) error {
	var (
		occupantID *uuid.UUID
		floorLabel string
		unit       models.Unit
	)
	err := s.propRepo.UpdateWithRetry(ctx, propertyID, func(p *models.Property) error {
		fi, ui := findUnit(p, unitID)
		if fi < 0 {
			return utils.ErrUnitNotFound
		}
		u := &p.Floors[fi].Units[ui]
		if in.Label != nil && *in.Label != u.Label {
			if labelTaken(p, *in.Label) {
				return utils.ErrUnitLabelTaken
			}
			u.Label = *in.Label
		}
		if in.Type != nil {
			u.Type = *in.Type
		}
		if in.Rent != nil {
			u.Rent = *in.Rent
		}
		occupantID = u.TenantID
		floorLabel = p.Floors[fi].Label
		unit = *u
		return nil
	})
	if err != nil {
		return err
	}
	if occupantID == nil {
		return nil
	}
	// Rewrite the occupant's denormalized copy so it never drifts from
	// the unit record.
	return s.tenantRepo.UpdateWithRetry(ctx, *occupantID, func(t *models.Tenant) error {
		t.UnitType = unit.Type
		t.UnitLabel = unit.Label
		t.FloorLabel = floorLabel
		return nil
	})
}

func (s *propertyService) RemoveUnit(ctx context.Context, propertyID, unitID uuid.UUID) error {
	return s.propRepo.UpdateWithRetry(ctx, propertyID, func(p *models.Property) error {
		fi, ui := findUnit(p, unitID)
		if fi < 0 {
			return utils.ErrUnitNotFound
		}
		u := &p.Floors[fi].Units[ui]
		if u.Occupied() {
			return utils.ErrUnitOccupied
		}
		u.State = models.StateDeleted
		return nil
	})
}

/* ------------------------------------------------------------------
   Tenancy
------------------------------------------------------------------ */

func (s *propertyService) AssignTenant(ctx context.Context, propertyID, unitID, tenantID uuid.UUID) error {
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return err
	}
	if tenant == nil {
		return utils.ErrTenantNotFound
	}
	// A tenant holds at most one unit; the previous one must be
	// vacated before a new assignment.
	if tenant.PropertyID != nil {
		return utils.ErrTenantAssigned
	}

	var (
		propertyName string
		floorLabel   string
		unit         models.Unit
	)
	err = s.propRepo.UpdateWithRetry(ctx, propertyID, func(p *models.Property) error {
		fi, ui := findUnit(p, unitID)
		if fi < 0 {
			return utils.ErrUnitNotFound
		}
		u := &p.Floors[fi].Units[ui]
		if u.Occupied() {
			return utils.ErrUnitOccupied
		}
		// Status and tenant reference flip together, always.
		u.Status = models.UnitOccupied
		u.TenantID = &tenantID
		propertyName = p.Name
		floorLabel = p.Floors[fi].Label
		unit = *u
		return nil
	})
	if err != nil {
		return err
	}

	return s.tenantRepo.UpdateWithRetry(ctx, tenantID, func(t *models.Tenant) error {
		t.PropertyID = &propertyID
		t.PropertyName = propertyName
		t.UnitType = unit.Type
		t.FloorLabel = floorLabel
		t.UnitLabel = unit.Label
		return nil
	})
}

func (s *propertyService) VacateUnit(ctx context.Context, propertyID, unitID uuid.UUID) error {
	var occupantID *uuid.UUID
	err := s.propRepo.UpdateWithRetry(ctx, propertyID, func(p *models.Property) error {
		fi, ui := findUnit(p, unitID)
		if fi < 0 {
			return utils.ErrUnitNotFound
		}
		u := &p.Floors[fi].Units[ui]
		if !u.Occupied() {
			return utils.ErrUnitVacant
		}
		occupantID = u.TenantID
		u.Status = models.UnitVacant
		u.TenantID = nil
		return nil
	})
	if err != nil {
		return err
	}
	if occupantID == nil {
		return nil
	}
	return s.tenantRepo.UpdateWithRetry(ctx, *occupantID, func(t *models.Tenant) error {
		t.PropertyID = nil
		t.PropertyName = ""
		t.UnitType = ""
		t.FloorLabel = ""
		t.UnitLabel = ""
		return nil
	})
}

func (s *propertyService) AssignCaretaker(ctx context.Context, propertyID, caretakerID uuid.UUID) error {
	if err := s.requireActiveCaretaker(ctx, caretakerID); err != nil {
		return err
	}
	return s.propRepo.UpdateWithRetry(ctx, propertyID, func(p *models.Property) error {
		p.CaretakerID = &caretakerID
		return nil
	})
}

func (s *propertyService) requireActiveCaretaker(ctx context.Context, id uuid.UUID) error {
	c, err := s.caretakerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return utils.ErrCaretakerNotFound
	}
	if !c.IsActive {
		return utils.ErrCaretakerInactive
	}
	return nil
}

/* ------------------------------------------------------------------
   Tree helpers (pure, operate on an in-memory property)
------------------------------------------------------------------ */

func addFloor(p *models.Property, spec dtos.NewFloorSpec) error {
	// Non-empty floor labels are a precondition for label generation.
	label := strings.TrimSpace(spec.Label)
	if label == "" {
		return utils.ErrInvalidFloorLabel
	}
	if findFloor(p, label) >= 0 {
		return utils.ErrFloorLabelTaken
	}
	p.Floors = append(p.Floors, models.Floor{
		Label: label,
		State: models.StateActive,
		Units: []models.Unit{},
	})
	if spec.UnitCount > 0 {
		return generateUnits(p, len(p.Floors)-1, spec.UnitType, spec.Rent, spec.UnitCount)
	}
	return nil
}

// generateUnits bulk-creates count units of one type on a floor. The
// label index starts at the count of active same-type units and probes
// upward past any label still held by an active unit, so numbering
// keeps advancing even after mid-sequence removals leave gaps.
func generateUnits(p *models.Property, floorIdx int, unitType string, rent float64, count int) error {
	floor := &p.Floors[floorIdx]
	idx := 0
	for _, u := range floor.Units {
		if u.State != models.StateDeleted && u.Type == unitType {
			idx++
		}
	}
	for i := 0; i < count; i++ {
		label := utils.DeriveUnitLabel(floor.Label, unitType, idx)
		for labelTaken(p, label) {
			idx++
			label = utils.DeriveUnitLabel(floor.Label, unitType, idx)
		}
		idx++
		floor.Units = append(floor.Units, models.Unit{
			ID:     uuid.New(),
			Label:  label,
			Type:   unitType,
			Rent:   rent,
			Status: models.UnitVacant,
			State:  models.StateActive,
		})
	}
	return nil
}

func findFloor(p *models.Property, label string) int {
	for i := range p.Floors {
		if p.Floors[i].State != models.StateDeleted && p.Floors[i].Label == label {
			return i
		}
	}
	return -1
}

func findUnit(p *models.Property, unitID uuid.UUID) (int, int) {
	for fi := range p.Floors {
		if p.Floors[fi].State == models.StateDeleted {
			continue
		}
		for ui := range p.Floors[fi].Units {
			u := &p.Floors[fi].Units[ui]
			if u.State != models.StateDeleted && u.ID == unitID {
				return fi, ui
			}
		}
	}
	return -1, -1
}

// labelTaken checks label uniqueness among the property's active units.
func labelTaken(p *models.Property, label string) bool {
	for fi := range p.Floors {
		if p.Floors[fi].State == models.StateDeleted {
			continue
		}
		for ui := range p.Floors[fi].Units {
			u := &p.Floors[fi].Units[ui]
			if u.State != models.StateDeleted && u.Label == label {
				return true
			}
		}
	}
	return false
}
