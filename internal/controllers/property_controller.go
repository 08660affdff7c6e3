package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/Brian-Masheti/rentowl-sub001/internal/dtos"
	"github.com/Brian-Masheti/rentowl-sub001/internal/middleware"
	"github.com/Brian-Masheti/rentowl-sub001/internal/services"
	"github.com/Brian-Masheti/rentowl-sub001/internal/utils"
)

var propertyValidate = validator.New()

type PropertyController struct {
	propertyService services.PropertyService
}

func NewPropertyController(ps services.PropertyService) *PropertyController {
	return &PropertyController{propertyService: ps}
}

// ----------------------------------------------------------------
// POST /api/v1/properties
// ----------------------------------------------------------------
func (c *PropertyController) CreatePropertyHandler(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req dtos.CreatePropertyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	property, err := c.propertyService.Create(r.Context(), landlordID, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, property)
}

// ----------------------------------------------------------------
// GET /api/v1/properties
// ----------------------------------------------------------------
func (c *PropertyController) ListPropertiesHandler(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	properties, err := c.propertyService.ListByLandlord(r.Context(), landlordID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, properties)
}

// ----------------------------------------------------------------
// GET /api/v1/properties/{propertyId}
// ----------------------------------------------------------------
func (c *PropertyController) GetPropertyHandler(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := pathUUID(w, r, "propertyId")
	if !ok {
		return
	}

	property, err := c.propertyService.Get(r.Context(), propertyID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, property)
}

// ----------------------------------------------------------------
// PATCH /api/v1/properties/{propertyId}
// ----------------------------------------------------------------
func (c *PropertyController) UpdatePropertyHandler(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := pathUUID(w, r, "propertyId")
	if !ok {
		return
	}

	var req dtos.UpdatePropertyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := c.propertyService.UpdateDetails(r.Context(), propertyID, req); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// ----------------------------------------------------------------
// DELETE /api/v1/properties/{propertyId}
// ----------------------------------------------------------------
func (c *PropertyController) DeletePropertyHandler(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := pathUUID(w, r, "propertyId")
	if !ok {
		return
	}

	if err := c.propertyService.SoftDelete(r.Context(), propertyID); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ----------------------------------------------------------------
// POST /api/v1/properties/{propertyId}/floors
// ----------------------------------------------------------------
func (c *PropertyController) AddFloorHandler(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := pathUUID(w, r, "propertyId")
	if !ok {
		return
	}

	var req dtos.AddFloorRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := c.propertyService.AddFloor(r.Context(), propertyID, req.NewFloorSpec); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

// ----------------------------------------------------------------
// DELETE /api/v1/properties/{propertyId}/floors/{floorLabel}
// ----------------------------------------------------------------
func (c *PropertyController) RemoveFloorHandler(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := pathUUID(w, r, "propertyId")
	if !ok {
		return
	}
	floorLabel := mux.Vars(r)["floorLabel"]

	if err := c.propertyService.RemoveFloor(r.Context(), propertyID, floorLabel); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ----------------------------------------------------------------
// POST /api/v1/properties/{propertyId}/floors/{floorLabel}/units
// ----------------------------------------------------------------
func (c *PropertyController) AddUnitsHandler(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := pathUUID(w, r, "propertyId")
	if !ok {
		return
	}

	var req dtos.AddUnitsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	// The path is authoritative for which floor gets the units.
	req.FloorLabel = mux.Vars(r)["floorLabel"]
	if err := propertyValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil)
		return
	}

	if err := c.propertyService.AddUnits(r.Context(), propertyID, req); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

// ----------------------------------------------------------------
// PATCH /api/v1/properties/{propertyId}/units/{unitId}
// ----------------------------------------------------------------
func (c *PropertyController) UpdateUnitHandler(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := pathUUID(w, r, "propertyId")
	if !ok {
		return
	}
	unitID, ok := pathUUID(w, r, "unitId")
	if !ok {
		return
	}

	var req dtos.UpdateUnitRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := c.propertyService.UpdateUnit(r.Context(), propertyID, unitID, req); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// ----------------------------------------------------------------
// DELETE /api/v1/properties/{propertyId}/units/{unitId}
// ----------------------------------------------------------------
func (c *PropertyController) RemoveUnitHandler(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := pathUUID(w, r, "propertyId")
	if !ok {
		return
	}
	unitID, ok := pathUUID(w, r, "unitId")
	if !ok {
		return
	}

	if err := c.propertyService.RemoveUnit(r.Context(), propertyID, unitID); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ----------------------------------------------------------------
// POST /api/v1/properties/{propertyId}/units/{unitId}/assign
// ----------------------------------------------------------------
func (c *PropertyController) AssignTenantHandler(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := pathUUID(w, r, "propertyId")
	if !ok {
		return
	}
	unitID, ok := pathUUID(w, r, "unitId")
	if !ok {
		return
	}

	var req dtos.AssignTenantRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := c.propertyService.AssignTenant(r.Context(), propertyID, unitID, req.TenantID); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "assigned"})
}

// ----------------------------------------------------------------
// POST /api/v1/properties/{propertyId}/units/{unitId}/vacate
// ----------------------------------------------------------------
func (c *PropertyController) VacateUnitHandler(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := pathUUID(w, r, "propertyId")
	if !ok {
		return
	}
	unitID, ok := pathUUID(w, r, "unitId")
	if !ok {
		return
	}

	if err := c.propertyService.VacateUnit(r.Context(), propertyID, unitID); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "vacated"})
}

// ----------------------------------------------------------------
// PUT /api/v1/properties/{propertyId}/caretaker
// ----------------------------------------------------------------
func (c *PropertyController) AssignCaretakerHandler(w http.ResponseWriter, r *http.Request) {
	propertyID, ok := pathUUID(w, r, "propertyId")
	if !ok {
		return
	}

	var req dtos.AssignCaretakerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := c.propertyService.AssignCaretaker(r.Context(), propertyID, req.CaretakerID); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "assigned"})
}

/* ------------------------------------------------------------------
   Shared request plumbing
------------------------------------------------------------------ */

// requireUserID pulls the authenticated subject out of the request
// context and parses it as the landlord's UUID.
func requireUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	ctxUserID := r.Context().Value(middleware.ContextKeyUserID)
	if ctxUserID == nil {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Missing userID in context", nil)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(ctxUserID.(string))
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Malformed subject", nil, err)
		return uuid.Nil, false
	}
	return id, true
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid "+name, nil, err)
		return uuid.Nil, false
	}
	return id, true
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return false
	}
	if err := propertyValidate.Struct(dst); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil)
		return false
	}
	return true
}
