package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/Brian-Masheti/rentowl-sub001/internal/dtos"
	"github.com/Brian-Masheti/rentowl-sub001/internal/services"
	"github.com/Brian-Masheti/rentowl-sub001/internal/utils"
)

type TenantController struct {
	tenantService services.TenantService
}

func NewTenantController(ts services.TenantService) *TenantController {
	return &TenantController{tenantService: ts}
}

// POST /api/v1/tenants
func (c *TenantController) CreateTenantHandler(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req dtos.CreateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	// The authenticated landlord owns the new tenant.
	req.LandlordID = landlordID
	if err := propertyValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil)
		return
	}

	tenant, err := c.tenantService.Create(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, tenant)
}

// GET /api/v1/tenants
func (c *TenantController) ListTenantsHandler(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	tenants, err := c.tenantService.ListByLandlord(r.Context(), landlordID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tenants)
}

// GET /api/v1/tenants/{tenantId}
func (c *TenantController) GetTenantHandler(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := pathUUID(w, r, "tenantId")
	if !ok {
		return
	}

	tenant, err := c.tenantService.Get(r.Context(), tenantID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tenant)
}

// DELETE /api/v1/tenants/{tenantId}
func (c *TenantController) DeleteTenantHandler(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := pathUUID(w, r, "tenantId")
	if !ok {
		return
	}

	if err := c.tenantService.SoftDelete(r.Context(), tenantID); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/tenants/{tenantId}/payments
func (c *TenantController) CreatePaymentHandler(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := pathUUID(w, r, "tenantId")
	if !ok {
		return
	}

	var req dtos.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	// The path is authoritative for the owning tenant.
	req.TenantID = tenantID
	if err := propertyValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil)
		return
	}

	payment, err := c.tenantService.CreatePayment(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, payment)
}

// POST /api/v1/payments/{paymentId}/record
func (c *TenantController) RecordPaymentHandler(w http.ResponseWriter, r *http.Request) {
	paymentID, ok := pathUUID(w, r, "paymentId")
	if !ok {
		return
	}

	var req dtos.RecordPaymentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := c.tenantService.RecordPayment(r.Context(), paymentID, req.Amount); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}
