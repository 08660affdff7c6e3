package controllers

import (
	"net/http"

	"github.com/Brian-Masheti/rentowl-sub001/internal/dtos"
	"github.com/Brian-Masheti/rentowl-sub001/internal/services"
	"github.com/Brian-Masheti/rentowl-sub001/internal/utils"
)

type CaretakerController struct {
	caretakerService services.CaretakerService
}

func NewCaretakerController(cs services.CaretakerService) *CaretakerController {
	return &CaretakerController{caretakerService: cs}
}

// POST /api/v1/caretakers
func (c *CaretakerController) CreateCaretakerHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateCaretakerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	caretaker, err := c.caretakerService.Create(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, caretaker)
}

// GET /api/v1/caretakers
func (c *CaretakerController) ListCaretakersHandler(w http.ResponseWriter, r *http.Request) {
	caretakers, err := c.caretakerService.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, caretakers)
}

// GET /api/v1/caretakers/{caretakerId}
func (c *CaretakerController) GetCaretakerHandler(w http.ResponseWriter, r *http.Request) {
	caretakerID, ok := pathUUID(w, r, "caretakerId")
	if !ok {
		return
	}

	caretaker, err := c.caretakerService.Get(r.Context(), caretakerID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, caretaker)
}

// PUT /api/v1/caretakers/{caretakerId}/active
func (c *CaretakerController) SetCaretakerActiveHandler(w http.ResponseWriter, r *http.Request) {
	caretakerID, ok := pathUUID(w, r, "caretakerId")
	if !ok {
		return
	}

	var req dtos.SetCaretakerActiveRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := c.caretakerService.SetActive(r.Context(), caretakerID, *req.IsActive); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
