package controllers

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v4"

	"github.com/Brian-Masheti/rentowl-sub001/internal/utils"
)

// respondServiceError translates the service layer's sentinel errors
// into stable HTTP codes. Anything unrecognized is a 500 with the raw
// error kept server-side.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, utils.ErrPropertyNotFound),
		errors.Is(err, utils.ErrFloorNotFound),
		errors.Is(err, utils.ErrUnitNotFound),
		errors.Is(err, utils.ErrTenantNotFound),
		errors.Is(err, utils.ErrCaretakerNotFound),
		errors.Is(err, pgx.ErrNoRows):
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), nil)

	case errors.Is(err, utils.ErrInvalidFloorLabel):
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil)

	case errors.Is(err, utils.ErrUnitOccupied):
		utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeUnitOccupied, "Unit is occupied", nil)

	case errors.Is(err, utils.ErrUnitVacant):
		utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeUnitVacant, "Unit is vacant", nil)

	case errors.Is(err, utils.ErrUnitLabelTaken):
		utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeLabelTaken, "Unit label already in use", nil)

	case errors.Is(err, utils.ErrTenantAssigned):
		utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeTenantAssigned, "Tenant already holds a unit", nil)

	case errors.Is(err, utils.ErrFloorLabelTaken):
		utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeConflict, "Floor label already in use", nil)

	case errors.Is(err, utils.ErrCaretakerInactive):
		utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeCaretakerInactive, "Caretaker is not active", nil)

	case errors.Is(err, utils.ErrRowVersionConflict):
		utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeRowVersionConflict, "Concurrent update, please retry", nil)

	default:
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Internal server error", nil, err)
	}
}
