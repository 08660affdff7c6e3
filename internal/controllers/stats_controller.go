package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/Brian-Masheti/rentowl-sub001/internal/dtos"
	"github.com/Brian-Masheti/rentowl-sub001/internal/middleware"
	"github.com/Brian-Masheti/rentowl-sub001/internal/services"
	"github.com/Brian-Masheti/rentowl-sub001/internal/utils"
)

type StatsController struct {
	occupancyService services.OccupancyService
	arrearsService   services.ArrearsService
	reminderService  services.ReminderService
}

func NewStatsController(
	os services.OccupancyService,
	as services.ArrearsService,
	rs services.ReminderService,
) *StatsController {
	return &StatsController{
		occupancyService: os,
		arrearsService:   as,
		reminderService:  rs,
	}
}

// ----------------------------------------------------------------
// GET /api/v1/stats/occupancy
// ----------------------------------------------------------------
// Landlords see their own portfolio; admins see everything.
func (c *StatsController) OccupancyHandler(w http.ResponseWriter, r *http.Request) {
	scope, ok := statsScope(w, r)
	if !ok {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, c.occupancyService.Overview(r.Context(), scope))
}

// ----------------------------------------------------------------
// GET /api/v1/stats/arrears
// ----------------------------------------------------------------
func (c *StatsController) ArrearsHandler(w http.ResponseWriter, r *http.Request) {
	scope, ok := statsScope(w, r)
	if !ok {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, c.arrearsService.Overview(r.Context(), scope))
}

// ----------------------------------------------------------------
// POST /api/v1/stats/arrears/remind
// ----------------------------------------------------------------
func (c *StatsController) TriggerRemindersHandler(w http.ResponseWriter, r *http.Request) {
	sent, err := c.reminderService.SendArrearsReminders(r.Context())
	if err != nil {
		utils.Logger.WithError(err).Error("Manual arrears reminder run failed")
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.RemindersTriggeredResponse{RemindersSent: sent})
}

// statsScope returns the landlord UUID to aggregate over, or nil for
// an admin caller who gets the unscoped view.
func statsScope(w http.ResponseWriter, r *http.Request) (*uuid.UUID, bool) {
	if role, _ := r.Context().Value(middleware.ContextKeyRole).(string); role == "admin" {
		return nil, true
	}
	id, ok := requireUserID(w, r)
	if !ok {
		return nil, false
	}
	return &id, true
}
