// Package handlers — ActivityHandler: aktivite kaydı endpoint'leri.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/yalcinkaya/fitcircle/models"
	"github.com/yalcinkaya/fitcircle/pkg"
	"github.com/yalcinkaya/fitcircle/services"
)

// ActivityHandler, aktivite endpoint'lerini yöneten struct.
type ActivityHandler struct {
	activityService    services.ActivityService
	eligibilityService services.EligibilityService
}

// NewActivityHandler, constructor.
func NewActivityHandler(activityService services.ActivityService, eligibilityService services.EligibilityService) *ActivityHandler {
	return &ActivityHandler{
		activityService:    activityService,
		eligibilityService: eligibilityService,
	}
}

// LogSteps godoc
// POST /api/activity/steps
// Body: { "date": "2026-08-26", "steps": 9500 } — date boşsa bugün
func (h *ActivityHandler) LogSteps(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.LogStepsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.activityService.LogSteps(r.Context(), user.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, entry)
}

// LogFood godoc
// POST /api/activity/food
func (h *ActivityHandler) LogFood(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.LogFoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.activityService.LogFood(r.Context(), user.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, entry)
}

// CompleteModule godoc
// POST /api/activity/training/{moduleId}/complete
func (h *ActivityHandler) CompleteModule(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	moduleID, err := strconv.Atoi(r.PathValue("moduleId"))
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid module id")
		return
	}

	if err := h.activityService.CompleteTrainingModule(r.Context(), user.ID, moduleID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "module completed"})
}

// Summary godoc
// GET /api/activity/summary
func (h *ActivityHandler) Summary(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	summary, err := h.activityService.GetSummary(r.Context(), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, summary)
}

// Eligibility godoc
// GET /api/eligibility
// Her çağrıda aktivite sinyallerinden yeniden hesaplanır — cache yok.
func (h *ActivityHandler) Eligibility(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	check, err := h.eligibilityService.Check(r.Context(), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, check)
}
