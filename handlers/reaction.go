// Package handlers — ReactionHandler: mesaj reaction endpoint'leri.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/yalcinkaya/fitcircle/models"
	"github.com/yalcinkaya/fitcircle/pkg"
	"github.com/yalcinkaya/fitcircle/services"
)

// ReactionHandler, reaction endpoint'lerini yöneten struct.
type ReactionHandler struct {
	reactionService services.ReactionService
}

// NewReactionHandler, constructor.
func NewReactionHandler(reactionService services.ReactionService) *ReactionHandler {
	return &ReactionHandler{reactionService: reactionService}
}

// Toggle godoc
// POST /api/messages/{messageId}/reactions
// Body: { "emoji": "👍" }
//
// Toggle semantiği: emoji yoksa eklenir, varsa kaldırılır.
// Response'taki result alanı "added" veya "removed" döner.
func (h *ReactionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req struct {
		Emoji string `json:"emoji"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.reactionService.Toggle(r.Context(), r.PathValue("messageId"), user.ID, req.Emoji)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]any{"result": result})
}

// List godoc
// GET /api/messages/{messageId}/reactions
func (h *ReactionHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	groups, err := h.reactionService.GetForMessage(r.Context(), r.PathValue("messageId"), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, groups)
}
