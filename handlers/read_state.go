// Package handlers — ReadStateHandler: okuma durumu endpoint'leri.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/yalcinkaya/fitcircle/models"
	"github.com/yalcinkaya/fitcircle/pkg"
	"github.com/yalcinkaya/fitcircle/services"
)

// ReadStateHandler, okuma durumu endpoint'lerini yöneten struct.
type ReadStateHandler struct {
	readStateService services.ReadStateService
}

// NewReadStateHandler, constructor.
func NewReadStateHandler(readStateService services.ReadStateService) *ReadStateHandler {
	return &ReadStateHandler{readStateService: readStateService}
}

// MarkRead godoc
// PUT /api/groups/{groupId}/read
// Body: { "message_id": "..." }
//
// Watermark pattern: "bu mesaja kadar okudum" bilgisi güncellenir.
func (h *ReadStateHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req struct {
		MessageID string `json:"message_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.MessageID == "" {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "message_id is required")
		return
	}

	state, err := h.readStateService.MarkRead(r.Context(), r.PathValue("groupId"), user.ID, req.MessageID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, state)
}

// UnreadCounts godoc
// GET /api/groups/unread
// Kullanıcının tüm gruplarındaki okunmamış mesaj sayıları — grup listesi
// badge'leri için tek istek.
func (h *ReadStateHandler) UnreadCounts(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	counts, err := h.readStateService.GetUnreadCounts(r.Context(), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, counts)
}
