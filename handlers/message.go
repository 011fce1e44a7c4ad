// Package handlers — MessageHandler: grup mesajlaşması endpoint'leri.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/yalcinkaya/fitcircle/models"
	"github.com/yalcinkaya/fitcircle/pkg"
	"github.com/yalcinkaya/fitcircle/services"
)

// MessageHandler, mesaj endpoint'lerini yöneten struct.
type MessageHandler struct {
	messageService services.MessageService
}

// NewMessageHandler, constructor.
func NewMessageHandler(messageService services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// List godoc
// GET /api/groups/{groupId}/messages?before={messageId}&limit={n}
//
// Cursor pagination: before verilmezse en yeni sayfa döner.
// Response'taki oldest_message_id bir sonraki sayfanın cursor'ıdır.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	page, err := h.messageService.GetMessages(
		r.Context(),
		r.PathValue("groupId"),
		user.ID,
		r.URL.Query().Get("before"),
		limit,
	)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, page)
}

// Send godoc
// POST /api/groups/{groupId}/messages
// Body: { "content": "...", "reply_to_id": "..." }
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message, err := h.messageService.SendMessage(r.Context(), r.PathValue("groupId"), user.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, message)
}

// Edit godoc
// PATCH /api/messages/{messageId}
// Body: { "content": "..." }
func (h *MessageHandler) Edit(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.EditMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message, err := h.messageService.EditMessage(r.Context(), r.PathValue("messageId"), user.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, message)
}

// Delete godoc
// DELETE /api/messages/{messageId}
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	if err := h.messageService.DeleteMessage(r.Context(), r.PathValue("messageId"), user.ID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "message deleted"})
}
