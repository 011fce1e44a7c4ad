// Package handlers — GroupHandler: grup yönetimi endpoint'leri.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/yalcinkaya/fitcircle/models"
	"github.com/yalcinkaya/fitcircle/pkg"
	"github.com/yalcinkaya/fitcircle/services"
)

// GroupHandler, grup endpoint'lerini yöneten struct.
type GroupHandler struct {
	groupService services.GroupService
}

// NewGroupHandler, constructor.
func NewGroupHandler(groupService services.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

// Create godoc
// POST /api/groups
// Eligibility kontrolünden geçemeyen kullanıcıya 403 döner.
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	group, err := h.groupService.CreateGroup(r.Context(), user.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, group)
}

// ListMine godoc
// GET /api/groups
func (h *GroupHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	groups, err := h.groupService.GetUserGroups(r.Context(), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, groups)
}

// Join godoc
// POST /api/groups/join
// Body: { "invite_code": "ABC-123", "message": "merhaba!" }
func (h *GroupHandler) Join(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.JoinGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	group, err := h.groupService.JoinGroup(r.Context(), user.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, group)
}

// Get godoc
// GET /api/groups/{groupId}
func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	group, err := h.groupService.GetGroup(r.Context(), r.PathValue("groupId"), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, group)
}

// Members godoc
// GET /api/groups/{groupId}/members
func (h *GroupHandler) Members(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	members, err := h.groupService.ListMembers(r.Context(), r.PathValue("groupId"), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, members)
}

// Leave godoc
// POST /api/groups/{groupId}/leave
// Body (opsiyonel): { "reason": "..." }
func (h *GroupHandler) Leave(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	// Body opsiyonel — decode hatasını yutmayız ama boş body'ye izin veririz
	var req models.LeaveGroupRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	if err := h.groupService.LeaveGroup(r.Context(), r.PathValue("groupId"), user.ID, &req); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "left the group"})
}

// RemoveMember godoc
// DELETE /api/groups/{groupId}/members/{userId}
func (h *GroupHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	err := h.groupService.RemoveMember(r.Context(), r.PathValue("groupId"), user.ID, r.PathValue("userId"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "member removed"})
}

// TransferOwnership godoc
// POST /api/groups/{groupId}/transfer
// Body: { "to_user_id": "..." }
func (h *GroupHandler) TransferOwnership(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.TransferOwnershipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.groupService.TransferOwnership(r.Context(), r.PathValue("groupId"), user.ID, &req); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "ownership transferred"})
}

// UpdateSettings godoc
// PATCH /api/groups/{groupId}/settings
func (h *GroupHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.UpdateGroupSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	group, err := h.groupService.UpdateSettings(r.Context(), r.PathValue("groupId"), user.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, group)
}

// Delete godoc
// DELETE /api/groups/{groupId}
func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	if err := h.groupService.DeleteGroup(r.Context(), r.PathValue("groupId"), user.ID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "group deleted"})
}

// SendInvite godoc
// POST /api/groups/{groupId}/invite
// Body: { "email": "friend@example.com" }
func (h *GroupHandler) SendInvite(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.InviteEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.groupService.SendInviteEmail(r.Context(), r.PathValue("groupId"), user.ID, &req); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "invite sent"})
}
