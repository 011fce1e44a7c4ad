// Package main — HTTP route registration.
//
// initRoutes, tüm API endpoint'lerini mux'a bağlar.
// Middleware chain helper'ları burada tanımlıdır:
//   - auth: JWT token doğrulaması
//   - authGroup: auth + grup üyelik kontrolü
package main

import (
	"net/http"

	"github.com/yalcinkaya/fitcircle/middleware"
	"github.com/yalcinkaya/fitcircle/repository"
	"github.com/yalcinkaya/fitcircle/services"
)

// initRoutes, middleware chain'i kurar ve tüm endpoint'leri mux'a bağlar.
//
// Route sıralama kuralı: Literal path'ler parametrik path'lerden ÖNCE tanımlanmalı.
// Örnek: "/api/groups/join" → "/api/groups/{groupId}" öncesinde,
// yoksa Go router "join" kelimesini bir groupId olarak yorumlar.
func initRoutes(
	mux *http.ServeMux,
	h *Handlers,
	authService services.AuthService,
	userRepo repository.UserRepository,
	groupRepo repository.GroupRepository,
) {
	// ─── Middleware ───
	authMw := middleware.NewAuthMiddleware(authService, userRepo)
	groupMw := middleware.NewGroupMembershipMiddleware(groupRepo)

	// ─── Middleware Chain Helpers ───
	auth := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(http.HandlerFunc(handler))
	}
	authGroup := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(groupMw.Require(http.HandlerFunc(handler)))
	}

	// Auth — public endpoint'ler (token gerekmez)
	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/auth/refresh", h.Auth.Refresh)
	mux.HandleFunc("POST /api/auth/logout", h.Auth.Logout)

	// User
	mux.Handle("GET /api/users/me", auth(h.Auth.Me))
	mux.Handle("POST /api/users/me/password", auth(h.Auth.ChangePassword))

	// Activity — aktivite sinyali kayıtları + eligibility
	mux.Handle("POST /api/activity/steps", auth(h.Activity.LogSteps))
	mux.Handle("POST /api/activity/food", auth(h.Activity.LogFood))
	mux.Handle("POST /api/activity/training/{moduleId}/complete", auth(h.Activity.CompleteModule))
	mux.Handle("GET /api/activity/summary", auth(h.Activity.Summary))
	mux.Handle("GET /api/eligibility", auth(h.Activity.Eligibility))

	// Groups — literal path'ler önce
	mux.Handle("GET /api/groups", auth(h.Group.ListMine))
	mux.Handle("POST /api/groups", auth(h.Group.Create))
	mux.Handle("POST /api/groups/join", auth(h.Group.Join))
	mux.Handle("GET /api/groups/unread", auth(h.ReadState.UnreadCounts))

	// Groups — parametrik path'ler. Üyelik kontrolü service katmanında
	// yapılan endpoint'lerde sadece auth; grup içeriği dönen endpoint'lerde
	// authGroup (üye olmayana 403).
	mux.Handle("GET /api/groups/{groupId}", auth(h.Group.Get))
	mux.Handle("DELETE /api/groups/{groupId}", auth(h.Group.Delete))
	mux.Handle("GET /api/groups/{groupId}/members", auth(h.Group.Members))
	mux.Handle("POST /api/groups/{groupId}/leave", auth(h.Group.Leave))
	mux.Handle("DELETE /api/groups/{groupId}/members/{userId}", auth(h.Group.RemoveMember))
	mux.Handle("POST /api/groups/{groupId}/transfer", auth(h.Group.TransferOwnership))
	mux.Handle("PATCH /api/groups/{groupId}/settings", auth(h.Group.UpdateSettings))
	mux.Handle("POST /api/groups/{groupId}/invite", auth(h.Group.SendInvite))

	// Messages — grup üyeliği zorunlu
	mux.Handle("GET /api/groups/{groupId}/messages", authGroup(h.Message.List))
	mux.Handle("POST /api/groups/{groupId}/messages", authGroup(h.Message.Send))
	mux.Handle("PUT /api/groups/{groupId}/read", authGroup(h.ReadState.MarkRead))

	// Message-level operasyonlar — grup, mesajdan çözülür; üyelik kontrolü
	// service katmanında yapılır
	mux.Handle("PATCH /api/messages/{messageId}", auth(h.Message.Edit))
	mux.Handle("DELETE /api/messages/{messageId}", auth(h.Message.Delete))
	mux.Handle("POST /api/messages/{messageId}/reactions", auth(h.Reaction.Toggle))
	mux.Handle("GET /api/messages/{messageId}/reactions", auth(h.Reaction.List))
}
