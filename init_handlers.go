// Package main — Handler katmanı başlatma.
package main

import (
	"github.com/yalcinkaya/fitcircle/handlers"
	"github.com/yalcinkaya/fitcircle/pkg/ratelimit"
)

// Handlers, tüm handler instance'larını tutan container struct.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Activity  *handlers.ActivityHandler
	Group     *handlers.GroupHandler
	Message   *handlers.MessageHandler
	Reaction  *handlers.ReactionHandler
	ReadState *handlers.ReadStateHandler
}

// initHandlers, service'lerden handler katmanını kurar.
func initHandlers(svcs *Services, loginLimiter *ratelimit.Limiter) *Handlers {
	return &Handlers{
		Auth:      handlers.NewAuthHandler(svcs.Auth, loginLimiter),
		Activity:  handlers.NewActivityHandler(svcs.Activity, svcs.Eligibility),
		Group:     handlers.NewGroupHandler(svcs.Group),
		Message:   handlers.NewMessageHandler(svcs.Message),
		Reaction:  handlers.NewReactionHandler(svcs.Reaction),
		ReadState: handlers.NewReadStateHandler(svcs.ReadState),
	}
}
