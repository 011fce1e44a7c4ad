// Package main — Service katmanı başlatma.
//
// initServices, tüm service'leri repository'ler ve config ile oluşturur.
package main

import (
	"database/sql"
	"log"
	"time"

	"github.com/yalcinkaya/fitcircle/config"
	"github.com/yalcinkaya/fitcircle/pkg/email"
	"github.com/yalcinkaya/fitcircle/pkg/ratelimit"
	"github.com/yalcinkaya/fitcircle/services"
)

// Services, tüm service instance'larını tutan container struct.
type Services struct {
	Auth        services.AuthService
	Eligibility services.EligibilityService
	Activity    services.ActivityService
	Group       services.GroupService
	Message     services.MessageService
	Reaction    services.ReactionService
	ReadState   services.ReadStateService
}

// initServices, repository'lerden ve config'den service katmanını kurar.
//
// conn: GroupService'in WithTx ile atomik üyelik operasyonları için
// doğrudan *sql.DB'ye ihtiyacı vardır.
//
// messageLimiter: kullanıcı bazlı mesaj spam koruması — 5 saniyede 5 mesaj,
// aşımda 15 saniye cooldown.
func initServices(conn *sql.DB, repos *Repositories, cfg *config.Config, messageLimiter *ratelimit.Limiter) *Services {
	// Email, üç config değeri de doluysa aktif olur.
	// Değilse davetler sadece kod paylaşımıyla çalışır — nil sender
	// GroupService içinde kontrol edilir.
	var sender email.EmailSender
	if cfg.Email.ResendAPIKey != "" && cfg.Email.FromEmail != "" && cfg.Email.AppURL != "" {
		sender = email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.FromEmail, cfg.Email.AppURL)
		log.Println("[main] email sending enabled (resend)")
	} else {
		log.Println("[main] email sending disabled — invite codes only")
	}

	authService := services.NewAuthService(
		repos.User,
		repos.Session,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	eligibilityService := services.NewEligibilityService(repos.Activity)
	activityService := services.NewActivityService(repos.Activity)

	groupService := services.NewGroupService(
		conn,
		repos.Group,
		repos.User,
		eligibilityService,
		sender,
		cfg.Groups.MaxMembers,
	)

	messageService := services.NewMessageService(
		repos.Message,
		repos.Reaction,
		repos.Group,
		messageLimiter,
		cfg.Groups.MessageMaxLen,
	)

	reactionService := services.NewReactionService(repos.Reaction, repos.Message, repos.Group)
	readStateService := services.NewReadStateService(repos.ReadState, repos.Message, repos.Group)

	return &Services{
		Auth:        authService,
		Eligibility: eligibilityService,
		Activity:    activityService,
		Group:       groupService,
		Message:     messageService,
		Reaction:    reactionService,
		ReadState:   readStateService,
	}
}

// newMessageLimiter, mesaj spam limiter'ını kurar.
func newMessageLimiter() *ratelimit.Limiter {
	return ratelimit.New(5, 5*time.Second, 15*time.Second)
}

// newLoginLimiter, IP bazlı login brute-force limiter'ını kurar.
func newLoginLimiter() *ratelimit.Limiter {
	return ratelimit.New(5, 2*time.Minute, 0)
}
