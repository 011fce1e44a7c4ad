// Package services — MessageService: grup mesajlaşması iş mantığı.
//
// Mesaj gönderme, listeleme (cursor pagination), düzenleme ve silme.
// Her operasyon önce üyelik kontrolünden geçer — üye olmayan kullanıcı
// grup içeriğine hiçbir şekilde erişemez.
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"unicode/utf8"

	"github.com/yalcinkaya/fitcircle/models"
	"github.com/yalcinkaya/fitcircle/pkg"
	"github.com/yalcinkaya/fitcircle/pkg/ratelimit"
	"github.com/yalcinkaya/fitcircle/repository"
)

// defaultPageSize ve maxPageSize — mesaj listesi sayfa limitleri.
const (
	defaultPageSize = 30
	maxPageSize     = 100
)

// MessageService, grup mesajlaşması iş mantığı interface'i.
type MessageService interface {
	// SendMessage, gruba mesaj gönderir. Gönderen üye olmalı; içerik
	// limiti aşılamaz; reply_to_id verilmişse yanıtlanan mesaj AYNI
	// grupta olmalıdır (pkg.ErrInvalidReply).
	SendMessage(ctx context.Context, groupID, senderID string, req *models.SendMessageRequest) (*models.GroupMessage, error)

	// GetMessages, cursor tabanlı sayfalamayla mesaj listesi döner.
	// beforeID boşsa en yeni sayfa. limit 0 ise default kullanılır.
	GetMessages(ctx context.Context, groupID, userID, beforeID string, limit int) (*models.MessagePage, error)

	// EditMessage, mesaj içeriğini günceller. Sadece yazar düzenleyebilir
	// (pkg.ErrNotAuthor); sistem bildirimleri düzenlenemez (pkg.ErrWrongType).
	EditMessage(ctx context.Context, messageID, userID string, req *models.EditMessageRequest) (*models.GroupMessage, error)

	// DeleteMessage, mesajı siler. Yazar veya sponsor silebilir.
	DeleteMessage(ctx context.Context, messageID, userID string) error
}

type messageService struct {
	messageRepo  repository.MessageRepository
	reactionRepo repository.ReactionRepository
	groupRepo    repository.GroupRepository
	limiter      *ratelimit.Limiter // nil olabilir — test'lerde kapalı
	maxLen       int
}

// NewMessageService, constructor.
//
// limiter: kullanıcı bazlı spam koruması. nil geçilirse rate limiting
// devre dışı kalır (test kolaylığı).
func NewMessageService(
	messageRepo repository.MessageRepository,
	reactionRepo repository.ReactionRepository,
	groupRepo repository.GroupRepository,
	limiter *ratelimit.Limiter,
	maxLen int,
) MessageService {
	return &messageService{
		messageRepo:  messageRepo,
		reactionRepo: reactionRepo,
		groupRepo:    groupRepo,
		limiter:      limiter,
		maxLen:       maxLen,
	}
}

func (s *messageService) SendMessage(ctx context.Context, groupID, senderID string, req *models.SendMessageRequest) (*models.GroupMessage, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}
	if utf8.RuneCountInString(req.Content) > s.maxLen {
		return nil, fmt.Errorf("%w: message must be at most %d characters", pkg.ErrBadRequest, s.maxLen)
	}

	member, err := s.requireMembership(ctx, groupID, senderID)
	if err != nil {
		return nil, err
	}

	if s.limiter != nil && !s.limiter.Allow(senderID) {
		return nil, fmt.Errorf("%w: sending messages too quickly", pkg.ErrBadRequest)
	}

	// Yanıt doğrulaması: yanıtlanan mesaj var olmalı VE aynı grupta olmalı.
	// Başka gruptaki bir mesaja yanıt, grup izolasyonunu deler.
	if req.ReplyToID != nil {
		replied, err := s.messageRepo.GetByID(ctx, *req.ReplyToID)
		if err != nil {
			if errors.Is(err, pkg.ErrNotFound) {
				return nil, pkg.ErrInvalidReply
			}
			return nil, err
		}
		if replied.GroupID != groupID {
			return nil, pkg.ErrInvalidReply
		}
	}

	message := &models.GroupMessage{
		GroupID:     groupID,
		SenderID:    senderID,
		Content:     req.Content,
		MessageType: models.MessageTypeText,
		ReplyToID:   req.ReplyToID,
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	// Mesaj göndermek üyenin last_active_at damgasını günceller.
	// Best-effort — hata mesaj gönderimini geri almaz.
	if err := s.groupRepo.TouchMemberActivity(ctx, groupID, member.UserID); err != nil {
		log.Printf("[message] failed to touch member activity user=%s group=%s: %v", senderID, groupID, err)
	}

	return s.hydrate(ctx, message)
}

func (s *messageService) GetMessages(ctx context.Context, groupID, userID, beforeID string, limit int) (*models.MessagePage, error) {
	if _, err := s.requireMembership(ctx, groupID, userID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	page, err := s.messageRepo.GetByGroupID(ctx, groupID, beforeID, limit)
	if err != nil {
		return nil, err
	}

	if err := s.attachReactions(ctx, page.Messages); err != nil {
		return nil, err
	}
	if err := s.attachReferences(ctx, page.Messages); err != nil {
		return nil, err
	}

	return page, nil
}

func (s *messageService) EditMessage(ctx context.Context, messageID, userID string, req *models.EditMessageRequest) (*models.GroupMessage, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}
	if utf8.RuneCountInString(req.Content) > s.maxLen {
		return nil, fmt.Errorf("%w: message must be at most %d characters", pkg.ErrBadRequest, s.maxLen)
	}

	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}

	if _, err := s.requireMembership(ctx, message.GroupID, userID); err != nil {
		return nil, err
	}

	// Sıra önemli: önce tür kontrolü, sonra yazarlık. Sistem bildirimini
	// kimse düzenleyemez — yazarı da yoktur.
	if message.MessageType != models.MessageTypeText {
		return nil, pkg.ErrWrongType
	}
	if message.SenderID != userID {
		return nil, pkg.ErrNotAuthor
	}

	if err := s.messageRepo.UpdateContent(ctx, messageID, req.Content); err != nil {
		return nil, err
	}

	updated, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}

	return s.hydrate(ctx, updated)
}

// DeleteMessage — yazar kendi mesajını, sponsor herkesin mesajını silebilir.
// Sistem bildirimlerini sadece sponsor silebilir.
func (s *messageService) DeleteMessage(ctx context.Context, messageID, userID string) error {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}

	member, err := s.requireMembership(ctx, message.GroupID, userID)
	if err != nil {
		return err
	}

	isAuthor := message.SenderID == userID && message.MessageType == models.MessageTypeText
	if !isAuthor && !member.Role.CanModerate() {
		return fmt.Errorf("%w: you can only delete your own messages", pkg.ErrForbidden)
	}

	if err := s.messageRepo.Delete(ctx, messageID); err != nil {
		return err
	}

	log.Printf("[message] deleted message %s in group %s by user %s", messageID, message.GroupID, userID)
	return nil
}

// ─── Private Helpers ───

func (s *messageService) requireMembership(ctx context.Context, groupID, userID string) (*models.GroupMember, error) {
	member, err := s.groupRepo.GetMember(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, pkg.ErrNotAMember
		}
		return nil, err
	}
	return member, nil
}

// hydrate, tek mesaja reaction ve yanıt referansını ekler.
func (s *messageService) hydrate(ctx context.Context, message *models.GroupMessage) (*models.GroupMessage, error) {
	messages := []models.GroupMessage{*message}
	if err := s.attachReactions(ctx, messages); err != nil {
		return nil, err
	}
	if err := s.attachReferences(ctx, messages); err != nil {
		return nil, err
	}
	return &messages[0], nil
}

// attachReactions, mesaj listesine reaction gruplarını TEK batch sorguyla ekler.
func (s *messageService) attachReactions(ctx context.Context, messages []models.GroupMessage) error {
	if len(messages) == 0 {
		return nil
	}

	ids := make([]string, len(messages))
	for i := range messages {
		ids[i] = messages[i].ID
	}

	grouped, err := s.reactionRepo.GetByMessageIDs(ctx, ids)
	if err != nil {
		return err
	}

	for i := range messages {
		messages[i].Reactions = grouped[messages[i].ID]
	}
	return nil
}

// attachReferences, yanıt mesajlarına yanıtlanan mesajın özetini ekler.
// Yanıtlanan mesaj silinmişse referans nil kalır — frontend "mesaj silindi"
// gösterir.
func (s *messageService) attachReferences(ctx context.Context, messages []models.GroupMessage) error {
	for i := range messages {
		if messages[i].ReplyToID == nil {
			continue
		}

		replied, err := s.messageRepo.GetByID(ctx, *messages[i].ReplyToID)
		if err != nil {
			if errors.Is(err, pkg.ErrNotFound) {
				continue
			}
			return err
		}

		messages[i].ReferencedMessage = &models.MessageReference{
			ID:       replied.ID,
			SenderID: replied.SenderID,
			Content:  replied.Content,
			Author:   replied.Author,
		}
	}
	return nil
}
