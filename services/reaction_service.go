// Package services — ReactionService: mesaj reaction toggle mantığı.
package services

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/yalcinkaya/fitcircle/models"
	"github.com/yalcinkaya/fitcircle/pkg"
	"github.com/yalcinkaya/fitcircle/repository"
)

// ReactionService, mesaj reaction iş mantığı interface'i.
type ReactionService interface {
	// Toggle, reaction'ı aç/kapa yapar: kullanıcının bu mesajda bu emojisi
	// yoksa ekler (ReactionAdded), varsa kaldırır (ReactionRemoved).
	// Aynı isteğin iki kez gelmesi güvenlidir — ikinci istek tersini yapar,
	// asla duplicate reaction oluşmaz.
	Toggle(ctx context.Context, messageID, userID, emoji string) (models.ToggleResult, error)

	// GetForMessage, mesajın reaction gruplarını döner.
	GetForMessage(ctx context.Context, messageID, userID string) ([]models.ReactionGroup, error)
}

type reactionService struct {
	reactionRepo repository.ReactionRepository
	messageRepo  repository.MessageRepository
	groupRepo    repository.GroupRepository
}

// NewReactionService, constructor.
func NewReactionService(
	reactionRepo repository.ReactionRepository,
	messageRepo repository.MessageRepository,
	groupRepo repository.GroupRepository,
) ReactionService {
	return &reactionService{
		reactionRepo: reactionRepo,
		messageRepo:  messageRepo,
		groupRepo:    groupRepo,
	}
}

// Toggle, INSERT OR IGNORE + rowsAffected ile toggle yapar.
//
// İki adım vardır (insert dene → eklenmezse sil) ama duplicate OLUŞMAZ:
// UNIQUE constraint ekleme yarısını tek statement'ta atomik yapar.
// İki eşzamanlı toggle'ın yarışması en kötü ihtimalle bir add + bir remove
// olarak sonuçlanır — tutarsız satır değil.
func (s *reactionService) Toggle(ctx context.Context, messageID, userID, emoji string) (models.ToggleResult, error) {
	if emoji == "" || utf8.RuneCountInString(emoji) > 8 {
		return "", fmt.Errorf("%w: invalid emoji", pkg.ErrBadRequest)
	}

	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return "", err
	}

	if err := s.requireMembership(ctx, message.GroupID, userID); err != nil {
		return "", err
	}

	reaction := &models.MessageReaction{
		MessageID: messageID,
		UserID:    userID,
		Emoji:     emoji,
	}

	inserted, err := s.reactionRepo.Insert(ctx, reaction)
	if err != nil {
		return "", err
	}
	if inserted {
		return models.ReactionAdded, nil
	}

	removed, err := s.reactionRepo.Delete(ctx, messageID, userID, emoji)
	if err != nil {
		return "", err
	}
	if !removed {
		// Insert ignore edildi ama satır da yok — eşzamanlı bir remove
		// araya girdi. Kullanıcı açısından sonuç "kaldırıldı" ile aynıdır.
		return models.ReactionRemoved, nil
	}

	return models.ReactionRemoved, nil
}

func (s *reactionService) GetForMessage(ctx context.Context, messageID, userID string) ([]models.ReactionGroup, error) {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}

	if err := s.requireMembership(ctx, message.GroupID, userID); err != nil {
		return nil, err
	}

	return s.reactionRepo.GetByMessageID(ctx, messageID)
}

func (s *reactionService) requireMembership(ctx context.Context, groupID, userID string) error {
	_, err := s.groupRepo.GetMember(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return pkg.ErrNotAMember
		}
		return err
	}
	return nil
}
