// Package services — ReadStateService: okuma watermark'ları ve unread badge'ler.
//
// Watermark sadece gösterim içindir — hangi mesajın "yeni" görüneceğini
// belirler, erişim kontrolünde rolü yoktur.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yalcinkaya/fitcircle/models"
	"github.com/yalcinkaya/fitcircle/pkg"
	"github.com/yalcinkaya/fitcircle/repository"
)

// ReadStateService, okuma durumu iş mantığı interface'i.
type ReadStateService interface {
	// MarkRead, kullanıcının gruptaki watermark'ını verilen mesaja taşır.
	// Mesaj o grupta olmalıdır.
	MarkRead(ctx context.Context, groupID, userID, messageID string) (*models.GroupReadState, error)

	// GetUnreadCounts, kullanıcının tüm gruplarındaki okunmamış mesaj
	// sayılarını döner (kendi mesajları hariç).
	GetUnreadCounts(ctx context.Context, userID string) ([]models.UnreadInfo, error)
}

type readStateService struct {
	readStateRepo repository.ReadStateRepository
	messageRepo   repository.MessageRepository
	groupRepo     repository.GroupRepository
}

// NewReadStateService, constructor.
func NewReadStateService(
	readStateRepo repository.ReadStateRepository,
	messageRepo repository.MessageRepository,
	groupRepo repository.GroupRepository,
) ReadStateService {
	return &readStateService{
		readStateRepo: readStateRepo,
		messageRepo:   messageRepo,
		groupRepo:     groupRepo,
	}
}

func (s *readStateService) MarkRead(ctx context.Context, groupID, userID, messageID string) (*models.GroupReadState, error) {
	if _, err := s.requireMembership(ctx, groupID, userID); err != nil {
		return nil, err
	}

	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if message.GroupID != groupID {
		return nil, fmt.Errorf("%w: message does not belong to this group", pkg.ErrBadRequest)
	}

	state := &models.GroupReadState{
		UserID:            userID,
		GroupID:           groupID,
		LastReadMessageID: &messageID,
	}
	if err := s.readStateRepo.Upsert(ctx, state); err != nil {
		return nil, err
	}

	return state, nil
}

func (s *readStateService) GetUnreadCounts(ctx context.Context, userID string) ([]models.UnreadInfo, error) {
	return s.readStateRepo.GetUnreadCounts(ctx, userID)
}

func (s *readStateService) requireMembership(ctx context.Context, groupID, userID string) (*models.GroupMember, error) {
	member, err := s.groupRepo.GetMember(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, pkg.ErrNotAMember
		}
		return nil, err
	}
	return member, nil
}
