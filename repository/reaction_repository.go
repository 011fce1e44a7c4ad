package repository

import (
	"context"

	"github.com/yalcinkaya/fitcircle/models"
)

// ReactionRepository, mesaj reaction'ları için veri erişim interface'i.
type ReactionRepository interface {
	// Insert, reaction eklemeyi dener. Aynı (mesaj, kullanıcı, emoji)
	// üçlüsü zaten varsa false döner — toggle mantığının "ekle" yarısı.
	Insert(ctx context.Context, reaction *models.MessageReaction) (bool, error)

	// Delete, reaction'ı kaldırır. Satır yoksa false döner.
	Delete(ctx context.Context, messageID, userID, emoji string) (bool, error)

	// GetByMessageID, bir mesajın reaction'larını emoji bazında gruplar.
	GetByMessageID(ctx context.Context, messageID string) ([]models.ReactionGroup, error)

	// GetByMessageIDs, birden çok mesajın reaction'larını TEK sorguyla çeker.
	// Mesaj listesi render edilirken N+1 sorgu yerine batch kullanılır.
	GetByMessageIDs(ctx context.Context, messageIDs []string) (map[string][]models.ReactionGroup, error)

	// DeleteByGroupID, grup silinirken gruptaki mesajlara ait tüm
	// reaction'ları temizler.
	DeleteByGroupID(ctx context.Context, groupID string) error
}
