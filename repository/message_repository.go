package repository

import (
	"context"

	"github.com/yalcinkaya/fitcircle/models"
)

// MessageRepository, grup mesajları için veri erişim interface'i.
//
// Sayfalama cursor tabanlıdır: beforeID boşsa en yeni sayfa, doluysa o
// mesajdan ESKİ olanlar döner. Sıralama (created_at, rowid) ikilisiyle
// deterministiktir — aynı saniyede yazılan mesajlar bile her çağrıda
// aynı sırada gelir.
type MessageRepository interface {
	// Create, yeni mesaj ekler; ID ve CreatedAt DB tarafından atanır.
	Create(ctx context.Context, message *models.GroupMessage) error

	// GetByID, tek mesaj döner. Bulunamazsa pkg.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.GroupMessage, error)

	// GetByGroupID, bir gruptaki mesajları sayfa sayfa döner.
	// limit+1 satır çekilir; fazlası varsa HasMore=true olur.
	// Dönen mesajlar kronolojik (eski → yeni) sıradadır.
	GetByGroupID(ctx context.Context, groupID, beforeID string, limit int) (*models.MessagePage, error)

	// UpdateContent, mesaj içeriğini günceller ve edited_at damgası basar.
	UpdateContent(ctx context.Context, id, content string) error

	// Delete, mesajı siler. Reaction'lar FK CASCADE ile birlikte gider.
	Delete(ctx context.Context, id string) error

	// DeleteByGroupID, grup silinirken gruptaki TÜM mesajları temizler.
	DeleteByGroupID(ctx context.Context, groupID string) error
}
