package repository

import (
	"context"

	"github.com/yalcinkaya/fitcircle/models"
)

// ReadStateRepository, okuma watermark'ları için veri erişim interface'i.
type ReadStateRepository interface {
	// Upsert, kullanıcının gruptaki watermark'ını günceller (yoksa oluşturur).
	Upsert(ctx context.Context, state *models.GroupReadState) error

	// Get, kullanıcının gruptaki watermark'ını döner. Kayıt yoksa
	// pkg.ErrNotFound — kullanıcı grubu hiç açmamış demektir.
	Get(ctx context.Context, userID, groupID string) (*models.GroupReadState, error)

	// GetUnreadCounts, kullanıcının üye olduğu TÜM gruplar için okunmamış
	// mesaj sayısını tek sorguda hesaplar. Kullanıcının kendi mesajları
	// sayılmaz.
	GetUnreadCounts(ctx context.Context, userID string) ([]models.UnreadInfo, error)

	// DeleteByGroupID, grup silinirken gruptaki tüm watermark'ları temizler.
	DeleteByGroupID(ctx context.Context, groupID string) error
}
