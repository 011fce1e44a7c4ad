package repository

import (
	"context"

	"github.com/yalcinkaya/fitcircle/models"
)

// GroupRepository, grup ve üyelik veritabanı işlemleri için interface.
//
// Atomiklik sözleşmesi: kapasite sayacını değiştiren operasyonlar
// (IncrementMemberCountIfBelowCap + InsertMember, DeleteMember +
// DecrementMemberCount, rol flip'leri, cascade delete) service katmanında
// database.WithTx ile AYNI transaction'a bağlanır. Repository metotları
// tek tek atomiktir; invariant'ı koruyan kompozisyon service'tedir.
type GroupRepository interface {
	// Create, grup satırını ekler. current_member_count değeri group
	// struct'ından yazılır (oluşturmada 1 — sponsor üyeliğiyle birlikte).
	// Davet kodu çakışmasında pkg.ErrAlreadyExists döner — caller yeni
	// kod üretip tekrar dener.
	Create(ctx context.Context, group *models.Group) error

	GetByID(ctx context.Context, id string) (*models.Group, error)

	// GetByInviteCode, tiresiz ve büyük harfe normalize edilmiş kodla arar.
	// Normalizasyon caller'ın sorumluluğudur (JoinGroupRequest.Validate).
	GetByInviteCode(ctx context.Context, code string) (*models.Group, error)

	// ListByUserID, kullanıcının üyesi olduğu aktif grupları döner.
	ListByUserID(ctx context.Context, userID string) ([]models.Group, error)

	// IncrementMemberCountIfBelowCap, guarded UPDATE ile sayacı artırır.
	// false dönerse grup dolu (veya aktif değil) — satır değişmemiştir.
	// Kapasite kontrolü ve artış tek statement'ta: check-then-act race'i yok.
	IncrementMemberCountIfBelowCap(ctx context.Context, groupID string) (bool, error)

	DecrementMemberCount(ctx context.Context, groupID string) error

	// InsertMember, üyelik satırını ekler. (group_id, user_id) çakışmasında
	// pkg.ErrAlreadyMember döner.
	InsertMember(ctx context.Context, member *models.GroupMember) error

	// DeleteMember, üyelik satırını siler. Satır yoksa pkg.ErrNotAMember.
	DeleteMember(ctx context.Context, groupID, userID string) error

	// GetMember, (groupID, userID) üyelik satırını döner — rol kontrolü
	// her zaman bu satırdan yapılır, caller'ın beyanından asla.
	GetMember(ctx context.Context, groupID, userID string) (*models.GroupMember, error)

	// ListMembers, grubun üyelerini kullanıcı bilgisiyle (JOIN) döner.
	ListMembers(ctx context.Context, groupID string) ([]models.GroupMember, error)

	UpdateMemberRole(ctx context.Context, groupID, userID string, role models.MemberRole) error

	// TouchMemberActivity, üyenin last_active_at değerini günceller.
	TouchMemberActivity(ctx context.Context, groupID, userID string) error

	// UpdateSettings, grubun ad/açıklama/ayar kolonlarını yazar.
	// Kısmi patch merge'ü service'te yapılır; buraya tam snapshot gelir.
	UpdateSettings(ctx context.Context, group *models.Group) error

	// UpdateOwner, groups.owner_id kolonunu yazar (sahiplik devri).
	UpdateOwner(ctx context.Context, groupID, ownerID string) error

	// Delete, SADECE groups satırını siler. Mesaj/reaction/okuma/üyelik
	// cascade'i service'teki delete transaction'ında explicit yapılır.
	Delete(ctx context.Context, groupID string) error

	// DeleteMembersByGroup, cascade adımı — grubun tüm üyelik satırları.
	DeleteMembersByGroup(ctx context.Context, groupID string) error
}
