// Package models — GroupMember domain modeli.
//
// GroupMember, kullanıcı ↔ grup üyelik ilişkisini temsil eder.
// Bir kullanıcı birden fazla gruba üye olabilir ama aynı grupta
// en fazla bir üyelik satırı olur (UNIQUE(group_id, user_id)).
package models

import "time"

// MemberRole, üyenin grup içindeki rolü.
//
// Invariant: her aktif grupta TAM OLARAK BİR sponsor vardır.
// Sponsor değişimi sadece TransferOwnership ile, iki rolün aynı
// transaction'da flip edilmesiyle olur — asla 0 veya 2 sponsor durumu oluşmaz.
type MemberRole string

const (
	RoleMember  MemberRole = "member"
	RoleSponsor MemberRole = "sponsor"

	// RoleSuperAdmin, platform operasyon ekibi için — sponsor'un tüm
	// yetki kontrollerinden geçer ama grubun sponsor'u sayılmaz.
	RoleSuperAdmin MemberRole = "super_admin"
)

// CanModerate, rolün sponsor-seviyesi yetki taşıyıp taşımadığını döner.
// Tüm yetki kontrolleri bu tek fonksiyon üzerinden yapılır — UI katmanına
// dağılmış ad hoc rol karşılaştırmaları yerine tek karar noktası.
func (r MemberRole) CanModerate() bool {
	return r == RoleSponsor || r == RoleSuperAdmin
}

// GroupMember, bir kullanıcının bir gruba üyeliğini temsil eder.
// DB'deki "group_members" tablosunun Go karşılığı.
//
// User alanı JOIN ile doldurulur — üye listesi response'unda kullanıcı
// bilgileri (username, display_name) birlikte döner.
type GroupMember struct {
	ID           string     `json:"id"`
	GroupID      string     `json:"group_id"`
	UserID       string     `json:"user_id"`
	Role         MemberRole `json:"role"`
	JoinedAt     time.Time  `json:"joined_at"`
	LastActiveAt time.Time  `json:"last_active_at"`
	User         *User      `json:"user,omitempty"` // JOIN ile gelen kullanıcı bilgisi
}
