// Package pkg, projede paylaşılan utility'leri barındırır.
// Bu dosya domain-level error tanımlarını içerir.
//
// Go'da error'lar basit değerlerdir (string taşıyan struct'lar).
// errors.New() ile sabit error değişkenleri tanımlarız.
// Böylece error karşılaştırması string yerine referans ile yapılır:
//
//	if errors.Is(err, pkg.ErrGroupFull) { ... }
//
// Bu, typo'ya açık string karşılaştırmasından çok daha güvenlidir.
package pkg

import "errors"

// Genel error'lar.
// Handler katmanı bu error'ları HTTP status code'larına map'ler.
// Service katmanı bunları döner, handler yakalar.
var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyExists = errors.New("already exists")
	ErrBadRequest    = errors.New("bad request")
	ErrInternal      = errors.New("internal error")

	// ErrUnavailable, storage katmanındaki geçici hatalar (ör. SQLite lock
	// timeout) bir kez retry edildikten sonra hâlâ devam ediyorsa döner.
	// Client tarafı bunu "tekrar dene" olarak yorumlayabilir.
	ErrUnavailable = errors.New("temporarily unavailable")
)

// Grup üyeliği ve mesajlaşma domain error'ları.
// Her biri caller tarafından ayırt edilebilir olmalı — asla ham storage
// hatası dışarı sızmaz, her operasyon ya snapshot ya bu error'lardan biri döner.
var (
	// ErrNotEligible — grup oluşturmak için 7 günlük aktivite serisi ve
	// 8 eğitim modülünün tamamlanması gerekir.
	ErrNotEligible = errors.New("not eligible to create a group")

	// ErrGroupFull — grup kapasitesi (max_members) dolu.
	ErrGroupFull = errors.New("group is full")

	// ErrAlreadyMember — kullanıcı zaten bu grubun üyesi.
	ErrAlreadyMember = errors.New("already a member of this group")

	// ErrNotAMember — kullanıcı bu grubun üyesi değil.
	ErrNotAMember = errors.New("not a member of this group")

	// ErrCannotRemoveSponsor — sponsor üyelikten çıkarılamaz;
	// önce sahipliği devretmeli veya grubu silmeli.
	ErrCannotRemoveSponsor = errors.New("cannot remove the group sponsor")

	// ErrCannotLeaveAsSponsor — sponsor gruptan ayrılamaz;
	// önce sahipliği devretmeli veya grubu silmeli.
	ErrCannotLeaveAsSponsor = errors.New("sponsor cannot leave the group")

	// ErrNotAuthor — mesajı sadece yazarı düzenleyebilir.
	ErrNotAuthor = errors.New("only the author can edit this message")

	// ErrWrongType — sistem bildirimleri düzenlenemez.
	ErrWrongType = errors.New("this message type cannot be edited")

	// ErrInvalidReply — yanıtlanan mesaj aynı grupta bulunamadı.
	ErrInvalidReply = errors.New("replied message not found in this group")
)
