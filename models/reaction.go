package models

import "time"

// MessageReaction, bir kullanıcının bir mesaja verdiği tek bir emoji tepkisini
// temsil eder. DB'deki "message_reactions" tablosunun Go karşılığı.
//
// UNIQUE(message_id, user_id, emoji) constraint'i sayesinde bir kullanıcı
// aynı mesaja aynı emojiyi sadece bir kez ekleyebilir; farklı emojilerle
// aynı anda birden fazla tepkisi olabilir.
type MessageReaction struct {
	ID        string    `json:"id"`
	MessageID string    `json:"message_id"`
	UserID    string    `json:"user_id"`
	Emoji     string    `json:"emoji"`
	CreatedAt time.Time `json:"created_at"`
}

// ReactionGroup, bir mesajdaki aynı emojinin toplu görünümü.
// Frontend her emoji için count ve hangi kullanıcıların tepki verdiğini
// bilmek ister: 👍 3 [user1, user2, user3].
type ReactionGroup struct {
	Emoji string   `json:"emoji"`
	Count int      `json:"count"`
	Users []string `json:"users"`
}

// ToggleResult, toggle operasyonunun sonucu — caller ekleme mi kaldırma mı
// olduğunu bilmek ister (optimistic UI senkronizasyonu için).
type ToggleResult string

const (
	ReactionAdded   ToggleResult = "added"
	ReactionRemoved ToggleResult = "removed"
)
