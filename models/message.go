package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MessageType, bir grup mesajının türü.
type MessageType string

const (
	// MessageTypeText, bir üyenin yazdığı normal mesaj.
	MessageTypeText MessageType = "text"

	// MessageTypeSystem, üyelik olaylarında (katılma, ayrılma, devir)
	// otomatik eklenen bildirim. Düzenlenemez.
	MessageTypeSystem MessageType = "system_notification"
)

// SystemSenderID, sistem bildirimlerinin sender_id sentinel değeri.
// users tablosunda karşılığı yoktur — Author alanı nil kalır.
const SystemSenderID = "system"

// GroupMessage, bir grup sohbet mesajını temsil eder.
// DB'deki "group_messages" tablosunun Go karşılığı.
//
// Author ve Reactions JOIN/batch sorgularla doldurulur — frontend tek bir
// istekle mesaj + yazar + reaction bilgilerini alır.
//
// ReplyToID tek seviyeli bir referanstır (recursive thread değil):
// yanıtlanan mesaj aynı grupta olmalıdır, o da başka bir mesaja yanıt olabilir
// ama zincir API'de açılmaz.
type GroupMessage struct {
	ID          string      `json:"id"`
	GroupID     string      `json:"group_id"`
	SenderID    string      `json:"sender_id"`
	Content     string      `json:"content"`
	MessageType MessageType `json:"message_type"`
	ReplyToID   *string     `json:"reply_to_id"`
	EditedAt    *time.Time  `json:"edited_at"`
	CreatedAt   time.Time   `json:"created_at"`

	Author            *User             `json:"author,omitempty"`
	Reactions         []ReactionGroup   `json:"reactions"`
	ReferencedMessage *MessageReference `json:"referenced_message,omitempty"`
}

// MessageReference, yanıtlanan mesajın özet görünümü.
// Yanıtlanan mesaj silinmişse nil kalır — frontend "mesaj silindi" gösterir.
type MessageReference struct {
	ID       string  `json:"id"`
	SenderID string  `json:"sender_id"`
	Content  string  `json:"content"`
	Author   *User   `json:"author,omitempty"`
}

// MessagePage, cursor-based pagination sonucu.
//
// Cursor-based pagination: offset yerine "bu mesajdan önceki N mesaj" kullanılır.
// Yeni mesaj başa eklendiğinde daha önce çekilmiş sayfalar kaymaz —
// OldestMessageID bir sonraki (daha eski) sayfanın cursor'ıdır.
type MessagePage struct {
	Messages        []GroupMessage `json:"messages"`
	HasMore         bool           `json:"has_more"`
	OldestMessageID string         `json:"oldest_message_id"` // Boş string = sayfa boş
}

// SendMessageRequest, yeni mesaj gönderme isteği.
// İçerik uzunluk limiti config'den gelir ve service katmanında kontrol edilir.
type SendMessageRequest struct {
	Content   string  `json:"content"`
	ReplyToID *string `json:"reply_to_id"`
}

// Validate, SendMessageRequest kontrolü.
func (r *SendMessageRequest) Validate() error {
	r.Content = strings.TrimSpace(r.Content)
	if utf8.RuneCountInString(r.Content) < 1 {
		return fmt.Errorf("message content is required")
	}
	return nil
}

// EditMessageRequest, mesaj düzenleme isteği.
type EditMessageRequest struct {
	Content string `json:"content"`
}

// Validate, EditMessageRequest kontrolü.
func (r *EditMessageRequest) Validate() error {
	r.Content = strings.TrimSpace(r.Content)
	if utf8.RuneCountInString(r.Content) < 1 {
		return fmt.Errorf("message content is required")
	}
	return nil
}
