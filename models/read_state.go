package models

import "time"

// GroupReadState, bir kullanıcının belirli bir gruptaki okuma durumunu temsil eder.
//
// Watermark pattern: her mesajı tek tek "okundu" işaretlemek yerine
// "bu mesaja kadar okudum" bilgisi tutulur. Okunmamış mesaj sayısı =
// bu mesajdan sonraki (kendi mesajları hariç) mesaj sayısı.
//
// Sadece badge hesabı içindir — erişim kontrolünde kullanılmaz.
type GroupReadState struct {
	UserID            string    `json:"user_id"`
	GroupID           string    `json:"group_id"`
	LastReadMessageID *string   `json:"last_read_message_id"`
	LastReadAt        time.Time `json:"last_read_at"`
}

// UnreadInfo, bir grubun okunmamış mesaj bilgisini taşır.
// Frontend'de grup listesi badge'i için kullanılır.
type UnreadInfo struct {
	GroupID     string `json:"group_id"`
	UnreadCount int    `json:"unread_count"`
}
