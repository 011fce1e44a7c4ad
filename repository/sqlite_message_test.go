package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/yalcinkaya/fitcircle/models"
	"github.com/yalcinkaya/fitcircle/pkg"
)

func TestMessagePaginationWalksFullHistory(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	group := createTestGroup(t, db, owner.ID, "PAG001", 10)

	const total = 55
	for i := 0; i < total; i++ {
		createTestMessage(t, db, group.ID, owner.ID, fmt.Sprintf("message %02d", i))
	}

	repo := NewSQLiteMessageRepo(db.Conn)
	ctx := context.Background()

	// İlk sayfa: en yeni 30 mesaj, kronolojik sırada
	page1, err := repo.GetByGroupID(ctx, group.ID, "", 30)
	if err != nil {
		t.Fatalf("first page failed: %v", err)
	}
	if len(page1.Messages) != 30 {
		t.Fatalf("expected 30 messages, got %d", len(page1.Messages))
	}
	if !page1.HasMore {
		t.Error("expected HasMore on first page")
	}
	if page1.Messages[29].Content != "message 54" {
		t.Errorf("expected newest message last, got %q", page1.Messages[29].Content)
	}
	if page1.OldestMessageID != page1.Messages[0].ID {
		t.Errorf("OldestMessageID mismatch: %s != %s", page1.OldestMessageID, page1.Messages[0].ID)
	}

	// İkinci sayfa: cursor ile kalan 25 mesaj, boşluk ve örtüşme olmadan
	page2, err := repo.GetByGroupID(ctx, group.ID, page1.OldestMessageID, 30)
	if err != nil {
		t.Fatalf("second page failed: %v", err)
	}
	if len(page2.Messages) != total-30 {
		t.Fatalf("expected %d messages, got %d", total-30, len(page2.Messages))
	}
	if page2.HasMore {
		t.Error("expected HasMore=false on last page")
	}
	if page2.Messages[0].Content != "message 00" {
		t.Errorf("expected oldest message first, got %q", page2.Messages[0].Content)
	}
	if page2.Messages[24].Content != "message 24" {
		t.Errorf("expected page boundary at message 24, got %q", page2.Messages[24].Content)
	}

	// İki sayfa birlikte tüm geçmişi tam olarak kapsamalı
	seen := make(map[string]bool, total)
	for _, m := range append(page2.Messages, page1.Messages...) {
		if seen[m.ID] {
			t.Errorf("message %s appeared in both pages", m.ID)
		}
		seen[m.ID] = true
	}
	if len(seen) != total {
		t.Errorf("expected %d distinct messages across pages, got %d", total, len(seen))
	}
}

func TestMessagePaginationChronologicalOrder(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	group := createTestGroup(t, db, owner.ID, "ORD001", 10)

	// Aynı saniye içinde eklenen mesajlar rowid ile sıralanır
	for i := 0; i < 10; i++ {
		createTestMessage(t, db, group.ID, owner.ID, fmt.Sprintf("burst %d", i))
	}

	repo := NewSQLiteMessageRepo(db.Conn)
	page, err := repo.GetByGroupID(context.Background(), group.ID, "", 50)
	if err != nil {
		t.Fatalf("GetByGroupID failed: %v", err)
	}
	for i, m := range page.Messages {
		want := fmt.Sprintf("burst %d", i)
		if m.Content != want {
			t.Errorf("position %d: expected %q, got %q", i, want, m.Content)
		}
	}
}

func TestMessageAuthorAttached(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	group := createTestGroup(t, db, owner.ID, "AUT001", 10)
	createTestMessage(t, db, group.ID, owner.ID, "hello")

	repo := NewSQLiteMessageRepo(db.Conn)
	page, err := repo.GetByGroupID(context.Background(), group.ID, "", 10)
	if err != nil {
		t.Fatalf("GetByGroupID failed: %v", err)
	}
	if len(page.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(page.Messages))
	}
	msg := page.Messages[0]
	if msg.Author == nil || msg.Author.Username != "owner" {
		t.Errorf("expected author info to be attached, got %+v", msg.Author)
	}
}

func TestSystemMessageHasNoAuthor(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	group := createTestGroup(t, db, owner.ID, "SYS001", 10)

	repo := NewSQLiteMessageRepo(db.Conn)
	ctx := context.Background()

	notice := &models.GroupMessage{
		GroupID:     group.ID,
		SenderID:    models.SystemSenderID,
		Content:     "owner joined the group",
		MessageType: models.MessageTypeSystem,
	}
	if err := repo.Create(ctx, notice); err != nil {
		t.Fatalf("Create system message failed: %v", err)
	}

	page, err := repo.GetByGroupID(ctx, group.ID, "", 10)
	if err != nil {
		t.Fatalf("GetByGroupID failed: %v", err)
	}
	if len(page.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(page.Messages))
	}
	msg := page.Messages[0]
	if msg.Author != nil {
		t.Errorf("expected nil author on system message, got %+v", msg.Author)
	}
	if msg.MessageType != models.MessageTypeSystem {
		t.Errorf("expected system message type, got %s", msg.MessageType)
	}
}

func TestMessageUpdateContentAndDelete(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	group := createTestGroup(t, db, owner.ID, "EDT001", 10)
	msg := createTestMessage(t, db, group.ID, owner.ID, "before")

	repo := NewSQLiteMessageRepo(db.Conn)
	ctx := context.Background()

	if err := repo.UpdateContent(ctx, msg.ID, "after"); err != nil {
		t.Fatalf("UpdateContent failed: %v", err)
	}
	found, err := repo.GetByID(ctx, msg.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if found.Content != "after" {
		t.Errorf("expected updated content, got %q", found.Content)
	}
	if found.EditedAt == nil {
		t.Error("expected EditedAt to be set after edit")
	}

	if err := repo.Delete(ctx, msg.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.GetByID(ctx, msg.ID); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
