package repository

import (
	"context"
	"testing"

	"github.com/yalcinkaya/fitcircle/models"
)

func TestReactionInsertToggleSemantics(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	group := createTestGroup(t, db, owner.ID, "RCT001", 10)
	msg := createTestMessage(t, db, group.ID, owner.ID, "hello")

	repo := NewSQLiteReactionRepo(db.Conn)
	ctx := context.Background()

	added, err := repo.Insert(ctx, &models.MessageReaction{
		MessageID: msg.ID, UserID: owner.ID, Emoji: "👍",
	})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if !added {
		t.Error("expected first insert to report added")
	}

	// Aynı üçlü ikinci kez eklenemez
	added, err = repo.Insert(ctx, &models.MessageReaction{
		MessageID: msg.ID, UserID: owner.ID, Emoji: "👍",
	})
	if err != nil {
		t.Fatalf("duplicate insert failed: %v", err)
	}
	if added {
		t.Error("expected duplicate insert to report not added")
	}

	removed, err := repo.Delete(ctx, msg.ID, owner.ID, "👍")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !removed {
		t.Error("expected delete to report removed")
	}

	removed, err = repo.Delete(ctx, msg.ID, owner.ID, "👍")
	if err != nil {
		t.Fatalf("second delete failed: %v", err)
	}
	if removed {
		t.Error("expected second delete to report not removed")
	}
}

func TestReactionGroupingByEmoji(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	group := createTestGroup(t, db, owner.ID, "RCT002", 10)
	msg := createTestMessage(t, db, group.ID, owner.ID, "hello")

	repo := NewSQLiteReactionRepo(db.Conn)
	ctx := context.Background()

	for _, r := range []models.MessageReaction{
		{MessageID: msg.ID, UserID: owner.ID, Emoji: "👍"},
		{MessageID: msg.ID, UserID: alice.ID, Emoji: "👍"},
		{MessageID: msg.ID, UserID: bob.ID, Emoji: "🔥"},
	} {
		r := r
		if _, err := repo.Insert(ctx, &r); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	groups, err := repo.GetByMessageID(ctx, msg.ID)
	if err != nil {
		t.Fatalf("GetByMessageID failed: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 emoji groups, got %d", len(groups))
	}

	// İlk eklenen emoji önce gelir
	if groups[0].Emoji != "👍" || groups[0].Count != 2 {
		t.Errorf("expected 👍 x2 first, got %s x%d", groups[0].Emoji, groups[0].Count)
	}
	if len(groups[0].Users) != 2 {
		t.Errorf("expected 2 users on 👍, got %d", len(groups[0].Users))
	}
	if groups[1].Emoji != "🔥" || groups[1].Count != 1 {
		t.Errorf("expected 🔥 x1 second, got %s x%d", groups[1].Emoji, groups[1].Count)
	}
}

func TestReactionBatchFetch(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	group := createTestGroup(t, db, owner.ID, "RCT003", 10)
	msg1 := createTestMessage(t, db, group.ID, owner.ID, "first")
	msg2 := createTestMessage(t, db, group.ID, owner.ID, "second")
	bare := createTestMessage(t, db, group.ID, owner.ID, "no reactions")

	repo := NewSQLiteReactionRepo(db.Conn)
	ctx := context.Background()

	if _, err := repo.Insert(ctx, &models.MessageReaction{MessageID: msg1.ID, UserID: owner.ID, Emoji: "👍"}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if _, err := repo.Insert(ctx, &models.MessageReaction{MessageID: msg2.ID, UserID: owner.ID, Emoji: "🎉"}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	byMessage, err := repo.GetByMessageIDs(ctx, []string{msg1.ID, msg2.ID, bare.ID})
	if err != nil {
		t.Fatalf("GetByMessageIDs failed: %v", err)
	}
	if len(byMessage[msg1.ID]) != 1 || byMessage[msg1.ID][0].Emoji != "👍" {
		t.Errorf("unexpected reactions for msg1: %+v", byMessage[msg1.ID])
	}
	if len(byMessage[msg2.ID]) != 1 || byMessage[msg2.ID][0].Emoji != "🎉" {
		t.Errorf("unexpected reactions for msg2: %+v", byMessage[msg2.ID])
	}
	if _, ok := byMessage[bare.ID]; ok {
		t.Error("expected no map entry for message without reactions")
	}

	// Boş liste sorgu çalıştırmadan boş map döner
	empty, err := repo.GetByMessageIDs(ctx, nil)
	if err != nil {
		t.Fatalf("GetByMessageIDs with nil failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty map, got %d entries", len(empty))
	}
}
