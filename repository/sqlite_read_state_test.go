package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/yalcinkaya/fitcircle/models"
	"github.com/yalcinkaya/fitcircle/pkg"
)

func TestReadStateUpsertAndGet(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	group := createTestGroup(t, db, owner.ID, "RST001", 10)
	msg := createTestMessage(t, db, group.ID, owner.ID, "hello")

	repo := NewSQLiteReadStateRepo(db.Conn)
	ctx := context.Background()

	if _, err := repo.Get(ctx, owner.ID, group.ID); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("expected ErrNotFound before first read, got %v", err)
	}

	state := &models.GroupReadState{UserID: owner.ID, GroupID: group.ID, LastReadMessageID: &msg.ID}
	if err := repo.Upsert(ctx, state); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	found, err := repo.Get(ctx, owner.ID, group.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found.LastReadMessageID == nil || *found.LastReadMessageID != msg.ID {
		t.Errorf("expected watermark at %s, got %v", msg.ID, found.LastReadMessageID)
	}

	// İkinci upsert aynı satırı günceller, yeni satır oluşturmaz
	newer := createTestMessage(t, db, group.ID, owner.ID, "newer")
	state.LastReadMessageID = &newer.ID
	if err := repo.Upsert(ctx, state); err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}
	found, err = repo.Get(ctx, owner.ID, group.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found.LastReadMessageID == nil || *found.LastReadMessageID != newer.ID {
		t.Errorf("expected watermark to advance to %s, got %v", newer.ID, found.LastReadMessageID)
	}
}

func TestUnreadCountsExcludeOwnMessages(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	reader := createTestUser(t, db, "reader")
	group := createTestGroup(t, db, owner.ID, "UNR001", 10)

	groupRepo := NewSQLiteGroupRepo(db.Conn)
	ctx := context.Background()
	member := &models.GroupMember{GroupID: group.ID, UserID: reader.ID, Role: models.RoleMember}
	if err := groupRepo.InsertMember(ctx, member); err != nil {
		t.Fatalf("InsertMember failed: %v", err)
	}

	createTestMessage(t, db, group.ID, owner.ID, "one")
	createTestMessage(t, db, group.ID, owner.ID, "two")
	createTestMessage(t, db, group.ID, reader.ID, "my own reply")

	repo := NewSQLiteReadStateRepo(db.Conn)

	// Watermark yok: kendi mesajı hariç her şey okunmamış
	counts, err := repo.GetUnreadCounts(ctx, reader.ID)
	if err != nil {
		t.Fatalf("GetUnreadCounts failed: %v", err)
	}
	if len(counts) != 1 {
		t.Fatalf("expected 1 group entry, got %d", len(counts))
	}
	if counts[0].GroupID != group.ID || counts[0].UnreadCount != 2 {
		t.Errorf("expected 2 unread in %s, got %+v", group.ID, counts[0])
	}
}

func TestUnreadCountsAdvanceWithWatermark(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	reader := createTestUser(t, db, "reader")
	group := createTestGroup(t, db, owner.ID, "UNR002", 10)

	groupRepo := NewSQLiteGroupRepo(db.Conn)
	ctx := context.Background()
	member := &models.GroupMember{GroupID: group.ID, UserID: reader.ID, Role: models.RoleMember}
	if err := groupRepo.InsertMember(ctx, member); err != nil {
		t.Fatalf("InsertMember failed: %v", err)
	}

	first := createTestMessage(t, db, group.ID, owner.ID, "one")
	createTestMessage(t, db, group.ID, owner.ID, "two")
	createTestMessage(t, db, group.ID, owner.ID, "three")

	repo := NewSQLiteReadStateRepo(db.Conn)
	state := &models.GroupReadState{UserID: reader.ID, GroupID: group.ID, LastReadMessageID: &first.ID}
	if err := repo.Upsert(ctx, state); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	counts, err := repo.GetUnreadCounts(ctx, reader.ID)
	if err != nil {
		t.Fatalf("GetUnreadCounts failed: %v", err)
	}
	if len(counts) != 1 || counts[0].UnreadCount != 2 {
		t.Errorf("expected 2 unread after reading first, got %+v", counts)
	}
}
