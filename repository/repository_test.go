package repository

import (
	"context"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/yalcinkaya/fitcircle/database"
	"github.com/yalcinkaya/fitcircle/models"
)

// newTestDB, her test için izole bir temp-file SQLite veritabanı açar.
// Migration'lar embedded FS'den çalışır; test bitince bağlantı kapanır.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		t.Fatalf("failed to open embedded migrations: %v", err)
	}

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), migrationsFS)
	if err != nil {
		t.Fatalf("failed to initialize test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestUser, test kullanıcısı oluşturur ve döner.
func createTestUser(t *testing.T, db *database.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		PasswordHash: "x",
	}
	if err := NewSQLiteUserRepo(db.Conn).Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user %s: %v", username, err)
	}
	return user
}

// createTestGroup, sponsor üyeliğiyle birlikte test grubu oluşturur.
func createTestGroup(t *testing.T, db *database.DB, ownerID, code string, maxMembers int) *models.Group {
	t.Helper()

	repo := NewSQLiteGroupRepo(db.Conn)
	group := &models.Group{
		Name:               "Test Group " + code,
		InviteCode:         code,
		Status:             models.GroupStatusActive,
		MaxMembers:         maxMembers,
		CurrentMemberCount: 1,
		OwnerID:            ownerID,
	}
	if err := repo.Create(context.Background(), group); err != nil {
		t.Fatalf("failed to create test group: %v", err)
	}

	member := &models.GroupMember{
		GroupID: group.ID,
		UserID:  ownerID,
		Role:    models.RoleSponsor,
	}
	if err := repo.InsertMember(context.Background(), member); err != nil {
		t.Fatalf("failed to insert sponsor member: %v", err)
	}

	return group
}

// createTestMessage, gruba test mesajı ekler.
func createTestMessage(t *testing.T, db *database.DB, groupID, senderID, content string) *models.GroupMessage {
	t.Helper()

	message := &models.GroupMessage{
		GroupID:     groupID,
		SenderID:    senderID,
		Content:     content,
		MessageType: models.MessageTypeText,
	}
	if err := NewSQLiteMessageRepo(db.Conn).Create(context.Background(), message); err != nil {
		t.Fatalf("failed to create test message: %v", err)
	}
	return message
}
