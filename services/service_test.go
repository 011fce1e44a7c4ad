package services

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/yalcinkaya/fitcircle/database"
	"github.com/yalcinkaya/fitcircle/models"
	"github.com/yalcinkaya/fitcircle/repository"
)

// Testlerde sabit referans zamanı — eligibility penceresi bu güne göre
// hesaplanır, gece yarısı geçişleri testi etkilemez.
var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

// newTestDB, her test için izole bir temp-file SQLite veritabanı açar.
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

// testRepos, testlerin doğrudan eriştiği repository'ler.
type testRepos struct {
	User      repository.UserRepository
	Group     repository.GroupRepository
	Message   repository.MessageRepository
	Reaction  repository.ReactionRepository
	ReadState repository.ReadStateRepository
	Activity  repository.ActivityRepository
}

// testServices, servis katmanını gerçek repository'lerle kurar.
// Email sender nil, rate limiter nil — bu testler iş kurallarına bakar.
type testServices struct {
	db          *database.DB
	repos       *testRepos
	eligibility EligibilityService
	groups      GroupService
	messages    MessageService
	reactions   ReactionService
	readStates  ReadStateService
	activity    ActivityService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()

	db := newTestDB(t)
	repos := &testRepos{
		User:      repository.NewSQLiteUserRepo(db.Conn),
		Group:     repository.NewSQLiteGroupRepo(db.Conn),
		Message:   repository.NewSQLiteMessageRepo(db.Conn),
		Reaction:  repository.NewSQLiteReactionRepo(db.Conn),
		ReadState: repository.NewSQLiteReadStateRepo(db.Conn),
		Activity:  repository.NewSQLiteActivityRepo(db.Conn),
	}

	eligibility := &eligibilityService{
		activityRepo: repos.Activity,
		now:          func() time.Time { return testNow },
	}
	activity := &activityService{
		activityRepo: repos.Activity,
		now:          func() time.Time { return testNow },
	}

	return &testServices{
		db:          db,
		repos:       repos,
		eligibility: eligibility,
		groups:      NewGroupService(db.Conn, repos.Group, repos.User, eligibility, nil, 10),
		messages:    NewMessageService(repos.Message, repos.Reaction, repos.Group, nil, 2000),
		reactions:   NewReactionService(repos.Reaction, repos.Message, repos.Group),
		readStates:  NewReadStateService(repos.ReadState, repos.Message, repos.Group),
		activity:    activity,
	}
}

func (ts *testServices) createUser(t *testing.T, username string) *models.User {
	t.Helper()

	user := &models.User{Username: username, PasswordHash: "x"}
	if err := ts.repos.User.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user %s: %v", username, err)
	}
	return user
}

// makeEligible, kullanıcıyı grup kurma eşiğine getirir:
// son 7 günün hepsinde adım kaydı + 8 eğitim modülü tamamlanmış.
func (ts *testServices) makeEligible(t *testing.T, userID string) {
	t.Helper()
	ctx := context.Background()

	for i := 0; i < models.RequiredActiveDays; i++ {
		entry := &models.StepEntry{
			UserID:    userID,
			EntryDate: testNow.AddDate(0, 0, -i).Format("2006-01-02"),
			Steps:     6000,
		}
		if err := ts.repos.Activity.UpsertSteps(ctx, entry); err != nil {
			t.Fatalf("failed to seed step entry: %v", err)
		}
	}
	for m := 1; m <= models.RequiredTrainingModules; m++ {
		if err := ts.repos.Activity.CompleteModule(ctx, userID, m); err != nil {
			t.Fatalf("failed to complete module %d: %v", m, err)
		}
	}
}

// createGroup, eligible bir owner ile servis üzerinden grup oluşturur.
func (ts *testServices) createGroup(t *testing.T, ownerID, name string) *models.Group {
	t.Helper()

	group, err := ts.groups.CreateGroup(context.Background(), ownerID, &models.CreateGroupRequest{
		Name: name,
	})
	if err != nil {
		t.Fatalf("failed to create group %s: %v", name, err)
	}
	return group
}

// joinGroup, kullanıcıyı davet koduyla gruba katar.
func (ts *testServices) joinGroup(t *testing.T, userID, inviteCode string) *models.Group {
	t.Helper()

	group, err := ts.groups.JoinGroup(context.Background(), userID, &models.JoinGroupRequest{
		InviteCode: inviteCode,
	})
	if err != nil {
		t.Fatalf("failed to join group: %v", err)
	}
	return group
}

// fillGroup, grubu kapasiteye kadar yeni kullanıcılarla doldurur.
func (ts *testServices) fillGroup(t *testing.T, group *models.Group) {
	t.Helper()

	for i := group.CurrentMemberCount; i < group.MaxMembers; i++ {
		filler := ts.createUser(t, fmt.Sprintf("filler%02d", i))
		ts.joinGroup(t, filler.ID, group.InviteCode)
	}
}
