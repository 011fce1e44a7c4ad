// Package services — GroupService: accountability grubu yönetimi iş mantığı.
//
// Grup oluşturma, davet koduyla katılma, ayrılma, üye çıkarma, sponsor devri,
// ayar güncelleme ve grup silme. Üyelik sayacını değiştiren her operasyon
// database.WithTx ile tek transaction'da çalışır — kapasite invariant'ı
// (0 < current_member_count <= max_members) hiçbir ara durumda kırılmaz.
package services

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/yalcinkaya/fitcircle/database"
	"github.com/yalcinkaya/fitcircle/models"
	"github.com/yalcinkaya/fitcircle/pkg"
	"github.com/yalcinkaya/fitcircle/pkg/email"
	"github.com/yalcinkaya/fitcircle/repository"
)

// inviteCodeCharset — davet kodu alfabesi. Büyük harf + rakam;
// kullanıcılar kodu sesli okuyup paylaşır, küçük/büyük karışıklığı olmaz.
const inviteCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// maxCodeAttempts, davet kodu çakışmasında toplam deneme sayısı.
// 36^6 ≈ 2.2 milyar kod — çakışma pratikte yok denecek kadar nadir,
// ama UNIQUE constraint + retry ile garantiye alınır.
const maxCodeAttempts = 5

// GroupService, grup yönetimi iş mantığı interface'i.
type GroupService interface {
	// CreateGroup, yeni grup oluşturur. Oluşturan kullanıcı eligibility
	// kontrolünden geçmeli (7 gün aktivite + 8 modül); geçemezse
	// pkg.ErrNotEligible döner. Oluşturan, grubun sponsor'u olur.
	CreateGroup(ctx context.Context, ownerID string, req *models.CreateGroupRequest) (*models.Group, error)

	// GetGroup, grup detayını döner. İstek yapan üye olmalıdır.
	GetGroup(ctx context.Context, groupID, userID string) (*models.Group, error)

	// GetUserGroups, kullanıcının üye olduğu aktif grupları döner.
	GetUserGroups(ctx context.Context, userID string) ([]models.Group, error)

	// ListMembers, grubun üye listesini döner. İstek yapan üye olmalıdır.
	ListMembers(ctx context.Context, groupID, userID string) ([]models.GroupMember, error)

	// JoinGroup, davet koduyla gruba katılır. Eligibility aranmaz —
	// geçerli kod yeterlidir. Kapasite doluysa pkg.ErrGroupFull,
	// zaten üyeyse pkg.ErrAlreadyMember.
	JoinGroup(ctx context.Context, userID string, req *models.JoinGroupRequest) (*models.Group, error)

	// LeaveGroup, gruptan ayrılır. Sponsor ayrılamaz — önce devir veya
	// grup silme gerekir (pkg.ErrCannotLeaveAsSponsor).
	LeaveGroup(ctx context.Context, groupID, userID string, req *models.LeaveGroupRequest) error

	// RemoveMember, bir üyeyi gruptan çıkarır. Sadece sponsor yapabilir;
	// sponsor kendisi çıkarılamaz (pkg.ErrCannotRemoveSponsor).
	RemoveMember(ctx context.Context, groupID, actorID, targetUserID string) error

	// TransferOwnership, sponsor'luğu başka bir üyeye devreder.
	// İki rol değişimi + owner_id güncellemesi tek transaction'dadır —
	// hiçbir anda 0 veya 2 sponsor olmaz.
	TransferOwnership(ctx context.Context, groupID, actorID string, req *models.TransferOwnershipRequest) error

	// UpdateSettings, grup ayarlarını kısmi günceller. Sadece sponsor.
	UpdateSettings(ctx context.Context, groupID, actorID string, req *models.UpdateGroupSettingsRequest) (*models.Group, error)

	// DeleteGroup, grubu ve tüm verisini (mesajlar, reaction'lar, okuma
	// durumları, üyelikler) siler. Sadece sponsor.
	DeleteGroup(ctx context.Context, groupID, actorID string) error

	// SendInviteEmail, davet kodunu email ile gönderir.
	SendInviteEmail(ctx context.Context, groupID, actorID string, req *models.InviteEmailRequest) error
}

type groupService struct {
	db          *sql.DB // WithTx için — üyelik operasyonları atomik çalışır
	groupRepo   repository.GroupRepository
	userRepo    repository.UserRepository
	eligibility EligibilityService
	sender      email.EmailSender // nil olabilir — email konfigüre edilmemişse
	maxMembers  int
}

// NewGroupService, constructor.
//
// db: üyelik operasyonlarında WithTx ile atomik işlem için doğrudan *sql.DB
// gerekir. Repository'ler normal okumalarda kullanılır, transaction içinde
// tx-bound repo'lar oluşturulur.
//
// sender: email konfigüre edilmemişse nil geçilir; davetler sadece kod
// paylaşımıyla çalışır.
func NewGroupService(
	db *sql.DB,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	eligibility EligibilityService,
	sender email.EmailSender,
	maxMembers int,
) GroupService {
	return &groupService{
		db:          db,
		groupRepo:   groupRepo,
		userRepo:    userRepo,
		eligibility: eligibility,
		sender:      sender,
		maxMembers:  maxMembers,
	}
}

// CreateGroup, yeni grup oluşturur.
//
// Akış:
// 1. Validate + eligibility kontrolü
// 2. Davet kodu üret
// 3. Transaction: group INSERT + sponsor üyeliği (atomik)
// 4. Kod çakışırsa (UNIQUE violation) yeni kodla tekrar dene
func (s *groupService) CreateGroup(ctx context.Context, ownerID string, req *models.CreateGroupRequest) (*models.Group, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	check, err := s.eligibility.Check(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check eligibility: %w", err)
	}
	if !check.CanCreateGroup {
		return nil, fmt.Errorf("%w: requires %d active days (have %d) and %d training modules (have %d)",
			pkg.ErrNotEligible,
			models.RequiredActiveDays, check.SevenDayActivity.DaysActive,
			models.RequiredTrainingModules, check.TrainingCompletion.ModulesCompleted)
	}

	var group *models.Group

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := generateInviteCode()
		if err != nil {
			return nil, fmt.Errorf("failed to generate invite code: %w", err)
		}

		group = &models.Group{
			Name:               req.Name,
			Description:        req.Description,
			InviteCode:         code,
			Status:             models.GroupStatusActive,
			MaxMembers:         s.maxMembers,
			CurrentMemberCount: 1, // Sponsor ilk üyedir
			OwnerID:            ownerID,
			Settings: models.GroupSettings{
				IsPublic:          req.IsPublic,
				NotifyNewMessages: true,
				ActivityGoals: models.ActivityGoals{
					DailyStepsGoal:             8000,
					WeeklyFoodEntriesGoal:      14,
					MonthlyTrainingModulesGoal: 2,
				},
			},
		}

		err = s.retryOnBusy(ctx, func() error {
			return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
				txGroupRepo := repository.NewSQLiteGroupRepo(tx)

				if err := txGroupRepo.Create(ctx, group); err != nil {
					return err
				}

				member := &models.GroupMember{
					GroupID: group.ID,
					UserID:  ownerID,
					Role:    models.RoleSponsor,
				}
				return txGroupRepo.InsertMember(ctx, member)
			})
		})

		if errors.Is(err, pkg.ErrAlreadyExists) {
			continue // Kod çakıştı — yeni kodla tekrar
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create group: %w", err)
		}

		log.Printf("[group] created group %s (name=%s, sponsor=%s, code=%s)",
			group.ID, group.Name, ownerID, group.DisplayCode())
		return group, nil
	}

	return nil, fmt.Errorf("%w: could not generate a unique invite code", pkg.ErrInternal)
}

func (s *groupService) GetGroup(ctx context.Context, groupID, userID string) (*models.Group, error) {
	if err := s.requireMembership(ctx, groupID, userID); err != nil {
		return nil, err
	}
	return s.groupRepo.GetByID(ctx, groupID)
}

func (s *groupService) GetUserGroups(ctx context.Context, userID string) ([]models.Group, error) {
	return s.groupRepo.ListByUserID(ctx, userID)
}

func (s *groupService) ListMembers(ctx context.Context, groupID, userID string) ([]models.GroupMember, error) {
	if err := s.requireMembership(ctx, groupID, userID); err != nil {
		return nil, err
	}
	return s.groupRepo.ListMembers(ctx, groupID)
}

// JoinGroup, davet koduyla gruba katılır.
//
// Transaction içindeki sıra önemlidir:
// 1. InsertMember — UNIQUE(group_id, user_id) zaten-üye durumunu yakalar
// 2. IncrementMemberCountIfBelowCap — guarded UPDATE; kapasite doluysa
//    satır değişmez, false döner → ROLLBACK (üyelik de geri alınır)
// 3. Sistem bildirimi + opsiyonel tanışma mesajı
//
// Guarded UPDATE sayesinde kapasitesi 1 kalan gruba iki eşzamanlı join'den
// sadece biri başarılı olur — SQLite yazarları serialize eder, check-then-act
// penceresi yoktur.
func (s *groupService) JoinGroup(ctx context.Context, userID string, req *models.JoinGroupRequest) (*models.Group, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	group, err := s.groupRepo.GetByInviteCode(ctx, req.InviteCode)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid invite code", pkg.ErrNotFound)
		}
		return nil, err
	}
	if group.Status != models.GroupStatusActive {
		return nil, fmt.Errorf("%w: this group is no longer active", pkg.ErrNotFound)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = s.retryOnBusy(ctx, func() error {
		return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
			txGroupRepo := repository.NewSQLiteGroupRepo(tx)
			txMessageRepo := repository.NewSQLiteMessageRepo(tx)

			member := &models.GroupMember{
				GroupID: group.ID,
				UserID:  userID,
				Role:    models.RoleMember,
			}
			if err := txGroupRepo.InsertMember(ctx, member); err != nil {
				return err // ErrAlreadyMember olabilir
			}

			ok, err := txGroupRepo.IncrementMemberCountIfBelowCap(ctx, group.ID)
			if err != nil {
				return err
			}
			if !ok {
				return pkg.ErrGroupFull
			}

			notice := &models.GroupMessage{
				GroupID:     group.ID,
				SenderID:    models.SystemSenderID,
				Content:     fmt.Sprintf("%s joined the group", displayName(user)),
				MessageType: models.MessageTypeSystem,
			}
			if err := txMessageRepo.Create(ctx, notice); err != nil {
				return err
			}

			// Opsiyonel tanışma mesajı — normal text mesajı olarak eklenir
			if req.Message != "" {
				intro := &models.GroupMessage{
					GroupID:     group.ID,
					SenderID:    userID,
					Content:     req.Message,
					MessageType: models.MessageTypeText,
				}
				if err := txMessageRepo.Create(ctx, intro); err != nil {
					return err
				}
			}

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	group.CurrentMemberCount++
	log.Printf("[group] user %s joined group %s", userID, group.ID)
	return group, nil
}

func (s *groupService) LeaveGroup(ctx context.Context, groupID, userID string, req *models.LeaveGroupRequest) error {
	member, err := s.getMember(ctx, groupID, userID)
	if err != nil {
		return err
	}

	// Sponsor ayrılamaz — grup sponsorsuz kalamaz.
	if member.Role == models.RoleSponsor {
		return fmt.Errorf("%w: transfer ownership or delete the group first", pkg.ErrCannotLeaveAsSponsor)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	err = s.retryOnBusy(ctx, func() error {
		return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
			txGroupRepo := repository.NewSQLiteGroupRepo(tx)
			txMessageRepo := repository.NewSQLiteMessageRepo(tx)

			if err := txGroupRepo.DeleteMember(ctx, groupID, userID); err != nil {
				return err
			}
			if err := txGroupRepo.DecrementMemberCount(ctx, groupID); err != nil {
				return err
			}

			notice := &models.GroupMessage{
				GroupID:     groupID,
				SenderID:    models.SystemSenderID,
				Content:     fmt.Sprintf("%s left the group", displayName(user)),
				MessageType: models.MessageTypeSystem,
			}
			return txMessageRepo.Create(ctx, notice)
		})
	})
	if err != nil {
		return err
	}

	if req != nil && req.Reason != "" {
		log.Printf("[group] user %s left group %s (reason: %s)", userID, groupID, req.Reason)
	} else {
		log.Printf("[group] user %s left group %s", userID, groupID)
	}
	return nil
}

func (s *groupService) RemoveMember(ctx context.Context, groupID, actorID, targetUserID string) error {
	actor, err := s.getMember(ctx, groupID, actorID)
	if err != nil {
		return err
	}
	if !actor.Role.CanModerate() {
		return fmt.Errorf("%w: only the sponsor can remove members", pkg.ErrForbidden)
	}

	target, err := s.getMember(ctx, groupID, targetUserID)
	if err != nil {
		return err
	}
	if target.Role == models.RoleSponsor {
		return fmt.Errorf("%w: transfer ownership first", pkg.ErrCannotRemoveSponsor)
	}

	user, err := s.userRepo.GetByID(ctx, targetUserID)
	if err != nil {
		return err
	}

	err = s.retryOnBusy(ctx, func() error {
		return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
			txGroupRepo := repository.NewSQLiteGroupRepo(tx)
			txMessageRepo := repository.NewSQLiteMessageRepo(tx)

			if err := txGroupRepo.DeleteMember(ctx, groupID, targetUserID); err != nil {
				return err
			}
			if err := txGroupRepo.DecrementMemberCount(ctx, groupID); err != nil {
				return err
			}

			notice := &models.GroupMessage{
				GroupID:     groupID,
				SenderID:    models.SystemSenderID,
				Content:     fmt.Sprintf("%s was removed from the group", displayName(user)),
				MessageType: models.MessageTypeSystem,
			}
			return txMessageRepo.Create(ctx, notice)
		})
	})
	if err != nil {
		return err
	}

	log.Printf("[group] user %s removed from group %s by %s", targetUserID, groupID, actorID)
	return nil
}

// TransferOwnership, sponsor'luğu devreder.
//
// İki rol flip'i + owner_id güncellemesi aynı transaction'dadır:
// eski sponsor → member, yeni üye → sponsor, groups.owner_id → yeni sponsor.
// Herhangi biri başarısız olursa ROLLBACK — asla yarım devir olmaz.
func (s *groupService) TransferOwnership(ctx context.Context, groupID, actorID string, req *models.TransferOwnershipRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	actor, err := s.getMember(ctx, groupID, actorID)
	if err != nil {
		return err
	}
	if !actor.Role.CanModerate() {
		return fmt.Errorf("%w: only the sponsor can transfer ownership", pkg.ErrForbidden)
	}

	if req.ToUserID == actorID {
		return fmt.Errorf("%w: cannot transfer ownership to yourself", pkg.ErrBadRequest)
	}

	target, err := s.getMember(ctx, groupID, req.ToUserID)
	if err != nil {
		return err // ErrNotAMember — hedef grupta değil
	}

	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}

	newSponsor, err := s.userRepo.GetByID(ctx, target.UserID)
	if err != nil {
		return err
	}

	err = s.retryOnBusy(ctx, func() error {
		return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
			txGroupRepo := repository.NewSQLiteGroupRepo(tx)
			txMessageRepo := repository.NewSQLiteMessageRepo(tx)

			// Mevcut sponsor'un rolü member'a düşer. actor super_admin ise
			// rol değişimi yine GERÇEK sponsor (owner_id) üzerinde yapılır.
			if err := txGroupRepo.UpdateMemberRole(ctx, groupID, group.OwnerID, models.RoleMember); err != nil {
				return err
			}
			if err := txGroupRepo.UpdateMemberRole(ctx, groupID, target.UserID, models.RoleSponsor); err != nil {
				return err
			}
			if err := txGroupRepo.UpdateOwner(ctx, groupID, target.UserID); err != nil {
				return err
			}

			notice := &models.GroupMessage{
				GroupID:     groupID,
				SenderID:    models.SystemSenderID,
				Content:     fmt.Sprintf("%s is now the group sponsor", displayName(newSponsor)),
				MessageType: models.MessageTypeSystem,
			}
			return txMessageRepo.Create(ctx, notice)
		})
	})
	if err != nil {
		return err
	}

	log.Printf("[group] ownership of group %s transferred %s → %s", groupID, group.OwnerID, target.UserID)
	return nil
}

func (s *groupService) UpdateSettings(ctx context.Context, groupID, actorID string, req *models.UpdateGroupSettingsRequest) (*models.Group, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	actor, err := s.getMember(ctx, groupID, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.Role.CanModerate() {
		return nil, fmt.Errorf("%w: only the sponsor can update group settings", pkg.ErrForbidden)
	}

	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	// Partial patch — nil field'lar mevcut değerine dokunulmadan bırakılır
	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.Description != nil {
		group.Description = *req.Description
	}
	if req.IsPublic != nil {
		group.Settings.IsPublic = *req.IsPublic
	}
	if req.RequireApproval != nil {
		group.Settings.RequireApproval = *req.RequireApproval
	}
	if req.AllowMemberInvites != nil {
		group.Settings.AllowMemberInvites = *req.AllowMemberInvites
	}
	if req.DailyStepsGoal != nil {
		group.Settings.ActivityGoals.DailyStepsGoal = *req.DailyStepsGoal
	}
	if req.WeeklyFoodEntriesGoal != nil {
		group.Settings.ActivityGoals.WeeklyFoodEntriesGoal = *req.WeeklyFoodEntriesGoal
	}
	if req.MonthlyTrainingModulesGoal != nil {
		group.Settings.ActivityGoals.MonthlyTrainingModulesGoal = *req.MonthlyTrainingModulesGoal
	}
	if req.NotifyNewMessages != nil {
		group.Settings.NotifyNewMessages = *req.NotifyNewMessages
	}
	if req.NotifyMemberActivity != nil {
		group.Settings.NotifyMemberActivity = *req.NotifyMemberActivity
	}

	if err := s.groupRepo.UpdateSettings(ctx, group); err != nil {
		return nil, err
	}

	return group, nil
}

// DeleteGroup, grubu ve tüm verisini siler.
//
// SQLite FK cascade'ine güvenmek yerine silme sırası transaction içinde
// açıkça yazılır: reactions → messages → read states → members → group.
// Foreign key'ler kapalı derlenmiş bir SQLite build'inde bile tutarlı kalır.
func (s *groupService) DeleteGroup(ctx context.Context, groupID, actorID string) error {
	actor, err := s.getMember(ctx, groupID, actorID)
	if err != nil {
		return err
	}
	if !actor.Role.CanModerate() {
		return fmt.Errorf("%w: only the sponsor can delete the group", pkg.ErrForbidden)
	}

	err = s.retryOnBusy(ctx, func() error {
		return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
			txGroupRepo := repository.NewSQLiteGroupRepo(tx)
			txMessageRepo := repository.NewSQLiteMessageRepo(tx)
			txReactionRepo := repository.NewSQLiteReactionRepo(tx)
			txReadStateRepo := repository.NewSQLiteReadStateRepo(tx)

			if err := txReactionRepo.DeleteByGroupID(ctx, groupID); err != nil {
				return err
			}
			if err := txMessageRepo.DeleteByGroupID(ctx, groupID); err != nil {
				return err
			}
			if err := txReadStateRepo.DeleteByGroupID(ctx, groupID); err != nil {
				return err
			}
			if err := txGroupRepo.DeleteMembersByGroup(ctx, groupID); err != nil {
				return err
			}
			return txGroupRepo.Delete(ctx, groupID)
		})
	})
	if err != nil {
		return err
	}

	log.Printf("[group] deleted group %s by user %s", groupID, actorID)
	return nil
}

func (s *groupService) SendInviteEmail(ctx context.Context, groupID, actorID string, req *models.InviteEmailRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	if s.sender == nil {
		return fmt.Errorf("%w: email sending is not configured", pkg.ErrBadRequest)
	}

	actor, err := s.getMember(ctx, groupID, actorID)
	if err != nil {
		return err
	}

	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}

	// allow_member_invites kapalıysa sadece sponsor davet gönderebilir
	if !group.Settings.AllowMemberInvites && !actor.Role.CanModerate() {
		return fmt.Errorf("%w: only the sponsor can send invites in this group", pkg.ErrForbidden)
	}

	inviter, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}

	if err := s.sender.SendGroupInvite(ctx, req.Email, group.Name, group.DisplayCode(), displayName(inviter)); err != nil {
		return err
	}

	log.Printf("[group] invite email sent for group %s by user %s", groupID, actorID)
	return nil
}

// ─── Private Helpers ───

// requireMembership, kullanıcının grup üyesi olduğunu doğrular.
func (s *groupService) requireMembership(ctx context.Context, groupID, userID string) error {
	_, err := s.getMember(ctx, groupID, userID)
	return err
}

// getMember, üyelik satırını döner; yoksa pkg.ErrNotAMember.
func (s *groupService) getMember(ctx context.Context, groupID, userID string) (*models.GroupMember, error) {
	member, err := s.groupRepo.GetMember(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, pkg.ErrNotAMember
		}
		return nil, err
	}
	return member, nil
}

// retryOnBusy, SQLite'ın geçici lock hatasında operasyonu BİR kez tekrar
// dener. İkinci denemede de busy ise pkg.ErrUnavailable döner — client
// tarafı "tekrar dene" olarak yorumlar.
func (s *groupService) retryOnBusy(ctx context.Context, fn func() error) error {
	err := fn()
	if !database.IsBusy(err) {
		return err
	}

	log.Printf("[group] database busy, retrying once: %v", err)
	if err := fn(); err != nil {
		if database.IsBusy(err) {
			return fmt.Errorf("%w: storage is busy", pkg.ErrUnavailable)
		}
		return err
	}
	return nil
}

// generateInviteCode, crypto/rand ile 6 karakterlik davet kodu üretir.
// Modulo bias (256 mod 36) davet kodu için ihmal edilebilir düzeydedir.
func generateInviteCode() (string, error) {
	buf := make([]byte, models.InviteCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	code := make([]byte, models.InviteCodeLength)
	for i, b := range buf {
		code[i] = inviteCodeCharset[int(b)%len(inviteCodeCharset)]
	}
	return string(code), nil
}

// displayName, kullanıcının görünen adını döner (yoksa username).
func displayName(u *models.User) string {
	if u.DisplayName != nil && *u.DisplayName != "" {
		return *u.DisplayName
	}
	return u.Username
}
