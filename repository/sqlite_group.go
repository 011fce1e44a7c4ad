package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/yalcinkaya/fitcircle/database"
	"github.com/yalcinkaya/fitcircle/models"
	"github.com/yalcinkaya/fitcircle/pkg"
)

// groupColumns, SELECT listesi — Scan sırası scanGroup ile eşleşmeli.
const groupColumns = `id, name, description, invite_code, status, max_members,
	current_member_count, owner_id, is_public, require_approval, allow_member_invites,
	daily_steps_goal, weekly_food_entries_goal, monthly_training_modules_goal,
	notify_new_messages, notify_member_activity, created_at`

// sqliteGroupRepo, GroupRepository interface'inin SQLite implementasyonu.
type sqliteGroupRepo struct {
	db database.TxQuerier
}

// NewSQLiteGroupRepo, constructor — interface döner.
func NewSQLiteGroupRepo(db database.TxQuerier) GroupRepository {
	return &sqliteGroupRepo{db: db}
}

func (r *sqliteGroupRepo) Create(ctx context.Context, group *models.Group) error {
	query := `
		INSERT INTO groups (id, name, description, invite_code, status, max_members,
			current_member_count, owner_id, is_public, require_approval, allow_member_invites,
			daily_steps_goal, weekly_food_entries_goal, monthly_training_modules_goal,
			notify_new_messages, notify_member_activity)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		group.Name,
		group.Description,
		group.InviteCode,
		group.Status,
		group.MaxMembers,
		group.CurrentMemberCount,
		group.OwnerID,
		group.Settings.IsPublic,
		group.Settings.RequireApproval,
		group.Settings.AllowMemberInvites,
		group.Settings.ActivityGoals.DailyStepsGoal,
		group.Settings.ActivityGoals.WeeklyFoodEntriesGoal,
		group.Settings.ActivityGoals.MonthlyTrainingModulesGoal,
		group.Settings.NotifyNewMessages,
		group.Settings.NotifyMemberActivity,
	).Scan(&group.ID, &group.CreatedAt)

	if err != nil {
		// invite_code UNIQUE çakışması — caller yeni kod üretip tekrar dener.
		if isUniqueViolation(err) && strings.Contains(err.Error(), "invite_code") {
			return fmt.Errorf("%w: invite code collision", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create group: %w", err)
	}

	return nil
}

func (r *sqliteGroupRepo) GetByID(ctx context.Context, id string) (*models.Group, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+groupColumns+` FROM groups WHERE id = ?`, id)
	return scanGroup(row)
}

func (r *sqliteGroupRepo) GetByInviteCode(ctx context.Context, code string) (*models.Group, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+groupColumns+` FROM groups WHERE invite_code = ?`, code)
	return scanGroup(row)
}

func (r *sqliteGroupRepo) ListByUserID(ctx context.Context, userID string) ([]models.Group, error) {
	query := `
		SELECT g.id, g.name, g.description, g.invite_code, g.status, g.max_members,
			g.current_member_count, g.owner_id, g.is_public, g.require_approval,
			g.allow_member_invites, g.daily_steps_goal, g.weekly_food_entries_goal,
			g.monthly_training_modules_goal, g.notify_new_messages, g.notify_member_activity,
			g.created_at
		FROM groups g
		JOIN group_members gm ON gm.group_id = g.id
		WHERE gm.user_id = ? AND g.status = 'active'
		ORDER BY gm.joined_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups by user: %w", err)
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		group, err := scanGroupRow(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, *group)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group rows: %w", err)
	}

	return groups, nil
}

// IncrementMemberCountIfBelowCap, kapasite kontrolünü ve sayaç artışını
// TEK bir guarded UPDATE'te yapar. SQLite yazarları serialize eder;
// aynı transaction'daki üye INSERT'i ile birlikte check-then-act race'i
// imkânsız hale gelir: kapasitesi 1 kalan gruba iki eşzamanlı join'den
// sadece biri satırı değiştirebilir.
func (r *sqliteGroupRepo) IncrementMemberCountIfBelowCap(ctx context.Context, groupID string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE groups
		SET current_member_count = current_member_count + 1
		WHERE id = ? AND status = 'active' AND current_member_count < max_members`,
		groupID)
	if err != nil {
		return false, fmt.Errorf("failed to increment member count: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return affected > 0, nil
}

func (r *sqliteGroupRepo) DecrementMemberCount(ctx context.Context, groupID string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE groups
		SET current_member_count = current_member_count - 1
		WHERE id = ? AND current_member_count > 0`,
		groupID)
	if err != nil {
		return fmt.Errorf("failed to decrement member count: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

func (r *sqliteGroupRepo) InsertMember(ctx context.Context, member *models.GroupMember) error {
	query := `
		INSERT INTO group_members (id, group_id, user_id, role)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?)
		RETURNING id, joined_at, last_active_at`

	err := r.db.QueryRowContext(ctx, query,
		member.GroupID, member.UserID, member.Role,
	).Scan(&member.ID, &member.JoinedAt, &member.LastActiveAt)

	if err != nil {
		if isUniqueViolation(err) {
			return pkg.ErrAlreadyMember
		}
		return fmt.Errorf("failed to insert member: %w", err)
	}

	return nil
}

func (r *sqliteGroupRepo) DeleteMember(ctx context.Context, groupID, userID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM group_members WHERE group_id = ? AND user_id = ?`, groupID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotAMember
	}

	return nil
}

func (r *sqliteGroupRepo) GetMember(ctx context.Context, groupID, userID string) (*models.GroupMember, error) {
	query := `
		SELECT id, group_id, user_id, role, joined_at, last_active_at
		FROM group_members WHERE group_id = ? AND user_id = ?`

	member := &models.GroupMember{}
	err := r.db.QueryRowContext(ctx, query, groupID, userID).Scan(
		&member.ID, &member.GroupID, &member.UserID,
		&member.Role, &member.JoinedAt, &member.LastActiveAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return member, nil
}

func (r *sqliteGroupRepo) ListMembers(ctx context.Context, groupID string) ([]models.GroupMember, error) {
	// LEFT JOIN — kullanıcı silinmiş olsa bile üyelik satırı görünür.
	query := `
		SELECT gm.id, gm.group_id, gm.user_id, gm.role, gm.joined_at, gm.last_active_at,
		       u.id, u.username, u.display_name
		FROM group_members gm
		LEFT JOIN users u ON u.id = gm.user_id
		WHERE gm.group_id = ?
		ORDER BY gm.joined_at ASC`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []models.GroupMember
	for rows.Next() {
		var m models.GroupMember
		var user models.User
		var userID, username sql.NullString

		if err := rows.Scan(
			&m.ID, &m.GroupID, &m.UserID, &m.Role, &m.JoinedAt, &m.LastActiveAt,
			&userID, &username, &user.DisplayName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}

		if userID.Valid {
			user.ID = userID.String
			user.Username = username.String
			m.User = &user
		}

		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member rows: %w", err)
	}

	return members, nil
}

func (r *sqliteGroupRepo) UpdateMemberRole(ctx context.Context, groupID, userID string, role models.MemberRole) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE group_members SET role = ? WHERE group_id = ? AND user_id = ?`,
		role, groupID, userID)
	if err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotAMember
	}

	return nil
}

func (r *sqliteGroupRepo) TouchMemberActivity(ctx context.Context, groupID, userID string) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE group_members SET last_active_at = CURRENT_TIMESTAMP
		 WHERE group_id = ? AND user_id = ?`, groupID, userID); err != nil {
		return fmt.Errorf("failed to touch member activity: %w", err)
	}
	return nil
}

func (r *sqliteGroupRepo) UpdateSettings(ctx context.Context, group *models.Group) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE groups SET
			name = ?, description = ?, is_public = ?, require_approval = ?,
			allow_member_invites = ?, daily_steps_goal = ?, weekly_food_entries_goal = ?,
			monthly_training_modules_goal = ?, notify_new_messages = ?, notify_member_activity = ?
		WHERE id = ?`,
		group.Name,
		group.Description,
		group.Settings.IsPublic,
		group.Settings.RequireApproval,
		group.Settings.AllowMemberInvites,
		group.Settings.ActivityGoals.DailyStepsGoal,
		group.Settings.ActivityGoals.WeeklyFoodEntriesGoal,
		group.Settings.ActivityGoals.MonthlyTrainingModulesGoal,
		group.Settings.NotifyNewMessages,
		group.Settings.NotifyMemberActivity,
		group.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update group settings: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

func (r *sqliteGroupRepo) UpdateOwner(ctx context.Context, groupID, ownerID string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE groups SET owner_id = ? WHERE id = ?`, ownerID, groupID)
	if err != nil {
		return fmt.Errorf("failed to update group owner: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

func (r *sqliteGroupRepo) Delete(ctx context.Context, groupID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = ?`, groupID)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

func (r *sqliteGroupRepo) DeleteMembersByGroup(ctx context.Context, groupID string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM group_members WHERE group_id = ?`, groupID); err != nil {
		return fmt.Errorf("failed to delete group members: %w", err)
	}
	return nil
}

// rowScanner, *sql.Row ve *sql.Rows'un ortak Scan imzası.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanGroup(row *sql.Row) (*models.Group, error) {
	group, err := scanGroupFrom(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan group: %w", err)
	}
	return group, nil
}

func scanGroupRow(rows *sql.Rows) (*models.Group, error) {
	group, err := scanGroupFrom(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan group row: %w", err)
	}
	return group, nil
}

func scanGroupFrom(s rowScanner) (*models.Group, error) {
	group := &models.Group{}
	err := s.Scan(
		&group.ID, &group.Name, &group.Description, &group.InviteCode,
		&group.Status, &group.MaxMembers, &group.CurrentMemberCount, &group.OwnerID,
		&group.Settings.IsPublic, &group.Settings.RequireApproval,
		&group.Settings.AllowMemberInvites,
		&group.Settings.ActivityGoals.DailyStepsGoal,
		&group.Settings.ActivityGoals.WeeklyFoodEntriesGoal,
		&group.Settings.ActivityGoals.MonthlyTrainingModulesGoal,
		&group.Settings.NotifyNewMessages, &group.Settings.NotifyMemberActivity,
		&group.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return group, nil
}
