// Package models — Group domain modeli.
//
// Group, en fazla max_members üyeli bir accountability grubunu temsil eder.
// Gruba katılım 6 karakterlik davet koduyla olur; grubun tam olarak bir
// sponsor'u vardır (owner_id) ve tüm yönetim yetkisi ondadır.
package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// GroupStatus, grubun yaşam döngüsü durumu.
type GroupStatus string

const (
	GroupStatusActive   GroupStatus = "active"
	GroupStatusArchived GroupStatus = "archived"
)

// InviteCodeLength, davet kodunun karakter sayısı (tire hariç).
const InviteCodeLength = 6

// Group, bir accountability grubunu temsil eder.
// DB'deki "groups" tablosunun Go karşılığı.
//
// CurrentMemberCount türetilmiş bir değerdir (group_members satır sayısı)
// ama kapasite kontrolünün tek bir atomik UPDATE ile yapılabilmesi için
// satırda tutulur. Invariant: 0 < CurrentMemberCount <= MaxMembers.
type Group struct {
	ID                 string        `json:"id"`
	Name               string        `json:"name"`
	Description        string        `json:"description"`
	InviteCode         string        `json:"invite_code"` // Tiresiz saklanır, gösterim için DisplayCode()
	Status             GroupStatus   `json:"status"`
	MaxMembers         int           `json:"max_members"`
	CurrentMemberCount int           `json:"current_member_count"`
	OwnerID            string        `json:"owner_id"`
	Settings           GroupSettings `json:"settings"`
	CreatedAt          time.Time     `json:"created_at"`
}

// GroupSettings, grup ayarları — sponsor tarafından patch'lenebilir.
type GroupSettings struct {
	IsPublic           bool          `json:"is_public"`
	RequireApproval    bool          `json:"require_approval"`
	AllowMemberInvites bool          `json:"allow_member_invites"`
	ActivityGoals      ActivityGoals `json:"activity_goals"`
	NotifyNewMessages  bool          `json:"notify_new_messages"`
	NotifyMemberActivity bool        `json:"notify_member_activity"`
}

// ActivityGoals, grubun ortak aktivite hedefleri.
type ActivityGoals struct {
	DailyStepsGoal             int `json:"daily_steps_goal"`
	WeeklyFoodEntriesGoal      int `json:"weekly_food_entries_goal"`
	MonthlyTrainingModulesGoal int `json:"monthly_training_modules_goal"`
}

// DisplayCode, davet kodunu kullanıcıya gösterilen XXX-XXX formatında döner.
// Saklanan form tiresizdir; tire sadece okunabilirlik içindir.
func (g *Group) DisplayCode() string {
	if len(g.InviteCode) != InviteCodeLength {
		return g.InviteCode
	}
	return g.InviteCode[:3] + "-" + g.InviteCode[3:]
}

// CreateGroupRequest, yeni grup oluşturma isteği.
type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
}

// Validate, CreateGroupRequest kontrolü.
func (r *CreateGroupRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	nameLen := utf8.RuneCountInString(r.Name)
	if nameLen < 3 || nameLen > 64 {
		return fmt.Errorf("group name must be between 3 and 64 characters")
	}

	r.Description = strings.TrimSpace(r.Description)
	if utf8.RuneCountInString(r.Description) > 280 {
		return fmt.Errorf("description must be at most 280 characters")
	}

	return nil
}

// JoinGroupRequest, davet koduyla gruba katılma isteği.
type JoinGroupRequest struct {
	InviteCode string `json:"invite_code"`
	Message    string `json:"message"` // Opsiyonel tanışma mesajı
}

// Validate, davet kodunu normalize eder ve kontrol eder.
// Kullanıcı kodu "ABC-123" veya "abc123" yazabilir — tireler atılır,
// büyük harfe çevrilir. Saklanan form her zaman 6 büyük alfanumerik karakter.
func (r *JoinGroupRequest) Validate() error {
	r.InviteCode = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(r.InviteCode), "-", ""))
	if len(r.InviteCode) != InviteCodeLength {
		return fmt.Errorf("invite code must be %d characters", InviteCodeLength)
	}
	for _, ch := range r.InviteCode {
		if !((ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')) {
			return fmt.Errorf("invite code can only contain letters and numbers")
		}
	}

	r.Message = strings.TrimSpace(r.Message)
	if utf8.RuneCountInString(r.Message) > 280 {
		return fmt.Errorf("message must be at most 280 characters")
	}

	return nil
}

// UpdateGroupSettingsRequest, kısmi ayar güncellemesi (patch).
// Pointer field'lar "gönderilmedi" (nil) ile "false/0 yap" ayrımını sağlar —
// nil field'lar mevcut değerine dokunulmadan bırakılır.
type UpdateGroupSettingsRequest struct {
	Name                       *string `json:"name"`
	Description                *string `json:"description"`
	IsPublic                   *bool   `json:"is_public"`
	RequireApproval            *bool   `json:"require_approval"`
	AllowMemberInvites         *bool   `json:"allow_member_invites"`
	DailyStepsGoal             *int    `json:"daily_steps_goal"`
	WeeklyFoodEntriesGoal      *int    `json:"weekly_food_entries_goal"`
	MonthlyTrainingModulesGoal *int    `json:"monthly_training_modules_goal"`
	NotifyNewMessages          *bool   `json:"notify_new_messages"`
	NotifyMemberActivity       *bool   `json:"notify_member_activity"`
}

// Validate, UpdateGroupSettingsRequest kontrolü.
func (r *UpdateGroupSettingsRequest) Validate() error {
	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		nameLen := utf8.RuneCountInString(trimmed)
		if nameLen < 3 || nameLen > 64 {
			return fmt.Errorf("group name must be between 3 and 64 characters")
		}
		*r.Name = trimmed
	}
	if r.Description != nil {
		trimmed := strings.TrimSpace(*r.Description)
		if utf8.RuneCountInString(trimmed) > 280 {
			return fmt.Errorf("description must be at most 280 characters")
		}
		*r.Description = trimmed
	}
	for _, goal := range []*int{r.DailyStepsGoal, r.WeeklyFoodEntriesGoal, r.MonthlyTrainingModulesGoal} {
		if goal != nil && *goal < 0 {
			return fmt.Errorf("activity goals cannot be negative")
		}
	}
	return nil
}

// TransferOwnershipRequest, sponsor'luğun başka bir üyeye devri.
type TransferOwnershipRequest struct {
	ToUserID string `json:"to_user_id"`
}

// Validate, TransferOwnershipRequest kontrolü.
func (r *TransferOwnershipRequest) Validate() error {
	r.ToUserID = strings.TrimSpace(r.ToUserID)
	if r.ToUserID == "" {
		return fmt.Errorf("to_user_id is required")
	}
	return nil
}

// LeaveGroupRequest, gruptan ayrılma isteği.
type LeaveGroupRequest struct {
	Reason string `json:"reason"` // Opsiyonel — loglanır, saklanmaz
}

// InviteEmailRequest, davet kodunun email ile gönderilmesi isteği.
type InviteEmailRequest struct {
	Email string `json:"email"`
}

// Validate, InviteEmailRequest kontrolü.
func (r *InviteEmailRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if !emailRegex.MatchString(r.Email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}
