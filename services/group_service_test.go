package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/yalcinkaya/fitcircle/models"
	"github.com/yalcinkaya/fitcircle/pkg"
)

func TestCreateGroupRequiresEligibility(t *testing.T) {
	ts := newTestServices(t)
	user := ts.createUser(t, "newcomer")

	_, err := ts.groups.CreateGroup(context.Background(), user.ID, &models.CreateGroupRequest{
		Name: "Morning Walkers",
	})
	if !errors.Is(err, pkg.ErrNotEligible) {
		t.Errorf("expected ErrNotEligible, got %v", err)
	}
}

func TestCreateGroupMakesOwnerSponsor(t *testing.T) {
	ts := newTestServices(t)
	owner := ts.createUser(t, "owner")
	ts.makeEligible(t, owner.ID)

	group := ts.createGroup(t, owner.ID, "Morning Walkers")

	if group.OwnerID != owner.ID {
		t.Errorf("expected owner %s, got %s", owner.ID, group.OwnerID)
	}
	if group.CurrentMemberCount != 1 {
		t.Errorf("expected member count 1, got %d", group.CurrentMemberCount)
	}
	if len(group.InviteCode) != models.InviteCodeLength {
		t.Errorf("expected %d-char invite code, got %q", models.InviteCodeLength, group.InviteCode)
	}

	members, err := ts.groups.ListMembers(context.Background(), group.ID, owner.ID)
	if err != nil {
		t.Fatalf("ListMembers failed: %v", err)
	}
	if len(members) != 1 || members[0].Role != models.RoleSponsor {
		t.Errorf("expected single sponsor member, got %+v", members)
	}
}

func TestJoinGroupDoesNotRequireEligibility(t *testing.T) {
	ts := newTestServices(t)
	owner := ts.createUser(t, "owner")
	ts.makeEligible(t, owner.ID)
	group := ts.createGroup(t, owner.ID, "Morning Walkers")

	// Hiç aktivitesi olmayan kullanıcı katılabilir
	joiner := ts.createUser(t, "joiner")
	joined := ts.joinGroup(t, joiner.ID, group.InviteCode)

	if joined.CurrentMemberCount != 2 {
		t.Errorf("expected member count 2, got %d", joined.CurrentMemberCount)
	}
}

func TestJoinGroupNormalizesInviteCode(t *testing.T) {
	ts := newTestServices(t)
	owner := ts.createUser(t, "owner")
	ts.makeEligible(t, owner.ID)
	group := ts.createGroup(t, owner.ID, "Morning Walkers")

	// Kod tireyle ve küçük harfle yazılsa da kabul edilir
	display := strings.ToLower(group.DisplayCode())
	joiner := ts.createUser(t, "joiner")
	if _, err := ts.groups.JoinGroup(context.Background(), joiner.ID, &models.JoinGroupRequest{
		InviteCode: display,
	}); err != nil {
		t.Errorf("expected normalized code %q to work: %v", display, err)
	}
}

func TestJoinGroupInvalidCode(t *testing.T) {
	ts := newTestServices(t)
	joiner := ts.createUser(t, "joiner")

	_, err := ts.groups.JoinGroup(context.Background(), joiner.ID, &models.JoinGroupRequest{
		InviteCode: "ZZZZZZ",
	})
	if !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown code, got %v", err)
	}
}

func TestJoinGroupTwice(t *testing.T) {
	ts := newTestServices(t)
	owner := ts.createUser(t, "owner")
	ts.makeEligible(t, owner.ID)
	group := ts.createGroup(t, owner.ID, "Morning Walkers")

	joiner := ts.createUser(t, "joiner")
	ts.joinGroup(t, joiner.ID, group.InviteCode)

	_, err := ts.groups.JoinGroup(context.Background(), joiner.ID, &models.JoinGroupRequest{
		InviteCode: group.InviteCode,
	})
	if !errors.Is(err, pkg.ErrAlreadyMember) {
		t.Errorf("expected ErrAlreadyMember, got %v", err)
	}
}

func TestJoinGroupAtCapacity(t *testing.T) {
	ts := newTestServices(t)
	owner := ts.createUser(t, "owner")
	ts.makeEligible(t, owner.ID)
	group := ts.createGroup(t, owner.ID, "Morning Walkers")
	ts.fillGroup(t, group)

	late := ts.createUser(t, "latecomer")
	_, err := ts.groups.JoinGroup(context.Background(), late.ID, &models.JoinGroupRequest{
		InviteCode: group.InviteCode,
	})
	if !errors.Is(err, pkg.ErrGroupFull) {
		t.Errorf("expected ErrGroupFull, got %v", err)
	}

	// Başarısız katılma sayaç ve üyelik bırakmamalı
	found, err := ts.repos.Group.GetByID(context.Background(), group.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if found.CurrentMemberCount != found.MaxMembers {
		t.Errorf("expected count to stay at cap %d, got %d", found.MaxMembers, found.CurrentMemberCount)
	}
	if _, err := ts.repos.Group.GetMember(context.Background(), group.ID, late.ID); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("expected no membership row after failed join, got %v", err)
	}
}

// TestConcurrentJoinsRespectCapacity — tek slotu kalan gruba eşzamanlı
// katılma denemelerinden tam olarak biri başarılı olmalı.
func TestConcurrentJoinsRespectCapacity(t *testing.T) {
	ts := newTestServices(t)
	owner := ts.createUser(t, "owner")
	ts.makeEligible(t, owner.ID)
	group := ts.createGroup(t, owner.ID, "Morning Walkers")

	// 10 kapasiteli grubu 9 üyeye getir — 1 slot kalır
	for i := 1; i < group.MaxMembers-1; i++ {
		filler := ts.createUser(t, fmt.Sprintf("filler%02d", i))
		ts.joinGroup(t, filler.ID, group.InviteCode)
	}

	const contenders = 4
	results := make(chan error, contenders)
	var wg sync.WaitGroup

	for i := 0; i < contenders; i++ {
		user := ts.createUser(t, fmt.Sprintf("contender%d", i))
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			_, err := ts.groups.JoinGroup(context.Background(), userID, &models.JoinGroupRequest{
				InviteCode: group.InviteCode,
			})
			results <- err
		}(user.ID)
	}
	wg.Wait()
	close(results)

	successes, full := 0, 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, pkg.ErrGroupFull), errors.Is(err, pkg.ErrUnavailable):
			full++
		default:
			t.Errorf("unexpected join error: %v", err)
		}
	}
	if successes != 1 {
		t.Errorf("expected exactly 1 successful join, got %d (rejected: %d)", successes, full)
	}

	found, err := ts.repos.Group.GetByID(context.Background(), group.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if found.CurrentMemberCount > found.MaxMembers {
		t.Errorf("capacity invariant broken: %d > %d", found.CurrentMemberCount, found.MaxMembers)
	}
}

func TestJoinPostsSystemNotice(t *testing.T) {
	ts := newTestServices(t)
	owner := ts.createUser(t, "owner")
	ts.makeEligible(t, owner.ID)
	group := ts.createGroup(t, owner.ID, "Morning Walkers")

	joiner := ts.createUser(t, "joiner")
	ts.joinGroup(t, joiner.ID, group.InviteCode)

	page, err := ts.repos.Message.GetByGroupID(context.Background(), group.ID, "", 10)
	if err != nil {
		t.Fatalf("GetByGroupID failed: %v", err)
	}
	if len(page.Messages) != 1 {
		t.Fatalf("expected 1 system notice, got %d messages", len(page.Messages))
	}
	notice := page.Messages[0]
	if notice.MessageType != models.MessageTypeSystem {
		t.Errorf("expected system notification, got %s", notice.MessageType)
	}
	if notice.SenderID != models.SystemSenderID {
		t.Errorf("expected system sender, got %s", notice.SenderID)
	}
	if !strings.Contains(notice.Content, "joiner") {
		t.Errorf("expected notice to mention the joiner, got %q", notice.Content)
	}
}

func TestLeaveGroupAsSponsorRefused(t *testing.T) {
	ts := newTestServices(t)
	owner := ts.createUser(t, "owner")
	ts.makeEligible(t, owner.ID)
	group := ts.createGroup(t, owner.ID, "Morning Walkers")

	err := ts.groups.LeaveGroup(context.Background(), group.ID, owner.ID, nil)
	if !errors.Is(err, pkg.ErrCannotLeaveAsSponsor) {
		t.Errorf("expected ErrCannotLeaveAsSponsor, got %v", err)
	}
}

func TestLeaveGroupDecrementsCount(t *testing.T) {
	ts := newTestServices(t)
	owner := ts.createUser(t, "owner")
	ts.makeEligible(t, owner.ID)
	group := ts.createGroup(t, owner.ID, "Morning Walkers")

	joiner := ts.createUser(t, "joiner")
	ts.joinGroup(t, joiner.ID, group.InviteCode)

	ctx := context.Background()
	if err := ts.groups.LeaveGroup(ctx, group.ID, joiner.ID, &models.LeaveGroupRequest{Reason: "too busy"}); err != nil {
		t.Fatalf("LeaveGroup failed: %v", err)
	}

	found, err := ts.repos.Group.GetByID(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if found.CurrentMemberCount != 1 {
		t.Errorf("expected member count 1 after leave, got %d", found.CurrentMemberCount)
	}

	// Ayrılan tekrar katılabilir
	ts.joinGroup(t, joiner.ID, group.InviteCode)
}

func TestTransferThenLeave(t *testing.T) {
	ts := newTestServices(t)
	owner := ts.createUser(t, "owner")
	ts.makeEligible(t, owner.ID)
	group := ts.createGroup(t, owner.ID, "Morning Walkers")

	successor := ts.createUser(t, "successor")
	ts.joinGroup(t, successor.ID, group.InviteCode)

	ctx := context.Background()
	if err := ts.groups.TransferOwnership(ctx, group.ID, owner.ID, &models.TransferOwnershipRequest{
		ToUserID: successor.ID,
	}); err != nil {
		t.Fatalf("TransferOwnership failed: %v", err)
	}

	found, err := ts.repos.Group.GetByID(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if found.OwnerID != successor.ID {
		t.Errorf("expected owner %s, got %s", successor.ID, found.OwnerID)
	}

	// Eski sponsor artık normal üye — ayrılabilir
	if err := ts.groups.LeaveGroup(ctx, group.ID, owner.ID, nil); err != nil {
		t.Errorf("expected former sponsor to leave freely: %v", err)
	}

	// Yeni sponsor artık ayrılamaz
	err = ts.groups.LeaveGroup(ctx, group.ID, successor.ID, nil)
	if !errors.Is(err, pkg.ErrCannotLeaveAsSponsor) {
		t.Errorf("expected new sponsor to be blocked, got %v", err)
	}
}

func TestTransferOwnershipRequiresSponsor(t *testing.T) {
	ts := newTestServices(t)
	owner := ts.createUser(t, "owner")
	ts.makeEligible(t, owner.ID)
	group := ts.createGroup(t, owner.ID, "Morning Walkers")

	member := ts.createUser(t, "member")
	other := ts.createUser(t, "other")
	ts.joinGroup(t, member.ID, group.InviteCode)
	ts.joinGroup(t, other.ID, group.InviteCode)

	err := ts.groups.TransferOwnership(context.Background(), group.ID, member.ID, &models.TransferOwnershipRequest{
		ToUserID: other.ID,
	})
	if !errors.Is(err, pkg.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestRemoveMemberRules(t *testing.T) {
	ts := newTestServices(t)
	owner := ts.createUser(t, "owner")
	ts.makeEligible(t, owner.ID)
	group := ts.createGroup(t, owner.ID, "Morning Walkers")

	member := ts.createUser(t, "member")
	ts.joinGroup(t, member.ID, group.InviteCode)
	ctx := context.Background()

	// Normal üye kimseyi çıkaramaz
	if err := ts.groups.RemoveMember(ctx, group.ID, member.ID, owner.ID); !errors.Is(err, pkg.ErrForbidden) {
		t.Errorf("expected ErrForbidden for non-sponsor, got %v", err)
	}

	// Sponsor kendisi çıkarılamaz
	if err := ts.groups.RemoveMember(ctx, group.ID, owner.ID, owner.ID); !errors.Is(err, pkg.ErrCannotRemoveSponsor) {
		t.Errorf("expected ErrCannotRemoveSponsor, got %v", err)
	}

	// Sponsor üyeyi çıkarır
	if err := ts.groups.RemoveMember(ctx, group.ID, owner.ID, member.ID); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}
	found, err := ts.repos.Group.GetByID(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if found.CurrentMemberCount != 1 {
		t.Errorf("expected member count 1 after removal, got %d", found.CurrentMemberCount)
	}
}

func TestUpdateSettingsPartialPatch(t *testing.T) {
	ts := newTestServices(t)
	owner := ts.createUser(t, "owner")
	ts.makeEligible(t, owner.ID)
	group := ts.createGroup(t, owner.ID, "Morning Walkers")

	newName := "Evening Walkers"
	newGoal := 12000
	updated, err := ts.groups.UpdateSettings(context.Background(), group.ID, owner.ID, &models.UpdateGroupSettingsRequest{
		Name:           &newName,
		DailyStepsGoal: &newGoal,
	})
	if err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}
	if updated.Name != newName {
		t.Errorf("expected name %q, got %q", newName, updated.Name)
	}
	if updated.Settings.ActivityGoals.DailyStepsGoal != newGoal {
		t.Errorf("expected steps goal %d, got %d", newGoal, updated.Settings.ActivityGoals.DailyStepsGoal)
	}
	// Dokunulmayan alanlar korunur
	if updated.Description != group.Description {
		t.Errorf("expected description to be preserved")
	}
	if updated.Settings.AllowMemberInvites != group.Settings.AllowMemberInvites {
		t.Errorf("expected allow_member_invites to be preserved")
	}
}

func TestDeleteGroupCascades(t *testing.T) {
	ts := newTestServices(t)
	owner := ts.createUser(t, "owner")
	ts.makeEligible(t, owner.ID)
	group := ts.createGroup(t, owner.ID, "Morning Walkers")

	member := ts.createUser(t, "member")
	ts.joinGroup(t, member.ID, group.InviteCode)

	ctx := context.Background()
	msg, err := ts.messages.SendMessage(ctx, group.ID, member.ID, &models.SendMessageRequest{Content: "hello"})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if _, err := ts.reactions.Toggle(ctx, msg.ID, owner.ID, "👍"); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if _, err := ts.readStates.MarkRead(ctx, group.ID, owner.ID, msg.ID); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}

	// Normal üye silemez
	if err := ts.groups.DeleteGroup(ctx, group.ID, member.ID); !errors.Is(err, pkg.ErrForbidden) {
		t.Errorf("expected ErrForbidden for non-sponsor delete, got %v", err)
	}

	if err := ts.groups.DeleteGroup(ctx, group.ID, owner.ID); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}

	if _, err := ts.repos.Group.GetByID(ctx, group.ID); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("expected group to be gone, got %v", err)
	}
	if _, err := ts.repos.Message.GetByID(ctx, msg.ID); !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("expected messages to be gone, got %v", err)
	}
	counts, err := ts.repos.ReadState.GetUnreadCounts(ctx, owner.ID)
	if err != nil {
		t.Fatalf("GetUnreadCounts failed: %v", err)
	}
	if len(counts) != 0 {
		t.Errorf("expected no unread entries after delete, got %+v", counts)
	}
}

func TestSendInviteEmailWithoutSender(t *testing.T) {
	ts := newTestServices(t)
	owner := ts.createUser(t, "owner")
	ts.makeEligible(t, owner.ID)
	group := ts.createGroup(t, owner.ID, "Morning Walkers")

	err := ts.groups.SendInviteEmail(context.Background(), group.ID, owner.ID, &models.InviteEmailRequest{
		Email: "friend@example.com",
	})
	if !errors.Is(err, pkg.ErrBadRequest) {
		t.Errorf("expected ErrBadRequest when email is not configured, got %v", err)
	}
}
