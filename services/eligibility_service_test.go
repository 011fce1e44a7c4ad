package services

import (
	"context"
	"testing"

	"github.com/yalcinkaya/fitcircle/models"
)

func TestEligibilityNewUserCannotCreate(t *testing.T) {
	ts := newTestServices(t)
	user := ts.createUser(t, "newcomer")

	check, err := ts.eligibility.Check(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if check.CanCreateGroup {
		t.Error("expected new user to be ineligible for group creation")
	}
	if !check.CanJoinGroup {
		t.Error("expected joining to be open regardless of eligibility")
	}
	if check.SevenDayActivity.DaysActive != 0 || check.SevenDayActivity.Met {
		t.Errorf("unexpected activity signal: %+v", check.SevenDayActivity)
	}
}

func TestEligibilitySixActiveDaysNotEnough(t *testing.T) {
	ts := newTestServices(t)
	user := ts.createUser(t, "almost")
	ctx := context.Background()

	// 6 aktif gün + 8 modül: aktivite sinyali eksik kalır
	for i := 0; i < 6; i++ {
		entry := &models.StepEntry{
			UserID:    user.ID,
			EntryDate: testNow.AddDate(0, 0, -i).Format("2006-01-02"),
			Steps:     6000,
		}
		if err := ts.repos.Activity.UpsertSteps(ctx, entry); err != nil {
			t.Fatalf("UpsertSteps failed: %v", err)
		}
	}
	for m := 1; m <= models.RequiredTrainingModules; m++ {
		if err := ts.repos.Activity.CompleteModule(ctx, user.ID, m); err != nil {
			t.Fatalf("CompleteModule failed: %v", err)
		}
	}

	check, err := ts.eligibility.Check(ctx, user.ID)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if check.CanCreateGroup {
		t.Error("expected 6 active days to be insufficient")
	}
	if check.SevenDayActivity.DaysActive != 6 {
		t.Errorf("expected 6 active days, got %d", check.SevenDayActivity.DaysActive)
	}
	if !check.TrainingCompletion.Met {
		t.Error("expected training signal to be met")
	}
}

func TestEligibilityMissingModulesNotEnough(t *testing.T) {
	ts := newTestServices(t)
	user := ts.createUser(t, "walker")
	ctx := context.Background()

	for i := 0; i < models.RequiredActiveDays; i++ {
		entry := &models.StepEntry{
			UserID:    user.ID,
			EntryDate: testNow.AddDate(0, 0, -i).Format("2006-01-02"),
			Steps:     6000,
		}
		if err := ts.repos.Activity.UpsertSteps(ctx, entry); err != nil {
			t.Fatalf("UpsertSteps failed: %v", err)
		}
	}
	for m := 1; m <= models.RequiredTrainingModules-1; m++ {
		if err := ts.repos.Activity.CompleteModule(ctx, user.ID, m); err != nil {
			t.Fatalf("CompleteModule failed: %v", err)
		}
	}

	check, err := ts.eligibility.Check(ctx, user.ID)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if check.CanCreateGroup {
		t.Error("expected 7 modules to be insufficient")
	}
	if !check.SevenDayActivity.Met {
		t.Error("expected activity signal to be met")
	}
	if check.TrainingCompletion.ModulesCompleted != models.RequiredTrainingModules-1 {
		t.Errorf("expected %d modules, got %d",
			models.RequiredTrainingModules-1, check.TrainingCompletion.ModulesCompleted)
	}
}

func TestEligibilityBothSignalsMet(t *testing.T) {
	ts := newTestServices(t)
	user := ts.createUser(t, "champion")
	ts.makeEligible(t, user.ID)

	check, err := ts.eligibility.Check(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if !check.CanCreateGroup {
		t.Errorf("expected eligible user to pass: %+v", check)
	}
}
