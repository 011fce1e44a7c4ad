// Package services — ActivityService: aktivite sinyali kayıtları.
//
// Adım, beslenme ve eğitim kayıtları hem kullanıcının kendi takibi hem de
// eligibility hesabının kaynağıdır.
package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/yalcinkaya/fitcircle/models"
	"github.com/yalcinkaya/fitcircle/pkg"
	"github.com/yalcinkaya/fitcircle/repository"
)

// ActivityService, aktivite kayıtları iş mantığı interface'i.
type ActivityService interface {
	// LogSteps, bir günün adım kaydını ekler/günceller (upsert).
	LogSteps(ctx context.Context, userID string, req *models.LogStepsRequest) (*models.StepEntry, error)

	// LogFood, beslenme kaydı ekler.
	LogFood(ctx context.Context, userID string, req *models.LogFoodRequest) (*models.FoodEntry, error)

	// CompleteTrainingModule, eğitim modülünü tamamlandı işaretler (idempotent).
	CompleteTrainingModule(ctx context.Context, userID string, moduleID int) error

	// GetSummary, kullanıcının güncel aktivite özetini döner.
	GetSummary(ctx context.Context, userID string) (*models.ActivitySummary, error)
}

type activityService struct {
	activityRepo repository.ActivityRepository
	now          func() time.Time
}

// NewActivityService, constructor.
func NewActivityService(activityRepo repository.ActivityRepository) ActivityService {
	return &activityService{
		activityRepo: activityRepo,
		now:          time.Now,
	}
}

func (s *activityService) LogSteps(ctx context.Context, userID string, req *models.LogStepsRequest) (*models.StepEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	date := req.Date
	if date == "" {
		date = s.now().Format("2006-01-02")
	}

	entry := &models.StepEntry{
		UserID:    userID,
		EntryDate: date,
		Steps:     req.Steps,
	}

	if err := s.activityRepo.UpsertSteps(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *activityService) LogFood(ctx context.Context, userID string, req *models.LogFoodRequest) (*models.FoodEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	date := req.Date
	if date == "" {
		date = s.now().Format("2006-01-02")
	}

	entry := &models.FoodEntry{
		UserID:      userID,
		EntryDate:   date,
		Description: req.Description,
		Calories:    req.Calories,
	}

	if err := s.activityRepo.InsertFood(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *activityService) CompleteTrainingModule(ctx context.Context, userID string, moduleID int) error {
	if moduleID < 1 || moduleID > models.TrainingModuleCount {
		return fmt.Errorf("%w: module id must be between 1 and %d", pkg.ErrBadRequest, models.TrainingModuleCount)
	}

	if err := s.activityRepo.CompleteModule(ctx, userID, moduleID); err != nil {
		return err
	}

	log.Printf("[activity] user %s completed training module %d", userID, moduleID)
	return nil
}

func (s *activityService) GetSummary(ctx context.Context, userID string) (*models.ActivitySummary, error) {
	return s.activityRepo.GetSummary(ctx, userID, s.now().Format("2006-01-02"))
}
