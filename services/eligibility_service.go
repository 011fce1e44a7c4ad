// Package services — EligibilityService: grup oluşturma uygunluk hesabı.
//
// Eligibility KALICI DEĞİLDİR: her çağrıda aktivite sinyallerinden yeniden
// hesaplanır. Cache tutulmaz — hesap iki COUNT sorgusudur ve bayat "eligible"
// bayrağıyla grup oluşturulmasından daha ucuzdur.
package services

import (
	"context"
	"time"

	"github.com/yalcinkaya/fitcircle/models"
	"github.com/yalcinkaya/fitcircle/repository"
)

// EligibilityService, grup oluşturma/katılma uygunluk kontrolü interface'i.
type EligibilityService interface {
	// Check, kullanıcının güncel uygunluk durumunu hesaplar.
	// İki sinyal vardır:
	//   - Son 7 günün HER gününde en az bir aktivite kaydı (adım veya beslenme)
	//   - 8 eğitim modülünün tamamı tamamlanmış
	// İkisi birden sağlanırsa CanCreateGroup=true. CanJoinGroup her zaman
	// true'dur — katılım için geçerli davet kodu yeterlidir.
	Check(ctx context.Context, userID string) (*models.EligibilityCheck, error)
}

type eligibilityService struct {
	activityRepo repository.ActivityRepository
	now          func() time.Time // Test'te sabitlenebilir
}

// NewEligibilityService, constructor.
func NewEligibilityService(activityRepo repository.ActivityRepository) EligibilityService {
	return &eligibilityService{
		activityRepo: activityRepo,
		now:          time.Now,
	}
}

func (s *eligibilityService) Check(ctx context.Context, userID string) (*models.EligibilityCheck, error) {
	today := s.now().Format("2006-01-02")

	daysActive, err := s.activityRepo.DaysActiveInLastSeven(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	modules, err := s.activityRepo.ModulesCompleted(ctx, userID)
	if err != nil {
		return nil, err
	}

	check := &models.EligibilityCheck{
		SevenDayActivity: models.ActivitySignal{
			DaysActive: daysActive,
			Met:        daysActive >= models.RequiredActiveDays,
		},
		TrainingCompletion: models.TrainingSignal{
			ModulesCompleted: modules,
			Met:              modules >= models.RequiredTrainingModules,
		},
		CanJoinGroup: true,
	}
	check.CanCreateGroup = check.SevenDayActivity.Met && check.TrainingCompletion.Met

	return check, nil
}
