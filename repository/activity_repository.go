package repository

import (
	"context"

	"github.com/yalcinkaya/fitcircle/models"
)

// ActivityRepository, aktivite sinyalleri (adım, beslenme, eğitim) için
// veri erişim interface'i. Eligibility hesabı bu sinyallerden beslenir.
type ActivityRepository interface {
	// UpsertSteps, bir günün adım kaydını ekler veya günceller.
	// UNIQUE(user_id, entry_date) — aynı güne ikinci kayıt overwrite eder.
	UpsertSteps(ctx context.Context, entry *models.StepEntry) error

	// InsertFood, beslenme kaydı ekler. Günde birden fazla kayıt olabilir.
	InsertFood(ctx context.Context, entry *models.FoodEntry) error

	// CompleteModule, eğitim modülünü tamamlandı olarak işaretler.
	// Tekrar tamamlamak idempotent'tir (ilk completed_at korunur).
	CompleteModule(ctx context.Context, userID string, moduleID int) error

	// DaysActiveInLastSeven, refDate dahil geriye 7 günlük pencerede
	// en az bir aktivite kaydı (adım VEYA beslenme) bulunan GÜN sayısını döner.
	// refDate "2006-01-02" formatındadır.
	DaysActiveInLastSeven(ctx context.Context, userID, refDate string) (int, error)

	// ModulesCompleted, kullanıcının tamamladığı eğitim modülü sayısını döner.
	ModulesCompleted(ctx context.Context, userID string) (int, error)

	// GetSummary, profil ekranı için aktivite özetini döner.
	GetSummary(ctx context.Context, userID, refDate string) (*models.ActivitySummary, error)
}
