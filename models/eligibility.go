// Package models — Eligibility görünümü.
//
// EligibilityCheck kalıcı DEĞİLDİR: her çağrıda aktivite sinyallerinden
// yeniden hesaplanır. Cache yoktur — asla bayatlamaz ama her seferinde
// kaynak sinyaller okunur.
package models

// EligibilityRequirement'lar — grup OLUŞTURMAK için gereken eşikler.
// Gruba KATILMAK için eligibility aranmaz; geçerli bir davet kodu yeterlidir.
// Bu asimetri bilinçlidir: eğitimli kullanıcılar grup kurar, herkes katılabilir.
const (
	RequiredActiveDays       = 7
	RequiredTrainingModules  = 8
)

// EligibilityCheck, bir kullanıcının grup oluşturma/katılma uygunluğu.
type EligibilityCheck struct {
	SevenDayActivity   ActivitySignal `json:"seven_day_activity"`
	TrainingCompletion TrainingSignal `json:"training_completion"`
	CanCreateGroup     bool           `json:"can_create_group"`
	CanJoinGroup       bool           `json:"can_join_group"` // Her zaman true
}

// ActivitySignal, son 7 gündeki aktif gün sayısı sinyali.
type ActivitySignal struct {
	DaysActive int  `json:"days_active"` // 0-7
	Met        bool `json:"met"`
}

// TrainingSignal, tamamlanan eğitim modülü sinyali.
type TrainingSignal struct {
	ModulesCompleted int  `json:"modules_completed"` // 0-8
	Met              bool `json:"met"`
}
