// Package models — aktivite sinyali modelleri.
//
// Adım, beslenme ve eğitim kayıtları eligibility hesabının kaynak
// sinyalleridir; aynı zamanda grup aktivite hedeflerinin takibinde kullanılır.
package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// StepEntry, bir günün adım kaydı. Günde bir satır — aynı güne ikinci
// kayıt adım sayısını günceller (upsert).
type StepEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	EntryDate string    `json:"entry_date"` // "2006-01-02" formatında
	Steps     int       `json:"steps"`
	CreatedAt time.Time `json:"created_at"`
}

// FoodEntry, bir beslenme kaydı.
type FoodEntry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	EntryDate   string    `json:"entry_date"`
	Description string    `json:"description"`
	Calories    *int      `json:"calories"`
	CreatedAt   time.Time `json:"created_at"`
}

// TrainingModuleCount, sabit eğitim modülü sayısı.
const TrainingModuleCount = 8

// TrainingProgress, bir eğitim modülünün tamamlanma kaydı.
type TrainingProgress struct {
	UserID      string    `json:"user_id"`
	ModuleID    int       `json:"module_id"` // 1-8
	CompletedAt time.Time `json:"completed_at"`
}

// ActivitySummary, kullanıcının aktivite özeti — profil ve grup
// hedef ekranları için.
type ActivitySummary struct {
	DaysActiveLastSeven int `json:"days_active_last_seven"`
	StepsToday          int `json:"steps_today"`
	FoodEntriesThisWeek int `json:"food_entries_this_week"`
	ModulesCompleted    int `json:"modules_completed"`
}

// LogStepsRequest, adım kaydı isteği. Date boşsa bugün kullanılır.
type LogStepsRequest struct {
	Date  string `json:"date"`
	Steps int    `json:"steps"`
}

// Validate, LogStepsRequest kontrolü.
func (r *LogStepsRequest) Validate() error {
	if r.Steps < 0 {
		return fmt.Errorf("steps cannot be negative")
	}
	if r.Steps > 200000 {
		return fmt.Errorf("steps value is unrealistically high")
	}
	r.Date = strings.TrimSpace(r.Date)
	if r.Date != "" {
		if _, err := time.Parse("2006-01-02", r.Date); err != nil {
			return fmt.Errorf("date must be in YYYY-MM-DD format")
		}
	}
	return nil
}

// LogFoodRequest, beslenme kaydı isteği.
type LogFoodRequest struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Calories    *int   `json:"calories"`
}

// Validate, LogFoodRequest kontrolü.
func (r *LogFoodRequest) Validate() error {
	r.Description = strings.TrimSpace(r.Description)
	descLen := utf8.RuneCountInString(r.Description)
	if descLen < 1 || descLen > 200 {
		return fmt.Errorf("description must be between 1 and 200 characters")
	}
	if r.Calories != nil && *r.Calories < 0 {
		return fmt.Errorf("calories cannot be negative")
	}
	r.Date = strings.TrimSpace(r.Date)
	if r.Date != "" {
		if _, err := time.Parse("2006-01-02", r.Date); err != nil {
			return fmt.Errorf("date must be in YYYY-MM-DD format")
		}
	}
	return nil
}
