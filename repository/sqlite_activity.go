package repository

import (
	"context"
	"fmt"

	"github.com/yalcinkaya/fitcircle/database"
	"github.com/yalcinkaya/fitcircle/models"
)

// sqliteActivityRepo, ActivityRepository interface'inin SQLite implementasyonu.
type sqliteActivityRepo struct {
	db database.TxQuerier
}

// NewSQLiteActivityRepo, constructor — interface döner.
func NewSQLiteActivityRepo(db database.TxQuerier) ActivityRepository {
	return &sqliteActivityRepo{db: db}
}

func (r *sqliteActivityRepo) UpsertSteps(ctx context.Context, entry *models.StepEntry) error {
	query := `
		INSERT INTO step_entries (id, user_id, entry_date, steps)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?)
		ON CONFLICT(user_id, entry_date) DO UPDATE SET steps = excluded.steps
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		entry.UserID, entry.EntryDate, entry.Steps,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert step entry: %w", err)
	}

	return nil
}

func (r *sqliteActivityRepo) InsertFood(ctx context.Context, entry *models.FoodEntry) error {
	query := `
		INSERT INTO food_entries (id, user_id, entry_date, description, calories)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		entry.UserID, entry.EntryDate, entry.Description, entry.Calories,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert food entry: %w", err)
	}

	return nil
}

func (r *sqliteActivityRepo) CompleteModule(ctx context.Context, userID string, moduleID int) error {
	// DO NOTHING — modül zaten tamamlanmışsa ilk completed_at korunur.
	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO training_progress (user_id, module_id)
		VALUES (?, ?)
		ON CONFLICT(user_id, module_id) DO NOTHING`,
		userID, moduleID); err != nil {
		return fmt.Errorf("failed to complete training module: %w", err)
	}
	return nil
}

// DaysActiveInLastSeven, adım ve beslenme tarihlerinin birleşiminden
// DISTINCT gün sayar. Pencere refDate dahil geriye 7 gündür:
// [refDate-6, refDate].
func (r *sqliteActivityRepo) DaysActiveInLastSeven(ctx context.Context, userID, refDate string) (int, error) {
	query := `
		SELECT COUNT(DISTINCT entry_date) FROM (
			SELECT entry_date FROM step_entries
			WHERE user_id = ? AND entry_date BETWEEN date(?, '-6 days') AND ?
			UNION
			SELECT entry_date FROM food_entries
			WHERE user_id = ? AND entry_date BETWEEN date(?, '-6 days') AND ?
		)`

	var count int
	err := r.db.QueryRowContext(ctx, query,
		userID, refDate, refDate,
		userID, refDate, refDate,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active days: %w", err)
	}

	return count, nil
}

func (r *sqliteActivityRepo) ModulesCompleted(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM training_progress WHERE user_id = ?`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed modules: %w", err)
	}

	return count, nil
}

func (r *sqliteActivityRepo) GetSummary(ctx context.Context, userID, refDate string) (*models.ActivitySummary, error) {
	summary := &models.ActivitySummary{}

	daysActive, err := r.DaysActiveInLastSeven(ctx, userID, refDate)
	if err != nil {
		return nil, err
	}
	summary.DaysActiveLastSeven = daysActive

	err = r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(steps), 0) FROM step_entries
		WHERE user_id = ? AND entry_date = ?`,
		userID, refDate,
	).Scan(&summary.StepsToday)
	if err != nil {
		return nil, fmt.Errorf("failed to get today's steps: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM food_entries
		WHERE user_id = ? AND entry_date BETWEEN date(?, '-6 days') AND ?`,
		userID, refDate, refDate,
	).Scan(&summary.FoodEntriesThisWeek)
	if err != nil {
		return nil, fmt.Errorf("failed to count food entries: %w", err)
	}

	modules, err := r.ModulesCompleted(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary.ModulesCompleted = modules

	return summary, nil
}
