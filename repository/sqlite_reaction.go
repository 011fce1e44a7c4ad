package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/yalcinkaya/fitcircle/database"
	"github.com/yalcinkaya/fitcircle/models"
)

// sqliteReactionRepo, ReactionRepository interface'inin SQLite implementasyonu.
type sqliteReactionRepo struct {
	db database.TxQuerier
}

// NewSQLiteReactionRepo, constructor — interface döner.
func NewSQLiteReactionRepo(db database.TxQuerier) ReactionRepository {
	return &sqliteReactionRepo{db: db}
}

// Insert, INSERT OR IGNORE kullanır: UNIQUE(message_id, user_id, emoji)
// çakışırsa satır eklenmez ve rowsAffected 0 döner. Check-then-insert
// yerine tek statement — eşzamanlı iki toggle'dan sadece biri ekler.
func (r *sqliteReactionRepo) Insert(ctx context.Context, reaction *models.MessageReaction) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO message_reactions (id, message_id, user_id, emoji)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?)`,
		reaction.MessageID, reaction.UserID, reaction.Emoji)
	if err != nil {
		return false, fmt.Errorf("failed to insert reaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return affected > 0, nil
}

func (r *sqliteReactionRepo) Delete(ctx context.Context, messageID, userID, emoji string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM message_reactions
		WHERE message_id = ? AND user_id = ? AND emoji = ?`,
		messageID, userID, emoji)
	if err != nil {
		return false, fmt.Errorf("failed to delete reaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return affected > 0, nil
}

func (r *sqliteReactionRepo) GetByMessageID(ctx context.Context, messageID string) ([]models.ReactionGroup, error) {
	grouped, err := r.GetByMessageIDs(ctx, []string{messageID})
	if err != nil {
		return nil, err
	}
	return grouped[messageID], nil
}

func (r *sqliteReactionRepo) GetByMessageIDs(ctx context.Context, messageIDs []string) (map[string][]models.ReactionGroup, error) {
	grouped := make(map[string][]models.ReactionGroup)
	if len(messageIDs) == 0 {
		return grouped, nil
	}

	placeholders := strings.Repeat("?,", len(messageIDs))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, len(messageIDs))
	for i, id := range messageIDs {
		args[i] = id
	}

	// created_at sırası, emoji gruplarının "ilk tepki verilen önce" düzenini
	// ve Users listesinin kronolojik sırasını korur.
	query := `
		SELECT message_id, emoji, user_id
		FROM message_reactions
		WHERE message_id IN (` + placeholders + `)
		ORDER BY message_id, created_at ASC, rowid ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reactions: %w", err)
	}
	defer rows.Close()

	// messageID → emoji → grup index'i; ekleme sırasını korumak için
	// map yerine slice üzerinde index tutulur.
	indexes := make(map[string]map[string]int)

	for rows.Next() {
		var messageID, emoji, userID string
		if err := rows.Scan(&messageID, &emoji, &userID); err != nil {
			return nil, fmt.Errorf("failed to scan reaction row: %w", err)
		}

		if _, ok := indexes[messageID]; !ok {
			indexes[messageID] = make(map[string]int)
		}

		idx, ok := indexes[messageID][emoji]
		if !ok {
			grouped[messageID] = append(grouped[messageID], models.ReactionGroup{Emoji: emoji})
			idx = len(grouped[messageID]) - 1
			indexes[messageID][emoji] = idx
		}

		group := &grouped[messageID][idx]
		group.Count++
		group.Users = append(group.Users, userID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reaction rows: %w", err)
	}

	return grouped, nil
}

func (r *sqliteReactionRepo) DeleteByGroupID(ctx context.Context, groupID string) error {
	if _, err := r.db.ExecContext(ctx, `
		DELETE FROM message_reactions
		WHERE message_id IN (SELECT id FROM group_messages WHERE group_id = ?)`,
		groupID); err != nil {
		return fmt.Errorf("failed to delete group reactions: %w", err)
	}
	return nil
}
