package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yalcinkaya/fitcircle/database"
	"github.com/yalcinkaya/fitcircle/models"
	"github.com/yalcinkaya/fitcircle/pkg"
)

// sqliteReadStateRepo, ReadStateRepository interface'inin SQLite implementasyonu.
type sqliteReadStateRepo struct {
	db database.TxQuerier
}

// NewSQLiteReadStateRepo, constructor — interface döner.
func NewSQLiteReadStateRepo(db database.TxQuerier) ReadStateRepository {
	return &sqliteReadStateRepo{db: db}
}

func (r *sqliteReadStateRepo) Upsert(ctx context.Context, state *models.GroupReadState) error {
	// ON CONFLICT upsert — (user_id, group_id) PRIMARY KEY üzerinden.
	query := `
		INSERT INTO group_reads (user_id, group_id, last_read_message_id, last_read_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id, group_id) DO UPDATE SET
			last_read_message_id = excluded.last_read_message_id,
			last_read_at = excluded.last_read_at
		RETURNING last_read_at`

	err := r.db.QueryRowContext(ctx, query,
		state.UserID, state.GroupID, state.LastReadMessageID,
	).Scan(&state.LastReadAt)
	if err != nil {
		return fmt.Errorf("failed to upsert read state: %w", err)
	}

	return nil
}

func (r *sqliteReadStateRepo) Get(ctx context.Context, userID, groupID string) (*models.GroupReadState, error) {
	state := &models.GroupReadState{}
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, group_id, last_read_message_id, last_read_at
		FROM group_reads WHERE user_id = ? AND group_id = ?`,
		userID, groupID,
	).Scan(&state.UserID, &state.GroupID, &state.LastReadMessageID, &state.LastReadAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get read state: %w", err)
	}

	return state, nil
}

// GetUnreadCounts, her üyelik için watermark'tan SONRAKİ mesajları sayar.
// Watermark yoksa (kullanıcı grubu hiç açmamışsa) gruptaki tüm mesajlar
// okunmamış sayılır. Kullanıcının kendi yazdığı mesajlar hariç tutulur.
func (r *sqliteReadStateRepo) GetUnreadCounts(ctx context.Context, userID string) ([]models.UnreadInfo, error) {
	query := `
		SELECT gm.group_id,
		       COUNT(msg.id)
		FROM group_members gm
		LEFT JOIN group_reads gr
			ON gr.group_id = gm.group_id AND gr.user_id = gm.user_id
		LEFT JOIN group_messages wm
			ON wm.id = gr.last_read_message_id
		LEFT JOIN group_messages msg
			ON msg.group_id = gm.group_id
			AND msg.sender_id != gm.user_id
			AND (wm.id IS NULL
				OR (msg.created_at, msg.rowid) > (wm.created_at, wm.rowid))
		WHERE gm.user_id = ?
		GROUP BY gm.group_id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query unread counts: %w", err)
	}
	defer rows.Close()

	var infos []models.UnreadInfo
	for rows.Next() {
		var info models.UnreadInfo
		if err := rows.Scan(&info.GroupID, &info.UnreadCount); err != nil {
			return nil, fmt.Errorf("failed to scan unread row: %w", err)
		}
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating unread rows: %w", err)
	}

	return infos, nil
}

func (r *sqliteReadStateRepo) DeleteByGroupID(ctx context.Context, groupID string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM group_reads WHERE group_id = ?`, groupID); err != nil {
		return fmt.Errorf("failed to delete group read states: %w", err)
	}
	return nil
}
