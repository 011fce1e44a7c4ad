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

// sqliteMessageRepo, MessageRepository interface'inin SQLite implementasyonu.
type sqliteMessageRepo struct {
	db database.TxQuerier
}

// NewSQLiteMessageRepo, constructor — interface döner.
func NewSQLiteMessageRepo(db database.TxQuerier) MessageRepository {
	return &sqliteMessageRepo{db: db}
}

func (r *sqliteMessageRepo) Create(ctx context.Context, message *models.GroupMessage) error {
	query := `
		INSERT INTO group_messages (id, group_id, sender_id, content, message_type, reply_to_id)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		message.GroupID,
		message.SenderID,
		message.Content,
		message.MessageType,
		message.ReplyToID,
	).Scan(&message.ID, &message.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

func (r *sqliteMessageRepo) GetByID(ctx context.Context, id string) (*models.GroupMessage, error) {
	query := `
		SELECT m.id, m.group_id, m.sender_id, m.content, m.message_type,
		       m.reply_to_id, m.edited_at, m.created_at,
		       u.id, u.username, u.display_name
		FROM group_messages m
		LEFT JOIN users u ON u.id = m.sender_id
		WHERE m.id = ?`

	message, err := scanMessage(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	return message, nil
}

// GetByGroupID, cursor tabanlı sayfalamayla mesaj döner.
//
// Strateji: DESC sırayla limit+1 satır çek (en yeniden eskiye), fazla satır
// geldiyse HasMore=true yap, sonra slice'ı ters çevirip kronolojik sıraya al.
// Cursor olarak beforeID'nin (created_at, rowid) ikilisi kullanılır — aynı
// saniyede yazılmış mesajlarda rowid tie-break'i sayesinde hiçbir mesaj
// atlanmaz veya iki kez gelmez.
func (r *sqliteMessageRepo) GetByGroupID(ctx context.Context, groupID, beforeID string, limit int) (*models.MessagePage, error) {
	baseQuery := `
		SELECT m.id, m.group_id, m.sender_id, m.content, m.message_type,
		       m.reply_to_id, m.edited_at, m.created_at,
		       u.id, u.username, u.display_name
		FROM group_messages m
		LEFT JOIN users u ON u.id = m.sender_id
		WHERE m.group_id = ?`

	var rows *sql.Rows
	var err error

	if beforeID == "" {
		rows, err = r.db.QueryContext(ctx,
			baseQuery+` ORDER BY m.created_at DESC, m.rowid DESC LIMIT ?`,
			groupID, limit+1)
	} else {
		// Cursor'ın (created_at, rowid) ikilisini subquery ile çöz.
		// Cursor mesajı silinmişse subquery boş döner ve sonuç boş sayfadır —
		// caller bunu pkg.ErrNotFound'a çevirmek yerine boş liste kabul eder.
		rows, err = r.db.QueryContext(ctx,
			baseQuery+` AND (m.created_at, m.rowid) <
				(SELECT c.created_at, c.rowid FROM group_messages c WHERE c.id = ?)
			ORDER BY m.created_at DESC, m.rowid DESC LIMIT ?`,
			groupID, beforeID, limit+1)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []models.GroupMessage
	for rows.Next() {
		message, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		messages = append(messages, *message)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", err)
	}

	page := &models.MessagePage{}

	if len(messages) > limit {
		page.HasMore = true
		messages = messages[:limit]
	}

	// DESC çektik; görüntüleme sırası kronolojik (eski → yeni) olmalı.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	page.Messages = messages
	if len(messages) > 0 {
		page.OldestMessageID = messages[0].ID
	}

	return page, nil
}

func (r *sqliteMessageRepo) UpdateContent(ctx context.Context, id, content string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE group_messages SET content = ?, edited_at = CURRENT_TIMESTAMP WHERE id = ?`,
		content, id)
	if err != nil {
		return fmt.Errorf("failed to update message: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

func (r *sqliteMessageRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM group_messages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

func (r *sqliteMessageRepo) DeleteByGroupID(ctx context.Context, groupID string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM group_messages WHERE group_id = ?`, groupID); err != nil {
		return fmt.Errorf("failed to delete group messages: %w", err)
	}
	return nil
}

// scanMessage, ortak mesaj + yazar scan mantığı. Sistem mesajlarında
// sender_id users tablosunda yoktur; LEFT JOIN NULL döner ve Author nil kalır.
func scanMessage(s rowScanner) (*models.GroupMessage, error) {
	message := &models.GroupMessage{}
	var author models.User
	var authorID, authorUsername sql.NullString

	err := s.Scan(
		&message.ID, &message.GroupID, &message.SenderID, &message.Content,
		&message.MessageType, &message.ReplyToID, &message.EditedAt, &message.CreatedAt,
		&authorID, &authorUsername, &author.DisplayName,
	)
	if err != nil {
		return nil, err
	}

	if authorID.Valid {
		author.ID = authorID.String
		author.Username = authorUsername.String
		message.Author = &author
	}

	return message, nil
}
