package messages

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/haidang99/oceanchat/internal/client/models"
	"github.com/haidang99/oceanchat/internal/dbx"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, msgs []models.Message) error {

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {

		if _, err := tx.ExecContext(ctx, `DELETE FROM messages`); err != nil {
			return fmt.Errorf("failed to clear message cache: %w", err)
		}

		query := `INSERT INTO messages
			(id, user_id, username, avatar, text, timestamp, is_ai, user_color,
			 reply_to_id, reply_to_username, reply_to_text, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

		for i, m := range msgs {
			var replyID, replyUsername, replyText string
			if m.ReplyTo != nil {
				replyID = m.ReplyTo.ID
				replyUsername = m.ReplyTo.Username
				replyText = m.ReplyTo.Text
			}

			_, err := tx.ExecContext(ctx, query,
				m.ID, m.UserID, m.Username, m.Avatar, m.Text, m.Timestamp,
				m.IsAI, m.UserColor, replyID, replyUsername, replyText, i)
			if err != nil {
				return fmt.Errorf("failed to insert cached message: %w", err)
			}
		}

		return nil
	})
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Message, error) {

	query := `SELECT id, user_id, username, avatar, text, timestamp, is_ai, user_color,
			reply_to_id, reply_to_username, reply_to_text
		FROM messages ORDER BY position`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select cached messages: %w", err)
	}
	defer rows.Close()

	var result []models.Message

	for rows.Next() {
		var item models.Message
		var replyID, replyUsername, replyText string

		err := rows.Scan(&item.ID, &item.UserID, &item.Username, &item.Avatar,
			&item.Text, &item.Timestamp, &item.IsAI, &item.UserColor,
			&replyID, &replyUsername, &replyText)
		if err != nil {
			return nil, err
		}

		if replyID != "" {
			item.ReplyTo = &models.ReplyInfo{ID: replyID, Username: replyUsername, Text: replyText}
		}

		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
