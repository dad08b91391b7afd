package messages

import (
	"context"
	"database/sql"
	"fmt"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) ListRecent(ctx context.Context, limit int) ([]Message, error) {

	// Newest rows first to apply the limit, re-sorted ascending for display.
	query :=
		`SELECT id, user_id, username, avatar, text, timestamp, is_ai, user_color,
		        reply_to_id, reply_to_username, reply_to_text
		 FROM (
		     SELECT * FROM messages ORDER BY timestamp DESC LIMIT $1
		 ) recent
		 ORDER BY timestamp ASC
		 `

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select messages: %w", err)
	}

	var result []Message

	defer rows.Close()
	for rows.Next() {
		var item = Message{}
		var avatar, userColor, replyID, replyUsername, replyText sql.NullString
		err := rows.Scan(&item.ID, &item.UserID, &item.Username, &avatar, &item.Text,
			&item.Timestamp, &item.IsAI, &userColor, &replyID, &replyUsername, &replyText)
		if err != nil {
			return nil, err
		}
		item.Avatar = avatar.String
		item.UserColor = userColor.String
		item.ReplyToID = replyID.String
		item.ReplyToUsername = replyUsername.String
		item.ReplyToText = replyText.String
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, msg *Message) error {

	query :=
		`INSERT INTO messages (id, user_id, username, avatar, text, timestamp, is_ai, user_color,
		                       reply_to_id, reply_to_username, reply_to_text)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 `

	_, err := r.db.ExecContext(ctx, query,
		msg.ID, msg.UserID, msg.Username, nullable(msg.Avatar), msg.Text, msg.Timestamp,
		msg.IsAI, nullable(msg.UserColor), nullable(msg.ReplyToID),
		nullable(msg.ReplyToUsername), nullable(msg.ReplyToText))

	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}

	return nil
}

func (r *PostgresRepository) PruneOldest(ctx context.Context, keep int) error {

	query :=
		`DELETE FROM messages
		 WHERE id NOT IN (
		     SELECT id FROM messages ORDER BY timestamp DESC LIMIT $1
		 )
		 `

	_, err := r.db.ExecContext(ctx, query, keep)
	if err != nil {
		return fmt.Errorf("failed to prune messages: %w", err)
	}

	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
