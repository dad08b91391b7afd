package messages

import "context"

type Repository interface {
	// ListRecent returns the most recent limit messages ordered ascending
	// by timestamp.
	ListRecent(ctx context.Context, limit int) ([]Message, error)
	// Insert appends a message to the log.
	Insert(ctx context.Context, msg *Message) error
	// PruneOldest deletes all but the newest keep messages by timestamp.
	PruneOldest(ctx context.Context, keep int) error
}
