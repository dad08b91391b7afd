package messages

import (
	"context"
	"errors"
	"fmt"

	"github.com/haidang99/oceanchat/internal/logging"
)

// Retention policy: the log keeps the newest RetainedMessages rows; a list
// request returns at most ListLimit of them.
const (
	RetainedMessages = 1000
	ListLimit        = 100
)

var errMissingFields = errors.New("missing required fields")

type Service struct {
	repo   Repository
	logger logging.Logger
}

func NewService(repo Repository, logger logging.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns the most recent ListLimit messages in ascending timestamp
// order.
func (s *Service) List(ctx context.Context) ([]Message, error) {
	return s.repo.ListRecent(ctx, ListLimit)
}

// Append inserts a message and then prunes the log down to the retention
// cap. A pruning failure is logged and swallowed: retention is housekeeping,
// never a reason to fail an accepted message.
func (s *Service) Append(ctx context.Context, msg *Message) error {

	if msg.Text == "" || msg.Username == "" {
		return errMissingFields
	}

	if err := s.repo.Insert(ctx, msg); err != nil {
		return fmt.Errorf("error inserting message: %w", err)
	}

	if err := s.repo.PruneOldest(ctx, RetainedMessages); err != nil {
		s.logger.Warn(ctx, "message pruning failed", "error", err.Error())
	}

	return nil
}
