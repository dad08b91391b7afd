package messages

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haidang99/oceanchat/internal/logging"
)

type fakeRepo struct {
	msgs     []Message
	pruneErr error
}

func (r *fakeRepo) ListRecent(ctx context.Context, limit int) ([]Message, error) {
	sorted := append([]Message(nil), r.msgs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Timestamp < sorted[j].Timestamp })
	if len(sorted) > limit {
		sorted = sorted[len(sorted)-limit:]
	}
	return sorted, nil
}

func (r *fakeRepo) Insert(ctx context.Context, msg *Message) error {
	r.msgs = append(r.msgs, *msg)
	return nil
}

func (r *fakeRepo) PruneOldest(ctx context.Context, keep int) error {
	if r.pruneErr != nil {
		return r.pruneErr
	}
	sorted, _ := r.ListRecent(context.Background(), keep)
	r.msgs = sorted
	return nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

func TestAppend_RejectsEmptyText(t *testing.T) {
	svc := NewService(&fakeRepo{}, testLogger())

	err := svc.Append(context.Background(), &Message{Username: "bob"})
	assert.Error(t, err)
}

func TestAppend_PruneFailureIsSwallowed(t *testing.T) {
	repo := &fakeRepo{pruneErr: errors.New("deadlock")}
	svc := NewService(repo, testLogger())

	err := svc.Append(context.Background(), &Message{ID: "1", UserID: "u", Username: "bob", Text: "hi", Timestamp: 1})
	require.NoError(t, err, "retention pruning must never fail an accepted message")
	assert.Len(t, repo.msgs, 1)
}

func TestAppend_PrunesToRetentionCap(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, testLogger())
	ctx := context.Background()

	for i := 0; i < RetainedMessages+10; i++ {
		m := &Message{ID: fmt.Sprintf("m-%d", i), UserID: "u", Username: "bob", Text: "hi", Timestamp: int64(i)}
		require.NoError(t, svc.Append(ctx, m))
	}

	assert.Len(t, repo.msgs, RetainedMessages)
	assert.Equal(t, int64(10), repo.msgs[0].Timestamp, "oldest rows dropped first")
}
