package messages

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haidang99/oceanchat/internal/client/models"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE messages (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  username TEXT NOT NULL,
  avatar TEXT,
  text TEXT NOT NULL,
  timestamp INTEGER NOT NULL,
  is_ai INTEGER NOT NULL DEFAULT 0,
  user_color TEXT,
  reply_to_id TEXT,
  reply_to_username TEXT,
  reply_to_text TEXT,
  position INTEGER NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func sampleMessages() []models.Message {
	return []models.Message{
		{ID: "1", UserID: "nemo1", Username: "nemo", Text: "hi", Timestamp: 100, UserColor: "#fff"},
		{ID: "2", UserID: "dory2", Username: "dory", Text: "hello", Timestamp: 200,
			ReplyTo: &models.ReplyInfo{ID: "1", Username: "nemo", Text: "hi"}},
		{ID: "3", UserID: "gemini-ai", Username: "Gemini AI", Text: "greetings", Timestamp: 300, IsAI: true},
	}
}

func TestReplaceAll_ThenGetAll_PreservesOrderAndFields(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.ReplaceAll(ctx, sampleMessages()))

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "2", got[1].ID)
	assert.Equal(t, "3", got[2].ID)

	require.NotNil(t, got[1].ReplyTo)
	assert.Equal(t, "nemo", got[1].ReplyTo.Username)
	assert.Nil(t, got[0].ReplyTo)
	assert.True(t, got[2].IsAI)
}

func TestReplaceAll_SwapsPreviousSnapshot(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.ReplaceAll(ctx, sampleMessages()))
	require.NoError(t, r.ReplaceAll(ctx, []models.Message{
		{ID: "9", UserID: "u", Username: "u", Text: "only one", Timestamp: 900},
	}))

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "9", got[0].ID)
}

func TestReplaceAll_EmptyClearsCache(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.ReplaceAll(ctx, sampleMessages()))
	require.NoError(t, r.ReplaceAll(ctx, nil))

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReplaceAll_DuplicateIDsRollBack(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.ReplaceAll(ctx, sampleMessages()))

	err := r.ReplaceAll(ctx, []models.Message{
		{ID: "x", UserID: "u", Username: "u", Text: "a", Timestamp: 1},
		{ID: "x", UserID: "u", Username: "u", Text: "b", Timestamp: 2},
	})
	require.Error(t, err)

	// the failed swap must not have destroyed the previous snapshot
	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}
