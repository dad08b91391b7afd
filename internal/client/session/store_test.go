package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haidang99/oceanchat/internal/client/api"
	"github.com/haidang99/oceanchat/internal/client/models"
	"github.com/haidang99/oceanchat/internal/common"
	"github.com/haidang99/oceanchat/internal/logging"
)

type fakeMetadata struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeMetadata() *fakeMetadata {
	return &fakeMetadata{data: make(map[string][]byte)}
}

func (f *fakeMetadata) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data[key], nil
}

func (f *fakeMetadata) Set(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *fakeMetadata) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func (f *fakeMetadata) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = make(map[string][]byte)
	return nil
}

type fakeAPI struct {
	api.API

	mu         sync.Mutex
	verifyUser *models.User
	verifyErr  error
	loginUser  *models.User
	loginErr   error
	updates    []models.User
	updateErr  error
}

func (f *fakeAPI) Verify(_ context.Context, _ string, _ string) (*models.User, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	u := *f.verifyUser
	return &u, nil
}

func (f *fakeAPI) Login(_ context.Context, _ string, _ string) (*models.User, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	u := *f.loginUser
	return &u, nil
}

func (f *fakeAPI) UpdateUser(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, *u)
	return nil
}

func (f *fakeAPI) pushedUpdates() []models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.User(nil), f.updates...)
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

func seedSession(t *testing.T, repo *fakeMetadata, u *models.User) {
	t.Helper()
	data, err := json.Marshal(u)
	require.NoError(t, err)
	require.NoError(t, repo.Set(context.Background(), sessionKey, data))
}

func TestLoadCached_RestoresSession(t *testing.T) {
	repo := newFakeMetadata()
	seedSession(t, repo, &models.User{ID: "nemo1", Username: "nemo", Token: "tok"})

	s := NewStore(&fakeAPI{}, repo, testLogger())
	require.NoError(t, s.LoadCached(context.Background()))

	u := s.Current()
	require.NotNil(t, u)
	assert.Equal(t, "nemo1", u.ID)
}

func TestLoadCached_TokenlessRecordDiscarded(t *testing.T) {
	repo := newFakeMetadata()
	seedSession(t, repo, &models.User{ID: "nemo1", Username: "nemo"})

	s := NewStore(&fakeAPI{}, repo, testLogger())
	require.NoError(t, s.LoadCached(context.Background()))

	assert.Nil(t, s.Current())
	v, _ := repo.Get(context.Background(), sessionKey)
	assert.Nil(t, v)
}

func TestLoadCached_CorruptRecordDiscarded(t *testing.T) {
	repo := newFakeMetadata()
	require.NoError(t, repo.Set(context.Background(), sessionKey, []byte("{not json")))

	s := NewStore(&fakeAPI{}, repo, testLogger())
	require.NoError(t, s.LoadCached(context.Background()))

	assert.Nil(t, s.Current())
}

func TestVerify_SuccessAdoptsServerRecord(t *testing.T) {
	repo := newFakeMetadata()
	seedSession(t, repo, &models.User{ID: "nemo1", Username: "old name", Credits: 10, Token: "tok"})

	a := &fakeAPI{verifyUser: &models.User{ID: "nemo1", Username: "fresh name", Credits: 99, Token: "tok"}}
	s := NewStore(a, repo, testLogger())
	require.NoError(t, s.LoadCached(context.Background()))

	require.NoError(t, s.Verify(context.Background()))

	u := s.Current()
	assert.Equal(t, "fresh name", u.Username)
	assert.Equal(t, 99, u.Credits)

	// the adopted record is persisted
	data, _ := repo.Get(context.Background(), sessionKey)
	var persisted models.User
	require.NoError(t, json.Unmarshal(data, &persisted))
	assert.Equal(t, "fresh name", persisted.Username)
}

func TestVerify_ExplicitRejectionClearsSession(t *testing.T) {
	repo := newFakeMetadata()
	seedSession(t, repo, &models.User{ID: "nemo1", Token: "stale"})

	a := &fakeAPI{verifyErr: &api.RejectedError{StatusCode: 401, Message: "session expired"}}
	s := NewStore(a, repo, testLogger())
	require.NoError(t, s.LoadCached(context.Background()))

	err := s.Verify(context.Background())
	assert.ErrorIs(t, err, common.ErrSessionExpired)
	assert.Nil(t, s.Current())

	v, _ := repo.Get(context.Background(), sessionKey)
	assert.Nil(t, v)
}

func TestVerify_TransportFailureKeepsCachedIdentity(t *testing.T) {
	repo := newFakeMetadata()
	seedSession(t, repo, &models.User{ID: "nemo1", Username: "nemo", Token: "tok"})

	a := &fakeAPI{verifyErr: api.ErrUnavailable}
	s := NewStore(a, repo, testLogger())
	require.NoError(t, s.LoadCached(context.Background()))

	err := s.Verify(context.Background())
	assert.ErrorIs(t, err, api.ErrUnavailable)

	// offline trust: the cached identity survives
	u := s.Current()
	require.NotNil(t, u)
	assert.Equal(t, "nemo1", u.ID)
}

func TestVerify_WithoutSessionReturnsExpired(t *testing.T) {
	s := NewStore(&fakeAPI{}, newFakeMetadata(), testLogger())
	assert.ErrorIs(t, s.Verify(context.Background()), common.ErrSessionExpired)
}

func TestLogin_AdoptsAndPersists(t *testing.T) {
	repo := newFakeMetadata()
	a := &fakeAPI{loginUser: &models.User{ID: "nemo1", Username: "nemo", Token: "tok-new"}}
	s := NewStore(a, repo, testLogger())

	u, err := s.Login(context.Background(), "nemo1", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok-new", u.Token)

	data, _ := repo.Get(context.Background(), sessionKey)
	require.NotNil(t, data)
}

func TestLogout_ClearsEverything(t *testing.T) {
	repo := newFakeMetadata()
	a := &fakeAPI{loginUser: &models.User{ID: "nemo1", Token: "tok"}}
	s := NewStore(a, repo, testLogger())

	_, err := s.Login(context.Background(), "nemo1", "pw")
	require.NoError(t, err)

	require.NoError(t, s.Logout(context.Background()))
	assert.Nil(t, s.Current())
	v, _ := repo.Get(context.Background(), sessionKey)
	assert.Nil(t, v)
}

func TestUpdateLocal_PreservesTokenAndPushes(t *testing.T) {
	repo := newFakeMetadata()
	a := &fakeAPI{loginUser: &models.User{ID: "nemo1", Username: "nemo", Credits: 50, Token: "tok"}}
	s := NewStore(a, repo, testLogger())

	_, err := s.Login(context.Background(), "nemo1", "pw")
	require.NoError(t, err)

	// incoming update deliberately omits the token
	require.NoError(t, s.UpdateLocal(context.Background(), &models.User{
		ID: "nemo1", Username: "nemo", Credits: 51,
	}))
	s.Wait()

	u := s.Current()
	assert.Equal(t, 51, u.Credits)
	assert.Equal(t, "tok", u.Token)

	pushed := a.pushedUpdates()
	require.Len(t, pushed, 1)
	assert.Equal(t, "tok", pushed[0].Token)
	assert.Equal(t, 51, pushed[0].Credits)
}

func TestUpdateLocal_PushFailureIsNotSurfaced(t *testing.T) {
	repo := newFakeMetadata()
	a := &fakeAPI{loginUser: &models.User{ID: "nemo1", Token: "tok"}, updateErr: api.ErrUnavailable}
	s := NewStore(a, repo, testLogger())

	_, err := s.Login(context.Background(), "nemo1", "pw")
	require.NoError(t, err)

	require.NoError(t, s.UpdateLocal(context.Background(), &models.User{ID: "nemo1", Credits: 51}))
	s.Wait()

	// local state still updated despite the failed push
	assert.Equal(t, 51, s.Current().Credits)
}

func TestUpdateLocal_LoggedOutIsUnauthorized(t *testing.T) {
	s := NewStore(&fakeAPI{}, newFakeMetadata(), testLogger())
	err := s.UpdateLocal(context.Background(), &models.User{ID: "nemo1"})
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}
