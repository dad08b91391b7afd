// Package session owns the client's login state: a cached user record plus
// the server-issued session token, persisted in the local metadata store and
// revalidated against the server on startup.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/haidang99/oceanchat/internal/client/api"
	"github.com/haidang99/oceanchat/internal/client/models"
	"github.com/haidang99/oceanchat/internal/client/repositories/metadata"
	"github.com/haidang99/oceanchat/internal/common"
	"github.com/haidang99/oceanchat/internal/logging"
)

const sessionKey = "session"

type Store struct {
	api    api.API
	repo   metadata.Repository
	logger logging.Logger

	mu      sync.Mutex
	current *models.User

	pushWG sync.WaitGroup
}

func NewStore(a api.API, repo metadata.Repository, logger logging.Logger) *Store {
	return &Store{api: a, repo: repo, logger: logger}
}

// Current returns a copy of the logged-in user, or nil when logged out.
func (s *Store) Current() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	c := *s.current
	return &c
}

func (s *Store) persist(ctx context.Context, u *models.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return s.repo.Set(ctx, sessionKey, data)
}

func (s *Store) adopt(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	s.current = u
	s.mu.Unlock()
	return s.persist(ctx, u)
}

// LoadCached restores the persisted session, if any. A record that fails to
// parse or carries no token is discarded; the caller simply starts logged
// out. No server round trip happens here.
func (s *Store) LoadCached(ctx context.Context) error {
	data, err := s.repo.Get(ctx, sessionKey)
	if err != nil {
		return err
	}
	if data == nil {
		return nil
	}

	var u models.User
	if err := json.Unmarshal(data, &u); err != nil || u.Token == "" {
		if err := s.repo.Delete(ctx, sessionKey); err != nil {
			return err
		}
		return nil
	}

	s.mu.Lock()
	s.current = &u
	s.mu.Unlock()
	return nil
}

// Verify revalidates the cached session against the server.
//
// Three outcomes:
//   - the server confirms: the authoritative user record is adopted and
//     persisted, and Verify returns nil;
//   - the server explicitly rejects: the session is cleared and Verify
//     returns ErrSessionExpired;
//   - the server cannot be reached: the cached identity is trusted for
//     offline use and Verify returns an error wrapping api.ErrUnavailable.
func (s *Store) Verify(ctx context.Context) error {
	cached := s.Current()
	if cached == nil || cached.Token == "" {
		return common.ErrSessionExpired
	}

	user, err := s.api.Verify(ctx, cached.ID, cached.Token)
	if err != nil {
		var rejected *api.RejectedError
		if errors.As(err, &rejected) {
			if clearErr := s.clear(ctx); clearErr != nil {
				s.logger.Warn(ctx, "failed to clear rejected session", "error", clearErr.Error())
			}
			return common.ErrSessionExpired
		}
		return fmt.Errorf("session check: %w", err)
	}

	if user.Token == "" {
		user.Token = cached.Token
	}
	return s.adopt(ctx, user)
}

// Login authenticates with the server and adopts the returned identity.
func (s *Store) Login(ctx context.Context, id string, password string) (*models.User, error) {
	user, err := s.api.Login(ctx, id, password)
	if err != nil {
		return nil, err
	}
	if err := s.adopt(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Register creates an account on the server and adopts the returned identity.
func (s *Store) Register(ctx context.Context, candidate *models.User) (*models.User, error) {
	user, err := s.api.Register(ctx, candidate)
	if err != nil {
		return nil, err
	}
	if err := s.adopt(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Store) clear(ctx context.Context) error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	return s.repo.Delete(ctx, sessionKey)
}

// Logout drops the local session. The server is not informed; the token
// simply stops being used and is invalidated by the next login anyway.
func (s *Store) Logout(ctx context.Context) error {
	return s.clear(ctx)
}

// UpdateLocal applies a profile change locally first: the session token is
// carried over from the current record, the result is persisted to the cache
// synchronously, and the server push happens in the background. A failed push
// is logged and dropped; the local state stays authoritative for this client.
func (s *Store) UpdateLocal(ctx context.Context, updated *models.User) error {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return common.ErrorUnauthorized
	}
	u := *updated
	u.Token = s.current.Token
	s.current = &u
	s.mu.Unlock()

	if err := s.persist(ctx, &u); err != nil {
		return err
	}

	s.pushWG.Add(1)
	go func() {
		defer s.pushWG.Done()
		pushCopy := u
		if err := s.api.UpdateUser(context.Background(), &pushCopy); err != nil {
			s.logger.Warn(ctx, "profile push failed", "error", err.Error())
		}
	}()

	return nil
}

// Wait blocks until background profile pushes have finished. Used on
// shutdown and in tests.
func (s *Store) Wait() {
	s.pushWG.Wait()
}
