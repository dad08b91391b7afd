// Package chat implements the client's conversation state: a transcript
// synced from the server with a local cache fallback, notification
// projection, and the send/reply/mention flows on top of it.
package chat

import (
	"context"
	"sync"

	"github.com/haidang99/oceanchat/internal/client/api"
	"github.com/haidang99/oceanchat/internal/client/models"
	"github.com/haidang99/oceanchat/internal/client/repositories/messages"
	"github.com/haidang99/oceanchat/internal/logging"
)

// CacheLimit is how many transcript messages the local cache keeps.
const CacheLimit = 100

// Store holds the in-memory transcript and reconciles it with the server and
// the local cache. The server is the source of truth while reachable; the
// cache only ever serves as a fallback, never overwriting newer in-memory
// state with less.
type Store struct {
	api    api.API
	cache  messages.Repository
	logger logging.Logger

	mu       sync.Mutex
	messages []models.Message
	offline  bool
}

func NewStore(a api.API, cache messages.Repository, logger logging.Logger) *Store {
	return &Store{api: a, cache: cache, logger: logger}
}

// Messages returns a copy of the current transcript.
func (s *Store) Messages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Message(nil), s.messages...)
}

// Offline reports whether the last fetch fell back to the cache.
func (s *Store) Offline() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offline
}

// FetchLatest pulls the transcript from the server. When the tail is
// unchanged (same last id, same length) the in-memory slice is kept as is.
// When the server cannot be reached the store flips to offline mode and
// adopts the cached transcript, but only if it is strictly more complete
// than what is already in memory. The fetch path never writes the cache;
// only sends do.
func (s *Store) FetchLatest(ctx context.Context) error {
	remote, err := s.api.ListMessages(ctx)
	if err != nil {
		s.fallbackToCache(ctx)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.offline {
		s.offline = false
		s.logger.Info(ctx, "back online")
	}

	if len(s.messages) > 0 && len(remote) > 0 {
		lastLocal := s.messages[len(s.messages)-1]
		lastRemote := remote[len(remote)-1]
		if lastLocal.ID == lastRemote.ID && len(s.messages) == len(remote) {
			return nil
		}
	}

	s.messages = remote
	return nil
}

func (s *Store) fallbackToCache(ctx context.Context) {
	s.mu.Lock()
	if !s.offline {
		s.offline = true
		s.logger.Warn(ctx, "server unreachable, switching to offline mode")
	}
	s.mu.Unlock()

	cached, err := s.cache.GetAll(ctx)
	if err != nil {
		s.logger.Warn(ctx, "failed to read message cache", "error", err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if (len(s.messages) == 0 && len(cached) > 0) || len(cached) > len(s.messages) {
		s.messages = cached
	}
}

// Append adds a just-sent message: it lands in the in-memory transcript and
// the local cache immediately, then goes to the server. Both the cache write
// and the network send may fail without failing the append; the message is
// already durable enough locally and will be reconciled on the next fetch.
func (s *Store) Append(ctx context.Context, msg *models.Message) {
	s.mu.Lock()
	s.messages = append(s.messages, *msg)
	tail := s.messages
	if len(tail) > CacheLimit {
		tail = tail[len(tail)-CacheLimit:]
	}
	snapshot := append([]models.Message(nil), tail...)
	s.mu.Unlock()

	if err := s.cache.ReplaceAll(ctx, snapshot); err != nil {
		s.logger.Warn(ctx, "failed to write message cache", "error", err.Error())
	}

	if err := s.api.PostMessage(ctx, msg); err != nil {
		s.logger.Info(ctx, "message saved locally only", "error", err.Error())
	}
}

// LastMessages returns up to n messages from the transcript tail.
func (s *Store) LastMessages(n int) []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.messages
	if len(msgs) > n {
		msgs = msgs[len(msgs)-n:]
	}
	return append([]models.Message(nil), msgs...)
}

// Contains reports whether a message with the given id is in the transcript.
func (s *Store) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].ID == id {
			return true
		}
	}
	return false
}

// Get returns the transcript message with the given id.
func (s *Store) Get(id string) (*models.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].ID == id {
			m := s.messages[i]
			return &m, true
		}
	}
	return nil, false
}
