package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/haidang99/oceanchat/internal/common"
	"github.com/haidang99/oceanchat/internal/server/auth"
	"github.com/haidang99/oceanchat/internal/server/config"
)

// MinIDLength is the minimum account id length accepted at registration.
const MinIDLength = 5

type Service struct {
	repo                  Repository
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:                  repo,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.SessionTokenValidityDuration,
	}
}

func (s *Service) generateSessionToken(userID string) (string, error) {
	return auth.GenerateToken(userID, s.jwtSecret, s.tokenValidityDuration)
}

// sanitize strips fields that must never leave the server.
func sanitize(u *User) *User {
	c := *u
	c.Password = ""
	return &c
}

// Register creates a new account. The candidate carries the user-chosen id,
// display name, plaintext password and starting profile; the password is
// stored as a bcrypt hash and a fresh session token is issued.
func (s *Service) Register(ctx context.Context, candidate *User) (*User, error) {

	if len(candidate.ID) < MinIDLength {
		return nil, common.ErrIDTooShort
	}

	_, err := s.repo.GetByID(ctx, candidate.ID)
	if err == nil {
		return nil, common.ErrDuplicateID
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(candidate.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	token, err := s.generateSessionToken(candidate.ID)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &User{
		ID:           candidate.ID,
		Username:     candidate.Username,
		Password:     string(hash),
		Avatar:       candidate.Avatar,
		Color:        candidate.Color,
		NameColor:    candidate.NameColor,
		Credits:      candidate.Credits,
		SessionToken: token,
	}

	if _, err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("error creating user: %v", err)
	}

	return sanitize(user), nil
}

// checkPassword verifies the candidate password against the stored
// credential. Legacy rows hold the password in plaintext; a plaintext match
// is accepted and the row is upgraded to a bcrypt hash in the same call, so
// the plaintext comparison path can succeed at most once per account. Once
// the stored value is a hash, only the hash comparison applies: presenting
// the hash string itself must not authenticate.
func (s *Service) checkPassword(ctx context.Context, user *User, password string) (bool, error) {
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil {
		return true, nil
	}

	if !strings.HasPrefix(user.Password, "$2") && user.Password == password {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return false, err
		}
		if err := s.repo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
			return false, err
		}
		return true, nil
	}

	return false, nil
}

// Login authenticates by id and password and rotates the session token.
func (s *Service) Login(ctx context.Context, id string, password string) (*User, error) {

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	ok, err := s.checkPassword(ctx, user, password)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if !ok {
		return nil, common.ErrorUnauthorized
	}

	token, err := s.generateSessionToken(user.ID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := s.repo.UpdateSessionToken(ctx, user.ID, token); err != nil {
		return nil, common.ErrorInternal
	}

	user.SessionToken = token
	return sanitize(user), nil
}

// Verify checks a cached session credential. The token must both validate as
// a signed, unexpired JWT for this user and match the token currently stored
// on the row; a re-login therefore invalidates every earlier token.
func (s *Service) Verify(ctx context.Context, id string, token string) (*User, error) {

	if token == "" {
		return nil, common.ErrSessionExpired
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, common.ErrSessionExpired
	}

	if user.SessionToken == "" || user.SessionToken != token {
		return nil, common.ErrSessionExpired
	}

	userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil || userID != id {
		return nil, common.ErrSessionExpired
	}

	return sanitize(user), nil
}

// Update applies a profile change (display name, avatar, name color,
// credits). The password and session token are never touched here. When the
// caller supplies a token it must match the stored one; an absent token is
// accepted for compatibility with older clients.
func (s *Service) Update(ctx context.Context, incoming *User) error {

	user, err := s.repo.GetByID(ctx, incoming.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}

	if incoming.SessionToken != "" && incoming.SessionToken != user.SessionToken {
		return common.ErrorUnauthorized
	}

	user.Username = incoming.Username
	user.Avatar = incoming.Avatar
	user.NameColor = incoming.NameColor
	user.Credits = incoming.Credits
	if user.Credits < 0 {
		user.Credits = 0
	}

	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		return common.ErrorInternal
	}
	return nil
}
