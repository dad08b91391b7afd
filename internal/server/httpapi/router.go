// Package httpapi exposes the chat server over HTTP/JSON.
package httpapi

import (
	"context"
	"net/http"

	"github.com/haidang99/oceanchat/internal/logging"
	"github.com/haidang99/oceanchat/internal/server/messages"
	"github.com/haidang99/oceanchat/internal/server/users"
)

// UserService is the account surface the handlers dispatch to.
type UserService interface {
	Register(ctx context.Context, candidate *users.User) (*users.User, error)
	Login(ctx context.Context, id string, password string) (*users.User, error)
	Verify(ctx context.Context, id string, token string) (*users.User, error)
	Update(ctx context.Context, incoming *users.User) error
}

// MessageService is the chat log surface.
type MessageService interface {
	List(ctx context.Context) ([]messages.Message, error)
	Append(ctx context.Context, msg *messages.Message) error
}

// AvatarService issues presigned upload URLs.
type AvatarService interface {
	GetPresignedPutUrl(ctx context.Context) (string, string, string, error)
}

type Handlers struct {
	users    UserService
	messages MessageService
	avatars  AvatarService
	logger   logging.Logger
}

func NewHandlers(u UserService, m MessageService, a AvatarService, logger logging.Logger) *Handlers {
	return &Handlers{users: u, messages: m, avatars: a, logger: logger}
}

// NewRouter wires the handlers into a mux with request logging and CORS.
func NewRouter(h *Handlers) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/users", h.HandleUserAction)
	mux.HandleFunc("GET /api/chat", h.HandleListMessages)
	mux.HandleFunc("POST /api/chat", h.HandlePostMessage)
	mux.HandleFunc("POST /api/avatars", h.HandlePresignAvatar)
	mux.HandleFunc("GET /api/health", h.HandleHealth)

	return withLogging(h.logger, withCORS(mux))
}
