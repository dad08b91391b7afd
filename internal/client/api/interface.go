// Package api is the client's wire interface to the chat server. All methods
// classify failures as either an authoritative rejection (*RejectedError) or
// an availability problem (wrapping ErrUnavailable), which drives the
// client's offline fallback decisions.
package api

import (
	"context"

	"github.com/haidang99/oceanchat/internal/client/models"
)

type API interface {
	Register(ctx context.Context, user *models.User) (*models.User, error)
	Login(ctx context.Context, id string, password string) (*models.User, error)
	Verify(ctx context.Context, id string, token string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error

	ListMessages(ctx context.Context) ([]models.Message, error)
	PostMessage(ctx context.Context, msg *models.Message) error

	// PresignAvatar returns a one-shot upload URL and the public URL the
	// object will have once uploaded.
	PresignAvatar(ctx context.Context) (uploadURL string, publicURL string, err error)
	UploadAvatar(ctx context.Context, uploadURL string, data []byte) error
}
