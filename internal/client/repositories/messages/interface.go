// Package messages persists the local transcript cache. The cache always
// holds one consistent snapshot of the conversation tail, replaced wholesale
// on every write.
package messages

import (
	"context"

	"github.com/haidang99/oceanchat/internal/client/models"
)

type Repository interface {
	// ReplaceAll atomically swaps the cached transcript for the given one,
	// preserving slice order.
	ReplaceAll(ctx context.Context, msgs []models.Message) error

	// GetAll returns the cached transcript in its stored order.
	GetAll(ctx context.Context) ([]models.Message, error)
}
