package users

import "context"

type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	UpdateSessionToken(ctx context.Context, id string, token string) error
	UpdateProfile(ctx context.Context, user *User) error
}
