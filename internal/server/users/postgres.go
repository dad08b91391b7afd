package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/haidang99/oceanchat/internal/common"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *User) (*User, error) {

	query :=
		`INSERT INTO users (id, username, password, avatar, color, name_color, credits, session_token)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 `

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.Password, user.Avatar, user.Color, user.NameColor, user.Credits, user.SessionToken)

	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*User, error) {
	query :=
		`SELECT id, username, password, avatar, color, name_color, credits, session_token FROM users
		 WHERE id = $1
		 `

	user := &User{}
	var nameColor, sessionToken sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Username, &user.Password, &user.Avatar, &user.Color, &nameColor, &user.Credits, &sessionToken)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	user.NameColor = nameColor.String
	user.SessionToken = sessionToken.String

	return user, nil
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	query := `UPDATE users SET password = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}
	return nil
}

func (r *PostgresRepository) UpdateSessionToken(ctx context.Context, id string, token string) error {
	query := `UPDATE users SET session_token = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, token, id)
	if err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}
	return nil
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, user *User) error {
	query :=
		`UPDATE users
		 SET username = $1, avatar = $2, name_color = $3, credits = $4
		 WHERE id = $5
		 `
	_, err := r.db.ExecContext(ctx, query, user.Username, user.Avatar, user.NameColor, user.Credits, user.ID)
	if err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}
	return nil
}
