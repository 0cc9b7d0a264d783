package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGStore struct {
	DB *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{DB: pool}
}

func (s *PGStore) FindUserByEmail(ctx context.Context, email string) (User, error) {
	var user User
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, password_hash, role, locale, created_at
    FROM users
    WHERE email = $1
  `, email).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.Locale, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *PGStore) EnsureUser(ctx context.Context, user User) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO users (email, password_hash, role, locale)
    VALUES ($1, $2, $3, $4)
    ON CONFLICT (email) DO NOTHING
  `, user.Email, user.PasswordHash, user.Role, user.Locale)
	return err
}
