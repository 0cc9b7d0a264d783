package auth

import (
	"context"
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")

// User is one dashboard account. Role and Locale drive the access scope.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	Locale       string    `json:"locale"`
	CreatedAt    time.Time `json:"created_at"`
}

type Store interface {
	FindUserByEmail(ctx context.Context, email string) (User, error)

	// EnsureUser creates the account when no row for the email exists.
	EnsureUser(ctx context.Context, user User) error
}

type Service struct {
	store  Store
	secret string
}

func NewService(store Store, secret string) *Service {
	return &Service{store: store, secret: secret}
}

// Login checks credentials and mints a session token. The caller cannot tell
// a missing account from a wrong password.
func (s *Service) Login(ctx context.Context, email, password string) (string, UserContext, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		return "", UserContext{}, ErrUserNotFound
	}
	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return "", UserContext{}, ErrUserNotFound
	}

	token, err := GenerateToken(s.secret, Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Locale: user.Locale,
	}, TokenTTL)
	if err != nil {
		return "", UserContext{}, err
	}
	return token, UserContext{UserID: user.ID, Email: user.Email, Role: user.Role, Locale: user.Locale}, nil
}
