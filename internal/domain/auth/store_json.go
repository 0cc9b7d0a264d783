package auth

import (
	"context"
	"strings"
	"time"

	"staffhub/internal/platform/jsonstore"
)

type JSONStore struct {
	users *jsonstore.Collection[User]
}

func NewJSONStore(dir string) (*JSONStore, error) {
	users, err := jsonstore.New(dir, "users",
		func(u User) string { return u.ID },
		func(u *User, id string) { u.ID = id },
	)
	if err != nil {
		return nil, err
	}
	return &JSONStore{users: users}, nil
}

func (s *JSONStore) FindUserByEmail(ctx context.Context, email string) (User, error) {
	rows, err := s.users.List(func(u User) bool {
		return strings.EqualFold(u.Email, email)
	})
	if err != nil {
		return User{}, err
	}
	if len(rows) == 0 {
		return User{}, ErrUserNotFound
	}
	return rows[0], nil
}

func (s *JSONStore) EnsureUser(ctx context.Context, user User) error {
	_, err := s.FindUserByEmail(ctx, user.Email)
	if err == nil {
		return nil
	}
	user.CreatedAt = time.Now().UTC()
	_, err = s.users.Create(user)
	return err
}
