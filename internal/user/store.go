package user

import (
	"context"
	"errors"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

type Store interface {
	Create(ctx context.Context, u *User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
