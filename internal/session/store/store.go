package store

import (
	"context"
	"errors"

	"github.com/foliodesk/folio/internal/session/domain"
)

var (
	// ErrNotFound reports a missing record.
	ErrNotFound = errors.New("store: not found")

	// ErrConflict reports a uniqueness violation (duplicate username).
	ErrConflict = errors.New("store: conflict")
)

// Users is the user-directory persistence contract. The session core itself
// is stateless; this exists for the login surface around it.
type Users interface {
	CreateUser(ctx context.Context, user domain.User) error
	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// Store is the top-level persistence handle.
type Store interface {
	Users() Users

	Ping(ctx context.Context) error
	Close() error
}
