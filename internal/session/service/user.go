package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/foliodesk/folio/internal/session/domain"
	"github.com/foliodesk/folio/internal/session/store"
	"github.com/foliodesk/folio/pkg/cryptox"
	"github.com/foliodesk/folio/pkg/idx"
	"github.com/foliodesk/folio/pkg/slogx"
)

const demoUsername = "demo"

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrUsernameTaken      = errors.New("username_taken")
	ErrInvalidUsername    = errors.New("invalid_username")
	ErrInvalidPassword    = errors.New("invalid_password")
)

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_-]{3,32}$`)

// Users is the user-directory collaborator: signup, login and the demo
// account. Sessions come out of this only indirectly, via the HTTP layer
// calling Sessions.Establish after one of these succeeds.
type Users struct {
	Store store.Store
}

// Signup creates a regular user. Username rules match the directory schema;
// passwords only get a length floor, the rest is the user's business.
func (u *Users) Signup(ctx context.Context, username, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if !usernameRe.MatchString(username) {
		return domain.User{}, ErrInvalidUsername
	}
	if len(password) < 8 || len(password) > 128 {
		return domain.User{}, ErrInvalidPassword
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return domain.User{}, ErrUsernameTaken
		}
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user created", "user_id", user.ID, "username", username)
	return user, nil
}

// Login verifies credentials. Unknown user and wrong password produce the
// same error so the endpoint can't be used to enumerate usernames.
func (u *Users) Login(ctx context.Context, username, password string) (domain.User, error) {
	user, err := u.Store.Users().GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		slogx.FromContext(ctx).Info("login failed", "username", username)
		return domain.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// Demo finds or creates the shared demo account (guest role, random
// unusable password — nobody logs into it with credentials).
func (u *Users) Demo(ctx context.Context) (domain.User, error) {
	user, err := u.Store.Users().GetUserByUsername(ctx, demoUsername)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(idx.New().String())
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user = domain.User{
		ID:           idx.New().String(),
		Username:     demoUsername,
		PasswordHash: hash,
		Role:         domain.RoleGuest,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.Store.Users().CreateUser(ctx, user); err != nil {
		// Another request may have created it between our lookup and insert.
		if errors.Is(err, store.ErrConflict) {
			return u.Store.Users().GetUserByUsername(ctx, demoUsername)
		}
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("demo user created", "user_id", user.ID)
	return user, nil
}

// GetUserByID loads one user.
func (u *Users) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return u.Store.Users().GetUserByID(ctx, id)
}

// ListUsers returns the whole directory. Admin surface only.
func (u *Users) ListUsers(ctx context.Context) ([]domain.User, error) {
	return u.Store.Users().ListUsers(ctx)
}
