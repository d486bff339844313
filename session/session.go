// Package session holds what a storefront remembers about one browser:
// the signed-in identity, persisted in a Store, and the cookie token that
// names the session.
package session

import (
	"context"
	"fmt"
	"strconv"

	"github.com/yashrajoria/storefront/models"
)

// Storage keys. They match the names the storefront has always used.
const (
	KeyUserID    = "user_id"
	KeyUserEmail = "user_email"
)

// Session is a handle on one browser session's stored values.
type Session struct {
	ID    string
	store Store
}

func New(id string, store Store) *Session {
	return &Session{ID: id, store: store}
}

// Identity returns the stored identity. ok is false unless both user id and
// email are present.
func (s *Session) Identity(ctx context.Context) (models.Identity, bool, error) {
	userID, _, err := s.store.Get(ctx, s.ID, KeyUserID)
	if err != nil {
		return models.Identity{}, false, fmt.Errorf("read %s: %w", KeyUserID, err)
	}
	email, _, err := s.store.Get(ctx, s.ID, KeyUserEmail)
	if err != nil {
		return models.Identity{}, false, fmt.Errorf("read %s: %w", KeyUserEmail, err)
	}

	id := models.Identity{UserID: userID, Email: email}
	return id, id.Valid(), nil
}

// SignIn persists the identity returned by a successful login.
func (s *Session) SignIn(ctx context.Context, id models.Identity) error {
	if err := s.store.Set(ctx, s.ID, KeyUserID, id.UserID); err != nil {
		return fmt.Errorf("write %s: %w", KeyUserID, err)
	}
	if err := s.store.Set(ctx, s.ID, KeyUserEmail, id.Email); err != nil {
		return fmt.Errorf("write %s: %w", KeyUserEmail, err)
	}
	return nil
}

// SignOut removes both identity keys. No server call is involved.
func (s *Session) SignOut(ctx context.Context) error {
	return s.store.Delete(ctx, s.ID, KeyUserID, KeyUserEmail)
}

// UserIDNumber returns the stored user id as an integer, as order
// submission expects it. ok is false when no id is stored or it is not numeric.
func (s *Session) UserIDNumber(ctx context.Context) (int64, bool) {
	raw, found, err := s.store.Get(ctx, s.ID, KeyUserID)
	if err != nil || !found {
		return 0, false
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
