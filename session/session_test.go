package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yashrajoria/storefront/models"
)

func TestSession_SignInAndOut(t *testing.T) {
	ctx := context.Background()
	s := New("sid-1", NewMemoryStore())

	_, ok, err := s.Identity(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	want := models.Identity{UserID: "15", Email: "ivan@example.ru"}
	require.NoError(t, s.SignIn(ctx, want))

	got, ok, err := s.Identity(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	n, ok := s.UserIDNumber(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(15), n)

	require.NoError(t, s.SignOut(ctx))
	_, ok, _ = s.Identity(ctx)
	assert.False(t, ok)
	_, ok = s.UserIDNumber(ctx)
	assert.False(t, ok)
}

func TestSession_HalfIdentityIsAbsent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, "sid", KeyUserID, "3"))

	_, ok, err := New("sid", store).Identity(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSession_NonNumericUserID(t *testing.T) {
	ctx := context.Background()
	s := New("sid", NewMemoryStore())
	require.NoError(t, s.SignIn(ctx, models.Identity{UserID: "abc", Email: "a@b.c"}))

	_, ok := s.UserIDNumber(ctx)
	assert.False(t, ok)
}
