package database

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestNewRedisClient_Errors(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "not a url")
	assert.ErrorContains(t, err, "invalid Redis URL")

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	_, err = NewRedisClient(context.Background(), "redis://"+addr)
	assert.ErrorContains(t, err, "failed to connect")
}
