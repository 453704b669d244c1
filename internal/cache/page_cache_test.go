package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aidesk/saas-backend/internal/cache"
)

func TestKeyFormat(t *testing.T) {
	require.Equal(t, "users-page-1", cache.Key("users", 1))
	require.Equal(t, "businesses-page-42", cache.Key("businesses", 42))
}

func TestNilCacheAlwaysMisses(t *testing.T) {
	c := cache.New(nil)

	_, ok, err := c.Get(context.Background(), "users-page-1")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Set(context.Background(), "users-page-1", []byte("[]"), 300*time.Second))
}
