// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheRoundTrip(t *testing.T) {
	c, err := OpenCache(filepath.Join(t.TempDir(), "lookups.db"), time.Hour)
	require.NoError(t, err)
	defer c.Close()

	_, hit := c.Get("semantic_scholar", "attention")
	assert.False(t, hit)

	c.Put("semantic_scholar", "attention", []byte(`{"total":1}`))
	got, hit := c.Get("semantic_scholar", "attention")
	assert.True(t, hit)
	assert.Equal(t, `{"total":1}`, string(got))

	// Different service, same query: separate entry.
	_, hit = c.Get("google_books", "attention")
	assert.False(t, hit)
}

func TestCacheReplace(t *testing.T) {
	c, err := OpenCache(filepath.Join(t.TempDir(), "lookups.db"), time.Hour)
	require.NoError(t, err)
	defer c.Close()

	c.Put("courtlistener", "q", []byte("one"))
	c.Put("courtlistener", "q", []byte("two"))
	got, hit := c.Get("courtlistener", "q")
	require.True(t, hit)
	assert.Equal(t, "two", string(got))
}

func TestCacheTTLExpiry(t *testing.T) {
	c, err := OpenCache(filepath.Join(t.TempDir(), "lookups.db"), time.Nanosecond)
	require.NoError(t, err)
	defer c.Close()

	c.Put("courtlistener", "q", []byte("stale"))
	time.Sleep(5 * time.Millisecond)
	_, hit := c.Get("courtlistener", "q")
	assert.False(t, hit, "expired entry should miss")
}

func TestNilCacheIsSafe(t *testing.T) {
	var c *Cache
	_, hit := c.Get("s", "q")
	assert.False(t, hit)
	c.Put("s", "q", []byte("x")) // must not panic
	assert.NoError(t, c.Close())
}
