package client

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQueryCache(t *testing.T) {
	t.Parallel()

	t.Run("hit within TTL", func(t *testing.T) {
		t.Parallel()
		cache := newQueryCache(time.Minute)
		cache.put("users", "/api/users", json.RawMessage(`{"a":1}`))

		raw, ok := cache.get("users", "/api/users")
		assert.True(t, ok)
		assert.JSONEq(t, `{"a":1}`, string(raw))
	})

	t.Run("miss on unknown entity or path", func(t *testing.T) {
		t.Parallel()
		cache := newQueryCache(time.Minute)
		cache.put("users", "/api/users", json.RawMessage(`{}`))

		_, ok := cache.get("drivers", "/api/drivers")
		assert.False(t, ok)
		_, ok = cache.get("users", "/api/users?page=2")
		assert.False(t, ok)
	})

	t.Run("stale entry expires", func(t *testing.T) {
		t.Parallel()
		cache := newQueryCache(time.Minute)
		now := time.Now()
		cache.nowFunc = func() time.Time { return now }
		cache.put("users", "/api/users", json.RawMessage(`{}`))

		cache.nowFunc = func() time.Time { return now.Add(2 * time.Minute) }
		_, ok := cache.get("users", "/api/users")
		assert.False(t, ok)
	})

	t.Run("invalidate drops the whole entity", func(t *testing.T) {
		t.Parallel()
		cache := newQueryCache(time.Minute)
		cache.put("packages", "/api/packages", json.RawMessage(`{}`))
		cache.put("packages", "/api/packages?page=2", json.RawMessage(`{}`))
		cache.put("drivers", "/api/drivers", json.RawMessage(`{}`))

		cache.invalidate("packages")

		_, ok := cache.get("packages", "/api/packages")
		assert.False(t, ok)
		_, ok = cache.get("packages", "/api/packages?page=2")
		assert.False(t, ok)
		_, ok = cache.get("drivers", "/api/drivers")
		assert.True(t, ok, "other entities survive")
	})
}
