package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestThrottle(t *testing.T, max int, window time.Duration) (*LoginThrottle, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLoginThrottle(client, max, window), mr
}

func TestLoginThrottle_LocksAfterMaxFailures(t *testing.T) {
	ctx := context.Background()
	throttle, _ := newTestThrottle(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		ok, err := throttle.Allowed(ctx, "Baker@Example.com")
		require.NoError(t, err)
		assert.True(t, ok, "attempt %d should be allowed", i+1)
		require.NoError(t, throttle.RecordFailure(ctx, "baker@example.com"))
	}

	ok, err := throttle.Allowed(ctx, "baker@example.com")
	require.NoError(t, err)
	assert.False(t, ok)

	other, err := throttle.Allowed(ctx, "other@example.com")
	require.NoError(t, err)
	assert.True(t, other)
}

func TestLoginThrottle_WindowExpires(t *testing.T) {
	ctx := context.Background()
	throttle, mr := newTestThrottle(t, 1, time.Minute)

	require.NoError(t, throttle.RecordFailure(ctx, "baker@example.com"))
	assert.Equal(t, time.Minute, mr.TTL("login:failures:baker@example.com"))

	ok, err := throttle.Allowed(ctx, "baker@example.com")
	require.NoError(t, err)
	assert.False(t, ok)

	mr.FastForward(2 * time.Minute)

	ok, err = throttle.Allowed(ctx, "baker@example.com")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLoginThrottle_LaterFailuresKeepWindow(t *testing.T) {
	ctx := context.Background()
	throttle, mr := newTestThrottle(t, 5, time.Minute)
	key := "login:failures:baker@example.com"

	require.NoError(t, throttle.RecordFailure(ctx, "baker@example.com"))
	mr.FastForward(20 * time.Second)
	require.NoError(t, throttle.RecordFailure(ctx, "baker@example.com"))

	assert.Equal(t, 40*time.Second, mr.TTL(key))
	n, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "2", n)
}

func TestLoginThrottle_CounterWithoutTTLGetsOne(t *testing.T) {
	ctx := context.Background()
	throttle, mr := newTestThrottle(t, 5, time.Minute)
	key := "login:failures:baker@example.com"

	// a counter stranded without an expiry must not lock the account forever
	require.NoError(t, mr.Set(key, "3"))
	require.Zero(t, mr.TTL(key))

	require.NoError(t, throttle.RecordFailure(ctx, "baker@example.com"))
	assert.Equal(t, time.Minute, mr.TTL(key))

	mr.FastForward(2 * time.Minute)
	ok, err := throttle.Allowed(ctx, "baker@example.com")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLoginThrottle_Reset(t *testing.T) {
	ctx := context.Background()
	throttle, mr := newTestThrottle(t, 1, time.Minute)

	require.NoError(t, throttle.RecordFailure(ctx, "baker@example.com"))
	require.NoError(t, throttle.Reset(ctx, "baker@example.com"))
	assert.False(t, mr.Exists("login:failures:baker@example.com"))

	ok, err := throttle.Allowed(ctx, "baker@example.com")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLoginThrottle_RedisDown(t *testing.T) {
	ctx := context.Background()
	throttle, mr := newTestThrottle(t, 1, time.Minute)
	mr.Close()

	_, err := throttle.Allowed(ctx, "baker@example.com")
	assert.Error(t, err)
}
