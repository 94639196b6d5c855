package infra

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"middleware-counter/middleware/pathcount/domain"
)

// setupMiniRedis sobe um miniredis e devolve um client apontando para ele.
func setupMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
		mr.Close()
	})
	return mr, rdb
}

func TestRedisStatsStore_RecordWritesHashes(t *testing.T) {
	mr, rdb := setupMiniRedis(t)
	s := NewRedisStatsStore(rdb, WithStatsPrefix("test:stats:"), WithStatsTrackKeys(true))

	at := time.Date(2026, 10, 19, 12, 30, 0, 0, time.UTC)
	ctx := context.Background()
	require.NoError(t, s.Record(ctx, domain.CallEvent{Key: "foo", Count: 1, Method: "GET", Path: "/foo", At: at}))
	require.NoError(t, s.Record(ctx, domain.CallEvent{Key: "foo", Count: 2, Method: "GET", Path: "/foo", At: at}))

	assert.Equal(t, "2", mr.HGet("test:stats:total", "calls"))
	assert.Equal(t, "2", mr.HGet("test:stats:minute:202610191230", "calls"))
	assert.Equal(t, "2", mr.HGet("test:stats:route", "GET /foo"))
	assert.Equal(t, "2", mr.HGet("test:stats:key", "foo"))
	assert.True(t, mr.TTL("test:stats:minute:202610191230") > 0)
	assert.Equal(t, time.Duration(0), mr.TTL("test:stats:total"))
}

func TestRedisStatsStore_NoBucket(t *testing.T) {
	mr, rdb := setupMiniRedis(t)
	s := NewRedisStatsStore(rdb, WithStatsBucket(" NONE "))

	require.NoError(t, s.Record(context.Background(), domain.CallEvent{Key: "foo", Count: 1, Method: "GET", Path: "/foo"}))

	assert.Equal(t, "1", mr.HGet("pathcount:stats:total", "calls"))
	for _, k := range mr.Keys() {
		assert.NotContains(t, k, ":minute:")
	}
	assert.False(t, mr.Exists("pathcount:stats:key"))
}

func TestRedisStatsStore_ErrorWhenRedisDown(t *testing.T) {
	mr, rdb := setupMiniRedis(t)
	s := NewRedisStatsStore(rdb)
	mr.Close()

	err := s.Record(context.Background(), domain.CallEvent{Key: "foo", Count: 1})
	assert.Error(t, err)
}

func TestRedisStatsStore_NilIsNoop(t *testing.T) {
	var s *RedisStatsStore
	assert.NoError(t, s.Record(context.Background(), domain.CallEvent{Key: "foo"}))
}
