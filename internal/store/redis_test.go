package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/knowtest/internal/session"
)

func TestParseRedisURL(t *testing.T) {
	opts, err := ParseRedisURL("redis://:secret@localhost:6380/2")
	require.NoError(t, err)
	assert.Equal(t, "localhost:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)

	_, err = ParseRedisURL("")
	assert.Error(t, err)

	_, err = ParseRedisURL("http://localhost")
	assert.Error(t, err)
}

func TestNewRedisStore_Unreachable(t *testing.T) {
	if testing.Short() {
		t.Skip("dials the network")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisStore(ctx, "redis://127.0.0.1:1/0", nil)
	assert.Error(t, err)
}

func TestRedisKey(t *testing.T) {
	assert.Equal(t, "knowtest:session:brave-fox-01", redisKey("brave-fox-01"))
}

// liveRedis connects to KNOWTEST_TEST_REDIS_URL, skipping when it is unset.
func liveRedis(t *testing.T) *RedisStore {
	t.Helper()
	url := os.Getenv("KNOWTEST_TEST_REDIS_URL")
	if url == "" {
		t.Skip("KNOWTEST_TEST_REDIS_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	r, err := NewRedisStore(ctx, url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRedisStore_SaveLoadListDelete(t *testing.T) {
	r := liveRedis(t)
	ctx := context.Background()
	name := "redis-test-" + uuid.NewString()[:8]
	t.Cleanup(func() { _ = r.Delete(context.Background(), name) })

	_, err := r.Load(ctx, name)
	require.ErrorIs(t, err, session.ErrNotFound)

	want := testSnapshot(name)
	want.SavedAt = time.Now().UTC().Truncate(time.Second)
	require.NoError(t, r.Save(ctx, name, want))

	got, err := r.Load(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, want.TestName, got.TestName)
	assert.Equal(t, want.Topics, got.Topics)
	assert.Equal(t, want.TopicIndex, got.TopicIndex)
	assert.Equal(t, want.Level, got.Level)
	assert.Equal(t, want.QuestionIndex, got.QuestionIndex)
	assert.Equal(t, want.ConsecutiveCorrect, got.ConsecutiveCorrect)
	assert.Equal(t, want.Results, got.Results)
	assert.True(t, want.SavedAt.Equal(got.SavedAt))

	infos, err := r.List(ctx)
	require.NoError(t, err)
	var found *SessionInfo
	for i := range infos {
		if infos[i].Name == name {
			found = &infos[i]
		}
	}
	require.NotNil(t, found, "List() missing %s", name)
	assert.Equal(t, 1, found.TopicIndex)
	assert.Equal(t, 2, found.TopicCount)

	require.NoError(t, r.Delete(ctx, name))
	assert.ErrorIs(t, r.Delete(ctx, name), session.ErrNotFound)
	_, err = r.Load(ctx, name)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestRedisStore_SaveRejectsBadName(t *testing.T) {
	r := liveRedis(t)
	assert.Error(t, r.Save(context.Background(), "../etc/passwd", testSnapshot("x")))
}
