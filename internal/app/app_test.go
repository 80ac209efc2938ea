package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStopsOnContextCancel(t *testing.T) {
	t.Setenv("LINKHUB_LISTEN_PORT", "127.0.0.1:0")
	t.Setenv("LINKHUB_LOG_LEVEL", "error")
	t.Setenv("LINKHUB_PRETTY_LOG", "false")

	ctx, cancel := context.WithCancel(context.Background())
	a := New(ctx)
	assert.Nil(t, a.redisClient)
	assert.Nil(t, a.store)

	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	require.Eventually(t, func() bool { return a.memIndex.Count() == 13 }, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunFailsWithoutDirectory(t *testing.T) {
	t.Setenv("LINKHUB_LISTEN_PORT", "127.0.0.1:0")
	t.Setenv("LINKHUB_LOG_LEVEL", "error")
	t.Setenv("LINKHUB_PRETTY_LOG", "false")
	t.Setenv("LINKHUB_DIRECTORY_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	a := New(context.Background())
	err := a.Run(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start directory reloader")
}

func TestUnreachableRedisRunsDegraded(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for the redis connect timeout")
	}
	t.Setenv("LINKHUB_LOG_LEVEL", "error")
	t.Setenv("LINKHUB_PRETTY_LOG", "false")
	t.Setenv("LINKHUB_REDIS_ADDR", "127.0.0.1:1")
	t.Setenv("REDIS_CONNECT_TIMEOUT", "200ms")
	t.Setenv("REDIS_RETRY_INTERVAL", "50ms")
	t.Setenv("REDIS_MAX_WAIT", "100ms")
	t.Setenv("REDIS_PING_TIMEOUT", "50ms")

	a := New(context.Background())
	assert.Nil(t, a.redisClient)
	assert.False(t, a.store.Enabled())
}
