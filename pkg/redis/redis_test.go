package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type closer struct{ closed bool }

func (c *closer) Close() error {
	c.closed = true
	return nil
}

func TestConnect_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("empty url", func(t *testing.T) {
		t.Parallel()

		client, err := Open(ctx, "")
		require.Nil(t, client)
		require.ErrorIs(t, err, ErrEmptyConnectionURL)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		t.Parallel()

		for _, url := range []string{"http://localhost:6379", "localhost:6379", "postgres://x"} {
			client, err := Open(ctx, url)
			require.Nil(t, client)
			require.ErrorIs(t, err, ErrFailedToParseURL, url)
		}
	})

	t.Run("unreachable server", func(t *testing.T) {
		t.Parallel()

		cfg := DefaultConfig("redis://127.0.0.1:1/0")
		cfg.RetryAttempts = 1
		cfg.RetryInterval = time.Millisecond
		cfg.DialTimeout = 100 * time.Millisecond

		client, err := Connect(ctx, cfg)
		require.Nil(t, client)
		require.ErrorIs(t, err, ErrConnectionFailed)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		cctx, cancel := context.WithCancel(ctx)
		cancel()

		cfg := DefaultConfig("redis://127.0.0.1:1/0")
		cfg.RetryAttempts = 3
		cfg.RetryInterval = time.Hour

		_, err := Connect(cctx, cfg)
		require.ErrorIs(t, err, ErrConnectionFailed)
		require.True(t, errors.Is(err, context.Canceled))
	})
}

func TestHealthcheck_NilClient(t *testing.T) {
	t.Parallel()

	err := Healthcheck(nil)(context.Background())
	require.ErrorIs(t, err, ErrHealthcheckFailed)
}

func TestShutdown(t *testing.T) {
	t.Parallel()

	c := &closer{}
	require.NoError(t, Shutdown(c)(context.Background()))
	require.True(t, c.closed)
}
