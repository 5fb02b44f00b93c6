package resource

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Memory(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})

	err := c.AcquireMemory(context.Background(), 50)
	require.NoError(t, err)
	assert.Equal(t, int64(50), c.MemoryUsage())

	err = c.AcquireMemory(context.Background(), 40)
	require.NoError(t, err)
	assert.Equal(t, int64(90), c.MemoryUsage())

	// Over the limit, non-blocking path refuses.
	ok := c.TryAcquireMemory(20)
	assert.False(t, ok)
	assert.Equal(t, int64(90), c.MemoryUsage())

	// Over the limit, blocking path times out.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err = c.AcquireMemory(ctx, 20)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	c.ReleaseMemory(50)
	assert.Equal(t, int64(40), c.MemoryUsage())

	err = c.AcquireMemory(context.Background(), 20)
	require.NoError(t, err)
	assert.Equal(t, int64(60), c.MemoryUsage())
}

func TestController_UnlimitedMemory(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 0})

	err := c.AcquireMemory(context.Background(), 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), c.MemoryUsage())

	c.ReleaseMemory(500)
	assert.Equal(t, int64(500), c.MemoryUsage())
}

func TestController_Background(t *testing.T) {
	c := NewController(Config{MaxBackgroundWorkers: 2})

	require.NoError(t, c.AcquireBackground(context.Background()))
	require.NoError(t, c.AcquireBackground(context.Background()))

	// Both slots busy.
	assert.False(t, c.TryAcquireBackground())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.AcquireBackground(ctx), context.DeadlineExceeded)

	c.ReleaseBackground()
	assert.True(t, c.TryAcquireBackground())

	c.ReleaseBackground()
	c.ReleaseBackground()
}

func TestController_DefaultWorkers(t *testing.T) {
	c := NewController(Config{})

	require.NoError(t, c.AcquireBackground(context.Background()))
	assert.False(t, c.TryAcquireBackground(), "default is a single worker slot")
	c.ReleaseBackground()
}

func TestController_NilTolerant(t *testing.T) {
	var c *Controller

	assert.NoError(t, c.AcquireMemory(context.Background(), 10))
	assert.True(t, c.TryAcquireMemory(10))
	c.ReleaseMemory(10)
	assert.Zero(t, c.MemoryUsage())
	assert.Zero(t, c.MemoryLimit())

	assert.NoError(t, c.AcquireBackground(context.Background()))
	assert.True(t, c.TryAcquireBackground())
	c.ReleaseBackground()

	assert.NoError(t, c.AcquireIO(context.Background(), 10))
}

func TestController_IO(t *testing.T) {
	t.Run("write within budget", func(t *testing.T) {
		c := NewController(Config{IOLimitBytesPerSec: 1 << 20})

		var buf bytes.Buffer
		w := NewRateLimitedWriter(&buf, c, context.Background())

		n, err := w.Write([]byte("payload"))
		require.NoError(t, err)
		assert.Equal(t, 7, n)
		assert.Equal(t, "payload", buf.String())
	})

	t.Run("read within budget", func(t *testing.T) {
		c := NewController(Config{IOLimitBytesPerSec: 1 << 20})

		r := NewRateLimitedReader(bytes.NewReader([]byte("payload")), c, context.Background())
		got, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, []byte("payload"), got)
	})

	t.Run("canceled context", func(t *testing.T) {
		c := NewController(Config{IOLimitBytesPerSec: 8})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		w := NewRateLimitedWriter(io.Discard, c, ctx)
		_, err := w.Write([]byte("refused"))
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("unlimited", func(t *testing.T) {
		c := NewController(Config{})

		var buf bytes.Buffer
		w := NewRateLimitedWriter(&buf, c, context.Background())
		_, err := w.Write(bytes.Repeat([]byte{1}, 1<<16))
		require.NoError(t, err)
		assert.Equal(t, 1<<16, buf.Len())
	})
}
