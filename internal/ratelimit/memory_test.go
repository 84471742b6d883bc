package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter_AllowsUpToLimit(t *testing.T) {
	l := NewMemoryLimiter(3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := l.Check(ctx, "client-a")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 2-i, res.Remaining)
	}

	res, err := l.Check(ctx, "client-a")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Zero(t, res.Remaining)
}

func TestMemoryLimiter_IdentifiersAreIndependent(t *testing.T) {
	l := NewMemoryLimiter(1)
	ctx := context.Background()

	res, err := l.Check(ctx, "client-a")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = l.Check(ctx, "client-b")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = l.Check(ctx, "client-a")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
}

func TestMemoryLimiter_WindowResets(t *testing.T) {
	l := NewMemoryLimiter(1)
	now := time.Now()
	l.now = func() time.Time { return now }
	ctx := context.Background()

	res, err := l.Check(ctx, "client-a")
	require.NoError(t, err)
	require.True(t, res.Allowed)

	res, err = l.Check(ctx, "client-a")
	require.NoError(t, err)
	require.False(t, res.Allowed)
	assert.Equal(t, now.Add(time.Minute), res.ResetAt)

	now = now.Add(61 * time.Second)
	res, err = l.Check(ctx, "client-a")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}
