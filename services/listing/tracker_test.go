package listing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestTrackerCancelsSuperseded(t *testing.T) {
	defer goleak.VerifyNone(t)

	tr := NewTracker()
	ctxA, genA := tr.Begin(context.Background(), "session:bookings")
	ctxB, genB := tr.Begin(context.Background(), "session:bookings")

	require.Greater(t, genB, genA)
	assert.ErrorIs(t, ctxA.Err(), context.Canceled)
	assert.NoError(t, ctxB.Err())

	assert.False(t, tr.Done("session:bookings", genA), "stale fetch must not count as current")
	assert.True(t, tr.Done("session:bookings", genB))
	assert.ErrorIs(t, ctxB.Err(), context.Canceled, "context is released on Done")
	assert.Equal(t, 0, tr.Len())
}

func TestTrackerKeysAreIndependent(t *testing.T) {
	tr := NewTracker()
	ctxA, genA := tr.Begin(context.Background(), "s:users")
	_, genB := tr.Begin(context.Background(), "s:bookings")

	assert.NoError(t, ctxA.Err())
	assert.Equal(t, 2, tr.Len())
	assert.True(t, tr.Done("s:users", genA))
	assert.True(t, tr.Done("s:bookings", genB))
}

func TestTrackerParentCancellation(t *testing.T) {
	tr := NewTracker()
	parent, cancel := context.WithCancel(context.Background())
	ctx, gen := tr.Begin(parent, "k")
	cancel()

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.True(t, tr.Done("k", gen))
}
