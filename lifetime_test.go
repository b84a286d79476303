package rxport

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifetime_HooksRunInOrder(t *testing.T) {
	life := NewLifetime(nil)

	var order []int
	for i := range 5 {
		life.onTeardown(func() { order = append(order, i) })
	}
	require.Equal(t, 5, life.pending())

	life.Teardown()
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
	assert.True(t, life.Fired())
	assert.Equal(t, 0, life.pending())
}

func TestLifetime_TeardownIsIdempotent(t *testing.T) {
	life := NewLifetime(nil)

	calls := 0
	life.onTeardown(func() { calls++ })

	life.Teardown()
	life.Teardown()
	assert.Equal(t, 1, calls)
}

func TestLifetime_StopUnregisters(t *testing.T) {
	life := NewLifetime(nil)

	called := false
	stop := life.onTeardown(func() { called = true })
	stop()
	stop()

	life.Teardown()
	assert.False(t, called)
}

func TestLifetime_HookAfterFireRunsImmediately(t *testing.T) {
	life := NewLifetime(nil)
	life.Teardown()

	called := false
	stop := life.onTeardown(func() { called = true })
	assert.True(t, called)
	assert.NotPanics(t, stop)
}

func TestLifetime_ContextCancelledOnTeardown(t *testing.T) {
	life := NewLifetime(nil)
	require.NoError(t, life.Context().Err())

	life.Teardown()

	<-life.Done()
	assert.ErrorIs(t, life.Context().Err(), context.Canceled)
}

func TestLifetime_ParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	life := NewLifetime(parent)

	fired := make(chan struct{})
	life.onTeardown(func() { close(fired) })

	cancel()
	<-fired
	assert.True(t, life.Fired())
}

func TestLifetime_TeardownDetachesFromParent(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	defer cancel()

	life := NewLifetime(parent)
	life.Teardown()

	// The parent is unaffected by the lifetime ending
	assert.NoError(t, parent.Err())
}
