package rxport

import (
	"context"
	"testing"
	"time"

	"github.com/df-mc/dragonfly/server/cmd"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_OpensPortsThenRunsHooks(t *testing.T) {
	rec := &recordPort{}
	ping := &pingPort{}

	var seen []bool
	m := NewBuilder().
		Logger(discardLogger()).
		Port(rec).
		Port(ping).
		PostInit(func(m *Manager) {
			seen = append(seen, rec.IsOpen(), ping.IsOpen())
		}).
		Init()
	t.Cleanup(m.Shutdown)

	assert.Equal(t, []bool{true, true}, seen)
	assert.True(t, Has[*recordPort](m.Registry()))
	assert.True(t, Has[*pingPort](m.Registry()))
}

func TestBuilder_InvalidPortPanics(t *testing.T) {
	requirePanicIs(t, ErrPrecondition, func() {
		NewBuilder().Logger(discardLogger()).Port(&recordPort{invalid: true}).Init()
	})
}

func TestManager_ShutdownIsIdempotent(t *testing.T) {
	m := newTestManager(t)
	p := Open(m, &recordPort{})

	m.Shutdown()
	m.Shutdown()

	assert.True(t, p.IsClosed())
	assert.True(t, m.Lifetime().Fired())
}

func TestManager_ShutdownBeforeInitialize(t *testing.T) {
	m := NewManager(WithLogger(discardLogger()))
	assert.Nil(t, m.Lifetime())
	assert.NotPanics(t, m.Shutdown)
}

func TestManager_ReinitializeAfterShutdown(t *testing.T) {
	m := newTestManager(t)
	old := Open(m, &recordPort{})
	first := m.Lifetime()

	m.Shutdown()
	m.Initialize()

	require.NotSame(t, first, m.Lifetime())
	assert.False(t, m.Lifetime().Fired())
	assert.Same(t, m.Lifetime(), m.Bus().Lifetime())
	assert.False(t, Has[*recordPort](m.Registry()))

	p := Open(m, &recordPort{})
	require.NoError(t, PublishWith(m.Bus(), noticeX, 3))
	assert.Equal(t, []int{3}, p.got)
	assert.Empty(t, old.got)
}

func TestManager_InitializeKeepsLiveLifetime(t *testing.T) {
	m := newTestManager(t)
	p := Open(m, &recordPort{})
	life := m.Lifetime()

	m.Initialize()

	assert.Same(t, life, m.Lifetime())
	assert.False(t, Has[*recordPort](m.Registry()))
	// Resetting the registry does not close anything
	assert.True(t, p.IsOpen())
}

func TestManager_ContextCancelTearsDown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewBuilder().Logger(discardLogger()).Context(ctx).Init()
	p := Open(m, &recordPort{})

	cancel()

	require.Eventually(t, p.IsClosed, time.Second, 5*time.Millisecond)
	assert.True(t, m.Lifetime().Fired())
}

func TestManager_IsolatedSessions(t *testing.T) {
	a := newTestManager(t)
	b := newTestManager(t)

	pa := Open(a, &recordPort{})
	pb := Open(b, &recordPort{})

	require.NoError(t, PublishWith(a.Bus(), noticeX, 1))
	assert.Equal(t, []int{1}, pa.got)
	assert.Empty(t, pb.got)

	a.Shutdown()
	assert.True(t, pa.IsClosed())
	assert.True(t, pb.IsOpen())
}

// pingCommand is a no-op command registered by bundles in tests.
type pingCommand struct{}

func (pingCommand) Run(cmd.Source, *cmd.Output, *world.Tx) {}

func TestBuilder_Bundles(t *testing.T) {
	rec := &recordPort{}
	ping := &pingPort{}

	var order []string
	bund := NewBundle("gameplay").
		Port(rec).
		Command(cmd.New("rxport-ping", "Replies with nothing.", []string{"rxping"}, pingCommand{})).
		PostInit(func(*Manager) { order = append(order, "bundle") }).
		Build()

	m := NewBuilder().
		Logger(discardLogger()).
		Bundle(bund).
		Port(ping).
		PostInit(func(*Manager) { order = append(order, "builder") }).
		Init()
	t.Cleanup(m.Shutdown)

	assert.Equal(t, "gameplay", bund(m).Name())
	assert.Equal(t, []string{"bundle", "builder"}, order)
	assert.True(t, rec.IsOpen())
	assert.True(t, ping.IsOpen())

	c, ok := cmd.ByAlias("rxping")
	require.True(t, ok)
	assert.Equal(t, "rxport-ping", c.Name())

	_, ok = cmd.ByAlias("rxport-ping")
	assert.True(t, ok)
}
