package rxport

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

type testNotice uint8

const (
	noticeX testNotice = iota
	noticeY
)

func (n testNotice) String() string {
	switch n {
	case noticeX:
		return "noticeX"
	case noticeY:
		return "noticeY"
	default:
		return "unknown"
	}
}

// otherNotice shares underlying values with testNotice.
type otherNotice uint8

const otherX otherNotice = 0

// recordPort appends every noticeX/int payload it receives.
type recordPort struct {
	PortBase
	invalid bool
	got     []int
}

func (p *recordPort) Valid() bool { return !p.invalid }

func (p *recordPort) Bind(b *Binder) {
	On(b, noticeX, func(v int) {
		p.got = append(p.got, v)
	})
}

// pingPort counts payload-less noticeY notices.
type pingPort struct {
	PortBase
	pings int
}

func (p *pingPort) Valid() bool { return true }

func (p *pingPort) Bind(b *Binder) {
	OnNotice(b, noticeY, func() { p.pings++ })
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m := NewBuilder().Logger(discardLogger()).Init()
	t.Cleanup(m.Shutdown)
	return m
}

func newTestBus(t *testing.T) (*Bus, *Lifetime) {
	t.Helper()
	life := NewLifetime(nil)
	t.Cleanup(life.Teardown)
	return NewBus(WithBusLogger(discardLogger()), WithLifetime(life)), life
}

// requirePanicIs runs fn and requires it to panic with an error matching target.
func requirePanicIs(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(error)
		require.Truef(t, ok, "panic value %v is not an error", r)
		require.ErrorIs(t, err, target)
	}()
	fn()
}
