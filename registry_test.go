package rxport

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Empty(t *testing.T) {
	r := NewRegistry()

	assert.False(t, Has[*recordPort](r))
	_, ok := TryGet[*recordPort](r)
	assert.False(t, ok)
	_, ok = TryGetOpen[*recordPort](r)
	assert.False(t, ok)
	_, ok = TryGetClosed[*recordPort](r)
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_KeyedByConcreteType(t *testing.T) {
	m := newTestManager(t)
	rec := Open(m, &recordPort{})
	ping := Open(m, &pingPort{})

	r := m.Registry()
	assert.Equal(t, 2, r.Len())
	assert.True(t, r.HasType(reflect.TypeOf(rec)))
	assert.False(t, r.HasType(reflect.TypeFor[recordPort]()))

	gotRec, ok := TryGetOpen[*recordPort](r)
	require.True(t, ok)
	assert.Same(t, rec, gotRec)

	gotPing, ok := TryGetOpen[*pingPort](r)
	require.True(t, ok)
	assert.Same(t, ping, gotPing)
}

func TestRegistry_FiltersInvalid(t *testing.T) {
	m := newTestManager(t)
	p := Open(m, &recordPort{})

	// A port that stops being valid is still registered but not retrievable
	p.invalid = true

	assert.True(t, Has[*recordPort](m.Registry()))
	_, ok := TryGet[*recordPort](m.Registry())
	assert.False(t, ok)
	_, ok = TryGetOpen[*recordPort](m.Registry())
	assert.False(t, ok)

	p.Close()
	_, ok = TryGetClosed[*recordPort](m.Registry())
	assert.False(t, ok)
}

func TestRegistry_Reset(t *testing.T) {
	m := newTestManager(t)
	Open(m, &recordPort{})
	require.True(t, Has[*recordPort](m.Registry()))

	m.Registry().Reset()

	assert.False(t, Has[*recordPort](m.Registry()))
	assert.Equal(t, 0, m.Registry().Len())
}
