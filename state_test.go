package rxport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPortState_String(t *testing.T) {
	tests := []struct {
		state PortState
		want  string
	}{
		{PortClosed, "Closed"},
		{PortOpen, "Open"},
		{PortState(7), "Unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.state.String())
	}
}

func TestPortState_ZeroValueIsClosed(t *testing.T) {
	var p recordPort
	assert.Equal(t, PortClosed, p.State())
	assert.True(t, p.IsClosed())
	assert.False(t, p.IsOpen())
}
