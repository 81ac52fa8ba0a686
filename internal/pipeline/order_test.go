package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drevops/vortex-sub001/api"
	"github.com/drevops/vortex-sub001/internal/config"
	"github.com/drevops/vortex-sub001/internal/handler"
)

func ids(handlers []handler.Handler) []string {
	out := make([]string, len(handlers))
	for i, h := range handlers {
		out[i] = h.ID()
	}
	return out
}

func TestOrder(t *testing.T) {
	tests := []struct {
		name     string
		handlers []handler.Handler
		want     []string
	}{
		{
			name:     "registration order kept",
			handlers: []handler.Handler{newFake("a"), newFake("b", "a"), newFake("c")},
			want:     []string{"a", "b", "c"},
		},
		{
			name:     "dependency registered later moves ahead",
			handlers: []handler.Handler{newFake("a", "c"), newFake("b"), newFake("c")},
			want:     []string{"b", "c", "a"},
		},
		{
			name:     "diamond",
			handlers: []handler.Handler{newFake("d", "b", "c"), newFake("c", "a"), newFake("b", "a"), newFake("a")},
			want:     []string{"a", "c", "b", "d"},
		},
		{
			name: "empty",
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Order(tt.handlers)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestOrder_Errors(t *testing.T) {
	tests := []struct {
		name     string
		handlers []handler.Handler
		msg      string
	}{
		{"cycle", []handler.Handler{newFake("x"), newFake("a", "b"), newFake("b", "a")}, "dependency cycle: a -> b -> a"},
		{"self", []handler.Handler{newFake("a", "a")}, "dependency cycle: a -> a"},
		{"unknown", []handler.Handler{newFake("a", "missing")}, `"a" depends on unknown setting "missing"`},
		{"duplicate", []handler.Handler{newFake("a"), newFake("a")}, `duplicate setting "a"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Order(tt.handlers)
			require.ErrorIs(t, err, api.ErrConfiguration)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestOrder_RegistryIsStable(t *testing.T) {
	all := handler.All(&config.Context{})
	got, err := Order(all)
	require.NoError(t, err)
	assert.Equal(t, ids(all), ids(got))
}
