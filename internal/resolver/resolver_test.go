package resolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/Totarae/shortlink-demo/internal/storage"
)

func TestResolve(t *testing.T) {
	mappings := map[string]string{"abc123": "https://foo.com"}

	tests := []struct {
		name      string
		shortcode string
		mappings  map[string]string
		loaded    bool
		want      Outcome
	}{
		{
			name:      "known shortcode",
			shortcode: "abc123",
			mappings:  mappings,
			loaded:    true,
			want:      Outcome{State: StateRedirected, Shortcode: "abc123", Target: "https://foo.com"},
		},
		{
			name:      "unknown shortcode with empty store",
			shortcode: "unknown-code",
			mappings:  map[string]string{},
			loaded:    true,
			want:      Outcome{State: StateNotFound, Shortcode: "unknown-code", Target: HomePath},
		},
		{
			name:      "nil table",
			shortcode: "abc123",
			loaded:    true,
			want:      Outcome{State: StateNotFound, Shortcode: "abc123", Target: HomePath},
		},
		{
			name:      "empty target treated as missing",
			shortcode: "blank",
			mappings:  map[string]string{"blank": ""},
			loaded:    true,
			want:      Outcome{State: StateNotFound, Shortcode: "blank", Target: HomePath},
		},
		{
			name:     "no shortcode",
			mappings: mappings,
			loaded:   true,
			want:     Outcome{State: StateEmpty},
		},
		{
			name:      "not loaded yet",
			shortcode: "abc123",
			mappings:  mappings,
			want:      Outcome{State: StateLoading, Shortcode: "abc123"},
		},
		{
			name:      "case sensitive",
			shortcode: "ABC123",
			mappings:  mappings,
			loaded:    true,
			want:      Outcome{State: StateNotFound, Shortcode: "ABC123", Target: HomePath},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.shortcode, tt.mappings, tt.loaded)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_Idempotent(t *testing.T) {
	mappings := map[string]string{"abc123": "https://foo.com"}

	first := Resolve("abc123", mappings, true)
	second := Resolve("abc123", mappings, true)

	assert.Equal(t, first, second)
	assert.Equal(t, map[string]string{"abc123": "https://foo.com"}, mappings)
}

func TestStep_Transitions(t *testing.T) {
	mappings := map[string]string{"abc123": "https://foo.com"}

	o := Start("abc123")
	assert.Equal(t, StateLoading, o.State)
	assert.False(t, o.State.Terminal())

	o = Step(o, mappings, false)
	assert.Equal(t, StateLoading, o.State, "no lookup before load")

	o = Step(o, mappings, true)
	assert.Equal(t, StateResolving, o.State)
	assert.False(t, o.State.Terminal())

	o = Step(o, mappings, true)
	assert.Equal(t, StateRedirected, o.State)
	assert.True(t, o.State.Terminal())

	assert.Equal(t, o, Step(o, map[string]string{}, true), "terminal state is stable")
}

func TestResolver_UsesStore(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMappingStore(storage.NewMemorySlot([]byte(`{"abc123":"https://foo.com"}`)), zap.NewNop())
	r := New(store, zap.NewNop())

	assert.Equal(t, StateLoading, r.Resolve("abc123").State)

	store.Load(ctx)
	assert.Equal(t, Outcome{State: StateRedirected, Shortcode: "abc123", Target: "https://foo.com"}, r.Resolve("abc123"))
	assert.Equal(t, HomePath, r.Resolve("nope").Target)
}
