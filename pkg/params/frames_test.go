package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optimade/optimade-go/pkg/errors"
)

func intp(n int) *int { return &n }

func TestFrameWindowDefaults(t *testing.T) {
	p := &SingleParams{}
	w, err := p.FrameWindow(5)
	require.NoError(t, err)
	assert.Equal(t, Frames{First: 0, Start: 0, Last: 4, Step: 1}, w)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, w.Indices())
}

func TestFrameWindowExplicit(t *testing.T) {
	p := &SingleParams{FirstFrame: 1, LastFrame: intp(7), FrameStep: intp(3)}
	w, err := p.FrameWindow(10)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4, 7}, w.Indices())
}

func TestFrameWindowContinue(t *testing.T) {
	p := &SingleParams{FirstFrame: 0, FrameStep: intp(2), ContinueFromFrame: intp(4)}
	w, err := p.FrameWindow(9)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 6, 8}, w.Indices())
}

func TestFrameWindowBounds(t *testing.T) {
	tests := []struct {
		name  string
		p     SingleParams
		field string
	}{
		{"first beyond end", SingleParams{FirstFrame: 5}, FieldFirstFrame},
		{"last beyond end", SingleParams{LastFrame: intp(5)}, FieldLastFrame},
		{"step larger than trajectory", SingleParams{FrameStep: intp(6)}, FieldFrameStep},
		{"continue before first", SingleParams{FirstFrame: 2, ContinueFromFrame: intp(1)}, FieldContinueFromFrame},
		{"continue past last", SingleParams{LastFrame: intp(2), ContinueFromFrame: intp(3)}, FieldContinueFromFrame},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.p.FrameWindow(5)
			require.Error(t, err)
			var verr *errors.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}
