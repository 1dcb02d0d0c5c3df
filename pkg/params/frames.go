package params

import (
	"fmt"

	"github.com/optimade/optimade-go/pkg/errors"
)

// Frames is a resolved trajectory frame window.
type Frames struct {
	First int // first frame requested
	Start int // first frame to emit, after continue_from_frame
	Last  int // inclusive
	Step  int
}

// Indices returns the frame indices to emit.
func (f Frames) Indices() []int {
	var out []int
	for i := f.Start; i <= f.Last; i += f.Step {
		out = append(out, i)
	}
	return out
}

// FrameWindow checks the frame parameters against a trajectory of nframes
// frames and fills in the defaults: the last frame and a step of 1.
func (p *SingleParams) FrameWindow(nframes int) (Frames, error) {
	bound := fmt.Sprintf("lt=%d", nframes)
	if p.FirstFrame >= nframes {
		return Frames{}, errors.NewValidationError(FieldFirstFrame, p.FirstFrame, bound,
			fmt.Sprintf("must be less than the number of frames (%d)", nframes))
	}

	w := Frames{First: p.FirstFrame, Start: p.FirstFrame, Last: nframes - 1, Step: 1}

	if p.LastFrame != nil {
		if *p.LastFrame >= nframes {
			return Frames{}, errors.NewValidationError(FieldLastFrame, *p.LastFrame, bound,
				fmt.Sprintf("must be less than the number of frames (%d)", nframes))
		}
		w.Last = *p.LastFrame
	}

	if p.FrameStep != nil {
		if *p.FrameStep > nframes {
			return Frames{}, errors.NewValidationError(FieldFrameStep, *p.FrameStep,
				fmt.Sprintf("lte=%d", nframes),
				fmt.Sprintf("must not exceed the number of frames (%d)", nframes))
		}
		w.Step = *p.FrameStep
	}

	if p.ContinueFromFrame != nil {
		c := *p.ContinueFromFrame
		if c < w.First || c > w.Last {
			return Frames{}, errors.NewValidationError(FieldContinueFromFrame, c,
				fmt.Sprintf("between=%d,%d", w.First, w.Last),
				"must lie inside the requested frame range")
		}
		w.Start = c
	}

	return w, nil
}
