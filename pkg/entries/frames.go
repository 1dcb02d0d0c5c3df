package entries

import (
	"maps"

	"github.com/optimade/optimade-go/pkg/params"
)

// Frame serialization formats of trajectory properties.
const (
	FramesExplicit = "explicit"
	FramesConstant = "constant"
)

// SliceFrames returns a copy of a trajectory with every explicit per-frame
// property cut down to the frames of w. Each property object also records the
// window it now holds as first_frame, last_frame and frame_step. Constant
// properties are left alone. d itself is not modified.
func SliceFrames(d Resource, w params.Frames) Resource {
	indices := w.Indices()
	if len(indices) == 0 {
		return d
	}

	out := d
	out.Attributes = maps.Clone(d.Attributes)
	for name, v := range d.Attributes {
		prop, ok := v.(map[string]any)
		if !ok || prop["frame_serialization_format"] != FramesExplicit {
			continue
		}
		values, ok := prop["values"].([]any)
		if !ok {
			continue
		}

		sliced := make([]any, 0, len(indices))
		for _, i := range indices {
			if i < len(values) {
				sliced = append(sliced, values[i])
			}
		}

		prop = maps.Clone(prop)
		prop["values"] = sliced
		prop["first_frame"] = indices[0]
		prop["last_frame"] = indices[len(indices)-1]
		prop["frame_step"] = w.Step
		out.Attributes[name] = prop
	}
	return out
}
