package engine

import (
	"fmt"

	"github.com/MineClever/Maya-Mocap/internal/trc"
	"github.com/MineClever/Maya-Mocap/pkg/core"
)

// PlaceMarkers creates one placeholder object per marker and keyframes its
// position for every frame. The first marker's object is the template;
// later markers are instances of it, so all markers share one shape and
// the scene stays light. labels are the suffixed names, in table order.
// Returns the created handles for grouping.
func (e *Engine) PlaceMarkers(table *trc.Table, labels []string, spec core.PrimitiveSpec) ([]core.Handle, error) {
	if len(labels) != len(table.Labels()) {
		return nil, fmt.Errorf("engine: %d resolved labels for %d markers", len(labels), len(table.Labels()))
	}
	if len(labels) == 0 {
		return nil, nil
	}

	handles := make([]core.Handle, len(labels))
	for i, label := range labels {
		var err error
		if i == 0 {
			handles[i], err = e.host.CreatePrimitive(spec, label)
		} else {
			handles[i], err = e.host.CreateInstance(handles[0], label)
		}
		if err != nil {
			return nil, err
		}
	}

	for frame := 0; frame < table.NumFrames(); frame++ {
		for m, h := range handles {
			pos := core.RemapSample(table.SampleAt(frame, m))
			if err := e.host.SetPosition(h, frame, pos); err != nil {
				return nil, err
			}
		}
	}

	e.log.Debug("Placed markers", "markers", len(handles), "frames", table.NumFrames())
	return handles, nil
}
