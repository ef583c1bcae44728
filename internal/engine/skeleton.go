package engine

import (
	"fmt"

	"github.com/MineClever/Maya-Mocap/internal/skeleton"
	"github.com/MineClever/Maya-Mocap/internal/trc"
	"github.com/MineClever/Maya-Mocap/pkg/core"
)

// BuildSkeleton creates one joint per topology node in pre-order, keyframes
// every joint's position for every frame, and runs the one-time orientation
// pass after frame 0 is fully placed. suffix is the import's
// disambiguation counter as a string. Returns the root joint handle.
//
// Bone orientation is fixed at bind time from the frame-0 pose: each
// non-root joint aims its parent's X axis at itself with Y up. Later frames
// inherit orientation through hierarchical position propagation, so the
// first frame must be anatomically plausible.
func (e *Engine) BuildSkeleton(table *trc.Table, root *skeleton.Node, suffix string) (core.Handle, error) {
	bindings, err := skeleton.ResolveBindings(root, table.Labels())
	if err != nil {
		return core.NoHandle, err
	}

	nodes := skeleton.PreOrder(root)
	handles := make([]core.Handle, len(nodes))
	handleOf := make(map[*skeleton.Node]core.Handle, len(nodes))
	for i, n := range nodes {
		parent := core.NoHandle
		if n.Parent() != nil {
			parent = handleOf[n.Parent()]
		}
		h, err := e.host.CreateJoint(n.Name+suffix, parent)
		if err != nil {
			return core.NoHandle, err
		}
		handles[i] = h
		handleOf[n] = h
	}

	indexOf := make(map[*skeleton.Node]int, len(nodes))
	for i, n := range nodes {
		indexOf[n] = i
	}

	frame0 := make([]core.Position3D, len(nodes))
	for frame := 0; frame < table.NumFrames(); frame++ {
		for i, b := range bindings {
			pos, err := resolvePosition(table, frame, b)
			if err != nil {
				return core.NoHandle, err
			}
			if err := e.host.SetPosition(handles[i], frame, pos); err != nil {
				return core.NoHandle, err
			}
			if frame == 0 {
				frame0[i] = pos
			}
		}

		// Orient bones once, from the frame-0 pose, strictly after every
		// joint of that frame has been positioned.
		if frame == 0 {
			for i := 1; i < len(nodes); i++ {
				parentIdx := indexOf[nodes[i].Parent()]
				o := core.AimOrientation(frame0[parentIdx], frame0[i])
				if err := e.host.SetOrientation(handles[parentIdx], 0, o); err != nil {
					return core.NoHandle, err
				}
			}
		}
	}

	e.log.Debug("Built skeleton", "joints", len(nodes), "frames", table.NumFrames())
	return handles[0], nil
}

// resolvePosition computes a joint's scene-space position at a frame from
// its binding: a direct marker sample, or the average of the synthesis
// input samples, axis-remapped either way.
func resolvePosition(table *trc.Table, frame int, b skeleton.Binding) (core.Position3D, error) {
	if b.Direct() {
		s, ok := table.Sample(frame, b.Marker)
		if !ok {
			return core.Position3D{}, &skeleton.BindingError{Joint: b.Node.Name, Missing: []string{b.Marker}}
		}
		return core.RemapSample(s), nil
	}

	samples := make([]core.Sample, 0, len(b.Average))
	for _, label := range b.Average {
		s, ok := table.Sample(frame, label)
		if !ok {
			return core.Position3D{}, &skeleton.BindingError{Joint: b.Node.Name, Missing: []string{label}}
		}
		samples = append(samples, s)
	}
	if len(samples) == 0 {
		return core.Position3D{}, fmt.Errorf("engine: joint %q has an empty synthesis rule", b.Node.Name)
	}
	return core.RemapSample(core.AverageSamples(samples...)), nil
}
