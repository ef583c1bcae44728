// Package scene defines the host collaborator interface through which the
// reconstruction engines mutate a 3D scene, and a factory over the
// available backends.
//
// The engines only produce names, positions and orientations; object
// lifecycle and curve evaluation belong to the host. All mutations are
// issued synchronously in pipeline order.
package scene

import "github.com/MineClever/Maya-Mocap/pkg/core"

// Host is the capability set the import pipeline needs from a scene.
type Host interface {
	// ExistingObjectNames returns every object name already present in the
	// workspace, for disambiguation probing before any object is created.
	ExistingObjectNames() (map[string]struct{}, error)

	// CreatePrimitive creates the marker template object.
	CreatePrimitive(spec core.PrimitiveSpec, name string) (core.Handle, error)

	// CreateInstance creates a lightweight instance of a template.
	CreateInstance(of core.Handle, name string) (core.Handle, error)

	// CreateJoint creates a joint, parented under the given handle.
	// Pass core.NoHandle for a root joint.
	CreateJoint(name string, parent core.Handle) (core.Handle, error)

	// SetPosition keyframes an object's position at a frame.
	SetPosition(h core.Handle, frame int, pos core.Position3D) error

	// SetOrientation keyframes a joint's orientation at a frame.
	SetOrientation(h core.Handle, frame int, o core.Orientation) error

	// Group creates a named group containing the given members. With no
	// members an empty group is created.
	Group(name string, members ...core.Handle) (core.Handle, error)

	// Parent re-parents child under parent.
	Parent(child, parent core.Handle) error

	// SetPlaybackRange sets the playable frame range and playback speed.
	SetPlaybackRange(start, end int, speed float64) error

	// Close flushes the backend's output.
	Close() error
}
