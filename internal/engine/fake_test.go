package engine

import (
	"fmt"

	"github.com/MineClever/Maya-Mocap/pkg/core"
)

// fakeHost records every scene mutation in call order so tests can assert
// both values and sequencing.
type fakeHost struct {
	calls     []string
	names     []string
	positions map[string]map[int]core.Position3D
	orients   map[string][]int // object -> frames oriented at
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		positions: make(map[string]map[int]core.Position3D),
		orients:   make(map[string][]int),
	}
}

func (f *fakeHost) add(name string) core.Handle {
	f.names = append(f.names, name)
	return core.Handle(len(f.names) - 1)
}

func (f *fakeHost) nameOf(h core.Handle) string {
	return f.names[h]
}

func (f *fakeHost) ExistingObjectNames() (map[string]struct{}, error) {
	existing := make(map[string]struct{}, len(f.names))
	for _, n := range f.names {
		existing[n] = struct{}{}
	}
	return existing, nil
}

func (f *fakeHost) CreatePrimitive(spec core.PrimitiveSpec, name string) (core.Handle, error) {
	f.calls = append(f.calls, "primitive:"+name)
	return f.add(name), nil
}

func (f *fakeHost) CreateInstance(of core.Handle, name string) (core.Handle, error) {
	f.calls = append(f.calls, fmt.Sprintf("instance:%s<-%s", name, f.nameOf(of)))
	return f.add(name), nil
}

func (f *fakeHost) CreateJoint(name string, parent core.Handle) (core.Handle, error) {
	parentName := "<none>"
	if parent != core.NoHandle {
		parentName = f.nameOf(parent)
	}
	f.calls = append(f.calls, fmt.Sprintf("joint:%s parent=%s", name, parentName))
	return f.add(name), nil
}

func (f *fakeHost) SetPosition(h core.Handle, frame int, pos core.Position3D) error {
	name := f.nameOf(h)
	f.calls = append(f.calls, fmt.Sprintf("pos:%s@%d", name, frame))
	if f.positions[name] == nil {
		f.positions[name] = make(map[int]core.Position3D)
	}
	f.positions[name][frame] = pos
	return nil
}

func (f *fakeHost) SetOrientation(h core.Handle, frame int, o core.Orientation) error {
	name := f.nameOf(h)
	f.calls = append(f.calls, fmt.Sprintf("orient:%s@%d", name, frame))
	f.orients[name] = append(f.orients[name], frame)
	return nil
}

func (f *fakeHost) Group(name string, members ...core.Handle) (core.Handle, error) {
	f.calls = append(f.calls, "group:"+name)
	return f.add(name), nil
}

func (f *fakeHost) Parent(child, parent core.Handle) error {
	f.calls = append(f.calls, fmt.Sprintf("parent:%s->%s", f.nameOf(child), f.nameOf(parent)))
	return nil
}

func (f *fakeHost) SetPlaybackRange(start, end int, speed float64) error {
	f.calls = append(f.calls, fmt.Sprintf("playback:%d-%d", start, end))
	return nil
}

func (f *fakeHost) Close() error {
	f.calls = append(f.calls, "close")
	return nil
}
