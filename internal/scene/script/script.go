// Package script implements a scene host that emits a Maya Python script
// replaying the import through maya.cmds. Running the script inside Maya
// reproduces the same scene the original in-session tool built.
package script

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/MineClever/Maya-Mocap/pkg/core"
)

// Host accumulates maya.cmds statements and writes them out on Close.
type Host struct {
	path  string
	log   *slog.Logger
	lines []string
	names []string // handle -> object name
}

// New creates a script host writing to path.
func New(path string, logger *slog.Logger) *Host {
	return &Host{path: path, log: logger}
}

func (h *Host) add(handleName string) core.Handle {
	h.names = append(h.names, handleName)
	return core.Handle(len(h.names) - 1)
}

func (h *Host) name(handle core.Handle) (string, error) {
	if handle < 0 || int(handle) >= len(h.names) {
		return "", fmt.Errorf("script: unknown handle %d", handle)
	}
	return h.names[handle], nil
}

func (h *Host) emit(format string, args ...any) {
	h.lines = append(h.lines, fmt.Sprintf(format, args...))
}

// ExistingObjectNames returns the names created so far in this script. A
// generated script always targets a fresh scene, so earlier imports in the
// same run are the only collision source.
func (h *Host) ExistingObjectNames() (map[string]struct{}, error) {
	existing := make(map[string]struct{}, len(h.names))
	for _, n := range h.names {
		existing[n] = struct{}{}
	}
	return existing, nil
}

func (h *Host) CreatePrimitive(spec core.PrimitiveSpec, name string) (core.Handle, error) {
	if spec.Kind != core.PrimitiveSphere {
		return core.NoHandle, fmt.Errorf("script: unsupported primitive kind %q", spec.Kind)
	}
	h.emit("cmds.polySphere(r=%g, sx=%d, sy=%d, n='%s')", spec.Radius, spec.Subdivisions, spec.Subdivisions, name)
	return h.add(name), nil
}

func (h *Host) CreateInstance(of core.Handle, name string) (core.Handle, error) {
	template, err := h.name(of)
	if err != nil {
		return core.NoHandle, err
	}
	h.emit("cmds.instance('%s', n='%s')", template, name)
	return h.add(name), nil
}

func (h *Host) CreateJoint(name string, parent core.Handle) (core.Handle, error) {
	if parent == core.NoHandle {
		h.emit("cmds.select(None)")
	} else {
		parentName, err := h.name(parent)
		if err != nil {
			return core.NoHandle, err
		}
		h.emit("cmds.select('%s')", parentName)
	}
	h.emit("cmds.joint(name='%s')", name)
	return h.add(name), nil
}

func (h *Host) SetPosition(handle core.Handle, frame int, pos core.Position3D) error {
	obj, err := h.name(handle)
	if err != nil {
		return err
	}
	h.emit("cmds.setKeyframe('%s', t=%d, at='translateX', v=%g)", obj, frame, pos.X)
	h.emit("cmds.setKeyframe('%s', t=%d, at='translateY', v=%g)", obj, frame, pos.Y)
	h.emit("cmds.setKeyframe('%s', t=%d, at='translateZ', v=%g)", obj, frame, pos.Z)
	return nil
}

// SetOrientation lets Maya recompute the joint orient from the hierarchy
// (zso) under the convention carried by the orientation value; the
// quaternion itself is only needed by value-recording backends.
func (h *Host) SetOrientation(handle core.Handle, frame int, o core.Orientation) error {
	obj, err := h.name(handle)
	if err != nil {
		return err
	}
	h.emit("cmds.joint('%s', e=True, zso=True, oj='%s', sao='%s')", obj, o.OrientJoint, o.SecondaryAxisOrient)
	h.emit("cmds.setKeyframe('%s', t=%d)", obj, frame)
	return nil
}

func (h *Host) Group(name string, members ...core.Handle) (core.Handle, error) {
	if len(members) == 0 {
		h.emit("cmds.group(em=True, n='%s')", name)
		return h.add(name), nil
	}
	quoted := make([]string, 0, len(members))
	for _, m := range members {
		obj, err := h.name(m)
		if err != nil {
			return core.NoHandle, err
		}
		quoted = append(quoted, "'"+obj+"'")
	}
	h.emit("cmds.group(%s, n='%s')", strings.Join(quoted, ", "), name)
	return h.add(name), nil
}

func (h *Host) Parent(child, parent core.Handle) error {
	childName, err := h.name(child)
	if err != nil {
		return err
	}
	parentName, err := h.name(parent)
	if err != nil {
		return err
	}
	h.emit("cmds.parent('%s', '%s')", childName, parentName)
	return nil
}

func (h *Host) SetPlaybackRange(start, end int, speed float64) error {
	h.emit("cmds.playbackOptions(minTime=%d, maxTime=%d)", start, end)
	h.emit("cmds.playbackOptions(playbackSpeed=%g)", speed)
	return nil
}

// Close writes the accumulated script.
func (h *Host) Close() error {
	var b strings.Builder
	b.WriteString("import maya.cmds as cmds\n\n")
	for _, line := range h.lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(h.path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("script: writing %s: %w", h.path, err)
	}
	h.log.Info("Wrote scene script", "path", h.path, "statements", len(h.lines))
	return nil
}
