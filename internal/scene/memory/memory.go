// Package memory implements a scene host that records every object and
// keyframe in memory and exports a JSON scene document on Close.
package memory

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/MineClever/Maya-Mocap/pkg/core"
)

// Config holds the JSON backend settings.
type Config struct {
	OutputPath     string
	CompressOutput bool // write gzip, appending .gz to the path
}

// ObjectRecord groups one scene object with its time-series data.
type ObjectRecord struct {
	Name            string               `json:"name"`
	Kind            string               `json:"kind"` // primitive | instance | joint | group
	Parent          string               `json:"parent,omitempty"`
	InstanceOf      string               `json:"instanceOf,omitempty"`
	Primitive       *core.PrimitiveSpec  `json:"primitive,omitempty"`
	PositionKeys    []PositionKey        `json:"positionKeys,omitempty"`
	OrientationKeys []OrientationKey     `json:"orientationKeys,omitempty"`
	Members         []string             `json:"members,omitempty"`
}

// PositionKey is one position keyframe.
type PositionKey struct {
	Frame    int             `json:"frame"`
	Position core.Position3D `json:"position"`
}

// OrientationKey is one orientation keyframe.
type OrientationKey struct {
	Frame       int              `json:"frame"`
	Orientation core.Orientation `json:"orientation"`
}

// Playback is the exported playable range.
type Playback struct {
	StartFrame int     `json:"startFrame"`
	EndFrame   int     `json:"endFrame"`
	Speed      float64 `json:"speed"`
}

// Export is the JSON document written on Close.
type Export struct {
	GeneratedAt time.Time       `json:"generatedAt"`
	Objects     []*ObjectRecord `json:"objects"`
	Playback    *Playback       `json:"playback,omitempty"`
}

// Host records scene mutations in memory.
type Host struct {
	cfg      Config
	log      *slog.Logger
	objects  []*ObjectRecord
	byName   map[string]core.Handle
	playback *Playback
}

// New creates a memory host.
func New(cfg Config, logger *slog.Logger) *Host {
	return &Host{cfg: cfg, log: logger, byName: make(map[string]core.Handle)}
}

func (h *Host) add(rec *ObjectRecord) core.Handle {
	h.objects = append(h.objects, rec)
	handle := core.Handle(len(h.objects) - 1)
	h.byName[rec.Name] = handle
	return handle
}

func (h *Host) record(handle core.Handle) (*ObjectRecord, error) {
	if handle < 0 || int(handle) >= len(h.objects) {
		return nil, fmt.Errorf("memory: unknown handle %d", handle)
	}
	return h.objects[handle], nil
}

func (h *Host) ExistingObjectNames() (map[string]struct{}, error) {
	existing := make(map[string]struct{}, len(h.byName))
	for n := range h.byName {
		existing[n] = struct{}{}
	}
	return existing, nil
}

func (h *Host) CreatePrimitive(spec core.PrimitiveSpec, name string) (core.Handle, error) {
	s := spec
	return h.add(&ObjectRecord{Name: name, Kind: "primitive", Primitive: &s}), nil
}

func (h *Host) CreateInstance(of core.Handle, name string) (core.Handle, error) {
	template, err := h.record(of)
	if err != nil {
		return core.NoHandle, err
	}
	return h.add(&ObjectRecord{Name: name, Kind: "instance", InstanceOf: template.Name}), nil
}

func (h *Host) CreateJoint(name string, parent core.Handle) (core.Handle, error) {
	rec := &ObjectRecord{Name: name, Kind: "joint"}
	if parent != core.NoHandle {
		parentRec, err := h.record(parent)
		if err != nil {
			return core.NoHandle, err
		}
		rec.Parent = parentRec.Name
	}
	return h.add(rec), nil
}

func (h *Host) SetPosition(handle core.Handle, frame int, pos core.Position3D) error {
	rec, err := h.record(handle)
	if err != nil {
		return err
	}
	rec.PositionKeys = append(rec.PositionKeys, PositionKey{Frame: frame, Position: pos})
	return nil
}

func (h *Host) SetOrientation(handle core.Handle, frame int, o core.Orientation) error {
	rec, err := h.record(handle)
	if err != nil {
		return err
	}
	rec.OrientationKeys = append(rec.OrientationKeys, OrientationKey{Frame: frame, Orientation: o})
	return nil
}

func (h *Host) Group(name string, members ...core.Handle) (core.Handle, error) {
	rec := &ObjectRecord{Name: name, Kind: "group"}
	for _, m := range members {
		memberRec, err := h.record(m)
		if err != nil {
			return core.NoHandle, err
		}
		rec.Members = append(rec.Members, memberRec.Name)
		memberRec.Parent = name
	}
	return h.add(rec), nil
}

func (h *Host) Parent(child, parent core.Handle) error {
	childRec, err := h.record(child)
	if err != nil {
		return err
	}
	parentRec, err := h.record(parent)
	if err != nil {
		return err
	}
	childRec.Parent = parentRec.Name
	if parentRec.Kind == "group" {
		parentRec.Members = append(parentRec.Members, childRec.Name)
	}
	return nil
}

func (h *Host) SetPlaybackRange(start, end int, speed float64) error {
	h.playback = &Playback{StartFrame: start, EndFrame: end, Speed: speed}
	return nil
}

// Close exports the recorded scene as JSON, gzip-compressed when configured.
func (h *Host) Close() error {
	export := Export{
		GeneratedAt: time.Now().UTC(),
		Objects:     h.objects,
		Playback:    h.playback,
	}

	path := h.cfg.OutputPath
	if h.cfg.CompressOutput {
		path += ".gz"
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("memory: creating export file: %w", err)
	}
	defer f.Close()

	if h.cfg.CompressOutput {
		gz := gzip.NewWriter(f)
		defer gz.Close()
		enc := json.NewEncoder(gz)
		enc.SetIndent("", "  ")
		if err := enc.Encode(export); err != nil {
			return fmt.Errorf("memory: encoding export: %w", err)
		}
	} else {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		if err := enc.Encode(export); err != nil {
			return fmt.Errorf("memory: encoding export: %w", err)
		}
	}

	h.log.Info("Exported scene JSON", "path", path, "objects", len(h.objects))
	return nil
}
