// Package importer orchestrates one trajectory import: parse, resolve
// names, then run the selected reconstruction passes against a scene host.
package importer

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/MineClever/Maya-Mocap/internal/engine"
	"github.com/MineClever/Maya-Mocap/internal/naming"
	"github.com/MineClever/Maya-Mocap/internal/scene"
	"github.com/MineClever/Maya-Mocap/internal/skeleton"
	"github.com/MineClever/Maya-Mocap/internal/trc"
	"github.com/MineClever/Maya-Mocap/pkg/core"
)

// Options selects what one import builds.
type Options struct {
	Markers  bool
	Skeleton bool

	MarkerSpec    core.PrimitiveSpec
	PlaybackSpeed float64

	// GroupPrefix names the top-level group; the import counter is
	// appended. Defaults to "TRC".
	GroupPrefix string

	// Root overrides the joint topology; nil selects body_25b.
	Root *skeleton.Node
}

// Importer runs imports against one scene host. Imports are sequential;
// the disambiguation counter is the only collision safeguard between them.
type Importer struct {
	host scene.Host
	log  *slog.Logger
}

// New creates an importer bound to a host.
func New(host scene.Host, logger *slog.Logger) *Importer {
	return &Importer{host: host, log: logger}
}

// Run imports one TRC file. Mutations are issued in pipeline order: label
// resolution, object creation, per-frame placement in increasing frame
// order, orientation after frame 0, grouping, playback range. Any error
// aborts immediately; partial scene state is not cleaned up.
func (imp *Importer) Run(path string, opts Options) error {
	header, table, err := trc.Read(path)
	if err != nil {
		return err
	}

	imp.log.Info("Parsed trajectory file",
		"path", path,
		"markers", len(table.Labels()),
		"frames", table.NumFrames(),
		"dataRate", header.DataRate,
		"units", header.Units)

	existing, err := imp.host.ExistingObjectNames()
	if err != nil {
		return fmt.Errorf("listing workspace names: %w", err)
	}
	counter, labels, err := naming.ResolveSuffix(table.Labels(), existing)
	if err != nil {
		return err
	}
	suffix := strconv.Itoa(counter)

	prefix := opts.GroupPrefix
	if prefix == "" {
		prefix = "TRC"
	}
	batch, err := imp.host.Group(prefix + suffix)
	if err != nil {
		return err
	}

	e := engine.New(imp.host, imp.log)

	if opts.Markers {
		spec := opts.MarkerSpec
		if spec.Kind == "" {
			spec = core.DefaultMarkerSpec()
		}
		handles, err := e.PlaceMarkers(table, labels, spec)
		if err != nil {
			return err
		}
		markerGroup, err := imp.host.Group("markers"+suffix, handles...)
		if err != nil {
			return err
		}
		if err := imp.host.Parent(markerGroup, batch); err != nil {
			return err
		}
	}

	if opts.Skeleton {
		root := opts.Root
		if root == nil {
			root = skeleton.Body25B()
		}
		rootHandle, err := e.BuildSkeleton(table, root, suffix)
		if err != nil {
			return err
		}
		if err := imp.host.Parent(rootHandle, batch); err != nil {
			return err
		}
	}

	speed := opts.PlaybackSpeed
	if speed == 0 {
		speed = 1
	}
	if err := imp.host.SetPlaybackRange(0, table.NumFrames(), speed); err != nil {
		return err
	}

	imp.log.Info("Import complete", "path", path, "batch", prefix+suffix)
	return nil
}
