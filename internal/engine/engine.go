// Package engine drives the two reconstruction passes: marker placement
// and skeleton reconstruction. Both walk the same parsed trajectory table
// and issue ordered scene mutations through a host; all position and
// orientation values are computed by pure functions so the passes can be
// tested against an instrumented fake host.
package engine

import (
	"log/slog"

	"github.com/MineClever/Maya-Mocap/internal/scene"
)

// Engine runs reconstruction passes against one scene host.
type Engine struct {
	host scene.Host
	log  *slog.Logger
}

// New creates an engine bound to a host.
func New(host scene.Host, logger *slog.Logger) *Engine {
	return &Engine{host: host, log: logger}
}
