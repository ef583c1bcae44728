package scene

import (
	"fmt"
	"log/slog"

	"github.com/MineClever/Maya-Mocap/internal/database"
	"github.com/MineClever/Maya-Mocap/internal/scene/gormscene"
	"github.com/MineClever/Maya-Mocap/internal/scene/memory"
	"github.com/MineClever/Maya-Mocap/internal/scene/script"
)

// BackendOptions carries the backend-specific settings from configuration.
type BackendOptions struct {
	OutputPath     string // script path, JSON path, or SQLite file
	CompressOutput bool   // JSON backend only
	DSN            string // Postgres backend only
	Source         string // input file recorded on archive sessions
}

// NewHost creates a scene host for the configured backend kind.
func NewHost(kind string, opts BackendOptions, logger *slog.Logger) (Host, error) {
	switch kind {
	case "script":
		path := opts.OutputPath
		if path == "" {
			path = "maya_import.py"
		}
		return script.New(path, logger), nil
	case "json":
		path := opts.OutputPath
		if path == "" {
			path = "scene.json"
		}
		return memory.New(memory.Config{OutputPath: path, CompressOutput: opts.CompressOutput}, logger), nil
	case "sqlite":
		db, err := database.OpenSqlite(opts.OutputPath)
		if err != nil {
			return nil, err
		}
		return gormscene.New(db, opts.Source, logger)
	case "postgres":
		db, err := database.OpenPostgres(opts.DSN)
		if err != nil {
			return nil, err
		}
		return gormscene.New(db, opts.Source, logger)
	default:
		return nil, fmt.Errorf("scene: unknown backend %q", kind)
	}
}
