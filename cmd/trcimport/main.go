// trcimport reconstructs animated skeletons and marker clouds from TRC
// motion-capture files. C3D inputs are converted to TRC first. Output
// goes to the configured scene backend: a Maya script, a JSON archive,
// or a SQLite/Postgres database.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/MineClever/Maya-Mocap/internal/c3d"
	"github.com/MineClever/Maya-Mocap/internal/config"
	"github.com/MineClever/Maya-Mocap/internal/importer"
	"github.com/MineClever/Maya-Mocap/internal/logging"
	"github.com/MineClever/Maya-Mocap/internal/report"
	"github.com/MineClever/Maya-Mocap/internal/scene"
	"github.com/MineClever/Maya-Mocap/internal/trc"
	"github.com/MineClever/Maya-Mocap/pkg/core"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "trcimport:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configDir   = flag.String("config", ".", "directory containing maya_mocap.cfg.json")
		markers     = flag.Bool("markers", false, "build the marker cloud")
		skel        = flag.Bool("skeleton", false, "build the joint skeleton")
		backend     = flag.String("backend", "", "scene backend: script, json, sqlite, postgres (overrides config)")
		out         = flag.String("out", "", "scene output path (overrides config)")
		summary     = flag.Bool("summary", false, "print per-marker trajectory statistics")
		plotPath    = flag.String("plot", "", "write an HTML speed chart to this path")
		convertOnly = flag.Bool("convert-only", false, "convert C3D inputs to TRC and exit")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		return fmt.Errorf("no input files; pass one or more .trc or .c3d paths")
	}

	if err := config.Load(*configDir); err != nil {
		return err
	}

	logManager := logging.NewManager()
	if err := logManager.Setup(config.GetString("logsDir"), config.GetString("logLevel")); err != nil {
		return err
	}
	defer func() { _ = logManager.Close() }()
	log := logManager.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	paths, err := resolveInputs(ctx, flag.Args())
	if err != nil {
		return err
	}
	if *convertOnly {
		log.Info("Conversion complete", "files", len(paths))
		return nil
	}

	// Neither pass selected means both.
	if !*markers && !*skel {
		*markers, *skel = true, true
	}

	sceneCfg := config.GetSceneConfig()
	if *backend != "" {
		sceneCfg.Backend = *backend
	}
	outputPath := *out
	if outputPath == "" {
		outputPath = defaultOutputPath(sceneCfg)
	}

	host, err := scene.NewHost(sceneCfg.Backend, scene.BackendOptions{
		OutputPath:     outputPath,
		CompressOutput: sceneCfg.CompressOutput,
		DSN:            sceneCfg.DSN,
		Source:         strings.Join(paths, ","),
	}, log)
	if err != nil {
		return err
	}

	markerCfg := config.GetMarkerConfig()
	opts := importer.Options{
		Markers:  *markers,
		Skeleton: *skel,
		MarkerSpec: core.PrimitiveSpec{
			Kind:         core.PrimitiveSphere,
			Radius:       markerCfg.Radius,
			Subdivisions: markerCfg.Subdivisions,
		},
		PlaybackSpeed: config.GetFloat("playback.speed"),
	}

	imp := importer.New(host, log)
	for _, path := range paths {
		if err := imp.Run(path, opts); err != nil {
			_ = host.Close()
			return fmt.Errorf("importing %s: %w", path, err)
		}
	}
	if err := host.Close(); err != nil {
		return err
	}

	if *summary || *plotPath != "" {
		if err := emitReports(paths, *summary, *plotPath); err != nil {
			return err
		}
	}
	return nil
}

// resolveInputs converts any C3D inputs and returns TRC paths in the
// original argument order.
func resolveInputs(ctx context.Context, args []string) ([]string, error) {
	var c3dPaths []string
	for _, a := range args {
		if strings.EqualFold(filepath.Ext(a), ".c3d") {
			c3dPaths = append(c3dPaths, a)
		}
	}
	converted, err := c3d.Convert(ctx, c3dPaths)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(args))
	for _, a := range args {
		if strings.EqualFold(filepath.Ext(a), ".c3d") {
			paths = append(paths, converted[0])
			converted = converted[1:]
		} else {
			paths = append(paths, a)
		}
	}
	return paths, nil
}

func defaultOutputPath(cfg config.SceneConfig) string {
	var name string
	switch cfg.Backend {
	case "script":
		name = "maya_import.py"
	case "json":
		name = "scene.json"
	case "sqlite":
		name = "scene.db"
	default:
		return ""
	}
	return filepath.Join(cfg.OutputDir, name)
}

func emitReports(paths []string, printSummary bool, plotPath string) error {
	for _, path := range paths {
		header, table, err := trc.Read(path)
		if err != nil {
			return err
		}

		if printSummary {
			s, err := report.Summarize(header, table)
			if err != nil {
				return err
			}
			printReport(path, s)
		}

		if plotPath != "" {
			target := plotPath
			if len(paths) > 1 {
				ext := filepath.Ext(plotPath)
				base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
				target = strings.TrimSuffix(plotPath, ext) + "_" + base + ext
			}
			f, err := os.Create(target)
			if err != nil {
				return err
			}
			if err := report.RenderPlot(f, header, table); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
		}
	}
	return nil
}

func printReport(path string, s *report.Summary) {
	fmt.Printf("%s: %d frames at %g Hz (%s)\n", path, s.Frames, s.DataRate, s.Units)
	for _, m := range s.Markers {
		fmt.Printf("  %-16s speed %.3f +/- %.3f %s/s  bounds [%.3f %.3f %.3f]..[%.3f %.3f %.3f]",
			m.Label, m.MeanSpeed, m.StdDevSpeed, s.Units,
			m.Min.X, m.Min.Y, m.Min.Z, m.Max.X, m.Max.Y, m.Max.Z)
		if m.InvalidSamples > 0 {
			fmt.Printf("  (%d invalid samples)", m.InvalidSamples)
		}
		fmt.Println()
	}
}
