package c3d

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/MineClever/Maya-Mocap/internal/trc"
	"github.com/MineClever/Maya-Mocap/internal/util"
)

// Convert translates each C3D file into a TRC file next to it, with the
// extension replaced. Files convert concurrently; the first failure
// cancels the batch. Returns the output paths in input order.
func Convert(ctx context.Context, paths []string) ([]string, error) {
	outputs := make([]string, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := convertOne(path)
			if err != nil {
				return fmt.Errorf("converting %s: %w", path, err)
			}
			outputs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}

func convertOne(path string) (string, error) {
	header, table, err := ReadFile(path)
	if err != nil {
		return "", err
	}
	out := util.ReplaceExt(path, ".trc")
	if err := trc.Write(out, header, table); err != nil {
		return "", err
	}
	return out, nil
}
