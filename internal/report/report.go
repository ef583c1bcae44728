// Package report computes per-marker trajectory statistics and renders
// them as a speed chart. Used by the CLI's summary output.
package report

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/MineClever/Maya-Mocap/internal/trc"
	"github.com/MineClever/Maya-Mocap/pkg/core"
)

// MarkerStats aggregates one marker's trajectory.
type MarkerStats struct {
	Label string

	// Speed in scene units per second, from consecutive frame deltas.
	MeanSpeed   float64
	StdDevSpeed float64

	// Axis-aligned bounds in scene coordinates.
	Min core.Position3D
	Max core.Position3D

	// Samples containing a NaN or Inf component.
	InvalidSamples int
}

// Summary describes a whole capture.
type Summary struct {
	Frames   int
	DataRate float64
	Units    string
	Markers  []MarkerStats
}

// Summarize computes per-marker statistics over the full frame range.
// Marker order follows the label row.
func Summarize(header *trc.Header, table *trc.Table) (*Summary, error) {
	if table.NumFrames() == 0 {
		return nil, fmt.Errorf("report: capture has no frames")
	}

	summary := &Summary{
		Frames:   table.NumFrames(),
		DataRate: header.DataRate,
		Units:    header.Units,
	}

	for i, label := range table.Labels() {
		speeds := markerSpeeds(table, i, header.DataRate)

		ms := MarkerStats{Label: label}
		ms.MeanSpeed, ms.StdDevSpeed = stat.MeanStdDev(speeds, nil)
		if len(speeds) < 2 {
			ms.StdDevSpeed = 0
		}
		if math.IsNaN(ms.MeanSpeed) {
			ms.MeanSpeed = 0
		}

		ms.Min = core.Position3D{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
		ms.Max = core.Position3D{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
		for f := 0; f < table.NumFrames(); f++ {
			s := table.SampleAt(f, i)
			if !validSample(s) {
				ms.InvalidSamples++
				continue
			}
			p := core.RemapSample(s)
			ms.Min.X = math.Min(ms.Min.X, p.X)
			ms.Min.Y = math.Min(ms.Min.Y, p.Y)
			ms.Min.Z = math.Min(ms.Min.Z, p.Z)
			ms.Max.X = math.Max(ms.Max.X, p.X)
			ms.Max.Y = math.Max(ms.Max.Y, p.Y)
			ms.Max.Z = math.Max(ms.Max.Z, p.Z)
		}
		if ms.InvalidSamples == table.NumFrames() {
			ms.Min, ms.Max = core.Position3D{}, core.Position3D{}
		}

		summary.Markers = append(summary.Markers, ms)
	}
	return summary, nil
}

// markerSpeeds returns per-transition speeds for one marker column.
// Transitions touching an invalid sample are skipped.
func markerSpeeds(table *trc.Table, marker int, dataRate float64) []float64 {
	if dataRate <= 0 {
		dataRate = 1
	}
	speeds := make([]float64, 0, table.NumFrames())
	for f := 1; f < table.NumFrames(); f++ {
		prev, cur := table.SampleAt(f-1, marker), table.SampleAt(f, marker)
		if !validSample(prev) || !validSample(cur) {
			continue
		}
		var sq float64
		for axis := 0; axis < 3; axis++ {
			d := cur[axis] - prev[axis]
			sq += d * d
		}
		speeds = append(speeds, math.Sqrt(sq)*dataRate)
	}
	return speeds
}

func validSample(s core.Sample) bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
