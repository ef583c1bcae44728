// Package trc reads and writes TRC marker trajectory files.
//
// The format is tab-separated with a fixed six-row prelude: a banner, a
// metadata key row, a metadata value row, a blank row, the marker label row
// (one label per three columns, after Frame# and Time), and a per-axis
// sub-label row. Data rows follow, one per frame.
package trc

import "github.com/MineClever/Maya-Mocap/pkg/core"

// Header holds the TRC metadata row. Read-only after parse.
type Header struct {
	DataRate           float64
	CameraRate         float64
	NumFrames          int
	NumMarkers         int
	Units              string
	OrigDataRate       float64
	OrigDataStartFrame int
	OrigNumFrames      int
}

// FrameTime returns the capture time of a zero-based frame index, derived
// from the data rate. TRC data columns beyond the label triplets are not
// retained after parse.
func (h *Header) FrameTime(frame int) float64 {
	if h.DataRate == 0 {
		return 0
	}
	return float64(frame) / h.DataRate
}

// Table is the parsed marker time series. Every frame holds exactly one
// sample per label, in label order.
type Table struct {
	labels  []string
	columns map[string]int // label -> triplet index
	frames  [][]core.Sample
}

// Labels returns the marker labels in header-row order.
func (t *Table) Labels() []string {
	return t.labels
}

// NumFrames returns the number of parsed data rows.
func (t *Table) NumFrames() int {
	return len(t.frames)
}

// HasLabel reports whether the table contains a marker with the given label.
func (t *Table) HasLabel(label string) bool {
	_, ok := t.columns[label]
	return ok
}

// Sample returns the file-order triplet for a label at a frame.
func (t *Table) Sample(frame int, label string) (core.Sample, bool) {
	col, ok := t.columns[label]
	if !ok || frame < 0 || frame >= len(t.frames) {
		return core.Sample{}, false
	}
	return t.frames[frame][col], true
}

// SampleAt returns the triplet at a frame by marker index, in label order.
func (t *Table) SampleAt(frame, marker int) core.Sample {
	return t.frames[frame][marker]
}

// NewTable builds a table from labels and per-frame samples. It is used by
// the C3D converter and by tests; Read builds tables directly.
func NewTable(labels []string, frames [][]core.Sample) *Table {
	columns := make(map[string]int, len(labels))
	for i, l := range labels {
		columns[l] = i
	}
	return &Table{labels: labels, columns: columns, frames: frames}
}
