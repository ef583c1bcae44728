package trc

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/MineClever/Maya-Mocap/pkg/core"
)

// Fixed prelude layout, 1-based line numbers.
const (
	lineBanner    = 1
	lineMetaKeys  = 2
	lineMetaVals  = 3
	lineBlank     = 4
	lineLabels    = 5
	lineSubLabels = 6
	lineFirstData = 7
)

var requiredMetaKeys = []string{"DataRate", "CameraRate", "NumFrames", "NumMarkers", "Units"}

// Read parses a TRC file into its header and marker table. Frame-index and
// time columns are dropped; callers derive timing from the row position and
// Header.DataRate. Structural problems surface as *FormatError.
func Read(path string) (*Header, *Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening trc file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading trc file: %w", err)
	}
	if len(lines) < lineSubLabels {
		return nil, nil, formatErrorf(path, 0, "file has %d lines, expected at least %d", len(lines), lineSubLabels)
	}

	header, err := parseHeader(path, lines[lineMetaKeys-1], lines[lineMetaVals-1])
	if err != nil {
		return nil, nil, err
	}

	labels, err := parseLabels(path, lines[lineLabels-1], header.NumMarkers)
	if err != nil {
		return nil, nil, err
	}

	wantCols := 2 + 3*header.NumMarkers
	frames := make([][]core.Sample, 0, header.NumFrames)
	for i := lineFirstData - 1; i < len(lines); i++ {
		row := lines[i]
		if strings.TrimSpace(row) == "" {
			continue
		}
		fields := strings.Split(row, "\t")
		// TRC writers commonly leave a trailing tab.
		for len(fields) > wantCols && fields[len(fields)-1] == "" {
			fields = fields[:len(fields)-1]
		}
		if len(fields) != wantCols {
			return nil, nil, formatErrorf(path, i+1, "row has %d columns, expected %d for %d markers", len(fields), wantCols, header.NumMarkers)
		}

		frame := make([]core.Sample, header.NumMarkers)
		for m := 0; m < header.NumMarkers; m++ {
			for axis := 0; axis < 3; axis++ {
				v, err := strconv.ParseFloat(strings.TrimSpace(fields[2+3*m+axis]), 64)
				if err != nil {
					return nil, nil, formatErrorf(path, i+1, "marker %q axis %d: %v", labels[m], axis, err)
				}
				frame[m][axis] = v
			}
		}
		frames = append(frames, frame)
	}

	return header, NewTable(labels, frames), nil
}

func parseHeader(path, keyRow, valRow string) (*Header, error) {
	keys := strings.Split(keyRow, "\t")
	vals := strings.Split(valRow, "\t")

	meta := make(map[string]string, len(keys))
	for i, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" || i >= len(vals) {
			continue
		}
		meta[k] = strings.TrimSpace(vals[i])
	}

	for _, k := range requiredMetaKeys {
		if _, ok := meta[k]; !ok {
			return nil, formatErrorf(path, lineMetaKeys, "missing metadata key %q", k)
		}
	}

	h := &Header{Units: meta["Units"]}
	var err error
	if h.DataRate, err = strconv.ParseFloat(meta["DataRate"], 64); err != nil {
		return nil, formatErrorf(path, lineMetaVals, "DataRate: %v", err)
	}
	if h.CameraRate, err = strconv.ParseFloat(meta["CameraRate"], 64); err != nil {
		return nil, formatErrorf(path, lineMetaVals, "CameraRate: %v", err)
	}
	if h.NumFrames, err = parseIntField(meta["NumFrames"]); err != nil {
		return nil, formatErrorf(path, lineMetaVals, "NumFrames: %v", err)
	}
	if h.NumMarkers, err = parseIntField(meta["NumMarkers"]); err != nil {
		return nil, formatErrorf(path, lineMetaVals, "NumMarkers: %v", err)
	}

	// Optional original-capture fields.
	if v, ok := meta["OrigDataRate"]; ok {
		h.OrigDataRate, _ = strconv.ParseFloat(v, 64)
	}
	if v, ok := meta["OrigDataStartFrame"]; ok {
		h.OrigDataStartFrame, _ = parseIntField(v)
	}
	if v, ok := meta["OrigNumFrames"]; ok {
		h.OrigNumFrames, _ = parseIntField(v)
	}

	return h, nil
}

// parseIntField accepts integer fields that some exporters write as floats
// ("500.0").
func parseIntField(s string) (int, error) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	return int(f), nil
}

func parseLabels(path, labelRow string, numMarkers int) ([]string, error) {
	fields := strings.Split(labelRow, "\t")
	if len(fields) < 2 {
		return nil, formatErrorf(path, lineLabels, "label row has no Frame#/Time columns")
	}

	// One label per three columns, starting after Frame# and Time; the two
	// columns following each label are blank.
	var labels []string
	for i := 2; i < len(fields); i += 3 {
		l := strings.TrimSpace(fields[i])
		if l == "" {
			continue
		}
		labels = append(labels, l)
	}
	if len(labels) != numMarkers {
		return nil, formatErrorf(path, lineLabels, "found %d marker labels, header declares %d", len(labels), numMarkers)
	}
	return labels, nil
}
