// Package c3d converts C3D capture files into TRC trajectory files. Only
// the 3D point section is read; analog and force-plate channels are
// skipped.
package c3d

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/MineClever/Maya-Mocap/internal/trc"
	"github.com/MineClever/Maya-Mocap/pkg/core"
)

const blockSize = 512

// Processor type stored in the parameter section; 84 is Intel byte order,
// the only one supported here (DEC and SGI orders predate every pipeline
// feeding this tool).
const processorIntel = 84

type header struct {
	paramBlock  int
	numPoints   int
	analogPerFrame int
	firstFrame  int
	lastFrame   int
	scale       float64 // negative: samples stored as float32
	dataBlock   int
	frameRate   float64
}

// ReadFile parses a C3D file into an equivalent TRC header and table.
func ReadFile(path string) (*trc.Header, *trc.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading c3d file: %w", err)
	}
	if len(data) < blockSize {
		return nil, nil, fmt.Errorf("c3d: %s: file shorter than one block", path)
	}
	if data[1] != 0x50 {
		return nil, nil, fmt.Errorf("c3d: %s: missing magic byte (got 0x%02x)", path, data[1])
	}

	h := parseHeader(data)

	labels, units, err := parseParameters(data, h)
	if err != nil {
		return nil, nil, fmt.Errorf("c3d: %s: %w", path, err)
	}

	frames, err := parseFrames(data, h)
	if err != nil {
		return nil, nil, fmt.Errorf("c3d: %s: %w", path, err)
	}

	numFrames := len(frames)
	trcHeader := &trc.Header{
		DataRate:           h.frameRate,
		CameraRate:         h.frameRate,
		NumFrames:          numFrames,
		NumMarkers:         h.numPoints,
		Units:              units,
		OrigDataRate:       h.frameRate,
		OrigDataStartFrame: h.firstFrame,
		OrigNumFrames:      numFrames,
	}
	return trcHeader, trc.NewTable(labels, frames), nil
}

func word(data []byte, n int) uint16 {
	return binary.LittleEndian.Uint16(data[2*(n-1):])
}

func float(data []byte, n int) float64 {
	bits := binary.LittleEndian.Uint32(data[2*(n-1):])
	return float64(math.Float32frombits(bits))
}

func parseHeader(data []byte) header {
	return header{
		paramBlock:     int(data[0]),
		numPoints:      int(word(data, 2)),
		analogPerFrame: int(word(data, 3)),
		firstFrame:     int(word(data, 4)),
		lastFrame:      int(word(data, 5)),
		scale:          float(data, 7),
		dataBlock:      int(word(data, 9)),
		frameRate:      float(data, 11),
	}
}

// parseParameters scans the parameter section for POINT:LABELS and
// POINT:UNITS. Files without labels get generated Marker names; units
// default to millimetres.
func parseParameters(data []byte, h header) ([]string, string, error) {
	start := (h.paramBlock - 1) * blockSize
	if start < 0 || start+4 > len(data) {
		return nil, "", fmt.Errorf("parameter block %d out of range", h.paramBlock)
	}
	if proc := int(data[start+3]); proc != processorIntel {
		return nil, "", fmt.Errorf("unsupported processor type %d", proc)
	}

	var (
		pointGroupID int
		labels       []string
		units        = "mm"
	)
	type pendingParam struct {
		name    string
		groupID int
		body    []byte
	}
	var params []pendingParam

	pos := start + 4
	for pos+2 <= len(data) {
		nameLen := int(int8(data[pos]))
		groupID := int(int8(data[pos+1]))
		if nameLen == 0 {
			break
		}
		if nameLen < 0 {
			nameLen = -nameLen // locked entry
		}
		pos += 2
		if pos+nameLen+2 > len(data) {
			break
		}
		name := string(data[pos : pos+nameLen])
		pos += nameLen

		offset := int(int16(binary.LittleEndian.Uint16(data[pos:])))
		next := pos + offset
		pos += 2

		if groupID < 0 {
			if strings.EqualFold(name, "POINT") {
				pointGroupID = -groupID
			}
		} else {
			params = append(params, pendingParam{name: name, groupID: groupID, body: data[pos:min(next, len(data))]})
		}

		if offset <= 0 {
			break
		}
		pos = next
	}

	for _, p := range params {
		if p.groupID != pointGroupID || pointGroupID == 0 {
			continue
		}
		switch {
		case strings.EqualFold(p.name, "LABELS"):
			labels = parseCharArray(p.body)
		case strings.EqualFold(p.name, "UNITS"):
			if vals := parseCharArray(p.body); len(vals) == 1 && vals[0] != "" {
				units = vals[0]
			}
		}
	}

	if len(labels) < h.numPoints {
		for i := len(labels); i < h.numPoints; i++ {
			labels = append(labels, fmt.Sprintf("Marker%d", i+1))
		}
	}
	labels = labels[:h.numPoints]
	return labels, units, nil
}

// parseCharArray decodes a char parameter body: type byte (-1), dimension
// count, dimensions, then the packed strings. A 1-D array is a single
// string; a 2-D array is dims[1] strings of dims[0] chars each.
func parseCharArray(body []byte) []string {
	if len(body) < 2 || int8(body[0]) != -1 {
		return nil
	}
	nDims := int(body[1])
	if len(body) < 2+nDims {
		return nil
	}
	dims := make([]int, nDims)
	for i := 0; i < nDims; i++ {
		dims[i] = int(body[2+i])
	}
	payload := body[2+nDims:]

	switch nDims {
	case 1:
		if len(payload) < dims[0] {
			return nil
		}
		return []string{strings.TrimRight(string(payload[:dims[0]]), " ")}
	case 2:
		width, count := dims[0], dims[1]
		if len(payload) < width*count {
			return nil
		}
		out := make([]string, 0, count)
		for i := 0; i < count; i++ {
			out = append(out, strings.TrimRight(string(payload[i*width:(i+1)*width]), " "))
		}
		return out
	default:
		return nil
	}
}

func parseFrames(data []byte, h header) ([][]core.Sample, error) {
	if h.numPoints <= 0 {
		return nil, fmt.Errorf("header declares %d points", h.numPoints)
	}
	numFrames := h.lastFrame - h.firstFrame + 1
	if numFrames <= 0 {
		return nil, fmt.Errorf("header frame range %d..%d is empty", h.firstFrame, h.lastFrame)
	}

	floatData := h.scale < 0
	valueSize := 2
	if floatData {
		valueSize = 4
	}
	// Each point is x, y, z plus a residual word; analog samples follow.
	frameSize := (h.numPoints*4 + h.analogPerFrame) * valueSize

	pos := (h.dataBlock - 1) * blockSize
	if pos < 0 || pos+numFrames*frameSize > len(data) {
		return nil, fmt.Errorf("data section truncated: need %d bytes at offset %d, have %d",
			numFrames*frameSize, pos, len(data))
	}

	scale := math.Abs(h.scale)
	frames := make([][]core.Sample, numFrames)
	for f := 0; f < numFrames; f++ {
		frame := make([]core.Sample, h.numPoints)
		base := pos + f*frameSize
		for p := 0; p < h.numPoints; p++ {
			at := base + p*4*valueSize
			for axis := 0; axis < 3; axis++ {
				if floatData {
					bits := binary.LittleEndian.Uint32(data[at+axis*4:])
					frame[p][axis] = float64(math.Float32frombits(bits))
				} else {
					raw := int16(binary.LittleEndian.Uint16(data[at+axis*2:]))
					frame[p][axis] = float64(raw) * scale
				}
			}
		}
		frames[f] = frame
	}
	return frames, nil
}
