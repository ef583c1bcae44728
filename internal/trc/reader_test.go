package trc

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MineClever/Maya-Mocap/pkg/core"
)

func writeTestFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.trc")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func validContent() string {
	return strings.Join([]string{
		"PathFileType\t4\t(X/Y/Z)\ttest.trc",
		"DataRate\tCameraRate\tNumFrames\tNumMarkers\tUnits\tOrigDataRate\tOrigDataStartFrame\tOrigNumFrames",
		"100\t100\t2\t3\tm\t100\t1\t2",
		"",
		"Frame#\tTime\tCHip\t\t\tRHip\t\t\tLHip\t\t",
		"\t\tX1\tY1\tZ1\tX2\tY2\tZ2\tX3\tY3\tZ3",
		"1\t0\t1\t2\t3\t4\t5\t6\t7\t8\t9",
		"2\t0.01\t1.1\t2.1\t3.1\t4.1\t5.1\t6.1\t7.1\t8.1\t9.1",
	}, "\n") + "\n"
}

func TestReadValid(t *testing.T) {
	header, table, err := Read(writeTestFile(t, validContent()))
	require.NoError(t, err)

	assert.Equal(t, 100.0, header.DataRate)
	assert.Equal(t, 100.0, header.CameraRate)
	assert.Equal(t, 2, header.NumFrames)
	assert.Equal(t, 3, header.NumMarkers)
	assert.Equal(t, "m", header.Units)
	assert.Equal(t, 1, header.OrigDataStartFrame)

	assert.Equal(t, []string{"CHip", "RHip", "LHip"}, table.Labels())
	assert.Equal(t, 2, table.NumFrames())

	s, ok := table.Sample(0, "RHip")
	require.True(t, ok)
	assert.Equal(t, core.Sample{4, 5, 6}, s)

	s, ok = table.Sample(1, "LHip")
	require.True(t, ok)
	assert.Equal(t, core.Sample{7.1, 8.1, 9.1}, s)

	_, ok = table.Sample(0, "Neck")
	assert.False(t, ok)
	_, ok = table.Sample(5, "CHip")
	assert.False(t, ok)
}

func TestReadLabelOrderMatchesHeaderRow(t *testing.T) {
	_, table, err := Read(writeTestFile(t, validContent()))
	require.NoError(t, err)

	for i, label := range table.Labels() {
		byIndex := table.SampleAt(0, i)
		byLabel, ok := table.Sample(0, label)
		require.True(t, ok)
		assert.Equal(t, byLabel, byIndex)
	}
}

func TestReadMissingHeaderKey(t *testing.T) {
	content := strings.Replace(validContent(), "NumMarkers", "MarkerCount", 1)
	_, _, err := Read(writeTestFile(t, content))

	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe.Reason, "NumMarkers")
}

func TestReadColumnCountMismatch(t *testing.T) {
	// Declare 4 markers but provide columns for 3.
	content := strings.Replace(validContent(), "100\t100\t2\t3\tm", "100\t100\t2\t4\tm", 1)
	_, _, err := Read(writeTestFile(t, content))

	var fe *FormatError
	require.ErrorAs(t, err, &fe)
}

func TestReadShortDataRow(t *testing.T) {
	content := validContent() + "3\t0.02\t1\t2\t3\n"
	_, _, err := Read(writeTestFile(t, content))

	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 9, fe.Line)
}

func TestReadBadSampleValue(t *testing.T) {
	content := strings.Replace(validContent(), "\t4\t5\t6", "\tfour\t5\t6", 1)
	_, _, err := Read(writeTestFile(t, content))

	var fe *FormatError
	require.ErrorAs(t, err, &fe)
}

func TestReadTruncatedFile(t *testing.T) {
	_, _, err := Read(writeTestFile(t, "PathFileType\t4\n"))

	var fe *FormatError
	require.ErrorAs(t, err, &fe)
}

func TestReadMissingFile(t *testing.T) {
	_, _, err := Read(filepath.Join(t.TempDir(), "absent.trc"))
	require.Error(t, err)

	var fe *FormatError
	assert.False(t, errors.As(err, &fe))
}

func TestReadFloatIntegerFields(t *testing.T) {
	content := strings.Replace(validContent(), "100\t100\t2\t3\tm", "100\t100\t2.00\t3.00\tm", 1)
	header, _, err := Read(writeTestFile(t, content))
	require.NoError(t, err)
	assert.Equal(t, 2, header.NumFrames)
	assert.Equal(t, 3, header.NumMarkers)
}

func TestWriteRoundTrip(t *testing.T) {
	header := &Header{DataRate: 50, CameraRate: 50, NumFrames: 2, NumMarkers: 2, Units: "mm"}
	table := NewTable(
		[]string{"RHip", "LHip"},
		[][]core.Sample{
			{{1, 2, 3}, {4, 5, 6}},
			{{1.5, 2.5, 3.5}, {4.5, 5.5, 6.5}},
		},
	)

	path := filepath.Join(t.TempDir(), "out.trc")
	require.NoError(t, Write(path, header, table))

	gotHeader, gotTable, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, 50.0, gotHeader.DataRate)
	assert.Equal(t, 2, gotHeader.NumMarkers)
	assert.Equal(t, table.Labels(), gotTable.Labels())
	assert.Equal(t, 2, gotTable.NumFrames())

	s, ok := gotTable.Sample(1, "LHip")
	require.True(t, ok)
	assert.Equal(t, core.Sample{4.5, 5.5, 6.5}, s)
}

func TestFrameTime(t *testing.T) {
	h := &Header{DataRate: 100}
	assert.Equal(t, 0.0, h.FrameTime(0))
	assert.Equal(t, 0.05, h.FrameTime(5))

	var zero Header
	assert.Equal(t, 0.0, zero.FrameTime(10))
}
