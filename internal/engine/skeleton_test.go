package engine

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MineClever/Maya-Mocap/internal/skeleton"
	"github.com/MineClever/Maya-Mocap/internal/trc"
	"github.com/MineClever/Maya-Mocap/pkg/core"
)

// hipTree is a minimal topology with a synthesized root, mirroring the
// pelvis of the full tree.
func hipTree() *skeleton.Node {
	root := skeleton.NewNode("CHipJ",
		skeleton.NewNode("RHipJ"),
		skeleton.NewNode("LHipJ"),
	)
	root.Synthesis = &skeleton.Synthesis{Average: []string{"RHip", "LHip"}}
	return root
}

func hipTable() *trc.Table {
	// Three frames, three markers; no direct CHip samples.
	return trc.NewTable(
		[]string{"RHip", "LHip", "Neck"},
		[][]core.Sample{
			{{1, 2, 3}, {3, 4, 5}, {2, 3, 10}},
			{{2, 3, 4}, {4, 5, 6}, {3, 4, 11}},
			{{3, 4, 5}, {5, 6, 7}, {4, 5, 12}},
		},
	)
}

func TestBuildSkeletonJointCreation(t *testing.T) {
	host := newFakeHost()
	e := New(host, slog.Default())

	rootHandle, err := e.BuildSkeleton(hipTable(), hipTree(), "1")
	require.NoError(t, err)
	assert.Equal(t, "CHipJ1", host.nameOf(rootHandle))

	// One joint per topology node, created in pre-order with parenting.
	assert.Equal(t, "joint:CHipJ1 parent=<none>", host.calls[0])
	assert.Equal(t, "joint:RHipJ1 parent=CHipJ1", host.calls[1])
	assert.Equal(t, "joint:LHipJ1 parent=CHipJ1", host.calls[2])
}

func TestBuildSkeletonRootSynthesis(t *testing.T) {
	host := newFakeHost()
	e := New(host, slog.Default())

	_, err := e.BuildSkeleton(hipTable(), hipTree(), "1")
	require.NoError(t, err)

	// Root = hip midpoint, remapped, for every frame.
	table := hipTable()
	for frame := 0; frame < table.NumFrames(); frame++ {
		r, _ := table.Sample(frame, "RHip")
		l, _ := table.Sample(frame, "LHip")
		want := core.RemapSample(core.AverageSamples(r, l))
		assert.Equal(t, want, host.positions["CHipJ1"][frame], "frame %d", frame)
	}

	// Direct joints use their own marker, remapped.
	assert.Equal(t, core.Position3D{X: 3, Y: 1, Z: 2}, host.positions["RHipJ1"][0])
}

func TestBuildSkeletonOrientationPass(t *testing.T) {
	host := newFakeHost()
	e := New(host, slog.Default())

	_, err := e.BuildSkeleton(hipTable(), hipTree(), "1")
	require.NoError(t, err)

	// Exactly one orientation call per non-root joint, all at frame 0.
	var orientCalls []string
	for _, c := range host.calls {
		if strings.HasPrefix(c, "orient:") {
			orientCalls = append(orientCalls, c)
		}
	}
	require.Len(t, orientCalls, 2)
	for _, c := range orientCalls {
		assert.True(t, strings.HasSuffix(c, "@0"), c)
	}

	// Ordering: every frame-0 position precedes the first orientation call,
	// and every frame-1 position follows the last one.
	firstOrient := indexOf(host.calls, "orient:")
	lastFrame0Pos := -1
	firstFrame1Pos := len(host.calls)
	for i, c := range host.calls {
		if strings.HasPrefix(c, "pos:") && strings.HasSuffix(c, "@0") && i > lastFrame0Pos {
			lastFrame0Pos = i
		}
		if strings.HasPrefix(c, "pos:") && strings.HasSuffix(c, "@1") && i < firstFrame1Pos {
			firstFrame1Pos = i
		}
	}
	assert.Greater(t, firstOrient, lastFrame0Pos)
	assert.Less(t, firstOrient, firstFrame1Pos)
}

func indexOf(calls []string, prefix string) int {
	for i, c := range calls {
		if strings.HasPrefix(c, prefix) {
			return i
		}
	}
	return -1
}

func TestBuildSkeletonDirectRoot(t *testing.T) {
	host := newFakeHost()
	e := New(host, slog.Default())

	table := trc.NewTable(
		[]string{"CHip", "RHip", "LHip"},
		[][]core.Sample{
			{{9, 9, 9}, {1, 2, 3}, {3, 4, 5}},
		},
	)

	_, err := e.BuildSkeleton(table, hipTree(), "1")
	require.NoError(t, err)

	// With a direct CHip marker the synthesis rule is not used.
	assert.Equal(t, core.RemapSample(core.Sample{9, 9, 9}), host.positions["CHipJ1"][0])
}

func TestBuildSkeletonMissingMarker(t *testing.T) {
	host := newFakeHost()
	e := New(host, slog.Default())

	table := trc.NewTable(
		[]string{"RHip"},
		[][]core.Sample{{{1, 2, 3}}},
	)

	_, err := e.BuildSkeleton(table, hipTree(), "1")

	var be *skeleton.BindingError
	require.ErrorAs(t, err, &be)
	assert.Empty(t, host.calls, "no joints may be created when binding fails")
}

func TestBuildSkeletonFullBody(t *testing.T) {
	host := newFakeHost()
	e := New(host, slog.Default())

	nodes := skeleton.PreOrder(skeleton.Body25B())
	labels := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if n.Name == "CHipJ" {
			continue
		}
		labels = append(labels, skeleton.MarkerLabel(n.Name))
	}

	frame := make([]core.Sample, len(labels))
	for i := range frame {
		frame[i] = core.Sample{float64(i), float64(i * 2), float64(i * 3)}
	}
	table := trc.NewTable(labels, [][]core.Sample{frame})

	_, err := e.BuildSkeleton(table, skeleton.Body25B(), "2")
	require.NoError(t, err)

	jointCalls := 0
	orientCalls := 0
	for _, c := range host.calls {
		if strings.HasPrefix(c, "joint:") {
			jointCalls++
		}
		if strings.HasPrefix(c, "orient:") {
			orientCalls++
		}
	}
	assert.Equal(t, len(nodes), jointCalls)
	assert.Equal(t, len(nodes)-1, orientCalls)
}
