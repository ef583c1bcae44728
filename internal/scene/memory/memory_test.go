package memory

import (
	"compress/gzip"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MineClever/Maya-Mocap/pkg/core"
)

func buildScene(t *testing.T, h *Host) {
	t.Helper()

	tmpl, err := h.CreatePrimitive(core.DefaultMarkerSpec(), "CHip1")
	require.NoError(t, err)
	inst, err := h.CreateInstance(tmpl, "RHip1")
	require.NoError(t, err)
	require.NoError(t, h.SetPosition(tmpl, 0, core.Position3D{X: 1, Y: 2, Z: 3}))
	require.NoError(t, h.SetPosition(inst, 0, core.Position3D{X: 4, Y: 5, Z: 6}))

	root, err := h.CreateJoint("CHipJ1", core.NoHandle)
	require.NoError(t, err)
	child, err := h.CreateJoint("RHipJ1", root)
	require.NoError(t, err)
	require.NoError(t, h.SetOrientation(root, 0, core.AimOrientation(core.Position3D{}, core.Position3D{X: 1})))
	_ = child

	grp, err := h.Group("TRC1")
	require.NoError(t, err)
	require.NoError(t, h.Parent(root, grp))
	require.NoError(t, h.SetPlaybackRange(0, 10, 1))
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	h := New(Config{OutputPath: path}, slog.Default())
	buildScene(t, h)
	require.NoError(t, h.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var export Export
	require.NoError(t, json.Unmarshal(data, &export))

	require.Len(t, export.Objects, 5)
	assert.Equal(t, "primitive", export.Objects[0].Kind)
	assert.Equal(t, "CHip1", export.Objects[0].Name)
	assert.Equal(t, "CHip1", export.Objects[1].InstanceOf)
	assert.Equal(t, "joint", export.Objects[2].Kind)
	assert.Equal(t, "CHipJ1", export.Objects[3].Parent)

	require.Len(t, export.Objects[1].PositionKeys, 1)
	assert.Equal(t, core.Position3D{X: 4, Y: 5, Z: 6}, export.Objects[1].PositionKeys[0].Position)

	require.Len(t, export.Objects[2].OrientationKeys, 1)
	assert.Equal(t, core.OrientJointXYZ, export.Objects[2].OrientationKeys[0].Orientation.OrientJoint)

	// Parent() into a group records membership.
	assert.Equal(t, "TRC1", export.Objects[2].Parent)
	assert.Contains(t, export.Objects[4].Members, "CHipJ1")

	require.NotNil(t, export.Playback)
	assert.Equal(t, 10, export.Playback.EndFrame)
}

func TestExportCompressed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	h := New(Config{OutputPath: path, CompressOutput: true}, slog.Default())
	buildScene(t, h)
	require.NoError(t, h.Close())

	f, err := os.Open(path + ".gz")
	require.NoError(t, err)
	defer f.Close()

	gz, err := gzip.NewReader(f)
	require.NoError(t, err)

	var export Export
	require.NoError(t, json.NewDecoder(gz).Decode(&export))
	assert.Len(t, export.Objects, 5)
}

func TestExistingObjectNames(t *testing.T) {
	h := New(Config{OutputPath: filepath.Join(t.TempDir(), "s.json")}, slog.Default())
	buildScene(t, h)

	existing, err := h.ExistingObjectNames()
	require.NoError(t, err)
	assert.Contains(t, existing, "CHip1")
	assert.Contains(t, existing, "CHipJ1")
	assert.Contains(t, existing, "TRC1")
}
