package gormscene

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MineClever/Maya-Mocap/internal/database"
	"github.com/MineClever/Maya-Mocap/pkg/core"
)

func newTestHost(t *testing.T) *Host {
	t.Helper()
	db, err := database.OpenSqlite("")
	require.NoError(t, err)

	h, err := New(db, "walk.trc", slog.Default())
	require.NoError(t, err)
	return h
}

func TestArchiveScene(t *testing.T) {
	h := newTestHost(t)
	assert.NotEmpty(t, h.SessionUID())

	tmpl, err := h.CreatePrimitive(core.DefaultMarkerSpec(), "CHip1")
	require.NoError(t, err)
	inst, err := h.CreateInstance(tmpl, "RHip1")
	require.NoError(t, err)

	require.NoError(t, h.SetPosition(inst, 0, core.Position3D{X: 1, Y: 2, Z: 3}))
	require.NoError(t, h.SetPosition(inst, 1, core.Position3D{X: 1.5, Y: 2.5, Z: 3.5}))

	root, err := h.CreateJoint("CHipJ1", core.NoHandle)
	require.NoError(t, err)
	_, err = h.CreateJoint("RHipJ1", root)
	require.NoError(t, err)
	require.NoError(t, h.SetOrientation(root, 0, core.AimOrientation(core.Position3D{}, core.Position3D{X: 1})))

	grp, err := h.Group("TRC1", tmpl, inst)
	require.NoError(t, err)
	require.NoError(t, h.Parent(root, grp))
	require.NoError(t, h.SetPlaybackRange(0, 2, 1))
	require.NoError(t, h.Close())

	var objects []SceneObject
	require.NoError(t, h.db.Order("id").Find(&objects).Error)
	require.Len(t, objects, 5)
	assert.Equal(t, "primitive", objects[0].Kind)
	require.NotNil(t, objects[1].InstanceOf)
	assert.Equal(t, objects[0].ID, *objects[1].InstanceOf)
	require.NotNil(t, objects[3].ParentID)
	assert.Equal(t, objects[2].ID, *objects[3].ParentID)

	// Group membership and reparenting both land in parent_id.
	var rootObj SceneObject
	require.NoError(t, h.db.Where("name = ?", "CHipJ1").First(&rootObj).Error)
	require.NotNil(t, rootObj.ParentID)
	assert.Equal(t, objects[4].ID, *rootObj.ParentID)

	var keyCount int64
	require.NoError(t, h.db.Model(&PositionKey{}).Count(&keyCount).Error)
	assert.Equal(t, int64(2), keyCount)

	var orientCount int64
	require.NoError(t, h.db.Model(&OrientationKey{}).Count(&orientCount).Error)
	assert.Equal(t, int64(1), orientCount)

	var session ImportSession
	require.NoError(t, h.db.First(&session).Error)
	assert.Equal(t, "walk.trc", session.Source)
	assert.Equal(t, 2, session.EndFrame)
}

func TestExistingObjectNamesAcrossSessions(t *testing.T) {
	h := newTestHost(t)
	_, err := h.CreatePrimitive(core.DefaultMarkerSpec(), "CHip1")
	require.NoError(t, err)
	require.NoError(t, h.Close())

	// Second session on the same database sees the first session's names.
	h2, err := New(h.db, "run2.trc", slog.Default())
	require.NoError(t, err)

	existing, err := h2.ExistingObjectNames()
	require.NoError(t, err)
	assert.Contains(t, existing, "CHip1")
}

func TestUnknownHandle(t *testing.T) {
	h := newTestHost(t)
	require.Error(t, h.SetPosition(core.Handle(7), 0, core.Position3D{}))
	_, err := h.CreateInstance(core.Handle(7), "X1")
	require.Error(t, err)
}
