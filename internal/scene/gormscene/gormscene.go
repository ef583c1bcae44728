// Package gormscene implements a scene host that archives import sessions,
// objects and keyframes into a relational database via GORM. SQLite and
// Postgres are both supported; the backend is driver-agnostic.
package gormscene

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MineClever/Maya-Mocap/pkg/core"
)

// Host writes the scene into a database. Keyframes are buffered and
// inserted in batches on Close; object rows are written immediately so
// their IDs can parent later objects.
type Host struct {
	db      *gorm.DB
	log     *slog.Logger
	session ImportSession

	objectIDs       []uint // handle -> SceneObject.ID
	positionKeys    []PositionKey
	orientationKeys []OrientationKey
}

// New creates a gorm host for one import session and migrates the schema.
func New(db *gorm.DB, source string, logger *slog.Logger) (*Host, error) {
	if err := db.AutoMigrate(&ImportSession{}, &SceneObject{}, &PositionKey{}, &OrientationKey{}); err != nil {
		return nil, fmt.Errorf("gormscene: migrating schema: %w", err)
	}

	h := &Host{
		db:  db,
		log: logger,
		session: ImportSession{
			SessionUID: uuid.NewString(),
			Source:     source,
			CreatedAt:  time.Now(),
		},
	}
	if err := db.Create(&h.session).Error; err != nil {
		return nil, fmt.Errorf("gormscene: creating session: %w", err)
	}
	return h, nil
}

// SessionUID returns the unique identifier of this import session.
func (h *Host) SessionUID() string {
	return h.session.SessionUID
}

func (h *Host) objectID(handle core.Handle) (uint, error) {
	if handle < 0 || int(handle) >= len(h.objectIDs) {
		return 0, fmt.Errorf("gormscene: unknown handle %d", handle)
	}
	return h.objectIDs[handle], nil
}

func (h *Host) createObject(obj *SceneObject) (core.Handle, error) {
	obj.SessionID = h.session.ID
	if err := h.db.Create(obj).Error; err != nil {
		return core.NoHandle, fmt.Errorf("gormscene: creating object %q: %w", obj.Name, err)
	}
	h.objectIDs = append(h.objectIDs, obj.ID)
	return core.Handle(len(h.objectIDs) - 1), nil
}

// ExistingObjectNames returns object names across all sessions in the
// database, so sequential imports into the same archive stay
// collision-free.
func (h *Host) ExistingObjectNames() (map[string]struct{}, error) {
	var names []string
	if err := h.db.Model(&SceneObject{}).Distinct("name").Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("gormscene: listing object names: %w", err)
	}
	existing := make(map[string]struct{}, len(names))
	for _, n := range names {
		existing[n] = struct{}{}
	}
	return existing, nil
}

func (h *Host) CreatePrimitive(spec core.PrimitiveSpec, name string) (core.Handle, error) {
	specJSON, err := json.Marshal(spec)
	if err != nil {
		return core.NoHandle, fmt.Errorf("gormscene: marshalling primitive spec: %w", err)
	}
	return h.createObject(&SceneObject{Name: name, Kind: "primitive", Primitive: specJSON})
}

func (h *Host) CreateInstance(of core.Handle, name string) (core.Handle, error) {
	templateID, err := h.objectID(of)
	if err != nil {
		return core.NoHandle, err
	}
	return h.createObject(&SceneObject{Name: name, Kind: "instance", InstanceOf: &templateID})
}

func (h *Host) CreateJoint(name string, parent core.Handle) (core.Handle, error) {
	obj := SceneObject{Name: name, Kind: "joint"}
	if parent != core.NoHandle {
		parentID, err := h.objectID(parent)
		if err != nil {
			return core.NoHandle, err
		}
		obj.ParentID = &parentID
	}
	return h.createObject(&obj)
}

func (h *Host) SetPosition(handle core.Handle, frame int, pos core.Position3D) error {
	id, err := h.objectID(handle)
	if err != nil {
		return err
	}
	h.positionKeys = append(h.positionKeys, PositionKey{
		ObjectID: id, Frame: frame, X: pos.X, Y: pos.Y, Z: pos.Z,
	})
	return nil
}

func (h *Host) SetOrientation(handle core.Handle, frame int, o core.Orientation) error {
	id, err := h.objectID(handle)
	if err != nil {
		return err
	}
	quatJSON, err := json.Marshal(o.Quat)
	if err != nil {
		return fmt.Errorf("gormscene: marshalling quaternion: %w", err)
	}
	h.orientationKeys = append(h.orientationKeys, OrientationKey{
		ObjectID:            id,
		Frame:               frame,
		Quat:                quatJSON,
		OrientJoint:         o.OrientJoint,
		SecondaryAxisOrient: o.SecondaryAxisOrient,
	})
	return nil
}

func (h *Host) Group(name string, members ...core.Handle) (core.Handle, error) {
	handle, err := h.createObject(&SceneObject{Name: name, Kind: "group"})
	if err != nil {
		return core.NoHandle, err
	}
	for _, m := range members {
		if err := h.Parent(m, handle); err != nil {
			return core.NoHandle, err
		}
	}
	return handle, nil
}

func (h *Host) Parent(child, parent core.Handle) error {
	childID, err := h.objectID(child)
	if err != nil {
		return err
	}
	parentID, err := h.objectID(parent)
	if err != nil {
		return err
	}
	err = h.db.Model(&SceneObject{}).Where("id = ?", childID).Update("parent_id", parentID).Error
	if err != nil {
		return fmt.Errorf("gormscene: reparenting object %d: %w", childID, err)
	}
	return nil
}

func (h *Host) SetPlaybackRange(start, end int, speed float64) error {
	h.session.StartFrame = start
	h.session.EndFrame = end
	h.session.Speed = speed
	return nil
}

// Close flushes the buffered keyframes in batches and finalizes the
// session row.
func (h *Host) Close() error {
	if len(h.positionKeys) > 0 {
		if err := h.db.CreateInBatches(h.positionKeys, 1000).Error; err != nil {
			return fmt.Errorf("gormscene: inserting position keys: %w", err)
		}
	}
	if len(h.orientationKeys) > 0 {
		if err := h.db.CreateInBatches(h.orientationKeys, 1000).Error; err != nil {
			return fmt.Errorf("gormscene: inserting orientation keys: %w", err)
		}
	}
	if err := h.db.Save(&h.session).Error; err != nil {
		return fmt.Errorf("gormscene: finalizing session: %w", err)
	}

	h.log.Info("Archived scene",
		"session", h.session.SessionUID,
		"objects", len(h.objectIDs),
		"positionKeys", len(h.positionKeys),
		"orientationKeys", len(h.orientationKeys))
	return nil
}
