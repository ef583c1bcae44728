package gormscene

import (
	"time"

	"gorm.io/datatypes"
)

// ImportSession is one import run; every object created by the run points
// back to it. SessionUID lets external tools reference a run without
// knowing the database.
type ImportSession struct {
	ID         uint   `gorm:"primarykey"`
	SessionUID string `gorm:"index"`
	Source     string
	CreatedAt  time.Time
	StartFrame int
	EndFrame   int
	Speed      float64
}

// SceneObject is a created marker, joint or group.
type SceneObject struct {
	ID         uint   `gorm:"primarykey"`
	SessionID  uint   `gorm:"index"`
	Name       string `gorm:"index"`
	Kind       string // primitive | instance | joint | group
	ParentID   *uint
	InstanceOf *uint
	Primitive  datatypes.JSON // PrimitiveSpec for templates, null otherwise
}

// PositionKey is one position keyframe of an object.
type PositionKey struct {
	ID       uint `gorm:"primarykey"`
	ObjectID uint `gorm:"index"`
	Frame    int
	X        float64
	Y        float64
	Z        float64
}

// OrientationKey is one orientation keyframe of an object. The quaternion
// is stored as JSON alongside the axes convention it was computed under.
type OrientationKey struct {
	ID                  uint `gorm:"primarykey"`
	ObjectID            uint `gorm:"index"`
	Frame               int
	Quat                datatypes.JSON
	OrientJoint         string
	SecondaryAxisOrient string
}
