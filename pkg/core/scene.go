package core

// Handle identifies an object created by a scene host. Handles are opaque
// to the engines; only the host that issued one can resolve it.
type Handle int

// NoHandle marks the absence of an object, e.g. the parent of a root joint.
const NoHandle Handle = -1

// PrimitiveKind selects the shape used for marker placeholders.
type PrimitiveKind string

// PrimitiveSphere is the only shape the importer creates; all markers after
// the first are instances of it.
const PrimitiveSphere PrimitiveKind = "sphere"

// PrimitiveSpec describes the template object for marker placeholders.
type PrimitiveSpec struct {
	Kind         PrimitiveKind `json:"kind"`
	Radius       float64       `json:"radius"`
	Subdivisions int           `json:"subdivisions"`
}

// DefaultMarkerSpec matches the sphere the Maya tool created for markers.
func DefaultMarkerSpec() PrimitiveSpec {
	return PrimitiveSpec{Kind: PrimitiveSphere, Radius: 0.03, Subdivisions: 20}
}
