// Package core holds the value types shared between the trajectory parser,
// the reconstruction engines and the scene hosts.
package core

import "github.com/go-gl/mathgl/mgl64"

// Sample is one marker triplet in file column order (X, Y, Z as written
// by the capture system).
type Sample [3]float64

// Position3D is a scene-space coordinate, after axis remapping.
type Position3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// RemapSample converts a file-order sample (a,b,c) into scene space (c,a,b).
// Capture systems write Z-up data; the target scene is Y-up with a rotated
// ground plane, so scene X takes the file's third column, scene Y the first
// and scene Z the second.
func RemapSample(s Sample) Position3D {
	return Position3D{X: s[2], Y: s[0], Z: s[1]}
}

// AverageSamples returns the componentwise mean of the given samples.
func AverageSamples(samples ...Sample) Sample {
	var out Sample
	if len(samples) == 0 {
		return out
	}
	for _, s := range samples {
		out[0] += s[0]
		out[1] += s[1]
		out[2] += s[2]
	}
	n := float64(len(samples))
	out[0] /= n
	out[1] /= n
	out[2] /= n
	return out
}

// Vec3 converts the position to an mgl64 vector.
func (p Position3D) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{p.X, p.Y, p.Z}
}

// PositionFromVec3 converts an mgl64 vector back to a position.
func PositionFromVec3(v mgl64.Vec3) Position3D {
	return Position3D{X: v.X(), Y: v.Y(), Z: v.Z()}
}
