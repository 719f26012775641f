// Package geom holds the small vector types shared by every stage of
// the analysis pipeline. Coordinates are double precision: the teacher
// renders in float32 (mgl32) because GPU buffers want it, but Ångström-
// scale protein geometry accumulated across a voxel grid needs the
// extra precision, so porate uses mgl64 throughout instead.
package geom

import "github.com/go-gl/mathgl/mgl64"

// Vec3 is a point or vector in Ångströms.
type Vec3 = mgl64.Vec3

// PointCloud is the core's sole geometric input: a bag of atom centres.
// Never mutated after construction.
type PointCloud struct {
	Points []Vec3
}

// Len returns the number of points in the cloud.
func (pc PointCloud) Len() int { return len(pc.Points) }
