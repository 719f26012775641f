// Package pad implements the Surface Padder (spec.md §4.2, C2): for
// every atom centre it emits extra points on a Fibonacci sphere of
// radius S so that, once voxelized, the atomic surface forms a closed
// shell. Without this the occlusion test (C3) can leak through
// one-voxel gaps between neighbouring atoms.
package pad

import (
	"math"

	"github.com/broomsday/porate/internal/geom"
)

// goldenAngle is the golden-angle increment (radians) used to place
// points on the Fibonacci lattice with near-uniform angular density.
var goldenAngle = math.Pi * (3 - math.Sqrt(5))

// minSurfacePoints is a floor on K so that even a very small voxel
// size doesn't collapse the shell to a handful of points.
const minSurfacePoints = 20

// AddExtraPoints concatenates, for every atom centre, K extra points
// on a sphere of radius s around it with the original centres, and
// returns the combined point list. K is picked so neighbouring points
// on the sphere are no farther apart than s.
func AddExtraPoints(atoms []geom.Vec3, s float64) []geom.Vec3 {
	k := numSurfacePoints(s, s)
	out := make([]geom.Vec3, 0, len(atoms)*(k+1))
	for _, c := range atoms {
		out = append(out, c)
		out = append(out, fibonacciSphere(c, s, k)...)
	}
	return out
}

// numSurfacePoints returns the point count K such that a hexagonal
// close-packing of K points over a sphere of radius r has a nearest-
// neighbour spacing no larger than targetSpacing. A safety factor
// shrinks the target, since the Fibonacci lattice is only
// approximately uniform and a slightly denser shell is cheap compared
// to the cost of a leaking occlusion test.
func numSurfacePoints(r, targetSpacing float64) int {
	const safetyFactor = 0.8
	d := targetSpacing * safetyFactor
	area := 4 * math.Pi * r * r
	perPoint := (math.Sqrt(3) / 2) * d * d
	n := int(math.Ceil(area / perPoint))
	if n < minSurfacePoints {
		n = minSurfacePoints
	}
	return n
}

// fibonacciSphere returns k points distributed over a sphere of radius
// r centered on c, placed by the Fibonacci lattice with golden-angle
// increments.
func fibonacciSphere(c geom.Vec3, r float64, k int) []geom.Vec3 {
	pts := make([]geom.Vec3, k)
	if k == 1 {
		pts[0] = c.Add(geom.Vec3{0, 0, r})
		return pts
	}
	for i := 0; i < k; i++ {
		y := 1 - (float64(i)/float64(k-1))*2 // 1 down to -1
		radiusAtY := math.Sqrt(math.Max(0, 1-y*y))
		theta := goldenAngle * float64(i)
		x := math.Cos(theta) * radiusAtY
		z := math.Sin(theta) * radiusAtY
		offset := geom.Vec3{x * r, y * r, z * r}
		pts[i] = c.Add(offset)
	}
	return pts
}
