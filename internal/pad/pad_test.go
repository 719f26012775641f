package pad

import (
	"math"
	"testing"

	"github.com/broomsday/porate/internal/geom"
)

func TestAddExtraPoints_IncludesOriginalCentres(t *testing.T) {
	atoms := []geom.Vec3{{0, 0, 0}, {5, 0, 0}}
	out := AddExtraPoints(atoms, 1.0)
	if len(out) <= len(atoms) {
		t.Fatalf("expected extra points to be added, got %d points for %d atoms", len(out), len(atoms))
	}
	for _, a := range atoms {
		found := false
		for _, p := range out {
			if p == a {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("original centre %v missing from padded output", a)
		}
	}
}

// TestFibonacciSphere_NeighborSpacingWithinVoxel checks the closed-shell
// invariant from spec.md §4.2 with slack: for a handful of S values, no
// point's nearest neighbour on the sphere is farther than 1.6*S.
func TestFibonacciSphere_NeighborSpacingWithinVoxel(t *testing.T) {
	for _, s := range []float64{0.5, 1.0, 2.0} {
		k := numSurfacePoints(s, s)
		pts := fibonacciSphere(geom.Vec3{0, 0, 0}, s, k)
		maxNearest := 0.0
		for i, p := range pts {
			nearest := math.MaxFloat64
			for j, q := range pts {
				if i == j {
					continue
				}
				d := p.Sub(q).Len()
				if d < nearest {
					nearest = d
				}
			}
			if nearest > maxNearest {
				maxNearest = nearest
			}
		}
		// Allow slack: the Fibonacci lattice isn't perfectly uniform and
		// the poles in particular have a slightly larger gap.
		if maxNearest > s*1.6 {
			t.Errorf("S=%v: max nearest-neighbor spacing %.3f exceeds slack bound %.3f (k=%d)", s, maxNearest, s*1.6, k)
		}
	}
}

func TestAddExtraPoints_SingleAtomPointsWithinOneVoxelEdge(t *testing.T) {
	// A lone atom at S=1: every padded point, and the centre itself,
	// lies within one voxel edge of the atom centre.
	atoms := []geom.Vec3{{10, 10, 10}}
	out := AddExtraPoints(atoms, 1.0)
	for _, p := range out {
		if p.Sub(atoms[0]).Len() > 1.01 {
			t.Errorf("padded point %v farther than one voxel edge from atom centre", p)
		}
	}
}
