package discriminator

import (
	"testing"

	"github.com/broomsday/porate/internal/geom"
	"github.com/broomsday/porate/internal/grid"
	"github.com/broomsday/porate/internal/occlusion"
)

// classifyPoints voxelizes pts at edge s and runs the full C3->C5 chain.
func classifyPoints(t *testing.T, pts []geom.Vec3, s float64) []Group {
	t.Helper()
	g, err := grid.New(pts, s, 0)
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}
	p := occlusion.Build(g)
	buried, exposed := occlusion.Classify(g, p)
	return Classify(g, buried, exposed)
}

// cubeShell returns protein points on the surface of a (2r+1)^3 cube
// centered at the origin.
func cubeShell(r int) []geom.Vec3 {
	var pts []geom.Vec3
	for x := -r; x <= r; x++ {
		for y := -r; y <= r; y++ {
			for z := -r; z <= r; z++ {
				if x == -r || x == r || y == -r || y == r || z == -r || z == r {
					pts = append(pts, geom.Vec3{float64(x), float64(y), float64(z)})
				}
			}
		}
	}
	return pts
}

// TestClassify_HollowCubeIsOneCavity checks spec.md §8 scenario 1: a 3^3
// shell with its centre empty yields exactly one cavity.
func TestClassify_HollowCubeIsOneCavity(t *testing.T) {
	groups := classifyPoints(t, cubeShell(1), 1.0)
	if len(groups) != 1 {
		t.Fatalf("want 1 buried component, got %d", len(groups))
	}
	if groups[0].Kind != Cavity {
		t.Errorf("want Cavity, got %v", groups[0].Kind)
	}
	if len(groups[0].Voxels) != 1 {
		t.Errorf("want 1 voxel (the centre), got %d", len(groups[0].Voxels))
	}
}

// solidCubeWithAxialTunnel returns a SOLID (2r+1)^3 cube of protein
// points centred at the origin with a 1x1 bore drilled all the way
// through along z at x=0,y=0, plus two single-point markers well
// beyond the cube along the main diagonal. The markers exist only to
// pull the grid's bounding box out past the cube's faces, without
// sharing a column with anything inside it, so the tunnel's two mouths
// have genuinely exposed voxels just outside the cube to open onto.
func solidCubeWithAxialTunnel(r int) []geom.Vec3 {
	var pts []geom.Vec3
	for x := -r; x <= r; x++ {
		for y := -r; y <= r; y++ {
			for z := -r; z <= r; z++ {
				if x == 0 && y == 0 {
					continue // the bore
				}
				pts = append(pts, geom.Vec3{float64(x), float64(y), float64(z)})
			}
		}
	}
	margin := float64(r + 1)
	pts = append(pts, geom.Vec3{-margin, -margin, -margin}, geom.Vec3{margin, margin, margin})
	return pts
}

// TestClassify_AxialTunnelIsOnePore checks spec.md §8 scenario 2: a
// solid cube with a 1x1 tunnel bored through it along z yields one
// pore, its two mouths opening onto genuinely exposed space outside
// the cube.
func TestClassify_AxialTunnelIsOnePore(t *testing.T) {
	const r = 2
	groups := classifyPoints(t, solidCubeWithAxialTunnel(r), 1.0)
	if len(groups) != 1 {
		t.Fatalf("want 1 buried component, got %d", len(groups))
	}
	if groups[0].Kind != Pore {
		t.Errorf("want Pore, got %v", groups[0].Kind)
	}
	if len(groups[0].Voxels) != 2*r+1 {
		t.Errorf("want %d voxels along the tunnel, got %d", 2*r+1, len(groups[0].Voxels))
	}
}

// TestClassify_TwoDisjointShellsAreTwoCavities checks spec.md §8
// scenario 3.
func TestClassify_TwoDisjointShellsAreTwoCavities(t *testing.T) {
	shellA := cubeShell(1)
	var shellB []geom.Vec3
	const offset = 10.0
	for _, p := range cubeShell(1) {
		shellB = append(shellB, geom.Vec3{p[0] + offset, p[1], p[2]})
	}
	pts := append(append([]geom.Vec3{}, shellA...), shellB...)

	groups := classifyPoints(t, pts, 1.0)
	if len(groups) != 2 {
		t.Fatalf("want 2 buried components, got %d", len(groups))
	}
	for _, grp := range groups {
		if grp.Kind != Cavity {
			t.Errorf("want Cavity for component %d, got %v", grp.ID, grp.Kind)
		}
	}
}

// TestClassify_CornerOpenHasNoBuriedComponents checks spec.md §8
// scenario 4: opening the three faces that meet at one corner drops
// the centre's occlusion popcount to 3 (only the opposite corner's
// three directions stay blocked), well under the buried threshold, so
// there is no buried component at all to classify. A single face
// removed is insufficient here: with only one 3^3-shell face gone, the
// centre's popcount is still 5 and it remains buried.
func TestClassify_CornerOpenHasNoBuriedComponents(t *testing.T) {
	var pts []geom.Vec3
	for _, p := range cubeShell(1) {
		if p[0] == 1 || p[1] == 1 || p[2] == 1 { // open the +x,+y,+z corner
			continue
		}
		pts = append(pts, p)
	}
	groups := classifyPoints(t, pts, 1.0)
	if len(groups) != 0 {
		t.Fatalf("want 0 buried components, got %d", len(groups))
	}
}
