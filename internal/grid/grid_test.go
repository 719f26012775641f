package grid

import (
	"testing"

	"github.com/broomsday/porate/internal/errs"
	"github.com/broomsday/porate/internal/geom"
)

func TestNew_EmptyPointCloud(t *testing.T) {
	_, err := New(nil, 1.0, 0)
	if _, ok := err.(*errs.InputError); !ok {
		t.Fatalf("expected InputError for empty point cloud, got %v", err)
	}
}

func TestNew_NonPositiveVoxelSize(t *testing.T) {
	pts := []geom.Vec3{{0, 0, 0}}
	_, err := New(pts, 0, 0)
	if _, ok := err.(*errs.InputError); !ok {
		t.Fatalf("expected InputError for S<=0, got %v", err)
	}
}

func TestNew_GridTooLarge(t *testing.T) {
	pts := []geom.Vec3{{0, 0, 0}, {100, 100, 100}}
	_, err := New(pts, 1.0, 10)
	if _, ok := err.(*errs.GridTooLarge); !ok {
		t.Fatalf("expected GridTooLarge, got %v", err)
	}
}

// TestNew_SingleAtom checks the single-point grid is exactly 1x1x1.
func TestNew_SingleAtom(t *testing.T) {
	pts := []geom.Vec3{{0, 0, 0}}
	g, err := New(pts, 1.0, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	nx, ny, nz := g.Dims()
	if nx != 1 || ny != 1 || nz != 1 {
		t.Fatalf("dims = %d,%d,%d; want 1,1,1", nx, ny, nz)
	}
	if !g.IsOccupied(g.VoxelOf(pts[0]).Lin) {
		t.Error("the single voxel should be occupied")
	}
}

// TestNew_TightBoundingBox checks every input point maps within bounds
// and that the dims are the minimum that fit the bounding box.
func TestNew_TightBoundingBox(t *testing.T) {
	pts := []geom.Vec3{{0, 0, 0}, {2.5, 1.1, 0.0}}
	g, err := New(pts, 1.0, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	nx, ny, nz := g.Dims()
	if nx != 3 || ny != 2 || nz != 1 {
		t.Fatalf("dims = %d,%d,%d; want 3,2,1", nx, ny, nz)
	}
	for _, p := range pts {
		idx := g.VoxelOf(p)
		if !g.InBounds(idx.I, idx.J, idx.K) {
			t.Errorf("point %v mapped out of bounds: %v", p, idx)
		}
	}
}

func TestLinearUnravel_RoundTrip(t *testing.T) {
	pts := []geom.Vec3{{0, 0, 0}, {4, 4, 4}}
	g, err := New(pts, 1.0, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			for k := 0; k < g.Nz; k++ {
				lin := g.Linear(i, j, k)
				ri, rj, rk := g.Unravel(lin)
				if ri != i || rj != j || rk != k {
					t.Fatalf("Unravel(Linear(%d,%d,%d)) = %d,%d,%d", i, j, k, ri, rj, rk)
				}
			}
		}
	}
}

func TestNeighbors6_InteriorVoxel(t *testing.T) {
	pts := []geom.Vec3{{0, 0, 0}, {4, 4, 4}}
	g, _ := New(pts, 1.0, 0)
	n := g.Neighbors6(2, 2, 2, nil)
	if len(n) != 6 {
		t.Fatalf("interior voxel should have 6 neighbors, got %d", len(n))
	}
}

func TestNeighbors6_CornerVoxel(t *testing.T) {
	pts := []geom.Vec3{{0, 0, 0}, {4, 4, 4}}
	g, _ := New(pts, 1.0, 0)
	n := g.Neighbors6(0, 0, 0, nil)
	if len(n) != 3 {
		t.Fatalf("corner voxel should have 3 in-bounds neighbors, got %d", len(n))
	}
}
