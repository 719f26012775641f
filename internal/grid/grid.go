// Package grid implements the bounding-box discretization described in
// spec.md §4.1 (C1): a Grid fixes the voxel edge length, the integer
// dimensions Nx,Ny,Nz, and the 3D<->1D index arithmetic every later
// stage builds on.
//
// The occupancy bitmap generalizes the teacher's per-brick
// OccupancyMask64 (one bit per 2x2x2 micro-block, packed into a
// uint64) to the whole grid: a single flat []uint64 bitset addressed
// by linear index, per spec.md §9's explicit call for a dense bitmap
// instead of the source's nested per-axis arrays.
package grid

import (
	"math"

	"github.com/broomsday/porate/internal/errs"
	"github.com/broomsday/porate/internal/geom"
)

// Index names a single voxel by both its 3D coordinate and its
// precomputed linear index, so downstream stages never recompute one
// from the other.
type Index struct {
	I, J, K int
	Lin     int
}

// Grid is an axis-aligned lattice of cubic voxels of edge S. It is
// computed once from the bounding box of the padded point cloud and is
// immutable thereafter; voxel_of/linear/unravel are total on any point
// within the box.
type Grid struct {
	Nx, Ny, Nz int
	Origin     geom.Vec3
	S          float64

	occupancy []uint64 // dense bitset, one bit per voxel, indexed by Lin
}

// DefaultGridCap bounds Nx*Ny*Nz to guard against pathological inputs
// producing runaway allocations (spec.md §7, GridTooLarge).
const DefaultGridCap = 64 * 1024 * 1024 // 64M voxels, ~8MB bitset

// New computes the tight bounding box of points and the minimum
// dimensions such that every point maps into the grid, then allocates
// an empty occupancy bitmap sized to it.
//
// Returns InputError if points is empty, S<=0, or any coordinate is
// NaN/Inf; GridTooLarge if Nx*Ny*Nz exceeds gridCap.
func New(points []geom.Vec3, s float64, gridCap int) (*Grid, error) {
	if len(points) == 0 {
		return nil, errs.NewInput("point cloud is empty")
	}
	if s <= 0 {
		return nil, errs.NewInput("voxel size must be positive, got %v", s)
	}

	min := points[0]
	max := points[0]
	for _, p := range points {
		for axis := 0; axis < 3; axis++ {
			v := p[axis]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errs.NewInput("coordinate is NaN or Inf: %v", p)
			}
			if v < min[axis] {
				min[axis] = v
			}
			if v > max[axis] {
				max[axis] = v
			}
		}
	}

	nx := int(math.Floor((max[0]-min[0])/s)) + 1
	ny := int(math.Floor((max[1]-min[1])/s)) + 1
	nz := int(math.Floor((max[2]-min[2])/s)) + 1

	total := int64(nx) * int64(ny) * int64(nz)
	if gridCap <= 0 {
		gridCap = DefaultGridCap
	}
	if total > int64(gridCap) {
		return nil, &errs.GridTooLarge{Nx: nx, Ny: ny, Nz: nz, Cap: int64(gridCap)}
	}

	g := &Grid{
		Nx:     nx,
		Ny:     ny,
		Nz:     nz,
		Origin: min,
		S:      s,
	}
	g.occupancy = make([]uint64, (total+63)/64)

	for _, p := range points {
		idx := g.VoxelOf(p)
		g.SetOccupied(idx)
	}

	return g, nil
}

// Dims returns the grid's integer dimensions.
func (g *Grid) Dims() (int, int, int) { return g.Nx, g.Ny, g.Nz }

// NumVoxels returns Nx*Ny*Nz.
func (g *Grid) NumVoxels() int { return g.Nx * g.Ny * g.Nz }

// VoxelOf maps a point within the grid's bounding box to its voxel
// coordinate. Points outside the box are a programming error (spec.md
// §4.1: "inputs outside the box are a programming error"); indices are
// clamped defensively rather than panicking.
func (g *Grid) VoxelOf(p geom.Vec3) Index {
	i := int(math.Floor((p[0] - g.Origin[0]) / g.S))
	j := int(math.Floor((p[1] - g.Origin[1]) / g.S))
	k := int(math.Floor((p[2] - g.Origin[2]) / g.S))
	i = clamp(i, 0, g.Nx-1)
	j = clamp(j, 0, g.Ny-1)
	k = clamp(k, 0, g.Nz-1)
	return Index{I: i, J: j, K: k, Lin: g.Linear(i, j, k)}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Linear maps (i,j,k) to its row-major linear index.
func (g *Grid) Linear(i, j, k int) int {
	return i*g.Ny*g.Nz + j*g.Nz + k
}

// Unravel maps a linear index back to (i,j,k).
func (g *Grid) Unravel(lin int) (int, int, int) {
	i := lin / (g.Ny * g.Nz)
	rem := lin % (g.Ny * g.Nz)
	j := rem / g.Nz
	k := rem % g.Nz
	return i, j, k
}

// SetOccupied marks a voxel PROTEIN.
func (g *Grid) SetOccupied(idx Index) {
	g.occupancy[idx.Lin/64] |= 1 << uint(idx.Lin%64)
}

// IsOccupied reports whether the voxel at lin is PROTEIN.
func (g *Grid) IsOccupied(lin int) bool {
	return g.occupancy[lin/64]&(1<<uint(lin%64)) != 0
}

// InBounds reports whether (i,j,k) lies within the grid.
func (g *Grid) InBounds(i, j, k int) bool {
	return i >= 0 && i < g.Nx && j >= 0 && j < g.Ny && k >= 0 && k < g.Nz
}

// Neighbors6 appends the up-to-six ordinal (Manhattan-distance-1)
// neighbour linear indices of (i,j,k) that lie within the grid to dst,
// returning the extended slice. Used by every stage that needs
// 6-connectivity: occlusion's own checks don't need it, but component
// labelling (C4) and the surface-set construction in C5 do.
func (g *Grid) Neighbors6(i, j, k int, dst []int) []int {
	offsets := [6][3]int{
		{-1, 0, 0}, {1, 0, 0},
		{0, -1, 0}, {0, 1, 0},
		{0, 0, -1}, {0, 0, 1},
	}
	for _, d := range offsets {
		ni, nj, nk := i+d[0], j+d[1], k+d[2]
		if g.InBounds(ni, nj, nk) {
			dst = append(dst, g.Linear(ni, nj, nk))
		}
	}
	return dst
}
