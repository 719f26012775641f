// Package occlusion implements the Occlusion Classifier (spec.md §4.3,
// C3): for every empty voxel, a six-bit occlusion vector computed from
// three precomputed per-axis projection tables of the PROTEIN voxel
// set decides whether the voxel is buried or exposed.
//
// Only min/max per column are ever consulted, so the tables are sized
// O(Nx*Ny + Nx*Nz + Ny*Nz) rather than holding full per-column voxel
// lists — the generalization of the teacher's packed-bitmask tables
// (one word summarizing many voxels) to this per-column min/max
// summary.
package occlusion

import "github.com/broomsday/porate/internal/grid"

// column holds the min and max index seen for one (fixed-axis-pair)
// column of protein voxels; has is false if the column is empty.
type column struct {
	has      bool
	min, max int
}

// Projections are the three per-axis projection tables built once per
// grid and consulted for every empty voxel.
type Projections struct {
	nx, ny, nz int
	xcol       []column // indexed by j*nz+k: set of i values
	ycol       []column // indexed by i*nz+k: set of j values
	zcol       []column // indexed by i*ny+j: set of k values
}

// Build scans every voxel in g and records, per projection axis, the
// min/max occupied coordinate for each column of the other two axes.
func Build(g *grid.Grid) *Projections {
	nx, ny, nz := g.Dims()
	p := &Projections{
		nx:   nx,
		ny:   ny,
		nz:   nz,
		xcol: make([]column, ny*nz),
		ycol: make([]column, nx*nz),
		zcol: make([]column, nx*ny),
	}
	for lin := 0; lin < g.NumVoxels(); lin++ {
		if !g.IsOccupied(lin) {
			continue
		}
		i, j, k := g.Unravel(lin)
		p.record(&p.xcol[j*nz+k], i)
		p.record(&p.ycol[i*nz+k], j)
		p.record(&p.zcol[i*ny+j], k)
	}
	return p
}

func (p *Projections) record(c *column, v int) {
	if !c.has {
		c.has, c.min, c.max = true, v, v
		return
	}
	if v < c.min {
		c.min = v
	}
	if v > c.max {
		c.max = v
	}
}

// Vector is the six-bit occlusion vector (O_x-, O_x+, O_y-, O_y+,
// O_z-, O_z+) for one voxel.
type Vector [6]bool

// occlusionVector computes the vector for voxel (i,j,k) per spec.md
// §4.3: O_x- is set iff some protein voxel's i is strictly less than
// the query's i in the same (j,k) column, and symmetrically for the
// other five directions.
func (p *Projections) occlusionVector(i, j, k int) Vector {
	var o Vector
	if xc := p.xcol[j*p.nz+k]; xc.has {
		o[0] = xc.min < i
		o[1] = xc.max > i
	}
	if yc := p.ycol[i*p.nz+k]; yc.has {
		o[2] = yc.min < j
		o[3] = yc.max > j
	}
	if zc := p.zcol[i*p.ny+j]; zc.has {
		o[4] = zc.min < k
		o[5] = zc.max > k
	}
	return o
}

// Buried applies the §4.3 buried rule to a voxel: true if its
// occlusion popcount is >=5, or exactly 4 with the two unoccluded
// directions forming a matched pair on the same axis (preserving a
// straight channel penetrating along one axis).
func (p *Projections) Buried(i, j, k int) bool {
	o := p.occlusionVector(i, j, k)
	n := 0
	for _, b := range o {
		if b {
			n++
		}
	}
	switch {
	case n >= 5:
		return true
	case n == 4:
		return (!o[0] && !o[1]) || (!o[2] && !o[3]) || (!o[4] && !o[5])
	default:
		return false
	}
}

// Classify partitions every EMPTY voxel of g into buried and exposed
// sets, using p's projection tables. The two returned slices are
// disjoint and exhaustive over the empty voxel set (spec.md §3).
func Classify(g *grid.Grid, p *Projections) (buried, exposed []grid.Index) {
	for lin := 0; lin < g.NumVoxels(); lin++ {
		if g.IsOccupied(lin) {
			continue
		}
		i, j, k := g.Unravel(lin)
		idx := grid.Index{I: i, J: j, K: k, Lin: lin}
		if p.Buried(i, j, k) {
			buried = append(buried, idx)
		} else {
			exposed = append(exposed, idx)
		}
	}
	return buried, exposed
}
