// Package discriminator implements the Pore/Cavity Discriminator
// (spec.md §4.5, C5): for each 6-connected component of buried voxels,
// decide whether it is a cavity (a single opening, or no opening at
// all) or a pore (two or more separable openings). The Occluded kind
// exists in the output schema but Classify never assigns it.
//
// hub and pocket are reserved output categories (spec.md §4.5, §9 open
// question): the source never realizes a criterion distinguishing them
// from the three kinds above, so this classifier never produces them;
// callers that want hub/pocket subdivision layer it on top of Cavity
// results.
package discriminator

import (
	"github.com/broomsday/porate/internal/components"
	"github.com/broomsday/porate/internal/grid"
)

// Kind is the topology verdict for one buried component.
type Kind int

const (
	Cavity Kind = iota
	Pore
	Occluded
)

func (k Kind) String() string {
	switch k {
	case Cavity:
		return "cavity"
	case Pore:
		return "pore"
	case Occluded:
		return "occluded"
	default:
		return "unknown"
	}
}

// Group is one buried component together with its assigned topology.
type Group struct {
	ID     int
	Kind   Kind
	Voxels []grid.Index
}

// Classify partitions buried into 6-connected components and assigns
// each a Kind per spec.md §4.5, using exposed to determine each
// component's direct and extended surface sets.
func Classify(g *grid.Grid, buried, exposed []grid.Index) []Group {
	exposedSet := make(map[int]bool, len(exposed))
	for _, v := range exposed {
		exposedSet[v.Lin] = true
	}

	comps := components.Label(buried, g)
	groups := make([]Group, 0, len(comps))
	neighborBuf := make([]int, 0, 6)

	for _, c := range comps {
		direct := directSurface(g, c.Voxels, exposedSet, &neighborBuf)
		directLookup := make(map[int]bool, len(direct))
		for _, v := range direct {
			directLookup[v.Lin] = true
		}
		extended := extendedSurface(g, c.Voxels, directLookup, &neighborBuf)
		groups = append(groups, Group{
			ID:     c.ID,
			Kind:   topology(g, extended),
			Voxels: c.Voxels,
		})
	}

	return groups
}

// directSurface returns the voxels of voxels that have at least one
// 6-neighbour in exposedSet.
func directSurface(g *grid.Grid, voxels []grid.Index, exposedSet map[int]bool, buf *[]int) []grid.Index {
	var direct []grid.Index
	for _, v := range voxels {
		*buf = (*buf)[:0]
		*buf = g.Neighbors6(v.I, v.J, v.K, *buf)
		for _, nb := range *buf {
			if exposedSet[nb] {
				direct = append(direct, v)
				break
			}
		}
	}
	return direct
}

// extendedSurface adds to the direct surface set every remaining
// component voxel that has a 6-neighbour in the direct set.
func extendedSurface(g *grid.Grid, voxels []grid.Index, directLookup map[int]bool, buf *[]int) []grid.Index {
	extended := make([]grid.Index, 0, len(directLookup))
	for _, v := range voxels {
		if directLookup[v.Lin] {
			extended = append(extended, v)
		}
	}
	for _, v := range voxels {
		if directLookup[v.Lin] {
			continue
		}
		*buf = (*buf)[:0]
		*buf = g.Neighbors6(v.I, v.J, v.K, *buf)
		for _, nb := range *buf {
			if directLookup[nb] {
				extended = append(extended, v)
				break
			}
		}
	}
	return extended
}

// topology applies spec.md §4.5 steps 3-6 to a component's extended
// surface set.
//
// A component fully sealed by a single voxel-thick protein wall (the
// textbook single-voxel cavity) always has an empty extended surface
// set, since D is built from direct adjacency to the exposed set: no
// amount of wall thickness changes that. Treating D'=∅ as occluded
// would misclassify exactly this case, so an empty extended surface
// set is treated as a single-mouthed cavity rather than occluded. A
// non-empty set that forms one component is a cavity and one that
// forms two or more is a pore; topology never returns Occluded.
func topology(g *grid.Grid, extended []grid.Index) Kind {
	if len(extended) == 0 {
		return Cavity
	}
	if len(components.Label(extended, g)) == 1 {
		return Cavity
	}
	return Pore
}
