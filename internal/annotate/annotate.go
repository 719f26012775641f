// Package annotate implements the Annotator (spec.md §4.8, C8): it
// aggregates a set of filtered, sorted voxel groups into the final
// Annotation record and the parallel AnnotatedVoxels dictionaries,
// per spec.md §3 and §6.
package annotate

import (
	"github.com/broomsday/porate/internal/grid"
	"github.com/broomsday/porate/internal/metrics"
)

// Kind is the final classification of a voxel group, per spec.md §3's
// VoxelGroup.kind enumeration restricted to the reportable categories.
type Kind string

const (
	KindHub      Kind = "hub"
	KindPore     Kind = "pore"
	KindPocket   Kind = "pocket"
	KindCavity   Kind = "cavity"
	KindOccluded Kind = "occluded"
)

// VoxelGroup is one labelled, measured region (spec.md §3).
type VoxelGroup struct {
	ID     int
	Kind   Kind
	Voxels []grid.Index
	Volume float64
	Axial  metrics.AxialLengths
}

// NewVoxelGroup computes Volume and Axial from voxels at edge s and
// assembles a VoxelGroup.
func NewVoxelGroup(id int, kind Kind, voxels []grid.Index, s float64) VoxelGroup {
	return VoxelGroup{
		ID:     id,
		Kind:   kind,
		Voxels: voxels,
		Volume: metrics.Volume(voxels, s),
		Axial:  metrics.Axial(voxels, s),
	}
}

// CategorySummary is the per-category aggregate from spec.md §3's
// Annotation record.
type CategorySummary struct {
	TotalVolume   float64
	LargestVolume float64
	Num           int
	VolumeByID    map[int]float64
	AxialByID     map[int]metrics.AxialLengths
}

// Annotation is the full aggregate record across all four reportable
// categories (spec.md §3). Occluded groups contribute nothing here.
type Annotation struct {
	Hub, Pore, Pocket, Cavity CategorySummary
}

// AnnotatedVoxels holds the actual voxel membership per group id,
// keyed by category, including Occluded (spec.md §6).
type AnnotatedVoxels struct {
	Hubs, Pores, Pockets, Cavities, Occluded map[int]VoxelGroup
}

// summarize builds a CategorySummary from one category's already
// filtered and sorted groups.
func summarize(groups []VoxelGroup) CategorySummary {
	s := CategorySummary{
		VolumeByID: make(map[int]float64, len(groups)),
		AxialByID:  make(map[int]metrics.AxialLengths, len(groups)),
	}
	for _, g := range groups {
		s.TotalVolume += g.Volume
		if g.Volume > s.LargestVolume {
			s.LargestVolume = g.Volume
		}
		s.Num++
		s.VolumeByID[g.ID] = g.Volume
		s.AxialByID[g.ID] = g.Axial
	}
	return s
}

func toMap(groups []VoxelGroup) map[int]VoxelGroup {
	m := make(map[int]VoxelGroup, len(groups))
	for _, g := range groups {
		m[g.ID] = g
	}
	return m
}

// Build assembles the Annotation and AnnotatedVoxels from each
// category's already-filtered-and-sorted groups (internal/filter's
// output), per spec.md §4.8.
func Build(hubs, pores, pockets, cavities, occluded []VoxelGroup) (Annotation, AnnotatedVoxels) {
	ann := Annotation{
		Hub:    summarize(hubs),
		Pore:   summarize(pores),
		Pocket: summarize(pockets),
		Cavity: summarize(cavities),
	}
	voxels := AnnotatedVoxels{
		Hubs:     toMap(hubs),
		Pores:    toMap(pores),
		Pockets:  toMap(pockets),
		Cavities: toMap(cavities),
		Occluded: toMap(occluded),
	}
	return ann, voxels
}
