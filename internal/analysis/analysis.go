// Package analysis wires C1-C8 into the single entry point a caller
// uses to turn a PointCloud into an Annotation: pad, grid, occlusion,
// label, discriminate, filter/sort, annotate. Single-threaded and
// side-effect free, per spec.md §5.
package analysis

import (
	"github.com/broomsday/porate/internal/annotate"
	"github.com/broomsday/porate/internal/config"
	"github.com/broomsday/porate/internal/discriminator"
	"github.com/broomsday/porate/internal/filter"
	"github.com/broomsday/porate/internal/geom"
	"github.com/broomsday/porate/internal/grid"
	"github.com/broomsday/porate/internal/occlusion"
	"github.com/broomsday/porate/internal/pad"
)

// Grid is the voxel grid built for one analysis, returned alongside
// the annotation so callers (PDB emission in particular) can recover
// voxel geometry without recomputing it.
type Grid = grid.Grid

// Analyze runs the full pipeline over cloud with the given cfg and
// returns the aggregate Annotation, the per-group voxel membership,
// and the grid the groups are expressed in. Returns InputError or
// GridTooLarge (propagated from internal/grid) on invalid input.
func Analyze(cloud geom.PointCloud, cfg config.Config) (annotate.Annotation, annotate.AnnotatedVoxels, *Grid, error) {
	padded := pad.AddExtraPoints(cloud.Points, cfg.VoxelSize)

	g, err := grid.New(padded, cfg.VoxelSize, cfg.GridCap)
	if err != nil {
		return annotate.Annotation{}, annotate.AnnotatedVoxels{}, nil, err
	}

	proj := occlusion.Build(g)
	buried, exposed := occlusion.Classify(g, proj)

	discGroups := discriminator.Classify(g, buried, exposed)

	var pores, cavities, occluded []annotate.VoxelGroup
	for _, dg := range discGroups {
		switch dg.Kind {
		case discriminator.Pore:
			pores = append(pores, annotate.NewVoxelGroup(dg.ID, annotate.KindPore, dg.Voxels, g.S))
		case discriminator.Cavity:
			cavities = append(cavities, annotate.NewVoxelGroup(dg.ID, annotate.KindCavity, dg.Voxels, g.S))
		case discriminator.Occluded:
			occluded = append(occluded, annotate.NewVoxelGroup(dg.ID, annotate.KindOccluded, dg.Voxels, g.S))
		}
	}

	// hub and pocket have no populating criterion (spec.md §9 open
	// question); filter.Apply on a nil slice is a no-op and yields an
	// empty, valid category.
	var hubs, pockets []annotate.VoxelGroup

	hubs = filter.Apply(hubs, cfg.MinVoxels, cfg.MinVolume)
	pores = filter.Apply(pores, cfg.MinVoxels, cfg.MinVolume)
	pockets = filter.Apply(pockets, cfg.MinVoxels, cfg.MinVolume)
	cavities = filter.Apply(cavities, cfg.MinVoxels, cfg.MinVolume)
	// occluded groups are reported as-is: spec.md §4.7 only names the
	// four reportable categories as sort/filter targets, and occluded
	// voxels "contribute no summary beyond being excluded" (spec.md §3).

	ann, voxels := annotate.Build(hubs, pores, pockets, cavities, occluded)
	return ann, voxels, g, nil
}
