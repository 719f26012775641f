// Package filter implements Filter & Sort (spec.md §4.7, C7): drops
// undersized groups, then orders the remainder by descending volume
// (ties broken by ascending original id) and re-indexes ids to that
// order. Applied independently per category.
package filter

import (
	"sort"

	"github.com/broomsday/porate/internal/annotate"
)

// Apply drops any group with fewer than minVoxels voxels or (if
// minVolume is non-nil) a volume below *minVolume, sorts the rest by
// descending volume with ties broken by ascending original id, and
// returns them with ids reassigned to 0..n-1 in that order.
func Apply(groups []annotate.VoxelGroup, minVoxels int, minVolume *float64) []annotate.VoxelGroup {
	kept := make([]annotate.VoxelGroup, 0, len(groups))
	for _, g := range groups {
		if len(g.Voxels) < minVoxels {
			continue
		}
		if minVolume != nil && g.Volume < *minVolume {
			continue
		}
		kept = append(kept, g)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Volume != kept[j].Volume {
			return kept[i].Volume > kept[j].Volume
		}
		return kept[i].ID < kept[j].ID
	})

	out := make([]annotate.VoxelGroup, len(kept))
	for i, g := range kept {
		g.ID = i
		out[i] = g
	}
	return out
}
