// Package metrics implements Group Metrics (spec.md §4.6, C6): volume
// and per-axis extent for a voxel group.
package metrics

import "github.com/broomsday/porate/internal/grid"

// AxialLengths is the per-axis extent of a voxel group, in Ångströms.
type AxialLengths struct {
	X, Y, Z float64
}

// Volume returns |voxels|*s^3 for a voxel group of the given edge length.
func Volume(voxels []grid.Index, s float64) float64 {
	return float64(len(voxels)) * s * s * s
}

// Axial returns the group's bounding-box extent along each axis:
// (max-min+1)*s per spec.md §4.6. Returns the zero value for an empty
// group.
func Axial(voxels []grid.Index, s float64) AxialLengths {
	if len(voxels) == 0 {
		return AxialLengths{}
	}
	imin, imax := voxels[0].I, voxels[0].I
	jmin, jmax := voxels[0].J, voxels[0].J
	kmin, kmax := voxels[0].K, voxels[0].K
	for _, v := range voxels[1:] {
		if v.I < imin {
			imin = v.I
		}
		if v.I > imax {
			imax = v.I
		}
		if v.J < jmin {
			jmin = v.J
		}
		if v.J > jmax {
			jmax = v.J
		}
		if v.K < kmin {
			kmin = v.K
		}
		if v.K > kmax {
			kmax = v.K
		}
	}
	return AxialLengths{
		X: float64(imax-imin+1) * s,
		Y: float64(jmax-jmin+1) * s,
		Z: float64(kmax-kmin+1) * s,
	}
}
