// Package config defines the Config value threaded explicitly through
// every analysis (spec.md §9: "the port must pass Config explicitly
// through the call graph; no hidden state") and the viper-backed
// loader that assembles one from CLI flags, environment variables, and
// an optional config file, per SPEC_FULL.md §6.
package config

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the single value passed into internal/analysis.Analyze;
// the CLI hands its Jobs field to internal/batch.Run as the worker
// count. Immutable for the duration of a run.
type Config struct {
	// VoxelSize is the cubic voxel edge S, in Ångströms (spec.md §3).
	VoxelSize float64
	// MinVoxels is the minimum group size kept by Filter & Sort (C7).
	MinVoxels int
	// MinVolume, if non-nil, is the minimum group volume (Å³) kept by
	// Filter & Sort (C7).
	MinVolume *float64
	// GridCap overrides grid.DefaultGridCap; zero means "use the
	// default".
	GridCap int

	// NonProtein, when true, skips internal/pdbio's protein-only
	// filter and voxelizes every atom in the input file.
	NonProtein bool
	// Jobs is the batch worker-pool size (internal/batch).
	Jobs int
	// OutDir is where the CLI writes annotated PDB output.
	OutDir string
	// Debug enables internal/logging's Debugf output (per-structure
	// atom counts and grid dimensions) for diagnosing a run.
	Debug bool
}

// Default returns the spec's default Config: S=1.0, min_voxels=2, no
// minimum volume, the grid package's default cap, single-job
// processing.
func Default() Config {
	return Config{
		VoxelSize: 1.0,
		MinVoxels: 2,
		MinVolume: nil,
		GridCap:   0,
		Jobs:      1,
		OutDir:    ".",
	}
}

// BindFlags registers the CLI-adjustable fields as pflags on fs, with
// spec-default values, for cobra commands to attach.
func BindFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.Float64("resolution", d.VoxelSize, "voxel edge length S, in Angstroms")
	fs.Int("min-voxels", d.MinVoxels, "minimum voxel count to keep a group")
	fs.Float64("min-volume", 0, "minimum volume (Angstrom^3) to keep a group; 0 disables the filter")
	fs.Int("jobs", d.Jobs, "number of structures to analyze concurrently")
	fs.Bool("non-protein", false, "keep non-protein residues instead of filtering them out")
	fs.String("out-dir", d.OutDir, "directory to write annotated PDB output")
	fs.Bool("debug", false, "log per-structure atom counts and grid dimensions")
}

// Load builds a Config from viper's layered precedence (flags > env
// PORATE_* > porate.yaml > defaults). v must have already had
// BindFlags' FlagSet bound via v.BindPFlags.
func Load(v *viper.Viper) Config {
	cfg := Default()
	cfg.VoxelSize = v.GetFloat64("resolution")
	cfg.MinVoxels = v.GetInt("min-voxels")
	if mv := v.GetFloat64("min-volume"); mv > 0 {
		cfg.MinVolume = &mv
	}
	cfg.Jobs = v.GetInt("jobs")
	cfg.NonProtein = v.GetBool("non-protein")
	cfg.OutDir = v.GetString("out-dir")
	cfg.Debug = v.GetBool("debug")
	return cfg
}

// NewViper builds a viper instance configured for porate's precedence
// rules: an optional porate.yaml in the working directory, environment
// variables under the PORATE_ prefix, then whatever flags are bound on
// top by the caller.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("porate")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("PORATE")
	v.AutomaticEnv()
	_ = v.ReadInConfig() // absent config file is not an error
	return v
}
