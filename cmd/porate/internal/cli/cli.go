// Package cli implements the porate command-line dispatch
// (SPEC_FULL.md A3): single PDB id, path, id-list file, or directory,
// with the exit-code scheme described in SPEC_FULL.md §6.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/broomsday/porate/internal/analysis"
	"github.com/broomsday/porate/internal/annotate"
	"github.com/broomsday/porate/internal/batch"
	"github.com/broomsday/porate/internal/config"
	"github.com/broomsday/porate/internal/logging"
	"github.com/broomsday/porate/internal/pdbio"
	"github.com/broomsday/porate/internal/rcsb"
)

var pdbIDPattern = regexp.MustCompile(`^[0-9A-Za-z]{4}$`)

// BatchFailure signals that a batch run completed but at least one
// item failed; the CLI maps it to exit code 2 (SPEC_FULL.md §6).
type BatchFailure struct {
	Failed int
	Total  int
}

func (e *BatchFailure) Error() string {
	return fmt.Sprintf("%d of %d item(s) failed", e.Failed, e.Total)
}

// ExitCode maps an error returned by Execute to a process exit status:
// 0 on success, 2 if it's a BatchFailure, 1 for anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var bf *BatchFailure
	if errors.As(err, &bf) {
		return 2
	}
	return 1
}

var log logging.Logger = logging.NewDefaultLogger("porate", false)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "porate",
		Short: "classify internal voids (pores, cavities, pockets, hubs) in protein structures",
	}
	root.AddCommand(newRunCmd())
	return root
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <pdb-id|path-to.pdb|id-list-file|directory>",
		Short: "analyze one structure or a batch of structures",
		Args:  cobra.ExactArgs(1),
		RunE:  runRun,
	}
	config.BindFlags(cmd.Flags())
	return cmd
}

// Execute runs the porate CLI against os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func loadConfig(cmd *cobra.Command) config.Config {
	v := config.NewViper()
	_ = v.BindPFlags(cmd.Flags())
	return config.Load(v)
}

type inputKind int

const (
	kindPDBID inputKind = iota
	kindPDBFile
	kindIDListFile
	kindDirectory
)

// guessInputType mirrors the original script's guess_input_type: a
// bare 4-character alphanumeric token with no matching file on disk is
// a PDB id; an existing .pdb file is read directly; any other existing
// file is an id list; an existing directory is globbed for *.pdb.
func guessInputType(token string) (inputKind, error) {
	info, err := os.Stat(token)
	if err != nil {
		if pdbIDPattern.MatchString(token) {
			return kindPDBID, nil
		}
		return 0, fmt.Errorf("%q is not a file, directory, or 4-character PDB id", token)
	}
	if info.IsDir() {
		return kindDirectory, nil
	}
	if strings.EqualFold(filepath.Ext(token), ".pdb") {
		return kindPDBFile, nil
	}
	return kindIDListFile, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	log.SetDebug(cfg.Debug)
	token := args[0]

	kind, err := guessInputType(token)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	switch kind {
	case kindPDBID:
		return runSingle(cmd.Context(), token, cfg)
	case kindPDBFile:
		return runSingleFile(token, cfg)
	case kindIDListFile:
		return runIDListFile(cmd.Context(), token, cfg)
	case kindDirectory:
		return runDirectory(token, cfg)
	default:
		return fmt.Errorf("unrecognized input %q", token)
	}
}

func analyzeAtoms(atoms []pdbio.Atom, cfg config.Config) (annotate.Annotation, annotate.AnnotatedVoxels, *analysis.Grid, error) {
	cleaned := pdbio.CleanProteinOnly(atoms, cfg.NonProtein)
	log.Debugf("read %d atoms, %d after protein-only cleaning", len(atoms), len(cleaned))
	if len(cleaned) == 0 {
		return annotate.Annotation{}, annotate.AnnotatedVoxels{}, nil, pdbio.ErrNoAtoms
	}
	cloud := pdbio.PointCloud(cleaned)
	ann, voxels, g, err := analysis.Analyze(cloud, cfg)
	if err == nil {
		nx, ny, nz := g.Dims()
		log.Debugf("grid %dx%dx%d at S=%.2f", nx, ny, nz, g.S)
	}
	return ann, voxels, g, err
}

func writeOutput(id string, cfg config.Config, g *analysis.Grid, voxels annotate.AnnotatedVoxels) error {
	outPath := filepath.Join(cfg.OutDir, id+".annotated.pdb")
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()
	return pdbio.WriteAnnotatedPDB(f, g, voxels)
}

func runSingle(ctx context.Context, pdbID string, cfg config.Config) error {
	raw, err := rcsb.DownloadAssembly(ctx, pdbID)
	if err != nil {
		return err
	}
	atoms, err := pdbio.ReadAtoms(strings.NewReader(string(raw)))
	if err != nil {
		return err
	}
	ann, voxels, g, err := analyzeAtoms(atoms, cfg)
	if err != nil {
		return err
	}
	log.Infof("%s: %d cavities, %d pores (total cavity volume %.1f)", pdbID, ann.Cavity.Num, ann.Pore.Num, ann.Cavity.TotalVolume)
	return writeOutput(pdbID, cfg, g, voxels)
}

func runSingleFile(path string, cfg config.Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	atoms, err := pdbio.ReadAtoms(f)
	if err != nil {
		return err
	}
	ann, voxels, g, err := analyzeAtoms(atoms, cfg)
	if err != nil {
		return err
	}
	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	log.Infof("%s: %d cavities, %d pores (total cavity volume %.1f)", id, ann.Cavity.Num, ann.Pore.Num, ann.Cavity.TotalVolume)
	return writeOutput(id, cfg, g, voxels)
}

func runIDListFile(ctx context.Context, path string, cfg config.Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var ids []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, line)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	return runBatch(ctx, ids, cfg, func(ctx context.Context, id string) error {
		return runSingle(ctx, id, cfg)
	})
}

func runDirectory(dir string, cfg config.Config) error {
	matches, err := filepath.Glob(filepath.Join(dir, "*.pdb"))
	if err != nil {
		return fmt.Errorf("globbing %s: %w", dir, err)
	}
	return runBatch(context.Background(), matches, cfg, func(_ context.Context, path string) error {
		return runSingleFile(path, cfg)
	})
}

// runBatch fans ids/paths out across cfg.Jobs workers via
// internal/batch, "skip, don't abort" on per-item failure (spec.md §7).
func runBatch(ctx context.Context, items []string, cfg config.Config, do func(context.Context, string) error) error {
	jobs := make([]batch.Job, len(items))
	for i, item := range items {
		jobs[i] = batch.Job{ID: item, Input: item}
	}

	results := batch.Run(ctx, jobs, cfg.Jobs, func(j batch.Job) (annotate.Annotation, error) {
		if err := do(ctx, j.Input.(string)); err != nil {
			return annotate.Annotation{}, err
		}
		return annotate.Annotation{}, nil
	})

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			log.Errorf("[%s] %s: %v", r.CorrID, r.JobID, r.Err)
			failed++
		}
	}
	if failed > 0 {
		return &BatchFailure{Failed: failed, Total: len(results)}
	}
	return nil
}
