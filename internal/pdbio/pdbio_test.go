package pdbio

import (
	"strings"
	"testing"

	"github.com/broomsday/porate/internal/annotate"
	"github.com/broomsday/porate/internal/geom"
	"github.com/broomsday/porate/internal/grid"
)

const samplePDB = `ATOM      1  N   ALA A   1      11.104  13.207   2.100  1.00  0.00           N
ATOM      2  CA  ALA A   1      12.560  13.207   2.100  1.00  0.00           C
HETATM    3  O   HOH A 101      20.000  20.000  20.000  1.00  0.00           O
END
`

func TestReadAtoms_ParsesCoordinates(t *testing.T) {
	atoms, err := ReadAtoms(strings.NewReader(samplePDB))
	if err != nil {
		t.Fatalf("ReadAtoms: %v", err)
	}
	if len(atoms) != 3 {
		t.Fatalf("want 3 atoms, got %d", len(atoms))
	}
	if atoms[0].ResName != "ALA" || atoms[0].Name != "N" {
		t.Errorf("unexpected first atom: %+v", atoms[0])
	}
	if atoms[0].Pos[0] != 11.104 || atoms[0].Pos[1] != 13.207 || atoms[0].Pos[2] != 2.100 {
		t.Errorf("unexpected coordinates: %+v", atoms[0].Pos)
	}
	if !atoms[2].HETATM || atoms[2].ResName != "HOH" {
		t.Errorf("want atom 2 to be a HETATM water, got %+v", atoms[2])
	}
}

func TestReadAtoms_NoRecordsIsError(t *testing.T) {
	_, err := ReadAtoms(strings.NewReader("REMARK nothing here\nEND\n"))
	if err != ErrNoAtoms {
		t.Errorf("want ErrNoAtoms, got %v", err)
	}
}

func TestCleanProteinOnly_DropsWaterAndKeepsAminoAcids(t *testing.T) {
	atoms, err := ReadAtoms(strings.NewReader(samplePDB))
	if err != nil {
		t.Fatalf("ReadAtoms: %v", err)
	}
	cleaned := CleanProteinOnly(atoms, false)
	if len(cleaned) != 2 {
		t.Fatalf("want 2 protein atoms after cleaning, got %d", len(cleaned))
	}
	for _, a := range cleaned {
		if a.ResName == "HOH" {
			t.Errorf("water should have been dropped, found %+v", a)
		}
	}
}

func TestCleanProteinOnly_KeepNonProteinBypassesFilter(t *testing.T) {
	atoms, _ := ReadAtoms(strings.NewReader(samplePDB))
	kept := CleanProteinOnly(atoms, true)
	if len(kept) != len(atoms) {
		t.Errorf("want all %d atoms kept, got %d", len(atoms), len(kept))
	}
}

func TestPointCloud_ConvertsPositions(t *testing.T) {
	atoms := []Atom{{Pos: geom.Vec3{1, 2, 3}}, {Pos: geom.Vec3{4, 5, 6}}}
	pc := PointCloud(atoms)
	if pc.Len() != 2 {
		t.Fatalf("want 2 points, got %d", pc.Len())
	}
}

func TestWriteAnnotatedPDB_EmitsOneHETATMPerVoxel(t *testing.T) {
	g, err := grid.New([]geom.Vec3{{0, 0, 0}, {3, 3, 3}}, 1.0, 0)
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}
	cavities := map[int]annotate.VoxelGroup{
		0: {ID: 0, Kind: annotate.KindCavity, Voxels: []grid.Index{{I: 1, J: 1, K: 1, Lin: g.Linear(1, 1, 1)}}, Volume: 1.0},
	}
	voxels := annotate.AnnotatedVoxels{Cavities: cavities}

	var buf strings.Builder
	if err := WriteAnnotatedPDB(&buf, g, voxels); err != nil {
		t.Fatalf("WriteAnnotatedPDB: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "REMARK porate voxel edge") {
		t.Errorf("missing voxel-edge remark: %q", out)
	}
	if !strings.Contains(out, "CAV") {
		t.Errorf("missing cavity HETATM record: %q", out)
	}
}

