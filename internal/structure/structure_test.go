package structure

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aria-lang/subseq-go/internal/sequence"
)

// atomLine formats a fixed-column ATOM/HETATM record.
func atomLine(record string, serial int, name string, alt byte, resName string, chain byte, resSeq string, iCode byte) string {
	return fmt.Sprintf("%-6s%5d %-4s%c%3s %c%4s%c   %8.3f%8.3f%8.3f  1.00  0.00",
		record, serial, name, alt, resName, chain, resSeq, iCode, 1.0, 2.0, 3.0)
}

func protein() string {
	lines := []string{
		"HEADER    TEST PROTEIN",
		atomLine("ATOM", 1, "N", ' ', "LYS", 'A', "10", ' '),
		atomLine("ATOM", 2, "CA", ' ', "LYS", 'A', "10", ' '),
		atomLine("ATOM", 3, "CA", 'A', "THR", 'A', "11", ' '),
		atomLine("ATOM", 4, "CA", 'B', "THR", 'A', "11", ' '),
		atomLine("ATOM", 5, "CA", ' ', "GLY", 'A', "52", ' '),
		atomLine("ATOM", 6, "CA", ' ', "MSE", 'A', "52", 'A'),
		"TER",
		atomLine("ATOM", 7, "CA", ' ', "TRP", 'B', "1", ' '),
		atomLine("HETATM", 8, "O", ' ', "HOH", 'B', "301", ' '),
		"END",
		atomLine("ATOM", 9, "CA", ' ', "ALA", 'C', "1", ' '),
	}
	return strings.Join(lines, "\n") + "\n"
}

func TestReadPDB(t *testing.T) {
	e, err := ReadPDB("1abc", strings.NewReader(protein()))
	require.NoError(t, err)

	assert.Equal(t, "1ABC", e.Name)
	require.Len(t, e.Models, 1)
	assert.Equal(t, "1ABC", e.Models[0].Name)
	assert.Equal(t, []string{"A", "B"}, e.Models[0].Chains())
	assert.Len(t, e.Models[0].Atoms, 8)

	hoh := e.Models[0].Atoms[7]
	assert.True(t, hoh.HetAtm)
	assert.Equal(t, "HOH", hoh.ResName)
	assert.Equal(t, "301", hoh.ResID)
}

func TestHostResidues(t *testing.T) {
	e, err := ReadPDB("1abc", strings.NewReader(protein()))
	require.NoError(t, err)
	h := NewHost(e)

	got := h.Residues(AlphaCarbons)
	assert.Equal(t, []sequence.Residue{
		{Code: "LYS", ID: "10", Chain: "A", Model: "1ABC"},
		{Code: "THR", ID: "11", Chain: "A", Model: "1ABC"},
		{Code: "GLY", ID: "52", Chain: "A", Model: "1ABC"},
		{Code: "MSE", ID: "52A", Chain: "A", Model: "1ABC"},
		{Code: "TRP", ID: "1", Chain: "B", Model: "1ABC"},
	}, got)

	store := sequence.Build(got, sequence.BuildOptions{Alphabet: sequence.AminoAcids})
	cs, ok := store.Get("1ABC", "A")
	require.True(t, ok)
	assert.Equal(t, "KTGX", cs.Sequence)
	assert.Equal(t, []string{"10", "11", "52", "52A"}, cs.IDs)
}

func TestMultiModel(t *testing.T) {
	text := strings.Join([]string{
		"MODEL        1",
		atomLine("ATOM", 1, "CA", ' ', "ALA", 'A', "1", ' '),
		"ENDMDL",
		"MODEL        2",
		atomLine("ATOM", 1, "CA", ' ', "GLY", 'A', "1", ' '),
		atomLine("ATOM", 2, "CA", ' ', "GLY", 'B', "1", ' '),
		"ENDMDL",
		"END",
	}, "\n")

	e, err := ReadPDB("2nmr", strings.NewReader(text))
	require.NoError(t, err)

	h := NewHost(e)
	assert.Equal(t, []string{"2NMR", "2NMR_2"}, h.Models())
	assert.Equal(t, []string{"A"}, h.Chains("2nmr"))
	assert.Equal(t, []string{"A", "B"}, h.Chains("2NMR_2"))
	assert.Nil(t, h.Chains("missing"))

	assert.True(t, HasModel(h, "2nmr_2"))
	assert.False(t, HasModel(h, "3abc"))
	assert.True(t, HasChain(h, "b"))
	assert.False(t, HasChain(h, "Z"))
}

func TestNucleotideSelector(t *testing.T) {
	text := strings.Join([]string{
		atomLine("ATOM", 1, "P", ' ', "DA", 'C', "1", ' '),
		atomLine("ATOM", 2, "C1'", ' ', "DA", 'C', "1", ' '),
		atomLine("ATOM", 3, "C1'", ' ', "DG", 'C', "2", ' '),
		atomLine("HETATM", 4, "C1'", ' ', "PSU", 'C', "3", ' '),
		atomLine("ATOM", 5, "C1'", ' ', "U", 'D', "7", ' '),
		atomLine("ATOM", 6, "CA", ' ', "ALA", 'E', "1", ' '),
	}, "\n")

	e, err := ReadPDB("dna", strings.NewReader(text))
	require.NoError(t, err)
	h := NewHost(e)

	sel := SelectorFor(sequence.NucleicAcids)
	got := h.Residues(sel)
	require.Len(t, got, 3)
	assert.Equal(t, "DA", got[0].Code)
	assert.Equal(t, "DG", got[1].Code)
	assert.Equal(t, "U", got[2].Code)

	assert.Equal(t, AlphaCarbons, SelectorFor(sequence.AminoAcids))
	assert.Len(t, h.Residues(AlphaCarbons), 1)
}

func TestReadPDBErrors(t *testing.T) {
	_, err := ReadPDB("x", strings.NewReader("ATOM      1  CA  ALA\n"))
	assert.Error(t, err)

	_, err = ReadPDB("x", strings.NewReader("HEADER nothing here\nEND\n"))
	assert.Error(t, err)

	_, err = ReadPDB(" ", strings.NewReader(protein()))
	assert.Error(t, err)
}

func TestLoadPDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "4hhb.pdb")
	require.NoError(t, os.WriteFile(path, []byte(protein()), 0o644))

	e, err := LoadPDB(path)
	require.NoError(t, err)
	assert.Equal(t, "4HHB", e.Name)

	_, err = LoadPDB(filepath.Join(t.TempDir(), "missing.pdb"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

var _ Host = (*MemoryHost)(nil)

func TestCatalogStore(t *testing.T) {
	store := sequence.NewStore()
	cs, err := sequence.NumberedChainSequence("1abc", "h", "KTGT")
	require.NoError(t, err)
	store.Add(cs)

	assert.True(t, HasModel(store, "1ABC"))
	assert.True(t, HasChain(store, "H"))
	assert.False(t, HasChain(store, "L"))
}

var _ Catalog = (*sequence.Store)(nil)

func TestCheckNames(t *testing.T) {
	e, err := ReadPDB("1abc", strings.NewReader(protein()))
	require.NoError(t, err)
	h := NewHost(e)

	assert.Empty(t, CheckNames(h, []string{"1abc"}, []string{"a", "B"}))

	errs := CheckNames(h, []string{"1abc", "2xyz"}, []string{"Q"})
	require.Len(t, errs, 2)
	assert.EqualError(t, errs[0], "model 2xyz was not found")
	assert.EqualError(t, errs[1], "chain Q was not found")
}
