package subseq

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pdbText = `HEADER    TEST
ATOM      1  CA  LYS A  10       1.000   2.000   3.000  1.00  0.00
ATOM      2  CA  THR A  11       1.000   2.000   3.000  1.00  0.00
ATOM      3  CA  GLY A  12       1.000   2.000   3.000  1.00  0.00
ATOM      4  CA  THR A  13       1.000   2.000   3.000  1.00  0.00
END
`

func TestParseTargets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "targets.txt")
	require.NoError(t, os.WriteFile(path, []byte("# motifs\nktgt\n\n  gg.a  \n#skip\n"), 0o644))

	targets, err := ParseTargets([]string{"av", path, " ", "w{2}"})
	require.NoError(t, err)
	assert.Equal(t, []string{"AV", "KTGT", "GG.A", "W{2}"}, targets)

	targets, err = ParseTargets([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, []string{strings.ToUpper(dir)}, targets)
}

func TestLoadHostAndSearch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "1abc.pdb")
	require.NoError(t, os.WriteFile(path, []byte(pdbText), 0o644))

	host, err := LoadHost(path)
	require.NoError(t, err)
	store := BuildStore(host, BuildOptions{Alphabet: AminoAcids})

	cs, ok := store.Get("1abc", "a")
	require.True(t, ok)
	assert.Equal(t, "KTGT", cs.Sequence)

	matches, err := Search("TGT", store, Params{Method: Regex})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "11", matches[0].Start())
	assert.Equal(t, "13", matches[0].End())

	st, err := StoreStatistics(store, 'X')
	require.NoError(t, err)
	assert.Equal(t, 4, st.TotalResidues)

	_, err = LoadHost(filepath.Join(t.TempDir(), "missing.pdb"))
	assert.Error(t, err)
}

func TestFASTARoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.fa")
	require.NoError(t, os.WriteFile(path, []byte(">1ABC:A\nKTGT\n>1ABC:B\nAV\n"), 0o644))

	store, err := ReadFASTA(path)
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())

	out := filepath.Join(t.TempDir(), "out.fa")
	require.NoError(t, WriteFASTA(out, store))

	again, err := ReadFASTA(out)
	require.NoError(t, err)
	cs, ok := again.Get("1ABC", "B")
	require.True(t, ok)
	assert.Equal(t, "AV", cs.Sequence)
}

func TestInfo(t *testing.T) {
	assert.Contains(t, Info(), Version())
}
