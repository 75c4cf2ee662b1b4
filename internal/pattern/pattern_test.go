package pattern

import (
	"regexp/syntax"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aria-lang/subseq-go/internal/sequence"
)

func chain(t *testing.T, model, name, seq string, ids ...string) *sequence.ChainSequence {
	t.Helper()
	var (
		cs  *sequence.ChainSequence
		err error
	)
	if ids == nil {
		cs, err = sequence.NumberedChainSequence(model, name, seq)
	} else {
		cs, err = sequence.NewChainSequence(model, name, seq, ids)
	}
	require.NoError(t, err)
	return cs
}

func storeOf(chains ...*sequence.ChainSequence) *sequence.Store {
	s := sequence.NewStore()
	for _, cs := range chains {
		s.Add(cs)
	}
	return s
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "KTG", "KTG"},
		{"lower case", "ktg", "KTG"},
		{"quoted", `"KTG"`, "KTG"},
		{"single quoted group", "'(GT{3,}A{,4})'", "GT{3,}A{0,4}"},
		{"two groups kept", "(A)(B)", "(A)(B)"},
		{"unbalanced kept", "(A", "(A"},
		{"escapes kept", `a\d\w`, `A\d\w`},
		{"whitespace", "  kt  ", "KT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestExpandNucleic(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no codes", "ACGTU", "ACGTU"},
		{"two-fold codes", "RYSWKM", "[AG][CT][GC][AT][GT][AC]"},
		{"three-fold codes", "BDH", "[CGT][AGT][ACT]"},
		{"any base", "AN{2}", "A.{2}"},
		{"inside class", "[RN]", "[AGACGTU]"},
		{"negated class", "[^Y]C", "[^CT]C"},
		{"escaped", `\D\S`, `\D\S`},
		{"lower case", "ry", "[AG][CT]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandNucleic(tt.in))
		})
	}
}

func TestSearchNonOverlapping(t *testing.T) {
	m, err := Compile("AB", sequence.AminoAcids)
	require.NoError(t, err)

	hits := m.Search(storeOf(chain(t, "M", "A", "ABAB")), false)
	require.Len(t, hits, 2)
	assert.Equal(t, 0, hits[0].Start)
	assert.Equal(t, 2, hits[1].Start)
	assert.Equal(t, []string{"1", "2"}, hits[0].IDs)
	assert.Equal(t, []string{"3", "4"}, hits[1].IDs)
}

func TestSearchMapsIDs(t *testing.T) {
	cs := chain(t, "M", "A", "KTGTAVU", "10", "11", "12", "13", "14", "15", "16")

	m, err := Compile("tgt", sequence.AminoAcids)
	require.NoError(t, err)

	hits := m.Search(storeOf(cs), false)
	require.Len(t, hits, 1)
	assert.Equal(t, Hit{Model: "M", Chain: "A", Start: 1, End: 4, IDs: []string{"11", "12", "13"}}, hits[0])
}

func TestSearchQuantifiers(t *testing.T) {
	cs := chain(t, "M", "A", "GTTTAAG")

	m, err := Compile("(GT{2,}A{,1})", sequence.AminoAcids)
	require.NoError(t, err)

	hits := m.Search(storeOf(cs), false)
	require.Len(t, hits, 1)
	assert.Equal(t, 0, hits[0].Start)
	assert.Equal(t, 5, hits[0].End)
}

func TestSearchNucleicExpansion(t *testing.T) {
	cs := chain(t, "DNA", "B", "GAUCGGT")

	m, err := Compile("GRN", sequence.NucleicAcids)
	require.NoError(t, err)
	assert.Equal(t, "(?i)G[AG].", m.Expr())

	hits := m.Search(storeOf(cs), false)
	require.Len(t, hits, 2)
	assert.Equal(t, []string{"1", "2", "3"}, hits[0].IDs)
	assert.Equal(t, []string{"5", "6", "7"}, hits[1].IDs)

	// R is an ordinary symbol for proteins.
	m, err = Compile("GRN", sequence.AminoAcids)
	require.NoError(t, err)
	assert.Nil(t, m.Search(storeOf(cs), false))
}

func TestSearchFirstOnly(t *testing.T) {
	store := storeOf(
		chain(t, "M1", "A", "QQQ"),
		chain(t, "M1", "B", "KAKAK"),
		chain(t, "M1", "C", "KA"),
		chain(t, "M2", "A", "KA"),
	)

	m, err := Compile("KA", sequence.AminoAcids)
	require.NoError(t, err)

	all := m.Search(store, false)
	assert.Len(t, all, 4)

	first := m.Search(store, true)
	require.Len(t, first, 1)
	assert.Equal(t, "B", first[0].Chain)
	assert.Equal(t, 0, first[0].Start)
}

func TestSearchSkipsEmptyMatches(t *testing.T) {
	m, err := Compile("X*", sequence.AminoAcids)
	require.NoError(t, err)

	hits := m.Search(storeOf(chain(t, "M", "A", "ABXX")), true)
	require.Len(t, hits, 1)
	assert.Equal(t, 2, hits[0].Start)
	assert.Equal(t, 4, hits[0].End)
}

func TestSearchNoMatch(t *testing.T) {
	m, err := Compile("WWW", sequence.AminoAcids)
	require.NoError(t, err)

	assert.Nil(t, m.Search(storeOf(chain(t, "M", "A", "KTGTA")), false))
	assert.Nil(t, m.Search(sequence.NewStore(), false))
}

func TestCompileSyntaxError(t *testing.T) {
	tests := []string{"KT(G", "[AB", "A{2,1}", "*A"}

	for _, target := range tests {
		t.Run(target, func(t *testing.T) {
			m, err := Compile(target, sequence.AminoAcids)
			require.Error(t, err)
			assert.Nil(t, m)
			assert.ErrorIs(t, err, ErrPatternSyntax)

			var perr *PatternSyntaxError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, target, perr.Target)

			var serr *syntax.Error
			assert.ErrorAs(t, err, &serr)
		})
	}
}
