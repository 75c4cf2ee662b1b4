package stats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aria-lang/subseq-go/internal/sequence"
)

func storeOf(t *testing.T, seqs ...string) *sequence.Store {
	t.Helper()
	s := sequence.NewStore()
	for i, seq := range seqs {
		cs, err := sequence.NumberedChainSequence("M", string(rune('A'+i)), seq)
		require.NoError(t, err)
		s.Add(cs)
	}
	return s
}

func TestFromChain(t *testing.T) {
	cs, err := sequence.NumberedChainSequence("1abc", "a", "KTGTXAVX")
	require.NoError(t, err)

	stats := FromChain(cs, sequence.DefaultPlaceholder)

	assert.Equal(t, "1ABC", stats.Model)
	assert.Equal(t, 8, stats.Length)
	assert.Equal(t, 2, stats.Placeholders)
	assert.Equal(t, 2, stats.Composition["T"])
	assert.Equal(t, 1, stats.Composition["K"])
	assert.InDelta(t, 0.25, stats.PlaceholderRatio(), 0.0001)
	assert.Equal(t, []string{"T", "X", "A"}, stats.TopSymbols(3))
	assert.Len(t, stats.TopSymbols(100), 6)
}

func TestFromStore(t *testing.T) {
	stats, err := FromStore(storeOf(t, "ACGU", "ACGUACGU", "GGXX"), sequence.DefaultPlaceholder)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Models)
	assert.Equal(t, 3, stats.Chains)
	assert.Equal(t, 16, stats.TotalResidues)
	assert.Equal(t, 4, stats.MinLength)
	assert.Equal(t, 8, stats.MaxLength)
	assert.InDelta(t, 16.0/3.0, stats.MeanLength, 0.0001)
	assert.Equal(t, 4, stats.MedianLength)
	assert.Equal(t, 2, stats.TotalPlaceholders)
	assert.Len(t, stats.PerChain, 3)
	assert.Contains(t, stats.String(), "chains: 3")
}

func TestFromStoreEmpty(t *testing.T) {
	_, err := FromStore(sequence.NewStore(), sequence.DefaultPlaceholder)
	require.Error(t, err)
}

func TestN50(t *testing.T) {
	// Total = 300, half = 150, 100 + 80 >= 150.
	stats, err := FromStore(storeOf(t,
		strings.Repeat("A", 20),
		strings.Repeat("A", 100),
		strings.Repeat("A", 60),
		strings.Repeat("A", 80),
		strings.Repeat("A", 40),
	), 'X')
	require.NoError(t, err)

	assert.Equal(t, 80, stats.N50)
	assert.Equal(t, 60, stats.MedianLength)
}

func TestLengthHistogram(t *testing.T) {
	h, err := NewLengthHistogram(storeOf(t,
		strings.Repeat("A", 10),
		strings.Repeat("A", 12),
		strings.Repeat("A", 30),
	), 2)
	require.NoError(t, err)

	assert.Equal(t, 10, h.MinLength)
	assert.Equal(t, 30, h.MaxLength)
	assert.Equal(t, 10, h.BinWidth)
	assert.Equal(t, []int{2, 1}, h.Bins)
	assert.Contains(t, h.String(), "   10-   20: ## (2)")

	_, err = NewLengthHistogram(sequence.NewStore(), 2)
	assert.Error(t, err)
	_, err = NewLengthHistogram(storeOf(t, "A"), 0)
	assert.Error(t, err)
}

func BenchmarkFromStore(b *testing.B) {
	s := sequence.NewStore()
	for i := 0; i < 100; i++ {
		cs, err := sequence.NumberedChainSequence("M", string(rune('A'+i%26))+strings.Repeat("X", i/26), strings.Repeat("KTGTAV", 50))
		require.NoError(b, err)
		s.Add(cs)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = FromStore(s, 'X')
	}
}
