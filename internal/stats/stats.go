// Package stats summarizes chain sequences and sequence stores.
package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aria-lang/subseq-go/internal/sequence"
)

// ChainStats describes one chain.
type ChainStats struct {
	Model        string         `json:"model" yaml:"model"`
	Chain        string         `json:"chain" yaml:"chain"`
	Length       int            `json:"length" yaml:"length"`
	Placeholders int            `json:"placeholders" yaml:"placeholders"`
	Composition  map[string]int `json:"composition" yaml:"composition"`
}

// FromChain counts the symbols of a chain. placeholder is the symbol used
// for untranslatable residues.
func FromChain(cs *sequence.ChainSequence, placeholder byte) *ChainStats {
	comp := make(map[string]int)
	for sym, n := range cs.Composition() {
		comp[string(sym)] = n
	}

	return &ChainStats{
		Model:        cs.Model,
		Chain:        cs.Chain,
		Length:       cs.Len(),
		Placeholders: cs.Count(placeholder),
		Composition:  comp,
	}
}

// PlaceholderRatio returns the fraction of residues that could not be
// translated.
func (s *ChainStats) PlaceholderRatio() float64 {
	if s.Length == 0 {
		return 0.0
	}
	return float64(s.Placeholders) / float64(s.Length)
}

// TopSymbols returns the n most frequent symbols, most frequent first and
// alphabetically among equals.
func (s *ChainStats) TopSymbols(n int) []string {
	syms := make([]string, 0, len(s.Composition))
	for sym := range s.Composition {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		ci, cj := s.Composition[syms[i]], s.Composition[syms[j]]
		if ci != cj {
			return ci > cj
		}
		return syms[i] < syms[j]
	})
	if n < len(syms) {
		syms = syms[:n]
	}
	return syms
}

func (s *ChainStats) String() string {
	return fmt.Sprintf("ChainStats { %s/%s, length: %d, placeholders: %d (%.1f%%) }",
		s.Model, s.Chain, s.Length, s.Placeholders, s.PlaceholderRatio()*100)
}

// StoreStats aggregates every chain of a store.
type StoreStats struct {
	Models            int           `json:"models" yaml:"models"`
	Chains            int           `json:"chains" yaml:"chains"`
	TotalResidues     int           `json:"total_residues" yaml:"total_residues"`
	MinLength         int           `json:"min_length" yaml:"min_length"`
	MaxLength         int           `json:"max_length" yaml:"max_length"`
	MeanLength        float64       `json:"mean_length" yaml:"mean_length"`
	MedianLength      int           `json:"median_length" yaml:"median_length"`
	N50               int           `json:"n50" yaml:"n50"`
	TotalPlaceholders int           `json:"total_placeholders" yaml:"total_placeholders"`
	PerChain          []*ChainStats `json:"per_chain" yaml:"per_chain"`
}

// FromStore calculates statistics for every chain of the store.
func FromStore(store *sequence.Store, placeholder byte) (*StoreStats, error) {
	var perChain []*ChainStats
	store.Each(func(cs *sequence.ChainSequence) bool {
		perChain = append(perChain, FromChain(cs, placeholder))
		return true
	})
	if len(perChain) == 0 {
		return nil, fmt.Errorf("sequence store is empty")
	}

	count := len(perChain)
	lengths := make([]int, count)
	total, placeholders := 0, 0
	for i, c := range perChain {
		lengths[i] = c.Length
		total += c.Length
		placeholders += c.Placeholders
	}

	sorted := make([]int, count)
	copy(sorted, lengths)
	sort.Ints(sorted)

	mid := count / 2
	median := sorted[mid]
	if count%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	}

	return &StoreStats{
		Models:            len(store.Models()),
		Chains:            count,
		TotalResidues:     total,
		MinLength:         sorted[0],
		MaxLength:         sorted[count-1],
		MeanLength:        float64(total) / float64(count),
		MedianLength:      median,
		N50:               n50(sorted, total),
		TotalPlaceholders: placeholders,
		PerChain:          perChain,
	}, nil
}

// n50 is the length at which chains of that length or longer hold at least
// half of all residues. sorted must be ascending.
func n50(sorted []int, total int) int {
	half := total / 2
	running := 0
	for i := len(sorted) - 1; i >= 0; i-- {
		running += sorted[i]
		if running >= half {
			return sorted[i]
		}
	}
	return sorted[len(sorted)-1]
}

func (s *StoreStats) String() string {
	return fmt.Sprintf(`StoreStats {
  models: %d
  chains: %d
  total residues: %d
  length range: %d - %d
  mean length: %.1f
  median length: %d
  N50: %d
  placeholders: %d
}`, s.Models, s.Chains, s.TotalResidues, s.MinLength, s.MaxLength,
		s.MeanLength, s.MedianLength, s.N50, s.TotalPlaceholders)
}

// LengthHistogram is a histogram of chain lengths.
type LengthHistogram struct {
	Bins      []int
	MinLength int
	MaxLength int
	BinWidth  int
	NumBins   int
}

// NewLengthHistogram bins the chain lengths of a store.
func NewLengthHistogram(store *sequence.Store, numBins int) (*LengthHistogram, error) {
	if numBins <= 0 {
		return nil, fmt.Errorf("numBins must be positive")
	}

	var lengths []int
	store.Each(func(cs *sequence.ChainSequence) bool {
		lengths = append(lengths, cs.Len())
		return true
	})
	if len(lengths) == 0 {
		return nil, fmt.Errorf("sequence store is empty")
	}

	minLen, maxLen := lengths[0], lengths[0]
	for _, l := range lengths {
		minLen = min(minLen, l)
		maxLen = max(maxLen, l)
	}

	binWidth := max((maxLen-minLen)/numBins, 1)
	bins := make([]int, numBins)
	for _, l := range lengths {
		bins[min((l-minLen)/binWidth, numBins-1)]++
	}

	return &LengthHistogram{
		Bins:      bins,
		MinLength: minLen,
		MaxLength: maxLen,
		BinWidth:  binWidth,
		NumBins:   numBins,
	}, nil
}

func (h *LengthHistogram) String() string {
	var b strings.Builder
	b.WriteString("Length Histogram:\n")
	for i := 0; i < h.NumBins; i++ {
		start := h.MinLength + i*h.BinWidth
		fmt.Fprintf(&b, "%5d-%5d: %s (%d)\n", start, start+h.BinWidth, strings.Repeat("#", h.Bins[i]), h.Bins[i])
	}
	return b.String()
}
