package sequence

import (
	"fmt"
	"strings"
)

// ChainSequence is the one-letter sequence of a single chain together with
// the identifier of the residue behind every symbol.
//
// len(Sequence) == len(IDs) always holds; IDs[k] names the residue whose
// symbol is Sequence[k]. Identifiers are kept verbatim: they need not be
// contiguous and may carry insertion codes.
type ChainSequence struct {
	Model    string   `json:"model" yaml:"model"`
	Chain    string   `json:"chain" yaml:"chain"`
	Sequence string   `json:"sequence" yaml:"sequence"`
	IDs      []string `json:"ids" yaml:"ids"`
}

// NewChainSequence validates and creates a chain sequence. Model and chain
// names are upper-cased.
func NewChainSequence(model, chain, seq string, ids []string) (*ChainSequence, error) {
	model, chain = normalizeKey(model), normalizeKey(chain)
	if len(seq) != len(ids) {
		return nil, &LengthMismatchError{Model: model, Chain: chain, Symbols: len(seq), IDs: len(ids)}
	}
	if len(seq) == 0 {
		return nil, &EmptySequenceError{Model: model, Chain: chain}
	}

	return &ChainSequence{
		Model:    model,
		Chain:    chain,
		Sequence: strings.ToUpper(seq),
		IDs:      append([]string(nil), ids...),
	}, nil
}

// NumberedChainSequence creates a chain sequence whose identifiers are the
// 1-based positions of its symbols.
func NumberedChainSequence(model, chain, seq string) (*ChainSequence, error) {
	ids := make([]string, len(seq))
	for i := range ids {
		ids[i] = fmt.Sprint(i + 1)
	}
	return NewChainSequence(model, chain, seq, ids)
}

// Len returns the number of residues.
func (c *ChainSequence) Len() int {
	return len(c.Sequence)
}

// At returns the symbol and residue id at index k.
func (c *ChainSequence) At(k int) (byte, string, bool) {
	if k < 0 || k >= len(c.Sequence) {
		return 0, "", false
	}
	return c.Sequence[k], c.IDs[k], true
}

// IDRange returns a copy of the identifiers for the half-open index range
// [start, end).
func (c *ChainSequence) IDRange(start, end int) ([]string, error) {
	if start < 0 {
		return nil, fmt.Errorf("start index must be non-negative")
	}
	if end <= start {
		return nil, fmt.Errorf("end must be greater than start")
	}
	if end > len(c.IDs) {
		return nil, fmt.Errorf("end %d exceeds chain length %d", end, len(c.IDs))
	}
	return append([]string(nil), c.IDs[start:end]...), nil
}

// Subsequence returns the chain restricted to [start, end), identifiers
// included.
func (c *ChainSequence) Subsequence(start, end int) (*ChainSequence, error) {
	ids, err := c.IDRange(start, end)
	if err != nil {
		return nil, err
	}
	return &ChainSequence{
		Model:    c.Model,
		Chain:    c.Chain,
		Sequence: c.Sequence[start:end],
		IDs:      ids,
	}, nil
}

// Count returns how many times sym occurs.
func (c *ChainSequence) Count(sym byte) int {
	return strings.Count(c.Sequence, string(sym))
}

// Composition counts every distinct symbol.
func (c *ChainSequence) Composition() map[byte]int {
	counts := make(map[byte]int)
	for i := 0; i < len(c.Sequence); i++ {
		counts[c.Sequence[i]]++
	}
	return counts
}

// Label returns "model/chain".
func (c *ChainSequence) Label() string {
	return c.Model + "/" + c.Chain
}

func (c *ChainSequence) String() string {
	return fmt.Sprintf("ChainSequence { %s, length: %d }", c.Label(), c.Len())
}

func normalizeKey(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
