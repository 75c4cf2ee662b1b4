package structure

import (
	"fmt"
	"strings"

	"github.com/aria-lang/subseq-go/internal/sequence"
)

// Catalog lists models and their chains.
type Catalog interface {
	Models() []string
	Chains(model string) []string
}

// Host is the source of models, chains and residue records.
type Host interface {
	Catalog
	Residues(sel Selector) []sequence.Residue
}

// Selector picks the one atom that represents each residue.
type Selector struct {
	Name string
	// Atom is the representative atom name, compared case-insensitively.
	Atom string
	// ResNames restricts the residue names; empty means any.
	ResNames []string
}

var (
	// AlphaCarbons selects the CA atom of every residue.
	AlphaCarbons = Selector{Name: "name CA", Atom: "CA"}
	// NucleotideC1 selects the C1' sugar atom of standard nucleotides.
	NucleotideC1 = Selector{
		Name:     "resn G+C+A+T+U+DG+DC+DA+DT+DU and name C1'",
		Atom:     "C1'",
		ResNames: []string{"G", "C", "A", "T", "U", "DG", "DC", "DA", "DT", "DU"},
	}
)

// SelectorFor returns the selector matching an alphabet.
func SelectorFor(alphabet sequence.Alphabet) Selector {
	if alphabet == sequence.NucleicAcids {
		return NucleotideC1
	}
	return AlphaCarbons
}

// Matches reports whether atom is selected.
func (s Selector) Matches(a Atom) bool {
	if !strings.EqualFold(a.Name, s.Atom) {
		return false
	}
	if len(s.ResNames) == 0 {
		return true
	}
	for _, rn := range s.ResNames {
		if strings.EqualFold(a.ResName, rn) {
			return true
		}
	}
	return false
}

// MemoryHost serves parsed entries.
type MemoryHost struct {
	models []*Model
}

// NewHost creates a host holding every model of the given entries.
func NewHost(entries ...*Entry) *MemoryHost {
	h := &MemoryHost{}
	for _, e := range entries {
		h.models = append(h.models, e.Models...)
	}
	return h
}

// Models returns model names in load order.
func (h *MemoryHost) Models() []string {
	names := make([]string, len(h.models))
	for i, m := range h.models {
		names[i] = m.Name
	}
	return names
}

// Chains returns the chains of a model, or nil for an unknown model.
func (h *MemoryHost) Chains(model string) []string {
	if m := h.model(model); m != nil {
		return m.Chains()
	}
	return nil
}

func (h *MemoryHost) model(name string) *Model {
	for _, m := range h.models {
		if strings.EqualFold(m.Name, name) {
			return m
		}
	}
	return nil
}

// Residues returns one record per residue whose representative atom is
// selected. Alternate locations of the same atom are reported once.
func (h *MemoryHost) Residues(sel Selector) []sequence.Residue {
	var out []sequence.Residue
	for _, m := range h.models {
		seen := make(map[string]bool)
		for _, a := range m.Atoms {
			if !sel.Matches(a) {
				continue
			}
			key := a.Chain + "\x00" + a.ResID
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, sequence.Residue{Code: a.ResName, ID: a.ResID, Chain: a.Chain, Model: m.Name})
		}
	}
	return out
}

// HasModel reports whether the catalog knows model.
func HasModel(h Catalog, model string) bool {
	for _, m := range h.Models() {
		if strings.EqualFold(m, model) {
			return true
		}
	}
	return false
}

// HasChain reports whether any model of the catalog has chain.
func HasChain(h Catalog, chain string) bool {
	for _, m := range h.Models() {
		for _, c := range h.Chains(m) {
			if strings.EqualFold(c, chain) {
				return true
			}
		}
	}
	return false
}

// CheckNames reports every requested model and chain the catalog lacks.
func CheckNames(c Catalog, models, chains []string) []error {
	var errs []error
	for _, m := range models {
		if !HasModel(c, m) {
			errs = append(errs, fmt.Errorf("model %s was not found", m))
		}
	}
	for _, ch := range chains {
		if !HasChain(c, ch) {
			errs = append(errs, fmt.Errorf("chain %s was not found", ch))
		}
	}
	return errs
}
