package sequence

import (
	"log"
	"strings"
)

// Store maps model names to chain names to chain sequences. Keys are
// upper-cased and iteration follows insertion order. Absent keys are not
// errors: Get reports false and Chains returns nothing.
type Store struct {
	models  []string
	chains  map[string][]string
	seqs    map[string]map[string]*ChainSequence
	dropped []Dropped
}

// Dropped records a chain, or a whole model when Chain is empty, that was
// omitted because it produced no residues.
type Dropped struct {
	Model string
	Chain string
}

func (d Dropped) String() string {
	if d.Chain == "" {
		return "model " + d.Model
	}
	return "chain " + d.Model + "/" + d.Chain
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		chains: make(map[string][]string),
		seqs:   make(map[string]map[string]*ChainSequence),
	}
}

// Add inserts or replaces a chain sequence.
func (s *Store) Add(cs *ChainSequence) {
	model, chain := normalizeKey(cs.Model), normalizeKey(cs.Chain)
	s.ensure(model, chain)
	s.seqs[model][chain] = cs
}

func (s *Store) ensure(model, chain string) *ChainSequence {
	byChain, ok := s.seqs[model]
	if !ok {
		byChain = make(map[string]*ChainSequence)
		s.seqs[model] = byChain
		s.models = append(s.models, model)
	}
	cs, ok := byChain[chain]
	if !ok {
		cs = &ChainSequence{Model: model, Chain: chain}
		byChain[chain] = cs
		s.chains[model] = append(s.chains[model], chain)
	}
	return cs
}

// Models returns the model names in insertion order.
func (s *Store) Models() []string {
	return append([]string(nil), s.models...)
}

// Chains returns the chain names of model in insertion order.
func (s *Store) Chains(model string) []string {
	return append([]string(nil), s.chains[normalizeKey(model)]...)
}

// Get looks up one chain.
func (s *Store) Get(model, chain string) (*ChainSequence, bool) {
	cs, ok := s.seqs[normalizeKey(model)][normalizeKey(chain)]
	return cs, ok
}

// Each walks every chain, models first, in insertion order. It stops early
// when fn returns false.
func (s *Store) Each(fn func(cs *ChainSequence) bool) {
	for _, model := range s.models {
		for _, chain := range s.chains[model] {
			if !fn(s.seqs[model][chain]) {
				return
			}
		}
	}
}

// Len returns the number of chains.
func (s *Store) Len() int {
	n := 0
	for _, model := range s.models {
		n += len(s.chains[model])
	}
	return n
}

// Dropped lists what Build omitted for being empty.
func (s *Store) Dropped() []Dropped {
	return append([]Dropped(nil), s.dropped...)
}

// BuildOptions controls Build.
type BuildOptions struct {
	Alphabet Alphabet
	// Models and Chains restrict the records used; empty means all.
	// Requested names are seeded in order, so a requested chain without
	// residues shows up in Dropped.
	Models []string
	Chains []string
	// Placeholder replaces untranslatable residue codes; zero means
	// DefaultPlaceholder.
	Placeholder byte
	// Logger receives a warning for every dropped chain or model.
	Logger *log.Logger
}

// Build groups residue records by model and chain in encounter order,
// translates their codes and appends symbol and id pairs. Chains without
// residues are dropped, then models without chains.
func Build(residues []Residue, opts BuildOptions) *Store {
	placeholder := opts.Placeholder
	if placeholder == 0 {
		placeholder = DefaultPlaceholder
	}
	models := keySet(opts.Models)
	chains := keySet(opts.Chains)

	s := NewStore()
	for _, m := range opts.Models {
		for _, c := range opts.Chains {
			s.ensure(normalizeKey(m), normalizeKey(c))
		}
	}

	builders := make(map[*ChainSequence]*strings.Builder)
	for _, r := range residues {
		model, chain := normalizeKey(r.Model), normalizeKey(r.Chain)
		if !allowed(models, model) || !allowed(chains, chain) {
			continue
		}

		cs := s.ensure(model, chain)
		b, ok := builders[cs]
		if !ok {
			b = &strings.Builder{}
			builders[cs] = b
		}
		b.WriteByte(Translate(r.Code, opts.Alphabet, placeholder))
		cs.IDs = append(cs.IDs, strings.TrimSpace(r.ID))
	}
	for cs, b := range builders {
		cs.Sequence = b.String()
	}

	s.prune(opts.Logger)
	return s
}

// prune removes empty chains, then models left without chains.
func (s *Store) prune(logger *log.Logger) {
	models := s.models[:0]
	for _, model := range s.models {
		kept := s.chains[model][:0]
		for _, chain := range s.chains[model] {
			if s.seqs[model][chain].Len() > 0 {
				kept = append(kept, chain)
				continue
			}
			delete(s.seqs[model], chain)
			s.drop(logger, Dropped{Model: model, Chain: chain})
		}

		if len(kept) == 0 {
			delete(s.chains, model)
			delete(s.seqs, model)
			s.drop(logger, Dropped{Model: model})
			continue
		}
		s.chains[model] = kept
		models = append(models, model)
	}
	s.models = models
}

func (s *Store) drop(logger *log.Logger, d Dropped) {
	s.dropped = append(s.dropped, d)
	if logger != nil {
		logger.Printf("WARNING: %s has no residues and was skipped", d)
	}
}

func keySet(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[normalizeKey(n)] = true
	}
	return set
}

func allowed(set map[string]bool, key string) bool {
	return set == nil || set[key]
}

// Filter returns a store holding only the chains allowed by the model and
// chain whitelists. Empty whitelists allow everything. Chain sequences are
// shared with s.
func (s *Store) Filter(models, chains []string) *Store {
	modelSet, chainSet := keySet(models), keySet(chains)
	out := NewStore()
	s.Each(func(cs *ChainSequence) bool {
		if allowed(modelSet, normalizeKey(cs.Model)) && allowed(chainSet, normalizeKey(cs.Chain)) {
			out.Add(cs)
		}
		return true
	})
	return out
}
