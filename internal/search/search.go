// Package search runs one matching strategy over every chain of a sequence
// store and collects the residues it hits.
package search

import (
	"fmt"
	"strings"

	"github.com/aria-lang/subseq-go/internal/alignment"
	"github.com/aria-lang/subseq-go/internal/pattern"
	"github.com/aria-lang/subseq-go/internal/sequence"
)

// Method is a matching strategy.
type Method int

const (
	// Regex scans chains with a regular expression
	Regex Method = iota
	// Local uses Smith-Waterman local alignment
	Local
	// Global uses Needleman-Wunsch global alignment
	Global
)

func (m Method) String() string {
	switch m {
	case Regex:
		return "re"
	case Local:
		return "local"
	case Global:
		return "global"
	default:
		return "unknown"
	}
}

// ParseMethod parses a method name as printed by String.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "re", "regex":
		return Regex, nil
	case "local", "la":
		return Local, nil
	case "global", "ga":
		return Global, nil
	}
	return 0, fmt.Errorf("unknown search method %q", s)
}

// Match is a run of residues in one chain hit by a target. Regex matches
// hold one id per matched symbol, alignment matches one id per aligned
// subject residue.
type Match struct {
	Model string   `json:"model" yaml:"model"`
	Chain string   `json:"chain" yaml:"chain"`
	IDs   []string `json:"ids" yaml:"ids"`
	Score float64  `json:"score,omitempty" yaml:"score,omitempty"`
}

// Start returns the first residue id.
func (m Match) Start() string {
	if len(m.IDs) == 0 {
		return ""
	}
	return m.IDs[0]
}

// End returns the last residue id.
func (m Match) End() string {
	if len(m.IDs) == 0 {
		return ""
	}
	return m.IDs[len(m.IDs)-1]
}

// Reporter receives the report of every accepted alignment.
type Reporter func(r *alignment.Report)

// Params configures a search.
type Params struct {
	Method    Method
	Alphabet  sequence.Alphabet
	FirstOnly bool
	// GapCost is the linear gap penalty for alignments.
	GapCost float64
	// MinScore is the percentage of the target's self score a chain's best
	// local score must reach.
	MinScore float64
	Matrix   *alignment.SubstitutionMatrix
	Reporter Reporter
}

// Validate checks the parameters needed by the chosen method.
func (p Params) Validate() error {
	if p.Method == Regex {
		return nil
	}
	if p.Matrix == nil {
		return fmt.Errorf("%s search needs a substitution matrix", p.Method)
	}
	if p.GapCost < 0 {
		return fmt.Errorf("gap cost must be non-negative, got %g", p.GapCost)
	}
	if p.MinScore < 0 || p.MinScore > 100 {
		return fmt.Errorf("minimum score must be within [0, 100], got %g", p.MinScore)
	}
	return nil
}

// Run searches the store for one target. A nil slice with a nil error means
// nothing was found.
func Run(target string, store *sequence.Store, p Params) ([]Match, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	switch p.Method {
	case Regex:
		return runRegex(target, store, p)
	case Local:
		return runLocal(cleanTarget(target), store, p)
	case Global:
		return runGlobal(cleanTarget(target), store, p)
	}
	return nil, fmt.Errorf("unknown search method %d", p.Method)
}

func cleanTarget(target string) string {
	return strings.ToUpper(strings.TrimSpace(target))
}

func runRegex(target string, store *sequence.Store, p Params) ([]Match, error) {
	m, err := pattern.Compile(target, p.Alphabet)
	if err != nil {
		return nil, err
	}

	var matches []Match
	for _, h := range m.Search(store, p.FirstOnly) {
		matches = append(matches, Match{Model: h.Model, Chain: h.Chain, IDs: h.IDs})
	}
	return matches, nil
}

// localAligner is the part of alignment.LocalAligner used by runLocal.
type localAligner interface {
	BestScore() float64
	Coordinates() []alignment.Cell
	Traceback(c alignment.Cell) (*alignment.Alignment, error)
}

var newLocalAligner = func(target, subject string, gapCost float64, m *alignment.SubstitutionMatrix) (localAligner, error) {
	return alignment.NewLocalAligner(target, subject, gapCost, m)
}

// passesMinScore reports whether best reaches minScore percent of
// maxScore. A non-positive maxScore counts as 0%.
func passesMinScore(best, maxScore, minScore float64) bool {
	percent := 0.0
	if maxScore > 0 {
		percent = best / maxScore * 100
	}
	return percent >= minScore
}

func runLocal(target string, store *sequence.Store, p Params) ([]Match, error) {
	if target == "" {
		return nil, fmt.Errorf("target cannot be empty")
	}
	maxScore, err := p.Matrix.MaxPossibleScore(target)
	if err != nil {
		return nil, fmt.Errorf("scoring target %s: %w", target, err)
	}

	var (
		matches []Match
		runErr  error
	)
	store.Each(func(cs *sequence.ChainSequence) bool {
		aligner, err := newLocalAligner(target, cs.Sequence, p.GapCost, p.Matrix)
		if err != nil {
			runErr = fmt.Errorf("aligning against %s: %w", cs.Label(), err)
			return false
		}
		if !passesMinScore(aligner.BestScore(), maxScore, p.MinScore) {
			return true
		}

		for _, c := range aligner.Coordinates() {
			a, err := aligner.Traceback(c)
			if err != nil {
				runErr = fmt.Errorf("traceback in %s: %w", cs.Label(), err)
				return false
			}
			m, ok := matchOf(cs, a)
			if !ok {
				continue
			}
			matches = append(matches, m)
			p.report(target, cs, maxScore, a)
			if p.FirstOnly {
				return false
			}
		}
		return true
	})

	if runErr != nil {
		return nil, runErr
	}
	return matches, nil
}

func runGlobal(target string, store *sequence.Store, p Params) ([]Match, error) {
	if target == "" {
		return nil, fmt.Errorf("target cannot be empty")
	}
	maxScore, err := p.Matrix.MaxPossibleScore(target)
	if err != nil {
		return nil, fmt.Errorf("scoring target %s: %w", target, err)
	}

	var (
		matches []Match
		runErr  error
	)
	store.Each(func(cs *sequence.ChainSequence) bool {
		a, err := alignment.NeedlemanWunsch(target, cs.Sequence, p.GapCost, p.Matrix)
		if err != nil {
			runErr = fmt.Errorf("aligning against %s: %w", cs.Label(), err)
			return false
		}
		m, ok := matchOf(cs, a)
		if !ok {
			return true
		}
		matches = append(matches, m)
		p.report(target, cs, maxScore, a)
		return !p.FirstOnly
	})

	if runErr != nil {
		return nil, runErr
	}
	return matches, nil
}

// matchOf maps the subject side of an alignment onto chain residue ids.
func matchOf(cs *sequence.ChainSequence, a *alignment.Alignment) (Match, bool) {
	start, end := a.SubjectSpan()
	if end <= start {
		return Match{}, false
	}
	ids, err := cs.IDRange(start, end)
	if err != nil {
		return Match{}, false
	}
	return Match{Model: cs.Model, Chain: cs.Chain, IDs: ids, Score: a.Score}, true
}

func (p Params) report(target string, cs *sequence.ChainSequence, maxScore float64, a *alignment.Alignment) {
	if p.Reporter == nil {
		return
	}
	p.Reporter(&alignment.Report{
		Model:      cs.Model,
		Chain:      cs.Chain,
		Target:     target,
		Subject:    cs.Sequence,
		IDs:        cs.IDs,
		MatrixName: p.Matrix.Name,
		GapCost:    p.GapCost,
		MaxScore:   maxScore,
		Alignment:  a,
	})
}
