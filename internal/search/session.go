package search

import (
	"io"
	"log"

	"github.com/aria-lang/subseq-go/internal/selection"
	"github.com/aria-lang/subseq-go/internal/sequence"
)

// Outcome classifies the result of one target.
type Outcome int

const (
	// Found means at least one match was selected
	Found Outcome = iota
	// Empty means the search succeeded without matches
	Empty
	// Failed means the target could not be searched
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case Empty:
		return "empty"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is what happened to one target of a batch.
type Result struct {
	Target    string
	Outcome   Outcome
	Matches   []Match
	Selection string
	Err       error
}

// Summary collects the results of a batch in target order.
type Summary struct {
	Results []Result
	Errors  int
}

// Matches returns the matches of every target.
func (s Summary) Matches() []Match {
	var all []Match
	for _, r := range s.Results {
		all = append(all, r.Matches...)
	}
	return all
}

// Count returns how many targets ended with outcome o.
func (s Summary) Count(o Outcome) int {
	n := 0
	for _, r := range s.Results {
		if r.Outcome == o {
			n++
		}
	}
	return n
}

// Searcher runs batches of targets. It owns the selection namer, so
// selection ids are numbered per session.
type Searcher struct {
	logger *log.Logger
	namer  *selection.Namer

	// OnResult, when set, is called after every target.
	OnResult func(Result)
}

// NewSearcher creates a session. A nil logger discards messages.
func NewSearcher(logger *log.Logger, namer *selection.Namer) *Searcher {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if namer == nil {
		namer = selection.NewNamer("")
	}
	return &Searcher{logger: logger, namer: namer}
}

// Search runs every target sequentially. A failing target is logged and
// counted and the batch moves on. Every target with matches becomes one
// selection in sink; sink may be nil.
func (s *Searcher) Search(targets []string, store *sequence.Store, p Params, sink selection.Sink) Summary {
	var sum Summary
	for _, target := range targets {
		res := s.searchOne(target, store, p, sink)
		if res.Outcome == Failed {
			sum.Errors++
		}
		sum.Results = append(sum.Results, res)
		if s.OnResult != nil {
			s.OnResult(res)
		}
	}
	return sum
}

func (s *Searcher) searchOne(target string, store *sequence.Store, p Params, sink selection.Sink) Result {
	res := Result{Target: target}

	matches, err := Run(target, store, p)
	if err != nil {
		s.logger.Printf("ERROR: %s search for %s: %v", p.Method, target, err)
		res.Outcome, res.Err = Failed, err
		return res
	}
	if len(matches) == 0 {
		s.logger.Printf("INFO: Nothing can be found for given target: %s", target)
		res.Outcome = Empty
		return res
	}

	res.Outcome, res.Matches = Found, matches
	res.Selection = s.namer.Name(p.Method.String(), target)
	if sink == nil {
		return res
	}

	if err := applySelection(sink, res.Selection, matches); err != nil {
		s.logger.Printf("ERROR: selecting %s: %v", res.Selection, err)
		res.Outcome, res.Err = Failed, err
	}
	return res
}

// applySelection creates the named selection and adds every match to it.
func applySelection(sink selection.Sink, name string, matches []Match) error {
	if err := sink.CreateEmpty(name); err != nil {
		return err
	}
	for _, m := range matches {
		if err := sink.Extend(name, m.Model, m.Chain, m.IDs); err != nil {
			return err
		}
	}
	return nil
}
