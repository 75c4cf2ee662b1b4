package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aria-lang/subseq-go/internal/alignment"
	"github.com/aria-lang/subseq-go/internal/config"
	"github.com/aria-lang/subseq-go/internal/search"
	"github.com/aria-lang/subseq-go/internal/selection"
)

// SearchRequest represents a batch search request.
type SearchRequest struct {
	StoreRequest
	Targets   []string `json:"targets"`
	GapCost   *float64 `json:"gapcost"`
	MinScore  *float64 `json:"minscore"`
	FirstOnly *bool    `json:"firstonly"`
	Template  string   `json:"template"`
	// Matrix names a built-in matrix, MatrixText holds a matrix in the
	// file format. Matrix files are never read on behalf of a request.
	Matrix     string `json:"matrix"`
	MatrixText string `json:"matrix_text"`
}

// TargetResult is the outcome of one target.
type TargetResult struct {
	Target    string         `json:"target"`
	Outcome   string         `json:"outcome"`
	Selection string         `json:"selection,omitempty"`
	Matches   []search.Match `json:"matches,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// SearchResponse represents the response of a batch search.
type SearchResponse struct {
	Method     string                `json:"method"`
	Results    []TargetResult        `json:"results"`
	Errors     int                   `json:"errors"`
	Selections []selection.Selection `json:"selections"`
}

// SearchHandler runs a batch of targets with the method named by the
// {method} URL parameter. defaults supplies every setting the request
// leaves out.
func SearchHandler(defaults config.Config, logger *log.Logger) http.HandlerFunc {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		method, err := search.ParseMethod(chi.URLParam(r, "method"))
		if err != nil {
			writeError(w, http.StatusNotFound, err)
			return
		}

		var req SearchRequest
		if !decode(w, r, &req) {
			return
		}

		cfg := defaults
		req.apply(&cfg)

		errs := cfg.Validate()
		targets := cleanTargets(req.Targets)
		if len(targets) == 0 {
			errs = append(errs, fmt.Errorf("no targets were given"))
		}
		matrix, err := req.matrix(method, cfg)
		if err != nil {
			errs = append(errs, err)
		}
		if len(errs) > 0 {
			writeErrors(w, http.StatusBadRequest, errs)
			return
		}

		store, errs := req.store(cfg)
		if len(errs) > 0 {
			writeErrors(w, http.StatusBadRequest, errs)
			return
		}

		alphabet, _ := cfg.Alphabet()
		params := search.Params{
			Method:    method,
			Alphabet:  alphabet,
			FirstOnly: cfg.FirstOnly,
			GapCost:   cfg.GapCost,
			MinScore:  cfg.MinScore,
			Matrix:    matrix,
		}

		rec := selection.NewRecorder()
		sum := search.NewSearcher(logger, selection.NewNamer(cfg.Template)).
			Search(targets, store, params, rec)

		resp := SearchResponse{
			Method:     method.String(),
			Results:    make([]TargetResult, 0, len(sum.Results)),
			Errors:     sum.Errors,
			Selections: rec.Selections(),
		}
		for _, res := range sum.Results {
			tr := TargetResult{
				Target:    res.Target,
				Outcome:   res.Outcome.String(),
				Selection: res.Selection,
				Matches:   res.Matches,
			}
			if res.Err != nil {
				tr.Error = res.Err.Error()
			}
			resp.Results = append(resp.Results, tr)
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// apply overrides cfg with the search settings set in the request.
func (req *SearchRequest) apply(cfg *config.Config) {
	req.StoreRequest.apply(cfg)
	if req.GapCost != nil {
		cfg.GapCost = *req.GapCost
	}
	if req.MinScore != nil {
		cfg.MinScore = *req.MinScore
	}
	if req.FirstOnly != nil {
		cfg.FirstOnly = *req.FirstOnly
	}
	if req.Template != "" {
		cfg.Template = req.Template
	}
	if req.Matrix != "" {
		cfg.Matrix = req.Matrix
	}
}

// matrix resolves the substitution matrix of an alignment search.
func (req *SearchRequest) matrix(method search.Method, cfg config.Config) (*alignment.SubstitutionMatrix, error) {
	if method == search.Regex {
		return nil, nil
	}
	if req.MatrixText != "" {
		return alignment.ParseMatrix("request", strings.NewReader(req.MatrixText))
	}
	return alignment.Builtin(cfg.Matrix)
}

func cleanTargets(targets []string) []string {
	out := make([]string, 0, len(targets))
	for _, t := range targets {
		if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}
	return out
}
