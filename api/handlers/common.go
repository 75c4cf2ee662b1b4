// Package handlers implements the HTTP handlers of the subseq API.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aria-lang/subseq-go/internal/config"
	"github.com/aria-lang/subseq-go/internal/sequence"
	"github.com/aria-lang/subseq-go/internal/structure"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 32 << 20

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error  string   `json:"error"`
	Errors []string `json:"errors,omitempty"`
}

// StoreRequest carries the chains to work on, either as residue records
// or as ready chain sequences. Chains without ids are numbered from 1.
type StoreRequest struct {
	Residues    []sequence.Residue      `json:"residues"`
	Chains      []sequence.ChainSequence `json:"chains"`
	Search      string                  `json:"search"`
	Placeholder string                  `json:"placeholder"`
	Models      []string                `json:"models"`
	ChainNames  []string                `json:"chain_names"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func writeErrors(w http.ResponseWriter, status int, errs []error) {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	writeJSON(w, status, ErrorResponse{
		Error:  fmt.Sprintf("%d errors were found, please see above messages", len(errs)),
		Errors: msgs,
	})
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

// apply overrides the store settings of cfg with those set in the request.
func (req *StoreRequest) apply(cfg *config.Config) {
	if req.Search != "" {
		cfg.Search = req.Search
	}
	if req.Placeholder != "" {
		cfg.Placeholder = req.Placeholder
	}
	if req.Models != nil {
		cfg.Models = req.Models
	}
	if req.ChainNames != nil {
		cfg.Chains = req.ChainNames
	}
}

// store builds the chain store the request describes. cfg must be valid.
func (req *StoreRequest) store(cfg config.Config) (*sequence.Store, []error) {
	if len(req.Residues) > 0 && len(req.Chains) > 0 {
		return nil, []error{fmt.Errorf("residues and chains cannot be combined")}
	}

	alphabet, _ := cfg.Alphabet()
	placeholder, _ := cfg.PlaceholderSymbol()

	full := sequence.NewStore()
	if len(req.Residues) > 0 {
		full = sequence.Build(req.Residues, sequence.BuildOptions{
			Alphabet:    alphabet,
			Placeholder: placeholder,
		})
	}
	var errs []error
	for _, c := range req.Chains {
		var cs *sequence.ChainSequence
		var err error
		if len(c.IDs) == 0 {
			cs, err = sequence.NumberedChainSequence(c.Model, c.Chain, c.Sequence)
		} else {
			cs, err = sequence.NewChainSequence(c.Model, c.Chain, c.Sequence, c.IDs)
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		full.Add(cs)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	if full.Len() == 0 {
		return nil, []error{fmt.Errorf("no residues or chains were given")}
	}

	if errs := structure.CheckNames(full, cfg.Models, cfg.Chains); len(errs) > 0 {
		return nil, errs
	}
	return full.Filter(cfg.Models, cfg.Chains), nil
}
