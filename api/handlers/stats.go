package handlers

import (
	"net/http"

	"github.com/aria-lang/subseq-go/internal/config"
	"github.com/aria-lang/subseq-go/internal/stats"
)

// StoreStatsHandler summarizes the chains of a request.
func StoreStatsHandler(defaults config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req StoreRequest
		if !decode(w, r, &req) {
			return
		}

		cfg := defaults
		req.apply(&cfg)
		if errs := cfg.Validate(); len(errs) > 0 {
			writeErrors(w, http.StatusBadRequest, errs)
			return
		}

		store, errs := req.store(cfg)
		if len(errs) > 0 {
			writeErrors(w, http.StatusBadRequest, errs)
			return
		}

		placeholder, _ := cfg.PlaceholderSymbol()
		st, err := stats.FromStore(store, placeholder)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}
