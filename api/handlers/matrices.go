package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aria-lang/subseq-go/internal/alignment"
)

// MatrixResponse represents a substitution matrix.
type MatrixResponse struct {
	Name    string               `json:"name"`
	Symbols []string             `json:"symbols"`
	Rows    map[string][]float64 `json:"rows"`
}

// ListMatricesHandler lists the built-in matrices.
func ListMatricesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"matrices": alignment.BuiltinNames()})
}

// MatrixHandler returns the built-in matrix named by the {name} URL
// parameter.
func MatrixHandler(w http.ResponseWriter, r *http.Request) {
	m, err := alignment.Builtin(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	writeJSON(w, http.StatusOK, MatrixResponse{
		Name:    m.Name,
		Symbols: m.Symbols(),
		Rows:    m.Rows(),
	})
}
