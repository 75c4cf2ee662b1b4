package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aria-lang/subseq-go/internal/config"
	"github.com/aria-lang/subseq-go/internal/sequence"
	"github.com/aria-lang/subseq-go/internal/stats"
)

func defaults(t *testing.T) config.Config {
	t.Helper()
	v := viper.New()
	config.SetDefaults(v)
	c, err := config.New(v)
	require.NoError(t, err)
	return c
}

func router(t *testing.T) http.Handler {
	r := chi.NewRouter()
	r.Post("/search/{method}", SearchHandler(defaults(t), nil))
	r.Post("/stats", StoreStatsHandler(defaults(t)))
	r.Get("/matrices", ListMatricesHandler)
	r.Get("/matrices/{name}", MatrixHandler)
	r.Get("/health", HealthHandler)
	return r
}

func do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	rec := httptest.NewRecorder()
	router(t).ServeHTTP(rec, httptest.NewRequest(method, path, &buf))
	return rec
}

func residues() []sequence.Residue {
	codes := []string{"LYS", "THR", "GLY", "THR", "ALA", "VAL"}
	out := make([]sequence.Residue, len(codes))
	for i, c := range codes {
		out[i] = sequence.Residue{Code: c, ID: []string{"10", "11", "12", "13", "14", "15"}[i], Chain: "A", Model: "1ABC"}
	}
	return append(out, sequence.Residue{Code: "TRP", ID: "1", Chain: "B", Model: "1ABC"})
}

func TestSearchRegex(t *testing.T) {
	rec := do(t, http.MethodPost, "/search/re", SearchRequest{
		StoreRequest: StoreRequest{Residues: residues()},
		Targets:      []string{"tgt", "KT(", "YYY"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SearchResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	assert.Equal(t, "re", resp.Method)
	assert.Equal(t, 1, resp.Errors)
	require.Len(t, resp.Results, 3)

	assert.Equal(t, "found", resp.Results[0].Outcome)
	assert.Equal(t, "ss-re-1-TGT", resp.Results[0].Selection)
	assert.Equal(t, []string{"11", "12", "13"}, resp.Results[0].Matches[0].IDs)
	assert.Equal(t, "failed", resp.Results[1].Outcome)
	assert.NotEmpty(t, resp.Results[1].Error)
	assert.Equal(t, "empty", resp.Results[2].Outcome)

	require.Len(t, resp.Selections, 1)
	assert.Equal(t, "ss-re-1-TGT", resp.Selections[0].Name)
	assert.Equal(t, "1ABC", resp.Selections[0].Entries[0].Model)
}

func TestSearchLocalWithChains(t *testing.T) {
	minScore := 0.0
	rec := do(t, http.MethodPost, "/search/local", SearchRequest{
		StoreRequest: StoreRequest{
			Chains: []sequence.ChainSequence{{Model: "m", Chain: "a", Sequence: "ACGAC"}},
			Search: "nucleicacids",
		},
		Targets:  []string{"AC"},
		Matrix:   "nucleicmatrix",
		MinScore: &minScore,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp SearchResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Results, 1)
	require.Len(t, resp.Results[0].Matches, 2)
	assert.Equal(t, []string{"1", "2"}, resp.Results[0].Matches[0].IDs)
	assert.Equal(t, []string{"4", "5"}, resp.Results[0].Matches[1].IDs)
}

func TestSearchMatrixText(t *testing.T) {
	rec := do(t, http.MethodPost, "/search/global", SearchRequest{
		StoreRequest: StoreRequest{Chains: []sequence.ChainSequence{{Model: "M", Chain: "A", Sequence: "AABB"}}},
		Targets:      []string{"BB"},
		MatrixText:   "  A B\nA 1 -1\nB -1 1\n",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp SearchResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, []string{"3", "4"}, resp.Results[0].Matches[0].IDs)
}

func TestSearchValidation(t *testing.T) {
	gap := -1.0
	tests := []struct {
		name   string
		path   string
		req    interface{}
		status int
		errors int
	}{
		{"unknown method", "/search/fuzzy", SearchRequest{}, http.StatusNotFound, 0},
		{"bad body", "/search/re", "not an object", http.StatusBadRequest, 0},
		{"every problem reported", "/search/local", SearchRequest{
			StoreRequest: StoreRequest{Search: "glycans"},
			GapCost:      &gap,
			Matrix:       "pam30",
		}, http.StatusBadRequest, 4},
		{"no chains", "/search/re", SearchRequest{Targets: []string{"A"}}, http.StatusBadRequest, 1},
		{"unknown chain", "/search/re", SearchRequest{
			StoreRequest: StoreRequest{Residues: residues(), ChainNames: []string{"Z"}},
			Targets:      []string{"A"},
		}, http.StatusBadRequest, 1},
		{"mismatched ids", "/search/re", SearchRequest{
			StoreRequest: StoreRequest{Chains: []sequence.ChainSequence{{Model: "M", Chain: "A", Sequence: "AC", IDs: []string{"1"}}}},
			Targets:      []string{"A"},
		}, http.StatusBadRequest, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, http.MethodPost, tt.path, tt.req)
			assert.Equal(t, tt.status, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.NotEmpty(t, resp.Error)
			assert.Len(t, resp.Errors, tt.errors)
		})
	}
}

func TestStoreStats(t *testing.T) {
	rec := do(t, http.MethodPost, "/stats", StoreRequest{Residues: residues()})
	require.Equal(t, http.StatusOK, rec.Code)

	var st stats.StoreStats
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&st))
	assert.Equal(t, 2, st.Chains)
	assert.Equal(t, 7, st.TotalResidues)
	assert.Equal(t, 6, st.MaxLength)

	rec = do(t, http.MethodPost, "/stats", StoreRequest{Residues: residues(), Models: []string{"9XYZ"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMatrices(t *testing.T) {
	rec := do(t, http.MethodGet, "/matrices", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "blosum62")

	rec = do(t, http.MethodGet, "/matrices/BLOSUM62", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var m MatrixResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&m))
	assert.Equal(t, "blosum62", m.Name)
	assert.Len(t, m.Symbols, 24)
	assert.Equal(t, 11.0, m.Rows["W"][17])

	rec = do(t, http.MethodGet, "/matrices/pam30", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	rec := do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}
