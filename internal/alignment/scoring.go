// Package alignment provides substitution matrices and the pairwise alignment
// algorithms used to locate a target inside chain sequences.
//
// This package implements Smith-Waterman (local) and Needleman-Wunsch (global)
// alignment with a linear gap cost and a symbol-by-symbol substitution matrix.
package alignment

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// AlignDirection represents the traceback direction in the alignment matrix.
type AlignDirection int

const (
	// Stop represents the end of alignment (local only)
	Stop AlignDirection = iota
	// Diagonal represents a match or mismatch
	Diagonal
	// Up represents a gap in the subject
	Up
	// Left represents a gap in the target
	Left
)

// AlignmentType represents the type of alignment.
type AlignmentType int

const (
	// Local represents Smith-Waterman local alignment
	Local AlignmentType = iota
	// Global represents Needleman-Wunsch global alignment
	Global
)

func (t AlignmentType) String() string {
	switch t {
	case Local:
		return "local"
	case Global:
		return "global"
	default:
		return "unknown"
	}
}

// SubstitutionMatrix is a symbol by symbol score table.
//
// Rows are keyed by the first symbol of a pair and columns by the second.
// The table is usually square and symmetric but neither is required. Every
// pair queried during alignment must be present: a missing pair is an
// UnknownSymbolPairError, never a default score.
type SubstitutionMatrix struct {
	Name string

	columns []byte
	colIdx  map[byte]int
	rows    map[byte][]float64
	rowSyms []byte
}

// ParseMatrix reads a whitespace-delimited substitution matrix.
//
// The first line that is neither blank nor a '#' comment holds the column
// symbols. Every following line is a row symbol followed by exactly one score
// per column. On any format problem a MalformedMatrixError is returned and no
// matrix is produced.
func ParseMatrix(name string, r io.Reader) (*SubstitutionMatrix, error) {
	scanner := bufio.NewScanner(r)

	m := &SubstitutionMatrix{
		Name:   name,
		colIdx: make(map[byte]int),
		rows:   make(map[byte][]float64),
	}

	lineNum := 0
	haveHeader := false
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		fields := strings.Fields(line)
		if !haveHeader {
			for _, f := range fields {
				if len(f) != 1 {
					return nil, &MalformedMatrixError{Line: lineNum,
						Reason: fmt.Sprintf("column symbol %q is not a single character", f)}
				}
				if _, dup := m.colIdx[f[0]]; dup {
					return nil, &MalformedMatrixError{Line: lineNum,
						Reason: fmt.Sprintf("duplicate column symbol %q", f)}
				}
				m.colIdx[f[0]] = len(m.columns)
				m.columns = append(m.columns, f[0])
			}
			haveHeader = true
			continue
		}

		row, entries := fields[0], fields[1:]
		if len(row) != 1 {
			return nil, &MalformedMatrixError{Line: lineNum, Row: row,
				Reason: "row symbol is not a single character"}
		}
		if len(entries) != len(m.columns) {
			return nil, &MalformedMatrixError{Line: lineNum, Row: row,
				Reason: fmt.Sprintf("%d entries for %d columns", len(entries), len(m.columns))}
		}
		if _, dup := m.rows[row[0]]; dup {
			return nil, &MalformedMatrixError{Line: lineNum, Row: row, Reason: "duplicate row"}
		}

		scores := make([]float64, len(entries))
		for i, e := range entries {
			v, err := strconv.ParseFloat(e, 64)
			if err != nil {
				return nil, &MalformedMatrixError{Line: lineNum, Row: row,
					Reason: fmt.Sprintf("score %q is not a number", e)}
			}
			scores[i] = v
		}
		m.rows[row[0]] = scores
		m.rowSyms = append(m.rowSyms, row[0])
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading substitution matrix %q: %w", name, err)
	}
	if !haveHeader {
		return nil, &MalformedMatrixError{Reason: "missing column header"}
	}
	if len(m.rows) == 0 {
		return nil, &MalformedMatrixError{Reason: "no score rows"}
	}

	return m, nil
}

// LoadMatrix loads a substitution matrix from a file, falling back to the
// built-in matrices when pathOrName is not a readable file.
func LoadMatrix(pathOrName string) (*SubstitutionMatrix, error) {
	file, err := os.Open(pathOrName)
	if err != nil {
		if text, ok := builtinMatrices[canonicalMatrixName(pathOrName)]; ok {
			return ParseMatrix(canonicalMatrixName(pathOrName), strings.NewReader(text))
		}
		return nil, fmt.Errorf("loading substitution matrix: %w", err)
	}
	defer file.Close()

	return ParseMatrix(pathOrName, file)
}

// Score returns the score for aligning symbol a (target) against b (subject).
func (m *SubstitutionMatrix) Score(a, b byte) (float64, error) {
	row, ok := m.rows[a]
	if !ok {
		return 0, &UnknownSymbolPairError{Matrix: m.Name, A: a, B: b}
	}
	col, ok := m.colIdx[b]
	if !ok {
		return 0, &UnknownSymbolPairError{Matrix: m.Name, A: a, B: b}
	}
	return row[col], nil
}

// MaxPossibleScore is the score of the target aligned against itself.
func (m *SubstitutionMatrix) MaxPossibleScore(target string) (float64, error) {
	total := 0.0
	for i := 0; i < len(target); i++ {
		s, err := m.Score(target[i], target[i])
		if err != nil {
			return 0, err
		}
		total += s
	}
	return total, nil
}

// Symbols returns the column symbols in header order.
func (m *SubstitutionMatrix) Symbols() []string {
	syms := make([]string, len(m.columns))
	for i, c := range m.columns {
		syms[i] = string(c)
	}
	return syms
}

// Len returns the number of rows.
func (m *SubstitutionMatrix) Len() int {
	return len(m.rows)
}

// Rows returns the score rows in file order, keyed by row symbol.
func (m *SubstitutionMatrix) Rows() map[string][]float64 {
	out := make(map[string][]float64, len(m.rows))
	for _, r := range m.rowSyms {
		out[string(r)] = append([]float64(nil), m.rows[r]...)
	}
	return out
}

// String returns a string representation of the substitution matrix.
func (m *SubstitutionMatrix) String() string {
	return fmt.Sprintf("SubstitutionMatrix { name: %s, rows: %d, columns: %d }",
		m.Name, len(m.rows), len(m.columns))
}
