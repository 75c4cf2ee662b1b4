package alignment

import (
	"fmt"
)

// GlobalAligner holds a filled Needleman-Wunsch score matrix.
//
// Row 0 and column 0 hold -gapCost*k and scores are not floored, so the
// whole target is aligned against the whole subject.
type GlobalAligner struct {
	target  string
	subject string
	gapCost float64
	matrix  *SubstitutionMatrix

	H [][]float64
}

// NewGlobalAligner fills the global alignment score matrix.
func NewGlobalAligner(target, subject string, gapCost float64, matrix *SubstitutionMatrix) (*GlobalAligner, error) {
	if matrix == nil {
		return nil, fmt.Errorf("substitution matrix is required")
	}
	if len(target) == 0 || len(subject) == 0 {
		return nil, fmt.Errorf("sequences must be non-empty")
	}

	g := &GlobalAligner{
		target:  target,
		subject: subject,
		gapCost: gapCost,
		matrix:  matrix,
		H:       newScoreMatrix(len(target), len(subject)),
	}
	g.initBoundary()
	if err := g.fill(); err != nil {
		return nil, err
	}
	return g, nil
}

// initBoundary sets the gap penalties along row 0 and column 0.
func (g *GlobalAligner) initBoundary() {
	for i := 0; i <= len(g.target); i++ {
		g.H[i][0] = -g.gapCost * float64(i)
	}
	for j := 0; j <= len(g.subject); j++ {
		g.H[0][j] = -g.gapCost * float64(j)
	}
}

func (g *GlobalAligner) fill() error {
	H := g.H
	for i := 1; i <= len(g.target); i++ {
		for j := 1; j <= len(g.subject); j++ {
			similarity, err := g.matrix.Score(g.target[i-1], g.subject[j-1])
			if err != nil {
				return err
			}

			diag := H[i-1][j-1] + similarity
			up := H[i-1][j] - g.gapCost
			left := H[i][j-1] - g.gapCost

			H[i][j] = max(diag, up, left)
		}
	}
	return nil
}

// Score returns the bottom-right cell, the global alignment score.
func (g *GlobalAligner) Score() float64 {
	return g.H[len(g.target)][len(g.subject)]
}

// Matrix returns the filled score matrix. Callers must not modify it.
func (g *GlobalAligner) Matrix() [][]float64 {
	return g.H
}

// Traceback reconstructs the optimal alignment from the bottom-right corner
// to the origin with the diagonal > up > left preference.
//
// Columns where the target has run out (trailing target gaps) are removed,
// as are the leading columns where the target has not started yet: subject
// residues hanging off either end of the target are not part of the match.
// The reported score is the corner cell computed before trimming.
func (g *GlobalAligner) Traceback() (*Alignment, error) {
	aligned1, aligned2, err := g.tracebackGlobal()
	if err != nil {
		return nil, err
	}

	end := len(aligned1)
	for end > 0 && aligned1[end-1] == Gap {
		end--
	}
	start := 0
	for start < end && aligned1[start] == Gap {
		start++
	}

	// Subject residues skipped by the leading trim shift the subject start.
	subjectStart := 1
	for k := 0; k < start; k++ {
		if aligned2[k] != Gap {
			subjectStart++
		}
	}

	return NewAlignment(aligned1[start:end], aligned2[start:end], g.Score(), 1, subjectStart, Global)
}

// tracebackGlobal walks the full path back to (0, 0).
func (g *GlobalAligner) tracebackGlobal() (string, string, error) {
	H := g.H
	aligned1 := make([]byte, 0, len(g.target)+len(g.subject))
	aligned2 := make([]byte, 0, len(g.target)+len(g.subject))
	i, j := len(g.target), len(g.subject)

	for i > 0 || j > 0 {
		if i == 0 {
			aligned1 = append(aligned1, Gap)
			aligned2 = append(aligned2, g.subject[j-1])
			j--
			continue
		}
		if j == 0 {
			aligned1 = append(aligned1, g.target[i-1])
			aligned2 = append(aligned2, Gap)
			i--
			continue
		}

		similarity, err := g.matrix.Score(g.target[i-1], g.subject[j-1])
		if err != nil {
			return "", "", err
		}

		switch achieved := H[i][j]; {
		case achieved == H[i-1][j-1]+similarity:
			aligned1 = append(aligned1, g.target[i-1])
			aligned2 = append(aligned2, g.subject[j-1])
			i--
			j--
		case achieved == H[i-1][j]-g.gapCost:
			aligned1 = append(aligned1, g.target[i-1])
			aligned2 = append(aligned2, Gap)
			i--
		case achieved == H[i][j-1]-g.gapCost:
			aligned1 = append(aligned1, Gap)
			aligned2 = append(aligned2, g.subject[j-1])
			j--
		default:
			return "", "", fmt.Errorf("no traceback move reproduces score %g at (%d, %d)", achieved, i, j)
		}
	}

	return reverseBytes(aligned1), reverseBytes(aligned2), nil
}

// NeedlemanWunsch performs global alignment of target against subject.
func NeedlemanWunsch(target, subject string, gapCost float64, matrix *SubstitutionMatrix) (*Alignment, error) {
	aligner, err := NewGlobalAligner(target, subject, gapCost, matrix)
	if err != nil {
		return nil, err
	}
	return aligner.Traceback()
}

// GlobalAlignmentScoreOnly calculates the global alignment score without
// traceback.
func GlobalAlignmentScoreOnly(target, subject string, gapCost float64, matrix *SubstitutionMatrix) (float64, error) {
	if matrix == nil {
		return 0, fmt.Errorf("substitution matrix is required")
	}
	if len(target) == 0 || len(subject) == 0 {
		return 0, fmt.Errorf("sequences must be non-empty")
	}

	n := len(subject)
	prevRow := make([]float64, n+1)
	currRow := make([]float64, n+1)

	for j := 0; j <= n; j++ {
		prevRow[j] = -gapCost * float64(j)
	}

	for i := 1; i <= len(target); i++ {
		currRow[0] = -gapCost * float64(i)

		for j := 1; j <= n; j++ {
			similarity, err := matrix.Score(target[i-1], subject[j-1])
			if err != nil {
				return 0, err
			}

			currRow[j] = max(prevRow[j-1]+similarity, prevRow[j]-gapCost, currRow[j-1]-gapCost)
		}

		prevRow, currRow = currRow, prevRow
	}

	return prevRow[n], nil
}
