package alignment

import (
	"fmt"
)

// LocalAligner holds a filled Smith-Waterman score matrix for one target and
// one subject sequence.
//
// Every cell is floored at zero, so no negative score propagates. All cells
// reaching the best score are kept; ties are not broken.
type LocalAligner struct {
	target  string
	subject string
	gapCost float64
	matrix  *SubstitutionMatrix

	H      [][]float64
	best   float64
	coords []Cell
}

// NewLocalAligner fills the local alignment score matrix.
//
// A symbol pair missing from the substitution matrix aborts the fill with an
// UnknownSymbolPairError; a partially filled matrix is never returned.
func NewLocalAligner(target, subject string, gapCost float64, matrix *SubstitutionMatrix) (*LocalAligner, error) {
	if matrix == nil {
		return nil, fmt.Errorf("substitution matrix is required")
	}
	if len(target) == 0 || len(subject) == 0 {
		return nil, fmt.Errorf("sequences must be non-empty")
	}

	a := &LocalAligner{
		target:  target,
		subject: subject,
		gapCost: gapCost,
		matrix:  matrix,
		H:       newScoreMatrix(len(target), len(subject)),
	}
	if err := a.fill(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *LocalAligner) fill() error {
	m, n := len(a.target), len(a.subject)
	H := a.H

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			similarity, err := a.matrix.Score(a.target[i-1], a.subject[j-1])
			if err != nil {
				return err
			}

			diag := H[i-1][j-1] + similarity
			up := H[i-1][j] - a.gapCost
			left := H[i][j-1] - a.gapCost

			score := max(0, diag, up, left)
			H[i][j] = score

			switch {
			case score > a.best:
				a.best = score
				a.coords = append(a.coords[:0], Cell{I: i, J: j})
			case score == a.best && score > 0:
				a.coords = append(a.coords, Cell{I: i, J: j})
			}
		}
	}
	return nil
}

// BestScore returns the highest cell value.
func (a *LocalAligner) BestScore() float64 {
	return a.best
}

// Coordinates returns every cell holding the best score, in row-major order.
// It is empty when the best score is zero.
func (a *LocalAligner) Coordinates() []Cell {
	out := make([]Cell, len(a.coords))
	copy(out, a.coords)
	return out
}

// Matrix returns the filled score matrix. Callers must not modify it.
func (a *LocalAligner) Matrix() [][]float64 {
	return a.H
}

// Traceback reconstructs the alignment ending at cell c.
//
// At each step the predecessor that reproduces the current score is taken,
// preferring diagonal, then up, then left. The walk stops when that
// predecessor holds zero; the final diagonal pair is part of the alignment.
func (a *LocalAligner) Traceback(c Cell) (*Alignment, error) {
	m, n := len(a.target), len(a.subject)
	if c.I < 1 || c.I > m || c.J < 1 || c.J > n {
		return nil, fmt.Errorf("traceback cell (%d, %d) outside %dx%d matrix", c.I, c.J, m, n)
	}
	if a.H[c.I][c.J] <= 0 {
		return nil, fmt.Errorf("traceback cell (%d, %d) has no positive score", c.I, c.J)
	}

	aligned1 := make([]byte, 0, m+n)
	aligned2 := make([]byte, 0, m+n)
	i, j := c.I, c.J

	for {
		move, err := a.nextMove(i, j)
		if err != nil {
			return nil, err
		}
		if move == Stop {
			break
		}

		switch move {
		case Diagonal:
			aligned1 = append(aligned1, a.target[i-1])
			aligned2 = append(aligned2, a.subject[j-1])
			i--
			j--
		case Up:
			aligned1 = append(aligned1, a.target[i-1])
			aligned2 = append(aligned2, Gap)
			i--
		case Left:
			aligned1 = append(aligned1, Gap)
			aligned2 = append(aligned2, a.subject[j-1])
			j--
		}
	}

	aligned1 = append(aligned1, a.target[i-1])
	aligned2 = append(aligned2, a.subject[j-1])

	return NewAlignment(reverseBytes(aligned1), reverseBytes(aligned2), a.H[c.I][c.J], i, j, Local)
}

// nextMove picks the traceback step out of cell (i, j).
func (a *LocalAligner) nextMove(i, j int) (AlignDirection, error) {
	H := a.H
	achieved := H[i][j]
	diag := H[i-1][j-1]
	up := H[i-1][j]
	left := H[i][j-1]

	similarity, err := a.matrix.Score(a.target[i-1], a.subject[j-1])
	if err != nil {
		return Stop, err
	}

	switch {
	case achieved == diag+similarity:
		if diag > 0 {
			return Diagonal, nil
		}
		return Stop, nil
	case achieved == up-a.gapCost:
		if up > 0 {
			return Up, nil
		}
		return Stop, nil
	case achieved == left-a.gapCost:
		if left > 0 {
			return Left, nil
		}
		return Stop, nil
	}
	return Stop, fmt.Errorf("no traceback move reproduces score %g at (%d, %d)", achieved, i, j)
}

// SmithWaterman returns the first optimal local alignment of target against
// subject, or nil when no positive-scoring alignment exists.
func SmithWaterman(target, subject string, gapCost float64, matrix *SubstitutionMatrix) (*Alignment, error) {
	aligner, err := NewLocalAligner(target, subject, gapCost, matrix)
	if err != nil {
		return nil, err
	}

	coords := aligner.Coordinates()
	if len(coords) == 0 {
		return nil, nil
	}
	return aligner.Traceback(coords[0])
}

// AlignmentScoreOnly calculates the best local score without keeping the
// full matrix.
//
// Uses O(n) space instead of O(m*n) by only keeping two rows.
func AlignmentScoreOnly(target, subject string, gapCost float64, matrix *SubstitutionMatrix) (float64, error) {
	if matrix == nil {
		return 0, fmt.Errorf("substitution matrix is required")
	}
	if len(target) == 0 || len(subject) == 0 {
		return 0, fmt.Errorf("sequences must be non-empty")
	}

	n := len(subject)
	prevRow := make([]float64, n+1)
	currRow := make([]float64, n+1)

	maxScore := 0.0

	for i := 1; i <= len(target); i++ {
		currRow[0] = 0
		for j := 1; j <= n; j++ {
			similarity, err := matrix.Score(target[i-1], subject[j-1])
			if err != nil {
				return 0, err
			}

			best := max(0, prevRow[j-1]+similarity, prevRow[j]-gapCost, currRow[j-1]-gapCost)
			currRow[j] = best
			maxScore = max(maxScore, best)
		}

		prevRow, currRow = currRow, prevRow
	}

	return maxScore, nil
}
