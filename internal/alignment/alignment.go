package alignment

import (
	"fmt"
	"strings"
)

// Gap is the gap marker used in aligned strings.
const Gap = '-'

// Cell is a coordinate in a score matrix. Row I indexes the target, column J
// the subject; both are 1-based for residues, 0 is the boundary row/column.
type Cell struct {
	I, J int
}

// Alignment represents one optimal alignment of a target against a subject.
//
// TargetStart and SubjectStart are 1-based positions of the first aligned
// column's residues, matching the score matrix coordinates.
type Alignment struct {
	AlignedTarget  string
	AlignedSubject string
	Score          float64
	TargetStart    int
	SubjectStart   int
	AlignmentType  AlignmentType
	Identity       float64
}

// NewAlignment creates a new alignment result.
func NewAlignment(target, subject string, score float64, targetStart, subjectStart int,
	alignType AlignmentType) (*Alignment, error) {
	if len(target) != len(subject) {
		return nil, fmt.Errorf("aligned sequences must have equal length")
	}

	a := &Alignment{
		AlignedTarget:  target,
		AlignedSubject: subject,
		Score:          score,
		TargetStart:    targetStart,
		SubjectStart:   subjectStart,
		AlignmentType:  alignType,
	}
	a.Identity = a.calculateIdentity()
	return a, nil
}

// calculateIdentity calculates the fraction of identical columns.
func (a *Alignment) calculateIdentity() float64 {
	if len(a.AlignedTarget) == 0 {
		return 0.0
	}
	return float64(a.MatchCount()) / float64(len(a.AlignedTarget))
}

// Length returns the number of alignment columns.
func (a *Alignment) Length() int {
	return len(a.AlignedTarget)
}

// MatchCount returns the number of identical columns.
func (a *Alignment) MatchCount() int {
	count := 0
	for i := 0; i < len(a.AlignedTarget); i++ {
		if a.AlignedTarget[i] == a.AlignedSubject[i] && a.AlignedTarget[i] != Gap {
			count++
		}
	}
	return count
}

// MismatchCount returns the number of substituted columns.
func (a *Alignment) MismatchCount() int {
	count := 0
	for i := 0; i < len(a.AlignedTarget); i++ {
		if a.AlignedTarget[i] != a.AlignedSubject[i] &&
			a.AlignedTarget[i] != Gap && a.AlignedSubject[i] != Gap {
			count++
		}
	}
	return count
}

// TotalGaps returns the number of columns holding a gap on either side.
func (a *Alignment) TotalGaps() int {
	return strings.Count(a.AlignedTarget, string(Gap)) + strings.Count(a.AlignedSubject, string(Gap))
}

// SubjectResidues returns the number of subject residues covered.
func (a *Alignment) SubjectResidues() int {
	return len(a.AlignedSubject) - strings.Count(a.AlignedSubject, string(Gap))
}

// TargetResidues returns the number of target residues covered.
func (a *Alignment) TargetResidues() int {
	return len(a.AlignedTarget) - strings.Count(a.AlignedTarget, string(Gap))
}

// SubjectSpan returns the 0-based half-open index range of the subject
// residues covered by the alignment.
func (a *Alignment) SubjectSpan() (start, end int) {
	start = a.SubjectStart - 1
	return start, start + a.SubjectResidues()
}

// GapOpenings counts the number of gap openings.
func (a *Alignment) GapOpenings() int {
	openings := 0
	inGapT, inGapS := false, false

	for i := 0; i < len(a.AlignedTarget); i++ {
		if a.AlignedTarget[i] == Gap && !inGapT {
			openings++
			inGapT = true
		} else if a.AlignedTarget[i] != Gap {
			inGapT = false
		}

		if a.AlignedSubject[i] == Gap && !inGapS {
			openings++
			inGapS = true
		} else if a.AlignedSubject[i] != Gap {
			inGapS = false
		}
	}

	return openings
}

// ToCIGAR generates a CIGAR string with the target as the reference.
func (a *Alignment) ToCIGAR() string {
	if len(a.AlignedTarget) == 0 {
		return ""
	}

	var cigar strings.Builder
	currentOp := byte(0)
	count := 0

	for i := 0; i < len(a.AlignedTarget); i++ {
		var op byte
		switch {
		case a.AlignedTarget[i] == Gap:
			op = 'I'
		case a.AlignedSubject[i] == Gap:
			op = 'D'
		case a.AlignedTarget[i] == a.AlignedSubject[i]:
			op = 'M'
		default:
			op = 'X'
		}

		if op == currentOp {
			count++
			continue
		}
		if count > 0 {
			fmt.Fprintf(&cigar, "%d%c", count, currentOp)
		}
		currentOp = op
		count = 1
	}
	fmt.Fprintf(&cigar, "%d%c", count, currentOp)

	return cigar.String()
}

func (a *Alignment) String() string {
	return fmt.Sprintf("Alignment { type: %s, score: %g, identity: %.1f%%, length: %d }",
		a.AlignmentType, a.Score, a.Identity*100, a.Length())
}

// reverseBytes reverses b in place and returns it as a string.
func reverseBytes(b []byte) string {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// newScoreMatrix allocates an (m+1)x(n+1) grid.
func newScoreMatrix(m, n int) [][]float64 {
	cells := make([]float64, (m+1)*(n+1))
	H := make([][]float64, m+1)
	for i := range H {
		H[i] = cells[i*(n+1) : (i+1)*(n+1)]
	}
	return H
}
