package alignment

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// LineWidth is the number of alignment columns per report block.
const LineWidth = 60

// Annotation is the middle line of a printed alignment together with its
// column counts.
type Annotation struct {
	Line       string
	Identities int
	Mismatches int
	Gaps       int
}

// Annotate builds the annotation line for two aligned strings:
// '|' identical, ':' mismatch, ' ' any column holding a gap.
//
//	KTGTA
//	:| :|
//	PT-KA
func Annotate(aligned1, aligned2 string) (Annotation, error) {
	if len(aligned1) != len(aligned2) {
		return Annotation{}, fmt.Errorf("aligned sequences must have equal length")
	}

	var ann Annotation
	var line strings.Builder
	line.Grow(len(aligned1))

	for i := 0; i < len(aligned1); i++ {
		a, b := aligned1[i], aligned2[i]
		switch {
		case a == Gap || b == Gap:
			line.WriteByte(' ')
			ann.Gaps++
		case a == b:
			line.WriteByte('|')
			ann.Identities++
		default:
			line.WriteByte(':')
			ann.Mismatches++
		}
	}
	ann.Line = line.String()
	return ann, nil
}

// Report is a BLAST-like rendering of one alignment of a target against a
// chain.
type Report struct {
	Model      string
	Chain      string
	Target     string
	Subject    string
	IDs        []string
	MatrixName string
	GapCost    float64
	MaxScore   float64
	Alignment  *Alignment
}

// Write renders the report. With colored set, identities and mismatches in
// the annotation line are highlighted.
func (r *Report) Write(w io.Writer, colored bool) error {
	a := r.Alignment
	if a == nil || a.Length() == 0 {
		return fmt.Errorf("report has no alignment")
	}
	ann, err := Annotate(a.AlignedTarget, a.AlignedSubject)
	if err != nil {
		return err
	}
	n := a.Length()

	var b strings.Builder
	fmt.Fprintf(&b, "\nModel: %s, chain: %s\n", r.Model, r.Chain)
	fmt.Fprintf(&b, "Target length: %d %s\n", len(r.Target), head(r.Target, 40))
	fmt.Fprintf(&b, "Subject length: %d %s\n", len(r.Subject), head(r.Subject, 40))
	fmt.Fprintf(&b, "Substitution matrix: %s\n", r.MatrixName)
	fmt.Fprintf(&b, "Gap cost: %g\n\n", r.GapCost)
	fmt.Fprintf(&b, "Alignment score: %g/%g (%.1f%%)\n", a.Score, r.MaxScore, percent(a.Score, r.MaxScore))
	fmt.Fprintf(&b, "Identities: %d/%d (%.1f%%)\n", ann.Identities, n, percent(float64(ann.Identities), float64(n)))
	fmt.Fprintf(&b, "Mismatches: %d/%d (%.1f%%)\n", ann.Mismatches, n, percent(float64(ann.Mismatches), float64(n)))
	fmt.Fprintf(&b, "Gaps:       %d/%d (%.1f%%)\n", ann.Gaps, n, percent(float64(ann.Gaps), float64(n)))

	label := fmt.Sprintf("%s/%s", r.Model, r.Chain)
	width := max(len("Target"), len(label))
	pad := strings.Repeat(" ", width+6)

	targetPos := a.TargetStart
	subjectIdx := a.SubjectStart - 1
	for i := 0; i < n; i += LineWidth {
		end := min(i+LineWidth, n)
		tSlice := a.AlignedTarget[i:end]
		sSlice := a.AlignedSubject[i:end]

		tCount := residueCount(tSlice)
		sCount := residueCount(sSlice)

		fmt.Fprintf(&b, "\n%-*s %-4d %s %d\n", width, "Target", targetPos, tSlice, targetPos+tCount-1)
		fmt.Fprintf(&b, "%s%s\n", pad, r.colorize(ann.Line[i:end], colored))
		fmt.Fprintf(&b, "%-*s %-4s %s %s\n", width, label,
			r.subjectLabel(subjectIdx), sSlice, r.subjectLabel(subjectIdx+sCount-1))

		targetPos += tCount
		subjectIdx += sCount
	}
	b.WriteString("\n" + strings.Repeat("-", LineWidth) + "\n")

	_, err = io.WriteString(w, b.String())
	return err
}

// subjectLabel names subject index k by its residue id when known.
func (r *Report) subjectLabel(k int) string {
	if k >= 0 && k < len(r.IDs) {
		return r.IDs[k]
	}
	return fmt.Sprint(k + 1)
}

func (r *Report) colorize(line string, colored bool) string {
	if !colored {
		return line
	}
	ident := color.New(color.FgGreen)
	ident.EnableColor()
	mismatch := color.New(color.FgRed)
	mismatch.EnableColor()

	var b strings.Builder
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '|':
			b.WriteString(ident.Sprint("|"))
		case ':':
			b.WriteString(mismatch.Sprint(":"))
		default:
			b.WriteByte(line[i])
		}
	}
	return b.String()
}

func residueCount(s string) int {
	return len(s) - strings.Count(s, string(Gap))
}

func head(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func percent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}
