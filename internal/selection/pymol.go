package selection

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// PyMOLWriter writes selections as PyMOL "select" commands, ready to be run
// with @script.pml.
type PyMOLWriter struct {
	w io.Writer
}

// NewPyMOLWriter returns a sink writing to w.
func NewPyMOLWriter(w io.Writer) *PyMOLWriter {
	return &PyMOLWriter{w: w}
}

// CreateEmpty writes "select name, none".
func (p *PyMOLWriter) CreateEmpty(name string) error {
	if name == "" {
		return fmt.Errorf("selection name cannot be empty")
	}
	_, err := fmt.Fprintf(p.w, "select %s, none\n", name)
	return err
}

// Extend writes "select name, name | /model//chain/resi".
func (p *PyMOLWriter) Extend(name, model, chain string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := fmt.Fprintf(p.w, "select %s, %s | /%s//%s/%s\n", name, name, model, chain, ResidueExpr(ids))
	return err
}

// ResidueExpr joins residue ids into a PyMOL resi expression. Runs of
// consecutive integers collapse into ranges ("10-13+15"), negative numbers
// are escaped and ids with insertion codes are listed as they are.
func ResidueExpr(ids []string) string {
	var parts []string
	for i := 0; i < len(ids); {
		start, err := strconv.Atoi(ids[i])
		if err != nil {
			parts = append(parts, ids[i])
			i++
			continue
		}

		end, j := start, i+1
		for ; j < len(ids); j++ {
			next, err := strconv.Atoi(ids[j])
			if err != nil || next != end+1 {
				break
			}
			end = next
		}

		if end == start {
			parts = append(parts, resi(start))
		} else {
			parts = append(parts, resi(start)+"-"+resi(end))
		}
		i = j
	}
	return strings.Join(parts, "+")
}

func resi(n int) string {
	if n < 0 {
		return `\` + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
