// Package structure reads molecular structures and serves their residues to
// the sequence builder.
package structure

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Atom is one ATOM or HETATM record.
type Atom struct {
	Name    string
	AltLoc  byte
	ResName string
	ResID   string
	Chain   string
	HetAtm  bool
}

// Model is one set of coordinates of an entry.
type Model struct {
	Name   string
	Atoms  []Atom
	chains []string
}

// Chains returns chain names in the order they first appear.
func (m *Model) Chains() []string {
	return append([]string(nil), m.chains...)
}

// Entry is a parsed structure file.
type Entry struct {
	Name   string
	Models []*Model
}

// LoadPDB reads a PDB file. The entry is named after the file, upper-cased
// and without extension.
func LoadPDB(path string) (*Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening structure: %w", err)
	}
	defer f.Close()

	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return ReadPDB(name, f)
}

// ReadPDB parses the ATOM, HETATM, MODEL and ENDMDL records of a PDB file.
// The first model takes the entry name; later models of a multi-model file
// are named "<entry>_<serial>".
func ReadPDB(name string, r io.Reader) (*Entry, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return nil, fmt.Errorf("structure name cannot be empty")
	}

	e := &Entry{Name: name}
	var current *Model
	seenChain := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	lineNum := 0
scan:
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		record := strings.TrimSpace(field(line, 0, 6))

		switch record {
		case "MODEL":
			serial := strings.TrimSpace(field(line, 6, 80))
			modelName := name
			if len(e.Models) > 0 {
				modelName = name + "_" + serial
			}
			current = &Model{Name: modelName}
			e.Models = append(e.Models, current)
			seenChain = make(map[string]bool)

		case "ENDMDL":
			current = nil

		case "ATOM", "HETATM":
			if len(line) < 27 {
				return nil, fmt.Errorf("line %d: %s record too short", lineNum, record)
			}
			if current == nil {
				current = &Model{Name: name}
				if len(e.Models) > 0 {
					current.Name = fmt.Sprintf("%s_%d", name, len(e.Models)+1)
				}
				e.Models = append(e.Models, current)
				seenChain = make(map[string]bool)
			}

			atom := Atom{
				Name:    strings.TrimSpace(line[12:16]),
				AltLoc:  line[16],
				ResName: strings.TrimSpace(line[17:20]),
				Chain:   strings.TrimSpace(line[21:22]),
				ResID:   strings.TrimSpace(line[22:26]) + strings.TrimSpace(line[26:27]),
				HetAtm:  record == "HETATM",
			}
			current.Atoms = append(current.Atoms, atom)
			if !seenChain[atom.Chain] {
				seenChain[atom.Chain] = true
				current.chains = append(current.chains, atom.Chain)
			}

		case "END":
			break scan
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading structure %s: %w", name, err)
	}

	models := e.Models[:0]
	for _, m := range e.Models {
		if len(m.Atoms) > 0 {
			models = append(models, m)
		}
	}
	e.Models = models
	if len(e.Models) == 0 {
		return nil, fmt.Errorf("structure %s has no atoms", name)
	}
	return e, nil
}

// field returns line[start:end] clipped to the line length.
func field(line string, start, end int) string {
	if start >= len(line) {
		return ""
	}
	return line[start:min(end, len(line))]
}
