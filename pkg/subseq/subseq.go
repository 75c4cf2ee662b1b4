// Package subseq provides a high-level API for finding subsequences in
// macromolecular structures.
//
// Structures are loaded from PDB files into a host, their chains are
// translated into one-letter sequences and targets are searched with
// regular expressions or with local or global alignments.
//
// Example usage:
//
//	host, err := subseq.LoadHost("1abc.pdb")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	store := subseq.BuildStore(host, subseq.BuildOptions{Alphabet: subseq.AminoAcids})
//
//	matches, err := subseq.Search("KTG[TS]", store, subseq.Params{Method: subseq.Regex})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, m := range matches {
//	    fmt.Printf("%s/%s %s-%s\n", m.Model, m.Chain, m.Start(), m.End())
//	}
package subseq

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/aria-lang/subseq-go/internal/alignment"
	"github.com/aria-lang/subseq-go/internal/search"
	"github.com/aria-lang/subseq-go/internal/selection"
	"github.com/aria-lang/subseq-go/internal/sequence"
	"github.com/aria-lang/subseq-go/internal/stats"
	"github.com/aria-lang/subseq-go/internal/structure"
)

// Re-export types for convenience
type (
	Alphabet           = sequence.Alphabet
	ChainSequence      = sequence.ChainSequence
	Residue            = sequence.Residue
	Store              = sequence.Store
	BuildOptions       = sequence.BuildOptions
	SubstitutionMatrix = alignment.SubstitutionMatrix
	Alignment          = alignment.Alignment
	Report             = alignment.Report
	Method             = search.Method
	Params             = search.Params
	Match              = search.Match
	Summary            = search.Summary
	Result             = search.Result
	Searcher           = search.Searcher
	Sink               = selection.Sink
	Host               = structure.Host
	StoreStats         = stats.StoreStats
)

// Constants
const (
	AminoAcids   = sequence.AminoAcids
	NucleicAcids = sequence.NucleicAcids

	Regex  = search.Regex
	Local  = search.Local
	Global = search.Global
)

// LoadHost reads PDB files into a structure host.
func LoadHost(paths ...string) (*structure.MemoryHost, error) {
	entries := make([]*structure.Entry, 0, len(paths))
	for _, p := range paths {
		e, err := structure.LoadPDB(p)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return structure.NewHost(entries...), nil
}

// BuildStore extracts chain sequences from a host using the representative
// atom of the chosen alphabet.
func BuildStore(h Host, opts BuildOptions) *Store {
	residues := h.Residues(structure.SelectorFor(opts.Alphabet))
	return sequence.Build(residues, opts)
}

// ReadFASTA reads chain sequences from a FASTA file.
func ReadFASTA(filename string) (*Store, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	return sequence.ParseFASTA(file)
}

// WriteFASTA writes every chain of the store to a FASTA file.
func WriteFASTA(filename string, store *Store) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := sequence.WriteFASTA(file, store); err != nil {
		return fmt.Errorf("writing sequences: %w", err)
	}
	return nil
}

// LoadMatrix loads a substitution matrix file or a built-in matrix by name.
func LoadMatrix(pathOrName string) (*SubstitutionMatrix, error) {
	return alignment.LoadMatrix(pathOrName)
}

// Search runs a single target against the store.
func Search(target string, store *Store, p Params) ([]Match, error) {
	return search.Run(target, store, p)
}

// NewSearcher creates a batch session that names selections with template.
func NewSearcher(logger *log.Logger, template string) *Searcher {
	return search.NewSearcher(logger, selection.NewNamer(template))
}

// StoreStatistics summarizes the chains of a store.
func StoreStatistics(store *Store, placeholder byte) (*StoreStats, error) {
	return stats.FromStore(store, placeholder)
}

// ParseTargets expands command line targets. An argument naming a readable
// file contributes every target listed in it, anything else is a target
// itself. Targets are upper-cased.
func ParseTargets(args []string) ([]string, error) {
	var targets []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || info.IsDir() {
			if t := strings.ToUpper(strings.TrimSpace(arg)); t != "" {
				targets = append(targets, t)
			}
			continue
		}

		file, err := os.Open(arg)
		if err != nil {
			return nil, fmt.Errorf("opening targets file: %w", err)
		}
		listed, err := ReadTargets(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", arg, err)
		}
		targets = append(targets, listed...)
	}
	return targets, nil
}

// ReadTargets reads one target per line. Blank lines and lines starting
// with '#' are skipped.
func ReadTargets(r io.Reader) ([]string, error) {
	var targets []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		targets = append(targets, strings.ToUpper(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading targets: %w", err)
	}
	return targets, nil
}

// Version returns the subseq version.
func Version() string {
	return "1.0.0"
}

// Info returns information about subseq.
func Info() string {
	return fmt.Sprintf(`subseq v%s - Subsequence search in macromolecular structures

Features:
  - Regular expression search with IUPAC nucleotide codes
  - Smith-Waterman local alignment with tied optima
  - Needleman-Wunsch global alignment
  - Substitution matrix files and built-in BLOSUM62 / nucleic matrices
  - PDB structure and FASTA sequence input
  - PyMOL selection scripts and BLAST-like reports
`, Version())
}
