// Package sequence builds per-chain one-letter sequences from residue
// records.
//
// Each chain keeps a dense symbol string and, index for index, the source
// residue identifiers, so a position found by a matcher can always be mapped
// back onto the structure.
package sequence

import (
	"strings"
)

// DefaultPlaceholder stands in for residues missing from the translation
// tables (modified or non-standard monomers).
const DefaultPlaceholder byte = 'X'

// Alphabet selects the residue translation table.
type Alphabet int

const (
	// AminoAcids translates three-letter amino acid codes
	AminoAcids Alphabet = iota
	// NucleicAcids translates one- and two-letter nucleotide codes
	NucleicAcids
)

func (a Alphabet) String() string {
	switch a {
	case AminoAcids:
		return "aminoacids"
	case NucleicAcids:
		return "nucleicacids"
	default:
		return "unknown"
	}
}

// ParseAlphabet accepts the usual spellings of both alphabets,
// case-insensitively.
func ParseAlphabet(s string) (Alphabet, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "aa", "amino", "aminoacid", "aminoacids", "protein":
		return AminoAcids, nil
	case "na", "nucleic", "nucleicacid", "nucleicacids", "dna", "rna":
		return NucleicAcids, nil
	}
	return 0, &InvalidAlphabetError{Value: s}
}

var aminoAcidCodes = map[string]byte{
	"ALA": 'A', "ARG": 'R', "ASN": 'N', "ASP": 'D', "CYS": 'C',
	"GLN": 'Q', "GLU": 'E', "GLY": 'G', "HIS": 'H', "ILE": 'I',
	"LEU": 'L', "LYS": 'K', "MET": 'M', "PHE": 'F', "PRO": 'P',
	"SER": 'S', "THR": 'T', "TRP": 'W', "TYR": 'Y', "VAL": 'V',
}

var nucleotideCodes = map[string]byte{
	"DA": 'A', "DC": 'C', "DG": 'G', "DT": 'T', "DU": 'U',
	"A": 'A', "C": 'C', "G": 'G', "T": 'T', "U": 'U',
}

func (a Alphabet) table() map[string]byte {
	if a == NucleicAcids {
		return nucleotideCodes
	}
	return aminoAcidCodes
}

// Known reports whether code has an entry in the alphabet's table.
func (a Alphabet) Known(code string) bool {
	_, ok := a.table()[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// Translate maps a residue code to its one-letter symbol. Codes absent from
// the table map to placeholder; this is not an error.
func Translate(code string, alphabet Alphabet, placeholder byte) byte {
	if sym, ok := alphabet.table()[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return sym
	}
	return placeholder
}

// Residue is one raw residue record as supplied by the structure host.
type Residue struct {
	Code  string `json:"code" yaml:"code"`
	ID    string `json:"id" yaml:"id"`
	Chain string `json:"chain" yaml:"chain"`
	Model string `json:"model" yaml:"model"`
}
