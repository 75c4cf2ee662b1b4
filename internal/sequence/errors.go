package sequence

import "fmt"

// SequenceError is the base error type for sequence operations.
type SequenceError interface {
	error
	IsSequenceError()
}

// InvalidAlphabetError is returned for an unrecognised alphabet name.
type InvalidAlphabetError struct {
	Value string
}

func (e *InvalidAlphabetError) Error() string {
	return fmt.Sprintf("unknown search alphabet %q (expected aminoacids or nucleicacids)", e.Value)
}

func (e *InvalidAlphabetError) IsSequenceError() {}

// LengthMismatchError is returned when a chain's symbols and identifiers
// do not pair up one to one.
type LengthMismatchError struct {
	Model   string
	Chain   string
	Symbols int
	IDs     int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("chain %s/%s has %d symbols but %d residue ids", e.Model, e.Chain, e.Symbols, e.IDs)
}

func (e *LengthMismatchError) IsSequenceError() {}

// EmptySequenceError is returned when a chain has no residues.
type EmptySequenceError struct {
	Model string
	Chain string
}

func (e *EmptySequenceError) Error() string {
	return fmt.Sprintf("chain %s/%s has no residues", e.Model, e.Chain)
}

func (e *EmptySequenceError) IsSequenceError() {}
