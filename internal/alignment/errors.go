package alignment

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedMatrix matches every MalformedMatrixError.
	ErrMalformedMatrix = errors.New("malformed substitution matrix")

	// ErrUnknownSymbolPair matches every UnknownSymbolPairError.
	ErrUnknownSymbolPair = errors.New("unknown symbol pair")
)

// MalformedMatrixError is returned when a matrix table cannot be trusted.
type MalformedMatrixError struct {
	Line   int
	Row    string
	Reason string
}

func (e *MalformedMatrixError) Error() string {
	switch {
	case e.Line > 0 && e.Row != "":
		return fmt.Sprintf("malformed substitution matrix: line %d (row %s): %s", e.Line, e.Row, e.Reason)
	case e.Line > 0:
		return fmt.Sprintf("malformed substitution matrix: line %d: %s", e.Line, e.Reason)
	default:
		return "malformed substitution matrix: " + e.Reason
	}
}

func (e *MalformedMatrixError) Is(target error) bool {
	return target == ErrMalformedMatrix
}

// UnknownSymbolPairError is returned when a pair is absent from a matrix.
// It indicates a configuration problem, not an empty result.
type UnknownSymbolPairError struct {
	Matrix string
	A, B   byte
}

func (e *UnknownSymbolPairError) Error() string {
	return fmt.Sprintf("bad pair in substitution matrix %s: [%c, %c]", e.Matrix, e.A, e.B)
}

func (e *UnknownSymbolPairError) Is(target error) bool {
	return target == ErrUnknownSymbolPair
}
