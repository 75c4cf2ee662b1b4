package pattern

import (
	"errors"
	"fmt"
)

// ErrPatternSyntax matches every PatternSyntaxError.
var ErrPatternSyntax = errors.New("invalid search pattern")

// PatternSyntaxError wraps the regexp parser error for a target.
type PatternSyntaxError struct {
	Target string
	Err    error
}

func (e *PatternSyntaxError) Error() string {
	return fmt.Sprintf("invalid search pattern %q: %v", e.Target, e.Err)
}

func (e *PatternSyntaxError) Unwrap() error {
	return e.Err
}

func (e *PatternSyntaxError) Is(target error) bool {
	return target == ErrPatternSyntax
}
