package lower

import (
	"errors"
	"fmt"
)

// Invariant violations. These indicate inconsistent input from the parsing
// collaborator, not a condition the lowering can recover from.
var (
	// ErrNoComponents is returned for a record declaration whose component
	// list is empty. The parser cannot produce one without a defect.
	ErrNoComponents = errors.New("record declaration has no components")

	// ErrCompactMismatch is returned for a compact constructor that already
	// carries a parameter list. A compact constructor's parameter list is
	// implicit; one recorded on the node means the tree is inconsistent.
	ErrCompactMismatch = errors.New("compact constructor carries an explicit parameter list")
)

// Error wraps an invariant violation with the declaration it occurred in.
type Error struct {
	Decl string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("lower %s: %v", e.Decl, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
