package cmdline

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is matched by errors.Is for every NotFoundError.
	ErrNotFound = errors.New("option not found")

	// ErrDuplicateOption is matched by errors.Is for every
	// DuplicateOptionError.
	ErrDuplicateOption = errors.New("duplicate option")

	// ErrInvalidSchema is matched by errors.Is for every SchemaError.
	ErrInvalidSchema = errors.New("invalid schema")
)

// NotFoundError is returned by the Parser query methods when no parsed
// entry matches the queried name.
type NotFoundError struct {
	Name string // The name that was queried
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("option not found: %s", e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// DuplicateOptionError is returned by Parse when an option occurs more
// than once on the command line and the duplicate policy is
// RejectDuplicates. First and Second are the token positions (indices
// into the argument slice) of the two occurrences.
type DuplicateOptionError struct {
	Option Option
	Token  string // The token of the second occurrence
	First  int
	Second int
}

func (e *DuplicateOptionError) Error() string {
	return fmt.Sprintf("duplicate option %s at positions %d and %d",
		e.Token, e.First, e.Second)
}

func (e *DuplicateOptionError) Is(target error) bool {
	return target == ErrDuplicateOption
}

// SchemaError is returned by Parse (and by Option.Validate) when an
// option in the schema is malformed, or conflicts with another one.
type SchemaError struct {
	Option Option
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid option %q: %s", e.Option.String(), e.Reason)
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}
