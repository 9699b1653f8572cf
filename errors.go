package argparse

//go:generate go tool stringer --linecomment --type ErrorKind --output errorkind_string.go

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies errors detected when defining flags or parsing
// arguments.
type ErrorKind int

// Error kinds. The first three are parse errors, accumulated by Parse; the
// last two are definition errors, returned by Add.
const (
	UnknownFlag        ErrorKind = iota // unknown flag
	MissingValue                        // missing value
	RequiredFlagNotSet                  // required flag not set
	DefinitionConflict                  // definition conflict
	InvalidDefinition                   // invalid definition
)

// Sentinel errors. Every *Error unwraps to the sentinel of its kind, so
// callers can use errors.Is without looking at the Kind field.
var (
	ErrUnknownFlag       = errors.New("unknown flag")
	ErrMissingValue      = errors.New("missing value")
	ErrRequiredFlag      = errors.New("required flag not set")
	ErrConflict          = errors.New("conflicting flag definition")
	ErrInvalidDefinition = errors.New("invalid flag definition")

	// ErrNotFound is returned by Lookup for a spelling that was never
	// registered.
	ErrNotFound = errors.New("flag not defined")
)

var sentinels = map[ErrorKind]error{
	UnknownFlag:        ErrUnknownFlag,
	MissingValue:       ErrMissingValue,
	RequiredFlagNotSet: ErrRequiredFlag,
	DefinitionConflict: ErrConflict,
	InvalidDefinition:  ErrInvalidDefinition,
}

// Error describes one problem found in a flag definition or in the argument
// vector.
type Error struct {
	Kind   ErrorKind
	Flag   string // spelling of the flag concerned, if any
	Token  string // offending command line token, if any
	Pos    int    // index of Token in the argument vector, -1 if none
	Reason string // detail for definition errors
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnknownFlag:
		return fmt.Sprintf(`unknown flag "%s" at position %d`, e.Token, e.Pos)
	case MissingValue:
		return fmt.Sprintf(`flag "%s" requires a value`, e.Flag)
	case RequiredFlagNotSet:
		return fmt.Sprintf(`required flag "%s" not set`, e.Flag)
	case DefinitionConflict:
		return fmt.Sprintf(`flag "%s" already defined`, e.Flag)
	case InvalidDefinition:
		if len(e.Flag) == 0 {
			return fmt.Sprintf("invalid flag definition: %s", e.Reason)
		}
		return fmt.Sprintf(`invalid flag definition "%s": %s`, e.Flag, e.Reason)
	}
	return e.Kind.String()
}

// Unwrap returns the sentinel error of the kind.
func (e *Error) Unwrap() error {
	return sentinels[e.Kind]
}

// Errors is the ordered list of errors recorded by a single parse.
type Errors []*Error

func (l Errors) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d errors:", len(l))
	for _, e := range l {
		b.WriteString("\n\t")
		b.WriteString(e.Error())
	}
	return b.String()
}

// Unwrap returns the individual errors, for errors.Is and errors.As.
func (l Errors) Unwrap() []error {
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errs
}

// Count returns the number of errors of the given kind.
func (l Errors) Count(kind ErrorKind) int {
	n := 0
	for _, e := range l {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
