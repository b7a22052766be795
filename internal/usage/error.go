package usage

import "errors"

// ErrorKind represents the type of usage error.
type ErrorKind int

const (
	ErrUnknown ErrorKind = iota
	ErrMissingAction
	ErrBadFlag
	ErrUnknownAction
	ErrUnknownOption
	ErrInvalidOptionValue
	ErrMissingArgument
	ErrDuplicateAlias
	ErrInvalidSchema
)

// Exit codes:
//
//	Exit 1: every user-facing usage error
//	Exit 70: startup invariant violations (duplicate alias, invalid schema)
var exitCodes = map[ErrorKind]int{
	ErrUnknown:            1,
	ErrMissingAction:      1,
	ErrBadFlag:            1,
	ErrUnknownAction:      1,
	ErrUnknownOption:      1,
	ErrInvalidOptionValue: 1,
	ErrMissingArgument:    1,
	ErrDuplicateAlias:     70,
	ErrInvalidSchema:      70,
}

// Error represents a user-facing usage error with semantic type information.
type Error struct {
	Kind    ErrorKind
	Message string
	// Usage is printed before Message when non-empty.
	Usage    string
	ExitCode int // computed from Kind if zero
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// GetExitCode returns the appropriate exit code for this error.
// If ExitCode is explicitly set, it is returned; otherwise, the code is derived from Kind.
func (e *Error) GetExitCode() int {
	if e.ExitCode != 0 {
		return e.ExitCode
	}
	if code, ok := exitCodes[e.Kind]; ok {
		return code
	}
	return 1
}

// Is reports whether target is a usage error of the same kind, so callers can
// write errors.Is(err, &usage.Error{Kind: usage.ErrUnknownAction}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// IsKind reports whether err is a usage error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ue *Error
	return errors.As(err, &ue) && ue.Kind == kind
}

// Verify Error implements the error interface.
var _ error = (*Error)(nil)
