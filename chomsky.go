package chomsky

import (
	"errors"
	"fmt"
)

// Version is the version of this module, as reported by tools and services.
const Version = "0.3.0"

// --- Error kinds -----------------------------------------------------------

// ErrorKind categorizes failures of grammar processing. Conversion is
// deterministic, so none of these is worth retrying.
type ErrorKind int

// Error kinds reported by the packages of this module.
const (
	NoError          ErrorKind = iota
	MalformedGrammar           // a structural invariant does not hold
	EmptyGrammar               // no productions or no start symbol
	NameCollision              // no fresh name could be generated
	LimitExceeded              // a configured bound has been hit
)

var kindNames = [...]string{"NoError", "MalformedGrammar", "EmptyGrammar",
	"NameCollision", "LimitExceeded"}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText lets error kinds appear by name in JSON error responses.
func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// --- Errors ----------------------------------------------------------------

// Error is a structured failure: a kind plus a human readable message.
// An optional cause may be wrapped.
//
//    err := chomsky.Errorf(chomsky.EmptyGrammar, "grammar %q has no productions", name)
//    if chomsky.KindOf(err) == chomsky.EmptyGrammar { … }
//
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error // cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Unwrap returns the cause of e, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches errors of the same kind, so that
//
//    errors.Is(err, &chomsky.Error{Kind: chomsky.NameCollision})
//
// holds for any name collision.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Errorf creates a structured error of a given kind.
func Errorf(kind ErrorKind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap creates a structured error of a given kind, wrapping a cause.
// If cause is nil, Wrap returns nil.
func Wrap(kind ErrorKind, cause error, msg string) error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// KindOf returns the kind of the first structured error in err's chain.
// Errors of foreign origin are reported as NoError, as is nil.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return NoError
}
