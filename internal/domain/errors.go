package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is wrapped by every codec failure.
var ErrInvalidInput = errors.New("invalid input")

// Codec failures. Each one also matches ErrInvalidInput.
var (
	ErrOutOfRange         = fmt.Errorf("%w: value out of range", ErrInvalidInput)
	ErrUnrecognizedSymbol = fmt.Errorf("%w: unrecognized symbol", ErrInvalidInput)
	ErrNonCanonical       = fmt.Errorf("%w: non-canonical numeral", ErrInvalidInput)
)

// Sentinel errors for the tool surface (workspace, config, IO).
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidConfig = errors.New("invalid config")
	ErrExecution     = errors.New("execution error")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindOutOfRange         ErrorKind = "out_of_range"
	KindUnrecognizedSymbol ErrorKind = "unrecognized_symbol"
	KindNonCanonical       ErrorKind = "non_canonical"

	KindNotFound      ErrorKind = "not_found"
	KindInvalidConfig ErrorKind = "invalid_config"
	KindExecution     ErrorKind = "execution"
)

// IsInputKind reports whether k classifies a codec failure.
func (k ErrorKind) IsInputKind() bool {
	switch k {
	case KindOutOfRange, KindUnrecognizedSymbol, KindNonCanonical:
		return true
	}
	return false
}

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op    string
	Kind  ErrorKind
	Input string // Optional: the rejected value
	Path  string // Optional: relevant file path
	Err   error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Input != "" {
		base += fmt.Sprintf(" (input=%q)", e.Input)
	}
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// KindOf returns the kind of the first OpError in err's chain, or "" if none.
func KindOf(err error) ErrorKind {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind
	}
	return ""
}
