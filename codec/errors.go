package codec

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrShapeMismatch is returned when the payload length or padding does
	// not match any recognized encoding of the expected shape.
	ErrShapeMismatch = errors.New("payload shape mismatch")
	// ErrAmbiguousDecode is returned when more than one decode strategy is
	// structurally applicable and no deterministic preference exists.
	// The fixed strategy ordering makes this unreachable unless the known
	// typed-call signatures ever collide on a selector.
	ErrAmbiguousDecode = errors.New("ambiguous decode")
	// ErrUnrecognizedShape is returned when the payload length falls outside
	// all known fixed-width shapes.
	ErrUnrecognizedShape = errors.New("unrecognized payload shape")
)

// Attempt records the outcome of one decode strategy.
type Attempt struct {
	Strategy string
	Err      error
}

// DecodeError reports a failed decode together with every strategy that was
// tried. It wraps one of the sentinel errors above so callers can classify
// the failure with errors.Is.
type DecodeError struct {
	Shape    Shape
	Sentinel error
	Attempts []Attempt
}

func (e *DecodeError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "decode %s payload: %v", e.Shape, e.Sentinel)
	for _, a := range e.Attempts {
		fmt.Fprintf(&b, "; %s: %v", a.Strategy, a.Err)
	}
	return b.String()
}

func (e *DecodeError) Unwrap() error {
	return e.Sentinel
}

func newDecodeError(shape Shape, sentinel error, attempts []Attempt) *DecodeError {
	return &DecodeError{
		Shape:    shape,
		Sentinel: sentinel,
		Attempts: attempts,
	}
}
