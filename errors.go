package flatten

import (
	"fmt"
)

// ErrorKind classifies every failure the pipeline can report. Collaborator
// errors never cross the package boundary unwrapped; they are attached as the
// cause of an Error carrying one of these kinds.
type ErrorKind int

const (
	ErrInputNotFound ErrorKind = iota
	ErrInputNotAFile
	ErrInputEmptyPath
	ErrMalformedXML
	ErrNormalization
	ErrGeometry
	ErrPathReconstruction
	ErrOutputWrite
)

func (k ErrorKind) String() string {
	switch k {
	case ErrInputNotFound:
		return "input not found"
	case ErrInputNotAFile:
		return "input not a file"
	case ErrInputEmptyPath:
		return "empty input path"
	case ErrMalformedXML:
		return "malformed XML"
	case ErrNormalization:
		return "normalization failed"
	case ErrGeometry:
		return "geometry engine failed"
	case ErrPathReconstruction:
		return "path reconstruction failed"
	case ErrOutputWrite:
		return "output write failed"
	}
	return "unknown error"
}

// Error implements error so that a kind can be matched directly with
// errors.Is.
func (k ErrorKind) Error() string {
	return k.String()
}

// Error is the only error type returned by this package. Err holds the
// original cause, Call holds the 1-based union call index for geometry
// failures in sequential composition (0 for batch).
type Error struct {
	Kind ErrorKind
	Call int
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Kind == ErrGeometry && 0 < e.Call {
		msg += fmt.Sprintf(" (call %d)", e.Call)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the kind carried by this error, so that
// errors.Is(err, flatten.ErrMalformedXML) works on wrapped errors.
func (e *Error) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}
