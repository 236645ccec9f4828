package scene

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedScene is wrapped by every scene file parse failure.
	ErrMalformedScene = errors.New("scene: malformed scene file")

	// ErrUnknownScene indicates a premade scene name that is not embedded.
	ErrUnknownScene = errors.New("scene: unknown premade scene")

	// ErrNoTarget indicates an edit with neither a selected nor a held body.
	ErrNoTarget = errors.New("scene: no selected or held body")

	// ErrNothingHeld indicates a launch without a held body.
	ErrNothingHeld = errors.New("scene: no held body to launch")

	// ErrIndexOutOfRange indicates a selection outside the store.
	ErrIndexOutOfRange = errors.New("scene: body index out of range")

	// ErrInvalidFactor indicates a non-positive scale factor.
	ErrInvalidFactor = errors.New("scene: scale factor must be positive")
)

// ParseError locates a scene file failure. Body is -1 for the header.
type ParseError struct {
	Body  int
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Body < 0 {
		return fmt.Sprintf("scene: header %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("scene: body %d field %s: %v", e.Body, e.Field, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrMalformedScene, e.Err}
}
