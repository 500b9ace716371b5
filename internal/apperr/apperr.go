// Package apperr defines the error taxonomy shared by the palette store and the
// quantization pipeline.
//
// Input errors are caller contract violations and are returned before any state
// changes. Resource errors describe a single unusable texture; loaders log and
// skip them. An empty palette is not an error.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNilSource is returned when no source image is supplied.
	ErrNilSource = errors.New("source image is nil")
	// ErrNilPalette is returned when no palette snapshot is supplied.
	ErrNilPalette = errors.New("palette snapshot is nil")
	// ErrEmptySource is returned for a source image without pixels.
	ErrEmptySource = errors.New("source image has no pixels")
	// ErrInvalidDirectory is returned when a texture directory cannot be scanned.
	ErrInvalidDirectory = errors.New("invalid textures directory")
	// ErrInvalidOptions is returned when conversion options are out of range.
	ErrInvalidOptions = errors.New("invalid options")
)

// InputError reports an invalid argument to an operation.
type InputError struct {
	Op  string
	Err error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// NewInputError wraps err as an InputError for op.
func NewInputError(op string, err error) *InputError {
	return &InputError{Op: op, Err: err}
}

// ResourceError reports a texture file that could not be used.
type ResourceError struct {
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("texture %s: %v", e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// IsInput reports whether err is or wraps an InputError.
func IsInput(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
