package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestInputErrorWrapping(t *testing.T) {
	err := fmt.Errorf("convert: %w", NewInputError("quantize", ErrNilSource))

	if !IsInput(err) {
		t.Error("IsInput() = false, want true")
	}
	if !errors.Is(err, ErrNilSource) {
		t.Error("errors.Is(err, ErrNilSource) = false, want true")
	}
	if got, want := err.Error(), "convert: quantize: source image is nil"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestResourceError(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := &ResourceError{Path: "stone.png", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if IsInput(err) {
		t.Error("IsInput(ResourceError) = true, want false")
	}
	if got, want := err.Error(), "texture stone.png: unexpected EOF"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
