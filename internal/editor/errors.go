package editor

import (
	"errors"
	"fmt"

	"github.com/example/photoedit/internal/transform"
)

var (
	// ErrNoImage reports an operation that needs a loaded image.
	ErrNoImage = errors.New("no image loaded")
	// ErrUnsupportedAngle is returned by RotateClockwise for angles other
	// than 90, 180 and 270.
	ErrUnsupportedAngle = transform.ErrUnsupportedAngle
)

// LoadError reports a failed Load. The previous image is kept.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SaveError reports a failed Save. No file is left behind.
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save %s: %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }
