// Package editor holds the image being edited and applies geometric
// transforms to it.
//
// An Editor owns a single Source Image and a Display Projection derived from
// it. Every transform replaces the Source Image with a freshly built buffer
// and then recomputes the projection for the current display area. The
// projection is never fed back into a transform.
//
// Editor is not safe for concurrent use; front ends call it from one
// goroutine.
package editor

import (
	"errors"
	"image"
	"io"
	"log"

	"github.com/example/photoedit/internal/codec"
	"github.com/example/photoedit/internal/projection"
	"github.com/example/photoedit/internal/transform"
)

// Info describes the Source Image.
type Info struct {
	Width  int
	Height int
	// Format is the name of the decoder that produced the image, or the
	// origin label passed to SetImage.
	Format string
	// Path is the file the image was loaded from, if any.
	Path string
}

// Editor is the image state controller.
type Editor struct {
	src     *image.RGBA
	info    Info
	display image.Image

	area          image.Point
	rotateFilter  transform.Filter
	displayFilter projection.Filter
	codecOpts     codec.Options
	logger        *log.Logger
}

// Option modifies an Editor during creation.
type Option func(*Editor)

// WithDisplayArea sets the initial size of the visible display area.
func WithDisplayArea(w, h int) Option { return func(e *Editor) { e.area = image.Pt(w, h) } }

// WithRotateFilter selects the resampling filter used by RotateClockwise.
func WithRotateFilter(f transform.Filter) Option { return func(e *Editor) { e.rotateFilter = f } }

// WithDisplayFilter selects the resampling filter for the Display Projection.
func WithDisplayFilter(f projection.Filter) Option { return func(e *Editor) { e.displayFilter = f } }

// WithJPEGQuality sets the quality used when saving JPEG files.
func WithJPEGQuality(q int) Option { return func(e *Editor) { e.codecOpts.JPEGQuality = q } }

// WithLogger routes operation logs to l.
func WithLogger(l *log.Logger) Option { return func(e *Editor) { e.logger = l } }

// New creates an empty Editor.
func New(opts ...Option) *Editor {
	e := &Editor{
		rotateFilter:  transform.Bilinear,
		displayFilter: projection.DefaultFilter,
		codecOpts:     codec.Options{JPEGQuality: codec.DefaultJPEGQuality},
	}
	for _, o := range opts {
		o(e)
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard, "", 0)
	}
	if e.area.X < 0 {
		e.area.X = 0
	}
	if e.area.Y < 0 {
		e.area.Y = 0
	}
	return e
}

// Empty reports whether no image is loaded.
func (e *Editor) Empty() bool { return e.src == nil }

// Info describes the current Source Image. It is the zero value when empty.
func (e *Editor) Info() Info { return e.info }

// Source returns the current Source Image or nil. Callers must not modify it.
func (e *Editor) Source() *image.RGBA { return e.src }

// Display returns the current Display Projection or nil. Callers must not
// modify it.
func (e *Editor) Display() image.Image { return e.display }

// DisplayArea returns the size the projection is fitted to.
func (e *Editor) DisplayArea() image.Point { return e.area }

// SetDisplayArea changes the display area and recomputes the projection. The
// Source Image is not touched.
func (e *Editor) SetDisplayArea(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	area := image.Pt(w, h)
	if area == e.area {
		return
	}
	e.area = area
	e.project()
}

// Load replaces the Source Image with the decoded contents of path. On error
// the current image is left unchanged.
func (e *Editor) Load(path string) error {
	img, format, err := codec.ReadFile(path)
	if err != nil {
		return &LoadError{Path: path, Err: err}
	}
	if img.Bounds().Empty() {
		return &LoadError{Path: path, Err: errors.New("image has no pixels")}
	}
	e.replace(transform.ToRGBA(img), Info{Format: format, Path: path})
	e.logger.Printf("load: %s (%dx%d %s)", path, e.info.Width, e.info.Height, format)
	return nil
}

// SetImage replaces the Source Image with img, for example a clipboard paste.
// origin is recorded as the image format.
func (e *Editor) SetImage(img image.Image, origin string) error {
	if img == nil || img.Bounds().Empty() {
		return &LoadError{Path: origin, Err: errors.New("image has no pixels")}
	}
	e.replace(transform.ToRGBA(img), Info{Format: origin})
	e.logger.Printf("load: %s (%dx%d)", origin, e.info.Width, e.info.Height)
	return nil
}

// Save encodes the Source Image to path in the format implied by its
// extension.
func (e *Editor) Save(path string) error {
	if e.Empty() {
		return &SaveError{Path: path, Err: ErrNoImage}
	}
	if err := codec.WriteFile(path, e.src, e.codecOpts); err != nil {
		return &SaveError{Path: path, Err: err}
	}
	e.logger.Printf("save: %s", path)
	return nil
}

// PrintSource returns the image to print: the Display Projection when one is
// visible, otherwise the Source Image.
func (e *Editor) PrintSource() (image.Image, error) {
	if e.Empty() {
		return nil, ErrNoImage
	}
	if e.display != nil {
		return e.display, nil
	}
	return e.src, nil
}

// RotateClockwise turns the image by 90, 180 or 270 degrees. It returns
// false without error when no image is loaded.
func (e *Editor) RotateClockwise(degrees int) (bool, error) {
	if e.Empty() {
		return false, nil
	}
	out, err := transform.Rotate(e.src, degrees, e.rotateFilter)
	if err != nil {
		return false, err
	}
	e.commit(out)
	e.logger.Printf("rotate: %d degrees -> %dx%d", degrees, e.info.Width, e.info.Height)
	return true, nil
}

// FlipHorizontal mirrors the image across its vertical axis.
func (e *Editor) FlipHorizontal() bool {
	if e.Empty() {
		return false
	}
	e.commit(transform.FlipHorizontal(e.src))
	e.logger.Print("flip: horizontal")
	return true
}

// FlipVertical mirrors the image across its horizontal axis.
func (e *Editor) FlipVertical() bool {
	if e.Empty() {
		return false
	}
	e.commit(transform.FlipVertical(e.src))
	e.logger.Print("flip: vertical")
	return true
}

// ResizeHalf halves both dimensions, rounding down. Images with a side of a
// single pixel are left unchanged.
func (e *Editor) ResizeHalf() bool {
	if e.Empty() {
		return false
	}
	size := transform.HalfSize(e.src.Bounds())
	if size.X == 0 || size.Y == 0 {
		e.logger.Printf("resize: %dx%d is too small to halve", e.info.Width, e.info.Height)
		return false
	}
	e.commit(transform.ScaleHalf(e.src))
	e.logger.Printf("resize: %dx%d", e.info.Width, e.info.Height)
	return true
}

// Clear drops the Source Image and the Display Projection.
func (e *Editor) Clear() {
	e.src = nil
	e.display = nil
	e.info = Info{}
	e.logger.Print("clear")
}

func (e *Editor) replace(img *image.RGBA, info Info) {
	e.info = info
	e.commit(img)
}

// commit installs a fully built buffer as the Source Image and derives the
// projection from it.
func (e *Editor) commit(img *image.RGBA) {
	e.src = img
	e.info.Width = img.Bounds().Dx()
	e.info.Height = img.Bounds().Dy()
	e.project()
}

func (e *Editor) project() {
	if e.src == nil {
		e.display = nil
		return
	}
	e.display = projection.Project(e.src, e.area, e.displayFilter)
}
