package transform

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Filter selects the resampling kernel used when an affine transform maps
// destination pixels back onto the source buffer.
type Filter int

const (
	// Nearest copies the closest source pixel without smoothing.
	Nearest Filter = iota
	// Bilinear interpolates between the four surrounding source pixels.
	Bilinear
	// CatmullRom uses the Catmull-Rom cubic kernel.
	CatmullRom
)

// ErrUnsupportedAngle is returned by Rotate for angles that are not a
// multiple of a quarter turn.
var ErrUnsupportedAngle = errors.New("rotation angle must be 90, 180 or 270 degrees")

var filterNames = map[Filter]string{
	Nearest:    "nearest",
	Bilinear:   "bilinear",
	CatmullRom: "catmullrom",
}

func (f Filter) String() string {
	if name, ok := filterNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Filter(%d)", int(f))
}

// ParseFilter converts a configuration name into a Filter.
func ParseFilter(s string) (Filter, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "nearest", "nn":
		return Nearest, nil
	case "bilinear", "linear", "smooth":
		return Bilinear, nil
	case "catmullrom", "catmull-rom", "cubic":
		return CatmullRom, nil
	}
	return Nearest, fmt.Errorf("unknown filter %q", s)
}

func (f Filter) interpolator() xdraw.Interpolator {
	switch f {
	case Bilinear:
		return xdraw.BiLinear
	case CatmullRom:
		return xdraw.CatmullRom
	default:
		return xdraw.NearestNeighbor
	}
}

// ToRGBA returns img as a zero-origin *image.RGBA. Images that already have
// that shape are copied so the result never aliases the input.
func ToRGBA(img image.Image) *image.RGBA {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// Apply maps src through the source-to-destination matrix m into a new
// zero-origin buffer of the given size. Destination pixels whose centers fall
// outside src stay transparent.
func Apply(src *image.RGBA, m f64.Aff3, size image.Point, filter Filter) *image.RGBA {
	dst := image.NewRGBA(image.Rectangle{Max: size})
	if src == nil || src.Bounds().Empty() || size.X <= 0 || size.Y <= 0 {
		return dst
	}
	filter.interpolator().Transform(dst, m, src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// Rotate turns src clockwise by degrees about its center. Only 90, 180 and
// 270 are accepted; a half turn is a single matrix rather than two quarter
// turns.
func Rotate(src *image.RGBA, degrees int, filter Filter) (*image.RGBA, error) {
	m, size, err := rotation(src.Bounds(), degrees)
	if err != nil {
		return nil, err
	}
	return Apply(normalize(src), m, size, filter), nil
}

func rotation(b image.Rectangle, degrees int) (f64.Aff3, image.Point, error) {
	w := float64(b.Dx())
	h := float64(b.Dy())
	switch ((degrees % 360) + 360) % 360 {
	case 90:
		// (x, y) -> (h - y, x)
		return f64.Aff3{0, -1, h, 1, 0, 0}, image.Pt(b.Dy(), b.Dx()), nil
	case 180:
		// (x, y) -> (w - x, h - y)
		return f64.Aff3{-1, 0, w, 0, -1, h}, b.Size(), nil
	case 270:
		// (x, y) -> (y, w - x)
		return f64.Aff3{0, 1, 0, -1, 0, w}, image.Pt(b.Dy(), b.Dx()), nil
	}
	return f64.Aff3{}, image.Point{}, fmt.Errorf("rotate %d: %w", degrees, ErrUnsupportedAngle)
}

// FlipHorizontal mirrors src across its vertical axis.
func FlipHorizontal(src *image.RGBA) *image.RGBA {
	w := float64(src.Bounds().Dx())
	return Apply(normalize(src), f64.Aff3{-1, 0, w, 0, 1, 0}, src.Bounds().Size(), Nearest)
}

// FlipVertical mirrors src across its horizontal axis.
func FlipVertical(src *image.RGBA) *image.RGBA {
	h := float64(src.Bounds().Dy())
	return Apply(normalize(src), f64.Aff3{1, 0, 0, 0, -1, h}, src.Bounds().Size(), Nearest)
}

// HalfSize reports the dimensions ScaleHalf produces for b.
func HalfSize(b image.Rectangle) image.Point {
	return image.Pt(b.Dx()/2, b.Dy()/2)
}

// ScaleHalf shrinks src to floor(w/2) x floor(h/2) with nearest-neighbour
// sampling. The result is empty when either dimension is below two pixels.
func ScaleHalf(src *image.RGBA) *image.RGBA {
	size := HalfSize(src.Bounds())
	if size.X == 0 || size.Y == 0 {
		return image.NewRGBA(image.Rectangle{})
	}
	sx := float64(size.X) / float64(src.Bounds().Dx())
	sy := float64(size.Y) / float64(src.Bounds().Dy())
	return Apply(normalize(src), f64.Aff3{sx, 0, 0, 0, sy, 0}, size, Nearest)
}

// normalize shifts src to a zero origin so the matrices above can assume
// bounds starting at (0, 0).
func normalize(src *image.RGBA) *image.RGBA {
	if src.Bounds().Min == (image.Point{}) {
		return src
	}
	return ToRGBA(src)
}
