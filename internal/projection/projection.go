// Package projection derives display-sized views of an image.
package projection

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/nfnt/resize"
)

// Filter names the resampling kernel used for display projections.
type Filter string

const (
	Nearest  Filter = "nearest"
	Bilinear Filter = "bilinear"
	Bicubic  Filter = "bicubic"
	Lanczos3 Filter = "lanczos3"
)

// DefaultFilter is the smoothing filter used when none is configured.
const DefaultFilter = Bilinear

// ParseFilter validates a filter name.
func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case Nearest, Bilinear, Bicubic, Lanczos3:
		return f, nil
	case "":
		return DefaultFilter, nil
	}
	return DefaultFilter, fmt.Errorf("unknown display filter %q", s)
}

func (f Filter) interpolation() resize.InterpolationFunction {
	switch f {
	case Nearest:
		return resize.NearestNeighbor
	case Bicubic:
		return resize.Bicubic
	case Lanczos3:
		return resize.Lanczos3
	default:
		return resize.Bilinear
	}
}

// Fit returns the largest size with the aspect ratio of src that fits inside
// area. It is zero when either input is empty and at least 1x1 otherwise.
func Fit(src, area image.Point) image.Point {
	if src.X <= 0 || src.Y <= 0 || area.X <= 0 || area.Y <= 0 {
		return image.Point{}
	}
	zx := float64(area.X) / float64(src.X)
	zy := float64(area.Y) / float64(src.Y)
	zoom := zx
	if zy < zoom {
		zoom = zy
	}
	w := int(math.Round(float64(src.X) * zoom))
	h := int(math.Round(float64(src.Y) * zoom))
	if w > area.X {
		w = area.X
	}
	if h > area.Y {
		h = area.Y
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return image.Pt(w, h)
}

// Project resamples src to fit area. It returns nil when nothing can be
// shown. The source is never modified.
func Project(src image.Image, area image.Point, f Filter) image.Image {
	if src == nil {
		return nil
	}
	size := Fit(src.Bounds().Size(), area)
	if size == (image.Point{}) {
		return nil
	}
	return resize.Resize(uint(size.X), uint(size.Y), src, f.interpolation())
}

// Center returns the rectangle of the given size centered inside r.
func Center(size image.Point, r image.Rectangle) image.Rectangle {
	x := r.Min.X + (r.Dx()-size.X)/2
	y := r.Min.Y + (r.Dy()-size.Y)/2
	return image.Rect(x, y, x+size.X, y+size.Y)
}
