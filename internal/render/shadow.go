package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow painted under the image.
type ShadowOptions struct {
	Radius int
	Offset image.Point
	Color  color.RGBA
}

// DefaultShadowOptions returns a soft shadow suited to the editor canvas.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius: 6,
		Offset: image.Pt(5, 5),
		Color:  color.RGBA{A: 140},
	}
}

// Shadow paints a blurred shadow for the rectangle r onto dst, clipped to
// clip. It returns the area that was touched.
func Shadow(dst draw.Image, r, clip image.Rectangle, opts ShadowOptions) image.Rectangle {
	if r.Empty() || opts.Color.A == 0 {
		return image.Rectangle{}
	}
	radius := opts.Radius
	if radius < 0 {
		radius = 0
	}
	cast := r.Add(opts.Offset)
	area := cast.Inset(-radius).Intersect(clip).Intersect(dst.Bounds())
	if area.Empty() {
		return image.Rectangle{}
	}

	// The mask covers the blurred footprint; the solid core is the cast
	// rectangle itself.
	full := cast.Inset(-radius)
	mask := image.NewAlpha(full)
	core := cast.Intersect(full)
	for y := core.Min.Y; y < core.Max.Y; y++ {
		off := mask.PixOffset(core.Min.X, y)
		for x := 0; x < core.Dx(); x++ {
			mask.Pix[off+x] = 0xFF
		}
	}
	boxBlur(mask, radius)

	draw.DrawMask(dst, area, image.NewUniform(opts.Color), image.Point{}, mask, area.Min, draw.Over)
	return area
}

// boxBlur runs a horizontal then a vertical box filter of the given radius
// over the mask in place.
func boxBlur(m *image.Alpha, radius int) {
	if radius <= 0 {
		return
	}
	w, h := m.Rect.Dx(), m.Rect.Dy()
	line := make([]uint8, max(w, h))
	sums := make([]int, max(w, h)+1)
	for y := 0; y < h; y++ {
		blurLine(m.Pix[y*m.Stride:], 1, w, radius, line, sums)
	}
	for x := 0; x < w; x++ {
		blurLine(m.Pix[x:], m.Stride, h, radius, line, sums)
	}
}

// blurLine averages n samples spaced step apart using a prefix sum.
func blurLine(pix []uint8, step, n, radius int, line []uint8, sums []int) {
	sums[0] = 0
	for i := 0; i < n; i++ {
		sums[i+1] = sums[i] + int(pix[i*step])
	}
	for i := 0; i < n; i++ {
		lo := max(i-radius, 0)
		hi := min(i+radius, n-1)
		line[i] = uint8((sums[hi+1] - sums[lo]) / (hi - lo + 1))
	}
	for i := 0; i < n; i++ {
		pix[i*step] = line[i]
	}
}
