// Package render composes the editor canvas: a checkerboard backdrop, a
// drop shadow and the Display Projection centred on top.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/example/photoedit/internal/projection"
)

// Style holds the canvas colours.
type Style struct {
	Background   color.RGBA
	CheckerLight color.RGBA
	CheckerDark  color.RGBA
	// Cell is the checkerboard square size in pixels.
	Cell   int
	Shadow ShadowOptions
}

// DefaultCell is used when Style.Cell is not positive.
const DefaultCell = 8

// Checkerboard fills r with alternating squares anchored at r.Min.
func Checkerboard(dst draw.Image, r image.Rectangle, cell int, light, dark color.Color) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	if cell <= 0 {
		cell = DefaultCell
	}
	lightU, darkU := image.NewUniform(light), image.NewUniform(dark)
	for y := r.Min.Y; y < r.Max.Y; y += cell {
		for x := r.Min.X; x < r.Max.X; x += cell {
			sq := image.Rect(x, y, x+cell, y+cell).Intersect(r)
			src := lightU
			if ((x-r.Min.X)/cell+(y-r.Min.Y)/cell)%2 == 1 {
				src = darkU
			}
			draw.Draw(dst, sq, src, image.Point{}, draw.Src)
		}
	}
}

// Canvas paints area of dst: the background, then, when img is not nil, a
// checkerboard under the image, its shadow and the image itself centred in
// area. It returns where the image was placed.
func Canvas(dst draw.Image, area image.Rectangle, img image.Image, s Style) image.Rectangle {
	draw.Draw(dst, area, image.NewUniform(s.Background), image.Point{}, draw.Src)
	if img == nil || img.Bounds().Empty() {
		return image.Rectangle{}
	}
	at := projection.Center(img.Bounds().Size(), area)
	Shadow(dst, at, area, s.Shadow)
	Checkerboard(dst, at.Intersect(area), s.Cell, s.CheckerLight, s.CheckerDark)
	draw.Draw(dst, at.Intersect(area), img, img.Bounds().Min.Add(at.Intersect(area).Min.Sub(at.Min)), draw.Over)
	return at
}
