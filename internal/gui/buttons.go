package gui

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/example/photoedit/internal/theme"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
	StateDisabled
	numStates
)

// Button is a drawable UI element.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
}

// CacheButton wraps another Button and caches its rendered states.
type CacheButton struct {
	Button
	cache [numStates]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		img := image.NewRGBA(cb.Button.Rect())
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [numStates]*image.RGBA{}
	}
}

// ActionButton draws an action label in the theme colours.
type ActionButton struct {
	label string
	theme *theme.Theme
	rect  image.Rectangle
}

var _ Button = (*ActionButton)(nil)

func (b *ActionButton) Draw(dst *image.RGBA, state ButtonState) {
	th := b.theme
	bg, fg := th.ButtonBackground, th.ButtonText
	switch state {
	case StateHover:
		bg = th.ButtonBackgroundHover
	case StatePressed:
		bg = th.ButtonBackgroundPress
	case StateDisabled:
		bg, fg = th.ButtonBackgroundDisabled, th.ButtonTextDisabled
	}
	draw.Draw(dst, b.rect, image.NewUniform(bg), image.Point{}, draw.Src)
	drawRect(dst, b.rect, th.ButtonBorder)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(fg), Face: basicfont.Face7x13}
	w := d.MeasureString(b.label).Ceil()
	x := b.rect.Min.X + (b.rect.Dx()-w)/2
	y := b.rect.Min.Y + (b.rect.Dy()+basicfont.Face7x13.Ascent-basicfont.Face7x13.Descent)/2
	d.Dot = fixed.P(x, y)
	d.DrawString(b.label)
}

func (b *ActionButton) Rect() image.Rectangle { return b.rect }

func (b *ActionButton) SetRect(r image.Rectangle) { b.rect = r }

// drawRect outlines r with a one pixel border.
func drawRect(dst draw.Image, r image.Rectangle, col color.Color) {
	if r.Empty() {
		return
	}
	u := image.NewUniform(col)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}
