package gui

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"

	"github.com/example/photoedit/internal/render"
	"github.com/example/photoedit/internal/theme"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

const aboutWidth, aboutHeight = 320, 120

var (
	titleFace   font.Face
	messageFace font.Face
)

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	titleFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 20, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
	messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 28, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

// paintState is a copy of everything a frame needs so the painter never
// touches App.
type paintState struct {
	layout   Layout
	display  image.Image
	disabled map[ActionID]bool
	hover    ActionID
	hovered  bool
	pressed  bool
	status   string
	info     string
	prompt   Prompt
	about    bool
}

func (a *App) snapshot() paintState {
	st := paintState{
		layout:   a.layout,
		display:  a.ed.Display(),
		disabled: map[ActionID]bool{},
		hover:    a.hover,
		hovered:  a.hovered,
		pressed:  a.pressed,
		status:   a.status,
		prompt:   a.prompt,
		about:    a.about,
	}
	if a.tip != "" && !a.prompt.Active() {
		st.status = a.tip
	}
	for _, act := range actionTable {
		if !a.Enabled(act.ID) {
			st.disabled[act.ID] = true
		}
	}
	if !a.ed.Empty() {
		info := a.ed.Info()
		st.info = fmt.Sprintf("%dx%d %s", info.Width, info.Height, info.Format)
	}
	return st
}

// painter owns the button caches and lives on the paint goroutine.
type painter struct {
	theme   *theme.Theme
	buttons map[ActionID]*CacheButton
}

func newPainter(th *theme.Theme) *painter {
	return &painter{theme: th, buttons: map[ActionID]*CacheButton{}}
}

func (p *painter) button(id ActionID, r image.Rectangle) *CacheButton {
	cb, ok := p.buttons[id]
	if !ok {
		cb = &CacheButton{Button: &ActionButton{label: lookupAction(id).Label, theme: p.theme, rect: r}}
		p.buttons[id] = cb
	}
	cb.SetRect(r)
	return cb
}

// paint renders st into dst. It returns false when ctx was cancelled part
// way through.
func (p *painter) paint(ctx context.Context, dst *image.RGBA, st paintState) bool {
	th := p.theme
	l := st.layout
	render.Canvas(dst, l.Canvas, st.display, render.Style{
		Background:   th.Background,
		CheckerLight: th.CheckerLight,
		CheckerDark:  th.CheckerDark,
		Shadow:       render.ShadowOptions{Radius: 6, Offset: image.Pt(5, 5), Color: th.Shadow},
	})
	if st.display == nil {
		drawCentered(dst, l.Canvas, "No image", messageFace, th.Foreground)
	}
	if ctx.Err() != nil {
		return false
	}

	fill(dst, l.Toolbar, th.ToolbarBackground)
	if !l.Dock.Empty() {
		fill(dst, l.Dock, th.DockBackground)
		drawText(dst, l.DockHeader(), DockTitle, basicfont.Face7x13, th.Foreground, 8)
	}
	for _, b := range l.Buttons {
		state := StateDefault
		switch {
		case st.disabled[b.ID]:
			state = StateDisabled
		case st.hovered && st.hover == b.ID && st.pressed:
			state = StatePressed
		case st.hovered && st.hover == b.ID:
			state = StateHover
		}
		r := b.Rect.Intersect(dst.Bounds())
		if r.Empty() {
			continue
		}
		p.button(b.ID, b.Rect).Draw(dst, state)
	}
	if ctx.Err() != nil {
		return false
	}

	if st.prompt.Active() {
		fill(dst, l.Status, th.PromptBackground)
		drawText(dst, l.Status, st.prompt.Title()+": "+st.prompt.Text+"|", basicfont.Face7x13, th.PromptText, 6)
	} else {
		fill(dst, l.Status, th.StatusBackground)
		drawText(dst, l.Status, st.status, basicfont.Face7x13, th.StatusText, 6)
		if st.info != "" {
			d := &font.Drawer{Face: basicfont.Face7x13}
			w := d.MeasureString(st.info).Ceil()
			r := l.Status
			r.Min.X = max(r.Max.X-w-12, r.Min.X)
			drawText(dst, r, st.info, basicfont.Face7x13, th.StatusText, 6)
		}
	}

	if st.about {
		box := aboutBox(l.Size)
		fill(dst, box, th.PromptBackground)
		drawRect(dst, box, th.ButtonBorder)
		title := box
		title.Max.Y = box.Min.Y + aboutHeight/2
		drawCentered(dst, title, AboutTitle, titleFace, th.PromptText)
		body := box
		body.Min.Y = title.Max.Y
		drawCentered(dst, body, AboutText, basicfont.Face7x13, th.PromptText)
	}
	return ctx.Err() == nil
}

func aboutBox(size image.Point) image.Rectangle {
	x := (size.X - aboutWidth) / 2
	y := (size.Y - aboutHeight) / 2
	return image.Rect(x, y, x+aboutWidth, y+aboutHeight)
}

func fill(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// drawText writes s left aligned and vertically centred in r.
func drawText(dst draw.Image, r image.Rectangle, s string, face font.Face, c color.Color, pad int) {
	if s == "" || r.Empty() {
		return
	}
	m := face.Metrics()
	y := r.Min.Y + (r.Dy()+m.Ascent.Ceil()-m.Descent.Ceil())/2
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: face, Dot: fixed.P(r.Min.X+pad, y)}
	d.DrawString(s)
}

func drawCentered(dst draw.Image, r image.Rectangle, s string, face font.Face, c color.Color) {
	if r.Empty() {
		return
	}
	d := &font.Drawer{Face: face}
	w := d.MeasureString(s).Ceil()
	drawText(dst, r, s, face, c, (r.Dx()-w)/2)
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, p *painter, st paintState) bool {
	if st.layout.Size.X <= 0 || st.layout.Size.Y <= 0 {
		return true
	}
	b, err := s.NewBuffer(st.layout.Size)
	if err != nil {
		log.Printf("new buffer: %v", err)
		return false
	}
	defer b.Release()
	if !p.paint(ctx, b.RGBA(), st) {
		return false
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
	return true
}
