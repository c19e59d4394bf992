package gui

import "image"

const (
	toolbarHeight = 28
	statusHeight  = 24
	dockWidth     = 200
	dockHeader    = 22
	canvasPadding = 12

	toolbarGap   = 4
	dockButtonH  = 32
	dockSpacing  = 8
	labelCharW   = 7
	labelPadding = 16
)

// DockTitle heads the edit tools panel.
const DockTitle = "Edit Image Tools"

type placedButton struct {
	ID   ActionID
	Rect image.Rectangle
}

// Layout splits the window into toolbar, dock, canvas and status bar.
type Layout struct {
	Size    image.Point
	Toolbar image.Rectangle
	Dock    image.Rectangle
	Status  image.Rectangle
	Canvas  image.Rectangle
	Buttons []placedButton
}

func labelWidth(label string) int {
	return len([]rune(label))*labelCharW + labelPadding
}

// NewLayout places every button for a window of the given size. The dock is
// only laid out when dock is true.
func NewLayout(size image.Point, dock bool) Layout {
	if size.X < 0 {
		size.X = 0
	}
	if size.Y < 0 {
		size.Y = 0
	}
	l := Layout{Size: size}
	l.Toolbar = image.Rect(0, 0, size.X, min(toolbarHeight, size.Y))
	l.Status = image.Rect(0, max(size.Y-statusHeight, l.Toolbar.Max.Y), size.X, size.Y)

	x := toolbarGap
	for _, id := range toolbarActions {
		w := labelWidth(lookupAction(id).Label)
		l.Buttons = append(l.Buttons, placedButton{ID: id, Rect: image.Rect(x, 2, x+w, toolbarHeight-2)})
		x += w + toolbarGap
	}

	right := size.X
	if dock {
		left := max(size.X-dockWidth, 0)
		l.Dock = image.Rect(left, l.Toolbar.Max.Y, size.X, l.Status.Min.Y)
		right = left
		y := l.Dock.Min.Y + dockHeader + dockSpacing
		for _, id := range dockActions {
			r := image.Rect(l.Dock.Min.X+dockSpacing, y, l.Dock.Max.X-dockSpacing, y+dockButtonH)
			l.Buttons = append(l.Buttons, placedButton{ID: id, Rect: r})
			y += dockButtonH + dockSpacing
		}
	}
	l.Canvas = image.Rect(0, l.Toolbar.Max.Y, right, l.Status.Min.Y)
	return l
}

// DockHeader is the strip holding DockTitle.
func (l Layout) DockHeader() image.Rectangle {
	if l.Dock.Empty() {
		return image.Rectangle{}
	}
	r := l.Dock
	r.Max.Y = min(r.Min.Y+dockHeader, r.Max.Y)
	return r
}

// ImageArea is the part of the canvas the picture is fitted into.
func (l Layout) ImageArea() image.Rectangle {
	return l.Canvas.Inset(canvasPadding)
}

// DisplayArea is the size the Display Projection should be fitted to.
func (l Layout) DisplayArea() image.Point {
	return l.ImageArea().Size()
}

// Hit returns the button under p. Buttons clipped by the window edge are
// still hit inside their visible part.
func (l Layout) Hit(p image.Point) (ActionID, bool) {
	bounds := image.Rectangle{Max: l.Size}
	for _, b := range l.Buttons {
		if p.In(b.Rect.Intersect(bounds)) {
			return b.ID, true
		}
	}
	return 0, false
}
