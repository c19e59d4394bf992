package gui

import (
	"image"
	"testing"
)

func TestLayoutWithDock(t *testing.T) {
	l := NewLayout(image.Pt(800, 600), true)
	if l.Toolbar != image.Rect(0, 0, 800, 28) {
		t.Fatalf("unexpected toolbar %v", l.Toolbar)
	}
	if l.Status != image.Rect(0, 576, 800, 600) {
		t.Fatalf("unexpected status bar %v", l.Status)
	}
	if l.Dock != image.Rect(600, 28, 800, 576) {
		t.Fatalf("unexpected dock %v", l.Dock)
	}
	if l.Canvas != image.Rect(0, 28, 600, 576) {
		t.Fatalf("unexpected canvas %v", l.Canvas)
	}
	if got := l.DisplayArea(); got != image.Pt(576, 524) {
		t.Fatalf("expected 576x524 display area, got %v", got)
	}
	if l.Buttons[0].ID != ActOpen || l.Buttons[0].Rect != image.Rect(4, 2, 48, 26) {
		t.Fatalf("unexpected first button %+v", l.Buttons[0])
	}
	if got := len(l.Buttons); got != len(toolbarActions)+len(dockActions) {
		t.Fatalf("expected %d buttons, got %d", len(toolbarActions)+len(dockActions), got)
	}
	if id, ok := l.Hit(image.Pt(10, 10)); !ok || id != ActOpen {
		t.Fatalf("expected Open under (10,10), got %v %v", id, ok)
	}
	if id, ok := l.Hit(image.Pt(700, 70)); !ok || id != ActRotate90 {
		t.Fatalf("expected Rotate 90 under (700,70), got %v %v", id, ok)
	}
	if _, ok := l.Hit(image.Pt(300, 300)); ok {
		t.Fatal("expected no button on the canvas")
	}
	if l.DockHeader() != image.Rect(600, 28, 800, 50) {
		t.Fatalf("unexpected dock header %v", l.DockHeader())
	}
}

func TestLayoutWithoutDock(t *testing.T) {
	l := NewLayout(image.Pt(800, 600), false)
	if !l.Dock.Empty() || !l.DockHeader().Empty() {
		t.Fatalf("expected no dock, got %v", l.Dock)
	}
	if l.Canvas != image.Rect(0, 28, 800, 576) {
		t.Fatalf("unexpected canvas %v", l.Canvas)
	}
	for _, b := range l.Buttons {
		for _, id := range dockActions {
			if b.ID == id {
				t.Fatalf("dock action %v laid out without a dock", id)
			}
		}
	}
}

func TestLayoutButtonsDoNotOverlap(t *testing.T) {
	l := NewLayout(image.Pt(1366, 768), true)
	for i, a := range l.Buttons {
		for _, b := range l.Buttons[i+1:] {
			if a.Rect.Overlaps(b.Rect) {
				t.Fatalf("buttons %v and %v overlap", a.ID, b.ID)
			}
		}
	}
}

func TestLayoutTinyWindow(t *testing.T) {
	l := NewLayout(image.Pt(20, 30), true)
	if a := l.DisplayArea(); a.X != 0 || a.Y != 0 {
		t.Fatalf("expected empty display area, got %v", a)
	}
	if _, ok := l.Hit(image.Pt(100, 10)); ok {
		t.Fatal("expected clipped buttons outside the window to miss")
	}
}
