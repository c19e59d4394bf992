package gui

import (
	"context"
	"image"
	"sync"

	monitor "github.com/example/photoedit/internal/screen"
	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
)

// Run executes the UI loop using shiny's driver and returns once the window
// is closed.
func (a *App) Run() error {
	driver.Main(a.Main)
	return a.err
}

func (a *App) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Main runs the event loop on s.
func (a *App) Main(s screen.Screen) {
	want := monitor.WindowSize(a.want)
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: want.X, Height: want.Y, Title: WindowTitle})
	if err != nil {
		a.err = err
		return
	}
	defer w.Release()
	defer a.notifyClose()
	a.Resize(want)

	p := newPainter(a.theme)
	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	var wg sync.WaitGroup
	paintCh := make(chan paintState, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			done := drawFrame(ctx, s, w, p, st)
			paintMu.Lock()
			paintCancel = nil
			if done {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()
	defer func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
		close(paintCh)
		wg.Wait()
	}()

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			a.Resize(image.Pt(e.WidthPx, e.HeightPx))
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			st := a.snapshot()
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
		case mouse.Event:
			pt := image.Pt(int(e.X), int(e.Y))
			press := e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress
			release := e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease
			if a.HandleMouse(pt, press, release) {
				w.Send(paint.Event{})
			}
		case key.Event:
			if a.HandleKey(e) {
				w.Send(paint.Event{})
			}
		case error:
			a.err = e
		}
		if a.quit {
			return
		}
	}
}
