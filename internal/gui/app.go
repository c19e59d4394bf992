// Package gui is the windowed front end of the editor: a toolbar, an edit
// tools dock, the canvas and a status bar, driven by shiny.
package gui

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/example/photoedit/internal/clipboard"
	"github.com/example/photoedit/internal/codec"
	"github.com/example/photoedit/internal/editor"
	"github.com/example/photoedit/internal/notify"
	"github.com/example/photoedit/internal/printing"
	"github.com/example/photoedit/internal/theme"
	"golang.org/x/mobile/event/key"
)

const (
	// WindowTitle names the main window.
	WindowTitle = "Photo Editor"
	// AboutTitle and AboutText fill the about box.
	AboutTitle = "About Creator"
	AboutText  = "Created by Hardik Bhimani"

	defaultSaveName = "untitled.png"
	printTimeout    = 30 * time.Second
)

// DefaultWindowSize is the requested window size before clamping to the
// monitor.
var DefaultWindowSize = image.Pt(1366, 768)

// Clipboard access is swapped in tests.
var (
	writeClipboard = clipboard.WriteImage
	readClipboard  = clipboard.ReadImage
)

// App holds the window state around an Editor. Every method runs on the
// event goroutine; the painter only sees snapshots.
type App struct {
	ed       *editor.Editor
	theme    *theme.Theme
	notifier *notify.Notifier
	spooler  printing.Spooler
	job      printing.Job
	openDir  string
	saveDir  string
	want     image.Point

	size    image.Point
	dock    bool
	layout  Layout
	status  string
	tip     string
	hover   ActionID
	hovered bool
	pressed bool
	prompt  Prompt
	about   bool
	quit    bool

	onClose   func()
	closeOnce sync.Once
	err       error
}

// Option modifies an App during creation.
type Option func(*App)

// WithEditor sets the editor the window drives.
func WithEditor(ed *editor.Editor) Option { return func(a *App) { a.ed = ed } }

// WithTheme sets the colours.
func WithTheme(th *theme.Theme) Option { return func(a *App) { a.theme = th } }

// WithNotifier sets the notifier for save, print and copy events.
func WithNotifier(n *notify.Notifier) Option { return func(a *App) { a.notifier = n } }

// WithSpooler sets where printed pages go.
func WithSpooler(sp printing.Spooler) Option { return func(a *App) { a.spooler = sp } }

// WithPrintJob sets the paper, resolution and margins used by Print.
func WithPrintJob(job printing.Job) Option { return func(a *App) { a.job = job } }

// WithOpenDir sets the directory the open prompt starts in.
func WithOpenDir(dir string) Option { return func(a *App) { a.openDir = dir } }

// WithSaveDir sets the directory the save prompt starts in.
func WithSaveDir(dir string) Option { return func(a *App) { a.saveDir = dir } }

// WithWindowSize sets the requested window size.
func WithWindowSize(w, h int) Option { return func(a *App) { a.want = image.Pt(w, h) } }

// WithDock shows or hides the edit tools dock at start up.
func WithDock(show bool) Option { return func(a *App) { a.dock = show } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *App) { a.onClose = fn } }

// New creates an App with the provided options.
func New(opts ...Option) *App {
	a := &App{dock: true}
	for _, o := range opts {
		o(a)
	}
	if a.ed == nil {
		a.ed = editor.New()
	}
	if a.theme == nil {
		a.theme = theme.Default()
	}
	if a.spooler == nil {
		a.spooler = printing.CommandSpooler{}
	}
	if a.want.X <= 0 || a.want.Y <= 0 {
		a.want = DefaultWindowSize
	}
	a.Resize(a.want)
	return a
}

// Editor returns the editor the window drives.
func (a *App) Editor() *editor.Editor { return a.ed }

// Status returns the status bar message.
func (a *App) Status() string { return a.status }

// Quitting reports whether Quit was requested.
func (a *App) Quitting() bool { return a.quit }

// Resize lays the window out for size and refits the Display Projection.
func (a *App) Resize(size image.Point) {
	a.size = size
	a.relayout()
}

func (a *App) relayout() {
	a.layout = NewLayout(a.size, a.dock)
	area := a.layout.DisplayArea()
	a.ed.SetDisplayArea(area.X, area.Y)
}

// Enabled reports whether the action can run in the current state.
func (a *App) Enabled(id ActionID) bool {
	return !lookupAction(id).NeedsImage || !a.ed.Empty()
}

// Do runs an action as if its button was clicked.
func (a *App) Do(id ActionID) {
	if !a.Enabled(id) {
		a.status = "Load an image first"
		return
	}
	switch id {
	case ActOpen:
		a.prompt.Start(PromptOpen, dirPrefix(a.openDir))
		a.status = ""
	case ActSave:
		a.prompt.Start(PromptSave, a.suggestSavePath())
		a.status = ""
	case ActPrint:
		a.print()
	case ActClear:
		a.ed.Clear()
		a.status = "Image cleared"
	case ActQuit:
		a.quit = true
	case ActRotate90, ActRotate180:
		deg := 90
		if id == ActRotate180 {
			deg = 180
		}
		if _, err := a.ed.RotateClockwise(deg); err != nil {
			a.fail("rotate", err)
			return
		}
		a.status = fmt.Sprintf("Rotated %d° clockwise", deg)
	case ActFlipH:
		a.ed.FlipHorizontal()
		a.status = "Flipped horizontally"
	case ActFlipV:
		a.ed.FlipVertical()
		a.status = "Flipped vertically"
	case ActHalf:
		if !a.ed.ResizeHalf() {
			a.status = "Image is too small to halve"
			return
		}
		info := a.ed.Info()
		a.status = fmt.Sprintf("Resized to %dx%d", info.Width, info.Height)
	case ActCopy:
		a.copy()
	case ActPaste:
		a.paste()
	case ActAbout:
		a.about = true
	case ActToggleDock:
		a.dock = !a.dock
		a.relayout()
	}
}

// Open loads path into the editor. Files that do not look like images are
// rejected without touching the current one.
func (a *App) Open(path string) error {
	path = expandHome(path)
	if !codec.AcceptsOpen(path) {
		a.status = fmt.Sprintf("Unsupported file type %q", filepath.Ext(path))
		return fmt.Errorf("%s: %w", path, codec.ErrUnsupportedFormat)
	}
	if err := a.ed.Load(path); err != nil {
		a.fail("open", err)
		return err
	}
	a.openDir = filepath.Dir(path)
	info := a.ed.Info()
	a.status = fmt.Sprintf("Opened %s (%dx%d)", filepath.Base(path), info.Width, info.Height)
	return nil
}

// SaveAs writes the image to path.
func (a *App) SaveAs(path string) error {
	path = expandHome(path)
	if err := a.ed.Save(path); err != nil {
		log.Printf("save: %v", err)
		a.status = "File Not Saved"
		return err
	}
	a.saveDir = filepath.Dir(path)
	a.status = "Saved " + path
	a.notifier.Save(path)
	return nil
}

func (a *App) print() {
	img, err := a.ed.PrintSource()
	if err != nil {
		a.fail("print", err)
		return
	}
	job := a.job
	if job.Title == "" {
		job.Title = a.title()
	}
	ctx, cancel := context.WithTimeout(context.Background(), printTimeout)
	defer cancel()
	if err := printing.Print(ctx, a.spooler, img, job); err != nil {
		a.fail("print", err)
		return
	}
	a.status = "Sent " + job.Title + " to the printer"
	a.notifier.Print(job.Title)
}

func (a *App) copy() {
	src := a.ed.Source()
	if err := writeClipboard(src); err != nil {
		a.fail("copy", err)
		return
	}
	info := a.ed.Info()
	detail := fmt.Sprintf("%dx%d", info.Width, info.Height)
	a.status = "Copied " + detail + " image to clipboard"
	a.notifier.Copy(detail, src)
}

func (a *App) paste() {
	img, err := readClipboard()
	if err != nil {
		a.fail("paste", err)
		return
	}
	if err := a.ed.SetImage(img, "clipboard"); err != nil {
		a.fail("paste", err)
		return
	}
	info := a.ed.Info()
	a.status = fmt.Sprintf("Pasted %dx%d image", info.Width, info.Height)
}

func (a *App) fail(op string, err error) {
	log.Printf("%s: %v", op, err)
	switch {
	case errors.Is(err, clipboard.ErrNoImage):
		a.status = "Clipboard has no image"
	default:
		a.status = fmt.Sprintf("%s failed: %v", strings.ToUpper(op[:1])+op[1:], err)
	}
}

func (a *App) title() string {
	if p := a.ed.Info().Path; p != "" {
		return filepath.Base(p)
	}
	return WindowTitle
}

func (a *App) suggestSavePath() string {
	info := a.ed.Info()
	name := defaultSaveName
	if info.Path != "" {
		name = filepath.Base(info.Path)
	}
	dir := a.saveDir
	if dir == "" && info.Path != "" {
		dir = filepath.Dir(info.Path)
	}
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

func dirPrefix(dir string) string {
	if dir == "" {
		return ""
	}
	return strings.TrimSuffix(dir, string(filepath.Separator)) + string(filepath.Separator)
}

// HandleKey processes a key event and reports whether a repaint is needed.
func (a *App) HandleKey(e key.Event) bool {
	if e.Direction == key.DirRelease {
		return false
	}
	if a.about {
		a.about = false
		return true
	}
	if a.prompt.Active() {
		kind := a.prompt.Kind
		res, text := a.prompt.Key(e.Rune, e.Code)
		switch res {
		case PromptAccepted:
			if kind == PromptOpen {
				_ = a.Open(text)
			} else {
				_ = a.SaveAs(text)
			}
		case PromptCancelled:
			if kind == PromptOpen {
				a.status = "No image selected"
			} else {
				a.status = "File Not Saved"
			}
		}
		return true
	}
	id, ok := actionForKey(e)
	if !ok {
		return false
	}
	a.Do(id)
	return true
}

// HandleMouse processes pointer movement and left button presses at p and
// reports whether a repaint is needed.
func (a *App) HandleMouse(p image.Point, press, release bool) bool {
	if a.about {
		if press {
			a.about = false
			return true
		}
		return false
	}
	id, over := a.layout.Hit(p)
	changed := over != a.hovered || (over && id != a.hover)
	a.hover, a.hovered = id, over
	a.tip = ""
	if over {
		a.tip = lookupAction(id).Tip
	}
	if release && a.pressed {
		a.pressed = false
		changed = true
	}
	if press && over && !a.prompt.Active() {
		a.pressed = true
		a.Do(id)
		return true
	}
	return changed
}
