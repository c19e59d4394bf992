// Package printing renders images onto paper-sized pages and hands them to a
// spooler.
package printing

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	xdraw "golang.org/x/image/draw"
)

// Surface is a drawing target with a printable area.
type Surface interface {
	draw.Image
	Printable() image.Rectangle
}

// Paper is a named sheet size in millimetres.
type Paper struct {
	Name   string
	Width  float64
	Height float64
}

// Papers lists the known sheet sizes.
var Papers = []Paper{
	{Name: "a4", Width: 210, Height: 297},
	{Name: "a5", Width: 148, Height: 210},
	{Name: "letter", Width: 215.9, Height: 279.4},
	{Name: "legal", Width: 215.9, Height: 355.6},
}

const (
	DefaultPaper  = "a4"
	DefaultDPI    = 150
	DefaultMargin = 10.0
)

// ErrEmpty is returned when there is no image to print.
var ErrEmpty = errors.New("nothing to print")

// LookupPaper finds a paper by case-insensitive name.
func LookupPaper(name string) (Paper, error) {
	if name == "" {
		name = DefaultPaper
	}
	for _, p := range Papers {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Paper{}, fmt.Errorf("unknown paper %q", name)
}

// Page is an in-memory Surface filled white.
type Page struct {
	*image.RGBA
	printable image.Rectangle
}

// Printable returns the area inside the margins.
func (p *Page) Printable() image.Rectangle { return p.printable }

func mmToDots(mm float64, dpi int) int {
	return int(mm*float64(dpi)/25.4 + 0.5)
}

// NewPage creates a white page for paper at dpi with marginMM on every side.
func NewPage(paper Paper, dpi int, marginMM float64) (*Page, error) {
	if dpi <= 0 {
		return nil, fmt.Errorf("invalid dpi %d", dpi)
	}
	if marginMM < 0 {
		return nil, fmt.Errorf("invalid margin %v", marginMM)
	}
	w, h := mmToDots(paper.Width, dpi), mmToDots(paper.Height, dpi)
	m := mmToDots(marginMM, dpi)
	printable := image.Rect(m, m, w-m, h-m)
	if printable.Empty() {
		return nil, fmt.Errorf("margin %vmm leaves no printable area on %s", marginMM, paper.Name)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return &Page{RGBA: img, printable: printable}, nil
}

// FitRect returns the largest rectangle with the aspect ratio of size that
// fits inside printable, anchored at its top-left corner.
func FitRect(size image.Point, printable image.Rectangle) image.Rectangle {
	if size.X <= 0 || size.Y <= 0 || printable.Empty() {
		return image.Rectangle{}
	}
	pw, ph := printable.Dx(), printable.Dy()
	w, h := pw, size.Y*pw/size.X
	if h > ph {
		w, h = size.X*ph/size.Y, ph
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return image.Rectangle{Min: printable.Min, Max: printable.Min.Add(image.Pt(w, h))}
}

// Render scales img into the printable area of s and returns the rectangle
// that was painted.
func Render(s Surface, img image.Image) (image.Rectangle, error) {
	if img == nil || img.Bounds().Empty() {
		return image.Rectangle{}, ErrEmpty
	}
	r := FitRect(img.Bounds().Size(), s.Printable())
	if r.Empty() {
		return image.Rectangle{}, fmt.Errorf("printable area %v is empty", s.Printable())
	}
	var dst draw.Image = s
	if p, ok := s.(*Page); ok {
		dst = p.RGBA
	}
	xdraw.CatmullRom.Scale(dst, r, img, img.Bounds(), xdraw.Over, nil)
	return r, nil
}

// Spooler delivers a rendered page.
type Spooler interface {
	Print(ctx context.Context, page image.Image, title string) error
}

// FileSpooler writes pages as PNG to Path.
type FileSpooler struct {
	Path string
}

func (f FileSpooler) Print(ctx context.Context, page image.Image, title string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := writePNG(f.Path, page); err != nil {
		return fmt.Errorf("print %s: %w", title, err)
	}
	return nil
}

// CommandSpooler writes the page to a temporary PNG and runs Command with
// the file as its last argument.
type CommandSpooler struct {
	// Command is split on whitespace. Empty means "lp".
	Command string
}

// DefaultCommand is used when CommandSpooler.Command is empty.
const DefaultCommand = "lp"

// execCommand is swapped in tests.
var execCommand = exec.CommandContext

func (c CommandSpooler) Print(ctx context.Context, page image.Image, title string) error {
	args := strings.Fields(c.Command)
	if len(args) == 0 {
		args = []string{DefaultCommand}
	}
	dir, err := os.MkdirTemp("", "photoedit-print-")
	if err != nil {
		return err
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			log.Printf("print cleanup: %v", err)
		}
	}()
	path := filepath.Join(dir, "page.png")
	if err := writePNG(path, page); err != nil {
		return err
	}
	if args[0] == DefaultCommand && title != "" {
		args = append(args, "-t", title)
	}
	args = append(args, path)
	cmd := execCommand(ctx, args[0], args[1:]...)
	if out, err := cmd.CombinedOutput(); err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%s: %w: %s", args[0], err, msg)
		}
		return fmt.Errorf("%s: %w", args[0], err)
	}
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		if cerr := f.Close(); cerr != nil {
			log.Printf("%s: close: %v", path, cerr)
		}
		return err
	}
	return f.Close()
}

// Job describes one print request.
type Job struct {
	Paper    Paper
	DPI      int
	MarginMM float64
	Title    string
}

// Print renders img onto a fresh page for job and sends it to sp.
func Print(ctx context.Context, sp Spooler, img image.Image, job Job) error {
	if img == nil || img.Bounds().Empty() {
		return ErrEmpty
	}
	dpi := job.DPI
	if dpi == 0 {
		dpi = DefaultDPI
	}
	paper := job.Paper
	if paper.Name == "" {
		paper, _ = LookupPaper(DefaultPaper)
	}
	page, err := NewPage(paper, dpi, job.MarginMM)
	if err != nil {
		return err
	}
	if _, err := Render(page, img); err != nil {
		return err
	}
	return sp.Print(ctx, page.RGBA, job.Title)
}
