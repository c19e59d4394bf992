package editor

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/photoedit/internal/codec"
	"github.com/example/photoedit/internal/transform"
)

func writeSample(t *testing.T, dir string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 2), G: uint8(y * 3), B: 90, A: 255})
		}
	}
	path := filepath.Join(dir, "sample.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create sample: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode sample: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close sample: %v", err)
	}
	return path
}

func loaded(t *testing.T, w, h int, opts ...Option) *Editor {
	t.Helper()
	e := New(opts...)
	if err := e.Load(writeSample(t, t.TempDir(), w, h)); err != nil {
		t.Fatalf("load: %v", err)
	}
	return e
}

func equalPix(a, b *image.RGBA) bool {
	if a.Bounds() != b.Bounds() || len(a.Pix) != len(b.Pix) {
		return false
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			return false
		}
	}
	return true
}

func TestEndToEndRotateAndSave(t *testing.T) {
	dir := t.TempDir()
	e := New(WithDisplayArea(200, 200))
	if err := e.Load(writeSample(t, dir, 100, 60)); err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok, err := e.RotateClockwise(90); err != nil || !ok {
		t.Fatalf("rotate: ok=%v err=%v", ok, err)
	}
	if info := e.Info(); info.Width != 60 || info.Height != 100 {
		t.Fatalf("expected 60x100, got %dx%d", info.Width, info.Height)
	}
	out := filepath.Join(dir, "out.jpg")
	if err := e.Save(out); err != nil {
		t.Fatalf("save: %v", err)
	}
	img, format, err := codec.ReadFile(out)
	if err != nil {
		t.Fatalf("decode saved file: %v", err)
	}
	if format != "jpeg" {
		t.Fatalf("expected jpeg, got %s", format)
	}
	if img.Bounds().Dx() != 60 || img.Bounds().Dy() != 100 {
		t.Fatalf("expected 60x100 on disk, got %v", img.Bounds().Size())
	}
}

func TestFlipsAreInvolutions(t *testing.T) {
	e := loaded(t, 13, 9)
	orig := e.Source()
	e.FlipHorizontal()
	if equalPix(e.Source(), orig) {
		t.Fatal("expected horizontal flip to change pixels")
	}
	e.FlipHorizontal()
	if !equalPix(e.Source(), orig) {
		t.Fatal("expected double horizontal flip to restore image")
	}
	e.FlipVertical()
	e.FlipVertical()
	if !equalPix(e.Source(), orig) {
		t.Fatal("expected double vertical flip to restore image")
	}
}

func TestTwoQuarterTurnsMatchHalfTurn(t *testing.T) {
	a := loaded(t, 11, 7, WithRotateFilter(transform.Nearest))
	b := loaded(t, 11, 7, WithRotateFilter(transform.Nearest))
	if _, err := a.RotateClockwise(90); err != nil {
		t.Fatal(err)
	}
	if _, err := a.RotateClockwise(90); err != nil {
		t.Fatal(err)
	}
	if _, err := b.RotateClockwise(180); err != nil {
		t.Fatal(err)
	}
	if !equalPix(a.Source(), b.Source()) {
		t.Fatal("expected two quarter turns to equal one half turn")
	}
}

func TestRotateSwapsDimensions(t *testing.T) {
	e := loaded(t, 30, 10)
	if _, err := e.RotateClockwise(90); err != nil {
		t.Fatal(err)
	}
	if b := e.Source().Bounds(); b.Dx() != 10 || b.Dy() != 30 {
		t.Fatalf("expected 10x30, got %v", b.Size())
	}
	if _, err := e.RotateClockwise(180); err != nil {
		t.Fatal(err)
	}
	if b := e.Source().Bounds(); b.Dx() != 10 || b.Dy() != 30 {
		t.Fatalf("expected half turn to keep 10x30, got %v", b.Size())
	}
}

func TestRotateUnsupportedAngleKeepsImage(t *testing.T) {
	e := loaded(t, 8, 4)
	before := e.Source()
	ok, err := e.RotateClockwise(45)
	if !errors.Is(err, ErrUnsupportedAngle) {
		t.Fatalf("expected ErrUnsupportedAngle, got %v", err)
	}
	if ok || e.Source() != before {
		t.Fatal("expected image to be unchanged")
	}
}

func TestResizeHalfCompounds(t *testing.T) {
	e := loaded(t, 101, 61)
	e.ResizeHalf()
	if info := e.Info(); info.Width != 50 || info.Height != 30 {
		t.Fatalf("expected 50x30, got %dx%d", info.Width, info.Height)
	}
	e.ResizeHalf()
	if info := e.Info(); info.Width != 25 || info.Height != 15 {
		t.Fatalf("expected 25x15, got %dx%d", info.Width, info.Height)
	}
}

func TestResizeHalfSinglePixelIsNoop(t *testing.T) {
	e := loaded(t, 1, 6)
	before := e.Source()
	if e.ResizeHalf() {
		t.Fatal("expected no-op")
	}
	if e.Source() != before {
		t.Fatal("expected image to be unchanged")
	}
}

func TestLoadMissingKeepsPrevious(t *testing.T) {
	e := loaded(t, 10, 5)
	before := e.Source()
	info := e.Info()
	err := e.Load(filepath.Join(t.TempDir(), "missing.png"))
	var lerr *LoadError
	if !errors.As(err, &lerr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped not-exist error, got %v", err)
	}
	if e.Source() != before || e.Info() != info {
		t.Fatal("expected previous image to survive failed load")
	}
}

func TestLoadUndecodable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.png")
	if err := os.WriteFile(path, []byte("junk"), 0o644); err != nil {
		t.Fatal(err)
	}
	e := New()
	var lerr *LoadError
	if err := e.Load(path); !errors.As(err, &lerr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if !e.Empty() {
		t.Fatal("expected editor to stay empty")
	}
}

func TestSaveWithoutImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	err := New().Save(path)
	var serr *SaveError
	if !errors.As(err, &serr) || !errors.Is(err, ErrNoImage) {
		t.Fatalf("expected SaveError wrapping ErrNoImage, got %v", err)
	}
	if _, statErr := os.Stat(path); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("expected no file, got %v", statErr)
	}
}

func TestSaveUnwritable(t *testing.T) {
	e := loaded(t, 4, 4)
	path := filepath.Join(t.TempDir(), "nope", "out.png")
	var serr *SaveError
	if err := e.Save(path); !errors.As(err, &serr) {
		t.Fatalf("expected SaveError, got %v", err)
	}
}

func TestClearThenTransformsAreNoops(t *testing.T) {
	e := loaded(t, 10, 10, WithDisplayArea(50, 50))
	e.Clear()
	if !e.Empty() || e.Display() != nil {
		t.Fatal("expected empty state after clear")
	}
	if ok, err := e.RotateClockwise(90); ok || err != nil {
		t.Fatalf("expected rotate no-op, got ok=%v err=%v", ok, err)
	}
	if ok, err := e.RotateClockwise(180); ok || err != nil {
		t.Fatalf("expected rotate no-op, got ok=%v err=%v", ok, err)
	}
	if e.FlipHorizontal() || e.FlipVertical() || e.ResizeHalf() {
		t.Fatal("expected flips and resize to be no-ops")
	}
	if !e.Empty() || e.Info() != (Info{}) {
		t.Fatal("expected editor to stay empty")
	}
}

func TestDisplayProjectionTracksSource(t *testing.T) {
	e := loaded(t, 100, 60, WithDisplayArea(50, 50))
	d := e.Display()
	if d == nil || d.Bounds().Dx() != 50 || d.Bounds().Dy() != 30 {
		t.Fatalf("expected 50x30 projection, got %v", d)
	}
	if _, err := e.RotateClockwise(90); err != nil {
		t.Fatal(err)
	}
	if d := e.Display(); d.Bounds().Dx() != 30 || d.Bounds().Dy() != 50 {
		t.Fatalf("expected 30x50 projection after rotate, got %v", d.Bounds().Size())
	}
}

func TestDisplayAreaChangesKeepSource(t *testing.T) {
	e := loaded(t, 100, 60, WithDisplayArea(20, 20))
	src := e.Source()
	for _, size := range []image.Point{{7, 7}, {300, 300}, {0, 10}, {64, 48}} {
		e.SetDisplayArea(size.X, size.Y)
		if e.Source() != src {
			t.Fatalf("display area %v replaced the source image", size)
		}
	}
	if d := e.Display(); d.Bounds().Dx() != 64 || d.Bounds().Dy() != 38 {
		t.Fatalf("expected 64x38 projection, got %v", d.Bounds().Size())
	}
	e.SetDisplayArea(0, 10)
	if e.Display() != nil {
		t.Fatal("expected no projection for empty area")
	}
}

func TestSetImage(t *testing.T) {
	e := New()
	img := image.NewNRGBA(image.Rect(5, 5, 25, 15))
	if err := e.SetImage(img, "clipboard"); err != nil {
		t.Fatalf("set image: %v", err)
	}
	if info := e.Info(); info.Width != 20 || info.Height != 10 || info.Format != "clipboard" {
		t.Fatalf("unexpected info %+v", info)
	}
	if e.Source().Bounds().Min != (image.Point{}) {
		t.Fatalf("expected zero origin, got %v", e.Source().Bounds())
	}
	var lerr *LoadError
	if err := e.SetImage(nil, "clipboard"); !errors.As(err, &lerr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if e.Empty() {
		t.Fatal("expected previous image to survive")
	}
}

func TestPrintSource(t *testing.T) {
	if _, err := New().PrintSource(); !errors.Is(err, ErrNoImage) {
		t.Fatalf("expected ErrNoImage, got %v", err)
	}
	e := loaded(t, 40, 20)
	img, err := e.PrintSource()
	if err != nil {
		t.Fatal(err)
	}
	if img != image.Image(e.Source()) {
		t.Fatal("expected source image without a display area")
	}
	e.SetDisplayArea(10, 10)
	if img, _ := e.PrintSource(); img.Bounds().Dx() != 10 || img.Bounds().Dy() != 5 {
		t.Fatalf("expected 10x5 projection, got %v", img.Bounds().Size())
	}
}
