package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/photoedit/internal/clipboard"
	"github.com/example/photoedit/internal/codec"
	"github.com/example/photoedit/internal/config"
	"github.com/example/photoedit/internal/editor"
	"github.com/example/photoedit/internal/notify"
)

func testRoot(t *testing.T) (*root, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	r := newRootFrom(config.New(), notify.New(notify.DefaultPreferences()))
	var stdout, stderr bytes.Buffer
	r.stdout, r.stderr = &stdout, &stderr
	return r, &stdout, &stderr
}

func writePNG(t *testing.T, dir string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 8), G: uint8(y * 8), B: 40, A: 255})
		}
	}
	path := filepath.Join(dir, "in.png")
	if err := codec.WriteFile(path, img, codec.Options{}); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	return path
}

func decodeSize(t *testing.T, path string) image.Point {
	t.Helper()
	img, _, err := codec.ReadFile(path)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return img.Bounds().Size()
}

func TestApplyPipeline(t *testing.T) {
	dir := t.TempDir()
	in := writePNG(t, dir, 30, 10)
	out := filepath.Join(dir, "out.jpg")
	r, _, stderr := testRoot(t)
	if err := r.Run([]string{"apply", "-file", in, "-output", out, "rotate90", "half", "flip-h"}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := decodeSize(t, out); got != image.Pt(5, 15) {
		t.Fatalf("expected 5x15, got %v", got)
	}
	if !strings.Contains(stderr.String(), "saved ") {
		t.Fatalf("expected saved message, got %q", stderr.String())
	}
}

func TestApplyDefaultsToInPlace(t *testing.T) {
	in := writePNG(t, t.TempDir(), 12, 8)
	cmd, err := parseApplyCmd([]string{"-file", in, "rotate270"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.Program() != "photoedit apply" {
		t.Fatalf("unexpected program %q", cmd.Program())
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := decodeSize(t, in); got != image.Pt(8, 12) {
		t.Fatalf("expected 8x12, got %v", got)
	}
}

func TestApplyUnknownOperation(t *testing.T) {
	_, err := parseApplyCmd([]string{"-file", "x.png", "spin"}, nil)
	if err == nil || !strings.Contains(err.Error(), `unknown operation "spin"`) {
		t.Fatalf("expected unknown operation error, got %v", err)
	}
}

func TestApplyRequiresInput(t *testing.T) {
	_, err := parseApplyCmd([]string{"half"}, nil)
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if help := uerr.Error(); !strings.Contains(help, "Usage: photoedit apply") || !strings.Contains(help, "-from-clipboard") {
		t.Fatalf("expected rendered help, got %q", help)
	}
}

func TestApplyClipboardRequiresOutput(t *testing.T) {
	_, err := parseApplyCmd([]string{"-from-clipboard", "half"}, nil)
	if want := "output file is required when reading from the clipboard"; err == nil || !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestApplyClipboardRoundTrip(t *testing.T) {
	var stored image.Image = image.NewRGBA(image.Rect(0, 0, 20, 6))
	oldRead, oldWrite := readClipboard, writeClipboard
	readClipboard = func() (image.Image, error) { return stored, nil }
	writeClipboard = func(img image.Image) error { stored = img; return nil }
	t.Cleanup(func() { readClipboard, writeClipboard = oldRead, oldWrite })

	r, _, stderr := testRoot(t)
	if err := r.Run([]string{"apply", "-from-clipboard", "-to-clipboard", "half"}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if stored.Bounds().Size() != image.Pt(10, 3) {
		t.Fatalf("expected 10x3 on the clipboard, got %v", stored.Bounds().Size())
	}
	if !strings.Contains(stderr.String(), "copied 10x3 image to clipboard") {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
}

func TestApplyClipboardError(t *testing.T) {
	oldRead := readClipboard
	readClipboard = func() (image.Image, error) { return nil, clipboard.ErrNoImage }
	t.Cleanup(func() { readClipboard = oldRead })

	cmd, err := parseApplyCmd([]string{"-from-clipboard", "-output", filepath.Join(t.TempDir(), "o.png"), "half"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); !errors.Is(err, clipboard.ErrNoImage) {
		t.Fatalf("expected wrapped clipboard error, got %v", err)
	}
}

func TestApplyClearCannotSave(t *testing.T) {
	dir := t.TempDir()
	in := writePNG(t, dir, 4, 4)
	out := filepath.Join(dir, "out.png")
	r, _, _ := testRoot(t)
	err := r.Run([]string{"apply", "-file", in, "-output", out, "clear"})
	var serr *editor.SaveError
	if !errors.As(err, &serr) || !errors.Is(err, editor.ErrNoImage) {
		t.Fatalf("expected SaveError wrapping ErrNoImage, got %v", err)
	}
}

func TestApplyMissingFile(t *testing.T) {
	r, _, _ := testRoot(t)
	err := r.Run([]string{"apply", "-file", filepath.Join(t.TempDir(), "missing.png"), "half"})
	var lerr *editor.LoadError
	if !errors.As(err, &lerr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
}

func TestInfo(t *testing.T) {
	in := writePNG(t, t.TempDir(), 30, 10)
	r, stdout, _ := testRoot(t)
	if err := r.Run([]string{"info", in}); err != nil {
		t.Fatalf("info: %v", err)
	}
	if want := in + ": 30x10 png\n"; stdout.String() != want {
		t.Fatalf("expected %q, got %q", want, stdout.String())
	}
}

func TestPrintToFile(t *testing.T) {
	dir := t.TempDir()
	in := writePNG(t, dir, 30, 10)
	page := filepath.Join(dir, "page.png")
	r, _, stderr := testRoot(t)
	if err := r.Run([]string{"print", "-dpi", "30", "-paper", "letter", "-output", page, in}); err != nil {
		t.Fatalf("print: %v", err)
	}
	// Letter at 30dpi.
	if got := decodeSize(t, page); got != image.Pt(255, 330) {
		t.Fatalf("expected 255x330 page, got %v", got)
	}
	if !strings.Contains(stderr.String(), "wrote page "+page) {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
}

func TestPrintUnknownPaper(t *testing.T) {
	if _, err := parsePrintCmd([]string{"-paper", "a0", "in.png"}, nil); err == nil || !strings.Contains(err.Error(), `unknown paper "a0"`) {
		t.Fatalf("expected unknown paper error, got %v", err)
	}
}

func TestRootUsage(t *testing.T) {
	r, _, _ := testRoot(t)
	for _, args := range [][]string{nil, {"bogus"}} {
		err := r.Run(args)
		var uerr *UsageError
		if !errors.As(err, &uerr) {
			t.Fatalf("%v: expected usage error, got %v", args, err)
		}
		if help := uerr.Error(); !strings.Contains(help, "Usage: photoedit") || !strings.Contains(help, "-notify-save") {
			t.Fatalf("expected root help, got %q", help)
		}
	}
}

func TestThemePrecedence(t *testing.T) {
	t.Setenv("PHOTOEDIT_THEME", "dark")
	r, _, _ := testRoot(t)
	if err := r.Run([]string{"version"}); err != nil {
		t.Fatal(err)
	}
	if r.activeTheme.Name != "Dark" {
		t.Fatalf("expected env theme, got %q", r.activeTheme.Name)
	}
	r, _, _ = testRoot(t)
	if err := r.Run([]string{"-theme", "light", "version"}); err != nil {
		t.Fatal(err)
	}
	if r.activeTheme.Name == "Dark" {
		t.Fatal("expected flag to beat the environment")
	}
	r, _, stderr := testRoot(t)
	if err := r.Run([]string{"-theme", "nope", "version"}); err != nil {
		t.Fatal(err)
	}
	if r.activeTheme.Name != "Default" || !strings.Contains(stderr.String(), "failed to load theme 'nope'") {
		t.Fatalf("expected default theme with a warning, got %q / %q", r.activeTheme.Name, stderr.String())
	}
}

func TestNotifyFlags(t *testing.T) {
	r, _, _ := testRoot(t)
	if err := r.Run([]string{"-notify-save", "-notify-copy", "about"}); err != nil {
		t.Fatal(err)
	}
	if !r.notifier.Enabled(notify.EventSave) || !r.notifier.Enabled(notify.EventCopy) || r.notifier.Enabled(notify.EventPrint) {
		t.Fatal("unexpected notification switches")
	}
}

func TestVersionAboutAndConfig(t *testing.T) {
	r, stdout, _ := testRoot(t)
	if err := r.Run([]string{"version"}); err != nil {
		t.Fatal(err)
	}
	if stdout.String() != "photoedit version dev\n" {
		t.Fatalf("unexpected version output %q", stdout.String())
	}
	stdout.Reset()
	if err := r.Run([]string{"about"}); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(stdout.String(), "About Creator\n") {
		t.Fatalf("unexpected about output %q", stdout.String())
	}
	stdout.Reset()
	if err := r.Run([]string{"config", "print"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout.String(), "[print]") {
		t.Fatalf("expected config sections, got %q", stdout.String())
	}
	if err := r.Run([]string{"config", "frob"}); err == nil {
		t.Fatal("expected unknown config command error")
	}
}

func TestThemesList(t *testing.T) {
	r, stdout, _ := testRoot(t)
	if err := r.Run([]string{"themes"}); err != nil {
		t.Fatal(err)
	}
	out := stdout.String()
	if !strings.Contains(out, "dark\n") || !strings.Contains(out, "light\n") {
		t.Fatalf("expected embedded themes, got %q", out)
	}
}

func TestEditPreparesWindow(t *testing.T) {
	in := writePNG(t, t.TempDir(), 30, 10)
	cmd, err := parseEditCmd([]string{"-no-dock", in}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	app, err := cmd.newApp()
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	if info := app.Editor().Info(); info.Width != 30 || info.Height != 10 {
		t.Fatalf("expected 30x10 image, got %+v", info)
	}
	if app.Editor().Display() == nil {
		t.Fatal("expected a display projection")
	}
	cmd, err = parseEditCmd([]string{filepath.Join(t.TempDir(), "notes.txt")}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cmd.newApp(); !errors.Is(err, codec.ErrUnsupportedFormat) {
		t.Fatalf("expected unsupported format, got %v", err)
	}
}
