package main

import (
	"errors"
	"image"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/photoedit/internal/editor"
)

func TestInteractiveExecs(t *testing.T) {
	dir := t.TempDir()
	in := writePNG(t, dir, 30, 10)
	out := filepath.Join(dir, "out.bmp")
	r, stdout, _ := testRoot(t)
	err := r.Run([]string{"interactive",
		"-e", "open " + in,
		"-e", "rotate",
		"-e", "flip v",
		"-e", "display 20 20",
		"-e", "info",
		"-e", "save " + out,
		"-e", "exit",
		"-e", "clear",
	})
	if err != nil {
		t.Fatalf("interactive: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	want := []string{
		"opened " + in + " (30x10)",
		"10x30",
		"10x30",
		"display 7x20",
		"10x30 png " + in,
		"saved " + out,
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %q", len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
	if got := decodeSize(t, out); got != image.Pt(10, 30) {
		t.Fatalf("expected 10x30, got %v", got)
	}
}

func TestInteractiveErrors(t *testing.T) {
	cmd, err := parseInteractiveCmd(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	cmd.ed = editor.New()
	if _, err := cmd.executeLine("rotate"); !errors.Is(err, editor.ErrNoImage) {
		t.Fatalf("expected ErrNoImage, got %v", err)
	}
	if _, err := cmd.executeLine("frobnicate"); err == nil || !strings.Contains(err.Error(), `unknown command "frobnicate"`) {
		t.Fatalf("expected unknown command error, got %v", err)
	}
	if _, err := cmd.executeLine("flip sideways"); err == nil {
		t.Fatal("expected bad flip direction to fail")
	}
	if _, err := cmd.executeLine("open " + filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Fatal("expected missing file to fail")
	}
	var serr *editor.SaveError
	if _, err := cmd.executeLine("save x.png"); !errors.As(err, &serr) {
		t.Fatalf("expected SaveError, got %v", err)
	}
	if done, err := cmd.executeLine("  "); done || err != nil {
		t.Fatalf("expected blank line to be ignored, got %v %v", done, err)
	}
	if done, _ := cmd.executeLine("quit"); !done {
		t.Fatal("expected quit to stop the shell")
	}
}

func TestInteractiveShell(t *testing.T) {
	in := writePNG(t, t.TempDir(), 8, 6)
	r, stdout, stderr := testRoot(t)
	cmd, err := parseInteractiveCmd(nil, r)
	if err != nil {
		t.Fatal(err)
	}
	cmd.stdin = strings.NewReader("open " + in + "\nrotate 45\nhalf\nexit\nhalf\n")
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stdout.String(), "> 4x3\n") {
		t.Fatalf("expected one half step, got %q", stdout.String())
	}
	if strings.Count(stdout.String(), "4x3") != 1 {
		t.Fatalf("expected exit to stop the shell, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "rotate:") {
		t.Fatalf("expected rotate error on stderr, got %q", stderr.String())
	}
}
