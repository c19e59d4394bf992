package gui

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/mobile/event/key"
)

func typeText(p *Prompt, s string) {
	for _, r := range s {
		p.Key(r, key.CodeUnknown)
	}
}

func TestPromptEditing(t *testing.T) {
	var p Prompt
	p.Start(PromptSave, "/tmp/")
	if !p.Active() || p.Title() != "Save image as (JPG Files, PNG file, GIF File, BMP File)" {
		t.Fatalf("unexpected prompt %+v", p)
	}
	typeText(&p, "café.pnx")
	p.Key(0, key.CodeDeleteBackspace)
	typeText(&p, "g")
	if p.Text != "/tmp/café.png" {
		t.Fatalf("expected /tmp/café.png, got %q", p.Text)
	}
	res, text := p.Key(0, key.CodeReturnEnter)
	if res != PromptAccepted || text != "/tmp/café.png" {
		t.Fatalf("expected accepted path, got %v %q", res, text)
	}
	if p.Active() {
		t.Fatal("expected prompt to close")
	}
}

func TestPromptCancel(t *testing.T) {
	var p Prompt
	p.Start(PromptOpen, "x")
	if res, _ := p.Key(0, key.CodeEscape); res != PromptCancelled {
		t.Fatalf("expected cancel, got %v", res)
	}
	p.Start(PromptOpen, "  ")
	if res, _ := p.Key(0, key.CodeReturnEnter); res != PromptCancelled {
		t.Fatalf("expected blank entry to cancel, got %v", res)
	}
	p.Start(PromptOpen, "/tmp/")
	if res, _ := p.Key(0, key.CodeReturnEnter); res != PromptCancelled {
		t.Fatalf("expected directory entry to cancel, got %v", res)
	}
}

func TestPromptIgnoresControlRunes(t *testing.T) {
	var p Prompt
	p.Start(PromptOpen, "")
	p.Key('\x01', key.CodeUnknown)
	p.Key(0, key.CodeDeleteBackspace)
	if p.Text != "" {
		t.Fatalf("expected empty text, got %q", p.Text)
	}
}

func TestPromptCompletion(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"holiday-1.png", "holiday-2.jpg", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "album"), 0o755); err != nil {
		t.Fatal(err)
	}
	var p Prompt
	p.Start(PromptOpen, filepath.Join(dir, "h"))
	p.Key(0, key.CodeTab)
	if want := filepath.Join(dir, "holiday-"); p.Text != want {
		t.Fatalf("expected %q, got %q", want, p.Text)
	}
	p.Start(PromptOpen, filepath.Join(dir, "n"))
	p.Key(0, key.CodeTab)
	if want := filepath.Join(dir, "n"); p.Text != want {
		t.Fatalf("expected non-image to be skipped, got %q", p.Text)
	}
	p.Start(PromptSave, filepath.Join(dir, "n"))
	p.Key(0, key.CodeTab)
	if want := filepath.Join(dir, "notes.txt"); p.Text != want {
		t.Fatalf("expected %q, got %q", want, p.Text)
	}
	p.Start(PromptOpen, filepath.Join(dir, "al"))
	p.Key(0, key.CodeTab)
	if want := filepath.Join(dir, "album") + string(filepath.Separator); p.Text != want {
		t.Fatalf("expected %q, got %q", want, p.Text)
	}
}
