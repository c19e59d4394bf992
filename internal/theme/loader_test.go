package theme

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbedded(t *testing.T) {
	l := &Loader{}
	th, err := l.Load("dark")
	if err != nil {
		t.Fatalf("load dark: %v", err)
	}
	if th.Name != "Dark" {
		t.Fatalf("expected Dark, got %q", th.Name)
	}
	light, err := l.Load("light.theme")
	if err != nil {
		t.Fatalf("load light: %v", err)
	}
	def := Default()
	def.Name = light.Name
	if *light != *def {
		t.Fatalf("expected light theme to match default, got %+v", light)
	}
}

func TestLoadOrder(t *testing.T) {
	cfgDir := t.TempDir()
	sysDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(cfgDir, "mine.theme"), []byte("Name: FromConfig\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sysDir, "mine.theme"), []byte("Name: FromSystem\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sysDir, "shared.theme"), []byte("Name: Shared\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := &Loader{ConfigDir: cfgDir, SystemDir: sysDir}
	if th, err := l.Load("mine"); err != nil || th.Name != "FromConfig" {
		t.Fatalf("expected config dir to win, got %v %v", th, err)
	}
	if th, err := l.Load("shared"); err != nil || th.Name != "Shared" {
		t.Fatalf("expected system theme, got %v %v", th, err)
	}
	if th, err := l.Load(filepath.Join(sysDir, "mine.theme")); err != nil || th.Name != "FromSystem" {
		t.Fatalf("expected explicit path to load, got %v %v", th, err)
	}
	if _, err := l.Load("missing"); err == nil {
		t.Fatal("expected error for missing theme")
	}
	if th, err := l.Load(""); err != nil || th.Name != "Default" {
		t.Fatalf("expected default theme, got %v %v", th, err)
	}

	names := l.Names()
	want := []string{"dark", "light", "mine", "shared"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}
