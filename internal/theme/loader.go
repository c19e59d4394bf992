package theme

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Loader resolves theme names to theme files.
type Loader struct {
	ConfigDir string
	SystemDir string
}

// NewLoader creates a Loader using the standard directories for app.
func NewLoader(app string) *Loader {
	home, _ := os.UserHomeDir()
	return &Loader{
		ConfigDir: filepath.Join(home, ".config", app, "themes"),
		SystemDir: filepath.Join("/usr/share", app, "themes"),
	}
}

// Load finds a theme by name or path, in order: an existing file path, the
// embedded themes, ConfigDir, then SystemDir. An empty name is the default
// theme.
func (l *Loader) Load(name string) (*Theme, error) {
	if name == "" {
		return Default(), nil
	}
	if _, err := os.Stat(name); err == nil {
		return parseFS(os.DirFS(filepath.Dir(name)), filepath.Base(name))
	}

	filename := name
	if !strings.HasSuffix(filename, ".theme") {
		filename += ".theme"
	}
	if t, err := parseFS(EmbeddedThemes, "defaults/"+filename); err == nil {
		return t, nil
	}
	for _, dir := range []string{l.ConfigDir, l.SystemDir} {
		if dir == "" {
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, filename)); err != nil {
			continue
		}
		return parseFS(os.DirFS(dir), filename)
	}
	return nil, fmt.Errorf("theme '%s' not found", name)
}

// Names lists the themes Load can find by name.
func (l *Loader) Names() []string {
	seen := map[string]bool{}
	collect := func(fsys fs.FS, dir string) {
		matches, _ := fs.Glob(fsys, filepath.ToSlash(filepath.Join(dir, "*.theme")))
		for _, m := range matches {
			seen[strings.TrimSuffix(filepath.Base(m), ".theme")] = true
		}
	}
	collect(EmbeddedThemes, "defaults")
	for _, dir := range []string{l.ConfigDir, l.SystemDir} {
		if dir != "" {
			collect(os.DirFS(dir), ".")
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func parseFS(fsys fs.FS, name string) (*Theme, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("theme %s: %w", name, err)
	}
	return t, nil
}
