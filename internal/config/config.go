package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/photoedit/internal/printing"
	"github.com/example/photoedit/internal/theme"
)

// Display holds the initial canvas size and the projection filter.
type Display struct {
	Width  int
	Height int
	Filter string
}

// Edit holds transform settings.
type Edit struct {
	RotateFilter string
}

// SaveSettings holds encoder settings.
type SaveSettings struct {
	JPEGQuality int
}

// Print holds page settings.
type Print struct {
	Paper   string
	DPI     int
	Margin  float64
	Command string
}

// Notify holds notification settings.
type Notify struct {
	Save  bool
	Print bool
	Copy  bool
}

// Config holds the application configuration.
type Config struct {
	Theme   string
	OpenDir string
	SaveDir string
	Display Display
	Edit    Edit
	Save    SaveSettings
	Print   Print
	Notify  Notify
	Themes  map[string]*theme.Theme
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		Theme: "", // Empty allows fallback to env and the default theme
		Display: Display{
			Width:  1366,
			Height: 768,
			Filter: "bilinear",
		},
		Edit:   Edit{RotateFilter: "bilinear"},
		Save:   SaveSettings{JPEGQuality: 90},
		Print:  Print{Paper: printing.DefaultPaper, DPI: printing.DefaultDPI, Margin: printing.DefaultMargin, Command: printing.DefaultCommand},
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.OpenDir != "" {
		fmt.Fprintf(&sb, "open_dir = %s\n", c.OpenDir)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[display]\n")
	fmt.Fprintf(&sb, "width = %d\n", c.Display.Width)
	fmt.Fprintf(&sb, "height = %d\n", c.Display.Height)
	fmt.Fprintf(&sb, "filter = %s\n\n", c.Display.Filter)

	sb.WriteString("[edit]\n")
	fmt.Fprintf(&sb, "rotate_filter = %s\n\n", c.Edit.RotateFilter)

	sb.WriteString("[save]\n")
	fmt.Fprintf(&sb, "jpeg_quality = %d\n\n", c.Save.JPEGQuality)

	sb.WriteString("[print]\n")
	fmt.Fprintf(&sb, "paper = %s\n", c.Print.Paper)
	fmt.Fprintf(&sb, "dpi = %d\n", c.Print.DPI)
	fmt.Fprintf(&sb, "margin = %g\n", c.Print.Margin)
	fmt.Fprintf(&sb, "command = %q\n\n", c.Print.Command)

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "print = %v\n", c.Notify.Print)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Sorted for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		_ = c.Themes[name].Write(&sb, ":")
		sb.WriteString("\n")
	}

	return sb.String()
}
