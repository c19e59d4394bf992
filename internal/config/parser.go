package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/photoedit/internal/printing"
	"github.com/example/photoedit/internal/projection"
	"github.com/example/photoedit/internal/theme"
	"github.com/example/photoedit/internal/transform"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string
	var currentTheme *theme.Theme

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section := strings.TrimSpace(line[1 : len(line)-1])
			currentSection = strings.ToLower(section)
			currentTheme = nil

			if strings.HasPrefix(currentSection, "theme.") {
				themeName := section[len("theme."):]
				// Start with defaults so missing keys are fine
				currentTheme = theme.Default()
				currentTheme.Name = themeName
				cfg.Themes[themeName] = currentTheme
			}
			continue
		}

		// Key = Value or Key: Value
		var key, value string
		if k, v, ok := strings.Cut(line, "="); ok {
			key, value = k, v
		} else if k, v, ok := strings.Cut(line, ":"); ok {
			key, value = k, v
		} else {
			continue
		}
		key = strings.TrimSpace(key)
		value = unquote(strings.TrimSpace(value))

		var err error
		switch {
		case currentTheme != nil:
			err = currentTheme.Set(key, value)
		case currentSection == "":
			err = setRootField(cfg, key, value)
		case currentSection == "display":
			err = setDisplayField(&cfg.Display, key, value)
		case currentSection == "edit":
			err = setEditField(&cfg.Edit, key, value)
		case currentSection == "save":
			err = setSaveField(&cfg.Save, key, value)
		case currentSection == "print":
			err = setPrintField(&cfg.Print, key, value)
		case currentSection == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		}
		if err != nil {
			if currentSection == "" {
				return nil, fmt.Errorf("error in root section: %w", err)
			}
			return nil, fmt.Errorf("error in section [%s]: %w", currentSection, err)
		}
	}

	return cfg, scanner.Err()
}

func unquote(v string) string {
	if len(v) >= 2 && strings.HasPrefix(v, "\"") && strings.HasSuffix(v, "\"") {
		if s, err := strconv.Unquote(v); err == nil {
			return s
		}
		return v[1 : len(v)-1]
	}
	return v
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "theme":
		cfg.Theme = value
	case "open_dir":
		cfg.OpenDir = value
	case "save_dir":
		cfg.SaveDir = value
	}
	return nil
}

func setDisplayField(d *Display, key, value string) error {
	switch strings.ToLower(key) {
	case "width", "height":
		n, err := parsePositive(key, value)
		if err != nil {
			return err
		}
		if strings.EqualFold(key, "width") {
			d.Width = n
		} else {
			d.Height = n
		}
	case "filter":
		f, err := projection.ParseFilter(value)
		if err != nil {
			return err
		}
		d.Filter = string(f)
	}
	return nil
}

func setEditField(e *Edit, key, value string) error {
	if strings.EqualFold(key, "rotate_filter") {
		f, err := transform.ParseFilter(value)
		if err != nil {
			return err
		}
		e.RotateFilter = f.String()
	}
	return nil
}

func setSaveField(s *SaveSettings, key, value string) error {
	if strings.EqualFold(key, "jpeg_quality") {
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > 100 {
			return fmt.Errorf("jpeg_quality must be between 1 and 100, got %q", value)
		}
		s.JPEGQuality = n
	}
	return nil
}

func setPrintField(p *Print, key, value string) error {
	switch strings.ToLower(key) {
	case "paper":
		paper, err := printing.LookupPaper(value)
		if err != nil {
			return err
		}
		p.Paper = paper.Name
	case "dpi":
		n, err := parsePositive(key, value)
		if err != nil {
			return err
		}
		p.DPI = n
	case "margin":
		m, err := strconv.ParseFloat(value, 64)
		if err != nil || m < 0 {
			return fmt.Errorf("invalid margin %q", value)
		}
		p.Margin = m
	case "command":
		p.Command = value
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "save":
		n.Save = b
	case "print":
		n.Print = b
	case "copy":
		n.Copy = b
	}
	return nil
}

func parsePositive(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, value)
	}
	return n, nil
}
