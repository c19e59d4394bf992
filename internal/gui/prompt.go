package gui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/example/photoedit/internal/codec"
	"golang.org/x/mobile/event/key"
)

// PromptKind says what an accepted prompt is used for.
type PromptKind int

const (
	PromptNone PromptKind = iota
	PromptOpen
	PromptSave
)

// PromptResult is returned by Prompt.Key.
type PromptResult int

const (
	PromptEditing PromptResult = iota
	PromptAccepted
	PromptCancelled
)

// Prompt is the single line path entry shown in the status bar while opening
// or saving.
type Prompt struct {
	Kind PromptKind
	Text string
}

// Start opens the prompt with initial text.
func (p *Prompt) Start(kind PromptKind, initial string) {
	p.Kind = kind
	p.Text = initial
}

// Active reports whether the prompt is taking input.
func (p Prompt) Active() bool { return p.Kind != PromptNone }

// Title labels the prompt in the status bar.
func (p Prompt) Title() string {
	switch p.Kind {
	case PromptOpen:
		return "Open image"
	case PromptSave:
		labels := make([]string, len(codec.SaveFilters))
		for i, f := range codec.SaveFilters {
			labels[i] = f.Label
		}
		return "Save image as (" + strings.Join(labels, ", ") + ")"
	}
	return ""
}

// Key feeds one key press to the prompt. Accepting or cancelling closes it;
// the accepted text is returned with PromptAccepted.
func (p *Prompt) Key(r rune, code key.Code) (PromptResult, string) {
	if !p.Active() {
		return PromptCancelled, ""
	}
	switch code {
	case key.CodeEscape:
		p.Kind = PromptNone
		return PromptCancelled, ""
	case key.CodeReturnEnter, key.CodeKeypadEnter:
		text := strings.TrimSpace(p.Text)
		p.Kind = PromptNone
		if text == "" || strings.HasSuffix(text, string(filepath.Separator)) {
			return PromptCancelled, ""
		}
		return PromptAccepted, text
	case key.CodeDeleteBackspace:
		if _, n := utf8.DecodeLastRuneInString(p.Text); n > 0 {
			p.Text = p.Text[:len(p.Text)-n]
		}
		return PromptEditing, ""
	case key.CodeTab:
		p.Text = complete(p.Text, p.Kind == PromptOpen)
		return PromptEditing, ""
	}
	if r >= ' ' && unicode.IsPrint(r) {
		p.Text += string(r)
	}
	return PromptEditing, ""
}

// complete extends text to the longest unambiguous path. When images is set
// only directories and openable files are offered.
func complete(text string, images bool) string {
	matches, err := filepath.Glob(expandHome(text) + "*")
	if err != nil || len(matches) == 0 {
		return text
	}
	var names []string
	for _, m := range matches {
		fi, err := os.Stat(m)
		if err != nil {
			continue
		}
		if fi.IsDir() {
			names = append(names, m+string(filepath.Separator))
			continue
		}
		if images && !codec.AcceptsOpen(m) {
			continue
		}
		names = append(names, m)
	}
	if len(names) == 0 {
		return text
	}
	sort.Strings(names)
	prefix := names[0]
	for _, n := range names[1:] {
		for !strings.HasPrefix(n, prefix) {
			_, size := utf8.DecodeLastRuneInString(prefix)
			prefix = prefix[:len(prefix)-size]
		}
	}
	if len(prefix) < len(expandHome(text)) {
		return text
	}
	return prefix
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:]) + trailingSep(path)
}

func trailingSep(path string) string {
	if len(path) > 1 && strings.HasSuffix(path, string(filepath.Separator)) {
		return string(filepath.Separator)
	}
	return ""
}
