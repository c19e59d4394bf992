package gui

import (
	"unicode"

	"golang.org/x/mobile/event/key"
)

// ActionID names something the user can do from a button or the keyboard.
type ActionID int

const (
	ActOpen ActionID = iota
	ActSave
	ActPrint
	ActClear
	ActQuit
	ActRotate90
	ActRotate180
	ActFlipH
	ActFlipV
	ActHalf
	ActCopy
	ActPaste
	ActAbout
	ActToggleDock
)

// KeyShortcut describes a keyboard combination that triggers an action.
// A non-zero Code matches on the key code, otherwise Rune is compared.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

const modMask = key.ModControl | key.ModAlt | key.ModMeta

// Matches reports whether e triggers the shortcut. Shift is ignored so that
// upper case runes can be bound directly.
func (s KeyShortcut) Matches(e key.Event) bool {
	if e.Modifiers&modMask != s.Modifiers&modMask {
		return false
	}
	if s.Code != 0 {
		return e.Code == s.Code
	}
	r := e.Rune
	if s.Modifiers&key.ModControl != 0 {
		// Control combinations arrive with either case or a control rune.
		if r > 0 && r < 0x20 {
			r += 'a' - 1
		}
		return unicode.ToLower(r) == unicode.ToLower(s.Rune)
	}
	return r == s.Rune
}

// Action is one row of the action table.
type Action struct {
	ID    ActionID
	Label string
	// Tip is shown in the status bar while the pointer is over the button.
	Tip        string
	Keys       []KeyShortcut
	NeedsImage bool
}

func ctrl(r rune) KeyShortcut { return KeyShortcut{Rune: r, Modifiers: key.ModControl} }

var actionTable = []Action{
	{ID: ActOpen, Label: "Open", Tip: "Open an Image File", Keys: []KeyShortcut{ctrl('o')}},
	{ID: ActSave, Label: "Save", Tip: "Save an Image File", Keys: []KeyShortcut{ctrl('s')}, NeedsImage: true},
	{ID: ActPrint, Label: "Print", Tip: "Print an Image File", Keys: []KeyShortcut{ctrl('p')}, NeedsImage: true},
	{ID: ActClear, Label: "Clear", Tip: "Clear image from screen", Keys: []KeyShortcut{{Code: key.CodeDeleteForward}}, NeedsImage: true},
	{ID: ActQuit, Label: "Quit", Tip: "Quit the editor", Keys: []KeyShortcut{ctrl('q')}},
	{ID: ActRotate90, Label: "Rotate 90", Tip: "Rotate image by 90 in clockwise", Keys: []KeyShortcut{{Rune: 'r'}}, NeedsImage: true},
	{ID: ActRotate180, Label: "Rotate 180", Tip: "Rotate image by 180 in clockwise", Keys: []KeyShortcut{{Rune: 'R'}}, NeedsImage: true},
	{ID: ActFlipH, Label: "Flip Horizontal", Tip: "Flip image horizontally", Keys: []KeyShortcut{{Rune: 'h'}}, NeedsImage: true},
	{ID: ActFlipV, Label: "Flip Vertical", Tip: "Flip image vertically", Keys: []KeyShortcut{{Rune: 'v'}}, NeedsImage: true},
	{ID: ActHalf, Label: "Resize Half", Tip: "Resize image with half pixels both the sides", Keys: []KeyShortcut{{Rune: '-'}}, NeedsImage: true},
	{ID: ActCopy, Label: "Copy", Tip: "Copy image to clipboard", Keys: []KeyShortcut{ctrl('c')}, NeedsImage: true},
	{ID: ActPaste, Label: "Paste", Tip: "Paste image from clipboard", Keys: []KeyShortcut{ctrl('v')}},
	{ID: ActAbout, Label: "About", Tip: "Show about info", Keys: []KeyShortcut{{Code: key.CodeF1}}},
	{ID: ActToggleDock, Label: "Tools", Tip: "Show or hide the edit tools", Keys: []KeyShortcut{{Code: key.CodeF9}}},
}

// toolbarActions and dockActions fix the button order.
var (
	toolbarActions = []ActionID{ActOpen, ActSave, ActPrint, ActClear, ActCopy, ActPaste, ActToggleDock, ActAbout, ActQuit}
	dockActions    = []ActionID{ActRotate90, ActRotate180, ActFlipH, ActFlipV, ActHalf}
)

func lookupAction(id ActionID) Action {
	for _, a := range actionTable {
		if a.ID == id {
			return a
		}
	}
	return Action{ID: id}
}

// actionForKey finds the action bound to e.
func actionForKey(e key.Event) (ActionID, bool) {
	for _, a := range actionTable {
		for _, k := range a.Keys {
			if k.Matches(e) {
				return a.ID, true
			}
		}
	}
	return 0, false
}
