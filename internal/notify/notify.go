// Package notify sends desktop notifications after user actions such as
// saving, printing or copying an image.
package notify

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/photoedit/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventSave fires when an image is written to disk.
	EventSave Event = "save"
	// EventPrint fires when a page has been handed to the spooler.
	EventPrint Event = "print"
	// EventCopy fires when an image is copied to the clipboard.
	EventCopy Event = "copy"
)

// Events lists every event in a stable order.
var Events = []Event{EventSave, EventPrint, EventCopy}

// EventPreference describes formatting for a notification event.
type EventPreference struct {
	Template string
}

// Preferences describes notification behaviour loaded from configuration.
type Preferences struct {
	Title  string
	Events map[Event]EventPreference
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: platform.DefaultAppName,
		Events: map[Event]EventPreference{
			EventSave:  {Template: "Saved %s"},
			EventPrint: {Template: "Sent %s to the printer"},
			EventCopy:  {Template: "Copied %s to clipboard"},
		},
	}
}

// EnvPrefix is prepended to the notification environment variables.
const EnvPrefix = "PHOTOEDIT_NOTIFY_"

// LoadPreferences reads PHOTOEDIT_NOTIFY_TITLE and
// PHOTOEDIT_NOTIFY_<EVENT>_TEXT over the defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv(EnvPrefix + "TITLE")); v != "" {
		prefs.Title = v
	}
	for _, event := range Events {
		key := EnvPrefix + strings.ToUpper(string(event)) + "_TEXT"
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			prefs.Events[event] = EventPreference{Template: v}
		}
	}
	return prefs
}

// send is swapped in tests.
var send = platform.Notify

// Notifier sends OS-level notifications for the enabled events. A nil
// Notifier is valid and sends nothing.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
}

// New creates a new Notifier using the provided preferences.
func New(prefs Preferences) *Notifier {
	cloned := Preferences{Title: prefs.Title, Events: make(map[Event]EventPreference, len(prefs.Events))}
	for k, v := range prefs.Events {
		cloned.Events[k] = v
	}
	return &Notifier{prefs: cloned, enabled: make(map[Event]bool)}
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	if n.enabled == nil {
		n.enabled = make(map[Event]bool)
	}
	n.enabled[event] = enabled
}

// Enabled reports whether event is switched on.
func (n *Notifier) Enabled(event Event) bool {
	if n == nil || n.enabled == nil {
		return false
	}
	return n.enabled[event]
}

// Save announces a written file, using the file itself as the icon.
func (n *Notifier) Save(path string) {
	if !n.Enabled(EventSave) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{AppName: n.prefs.Title}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, statErr := os.Stat(abs); statErr == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventSave, detail, opts)
}

// Print announces a spooled page.
func (n *Notifier) Print(title string) {
	if !n.Enabled(EventPrint) {
		return
	}
	if strings.TrimSpace(title) == "" {
		title = "image"
	}
	n.dispatch(EventPrint, title, platform.Options{AppName: n.prefs.Title})
}

// Copy announces a clipboard copy with an optional image preview.
func (n *Notifier) Copy(detail string, img image.Image) {
	if !n.Enabled(EventCopy) {
		return
	}
	if strings.TrimSpace(detail) == "" {
		detail = "image"
	}
	opts := platform.Options{AppName: n.prefs.Title}
	if img != nil {
		if path, cleanup, err := createPreview(img); err != nil {
			log.Printf("notification preview: %v", err)
		} else {
			defer cleanup()
			opts.IconPath = path
		}
	}
	n.dispatch(EventCopy, detail, opts)
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	template := strings.TrimSpace(n.prefs.Events[event].Template)
	if template == "" {
		return
	}
	var body string
	if strings.Contains(template, "%s") {
		body = fmt.Sprintf(template, strings.TrimSpace(detail))
	} else {
		body = template
	}
	if body = strings.TrimSpace(body); body == "" {
		return
	}
	if err := send(n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

func createPreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "photoedit-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("remove preview: %v", err)
		}
	}
	return path, cleanup, nil
}
