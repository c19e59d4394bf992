// Package screen reports the size of the user's display so windows can be
// opened at a size that fits.
package screen

import (
	"errors"
	"image"
)

// Monitor describes one output.
type Monitor struct {
	Name    string
	Rect    image.Rectangle
	Primary bool
}

var errNoMonitors = errors.New("no monitors available")

// listMonitors is provided per platform and swapped in tests.
var listMonitors = platformMonitors

// Monitors lists the connected outputs.
func Monitors() ([]Monitor, error) {
	return listMonitors()
}

// Pick returns the primary monitor, or the first one when none is marked.
func Pick(monitors []Monitor) (Monitor, error) {
	if len(monitors) == 0 {
		return Monitor{}, errNoMonitors
	}
	for _, m := range monitors {
		if m.Primary {
			return m, nil
		}
	}
	return monitors[0], nil
}

// Size returns the size of the primary monitor.
func Size() (image.Point, error) {
	monitors, err := Monitors()
	if err != nil {
		return image.Point{}, err
	}
	m, err := Pick(monitors)
	if err != nil {
		return image.Point{}, err
	}
	return m.Rect.Size(), nil
}

// Clamp shrinks want so it fits inside avail. A zero avail leaves want as is.
func Clamp(want, avail image.Point) image.Point {
	if avail.X > 0 && want.X > avail.X {
		want.X = avail.X
	}
	if avail.Y > 0 && want.Y > avail.Y {
		want.Y = avail.Y
	}
	return want
}

// WindowSize clamps want to the primary monitor, keeping want when the
// display cannot be queried.
func WindowSize(want image.Point) image.Point {
	avail, err := Size()
	if err != nil {
		return want
	}
	return Clamp(want, avail)
}
