package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/photoedit/internal/editor"
)

// editOp applies one named transform and reports whether the image changed.
type editOp func(*editor.Editor) (bool, error)

func rotateOp(deg int) editOp {
	return func(ed *editor.Editor) (bool, error) { return ed.RotateClockwise(deg) }
}

var editOps = map[string]editOp{
	"rotate90":  rotateOp(90),
	"rotate180": rotateOp(180),
	"rotate270": rotateOp(270),
	"flip-h":    func(ed *editor.Editor) (bool, error) { return ed.FlipHorizontal(), nil },
	"flip-v":    func(ed *editor.Editor) (bool, error) { return ed.FlipVertical(), nil },
	"half":      func(ed *editor.Editor) (bool, error) { return ed.ResizeHalf(), nil },
	"clear": func(ed *editor.Editor) (bool, error) {
		empty := ed.Empty()
		ed.Clear()
		return !empty, nil
	},
}

func lookupOp(name string) (editOp, error) {
	op, ok := editOps[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown operation %q (want one of %s)", name, strings.Join(opNames(), ", "))
	}
	return op, nil
}

func opNames() []string {
	names := make([]string, 0, len(editOps))
	for name := range editOps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
