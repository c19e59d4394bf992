package main

import (
	"fmt"

	"github.com/example/photoedit/internal/gui"
)

type versionCmd struct{ *root }

func (v *versionCmd) Run() error {
	fmt.Fprintf(v.out(), "%s version %s", v.program, version)
	if commit != "" {
		fmt.Fprintf(v.out(), " (%s", commit)
		if date != "" {
			fmt.Fprintf(v.out(), " %s", date)
		}
		fmt.Fprint(v.out(), ")")
	}
	fmt.Fprintln(v.out())
	return nil
}

type aboutCmd struct{ *root }

func (a *aboutCmd) Run() error {
	fmt.Fprintf(a.out(), "%s\n%s\n", gui.AboutTitle, gui.AboutText)
	return nil
}
