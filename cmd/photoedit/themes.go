package main

import (
	"flag"
	"fmt"
	"sort"

	"github.com/example/photoedit/internal/config"
	"github.com/example/photoedit/internal/theme"
)

type themesCmd struct {
	*root
	fs *flag.FlagSet
}

func (t *themesCmd) FlagSet() *flag.FlagSet {
	return t.fs
}

func parseThemesCmd(args []string, r *root) (*themesCmd, error) {
	fs := flag.NewFlagSet("themes", flag.ExitOnError)
	cmd := &themesCmd{root: r.subcommand("themes"), fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cmd, nil
}

// Run lists the themes defined in the config followed by those the theme
// loader can find.
func (t *themesCmd) Run() error {
	seen := map[string]bool{}
	var names []string
	for name := range t.cfg().Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range append(names, theme.NewLoader(config.AppName).Names()...) {
		if seen[name] {
			continue
		}
		seen[name] = true
		fmt.Fprintln(t.out(), name)
	}
	return nil
}
