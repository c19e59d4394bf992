package main

import (
	"flag"
	"fmt"
)

type infoCmd struct {
	file string
	*root
	fs *flag.FlagSet
}

func (i *infoCmd) FlagSet() *flag.FlagSet {
	return i.fs
}

func parseInfoCmd(args []string, r *root) (*infoCmd, error) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	cmd := &infoCmd{root: r.subcommand("info"), fs: fs}
	fs.Usage = usageFunc(cmd)
	fs.StringVar(&cmd.file, "file", "", "image to inspect")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cmd.file == "" && fs.NArg() > 0 {
		cmd.file = fs.Arg(0)
	}
	if cmd.file == "" {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (i *infoCmd) Run() error {
	ed, err := i.newEditor("")
	if err != nil {
		return err
	}
	if err := ed.Load(i.file); err != nil {
		return err
	}
	info := ed.Info()
	fmt.Fprintf(i.out(), "%s: %dx%d %s\n", i.file, info.Width, info.Height, info.Format)
	return nil
}
