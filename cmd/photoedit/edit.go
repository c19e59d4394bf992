package main

import (
	"flag"

	"github.com/example/photoedit/internal/gui"
	"github.com/example/photoedit/internal/printing"
)

// editCmd opens the desktop window.
type editCmd struct {
	file   string
	noDock bool
	*root
	fs *flag.FlagSet
}

func (e *editCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	cmd := &editCmd{root: r.subcommand("edit"), fs: fs}
	fs.Usage = usageFunc(cmd)
	fs.StringVar(&cmd.file, "file", "", "image to open")
	fs.BoolVar(&cmd.noDock, "no-dock", false, "start with the edit tools hidden")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cmd.file == "" && fs.NArg() > 0 {
		cmd.file = fs.Arg(0)
	}
	if fs.NArg() > 1 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (e *editCmd) newApp() (*gui.App, error) {
	ed, err := e.newEditor("")
	if err != nil {
		return nil, err
	}
	job, err := e.printJob("")
	if err != nil {
		return nil, err
	}
	cfg := e.cfg()
	app := gui.New(
		gui.WithEditor(ed),
		gui.WithTheme(e.activeTheme),
		gui.WithNotifier(e.notifier),
		gui.WithSpooler(printing.CommandSpooler{Command: cfg.Print.Command}),
		gui.WithPrintJob(job),
		gui.WithOpenDir(cfg.OpenDir),
		gui.WithSaveDir(cfg.SaveDir),
		gui.WithWindowSize(cfg.Display.Width, cfg.Display.Height),
		gui.WithDock(!e.noDock),
	)
	if e.file != "" {
		if err := app.Open(e.file); err != nil {
			return nil, err
		}
	}
	return app, nil
}

func (e *editCmd) Run() error {
	app, err := e.newApp()
	if err != nil {
		return err
	}
	return app.Run()
}
