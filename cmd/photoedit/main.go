package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"strings"

	"github.com/example/photoedit/internal/clipboard"
	"github.com/example/photoedit/internal/config"
	"github.com/example/photoedit/internal/editor"
	"github.com/example/photoedit/internal/notify"
	"github.com/example/photoedit/internal/printing"
	"github.com/example/photoedit/internal/projection"
	"github.com/example/photoedit/internal/theme"
	"github.com/example/photoedit/internal/transform"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

// Clipboard access is swapped in tests.
var (
	readClipboard  = clipboard.ReadImage
	writeClipboard = clipboard.WriteImage
)

type runnable interface{ Run() error }

type root struct {
	fs          *flag.FlagSet
	program     string
	notifier    *notify.Notifier
	config      *config.Config
	saveAlerts  bool
	printAlerts bool
	copyAlerts  bool
	themeName   string
	activeTheme *theme.Theme
	stdout      io.Writer
	stderr      io.Writer
}

func (r *root) Program() string {
	return r.program
}

func (r *root) subcommand(name string) *root {
	if r == nil {
		r = &root{program: config.AppName}
	}
	program := strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
	return &root{
		program:     program,
		notifier:    r.notifier,
		config:      r.config,
		saveAlerts:  r.saveAlerts,
		printAlerts: r.printAlerts,
		copyAlerts:  r.copyAlerts,
		themeName:   r.themeName,
		activeTheme: r.activeTheme,
		stdout:      r.stdout,
		stderr:      r.stderr,
	}
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}
	return newRootFrom(cfg, notify.New(notify.LoadPreferences()))
}

func newRootFrom(cfg *config.Config, n *notify.Notifier) *root {
	r := &root{
		fs:       flag.NewFlagSet(config.AppName, flag.ExitOnError),
		program:  config.AppName,
		notifier: n,
		config:   cfg,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving an image")
	r.fs.BoolVar(&r.printAlerts, "notify-print", cfg.Notify.Print, "show a desktop notification after printing")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")

	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use (light, dark or a .theme file)")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	r.notifier.Enable(notify.EventSave, r.saveAlerts)
	r.notifier.Enable(notify.EventPrint, r.printAlerts)
	r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	r.activeTheme = r.resolveTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "edit":
		cmd, err = parseEditCmd(subArgs, r)
	case "apply":
		cmd, err = parseApplyCmd(subArgs, r)
	case "info":
		cmd, err = parseInfoCmd(subArgs, r)
	case "print":
		cmd, err = parsePrintCmd(subArgs, r)
	case "interactive":
		cmd, err = parseInteractiveCmd(subArgs, r)
	case "themes":
		cmd, err = parseThemesCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "about":
		cmd = &aboutCmd{root: r}
	case "version":
		cmd = &versionCmd{root: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

// resolveTheme picks the theme named on the command line, in the
// environment or in the config, falling back to the default.
func (r *root) resolveTheme() *theme.Theme {
	name := r.themeName
	if name == "" {
		name = os.Getenv("PHOTOEDIT_THEME")
	}
	if name == "" {
		name = r.cfg().Theme
	}
	if t, ok := r.cfg().Themes[name]; ok {
		return t
	}
	t, err := theme.NewLoader(config.AppName).Load(name)
	if err != nil {
		if name != "" && name != "default" {
			fmt.Fprintf(r.errOut(), "warning: failed to load theme '%s': %v. using default.\n", name, err)
		}
		return theme.Default()
	}
	return t
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

func (r *root) cfg() *config.Config {
	if r == nil || r.config == nil {
		return config.New()
	}
	return r.config
}

func (r *root) out() io.Writer {
	if r == nil || r.stdout == nil {
		return os.Stdout
	}
	return r.stdout
}

func (r *root) errOut() io.Writer {
	if r == nil || r.stderr == nil {
		return os.Stderr
	}
	return r.stderr
}

// newEditor builds a controller from the loaded configuration. rotateFilter
// overrides the configured rotation filter when not empty.
func (r *root) newEditor(rotateFilter string) (*editor.Editor, error) {
	cfg := r.cfg()
	if rotateFilter == "" {
		rotateFilter = cfg.Edit.RotateFilter
	}
	rf, err := transform.ParseFilter(rotateFilter)
	if err != nil {
		return nil, err
	}
	df, err := projection.ParseFilter(cfg.Display.Filter)
	if err != nil {
		return nil, err
	}
	return editor.New(
		editor.WithRotateFilter(rf),
		editor.WithDisplayFilter(df),
		editor.WithJPEGQuality(cfg.Save.JPEGQuality),
		editor.WithLogger(log.Default()),
	), nil
}

func (r *root) printJob(title string) (printing.Job, error) {
	cfg := r.cfg()
	paper, err := printing.LookupPaper(cfg.Print.Paper)
	if err != nil {
		return printing.Job{}, err
	}
	return printing.Job{Paper: paper, DPI: cfg.Print.DPI, MarginMM: cfg.Print.Margin, Title: title}, nil
}

func (r *root) notifySave(path string) {
	if r == nil {
		return
	}
	r.notifier.Save(path)
}

func (r *root) notifyPrint(title string) {
	if r == nil {
		return
	}
	r.notifier.Print(title)
}

func (r *root) notifyCopy(detail string, img image.Image) {
	if r == nil {
		return
	}
	r.notifier.Copy(detail, img)
}
