package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/example/photoedit/internal/editor"
	"github.com/example/photoedit/internal/printing"
)

type printCmd struct {
	file    string
	paper   string
	dpi     int
	margin  float64
	output  string
	command string
	title   string
	*root
	fs *flag.FlagSet
}

func (p *printCmd) FlagSet() *flag.FlagSet {
	return p.fs
}

func parsePrintCmd(args []string, r *root) (*printCmd, error) {
	fs := flag.NewFlagSet("print", flag.ExitOnError)
	cmd := &printCmd{root: r.subcommand("print"), fs: fs}
	cfg := cmd.cfg()
	fs.Usage = usageFunc(cmd)
	fs.StringVar(&cmd.file, "file", "", "image to print")
	fs.StringVar(&cmd.paper, "paper", cfg.Print.Paper, "paper size (a4, a5, letter, legal)")
	fs.IntVar(&cmd.dpi, "dpi", cfg.Print.DPI, "page resolution in dots per inch")
	fs.Float64Var(&cmd.margin, "margin", cfg.Print.Margin, "margin on every side in millimetres")
	fs.StringVar(&cmd.output, "output", "", "write the page to this PNG file instead of printing")
	fs.StringVar(&cmd.command, "command", cfg.Print.Command, "print command; the page file is appended")
	fs.StringVar(&cmd.title, "title", "", "job title (defaults to the file name)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cmd.file == "" && fs.NArg() > 0 {
		cmd.file = fs.Arg(0)
	}
	if cmd.file == "" {
		return nil, &UsageError{of: cmd}
	}
	if _, err := printing.LookupPaper(cmd.paper); err != nil {
		return nil, err
	}
	return cmd, nil
}

func (p *printCmd) Run() error {
	ed, err := p.newEditor("")
	if err != nil {
		return err
	}
	if err := ed.Load(p.file); err != nil {
		return err
	}
	paper, err := printing.LookupPaper(p.paper)
	if err != nil {
		return err
	}
	title := p.title
	if title == "" {
		title = filepath.Base(p.file)
	}
	job := printing.Job{Paper: paper, DPI: p.dpi, MarginMM: p.margin, Title: title}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return printImage(ctx, p.root, ed, spoolerFor(p.output, p.command), job)
}

func spoolerFor(output, command string) printing.Spooler {
	if output != "" {
		return printing.FileSpooler{Path: output}
	}
	return printing.CommandSpooler{Command: command}
}

func printImage(ctx context.Context, r *root, ed *editor.Editor, sp printing.Spooler, job printing.Job) error {
	img, err := ed.PrintSource()
	if err != nil {
		return fmt.Errorf("print: %w", err)
	}
	if err := printing.Print(ctx, sp, img, job); err != nil {
		return fmt.Errorf("print %s: %w", job.Title, err)
	}
	if fs, ok := sp.(printing.FileSpooler); ok {
		fmt.Fprintf(r.errOut(), "wrote page %s\n", fs.Path)
	} else {
		fmt.Fprintf(r.errOut(), "sent %s to the printer\n", job.Title)
	}
	r.notifyPrint(job.Title)
	return nil
}
