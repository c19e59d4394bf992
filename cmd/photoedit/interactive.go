package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/example/photoedit/internal/editor"
	"github.com/example/photoedit/internal/gui"
	"github.com/example/photoedit/internal/printing"
)

type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, "; ")
}

func (c *commandList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

// interactiveCmd is a line shell over one shared editor.
type interactiveCmd struct {
	*root
	fs    *flag.FlagSet
	execs commandList
	stdin io.Reader
	ed    *editor.Editor
}

func (i *interactiveCmd) FlagSet() *flag.FlagSet {
	return i.fs
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	cmd := &interactiveCmd{root: r.subcommand("interactive"), fs: fs, stdin: os.Stdin}
	fs.Usage = usageFunc(cmd)
	fs.Var(&cmd.execs, "e", "execute a command in immediate mode (may be specified multiple times)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cmd, nil
}

func (i *interactiveCmd) Run() error {
	if i.ed == nil {
		ed, err := i.newEditor("")
		if err != nil {
			return err
		}
		i.ed = ed
	}
	if len(i.execs) > 0 {
		for _, line := range i.execs {
			done, err := i.executeLine(line)
			if err != nil {
				return err
			}
			if done {
				break
			}
		}
		return nil
	}

	fmt.Fprintln(i.out(), "Enter commands (type 'help' for a list, 'exit' to quit)")
	scanner := bufio.NewScanner(i.stdin)
	for {
		fmt.Fprint(i.out(), "> ")
		if !scanner.Scan() {
			break
		}
		done, err := i.executeLine(scanner.Text())
		if err != nil {
			fmt.Fprintln(i.errOut(), err)
		}
		if done {
			break
		}
	}
	return scanner.Err()
}

const shellHelp = `commands:
  open PATH          load an image
  save PATH          save the image; the extension picks the format
  rotate [90|180|270]
  flip h|v
  half               halve the width and height
  clear              drop the image
  info               show the image size and format
  display W H        fit the display projection to W x H
  print [PATH]       print, or write the page to PATH
  copy               copy the image to the clipboard
  paste              replace the image with the clipboard contents
  about
  help
  exit`

// executeLine runs one shell command. done is true when the shell should
// stop.
func (i *interactiveCmd) executeLine(line string) (done bool, err error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return false, nil
	}
	ed := i.ed
	name, rest := strings.ToLower(args[0]), args[1:]
	switch name {
	case "exit", "quit":
		return true, nil
	case "help", "?":
		fmt.Fprintln(i.out(), shellHelp)
	case "about":
		fmt.Fprintf(i.out(), "%s\n%s\n", gui.AboutTitle, gui.AboutText)
	case "open":
		if len(rest) != 1 {
			return false, fmt.Errorf("usage: open PATH")
		}
		if err := ed.Load(rest[0]); err != nil {
			return false, err
		}
		info := ed.Info()
		fmt.Fprintf(i.out(), "opened %s (%dx%d)\n", rest[0], info.Width, info.Height)
	case "save":
		if len(rest) != 1 {
			return false, fmt.Errorf("usage: save PATH")
		}
		if err := ed.Save(rest[0]); err != nil {
			return false, err
		}
		fmt.Fprintf(i.out(), "saved %s\n", rest[0])
		i.notifySave(rest[0])
	case "rotate":
		deg := 90
		if len(rest) > 0 {
			if deg, err = strconv.Atoi(rest[0]); err != nil {
				return false, fmt.Errorf("rotate: invalid angle %q", rest[0])
			}
		}
		return false, i.report(rotateOp(deg), "rotate")
	case "flip":
		if len(rest) != 1 {
			return false, fmt.Errorf("usage: flip h|v")
		}
		switch strings.ToLower(rest[0]) {
		case "h", "horizontal":
			return false, i.report(editOps["flip-h"], "flip")
		case "v", "vertical":
			return false, i.report(editOps["flip-v"], "flip")
		}
		return false, fmt.Errorf("flip: unknown direction %q", rest[0])
	case "half":
		return false, i.report(editOps["half"], "half")
	case "clear":
		ed.Clear()
		fmt.Fprintln(i.out(), "cleared")
	case "info":
		if ed.Empty() {
			fmt.Fprintln(i.out(), editor.ErrNoImage)
			return false, nil
		}
		info := ed.Info()
		fmt.Fprintf(i.out(), "%dx%d %s %s\n", info.Width, info.Height, info.Format, info.Path)
	case "display":
		if len(rest) != 2 {
			return false, fmt.Errorf("usage: display W H")
		}
		w, werr := strconv.Atoi(rest[0])
		h, herr := strconv.Atoi(rest[1])
		if werr != nil || herr != nil {
			return false, fmt.Errorf("display: invalid size %q x %q", rest[0], rest[1])
		}
		ed.SetDisplayArea(w, h)
		if d := ed.Display(); d != nil {
			fmt.Fprintf(i.out(), "display %dx%d\n", d.Bounds().Dx(), d.Bounds().Dy())
		} else {
			fmt.Fprintln(i.out(), "display empty")
		}
	case "print":
		title := gui.WindowTitle
		if p := ed.Info().Path; p != "" {
			title = p
		}
		job, err := i.printJob(title)
		if err != nil {
			return false, err
		}
		var sp printing.Spooler = printing.CommandSpooler{Command: i.cfg().Print.Command}
		if len(rest) > 0 {
			sp = printing.FileSpooler{Path: rest[0]}
		}
		return false, printImage(context.Background(), i.root, ed, sp, job)
	case "copy":
		return false, copyToClipboard(i.root, ed)
	case "paste":
		img, err := readClipboard()
		if err != nil {
			return false, fmt.Errorf("paste: %w", err)
		}
		if err := ed.SetImage(img, "clipboard"); err != nil {
			return false, err
		}
		info := ed.Info()
		fmt.Fprintf(i.out(), "pasted %dx%d image\n", info.Width, info.Height)
	default:
		return false, fmt.Errorf("unknown command %q (type 'help')", args[0])
	}
	return false, nil
}

func (i *interactiveCmd) report(op editOp, name string) error {
	if i.ed.Empty() {
		return fmt.Errorf("%s: %w", name, editor.ErrNoImage)
	}
	changed, err := op(i.ed)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	info := i.ed.Info()
	if !changed {
		fmt.Fprintf(i.out(), "%s: unchanged (%dx%d)\n", name, info.Width, info.Height)
		return nil
	}
	fmt.Fprintf(i.out(), "%dx%d\n", info.Width, info.Height)
	return nil
}
