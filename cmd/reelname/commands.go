package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/kxue43/reel-renamer/naming"
	"github.com/kxue43/reel-renamer/rename"
	"github.com/kxue43/reel-renamer/report"
	"github.com/kxue43/reel-renamer/session"
	"github.com/kxue43/reel-renamer/terminal"
	"github.com/kxue43/reel-renamer/tui"
)

type (
	TemplateFlags struct {
		Roll   string `name:"roll" default:"${roll}" help:"Camera roll placed first in every new name."`
		Prefix string `name:"prefix" default:"${prefix}" help:"Clip prefix put before the extracted digits or the zero-padded position."`
		Date   string `name:"date" default:"${today}" help:"Date placed last, before the extension. Defaults to today as YYMMDD."`
	}

	TuiCmd struct {
		TemplateFlags `embed:""`
		Folder        string `arg:"" optional:"" type:"path" help:"Folder to load on start."`
		DebugLog      string `name:"debug-log" type:"path" help:"Dump every UI message to this file."`
	}

	PreviewCmd struct {
		TemplateFlags `embed:""`
		Folder        string `arg:"" required:"" type:"path" help:"Folder that holds the footage files."`
	}

	ApplyCmd struct {
		TemplateFlags `embed:""`
		Folder        string `arg:"" required:"" type:"path" help:"Folder that holds the footage files."`
		Yes           bool   `name:"yes" short:"y" help:"Rename without asking for confirmation."`
		Report        string `name:"report" type:"path" help:"Also write the outcome to this .json, .yaml or .toml file."`
	}
)

var (
	ErrPartialFailure = errors.New("some files were not renamed")
)

func (f TemplateFlags) template() naming.Template {
	return naming.Template{
		CameraRoll: f.Roll,
		ClipPrefix: f.Prefix,
		Date:       f.Date,
	}
}

func printPairs(out io.Writer, pairs []naming.Pair) error {
	t := table.New().Border(lipgloss.NormalBorder()).Headers("#", "Original", "New")

	for i, pair := range pairs {
		t.Row(strconv.Itoa(i+1), pair.Original, pair.New)
	}

	_, err := fmt.Fprintln(out, t.Render())

	return err
}

func (c *TuiCmd) Run() error {
	var dump io.Writer

	if c.DebugLog != "" {
		fd, err := os.OpenFile(filepath.Clean(c.DebugLog), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open debug log %q: %w", c.DebugLog, err)
		}

		defer func() { _ = fd.Close() }()

		dump = fd
	}

	m := tui.InitialModel(session.New(c.template(), rename.New()), dump)

	if c.Folder != "" {
		m = m.WithFolder(c.Folder)
	}

	return tui.Run(m)
}

func (c *PreviewCmd) Run(out io.Writer) error {
	s := session.New(c.template(), rename.New())

	if _, err := s.Load(c.Folder); err != nil {
		return err
	}

	pairs, err := s.Preview()
	if err != nil {
		return err
	}

	return printPairs(out, pairs)
}

// Non-nil returned error wraps [ErrPartialFailure] when the batch ran but some files failed.
func (c *ApplyCmd) Run(tty *terminal.TTY, out io.Writer) error {
	s := session.New(c.template(), rename.New())

	if _, err := s.Load(c.Folder); err != nil {
		return err
	}

	pairs, err := s.Preview()
	if err != nil {
		return err
	}

	if err = printPairs(out, pairs); err != nil {
		return err
	}

	if !c.Yes {
		ok, err := tty.Confirm(fmt.Sprintf("Rename %d files?", len(pairs)))
		if err != nil {
			return err
		}

		if !ok {
			tty.Println("Nothing renamed.")

			return nil
		}
	}

	rep, err := s.Rename(func(done, total int, result rename.Result) {
		if result.OK() {
			_, _ = fmt.Fprintf(tty, "[%d/%d] %s -> %s\n", done, total, result.Original, result.Final)
		} else {
			_, _ = fmt.Fprintf(tty, "[%d/%d] %s\n", done, total, result.Err)
		}
	})
	if err != nil {
		// Renaming is over at this point, only the refresh failed.
		tty.Printf("failed to refresh file list: %s", err)
	}

	if _, err = fmt.Fprintln(out, rep.Summary()); err != nil {
		return err
	}

	if msgs := rep.Errors(); len(msgs) > 0 {
		_, _ = fmt.Fprintln(out, "\nErrors:")

		for _, msg := range msgs {
			_, _ = fmt.Fprintln(out, msg)
		}
	}

	if c.Report != "" {
		if err = report.Write(c.Report, &rep); err != nil {
			tty.Println(err.Error())
		}
	}

	if n := rep.Failed(); n > 0 {
		return fmt.Errorf("%w: %d of %d failed", ErrPartialFailure, n, len(rep.Results))
	}

	return nil
}
