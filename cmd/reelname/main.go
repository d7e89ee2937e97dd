package main

import (
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/kxue43/reel-renamer/naming"
	"github.com/kxue43/reel-renamer/terminal"
	"github.com/kxue43/reel-renamer/version"
)

func main() {
	var cli struct {
		Version kong.VersionFlag `name:"version" help:"Show version information and quit."`
		Tui     TuiCmd           `cmd:"" default:"withargs" help:"Rename footage interactively. This is the default command."`
		Preview PreviewCmd       `cmd:"" help:"Print the new names without renaming anything."`
		Apply   ApplyCmd         `cmd:"" help:"Rename every file directly inside a folder."`
	}

	tty := terminal.NewTTY(terminal.ReadWriter{Reader: os.Stdin, Writer: os.Stderr}, "reelname: ", 0)

	ctx := kong.Parse(
		&cli,
		kong.Name("reelname"),
		kong.Description("Batch-rename footage files as <roll>_<clip>_<date>.<ext>."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{
			"roll":    naming.DefaultCameraRoll,
			"prefix":  naming.DefaultClipPrefix,
			"today":   time.Now().Format(naming.DateLayout),
			"version": version.FromBuildInfo(),
		},
		kong.Bind(tty),
		kong.BindTo(os.Stdout, (*io.Writer)(nil)),
	)
	err := ctx.Run()

	if flushErr := tty.FlushLogs(); err == nil {
		err = flushErr
	}

	ctx.FatalIfErrorf(err)
}
