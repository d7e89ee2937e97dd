package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kxue43/reel-renamer/terminal"
)

type (
	MockTerminal struct {
		r bytes.Buffer
		w bytes.Buffer
	}
)

func (fd *MockTerminal) Read(p []byte) (n int, err error) {
	return fd.r.Read(p)
}

func (fd *MockTerminal) Write(p []byte) (n int, err error) {
	return fd.w.Write(p)
}

var flags = TemplateFlags{Roll: "J001", Prefix: "Clip", Date: "240101"}

func setUpFolder(t *testing.T, names ...string) string {
	t.Helper()

	tempDir := t.TempDir()

	for _, name := range names {
		err := os.WriteFile(filepath.Join(tempDir, name), []byte(name), 0600)
		require.NoError(t, err, "should be able to create %q", name)
	}

	return tempDir
}

func TestPreviewCmd(t *testing.T) {
	folder := setUpFolder(t, "clip.mov")

	var out bytes.Buffer

	cmd := PreviewCmd{TemplateFlags: flags, Folder: folder}

	err := cmd.Run(&out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "J001_Clip001_240101.mov")
	assert.FileExists(t, filepath.Join(folder, "clip.mov"), "previewing should not rename anything")
}

func TestApplyCmdDeclined(t *testing.T) {
	folder := setUpFolder(t, "clip.mov")

	mocked := &MockTerminal{}

	_, err := mocked.r.WriteString("n\n")
	require.NoError(t, err)

	tty := terminal.NewTTY(mocked, "reelname: ", 0)

	var out bytes.Buffer

	cmd := ApplyCmd{TemplateFlags: flags, Folder: folder}

	err = cmd.Run(tty, &out)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(folder, "clip.mov"))
	assert.Contains(t, mocked.w.String(), "Rename 1 files? [y/N]: ")
}

func TestApplyCmdConfirmed(t *testing.T) {
	folder := setUpFolder(t, "clip.mov", "J001_Clip001_240101.mov")

	mocked := &MockTerminal{}

	_, err := mocked.r.WriteString("y\n")
	require.NoError(t, err)

	tty := terminal.NewTTY(mocked, "reelname: ", 0)

	var out bytes.Buffer

	reportPath := filepath.Join(t.TempDir(), "report.yaml")

	cmd := ApplyCmd{TemplateFlags: flags, Folder: folder, Report: reportPath}

	err = cmd.Run(tty, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Renaming completed. 2 files successfully renamed, 0 errors.")
	assert.Contains(t, mocked.w.String(), "[2/2] clip.mov -> J001_Clip002_240101.mov")
	assert.FileExists(t, filepath.Join(folder, "J001_Clip002_240101.mov"))
	assert.FileExists(t, reportPath)
}

func TestApplyCmdMissingFolder(t *testing.T) {
	cmd := ApplyCmd{TemplateFlags: flags, Folder: filepath.Join(t.TempDir(), "gone"), Yes: true}

	err := cmd.Run(terminal.NewTTY(&MockTerminal{}, "", 0), &bytes.Buffer{})
	require.Error(t, err)
}

func TestTemplateDefaults(t *testing.T) {
	var cli struct {
		Preview PreviewCmd `cmd:""`
	}

	parser, err := kong.New(&cli, kong.Vars{"roll": "J001", "prefix": "Clip", "today": "240615"})
	require.NoError(t, err, "should be able to build the parser")

	_, err = parser.Parse([]string{"preview", "/footage", "--roll", "B002"})
	require.NoError(t, err, "should be able to parse preview flags")

	assert.Equal(t, "B002", cli.Preview.Roll)
	assert.Equal(t, "Clip", cli.Preview.Prefix)
	assert.Equal(t, "240615", cli.Preview.Date)
	assert.Equal(t, "/footage", cli.Preview.Folder)
}
