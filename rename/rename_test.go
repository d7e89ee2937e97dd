package rename

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kxue43/reel-renamer/naming"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()

	for _, name := range names {
		err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0600)
		require.NoError(t, err, "should be able to create %q", name)
	}
}

func readName(t *testing.T, dir, name string) string {
	t.Helper()

	contents, err := os.ReadFile(filepath.Clean(filepath.Join(dir, name)))
	require.NoError(t, err, "should be able to read %q", name)

	return string(contents)
}

func TestCandidate(t *testing.T) {
	assert.Equal(t, "J001_Clip001_240101.mov", Candidate("J001_Clip001_240101.mov", 0))
	assert.Equal(t, "J001_Clip001_240101_1.mov", Candidate("J001_Clip001_240101.mov", 1))
	assert.Equal(t, "J001_Clip001_240101_2.mov", Candidate("J001_Clip001_240101.mov", 2))
	assert.Equal(t, "J001_Clip003_240101_1", Candidate("J001_Clip003_240101", 1))
}

func testCollisions(t *testing.T) {
	tempDir := t.TempDir()

	touch(t, tempDir, "J001_Clip001_240101.mov", "first.mov", "second.mov")

	r := New()

	result := r.Rename(tempDir, naming.Pair{Original: "first.mov", New: "J001_Clip001_240101.mov"})
	require.NoError(t, result.Err)
	assert.Equal(t, "J001_Clip001_240101_1.mov", result.Final, "an existing target should get the _1 suffix")

	result = r.Rename(tempDir, naming.Pair{Original: "second.mov", New: "J001_Clip001_240101.mov"})
	require.NoError(t, result.Err)
	assert.Equal(t, "J001_Clip001_240101_2.mov", result.Final, "the next free suffix should be used")

	assert.Equal(t, "J001_Clip001_240101.mov", readName(t, tempDir, "J001_Clip001_240101.mov"), "the existing target must not be overwritten")
	assert.Equal(t, "first.mov", readName(t, tempDir, "J001_Clip001_240101_1.mov"))
	assert.Equal(t, "second.mov", readName(t, tempDir, "J001_Clip001_240101_2.mov"))

	assert.NoFileExists(t, filepath.Join(tempDir, "first.mov"))
	assert.NoFileExists(t, filepath.Join(tempDir, "second.mov"))
}

func TestRenameCollisions(t *testing.T) {
	testCollisions(t)
}

func TestRenameCollisionsCheckThenRename(t *testing.T) {
	move = checkThenRename

	defer func() { move = renameNoReplace }()

	testCollisions(t)
}

func TestRenameOntoItself(t *testing.T) {
	tempDir := t.TempDir()

	touch(t, tempDir, "J001_Clip001_240101.mov")

	result := New().Rename(tempDir, naming.Pair{Original: "J001_Clip001_240101.mov", New: "J001_Clip001_240101.mov"})
	require.NoError(t, result.Err)

	assert.Equal(t, "J001_Clip001_240101_1.mov", result.Final, "a file already carrying its new name still counts as a collision")
}

func TestRenameCollisionLimit(t *testing.T) {
	tempDir := t.TempDir()

	touch(t, tempDir, "src.mov", "new.mov", "new_1.mov", "new_2.mov")

	result := New().WithMaxSuffix(2).Rename(tempDir, naming.Pair{Original: "src.mov", New: "new.mov"})

	require.ErrorIs(t, result.Err, ErrCollision)
	assert.False(t, result.OK())
	assert.Empty(t, result.Final)
	assert.FileExists(t, filepath.Join(tempDir, "src.mov"), "the source should stay in place")
}

func TestApplyPartialFailure(t *testing.T) {
	tempDir := t.TempDir()

	touch(t, tempDir, "a.mov", "c.mov")

	pairs := []naming.Pair{
		{Original: "a.mov", New: "J001_Clip001_240101.mov"},
		{Original: "vanished.mov", New: "J001_Clip002_240101.mov"},
		{Original: "c.mov", New: "J001_Clip003_240101.mov"},
	}

	var calls [][2]int

	report := New().Apply(tempDir, pairs, func(done, total int, _ Result) {
		calls = append(calls, [2]int{done, total})
	})

	assert.Equal(t, tempDir, report.Folder)
	require.Len(t, report.Results, 3)
	assert.Equal(t, 2, report.Succeeded())
	assert.Equal(t, 1, report.Failed())

	require.ErrorIs(t, report.Results[1].Err, ErrRename)

	msgs := report.Errors()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], `"vanished.mov"`, "the message should name the original file")
	assert.Contains(t, msgs[0], `"J001_Clip002_240101.mov"`, "the message should name the attempted new name")

	assert.FileExists(t, filepath.Join(tempDir, "J001_Clip001_240101.mov"))
	assert.FileExists(t, filepath.Join(tempDir, "J001_Clip003_240101.mov"), "files after a failure should still be renamed")

	assert.Equal(t, [][2]int{{1, 3}, {2, 3}, {3, 3}}, calls, "progress should be reported after each file")

	assert.Equal(t, "Renaming completed. 2 files successfully renamed, 1 errors.", report.Summary())
}

func TestApplyEmpty(t *testing.T) {
	report := New().Apply(t.TempDir(), nil, nil)

	assert.Equal(t, 0, report.Succeeded())
	assert.Equal(t, 0, report.Failed())
	assert.Nil(t, report.Errors())
}
