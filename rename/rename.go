// Package rename applies preview pairs to a folder, one file at a time.
// A target that already exists is never overwritten: the new name gets a "_N" suffix before its extension instead.
package rename

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kxue43/reel-renamer/naming"
)

type (
	// Result is the outcome of renaming one file.
	Result struct {
		Err      error
		Original string
		// Planned is the name computed by the preview.
		Planned string
		// Final is the name on disk after disambiguation. Empty on failure.
		Final string
	}

	Report struct {
		Folder  string
		Results []Result
	}

	// ProgressFunc is called after each file with the number of files processed so far.
	ProgressFunc func(done, total int, result Result)

	Renamer struct {
		maxSuffix int
	}
)

const (
	DefaultMaxSuffix = 10000
)

var (
	ErrRename    = errors.New("rename failure")
	ErrCollision = errors.New("no free target name")

	// Moves src to dst and fails with an error wrapping fs.ErrExist when dst is taken.
	move = renameNoReplace
)

func (r Result) OK() bool {
	return r.Err == nil
}

func (r *Report) Succeeded() (n int) {
	for i := range r.Results {
		if r.Results[i].OK() {
			n++
		}
	}

	return n
}

func (r *Report) Failed() int {
	return len(r.Results) - r.Succeeded()
}

// Errors returns the messages of failed items in processing order.
func (r *Report) Errors() []string {
	var msgs []string

	for i := range r.Results {
		if !r.Results[i].OK() {
			msgs = append(msgs, r.Results[i].Err.Error())
		}
	}

	return msgs
}

func (r *Report) Summary() string {
	return fmt.Sprintf("Renaming completed. %d files successfully renamed, %d errors.", r.Succeeded(), r.Failed())
}

func New() *Renamer {
	return &Renamer{maxSuffix: DefaultMaxSuffix}
}

// WithMaxSuffix sets how many "_N" suffixes are tried before giving up on a file.
func (r *Renamer) WithMaxSuffix(n int) *Renamer {
	r.maxSuffix = n

	return r
}

// Candidate returns the target name for the n-th attempt. Attempt 0 is the planned name itself.
func Candidate(planned string, n int) string {
	if n == 0 {
		return planned
	}

	stem, ext := naming.SplitExt(planned)

	return fmt.Sprintf("%s_%d%s", stem, n, ext)
}

// Rename moves pair.Original to pair.New inside folder, choosing the first free suffixed name on collision.
// A non-nil Result.Err wraps [ErrRename] or [ErrCollision].
func (r *Renamer) Rename(folder string, pair naming.Pair) Result {
	result := Result{Original: pair.Original, Planned: pair.New}

	src := filepath.Join(folder, pair.Original)

	for n := 0; n <= r.maxSuffix; n++ {
		name := Candidate(pair.New, n)

		err := move(src, filepath.Join(folder, name))
		if err == nil {
			result.Final = name

			return result
		}

		if !errors.Is(err, fs.ErrExist) {
			result.Err = fmt.Errorf("%w: failed to rename %q to %q: %s", ErrRename, pair.Original, pair.New, err.Error())

			return result
		}
	}

	result.Err = fmt.Errorf("%w: failed to rename %q to %q: tried %d suffixes", ErrCollision, pair.Original, pair.New, r.maxSuffix)

	return result
}

// Apply renames every pair in order. Failures are recorded and do not stop the batch.
func (r *Renamer) Apply(folder string, pairs []naming.Pair, progress ProgressFunc) Report {
	report := Report{Folder: folder, Results: make([]Result, 0, len(pairs))}

	for i := range pairs {
		result := r.Rename(folder, pairs[i])

		report.Results = append(report.Results, result)

		if progress != nil {
			progress(i+1, len(pairs), result)
		}
	}

	return report
}

// checkThenRename is not atomic: another process may create dst between the check and the rename.
func checkThenRename(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return &os.LinkError{Op: "rename", Old: src, New: dst, Err: fs.ErrExist}
	}

	return os.Rename(src, dst)
}
