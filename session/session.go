// Package session holds the in-memory state of one renaming run: the chosen folder, its file snapshot,
// the template and the last preview.
//
// A failed listing never clears the previous snapshot. The preview is only recomputed on request,
// so it goes stale when the template changes in between.
package session

import (
	"errors"
	"slices"

	"github.com/kxue43/reel-renamer/listing"
	"github.com/kxue43/reel-renamer/naming"
	"github.com/kxue43/reel-renamer/rename"
)

type (
	Session struct {
		renamer  *rename.Renamer
		folder   string
		files    []string
		pairs    []naming.Pair
		Template naming.Template
	}
)

var (
	ErrNoFolder  = errors.New("no folder selected")
	ErrNoFiles   = errors.New("no files loaded, please select a folder first")
	ErrNoPreview = errors.New("no preview available, please generate a preview first")
)

func New(t naming.Template, r *rename.Renamer) *Session {
	return &Session{Template: t, renamer: r}
}

func (s *Session) Folder() string {
	return s.folder
}

func (s *Session) Files() []string {
	return slices.Clone(s.files)
}

func (s *Session) Pairs() []naming.Pair {
	return slices.Clone(s.pairs)
}

func (s *Session) Renamer() *rename.Renamer {
	return s.renamer
}

// Load snapshots folder and makes it the current folder. On failure the previous folder and files are kept.
// Switching to another folder drops the preview of the previous one.
//
// Non-nil returned error wraps [ErrNoFolder] or [listing.ErrListing].
func (s *Session) Load(folder string) (n int, err error) {
	if folder == "" {
		return 0, ErrNoFolder
	}

	files, err := listing.Files(folder)
	if err != nil {
		return 0, err
	}

	if folder != s.folder {
		s.pairs = nil
	}

	s.folder = folder
	s.files = files

	return len(files), nil
}

// Reload snapshots the current folder again.
func (s *Session) Reload() (n int, err error) {
	return s.Load(s.folder)
}

// Preview computes pairs from the current snapshot and template, replacing the previous preview.
//
// Non-nil returned error is [ErrNoFiles], in which case the previous preview is kept.
func (s *Session) Preview() ([]naming.Pair, error) {
	if len(s.files) == 0 {
		return nil, ErrNoFiles
	}

	s.pairs = naming.Preview(s.files, s.Template)

	return s.Pairs(), nil
}

// Rename applies the current preview and refreshes the snapshot and the preview afterwards.
// The returned error is only about the session state: per-file failures live in the report.
//
// Non-nil returned error wraps [ErrNoPreview] or [listing.ErrListing].
func (s *Session) Rename(progress rename.ProgressFunc) (report rename.Report, err error) {
	if len(s.pairs) == 0 {
		return report, ErrNoPreview
	}

	report = s.renamer.Apply(s.folder, s.pairs, progress)

	return report, s.Refresh()
}

// Complete collects results of a batch that was driven file by file through [Session.Renamer]
// and refreshes the session like [Session.Rename] does.
//
// Non-nil returned error wraps [listing.ErrListing].
func (s *Session) Complete(results []rename.Result) (report rename.Report, err error) {
	report = rename.Report{Folder: s.folder, Results: results}

	return report, s.Refresh()
}

// Refresh reloads the snapshot and regenerates the preview after files on disk have changed.
// An empty folder leaves no preview behind.
//
// Non-nil returned error wraps [listing.ErrListing].
func (s *Session) Refresh() error {
	if _, err := s.Reload(); err != nil {
		return err
	}

	if len(s.files) == 0 {
		s.pairs = nil

		return nil
	}

	_, err := s.Preview()

	return err
}
