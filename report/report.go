// Package report writes the outcome of a rename batch to a JSON, YAML or TOML file chosen by extension.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"

	"github.com/kxue43/reel-renamer/rename"
)

type (
	Item struct {
		Original string `json:"original" yaml:"original" toml:"original"`
		Planned  string `json:"planned" yaml:"planned" toml:"planned"`
		Final    string `json:"final,omitempty" yaml:"final,omitempty" toml:"final,omitempty"`
		Error    string `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
	}

	Summary struct {
		Folder    string `json:"folder" yaml:"folder" toml:"folder"`
		Succeeded int    `json:"succeeded" yaml:"succeeded" toml:"succeeded"`
		Failed    int    `json:"failed" yaml:"failed" toml:"failed"`
		Items     []Item `json:"items" yaml:"items" toml:"items"`
	}

	encodeFunc func(io.Writer, *Summary) error
)

var (
	ErrFormat = errors.New("unsupported report format")

	encoders = map[string]encodeFunc{
		".json": encodeJSON,
		".yaml": encodeYAML,
		".yml":  encodeYAML,
		".toml": encodeTOML,
	}
)

func FromReport(r *rename.Report) Summary {
	s := Summary{
		Folder:    r.Folder,
		Succeeded: r.Succeeded(),
		Failed:    r.Failed(),
		Items:     make([]Item, len(r.Results)),
	}

	for i, result := range r.Results {
		s.Items[i] = Item{
			Original: result.Original,
			Planned:  result.Planned,
			Final:    result.Final,
		}

		if result.Err != nil {
			s.Items[i].Error = result.Err.Error()
		}
	}

	return s
}

func encodeJSON(w io.Writer, s *Summary) error {
	enc := json.NewEncoder(w)

	enc.SetIndent("", "  ")

	return enc.Encode(s)
}

func encodeYAML(w io.Writer, s *Summary) error {
	contents, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	_, err = w.Write(contents)

	return err
}

func encodeTOML(w io.Writer, s *Summary) error {
	return toml.NewEncoder(w).Encode(s)
}

// Write saves the summary of r to path. The extension of path selects the format.
//
// Non-nil returned error wraps [ErrFormat] when the extension is unknown.
func Write(path string, r *rename.Report) (err error) {
	ext := strings.ToLower(filepath.Ext(path))

	encode, ok := encoders[ext]
	if !ok {
		return fmt.Errorf("%w: %q, use one of .json, .yaml, .yml or .toml", ErrFormat, ext)
	}

	fd, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to create report file %q: %w", path, err)
	}

	defer func() {
		if err1 := fd.Close(); err1 != nil && err == nil {
			err = fmt.Errorf("failed to close report file %q after writing: %w", path, err1)
		}
	}()

	s := FromReport(r)

	if err = encode(fd, &s); err != nil {
		return fmt.Errorf("failed to write report to %q: %w", path, err)
	}

	return nil
}
