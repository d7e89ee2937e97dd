// Package naming derives footage file names of the form <roll>_<clip label>_<date><ext>.
package naming

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

type (
	// Template holds the user-editable fields of a new name. Empty values are permitted.
	Template struct {
		CameraRoll string
		ClipPrefix string
		Date       string
	}

	// Pair maps an original file name to its computed new name.
	Pair struct {
		Original string
		New      string
	}
)

const (
	DefaultCameraRoll = "J001"
	DefaultClipPrefix = "Clip"

	// DateLayout is the two-digit year, month and day with no separators.
	DateLayout = "060102"
)

var (
	digitsRegex = regexp.MustCompile(`\p{Nd}+`)
)

func DefaultTemplate(now time.Time) Template {
	return Template{
		CameraRoll: DefaultCameraRoll,
		ClipPrefix: DefaultClipPrefix,
		Date:       now.Format(DateLayout),
	}
}

// SplitExt splits name into stem and extension. The extension starts at the last dot and includes it.
// Leading dots are part of the stem, so ".hidden" has no extension.
func SplitExt(name string) (stem, ext string) {
	trimmed := strings.TrimLeft(name, ".")

	i := strings.LastIndex(trimmed, ".")
	if i < 0 {
		return name, ""
	}

	i += len(name) - len(trimmed)

	return name[:i], name[i:]
}

// ExtractNumbers joins every run of decimal digits in name with underscores, left to right.
// Digits of any script count, not only ASCII.
func ExtractNumbers(name string) string {
	return strings.Join(digitsRegex.FindAllString(name, -1), "_")
}

// ClipLabel is the prefix followed by the digits of filename, or by the 1-based index padded to three digits.
func ClipLabel(filename string, index int, prefix string) string {
	if numbers := ExtractNumbers(filename); numbers != "" {
		return prefix + numbers
	}

	return fmt.Sprintf("%s%03d", prefix, index)
}

func Generate(filename string, index int, t Template) string {
	_, ext := SplitExt(filename)

	return t.CameraRoll + "_" + ClipLabel(filename, index, t.ClipPrefix) + "_" + t.Date + ext
}

// Preview computes new names for files in listing order.
func Preview(files []string, t Template) []Pair {
	pairs := make([]Pair, len(files))

	for i, filename := range files {
		pairs[i] = Pair{Original: filename, New: Generate(filename, i+1, t)}
	}

	return pairs
}
