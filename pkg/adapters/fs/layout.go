package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/ciphergen/pkg/core"
)

const (
	filePrefix = "text_length_"
	fileExt    = ".txt"

	// DefaultPattern matches every dataset file under a root.
	DefaultPattern = "**/" + filePrefix + "*" + fileExt

	// FixedKeyVariant holds the datasets of runs that reuse one literal key.
	FixedKeyVariant = "Fixed Key"
)

// Path returns <root>/<cipher display name>/text_length_<n>.txt.
func Path(root string, c core.Cipher, length int) string {
	return VariantPath(root, c, "", length)
}

// VariantPath places the file of a dataset variant one directory deeper:
// <root>/<cipher display name>/<variant>/text_length_<n>.txt. An empty
// variant is the plain Path.
func VariantPath(root string, c core.Cipher, variant string, length int) string {
	return filepath.Join(root, c.DisplayName(), variant, filePrefix+strconv.Itoa(length)+fileExt)
}

// Entry is a dataset file found on disk with the label derived from its path.
type Entry struct {
	Path    string
	Cipher  core.Cipher
	Variant string
	Length  int
}

// ParsePath recovers the (cipher, length) label from a dataset file path.
func ParsePath(path string) (Entry, error) {
	base := filepath.Base(path)
	if !strings.HasPrefix(base, filePrefix) || !strings.HasSuffix(base, fileExt) {
		return Entry{}, fmt.Errorf("not a dataset file name: %s", base)
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(base, filePrefix), fileExt))
	if err != nil || n <= 0 {
		return Entry{}, fmt.Errorf("%w: bad length in %s", core.ErrInvalidLength, base)
	}
	dir := filepath.Dir(path)
	c, err := core.ParseCipher(filepath.Base(dir))
	if err == nil {
		return Entry{Path: path, Cipher: c, Length: n}, nil
	}
	c, perr := core.ParseCipher(filepath.Base(filepath.Dir(dir)))
	if perr != nil {
		return Entry{}, err
	}
	return Entry{Path: path, Cipher: c, Variant: filepath.Base(dir), Length: n}, nil
}

// Discover lists the dataset files under root matching a doublestar pattern
// (DefaultPattern when empty). Files whose path carries no valid label are
// skipped. Results are sorted by path.
func Discover(root, pattern string) ([]Entry, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern: %q", pattern)
	}
	matches, err := doublestar.Glob(os.DirFS(root), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to glob %s: %w", root, err)
	}
	slices.Sort(matches)

	entries := make([]Entry, 0, len(matches))
	for _, m := range matches {
		e, err := ParsePath(filepath.Join(root, filepath.FromSlash(m)))
		if err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}
