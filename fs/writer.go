// Package fs stores fetched resources in a local output directory.
package fs

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/leocbehe/vivian"
)

// maxStemRunes is how much of the sanitized host and path a filename keeps.
const maxStemRunes = 16

var filenameReplacer = strings.NewReplacer(
	"/", "_", `\`, "_", ".", "_", "+", "_",
	"<", "", ">", "", ":", "", `"`, "", "|", "", "?", "", "*", "",
)

// FilenameForURL derives the output filename for a resource.
// The trailing ".ext" of the URL is dropped, the lower-cased host and the
// path are joined, separators become underscores and characters that are not
// allowed in filenames are stripped. Only the last 16 characters are kept.
// Distinct URLs may map to the same name.
//
// Example: https://Example.com/a/b/c.html → xample_com_a_b_c.html
func FilenameForURL(rawURL, ext string) string {
	s := rawURL
	if ext != "" && strings.HasSuffix(strings.ToLower(s), "."+strings.ToLower(ext)) {
		s = s[:len(s)-len(ext)-1]
	}

	var stem string
	if u, err := url.Parse(s); err == nil {
		stem = strings.ToLower(u.Host) + u.Path
	} else {
		stem = s
	}

	stem = strings.Trim(filenameReplacer.Replace(stem), ". ")
	if stem == "" {
		stem = "webpage"
	}
	if r := []rune(stem); len(r) > maxStemRunes {
		stem = string(r[len(r)-maxStemRunes:])
	}

	if ext == "" {
		return stem
	}
	return stem + "." + ext
}

// Ensure Writer implements vivian.ResultWriter at compile time.
var _ vivian.ResultWriter = (*Writer)(nil)

// Writer writes fetched resources into a directory.
type Writer struct {
	dir string
}

// NewWriter creates a new Writer that writes to dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// WriteResult writes the body of r to the output directory, creating the
// directory when needed. Existing files with the same name are replaced.
func (w *Writer) WriteResult(r *vivian.FetchResult) (string, error) {
	if r == nil {
		return "", vivian.Errorf(vivian.EINVALID, "nil fetch result")
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", vivian.WrapError(vivian.EIO, err, "cannot create output directory %s", w.dir)
	}

	path := filepath.Join(w.dir, FilenameForURL(r.SourceURL, r.Extension))
	if err := os.WriteFile(path, r.Body, 0644); err != nil {
		return "", vivian.WrapError(vivian.EIO, err, "cannot write %s", path)
	}
	return path, nil
}
