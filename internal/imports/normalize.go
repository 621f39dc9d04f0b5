package imports

import (
	"path/filepath"
	"regexp"
	"strings"

	"bennypowers.dev/sls/internal/symbols"
)

// Extension is appended to non-CSS import targets that lack it
const Extension = ".scss"

// remotePattern matches URLs with a scheme and protocol-relative URLs
var remotePattern = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9+.-]*:)?//`)

// Normalize resolves each import's path against the directory of
// documentPath and returns the rewritten copies. Relative paths are joined
// onto that directory, absolute paths are only cleaned, and remote CSS
// resources are left untouched. Non-CSS targets get Extension appended
// when missing. Flags are never changed and nothing touches the disk.
func Normalize(entries []symbols.Import, documentPath string) []symbols.Import {
	dir := filepath.Dir(documentPath)
	out := make([]symbols.Import, 0, len(entries))
	for _, entry := range entries {
		entry.Filepath = Resolve(entry.Filepath, dir, entry.CSS)
		out = append(out, entry)
	}
	return out
}

// Resolve normalizes a single import path relative to dir
func Resolve(path, dir string, css bool) string {
	if css && IsRemote(path) {
		return path
	}

	var resolved string
	if filepath.IsAbs(path) {
		resolved = filepath.Clean(path)
	} else {
		resolved = filepath.Join(dir, path)
	}

	if !css && !strings.HasSuffix(resolved, Extension) {
		resolved += Extension
	}
	return resolved
}

// IsRemote reports whether path is a URL or protocol-relative reference
func IsRemote(path string) bool {
	return remotePattern.MatchString(path)
}
