// Package uriutil converts between file:// URIs and file system paths.
package uriutil

import (
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
)

// PathToURI returns the file:// URI for path, after making it absolute.
// Path segments are percent-encoded, Windows drive paths gain a leading
// slash and UNC paths carry their server as the URI host.
func PathToURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	slashed := filepath.ToSlash(path)

	u := url.URL{Scheme: "file"}
	if runtime.GOOS == "windows" && strings.HasPrefix(slashed, "//") {
		u.Host, u.Path, _ = strings.Cut(slashed[2:], "/")
		u.Path = "/" + u.Path
		return u.String()
	}
	if !strings.HasPrefix(slashed, "/") {
		slashed = "/" + slashed
	}
	u.Path = slashed
	return u.String()
}

// URIToPath returns the file system path a file:// URI names.
// Strings that are not file URIs are returned with only their slashes
// converted.
func URIToPath(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return localPath(strings.TrimPrefix(uri, "file://"))
	}
	if u.Scheme != "file" {
		return filepath.FromSlash(uri)
	}

	switch {
	case u.Host == "":
		return localPath(u.Path)
	case isDrive(u.Host):
		// file://C:/proj
		return localPath(u.Host + u.Path)
	case runtime.GOOS == "windows":
		return `\\` + u.Host + filepath.FromSlash(u.Path)
	default:
		return u.Host + u.Path
	}
}

// localPath drops the slash in front of a drive letter and converts to the
// OS separator
func localPath(p string) string {
	if len(p) >= 3 && p[0] == '/' && isDrive(p[1:3]) {
		p = p[1:]
	}
	return filepath.FromSlash(p)
}

func isDrive(s string) bool {
	if len(s) != 2 || s[1] != ':' {
		return false
	}
	c := s[0] | 0x20
	return c >= 'a' && c <= 'z'
}
