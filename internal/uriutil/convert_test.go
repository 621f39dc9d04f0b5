package uriutil

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

type platform int

const (
	anyOS platform = iota
	posixOnly
	windowsOnly
)

func (p platform) skip(t *testing.T) {
	t.Helper()
	switch {
	case p == posixOnly && runtime.GOOS == "windows":
		t.Skip("POSIX paths")
	case p == windowsOnly && runtime.GOOS != "windows":
		t.Skip("Windows paths")
	}
}

func TestPathToURI(t *testing.T) {
	tests := []struct {
		name string
		on   platform
		path string
		want string
	}{
		{"stylesheet", posixOnly, "/proj/styles/main.scss", "file:///proj/styles/main.scss"},
		{"root", posixOnly, "/", "file:///"},
		{"spaces", posixOnly, "/proj/my styles/_vars.scss", "file:///proj/my%20styles/_vars.scss"},
		{"unicode", posixOnly, "/proj/样式", "file:///proj/%E6%A0%B7%E5%BC%8F"},
		{"drive", windowsOnly, `C:\proj\main.scss`, "file:///C:/proj/main.scss"},
		{"drive with forward slashes", windowsOnly, "C:/proj/main.scss", "file:///C:/proj/main.scss"},
		{"drive with spaces", windowsOnly, `C:\My Styles\a.scss`, "file:///C:/My%20Styles/a.scss"},
		{"UNC share", windowsOnly, `\\server\share\a.scss`, "file://server/share/a.scss"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.on.skip(t)
			assert.Equal(t, tt.want, PathToURI(tt.path))
		})
	}
}

func TestURIToPath(t *testing.T) {
	sep := string(filepath.Separator)

	tests := []struct {
		name string
		on   platform
		uri  string
		want string
	}{
		{"stylesheet", posixOnly, "file:///proj/styles/main.scss", "/proj/styles/main.scss"},
		{"root", posixOnly, "file:///", "/"},
		{"percent-encoded", posixOnly, "file:///proj/my%20styles/_vars.scss", "/proj/my styles/_vars.scss"},
		{"unicode", posixOnly, "file:///proj/%E6%A0%B7%E5%BC%8F", "/proj/样式"},
		{"not a file URI", posixOnly, "untitled:Untitled-1", "untitled:Untitled-1"},
		{"drive", windowsOnly, "file:///C:/proj/main.scss", `C:\proj\main.scss`},
		{"lowercase drive", windowsOnly, "file:///c:/proj", `c:\proj`},
		{"UNC share", windowsOnly, "file://server/share/a.scss", `\\server\share\a.scss`},
		{"drive as host", anyOS, "file://C:/proj", "C:" + sep + "proj"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.on.skip(t)
			assert.Equal(t, tt.want, URIToPath(tt.uri))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		on   platform
		path string
	}{
		{posixOnly, "/proj/styles"},
		{posixOnly, "/proj/node_modules/@scope/pkg/_index.scss"},
		{posixOnly, "/proj/my styles/样式.scss"},
		{windowsOnly, `C:\proj\styles`},
		{windowsOnly, `D:\My Styles\a.scss`},
		{windowsOnly, `\\server\share\a.scss`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			tt.on.skip(t)
			assert.Equal(t, filepath.Clean(tt.path), filepath.Clean(URIToPath(PathToURI(tt.path))))
		})
	}
}
