package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
)

// URIToPath converts a file:// URI to a local path. Other schemes yield "".
func URIToPath(uri string) string {
	if !strings.HasPrefix(uri, "file://") {
		return ""
	}
	u, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	return filepath.FromSlash(u.Path)
}

// PathToURI converts an absolute path to a file:// URI.
func PathToURI(absPath string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(absPath)}
	return u.String()
}
