// Package langdetect identifies source files by language and recognizes
// generated files. It uses go-enry, the linguist port.
package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// LanguageCSharp is the go-enry name of the analyzed language.
const LanguageCSharp = "C#"

// csharpExtensions lists the extensions accepted without consulting go-enry.
//
//nolint:gochecknoglobals // Read-only lookup table.
var csharpExtensions = map[string]bool{
	".cs":  true,
	".csx": true,
}

// Detect returns the go-enry language for a file, or "" when unknown.
// The extension is tried first; content is consulted only for ambiguous names.
func Detect(path string, content []byte) string {
	if lang, safe := enry.GetLanguageByExtension(path); safe {
		return lang
	}
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return lang
	}
	return enry.GetLanguage(filepath.Base(path), content)
}

// IsCSharp reports whether path names a C# source file.
func IsCSharp(path string) bool {
	if csharpExtensions[strings.ToLower(filepath.Ext(path))] {
		return true
	}
	lang, _ := enry.GetLanguageByExtension(path)
	return lang == LanguageCSharp
}

// IsGenerated applies go-enry's generated-file heuristics.
func IsGenerated(path string, content []byte) bool {
	return enry.IsGenerated(path, content)
}

// IsVendored reports whether path is in a vendored or third-party directory.
func IsVendored(path string) bool {
	return enry.IsVendor(filepath.ToSlash(path))
}
