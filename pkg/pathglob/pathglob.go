// Package pathglob matches slash-separated paths against gitignore-style
// globs where "*" stays within one segment and "**" spans any depth.
package pathglob

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

const separator = '/'

// Pattern is a compiled glob.
type Pattern struct {
	raw string

	full glob.Glob
	// rootLevel lets "**/x" also match a top-level "x".
	rootLevel glob.Glob
	// baseOnly is set for patterns without a separator; they also match the
	// final path segment, so "*.g.cs" hits files at any depth.
	baseOnly bool
}

// Compile parses pattern.
func Compile(pattern string) (*Pattern, error) {
	normalized := normalize(pattern)

	full, err := glob.Compile(normalized, separator)
	if err != nil {
		return nil, fmt.Errorf("compile glob %q: %w", pattern, err)
	}

	compiled := &Pattern{
		raw:      pattern,
		full:     full,
		baseOnly: !strings.ContainsRune(normalized, separator),
	}
	if rest, ok := strings.CutPrefix(normalized, "**/"); ok {
		if compiled.rootLevel, err = glob.Compile(rest, separator); err != nil {
			return nil, fmt.Errorf("compile glob %q: %w", pattern, err)
		}
	}
	return compiled, nil
}

// String returns the pattern as written.
func (p *Pattern) String() string {
	return p.raw
}

// Match reports whether the file path name matches.
func (p *Pattern) Match(name string) bool {
	name = normalize(name)
	if p.full.Match(name) {
		return true
	}
	if p.rootLevel != nil && p.rootLevel.Match(name) {
		return true
	}
	return p.baseOnly && p.full.Match(path.Base(name))
}

// MatchDir reports whether the directory name matches, either itself or as
// the parent of everything below it ("obj/**" matches the directory "obj").
func (p *Pattern) MatchDir(name string) bool {
	return p.Match(name) || p.Match(strings.TrimSuffix(normalize(name), "/")+"/")
}

// Set is an ordered list of patterns that matches when any member does.
type Set []*Pattern

// CompileAll compiles every pattern, failing on the first invalid one.
func CompileAll(patterns []string) (Set, error) {
	set := make(Set, 0, len(patterns))
	for _, raw := range patterns {
		compiled, err := Compile(raw)
		if err != nil {
			return nil, err
		}
		set = append(set, compiled)
	}
	return set, nil
}

// Match reports whether any pattern matches the file path name.
func (s Set) Match(name string) bool {
	for _, p := range s {
		if p.Match(name) {
			return true
		}
	}
	return false
}

// MatchDir reports whether any pattern matches the directory name.
func (s Set) MatchDir(name string) bool {
	for _, p := range s {
		if p.MatchDir(name) {
			return true
		}
	}
	return false
}

func normalize(name string) string {
	name = filepath.ToSlash(name)
	for strings.HasPrefix(name, "./") {
		name = name[2:]
	}
	return name
}
