package lint

import (
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/yaklabco/sharplint/pkg/langdetect"
	"github.com/yaklabco/sharplint/pkg/pathglob"
	"github.com/yaklabco/sharplint/pkg/syntax"
)

// GeneratedCodeFilter decides whether a tree holds machine-generated code.
// Implementations must be safe for concurrent use.
type GeneratedCodeFilter interface {
	IsGeneratedCode(tree *syntax.Tree) bool
}

// NeverGenerated treats every tree as hand-written.
type NeverGenerated struct{}

// IsGeneratedCode returns false.
func (NeverGenerated) IsGeneratedCode(*syntax.Tree) bool { return false }

// GeneratedFilter detects generated code by file-name convention, a leading
// "<auto-generated" marker comment, or go-enry's generated-file heuristics.
// Results are computed once per tree and cached until Forget releases the
// tree. Session.Run forgets each tree when its run ends, so a long-lived
// session holds only the trees currently being analyzed.
type GeneratedFilter struct {
	patterns pathglob.Set
	cache    sync.Map // *syntax.Tree -> *generatedEntry
	cached   atomic.Int64
	computed atomic.Int64
}

type generatedEntry struct {
	once  sync.Once
	value bool
}

// NewGeneratedFilter creates a filter. Patterns are extra globs matched
// against the file's path; patterns without a separator also match its base
// name. Invalid patterns are ignored here and reported by config validation.
func NewGeneratedFilter(patterns ...string) *GeneratedFilter {
	filter := &GeneratedFilter{}
	for _, raw := range patterns {
		if compiled, err := pathglob.Compile(raw); err == nil {
			filter.patterns = append(filter.patterns, compiled)
		}
	}
	return filter
}

// IsGeneratedCode reports whether tree is generated. Nil trees and trees
// without source text have no identity to judge and are treated as not generated.
func (f *GeneratedFilter) IsGeneratedCode(tree *syntax.Tree) bool {
	if tree == nil || tree.Text == nil {
		return false
	}

	value, loaded := f.cache.LoadOrStore(tree, &generatedEntry{})
	if !loaded {
		f.cached.Add(1)
	}
	entry, _ := value.(*generatedEntry)

	entry.once.Do(func() {
		f.computed.Add(1)
		entry.value = f.detect(tree)
	})

	return entry.value
}

// Forget drops the cached result for tree. A later query recomputes it.
func (f *GeneratedFilter) Forget(tree *syntax.Tree) {
	if _, ok := f.cache.LoadAndDelete(tree); ok {
		f.cached.Add(-1)
	}
}

// Cached returns how many trees currently have a cached result.
func (f *GeneratedFilter) Cached() int {
	return int(f.cached.Load())
}

// Computations returns how many trees the filter has actually inspected.
func (f *GeneratedFilter) Computations() int64 {
	return f.computed.Load()
}

func (f *GeneratedFilter) detect(tree *syntax.Tree) bool {
	if tree.Path != "" && (isGeneratedFileName(tree.Path) || f.patterns.Match(tree.Path)) {
		return true
	}
	if hasGeneratedMarker(tree) {
		return true
	}
	return tree.Path != "" && langdetect.IsGenerated(tree.Path, tree.Text.Content)
}

//nolint:gochecknoglobals // Read-only lookup table.
var generatedSuffixes = []string{
	".designer.cs",
	".generated.cs",
	".g.cs",
	".g.i.cs",
	".assemblyattributes.cs",
}

func isGeneratedFileName(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	if strings.HasPrefix(base, "temporarygeneratedfile_") {
		return true
	}
	for _, suffix := range generatedSuffixes {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}
	return false
}

// hasGeneratedMarker scans the comments before the first token for
// "<auto-generated" or "<autogenerated".
func hasGeneratedMarker(tree *syntax.Tree) bool {
	if tree.Root == nil {
		return false
	}
	first := tree.Root.FirstToken()
	if first == nil {
		return false
	}

	for _, trivia := range first.LeadingTrivia() {
		if !trivia.Kind.IsComment() {
			continue
		}
		text := strings.ToLower(trivia.Text())
		if strings.Contains(text, "<auto-generated") || strings.Contains(text, "<autogenerated") {
			return true
		}
	}
	return false
}
