package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/sharplint/pkg/langdetect"
	"github.com/yaklabco/sharplint/pkg/pathglob"
)

// Discover expands opts.Paths into the C# source files to analyze. Files
// named explicitly are kept when they pass the filters; directories are
// walked. The result holds absolute paths, sorted and free of duplicates.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	w, err := newWalker(ctx, opts)
	if err != nil {
		return nil, err
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		target := input
		if !filepath.IsAbs(target) {
			target = filepath.Join(w.workDir, target)
		}
		target = filepath.Clean(target)

		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}
		if !info.IsDir() {
			w.consider(target, true)
			continue
		}
		if err := w.walk(target); err != nil {
			return nil, err
		}
	}

	files := make([]string, 0, len(w.found))
	for path := range w.found {
		files = append(files, path)
	}
	slices.Sort(files)
	return files, nil
}

// walker carries the compiled filters of one Discover call.
type walker struct {
	ctx     context.Context
	opts    Options
	workDir string
	include pathglob.Set
	exclude pathglob.Set
	exts    map[string]struct{}
	found   map[string]struct{}
}

func newWalker(ctx context.Context, opts Options) (*walker, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	include, err := pathglob.CompileAll(opts.IncludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("include patterns: %w", err)
	}
	exclude, err := pathglob.CompileAll(opts.ExcludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("ignore patterns: %w", err)
	}

	var exts map[string]struct{}
	if len(opts.Extensions) > 0 {
		exts = make(map[string]struct{}, len(opts.Extensions))
		for _, ext := range opts.Extensions {
			exts[strings.ToLower(ext)] = struct{}{}
		}
	}

	return &walker{
		ctx:     ctx,
		opts:    opts,
		workDir: workDir,
		include: include,
		exclude: exclude,
		exts:    exts,
		found:   make(map[string]struct{}),
	}, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// rel returns path relative to the working directory for glob matching.
func (w *walker) rel(path string) string {
	rel, err := filepath.Rel(w.workDir, path)
	if err != nil {
		return path
	}
	return rel
}

// consider records path when it is a C# file that passes the filters.
// Named files without an extension are sniffed with go-enry, so C# scripts
// can be passed explicitly.
func (w *walker) consider(path string, named bool) {
	if !w.isSource(path) && !(named && w.sniffCSharp(path)) {
		return
	}
	rel := w.rel(path)
	if w.exclude.Match(rel) {
		return
	}
	if len(w.include) > 0 && !w.include.Match(rel) {
		return
	}
	w.found[path] = struct{}{}
}

func (w *walker) isSource(path string) bool {
	if w.exts == nil {
		return langdetect.IsCSharp(path)
	}
	_, ok := w.exts[strings.ToLower(filepath.Ext(path))]
	return ok
}

// sniffSize bounds how much of an extensionless file is read for detection.
const sniffSize = 8 << 10

func (w *walker) sniffCSharp(path string) bool {
	if w.exts != nil || filepath.Ext(path) != "" {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	head, err := io.ReadAll(io.LimitReader(f, sniffSize))
	if err != nil {
		return false
	}
	return langdetect.Detect(path, head) == langdetect.LanguageCSharp
}

// skipDir reports whether the walk should prune dir, a directory below root.
func (w *walker) skipDir(root, dir string) bool {
	if strings.HasPrefix(filepath.Base(dir), ".") {
		return true
	}
	if w.exclude.MatchDir(w.rel(dir)) {
		return true
	}
	if !w.opts.SkipVendored {
		return false
	}
	// Vendoring is judged below the walk root so the root's own ancestors never count.
	below, err := filepath.Rel(root, dir)
	return err == nil && langdetect.IsVendored(filepath.ToSlash(below)+"/")
}

func (w *walker) walk(root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		if path == root {
			return nil
		}
		if entry.IsDir() {
			if w.skipDir(root, path) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			return w.followLink(path)
		}
		w.consider(path, false)
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// followLink handles a symlink met during a walk. File links are analyzed
// under the link's own path; directory links are walked through their
// target only with FollowSymlinks. Dangling links are skipped.
func (w *walker) followLink(path string) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil //nolint:nilerr // dangling links are not an error
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil //nolint:nilerr // unreadable link targets are skipped
	}
	if !info.IsDir() {
		w.consider(path, false)
		return nil
	}
	if !w.opts.FollowSymlinks {
		return nil
	}
	// WalkDir does not descend into symlinked roots, so walk the target.
	return w.walk(target)
}
