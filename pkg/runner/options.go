// Package runner discovers C# files and analyzes them concurrently,
// consulting the result cache when one is configured.
package runner

import "github.com/yaklabco/sharplint/pkg/config"

// Options selects the files of a run and how they are processed.
type Options struct {
	// Paths are files or directories; none means ".".
	Paths []string
	// WorkingDir resolves relative Paths and globs. Empty is the process
	// working directory.
	WorkingDir string

	// Extensions overrides C# detection with an explicit lowercase list
	// such as ".cs".
	Extensions   []string
	IncludeGlobs []string
	ExcludeGlobs []string

	FollowSymlinks bool
	// SkipVendored prunes packages/, node_modules/ and similar directories.
	SkipVendored bool

	// Jobs bounds the parse workers; <= 0 uses runtime.NumCPU().
	Jobs int

	Config *config.Config
}

// OptionsFromConfig builds run options for paths from a resolved config.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	return Options{
		Paths:        paths,
		IncludeGlobs: cfg.Include,
		ExcludeGlobs: cfg.Ignore,
		SkipVendored: true,
		Jobs:         cfg.Jobs,
		Config:       cfg,
	}
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
