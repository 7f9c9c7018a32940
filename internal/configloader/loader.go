// Package configloader resolves the effective configuration of a run from
// system, user, project and explicit files, SHARPLINT_* variables and
// command-line flags, then validates it.
package configloader

import (
	"context"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/yaklabco/sharplint/pkg/config"
	"github.com/yaklabco/sharplint/pkg/lint"
)

// LoadOptions controls which layers Load reads.
type LoadOptions struct {
	// WorkingDir anchors the project config search. Empty means the
	// current directory.
	WorkingDir string

	// ExplicitPath is the --config file. It replaces the project config.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// Registry resolves rule names to IDs. Nil means lint.DefaultRegistry.
	Registry *lint.Registry

	// CLIConfig holds only the flags the user set. It wins over every
	// other layer.
	CLIConfig *config.Config
}

// LoadResult is the effective configuration and where it came from.
type LoadResult struct {
	Config *config.Config
	Paths  *ConfigPaths

	// LoadedFrom lists the files read, lowest precedence first.
	LoadedFrom []string

	// Warnings are non-fatal findings such as unknown rules.
	Warnings []string
}

// Load layers, from lowest to highest precedence: defaults, system config,
// user config, project config (or the explicit --config file), SHARPLINT_*
// variables and CLI flags. The merged result must validate; the first
// validation error is returned as a *ValidationError.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	registry := opts.Registry
	if registry == nil {
		registry = lint.DefaultRegistry
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		name, path string
		skip       bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig || opts.ExplicitPath != ""},
		{"explicit", opts.ExplicitPath, false},
	}
	for _, layer := range layers {
		if layer.skip || layer.path == "" {
			continue
		}
		cfg, err = applyConfigFile(cfg, layer.path, registry, result)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(cfg, registry)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// applyConfigFile layers the file at path over base. Settings the file does
// not mention keep their base values, and rule entries are deep-merged.
func applyConfigFile(
	base *config.Config, path string, registry *lint.Registry, result *LoadResult,
) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	layered := base.Clone()
	layered.Rules = nil
	if err := config.CodecFor(path).Decode(content, layered); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	fileRules := normalizeRuleKeys(layered.Rules, registry, path, result)
	layered.Rules = mergeRules(base.Rules, fileRules)

	return layered, nil
}

// normalizeRuleKeys converts rule names to canonical IDs so that a rule set
// by name in one file and by ID in another merges into one entry. Unknown
// keys are kept as-is for validation to report.
func normalizeRuleKeys(
	rules map[string]config.RuleConfig, registry *lint.Registry, path string, result *LoadResult,
) map[string]config.RuleConfig {
	normalized := make(map[string]config.RuleConfig, len(rules))
	seenIDs := make(map[string]string, len(rules))

	for _, key := range slices.Sorted(maps.Keys(rules)) {
		ruleCfg := rules[key]
		canonicalID, _, _, found := registry.Resolve(key)
		if !found {
			normalized[key] = ruleCfg
			continue
		}

		if originalKey, exists := seenIDs[canonicalID]; exists {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: %q and %q both configure %s; settings are merged",
					path, originalKey, key, canonicalID))
			ruleCfg = mergeRuleConfig(normalized[canonicalID], ruleCfg)
		}

		seenIDs[canonicalID] = key
		normalized[canonicalID] = ruleCfg
	}

	return normalized
}
