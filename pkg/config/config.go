// Package config defines core configuration types for sharplint.
// These types are pure data structures; loading and precedence live in internal/configloader.
package config

import (
	"maps"
	"slices"
)

// Severity represents the severity level of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	// SeverityHidden is used by fade-out diagnostics. Hidden diagnostics are
	// surfaced to editors but not counted as findings.
	SeverityHidden Severity = "hidden"
)

// IsValid returns true if s is a known severity.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo, SeverityHidden:
		return true
	default:
		return false
	}
}

// Rank orders severities from hidden (0) to error (3).
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	Enabled  *bool          `yaml:"enabled,omitempty" toml:"enabled,omitempty"`
	Severity *string        `yaml:"severity,omitempty" toml:"severity,omitempty"`
	Options  map[string]any `yaml:"options,omitempty" toml:"options,omitempty"`
}

// GeneratedCodeConfig controls detection and analysis of generated files.
type GeneratedCodeConfig struct {
	// Analyze runs every analyzer on generated files, as if each had opted in.
	Analyze bool `yaml:"analyze" toml:"analyze"`

	// Patterns are extra glob patterns marking files as generated.
	Patterns []string `yaml:"patterns,omitempty" toml:"patterns,omitempty"`
}

// CacheConfig controls the on-disk diagnostics cache.
type CacheConfig struct {
	Enabled bool `yaml:"enabled" toml:"enabled"`

	// Dir overrides the cache directory. Empty means the user cache dir.
	Dir string `yaml:"dir,omitempty" toml:"dir,omitempty"`
}

// Config is the root configuration structure for sharplint.
type Config struct {
	// SeverityDefault overrides the default severity of every rule without an explicit one.
	SeverityDefault string `yaml:"severity_default,omitempty" toml:"severity_default,omitempty"`

	// Rules contains per-rule configuration keyed by rule ID or name.
	Rules map[string]RuleConfig `yaml:"rules,omitempty" toml:"rules,omitempty"`

	// Include contains glob patterns selecting source files. Defaults to C# files.
	Include []string `yaml:"include,omitempty" toml:"include,omitempty"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore,omitempty"`

	// Concurrent walks independent files in parallel when every analyzer allows it.
	Concurrent bool `yaml:"concurrent" toml:"concurrent"`

	// ReportFaults surfaces analyzer faults as internal SL0000 diagnostics.
	ReportFaults bool `yaml:"report_faults" toml:"report_faults"`

	// GeneratedCode configures generated-file handling.
	GeneratedCode GeneratedCodeConfig `yaml:"generated_code" toml:"generated_code"`

	// Cache configures the diagnostics cache.
	Cache CacheConfig `yaml:"cache" toml:"cache"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-" toml:"-"`

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat RuleFormat `yaml:"-" toml:"-"`

	// Jobs specifies the number of parallel workers. 0 means GOMAXPROCS.
	Jobs int `yaml:"-" toml:"-"`

	// EnableRules contains rule IDs or names to explicitly enable.
	EnableRules []string `yaml:"-" toml:"-"`

	// DisableRules contains rule IDs or names to explicitly disable.
	DisableRules []string `yaml:"-" toml:"-"`

	// ShowFadeOut includes fade-out diagnostics in text, table and JSON output.
	ShowFadeOut bool `yaml:"-" toml:"-"`

	// NoCache disables the diagnostics cache for this run.
	NoCache bool `yaml:"-" toml:"-"`
}

// DefaultInclude is the file selection used when Include is empty.
const DefaultInclude = "**/*.cs"

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Rules:      make(map[string]RuleConfig),
		Include:    []string{DefaultInclude},
		Concurrent: true,
		Format:     FormatText,
		RuleFormat: RuleFormatName,
	}
}

// RuleFor returns the rule config stored under any of keys, in order.
func (c *Config) RuleFor(keys ...string) (RuleConfig, bool) {
	if c == nil || c.Rules == nil {
		return RuleConfig{}, false
	}
	for _, key := range keys {
		if rc, ok := c.Rules[key]; ok {
			return rc, true
		}
	}
	return RuleConfig{}, false
}

// Enables reports whether the CLI explicitly enabled any of keys.
func (c *Config) Enables(keys ...string) bool {
	return c != nil && slices.ContainsFunc(keys, func(k string) bool {
		return slices.Contains(c.EnableRules, k)
	})
}

// Disables reports whether the CLI explicitly disabled any of keys.
func (c *Config) Disables(keys ...string) bool {
	return c != nil && slices.ContainsFunc(keys, func(k string) bool {
		return slices.Contains(c.DisableRules, k)
	})
}

// Clone returns a deep copy of c. Rule option values are copied shallowly.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	out := *c
	for _, list := range []*[]string{
		&out.Include, &out.Ignore, &out.EnableRules, &out.DisableRules, &out.GeneratedCode.Patterns,
	} {
		*list = slices.Clone(*list)
	}
	if c.Rules != nil {
		out.Rules = make(map[string]RuleConfig, len(c.Rules))
		for key, rule := range c.Rules {
			out.Rules[key] = rule.clone()
		}
	}
	return &out
}

func (rc RuleConfig) clone() RuleConfig {
	return RuleConfig{
		Enabled:  clonePtr(rc.Enabled),
		Severity: clonePtr(rc.Severity),
		Options:  maps.Clone(rc.Options),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
