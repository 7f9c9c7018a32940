package configloader

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/sharplint/pkg/config"
)

// envVarPrefix is the prefix for all sharplint environment variables.
const envVarPrefix = "SHARPLINT_"

// envMapping binds one environment variable to a config field.
type envMapping struct {
	field       string
	description string
	set         func(cfg *config.Config, raw string) error
}

func envString(apply func(*config.Config, string)) func(*config.Config, string) error {
	return func(cfg *config.Config, raw string) error {
		apply(cfg, raw)
		return nil
	}
}

func envBool(apply func(*config.Config, bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, raw string) error {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", raw)
		}
		apply(cfg, v)
		return nil
	}
}

func envInt(apply func(*config.Config, int)) func(*config.Config, string) error {
	return func(cfg *config.Config, raw string) error {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid integer %q", raw)
		}
		apply(cfg, v)
		return nil
	}
}

// envList splits a comma-separated value, dropping blank elements.
func envList(apply func(*config.Config, []string)) func(*config.Config, string) error {
	return func(cfg *config.Config, raw string) error {
		var items []string
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}
		apply(cfg, items)
		return nil
	}
}

// envMappings is keyed by variable name without the prefix.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"SEVERITY_DEFAULT": {"severity_default", "Default severity: error, warning, info or hidden",
		envString(func(c *config.Config, v string) { c.SeverityDefault = v })},
	"FORMAT": {"format", "Output format: text, table, json, sarif or summary",
		envString(func(c *config.Config, v string) { c.Format = config.OutputFormat(v) })},
	"RULE_FORMAT": {"rule_format", "Rule identifiers in output: name, id or combined",
		envString(func(c *config.Config, v string) { c.RuleFormat = config.RuleFormat(v) })},
	"JOBS": {"jobs", "Number of parallel workers (0 = auto)",
		envInt(func(c *config.Config, v int) { c.Jobs = v })},
	"INCLUDE": {"include", "Comma-separated list of include patterns",
		envList(func(c *config.Config, v []string) { c.Include = v })},
	"IGNORE": {"ignore", "Comma-separated list of ignore patterns",
		envList(func(c *config.Config, v []string) { c.Ignore = v })},
	"CONCURRENT": {"concurrent", "Walk files in parallel: true or false",
		envBool(func(c *config.Config, v bool) { c.Concurrent = v })},
	"REPORT_FAULTS": {"report_faults", "Report analyzer crashes as SL0000: true or false",
		envBool(func(c *config.Config, v bool) { c.ReportFaults = v })},
	"GENERATED_CODE_ANALYZE": {"generated_code.analyze", "Analyze generated files: true or false",
		envBool(func(c *config.Config, v bool) { c.GeneratedCode.Analyze = v })},
	"CACHE_ENABLED": {"cache.enabled", "Enable the diagnostics cache: true or false",
		envBool(func(c *config.Config, v bool) { c.Cache.Enabled = v })},
	"CACHE_DIR": {"cache.dir", "Diagnostics cache directory",
		envString(func(c *config.Config, v string) { c.Cache.Dir = v })},
	"SHOW_FADE_OUT": {"show_fade_out", "Print fade-out spans: true or false",
		envBool(func(c *config.Config, v bool) { c.ShowFadeOut = v })},
}

// LoadFromEnv applies the SHARPLINT_* variables that are set and non-empty
// to cfg. Variables are applied in name order, so the first error reported
// is deterministic.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}
	for _, suffix := range slices.Sorted(maps.Keys(envMappings)) {
		name := envVarPrefix + suffix
		raw := os.Getenv(name)
		if raw == "" {
			continue
		}
		if err := envMappings[suffix].set(cfg, raw); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// GetEnvVarName returns the variable that sets a config field, or "".
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars maps every supported variable to its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
