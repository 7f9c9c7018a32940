package configloader

import (
	"maps"

	"github.com/yaklabco/sharplint/pkg/config"
)

// set copies v into dst unless v is the zero value.
func set[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}

// replace swaps in v when the layer set the list at all, even to empty.
func replace(dst *[]string, v []string) {
	if v != nil {
		*dst = v
	}
}

// merge layers override on base. The CLI layer only carries what the user
// set, so zero scalars and false booleans leave base alone, lists replace
// wholesale, and rule entries deep-merge.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	out := *base
	set(&out.SeverityDefault, override.SeverityDefault)
	set(&out.Format, override.Format)
	set(&out.RuleFormat, override.RuleFormat)
	set(&out.Jobs, override.Jobs)
	set(&out.Cache.Dir, override.Cache.Dir)

	set(&out.ReportFaults, override.ReportFaults)
	set(&out.GeneratedCode.Analyze, override.GeneratedCode.Analyze)
	set(&out.Cache.Enabled, override.Cache.Enabled)
	set(&out.ShowFadeOut, override.ShowFadeOut)
	set(&out.NoCache, override.NoCache)

	replace(&out.Include, override.Include)
	replace(&out.Ignore, override.Ignore)
	replace(&out.GeneratedCode.Patterns, override.GeneratedCode.Patterns)
	replace(&out.EnableRules, override.EnableRules)
	replace(&out.DisableRules, override.DisableRules)

	out.Rules = mergeRules(base.Rules, override.Rules)
	return &out
}

// mergeRules deep-merges rule tables; entries of override win field by field.
func mergeRules(base, override map[string]config.RuleConfig) map[string]config.RuleConfig {
	out := maps.Clone(base)
	if out == nil {
		out = make(map[string]config.RuleConfig, len(override))
	}
	for key, rule := range override {
		if existing, ok := out[key]; ok {
			rule = mergeRuleConfig(existing, rule)
		}
		out[key] = rule
	}
	return out
}

// mergeRuleConfig layers override on base field by field; options merge by key.
func mergeRuleConfig(base, override config.RuleConfig) config.RuleConfig {
	out := base
	if override.Enabled != nil {
		out.Enabled = override.Enabled
	}
	if override.Severity != nil {
		out.Severity = override.Severity
	}
	if override.Options != nil {
		out.Options = maps.Clone(base.Options)
		if out.Options == nil {
			out.Options = make(map[string]any, len(override.Options))
		}
		maps.Copy(out.Options, override.Options)
	}
	return out
}

// MergeAll layers configs left to right; later configs win.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}
	out := configs[0]
	for _, cfg := range configs[1:] {
		out = merge(out, cfg)
	}
	return out
}
