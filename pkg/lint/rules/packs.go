package rules

import "github.com/yaklabco/sharplint/pkg/config"

// Pack describes a named group of rule defaults for a particular use case.
// Packs are configuration fragments used as starting points for
// .sharplint.yml files (see `sharplint init --pack`).
type Pack struct {
	// Name is the short identifier for the pack (e.g., "recommended", "strict").
	Name string

	// Description explains the purpose and characteristics of the pack.
	Description string

	// Rules contains rule configurations keyed by rule ID.
	Rules map[string]config.RuleConfig
}

// RecommendedPack returns the default rule set with its default severities.
func RecommendedPack() Pack {
	return Pack{
		Name:        "recommended",
		Description: "Correctness and redundancy checks with low noise",
		Rules: map[string]config.RuleConfig{
			"SL1001": enabled("warning"), // condition-always-true
			"SL1003": enabled("info"),    // remove-redundant-parentheses
			"SL1004": enabled("info"),    // simplify-boolean-comparison
			"SL1005": enabled("info"),    // remove-empty-statement
			"SL1006": enabled("info"),    // remove-empty-else-clause
			"SL1007": enabled("info"),    // remove-empty-region
			"SL1008": enabled("warning"), // embedded-statement-on-separate-line
		},
	}
}

// StrictPack returns every rule as an error, including remove-braces.
func StrictPack() Pack {
	return Pack{
		Name:        "strict",
		Description: "Strict pack: every rule enabled as an error",
		Rules: map[string]config.RuleConfig{
			"SL1001": enabled("error"), // condition-always-true
			"SL1002": enabled("error"), // remove-braces
			"SL1003": enabled("error"), // remove-redundant-parentheses
			"SL1004": enabled("error"), // simplify-boolean-comparison
			"SL1005": enabled("error"), // remove-empty-statement
			"SL1006": enabled("error"), // remove-empty-else-clause
			"SL1007": enabled("error"), // remove-empty-region
			"SL1008": enabled("error"), // embedded-statement-on-separate-line
		},
	}
}

// RelaxedPack returns only the correctness checks, for legacy codebases.
func RelaxedPack() Pack {
	return Pack{
		Name:        "relaxed",
		Description: "Relaxed pack: only likely bugs, minimal noise",
		Rules: map[string]config.RuleConfig{
			"SL1001": enabled("warning"), // condition-always-true
			"SL1002": disabled(),         // remove-braces
			"SL1003": disabled(),         // remove-redundant-parentheses
			"SL1004": disabled(),         // simplify-boolean-comparison
			"SL1005": disabled(),         // remove-empty-statement
			"SL1006": disabled(),         // remove-empty-else-clause
			"SL1007": disabled(),         // remove-empty-region
			"SL1008": enabled("info"),    // embedded-statement-on-separate-line
		},
	}
}

// Packs returns all built-in rule packs.
func Packs() []Pack {
	return []Pack{
		RecommendedPack(),
		StrictPack(),
		RelaxedPack(),
	}
}

// PackByName returns a pack by name, or nil if not found.
func PackByName(name string) *Pack {
	for _, p := range Packs() {
		if p.Name == name {
			return &p
		}
	}
	return nil
}

// PackNames returns the names of all available packs.
func PackNames() []string {
	packs := Packs()
	names := make([]string, len(packs))
	for i, p := range packs {
		names[i] = p.Name
	}
	return names
}

// Apply copies the pack's rule settings into cfg, replacing existing entries.
func (p Pack) Apply(cfg *config.Config) {
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]config.RuleConfig, len(p.Rules))
	}
	for id, rc := range p.Rules {
		cfg.Rules[id] = rc
	}
}

// enabled creates a RuleConfig with the rule enabled and the given severity.
func enabled(sev string) config.RuleConfig {
	enabled := true
	return config.RuleConfig{
		Enabled:  &enabled,
		Severity: &sev,
	}
}

func disabled() config.RuleConfig {
	enabled := false
	return config.RuleConfig{Enabled: &enabled}
}
