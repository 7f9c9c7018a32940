package lint

import (
	"maps"

	"github.com/yaklabco/sharplint/pkg/config"
)

// ResolvedDescriptor pairs a Descriptor with its resolved configuration.
type ResolvedDescriptor struct {
	// Descriptor is the underlying descriptor.
	Descriptor *Descriptor

	// Enabled indicates whether diagnostics for the descriptor are kept.
	Enabled bool

	// Severity is the resolved severity for diagnostics from this descriptor.
	Severity config.Severity

	// Config is the rule-specific configuration (may be nil).
	Config *config.RuleConfig
}

// ResolveDescriptors resolves every descriptor in the registry against cfg.
// Disabled descriptors are included with Enabled false.
func ResolveDescriptors(registry *Registry, cfg *config.Config) []ResolvedDescriptor {
	descriptors := registry.Descriptors()
	resolved := make([]ResolvedDescriptor, 0, len(descriptors))
	for _, d := range descriptors {
		resolved = append(resolved, ResolveDescriptor(d, cfg))
	}
	return resolved
}

// ResolveDescriptor resolves a single descriptor.
//
// Precedence, lowest first: descriptor defaults, severity_default, the rule's
// config entry (by ID or name), then --enable/--disable from the CLI.
func ResolveDescriptor(d *Descriptor, cfg *config.Config) ResolvedDescriptor {
	rd := ResolvedDescriptor{
		Descriptor: d,
		Enabled:    d.EnabledByDefault,
		Severity:   d.DefaultSeverity,
	}

	if cfg == nil {
		return rd
	}

	if sev := config.Severity(cfg.SeverityDefault); sev.IsValid() && d.Category != CategoryInternal {
		rd.Severity = sev
	}

	if ruleCfg, ok := cfg.RuleFor(d.ID, d.Name); ok {
		rd.Config = &ruleCfg

		if ruleCfg.Enabled != nil {
			rd.Enabled = *ruleCfg.Enabled
		}
		if ruleCfg.Severity != nil {
			if sev := config.Severity(*ruleCfg.Severity); sev.IsValid() {
				rd.Severity = sev
			}
		}
	}

	if cfg.Enables(d.ID, d.Name) {
		rd.Enabled = true
	}
	if cfg.Disables(d.ID, d.Name) {
		rd.Enabled = false
	}

	return rd
}

// AnalyzerOptions merges the options of every descriptor the analyzer
// supports, in descriptor order.
func AnalyzerOptions(a Analyzer, cfg *config.Config) map[string]any {
	var options map[string]any
	for _, d := range a.SupportedDiagnostics() {
		ruleCfg, ok := cfg.RuleFor(d.ID, d.Name)
		if !ok || len(ruleCfg.Options) == 0 {
			continue
		}
		if options == nil {
			options = make(map[string]any, len(ruleCfg.Options))
		}
		maps.Copy(options, ruleCfg.Options)
	}
	return options
}
