package rules

import (
	"github.com/yaklabco/sharplint/pkg/config"
	"github.com/yaklabco/sharplint/pkg/lint"
)

// All returns a fresh instance of every built-in analyzer.
func All() []lint.Analyzer {
	return []lint.Analyzer{
		NewConditionAlwaysTrueAnalyzer(),             // SL1001
		NewRemoveBracesAnalyzer(),                    // SL1002
		NewRemoveRedundantParenthesesAnalyzer(),      // SL1003
		NewSimplifyBooleanComparisonAnalyzer(),       // SL1004
		NewRemoveEmptyStatementAnalyzer(),            // SL1005
		NewRemoveEmptyElseClauseAnalyzer(),           // SL1006
		NewRemoveEmptyRegionAnalyzer(),               // SL1007
		NewEmbeddedStatementOnSeparateLineAnalyzer(), // SL1008
	}
}

// RegisterAll registers all built-in analyzers with the given registry.
func RegisterAll(registry *lint.Registry) {
	for _, analyzer := range All() {
		registry.Register(analyzer)
	}
}

// RuleInfos describes the registry's descriptors for config templates.
func RuleInfos(registry *lint.Registry) []config.RuleInfo {
	descriptors := registry.Descriptors()
	infos := make([]config.RuleInfo, 0, len(descriptors))
	for _, d := range descriptors {
		infos = append(infos, config.RuleInfo{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Title,
			Enabled:     d.EnabledByDefault,
			Severity:    d.DefaultSeverity,
			Tags:        d.Tags,
		})
	}
	return infos
}

// init registers all built-in analyzers with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
	config.DefaultRuleInfoProvider = func() []config.RuleInfo {
		return RuleInfos(lint.DefaultRegistry)
	}
}
