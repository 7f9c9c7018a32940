package config

import "slices"

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatSummary OutputFormat = "summary"
)

// OutputFormats lists every output format in help order.
func OutputFormats() []OutputFormat {
	return []OutputFormat{FormatText, FormatTable, FormatJSON, FormatSARIF, FormatSummary}
}

// IsValid reports whether f names a known output format.
func (f OutputFormat) IsValid() bool {
	return slices.Contains(OutputFormats(), f)
}

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "remove-braces"
	RuleFormatID       RuleFormat = "id"       // "SL1002"
	RuleFormatCombined RuleFormat = "combined" // "SL1002/remove-braces"
)

// RuleFormats lists every rule format in help order.
func RuleFormats() []RuleFormat {
	return []RuleFormat{RuleFormatName, RuleFormatID, RuleFormatCombined}
}

// IsValid reports whether f names a known rule format.
func (f RuleFormat) IsValid() bool {
	return slices.Contains(RuleFormats(), f)
}

// Label renders a rule as f asks. Unknown formats behave like name, and a
// rule without a name is always shown by id.
func (f RuleFormat) Label(id, name string) string {
	switch {
	case name == "" || f == RuleFormatID:
		return id
	case f == RuleFormatCombined:
		return id + "/" + name
	default:
		return name
	}
}

// FormatRuleID is format.Label(ruleID, ruleName).
func FormatRuleID(format RuleFormat, ruleID, ruleName string) string {
	return format.Label(ruleID, ruleName)
}
