package reporter

import (
	"fmt"

	"github.com/yaklabco/sharplint/pkg/config"
)

// Format is the reporter output format; it shares its values with the
// configuration file's format key.
type Format = config.OutputFormat

const (
	FormatText    = config.FormatText
	FormatTable   = config.FormatTable
	FormatJSON    = config.FormatJSON
	FormatSARIF   = config.FormatSARIF
	FormatSummary = config.FormatSummary
)

// Formats lists every supported format in display order.
func Formats() []Format { return config.OutputFormats() }

// ParseFormat parses a --format value. The empty string selects text.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatText, nil
	}
	if f := Format(name); f.IsValid() {
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q; valid formats: %v", name, Formats())
}

// SummaryOrder selects which summary table comes first.
type SummaryOrder string

const (
	SummaryOrderRules      SummaryOrder = "rules"
	SummaryOrderFiles      SummaryOrder = "files"
	SummaryOrderCategories SummaryOrder = "categories"
)

// IsValid reports whether o names a known table order. The empty order
// selects SummaryOrderRules.
func (o SummaryOrder) IsValid() bool {
	switch o {
	case "", SummaryOrderRules, SummaryOrderFiles, SummaryOrderCategories:
		return true
	default:
		return false
	}
}
