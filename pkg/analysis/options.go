package analysis

// SortField orders the grouped views of a Report.
type SortField string

const (
	// SortByCount orders by issue count, highest first when SortDesc is set.
	SortByCount SortField = "count"
	SortByAlpha SortField = "alpha"
	// SortBySeverity puts groups with the most errors, then warnings, first.
	SortBySeverity SortField = "severity"
)

// Options selects which views Analyze builds and how they are ordered.
// Unknown SortBy values order by count.
type Options struct {
	IncludeDiagnostics bool
	IncludeByFile      bool
	IncludeByRule      bool
	IncludeByCategory  bool

	// IncludeFadeOuts lists fade-out records in Diagnostics. They never
	// count as issues.
	IncludeFadeOuts bool

	// Categories maps descriptor IDs to categories; missing IDs are
	// grouped as "uncategorized".
	Categories map[string]string

	SortBy   SortField
	SortDesc bool

	// WorkingDir relativizes file paths. Empty keeps them as given.
	WorkingDir string
}

// DefaultOptions builds every view, busiest groups first.
func DefaultOptions() Options {
	return Options{
		IncludeDiagnostics: true,
		IncludeByFile:      true,
		IncludeByRule:      true,
		IncludeByCategory:  true,
		SortBy:             SortByCount,
		SortDesc:           true,
	}
}
