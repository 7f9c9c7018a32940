package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Run fields.
	FieldJobs       = "jobs"
	FieldConcurrent = "concurrent"
	FieldFormat     = "format"
	FieldCache      = "cache"

	// Statistics fields.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesWithIssues  = "files_with_issues"
	FieldDiagnosticsTotal = "diagnostics_total"
	FieldFaults           = "faults"
	FieldCacheHits        = "cache_hits"
	FieldNodesVisited     = "nodes_visited"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Analyzer fields.
	FieldAnalyzer = "analyzer"
	FieldRule     = "rule"
	FieldKind     = "kind"
	FieldSpan     = "span"
	FieldPanic    = "panic"
	FieldSeverity = "severity"
	FieldEnabled  = "enabled"
	FieldTitle    = "title"
	FieldCount    = "count"

	// Language server fields.
	FieldURI        = "uri"
	FieldMethod     = "method"
	FieldDocVersion = "doc_version"
)
