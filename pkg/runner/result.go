package runner

import (
	"github.com/yaklabco/sharplint/pkg/config"
	"github.com/yaklabco/sharplint/pkg/lint"
)

// FileOutcome is the analysis result for one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Source is the file content, kept for source context in reports.
	Source []byte

	// Records are the file's diagnostics, fade-outs included, in emission order.
	Records []lint.Record

	// Faults lists analyzer callbacks that panicked on this file.
	Faults []lint.Fault

	// Cached is true when Records came from the result cache.
	Cached bool

	// Cancelled is true when analysis stopped early; Records are partial.
	Cancelled bool

	// Error is set if the file could not be read or parsed.
	Error error
}

// Primary returns the records that are findings, excluding fade-outs.
func (o *FileOutcome) Primary() []lint.Record {
	var out []lint.Record
	for _, rec := range o.Records {
		if !rec.FadeOut {
			out = append(out, rec)
		}
	}
	return out
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files analyzed or served from cache.
	FilesProcessed int

	// FilesCached is the number of files served from the result cache.
	FilesCached int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// FilesWithIssues is the number of files with at least one finding.
	FilesWithIssues int

	// DiagnosticsTotal is the number of findings across all files. Fade-outs
	// are not findings.
	DiagnosticsTotal int

	// FadeOutsTotal is the number of fade-out diagnostics.
	FadeOutsTotal int

	// Faults is the number of analyzer faults.
	Faults int

	// DiagnosticsBySeverity maps severity levels to finding counts.
	DiagnosticsBySeverity map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Errors contains any non-file-specific errors encountered.
	Errors []error

	// Cancelled is true when the run stopped before every file was analyzed.
	Cancelled bool
}

// HasFailures reports whether any diagnostics with error severity occurred.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsBySeverity[string(config.SeverityError)] > 0
}

// HasIssues reports whether any findings were reported.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsTotal > 0
}

// Records returns every record of every file in file order.
func (r *Result) Records() []lint.Record {
	if r == nil {
		return nil
	}
	var out []lint.Record
	for i := range r.Files {
		out = append(out, r.Files[i].Records...)
	}
	return out
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		DiagnosticsBySeverity: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	if outcome.Cached {
		r.Stats.FilesCached++
	}
	if outcome.Cancelled {
		r.Cancelled = true
	}
	r.Stats.Faults += len(outcome.Faults)

	findings := 0
	for _, rec := range outcome.Records {
		if rec.FadeOut {
			r.Stats.FadeOutsTotal++
			continue
		}
		findings++
		severity := string(rec.Severity)
		if severity == "" {
			severity = string(config.SeverityWarning)
		}
		r.Stats.DiagnosticsBySeverity[severity]++
	}

	r.Stats.DiagnosticsTotal += findings
	if findings > 0 {
		r.Stats.FilesWithIssues++
	}
}
