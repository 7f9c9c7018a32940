// Package analysis folds a runner.Result into grouped views (per file,
// rule and category) that the summary and JSON outputs render.
package analysis

import (
	"time"

	"github.com/yaklabco/sharplint/pkg/config"
)

// Report is computed once by Analyze and shared by every renderer. The
// JSON tags define the machine-readable report format, see ReportVersion.
type Report struct {
	Diagnostics []DiagnosticEntry  `json:"diagnostics,omitempty"`
	ByFile      []FileAnalysis     `json:"byFile,omitempty"`
	ByRule      []RuleAnalysis     `json:"byRule,omitempty"`
	ByCategory  []CategoryAnalysis `json:"byCategory,omitempty"`
	Totals      Totals             `json:"summary"`
	Version     string             `json:"version"`
	Timestamp   time.Time          `json:"timestamp"`
}

// DiagnosticEntry is one record with its display path. Lines and columns
// are 1-based; spans are byte offsets.
type DiagnosticEntry struct {
	FilePath    string `json:"filePath"`
	RuleID      string `json:"ruleId"`
	RuleName    string `json:"ruleName"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	SpanStart   int    `json:"spanStart"`
	SpanEnd     int    `json:"spanEnd"`
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     int    `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
	FadeOut     bool   `json:"fadeOut,omitempty"`
	HelpURI     string `json:"helpUri,omitempty"`
}

// Totals are the run-wide counts. Fade-outs are kept apart from Issues.
type Totals struct {
	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesCached     int `json:"filesCached"`
	FilesErrored    int `json:"filesErrored"`
	Issues          int `json:"totalIssues"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Infos           int `json:"infos"`
	Hidden          int `json:"hidden"`
	FadeOuts        int `json:"fadeOuts"`
	Faults          int `json:"faults"`
}

// Counts tallies the issues of one group. Hidden issues add to Issues only.
type Counts struct {
	Issues   int `json:"issues"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
}

func (c *Counts) add(severity config.Severity) {
	c.Issues++
	switch severity {
	case config.SeverityError:
		c.Errors++
	case config.SeverityWarning:
		c.Warnings++
	case config.SeverityInfo:
		c.Infos++
	}
}

// FileAnalysis groups the issues of one file. Rules lists the IDs reported.
type FileAnalysis struct {
	Path string `json:"path"`
	Counts

	Rules []string `json:"rules,omitempty"`
}

// RuleAnalysis groups the issues of one rule. Files lists where it fired.
type RuleAnalysis struct {
	RuleID   string `json:"ruleId"`
	RuleName string `json:"ruleName"`
	Category string `json:"category"`
	Counts

	Files []string `json:"files,omitempty"`
}

// CategoryAnalysis groups the issues of one descriptor category, such as
// "Redundancy".
type CategoryAnalysis struct {
	Category string `json:"category"`
	Counts

	Rules []string `json:"rules,omitempty"`
}
