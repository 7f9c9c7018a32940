package reporter

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/sharplint/pkg/config"
	"github.com/yaklabco/sharplint/pkg/lint"
	"github.com/yaklabco/sharplint/pkg/runner"
)

const (
	sarifVersion   = "2.1.0"
	sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

	toolName           = "sharplint"
	toolInformationURI = "https://github.com/yaklabco/sharplint"

	// unnecessaryTag marks fade-out results so viewers can dim the span.
	unnecessaryTag = "unnecessary"
)

// SARIFOutput is a SARIF 2.1.0 log holding a single run.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

type SARIFRun struct {
	Tool        SARIFTool         `json:"tool"`
	Results     []SARIFResult     `json:"results"`
	Invocations []SARIFInvocation `json:"invocations,omitempty"`
}

type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule is a reportingDescriptor. Properties carries the category and
// tags.
type SARIFRule struct {
	ID               string           `json:"id"`
	Name             string           `json:"name,omitempty"`
	ShortDescription SARIFText        `json:"shortDescription"`
	FullDescription  *SARIFText       `json:"fullDescription,omitempty"`
	DefaultConfig    *SARIFRuleConfig `json:"defaultConfiguration,omitempty"`
	HelpURI          string           `json:"helpUri,omitempty"`
	Properties       map[string]any   `json:"properties,omitempty"`
}

type SARIFText struct {
	Text string `json:"text"`
}

type SARIFRuleConfig struct {
	Level string `json:"level"`
}

type SARIFResult struct {
	RuleID     string           `json:"ruleId"`
	Level      string           `json:"level"`
	Message    SARIFText        `json:"message"`
	Locations  []SARIFLocation  `json:"locations"`
	Properties *SARIFProperties `json:"properties,omitempty"`
}

type SARIFProperties struct {
	Tags []string `json:"tags,omitempty"`
}

type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           *SARIFRegion          `json:"region,omitempty"`
}

type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion locates a span by 1-based line and column and by byte range.
type SARIFRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
	ByteOffset  int `json:"byteOffset"`
	ByteLength  int `json:"byteLength"`
}

// SARIFInvocation records whether the run finished cleanly. Unreadable files
// and analyzer faults become notifications.
type SARIFInvocation struct {
	ExecutionSuccessful bool                `json:"executionSuccessful"`
	Notifications       []SARIFNotification `json:"toolExecutionNotifications,omitempty"`
}

type SARIFNotification struct {
	Level     string          `json:"level"`
	Message   SARIFText       `json:"message"`
	Locations []SARIFLocation `json:"locations,omitempty"`
}

// SARIFReporter writes a SARIF log. Fade-outs are always included, tagged
// "unnecessary", and never counted as issues.
type SARIFReporter struct {
	opts Options
}

// NewSARIFReporter creates a SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{opts: opts}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	encoder := json.NewEncoder(r.opts.Writer)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(r.build(result)); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}

	issues := 0
	if result != nil {
		for i := range result.Files {
			issues += len(result.Files[i].Primary())
		}
	}
	return issues, nil
}

func (r *SARIFReporter) build(result *runner.Result) *SARIFOutput {
	rules := newSARIFRules(len(r.opts.Descriptors))
	for _, desc := range r.opts.Descriptors {
		if desc != nil {
			rules.add(desc.ID, func() SARIFRule { return ruleFromDescriptor(desc) })
		}
	}

	run := SARIFRun{
		Tool: SARIFTool{Driver: SARIFDriver{
			Name:           toolName,
			Version:        cmp.Or(r.opts.ToolVersion, "dev"),
			InformationURI: toolInformationURI,
		}},
		Results: []SARIFResult{},
	}
	invocation := SARIFInvocation{ExecutionSuccessful: true}

	if result != nil {
		invocation.ExecutionSuccessful = !result.Cancelled
		for i := range result.Files {
			file := &result.Files[i]
			uri := r.opts.displayPath(file.Path)
			if file.Error != nil {
				invocation.Notifications = append(invocation.Notifications,
					notification("error", file.Error.Error(), uri))
			}
			for j := range file.Faults {
				fault := &file.Faults[j]
				invocation.Notifications = append(invocation.Notifications, notification("warning",
					fmt.Sprintf("analyzer %s crashed on %s: %v", fault.Analyzer, fault.Kind, fault.Value), uri))
			}
			for j := range file.Records {
				rec := &file.Records[j]
				rules.add(rec.ID, func() SARIFRule { return ruleFromRecord(rec) })
				run.Results = append(run.Results, sarifResult(uri, rec))
			}
		}
	}

	run.Tool.Driver.Rules = rules.list
	if !invocation.ExecutionSuccessful || len(invocation.Notifications) > 0 {
		run.Invocations = []SARIFInvocation{invocation}
	}
	return &SARIFOutput{Schema: sarifSchemaURI, Version: sarifVersion, Runs: []SARIFRun{run}}
}

// sarifRules keeps the first rule registered under each ID, in order.
type sarifRules struct {
	seen map[string]struct{}
	list []SARIFRule
}

func newSARIFRules(hint int) *sarifRules {
	return &sarifRules{seen: make(map[string]struct{}, hint), list: make([]SARIFRule, 0, hint)}
}

func (s *sarifRules) add(id string, build func() SARIFRule) {
	if _, ok := s.seen[id]; ok {
		return
	}
	s.seen[id] = struct{}{}
	s.list = append(s.list, build())
}

func ruleFromDescriptor(desc *lint.Descriptor) SARIFRule {
	rule := SARIFRule{
		ID:               desc.ID,
		Name:             desc.Name,
		ShortDescription: SARIFText{Text: desc.Title},
		DefaultConfig:    &SARIFRuleConfig{Level: sarifLevel(desc.DefaultSeverity)},
		HelpURI:          desc.HelpURI,
	}
	if desc.Description != "" {
		rule.FullDescription = &SARIFText{Text: desc.Description}
	}
	props := map[string]any{}
	if desc.Category != "" {
		props["category"] = desc.Category
	}
	if len(desc.Tags) > 0 {
		props["tags"] = desc.Tags
	}
	if len(props) > 0 {
		rule.Properties = props
	}
	return rule
}

// ruleFromRecord describes a rule that has no registered descriptor.
func ruleFromRecord(rec *lint.Record) SARIFRule {
	return SARIFRule{
		ID:               rec.ID,
		Name:             rec.Name,
		ShortDescription: SARIFText{Text: rec.Message},
		DefaultConfig:    &SARIFRuleConfig{Level: sarifLevel(rec.Severity)},
		HelpURI:          rec.HelpURI,
	}
}

func sarifResult(uri string, rec *lint.Record) SARIFResult {
	res := SARIFResult{
		RuleID:  rec.ID,
		Level:   sarifLevel(rec.Severity),
		Message: SARIFText{Text: rec.Message},
		Locations: []SARIFLocation{{PhysicalLocation: SARIFPhysicalLocation{
			ArtifactLocation: SARIFArtifactLocation{URI: uri},
			Region: &SARIFRegion{
				StartLine:   rec.StartLine,
				StartColumn: rec.StartColumn,
				EndLine:     rec.EndLine,
				EndColumn:   rec.EndColumn,
				ByteOffset:  rec.SpanStart,
				ByteLength:  rec.SpanEnd - rec.SpanStart,
			},
		}}},
	}
	if rec.FadeOut {
		res.Properties = &SARIFProperties{Tags: []string{unnecessaryTag}}
		if res.Message.Text == "" {
			res.Message.Text = "Unnecessary code"
		}
	}
	return res
}

func notification(level, message, uri string) SARIFNotification {
	return SARIFNotification{
		Level:   level,
		Message: SARIFText{Text: message},
		Locations: []SARIFLocation{{PhysicalLocation: SARIFPhysicalLocation{
			ArtifactLocation: SARIFArtifactLocation{URI: uri},
		}}},
	}
}

// sarifLevel maps a severity to a SARIF result level. Hidden becomes "none".
func sarifLevel(severity config.Severity) string {
	switch severity {
	case config.SeverityError:
		return "error"
	case config.SeverityInfo:
		return "note"
	case config.SeverityHidden:
		return "none"
	default:
		return "warning"
	}
}
