package configloader

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/yaklabco/sharplint/pkg/config"
	"github.com/yaklabco/sharplint/pkg/lint"
	"github.com/yaklabco/sharplint/pkg/pathglob"
)

// ValidationError describes one problem with a configuration value.
type ValidationError struct {
	// Field is the dotted key path, such as "rules.SL1001.severity".
	Field    string
	Value    any
	Message  string
	FilePath string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	for _, prefix := range []string{e.FilePath, e.Field} {
		if prefix != "" {
			b.WriteString(prefix)
			b.WriteString(": ")
		}
	}
	b.WriteString(e.Message)
	return b.String()
}

// ValidationResult collects the findings of Validate. Errors stop loading;
// warnings (unknown rules) are reported and ignored.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

func (r *ValidationResult) Valid() bool       { return len(r.Errors) == 0 }
func (r *ValidationResult) HasWarnings() bool { return len(r.Warnings) > 0 }

// AllMessages returns every finding, errors first, prefixed with its level.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func choices[T ~string](values []T) string {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = string(v)
	}
	return strings.Join(names, ", ")
}

var severityChoices = choices([]config.Severity{
	config.SeverityError, config.SeverityWarning, config.SeverityInfo, config.SeverityHidden,
})

// Validate checks cfg. Rule keys are looked up in registry; with a nil
// registry unknown rules are not reported.
func Validate(cfg *config.Config, registry *lint.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if sev := config.Severity(cfg.SeverityDefault); sev != "" && !sev.IsValid() {
		result.fail("severity_default", cfg.SeverityDefault,
			"invalid severity %q; must be one of: %s", sev, severityChoices)
	}
	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.fail("format", cfg.Format,
			"invalid format %q; must be one of: %s", cfg.Format, choices(config.OutputFormats()))
	}
	if cfg.RuleFormat != "" && !cfg.RuleFormat.IsValid() {
		result.fail("rule_format", cfg.RuleFormat,
			"invalid rule format %q; must be one of: %s", cfg.RuleFormat, choices(config.RuleFormats()))
	}
	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	for _, key := range slices.Sorted(maps.Keys(cfg.Rules)) {
		rule := cfg.Rules[key]
		field := "rules." + key
		if registry != nil {
			if _, ok := registry.Get(key); !ok {
				result.warn(field, key, "unknown rule %q; it will be ignored", key)
			}
		}
		if rule.Severity != nil && !config.Severity(*rule.Severity).IsValid() {
			result.fail(field+".severity", *rule.Severity,
				"invalid severity %q; must be one of: %s", *rule.Severity, severityChoices)
		}
	}

	for _, group := range []struct {
		field    string
		patterns []string
	}{
		{"include", cfg.Include},
		{"ignore", cfg.Ignore},
		{"generated_code.patterns", cfg.GeneratedCode.Patterns},
	} {
		for i, pattern := range group.patterns {
			if _, err := pathglob.Compile(pattern); err != nil {
				result.fail(fmt.Sprintf("%s[%d]", group.field, i), pattern, "invalid glob pattern: %v", err)
			}
		}
	}

	return result
}

// ValidateWithFile is Validate with every finding attributed to filePath.
func ValidateWithFile(cfg *config.Config, registry *lint.Registry, filePath string) *ValidationResult {
	result := Validate(cfg, registry)
	for _, list := range [][]ValidationError{result.Errors, result.Warnings} {
		for i := range list {
			list[i].FilePath = filePath
		}
	}
	return result
}
