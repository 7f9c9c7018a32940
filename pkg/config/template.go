package config

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every rule with its default settings.
	// If false, generates a minimal template.
	Full bool

	// Format defaults to YAML.
	Format Codec

	// IncludeRules limits a full template to these rule IDs or names.
	// If empty, all rules are included.
	IncludeRules []string

	// Base supplies rule settings written verbatim, such as a rule pack.
	// Nil writes no explicit rule settings in a minimal template.
	Base *Config
}

// RuleInfo contains rule metadata for template generation.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
	Severity    Severity
	Tags        []string
}

// RuleInfoProvider is a function that returns rule information.
// This allows decoupling from the lint package to avoid circular imports.
type RuleInfoProvider func() []RuleInfo

// DefaultRuleInfoProvider is set by the rules package during init.
//
//nolint:gochecknoglobals // Intentional extension point for rule info.
var DefaultRuleInfoProvider RuleInfoProvider

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch opts.Format {
	case "":
		opts.Format = CodecYAML
	case CodecYAML, CodecTOML:
	default:
		return nil, fmt.Errorf("unknown template format %q; valid formats: yaml, toml", opts.Format)
	}

	var buf bytes.Buffer
	writeHeader(&buf, opts.Full)

	if opts.Full {
		writeRules(&buf, opts.Format, filterRules(getRuleInfos(), opts.IncludeRules))
		return buf.Bytes(), nil
	}

	if opts.Base != nil && len(opts.Base.Rules) > 0 {
		buf.WriteString("\n")
		if err := encodeRules(&buf, opts.Format, opts.Base.Rules); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// encodeRules writes only the rules section so that the loader defaults for
// every other setting stay in effect.
func encodeRules(buf *bytes.Buffer, format Codec, rules map[string]RuleConfig) error {
	section := struct {
		Rules map[string]RuleConfig `yaml:"rules" toml:"rules"`
	}{Rules: rules}

	data, err := format.Encode(section)
	if err != nil {
		return fmt.Errorf("encode rules: %w", err)
	}
	buf.Write(data)
	return nil
}

// writeHeader writes the commented settings shared by every template. The
// settings are valid in both YAML and TOML because they are commented out.
func writeHeader(buf *bytes.Buffer, full bool) {
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n")
	if full {
		buf.WriteString("#\n# Every rule is listed with its default settings. Edit as needed.\n")
	}
	buf.WriteString(`
# Default severity for rules without an explicit one: error, warning, info or hidden
# severity_default: warning

# Files to analyze (glob patterns, relative to the working directory)
# include: ["**/*.cs"]

# Files to skip (glob patterns)
# ignore: ["obj/**", "bin/**", "**/*.g.cs"]

# Walk files in parallel when every analyzer allows it
# concurrent: true

# Surface analyzer crashes as SL0000 diagnostics
# report_faults: false

# Generated code (*.g.cs, *.Designer.cs, <auto-generated> headers)
# generated_code:
#   analyze: false
#   patterns: ["**/Migrations/*.cs"]

# Diagnostics cache
# cache:
#   enabled: false
#   dir: ""
`)
}

func writeRules(buf *bytes.Buffer, format Codec, rules []RuleInfo) {
	if format == CodecYAML {
		buf.WriteString("\nrules:\n")
	}

	for _, rule := range rules {
		indent := "  "
		if format == CodecTOML {
			indent = ""
		}

		fmt.Fprintf(buf, "\n%s# %s: %s\n", indent, rule.ID, rule.Name)
		if rule.Description != "" {
			fmt.Fprintf(buf, "%s# %s\n", indent, wrapComment(rule.Description, commentWrapWidth, indent))
		}
		if len(rule.Tags) > 0 {
			fmt.Fprintf(buf, "%s# Tags: %s\n", indent, strings.Join(rule.Tags, ", "))
		}

		if format == CodecTOML {
			fmt.Fprintf(buf, "[rules.%s]\n", rule.Name)
			fmt.Fprintf(buf, "enabled = %t\n", rule.Enabled)
			fmt.Fprintf(buf, "severity = %q\n", rule.Severity)
			continue
		}
		fmt.Fprintf(buf, "  %s:\n", rule.Name)
		fmt.Fprintf(buf, "    enabled: %t\n", rule.Enabled)
		fmt.Fprintf(buf, "    severity: %s\n", rule.Severity)
	}
}

func filterRules(rules []RuleInfo, include []string) []RuleInfo {
	if len(include) > 0 {
		rules = slices.DeleteFunc(slices.Clone(rules), func(r RuleInfo) bool {
			return !slices.Contains(include, r.ID) && !slices.Contains(include, r.Name)
		})
	}
	slices.SortFunc(rules, func(a, b RuleInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return rules
}

// getRuleInfos returns information about all registered rules.
func getRuleInfos() []RuleInfo {
	if DefaultRuleInfoProvider != nil {
		return DefaultRuleInfoProvider()
	}
	return nil
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int, indent string) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n"+indent+"# ")
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# sharplint configuration
# See: https://github.com/yaklabco/sharplint`
}
