package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/sharplint/internal/logging"
	"github.com/yaklabco/sharplint/pkg/config"
	"github.com/yaklabco/sharplint/pkg/lint"
	"github.com/yaklabco/sharplint/pkg/ruledoc"
)

type rulesFlags struct {
	ruleFormat string
	format     string
	docsDir    string
}

const (
	formatText     = "text"
	formatJSON     = "json"
	formatMarkdown = "markdown"
	formatHTML     = "html"
)

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category"`
	Severity    string   `json:"severity"`
	Enabled     bool     `json:"enabled"`
	HelpURI     string   `json:"helpUri,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules [rule...]",
		Short: "List available analyzer rules",
		Long: `List all available rules with their IDs, default severity and whether
they are enabled by default. Rules can be selected by ID or name.

With --docs-dir, one documentation page per rule plus an index are written
to the directory in Markdown or HTML.

Examples:
  sharplint rules
  sharplint rules --format json
  sharplint rules remove-braces --format markdown
  sharplint rules --docs-dir docs/rules --format html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRules(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", formatText,
		"output format: text, json, markdown, html")
	cmd.Flags().StringVar(&flags.docsDir, "docs-dir", "",
		"write documentation pages to this directory")

	return cmd
}

func runRules(cmd *cobra.Command, args []string, flags *rulesFlags) error {
	descs, err := selectDescriptors(lint.DefaultRegistry, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if flags.docsDir != "" {
		return writeDocs(cmd, descs, flags)
	}

	switch flags.format {
	case formatText:
		return outputRulesText(out, descs, config.RuleFormat(flags.ruleFormat))
	case formatJSON:
		return outputRulesJSON(out, descs)
	case formatMarkdown, formatHTML:
		return outputRulesDocs(out, descs, ruledoc.Format(flags.format))
	default:
		return fmt.Errorf("%w: unknown rules format %q; valid formats: text, json, markdown, html",
			ErrUsage, flags.format)
	}
}

// selectDescriptors returns the primary descriptors named by keys, or all of
// them when keys is empty.
func selectDescriptors(registry *lint.Registry, keys []string) ([]*lint.Descriptor, error) {
	if len(keys) == 0 {
		return registry.Descriptors(), nil
	}

	descs := make([]*lint.Descriptor, 0, len(keys))
	for _, key := range keys {
		desc, ok := registry.Get(key)
		if !ok || desc.IsFadeOut() {
			return nil, fmt.Errorf("%w: unknown rule %q", ErrUsage, key)
		}
		descs = append(descs, desc)
	}
	return descs, nil
}

func outputRulesText(out io.Writer, descs []*lint.Descriptor, ruleFormat config.RuleFormat) error {
	logger := logging.NewWithWriter(out, "info")

	if len(descs) == 0 {
		logger.Info("no rules registered")
		return nil
	}

	for _, desc := range descs {
		logger.Info(config.FormatRuleID(ruleFormat, desc.ID, desc.Name),
			logging.FieldSeverity, desc.DefaultSeverity,
			logging.FieldEnabled, desc.EnabledByDefault,
			logging.FieldTitle, desc.Title,
		)
	}
	return nil
}

// outputRulesJSON outputs rules as a JSON array.
func outputRulesJSON(out io.Writer, descs []*lint.Descriptor) error {
	infos := make([]ruleInfo, 0, len(descs))
	for _, desc := range descs {
		infos = append(infos, ruleInfo{
			ID:          desc.ID,
			Name:        desc.Name,
			Title:       desc.Title,
			Description: desc.Description,
			Category:    desc.Category,
			Severity:    string(desc.DefaultSeverity),
			Enabled:     desc.EnabledByDefault,
			HelpURI:     desc.HelpURI,
			Tags:        desc.Tags,
		})
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}

func outputRulesDocs(out io.Writer, descs []*lint.Descriptor, format ruledoc.Format) error {
	renderer := ruledoc.NewRenderer()
	for i, desc := range descs {
		page, err := renderer.Render(desc, format)
		if err != nil {
			return err
		}
		if i > 0 && format == ruledoc.FormatMarkdown {
			if _, err := io.WriteString(out, "\n"); err != nil {
				return fmt.Errorf("write docs: %w", err)
			}
		}
		if _, err := out.Write(page); err != nil {
			return fmt.Errorf("write docs: %w", err)
		}
	}
	return nil
}

func writeDocs(cmd *cobra.Command, descs []*lint.Descriptor, flags *rulesFlags) error {
	format := flags.format
	if format == formatText {
		format = formatMarkdown
	}
	docFormat, err := ruledoc.ParseFormat(format)
	if err != nil {
		return errors.Join(ErrUsage, err)
	}

	ctx := commandContext(cmd)
	written, err := ruledoc.NewRenderer().WriteAll(ctx, flags.docsDir, descs, docFormat)
	if err != nil {
		return fmt.Errorf("write docs: %w", err)
	}

	logging.FromContext(ctx).Info("documentation updated",
		logging.FieldOutput, flags.docsDir,
		logging.FieldCount, written,
	)
	return nil
}
