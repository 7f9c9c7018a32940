package rules

import (
	"github.com/yaklabco/sharplint/pkg/config"
	"github.com/yaklabco/sharplint/pkg/lint"
)

// Built-in descriptors. Fade-out descriptors are derived with FadeOut.
//
//nolint:gochecknoglobals // Descriptors are immutable and shared by pointer.
var (
	ConditionAlwaysTrue = &lint.Descriptor{
		ID:            "SL1001",
		Name:          "condition-always-true",
		Title:         "Condition is always true",
		MessageFormat: "Condition of '%s' statement is always 'true'",
		Description: "A literal `true` condition makes the branch unconditional. " +
			"Remove the condition or replace the statement with its body.",
		Category:         lint.CategoryCorrectness,
		DefaultSeverity:  config.SeverityWarning,
		EnabledByDefault: true,
		Tags:             []string{"conditions"},
	}

	RemoveBraces = &lint.Descriptor{
		ID:            "SL1002",
		Name:          "remove-braces",
		Title:         "Remove braces",
		MessageFormat: "Remove braces from '%s'",
		Description: "A block around a single-line embedded statement can be removed. " +
			"Blocks containing comments or preprocessor directives are left alone.",
		Category:         lint.CategoryStyle,
		DefaultSeverity:  config.SeverityInfo,
		EnabledByDefault: false,
		Tags:             []string{"braces"},
	}

	RemoveRedundantParentheses = &lint.Descriptor{
		ID:               "SL1003",
		Name:             "remove-redundant-parentheses",
		Title:            "Remove redundant parentheses",
		MessageFormat:    "Remove redundant parentheses",
		Description:      "Parentheses that do not change how an expression is evaluated can be removed.",
		Category:         lint.CategoryRedundancy,
		DefaultSeverity:  config.SeverityInfo,
		EnabledByDefault: true,
		Tags:             []string{"parentheses"},
	}

	SimplifyBooleanComparison = &lint.Descriptor{
		ID:            "SL1004",
		Name:          "simplify-boolean-comparison",
		Title:         "Simplify boolean comparison",
		MessageFormat: "Simplify comparison with '%s'",
		Description: "Comparing a `bool` with a `true` or `false` literal is redundant: " +
			"`x == true` is `x` and `x == false` is `!x`.",
		Category:         lint.CategorySimplification,
		DefaultSeverity:  config.SeverityInfo,
		EnabledByDefault: true,
		Tags:             []string{"boolean"},
	}

	RemoveEmptyStatement = &lint.Descriptor{
		ID:               "SL1005",
		Name:             "remove-empty-statement",
		Title:            "Remove empty statement",
		MessageFormat:    "Remove empty statement",
		Description:      "A lone `;` does nothing. Embedded empty statements such as `while (x) ;` are not reported.",
		Category:         lint.CategoryRedundancy,
		DefaultSeverity:  config.SeverityInfo,
		EnabledByDefault: true,
		Tags:             []string{"statements"},
	}

	RemoveEmptyElseClause = &lint.Descriptor{
		ID:               "SL1006",
		Name:             "remove-empty-else-clause",
		Title:            "Remove empty else clause",
		MessageFormat:    "Remove empty 'else' clause",
		Description:      "An `else` followed by an empty block can be removed unless the block holds comments or directives.",
		Category:         lint.CategoryRedundancy,
		DefaultSeverity:  config.SeverityInfo,
		EnabledByDefault: true,
		Tags:             []string{"statements"},
	}

	RemoveEmptyRegion = &lint.Descriptor{
		ID:               "SL1007",
		Name:             "remove-empty-region",
		Title:            "Remove empty region",
		MessageFormat:    "Remove empty region '%s'",
		Description:      "A `#region` with nothing but whitespace before its `#endregion` can be removed.",
		Category:         lint.CategoryRedundancy,
		DefaultSeverity:  config.SeverityInfo,
		EnabledByDefault: true,
		Tags:             []string{"directives"},
	}

	EmbeddedStatementOnSeparateLine = &lint.Descriptor{
		ID:            "SL1008",
		Name:          "embedded-statement-on-separate-line",
		Title:         "Put embedded statement on its own line",
		MessageFormat: "Put the embedded statement of '%s' on its own line",
		Description: "An embedded statement that shares a line with its `if`, `else` or `while` " +
			"header is easy to misread as unconditional.",
		Category:         lint.CategoryStyle,
		DefaultSeverity:  config.SeverityWarning,
		EnabledByDefault: true,
		Tags:             []string{"formatting"},
	}
)
