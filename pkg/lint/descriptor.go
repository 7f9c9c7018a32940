// Package lint provides the analysis engine for sharplint: the kind-keyed
// dispatcher, the diagnostic reporter, the generated-code filter and the
// analyzer registry.
package lint

import (
	"fmt"
	"slices"
	"sync"

	"github.com/yaklabco/sharplint/pkg/config"
)

// Descriptor categories.
const (
	CategoryStyle          = "style"
	CategorySimplification = "simplification"
	CategoryRedundancy     = "redundancy"
	CategoryCorrectness    = "correctness"
	CategoryInternal       = "internal"
)

// FadeOutSuffix is appended to a descriptor ID to form its fade-out descriptor ID.
const FadeOutSuffix = "FadeOut"

// TagUnnecessary marks diagnostics whose span should be dimmed by editors.
const TagUnnecessary = "unnecessary"

// Descriptor is the immutable template identifying one diagnostic a rule can report.
// Descriptors must be used by pointer.
type Descriptor struct {
	// ID is the unique identifier (e.g., "SL1002").
	ID string

	// Name is the human-readable kebab-case name (e.g., "remove-braces").
	Name string

	// Title is a short summary of the finding.
	Title string

	// MessageFormat is a fmt format string formatted with the report arguments.
	MessageFormat string

	// Description is a longer explanation used by documentation output.
	Description string

	// Category groups related descriptors.
	Category string

	// DefaultSeverity is the severity used when no configuration overrides it.
	DefaultSeverity config.Severity

	// EnabledByDefault controls whether the descriptor reports without explicit enablement.
	EnabledByDefault bool

	// HelpURI links to the rule documentation.
	HelpURI string

	// Tags are categorization tags (e.g., ["braces"]).
	Tags []string

	parent   *Descriptor
	fadeOnce sync.Once
	fadeOut  *Descriptor
}

// FadeOut returns the paired fade-out descriptor: ID "<id>FadeOut", hidden
// severity and the unnecessary tag. Repeated calls return the same pointer.
// Calling FadeOut on a fade-out descriptor returns the receiver.
func (d *Descriptor) FadeOut() *Descriptor {
	if d.parent != nil {
		return d
	}

	d.fadeOnce.Do(func() {
		tags := slices.Clone(d.Tags)
		if !slices.Contains(tags, TagUnnecessary) {
			tags = append(tags, TagUnnecessary)
		}

		d.fadeOut = &Descriptor{
			ID:               d.ID + FadeOutSuffix,
			Name:             d.Name + "-fade-out",
			Title:            d.Title,
			MessageFormat:    d.MessageFormat,
			Description:      d.Description,
			Category:         d.Category,
			DefaultSeverity:  config.SeverityHidden,
			EnabledByDefault: d.EnabledByDefault,
			HelpURI:          d.HelpURI,
			Tags:             tags,
			parent:           d,
		}
	})

	return d.fadeOut
}

// IsFadeOut reports whether d was derived by FadeOut.
func (d *Descriptor) IsFadeOut() bool {
	return d.parent != nil
}

// Primary returns the descriptor a fade-out descriptor was derived from,
// or d itself.
func (d *Descriptor) Primary() *Descriptor {
	if d.parent != nil {
		return d.parent
	}
	return d
}

// Format substitutes args into the message format.
func (d *Descriptor) Format(args ...any) string {
	if len(args) == 0 {
		return d.MessageFormat
	}
	return fmt.Sprintf(d.MessageFormat, args...)
}

// InternalErrorDescriptor reports analyzer faults when fault diagnostics are enabled.
//
//nolint:gochecknoglobals // Shared immutable descriptor.
var InternalErrorDescriptor = &Descriptor{
	ID:               "SL0000",
	Name:             "internal-error",
	Title:            "Analyzer fault",
	MessageFormat:    "Internal Error: analyzer %q faulted on %s: %v",
	Description:      "An analyzer panicked while inspecting a node. Other analyzers were not affected.",
	Category:         CategoryInternal,
	DefaultSeverity:  config.SeverityWarning,
	EnabledByDefault: true,
	Tags:             []string{"internal"},
}
