package report

import "github.com/grokify/releaseconductor/pkg/model"

// Formatter defines the interface for formatting results.
type Formatter interface {
	// FormatPublishResult formats a publish result.
	FormatPublishResult(result *model.PublishResult) (string, error)

	// FormatChangelogResult formats a changelog-only result.
	FormatChangelogResult(result *model.ChangelogResult) (string, error)
}

// New returns the formatter for a format name, defaulting to the text table.
func New(format string) Formatter {
	switch format {
	case "json":
		return NewJSONFormatter()
	case "markdown", "md":
		return NewMarkdownFormatter()
	default:
		return NewTableFormatter()
	}
}
