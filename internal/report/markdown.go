package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/grokify/releaseconductor/pkg/model"
)

// MarkdownFormatter formats results as Markdown.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new Markdown formatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// FormatPublishResult formats a publish result as Markdown.
func (f *MarkdownFormatter) FormatPublishResult(result *model.PublishResult) (string, error) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Release %s\n\n", result.Version))
	sb.WriteString(fmt.Sprintf("**Repository:** %s\n\n", result.Repo.FullName()))
	sb.WriteString(fmt.Sprintf("**Time:** %s\n\n", result.Timestamp.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("**Tag:** %s\n\n", result.TagAction))
	sb.WriteString(fmt.Sprintf("**Changelog source:** %s\n\n", result.ChangelogSource))

	if result.Release != nil && result.Release.HTMLURL != "" {
		sb.WriteString(fmt.Sprintf("**URL:** %s\n\n", result.Release.HTMLURL))
	}

	sb.WriteString("## Changelog\n\n")
	if result.Changelog == "" {
		sb.WriteString("_No changelog entries._\n")
	} else {
		sb.WriteString(result.Changelog + "\n")
	}

	if len(result.Assets) > 0 {
		sb.WriteString("\n## Assets\n\n")
		sb.WriteString("| Asset | Status | Detail |\n")
		sb.WriteString("|-------|--------|--------|\n")
		for _, a := range result.Assets {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", a.Name, a.Status, a.Reason))
		}
	}

	if len(result.SkippedTags) > 0 {
		sb.WriteString("\n## Skipped Tags\n\n")
		for _, s := range result.SkippedTags {
			sb.WriteString(fmt.Sprintf("- **%s:** %s\n", s.Name, s.Reason))
		}
	}

	if result.Notified {
		sb.WriteString(fmt.Sprintf("\nNotified **%s** webhook.\n", result.NotifyTarget))
	}

	return sb.String(), nil
}

// FormatChangelogResult formats a changelog-only result as Markdown.
func (f *MarkdownFormatter) FormatChangelogResult(result *model.ChangelogResult) (string, error) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Changelog for %s\n\n", result.Repo.FullName()))
	sb.WriteString(fmt.Sprintf("**Source:** %s\n\n", result.Source))

	if result.Changelog == "" {
		sb.WriteString("_No changelog entries._\n")
	} else {
		sb.WriteString(result.Changelog + "\n")
	}

	if len(result.SkippedTags) > 0 {
		sb.WriteString("\n## Skipped Tags\n\n")
		for _, s := range result.SkippedTags {
			sb.WriteString(fmt.Sprintf("- **%s:** %s\n", s.Name, s.Reason))
		}
	}

	return sb.String(), nil
}
