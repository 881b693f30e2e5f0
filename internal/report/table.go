package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/grokify/releaseconductor/pkg/model"
)

// TableFormatter formats results as text tables.
type TableFormatter struct{}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{}
}

// FormatPublishResult formats a publish result as a text table.
func (f *TableFormatter) FormatPublishResult(result *model.PublishResult) (string, error) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Release %s for %s (%s)\n",
		result.Version, result.Repo.FullName(), result.Timestamp.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Tag: %s | Changelog: %s\n", result.TagAction, result.ChangelogSource))

	if result.Release != nil && result.Release.HTMLURL != "" {
		sb.WriteString(fmt.Sprintf("URL: %s\n", result.Release.HTMLURL))
	}
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if result.Changelog == "" {
		sb.WriteString("No changelog entries.\n")
	} else {
		sb.WriteString(result.Changelog + "\n")
	}

	if len(result.Assets) > 0 {
		sb.WriteString(fmt.Sprintf("\nAssets: %d attached, %d skipped, %d failed\n",
			result.AttachedCount, result.SkippedCount, result.FailedCount))
		for _, a := range result.Assets {
			switch a.Status {
			case model.AssetAttached:
				sb.WriteString(fmt.Sprintf("  ✅ %s\n", a.Name))
			case model.AssetSkipped:
				sb.WriteString(fmt.Sprintf("  ⏭️  %s (%s)\n", a.Path, a.Reason))
			case model.AssetFailed:
				sb.WriteString(fmt.Sprintf("  ❌ %s (%s)\n", a.Name, truncate(a.Reason, 60)))
			}
		}
	}

	if len(result.SkippedTags) > 0 {
		sb.WriteString("\nSkipped tags:\n")
		for _, s := range result.SkippedTags {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", s.Name, truncate(s.Reason, 60)))
		}
	}

	if result.Notified {
		sb.WriteString(fmt.Sprintf("\nNotified %s webhook.\n", result.NotifyTarget))
	}

	return sb.String(), nil
}

// FormatChangelogResult formats a changelog-only result as text.
func (f *TableFormatter) FormatChangelogResult(result *model.ChangelogResult) (string, error) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Changelog for %s (%s, %s)\n",
		result.Repo.FullName(), result.Source, result.Timestamp.Format(time.RFC3339)))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if result.Changelog == "" {
		sb.WriteString("No changelog entries.\n")
	} else {
		sb.WriteString(result.Changelog + "\n")
	}

	if len(result.SkippedTags) > 0 {
		sb.WriteString("\nSkipped tags:\n")
		for _, s := range result.SkippedTags {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", s.Name, truncate(s.Reason, 60)))
		}
	}

	return sb.String(), nil
}

// truncate shortens a string to maxLen characters with an ellipsis.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
