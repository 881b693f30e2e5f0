package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/grokify/releaseconductor/internal/collector"
	"github.com/grokify/releaseconductor/internal/orchestrator"
	"github.com/grokify/releaseconductor/internal/publisher"
	"github.com/grokify/releaseconductor/internal/report"
	"github.com/grokify/releaseconductor/pkg/model"
)

var changelogCmd = &cobra.Command{
	Use:   "changelog",
	Short: "Render the changelog without creating a tag or release",
	Long: `Render the changelog that a publish run would use, without creating a
tag, release or notification.

Examples:
  releaseconductor changelog --repo grokify/mogo
  releaseconductor changelog --format markdown`,
	RunE: runChangelog,
}

func init() {
	rootCmd.AddCommand(changelogCmd)
}

func runChangelog(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	token := viper.GetString("token")
	if token == "" {
		return fmt.Errorf("GitHub token required. Set GITHUB_TOKEN or use --token flag")
	}

	repoName := viper.GetString("repo")
	if repoName == "" {
		return fmt.Errorf("repository required. Set GITHUB_REPOSITORY or use --repo flag")
	}
	repo := model.ParseRepoRef(repoName)
	if repo.Owner == "" {
		return fmt.Errorf("invalid repository %q, expected owner/repo", repoName)
	}

	o := &orchestrator.Orchestrator{
		Collector: collector.NewGitHub(token),
		Publisher: publisher.NewGitHub(token),
	}

	result, err := o.Changelog(ctx, repo)
	if err != nil {
		return err
	}

	output, err := report.New(viper.GetString("format")).FormatChangelogResult(result)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	fmt.Print(output)

	return nil
}
