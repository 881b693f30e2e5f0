package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/grokify/releaseconductor/internal/attach"
	"github.com/grokify/releaseconductor/internal/collector"
	"github.com/grokify/releaseconductor/internal/notify"
	"github.com/grokify/releaseconductor/internal/orchestrator"
	"github.com/grokify/releaseconductor/internal/publisher"
	"github.com/grokify/releaseconductor/internal/report"
	"github.com/grokify/releaseconductor/pkg/model"
)

// aquasecPath is the fixed report path attached by the --with-aquasec toggle.
const aquasecPath = "./aquasec.txt"

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Create the version tag, changelog, release and notification",
	Long: `Publish a release for the given version.

Creates refs/tags/<version> at the current commit if the tag does not exist,
builds a changelog from merged PRs since the previous tag (falling back to
raw commit messages), creates a non-draft release, uploads the requested
assets, and posts a webhook notification when a webhook URL is configured.

Examples:
  # Publish v1.4.0, attaching two build artifacts
  releaseconductor publish --version v1.4.0 --name myproject \
    --files "dist/myproject-linux-amd64,dist/myproject-darwin-arm64"

  # Publish with a Slack notification
  releaseconductor publish --version v1.4.0 --name myproject \
    --webhook https://hooks.slack.com/services/T000/B000/XXXX

  # Teams card instead of Slack text
  releaseconductor publish --version v1.4.0 --name myproject \
    --webhook https://outlook.office.com/webhook/... --webhook-format teams`,
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)

	publishCmd.Flags().String("version", "", "Tag and release name (required)")
	publishCmd.Flags().String("name", "", "Project display name used in notifications (required)")
	publishCmd.Flags().String("sha", "", "Commit SHA for a newly created tag (default GITHUB_SHA)")
	publishCmd.Flags().String("webhook", "", "Chat webhook URL; empty disables notification")
	publishCmd.Flags().String("webhook-format", "slack", "Webhook payload format: slack, teams")
	publishCmd.Flags().String("files", "", "Comma or newline separated asset paths")
	publishCmd.Flags().String("files-manifest", "", "YAML asset manifest path")
	publishCmd.Flags().Bool("with-aquasec", false, "Attach "+aquasecPath+" as an asset")

	_ = viper.BindPFlag("publish.version", publishCmd.Flags().Lookup("version"))
	_ = viper.BindPFlag("publish.name", publishCmd.Flags().Lookup("name"))
	_ = viper.BindPFlag("publish.sha", publishCmd.Flags().Lookup("sha"))
	_ = viper.BindPFlag("publish.webhook", publishCmd.Flags().Lookup("webhook"))
	_ = viper.BindPFlag("publish.webhook-format", publishCmd.Flags().Lookup("webhook-format"))
	_ = viper.BindPFlag("publish.files", publishCmd.Flags().Lookup("files"))
	_ = viper.BindPFlag("publish.files-manifest", publishCmd.Flags().Lookup("files-manifest"))
	_ = viper.BindPFlag("publish.with-aquasec", publishCmd.Flags().Lookup("with-aquasec"))
}

func runPublish(cmd *cobra.Command, args []string) error {
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

	version := stringInput("publish.version", "INPUT_VERSION")
	if version == "" {
		return fmt.Errorf("version required. Use --version flag or the version action input")
	}

	name := stringInput("publish.name", "INPUT_NAME")
	if name == "" {
		return fmt.Errorf("name required. Use --name flag or the name action input")
	}

	sha := viper.GetString("publish.sha")
	if sha == "" {
		sha = os.Getenv("GITHUB_SHA")
	}

	assets, err := collectAssets()
	if err != nil {
		return err
	}

	var notifier notify.Notifier
	if webhook := stringInput("publish.webhook", "INPUT_TEAM_WEBHOOK"); webhook != "" {
		format := notify.Format(viper.GetString("publish.webhook-format"))
		notifier, err = notify.New(format, webhook)
		if err != nil {
			return err
		}
	}

	var verbose io.Writer
	if viper.GetBool("verbose") {
		verbose = os.Stderr
	}

	o := &orchestrator.Orchestrator{
		Collector: collector.NewGitHub(token),
		Publisher: publisher.NewGitHub(token),
		Notifier:  notifier,
		Verbose:   verbose,
	}

	result, err := o.Publish(ctx, orchestrator.Request{
		Repo:        repo,
		Version:     version,
		ProjectName: name,
		SHA:         sha,
		Assets:      assets,
	})
	if err != nil {
		return err
	}

	output, err := report.New(viper.GetString("format")).FormatPublishResult(result)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	fmt.Print(output)

	return nil
}

// collectAssets merges the inline file list, the YAML manifest and the
// aquasec toggle into one ordered entry list.
func collectAssets() ([]attach.Entry, error) {
	assets := attach.ParseFileList(stringInput("publish.files", "INPUT_FILES"))

	if manifestPath := viper.GetString("publish.files-manifest"); manifestPath != "" {
		manifest, err := attach.LoadManifest(manifestPath)
		if err != nil {
			return nil, err
		}
		assets = append(assets, manifest.Assets...)
	}

	if viper.GetBool("publish.with-aquasec") || os.Getenv("INPUT_WITH_AQUASEC") == "true" {
		assets = append(assets, attach.Entry{Path: aquasecPath})
	}

	return assets, nil
}

// stringInput reads a viper key with a GitHub Actions input env fallback.
func stringInput(key, envVar string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return os.Getenv(envVar)
}
