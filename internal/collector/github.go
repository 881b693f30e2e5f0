package collector

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v84/github"
	"github.com/grokify/gogithub/tag"
	"github.com/grokify/mogo/net/http/retryhttp"

	"github.com/grokify/releaseconductor/pkg/model"
)

// maxPRPages caps closed-PR pagination; at 100 PRs per page this covers far
// more history than a release window ever spans.
const maxPRPages = 10

// GitHubCollector implements Collector for GitHub.
type GitHubCollector struct {
	client *github.Client
}

// Config configures the GitHub collector's HTTP behavior.
type Config struct {
	// Token is the GitHub personal access token.
	Token string

	// MaxRetries is the maximum number of retry attempts for API calls.
	// Default is 3.
	MaxRetries int

	// InitialBackoff is the initial backoff duration for retries.
	// Default is 1 second.
	InitialBackoff time.Duration
}

// NewGitHubCollector creates a new GitHub collector.
func NewGitHubCollector(token string) *GitHubCollector {
	return NewGitHubCollectorWithConfig(Config{Token: token})
}

// NewGitHubCollectorWithConfig creates a new GitHub collector with configuration.
func NewGitHubCollectorWithConfig(cfg Config) *GitHubCollector {
	retryOpts := []retryhttp.Option{}

	if cfg.MaxRetries > 0 {
		retryOpts = append(retryOpts, retryhttp.WithMaxRetries(cfg.MaxRetries))
	}
	if cfg.InitialBackoff > 0 {
		retryOpts = append(retryOpts, retryhttp.WithInitialBackoff(cfg.InitialBackoff))
	}

	// Retry transport handles 429 rate limits automatically
	rt := retryhttp.NewWithOptions(retryOpts...)
	httpClient := &http.Client{Transport: rt}

	client := github.NewClient(httpClient)
	if cfg.Token != "" {
		client = client.WithAuthToken(cfg.Token)
	}

	return &GitHubCollector{client: client}
}

// ListTags returns all tags for a repository.
func (c *GitHubCollector) ListTags(ctx context.Context, repo model.RepoRef) ([]model.Tag, error) {
	ghTags, err := tag.ListTags(ctx, c.client, repo.Owner, repo.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	var tags []model.Tag
	for _, t := range ghTags {
		tags = append(tags, model.Tag{
			Name: t.GetName(),
			SHA:  t.GetCommit().GetSHA(),
			Repo: repo,
		})
	}

	return tags, nil
}

// GetCommitDate returns the committer date for a commit SHA.
func (c *GitHubCollector) GetCommitDate(ctx context.Context, repo model.RepoRef, sha string) (time.Time, error) {
	commit, _, err := c.client.Git.GetCommit(ctx, repo.Owner, repo.Name, sha)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get commit %s: %w", sha, err)
	}

	return commit.GetCommitter().GetDate().Time, nil
}

// ResolveTagCommit resolves a tag to its underlying commit. Annotated tags
// expose the commit one level deeper than lightweight tags, so the tag
// object lookup is tried first and a failure means the SHA already points
// at a commit.
func (c *GitHubCollector) ResolveTagCommit(ctx context.Context, repo model.RepoRef, t model.Tag) (model.TagResolution, error) {
	tagObj, _, err := c.client.Git.GetTag(ctx, repo.Owner, repo.Name, t.SHA)
	if err == nil && tagObj.GetObject().GetSHA() != "" {
		return model.TagResolution{
			Kind: model.TagAnnotated,
			SHA:  tagObj.GetObject().GetSHA(),
		}, nil
	}

	return model.TagResolution{
		Kind: model.TagLightweight,
		SHA:  t.SHA,
	}, nil
}

// ListClosedPullRequests returns closed PRs, most recently updated first.
func (c *GitHubCollector) ListClosedPullRequests(ctx context.Context, repo model.RepoRef) ([]model.PullRequest, error) {
	var prs []model.PullRequest

	opts := &github.PullRequestListOptions{
		State:     "closed",
		Sort:      "updated",
		Direction: "desc",
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	}

	for page := 0; page < maxPRPages; page++ {
		ghPRs, resp, err := c.client.PullRequests.List(ctx, repo.Owner, repo.Name, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list pull requests: %w", err)
		}

		for _, ghPR := range ghPRs {
			prs = append(prs, convertPR(ghPR, repo))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return prs, nil
}

// CompareCommits returns the commits between base (exclusive) and head (inclusive).
func (c *GitHubCollector) CompareCommits(ctx context.Context, repo model.RepoRef, base, head string) ([]model.Commit, error) {
	opts := &github.ListOptions{PerPage: 100}

	var commits []model.Commit
	for {
		cmp, resp, err := c.client.Repositories.CompareCommits(ctx, repo.Owner, repo.Name, base, head, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to compare %s...%s: %w", base, head, err)
		}

		for _, rc := range cmp.Commits {
			commits = append(commits, convertCommit(rc))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return commits, nil
}

// ListCommits returns all commits reachable from the given SHA.
func (c *GitHubCollector) ListCommits(ctx context.Context, repo model.RepoRef, sha string) ([]model.Commit, error) {
	opts := &github.CommitsListOptions{
		SHA: sha,
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	}

	var commits []model.Commit
	for {
		ghCommits, resp, err := c.client.Repositories.ListCommits(ctx, repo.Owner, repo.Name, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list commits from %s: %w", sha, err)
		}

		for _, rc := range ghCommits {
			commits = append(commits, convertCommit(rc))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return commits, nil
}

// convertPR converts a GitHub pull request to our model.
func convertPR(ghPR *github.PullRequest, repo model.RepoRef) model.PullRequest {
	pr := model.PullRequest{
		Number:  ghPR.GetNumber(),
		Title:   ghPR.GetTitle(),
		State:   ghPR.GetState(),
		Author:  ghPR.GetUser().GetLogin(),
		HTMLURL: ghPR.GetHTMLURL(),
		Repo:    repo,
	}

	if ghPR.MergedAt != nil {
		t := ghPR.GetMergedAt().Time
		pr.MergedAt = &t
	}

	return pr
}

// convertCommit converts a GitHub repository commit to our model.
func convertCommit(rc *github.RepositoryCommit) model.Commit {
	return model.Commit{
		SHA:     rc.GetSHA(),
		Message: rc.GetCommit().GetMessage(),
		Date:    rc.GetCommit().GetCommitter().GetDate().Time,
	}
}
