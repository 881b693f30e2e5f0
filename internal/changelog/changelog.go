// Package changelog renders release notes from merged pull requests, falling
// back to raw commit messages when no PR qualifies.
package changelog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/grokify/releaseconductor/internal/collector"
	"github.com/grokify/releaseconductor/internal/tags"
	"github.com/grokify/releaseconductor/pkg/model"
)

// Changelog is a rendered changelog plus the strategy that produced it.
type Changelog struct {
	Source model.ChangelogSource
	Body   string
}

// Build renders the changelog for the given sorted tag list.
//
// With two or more dated tags the second-most-recent tag is the lower bound:
// merged PRs strictly after its commit date are rendered, and when none
// qualify the commit range between the two newest tags is rendered instead.
// With exactly one dated tag all commits reachable from it are rendered.
func Build(ctx context.Context, coll collector.Collector, repo model.RepoRef, sorted tags.Sorted) (*Changelog, error) {
	latest := sorted.Latest()
	if latest == nil {
		return nil, tags.ErrInsufficientTags
	}

	prev := sorted.Previous()
	if prev == nil {
		return buildFromSingleTag(ctx, coll, repo, *latest)
	}

	// Annotated tags expose the commit SHA one dereference deeper than
	// lightweight tags, so resolve before comparing dates.
	prevRes, err := coll.ResolveTagCommit(ctx, repo, *prev)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tag %s: %w", prev.Name, err)
	}

	since := *prev.Date
	if prevRes.SHA != prev.SHA {
		since, err = coll.GetCommitDate(ctx, repo, prevRes.SHA)
		if err != nil {
			return nil, fmt.Errorf("failed to date tag %s commit: %w", prev.Name, err)
		}
	}

	prs, err := coll.ListClosedPullRequests(ctx, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to list pull requests: %w", err)
	}

	var merged []model.PullRequest
	for _, pr := range prs {
		if pr.MergedAfter(since) {
			merged = append(merged, pr)
		}
	}

	if len(merged) > 0 {
		sort.SliceStable(merged, func(i, j int) bool {
			return merged[i].MergedAt.After(*merged[j].MergedAt)
		})
		return &Changelog{
			Source: model.SourcePullRequests,
			Body:   renderPRs(merged),
		}, nil
	}

	latestRes, err := coll.ResolveTagCommit(ctx, repo, *latest)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tag %s: %w", latest.Name, err)
	}

	commits, err := coll.CompareCommits(ctx, repo, prevRes.SHA, latestRes.SHA)
	if err != nil {
		return nil, fmt.Errorf("failed to compare tags %s and %s: %w", prev.Name, latest.Name, err)
	}

	return &Changelog{
		Source: model.SourceCommitRange,
		Body:   renderCommits(commits),
	}, nil
}

// buildFromSingleTag lists every commit reachable from the only dated tag.
func buildFromSingleTag(ctx context.Context, coll collector.Collector, repo model.RepoRef, t model.Tag) (*Changelog, error) {
	res, err := coll.ResolveTagCommit(ctx, repo, t)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tag %s: %w", t.Name, err)
	}

	commits, err := coll.ListCommits(ctx, repo, res.SHA)
	if err != nil {
		return nil, fmt.Errorf("failed to list commits for tag %s: %w", t.Name, err)
	}

	return &Changelog{
		Source: model.SourceSingleTag,
		Body:   renderCommits(commits),
	}, nil
}

// renderPRs renders one line per merged PR, newest first.
func renderPRs(prs []model.PullRequest) string {
	lines := make([]string, 0, len(prs))
	for _, pr := range prs {
		lines = append(lines, fmt.Sprintf("- %s by @%s in [#%d](%s)",
			pr.Title, pr.Author, pr.Number, pr.HTMLURL))
	}
	return strings.Join(lines, "\n")
}

// renderCommits renders one line per commit, newest first.
func renderCommits(commits []model.Commit) string {
	sorted := make([]model.Commit, len(commits))
	copy(sorted, commits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	lines := make([]string, 0, len(sorted))
	for _, c := range sorted {
		lines = append(lines, fmt.Sprintf("- %s (%s)", firstLine(c.Message), shortSHA(c.SHA)))
	}
	return strings.Join(lines, "\n")
}

// firstLine returns the subject line of a commit message.
func firstLine(message string) string {
	if idx := strings.IndexByte(message, '\n'); idx >= 0 {
		return strings.TrimRight(message[:idx], "\r")
	}
	return message
}

// shortSHA returns the 7-character abbreviated SHA.
func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
