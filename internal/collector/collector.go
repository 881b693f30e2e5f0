package collector

import (
	"context"
	"time"

	"github.com/grokify/releaseconductor/pkg/model"
)

// Collector defines the read-side interface against the hosting API.
type Collector interface {
	// ListTags returns all tags for a repository. Dates are not resolved.
	ListTags(ctx context.Context, repo model.RepoRef) ([]model.Tag, error)

	// GetCommitDate returns the committer date for a commit SHA.
	GetCommitDate(ctx context.Context, repo model.RepoRef, sha string) (time.Time, error)

	// ResolveTagCommit resolves a tag to its underlying commit, trying
	// annotated-tag dereference first and falling back to treating the
	// tag's SHA as a direct commit pointer.
	ResolveTagCommit(ctx context.Context, repo model.RepoRef, t model.Tag) (model.TagResolution, error)

	// ListClosedPullRequests returns closed PRs, most recently updated first.
	ListClosedPullRequests(ctx context.Context, repo model.RepoRef) ([]model.PullRequest, error)

	// CompareCommits returns the commits between base (exclusive) and
	// head (inclusive).
	CompareCommits(ctx context.Context, repo model.RepoRef, base, head string) ([]model.Commit, error)

	// ListCommits returns all commits reachable from the given SHA.
	ListCommits(ctx context.Context, repo model.RepoRef, sha string) ([]model.Commit, error)
}

// NewGitHub creates a new GitHub collector with the given token.
func NewGitHub(token string) Collector {
	return NewGitHubCollector(token)
}
