package publisher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/go-github/v84/github"
	"github.com/grokify/gogithub/auth"
	"github.com/grokify/gogithub/release"

	"github.com/grokify/releaseconductor/pkg/model"
)

// GitHubPublisher implements Publisher for GitHub.
type GitHubPublisher struct {
	client *github.Client
}

// NewGitHubPublisher creates a new GitHub publisher.
func NewGitHubPublisher(token string) *GitHubPublisher {
	ctx := context.Background()
	client := auth.NewGitHubClient(ctx, token)
	return &GitHubPublisher{
		client: client,
	}
}

// CreateTagRef creates a lightweight tag ref pointing at a commit SHA.
func (p *GitHubPublisher) CreateTagRef(ctx context.Context, repo model.RepoRef, tagName, sha string) error {
	ref := github.CreateRef{
		Ref: "refs/tags/" + tagName,
		SHA: sha,
	}

	if _, _, err := p.client.Git.CreateRef(ctx, repo.Owner, repo.Name, ref); err != nil {
		return fmt.Errorf("failed to create tag ref %s: %w", tagName, err)
	}

	return nil
}

// CreateRelease creates a new release for a repository.
func (p *GitHubPublisher) CreateRelease(ctx context.Context, req *model.ReleaseRequest) (*model.Release, error) {
	ghRelease := &github.RepositoryRelease{
		TagName:    github.Ptr(req.TagName),
		Name:       github.Ptr(req.Name),
		Body:       github.Ptr(req.Body),
		Draft:      github.Ptr(req.Draft),
		Prerelease: github.Ptr(req.Prerelease),
	}

	created, err := release.CreateRelease(ctx, p.client, req.Repo.Owner, req.Repo.Name, ghRelease)
	if err != nil {
		return nil, fmt.Errorf("failed to create release: %w", err)
	}

	return &model.Release{
		ID:          created.GetID(),
		TagName:     created.GetTagName(),
		Name:        created.GetName(),
		Body:        created.GetBody(),
		Draft:       created.GetDraft(),
		Prerelease:  created.GetPrerelease(),
		CreatedAt:   created.GetCreatedAt().Time,
		PublishedAt: created.GetPublishedAt().Time,
		HTMLURL:     created.GetHTMLURL(),
		Repo:        req.Repo,
	}, nil
}

// UploadReleaseAsset uploads a local file as a named release asset.
func (p *GitHubPublisher) UploadReleaseAsset(ctx context.Context, repo model.RepoRef, releaseID int64, path, name string) error {
	if name == "" {
		name = filepath.Base(path)
	}

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to open asset %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	opts := &github.UploadOptions{Name: name}
	if _, _, err := p.client.Repositories.UploadReleaseAsset(ctx, repo.Owner, repo.Name, releaseID, opts, f); err != nil {
		return fmt.Errorf("failed to upload asset %s: %w", name, err)
	}

	return nil
}
