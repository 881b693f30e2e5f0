package publisher

import (
	"context"

	"github.com/grokify/releaseconductor/pkg/model"
)

// Publisher defines the write-side interface against the hosting API.
type Publisher interface {
	// CreateTagRef creates a lightweight tag ref pointing at a commit SHA.
	CreateTagRef(ctx context.Context, repo model.RepoRef, tagName, sha string) error

	// CreateRelease creates a new release for a repository.
	CreateRelease(ctx context.Context, req *model.ReleaseRequest) (*model.Release, error)

	// UploadReleaseAsset uploads a local file as a named release asset.
	UploadReleaseAsset(ctx context.Context, repo model.RepoRef, releaseID int64, path, name string) error
}

// NewGitHub creates a new GitHub publisher with the given token.
func NewGitHub(token string) Publisher {
	return NewGitHubPublisher(token)
}
