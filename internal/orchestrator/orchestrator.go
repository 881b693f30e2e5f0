// Package orchestrator runs the release pipeline: resolve tags, create the
// version tag if missing, build the changelog, create the release, attach
// assets, and notify.
package orchestrator

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/grokify/releaseconductor/internal/attach"
	"github.com/grokify/releaseconductor/internal/changelog"
	"github.com/grokify/releaseconductor/internal/collector"
	"github.com/grokify/releaseconductor/internal/notify"
	"github.com/grokify/releaseconductor/internal/publisher"
	"github.com/grokify/releaseconductor/internal/tags"
	"github.com/grokify/releaseconductor/pkg/model"
)

// Orchestrator wires the collaborators of a release run.
type Orchestrator struct {
	Collector collector.Collector
	Publisher publisher.Publisher

	// Notifier is optional; nil disables notification.
	Notifier notify.Notifier

	// Verbose receives progress output; nil disables it.
	Verbose io.Writer
}

// Request describes one release run.
type Request struct {
	Repo        model.RepoRef
	Version     string
	ProjectName string

	// SHA is the commit the version tag points at when it has to be created,
	// typically the invoking workflow's commit.
	SHA string

	Assets []attach.Entry
}

// Publish runs the full pipeline. Asset attachment and tag dating are the
// only locally recovered steps; every other failure aborts the run. A
// release created before a later step fails remains created.
func (o *Orchestrator) Publish(ctx context.Context, req Request) (*model.PublishResult, error) {
	result := &model.PublishResult{
		Timestamp:   time.Now(),
		Repo:        req.Repo,
		Version:     req.Version,
		ProjectName: req.ProjectName,
	}

	sorted, err := o.resolveTags(ctx, req, result)
	if err != nil {
		return nil, err
	}

	if err := o.createTagIfMissing(ctx, req, result); err != nil {
		return nil, err
	}

	cl, err := changelog.Build(ctx, o.Collector, req.Repo, sorted)
	if err != nil {
		return nil, err
	}
	result.ChangelogSource = cl.Source
	result.Changelog = cl.Body
	o.progress("Changelog built from %s (%d bytes)\n", cl.Source, len(cl.Body))

	release, err := o.Publisher.CreateRelease(ctx, &model.ReleaseRequest{
		Repo:       req.Repo,
		TagName:    req.Version,
		Name:       req.Version,
		Body:       cl.Body,
		Draft:      false,
		Prerelease: false,
	})
	if err != nil {
		return nil, err
	}
	result.Release = release
	o.progress("Created release %s (id %d)\n", release.TagName, release.ID)

	if len(req.Assets) > 0 {
		result.Assets = attach.Attach(ctx, o.Publisher, req.Repo, release.ID, req.Assets)
		result.CountAssets()
		o.progress("Assets: %d attached, %d skipped, %d failed\n",
			result.AttachedCount, result.SkippedCount, result.FailedCount)
	}

	if o.Notifier != nil {
		msg := notify.Message{
			Project:   req.ProjectName,
			Version:   req.Version,
			Changelog: cl.Body,
		}
		if err := o.Notifier.Notify(ctx, msg); err != nil {
			return result, err
		}
		result.Notified = true
		result.NotifyTarget = o.Notifier.Target()
		o.progress("Notified %s webhook\n", result.NotifyTarget)
	}

	return result, nil
}

// Changelog resolves tags and renders the changelog without creating a tag,
// release, or notification.
func (o *Orchestrator) Changelog(ctx context.Context, repo model.RepoRef) (*model.ChangelogResult, error) {
	all, err := o.Collector.ListTags(ctx, repo)
	if err != nil {
		return nil, err
	}

	sorted, err := tags.Normalize(ctx, o.Collector, repo, all)
	if err != nil {
		return nil, err
	}

	if len(sorted.Tags) == 0 {
		return nil, fmt.Errorf("%w in %s", tags.ErrInsufficientTags, repo.FullName())
	}

	cl, err := changelog.Build(ctx, o.Collector, repo, sorted)
	if err != nil {
		return nil, err
	}

	return &model.ChangelogResult{
		Timestamp:   time.Now(),
		Repo:        repo,
		Source:      cl.Source,
		Changelog:   cl.Body,
		SkippedTags: sorted.Skipped,
	}, nil
}

// resolveTags lists and normalizes tags, recording skipped tags and the tag
// action, and aborts when no dated tag exists.
func (o *Orchestrator) resolveTags(ctx context.Context, req Request, result *model.PublishResult) (tags.Sorted, error) {
	all, err := o.Collector.ListTags(ctx, req.Repo)
	if err != nil {
		return tags.Sorted{}, err
	}

	sorted, err := tags.Normalize(ctx, o.Collector, req.Repo, all)
	if err != nil {
		return tags.Sorted{}, err
	}
	result.SkippedTags = sorted.Skipped
	for _, s := range sorted.Skipped {
		o.progress("Skipping tag %s: %s\n", s.Name, s.Reason)
	}

	if len(sorted.Tags) == 0 {
		return tags.Sorted{}, fmt.Errorf("%w in %s", tags.ErrInsufficientTags, req.Repo.FullName())
	}

	// Existence is checked against the full fetched list; dating only
	// affects changelog bounds.
	if tags.Contains(all, req.Version) {
		result.TagAction = model.TagActionExisting
	} else {
		result.TagAction = model.TagActionCreated
	}

	return sorted, nil
}

// createTagIfMissing creates the version tag ref when absent. Creation
// failure is fatal: a release must not be published against a tag that was
// never created.
func (o *Orchestrator) createTagIfMissing(ctx context.Context, req Request, result *model.PublishResult) error {
	if result.TagAction == model.TagActionExisting {
		o.progress("Tag %s already exists\n", req.Version)
		return nil
	}

	if err := o.Publisher.CreateTagRef(ctx, req.Repo, req.Version, req.SHA); err != nil {
		return err
	}
	o.progress("Created tag %s at %s\n", req.Version, req.SHA)

	return nil
}

func (o *Orchestrator) progress(format string, args ...any) {
	if o.Verbose != nil {
		fmt.Fprintf(o.Verbose, format, args...)
	}
}
