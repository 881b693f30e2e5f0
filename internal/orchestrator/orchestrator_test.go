package orchestrator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/grokify/releaseconductor/internal/attach"
	"github.com/grokify/releaseconductor/internal/notify"
	"github.com/grokify/releaseconductor/internal/tags"
	"github.com/grokify/releaseconductor/pkg/model"
)

type fakeCollector struct {
	tags    []model.Tag
	dates   map[string]time.Time
	prs     []model.PullRequest
	commits []model.Commit
}

func (f *fakeCollector) ListTags(ctx context.Context, repo model.RepoRef) ([]model.Tag, error) {
	return f.tags, nil
}

func (f *fakeCollector) GetCommitDate(ctx context.Context, repo model.RepoRef, sha string) (time.Time, error) {
	d, ok := f.dates[sha]
	if !ok {
		return time.Time{}, errors.New("unknown object")
	}
	return d, nil
}

func (f *fakeCollector) ResolveTagCommit(ctx context.Context, repo model.RepoRef, t model.Tag) (model.TagResolution, error) {
	return model.TagResolution{Kind: model.TagLightweight, SHA: t.SHA}, nil
}

func (f *fakeCollector) ListClosedPullRequests(ctx context.Context, repo model.RepoRef) ([]model.PullRequest, error) {
	return f.prs, nil
}

func (f *fakeCollector) CompareCommits(ctx context.Context, repo model.RepoRef, base, head string) ([]model.Commit, error) {
	return f.commits, nil
}

func (f *fakeCollector) ListCommits(ctx context.Context, repo model.RepoRef, sha string) ([]model.Commit, error) {
	return f.commits, nil
}

type fakePublisher struct {
	createdTags     []string
	createdReleases []*model.ReleaseRequest
	uploads         []string
	tagErr          error
	releaseErr      error
}

func (f *fakePublisher) CreateTagRef(ctx context.Context, repo model.RepoRef, tagName, sha string) error {
	if f.tagErr != nil {
		return f.tagErr
	}
	f.createdTags = append(f.createdTags, tagName+"@"+sha)
	return nil
}

func (f *fakePublisher) CreateRelease(ctx context.Context, req *model.ReleaseRequest) (*model.Release, error) {
	if f.releaseErr != nil {
		return nil, f.releaseErr
	}
	f.createdReleases = append(f.createdReleases, req)
	return &model.Release{
		ID:      1001,
		TagName: req.TagName,
		Name:    req.Name,
		Body:    req.Body,
		Repo:    req.Repo,
	}, nil
}

func (f *fakePublisher) UploadReleaseAsset(ctx context.Context, repo model.RepoRef, releaseID int64, path, name string) error {
	f.uploads = append(f.uploads, name)
	return nil
}

type fakeNotifier struct {
	messages []notify.Message
	err      error
}

func (f *fakeNotifier) Notify(ctx context.Context, msg notify.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeNotifier) Target() string { return "slack" }

func twoTagFixture() *fakeCollector {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	mergedAt := base.Add(time.Hour)
	return &fakeCollector{
		tags: []model.Tag{
			{Name: "v1.0.0", SHA: "oldsha"},
			{Name: "v1.1.0", SHA: "newsha"},
		},
		dates: map[string]time.Time{
			"oldsha": base,
			"newsha": base.Add(2 * time.Hour),
		},
		prs: []model.PullRequest{
			{Number: 7, Title: "Improve docs", Author: "alice", HTMLURL: "https://example.com/7", MergedAt: &mergedAt},
		},
	}
}

func TestPublish_CreatesTagAndRelease(t *testing.T) {
	coll := twoTagFixture()
	pub := &fakePublisher{}

	o := &Orchestrator{Collector: coll, Publisher: pub}

	result, err := o.Publish(context.Background(), Request{
		Repo:        model.RepoRef{Owner: "grokify", Name: "demo"},
		Version:     "v1.2.0",
		ProjectName: "demo",
		SHA:         "headsha",
	})
	if err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}

	if result.TagAction != model.TagActionCreated {
		t.Errorf("expected tag created, got %s", result.TagAction)
	}

	if len(pub.createdTags) != 1 || pub.createdTags[0] != "v1.2.0@headsha" {
		t.Errorf("expected exactly one tag creation v1.2.0@headsha, got %v", pub.createdTags)
	}

	if len(pub.createdReleases) != 1 {
		t.Fatalf("expected 1 release, got %d", len(pub.createdReleases))
	}

	req := pub.createdReleases[0]
	if req.Draft || req.Prerelease {
		t.Error("release must be non-draft, non-prerelease")
	}

	if result.ChangelogSource != model.SourcePullRequests {
		t.Errorf("expected pull-requests changelog, got %s", result.ChangelogSource)
	}

	if req.Body != "- Improve docs by @alice in [#7](https://example.com/7)" {
		t.Errorf("unexpected release body: %q", req.Body)
	}
}

func TestPublish_ExistingTagSkipsCreationButStillReleases(t *testing.T) {
	coll := twoTagFixture()
	pub := &fakePublisher{}

	o := &Orchestrator{Collector: coll, Publisher: pub}

	result, err := o.Publish(context.Background(), Request{
		Repo:        model.RepoRef{Owner: "grokify", Name: "demo"},
		Version:     "v1.1.0",
		ProjectName: "demo",
		SHA:         "headsha",
	})
	if err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}

	if result.TagAction != model.TagActionExisting {
		t.Errorf("expected existing tag action, got %s", result.TagAction)
	}

	if len(pub.createdTags) != 0 {
		t.Errorf("expected no tag creation, got %v", pub.createdTags)
	}

	if len(pub.createdReleases) != 1 {
		t.Errorf("expected release creation to still happen, got %d", len(pub.createdReleases))
	}
}

func TestPublish_NoDatedTagsAbortsBeforeRelease(t *testing.T) {
	coll := &fakeCollector{
		tags:  []model.Tag{{Name: "broken", SHA: "zzz"}},
		dates: map[string]time.Time{},
	}
	pub := &fakePublisher{}

	o := &Orchestrator{Collector: coll, Publisher: pub}

	_, err := o.Publish(context.Background(), Request{
		Repo:        model.RepoRef{Owner: "grokify", Name: "demo"},
		Version:     "v1.0.0",
		ProjectName: "demo",
		SHA:         "headsha",
	})

	if !errors.Is(err, tags.ErrInsufficientTags) {
		t.Fatalf("expected ErrInsufficientTags, got %v", err)
	}

	if len(pub.createdReleases) != 0 {
		t.Error("no release must be created without valid tags")
	}
}

func TestPublish_TagCreationFailureIsFatal(t *testing.T) {
	coll := twoTagFixture()
	pub := &fakePublisher{tagErr: errors.New("ref already exists")}

	o := &Orchestrator{Collector: coll, Publisher: pub}

	_, err := o.Publish(context.Background(), Request{
		Repo:        model.RepoRef{Owner: "grokify", Name: "demo"},
		Version:     "v9.9.9",
		ProjectName: "demo",
		SHA:         "headsha",
	})
	if err == nil {
		t.Fatal("expected error from tag creation")
	}

	if len(pub.createdReleases) != 0 {
		t.Error("release must not be created after tag creation failure")
	}
}

func TestPublish_AttachesAssetsAndRecordsSkips(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(existing, []byte("data"), 0600); err != nil {
		t.Fatal(err)
	}

	coll := twoTagFixture()
	pub := &fakePublisher{}

	o := &Orchestrator{Collector: coll, Publisher: pub}

	result, err := o.Publish(context.Background(), Request{
		Repo:        model.RepoRef{Owner: "grokify", Name: "demo"},
		Version:     "v1.2.0",
		ProjectName: "demo",
		SHA:         "headsha",
		Assets: []attach.Entry{
			{Path: existing},
			{Path: filepath.Join(dir, "missing.txt")},
		},
	})
	if err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}

	if result.AttachedCount != 1 || result.SkippedCount != 1 {
		t.Errorf("expected 1 attached and 1 skipped, got %d/%d",
			result.AttachedCount, result.SkippedCount)
	}

	if len(pub.uploads) != 1 || pub.uploads[0] != "a.txt" {
		t.Errorf("expected one upload of a.txt, got %v", pub.uploads)
	}
}

func TestPublish_NotifierReceivesRenderedMessage(t *testing.T) {
	coll := twoTagFixture()
	pub := &fakePublisher{}
	n := &fakeNotifier{}

	o := &Orchestrator{Collector: coll, Publisher: pub, Notifier: n}

	result, err := o.Publish(context.Background(), Request{
		Repo:        model.RepoRef{Owner: "grokify", Name: "demo"},
		Version:     "v1.2.0",
		ProjectName: "demo",
		SHA:         "headsha",
	})
	if err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}

	if !result.Notified || result.NotifyTarget != "slack" {
		t.Errorf("expected slack notification recorded, got %+v", result)
	}

	if len(n.messages) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(n.messages))
	}

	msg := n.messages[0]
	if msg.Project != "demo" || msg.Version != "v1.2.0" {
		t.Errorf("unexpected message: %+v", msg)
	}
}

func TestPublish_NoNotifierNoNotification(t *testing.T) {
	coll := twoTagFixture()
	pub := &fakePublisher{}

	o := &Orchestrator{Collector: coll, Publisher: pub}

	result, err := o.Publish(context.Background(), Request{
		Repo:        model.RepoRef{Owner: "grokify", Name: "demo"},
		Version:     "v1.2.0",
		ProjectName: "demo",
		SHA:         "headsha",
	})
	if err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}

	if result.Notified {
		t.Error("expected no notification without a notifier")
	}
}

func TestPublish_NotifyFailureSurfacesAfterRelease(t *testing.T) {
	coll := twoTagFixture()
	pub := &fakePublisher{}
	n := &fakeNotifier{err: errors.New("webhook down")}

	o := &Orchestrator{Collector: coll, Publisher: pub, Notifier: n}

	result, err := o.Publish(context.Background(), Request{
		Repo:        model.RepoRef{Owner: "grokify", Name: "demo"},
		Version:     "v1.2.0",
		ProjectName: "demo",
		SHA:         "headsha",
	})
	if err == nil {
		t.Fatal("expected notification error to surface")
	}

	// The release created before the failure survives; no rollback.
	if len(pub.createdReleases) != 1 {
		t.Errorf("expected release to remain created, got %d", len(pub.createdReleases))
	}

	if result == nil || result.Release == nil {
		t.Error("expected partial result with the created release")
	}
}

func TestChangelog_DryRun(t *testing.T) {
	coll := twoTagFixture()
	pub := &fakePublisher{}

	o := &Orchestrator{Collector: coll, Publisher: pub}

	result, err := o.Changelog(context.Background(), model.RepoRef{Owner: "grokify", Name: "demo"})
	if err != nil {
		t.Fatalf("Changelog returned error: %v", err)
	}

	if result.Source != model.SourcePullRequests {
		t.Errorf("expected pull-requests source, got %s", result.Source)
	}

	if len(pub.createdTags) != 0 || len(pub.createdReleases) != 0 {
		t.Error("changelog run must not create tags or releases")
	}
}
