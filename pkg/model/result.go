package model

import "time"

// TagAction records what the run did about the version tag.
type TagAction string

const (
	TagActionExisting TagAction = "existing"
	TagActionCreated  TagAction = "created"
)

// ChangelogSource identifies which strategy produced the changelog.
type ChangelogSource string

const (
	SourcePullRequests ChangelogSource = "pull-requests"
	SourceCommitRange  ChangelogSource = "commit-range"
	SourceSingleTag    ChangelogSource = "single-tag"
)

// AssetStatus is the per-file outcome of asset attachment.
type AssetStatus string

const (
	AssetAttached AssetStatus = "attached"
	AssetSkipped  AssetStatus = "skipped"
	AssetFailed   AssetStatus = "failed"
)

// AssetRecord is the result of attempting to attach one file.
type AssetRecord struct {
	Path   string      `json:"path"`
	Name   string      `json:"name"`
	Status AssetStatus `json:"status"`
	Reason string      `json:"reason,omitempty"`
}

// SkippedTag records a tag dropped during date resolution.
type SkippedTag struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// PublishResult contains the outcome of a full publish run.
type PublishResult struct {
	Timestamp       time.Time       `json:"timestamp"`
	Repo            RepoRef         `json:"repo"`
	Version         string          `json:"version"`
	ProjectName     string          `json:"projectName"`
	TagAction       TagAction       `json:"tagAction"`
	ChangelogSource ChangelogSource `json:"changelogSource"`
	Changelog       string          `json:"changelog,omitempty"`
	Release         *Release        `json:"release,omitempty"`
	Assets          []AssetRecord   `json:"assets,omitempty"`
	SkippedTags     []SkippedTag    `json:"skippedTags,omitempty"`
	Notified        bool            `json:"notified"`
	NotifyTarget    string          `json:"notifyTarget,omitempty"`
	AttachedCount   int             `json:"attachedCount"`
	SkippedCount    int             `json:"skippedCount"`
	FailedCount     int             `json:"failedCount"`
}

// CountAssets recomputes the per-status asset counters.
func (r *PublishResult) CountAssets() {
	r.AttachedCount, r.SkippedCount, r.FailedCount = 0, 0, 0
	for _, a := range r.Assets {
		switch a.Status {
		case AssetAttached:
			r.AttachedCount++
		case AssetSkipped:
			r.SkippedCount++
		case AssetFailed:
			r.FailedCount++
		}
	}
}

// ChangelogResult contains the outcome of a changelog-only run.
type ChangelogResult struct {
	Timestamp   time.Time       `json:"timestamp"`
	Repo        RepoRef         `json:"repo"`
	Source      ChangelogSource `json:"source"`
	Changelog   string          `json:"changelog,omitempty"`
	SkippedTags []SkippedTag    `json:"skippedTags,omitempty"`
}
