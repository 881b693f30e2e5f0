package model

import "time"

// Tag represents a Git tag. Date is the committer date of the tag's commit
// and is nil until resolved; tags whose date cannot be resolved are dropped
// from changelog ordering.
type Tag struct {
	Name string     `json:"name"`
	SHA  string     `json:"sha"`
	Date *time.Time `json:"date,omitempty"`
	Repo RepoRef    `json:"repo"`
}

// Dated returns true if the tag's commit date has been resolved.
func (t Tag) Dated() bool {
	return t.Date != nil
}

// TagKind distinguishes how a tag exposes its target commit.
type TagKind string

const (
	// TagAnnotated is a tag object whose target commit comes from
	// dereferencing the object.
	TagAnnotated TagKind = "annotated"
	// TagLightweight is a direct named pointer to a commit.
	TagLightweight TagKind = "lightweight"
)

// TagResolution is the outcome of resolving a tag to its underlying commit.
type TagResolution struct {
	Kind TagKind `json:"kind"`
	SHA  string  `json:"sha"`
}
