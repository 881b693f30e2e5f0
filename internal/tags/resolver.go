// Package tags normalizes and orders repository tags for a release run.
package tags

import (
	"context"
	"errors"
	"sort"

	"github.com/grokify/releaseconductor/internal/collector"
	"github.com/grokify/releaseconductor/pkg/model"
)

// ErrInsufficientTags indicates that no tag with a resolvable commit date
// exists, so there is no changelog bound to work from.
var ErrInsufficientTags = errors.New("no valid tags")

// Sorted holds the dated tags of a repository, newest first, along with the
// tags dropped because their commit date could not be resolved.
type Sorted struct {
	Tags    []model.Tag
	Skipped []model.SkippedTag
}

// Normalize resolves commit dates for tags that lack them and returns the
// dated tags sorted by commit date descending. Tags whose date cannot be
// resolved are dropped and recorded, not fatal.
func Normalize(ctx context.Context, coll collector.Collector, repo model.RepoRef, all []model.Tag) (Sorted, error) {
	var s Sorted

	for _, t := range all {
		if !t.Dated() {
			date, err := coll.GetCommitDate(ctx, repo, t.SHA)
			if err != nil {
				s.Skipped = append(s.Skipped, model.SkippedTag{
					Name:   t.Name,
					Reason: err.Error(),
				})
				continue
			}
			t.Date = &date
		}
		s.Tags = append(s.Tags, t)
	}

	sort.SliceStable(s.Tags, func(i, j int) bool {
		return s.Tags[i].Date.After(*s.Tags[j].Date)
	})

	return s, nil
}

// Contains reports whether name appears among the given tags, exact match.
func Contains(all []model.Tag, name string) bool {
	for _, t := range all {
		if t.Name == name {
			return true
		}
	}
	return false
}

// Latest returns the most recently dated tag, or nil if there is none.
func (s Sorted) Latest() *model.Tag {
	if len(s.Tags) == 0 {
		return nil
	}
	return &s.Tags[0]
}

// Previous returns the second-most-recently dated tag, the lower bound for
// changelog generation, or nil if fewer than two dated tags exist.
func (s Sorted) Previous() *model.Tag {
	if len(s.Tags) < 2 {
		return nil
	}
	return &s.Tags[1]
}
