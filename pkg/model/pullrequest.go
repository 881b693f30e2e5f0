package model

import "time"

// PullRequest represents a GitHub pull request.
type PullRequest struct {
	Number    int        `json:"number"`
	Title     string     `json:"title"`
	State     string     `json:"state"` // open, closed
	Author    string     `json:"author"`
	HTMLURL   string     `json:"htmlUrl"`
	MergedAt  *time.Time `json:"mergedAt,omitempty"`
	Repo      RepoRef    `json:"repo"`
}

// IsMerged returns true if the PR has been merged.
func (pr *PullRequest) IsMerged() bool {
	return pr.MergedAt != nil
}

// MergedAfter returns true if the PR was merged strictly after t.
func (pr *PullRequest) MergedAfter(t time.Time) bool {
	return pr.MergedAt != nil && pr.MergedAt.After(t)
}

// Commit represents a single commit in a changelog range.
type Commit struct {
	SHA     string    `json:"sha"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
}
