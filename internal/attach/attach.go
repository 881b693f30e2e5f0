// Package attach uploads local files as release assets, collecting a
// per-file outcome instead of aborting on the first failure.
package attach

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/grokify/releaseconductor/internal/publisher"
	"github.com/grokify/releaseconductor/pkg/model"
)

// Entry is one asset to attach. Name defaults to the file's base name.
type Entry struct {
	Path string `yaml:"path"`
	Name string `yaml:"name,omitempty"`
}

// ParseFileList splits a comma or newline separated path list into entries,
// dropping empty items.
func ParseFileList(list string) []Entry {
	fields := strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == '\n'
	})

	var entries []Entry
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		entries = append(entries, Entry{Path: f})
	}
	return entries
}

// Attach uploads each entry against the release, in input order. Missing
// files and upload failures are recorded per entry and never stop the
// remaining uploads.
func Attach(ctx context.Context, pub publisher.Publisher, repo model.RepoRef, releaseID int64, entries []Entry) []model.AssetRecord {
	var records []model.AssetRecord

	for _, e := range entries {
		name := e.Name
		if name == "" {
			name = filepath.Base(e.Path)
		}

		rec := model.AssetRecord{Path: e.Path, Name: name}

		if _, err := os.Stat(e.Path); err != nil {
			rec.Status = model.AssetSkipped
			rec.Reason = "file not found"
			records = append(records, rec)
			continue
		}

		if err := pub.UploadReleaseAsset(ctx, repo, releaseID, e.Path, name); err != nil {
			rec.Status = model.AssetFailed
			rec.Reason = err.Error()
			records = append(records, rec)
			continue
		}

		rec.Status = model.AssetAttached
		records = append(records, rec)
	}

	return records
}
