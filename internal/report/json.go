package report

import (
	"encoding/json"

	"github.com/grokify/releaseconductor/pkg/model"
)

// JSONFormatter formats results as JSON.
type JSONFormatter struct {
	Indent bool
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{Indent: true}
}

// FormatPublishResult formats a publish result as JSON.
func (f *JSONFormatter) FormatPublishResult(result *model.PublishResult) (string, error) {
	return f.marshal(result)
}

// FormatChangelogResult formats a changelog-only result as JSON.
func (f *JSONFormatter) FormatChangelogResult(result *model.ChangelogResult) (string, error) {
	return f.marshal(result)
}

func (f *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if f.Indent {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}
