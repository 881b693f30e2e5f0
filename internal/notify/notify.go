// Package notify delivers release announcements to chat webhooks.
package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/grokify/mogo/net/http/retryhttp"
)

// Message is the content of a release announcement.
type Message struct {
	Project   string
	Version   string
	Changelog string
}

// RenderText renders the plain-text announcement body.
func RenderText(msg Message) string {
	return fmt.Sprintf("New release:\n\n*%s:%s*\n\n%s", msg.Project, msg.Version, msg.Changelog)
}

// Notifier defines the interface for delivering a release announcement.
type Notifier interface {
	// Notify delivers the announcement. One call issues at most one POST.
	Notify(ctx context.Context, msg Message) error

	// Target names the provider, for reporting.
	Target() string
}

// Format selects the webhook payload provider.
type Format string

const (
	FormatSlack Format = "slack"
	FormatTeams Format = "teams"
)

// New creates a notifier for the given provider format and webhook URL.
func New(format Format, webhookURL string) (Notifier, error) {
	switch format {
	case FormatSlack, "":
		return NewSlack(webhookURL), nil
	case FormatTeams:
		return NewTeams(webhookURL), nil
	default:
		return nil, fmt.Errorf("unknown webhook format: %s", format)
	}
}

// newHTTPClient builds the webhook HTTP client with a retry transport.
func newHTTPClient() *http.Client {
	rt := retryhttp.NewWithOptions(
		retryhttp.WithMaxRetries(3),
		retryhttp.WithInitialBackoff(time.Second),
	)
	return &http.Client{Transport: rt}
}
