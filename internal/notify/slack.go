package notify

import (
	"context"
	"fmt"
	"net/http"

	"github.com/slack-go/slack"
)

// SlackNotifier posts a plain-text message to a Slack incoming webhook.
type SlackNotifier struct {
	webhookURL string
	httpClient *http.Client
}

// NewSlack creates a Slack webhook notifier.
func NewSlack(webhookURL string) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		httpClient: newHTTPClient(),
	}
}

// Notify posts the announcement to the Slack webhook.
func (n *SlackNotifier) Notify(ctx context.Context, msg Message) error {
	payload := &slack.WebhookMessage{
		Text: RenderText(msg),
	}

	if err := slack.PostWebhookCustomHTTPContext(ctx, n.webhookURL, n.httpClient, payload); err != nil {
		return fmt.Errorf("failed to post slack webhook: %w", err)
	}

	return nil
}

// Target names the provider.
func (n *SlackNotifier) Target() string {
	return string(FormatSlack)
}
