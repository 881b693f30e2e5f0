package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// TeamsNotifier posts a MessageCard payload to a Microsoft Teams webhook.
type TeamsNotifier struct {
	webhookURL string
	httpClient *http.Client
}

// messageCard is the legacy Office 365 connector card payload.
type messageCard struct {
	Type       string        `json:"@type"`
	Context    string        `json:"@context"`
	ThemeColor string        `json:"themeColor"`
	Summary    string        `json:"summary"`
	Sections   []cardSection `json:"sections"`
}

type cardSection struct {
	ActivityTitle string `json:"activityTitle"`
	Text          string `json:"text,omitempty"`
	Markdown      bool   `json:"markdown"`
}

// NewTeams creates a Teams webhook notifier.
func NewTeams(webhookURL string) *TeamsNotifier {
	return &TeamsNotifier{
		webhookURL: webhookURL,
		httpClient: newHTTPClient(),
	}
}

// Notify posts the announcement card to the Teams webhook.
func (n *TeamsNotifier) Notify(ctx context.Context, msg Message) error {
	card := messageCard{
		Type:       "MessageCard",
		Context:    "http://schema.org/extensions",
		ThemeColor: "0076D7",
		Summary:    fmt.Sprintf("New release: %s:%s", msg.Project, msg.Version),
		Sections: []cardSection{
			{
				ActivityTitle: fmt.Sprintf("New release: **%s:%s**", msg.Project, msg.Version),
				Text:          msg.Changelog,
				Markdown:      true,
			},
		},
	}

	body, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("failed to marshal teams payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create teams request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post teams webhook: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status code %d from teams webhook", resp.StatusCode)
	}

	return nil
}

// Target names the provider.
func (n *TeamsNotifier) Target() string {
	return string(FormatTeams)
}
