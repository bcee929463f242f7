package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const contentType = "application/json"

// Block is one Block Kit element. Payloads are built from the helper
// constructors below; the webhook API accepts free-form JSON objects.
type Block map[string]any

// Payload is an incoming-webhook message: a fallback text plus an ordered
// list of blocks.
type Payload struct {
	Text   string  `json:"text"`
	Blocks []Block `json:"blocks"`
}

// Client posts messages to a Slack incoming webhook.
type Client struct {
	webhookURL string
	httpClient *http.Client
	logger     *zap.Logger
}

func New(webhookURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// Send posts the payload. Any status other than 200 is an error.
func (c *Client) Send(ctx context.Context, payload *Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	c.logger.Debug("sending slack notification", zap.Int("blocks", len(payload.Blocks)))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post to slack webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	return nil
}

func Header(text string) Block {
	return Block{
		"type": "header",
		"text": map[string]any{
			"type":  "plain_text",
			"text":  text,
			"emoji": true,
		},
	}
}

func Section(markdown string) Block {
	return Block{
		"type": "section",
		"text": map[string]any{
			"type": "mrkdwn",
			"text": markdown,
		},
	}
}

// SectionWithButton is a section block carrying a link button accessory.
func SectionWithButton(markdown, buttonText, url string, primary bool) Block {
	accessory := map[string]any{
		"type": "button",
		"text": map[string]any{
			"type":  "plain_text",
			"text":  buttonText,
			"emoji": true,
		},
		"url": url,
	}
	if primary {
		accessory["style"] = "primary"
	}

	block := Section(markdown)
	block["accessory"] = accessory
	return block
}

func Divider() Block {
	return Block{"type": "divider"}
}

func Context(markdown string) Block {
	return Block{
		"type": "context",
		"elements": []map[string]any{
			{"type": "mrkdwn", "text": markdown},
		},
	}
}
