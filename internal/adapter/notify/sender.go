package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/kairos-ev/ordertrack/internal/domain/model"
)

// Sender delivers milestone events to an external messaging collaborator.
type Sender interface {
	Send(ctx context.Context, event model.StatusEvent) error
}

// WebhookSender posts milestone events as JSON to a configured webhook.
type WebhookSender struct {
	endpoint   *url.URL
	httpClient *retryablehttp.Client
	logger     *slog.Logger
}

// payload mirrors the JSON body expected by the messaging service.
type payload struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	OwnerID     int64     `json:"owner_id"`
	Stage       string    `json:"stage"`
	Label       string    `json:"label"`
	Note        string    `json:"note,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// NewWebhookSender creates a webhook sender with bounded retries.
func NewWebhookSender(endpoint string, logger *slog.Logger) (*WebhookSender, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse notify url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("notify url must be absolute")
	}

	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.RetryWaitMin = 500 * time.Millisecond
	client.RetryWaitMax = 5 * time.Second
	client.HTTPClient.Timeout = 10 * time.Second
	client.Logger = nil

	return &WebhookSender{endpoint: parsed, httpClient: client, logger: logger}, nil
}

// Send posts the event. The caller treats any error as advisory.
func (s *WebhookSender) Send(ctx context.Context, event model.StatusEvent) error {
	body, err := json.Marshal(payload{
		OrderID:     event.OrderID,
		OrderNumber: event.OrderNumber,
		OwnerID:     event.OwnerID,
		Stage:       string(event.Stage),
		Label:       event.Stage.Label(),
		Note:        event.Note,
		OccurredAt:  event.OccurredAt,
	})
	if err != nil {
		return err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, s.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("notify error: %s", resp.Status)
	}
	return nil
}

// NoopSender drops events. Used when no webhook is configured.
type NoopSender struct{}

// Send discards the event.
func (NoopSender) Send(context.Context, model.StatusEvent) error { return nil }
