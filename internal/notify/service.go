package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyCapture = 4096
)

var (
	ErrNotConfigured = errors.New("webhook URL is not configured")
	ErrTimeout       = errors.New("webhook request timed out")
)

// TransportError is a connection-level failure talking to the webhook.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("webhook request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UnexpectedStatusError means the webhook answered with something other than
// 200 or 204.
type UnexpectedStatusError struct {
	Status int
	Body   string
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("webhook returned status %d: %s", e.Status, e.Body)
}

// Notifier sends a pre-formatted message to the configured chat webhook.
type Notifier interface {
	Notify(ctx context.Context, content string) error
}

type Service struct {
	webhookURL string
	client     *http.Client
}

func NewService(webhookURL string) *Service {
	return &Service{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: defaultTimeout},
	}
}

// Notify posts the message to the webhook. Fire-and-forget from the service's
// point of view: no retry, no state.
func (s *Service) Notify(ctx context.Context, content string) error {
	if s.webhookURL == "" {
		return ErrNotConfigured
	}

	payload, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return ErrTimeout
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyCapture))
	return &UnexpectedStatusError{Status: resp.StatusCode, Body: string(body)}
}
