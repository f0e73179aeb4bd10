package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/cinematch/pkg/a2a"
)

const DefaultTimeout = 30 * time.Second

/*
Service posts task results to the callback a caller registered in
pushNotificationConfig. Each call makes exactly one attempt.
*/
type Service struct {
	client *http.Client
}

type ServiceOption func(*Service)

func WithTimeout(timeout time.Duration) ServiceOption {
	return func(s *Service) {
		s.client.Timeout = timeout
	}
}

func WithHTTPClient(client *http.Client) ServiceOption {
	return func(s *Service) {
		s.client = client
	}
}

func NewService(opts ...ServiceOption) *Service {
	s := &Service{
		client: &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

/*
Deliver POSTs payload as JSON to target.URL with the target's token as a
bearer credential. A transport failure or a non-2xx answer is an error.
*/
func (s *Service) Deliver(ctx context.Context, target *a2a.PushNotificationConfig, payload any) error {
	if target == nil || target.URL == "" {
		return fmt.Errorf("no push notification target")
	}

	eventData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.URL, bytes.NewReader(eventData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+target.Token)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	log.Debug("notification delivered", "url", target.URL, "status", resp.StatusCode)
	return nil
}
