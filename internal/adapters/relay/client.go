package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kamal-hamza/secam/internal/core/domain"
	"github.com/kamal-hamza/secam/internal/core/ports"
)

// Client posts capture payloads to the relay's send-capture endpoint
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a relay client. apiKey is sent as a bearer token when set.
func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Ensure it implements the interface
var _ ports.Relay = (*Client)(nil)

// StatusError is a non-2xx relay response
type StatusError struct {
	StatusCode int
	Status     string
	Detail     string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s (%s)", domain.ErrRelayFailed, e.Status)
	if e.Detail != "" {
		msg += " " + e.Detail
	}
	return msg
}

// Is maps the relay's status codes onto domain errors
func (e *StatusError) Is(target error) bool {
	switch target {
	case domain.ErrRelayFailed:
		return true
	case domain.ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case domain.ErrInvalidPayload:
		return e.StatusCode == http.StatusBadRequest
	case domain.ErrProviderFailed:
		return e.StatusCode == http.StatusBadGateway
	case domain.ErrMailerNotConfigured:
		return e.StatusCode == http.StatusInternalServerError && strings.Contains(e.Detail, "RESEND_API_KEY")
	}
	return false
}

type sendResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id"`
}

// Send posts the payload and returns the provider message id
func (c *Client) Send(ctx context.Context, payload domain.CapturePayload) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrRelayFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrRelayFailed, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Detail:     strings.TrimSpace(string(raw)),
		}
	}

	var out sendResponse
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return "", fmt.Errorf("%w: unreadable response: %v", domain.ErrRelayFailed, err)
		}
	}
	return out.ID, nil
}
