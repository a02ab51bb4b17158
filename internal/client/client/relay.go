// Package client provides access to local storage and to the remote relay
// for the MinuteKeeper CLI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/vkuznecovs/minutekeeper/internal/shared"
	"github.com/vkuznecovs/minutekeeper/internal/wire"
)

// Relay is the client-side view of the relay wire protocol.
type Relay interface {
	Push(ctx context.Context, changes []wire.Change) (*wire.PushResponse, error)
	Pull(ctx context.Context, since *time.Time) (*wire.Snapshot, error)
	Status(ctx context.Context) (*wire.StatusResponse, error)
}

// RelayClient talks to the relay over HTTP with a static bearer token. No
// retries and no timeout beyond the HTTP client's own; a failed call is
// retried only when the user triggers another sync.
type RelayClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewRelayClient(baseURL, token string, timeout time.Duration) *RelayClient {
	return &RelayClient{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *RelayClient) Push(ctx context.Context, changes []wire.Change) (*wire.PushResponse, error) {
	body, err := json.Marshal(wire.PushRequest{Changes: changes})
	if err != nil {
		return nil, fmt.Errorf("failed to encode push request: %w", err)
	}

	var resp wire.PushResponse
	if err := c.do(ctx, http.MethodPost, "/push", bytes.NewReader(body), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *RelayClient) Pull(ctx context.Context, since *time.Time) (*wire.Snapshot, error) {
	path := "/pull"
	if since != nil {
		path += "?since=" + url.QueryEscape(since.Format(time.RFC3339Nano))
	}

	var snap wire.Snapshot
	if err := c.do(ctx, http.MethodGet, path, nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *RelayClient) Status(ctx context.Context) (*wire.StatusResponse, error) {
	var status wire.StatusResponse
	if err := c.do(ctx, http.MethodGet, "/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *RelayClient) do(ctx context.Context, method, path string, body io.Reader, target any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("relay request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: check the relay token", shared.ErrUnauthorized)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := readErrorMessage(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("failed to decode relay response: %w", err)
		}
	}
	return nil
}

func readErrorMessage(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(b) == 0 {
		return "no response body"
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(b, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return string(b)
}
