package wit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.wit.ai"
	defaultTimeout = 10 * time.Second

	// apiVersion pins the Wit message API revision this client speaks.
	apiVersion = "20170307"
)

// Config describes how to reach the Wit message endpoint.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration

	// MaxIntents caps how many intent candidates Wit returns per entity.
	MaxIntents int
}

// Client queries the Wit.ai message endpoint for intent classification.
type Client struct {
	baseURL    string
	token      string
	maxIntents int
	httpClient *http.Client
}

// NewClient creates a Wit client, filling in defaults for anything the
// config leaves unset.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxIntents := cfg.MaxIntents
	if maxIntents <= 0 {
		maxIntents = 1
	}
	return &Client{
		baseURL:    baseURL,
		token:      cfg.Token,
		maxIntents: maxIntents,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Classify sends free text to Wit and returns the recognized entities.
// There are no retries; transport errors, non-200 statuses, and malformed
// payloads all surface to the caller.
func (c *Client) Classify(ctx context.Context, text string) (Entities, error) {
	endpoint := fmt.Sprintf("%s/message?v=%s&n=%d&q=%s",
		c.baseURL, apiVersion, c.maxIntents, url.QueryEscape(text))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("wit: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wit: query message: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("wit: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wit: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var out messageResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("wit: decode response: %w", err)
	}

	return out.Entities, nil
}
