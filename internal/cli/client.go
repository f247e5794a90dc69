package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/indhiran08-coder/student-performance-ai/internal/config"
)

// Client talks to a running studentperf server.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for the server address in cfg.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: fmt.Sprintf("http://%s:%d", cfg.Server.Host, cfg.Server.Port),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetJSON fetches path and decodes a 200 response into v. Other statuses
// are returned as errors carrying the server message.
func (c *Client) GetJSON(path string, v any) error {
	resp, err := c.client.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	return decodeResponse(resp, http.StatusOK, v)
}

// PostJSON posts an empty body to path and decodes a response with the
// wanted status into v.
func (c *Client) PostJSON(path string, want int, v any) error {
	resp, err := c.client.Post(c.baseURL+path, "application/json", nil)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	return decodeResponse(resp, want, v)
}

func decodeResponse(resp *http.Response, want int, v any) error {
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != want {
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			return fmt.Errorf("server returned status %d: %s", resp.StatusCode, e.Error)
		}
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	return json.Unmarshal(data, v)
}
