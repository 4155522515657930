package importcli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"smartler/internal/catalog"
)

// Client talks to the menu console import endpoints.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{cfg: cfg, http: httpClient}
}

// ImportMenu pushes a single-restaurant menu payload.
func (c *Client) ImportMenu(ctx context.Context, restaurantID string, payload []byte) (*catalog.ImportStatistics, error) {
	path := fmt.Sprintf("/restaurants/%s/menu/import", restaurantID)
	return c.post(ctx, path, payload)
}

// ImportSystemMenu pushes a system-wide menu payload.
func (c *Client) ImportSystemMenu(ctx context.Context, payload []byte) (*catalog.ImportStatistics, error) {
	return c.post(ctx, "/menu/import", payload)
}

func (c *Client) post(ctx context.Context, path string, payload []byte) (*catalog.ImportStatistics, error) {
	url := strings.TrimRight(c.cfg.ServerURL, "/") + path

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("server returned %d", resp.StatusCode)
	}

	var stats catalog.ImportStatistics
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &stats, nil
}
