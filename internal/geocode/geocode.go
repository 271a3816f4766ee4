// Package geocode resolves GPS coordinates to a human-friendly place
// name via a Nominatim-compatible reverse-geocoding endpoint.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL   = "https://nominatim.openstreetmap.org/reverse"
	defaultUserAgent = "exifscope"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewClient builds a client; empty baseURL or userAgent fall back to
// the public Nominatim endpoint and a generic agent.
func NewClient(baseURL, userAgent string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		userAgent:  userAgent,
	}
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		County        string `json:"county"`
		StateDistrict string `json:"state_district"`
		State         string `json:"state"`
		Country       string `json:"country"`
	} `json:"address"`
}

// Locate reverse-geocodes a coordinate pair. Zoom 10 asks for
// county-level granularity, which reads better than a street address
// for a photo report.
func (c *Client) Locate(ctx context.Context, lat, lon float64) (string, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lon))
	q.Set("zoom", "10")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("reverse geocode: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reverse geocode: unexpected status %d", resp.StatusCode)
	}

	var payload reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	parts := make([]string, 0, 3)
	for _, s := range []string{payload.Address.County, payload.Address.State, payload.Address.Country} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		if payload.DisplayName != "" {
			return payload.DisplayName, nil
		}
		return "", errors.New("no address in response")
	}
	return strings.Join(parts, ", "), nil
}
