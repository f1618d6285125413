package vaam

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"vaamtranscribe/internal/core/domain"
)

const (
	// DefaultLookupURL is the capture lookup endpoint used by the share page.
	DefaultLookupURL = "https://app.vaam.io/api/captures"
	// DefaultAccessKey is the public key the share page sends with lookups.
	DefaultAccessKey = "vaam-share-public"
)

// Client implements ports.Resolver against the Vaam capture lookup API.
type Client struct {
	baseURL   string
	accessKey string
	client    *http.Client
}

// NewClient creates a new Client. Empty arguments fall back to the defaults.
func NewClient(baseURL, accessKey string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultLookupURL
	}
	if accessKey == "" {
		accessKey = DefaultAccessKey
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		accessKey: accessKey,
		client:    httpClient,
	}
}

// lookupResponse mirrors the fields we read from the lookup payload.
// Anything else the API sends is ignored.
type lookupResponse struct {
	MP4  *string `json:"mp4"`
	WebM *string `json:"webm"`
	HLS  *string `json:"hls"`
}

// Resolve fetches the playable URLs for the given capture.
func (c *Client) Resolve(ctx context.Context, id domain.CaptureID) (*domain.MediaDescriptor, error) {
	lookupURL := c.lookupURL(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create lookup request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("capture lookup failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read lookup response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("capture lookup failed: status %d, body: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var payload lookupResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse lookup response: %w", err)
	}

	return &domain.MediaDescriptor{
		MP4:  deref(payload.MP4),
		WebM: deref(payload.WebM),
		HLS:  deref(payload.HLS),
	}, nil
}

func (c *Client) lookupURL(id domain.CaptureID) string {
	q := url.Values{}
	q.Set("key", c.accessKey)
	return fmt.Sprintf("%s/%s?%s", c.baseURL, url.PathEscape(string(id)), q.Encode())
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// truncate keeps at most n runes of s.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
