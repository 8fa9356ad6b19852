// Package pinecone implements vector.Index over Pinecone's REST API.
package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/REDDITARUN/helix/internal/config"
	"github.com/REDDITARUN/helix/internal/vector"
)

const (
	controlPlaneURL = "https://api.pinecone.io"
	apiVersion      = "2024-10"
)

// Client talks to one Pinecone index over HTTP. One instance is shared by
// all handlers; the lazily resolved data-plane host is guarded by mu.
type Client struct {
	apiKey       string
	indexName    string
	controlPlane string
	client       *http.Client

	mu   sync.Mutex
	host string
}

// NewClient creates a client for the configured index. When no data-plane
// host is configured it is resolved from the control plane on first use.
func NewClient(cfg config.PineconeConfig) *Client {
	return &Client{
		apiKey:       cfg.APIKey,
		indexName:    cfg.Index,
		controlPlane: controlPlaneURL,
		host:         cfg.Host,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type describeIndexResponse struct {
	Name      string `json:"name"`
	Dimension int    `json:"dimension"`
	Host      string `json:"host"`
}

type upsertRequest struct {
	Vectors []upsertVector `json:"vectors"`
}

type upsertVector struct {
	ID       string         `json:"id"`
	Values   []float32      `json:"values"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type upsertResponse struct {
	UpsertedCount int `json:"upsertedCount"`
}

type queryRequest struct {
	Vector          []float32 `json:"vector"`
	TopK            int       `json:"topK"`
	IncludeMetadata bool      `json:"includeMetadata"`
}

type queryResponse struct {
	Matches []struct {
		ID       string         `json:"id"`
		Score    float64        `json:"score"`
		Metadata map[string]any `json:"metadata"`
	} `json:"matches"`
}

// Dimension resolves the index description from the control plane and
// returns its configured dimensionality. The description also carries the
// data-plane host, which is cached here so the startup check pre-warms it.
func (c *Client) Dimension(ctx context.Context) (int, error) {
	desc, err := c.describeIndex(ctx)
	if err != nil {
		return 0, err
	}
	if desc.Dimension == 0 {
		return 0, fmt.Errorf("could not determine dimension for pinecone index %q", c.indexName)
	}

	if desc.Host != "" {
		c.mu.Lock()
		if c.host == "" {
			c.host = desc.Host
		}
		c.mu.Unlock()
	}

	return desc.Dimension, nil
}

// Upsert writes the vectors to the index and returns the upserted count
func (c *Client) Upsert(ctx context.Context, vectors []vector.Vector) (int, error) {
	if len(vectors) == 0 {
		return 0, nil
	}

	req := upsertRequest{Vectors: make([]upsertVector, 0, len(vectors))}
	for _, v := range vectors {
		req.Vectors = append(req.Vectors, upsertVector{
			ID:       v.ID,
			Values:   v.Values,
			Metadata: v.Metadata,
		})
	}

	var resp upsertResponse
	if err := c.dataPlane(ctx, "/vectors/upsert", req, &resp); err != nil {
		return 0, err
	}

	count := resp.UpsertedCount
	if count == 0 {
		// Some responses omit the count; assume the full batch landed
		count = len(vectors)
	}
	return count, nil
}

// Query returns the topK nearest neighbors of the given vector
func (c *Client) Query(ctx context.Context, values []float32, topK int, includeMetadata bool) ([]vector.Match, error) {
	req := queryRequest{
		Vector:          values,
		TopK:            topK,
		IncludeMetadata: includeMetadata,
	}

	var resp queryResponse
	if err := c.dataPlane(ctx, "/query", req, &resp); err != nil {
		return nil, err
	}

	matches := make([]vector.Match, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		matches = append(matches, vector.Match{
			ID:       m.ID,
			Score:    m.Score,
			Metadata: m.Metadata,
		})
	}
	return matches, nil
}

func (c *Client) describeIndex(ctx context.Context) (*describeIndexResponse, error) {
	url := fmt.Sprintf("%s/indexes/%s", c.controlPlane, c.indexName)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var desc describeIndexResponse
	if err := json.Unmarshal(body, &desc); err != nil {
		return nil, fmt.Errorf("failed to decode index description: %w", err)
	}
	return &desc, nil
}

// resolveHost caches the data-plane host from the control plane. The lock
// is held across the lookup so concurrent callers resolve exactly once.
func (c *Client) resolveHost(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.host != "" {
		return c.host, nil
	}
	desc, err := c.describeIndex(ctx)
	if err != nil {
		return "", err
	}
	if desc.Host == "" {
		return "", fmt.Errorf("pinecone index %q has no data-plane host", c.indexName)
	}
	c.host = desc.Host
	return c.host, nil
}

func (c *Client) dataPlane(ctx context.Context, path string, payload any, out any) error {
	host, err := c.resolveHost(ctx)
	if err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	// Control plane reports hosts without a scheme
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "https://" + host
	}
	url := host + path

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	respBody, err := c.do(req)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Api-Key", c.apiKey)
	req.Header.Set("X-Pinecone-Api-Version", apiVersion)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pinecone request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("pinecone returned status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
