// Package confluence implements the outbound Confluence Cloud search adapter.
// It is deliberately thin: it runs one CQL query per call and hands the raw
// result records to the search pipeline untouched, so record-shape quirks are
// resolved in one place (the record package), not here.
package confluence

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"specbot/internal/domain"
	"specbot/internal/domain/search/record"
	"specbot/internal/metrics"
)

const defaultTimeout = 30 * time.Second

// Config holds Confluence REST API connection settings.
type Config struct {
	BaseURL  string // e.g. https://yourcompany.atlassian.net/wiki
	Email    string
	APIToken string
	Timeout  time.Duration
	Logger   *zap.Logger
}

// Client calls the Confluence search REST API.
type Client struct {
	http    *http.Client
	baseURL string
	email   string
	token   string
	logger  *zap.Logger
}

// NewClient creates a Confluence search client.
func NewClient(cfg *Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		email:   cfg.Email,
		token:   cfg.APIToken,
		logger:  cfg.Logger,
	}
}

// searchResponse mirrors the /rest/api/search response envelope.
type searchResponse struct {
	Results   []record.Record `json:"results"`
	TotalSize int             `json:"totalSize"`
}

// Search runs one CQL query and returns the raw result records with absolute
// page URLs filled in. Non-2xx responses become domain.SearchBackendError.
func (c *Client) Search(ctx context.Context, cql string, limit int) ([]record.Record, error) {
	q := url.Values{}
	q.Set("cql", cql)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("expand", "content.space,content.version")

	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.baseURL+"/rest/api/search?"+q.Encode(), http.NoBody,
	)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.SetBasicAuth(c.email, c.token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()

	resp, err := c.http.Do(req)

	duration := time.Since(start)

	if err != nil {
		metrics.ConfluenceRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("confluence search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		metrics.ConfluenceRequestsTotal.WithLabelValues("error").Inc()
		return nil, domain.NewSearchBackendError(resp.StatusCode, readDetail(resp.Body))
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		metrics.ConfluenceRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	metrics.ConfluenceRequestsTotal.WithLabelValues("success").Inc()
	metrics.ConfluenceRequestDuration.Observe(duration.Seconds())

	results := parsed.Results
	for i := range results {
		results[i].URL = c.pageURL(&results[i])
	}

	c.logger.Debug("Confluence search completed",
		zap.Int("results", len(results)),
		zap.Int("total_size", parsed.TotalSize),
		zap.Duration("duration", duration),
	)

	return results, nil
}

// Ping verifies API availability and credentials via the space listing endpoint.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.baseURL+"/rest/api/space?limit=1", http.NoBody,
	)
	if err != nil {
		return fmt.Errorf("build ping request: %w", err)
	}
	req.SetBasicAuth(c.email, c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("confluence ping: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.NewSearchBackendError(resp.StatusCode, readDetail(resp.Body))
	}
	return nil
}

// pageURL builds an absolute page URL from the record's web link, falling back
// to the canonical viewpage URL when the link is missing.
func (c *Client) pageURL(rec *record.Record) string {
	if path := rec.WebUIPath(); path != "" {
		return c.baseURL + path
	}
	if id := rec.ResolveID(); id != "" {
		return c.baseURL + "/pages/viewpage.action?pageId=" + id
	}
	return ""
}

// readDetail extracts the "message" field from a JSON error body (Confluence
// error format), limited so oversized HTML error pages cannot blow up logs.
func readDetail(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 2048))
	if err != nil || len(body) == 0 {
		return ""
	}
	var parsed struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Message != "" {
		return parsed.Message
	}
	return string(body)
}
