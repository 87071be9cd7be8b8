package sdk

import (
	"context"
	"net/url"
)

// Period values accepted by Usage.
const (
	PeriodDay   = "day"
	PeriodMonth = "month"
	PeriodTotal = "total"
)

// Usage returns token consumption and budget state for a period.
// An empty period defaults to the current month.
func (c *Client) Usage(ctx context.Context, period string) (UsageResponse, error) {
	path := "/api/v1/usage"
	if period != "" {
		path += "?period=" + url.QueryEscape(period)
	}

	var resp UsageResponse
	err := c.get(ctx, path, &resp)
	return resp, err
}

// Health reports the server status and its dependency checks.
// A degraded server responds with HTTP 503; that is returned
// as an *APIError.
func (c *Client) Health(ctx context.Context) (HealthResponse, error) {
	var resp HealthResponse
	err := c.get(ctx, "/health", &resp)
	return resp, err
}
