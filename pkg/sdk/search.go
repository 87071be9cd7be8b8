package sdk

import "context"

type searchRequest struct {
	Query string `json:"query"`
	Space string `json:"space,omitempty"`
	Limit int    `json:"limit,omitempty"`
}

type askRequest struct {
	Question string `json:"question"`
	Limit    int    `json:"limit,omitempty"`
}

// Search runs the multi-strategy document search.
// Pass limit 0 to use the server default; space narrows results to
// a single Confluence space.
func (c *Client) Search(ctx context.Context, query, space string, limit int) (SearchResponse, error) {
	var resp SearchResponse
	err := c.post(ctx, "/api/v1/search", searchRequest{
		Query: query,
		Space: space,
		Limit: limit,
	}, &resp)
	return resp, err
}

// Ask searches the documentation and generates an answer to the question.
// Pass limit 0 to use the server default.
func (c *Client) Ask(ctx context.Context, question string, limit int) (AskResponse, error) {
	var resp AskResponse
	err := c.post(ctx, "/api/v1/ask", askRequest{
		Question: question,
		Limit:    limit,
	}, &resp)
	return resp, err
}
