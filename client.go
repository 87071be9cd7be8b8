// Package specbot embeds the documentation Q&A engine in-process: the same
// multi-strategy Confluence search and LLM summarization the server exposes
// over HTTP, without running the server. Use pkg/sdk to talk to a deployed
// instance instead.
package specbot

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"specbot/internal/domain"
	"specbot/internal/domain/search/candidate"
	"specbot/internal/domain/search/request"
	"specbot/internal/keyword"
	confluenceTransport "specbot/internal/transport/confluence"
	openaiTransport "specbot/internal/transport/openai"
	askuc "specbot/internal/usecase/ask"
	searchuc "specbot/internal/usecase/search"
)

// Validation sentinels, re-exported so callers can errors.Is against them.
var (
	ErrEmptyQuery   = domain.ErrEmptyQuery
	ErrQueryTooLong = domain.ErrQueryTooLong
)

// Config holds the settings for an embedded client.
type Config struct {
	// ConfluenceBaseURL is the wiki root, e.g.
	// https://yourcompany.atlassian.net/wiki. Required.
	ConfluenceBaseURL string
	// ConfluenceEmail and ConfluenceAPIToken authenticate against the
	// Confluence REST API.
	ConfluenceEmail    string
	ConfluenceAPIToken string
	// Space is the default space key searched when a call does not name one.
	Space string

	// LLMAPIKey enables Ask. Search works without it.
	LLMAPIKey string
	// LLMBaseURL overrides the OpenAI endpoint for compatible providers.
	LLMBaseURL string
	// Model overrides the default generation model.
	Model string

	// Logger defaults to a no-op logger.
	Logger *zap.Logger
}

// Result is one ranked document.
type Result struct {
	ID           string
	Title        string
	URL          string
	Excerpt      string
	Space        string
	LastModified string
	Strategy     string
	Score        int
}

// Answer is a generated response with the documents it was grounded on.
type Answer struct {
	Text       string
	Answered   bool
	Sources    []Result
	TokensUsed int
}

// Client runs searches and answers questions in-process.
type Client struct {
	search *searchuc.Service
	ask    *askuc.Service
	canAsk bool
}

// New creates an embedded client. Ask requires LLMAPIKey; a client built
// without one still serves Search.
func New(cfg Config) (*Client, error) {
	if cfg.ConfluenceBaseURL == "" {
		return nil, errors.New("specbot: ConfluenceBaseURL required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	confluence := confluenceTransport.NewClient(&confluenceTransport.Config{
		BaseURL:  cfg.ConfluenceBaseURL,
		Email:    cfg.ConfluenceEmail,
		APIToken: cfg.ConfluenceAPIToken,
		Logger:   logger,
	})

	searchSvc := searchuc.New(confluence, keyword.Default(), cfg.Space, logger)

	sumCfg := domain.DefaultSummaryConfig()
	if cfg.Model != "" {
		sumCfg.Model = cfg.Model
	}

	client := &Client{search: searchSvc}
	if cfg.LLMAPIKey != "" {
		summarizer := openaiTransport.NewSummarizer(&openaiTransport.Config{
			APIKey:      cfg.LLMAPIKey,
			BaseURL:     cfg.LLMBaseURL,
			Model:       sumCfg.Model,
			Temperature: sumCfg.Temperature,
			MaxTokens:   sumCfg.MaxAnswerTokens,
			Provider:    "openai",
			Logger:      logger,
		})
		client.ask = askuc.New(searchSvc, summarizer, nil, sumCfg, logger)
		client.canAsk = true
	}

	return client, nil
}

// Search runs the multi-strategy search. space narrows the run to one
// space key; pass "" for the configured default, and limit 0 for the
// default result cap.
func (c *Client) Search(ctx context.Context, query, space string, limit int) ([]Result, error) {
	req, err := request.New(query, space, limit)
	if err != nil {
		return nil, err
	}

	out := c.search.Search(ctx, req)
	return resultsFrom(out.Results()), nil
}

// Ask searches the documentation and generates an answer to the question.
// Pass limit 0 for the default search result cap.
func (c *Client) Ask(ctx context.Context, question string, limit int) (Answer, error) {
	if !c.canAsk {
		return Answer{}, errors.New("specbot: LLM not configured (set LLMAPIKey)")
	}

	ans, err := c.ask.Ask(ctx, question, limit)
	if err != nil {
		return Answer{}, fmt.Errorf("ask: %w", err)
	}

	return Answer{
		Text:       ans.Text,
		Answered:   ans.Answered,
		Sources:    resultsFrom(ans.Sources),
		TokensUsed: ans.Summary.TotalTokens,
	}, nil
}

func resultsFrom(cands []candidate.Candidate) []Result {
	results := make([]Result, 0, len(cands))
	for _, cand := range cands {
		results = append(results, Result{
			ID:           cand.ID(),
			Title:        cand.Title(),
			URL:          cand.URL(),
			Excerpt:      cand.Excerpt(),
			Space:        cand.Space(),
			LastModified: cand.LastModified(),
			Strategy:     string(cand.Strategy()),
			Score:        cand.Score(),
		})
	}
	return results
}
