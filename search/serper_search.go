package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

const DefaultSerperURL = "https://google.serper.dev/search"

type SerperSearchEngine struct {
	client  *http.Client
	logger  *zap.Logger
	apiURL  string
	apiKey  string
	country string
	page    int
}

type SerperOptions struct {
	APIURL  string
	APIKey  string
	Country string
	Page    int
}

type serperRequest struct {
	Q    string `json:"q"`
	Page int    `json:"page"`
	GL   string `json:"gl"`
}

type serperResponse struct {
	Organic []struct {
		Position int    `json:"position"`
		Title    string `json:"title"`
		Link     string `json:"link"`
		Snippet  string `json:"snippet"`
	} `json:"organic"`
}

func NewSerperSearchEngine(client *http.Client, logger *zap.Logger, opts SerperOptions) *SerperSearchEngine {
	if opts.APIURL == "" {
		opts.APIURL = DefaultSerperURL
	}
	if opts.Country == "" {
		opts.Country = "us"
	}
	if opts.Page == 0 {
		opts.Page = 10
	}
	return &SerperSearchEngine{
		client:  client,
		logger:  logger,
		apiURL:  opts.APIURL,
		apiKey:  opts.APIKey,
		country: opts.Country,
		page:    opts.Page,
	}
}

func (s *SerperSearchEngine) Search(ctx context.Context, req *SearchRequest) ([]SearchResult, error) {
	maxResults := req.MaxResults
	if maxResults <= 0 || maxResults > MaxResults {
		maxResults = MaxResults
	}

	body, err := json.Marshal(serperRequest{Q: req.Query, Page: s.page, GL: s.country})
	if err != nil {
		return nil, &SearchError{Keyword: req.Query, Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, &SearchError{Keyword: req.Query, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	httpReq.Header.Set("X-API-KEY", s.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, &SearchError{Keyword: req.Query, Err: fmt.Errorf("failed to make request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Error("search API returned non-success status",
			zap.String("keyword", req.Query),
			zap.Int("status_code", resp.StatusCode))
		return nil, &SearchError{Keyword: req.Query, StatusCode: resp.StatusCode}
	}

	var searchResp serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, &SearchError{Keyword: req.Query, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	results := make([]SearchResult, 0, maxResults)
	for _, item := range searchResp.Organic {
		if len(results) == maxResults {
			break
		}
		if item.Link == "" {
			continue
		}
		results = append(results, SearchResult{
			URL:         item.Link,
			Title:       item.Title,
			Description: item.Snippet,
			Position:    item.Position,
		})
	}

	s.logger.Info("top sites fetched",
		zap.String("keyword", req.Query),
		zap.Int("organic_count", len(searchResp.Organic)),
		zap.Int("result_count", len(results)))

	return results, nil
}
