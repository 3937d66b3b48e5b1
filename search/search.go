package search

import (
	"context"
	"errors"
	"fmt"
)

// MaxResults caps how many organic links a search returns.
const MaxResults = 10

// ErrSearchUnavailable is returned when the search API cannot produce results.
var ErrSearchUnavailable = errors.New("search unavailable")

type SearchResult struct {
	URL         string
	Title       string
	Description string
	Position    int
}

type SearchRequest struct {
	Query      string
	MaxResults int
}

type SearchEngine interface {
	Search(ctx context.Context, req *SearchRequest) ([]SearchResult, error)
}

// SearchError carries the keyword of a failed search. StatusCode is the
// non-200 status the API answered with, or 0 when no usable response arrived.
type SearchError struct {
	Keyword    string
	StatusCode int
	Err        error
}

func (e *SearchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("search for %q: API returned status %d", e.Keyword, e.StatusCode)
	}
	return fmt.Sprintf("search for %q: %v", e.Keyword, e.Err)
}

func (e *SearchError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrSearchUnavailable}
	}
	return []error{ErrSearchUnavailable, e.Err}
}

// HasStatus reports whether the API answered with a non-success status, as
// opposed to a transport or decoding failure.
func (e *SearchError) HasStatus() bool {
	return e.StatusCode != 0
}

// Links returns the result URLs in ranking order.
func Links(results []SearchResult) []string {
	links := make([]string, 0, len(results))
	for _, r := range results {
		links = append(links, r.URL)
	}
	return links
}
