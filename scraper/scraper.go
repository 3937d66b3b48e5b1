package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

var ErrScrapeFailed = errors.New("scrape failed")

// ScrapeError describes why a page produced no headings. StatusCode is set
// when the page answered with something other than 200.
type ScrapeError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *ScrapeError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("scrape %s: status code %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("scrape %s: %v", e.URL, e.Err)
}

func (e *ScrapeError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrScrapeFailed}
	}
	return []error{ErrScrapeFailed, e.Err}
}

// PageResult is the outcome of scraping one URL: headings when Err is nil,
// otherwise the reason the page was skipped.
type PageResult struct {
	URL      string
	Headings PageHeadings
	Err      error
}

func (r PageResult) OK() bool {
	return r.Err == nil
}

type Scraper struct {
	client *http.Client
	logger *zap.Logger
}

func NewScraper(client *http.Client, logger *zap.Logger) *Scraper {
	return &Scraper{
		client: client,
		logger: logger,
	}
}

// Scrape fetches url once and extracts its headings. It never returns an
// error; every failure is logged and reported through PageResult.Err.
func (s *Scraper) Scrape(ctx context.Context, url string) (result PageResult) {
	result.URL = url

	defer func() {
		if rec := recover(); rec != nil {
			result.Headings = nil
			result.Err = &ScrapeError{URL: url, Err: fmt.Errorf("panic: %v", rec)}
			s.logger.Error("Error scraping", zap.String("url", url), zap.Error(result.Err))
		}
	}()

	var (
		statusCode int
		headings   PageHeadings
		parseErr   error
	)

	c := colly.NewCollector(
		colly.StdlibContext(ctx),
		colly.DetectCharset(),
	)
	c.SetClient(s.client)

	// Plain GET: only the http.Client's own defaults go out.
	c.OnRequest(func(r *colly.Request) {
		r.Headers.Del("User-Agent")
		r.Headers.Del("Accept")
	})

	c.OnResponse(func(r *colly.Response) {
		statusCode = r.StatusCode
		if r.StatusCode != http.StatusOK {
			return
		}

		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(r.Body))
		if err != nil {
			parseErr = fmt.Errorf("failed to parse document: %w", err)
			return
		}
		headings = ExtractHeadings(doc)
	})

	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			statusCode = r.StatusCode
		}
	})

	visitErr := c.Visit(url)

	switch {
	case statusCode != 0 && statusCode != http.StatusOK:
		result.Err = &ScrapeError{URL: url, StatusCode: statusCode}
		s.logger.Warn("Failed to scrape",
			zap.String("url", url),
			zap.Int("status_code", statusCode))
	case visitErr != nil:
		result.Err = &ScrapeError{URL: url, Err: visitErr}
		s.logger.Error("Error scraping", zap.String("url", url), zap.Error(visitErr))
	case parseErr != nil:
		result.Err = &ScrapeError{URL: url, Err: parseErr}
		s.logger.Error("Error scraping", zap.String("url", url), zap.Error(parseErr))
	case headings == nil:
		result.Err = &ScrapeError{URL: url, Err: errors.New("no response received")}
		s.logger.Error("Error scraping", zap.String("url", url), zap.Error(result.Err))
	default:
		result.Headings = headings
		s.logger.Info("Scraped data",
			zap.String("url", url),
			zap.Int("h1_count", len(headings[HeadingTags[0]])),
			zap.Int("h2_count", len(headings[HeadingTags[1]])),
			zap.Int("h3_count", len(headings[HeadingTags[2]])))
	}

	return result
}

// ScrapeAll scrapes urls one after another and returns their results in the
// same order.
func (s *Scraper) ScrapeAll(ctx context.Context, urls []string) []PageResult {
	results := make([]PageResult, 0, len(urls))
	for _, url := range urls {
		results = append(results, s.Scrape(ctx, url))
	}
	return results
}
