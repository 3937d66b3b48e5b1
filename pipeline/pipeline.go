package pipeline

import (
	"context"
	"fmt"
	"time"

	"contentbrief/pkg/metrics"
	"contentbrief/scraper"
	"contentbrief/search"

	"go.uber.org/zap"
)

type Stage string

const (
	StageSearch Stage = "search"
	StageBrief  Stage = "brief"
)

// StageError reports which stage aborted a run.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

type PageScraper interface {
	ScrapeAll(ctx context.Context, urls []string) []scraper.PageResult
}

type BriefComposer interface {
	Compose(ctx context.Context, keyword string, headings scraper.ConsolidatedHeadings) (string, error)
}

type Pipeline struct {
	search   search.SearchEngine
	scraper  PageScraper
	composer BriefComposer
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

func New(engine search.SearchEngine, pageScraper PageScraper, composer BriefComposer, logger *zap.Logger, m *metrics.Metrics) *Pipeline {
	return &Pipeline{
		search:   engine,
		scraper:  pageScraper,
		composer: composer,
		logger:   logger,
		metrics:  m,
	}
}

// Run searches for keyword, scrapes the result pages one at a time and asks
// the composer for a brief. Only the search and brief stages can fail;
// pages that cannot be scraped are skipped.
func (p *Pipeline) Run(ctx context.Context, keyword string) (string, error) {
	start := time.Now()
	defer func() {
		p.metrics.PipelineDuration.Observe(time.Since(start).Seconds())
	}()

	results, err := p.search.Search(ctx, &search.SearchRequest{Query: keyword, MaxResults: search.MaxResults})
	p.metrics.SearchRequestsTotal.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		p.logger.Error("Error fetching top sites", zap.String("keyword", keyword), zap.Error(err))
		return "", &StageError{Stage: StageSearch, Err: err}
	}
	links := search.Links(results)

	pages := p.scraper.ScrapeAll(ctx, links)
	for _, page := range pages {
		p.metrics.PageScrapesTotal.WithLabelValues(metrics.Outcome(page.Err)).Inc()
	}
	consolidated := scraper.Consolidate(pages)
	p.logger.Info("Data scraped for all sites",
		zap.String("keyword", keyword),
		zap.Int("links", len(links)),
		zap.Int("scraped", countOK(pages)))

	brief, err := p.composer.Compose(ctx, keyword, consolidated)
	p.metrics.BriefsTotal.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		return "", &StageError{Stage: StageBrief, Err: err}
	}

	return brief, nil
}

func countOK(pages []scraper.PageResult) int {
	n := 0
	for _, page := range pages {
		if page.OK() {
			n++
		}
	}
	return n
}
