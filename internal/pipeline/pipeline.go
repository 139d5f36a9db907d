// Package pipeline runs a scrape from URL to report.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/lifelines/internal/cache"
	"github.com/ppiankov/lifelines/internal/extract"
	"github.com/ppiankov/lifelines/internal/model"
	"github.com/ppiankov/lifelines/internal/narrate"
	"github.com/ppiankov/lifelines/internal/normalize"
	"github.com/ppiankov/lifelines/internal/stats"
	"github.com/ppiankov/lifelines/internal/table"
	"github.com/ppiankov/lifelines/internal/util"
	"github.com/ppiankov/lifelines/internal/worker"
)

// Pipeline orchestrates fetch, extraction, normalization and statistics.
// Stages run one after another; there is one network fetch at most.
type Pipeline struct {
	config     *model.Config
	fetcher    *Fetcher
	robots     *util.RobotsChecker // nil when robots.txt is ignored
	limiter    *worker.Limiter
	cache      *cache.LayeredCache // nil when caching is disabled
	normalizer *normalize.Normalizer
	narrator   *narrate.Narrator // nil when narration is disabled
	logger     *zap.Logger
	noCache    bool
	now        func() time.Time
}

// Option customizes a Pipeline
type Option func(*Pipeline)

// WithNarrator attaches a narrator used after statistics are computed
func WithNarrator(n *narrate.Narrator) Option {
	return func(p *Pipeline) { p.narrator = n }
}

// WithNoCache skips the cache lookup. The fetched page is still stored.
func WithNoCache(skip bool) Option {
	return func(p *Pipeline) { p.noCache = skip }
}

// WithClock overrides the time source used for FetchedAt
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config, logger *zap.Logger, opts ...Option) (*Pipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	fetcher, err := NewFetcher(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes, cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy)
	if err != nil {
		return nil, fmt.Errorf("create fetcher: %w", err)
	}

	p := &Pipeline{
		config:     cfg,
		fetcher:    fetcher,
		limiter:    worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize),
		normalizer: normalize.NewNormalizer(logger),
		logger:     logger,
		now:        time.Now,
	}
	if cfg.HTTP.RespectRobots {
		p.robots = util.NewRobotsChecker(cfg.HTTP.UserAgent, fetcher.Client(), cfg.HTTP.Timeout)
	}
	if cfg.Cache.Enabled {
		p.cache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.TTL)
	}

	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Run scrapes rawURL and returns the report. Failing to obtain the table
// returns a *FetchError; row-level problems are collected on the report.
func (p *Pipeline) Run(ctx context.Context, rawURL string) (*model.Report, error) {
	page, err := p.loadPage(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	grid, err := table.ReadFirst(string(page.HTML), p.config.Source.TableClass)
	if err != nil {
		return nil, &FetchError{Op: "table", URL: rawURL, Err: err}
	}

	cells, header, err := grid.Column(p.config.Source.NameColumn)
	if err != nil {
		return nil, &FetchError{Op: "column", URL: rawURL, Err: err}
	}
	p.logger.Debug("table read",
		zap.String("column", header),
		zap.Int("rows", len(cells)))

	cells, headerRows := extract.FilterHeader(cells, header, p.config.Source.HeaderText)

	fields, issues := extract.ExtractAll(cells)
	for _, issue := range issues {
		p.logger.Debug("extraction issue",
			zap.Int("row", issue.Row),
			zap.String("text", issue.Text),
			zap.String("detail", issue.Detail))
	}

	result := p.normalizer.Normalize(fields)

	report := &model.Report{
		Subject:           page.Subject,
		SourceURL:         page.FinalURL,
		FetchedAt:         p.now().UTC(),
		FromCache:         page.FromCache,
		FetchMeta:         page.Meta,
		Records:           result.Records,
		Issues:            append(issues, result.Issues...),
		Conflicts:         result.Conflicts,
		DuplicatesRemoved: result.DuplicatesRemoved,
		HeaderRowsDropped: headerRows,
		Summary:           stats.Summarize(result.Records),
	}

	// Narration runs last and only reads the finished records
	if p.narrator.IsEnabled() {
		report.Narrative = p.narrator.Narrate(ctx, report.Subject, report.Records, report.Summary)
	}

	return report, nil
}

// loadedPage is the HTML the rest of the pipeline parses
type loadedPage struct {
	FetchResult
	FromCache bool
}

// loadPage returns the stored copy when there is one for rawURL. Otherwise
// it fetches the page, stores it with its URL, and returns what was read
// back from the store.
func (p *Pipeline) loadPage(ctx context.Context, rawURL string) (*loadedPage, error) {
	key := p.cacheKey(rawURL)

	if p.cache != nil && !p.noCache {
		if html, ok := p.cache.GetFor(key, rawURL); ok {
			p.logger.Debug("page loaded from cache", zap.String("path", p.cache.Path(key)))
			return &loadedPage{
				FetchResult: FetchResult{HTML: html, Subject: extractSubject(rawURL), FinalURL: rawURL},
				FromCache:   true,
			}, nil
		}
		if _, ok := p.cache.Get(key); ok {
			// The stored page was fetched for another URL
			p.logger.Debug("discarding cached page", zap.String("path", p.cache.Path(key)), zap.String("url", rawURL))
			if err := p.cache.Delete(key); err != nil {
				return nil, &FetchError{Op: "cache", URL: rawURL, Err: err}
			}
		}
	}

	if p.robots != nil {
		delay, err := p.robots.Check(ctx, rawURL)
		if err != nil {
			return nil, &FetchError{Op: "robots", URL: rawURL, Err: err}
		}
		if err := p.limiter.SetCrawlDelay(rawURL, delay); err != nil {
			return nil, &FetchError{Op: "robots", URL: rawURL, Err: err}
		}
	}

	if err := p.limiter.Wait(ctx, rawURL); err != nil {
		return nil, &FetchError{Op: "fetch", URL: rawURL, Err: err}
	}

	p.logger.Debug("fetching", zap.String("url", rawURL))
	fetched, err := p.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, &FetchError{Op: "fetch", URL: rawURL, Err: err}
	}

	if p.cache == nil {
		return &loadedPage{FetchResult: *fetched}, nil
	}

	if err := p.cache.SetFor(key, rawURL, fetched.HTML, p.config.Cache.TTL); err != nil {
		return nil, &FetchError{Op: "cache", URL: rawURL, Err: err}
	}
	stored, ok := p.cache.GetFor(key, rawURL)
	if !ok {
		return nil, &FetchError{Op: "cache", URL: rawURL, Err: errors.New("stored page could not be read back")}
	}
	p.logger.Debug("page stored", zap.String("path", p.cache.Path(key)), zap.Int("bytes", len(stored)))

	fetched.HTML = stored
	return &loadedPage{FetchResult: *fetched}, nil
}

func (p *Pipeline) cacheKey(rawURL string) string {
	if p.config.Cache.File != "" {
		return p.config.Cache.File
	}
	return cache.CacheKey(rawURL)
}

// CachePath returns where the page for rawURL is stored, or "" when
// caching is disabled
func (p *Pipeline) CachePath(rawURL string) string {
	if p.cache == nil {
		return ""
	}
	return p.cache.Path(p.cacheKey(rawURL))
}

// ClearCache removes every stored page, or does nothing when caching is
// disabled
func (p *Pipeline) ClearCache() error {
	if p.cache == nil {
		return nil
	}
	return p.cache.Clear()
}
