package repository

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"golang-broker-tracker/internal/tracker/config"
	"golang-broker-tracker/internal/tracker/dto"
	"golang-broker-tracker/pkg/logger"
	"golang-broker-tracker/pkg/ratelimit"
	"golang-broker-tracker/pkg/utils"

	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"
)

const defaultNewsBaseURL = "https://news.google.com/rss/search"

// NewsSearchRepository retrieves candidate articles for one broker by
// fanning out over its configured queries. Results are deduplicated within
// the call; no ordering is guaranteed.
type NewsSearchRepository interface {
	Search(ctx context.Context, broker config.Broker, lookbackDays int) ([]dto.NewsResult, error)
}

type googleNewsRepository struct {
	cfg            *config.Config
	logger         *logger.Logger
	parser         *gofeed.Parser
	requestLimiter *rate.Limiter
	baseURL        string
}

// NewGoogleNewsRepository creates a NewsSearchRepository backed by the
// Google News RSS search endpoint.
func NewGoogleNewsRepository(cfg *config.Config, log *logger.Logger) NewsSearchRepository {
	return &googleNewsRepository{
		cfg:            cfg,
		logger:         log,
		parser:         gofeed.NewParser(),
		requestLimiter: ratelimit.NewRequestLimiter(cfg.News.MaxRequestPerMinute),
		baseURL:        defaultNewsBaseURL,
	}
}

// Search runs every query for the broker. A single query's failure is
// logged and skipped; it never aborts the broker's retrieval.
func (r *googleNewsRepository) Search(ctx context.Context, broker config.Broker, lookbackDays int) ([]dto.NewsResult, error) {
	var results []dto.NewsResult
	seenURLs := make(map[string]bool)
	seenTitles := make(map[string]bool)

	for _, query := range broker.Queries {
		if err := r.requestLimiter.Wait(ctx); err != nil {
			return results, fmt.Errorf("failed to wait for request limit: %w", err)
		}

		feedURL := r.buildFeedURL(query, lookbackDays)
		feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			r.logger.Error("Failed to fetch news for query",
				logger.ErrorField(err),
				logger.StringField("broker", broker.Name),
				logger.StringField("query", query),
			)
			continue
		}

		for _, item := range feed.Items {
			result, ok := r.normalizeItem(item, broker)
			if !ok {
				continue
			}
			if seenURLs[result.URL] || seenTitles[result.Title] {
				continue
			}
			seenURLs[result.URL] = true
			seenTitles[result.Title] = true
			results = append(results, result)
		}
	}

	return results, nil
}

func (r *googleNewsRepository) buildFeedURL(query string, lookbackDays int) string {
	lang := r.cfg.News.Language
	country := r.cfg.News.Country
	q := url.QueryEscape(fmt.Sprintf("%s when:%dd", query, lookbackDays))
	return fmt.Sprintf("%s?q=%s&hl=%s-%s&gl=%s&ceid=%s:%s", r.baseURL, q, lang, country, country, country, lang)
}

// normalizeItem canonicalizes one feed item and applies the source
// blacklist and the broker token filter.
func (r *googleNewsRepository) normalizeItem(item *gofeed.Item, broker config.Broker) (dto.NewsResult, bool) {
	canonicalURL := utils.CanonicalizeURL(item.Link)
	title := utils.CleanToValidUTF8(item.Title)

	source := ""
	if parsed, err := url.Parse(canonicalURL); err == nil {
		source = parsed.Hostname()
	}
	if utils.ContainsAnyFold(source, r.cfg.News.BlacklistedSources) {
		r.logger.Debug("Skip news from blacklisted source", logger.StringField("source", source), logger.StringField("title", title))
		return dto.NewsResult{}, false
	}

	description := utils.CleanToValidUTF8(item.Description)
	if !utils.ContainsAnyFold(title+" "+description, broker.MatchTokens()) {
		return dto.NewsResult{}, false
	}

	publishedDate := r.resolvePublishedDate(item)

	return dto.NewsResult{
		Title:         title,
		URL:           canonicalURL,
		PublishedDate: publishedDate,
		Source:        source,
		Description:   description,
	}, true
}

// resolvePublishedDate falls back to "now" when the provider's date string
// cannot be parsed; an unparseable date never drops a result.
func (r *googleNewsRepository) resolvePublishedDate(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	now := time.Now()
	parsed, err := utils.ParseNewsDate(item.Published, now)
	if err != nil {
		r.logger.Debug("Failed to parse published date, using now",
			logger.StringField("raw_date", item.Published),
			logger.StringField("link", item.Link),
		)
		return now
	}
	return parsed
}
