package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang-broker-tracker/internal/tracker/config"
	"golang-broker-tracker/pkg/logger"
	"golang-broker-tracker/pkg/ratelimit"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rssTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>results</title>%s</channel></rss>`

func rssItem(title, link, description string) string {
	return fmt.Sprintf(
		`<item><title>%s</title><link>%s</link><pubDate>Sun, 15 Jun 2025 08:30:00 GMT</pubDate><description>%s</description></item>`,
		title, link, description)
}

func newTestNewsRepository(cfg *config.Config, baseURL string) *googleNewsRepository {
	return &googleNewsRepository{
		cfg:            cfg,
		logger:         logger.NewNop(),
		parser:         gofeed.NewParser(),
		requestLimiter: ratelimit.NewRequestLimiter(600),
		baseURL:        baseURL,
	}
}

func TestGoogleNewsSearch(t *testing.T) {
	items := rssItem("Jefferies bullish on Tata Motors", "https://example.com/a?ved=2ahUKEwi", "Target 1100") +
		rssItem("Jefferies bullish on Tata Motors", "https://example.com/a?ved=other", "duplicate title and URL") +
		rssItem("Quarterly results preview", "https://example.com/b", "no broker mention") +
		rssItem("Broker views on Infosys", "https://example.com/c", "JP Morgan maintains overweight") +
		rssItem("Jefferies note", "https://scanx.trade/d", "blacklisted source")

	var queries []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprintf(w, rssTemplate, items)
	}))
	defer server.Close()

	cfg := &config.Config{}
	cfg.News.Language = "en"
	cfg.News.Country = "IN"
	cfg.News.BlacklistedSources = []string{"scanx.trade"}

	repo := newTestNewsRepository(cfg, server.URL)
	broker := config.Broker{
		Name:    "Jefferies",
		Queries: []string{"Jefferies stock rating", "Jefferies target price"},
	}

	results, err := repo.Search(context.Background(), broker, 1)
	require.NoError(t, err)

	// Two queries hit the endpoint, each carrying the lookback window.
	require.Len(t, queries, 2)
	assert.Equal(t, "Jefferies stock rating when:1d", queries[0])
	assert.Equal(t, "Jefferies target price when:1d", queries[1])

	// Only the Jefferies item survives: duplicates collapse, the unrelated
	// and JP Morgan items fail the broker token filter, the blacklisted
	// source is dropped.
	require.Len(t, results, 1)
	assert.Equal(t, "Jefferies bullish on Tata Motors", results[0].Title)
	assert.Equal(t, "https://example.com/a", results[0].URL)
	assert.Equal(t, "example.com", results[0].Source)
	assert.False(t, results[0].PublishedDate.IsZero())
}

func TestGoogleNewsSearchQueryFailureIsIsolated(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprintf(w, rssTemplate, rssItem("Kotak upgrades ITC", "https://example.com/itc", "Kotak note"))
	}))
	defer server.Close()

	cfg := &config.Config{}
	cfg.News.Language = "en"
	cfg.News.Country = "IN"

	repo := newTestNewsRepository(cfg, server.URL)
	broker := config.Broker{Name: "Kotak", Queries: []string{"first query", "second query"}}

	results, err := repo.Search(context.Background(), broker, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Kotak upgrades ITC", results[0].Title)
}
