package repository

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang-broker-tracker/pkg/logger"
	"golang-broker-tracker/pkg/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/mauidude/go-readability"
)

// ContentRepository fetches an article page and extracts its readable text,
// used to enrich stored articles beyond the search snippet.
type ContentRepository interface {
	FetchReadable(ctx context.Context, url string) (string, error)
}

type contentRepository struct {
	client *http.Client
	logger *logger.Logger
}

// NewContentRepository creates a new ContentRepository.
func NewContentRepository(log *logger.Logger) ContentRepository {
	return &contentRepository{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: log,
	}
}

// FetchReadable downloads the page and strips it down to plain text.
func (r *contentRepository) FetchReadable(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request for article content: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch article content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch article content, status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	doc, err := readability.NewDocument(string(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse article content: %w", err)
	}

	docHTML, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte(doc.Content())))
	if err != nil {
		return "", fmt.Errorf("failed to parse article content: %w", err)
	}

	content := strings.TrimSpace(docHTML.Text())
	content = strings.Join(strings.Fields(content), " ")
	return utils.CleanToValidUTF8(content), nil
}
