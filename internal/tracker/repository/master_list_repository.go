package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang-broker-tracker/internal/entity"
	"golang-broker-tracker/internal/tracker/config"
	"golang-broker-tracker/pkg/logger"
)

// MasterListRepository downloads the exchange's published equity list.
type MasterListRepository interface {
	Download(ctx context.Context) ([]entity.KnownStock, error)
}

type masterListRepository struct {
	client *http.Client
	cfg    *config.Config
	logger *logger.Logger
}

// NewMasterListRepository creates a new instance of MasterListRepository.
func NewMasterListRepository(cfg *config.Config, log *logger.Logger) MasterListRepository {
	return &masterListRepository{
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		cfg:    cfg,
		logger: log,
	}
}

// Download fetches the equity CSV and parses (symbol, company name, ISIN)
// triples. Column headers carry stray whitespace in the published file, so
// they are trimmed before matching.
func (r *masterListRepository) Download(ctx context.Context) ([]entity.KnownStock, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", r.cfg.MasterList.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for master list: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch master list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch master list, status code: %d", resp.StatusCode)
	}

	return parseEquityCSV(resp.Body)
}

func parseEquityCSV(body io.Reader) ([]entity.KnownStock, error) {
	reader := csv.NewReader(body)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read master list header: %w", err)
	}

	symbolIdx, nameIdx, isinIdx := -1, -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case "SYMBOL":
			symbolIdx = i
		case "NAME OF COMPANY":
			nameIdx = i
		case "ISIN NUMBER":
			isinIdx = i
		}
	}
	if symbolIdx < 0 || nameIdx < 0 || isinIdx < 0 {
		return nil, fmt.Errorf("master list is missing expected columns, got: %v", header)
	}

	var stocks []entity.KnownStock
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read master list row: %w", err)
		}
		if len(record) <= symbolIdx || len(record) <= nameIdx || len(record) <= isinIdx {
			continue
		}
		symbol := strings.TrimSpace(record[symbolIdx])
		if symbol == "" {
			continue
		}
		stocks = append(stocks, entity.KnownStock{
			Symbol:      symbol,
			CompanyName: strings.TrimSpace(record[nameIdx]),
			ISIN:        strings.TrimSpace(record[isinIdx]),
		})
	}

	return stocks, nil
}
