package service

import (
	"context"
	"encoding/json"
	"strings"

	"golang-broker-tracker/internal/entity"
	"golang-broker-tracker/internal/tracker/dto"
	"golang-broker-tracker/internal/tracker/repository"
	"golang-broker-tracker/pkg/logger"
)

// ExtractorService turns an article snippet into structured rating facts.
// Extraction failure is non-fatal by contract: provider errors and
// malformed model output both degrade to zero facts.
type ExtractorService interface {
	Extract(ctx context.Context, broker, title, description string) []dto.StockRatingFact
}

type extractorService struct {
	providers []repository.AIRepository
	logger    *logger.Logger
}

// NewExtractorService creates an ExtractorService over an ordered provider
// chain; the first provider to answer wins.
func NewExtractorService(log *logger.Logger, providers ...repository.AIRepository) ExtractorService {
	return &extractorService{
		providers: providers,
		logger:    log,
	}
}

// Extract builds one prompt and walks the provider chain with it. Each
// provider receives the identical payload; only request construction
// differs per provider.
func (s *extractorService) Extract(ctx context.Context, broker, title, description string) []dto.StockRatingFact {
	prompt := repository.BuildExtractRatingsPrompt(broker, title, description)

	for _, provider := range s.providers {
		raw, err := provider.Complete(ctx, prompt)
		if err != nil {
			s.logger.Warn("Extraction provider failed, trying next",
				logger.ErrorField(err),
				logger.StringField("provider", provider.Name()),
				logger.StringField("title", title),
			)
			continue
		}

		facts, err := s.parseFacts(raw)
		if err != nil {
			// A completion that is not a JSON list counts as zero facts,
			// not as a provider failure.
			s.logger.Warn("Malformed extraction output, treating as empty",
				logger.ErrorField(err),
				logger.StringField("provider", provider.Name()),
				logger.StringField("title", title),
			)
			return nil
		}
		return facts
	}

	s.logger.Warn("All extraction providers failed", logger.StringField("title", title))
	return nil
}

// parseFacts parses the model output as a JSON list and applies per-fact
// validation: a fact without a usable stock name is dropped, ratings are
// normalized into the canonical enum, and a non-positive target price is
// dropped to null. Facts are deduplicated by stock name, first kept.
func (s *extractorService) parseFacts(raw string) ([]dto.StockRatingFact, error) {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var rawFacts []dto.RawFact
	if err := json.Unmarshal([]byte(cleaned), &rawFacts); err != nil {
		return nil, err
	}

	var facts []dto.StockRatingFact
	seen := make(map[string]bool)
	for _, rf := range rawFacts {
		name := strings.TrimSpace(rf.StockName)
		if name == "" || name == "Unknown" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true

		price := rf.TargetPrice
		if price != nil && !price.IsPositive() {
			price = nil
		}

		facts = append(facts, dto.StockRatingFact{
			StockName:   name,
			Rating:      entity.NormalizeRating(rf.Rating),
			TargetPrice: price,
		})
	}

	return facts, nil
}
