package service

import (
	"context"
	"strings"
	"time"

	"golang-broker-tracker/internal/entity"
	"golang-broker-tracker/internal/tracker/repository"
	"golang-broker-tracker/pkg/logger"
	"golang-broker-tracker/pkg/utils"

	"github.com/patrickmn/go-cache"
)

// ValidatorService maps a raw extracted company name onto a canonical
// master-list entry. No match means the fact is discarded upstream:
// precision over recall, unvalidated names never become ratings.
type ValidatorService interface {
	Validate(ctx context.Context, rawName string) (*entity.KnownStock, error)
}

type validatorService struct {
	knownStockRepo repository.KnownStockRepository
	logger         *logger.Logger
	inmemoryCache  *cache.Cache
}

// NewValidatorService creates a new ValidatorService.
func NewValidatorService(knownStockRepo repository.KnownStockRepository, log *logger.Logger) ValidatorService {
	return &validatorService{
		knownStockRepo: knownStockRepo,
		logger:         log,
		inmemoryCache:  cache.New(5*time.Minute, 10*time.Minute),
	}
}

// Validate strips punctuation that breaks the phrase match, consults the
// master list and memoizes the outcome, misses included.
func (s *validatorService) Validate(ctx context.Context, rawName string) (*entity.KnownStock, error) {
	term := utils.NormalizeForSearch(rawName)
	if term == "" {
		return nil, nil
	}

	cacheKey := strings.ToLower(term)
	if cached, found := s.inmemoryCache.Get(cacheKey); found {
		stock, _ := cached.(*entity.KnownStock)
		return stock, nil
	}

	stock, err := s.knownStockRepo.Search(ctx, term)
	if err != nil {
		s.logger.Error("Master list lookup failed", logger.ErrorField(err), logger.StringField("raw_name", rawName))
		return nil, err
	}

	s.inmemoryCache.Set(cacheKey, stock, cache.DefaultExpiration)

	if stock == nil {
		s.logger.Info("Skipped unknown stock", logger.StringField("raw_name", rawName), logger.StringField("search_term", term))
	}
	return stock, nil
}
