package service

import (
	"context"
	"errors"

	"golang-broker-tracker/internal/tracker/repository"
	"golang-broker-tracker/pkg/logger"
)

// ErrEmptyMasterList guards the replace: a download that parses to zero
// rows would otherwise wipe the table and break all validation.
var ErrEmptyMasterList = errors.New("downloaded master list is empty")

// MasterListService refreshes the local securities master list from the
// exchange source.
type MasterListService interface {
	Refresh(ctx context.Context) (int, error)
}

type masterListService struct {
	masterListRepo repository.MasterListRepository
	knownStockRepo repository.KnownStockRepository
	logger         *logger.Logger
}

// NewMasterListService creates a new MasterListService.
func NewMasterListService(masterListRepo repository.MasterListRepository, knownStockRepo repository.KnownStockRepository, log *logger.Logger) MasterListService {
	return &masterListService{
		masterListRepo: masterListRepo,
		knownStockRepo: knownStockRepo,
		logger:         log,
	}
}

// Refresh downloads the equity list and replaces the known_stocks table
// with it. Returns the number of stocks loaded.
func (s *masterListService) Refresh(ctx context.Context) (int, error) {
	stocks, err := s.masterListRepo.Download(ctx)
	if err != nil {
		return 0, err
	}
	if len(stocks) == 0 {
		return 0, ErrEmptyMasterList
	}

	if err := s.knownStockRepo.ReplaceAll(ctx, stocks); err != nil {
		return 0, err
	}

	s.logger.Info("Master list refreshed", logger.IntField("stocks", len(stocks)))
	return len(stocks), nil
}
