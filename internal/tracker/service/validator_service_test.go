package service

import (
	"context"
	"testing"

	"golang-broker-tracker/internal/entity"
	"golang-broker-tracker/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKnownStockRepo struct {
	stocks   map[string]*entity.KnownStock
	searches []string
}

func (f *fakeKnownStockRepo) Search(ctx context.Context, term string) (*entity.KnownStock, error) {
	f.searches = append(f.searches, term)
	return f.stocks[term], nil
}

func (f *fakeKnownStockRepo) ReplaceAll(ctx context.Context, stocks []entity.KnownStock) error {
	return nil
}

func (f *fakeKnownStockRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.stocks)), nil
}

func TestValidateMatchesKnownStock(t *testing.T) {
	repo := &fakeKnownStockRepo{stocks: map[string]*entity.KnownStock{
		"Tata Motors Ltd": {Symbol: "TATAMOTORS", CompanyName: "Tata Motors Limited"},
	}}
	svc := NewValidatorService(repo, logger.NewNop())

	// Punctuation the model tends to emit is stripped before the lookup.
	stock, err := svc.Validate(context.Background(), "Tata Motors Ltd.")

	require.NoError(t, err)
	require.NotNil(t, stock)
	assert.Equal(t, "TATAMOTORS", stock.Symbol)
	assert.Equal(t, "Tata Motors Limited", stock.CompanyName)
}

func TestValidateUnknownStockIsRejected(t *testing.T) {
	repo := &fakeKnownStockRepo{stocks: map[string]*entity.KnownStock{}}
	svc := NewValidatorService(repo, logger.NewNop())

	stock, err := svc.Validate(context.Background(), "Some Hallucinated Corp")

	require.NoError(t, err)
	assert.Nil(t, stock)
}

func TestValidateEmptyNameSkipsLookup(t *testing.T) {
	repo := &fakeKnownStockRepo{stocks: map[string]*entity.KnownStock{}}
	svc := NewValidatorService(repo, logger.NewNop())

	stock, err := svc.Validate(context.Background(), "  .,  ")

	require.NoError(t, err)
	assert.Nil(t, stock)
	assert.Empty(t, repo.searches)
}

func TestValidateCachesHitsAndMisses(t *testing.T) {
	repo := &fakeKnownStockRepo{stocks: map[string]*entity.KnownStock{
		"Infosys": {Symbol: "INFY", CompanyName: "Infosys Limited"},
	}}
	svc := NewValidatorService(repo, logger.NewNop())

	for i := 0; i < 3; i++ {
		stock, err := svc.Validate(context.Background(), "Infosys")
		require.NoError(t, err)
		require.NotNil(t, stock)

		miss, err := svc.Validate(context.Background(), "Unlisted Corp")
		require.NoError(t, err)
		assert.Nil(t, miss)
	}

	assert.Len(t, repo.searches, 2)
}
