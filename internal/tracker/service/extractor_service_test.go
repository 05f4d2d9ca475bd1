package service

import (
	"context"
	"errors"
	"testing"

	"golang-broker-tracker/internal/entity"
	"golang-broker-tracker/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAIProvider struct {
	name     string
	response string
	err      error
	prompts  []string
}

func (f *fakeAIProvider) Name() string { return f.name }

func (f *fakeAIProvider) Complete(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func TestExtractParsesFacts(t *testing.T) {
	provider := &fakeAIProvider{
		name:     "primary",
		response: `[{"stock_name": "Tata Motors", "rating": "Buy", "target_price": 1100}]`,
	}
	svc := NewExtractorService(logger.NewNop(), provider)

	facts := svc.Extract(context.Background(), "Jefferies", "Jefferies bullish on Tata Motors", "Target price 1100")

	require.Len(t, facts, 1)
	assert.Equal(t, "Tata Motors", facts[0].StockName)
	assert.Equal(t, entity.RatingBuy, facts[0].Rating)
	require.NotNil(t, facts[0].TargetPrice)
	assert.True(t, facts[0].TargetPrice.Equal(decimal.NewFromInt(1100)))
}

func TestExtractStripsCodeFences(t *testing.T) {
	provider := &fakeAIProvider{
		name:     "primary",
		response: "```json\n[{\"stock_name\": \"Infosys\", \"rating\": \"Hold\", \"target_price\": null}]\n```",
	}
	svc := NewExtractorService(logger.NewNop(), provider)

	facts := svc.Extract(context.Background(), "Jefferies", "t", "d")

	require.Len(t, facts, 1)
	assert.Equal(t, "Infosys", facts[0].StockName)
	assert.Nil(t, facts[0].TargetPrice)
}

func TestExtractFallsBackWithIdenticalPrompt(t *testing.T) {
	primary := &fakeAIProvider{name: "primary", err: errors.New("rate limited")}
	fallback := &fakeAIProvider{
		name:     "fallback",
		response: `[{"stock_name": "Infosys", "rating": "Hold"}]`,
	}
	svc := NewExtractorService(logger.NewNop(), primary, fallback)

	facts := svc.Extract(context.Background(), "Kotak", "Kotak on Infosys", "maintains hold")

	require.Len(t, facts, 1)
	require.Len(t, primary.prompts, 1)
	require.Len(t, fallback.prompts, 1)
	assert.Equal(t, primary.prompts[0], fallback.prompts[0])
}

func TestExtractAllProvidersFailing(t *testing.T) {
	primary := &fakeAIProvider{name: "primary", err: errors.New("down")}
	fallback := &fakeAIProvider{name: "fallback", err: errors.New("also down")}
	svc := NewExtractorService(logger.NewNop(), primary, fallback)

	facts := svc.Extract(context.Background(), "Jefferies", "t", "d")

	assert.Empty(t, facts)
}

func TestExtractMalformedOutputDoesNotFallBack(t *testing.T) {
	primary := &fakeAIProvider{name: "primary", response: "I could not find any ratings."}
	fallback := &fakeAIProvider{name: "fallback", response: `[{"stock_name": "X", "rating": "Buy"}]`}
	svc := NewExtractorService(logger.NewNop(), primary, fallback)

	facts := svc.Extract(context.Background(), "Jefferies", "t", "d")

	assert.Empty(t, facts)
	assert.Empty(t, fallback.prompts)
}

func TestExtractFactValidation(t *testing.T) {
	provider := &fakeAIProvider{
		name: "primary",
		response: `[
			{"stock_name": "", "rating": "Buy"},
			{"stock_name": "Unknown", "rating": "Buy"},
			{"stock_name": "Wipro", "rating": "Accumulate", "target_price": -250},
			{"stock_name": "wipro", "rating": "Sell", "target_price": 250},
			{"stock_name": "HDFC Bank", "rating": "Conviction List", "target_price": 0}
		]`,
	}
	svc := NewExtractorService(logger.NewNop(), provider)

	facts := svc.Extract(context.Background(), "Jefferies", "t", "d")

	require.Len(t, facts, 2)

	// Nameless and placeholder facts dropped, duplicate name keeps the
	// first occurrence, non-positive prices become absent.
	assert.Equal(t, "Wipro", facts[0].StockName)
	assert.Equal(t, entity.RatingBuy, facts[0].Rating)
	assert.Nil(t, facts[0].TargetPrice)

	assert.Equal(t, "HDFC Bank", facts[1].StockName)
	assert.Equal(t, entity.RatingUnknown, facts[1].Rating)
	assert.Nil(t, facts[1].TargetPrice)
}
