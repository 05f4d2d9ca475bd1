package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeForSearch(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"Tata Motors Ltd.", "Tata Motors Ltd"},
		{"M&M", "M&M"},
		{"Larsen-Toubro", "Larsen Toubro"},
		{"  Infosys,  Limited  ", "Infosys Limited"},
		{"\"HDFC\" Bank's", "HDFC Banks"},
		{"...", ""},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, NormalizeForSearch(tc.input), "input %q", tc.input)
	}
}

func TestContainsAnyFold(t *testing.T) {
	tokens := []string{"JPMC", "JP Morgan", "J.P. Morgan"}

	assert.True(t, ContainsAnyFold("jp morgan raises target price", tokens))
	assert.True(t, ContainsAnyFold("Why JPMC stays bullish", tokens))
	assert.False(t, ContainsAnyFold("Goldman Sachs cuts rating", tokens))
	assert.False(t, ContainsAnyFold("anything", nil))
}
