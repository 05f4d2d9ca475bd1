package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNewsDate(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{
			name:     "rfc1123 with zone name",
			input:    "Sun, 15 Jun 2025 08:30:00 GMT",
			expected: time.Date(2025, 6, 15, 8, 30, 0, 0, time.UTC),
		},
		{
			name:     "plain date",
			input:    "2025-06-14",
			expected: time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "hours ago",
			input:    "5 hours ago",
			expected: now.Add(-5 * time.Hour),
		},
		{
			name:     "single minute ago",
			input:    "1 minute ago",
			expected: now.Add(-time.Minute),
		},
		{
			name:     "days ago",
			input:    "2 days ago",
			expected: now.AddDate(0, 0, -2),
		},
		{
			name:     "yesterday",
			input:    "Yesterday",
			expected: now.AddDate(0, 0, -1),
		},
		{
			name:     "just now",
			input:    "just now",
			expected: now,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseNewsDate(tc.input, now)
			require.NoError(t, err)
			assert.True(t, tc.expected.Equal(got), "expected %s, got %s", tc.expected, got)
		})
	}
}

func TestParseNewsDateRejectsGarbage(t *testing.T) {
	now := time.Now()

	for _, input := range []string{"", "not a date", "soon", "three hours ago"} {
		_, err := ParseNewsDate(input, now)
		assert.Error(t, err, "input %q", input)
	}
}
