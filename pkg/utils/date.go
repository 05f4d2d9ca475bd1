package utils

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"
)

var absoluteLayouts = []string{
	time.RFC1123,
	time.RFC1123Z,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02 Jan 2006",
	"Jan 2, 2006",
}

// ParseNewsDate parses the free-form date strings the news provider emits,
// both absolute ("Mon, 02 Jan 2006 15:04:05 GMT") and relative
// ("5 hours ago", "Yesterday"). now anchors the relative forms.
func ParseNewsDate(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}

	for _, layout := range absoluteLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}

	if t, ok := parseRelativeDate(raw, now); ok {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("unparseable date string: %q", raw)
}

func parseRelativeDate(raw string, now time.Time) (time.Time, bool) {
	lower := strings.ToLower(raw)

	switch lower {
	case "just now", "now", "today":
		return now, true
	case "yesterday":
		return now.AddDate(0, 0, -1), true
	}

	// "<n> <unit> ago"
	fields := strings.Fields(lower)
	if len(fields) != 3 || fields[2] != "ago" {
		return time.Time{}, false
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return time.Time{}, false
	}

	switch strings.TrimSuffix(fields[1], "s") {
	case "second", "sec":
		return now.Add(-time.Duration(n) * time.Second), true
	case "minute", "min":
		return now.Add(-time.Duration(n) * time.Minute), true
	case "hour", "hr":
		return now.Add(-time.Duration(n) * time.Hour), true
	case "day":
		return now.AddDate(0, 0, -n), true
	case "week":
		return now.AddDate(0, 0, -7*n), true
	case "month":
		return now.AddDate(0, -n, 0), true
	}

	return time.Time{}, false
}

// TimeNowIST returns the current time in the Indian market timezone.
func TimeNowIST() time.Time {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		log.Fatal("Failed to load location", err)
	}
	return time.Now().In(loc)
}
