package telegram

import (
	"fmt"
	"strings"
	"time"

	"golang-broker-tracker/internal/tracker/dto"
)

// FormatRunSummary formats an ingestion run summary into a Markdown string
// for Telegram.
func FormatRunSummary(summary *dto.RunSummary) string {
	var sb strings.Builder

	sb.WriteString("📊 *Broker Rating Ingestion*\n\n")
	sb.WriteString(fmt.Sprintf("🆔 *Run:* %d\n", summary.RunID))
	sb.WriteString(fmt.Sprintf("🕒 *Started:* %s\n", summary.StartedAt.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("⏱ *Duration:* %s\n", summary.FinishedAt.Sub(summary.StartedAt).Round(time.Second)))

	var icon string
	if summary.NewRatings > 0 {
		icon = "✅"
	} else {
		icon = "➖"
	}
	sb.WriteString(fmt.Sprintf("%s *New Ratings:* %d\n", icon, summary.NewRatings))

	sb.WriteString("\n*- - - - - Per Broker - - - - -*\n")
	for _, b := range summary.Brokers {
		sb.WriteString(fmt.Sprintf("\n🏦 *%s*\n", b.Broker))
		sb.WriteString(fmt.Sprintf("  📰 Articles: %d (skipped %d)\n", b.ArticlesFetched, b.ArticlesSkipped))
		sb.WriteString(fmt.Sprintf("  🧾 Facts: %d (rejected %d)\n", b.FactsExtracted, b.FactsRejected))
		sb.WriteString(fmt.Sprintf("  ⭐ New ratings: %d\n", b.NewRatings))
		if b.Errors > 0 {
			sb.WriteString(fmt.Sprintf("  ⚠️ Errors: %d\n", b.Errors))
		}
	}

	return sb.String()
}
