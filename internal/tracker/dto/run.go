package dto

import "time"

// BrokerRunStats aggregates one broker's share of an ingestion run.
type BrokerRunStats struct {
	Broker          string `json:"broker"`
	ArticlesFetched int    `json:"articles_fetched"`
	ArticlesSkipped int    `json:"articles_skipped"`
	FactsExtracted  int    `json:"facts_extracted"`
	FactsRejected   int    `json:"facts_rejected"`
	NewRatings      int    `json:"new_ratings"`
	Errors          int    `json:"errors"`
}

// RunSummary is the terminal state of one ingestion run.
type RunSummary struct {
	RunID      uint             `json:"run_id"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	NewRatings int              `json:"new_ratings"`
	Brokers    []BrokerRunStats `json:"brokers"`
}
