package common

import "time"

const (
	// RedisKeyIngestionRunLock serializes ingestion runs across triggers.
	RedisKeyIngestionRunLock = "tracker.ingestion.run.lock"
	IngestionRunLockTTL      = 2 * time.Hour

	// DefaultBroker backfills rating rows that predate the broker column.
	DefaultBroker = "Jefferies"

	// DefaultCurrency denominates target prices.
	DefaultCurrency = "INR"
)
