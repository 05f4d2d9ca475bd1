package entity

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// RunStatus is the lifecycle state of one ingestion run.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// IngestionRun records one end-to-end pipeline invocation: which brokers
// were processed and how many new ratings came out of it.
type IngestionRun struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Status     RunStatus      `gorm:"not null" json:"status"`
	Brokers    pq.StringArray `gorm:"type:text[]" json:"brokers"`
	NewRatings int            `json:"new_ratings"`
	Stats      datatypes.JSON `gorm:"type:jsonb" json:"stats"`
	StartedAt  time.Time      `gorm:"not null" json:"started_at"`
	FinishedAt *time.Time     `json:"finished_at,omitempty"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the IngestionRun model.
func (IngestionRun) TableName() string {
	return "ingestion_runs"
}
