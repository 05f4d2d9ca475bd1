package entity

import "time"

// Article represents a single news article sighted by the retriever. Rows
// are created on first sighting, keyed by canonical URL, and never mutated.
type Article struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Title         string     `gorm:"not null" json:"title"`
	URL           string     `gorm:"unique;not null" json:"url"`
	PublishedDate *time.Time `json:"published_date,omitempty"`
	Source        string     `json:"source"`
	RawContent    string     `json:"raw_content"`
	FetchedAt     time.Time  `gorm:"not null" json:"fetched_at"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the Article model.
func (Article) TableName() string {
	return "news_articles"
}
