package entity

// KnownStock is one canonical company identity from the exchange master
// list. Reference data: replaced in bulk, never created by the pipeline.
type KnownStock struct {
	Symbol      string `gorm:"primaryKey" json:"symbol"`
	CompanyName string `gorm:"not null" json:"company_name"`
	ISIN        string `gorm:"column:isin" json:"isin"`
}

// TableName specifies the table name for the KnownStock model.
func (KnownStock) TableName() string {
	return "known_stocks"
}
