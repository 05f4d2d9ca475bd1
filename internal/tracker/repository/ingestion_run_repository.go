package repository

import (
	"context"

	"golang-broker-tracker/internal/entity"

	"gorm.io/gorm"
)

// IngestionRunRepository defines the interface for run bookkeeping.
type IngestionRunRepository interface {
	Create(ctx context.Context, run *entity.IngestionRun) error
	Update(ctx context.Context, run *entity.IngestionRun) error
	FindRecent(ctx context.Context, limit int) ([]entity.IngestionRun, error)
}

type ingestionRunRepository struct {
	db *gorm.DB
}

// NewIngestionRunRepository creates a new instance of IngestionRunRepository.
func NewIngestionRunRepository(db *gorm.DB) IngestionRunRepository {
	return &ingestionRunRepository{db: db}
}

func (r *ingestionRunRepository) Create(ctx context.Context, run *entity.IngestionRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *ingestionRunRepository) Update(ctx context.Context, run *entity.IngestionRun) error {
	return r.db.WithContext(ctx).Save(run).Error
}

// FindRecent returns the latest runs, newest first.
func (r *ingestionRunRepository) FindRecent(ctx context.Context, limit int) ([]entity.IngestionRun, error) {
	var runs []entity.IngestionRun
	q := r.db.WithContext(ctx).Order("started_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}
