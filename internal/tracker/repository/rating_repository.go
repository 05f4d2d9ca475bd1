package repository

import (
	"context"
	"errors"

	"golang-broker-tracker/internal/entity"
	"golang-broker-tracker/internal/tracker/dto"
	"golang-broker-tracker/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RatingRepository defines the interface for interacting with rating data.
type RatingRepository interface {
	CreateIfAbsent(ctx context.Context, rating *entity.Rating) (bool, error)
	ExistsForArticleBroker(ctx context.Context, articleID uint, broker string) (bool, error)
	FindWithArticles(ctx context.Context, broker string, limit int) ([]dto.RatingWithArticle, error)
}

type ratingRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewRatingRepository creates a new instance of RatingRepository.
func NewRatingRepository(db *gorm.DB, log *logger.Logger) RatingRepository {
	return &ratingRepository{db: db, logger: log}
}

// CreateIfAbsent inserts the rating unless a row already exists for the
// same (article_id, stock_name, broker). Returns whether a row was created.
// The unique index backs this up against concurrent writers.
func (r *ratingRepository) CreateIfAbsent(ctx context.Context, rating *entity.Rating) (bool, error) {
	var existing entity.Rating
	err := r.db.WithContext(ctx).
		Where("article_id = ? AND stock_name = ? AND broker = ?", rating.ArticleID, rating.StockName, rating.Broker).
		First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "article_id"}, {Name: "stock_name"}, {Name: "broker"}},
		DoNothing: true,
	}).Create(rating)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

// ExistsForArticleBroker reports whether any rating exists for the article
// and broker pair. Used as the coarse re-analysis guard.
func (r *ratingRepository) ExistsForArticleBroker(ctx context.Context, articleID uint, broker string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Rating{}).
		Where("article_id = ? AND broker = ?", articleID, broker).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindWithArticles returns ratings joined to their source articles, newest
// entries first. broker filters when non-empty.
func (r *ratingRepository) FindWithArticles(ctx context.Context, broker string, limit int) ([]dto.RatingWithArticle, error) {
	var rows []dto.RatingWithArticle

	q := r.db.WithContext(ctx).
		Table("stock_ratings r").
		Select("r.id, r.entry_date, r.stock_name, r.stock_ticker, r.rating, r.broker, r.target_price, r.currency, a.title, a.source, a.published_date, a.url").
		Joins("JOIN news_articles a ON a.id = r.article_id").
		Order("r.entry_date DESC, r.id DESC")

	if broker != "" {
		q = q.Where("r.broker = ?", broker)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
