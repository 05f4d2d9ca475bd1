package repository

import (
	"context"

	"golang-broker-tracker/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ArticleRepository defines the interface for interacting with article data.
type ArticleRepository interface {
	CreateOrGet(ctx context.Context, article *entity.Article) (bool, error)
	UpdateRawContent(ctx context.Context, id uint, content string) error
	FindByURL(ctx context.Context, url string) (*entity.Article, error)
}

// NewArticleRepository creates a new instance of ArticleRepository.
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

type articleRepository struct {
	db *gorm.DB
}

// CreateOrGet inserts the article, or resolves the existing row when its
// canonical URL was already seen. The "already seen" path is expected, not
// an error; either way the article's ID is populated on return. The bool
// reports whether a new row was created.
func (r *articleRepository) CreateOrGet(ctx context.Context, article *entity.Article) (bool, error) {
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "url"}},
		DoNothing: true,
	}).Create(article)
	if tx.Error != nil {
		return false, tx.Error
	}

	if tx.RowsAffected == 0 {
		var existing entity.Article
		if err := r.db.WithContext(ctx).Where("url = ?", article.URL).First(&existing).Error; err != nil {
			return false, err
		}
		*article = existing
		return false, nil
	}

	return true, nil
}

// UpdateRawContent stores the fetched readable body on an existing row.
func (r *articleRepository) UpdateRawContent(ctx context.Context, id uint, content string) error {
	return r.db.WithContext(ctx).Model(&entity.Article{}).
		Where("id = ?", id).
		Update("raw_content", content).Error
}

// FindByURL retrieves an article by its canonical URL.
func (r *articleRepository) FindByURL(ctx context.Context, url string) (*entity.Article, error) {
	var article entity.Article
	if err := r.db.WithContext(ctx).Where("url = ?", url).First(&article).Error; err != nil {
		return nil, err
	}
	return &article, nil
}
