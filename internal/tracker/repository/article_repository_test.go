package repository

import (
	"context"
	"testing"
	"time"

	"golang-broker-tracker/internal/entity"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.Article{}, &entity.Rating{}, &entity.KnownStock{}))
	return db
}

func TestArticleCreateOrGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewArticleRepository(db)
	ctx := context.Background()

	published := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)
	article := &entity.Article{
		Title:         "Jefferies bullish on Tata Motors",
		URL:           "https://example.com/story",
		PublishedDate: &published,
		Source:        "example.com",
		FetchedAt:     time.Now(),
	}

	created, err := repo.CreateOrGet(ctx, article)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, article.ID)

	// Same canonical URL again: no new row, the existing one comes back.
	duplicate := &entity.Article{
		Title:     "Different headline for the same story",
		URL:       "https://example.com/story",
		FetchedAt: time.Now(),
	}
	created, err = repo.CreateOrGet(ctx, duplicate)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, article.ID, duplicate.ID)
	assert.Equal(t, "Jefferies bullish on Tata Motors", duplicate.Title)

	var count int64
	require.NoError(t, db.Model(&entity.Article{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestArticleFindByURL(t *testing.T) {
	db := newTestDB(t)
	repo := NewArticleRepository(db)
	ctx := context.Background()

	_, err := repo.FindByURL(ctx, "https://example.com/missing")
	assert.Error(t, err)

	article := &entity.Article{Title: "t", URL: "https://example.com/present", FetchedAt: time.Now()}
	_, err = repo.CreateOrGet(ctx, article)
	require.NoError(t, err)

	found, err := repo.FindByURL(ctx, "https://example.com/present")
	require.NoError(t, err)
	assert.Equal(t, article.ID, found.ID)
}

func TestArticleUpdateRawContent(t *testing.T) {
	db := newTestDB(t)
	repo := NewArticleRepository(db)
	ctx := context.Background()

	article := &entity.Article{Title: "t", URL: "https://example.com/story", FetchedAt: time.Now()}
	_, err := repo.CreateOrGet(ctx, article)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateRawContent(ctx, article.ID, "full readable body"))

	found, err := repo.FindByURL(ctx, "https://example.com/story")
	require.NoError(t, err)
	assert.Equal(t, "full readable body", found.RawContent)
}
