package service

import (
	"context"
	"errors"
	"testing"

	"golang-broker-tracker/internal/entity"
	"golang-broker-tracker/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMasterListRepo struct {
	stocks []entity.KnownStock
	err    error
}

func (f *fakeMasterListRepo) Download(ctx context.Context) ([]entity.KnownStock, error) {
	return f.stocks, f.err
}

type recordingKnownStockRepo struct {
	fakeKnownStockRepo
	replaced [][]entity.KnownStock
}

func (r *recordingKnownStockRepo) ReplaceAll(ctx context.Context, stocks []entity.KnownStock) error {
	r.replaced = append(r.replaced, stocks)
	return nil
}

func TestMasterListRefresh(t *testing.T) {
	download := &fakeMasterListRepo{stocks: []entity.KnownStock{
		{Symbol: "TATAMOTORS", CompanyName: "Tata Motors Limited"},
		{Symbol: "INFY", CompanyName: "Infosys Limited"},
	}}
	store := &recordingKnownStockRepo{}
	svc := NewMasterListService(download, store, logger.NewNop())

	count, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, store.replaced, 1)
	assert.Len(t, store.replaced[0], 2)
}

func TestMasterListRefreshRejectsEmptyDownload(t *testing.T) {
	store := &recordingKnownStockRepo{}
	svc := NewMasterListService(&fakeMasterListRepo{}, store, logger.NewNop())

	_, err := svc.Refresh(context.Background())
	require.ErrorIs(t, err, ErrEmptyMasterList)
	assert.Empty(t, store.replaced)
}

func TestMasterListRefreshPropagatesDownloadError(t *testing.T) {
	store := &recordingKnownStockRepo{}
	svc := NewMasterListService(&fakeMasterListRepo{err: errors.New("blocked")}, store, logger.NewNop())

	_, err := svc.Refresh(context.Background())
	assert.Error(t, err)
	assert.Empty(t, store.replaced)
}
