package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/match-analyzer/internal/domain/matchrecord"
	matchrecordmock "github.com/riskibarqy/match-analyzer/internal/mocks/domain/matchrecord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMatchRecordRepository_GetByIDCachesMisses(t *testing.T) {
	t.Parallel()

	next := matchrecordmock.NewRepository(t)
	next.On("GetByID", mock.Anything, int64(5)).Return(matchrecord.Record{}, false, nil).Once()

	repo := NewMatchRecordRepository(next, time.Minute, 0)
	for i := 0; i < 3; i++ {
		_, ok, err := repo.GetByID(context.Background(), 5)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestMatchRecordRepository_GetByIDReturnsCopies(t *testing.T) {
	t.Parallel()

	next := matchrecordmock.NewRepository(t)
	next.On("GetByID", mock.Anything, int64(1)).Return(matchrecord.Record{ID: 1, Data: []byte(`{}`)}, true, nil).Once()

	repo := NewMatchRecordRepository(next, time.Minute, 0)
	first, ok, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, ok)
	first.Data[0] = 'x'

	second, _, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(second.Data))
}

func TestMatchRecordRepository_ListByIDsKeyIgnoresOrder(t *testing.T) {
	t.Parallel()

	next := matchrecordmock.NewRepository(t)
	next.On("ListByIDs", mock.Anything, []int64{2, 1}).Return([]matchrecord.Record{{ID: 1}, {ID: 2}}, nil).Once()

	repo := NewMatchRecordRepository(next, time.Minute, 0)
	got, err := repo.ListByIDs(context.Background(), []int64{2, 1})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = repo.ListByIDs(context.Background(), []int64{1, 2})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestMatchRecordRepository_ErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	next := matchrecordmock.NewRepository(t)
	next.On("ListRecent", mock.Anything, 10).Return(nil, errors.New("db down")).Once()
	next.On("ListRecent", mock.Anything, 10).Return([]matchrecord.Record{{ID: 1}}, nil).Once()

	repo := NewMatchRecordRepository(next, time.Minute, 0)
	_, err := repo.ListRecent(context.Background(), 10)
	require.Error(t, err)

	got, err := repo.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
