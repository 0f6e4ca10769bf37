package memory

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/match-analyzer/internal/domain/matchrecord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchRecordRepository_ListRecentOrder(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := NewMatchRecordRepository([]matchrecord.Record{
		{ID: 1, UpdatedAt: now.Add(-time.Hour)},
		{ID: 2, UpdatedAt: now},
		{ID: 3, UpdatedAt: now},
	})

	got, err := repo.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int64{3, 2, 1}, []int64{got[0].ID, got[1].ID, got[2].ID})

	got, err = repo.ListRecent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].ID)
}

func TestMatchRecordRepository_GetByIDReturnsCopy(t *testing.T) {
	t.Parallel()

	repo := NewMatchRecordRepository([]matchrecord.Record{{ID: 1, Data: []byte(`{}`)}})

	got, ok, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, ok)
	got.Data[0] = 'x'

	again, _, _ := repo.GetByID(context.Background(), 1)
	assert.Equal(t, `{}`, string(again.Data))

	_, ok, err = repo.GetByID(context.Background(), 99)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMatchRecordRepository_ListByIDs(t *testing.T) {
	t.Parallel()

	repo := NewMatchRecordRepository(SeedRecords())
	got, err := repo.ListByIDs(context.Background(), []int64{3, 42, 1, 3})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(3), got[0].ID)
	assert.Equal(t, int64(1), got[1].ID)
}

func TestSeedRecords_Decode(t *testing.T) {
	t.Parallel()

	parsed := matchrecord.ParseAll(SeedRecords())
	require.Len(t, parsed, 3)

	assert.Equal(t, "Persija Jakarta", parsed[0].HomeTeamName)
	assert.Equal(t, "Persib Bandung", parsed[0].AwayTeamName)
	assert.Equal(t, "Arsenal", parsed[1].HomeTeamName)
	assert.Equal(t, "Chelsea", parsed[1].AwayTeamName)
	assert.Equal(t, "Galatasaray", parsed[2].HomeTeamName)
	assert.Equal(t, matchrecord.NameFromH2HSummary, parsed[2].HomeNameFrom)
}
