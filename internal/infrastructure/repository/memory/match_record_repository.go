package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/match-analyzer/internal/domain/matchrecord"
)

type MatchRecordRepository struct {
	mu    sync.RWMutex
	items map[int64]matchrecord.Record
	order []int64
}

// NewMatchRecordRepository keeps records ordered by UpdatedAt descending, ties
// broken by higher id first, the same order the SQL store returns.
func NewMatchRecordRepository(records []matchrecord.Record) *MatchRecordRepository {
	items := make(map[int64]matchrecord.Record, len(records))
	for _, record := range records {
		items[record.ID] = cloneRecord(record)
	}

	order := make([]int64, 0, len(items))
	for id := range items {
		order = append(order, id)
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := items[order[i]], items[order[j]]
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.After(b.UpdatedAt)
		}
		return a.ID > b.ID
	})

	return &MatchRecordRepository{
		items: items,
		order: order,
	}
}

func (r *MatchRecordRepository) ListRecent(_ context.Context, limit int) ([]matchrecord.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.order)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]matchrecord.Record, 0, n)
	for _, id := range r.order[:n] {
		out = append(out, cloneRecord(r.items[id]))
	}
	return out, nil
}

func (r *MatchRecordRepository) GetByID(_ context.Context, id int64) (matchrecord.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.items[id]
	if !ok {
		return matchrecord.Record{}, false, nil
	}
	return cloneRecord(record), true, nil
}

func (r *MatchRecordRepository) ListByIDs(_ context.Context, ids []int64) ([]matchrecord.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchrecord.Record, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if record, ok := r.items[id]; ok {
			out = append(out, cloneRecord(record))
		}
	}
	return out, nil
}

func cloneRecord(record matchrecord.Record) matchrecord.Record {
	record.Data = append([]byte(nil), record.Data...)
	return record
}
