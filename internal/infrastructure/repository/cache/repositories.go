package cache

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/match-analyzer/internal/domain/matchrecord"
	basecache "github.com/riskibarqy/match-analyzer/internal/platform/cache"
)

// lookup remembers misses too, so unknown ids do not hit the store on every
// request.
type lookup struct {
	record matchrecord.Record
	found  bool
}

// MatchRecordRepository caches record loads. Analyses are never cached, only
// the raw rows they are computed from. Callers always get their own copy of
// the payload bytes.
type MatchRecordRepository struct {
	next  matchrecord.Repository
	lists *basecache.Store[[]matchrecord.Record]
	rows  *basecache.Store[lookup]
}

func NewMatchRecordRepository(next matchrecord.Repository, ttl time.Duration, maxEntries int) *MatchRecordRepository {
	return &MatchRecordRepository{
		next:  next,
		lists: basecache.New[[]matchrecord.Record](ttl, maxEntries),
		rows:  basecache.New[lookup](ttl, maxEntries),
	}
}

func (r *MatchRecordRepository) ListRecent(ctx context.Context, limit int) ([]matchrecord.Record, error) {
	items, err := r.lists.GetOrLoad(ctx, "recent:"+strconv.Itoa(limit), func(ctx context.Context) ([]matchrecord.Record, error) {
		return r.next.ListRecent(ctx, limit)
	})
	if err != nil {
		return nil, err
	}
	return cloneRecords(items), nil
}

func (r *MatchRecordRepository) GetByID(ctx context.Context, id int64) (matchrecord.Record, bool, error) {
	hit, err := r.rows.GetOrLoad(ctx, strconv.FormatInt(id, 10), func(ctx context.Context) (lookup, error) {
		record, found, err := r.next.GetByID(ctx, id)
		return lookup{record: cloneRecord(record), found: found}, err
	})
	if err != nil {
		return matchrecord.Record{}, false, err
	}
	return cloneRecord(hit.record), hit.found, nil
}

// ListByIDs keys on the sorted id set, so permutations share an entry.
func (r *MatchRecordRepository) ListByIDs(ctx context.Context, ids []int64) ([]matchrecord.Record, error) {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	parts := make([]string, 0, len(sorted))
	for _, id := range sorted {
		parts = append(parts, strconv.FormatInt(id, 10))
	}

	items, err := r.lists.GetOrLoad(ctx, "ids:"+strings.Join(parts, ","), func(ctx context.Context) ([]matchrecord.Record, error) {
		return r.next.ListByIDs(ctx, ids)
	})
	if err != nil {
		return nil, err
	}
	return cloneRecords(items), nil
}

func cloneRecord(record matchrecord.Record) matchrecord.Record {
	record.Data = slices.Clone(record.Data)
	return record
}

func cloneRecords(items []matchrecord.Record) []matchrecord.Record {
	out := make([]matchrecord.Record, 0, len(items))
	for _, item := range items {
		out = append(out, cloneRecord(item))
	}
	return out
}
