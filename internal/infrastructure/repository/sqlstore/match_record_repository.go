// Package sqlstore reads cached team detail pages from Postgres or SQLite.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/match-analyzer/internal/domain/matchrecord"
	qb "github.com/riskibarqy/match-analyzer/internal/platform/querybuilder"
)

// MatchRecordRepository is read-only; rows are written by the scraper that
// fills team_details_cache.
type MatchRecordRepository struct {
	db    *sqlx.DB
	style qb.Placeholder
}

// NewMatchRecordRepository picks the placeholder style from the handle's
// driver name.
func NewMatchRecordRepository(db *sqlx.DB) *MatchRecordRepository {
	return &MatchRecordRepository{db: db, style: qb.PlaceholderFor(db.DriverName())}
}

func (r *MatchRecordRepository) selectRecords() *qb.SelectBuilder {
	return qb.Select(matchRecordColumns...).Placeholders(r.style).From(matchRecordTable)
}

func (r *MatchRecordRepository) ListRecent(ctx context.Context, limit int) ([]matchrecord.Record, error) {
	query, args, err := r.selectRecords().
		Where(qb.NotNull("data")).
		OrderBy("updated_at DESC", "id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build recent records query: %w", err)
	}

	return r.selectAll(ctx, "recent records", query, args)
}

func (r *MatchRecordRepository) GetByID(ctx context.Context, id int64) (matchrecord.Record, bool, error) {
	query, args, err := r.selectRecords().Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return matchrecord.Record{}, false, fmt.Errorf("build record %d query: %w", id, err)
	}

	var row matchRecordTableModel
	switch err := r.db.GetContext(ctx, &row, query, args...); {
	case errors.Is(err, sql.ErrNoRows):
		return matchrecord.Record{}, false, nil
	case err != nil:
		return matchrecord.Record{}, false, fmt.Errorf("get record %d: %w", id, err)
	}
	return row.toDomain(), true, nil
}

// ListByIDs returns rows in id order; unknown ids are absent from the result.
func (r *MatchRecordRepository) ListByIDs(ctx context.Context, ids []int64) ([]matchrecord.Record, error) {
	if len(ids) == 0 {
		return []matchrecord.Record{}, nil
	}

	query, args, err := r.selectRecords().Where(qb.In("id", ids)).OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build records by ids query: %w", err)
	}

	return r.selectAll(ctx, "records by ids", query, args)
}

func (r *MatchRecordRepository) selectAll(ctx context.Context, what, query string, args []any) ([]matchrecord.Record, error) {
	var rows []matchRecordTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select %s: %w", what, err)
	}

	out := make([]matchrecord.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
