package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/match-analyzer/internal/domain/matchrecord"
	qb "github.com/riskibarqy/match-analyzer/internal/platform/querybuilder"
)

// Seed inserts records into team_details_cache when the table is empty.
// Existing team URLs are left untouched, so running it twice is harmless.
// It reports how many rows were written.
func Seed(ctx context.Context, db *sqlx.DB, records []matchrecord.Record) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}
	style := qb.PlaceholderFor(db.DriverName())

	countQuery, _, err := qb.Select("COUNT(1)").Placeholders(style).From(matchRecordTable).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build seed count query: %w", err)
	}
	var count int
	if err := db.GetContext(ctx, &count, countQuery); err != nil {
		return 0, fmt.Errorf("count records before seed: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	rows := make([]matchRecordInsertModel, 0, len(records))
	for _, record := range records {
		rows = append(rows, newInsertModel(record))
	}

	insert := qb.InsertInto(matchRecordTable).
		Placeholders(style).
		Suffix("ON CONFLICT (team_url) DO NOTHING")
	if err := qb.AppendModels(insert, rows); err != nil {
		return 0, fmt.Errorf("build seed rows: %w", err)
	}
	query, args, err := insert.ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build seed insert: %w", err)
	}

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert seed records: %w", err)
	}
	written, _ := res.RowsAffected()
	return written, nil
}
