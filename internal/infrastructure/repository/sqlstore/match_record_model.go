package sqlstore

import (
	"time"

	"github.com/riskibarqy/match-analyzer/internal/domain/matchrecord"
)

const matchRecordTable = "team_details_cache"

var matchRecordColumns = []string{"id", "team_url", "data", "updated_at"}

type matchRecordTableModel struct {
	ID        int64     `db:"id"`
	TeamURL   string    `db:"team_url"`
	Data      []byte    `db:"data"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (m matchRecordTableModel) toDomain() matchrecord.Record {
	return matchrecord.Record{
		ID:        m.ID,
		TeamURL:   m.TeamURL,
		Data:      m.Data,
		UpdatedAt: m.UpdatedAt,
	}
}

// matchRecordInsertModel leaves id to the database. Data is written as text
// so the same value fits both the JSONB and TEXT columns.
type matchRecordInsertModel struct {
	TeamURL   string    `db:"team_url"`
	Data      string    `db:"data"`
	UpdatedAt time.Time `db:"updated_at"`
}

func newInsertModel(r matchrecord.Record) matchRecordInsertModel {
	return matchRecordInsertModel{
		TeamURL:   r.TeamURL,
		Data:      string(r.Data),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}
