package matchrecord

import "context"

// Repository reads cached match records. Rows are owned by the scraper that
// fills the store, so the interface is read-only.
type Repository interface {
	ListRecent(ctx context.Context, limit int) ([]Record, error)
	GetByID(ctx context.Context, id int64) (Record, bool, error)
	ListByIDs(ctx context.Context, ids []int64) ([]Record, error)
}
