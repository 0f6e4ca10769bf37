package news

import (
	"context"
	"time"
)

type Item struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Link        string    `json:"link"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"publishedAt,omitempty"`
}

// Provider returns general football headlines from every configured source.
type Provider interface {
	Fetch(ctx context.Context) ([]Item, error)
}
