package domain

import "context"

// CatalogClient defines the three read operations against the remote product
// catalog. Implementations degrade to an absent/empty result on transport,
// timeout, or decode failures so the pipeline stays usable under partial
// catalog unavailability; the only error they return is context cancellation.
type CatalogClient interface {
	// FetchByCode looks up a product by exact code. A nil product with a
	// nil error means "not found".
	FetchByCode(ctx context.Context, code string) (*Product, error)

	// SearchByName runs a free-text search and may return an empty slice.
	SearchByName(ctx context.Context, query string, pageSize int) ([]Product, error)

	// SearchByCategory runs a category-filtered search and may return an
	// empty slice.
	SearchByCategory(ctx context.Context, tag string, pageSize int) ([]Product, error)
}
