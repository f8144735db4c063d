package domain

import "errors"

var (
	// ErrProductNotFound is returned when no identification strategy could
	// resolve a product from the catalog
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCatalogUnavailable is returned internally when a catalog request
	// fails; it never crosses the CatalogClient boundary
	ErrCatalogUnavailable = errors.New("catalog request failed")

	// ErrUnknownProfileKey is returned when a health profile names a
	// condition or preference the rule set does not know
	ErrUnknownProfileKey = errors.New("unknown health profile key")
)
