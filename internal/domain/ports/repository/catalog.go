package repository

import (
	"context"

	"premium-store/internal/domain/model"
)

// CatalogSource is the port for retrieving the provider catalog.
// Locator identifies the source in user-facing error messages (a URL,
// a file path or a table name).
type CatalogSource interface {
	Fetch(ctx context.Context) ([]*model.Plan, error)
	Locator() string
}

// RawCatalogSource is implemented by sources that can hand out the catalog
// document before decoding. The cache decorator stores these bytes.
type RawCatalogSource interface {
	CatalogSource
	FetchRaw(ctx context.Context) ([]byte, error)
}
