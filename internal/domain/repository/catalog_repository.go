package repository

import (
	"context"

	"liveaboard-service/internal/domain/entity"
)

// CatalogRepository defines the interface for the fleet catalog feeds.
// Both catalogs are fetched whole; the core assumes no paging.
type CatalogRepository interface {
	FetchShipCatalog(ctx context.Context) ([]entity.ShipCatalogEntry, error)
	FetchCabinCatalog(ctx context.Context) ([]entity.CabinCatalogEntry, error)
	// FetchCabinImageDetails is optional enrichment; callers tolerate
	// failures silently and fall back to the catalog's main image.
	FetchCabinImageDetails(ctx context.Context, cabinID string) ([]string, error)
}
