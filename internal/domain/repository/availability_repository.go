package repository

import (
	"context"

	"liveaboard-service/internal/domain/entity"
)

// AvailabilityRepository defines the interface for per-operator cabin
// availability queries against the fleet API.
type AvailabilityRepository interface {
	// FetchRange queries a contiguous [dateFrom, dateTo] window.
	FetchRange(ctx context.Context, dateFrom, dateTo string) (map[string]*entity.OperatorAvailability, error)
	// FetchDates queries an explicit list of sample dates.
	FetchDates(ctx context.Context, dates []string) (map[string]*entity.OperatorAvailability, error)
}

// AvailabilityCache caches the browse-mode availability snapshot so the
// sampled call budget is shared across sessions. A miss returns (nil, nil).
type AvailabilityCache interface {
	GetBrowseSnapshot(ctx context.Context) (*entity.AvailabilitySnapshot, error)
	SetBrowseSnapshot(ctx context.Context, snap *entity.AvailabilitySnapshot) error
}
