package repository

import (
	"context"

	"liveaboard-service/internal/domain/entity"
)

// DestinationRepository defines the interface for destination reference data.
type DestinationRepository interface {
	GetBySlug(ctx context.Context, slug string) (*entity.Destination, error)
	ListAll(ctx context.Context) ([]entity.Destination, error)
}
