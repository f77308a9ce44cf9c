package repository

import (
	"context"

	"liveaboard-service/internal/domain/entity"
)

// ItineraryRepository persists a session's itinerary as a single document:
// the whole list is written on every mutation (last write wins) and read
// once at session start. Read returns (nil, nil) when no itinerary exists.
type ItineraryRepository interface {
	Read(ctx context.Context, sessionID string) ([]entity.ItineraryLineItem, error)
	Write(ctx context.Context, sessionID string, items []entity.ItineraryLineItem) error
}
