package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"liveaboard-service/internal/domain/entity"
	"liveaboard-service/internal/domain/repository"
	"liveaboard-service/pkg/logger"
	"liveaboard-service/pkg/metrics"
)

// ItineraryService manages the user's in-progress cabin reservations. The
// persisted list is the single source of truth: every mutation writes the
// whole list through the repository before returning, so a reload never
// loses a confirmed reservation. The in-memory map is only a read-through
// view over the store.
type ItineraryService struct {
	itineraryRepo repository.ItineraryRepository
	logger        logger.Logger
	metrics       *metrics.Metrics
	defaultGuests int

	mu       sync.Mutex
	sessions map[string][]entity.ItineraryLineItem
}

// NewItineraryService creates a new itinerary service
func NewItineraryService(
	itineraryRepo repository.ItineraryRepository,
	logger logger.Logger,
	metrics *metrics.Metrics,
	defaultGuests int,
) *ItineraryService {
	if defaultGuests <= 0 {
		defaultGuests = 2
	}
	return &ItineraryService{
		itineraryRepo: itineraryRepo,
		logger:        logger,
		metrics:       metrics,
		defaultGuests: defaultGuests,
		sessions:      make(map[string][]entity.ItineraryLineItem),
	}
}

// List returns the session's current itinerary, loading it from the store
// on first access.
func (s *ItineraryService) List(ctx context.Context, sessionID string) ([]entity.ItineraryLineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.loadLocked(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return append([]entity.ItineraryLineItem(nil), items...), nil
}

// Add appends a line item and persists the list.
func (s *ItineraryService) Add(ctx context.Context, sessionID string, item entity.ItineraryLineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadLocked(ctx, sessionID)
	if err != nil {
		return err
	}

	if item.GuestCount <= 0 {
		item.GuestCount = s.defaultGuests
	}
	if item.AddedAt == 0 {
		item.AddedAt = time.Now().UnixMilli()
	}

	return s.saveLocked(ctx, sessionID, append(items, item), "add")
}

// Remove drops the item at index and persists the list.
func (s *ItineraryService) Remove(ctx context.Context, sessionID string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadLocked(ctx, sessionID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(items) {
		return fmt.Errorf("itinerary index %d out of range", index)
	}

	next := make([]entity.ItineraryLineItem, 0, len(items)-1)
	next = append(next, items[:index]...)
	next = append(next, items[index+1:]...)

	return s.saveLocked(ctx, sessionID, next, "remove")
}

// Toggle is the single entry point for reservation buttons: if an item with
// the exact (cabin, ship, date) identity exists it is removed, otherwise one
// is added with guestsIfAdding guests (component default when non-positive).
// Returns true when the call added the item.
func (s *ItineraryService) Toggle(ctx context.Context, sessionID, cabinName, shipName, date string, price float64, guestsIfAdding int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadLocked(ctx, sessionID)
	if err != nil {
		return false, err
	}

	for i, existing := range items {
		if existing.Matches(cabinName, shipName, date) {
			next := make([]entity.ItineraryLineItem, 0, len(items)-1)
			next = append(next, items[:i]...)
			next = append(next, items[i+1:]...)
			return false, s.saveLocked(ctx, sessionID, next, "toggle_remove")
		}
	}

	if guestsIfAdding <= 0 {
		guestsIfAdding = s.defaultGuests
	}
	item := entity.ItineraryLineItem{
		CabinName:  cabinName,
		ShipName:   shipName,
		Date:       date,
		Price:      price,
		GuestCount: guestsIfAdding,
		AddedAt:    time.Now().UnixMilli(),
	}
	return true, s.saveLocked(ctx, sessionID, append(items, item), "toggle_add")
}

// IsPresent reports whether the exact identity triple is in the itinerary.
func (s *ItineraryService) IsPresent(ctx context.Context, sessionID, cabinName, shipName, date string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadLocked(ctx, sessionID)
	if err != nil {
		return false, err
	}
	for _, item := range items {
		if item.Matches(cabinName, shipName, date) {
			return true, nil
		}
	}
	return false, nil
}

// Clear empties the itinerary and persists the empty list.
func (s *ItineraryService) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.loadLocked(ctx, sessionID); err != nil {
		return err
	}
	return s.saveLocked(ctx, sessionID, []entity.ItineraryLineItem{}, "clear")
}

// Totals aggregates the itinerary. Zero-priced items still count toward
// cabins and guests; they just add nothing to the monetary total.
func (s *ItineraryService) Totals(ctx context.Context, sessionID string) (entity.ItineraryTotals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadLocked(ctx, sessionID)
	if err != nil {
		return entity.ItineraryTotals{}, err
	}

	totals := entity.ItineraryTotals{CabinCount: len(items)}
	for _, item := range items {
		totals.GuestCount += item.GuestCount
		totals.PriceTotal += item.Price
	}
	return totals, nil
}

func (s *ItineraryService) loadLocked(ctx context.Context, sessionID string) ([]entity.ItineraryLineItem, error) {
	if items, ok := s.sessions[sessionID]; ok {
		return items, nil
	}
	items, err := s.itineraryRepo.Read(ctx, sessionID)
	if err != nil {
		s.metrics.ErrorsCount.WithLabelValues("itinerary_read").Inc()
		return nil, fmt.Errorf("read itinerary: %w", err)
	}
	if items == nil {
		items = []entity.ItineraryLineItem{}
	}
	s.sessions[sessionID] = items
	return items, nil
}

// saveLocked persists before updating the in-memory view; on write failure
// the cached state stays at the last durable list.
func (s *ItineraryService) saveLocked(ctx context.Context, sessionID string, items []entity.ItineraryLineItem, op string) error {
	if err := s.itineraryRepo.Write(ctx, sessionID, items); err != nil {
		s.metrics.ErrorsCount.WithLabelValues("itinerary_write").Inc()
		return fmt.Errorf("persist itinerary: %w", err)
	}
	s.sessions[sessionID] = items
	s.metrics.ItineraryMutations.WithLabelValues(op).Inc()
	return nil
}
