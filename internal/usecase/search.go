package usecase

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"liveaboard-service/internal/domain/entity"
	"liveaboard-service/internal/domain/repository"
	"liveaboard-service/pkg/logger"
	"liveaboard-service/pkg/metrics"
)

// SearchService runs one search cycle: fetch the three feeds, reconcile,
// filter, sort. Source failures are absorbed here; the worst outcome of a
// cycle is an empty, not an error, result.
type SearchService struct {
	catalogRepo     repository.CatalogRepository
	destinationRepo repository.DestinationRepository
	fetcher         *AvailabilityFetcher
	reconciler      *Reconciler
	logger          logger.Logger
	metrics         *metrics.Metrics
	catalogMaxAge   time.Duration

	// generation guards against stale fetches clobbering newer state.
	generation atomic.Uint64

	mu               sync.Mutex
	cachedShips      []entity.ShipCatalogEntry
	cachedCabins     []entity.CabinCatalogEntry
	catalogFetchedAt time.Time
}

// NewSearchService creates a new search service
func NewSearchService(
	catalogRepo repository.CatalogRepository,
	destinationRepo repository.DestinationRepository,
	fetcher *AvailabilityFetcher,
	reconciler *Reconciler,
	logger logger.Logger,
	metrics *metrics.Metrics,
	catalogMaxAge time.Duration,
) *SearchService {
	return &SearchService{
		catalogRepo:     catalogRepo,
		destinationRepo: destinationRepo,
		fetcher:         fetcher,
		reconciler:      reconciler,
		logger:          logger,
		metrics:         metrics,
		catalogMaxAge:   catalogMaxAge,
	}
}

// Search resolves the reconciled, filtered, sorted ship list for the given
// criteria. Catalog and availability are fetched together and awaited
// jointly; reconciliation starts only once all three have settled.
func (s *SearchService) Search(ctx context.Context, criteria entity.SearchCriteria) []entity.EnrichedShip {
	gen := s.generation.Add(1)
	criteria.DestinationNames = s.resolveDestinationNames(ctx, criteria.Destinations)

	var (
		wg    sync.WaitGroup
		ships []entity.ShipCatalogEntry
		cabin []entity.CabinCatalogEntry
		avail *entity.AvailabilitySnapshot
	)

	cachedShips, cachedCabins, fresh := s.cachedCatalog()
	if fresh {
		ships, cabin = cachedShips, cachedCabins
	} else {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.metrics.FeedFetches.WithLabelValues("ships").Inc()
			fetched, err := s.catalogRepo.FetchShipCatalog(ctx)
			if err != nil {
				s.logger.Error("Ship catalog fetch failed, rendering without it", "error", err)
				s.metrics.ErrorsCount.WithLabelValues("ship_catalog").Inc()
				return
			}
			ships = fetched
		}()
		go func() {
			defer wg.Done()
			s.metrics.FeedFetches.WithLabelValues("cabins").Inc()
			fetched, err := s.catalogRepo.FetchCabinCatalog(ctx)
			if err != nil {
				s.logger.Error("Cabin catalog fetch failed, rendering without it", "error", err)
				s.metrics.ErrorsCount.WithLabelValues("cabin_catalog").Inc()
				return
			}
			cabin = fetched
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.metrics.FeedFetches.WithLabelValues("availability").Inc()
		if criteria.HasDateRange() {
			avail = s.fetcher.FetchTargeted(ctx, criteria.DateFrom, criteria.DateTo)
		} else {
			avail = s.fetcher.FetchBrowse(ctx)
		}
	}()

	wg.Wait()

	if s.generation.Load() != gen {
		// A newer query superseded this cycle while it was in flight; its
		// results still serve this caller but must not refresh shared state.
		s.logger.Debug("Search cycle superseded, skipping catalog cache refresh", "generation", gen)
	} else if !fresh && (len(ships) > 0 || len(cabin) > 0) {
		s.storeCatalog(ships, cabin)
	}

	reconciled := s.reconciler.Reconcile(ships, cabin, avail, criteria.HasDateRange())
	return FilterAndSort(reconciled, criteria)
}

// CabinImages is optional gallery enrichment; any failure is tolerated
// silently and yields an empty list.
func (s *SearchService) CabinImages(ctx context.Context, cabinID string) []string {
	images, err := s.catalogRepo.FetchCabinImageDetails(ctx, cabinID)
	if err != nil {
		s.logger.Debug("Cabin image enrichment failed", "cabinId", cabinID, "error", err)
		return []string{}
	}
	if images == nil {
		images = []string{}
	}
	return images
}

// Destinations lists the destination reference data for the storefront's
// filter control. Failures degrade to an empty list.
func (s *SearchService) Destinations(ctx context.Context) []entity.Destination {
	destinations, err := s.destinationRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("Destination list failed", "error", err)
		s.metrics.ErrorsCount.WithLabelValues("destinations").Inc()
		return []entity.Destination{}
	}
	return destinations
}

// resolveDestinationNames maps selected slugs to display names. When the
// reference row is missing the slug itself, de-hyphenated, still gives the
// filter something to substring-match on.
func (s *SearchService) resolveDestinationNames(ctx context.Context, slugs []string) []string {
	if len(slugs) == 0 {
		return nil
	}
	names := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		destination, err := s.destinationRepo.GetBySlug(ctx, slug)
		if err != nil || destination == nil {
			names = append(names, strings.ReplaceAll(slug, "-", " "))
			continue
		}
		names = append(names, destination.DisplayName)
	}
	return names
}

func (s *SearchService) cachedCatalog() ([]entity.ShipCatalogEntry, []entity.CabinCatalogEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.catalogFetchedAt.IsZero() || time.Since(s.catalogFetchedAt) > s.catalogMaxAge {
		return nil, nil, false
	}
	return s.cachedShips, s.cachedCabins, true
}

func (s *SearchService) storeCatalog(ships []entity.ShipCatalogEntry, cabins []entity.CabinCatalogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cachedShips = ships
	s.cachedCabins = cabins
	s.catalogFetchedAt = time.Now()
}
