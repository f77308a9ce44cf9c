package usecase

import (
	"context"
	"sort"
	"time"

	"liveaboard-service/internal/domain/entity"
	"liveaboard-service/internal/domain/repository"
	"liveaboard-service/pkg/logger"
	"liveaboard-service/pkg/metrics"
)

// AvailabilityFetcher resolves per-operator availability for a search cycle.
// Targeted mode queries the user's explicit date window in one call; browse
// mode samples one date per stride across the horizon so a 90-day outlook
// costs ~13 calls instead of 90. Both modes degrade to an empty snapshot on
// failure; availability problems never fail the page.
type AvailabilityFetcher struct {
	availabilityRepo repository.AvailabilityRepository
	cache            repository.AvailabilityCache
	logger           logger.Logger
	metrics          *metrics.Metrics
	strideDays       int
	horizonDays      int
}

// NewAvailabilityFetcher creates a new availability fetcher. cache may be
// nil, in which case every browse request re-samples.
func NewAvailabilityFetcher(
	availabilityRepo repository.AvailabilityRepository,
	cache repository.AvailabilityCache,
	logger logger.Logger,
	metrics *metrics.Metrics,
	strideDays int,
	horizonDays int,
) *AvailabilityFetcher {
	if strideDays <= 0 {
		strideDays = 7
	}
	if horizonDays <= 0 {
		horizonDays = 90
	}
	return &AvailabilityFetcher{
		availabilityRepo: availabilityRepo,
		cache:            cache,
		logger:           logger,
		metrics:          metrics,
		strideDays:       strideDays,
		horizonDays:      horizonDays,
	}
}

// SampleDates returns one date per stride across the horizon starting at
// start, formatted YYYY-MM-DD.
func SampleDates(start time.Time, horizonDays, strideDays int) []string {
	if horizonDays <= 0 {
		return []string{}
	}
	if strideDays <= 0 {
		strideDays = 1
	}
	dates := make([]string, 0, (horizonDays+strideDays-1)/strideDays)
	for offset := 0; offset < horizonDays; offset += strideDays {
		dates = append(dates, start.AddDate(0, 0, offset).Format("2006-01-02"))
	}
	return dates
}

// FetchTargeted resolves availability for an explicit [dateFrom, dateTo]
// window. Reported dates are clamped to the window.
func (f *AvailabilityFetcher) FetchTargeted(ctx context.Context, dateFrom, dateTo string) *entity.AvailabilitySnapshot {
	f.metrics.AvailabilityCalls.Inc()
	operators, err := f.availabilityRepo.FetchRange(ctx, dateFrom, dateTo)
	if err != nil {
		f.logger.Error("Availability fetch failed, continuing without availability", "dateFrom", dateFrom, "dateTo", dateTo, "error", err)
		f.metrics.ErrorsCount.WithLabelValues("availability_fetch").Inc()
		return entity.EmptyAvailabilitySnapshot()
	}

	snap := entity.EmptyAvailabilitySnapshot()
	for name, op := range operators {
		clamped := *op
		clamped.AvailableDates = clampDates(op.AvailableDates, dateFrom, dateTo)
		clamped.Cabins = make([]entity.CabinAvailability, len(op.Cabins))
		for i, cabin := range op.Cabins {
			cabin.AvailableDates = clampDates(cabin.AvailableDates, dateFrom, dateTo)
			clamped.Cabins[i] = cabin
		}
		snap.Operators[name] = &clamped
	}
	return snap
}

// FetchBrowse resolves the no-date-selected outlook by sampling the horizon.
// Per-date requests run concurrently and fail independently; one bad sample
// never discards its siblings. The aggregated snapshot is cached so the call
// budget is shared across sessions.
func (f *AvailabilityFetcher) FetchBrowse(ctx context.Context) *entity.AvailabilitySnapshot {
	if f.cache != nil {
		if snap, err := f.cache.GetBrowseSnapshot(ctx); err != nil {
			f.logger.Warn("Browse snapshot cache read failed", "error", err)
		} else if snap != nil {
			return snap
		}
	}

	dates := SampleDates(time.Now(), f.horizonDays, f.strideDays)

	type sampleResult struct {
		date      string
		operators map[string]*entity.OperatorAvailability
		err       error
	}
	results := make(chan sampleResult, len(dates))
	for _, date := range dates {
		go func(date string) {
			f.metrics.AvailabilityCalls.Inc()
			operators, err := f.availabilityRepo.FetchDates(ctx, []string{date})
			results <- sampleResult{date: date, operators: operators, err: err}
		}(date)
	}

	snap := entity.EmptyAvailabilitySnapshot()
	poolSet := make(map[string]struct{})
	for range dates {
		res := <-results
		if res.err != nil {
			f.logger.Warn("Availability sample failed", "date", res.date, "error", res.err)
			f.metrics.ErrorsCount.WithLabelValues("availability_sample").Inc()
			continue
		}
		for name, op := range res.operators {
			mergeOperator(snap.Operators, name, op)
			if op.TotalAvailableCabins > 0 {
				if len(op.AvailableDates) == 0 {
					// Feed confirmed the sampled date but did not echo it back.
					poolSet[res.date] = struct{}{}
				}
				for _, d := range op.AvailableDates {
					poolSet[d] = struct{}{}
				}
			}
		}
	}

	snap.BrowsePool = sortedDates(poolSet)

	// A fully empty snapshot usually means the upstream was down; caching it
	// would pin the outage for the whole TTL.
	if f.cache != nil && (len(snap.Operators) > 0 || len(snap.BrowsePool) > 0) {
		if err := f.cache.SetBrowseSnapshot(ctx, snap); err != nil {
			f.logger.Warn("Browse snapshot cache write failed", "error", err)
		}
	}
	return snap
}

// mergeOperator folds one sampled report for an operator into the aggregate.
// Dates are unioned; counts keep the highest sample seen.
func mergeOperator(operators map[string]*entity.OperatorAvailability, name string, incoming *entity.OperatorAvailability) {
	existing, ok := operators[name]
	if !ok {
		clone := *incoming
		clone.AvailableDates = append([]string(nil), incoming.AvailableDates...)
		clone.Cabins = append([]entity.CabinAvailability(nil), incoming.Cabins...)
		for i := range clone.Cabins {
			clone.Cabins[i].AvailableDates = append([]string(nil), incoming.Cabins[i].AvailableDates...)
		}
		operators[name] = &clone
		return
	}

	if incoming.TotalAvailableCabins > existing.TotalAvailableCabins {
		existing.TotalAvailableCabins = incoming.TotalAvailableCabins
	}
	existing.AvailableDates = unionDates(existing.AvailableDates, incoming.AvailableDates)

	for _, cabin := range incoming.Cabins {
		merged := false
		for i := range existing.Cabins {
			if existing.Cabins[i].Name == cabin.Name {
				if cabin.AvailableCount > existing.Cabins[i].AvailableCount {
					existing.Cabins[i].AvailableCount = cabin.AvailableCount
				}
				existing.Cabins[i].AvailableDates = unionDates(existing.Cabins[i].AvailableDates, cabin.AvailableDates)
				merged = true
				break
			}
		}
		if !merged {
			clone := cabin
			clone.AvailableDates = append([]string(nil), cabin.AvailableDates...)
			existing.Cabins = append(existing.Cabins, clone)
		}
	}
}

func unionDates(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, d := range a {
		seen[d] = struct{}{}
	}
	for _, d := range b {
		seen[d] = struct{}{}
	}
	return sortedDates(seen)
}

func sortedDates(set map[string]struct{}) []string {
	dates := make([]string, 0, len(set))
	for d := range set {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// clampDates drops dates outside [dateFrom, dateTo]. ISO dates compare
// correctly as strings.
func clampDates(dates []string, dateFrom, dateTo string) []string {
	kept := make([]string, 0, len(dates))
	for _, d := range dates {
		if d < dateFrom {
			continue
		}
		if dateTo != "" && d > dateTo {
			continue
		}
		kept = append(kept, d)
	}
	return kept
}
