package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"liveaboard-service/internal/domain/entity"
)

type mockAvailabilityRepo struct {
	mu         sync.Mutex
	rangeCalls int
	dateCalls  [][]string
	fetchRange func(dateFrom, dateTo string) (map[string]*entity.OperatorAvailability, error)
	fetchDates func(dates []string) (map[string]*entity.OperatorAvailability, error)
}

func (m *mockAvailabilityRepo) FetchRange(_ context.Context, dateFrom, dateTo string) (map[string]*entity.OperatorAvailability, error) {
	m.mu.Lock()
	m.rangeCalls++
	m.mu.Unlock()
	return m.fetchRange(dateFrom, dateTo)
}

func (m *mockAvailabilityRepo) FetchDates(_ context.Context, dates []string) (map[string]*entity.OperatorAvailability, error) {
	m.mu.Lock()
	m.dateCalls = append(m.dateCalls, dates)
	m.mu.Unlock()
	return m.fetchDates(dates)
}

type mockAvailabilityCache struct {
	mu   sync.Mutex
	snap *entity.AvailabilitySnapshot
	sets int
}

func (m *mockAvailabilityCache) GetBrowseSnapshot(_ context.Context) (*entity.AvailabilitySnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap, nil
}

func (m *mockAvailabilityCache) SetBrowseSnapshot(_ context.Context, snap *entity.AvailabilitySnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = snap
	m.sets++
	return nil
}

func TestSampleDatesCoversHorizonAtStride(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	dates := SampleDates(start, 90, 7)

	if len(dates) != 13 {
		t.Fatalf("got %d sample dates for a 90-day horizon at stride 7, want 13", len(dates))
	}
	if dates[0] != "2026-01-01" {
		t.Errorf("first sample = %q, want the start date", dates[0])
	}
	if dates[12] != "2026-03-26" {
		t.Errorf("last sample = %q, want 2026-03-26", dates[12])
	}
}

func TestSampleDatesDegenerateInputs(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := SampleDates(start, 0, 7); len(got) != 0 {
		t.Errorf("zero horizon should yield no dates, got %v", got)
	}
	if got := SampleDates(start, 3, 0); len(got) != 3 {
		t.Errorf("non-positive stride should fall back to daily, got %v", got)
	}
}

func TestFetchTargetedDegradesToEmptySnapshotOnFailure(t *testing.T) {
	repo := &mockAvailabilityRepo{
		fetchRange: func(_, _ string) (map[string]*entity.OperatorAvailability, error) {
			return nil, errors.New("upstream down")
		},
	}
	fetcher := NewAvailabilityFetcher(repo, nil, nopLogger{}, testMetrics, 7, 90)

	snap := fetcher.FetchTargeted(context.Background(), "2026-01-10", "2026-01-17")

	if snap == nil || snap.Operators == nil || snap.BrowsePool == nil {
		t.Fatalf("snapshot must be non-nil and fully initialized, got %+v", snap)
	}
	if len(snap.Operators) != 0 {
		t.Errorf("failed fetch should yield an empty operator map")
	}
}

func TestFetchTargetedClampsDatesToWindow(t *testing.T) {
	repo := &mockAvailabilityRepo{
		fetchRange: func(_, _ string) (map[string]*entity.OperatorAvailability, error) {
			return map[string]*entity.OperatorAvailability{
				"Aurora": {
					OperatorName:         "Aurora",
					TotalAvailableCabins: 1,
					AvailableDates:       []string{"2026-01-05", "2026-01-12", "2026-01-20"},
					Cabins: []entity.CabinAvailability{
						{Name: "Master Room", AvailableCount: 1, AvailableDates: []string{"2026-01-09", "2026-01-12"}},
					},
				},
			}, nil
		},
	}
	fetcher := NewAvailabilityFetcher(repo, nil, nopLogger{}, testMetrics, 7, 90)

	snap := fetcher.FetchTargeted(context.Background(), "2026-01-10", "2026-01-17")

	op := snap.Operators["Aurora"]
	if len(op.AvailableDates) != 1 || op.AvailableDates[0] != "2026-01-12" {
		t.Errorf("ship-level dates not clamped: %v", op.AvailableDates)
	}
	if len(op.Cabins[0].AvailableDates) != 1 || op.Cabins[0].AvailableDates[0] != "2026-01-12" {
		t.Errorf("cabin dates not clamped: %v", op.Cabins[0].AvailableDates)
	}
}

func TestFetchBrowseIssuesOneCallPerSampleDate(t *testing.T) {
	repo := &mockAvailabilityRepo{
		fetchDates: func(_ []string) (map[string]*entity.OperatorAvailability, error) {
			return map[string]*entity.OperatorAvailability{}, nil
		},
	}
	fetcher := NewAvailabilityFetcher(repo, nil, nopLogger{}, testMetrics, 7, 90)

	fetcher.FetchBrowse(context.Background())

	if len(repo.dateCalls) != 13 {
		t.Errorf("issued %d calls, want 13", len(repo.dateCalls))
	}
	for _, call := range repo.dateCalls {
		if len(call) != 1 {
			t.Errorf("each sample call should carry one date, got %v", call)
		}
	}
}

func TestFetchBrowseIsolatesPerSampleFailures(t *testing.T) {
	var calls int32
	repo := &mockAvailabilityRepo{}
	repo.fetchDates = func(dates []string) (map[string]*entity.OperatorAvailability, error) {
		if atomic.AddInt32(&calls, 1) == 1 { // fail exactly one sample
			return nil, errors.New("sample failed")
		}
		return map[string]*entity.OperatorAvailability{
			"Aurora": {
				OperatorName:         "Aurora",
				TotalAvailableCabins: 2,
				AvailableDates:       []string{dates[0]},
			},
		}, nil
	}
	fetcher := NewAvailabilityFetcher(repo, nil, nopLogger{}, testMetrics, 7, 21)

	snap := fetcher.FetchBrowse(context.Background())

	op := snap.Operators["Aurora"]
	if op == nil {
		t.Fatal("surviving samples must still aggregate")
	}
	if op.TotalAvailableCabins != 2 {
		t.Errorf("TotalAvailableCabins = %d", op.TotalAvailableCabins)
	}
	if len(snap.BrowsePool) < 2 {
		t.Errorf("browse pool should hold the surviving sample dates, got %v", snap.BrowsePool)
	}
}

func TestFetchBrowseMergesOperatorReportsAcrossSamples(t *testing.T) {
	repo := &mockAvailabilityRepo{
		fetchDates: func(dates []string) (map[string]*entity.OperatorAvailability, error) {
			return map[string]*entity.OperatorAvailability{
				"Aurora": {
					OperatorName:         "Aurora",
					TotalAvailableCabins: 1,
					AvailableDates:       []string{dates[0]},
					Cabins: []entity.CabinAvailability{
						{Name: "Master Room", AvailableCount: 1, AvailableDates: []string{dates[0]}},
					},
				},
			}, nil
		},
	}
	fetcher := NewAvailabilityFetcher(repo, nil, nopLogger{}, testMetrics, 7, 14)

	snap := fetcher.FetchBrowse(context.Background())

	op := snap.Operators["Aurora"]
	if len(op.AvailableDates) != 2 {
		t.Errorf("ship-level dates should union across samples, got %v", op.AvailableDates)
	}
	if len(op.Cabins) != 1 {
		t.Fatalf("cabin rows should merge by name, got %d rows", len(op.Cabins))
	}
	if len(op.Cabins[0].AvailableDates) != 2 {
		t.Errorf("cabin dates should union across samples, got %v", op.Cabins[0].AvailableDates)
	}
}

func TestFetchBrowseUsesCache(t *testing.T) {
	cached := entity.EmptyAvailabilitySnapshot()
	cached.BrowsePool = []string{"2026-05-01"}
	cache := &mockAvailabilityCache{snap: cached}
	repo := &mockAvailabilityRepo{
		fetchDates: func(_ []string) (map[string]*entity.OperatorAvailability, error) {
			t.Error("cache hit must not reach the upstream repo")
			return nil, nil
		},
	}
	fetcher := NewAvailabilityFetcher(repo, cache, nopLogger{}, testMetrics, 7, 90)

	snap := fetcher.FetchBrowse(context.Background())

	if len(snap.BrowsePool) != 1 || snap.BrowsePool[0] != "2026-05-01" {
		t.Errorf("cached snapshot not returned: %v", snap.BrowsePool)
	}
}

func TestFetchBrowsePopulatesCacheOnMiss(t *testing.T) {
	cache := &mockAvailabilityCache{}
	repo := &mockAvailabilityRepo{
		fetchDates: func(dates []string) (map[string]*entity.OperatorAvailability, error) {
			return map[string]*entity.OperatorAvailability{
				"Aurora": {OperatorName: "Aurora", TotalAvailableCabins: 1, AvailableDates: []string{dates[0]}},
			}, nil
		},
	}
	fetcher := NewAvailabilityFetcher(repo, cache, nopLogger{}, testMetrics, 7, 14)

	fetcher.FetchBrowse(context.Background())

	if cache.sets != 1 {
		t.Errorf("cache sets = %d, want 1", cache.sets)
	}
}
