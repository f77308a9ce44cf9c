package usecase

import (
	"testing"

	"liveaboard-service/internal/domain/entity"
)

func newTestReconciler() *Reconciler {
	return NewReconciler(nopLogger{}, testMetrics)
}

func snapshotWith(operators ...*entity.OperatorAvailability) *entity.AvailabilitySnapshot {
	snap := entity.EmptyAvailabilitySnapshot()
	for _, op := range operators {
		snap.Operators[op.OperatorName] = op
	}
	return snap
}

func TestReconcileMatchesOperatorToCatalogShipByFuzzyName(t *testing.T) {
	ships := []entity.ShipCatalogEntry{{Name: "Aurora Liveaboard"}}
	cabins := []entity.CabinCatalogEntry{
		{CabinName: "Master Cabin", BoatName: "Aurora Liveaboard", Price: 500},
	}
	snap := snapshotWith(&entity.OperatorAvailability{
		OperatorName:         "MV Aurora",
		TotalAvailableCabins: 3,
		Cabins: []entity.CabinAvailability{
			{Name: "Oceanview Suite", AvailableCount: 3, AvailableDates: []string{"2026-01-12"}},
		},
	})

	result := newTestReconciler().Reconcile(ships, cabins, snap, true)

	if len(result) != 1 {
		t.Fatalf("got %d ships, want 1", len(result))
	}
	ship := result[0]
	if !ship.IsAvailable {
		t.Error("ship should be available")
	}
	// No catalog cabin matches the operator's cabin names, but the operator
	// reported inventory: the operator's total is trusted.
	if ship.AvailableCabinCount != 3 {
		t.Errorf("AvailableCabinCount = %d, want operator total 3", ship.AvailableCabinCount)
	}
	if len(ship.Cabins) != 0 {
		t.Errorf("no catalog cabin should survive the targeted filter, got %d", len(ship.Cabins))
	}
	if ship.IsDynamic {
		t.Error("catalog-backed ship must not be flagged dynamic")
	}
}

func TestReconcileTargetedKeepsOnlyConfirmedCabins(t *testing.T) {
	ships := []entity.ShipCatalogEntry{{Name: "Sea Spirit"}}
	cabins := []entity.CabinCatalogEntry{
		{CabinName: "Master Cabin", CabinNameAPI: "Master Room", BoatName: "Sea Spirit", Price: 700},
		{CabinName: "Bunk Cabin", BoatName: "Sea Spirit", Price: 300},
		{CabinName: "Sold Out Cabin", CabinNameAPI: "Sold Out Room", BoatName: "Sea Spirit", Price: 200},
	}
	snap := snapshotWith(&entity.OperatorAvailability{
		OperatorName:         "Sea Spirit",
		TotalAvailableCabins: 2,
		Cabins: []entity.CabinAvailability{
			{Name: "Master Room", AvailableCount: 2, AvailableDates: []string{"2026-01-10", "2026-01-11"}},
			{Name: "Sold Out Room", AvailableCount: 0, AvailableDates: nil},
		},
	})

	result := newTestReconciler().Reconcile(ships, cabins, snap, true)

	ship := result[0]
	if len(ship.Cabins) != 1 {
		t.Fatalf("got %d cabins, want 1", len(ship.Cabins))
	}
	if ship.Cabins[0].CabinName != "Master Cabin" {
		t.Errorf("kept cabin = %q", ship.Cabins[0].CabinName)
	}
	if len(ship.Cabins[0].AvailableDates) != 2 {
		t.Errorf("AvailableDates = %v", ship.Cabins[0].AvailableDates)
	}
	if ship.AvailableCabinCount != 1 {
		t.Errorf("AvailableCabinCount = %d, want 1", ship.AvailableCabinCount)
	}
	if ship.LowestValidPrice != 700 {
		t.Errorf("LowestValidPrice = %v, want 700", ship.LowestValidPrice)
	}
}

func TestReconcileSynthesizesShipForUnmatchedOperator(t *testing.T) {
	snap := snapshotWith(
		&entity.OperatorAvailability{
			OperatorName:         "Ghost Phinisi",
			TotalAvailableCabins: 2,
			Cabins: []entity.CabinAvailability{
				{Name: "Shared Cabin", AvailableCount: 2, AvailableDates: []string{"2026-02-01"}},
			},
		},
		&entity.OperatorAvailability{
			OperatorName:         "Empty Operator",
			TotalAvailableCabins: 0,
		},
	)

	result := newTestReconciler().Reconcile(nil, nil, snap, false)

	if len(result) != 1 {
		t.Fatalf("got %d ships, want exactly 1 synthetic", len(result))
	}
	ship := result[0]
	if !ship.IsDynamic {
		t.Error("synthesized ship must be flagged dynamic")
	}
	if ship.Name != "Ghost Phinisi" {
		t.Errorf("Name = %q", ship.Name)
	}
	if ship.AvailableCabinCount != 2 {
		t.Errorf("AvailableCabinCount = %d, want operator total 2", ship.AvailableCabinCount)
	}
	if !ship.IsAvailable {
		t.Error("synthesized ship must be available")
	}
	if ship.LowestValidPrice != 0 {
		t.Errorf("LowestValidPrice = %v, want zero-filled pricing", ship.LowestValidPrice)
	}
	if len(ship.Cabins) != 1 || ship.Cabins[0].CabinName != "Shared Cabin" {
		t.Errorf("Cabins = %+v", ship.Cabins)
	}
	if ship.ImageMain == "" {
		t.Error("synthesized ship needs placeholder imagery")
	}
}

func TestReconcileCatalogShipsPrecedeSynthetics(t *testing.T) {
	ships := []entity.ShipCatalogEntry{{Name: "Zulu"}, {Name: "Alpha"}}
	snap := snapshotWith(&entity.OperatorAvailability{
		OperatorName:         "Brand New Boat",
		TotalAvailableCabins: 1,
	})

	result := newTestReconciler().Reconcile(ships, nil, snap, false)

	if len(result) != 3 {
		t.Fatalf("got %d ships, want 3", len(result))
	}
	if result[0].Name != "Zulu" || result[1].Name != "Alpha" {
		t.Errorf("catalog ships must keep feed order, got %q, %q", result[0].Name, result[1].Name)
	}
	if !result[2].IsDynamic {
		t.Error("synthetic ship must come last")
	}
}

func TestReconcileBrowseModeNeverDropsCabins(t *testing.T) {
	ships := []entity.ShipCatalogEntry{{Name: "Aurora"}}
	cabins := []entity.CabinCatalogEntry{
		{CabinName: "Master Cabin", BoatName: "Aurora", Price: 500},
		{CabinName: "Bunk Cabin", BoatName: "Aurora", Price: 300},
	}

	result := newTestReconciler().Reconcile(ships, cabins, entity.EmptyAvailabilitySnapshot(), false)

	ship := result[0]
	if ship.IsAvailable {
		t.Error("ship without operator data must not be available")
	}
	if len(ship.Cabins) != 2 {
		t.Fatalf("browse mode dropped cabins: got %d, want 2", len(ship.Cabins))
	}
	for _, cabin := range ship.Cabins {
		if cabin.AvailableDates == nil {
			t.Errorf("cabin %q has nil AvailableDates, want empty slice", cabin.CabinName)
		}
	}
	if ship.LowestValidPrice != 300 {
		t.Errorf("LowestValidPrice = %v, want 300", ship.LowestValidPrice)
	}
}

func TestReconcileBrowseModeDateSourcePriority(t *testing.T) {
	ships := []entity.ShipCatalogEntry{{Name: "Aurora"}}
	cabins := []entity.CabinCatalogEntry{
		{CabinName: "Master Cabin", CabinNameAPI: "Master Room", BoatName: "Aurora"},
		{CabinName: "Bunk Cabin", BoatName: "Aurora"},
	}
	snap := snapshotWith(&entity.OperatorAvailability{
		OperatorName:         "Aurora",
		TotalAvailableCabins: 2,
		AvailableDates:       []string{"2026-03-01"},
		Cabins: []entity.CabinAvailability{
			{Name: "Master Room", AvailableCount: 1, AvailableDates: []string{"2026-03-05"}},
		},
	})
	snap.BrowsePool = []string{"2026-04-01"}

	result := newTestReconciler().Reconcile(ships, cabins, snap, false)

	ship := result[0]
	byName := map[string][]string{}
	for _, cabin := range ship.Cabins {
		byName[cabin.CabinName] = cabin.AvailableDates
	}
	if got := byName["Master Cabin"]; len(got) != 1 || got[0] != "2026-03-05" {
		t.Errorf("cabin-matched dates take priority, got %v", got)
	}
	if got := byName["Bunk Cabin"]; len(got) != 1 || got[0] != "2026-03-01" {
		t.Errorf("ship-level dates are the fallback, got %v", got)
	}
}

func TestReconcileBrowseModeFallsBackToGlobalPool(t *testing.T) {
	ships := []entity.ShipCatalogEntry{{Name: "Aurora"}}
	cabins := []entity.CabinCatalogEntry{{CabinName: "Master Cabin", BoatName: "Aurora"}}
	snap := entity.EmptyAvailabilitySnapshot()
	snap.BrowsePool = []string{"2026-04-01", "2026-04-08"}

	result := newTestReconciler().Reconcile(ships, cabins, snap, false)

	if got := result[0].Cabins[0].AvailableDates; len(got) != 2 || got[0] != "2026-04-01" {
		t.Errorf("global pool fallback dates = %v", got)
	}
}

func TestLowestValidPriceIgnoresSentinelAndZero(t *testing.T) {
	cabins := []entity.EnrichedCabin{
		{CabinCatalogEntry: entity.CabinCatalogEntry{Price: entity.PlaceholderPrice}},
		{CabinCatalogEntry: entity.CabinCatalogEntry{Price: 0}},
		{CabinCatalogEntry: entity.CabinCatalogEntry{Price: 800}},
		{CabinCatalogEntry: entity.CabinCatalogEntry{Price: 500}},
	}
	if got := lowestValidPrice(cabins); got != 500 {
		t.Errorf("lowestValidPrice = %v, want 500", got)
	}

	onlyInvalid := []entity.EnrichedCabin{
		{CabinCatalogEntry: entity.CabinCatalogEntry{Price: entity.PlaceholderPrice}},
		{CabinCatalogEntry: entity.CabinCatalogEntry{Price: 0}},
	}
	if got := lowestValidPrice(onlyInvalid); got != 0 {
		t.Errorf("lowestValidPrice = %v, want 0 when no cabin qualifies", got)
	}
}

func TestReconcileNilSnapshotIsSafe(t *testing.T) {
	ships := []entity.ShipCatalogEntry{{Name: "Aurora"}}
	result := newTestReconciler().Reconcile(ships, nil, nil, false)
	if len(result) != 1 || result[0].IsAvailable {
		t.Errorf("nil snapshot should degrade to no availability, got %+v", result)
	}
}
