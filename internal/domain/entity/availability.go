// internal/domain/entity/availability.go
package entity

// CabinAvailability is one cabin row inside an operator's availability report.
// Cabin names here drift from the catalog spelling and are joined fuzzily.
type CabinAvailability struct {
	Name           string   `json:"name"`
	AvailableCount int      `json:"availableCount"`
	AvailableDates []string `json:"availableDates"` // YYYY-MM-DD
}

// OperatorAvailability is the availability an operator reported for the
// queried window. The operator name is the feed's name for a ship and may
// not textually match the catalog's spelling.
type OperatorAvailability struct {
	OperatorName         string              `json:"operatorName"`
	TotalAvailableCabins int                 `json:"totalAvailableCabins"`
	Cabins               []CabinAvailability `json:"cabins"`
	AvailableDates       []string            `json:"availableDates"` // ship-level, YYYY-MM-DD
}

// AvailabilitySnapshot is the aggregated result of one availability fetch
// cycle. Operators is keyed by operator name. BrowsePool is the global pool
// of sampled dates collected in browse mode; it is empty in targeted mode
// and after a failed fetch, never nil.
type AvailabilitySnapshot struct {
	Operators  map[string]*OperatorAvailability `json:"operators"`
	BrowsePool []string                         `json:"browsePool"`
}

// EmptyAvailabilitySnapshot returns a snapshot safe to reconcile against
// when the availability fetch failed or returned nothing.
func EmptyAvailabilitySnapshot() *AvailabilitySnapshot {
	return &AvailabilitySnapshot{
		Operators:  make(map[string]*OperatorAvailability),
		BrowsePool: []string{},
	}
}
