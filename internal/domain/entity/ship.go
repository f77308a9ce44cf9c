// internal/domain/entity/ship.go
package entity

// ShipCatalogEntry is the marketing metadata for a single ship as reported
// by the fleet catalog feed. Immutable per fetch; replaced wholesale on reload.
type ShipCatalogEntry struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	TripLengthDays string   `json:"tripLengthDays"` // free text, e.g. "3" or "3D2N"
	TripName       string   `json:"tripName"`
	Destinations   string   `json:"destinations"` // free text, e.g. "Labuan Bajo, Komodo"
	ImageMain      string   `json:"imageMain"`
	Images         []string `json:"images"`
}

// EnrichedCabin is a catalog cabin tagged with the dates it can actually
// be booked on, according to the current availability snapshot.
type EnrichedCabin struct {
	CabinCatalogEntry
	AvailableDates []string `json:"availableDates"`
}

// EnrichedShip is the reconciled view model served to the storefront.
// It is derived, never persisted, and rebuilt from the catalog and
// availability snapshots on every search cycle.
type EnrichedShip struct {
	ShipCatalogEntry
	Cabins              []EnrichedCabin `json:"cabins"`
	IsAvailable         bool            `json:"isAvailable"`
	AvailableCabinCount int             `json:"availableCabinCount"`
	LowestValidPrice    float64         `json:"lowestValidPrice"`
	IsDynamic           bool            `json:"isDynamic"` // built purely from operator data, no catalog entry
}
