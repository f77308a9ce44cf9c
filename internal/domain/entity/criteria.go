// internal/domain/entity/criteria.go
package entity

// SortKey selects the ordering applied after filtering.
type SortKey string

const (
	SortRecommended SortKey = "recommended"
	SortPriceLow    SortKey = "price-low"
	SortPriceHigh   SortKey = "price-high"
	SortName        SortKey = "name"
)

// SearchCriteria is the user's current search selection. Criteria are
// independent and combine with AND semantics; zero values mean "not set".
type SearchCriteria struct {
	Query        string   `json:"query"`
	Destinations []string `json:"destinations"` // destination ids (slugs)
	DateFrom     string   `json:"dateFrom"`     // YYYY-MM-DD
	DateTo       string   `json:"dateTo"`       // YYYY-MM-DD
	Duration     int      `json:"duration"`     // exact trip length in days, 0 = unset
	Guests       int      `json:"guests"`       // minimum cabin capacity, 0 = unset
	Sort         SortKey  `json:"sort"`

	// DestinationNames holds the display names resolved from Destinations
	// before filtering, so the filter pipeline stays pure.
	DestinationNames []string `json:"-"`
}

// HasDateRange reports whether the user pinned an explicit date window,
// switching the engine out of browse mode.
func (c SearchCriteria) HasDateRange() bool {
	return c.DateFrom != ""
}
