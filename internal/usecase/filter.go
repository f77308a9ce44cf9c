package usecase

import (
	"math"
	"sort"
	"strings"

	"liveaboard-service/internal/domain/entity"
	"liveaboard-service/pkg/match"
	"liveaboard-service/pkg/utils"
)

// Trip lengths that fail to parse are treated as this many days.
const fallbackTripLengthDays = 3

// FilterAndSort applies the user's criteria to a reconciled ship list and
// orders the survivors. It is pure: the input slice is never mutated and
// criteria combine with AND semantics.
func FilterAndSort(ships []entity.EnrichedShip, criteria entity.SearchCriteria) []entity.EnrichedShip {
	filtered := make([]entity.EnrichedShip, 0, len(ships))
	for _, ship := range ships {
		if !matchesQuery(ship, criteria.Query) {
			continue
		}
		if !matchesDestinations(ship, criteria.DestinationNames) {
			continue
		}
		if criteria.Duration > 0 && utils.ParseTripLength(ship.TripLengthDays, fallbackTripLengthDays) != criteria.Duration {
			continue
		}
		if criteria.Guests > 0 && !hasCapacity(ship, criteria.Guests) {
			continue
		}
		if criteria.HasDateRange() && !ship.IsAvailable {
			continue
		}
		filtered = append(filtered, ship)
	}

	sortShips(filtered, criteria.Sort)
	return filtered
}

func matchesQuery(ship entity.EnrichedShip, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(ship.Name), query) ||
		strings.Contains(strings.ToLower(ship.TripName), query) ||
		strings.Contains(strings.ToLower(ship.Destinations), query)
}

// matchesDestinations keeps ships with no destination data at all: unknown
// must never exclude. Otherwise any selected destination may match.
func matchesDestinations(ship entity.EnrichedShip, names []string) bool {
	if len(names) == 0 {
		return true
	}
	shipDest := match.NormalizeName(ship.Destinations)
	if shipDest == "" {
		return true
	}
	for _, name := range names {
		if destinationMatches(shipDest, name) {
			return true
		}
	}
	return false
}

// destinationMatches compares a selected destination's display name against
// the ship's free-text destinations field. Full containment wins either
// way; failing that, any significant word of the display name found in the
// field counts, so "Komodo National Park" still matches "Labuan Bajo, Komodo".
func destinationMatches(normalizedShipDest, displayName string) bool {
	name := match.NormalizeName(displayName)
	if name == "" {
		return false
	}
	if strings.Contains(normalizedShipDest, name) || strings.Contains(name, normalizedShipDest) {
		return true
	}
	for _, token := range strings.Fields(name) {
		if len(token) >= 4 && strings.Contains(normalizedShipDest, token) {
			return true
		}
	}
	return false
}

func hasCapacity(ship entity.EnrichedShip, guests int) bool {
	for _, cabin := range ship.Cabins {
		if cabin.TotalCapacity >= guests {
			return true
		}
	}
	return false
}

// sortShips orders in place. A zero LowestValidPrice means "no real price";
// it sorts as infinitely expensive so priceless ships sink to the bottom.
func sortShips(ships []entity.EnrichedShip, key entity.SortKey) {
	switch key {
	case entity.SortPriceLow:
		sort.SliceStable(ships, func(i, j int) bool {
			return sortablePrice(ships[i]) < sortablePrice(ships[j])
		})
	case entity.SortPriceHigh:
		sort.SliceStable(ships, func(i, j int) bool {
			return ships[i].LowestValidPrice > ships[j].LowestValidPrice
		})
	case entity.SortName:
		sort.SliceStable(ships, func(i, j int) bool {
			return strings.ToLower(ships[i].Name) < strings.ToLower(ships[j].Name)
		})
	default: // recommended
		sort.SliceStable(ships, func(i, j int) bool {
			if ships[i].AvailableCabinCount != ships[j].AvailableCabinCount {
				return ships[i].AvailableCabinCount > ships[j].AvailableCabinCount
			}
			return sortablePrice(ships[i]) < sortablePrice(ships[j])
		})
	}
}

func sortablePrice(ship entity.EnrichedShip) float64 {
	if ship.LowestValidPrice <= 0 {
		return math.Inf(1)
	}
	return ship.LowestValidPrice
}
