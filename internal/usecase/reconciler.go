package usecase

import (
	"sort"
	"time"

	"liveaboard-service/internal/domain/entity"
	"liveaboard-service/pkg/logger"
	"liveaboard-service/pkg/match"
	"liveaboard-service/pkg/metrics"
)

// dynamicShipImage is served for ships synthesized from operator data,
// which carry no catalog imagery.
const dynamicShipImage = "/images/boat-placeholder.jpg"

// Reconciler joins the ship catalog, the cabin catalog, and the availability
// snapshot into the EnrichedShip view models served to the storefront. The
// three feeds share no key; all joins go through the fuzzy name matcher.
type Reconciler struct {
	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewReconciler creates a new reconciler
func NewReconciler(logger logger.Logger, metrics *metrics.Metrics) *Reconciler {
	return &Reconciler{
		logger:  logger,
		metrics: metrics,
	}
}

// Reconcile rebuilds the full EnrichedShip list from the current snapshots.
// The output is always reconstructed from scratch, never patched in place.
// Catalog ships keep the feed's relative order; ships synthesized from
// unmatched operators are appended after them.
func (r *Reconciler) Reconcile(
	ships []entity.ShipCatalogEntry,
	cabins []entity.CabinCatalogEntry,
	avail *entity.AvailabilitySnapshot,
	hasDateRange bool,
) []entity.EnrichedShip {
	start := time.Now()
	defer func() {
		r.metrics.ReconcileTime.Observe(time.Since(start).Seconds())
	}()

	if avail == nil {
		avail = entity.EmptyAvailabilitySnapshot()
	}

	operatorNames := make([]string, 0, len(avail.Operators))
	for name := range avail.Operators {
		operatorNames = append(operatorNames, name)
	}
	sort.Strings(operatorNames)

	enriched := make([]entity.EnrichedShip, 0, len(ships))
	matchedOperators := make(map[string]bool)

	for _, ship := range ships {
		operator := findOperator(avail.Operators, operatorNames, ship.Name)
		if operator != nil {
			matchedOperators[operator.OperatorName] = true
		}
		enriched = append(enriched, r.enrichShip(ship, cabins, operator, avail.BrowsePool, hasDateRange))
	}

	// Operators with inventory but no catalog entry still need to be
	// searchable; synthesize a minimal ship for each.
	for _, name := range operatorNames {
		operator := avail.Operators[name]
		if matchedOperators[name] || operator.TotalAvailableCabins <= 0 {
			continue
		}
		r.logger.Info("Operator has no catalog entry, synthesizing ship", "operator", name, "total", operator.TotalAvailableCabins)
		r.metrics.DynamicShips.Inc()
		enriched = append(enriched, buildDynamicShip(operator, avail.BrowsePool))
	}

	return enriched
}

func (r *Reconciler) enrichShip(
	ship entity.ShipCatalogEntry,
	cabins []entity.CabinCatalogEntry,
	operator *entity.OperatorAvailability,
	browsePool []string,
	hasDateRange bool,
) entity.EnrichedShip {
	enriched := entity.EnrichedShip{
		ShipCatalogEntry: ship,
		Cabins:           []entity.EnrichedCabin{},
	}
	if operator != nil {
		enriched.IsAvailable = operator.TotalAvailableCabins > 0
	}

	var shipCabins []entity.CabinCatalogEntry
	for _, cabin := range cabins {
		if match.BoatNamesMatch(cabin.BoatName, ship.Name) {
			shipCabins = append(shipCabins, cabin)
		}
	}

	if hasDateRange {
		// Targeted mode keeps only cabins the operator confirmed.
		for _, cabin := range shipCabins {
			dates, ok := confirmedCabinDates(operator, cabin)
			if !ok {
				continue
			}
			enriched.Cabins = append(enriched.Cabins, entity.EnrichedCabin{
				CabinCatalogEntry: cabin,
				AvailableDates:    dates,
			})
		}
		enriched.AvailableCabinCount = len(enriched.Cabins)

		if enriched.AvailableCabinCount == 0 && operator != nil && operator.TotalAvailableCabins > 0 {
			// The operator has inventory under names the catalog does not
			// recognize. Trust the operator's count so the ship stays
			// bookable; the cabin list stays partial.
			r.logger.Warn("Operator total disagrees with matched cabins",
				"ship", ship.Name,
				"operator", operator.OperatorName,
				"operatorTotal", operator.TotalAvailableCabins)
			enriched.AvailableCabinCount = operator.TotalAvailableCabins
		}
	} else {
		// Browse mode never drops cabins; enrich each with the best date
		// source on hand: cabin-matched dates, ship-level dates, global pool.
		for _, cabin := range shipCabins {
			dates, ok := confirmedCabinDates(operator, cabin)
			if !ok || len(dates) == 0 {
				if operator != nil && len(operator.AvailableDates) > 0 {
					dates = append([]string(nil), operator.AvailableDates...)
				} else {
					dates = append([]string(nil), browsePool...)
				}
			}
			if dates == nil {
				dates = []string{}
			}
			enriched.Cabins = append(enriched.Cabins, entity.EnrichedCabin{
				CabinCatalogEntry: cabin,
				AvailableDates:    dates,
			})
		}
		if operator != nil {
			enriched.AvailableCabinCount = operator.TotalAvailableCabins
		}
	}

	enriched.LowestValidPrice = lowestValidPrice(enriched.Cabins)
	return enriched
}

// confirmedCabinDates finds the operator's availability row for a catalog
// cabin. The second return is false when the operator never reported the
// cabin or reported it with no remaining units.
func confirmedCabinDates(operator *entity.OperatorAvailability, cabin entity.CabinCatalogEntry) ([]string, bool) {
	if operator == nil {
		return nil, false
	}
	for _, row := range operator.Cabins {
		if row.AvailableCount <= 0 {
			continue
		}
		if match.CabinNamesMatch(row.Name, cabin.CabinNameAPI) || match.CabinNamesMatch(row.Name, cabin.CabinName) {
			return append([]string(nil), row.AvailableDates...), true
		}
	}
	return nil, false
}

// buildDynamicShip synthesizes a minimal EnrichedShip from an operator's
// report alone: placeholder imagery, zero-filled pricing, cabin names as
// the operator spells them.
func buildDynamicShip(operator *entity.OperatorAvailability, browsePool []string) entity.EnrichedShip {
	enriched := entity.EnrichedShip{
		ShipCatalogEntry: entity.ShipCatalogEntry{
			Name:      operator.OperatorName,
			ImageMain: dynamicShipImage,
			Images:    []string{},
		},
		Cabins:              []entity.EnrichedCabin{},
		IsAvailable:         true,
		AvailableCabinCount: operator.TotalAvailableCabins,
		IsDynamic:           true,
	}

	for _, row := range operator.Cabins {
		dates := append([]string(nil), row.AvailableDates...)
		if len(dates) == 0 {
			if len(operator.AvailableDates) > 0 {
				dates = append([]string(nil), operator.AvailableDates...)
			} else {
				dates = append([]string(nil), browsePool...)
			}
		}
		if dates == nil {
			dates = []string{}
		}
		enriched.Cabins = append(enriched.Cabins, entity.EnrichedCabin{
			CabinCatalogEntry: entity.CabinCatalogEntry{
				CabinName:    row.Name,
				CabinNameAPI: row.Name,
				BoatName:     operator.OperatorName,
				ImageMain:    dynamicShipImage,
			},
			AvailableDates: dates,
		})
	}

	return enriched
}

// findOperator resolves the availability row for a catalog ship: exact key
// first, then a fuzzy scan in stable name order.
func findOperator(operators map[string]*entity.OperatorAvailability, sortedNames []string, shipName string) *entity.OperatorAvailability {
	if op, ok := operators[shipName]; ok {
		return op
	}
	for _, name := range sortedNames {
		if match.BoatNamesMatch(name, shipName) {
			return operators[name]
		}
	}
	return nil
}

// lowestValidPrice is the minimum cabin price strictly greater than zero
// and not the upstream placeholder sentinel, or 0 when no cabin qualifies.
func lowestValidPrice(cabins []entity.EnrichedCabin) float64 {
	lowest := 0.0
	for _, cabin := range cabins {
		if !cabin.HasValidPrice() {
			continue
		}
		if lowest == 0 || cabin.Price < lowest {
			lowest = cabin.Price
		}
	}
	return lowest
}
