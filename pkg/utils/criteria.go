package utils

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"liveaboard-service/internal/domain/entity"
)

// ParseSearchCriteria reads the storefront query-string surface into
// SearchCriteria. Absent parameters leave the criterion inactive; present
// but unparsable values fall back to the supplied defaults instead of
// rejecting the request.
func ParseSearchCriteria(values url.Values, defaultDuration, defaultGuests int) entity.SearchCriteria {
	criteria := entity.SearchCriteria{
		Query: strings.TrimSpace(values.Get("q")),
		Sort:  parseSortKey(values.Get("sort")),
	}

	if raw := values.Get("destinations"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				criteria.Destinations = append(criteria.Destinations, id)
			}
		}
	}

	if from := values.Get("dateFrom"); IsValidDate(from) {
		criteria.DateFrom = from
		if to := values.Get("dateTo"); IsValidDate(to) {
			criteria.DateTo = to
		} else {
			criteria.DateTo = from
		}
	}

	if raw := values.Get("duration"); raw != "" {
		if d, err := strconv.Atoi(raw); err == nil && d > 0 {
			criteria.Duration = d
		} else {
			criteria.Duration = defaultDuration
		}
	}

	if raw := values.Get("guests"); raw != "" {
		if g, err := strconv.Atoi(raw); err == nil && g > 0 {
			criteria.Guests = g
		} else {
			criteria.Guests = defaultGuests
		}
	}

	return criteria
}

// SerializeSearchCriteria writes criteria back into the same query-string
// shape ParseSearchCriteria consumes, so the current selection can be
// reflected in the page URL.
func SerializeSearchCriteria(criteria entity.SearchCriteria) url.Values {
	values := url.Values{}
	if criteria.Query != "" {
		values.Set("q", criteria.Query)
	}
	if len(criteria.Destinations) > 0 {
		values.Set("destinations", strings.Join(criteria.Destinations, ","))
	}
	if criteria.DateFrom != "" {
		values.Set("dateFrom", criteria.DateFrom)
		if criteria.DateTo != "" {
			values.Set("dateTo", criteria.DateTo)
		}
	}
	if criteria.Duration > 0 {
		values.Set("duration", strconv.Itoa(criteria.Duration))
	}
	if criteria.Guests > 0 {
		values.Set("guests", strconv.Itoa(criteria.Guests))
	}
	if criteria.Sort != "" && criteria.Sort != entity.SortRecommended {
		values.Set("sort", string(criteria.Sort))
	}
	return values
}

func parseSortKey(raw string) entity.SortKey {
	switch entity.SortKey(raw) {
	case entity.SortPriceLow, entity.SortPriceHigh, entity.SortName:
		return entity.SortKey(raw)
	default:
		return entity.SortRecommended
	}
}

// IsValidDate reports whether s is a well-formed YYYY-MM-DD date.
func IsValidDate(s string) bool {
	if s == "" {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// ParseTripLength extracts the leading integer from a free-text trip length
// such as "3" or "3D2N". Unparsable input yields the fallback.
func ParseTripLength(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	end := 0
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == 0 {
		return fallback
	}
	days, err := strconv.Atoi(raw[:end])
	if err != nil || days <= 0 {
		return fallback
	}
	return days
}
