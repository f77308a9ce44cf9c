// internal/domain/entity/itinerary.go
package entity

// ItineraryLineItem is one reserved cabin in the user's in-progress
// itinerary. Identity for presence and toggle checks is the
// (CabinName, ShipName, Date) triple, not a generated id.
type ItineraryLineItem struct {
	CabinName  string  `json:"cabinName" bson:"cabinName"`
	ShipName   string  `json:"shipName" bson:"shipName"`
	Date       string  `json:"date" bson:"date"` // YYYY-MM-DD
	Price      float64 `json:"price" bson:"price"`
	GuestCount int     `json:"guestCount" bson:"guestCount"`
	AddedAt    int64   `json:"addedAt" bson:"addedAt"` // epoch millis
}

// Matches reports whether the item carries the given identity triple.
func (i ItineraryLineItem) Matches(cabinName, shipName, date string) bool {
	return i.CabinName == cabinName && i.ShipName == shipName && i.Date == date
}

// ItineraryTotals aggregates an itinerary. Items with a zero price count
// toward CabinCount and GuestCount but contribute nothing to PriceTotal.
type ItineraryTotals struct {
	CabinCount int     `json:"cabinCount"`
	GuestCount int     `json:"guestCount"`
	PriceTotal float64 `json:"priceTotal"`
}
