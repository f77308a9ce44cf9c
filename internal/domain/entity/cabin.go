// internal/domain/entity/cabin.go
package entity

// PlaceholderPrice is the upstream sentinel meaning "no real price set".
// It must be excluded from every price aggregate.
const PlaceholderPrice = 43243243

// CabinFacilities flags the amenities a cabin advertises.
type CabinFacilities struct {
	Balcony        bool `json:"balcony"`
	Bathtub        bool `json:"bathtub"`
	Seaview        bool `json:"seaview"`
	LargeBed       bool `json:"largeBed"`
	PrivateJacuzzi bool `json:"privateJacuzzi"`
}

// CabinCatalogEntry is a single cabin row from the cabin catalog feed.
// BoatName is the free-text join key to ShipCatalogEntry.Name.
type CabinCatalogEntry struct {
	CabinID       string          `json:"cabinId"`
	CabinName     string          `json:"cabinName"`
	CabinNameAPI  string          `json:"cabinNameApi"` // name as the availability feed spells it
	BoatName      string          `json:"boatName"`
	Description   string          `json:"description"`
	TotalCapacity int             `json:"totalCapacity"`
	Price         float64         `json:"price"`
	Facilities    CabinFacilities `json:"facilities"`
	ImageMain     string          `json:"imageMain"`
}

// HasValidPrice reports whether the cabin carries a real price, i.e. one
// that is positive and not the upstream placeholder sentinel.
func (c CabinCatalogEntry) HasValidPrice() bool {
	return c.Price > 0 && c.Price != PlaceholderPrice
}
