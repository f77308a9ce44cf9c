// internal/domain/entity/destination.go
package entity

import "time"

// Destination is a reference row mapping a destination id used on the
// query string (e.g. "komodo-national-park") to its display name.
type Destination struct {
	ID          uint      `json:"id"`
	Slug        string    `json:"slug"`
	DisplayName string    `json:"displayName"`
	Region      string    `json:"region"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
