package repository

import (
	"context"
	"time"

	"liveaboard-service/internal/domain/entity"
	"liveaboard-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormDestinationRepository implements the DestinationRepository interface
type GormDestinationRepository struct {
	db *gorm.DB
}

// NewGormDestinationRepository creates a new GORM destination repository
func NewGormDestinationRepository(db *gorm.DB) repository.DestinationRepository {
	return &GormDestinationRepository{
		db: db,
	}
}

// Destinations GORM model for database mapping
type Destinations struct {
	ID          uint           `gorm:"primaryKey"`
	Slug        string         `gorm:"column:slug;unique"`
	DisplayName string         `gorm:"column:display_name"`
	Region      string         `gorm:"column:region"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides the default table name
func (Destinations) TableName() string {
	return "m_destinations"
}

// GetBySlug finds a destination by its query-string id
func (r *GormDestinationRepository) GetBySlug(ctx context.Context, slug string) (*entity.Destination, error) {
	var destination Destinations
	result := r.db.WithContext(ctx).Where("slug = ?", slug).First(&destination)

	if result.Error != nil {
		return nil, result.Error
	}

	// Convert GORM model to domain entity
	return &entity.Destination{
		ID:          destination.ID,
		Slug:        destination.Slug,
		DisplayName: destination.DisplayName,
		Region:      destination.Region,
		CreatedAt:   destination.CreatedAt,
		UpdatedAt:   destination.UpdatedAt,
	}, nil
}

// ListAll returns every destination in slug order
func (r *GormDestinationRepository) ListAll(ctx context.Context) ([]entity.Destination, error) {
	var rows []Destinations
	result := r.db.WithContext(ctx).Order("slug asc").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	destinations := make([]entity.Destination, 0, len(rows))
	for _, row := range rows {
		destinations = append(destinations, entity.Destination{
			ID:          row.ID,
			Slug:        row.Slug,
			DisplayName: row.DisplayName,
			Region:      row.Region,
			CreatedAt:   row.CreatedAt,
			UpdatedAt:   row.UpdatedAt,
		})
	}
	return destinations, nil
}
