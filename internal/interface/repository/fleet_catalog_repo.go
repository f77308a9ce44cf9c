package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"liveaboard-service/internal/domain/entity"
	"liveaboard-service/internal/domain/repository"
	"liveaboard-service/pkg/logger"
)

// FleetCatalogRepository fetches the ship and cabin catalogs from the
// upstream fleet API.
type FleetCatalogRepository struct {
	logger      logger.Logger
	baseURL     string
	bearerToken string
	client      *http.Client
}

// NewFleetCatalogRepository creates a new fleet catalog repository
func NewFleetCatalogRepository(baseURL, bearerToken string, timeout time.Duration, logger logger.Logger) repository.CatalogRepository {
	return &FleetCatalogRepository{
		logger:      logger,
		baseURL:     baseURL,
		bearerToken: bearerToken,
		client:      &http.Client{Timeout: timeout},
	}
}

// FetchShipCatalog retrieves the full ship catalog, no paging
func (r *FleetCatalogRepository) FetchShipCatalog(ctx context.Context) ([]entity.ShipCatalogEntry, error) {
	var response struct {
		Data []entity.ShipCatalogEntry `json:"data"`
	}
	if err := r.getJSON(ctx, "/api/v1/boats", &response); err != nil {
		return nil, fmt.Errorf("fetch ship catalog: %w", err)
	}
	return response.Data, nil
}

// FetchCabinCatalog retrieves the full cabin catalog, no paging
func (r *FleetCatalogRepository) FetchCabinCatalog(ctx context.Context) ([]entity.CabinCatalogEntry, error) {
	var response struct {
		Data []entity.CabinCatalogEntry `json:"data"`
	}
	if err := r.getJSON(ctx, "/api/v1/cabins", &response); err != nil {
		return nil, fmt.Errorf("fetch cabin catalog: %w", err)
	}
	return response.Data, nil
}

// FetchCabinImageDetails retrieves the image gallery for a single cabin
func (r *FleetCatalogRepository) FetchCabinImageDetails(ctx context.Context, cabinID string) ([]string, error) {
	var response struct {
		Data struct {
			Images []string `json:"images"`
		} `json:"data"`
	}
	path := "/api/v1/cabins/" + url.PathEscape(cabinID) + "/images"
	if err := r.getJSON(ctx, path, &response); err != nil {
		return nil, fmt.Errorf("fetch cabin images for %s: %w", cabinID, err)
	}
	return response.Data.Images, nil
}

func (r *FleetCatalogRepository) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if r.bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+r.bearerToken)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fleet API returned status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
