package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"liveaboard-service/internal/domain/entity"
	"liveaboard-service/internal/domain/repository"
	"liveaboard-service/pkg/logger"
)

// FleetAvailabilityRepository queries per-operator cabin availability from
// the upstream fleet API. The API reports an array of operators; the
// repository re-keys it by operator name for the reconciler.
type FleetAvailabilityRepository struct {
	logger      logger.Logger
	baseURL     string
	bearerToken string
	client      *http.Client
}

// NewFleetAvailabilityRepository creates a new fleet availability repository
func NewFleetAvailabilityRepository(baseURL, bearerToken string, timeout time.Duration, logger logger.Logger) repository.AvailabilityRepository {
	return &FleetAvailabilityRepository{
		logger:      logger,
		baseURL:     baseURL,
		bearerToken: bearerToken,
		client:      &http.Client{Timeout: timeout},
	}
}

// FetchRange queries a contiguous [dateFrom, dateTo] window
func (r *FleetAvailabilityRepository) FetchRange(ctx context.Context, dateFrom, dateTo string) (map[string]*entity.OperatorAvailability, error) {
	query := url.Values{}
	query.Set("dateFrom", dateFrom)
	query.Set("dateTo", dateTo)
	return r.fetch(ctx, query)
}

// FetchDates queries an explicit list of sample dates
func (r *FleetAvailabilityRepository) FetchDates(ctx context.Context, dates []string) (map[string]*entity.OperatorAvailability, error) {
	query := url.Values{}
	query.Set("dates", strings.Join(dates, ","))
	return r.fetch(ctx, query)
}

func (r *FleetAvailabilityRepository) fetch(ctx context.Context, query url.Values) (map[string]*entity.OperatorAvailability, error) {
	reqURL := r.baseURL + "/api/v1/availability?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if r.bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+r.bearerToken)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fleet API returned status %d for availability", resp.StatusCode)
	}

	var response struct {
		Data []entity.OperatorAvailability `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode availability response: %w", err)
	}

	operators := make(map[string]*entity.OperatorAvailability, len(response.Data))
	for i := range response.Data {
		op := response.Data[i]
		if op.OperatorName == "" {
			r.logger.Warn("Skipping availability row with empty operator name")
			continue
		}
		operators[op.OperatorName] = &op
	}
	return operators, nil
}
