package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"liveaboard-service/internal/domain/entity"
	"liveaboard-service/pkg/logger"
	"liveaboard-service/pkg/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

const sessionHeader = "X-Session-ID"

// SearchProvider is the slice of the search usecase the API needs.
type SearchProvider interface {
	Search(ctx context.Context, criteria entity.SearchCriteria) []entity.EnrichedShip
	CabinImages(ctx context.Context, cabinID string) []string
	Destinations(ctx context.Context) []entity.Destination
}

// ItineraryManager is the slice of the itinerary usecase the API needs.
type ItineraryManager interface {
	List(ctx context.Context, sessionID string) ([]entity.ItineraryLineItem, error)
	Toggle(ctx context.Context, sessionID, cabinName, shipName, date string, price float64, guestsIfAdding int) (bool, error)
	Remove(ctx context.Context, sessionID string, index int) error
	Clear(ctx context.Context, sessionID string) error
	Totals(ctx context.Context, sessionID string) (entity.ItineraryTotals, error)
}

// Handler serves the storefront API.
type Handler struct {
	search          SearchProvider
	itinerary       ItineraryManager
	logger          logger.Logger
	defaultDuration int
	defaultGuests   int
}

// NewHandler creates a new API handler
func NewHandler(search SearchProvider, itinerary ItineraryManager, logger logger.Logger, defaultDuration, defaultGuests int) *Handler {
	return &Handler{
		search:          search,
		itinerary:       itinerary,
		logger:          logger,
		defaultDuration: defaultDuration,
		defaultGuests:   defaultGuests,
	}
}

// Ships handles GET /api/v1/ships
func (h *Handler) Ships(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	criteria := utils.ParseSearchCriteria(r.URL.Query(), h.defaultDuration, h.defaultGuests)
	ships := h.search.Search(r.Context(), criteria)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"data":     ships,
		"criteria": utils.SerializeSearchCriteria(criteria).Encode(),
	})
}

// Destinations handles GET /api/v1/destinations
func (h *Handler) Destinations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"data": h.search.Destinations(r.Context()),
	})
}

// CabinImages handles GET /api/v1/cabins/:id/images
func (h *Handler) CabinImages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"images": h.search.CabinImages(r.Context(), ps.ByName("id")),
	})
}

// GetItinerary handles GET /api/v1/itinerary
func (h *Handler) GetItinerary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sessionID := h.session(w, r)
	items, err := h.itinerary.List(r.Context(), sessionID)
	if err != nil {
		h.logger.Error("Itinerary list failed", "session", sessionID, "error", err)
		respondError(w, http.StatusInternalServerError, "could not load itinerary")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

// ToggleItinerary handles POST /api/v1/itinerary/toggle
func (h *Handler) ToggleItinerary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sessionID := h.session(w, r)

	var body struct {
		CabinName string  `json:"cabinName"`
		ShipName  string  `json:"shipName"`
		Date      string  `json:"date"`
		Price     float64 `json:"price"`
		Guests    int     `json:"guests"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if body.CabinName == "" || body.ShipName == "" || !utils.IsValidDate(body.Date) {
		respondError(w, http.StatusBadRequest, "cabinName, shipName and date are required")
		return
	}

	added, err := h.itinerary.Toggle(r.Context(), sessionID, body.CabinName, body.ShipName, body.Date, body.Price, body.Guests)
	if err != nil {
		h.logger.Error("Itinerary toggle failed", "session", sessionID, "error", err)
		respondError(w, http.StatusInternalServerError, "could not update itinerary")
		return
	}

	totals, err := h.itinerary.Totals(r.Context(), sessionID)
	if err != nil {
		h.logger.Error("Itinerary totals failed", "session", sessionID, "error", err)
		respondError(w, http.StatusInternalServerError, "could not read itinerary totals")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"added":  added,
		"totals": totals,
	})
}

// RemoveItineraryItem handles DELETE /api/v1/itinerary/:index
func (h *Handler) RemoveItineraryItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sessionID := h.session(w, r)
	index, err := strconv.Atoi(ps.ByName("index"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "index must be an integer")
		return
	}
	if err := h.itinerary.Remove(r.Context(), sessionID, index); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// ClearItinerary handles DELETE /api/v1/itinerary
func (h *Handler) ClearItinerary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sessionID := h.session(w, r)
	if err := h.itinerary.Clear(r.Context(), sessionID); err != nil {
		h.logger.Error("Itinerary clear failed", "session", sessionID, "error", err)
		respondError(w, http.StatusInternalServerError, "could not clear itinerary")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// ItineraryTotals handles GET /api/v1/itinerary/totals
func (h *Handler) ItineraryTotals(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sessionID := h.session(w, r)
	totals, err := h.itinerary.Totals(r.Context(), sessionID)
	if err != nil {
		h.logger.Error("Itinerary totals failed", "session", sessionID, "error", err)
		respondError(w, http.StatusInternalServerError, "could not read itinerary totals")
		return
	}
	respondJSON(w, http.StatusOK, totals)
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Healthy"))
}

// session returns the caller's session id, minting one when the header is
// absent. The id is always echoed back so the client can persist it.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) string {
	sessionID := r.Header.Get(sessionHeader)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	w.Header().Set(sessionHeader, sessionID)
	return sessionID
}

func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func respondError(w http.ResponseWriter, code int, msg string) {
	respondJSON(w, code, map[string]string{"error": msg})
}
