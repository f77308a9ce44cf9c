package httpapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// NewRouter wires the storefront API routes and wraps them with CORS.
func NewRouter(h *Handler, allowedOrigins []string) http.Handler {
	router := httprouter.New()

	router.GET("/health", h.Health)
	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())

	router.GET("/api/v1/ships", h.Ships)
	router.GET("/api/v1/destinations", h.Destinations)
	router.GET("/api/v1/cabins/:id/images", h.CabinImages)

	router.GET("/api/v1/itinerary", h.GetItinerary)
	router.POST("/api/v1/itinerary/toggle", h.ToggleItinerary)
	router.DELETE("/api/v1/itinerary/:index", h.RemoveItineraryItem)
	router.DELETE("/api/v1/itinerary", h.ClearItinerary)
	router.GET("/api/v1/itinerary/totals", h.ItineraryTotals)

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type", sessionHeader},
		ExposedHeaders:   []string{sessionHeader},
		AllowCredentials: false,
	})
	return c.Handler(router)
}
