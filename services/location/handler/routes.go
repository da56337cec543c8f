package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/piresc/gpstracker/services/location"
	httpHandler "github.com/piresc/gpstracker/services/location/handler/http"
)

// HTTPHandler combines all handlers for the location service
type HTTPHandler struct {
	locationHTTP *httpHandler.LocationHandler
}

// NewHTTPHandler creates a new combined handler
func NewHTTPHandler(ingestUC location.IngestUC, queryUC location.QueryUC, retentionUC location.RetentionUC) *HTTPHandler {
	return &HTTPHandler{
		locationHTTP: httpHandler.NewLocationHandler(ingestUC, queryUC, retentionUC),
	}
}

// RegisterRoutes registers all HTTP routes.
// Paths match the ones flashed into deployed devices and used by the map front end.
func (h *HTTPHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.locationHTTP.Root)

	// Device routes
	e.GET("/update_location", h.locationHTTP.UpdateLocation)
	e.POST("/update_location", h.locationHTTP.UpdateLocation)

	// Front end routes
	e.GET("/get_location", h.locationHTTP.GetLocation)
	e.GET("/get_all_locations", h.locationHTTP.GetAllLocations)
	e.GET("/status", h.locationHTTP.Status)

	// Maintenance
	e.DELETE("/cleanup", h.locationHTTP.Cleanup)
}
