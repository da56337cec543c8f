package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/gpstracker/internal/pkg/logger"
	"github.com/piresc/gpstracker/internal/pkg/models"
	"github.com/piresc/gpstracker/internal/utils"
	"github.com/piresc/gpstracker/services/location"
)

// LocationHandler handles HTTP requests from the tracking device and the map front end
type LocationHandler struct {
	ingestUC    location.IngestUC
	queryUC     location.QueryUC
	retentionUC location.RetentionUC
}

// NewLocationHandler creates a new location HTTP handler
func NewLocationHandler(ingestUC location.IngestUC, queryUC location.QueryUC, retentionUC location.RetentionUC) *LocationHandler {
	return &LocationHandler{
		ingestUC:    ingestUC,
		queryUC:     queryUC,
		retentionUC: retentionUC,
	}
}

// LocationView is the wire form of a stored location.
// The empty-store placeholder serializes as {"lat":0,"lon":0}.
type LocationView struct {
	ID        int64      `json:"id,omitempty"`
	Latitude  float64    `json:"lat"`
	Longitude float64    `json:"lon"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Geohash   string     `json:"geohash,omitempty"`
}

// ReportResponse acknowledges a saved report
type ReportResponse struct {
	Success   bool      `json:"success"`
	ID        int64     `json:"id"`
	Latitude  float64   `json:"lat"`
	Longitude float64   `json:"lon"`
	Timestamp time.Time `json:"timestamp"`
}

// CleanupResponse reports the outcome of a retention run
type CleanupResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}

// StatusResponse summarizes the store
type StatusResponse struct {
	Count        int64 `json:"count"`
	RetentionCap int   `json:"retention_cap"`
}

func toView(loc *models.Location) LocationView {
	if loc.IsPlaceholder() {
		return LocationView{}
	}
	ts := loc.Timestamp
	return LocationView{
		ID:        loc.ID,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Timestamp: &ts,
		Geohash:   loc.Geohash(models.DefaultGeohashPrecision),
	}
}

// Root answers with a banner so the device can check connectivity
func (h *LocationHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "GPS Tracker Backend is running"})
}

// UpdateLocation records a device report.
// Coordinates come from the query string, or on POST from a JSON or form body.
func (h *LocationHandler) UpdateLocation(c echo.Context) error {
	req, err := readReport(c)
	if err != nil {
		logger.Warn("Failed to read location report", logger.Err(err))
		return utils.BadRequestResponse(c, "invalid request body")
	}

	saved, err := h.ingestUC.Report(c.Request().Context(), req)
	if err != nil {
		var ve *location.ValidationError
		if errors.As(err, &ve) {
			return utils.BadRequestResponse(c, ve.Error())
		}
		logger.Error("Failed to save location",
			logger.String("lat", req.Lat),
			logger.String("lon", req.Lon),
			logger.Err(err))
		return utils.InternalServerErrorResponse(c, "failed to save location")
	}

	return c.JSON(http.StatusOK, ReportResponse{
		Success:   true,
		ID:        saved.ID,
		Latitude:  saved.Latitude,
		Longitude: saved.Longitude,
		Timestamp: saved.Timestamp,
	})
}

// GetLocation returns the most recent location or the {lat:0, lon:0} placeholder
func (h *LocationHandler) GetLocation(c echo.Context) error {
	latest, err := h.queryUC.GetLatest(c.Request().Context())
	if err != nil {
		logger.Error("Failed to get latest location", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "failed to get location")
	}
	return c.JSON(http.StatusOK, toView(latest))
}

// GetAllLocations returns the retained trail, newest first
func (h *LocationHandler) GetAllLocations(c echo.Context) error {
	history, err := h.queryUC.GetHistory(c.Request().Context())
	if err != nil {
		logger.Error("Failed to get location history", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "failed to get locations")
	}

	views := make([]LocationView, 0, len(history))
	for _, loc := range history {
		views = append(views, toView(loc))
	}
	return c.JSON(http.StatusOK, views)
}

// Cleanup trims the store to ?cap=N records, or to the configured cap
func (h *LocationHandler) Cleanup(c echo.Context) error {
	capacity := h.retentionUC.DefaultCap()
	if raw := c.QueryParam("cap"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return utils.BadRequestResponse(c, "cap must be a non-negative integer")
		}
		capacity = n
	}

	deleted, err := h.retentionUC.Cleanup(c.Request().Context(), capacity)
	if err != nil {
		logger.Error("Failed to clean up locations", logger.Int("cap", capacity), logger.Err(err))
		return utils.InternalServerErrorResponse(c, "cleanup failed")
	}

	return c.JSON(http.StatusOK, CleanupResponse{
		Success: true,
		Message: "Cleanup done if necessary",
		Deleted: deleted,
	})
}

// Status returns the number of retained locations and the configured cap
func (h *LocationHandler) Status(c echo.Context) error {
	count, err := h.queryUC.Count(c.Request().Context())
	if err != nil {
		logger.Error("Failed to count locations", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "failed to get status")
	}
	return c.JSON(http.StatusOK, StatusResponse{
		Count:        count,
		RetentionCap: h.retentionUC.DefaultCap(),
	})
}

// readReport collects the raw report fields; body values override the query string
func readReport(c echo.Context) (models.ReportRequest, error) {
	req := models.ReportRequest{
		Lat:       c.QueryParam("lat"),
		Lon:       c.QueryParam("lon"),
		Timestamp: c.QueryParam("timestamp"),
	}
	if c.Request().Method != http.MethodPost {
		return req, nil
	}

	ctype := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(ctype, echo.MIMEApplicationJSON) {
		override(&req.Lat, c.FormValue("lat"))
		override(&req.Lon, c.FormValue("lon"))
		override(&req.Timestamp, c.FormValue("timestamp"))
		return req, nil
	}

	var body map[string]interface{}
	dec := json.NewDecoder(c.Request().Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		return req, fmt.Errorf("decode report body: %w", err)
	}

	override(&req.Lat, rawField(body, "lat"))
	override(&req.Lon, rawField(body, "lon"))
	override(&req.Timestamp, rawField(body, "timestamp"))
	return req, nil
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// rawField renders a decoded JSON value back to text so the ingest validation sees one format
func rawField(body map[string]interface{}, key string) string {
	switch v := body[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
