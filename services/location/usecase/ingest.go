package usecase

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/piresc/gpstracker/internal/pkg/logger"
	"github.com/piresc/gpstracker/internal/pkg/models"
	"github.com/piresc/gpstracker/services/location"
)

// IngestUC implements the location.IngestUC interface
type IngestUC struct {
	repo   location.LocationRepo
	cfg    models.ValidationConfig
	logger *logger.ZapLogger
}

// NewIngestUC creates a new ingest use case
func NewIngestUC(repo location.LocationRepo, cfg models.ValidationConfig, log *logger.ZapLogger) location.IngestUC {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &IngestUC{
		repo:   repo,
		cfg:    cfg,
		logger: log,
	}
}

// Report validates a raw device report and appends it to the store.
// The write is attempted once; failures are returned to the caller.
func (uc *IngestUC) Report(ctx context.Context, req models.ReportRequest) (*models.Location, error) {
	lat, err := parseCoordinate("lat", req.Lat, 90, uc.cfg.StrictRange)
	if err != nil {
		return nil, err
	}
	lon, err := parseCoordinate("lon", req.Lon, 180, uc.cfg.StrictRange)
	if err != nil {
		return nil, err
	}

	var recordedAt time.Time
	if ts := strings.TrimSpace(req.Timestamp); ts != "" {
		recordedAt, err = models.ParseTime(ts)
		if errors.Is(err, models.ErrTimeOutOfRange) {
			return nil, &location.ValidationError{Field: "timestamp", Reason: "must be between years 0001 and 9999"}
		}
		if err != nil {
			return nil, &location.ValidationError{Field: "timestamp", Reason: "must be RFC3339 or unix seconds"}
		}
	}

	saved, err := uc.repo.Append(ctx, lat, lon, recordedAt)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Location saved",
		logger.Int64("id", saved.ID),
		logger.Float64("lat", saved.Latitude),
		logger.Float64("lon", saved.Longitude),
		logger.Time("timestamp", saved.Timestamp))

	return saved, nil
}

// parseCoordinate parses a required decimal coordinate.
// When strict is set the absolute value must not exceed limit.
func parseCoordinate(field, raw string, limit float64, strict bool) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, &location.ValidationError{Field: field, Reason: "is required"}
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &location.ValidationError{Field: field, Reason: "must be a number"}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &location.ValidationError{Field: field, Reason: "must be a finite number"}
	}
	if strict && math.Abs(v) > limit {
		return 0, &location.ValidationError{
			Field:  field,
			Reason: "must be between -" + strconv.FormatFloat(limit, 'f', -1, 64) + " and " + strconv.FormatFloat(limit, 'f', -1, 64),
		}
	}
	return v, nil
}
