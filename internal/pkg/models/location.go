package models

import (
	"time"

	"github.com/mmcloughlin/geohash"
)

// DefaultGeohashPrecision is the number of geohash characters attached to location views
const DefaultGeohashPrecision uint = 9

// Location represents a single recorded position reported by the tracking device
type Location struct {
	ID        int64     `json:"id" db:"id"`
	Latitude  float64   `json:"lat" db:"latitude"`
	Longitude float64   `json:"lon" db:"longitude"`
	Timestamp time.Time `json:"timestamp" db:"recorded_at"`
}

// ReportRequest carries the raw, unvalidated coordinates of a device report
type ReportRequest struct {
	Lat       string `json:"lat" query:"lat" form:"lat"`
	Lon       string `json:"lon" query:"lon" form:"lon"`
	Timestamp string `json:"timestamp" query:"timestamp" form:"timestamp"`
}

// Less reports whether l was recorded before other.
// Records with the same timestamp are ordered by ID.
func (l *Location) Less(other *Location) bool {
	if l.Timestamp.Equal(other.Timestamp) {
		return l.ID < other.ID
	}
	return l.Timestamp.Before(other.Timestamp)
}

// IsPlaceholder reports whether l is the zero-coordinate value served when no data exists
func (l *Location) IsPlaceholder() bool {
	return l.ID == 0 && l.Timestamp.IsZero()
}

// Geohash encodes the position as a geohash string of the given precision
func (l *Location) Geohash(precision uint) string {
	return geohash.EncodeWithPrecision(l.Latitude, l.Longitude, precision)
}

// PlaceholderLocation returns the {lat:0, lon:0} value used for an empty store
func PlaceholderLocation() *Location {
	return &Location{}
}
