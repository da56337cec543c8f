package logger

import (
	"time"

	"go.uber.org/zap"
)

// Field is a structured log field. Packages outside logger build fields
// through the helpers below and never import zap themselves.
type Field = zap.Field

func String(key, val string) Field { return zap.String(key, val) }

func Int(key string, val int) Field { return zap.Int(key, val) }

func Int64(key string, val int64) Field { return zap.Int64(key, val) }

// Float64 is used for coordinates
func Float64(key string, val float64) Field { return zap.Float64(key, val) }

func Duration(key string, val time.Duration) Field { return zap.Duration(key, val) }

// Time logs t in RFC3339 through the encoder config
func Time(key string, val time.Time) Field { return zap.Time(key, val) }

// Any falls back to reflection; prefer a typed helper
func Any(key string, val interface{}) Field { return zap.Any(key, val) }

// Err logs err under the "error" key
func Err(err error) Field { return zap.Error(err) }
