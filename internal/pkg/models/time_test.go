package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"unix seconds", "1740830400", time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)},
		{"rfc3339", "2025-03-01T12:00:00Z", time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)},
		{"offset converted to utc", "2025-03-01T14:00:00+02:00", time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)},
		{"nanoseconds truncated", "2025-03-01T12:00:00.123456789Z", time.Date(2025, 3, 1, 12, 0, 0, 123456000, time.UTC)},
		{"last second of 9999", "253402300799", time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTime(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestParseTime_OutOfRange(t *testing.T) {
	for _, in := range []string{
		"253402300800",
		"1740830400000",
		"-62135596801",
	} {
		_, err := ParseTime(in)
		assert.ErrorIs(t, err, ErrTimeOutOfRange, in)
	}
}

func TestParseTime_Invalid(t *testing.T) {
	_, err := ParseTime("yesterday")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrTimeOutOfRange)
}

func TestStorableTime(t *testing.T) {
	assert.True(t, StorableTime(time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, StorableTime(time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, StorableTime(time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, StorableTime(time.Date(0, 12, 31, 0, 0, 0, 0, time.UTC)))
}
