package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/piresc/gpstracker/internal/pkg/models"
	"github.com/piresc/gpstracker/services/location"
	"github.com/piresc/gpstracker/services/location/retention"
)

const (
	// KeyLocationIndex is a sorted set of record IDs scored by timestamp micros
	KeyLocationIndex = "%s:locations"
	// KeyLocationData is a hash of record ID to JSON payload
	KeyLocationData = "%s:locations:data"
	// KeyLocationSeq is the counter assigning record IDs
	KeyLocationSeq = "%s:locations:seq"

	maxTrimAttempts = 10
)

var errTrimContention = errors.New("trim aborted after repeated concurrent modification")

// RedisLocationRepo stores locations in a Redis sorted set
type RedisLocationRepo struct {
	client   *redis.Client
	timeout  time.Duration
	indexKey string
	dataKey  string
	seqKey   string
	trimMu   sync.Mutex
}

// NewRedisLocationRepository creates a location store whose keys share prefix.
// The store takes ownership of client and closes it on Close.
func NewRedisLocationRepository(client *redis.Client, prefix string, timeout time.Duration) *RedisLocationRepo {
	if prefix == "" {
		prefix = "gps"
	}
	return &RedisLocationRepo{
		client:   client,
		timeout:  timeout,
		indexKey: fmt.Sprintf(KeyLocationIndex, prefix),
		dataKey:  fmt.Sprintf(KeyLocationData, prefix),
		seqKey:   fmt.Sprintf(KeyLocationSeq, prefix),
	}
}

// Append stores a new location and returns it with its assigned ID
func (r *RedisLocationRepo) Append(ctx context.Context, latitude, longitude float64, recordedAt time.Time) (*models.Location, error) {
	if recordedAt.IsZero() {
		recordedAt = models.Now()
	}
	recordedAt = models.NormalizeTime(recordedAt)
	if err := checkStorable(recordedAt); err != nil {
		return nil, err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	id, err := r.client.Incr(ctx, r.seqKey).Result()
	if err != nil {
		return nil, location.NewStorageError("append", fmt.Errorf("allocate id: %w", err))
	}

	loc := &models.Location{
		ID:        id,
		Latitude:  latitude,
		Longitude: longitude,
		Timestamp: recordedAt,
	}
	payload, err := json.Marshal(loc)
	if err != nil {
		return nil, location.NewStorageError("append", err)
	}

	member := memberFor(id)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, r.dataKey, member, payload)
		pipe.ZAdd(ctx, r.indexKey, &redis.Z{
			Score:  float64(recordedAt.UnixMicro()),
			Member: member,
		})
		return nil
	})
	if err != nil {
		return nil, location.NewStorageError("append", err)
	}

	return loc, nil
}

// Latest returns the most recent location, or location.ErrNoData if none exist
func (r *RedisLocationRepo) Latest(ctx context.Context) (*models.Location, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	members, err := r.client.ZRevRange(ctx, r.indexKey, 0, 0).Result()
	if err != nil {
		return nil, location.NewStorageError("latest", err)
	}
	if len(members) == 0 {
		return nil, location.ErrNoData
	}

	payload, err := r.client.HGet(ctx, r.dataKey, members[0]).Result()
	if errors.Is(err, redis.Nil) {
		// evicted between the two reads
		return nil, location.ErrNoData
	}
	if err != nil {
		return nil, location.NewStorageError("latest", err)
	}

	loc, err := decodeLocation(payload)
	if err != nil {
		return nil, location.NewStorageError("latest", err)
	}
	return loc, nil
}

// All returns every retained location, newest first
func (r *RedisLocationRepo) All(ctx context.Context) ([]*models.Location, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	members, err := r.client.ZRevRange(ctx, r.indexKey, 0, -1).Result()
	if err != nil {
		return nil, location.NewStorageError("all", err)
	}

	locations := make([]*models.Location, 0, len(members))
	if len(members) == 0 {
		return locations, nil
	}

	values, err := r.client.HMGet(ctx, r.dataKey, members...).Result()
	if err != nil {
		return nil, location.NewStorageError("all", err)
	}

	for _, v := range values {
		payload, ok := v.(string)
		if !ok {
			continue
		}
		loc, err := decodeLocation(payload)
		if err != nil {
			return nil, location.NewStorageError("all", err)
		}
		locations = append(locations, loc)
	}
	return locations, nil
}

// Count returns the number of retained locations
func (r *RedisLocationRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	total, err := r.client.ZCard(ctx, r.indexKey).Result()
	if err != nil {
		return 0, location.NewStorageError("count", err)
	}
	return total, nil
}

// Trim deletes the oldest locations so that at most cap remain.
// The count and removal run in a WATCH/MULTI transaction retried on conflict.
func (r *RedisLocationRepo) Trim(ctx context.Context, cap int) (int64, error) {
	r.trimMu.Lock()
	defer r.trimMu.Unlock()

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var deleted int64
	trim := func(tx *redis.Tx) error {
		deleted = 0

		total, err := tx.ZCard(ctx, r.indexKey).Result()
		if err != nil {
			return err
		}

		excess := retention.ExcessCount(total, int64(cap))
		if excess == 0 {
			return nil
		}

		members, err := tx.ZRange(ctx, r.indexKey, 0, excess-1).Result()
		if err != nil {
			return err
		}

		zmembers := make([]interface{}, len(members))
		for i, m := range members {
			zmembers[i] = m
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.ZRem(ctx, r.indexKey, zmembers...)
			pipe.HDel(ctx, r.dataKey, members...)
			return nil
		})
		if err != nil {
			return err
		}

		deleted = int64(len(members))
		return nil
	}

	for attempt := 0; attempt < maxTrimAttempts; attempt++ {
		err := r.client.Watch(ctx, trim, r.indexKey)
		if err == nil {
			return deleted, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return 0, location.NewStorageError("trim", err)
		}
	}
	return 0, location.NewStorageError("trim", errTrimContention)
}

// Close closes the Redis client
func (r *RedisLocationRepo) Close() error {
	return r.client.Close()
}

func (r *RedisLocationRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// memberFor zero-pads id so equal-score members sort in ID order
func memberFor(id int64) string {
	return fmt.Sprintf("%020d", id)
}

func decodeLocation(payload string) (*models.Location, error) {
	var loc models.Location
	if err := json.Unmarshal([]byte(payload), &loc); err != nil {
		return nil, fmt.Errorf("%w: %v", location.ErrCorruptRecord, err)
	}
	loc.Timestamp = models.NormalizeTime(loc.Timestamp)
	return &loc, nil
}
