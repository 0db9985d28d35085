// Package cache provides an optional Redis read-through cache for the
// mentor directory listing the matcher scans on every checkout.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/praveensaharan/CareerCarve-Backend/internal/models"
)

const directoryKey = "mentors:directory"

// DefaultDirectoryTTL bounds how stale the matcher's mentor list can be.
const DefaultDirectoryTTL = 5 * time.Minute

// Connect parses a redis:// URL and verifies the connection.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

type mentorSource interface {
	ListAll(ctx context.Context) ([]models.Mentor, error)
}

// MentorDirectory caches the full mentor list with a TTL. Cache failures
// fall back to the underlying repository so Redis being down never breaks
// matching.
type MentorDirectory struct {
	source mentorSource
	client *redis.Client
	ttl    time.Duration
}

func NewMentorDirectory(source mentorSource, client *redis.Client, ttl time.Duration) *MentorDirectory {
	if ttl <= 0 {
		ttl = DefaultDirectoryTTL
	}
	return &MentorDirectory{source: source, client: client, ttl: ttl}
}

func (d *MentorDirectory) ListAll(ctx context.Context) ([]models.Mentor, error) {
	data, err := d.client.Get(ctx, directoryKey).Bytes()
	if err == nil {
		var mentors []models.Mentor
		if err := json.Unmarshal(data, &mentors); err == nil {
			return mentors, nil
		}
	}

	mentors, err := d.source.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(mentors); err == nil {
		d.client.Set(ctx, directoryKey, data, d.ttl)
	}
	return mentors, nil
}

// Invalidate drops the cached listing after a mentor profile changes.
func (d *MentorDirectory) Invalidate(ctx context.Context) {
	d.client.Del(ctx, directoryKey)
}
