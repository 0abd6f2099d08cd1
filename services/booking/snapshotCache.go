package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tutorhub/services/scheduling"

	"github.com/go-redis/redis/v8"
)

const snapshotPrefix = "sched:snap:"

// RedisSnapshotCache stores per-person, per-date booking lists as JSON.
type RedisSnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSnapshotCache(client *redis.Client, ttl time.Duration) *RedisSnapshotCache {
	return &RedisSnapshotCache{client: client, ttl: ttl}
}

func snapshotKey(personID, date string) string {
	return snapshotPrefix + personID + ":" + date
}

// globEscaper quotes the characters Redis treats specially in a MATCH pattern.
var globEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"?", `\?`,
	"[", `\[`,
	"]", `\]`,
)

// datePattern matches a canonical YYYY-MM-DD key suffix.
const datePattern = "[0-9][0-9][0-9][0-9]-[0-9][0-9]-[0-9][0-9]"

// personPattern matches every cached date of personID and nothing else.
func personPattern(personID string) string {
	return snapshotPrefix + globEscaper.Replace(personID) + ":" + datePattern
}

func (s *RedisSnapshotCache) Get(ctx context.Context, personID, date string) ([]scheduling.Booking, bool, error) {
	data, err := s.client.Get(ctx, snapshotKey(personID, date)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	bookings := []scheduling.Booking{}
	if err := json.Unmarshal(data, &bookings); err != nil {
		return nil, false, fmt.Errorf("decode snapshot %s/%s: %w", personID, date, err)
	}
	return bookings, true, nil
}

func (s *RedisSnapshotCache) Set(ctx context.Context, personID, date string, bookings []scheduling.Booking) error {
	if bookings == nil {
		bookings = []scheduling.Booking{}
	}
	b, err := json.Marshal(bookings)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, snapshotKey(personID, date), b, s.ttl).Err()
}

// InvalidatePerson drops every cached date of personID and returns how many
// keys were removed.
func (s *RedisSnapshotCache) InvalidatePerson(ctx context.Context, personID string) (int, error) {
	var (
		cursor  uint64
		removed int
	)
	pattern := personPattern(personID)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return removed, err
		}
		if len(keys) > 0 {
			n, err := s.client.Del(ctx, keys...).Result()
			if err != nil {
				return removed, err
			}
			removed += int(n)
		}
		if next == 0 {
			return removed, nil
		}
		cursor = next
	}
}
