package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"

	"hackathon-radar/pkg/domain"
	"hackathon-radar/pkg/logger"
)

const fieldSep = "\x1f"

// RedisStore keeps the dataset in one hash: field "source\x1fid", value the
// record JSON. HSETNX makes every write insert-if-absent.
type RedisStore struct {
	rdb *redis.Client
	key string
	log *logger.Logger
}

func NewRedisStore(rdb *redis.Client, key string, log *logger.Logger) (*RedisStore, error) {
	if rdb == nil {
		return nil, fmt.Errorf("redis store: client not initialized")
	}
	if key == "" {
		key = "hackathons"
	}
	return &RedisStore{rdb: rdb, key: key, log: log.Component("redis-store")}, nil
}

func (s *RedisStore) Name() string { return "redis" }

func redisField(k domain.Key) string {
	return k.Source + fieldSep + k.ID
}

// Load returns all records ordered by uploaded_at then key. Entries that do
// not decode are skipped with a warning.
func (s *RedisStore) Load(ctx context.Context) (domain.Dataset, error) {
	entries, err := s.rdb.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, persistErr(s.Name(), "hgetall", err)
	}

	dataset := make(domain.Dataset, 0, len(entries))
	for field, value := range entries {
		var h domain.Hackathon
		if err := json.Unmarshal([]byte(value), &h); err != nil {
			s.log.Warn("skipping undecodable record", "field", strings.ReplaceAll(field, fieldSep, "/"), "error", err)
			continue
		}
		dataset = append(dataset, h)
	}
	sort.SliceStable(dataset, func(i, j int) bool {
		a, b := dataset[i], dataset[j]
		if !a.UploadedAt.Equal(b.UploadedAt) {
			return a.UploadedAt.Before(b.UploadedAt)
		}
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		return a.ID < b.ID
	})
	return dataset, nil
}

// Save writes all records with HSETNX inside MULTI/EXEC.
func (s *RedisStore) Save(ctx context.Context, dataset domain.Dataset) error {
	if len(dataset) == 0 {
		return nil
	}
	values := make(map[string][]byte, len(dataset))
	for _, h := range dataset {
		field := redisField(h.Key())
		if _, dup := values[field]; dup {
			continue
		}
		b, err := json.Marshal(h)
		if err != nil {
			return persistErr(s.Name(), "encode", err)
		}
		values[field] = b
	}
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for field, b := range values {
			pipe.HSetNX(ctx, s.key, field, b)
		}
		return nil
	})
	if err != nil {
		return persistErr(s.Name(), "exec", err)
	}
	return nil
}
