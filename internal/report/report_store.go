package report

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	StoreKeyPrefix = "reports:financial:"
	storeTTL       = 90 * 24 * time.Hour
)

// Store keeps generated report bundles in a Redis hash per period, one
// field per file.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

var errStoreUnavailable = errors.New("report store is not configured")

func (s *Store) Save(ctx context.Context, period string, files map[string][]byte) error {
	if s.rdb == nil {
		return errStoreUnavailable
	}
	key := StoreKeyPrefix + period

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	values := make([]any, 0, 2*len(names))
	for _, name := range names {
		values = append(values, name, string(files[name]))
	}

	if err := s.rdb.HSet(ctx, key, values...).Err(); err != nil {
		return err
	}
	return s.rdb.Expire(ctx, key, storeTTL).Err()
}

func (s *Store) Load(ctx context.Context, period string) (map[string][]byte, error) {
	if s.rdb == nil {
		return nil, errStoreUnavailable
	}
	fields, err := s.rdb.HGetAll(ctx, StoreKeyPrefix+period).Result()
	if err != nil {
		return nil, err
	}
	files := make(map[string][]byte, len(fields))
	for name, body := range fields {
		files[name] = []byte(body)
	}
	return files, nil
}
