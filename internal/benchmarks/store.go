// internal/benchmarks/store.go
package benchmarks

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"kyp-credit-workers/internal/common/logger"

	"github.com/redis/go-redis/v9"
)

// Store resolves the benchmark table for a sector. Sector-specific threshold
// rows live in Postgres and are cached in Redis; any miss or error falls back
// to the default table so analysis never blocks on storage.
type Store struct {
	db       *sql.DB
	redis    *redis.Client
	log      logger.Logger
	cacheTTL time.Duration
}

func NewStore(db *sql.DB, rdb *redis.Client, cacheTTL time.Duration, log logger.Logger) *Store {
	return &Store{
		db:       db,
		redis:    rdb,
		log:      log,
		cacheTTL: cacheTTL,
	}
}

// ResolveSector returns the benchmark table for the given sector: defaults,
// with any stored sector overrides merged on top. The empty sector and
// unknown sectors resolve to the default table.
func (s *Store) ResolveSector(ctx context.Context, sector string) Table {
	base := Default()
	if sector == "" || s.db == nil {
		return base
	}

	if overrides, ok := s.cachedOverrides(ctx, sector); ok {
		return base.Merge(overrides)
	}

	overrides, err := s.queryOverrides(ctx, sector)
	if err != nil {
		s.log.WithError(err).Warn("sector benchmark lookup failed, using defaults",
			map[string]interface{}{"sector": sector})
		return base
	}
	if len(overrides) == 0 {
		return base
	}

	s.cacheOverrides(ctx, sector, overrides)
	return base.Merge(overrides)
}

func (s *Store) cachedOverrides(ctx context.Context, sector string) (Table, bool) {
	if s.redis == nil {
		return nil, false
	}
	val, err := s.redis.Get(ctx, cacheKey(sector)).Result()
	if err != nil {
		return nil, false
	}
	var overrides Table
	if err := json.Unmarshal([]byte(val), &overrides); err != nil {
		// Stale or corrupt entry; drop it and fall through to the database.
		s.redis.Del(ctx, cacheKey(sector))
		return nil, false
	}
	return overrides, true
}

func (s *Store) queryOverrides(ctx context.Context, sector string) (Table, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT metric, excellent, good, adequate, lower_is_better
		FROM sector_benchmarks
		WHERE sector = $1`, sector)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	overrides := Table{}
	for rows.Next() {
		var metric string
		var t Thresholds
		if err := rows.Scan(&metric, &t.Excellent, &t.Good, &t.Adequate, &t.LowerIsBetter); err != nil {
			return nil, err
		}
		overrides[metric] = t
	}
	return overrides, rows.Err()
}

func (s *Store) cacheOverrides(ctx context.Context, sector string, overrides Table) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(overrides)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, cacheKey(sector), data, s.cacheTTL).Err(); err != nil {
		s.log.WithError(err).Debug("failed to cache sector benchmarks",
			map[string]interface{}{"sector": sector})
	}
}

func cacheKey(sector string) string {
	return "benchmarks:sector:" + sector
}
