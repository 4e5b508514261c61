// internal/benchmarks/store_test.go
package benchmarks

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"kyp-credit-workers/internal/common/logger"
	"kyp-credit-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, sqlmock.Sqlmock, *miniredis.Miniredis) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	store := NewStore(db, rdb, 30*time.Minute, logger.NewTestLogger(t))
	return store, mock, mr
}

func TestDefaultTableClassification(t *testing.T) {
	table := Default()

	tests := []struct {
		name     string
		metric   string
		value    float64
		expected models.Classification
	}{
		{"current ratio excellent", MetricCurrentRatio, 2.5, models.ClassExcellent},
		{"current ratio good at boundary", MetricCurrentRatio, 1.5, models.ClassGood},
		{"current ratio adequate", MetricCurrentRatio, 1.0, models.ClassAdequate},
		{"current ratio below expected", MetricCurrentRatio, 0.8, models.ClassBelowExpected},
		{"roe excellent at boundary", MetricROE, 0.20, models.ClassExcellent},
		{"net margin adequate", MetricNetMargin, 0.05, models.ClassAdequate},
		{"debt ratio excellent when low", MetricDebtRatio, 0.30, models.ClassExcellent},
		{"debt ratio good at boundary", MetricDebtRatio, 0.50, models.ClassGood},
		{"debt ratio below expected when high", MetricDebtRatio, 0.80, models.ClassBelowExpected},
		{"debt to equity adequate", MetricDebtToEquity, 1.5, models.ClassAdequate},
		{"interest coverage excellent", MetricInterestCoverage, 6.0, models.ClassExcellent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.Classify(tt.metric, models.NewRatio(tt.value))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestClassifyNotApplicable(t *testing.T) {
	table := Default()

	assert.Equal(t, models.ClassNotApplicable, table.Classify(MetricROE, models.NotApplicable()))
	assert.Equal(t, models.ClassNotApplicable, table.Classify("unknown_metric", models.NewRatio(1.0)))
}

func TestResolveSectorEmptySectorReturnsDefaults(t *testing.T) {
	store, mock, _ := newTestStore(t)

	table := store.ResolveSector(context.Background(), "")

	assert.Equal(t, Default(), table)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveSectorMergesOverrides(t *testing.T) {
	store, mock, _ := newTestStore(t)

	rows := sqlmock.NewRows([]string{"metric", "excellent", "good", "adequate", "lower_is_better"}).
		AddRow(MetricCurrentRatio, 1.8, 1.3, 0.9, false)
	mock.ExpectQuery("SELECT metric, excellent, good, adequate, lower_is_better").
		WithArgs("retail").
		WillReturnRows(rows)

	table := store.ResolveSector(context.Background(), "retail")

	assert.Equal(t, Thresholds{Excellent: 1.8, Good: 1.3, Adequate: 0.9}, table[MetricCurrentRatio])
	// Untouched metrics keep their defaults.
	assert.Equal(t, Default()[MetricROE], table[MetricROE])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveSectorCachesOverrides(t *testing.T) {
	store, mock, mr := newTestStore(t)

	rows := sqlmock.NewRows([]string{"metric", "excellent", "good", "adequate", "lower_is_better"}).
		AddRow(MetricDebtRatio, 0.40, 0.55, 0.75, true)
	mock.ExpectQuery("SELECT metric, excellent, good, adequate, lower_is_better").
		WithArgs("construction").
		WillReturnRows(rows)

	first := store.ResolveSector(context.Background(), "construction")
	assert.True(t, mr.Exists("benchmarks:sector:construction"))

	// Second resolution is served from cache; no second query expectation.
	second := store.ResolveSector(context.Background(), "construction")
	assert.Equal(t, first, second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveSectorFallsBackOnQueryError(t *testing.T) {
	store, mock, _ := newTestStore(t)

	mock.ExpectQuery("SELECT metric, excellent, good, adequate, lower_is_better").
		WithArgs("mining").
		WillReturnError(assert.AnError)

	table := store.ResolveSector(context.Background(), "mining")

	assert.Equal(t, Default(), table)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveSectorDropsCorruptCacheEntry(t *testing.T) {
	store, mock, mr := newTestStore(t)

	require.NoError(t, mr.Set("benchmarks:sector:services", "{not json"))

	rows := sqlmock.NewRows([]string{"metric", "excellent", "good", "adequate", "lower_is_better"}).
		AddRow(MetricNetMargin, 0.25, 0.18, 0.08, false)
	mock.ExpectQuery("SELECT metric, excellent, good, adequate, lower_is_better").
		WithArgs("services").
		WillReturnRows(rows)

	table := store.ResolveSector(context.Background(), "services")

	assert.Equal(t, Thresholds{Excellent: 0.25, Good: 0.18, Adequate: 0.08}, table[MetricNetMargin])

	cached, err := mr.Get("benchmarks:sector:services")
	require.NoError(t, err)
	var overrides Table
	require.NoError(t, json.Unmarshal([]byte(cached), &overrides))
	assert.Contains(t, overrides, MetricNetMargin)
	assert.NoError(t, mock.ExpectationsWereMet())
}
