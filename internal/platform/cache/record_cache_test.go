package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/shopspring/decimal"

	"github.com/juan-silveira/clube-navi-sub014/internal/feature/pricing/domain/entity"
)

// mockRecordRepository is a test implementation of PriceRecordRepository.
type mockRecordRepository struct {
	findFn   func(ctx context.Context, symbol, network string) (*entity.PriceRecord, error)
	upsertFn func(ctx context.Context, record entity.PriceRecord) error
}

func (m *mockRecordRepository) Find(ctx context.Context, symbol, network string) (*entity.PriceRecord, error) {
	if m.findFn != nil {
		return m.findFn(ctx, symbol, network)
	}
	return nil, nil
}

func (m *mockRecordRepository) Upsert(ctx context.Context, record entity.PriceRecord) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, record)
	}
	return nil
}

func sampleRecord() *entity.PriceRecord {
	return &entity.PriceRecord{
		Symbol:     "CLB",
		Network:    "mainnet",
		Price:      decimal.RequireFromString("3.20"),
		Source:     entity.SourceTrade,
		LastUpdate: time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC),
	}
}

// TestNewCachingPriceRecordRepository_Defaults verifies the TTL and
// namespace defaults.
func TestNewCachingPriceRecordRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{
			name:              "default values when zero/empty",
			ttl:               0,
			namespace:         "",
			expectedTTL:       30 * time.Second,
			expectedNamespace: "prices",
		},
		{
			name:              "negative ttl uses default",
			ttl:               -time.Minute,
			namespace:         "",
			expectedTTL:       30 * time.Second,
			expectedNamespace: "prices",
		},
		{
			name:              "custom values preserved",
			ttl:               2 * time.Minute,
			namespace:         "custom",
			expectedTTL:       2 * time.Minute,
			expectedNamespace: "custom",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewCachingPriceRecordRepository(nil, tt.ttl, &mockRecordRepository{}, tt.namespace)

			if repo.ttl != tt.expectedTTL {
				t.Errorf("expected TTL %v, got %v", tt.expectedTTL, repo.ttl)
			}
			if repo.namespace != tt.expectedNamespace {
				t.Errorf("expected namespace %q, got %q", tt.expectedNamespace, repo.namespace)
			}
		})
	}
}

// TestCachingPriceRecordRepository_Find_NilRedis verifies the bypass when
// Redis is not configured.
func TestCachingPriceRecordRepository_Find_NilRedis(t *testing.T) {
	t.Parallel()

	inner := &mockRecordRepository{
		findFn: func(ctx context.Context, symbol, network string) (*entity.PriceRecord, error) {
			return sampleRecord(), nil
		},
	}

	repo := NewCachingPriceRecordRepository(nil, 30*time.Second, inner, "prices")

	record, err := repo.Find(context.Background(), "CLB", "mainnet")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record == nil || record.Symbol != "CLB" {
		t.Errorf("expected CLB record, got %+v", record)
	}
}

// TestCachingPriceRecordRepository_Find_CacheHit verifies that a cached
// record is served without touching the inner repository.
func TestCachingPriceRecordRepository_Find_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cachedJSON, _ := json.Marshal(sampleRecord())
	mock.ExpectGet("prices:CLB:mainnet").SetVal(string(cachedJSON))

	innerCalled := false
	inner := &mockRecordRepository{
		findFn: func(ctx context.Context, symbol, network string) (*entity.PriceRecord, error) {
			innerCalled = true
			return nil, nil
		},
	}

	repo := NewCachingPriceRecordRepository(rdb, 30*time.Second, inner, "prices")
	record, err := repo.Find(context.Background(), "CLB", "mainnet")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if innerCalled {
		t.Error("inner repository should not be called on cache hit")
	}
	if record == nil || !record.Price.Equal(decimal.RequireFromString("3.20")) {
		t.Errorf("unexpected record %+v", record)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingPriceRecordRepository_Find_CacheMiss verifies the read
// through: inner lookup then cache fill.
func TestCachingPriceRecordRepository_Find_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected := sampleRecord()
	expectedJSON, _ := json.Marshal(expected)

	mock.ExpectGet("prices:CLB:mainnet").RedisNil()
	mock.ExpectSet("prices:CLB:mainnet", expectedJSON, 30*time.Second).SetVal("OK")

	inner := &mockRecordRepository{
		findFn: func(ctx context.Context, symbol, network string) (*entity.PriceRecord, error) {
			return expected, nil
		},
	}

	repo := NewCachingPriceRecordRepository(rdb, 30*time.Second, inner, "prices")
	record, err := repo.Find(context.Background(), "CLB", "mainnet")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record == nil {
		t.Fatal("expected a record")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingPriceRecordRepository_Find_UnresolvedNotCached verifies that
// a missing record is not written into Redis.
func TestCachingPriceRecordRepository_Find_UnresolvedNotCached(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("prices:NOPE:mainnet").RedisNil()

	repo := NewCachingPriceRecordRepository(rdb, 30*time.Second, &mockRecordRepository{}, "prices")
	record, err := repo.Find(context.Background(), "NOPE", "mainnet")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record != nil {
		t.Errorf("expected nil record, got %+v", record)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingPriceRecordRepository_Find_CorruptedCache verifies that a
// corrupted entry is deleted and the inner repository consulted.
func TestCachingPriceRecordRepository_Find_CorruptedCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected := sampleRecord()
	expectedJSON, _ := json.Marshal(expected)

	mock.ExpectGet("prices:CLB:mainnet").SetVal("invalid json")
	mock.ExpectDel("prices:CLB:mainnet").SetVal(1)
	mock.ExpectSet("prices:CLB:mainnet", expectedJSON, 30*time.Second).SetVal("OK")

	inner := &mockRecordRepository{
		findFn: func(ctx context.Context, symbol, network string) (*entity.PriceRecord, error) {
			return expected, nil
		},
	}

	repo := NewCachingPriceRecordRepository(rdb, 30*time.Second, inner, "prices")
	record, err := repo.Find(context.Background(), "CLB", "mainnet")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record == nil {
		t.Fatal("expected a record")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingPriceRecordRepository_Find_InnerError verifies error
// propagation from the inner repository.
func TestCachingPriceRecordRepository_Find_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("database error")
	mock.ExpectGet("prices:CLB:mainnet").RedisNil()

	inner := &mockRecordRepository{
		findFn: func(ctx context.Context, symbol, network string) (*entity.PriceRecord, error) {
			return nil, expectedErr
		},
	}

	repo := NewCachingPriceRecordRepository(rdb, 30*time.Second, inner, "prices")
	_, err := repo.Find(context.Background(), "CLB", "mainnet")

	if !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
}

// TestCachingPriceRecordRepository_Upsert_Invalidates verifies the
// write-through plus key invalidation.
func TestCachingPriceRecordRepository_Upsert_Invalidates(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectDel("prices:CLB:mainnet").SetVal(1)

	innerCalled := false
	inner := &mockRecordRepository{
		upsertFn: func(ctx context.Context, record entity.PriceRecord) error {
			innerCalled = true
			return nil
		},
	}

	repo := NewCachingPriceRecordRepository(rdb, 30*time.Second, inner, "prices")
	err := repo.Upsert(context.Background(), *sampleRecord())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !innerCalled {
		t.Error("expected inner repository to be called")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingPriceRecordRepository_Upsert_InnerError verifies that a
// failed write does not touch the cache and propagates the error.
func TestCachingPriceRecordRepository_Upsert_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("upsert error")
	inner := &mockRecordRepository{
		upsertFn: func(ctx context.Context, record entity.PriceRecord) error {
			return expectedErr
		},
	}

	repo := NewCachingPriceRecordRepository(rdb, 30*time.Second, inner, "prices")
	err := repo.Upsert(context.Background(), *sampleRecord())

	if !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestSafe verifies escaping of characters that are problematic for
// Redis keys.
func TestSafe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"CLB", "CLB"},
		{"CLB BR", "CLB_BR"},
		{"key:value", "key_value"},
		{"a b:c", "a_b_c"},
		{"", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			result := safe(tt.input)
			if result != tt.expected {
				t.Errorf("safe(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}
