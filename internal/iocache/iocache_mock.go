package iocache

import (
	"context"
	"time"

	"github.com/pkgpulse/pkgpulse/internal/contract"
	"github.com/pkgpulse/pkgpulse/schema"
	"github.com/stretchr/testify/mock"
)

// MockCacheManager is a mock implementation of CacheManager for testing.
type MockCacheManager struct {
	mock.Mock
}

var _ contract.CacheManager = &MockCacheManager{} // Compile-time check

// GetMetricsStore implements the CacheManager interface.
func (m *MockCacheManager) GetMetricsStore() contract.CacheStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.CacheStore)
	return store
}

// GetCategoryStore implements the CacheManager interface.
func (m *MockCacheManager) GetCategoryStore() contract.KVStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.KVStore)
	return store
}

// GetSnapshotStore implements the CacheManager interface.
func (m *MockCacheManager) GetSnapshotStore() contract.SnapshotStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.SnapshotStore)
	return store
}

// MockCacheStore is a mock implementation of CacheStore for testing.
type MockCacheStore struct {
	mock.Mock
}

var _ contract.CacheStore = &MockCacheStore{} // Compile-time check

// Get implements the CacheStore interface.
func (m *MockCacheStore) Get(key string) ([]byte, int, int64, error) {
	args := m.Called(key)
	return args.Get(0).([]byte), args.Int(1), args.Get(2).(int64), args.Error(3)
}

// Set implements the CacheStore interface.
func (m *MockCacheStore) Set(key string, data []byte, version int, ts int64) error {
	args := m.Called(key, data, version, ts)
	return args.Error(0)
}

// Close implements the CacheStore interface.
func (m *MockCacheStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// GetStatus implements the CacheStore interface.
func (m *MockCacheStore) GetStatus() (schema.CacheStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.CacheStatus), args.Error(1)
}

// MockKVStore is a mock implementation of KVStore for testing.
type MockKVStore struct {
	mock.Mock
}

var _ contract.KVStore = &MockKVStore{} // Compile-time check

// HGetAll implements the KVStore interface.
func (m *MockKVStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	args := m.Called(ctx, key)
	fields, _ := args.Get(0).(map[string]string)
	return fields, args.Error(1)
}

// HGet implements the KVStore interface.
func (m *MockKVStore) HGet(ctx context.Context, key, field string) (string, error) {
	args := m.Called(ctx, key, field)
	return args.String(0), args.Error(1)
}

// MockSnapshotStore is a mock implementation of SnapshotStore for testing.
type MockSnapshotStore struct {
	mock.Mock
}

var _ contract.SnapshotStore = &MockSnapshotStore{} // Compile-time check

// BeginRun implements the SnapshotStore interface.
func (m *MockSnapshotStore) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun implements the SnapshotStore interface.
func (m *MockSnapshotStore) EndRun(runID int64, endTime time.Time, totalPackages int) error {
	args := m.Called(runID, endTime, totalPackages)
	return args.Error(0)
}

// RecordScore implements the SnapshotStore interface.
func (m *MockSnapshotStore) RecordScore(runID int64, pkg schema.ScoredPackage) error {
	args := m.Called(runID, pkg)
	return args.Error(0)
}

// GetRuns implements the SnapshotStore interface.
func (m *MockSnapshotStore) GetRuns() ([]schema.SnapshotRunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.SnapshotRunRecord)
	return runs, args.Error(1)
}

// GetScores implements the SnapshotStore interface.
func (m *MockSnapshotStore) GetScores() ([]schema.SnapshotScoreRecord, error) {
	args := m.Called()
	scores, _ := args.Get(0).([]schema.SnapshotScoreRecord)
	return scores, args.Error(1)
}

// GetStatus implements the SnapshotStore interface.
func (m *MockSnapshotStore) GetStatus() (schema.SnapshotStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.SnapshotStatus), args.Error(1)
}

// Clear implements the SnapshotStore interface.
func (m *MockSnapshotStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}

// Close implements the SnapshotStore interface.
func (m *MockSnapshotStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
