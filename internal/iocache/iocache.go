// Package iocache is for caching I/O calls and persisting score history.
package iocache

import (
	"sync"

	"github.com/pkgpulse/pkgpulse/internal/contract"
)

// CacheStoreManager manages the persistence stores.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	metrics      contract.CacheStore
	categories   contract.KVStore
	snapshots    contract.SnapshotStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetMetricsStore returns the metrics CacheStore.
func (mgr *CacheStoreManager) GetMetricsStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.metrics
}

// GetCategoryStore returns the discovered-category KVStore.
func (mgr *CacheStoreManager) GetCategoryStore() contract.KVStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.categories
}

// GetSnapshotStore returns the SnapshotStore.
func (mgr *CacheStoreManager) GetSnapshotStore() contract.SnapshotStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.snapshots
}
