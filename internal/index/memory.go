package index

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/linkhub/internal/directory"
)

// MemoryIndex holds the directory snapshot currently being served and the
// visit counters of its links.
// The snapshot is swapped whole on reload; readers never see a partial one.
type MemoryIndex struct {
	mu         sync.RWMutex
	dir        *directory.Directory
	source     string           // where the current snapshot came from
	counters   map[string]int64 // link ID -> visits
	lastReload time.Time        // Timestamp of last snapshot swap
}

// NewMemoryIndex creates a new memory index
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		counters: make(map[string]int64),
	}
}

// Update replaces the served snapshot. Counters are kept across reloads.
func (idx *MemoryIndex) Update(dir *directory.Directory, source string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.dir = dir
	idx.source = source
	idx.lastReload = time.Now()
}

// Directory returns the served snapshot, or nil before the first load.
func (idx *MemoryIndex) Directory() *directory.Directory {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.dir
}

// Source returns where the served snapshot was loaded from.
func (idx *MemoryIndex) Source() string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.source
}

// Count returns the number of links in the served snapshot
func (idx *MemoryIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.dir == nil {
		return 0
	}
	return idx.dir.Len()
}

// IncrementCounter increments the visit counter for a link
func (idx *MemoryIndex) IncrementCounter(id string) int64 {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.counters[id]++
	return idx.counters[id]
}

// Counter returns the visit counter for a link
func (idx *MemoryIndex) Counter(id string) int64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.counters[id]
}

// SetCounters merges counters loaded from persistent storage.
// The larger value wins so that visits counted before the sync are kept.
func (idx *MemoryIndex) SetCounters(counters map[string]int64) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	for id, n := range counters {
		if n > idx.counters[id] {
			idx.counters[id] = n
		}
	}
}

// GetLastReload returns the timestamp of the last snapshot swap
func (idx *MemoryIndex) GetLastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}
