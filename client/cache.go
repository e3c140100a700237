package client

import (
	"sync"
	"time"
)

// queryCache menyimpan hasil list per kunci parameter persis (page, per_page,
// sort, s, filter). Request identik yang berbarengan cukup satu fetch;
// respons request lama yang datang terlambat tidak pernah menimpa kunci
// lain karena hasil hanya tercatat di kuncinya sendiri.
type queryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	ready    chan struct{}
	value    interface{}
	err      error
	storedAt time.Time
}

func newQueryCache(ttl time.Duration) *queryCache {
	return &queryCache{
		ttl:     ttl,
		entries: make(map[string]*cacheEntry),
	}
}

// do mengembalikan nilai cache untuk key, atau menjalankan fetch kalau belum
// ada / sudah basi. Pemanggil lain dengan key sama menunggu fetch yang
// sedang berjalan, tidak membuat request baru.
func (qc *queryCache) do(key string, fetch func() (interface{}, error)) (interface{}, error) {
	qc.mu.Lock()
	entry, exists := qc.entries[key]
	if exists {
		select {
		case <-entry.ready:
			if entry.err == nil && time.Since(entry.storedAt) < qc.ttl {
				qc.mu.Unlock()
				return entry.value, nil
			}
			// basi atau error: fetch ulang
		default:
			// fetch masih berjalan, tunggu hasilnya
			qc.mu.Unlock()
			<-entry.ready
			return entry.value, entry.err
		}
	}

	entry = &cacheEntry{ready: make(chan struct{})}
	qc.entries[key] = entry
	qc.mu.Unlock()

	entry.value, entry.err = fetch()
	entry.storedAt = time.Now()
	close(entry.ready)

	if entry.err != nil {
		// Error tidak di-cache
		qc.mu.Lock()
		if qc.entries[key] == entry {
			delete(qc.entries, key)
		}
		qc.mu.Unlock()
	}
	return entry.value, entry.err
}

// Invalidate membuang semua entry untuk entitas tertentu, dipanggil setelah
// create/update/delete supaya list berikutnya segar.
func (qc *queryCache) Invalidate(prefix string) {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	for key := range qc.entries {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(qc.entries, key)
		}
	}
}
