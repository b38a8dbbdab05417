package endpoint

import (
	"sync"
)

// Store holds one health record per configured endpoint URL. Records are
// created when the URL enters the set and live until it leaves; ranking reads
// value snapshots and tolerates staleness.
type Store struct {
	mux     sync.RWMutex
	urls    []string
	records map[string]*Record
}

// NewStore creates a store with a neutral record for every URL.
func NewStore(urls []string) *Store {
	s := &Store{
		urls:    make([]string, 0, len(urls)),
		records: make(map[string]*Record, len(urls)),
	}
	for _, u := range urls {
		if _, exists := s.records[u]; exists {
			continue
		}
		s.urls = append(s.urls, u)
		s.records[u] = NewRecord()
	}
	return s
}

// URLs returns the configured endpoint URLs in configuration order.
func (s *Store) URLs() []string {
	s.mux.RLock()
	defer s.mux.RUnlock()

	urls := make([]string, len(s.urls))
	copy(urls, s.urls)
	return urls
}

// RecordSuccess updates the record for url with a successful call outcome.
// Unknown URLs are ignored.
func (s *Store) RecordSuccess(url string, latencyMs float64) {
	if r := s.record(url); r != nil {
		r.RecordSuccess(latencyMs)
	}
}

// RecordFailure updates the record for url with a penalized failure.
func (s *Store) RecordFailure(url string) {
	if r := s.record(url); r != nil {
		r.RecordFailure()
	}
}

// Snapshot returns a copy of every record's current values, keyed by URL.
func (s *Store) Snapshot() map[string]Health {
	s.mux.RLock()
	defer s.mux.RUnlock()

	snap := make(map[string]Health, len(s.records))
	for url, r := range s.records {
		snap[url] = r.Health()
	}
	return snap
}

// Replace swaps the endpoint set while preserving the health records of URLs
// present in both the old and new sets. New URLs start with neutral records.
func (s *Store) Replace(urls []string) {
	s.mux.Lock()
	defer s.mux.Unlock()

	kept := make(map[string]*Record, len(urls))
	ordered := make([]string, 0, len(urls))
	for _, u := range urls {
		if _, exists := kept[u]; exists {
			continue
		}
		if r, ok := s.records[u]; ok {
			kept[u] = r
		} else {
			kept[u] = NewRecord()
		}
		ordered = append(ordered, u)
	}
	s.urls = ordered
	s.records = kept
}

func (s *Store) record(url string) *Record {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.records[url]
}
