package retrieval

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"
)

// Store persists records and answers type and text queries over them.
type Store interface {
	Put(ctx context.Context, records ...Record) error
	// ByType returns newest records first.
	ByType(ctx context.Context, t RecordType, limit int) ([]Record, error)
	Search(ctx context.Context, query string, limit int) ([]Record, error)
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int, error)
	Health(ctx context.Context) error
}

// Open returns the store for backend: "postgres" needs a dsn, anything else
// (including "") is the in-memory store.
func Open(ctx context.Context, backend, dsn string) (Store, error) {
	if backend != "postgres" {
		return NewMemoryStore(), nil
	}
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("open store: postgres backend requires a dsn")
	}
	return NewPostgresStore(ctx, dsn)
}

// MemoryStore keeps records in insertion order. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	records []Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Put(ctx context.Context, records ...Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)
	return nil
}

// ByType returns records of type t, newest first.
func (s *MemoryStore) ByType(ctx context.Context, t RecordType, limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Record{}
	for i := len(s.records) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		if s.records[i].Type == t {
			out = append(out, s.records[i])
		}
	}
	return out, nil
}

func (s *MemoryStore) Search(ctx context.Context, query string, limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return rank(s.records, query, limit), nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	return nil
}

func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

func (s *MemoryStore) Health(ctx context.Context) error { return nil }

// terms splits a query into distinct lower-case words of two or more characters.
func terms(query string) []string {
	fields := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	seen := make(map[string]bool, len(fields))
	var out []string
	for _, f := range fields {
		if len(f) < 2 || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// rank orders records by how many query terms their document contains.
// Records matching no term are dropped; ties keep store order.
func rank(records []Record, query string, limit int) []Record {
	qt := terms(query)
	type scored struct {
		rec   Record
		score int
	}
	var hits []scored
	for _, r := range records {
		doc := strings.ToLower(r.Document)
		n := 0
		for _, t := range qt {
			if strings.Contains(doc, t) {
				n++
			}
		}
		if n > 0 {
			hits = append(hits, scored{rec: r, score: n})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	out := []Record{}
	for _, h := range hits {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, h.rec)
	}
	return out
}
