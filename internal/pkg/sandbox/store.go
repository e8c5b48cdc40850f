package sandbox

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var ErrNotFound = fmt.Errorf("record not found")
var ErrUnknownCollection = fmt.Errorf("unknown collection")

type records struct {
	readOnly map[string]bool
	order    []string
	items    map[string]map[string]any
}

// Store keeps the records of every configured collection in memory
type Store struct {
	mu          sync.RWMutex
	collections map[string]*records
}

func NewStore(cfg *Config) *Store {
	s := &Store{
		collections: map[string]*records{},
	}

	for _, c := range cfg.Collections {
		rec := &records{
			readOnly: map[string]bool{},
			items:    map[string]map[string]any{},
		}
		for _, key := range c.ReadOnly {
			rec.readOnly[key] = true
		}

		for _, seed := range c.Seed {
			item := maps.Clone(seed)
			id, ok := item["id"].(string)
			if !ok || id == "" {
				id = uuid.NewString()
				item["id"] = id
			}
			rec.order = append(rec.order, id)
			rec.items[id] = item
		}

		s.collections[c.Path] = rec
	}

	return s
}

// Create stores a new record with a generated id. Read only keys are dropped
// from data the way the API ignores them.
func (s *Store) Create(collection string, data map[string]any) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.collections[collection]
	if !ok {
		return nil, fmt.Errorf("%s: %w", collection, ErrUnknownCollection)
	}

	id := uuid.NewString()

	item := rec.writable(data)
	item["id"] = id

	rec.order = append(rec.order, id)
	rec.items[id] = item

	return maps.Clone(item), nil
}

func (s *Store) Get(collection, id string) (map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.collections[collection]
	if !ok {
		return nil, fmt.Errorf("%s: %w", collection, ErrUnknownCollection)
	}

	item, ok := rec.items[id]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}

	return maps.Clone(item), nil
}

// Update merges data into an existing record
func (s *Store) Update(collection, id string, data map[string]any) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.collections[collection]
	if !ok {
		return nil, fmt.Errorf("%s: %w", collection, ErrUnknownCollection)
	}

	item, ok := rec.items[id]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}

	maps.Copy(item, rec.writable(data))

	return maps.Clone(item), nil
}

func (s *Store) Delete(collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.collections[collection]
	if !ok {
		return fmt.Errorf("%s: %w", collection, ErrUnknownCollection)
	}

	if _, ok := rec.items[id]; !ok {
		return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}

	delete(rec.items, id)
	for idx, existing := range rec.order {
		if existing == id {
			rec.order = append(rec.order[:idx], rec.order[idx+1:]...)
			break
		}
	}

	return nil
}

// Query returns every record, in insertion order, that matches all filters
// and contains the search text in one of its string values
func (s *Store) Query(collection string, filters map[string]string, search string) ([]map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.collections[collection]
	if !ok {
		return nil, fmt.Errorf("%s: %w", collection, ErrUnknownCollection)
	}

	result := []map[string]any{}

	for _, id := range rec.order {
		item := rec.items[id]
		if matches(item, filters) && contains(item, search) {
			result = append(result, maps.Clone(item))
		}
	}

	return result, nil
}

func (r *records) writable(data map[string]any) map[string]any {
	item := make(map[string]any, len(data))
	for k, v := range data {
		if k == "id" || r.readOnly[k] {
			continue
		}
		item[k] = v
	}
	return item
}

func matches(item map[string]any, filters map[string]string) bool {
	for k, expected := range filters {
		v, ok := item[k]
		if !ok || format(v) != expected {
			return false
		}
	}
	return true
}

func contains(item map[string]any, search string) bool {
	if search == "" {
		return true
	}

	search = strings.ToLower(search)

	for _, v := range item {
		if s, ok := v.(string); ok && strings.Contains(strings.ToLower(s), search) {
			return true
		}
	}

	return false
}

func format(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
