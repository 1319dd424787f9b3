// Package dataset holds the in-memory recipe dataset and its CSV ingestion.
package dataset

import (
	"maps"
	"sync"

	"github.com/cockroachdb/errors"
)

// IDField is the name of the field every record is keyed by.
const IDField = "id"

// Record is one recipe: field name to value. CSV-ingested values are strings;
// values written by updates keep the type they were decoded with.
type Record map[string]any

// ID returns the record's id, or "" if it has none.
func (r Record) ID() string {
	id, _ := r[IDField].(string)
	return id
}

// Project returns a new record restricted to the given fields. Fields the
// record does not have are left out.
func (r Record) Project(fields ...string) Record {
	out := make(Record, len(fields))
	for _, f := range fields {
		if v, ok := r[f]; ok {
			out[f] = v
		}
	}
	return out
}

// FieldChange is a single field assignment in an update.
type FieldChange struct {
	Field string
	Value any
}

// Store is an ordered in-memory collection of records keyed by id.
// Iteration follows ingestion order. Safe for concurrent use; callers only
// ever receive copies of stored records.
type Store struct {
	mu      sync.RWMutex
	records []Record
	idIndex map[string]int
}

// NewStore builds a store from records in the given order. A record whose id
// was already seen replaces the earlier one but keeps its position.
func NewStore(records ...Record) (*Store, error) {
	s := &Store{
		records: make([]Record, 0, len(records)),
		idIndex: make(map[string]int, len(records)),
	}

	for i, r := range records {
		id, ok := r[IDField].(string)
		if !ok {
			return nil, errors.Wrapf(ErrMissingID, "record %d", i)
		}
		if idx, exists := s.idIndex[id]; exists {
			s.records[idx] = maps.Clone(r)
			continue
		}
		s.idIndex[id] = len(s.records)
		s.records = append(s.records, maps.Clone(r))
	}

	return s, nil
}

// Len returns the number of records in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Get returns a copy of the record with the given id.
func (s *Store) Get(id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.idIndex[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "id %q", id)
	}
	return maps.Clone(s.records[idx]), nil
}

// Update applies changes to the record with the given id and returns a copy
// of the result. Changes are checked in order before anything is written: the
// first change that targets the id field or a field the record lacks fails
// the whole update and leaves the record untouched.
func (s *Store) Update(id string, changes []FieldChange) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.idIndex[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "id %q", id)
	}
	record := s.records[idx]

	for _, c := range changes {
		if c.Field == IDField {
			return nil, ErrIDImmutable
		}
		if _, exists := record[c.Field]; !exists {
			return nil, &FieldNotFoundError{Field: c.Field}
		}
	}

	for _, c := range changes {
		record[c.Field] = c.Value
	}

	return maps.Clone(record), nil
}

// FilterByField returns copies of every record whose field holds exactly the
// given string, in ingestion order.
func (s *Store) FilterByField(field, value string) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]Record, 0)
	for _, r := range s.records {
		if v, ok := r[field].(string); ok && v == value {
			matches = append(matches, maps.Clone(r))
		}
	}
	return matches
}
