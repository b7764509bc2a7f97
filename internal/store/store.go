// Package store holds the immutable in-memory person collection searched by
// the engine, and loads it from CSV datasets.
package store

import (
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/cases"

	"github.com/standardbeagle/idlocator/internal/types"
)

// Store is an immutable snapshot of person records. It is never mutated
// after New returns; a changed dataset produces a new Store.
type Store struct {
	records     []types.PersonRecord
	foldedCity  []string       // case-folded City per record, same index
	byID        map[string]int // id → index into records
	fingerprint uint64
}

// New builds a store in O(n). Records are kept in insertion order. When ids
// repeat, the index points at the last occurrence but every record stays
// in the sequence. No record is rejected.
func New(records []types.PersonRecord) *Store {
	s := &Store{
		records:    make([]types.PersonRecord, len(records)),
		foldedCity: make([]string, len(records)),
		byID:       make(map[string]int, len(records)),
	}
	copy(s.records, records)

	fold := cases.Fold()
	h := xxhash.New()
	for i, r := range s.records {
		s.byID[r.ID] = i
		s.foldedCity[i] = fold.String(strings.TrimSpace(r.City))
		writeRecord(h, r)
	}
	s.fingerprint = h.Sum64()
	return s
}

// LookupByID returns the record with the given id (input is trimmed)
func (s *Store) LookupByID(id string) (types.PersonRecord, bool) {
	idx, ok := s.byID[strings.TrimSpace(id)]
	if !ok {
		return types.PersonRecord{}, false
	}
	return s.records[idx], true
}

// FilterByCity returns records whose case-folded city equals the trimmed,
// case-folded argument. It is a pre-filter only and may return nothing.
func (s *Store) FilterByCity(city string) []types.PersonRecord {
	want := cases.Fold().String(strings.TrimSpace(city))
	var out []types.PersonRecord
	for i, c := range s.foldedCity {
		if c == want {
			out = append(out, s.records[i])
		}
	}
	return out
}

// All returns a copy of every record in insertion order
func (s *Store) All() []types.PersonRecord {
	out := make([]types.PersonRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records
func (s *Store) Len() int {
	return len(s.records)
}

// Fingerprint is an xxhash of every record field in order. Two stores with
// the same records in the same order share a fingerprint.
func (s *Store) Fingerprint() uint64 {
	return s.fingerprint
}

const (
	unitSep   = "\x1f"
	recordSep = "\x1e"
)

func writeRecord(h *xxhash.Digest, r types.PersonRecord) {
	for _, f := range types.FieldOrder {
		_, _ = h.WriteString(r.Field(f))
		_, _ = h.WriteString(unitSep)
	}
	_, _ = h.WriteString(recordSep)
}
