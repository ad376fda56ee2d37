package store

import (
	"sync"

	"github.com/i474232898/meteo-dashboard/internal/consult"
)

// ErrNotFound is returned when no consultation has the requested id.
var ErrNotFound = consult.ErrNotFound

// ConsultationStore is an append-only, concurrency-safe in-memory list of consultations.
// Contents live for the lifetime of the process only.
type ConsultationStore struct {
	mu sync.RWMutex

	// insertion order
	records []consult.Consultation
	lastID  int
}

// NewConsultationStore creates an empty store. Ids start at 1.
func NewConsultationStore() *ConsultationStore {
	return &ConsultationStore{}
}

// Append allocates the next id, builds the record with it and appends it,
// all under the write lock, so ids are unique and gap-free.
func (s *ConsultationStore) Append(build func(id int) consult.Consultation) consult.Consultation {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	record := build(s.lastID)
	record.ID = s.lastID
	s.records = append(s.records, record)
	return record
}

// List returns all consultations, most recent first.
func (s *ConsultationStore) List() []consult.Consultation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]consult.Consultation, 0, len(s.records))
	for i := len(s.records) - 1; i >= 0; i-- {
		result = append(result, s.records[i])
	}
	return result
}

// Get returns the consultation with the given id.
func (s *ConsultationStore) Get(id int) (consult.Consultation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.records {
		if c.ID == id {
			return c, nil
		}
	}
	return consult.Consultation{}, ErrNotFound
}

// Len reports how many consultations are stored.
func (s *ConsultationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
