package directory

import "sync"

// Service holds the in-memory employee set for the process. The set is
// replace-whole: each login begins a new load generation and only the result
// of the newest generation is allowed to land, so a slow fetch from a
// superseded login can never clobber fresher data.
type Service struct {
	mu         sync.RWMutex
	records    []Record
	generation uint64
}

func NewService() *Service {
	return &Service{}
}

// BeginLoad starts a new load generation and returns its token.
func (s *Service) BeginLoad() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

// Replace installs a freshly fetched set if the generation token is still
// current. A stale token is dropped and reported false.
func (s *Service) Replace(generation uint64, records []Record) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation {
		return false
	}
	s.records = make([]Record, len(records))
	copy(s.records, records)
	return true
}

func (s *Service) Snapshot() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Service) Get(id string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.records {
		if rec.ID == id {
			return rec, true
		}
	}
	return Record{}, false
}

// Teammates returns up to limit colleagues from the same department,
// excluding the employee itself, in set order.
func (s *Service) Teammates(id string, limit int) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var department string
	found := false
	for _, rec := range s.records {
		if rec.ID == id {
			department = rec.Department
			found = true
			break
		}
	}
	if !found {
		return nil
	}
	out := make([]Record, 0, limit)
	for _, rec := range s.records {
		if rec.ID == id || rec.Department != department {
			continue
		}
		out = append(out, rec)
		if len(out) == limit {
			break
		}
	}
	return out
}
