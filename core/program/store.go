package program

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-apply/core"
)

// Store owns the programs collection.
type Store struct {
	mu        sync.RWMutex
	programs  []Program
	persister *core.Persister
}

// NewStore hydrates the programs.
// A non-empty persisted collection replaces the seed entirely; an empty, absent
// or invalid one leaves the seed in place. Entries are never interleaved.
func NewStore(ctx context.Context, storage core.Storage, logger core.Logger, observers ...core.PersistObserver) *Store {
	s := &Store{
		programs:  Seed(),
		persister: core.NewPersister(storage, core.ProgramsKey, logger, observers...),
	}

	restored, err := s.restore(ctx)
	if err != nil {
		if errors.Cause(err) != core.ErrNoData {
			logger.Warn("restoring programs failed, using seed", err)
		}
		return s
	}
	if len(restored) > 0 {
		s.programs = restored
	}
	return s
}

func (s *Store) restore(ctx context.Context) ([]Program, error) {
	data, err := s.persister.Raw(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkPayload(data); err != nil {
		return nil, err
	}
	var programs []Program
	if err := json.Unmarshal(data, &programs); err != nil {
		return nil, errors.Wrap(err, "decoding programs")
	}
	for i := range programs {
		programs[i].Type = TypeProgram
	}
	return programs, nil
}

// List returns the current snapshot. Callers must treat it as read-only.
func (s *Store) List() []Program {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.programs
}

// Lookup returns the program with id, or nil when there is none.
func (s *Store) Lookup(id string) *Program {
	for _, p := range s.List() {
		if p.ID == id {
			return &p
		}
	}
	return nil
}

func (s *Store) PersistStatus() core.PersistStatus { return s.persister.Status() }

func (s *Store) AddProgram(ctx context.Context, np NewProgram) Program {
	prog := np.build()

	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]Program, 0, len(s.programs)+1)
	next = append(next, s.programs...)
	next = append(next, prog)
	s.programs = next
	s.persister.Persist(ctx, next)
	return prog
}

// RemoveProgram is a no-op when id is unknown.
func (s *Store) RemoveProgram(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Program, 0, len(s.programs))
	for _, p := range s.programs {
		if p.ID != id {
			next = append(next, p)
		}
	}
	if len(next) == len(s.programs) {
		return
	}
	s.programs = next
	s.persister.Persist(ctx, next)
}
