package profile

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-apply/core"
)

// Store owns the StudentData singleton and persists it after every mutation.
type Store struct {
	mu        sync.RWMutex
	data      StudentData
	persister *core.Persister
}

// NewStore hydrates the profile from storage.
// Absent or unreadable state starts an Empty profile; the latter is logged.
func NewStore(ctx context.Context, storage core.Storage, logger core.Logger, observers ...core.PersistObserver) *Store {
	s := &Store{
		data:      Empty(),
		persister: core.NewPersister(storage, core.ProfileKey, logger, observers...),
	}

	var restored StudentData
	if err := s.persister.Restore(ctx, &restored); err != nil {
		if errors.Cause(err) != core.ErrNoData {
			logger.Warn("restoring profile failed, starting empty", err)
		}
		return s
	}
	s.data = restored.normalize()
	return s
}

// Data returns a copy of the whole profile.
func (s *Store) Data() StudentData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.clone()
}

// PersistStatus returns the outcome of the last save.
func (s *Store) PersistStatus() core.PersistStatus { return s.persister.Status() }

// mutate applies fn to a copy of the data and, if fn reports a change, swaps it in and persists.
func (s *Store) mutate(ctx context.Context, fn func(d *StudentData) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.clone()
	if !fn(&next) {
		return
	}
	s.data = next
	s.persister.Persist(ctx, s.data)
}

// UpdateSectionChecked is UpdateSection guarded by check, which sees the state upd is applied to.
// Nothing changes when check fails.
func (s *Store) UpdateSectionChecked(ctx context.Context, upd SectionUpdate, check func(StudentData, SectionUpdate) error) error {
	var checkErr error
	s.mutate(ctx, func(d *StudentData) bool {
		if checkErr = check(*d, upd); checkErr != nil {
			return false
		}
		*d = upd.Apply(*d)
		return true
	})
	return checkErr
}

// UpdateSection merges upd into its section only: unspecified fields and every other section are preserved.
func (s *Store) UpdateSection(ctx context.Context, upd SectionUpdate) {
	s.mutate(ctx, func(d *StudentData) bool {
		*d = upd.Apply(*d)
		return true
	})
}

// Activities

func (s *Store) AddActivity(ctx context.Context, na NewActivity) Activity {
	act := na.build()
	s.mutate(ctx, func(d *StudentData) bool {
		d.Activities = append(d.Activities, act)
		return true
	})
	return act
}

// UpdateActivity is a no-op when id is unknown.
func (s *Store) UpdateActivity(ctx context.Context, id string, au ActivityUpdate) {
	s.mutate(ctx, func(d *StudentData) bool {
		for i, a := range d.Activities {
			if a.ID == id {
				d.Activities[i] = au.apply(a)
				return true
			}
		}
		return false
	})
}

// RemoveActivity is a no-op when id is unknown.
func (s *Store) RemoveActivity(ctx context.Context, id string) {
	s.mutate(ctx, func(d *StudentData) bool {
		kept := d.Activities[:0]
		for _, a := range d.Activities {
			if a.ID != id {
				kept = append(kept, a)
			}
		}
		removed := len(kept) != len(d.Activities)
		d.Activities = kept
		return removed
	})
}

// Honors

func (s *Store) AddHonor(ctx context.Context, nh NewHonor) Honor {
	hon := nh.build()
	s.mutate(ctx, func(d *StudentData) bool {
		d.Honors = append(d.Honors, hon)
		return true
	})
	return hon
}

// UpdateHonor is a no-op when id is unknown.
func (s *Store) UpdateHonor(ctx context.Context, id string, hu HonorUpdate) {
	s.mutate(ctx, func(d *StudentData) bool {
		for i, h := range d.Honors {
			if h.ID == id {
				d.Honors[i] = hu.apply(h)
				return true
			}
		}
		return false
	})
}

// RemoveHonor is a no-op when id is unknown.
func (s *Store) RemoveHonor(ctx context.Context, id string) {
	s.mutate(ctx, func(d *StudentData) bool {
		kept := d.Honors[:0]
		for _, h := range d.Honors {
			if h.ID != id {
				kept = append(kept, h)
			}
		}
		removed := len(kept) != len(d.Honors)
		d.Honors = kept
		return removed
	})
}
