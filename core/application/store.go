package application

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-apply/core"
)

// Store owns the applications collection.
// Every mutation installs a new slice: a snapshot returned by List is never modified afterwards.
type Store struct {
	mu        sync.RWMutex
	apps      []Application
	persister *core.Persister
}

func NewStore(ctx context.Context, storage core.Storage, logger core.Logger, observers ...core.PersistObserver) *Store {
	s := &Store{
		apps:      []Application{},
		persister: core.NewPersister(storage, core.ApplicationsKey, logger, observers...),
	}

	var restored []Application
	if err := s.persister.Restore(ctx, &restored); err != nil {
		if errors.Cause(err) != core.ErrNoData {
			logger.Warn("restoring applications failed, starting empty", err)
		}
		return s
	}
	apps := make([]Application, 0, len(restored))
	for _, a := range restored {
		apps = append(apps, a.normalize())
	}
	s.apps = apps
	return s
}

// List returns the current snapshot. Callers must treat it as read-only.
func (s *Store) List() []Application {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.apps
}

func (s *Store) Get(id string) (Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.apps {
		if a.ID == id {
			return a.clone(), nil
		}
	}
	return Application{}, ErrNotFound
}

func (s *Store) PersistStatus() core.PersistStatus { return s.persister.Status() }

// swap installs next and persists it. Callers hold mu.
func (s *Store) swap(ctx context.Context, next []Application) {
	s.apps = next
	s.persister.Persist(ctx, next)
}

// update replaces the application id with fn's result in a new collection.
// Nothing happens when id is unknown or fn reports no change.
func (s *Store) update(ctx context.Context, id string, fn func(a Application) (Application, bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.apps {
		if a.ID != id {
			continue
		}
		updated, changed := fn(a.clone())
		if !changed {
			return
		}
		next := make([]Application, len(s.apps))
		copy(next, s.apps)
		next[i] = updated
		s.swap(ctx, next)
		return
	}
}

// AddApplication appends a new application in Planning status, with no majors nor supplements.
func (s *Store) AddApplication(ctx context.Context, na NewApplication) Application {
	app := na.build()

	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]Application, 0, len(s.apps)+1)
	next = append(next, s.apps...)
	next = append(next, app)
	s.swap(ctx, next)
	return app.clone()
}

// RemoveApplication is idempotent.
func (s *Store) RemoveApplication(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Application, 0, len(s.apps))
	for _, a := range s.apps {
		if a.ID != id {
			next = append(next, a)
		}
	}
	if len(next) == len(s.apps) {
		return
	}
	s.swap(ctx, next)
}

func (s *Store) UpdateStatus(ctx context.Context, id string, status Status) {
	s.update(ctx, id, func(a Application) (Application, bool) {
		if a.Status == status {
			return a, false
		}
		a.Status = status
		return a, true
	})
}

func (s *Store) UpdateMajors(ctx context.Context, id string, majors Majors) {
	majors.First = core.CleanString(majors.First)
	majors.Second = core.CleanString(majors.Second)
	s.update(ctx, id, func(a Application) (Application, bool) {
		if a.Majors == majors {
			return a, false
		}
		a.Majors = majors
		return a, true
	})
}

func (s *Store) UpdateNotes(ctx context.Context, id, notes string) {
	s.update(ctx, id, func(a Application) (Application, bool) {
		if a.Notes == notes {
			return a, false
		}
		a.Notes = notes
		return a, true
	})
}

// Supplements

// AddSupplement appends an unlinked supplement; ok is false when appID is unknown.
func (s *Store) AddSupplement(ctx context.Context, appID, title string) (sup Supplement, ok bool) {
	sup = Supplement{ID: core.NewID(), Title: core.CleanString(title)}
	s.update(ctx, appID, func(a Application) (Application, bool) {
		a.Supplements = append(a.Supplements, sup)
		ok = true
		return a, true
	})
	return sup, ok
}

func (s *Store) RemoveSupplement(ctx context.Context, appID, suppID string) {
	s.update(ctx, appID, func(a Application) (Application, bool) {
		kept := make([]Supplement, 0, len(a.Supplements))
		for _, sup := range a.Supplements {
			if sup.ID != suppID {
				kept = append(kept, sup)
			}
		}
		if len(kept) == len(a.Supplements) {
			return a, false
		}
		a.Supplements = kept
		return a, true
	})
}

// LinkSupplement points the supplement at documentID; nil unlinks it.
// The referenced document itself is never touched.
func (s *Store) LinkSupplement(ctx context.Context, appID, suppID string, documentID *string) {
	s.update(ctx, appID, func(a Application) (Application, bool) {
		for i, sup := range a.Supplements {
			if sup.ID == suppID {
				if sameID(sup.LinkedDocumentID, documentID) {
					return a, false
				}
				a.Supplements[i].LinkedDocumentID = copyID(documentID)
				return a, true
			}
		}
		return a, false
	})
}

// UnlinkDocument clears every supplement link pointing at documentID. Supplements are kept.
func (s *Store) UnlinkDocument(ctx context.Context, documentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var next []Application
	for i, a := range s.apps {
		var touched bool
		for _, sup := range a.Supplements {
			if sup.LinkedDocumentID != nil && *sup.LinkedDocumentID == documentID {
				touched = true
				break
			}
		}
		if !touched {
			continue
		}
		if next == nil {
			next = make([]Application, len(s.apps))
			copy(next, s.apps)
		}
		c := a.clone()
		for j, sup := range c.Supplements {
			if sup.LinkedDocumentID != nil && *sup.LinkedDocumentID == documentID {
				c.Supplements[j].LinkedDocumentID = nil
			}
		}
		next[i] = c
	}
	if next != nil {
		s.swap(ctx, next)
	}
}

func sameID(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
