package document

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-apply/core"
)

var ErrNotFound = errors.New("document not found")

// Kinds
const (
	KindTranscript     = "transcript"
	KindEssay          = "essay"
	KindRecommendation = "recommendation"
	KindCertificate    = "certificate"
	KindOther          = "other"
)

type Document struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewDocument contains information needed to register a Document.
type NewDocument struct {
	Name string `json:"name" validate:"notblank,max=200"`
	Kind string `json:"kind" validate:"omitempty,oneof=transcript essay recommendation certificate other"`
}

// Source is the read-only view export and supplement linking have of the documents.
type Source interface {
	List() []Document
	Get(id string) (Document, error)
}

// Library owns the student's documents.
type Library struct {
	mu        sync.RWMutex
	docs      []Document
	persister *core.Persister
}

var _ Source = (*Library)(nil)

func NewLibrary(ctx context.Context, storage core.Storage, logger core.Logger, observers ...core.PersistObserver) *Library {
	l := &Library{
		docs:      []Document{},
		persister: core.NewPersister(storage, core.DocumentsKey, logger, observers...),
	}
	var restored []Document
	if err := l.persister.Restore(ctx, &restored); err != nil {
		if errors.Cause(err) != core.ErrNoData {
			logger.Warn("restoring documents failed, starting empty", err)
		}
		return l
	}
	if restored != nil {
		l.docs = restored
	}
	return l
}

// List returns the current snapshot. Callers must treat it as read-only.
func (l *Library) List() []Document {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.docs
}

func (l *Library) Get(id string) (Document, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, d := range l.docs {
		if d.ID == id {
			return d, nil
		}
	}
	return Document{}, ErrNotFound
}

func (l *Library) PersistStatus() core.PersistStatus { return l.persister.Status() }

func (l *Library) Add(ctx context.Context, nd NewDocument) Document {
	kind := nd.Kind
	if kind == "" {
		kind = KindOther
	}
	doc := Document{
		ID:        core.NewID(),
		Name:      core.CleanString(nd.Name),
		Kind:      kind,
		CreatedAt: core.NowFunc(),
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	next := make([]Document, 0, len(l.docs)+1)
	next = append(next, l.docs...)
	next = append(next, doc)
	l.docs = next
	l.persister.Persist(ctx, next)
	return doc
}

// Remove reports whether id was present; removing an unknown id is a no-op.
func (l *Library) Remove(ctx context.Context, id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := make([]Document, 0, len(l.docs))
	for _, d := range l.docs {
		if d.ID != id {
			next = append(next, d)
		}
	}
	if len(next) == len(l.docs) {
		return false
	}
	l.docs = next
	l.persister.Persist(ctx, next)
	return true
}

// Linked returns the documents whose ids are in ids, in library order. Unknown ids are skipped.
func Linked(src Source, ids []string) []Document {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var docs []Document
	for _, d := range src.List() {
		if want[d.ID] {
			docs = append(docs, d)
		}
	}
	return docs
}
