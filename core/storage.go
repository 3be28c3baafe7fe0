package core

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// Storage keys, one per store.
const (
	ProfileKey      = "masomo-profile"
	ApplicationsKey = "masomo-applications"
	ProgramsKey     = "masomo-programs"
	DocumentsKey    = "masomo-documents"
)

const persistTimeout = 10 * time.Second

type (
	// Storage is the durable key-value storage the stores persist their full state to.
	Storage interface {
		// Load returns the payload stored under key, or ErrNoData.
		Load(ctx context.Context, key string) ([]byte, error)
		// Save replaces the payload stored under key.
		Save(ctx context.Context, key string, data []byte) error
		Close() error
	}

	// PersistObserver is notified after every persistence attempt.
	PersistObserver interface {
		Persisted(key string, err error)
	}

	// PersistStatus describes the outcome of a store's last persistence attempt.
	PersistStatus struct {
		Key      string    `json:"key"`
		OK       bool      `json:"ok"`
		Error    string    `json:"error,omitempty"`
		At       time.Time `json:"at"`
		Failures int       `json:"failures"`
	}
)

// Persister writes a store's state to Storage.
// Save failures never propagate: they are logged, reported to observers and kept in Status.
type Persister struct {
	storage   Storage
	key       string
	logger    Logger
	observers []PersistObserver

	mu     sync.Mutex
	status PersistStatus
}

func NewPersister(storage Storage, key string, logger Logger, observers ...PersistObserver) *Persister {
	return &Persister{
		storage:   storage,
		key:       key,
		logger:    logger,
		observers: observers,
		status:    PersistStatus{Key: key, OK: true},
	}
}

func (p *Persister) Key() string { return p.key }

// Restore unmarshals the persisted payload into v.
// It returns ErrNoData when nothing is stored; any other error means the payload is unusable.
func (p *Persister) Restore(ctx context.Context, v interface{}) error {
	data, err := p.Raw(ctx)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrapf(err, "decoding %s", p.key)
	}
	return nil
}

// Raw returns the persisted payload as is.
func (p *Persister) Raw(ctx context.Context) ([]byte, error) {
	data, err := p.storage.Load(ctx, p.key)
	if err != nil {
		if errors.Cause(err) == ErrNoData {
			return nil, ErrNoData
		}
		return nil, errors.Wrapf(err, "loading %s", p.key)
	}
	if len(data) == 0 {
		return nil, ErrNoData
	}
	return data, nil
}

// Persist saves the full state v.
// The save outlives ctx cancellation so a dropped caller cannot lose an applied mutation.
func (p *Persister) Persist(ctx context.Context, v interface{}) {
	data, err := json.Marshal(v)
	if err == nil {
		saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
		err = p.storage.Save(saveCtx, p.key, data)
		cancel()
	}

	p.mu.Lock()
	p.status.At = NowFunc()
	if err != nil {
		p.status.OK = false
		p.status.Error = err.Error()
		p.status.Failures++
	} else {
		p.status.OK = true
		p.status.Error = ""
	}
	p.mu.Unlock()

	if err != nil {
		p.logger.Warn("persisting store failed", map[string]interface{}{"key": p.key}, err)
	}
	for _, o := range p.observers {
		o.Persisted(p.key, err)
	}
}

// Status returns the outcome of the last persistence attempt.
func (p *Persister) Status() PersistStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}
