package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/trezcool/masomo-apply/core"
	logsvc "github.com/trezcool/masomo-apply/services/logger"
	dummydb "github.com/trezcool/masomo-apply/storage/database/dummy"
)

// Epoch is the fixed "now" used by FixClock.
var Epoch = time.Date(2025, time.September, 1, 10, 0, 0, 0, time.UTC)

// NewStorage returns a fresh in-memory storage.
func NewStorage(t testing.TB) *dummydb.DB {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	return db
}

func NewLogger(t testing.TB) core.Logger {
	return logsvc.NewTestLogger(t)
}

// FixClock freezes core.NowFunc at `at` (Epoch when omitted) for the duration of the test.
func FixClock(t testing.TB, at ...time.Time) time.Time {
	now := Epoch
	if len(at) > 0 {
		now = at[0]
	}
	prev := core.NowFunc
	core.NowFunc = func() time.Time { return now }
	t.Cleanup(func() { core.NowFunc = prev })
	return now
}

// SeqIDs makes core.NewID return "<prefix>-1", "<prefix>-2", ... for the duration of the test.
func SeqIDs(t testing.TB, prefix string) {
	var mu sync.Mutex
	var n int
	prev := core.NewIDFunc
	core.NewIDFunc = func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
	t.Cleanup(func() { core.NewIDFunc = prev })
}

// Seed stores v as the JSON payload of key.
func Seed(t testing.TB, st core.Storage, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Seed() failed to marshal: %v", err)
	}
	if err = st.Save(context.Background(), key, data); err != nil {
		t.Fatalf("Seed() failed to save: %v", err)
	}
}

// Stored decodes the payload persisted under key into v.
func Stored(t testing.TB, st core.Storage, key string, v interface{}) {
	data, err := st.Load(context.Background(), key)
	if err != nil {
		t.Fatalf("Stored(%s) failed to load: %v", key, err)
	}
	if err = json.Unmarshal(data, v); err != nil {
		t.Fatalf("Stored(%s) failed to unmarshal: %v", key, err)
	}
}

// StrPtr returns a pointer to s.
func StrPtr(s string) *string { return &s }

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool { return &b }

// IntPtr returns a pointer to n.
func IntPtr(n int) *int { return &n }
