package document

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo-apply/core"
	"github.com/trezcool/masomo-apply/tests"
)

func TestLibrary(t *testing.T) {
	ctx := context.Background()
	testutil.SeqIDs(t, "doc")
	now := testutil.FixClock(t)
	st := testutil.NewStorage(t)
	lib := NewLibrary(ctx, st, testutil.NewLogger(t))
	assert.Empty(t, lib.List())

	transcript := lib.Add(ctx, NewDocument{Name: " Transcript 2024 ", Kind: KindTranscript})
	essay := lib.Add(ctx, NewDocument{Name: "Common App essay"})
	assert.Equal(t, Document{ID: "doc-1", Name: "Transcript 2024", Kind: KindTranscript, CreatedAt: now}, transcript)
	assert.Equal(t, KindOther, essay.Kind)

	got, err := lib.Get(essay.ID)
	require.NoError(t, err)
	assert.Equal(t, essay, got)

	snapshot := lib.List()
	assert.True(t, lib.Remove(ctx, transcript.ID))
	assert.False(t, lib.Remove(ctx, transcript.ID))
	assert.Len(t, snapshot, 2, "earlier snapshot must not change")
	assert.Equal(t, []Document{essay}, lib.List())

	_, err = lib.Get(transcript.ID)
	assert.Equal(t, ErrNotFound, err)

	reloaded := NewLibrary(ctx, st, testutil.NewLogger(t))
	assert.Equal(t, lib.List(), reloaded.List())

	var saved []Document
	testutil.Stored(t, st, core.DocumentsKey, &saved)
	assert.Len(t, saved, 1)
}

func TestLinked(t *testing.T) {
	ctx := context.Background()
	testutil.SeqIDs(t, "doc")
	lib := NewLibrary(ctx, testutil.NewStorage(t), testutil.NewLogger(t))
	d1 := lib.Add(ctx, NewDocument{Name: "one"})
	lib.Add(ctx, NewDocument{Name: "two"})
	d3 := lib.Add(ctx, NewDocument{Name: "three"})

	assert.Equal(t, []Document{d1, d3}, Linked(lib, []string{d3.ID, "gone", d1.ID}))
	assert.Empty(t, Linked(lib, nil))
}
