package application

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo-apply/core"
	dummydb "github.com/trezcool/masomo-apply/storage/database/dummy"
	"github.com/trezcool/masomo-apply/tests"
)

func newTestStore(t *testing.T) (*Store, *dummydb.DB) {
	testutil.SeqIDs(t, "id")
	testutil.FixClock(t)
	st := testutil.NewStorage(t)
	return NewStore(context.Background(), st, testutil.NewLogger(t)), st
}

func TestStore_AddApplication(t *testing.T) {
	tests := []struct {
		name string
		data NewApplication
		want Application
	}{
		{
			name: "defaults to university",
			data: NewApplication{UniversityID: " uni-uct "},
			want: Application{
				ID:           "id-1",
				UniversityID: "uni-uct",
				EntityType:   EntityUniversity,
				Status:       StatusPlanning,
				Supplements:  []Supplement{},
				CreatedAt:    testutil.Epoch,
			},
		},
		{
			name: "program",
			data: NewApplication{UniversityID: "prog-ashesi-cs", EntityType: EntityProgram, Notes: "early"},
			want: Application{
				ID:           "id-1",
				UniversityID: "prog-ashesi-cs",
				EntityType:   EntityProgram,
				Status:       StatusPlanning,
				Supplements:  []Supplement{},
				Notes:        "early",
				CreatedAt:    testutil.Epoch,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, st := newTestStore(t)
			got := s.AddApplication(context.Background(), tt.data)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("AddApplication() mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, []Application{got}, s.List())

			var saved []Application
			testutil.Stored(t, st, core.ApplicationsKey, &saved)
			assert.Empty(t, cmp.Diff(s.List(), saved))
		})
	}
}

func TestStore_RemoveApplication(t *testing.T) {
	ctx := context.Background()
	s, st := newTestStore(t)
	a1 := s.AddApplication(ctx, NewApplication{UniversityID: "uni-uct"})
	a2 := s.AddApplication(ctx, NewApplication{UniversityID: "uni-mit"})

	s.RemoveApplication(ctx, a1.ID)
	first := s.List()
	saves := st.Saves()

	s.RemoveApplication(ctx, a1.ID)
	s.RemoveApplication(ctx, "unknown")
	second := s.List()

	assert.Equal(t, first, second)
	assert.Equal(t, []Application{a2}, second)
	assert.Equal(t, saves, st.Saves(), "removing a missing id must not persist")
}

func TestStore_updates(t *testing.T) {
	ctx := context.Background()
	docID := "doc-1"

	tests := []struct {
		name   string
		mutate func(s *Store, app Application)
		want   func(a *Application)
	}{
		{
			name:   "status",
			mutate: func(s *Store, app Application) { s.UpdateStatus(ctx, app.ID, StatusSubmitted) },
			want:   func(a *Application) { a.Status = StatusSubmitted },
		},
		{
			name: "majors",
			mutate: func(s *Store, app Application) {
				s.UpdateMajors(ctx, app.ID, Majors{First: " Computer Science ", Second: "Economics"})
			},
			want: func(a *Application) { a.Majors = Majors{First: "Computer Science", Second: "Economics"} },
		},
		{
			name:   "notes",
			mutate: func(s *Store, app Application) { s.UpdateNotes(ctx, app.ID, "call admissions") },
			want:   func(a *Application) { a.Notes = "call admissions" },
		},
		{
			name: "add supplement",
			mutate: func(s *Store, app Application) {
				_, ok := s.AddSupplement(ctx, app.ID, " Why us? ")
				assert.True(t, ok)
			},
			want: func(a *Application) { a.Supplements = []Supplement{{ID: "id-2", Title: "Why us?"}} },
		},
		{
			name: "link supplement",
			mutate: func(s *Store, app Application) {
				sup, _ := s.AddSupplement(ctx, app.ID, "Portfolio")
				s.LinkSupplement(ctx, app.ID, sup.ID, &docID)
			},
			want: func(a *Application) {
				a.Supplements = []Supplement{{ID: "id-2", Title: "Portfolio", LinkedDocumentID: &docID}}
			},
		},
		{
			name: "unlink supplement keeps it",
			mutate: func(s *Store, app Application) {
				sup, _ := s.AddSupplement(ctx, app.ID, "Portfolio")
				s.LinkSupplement(ctx, app.ID, sup.ID, &docID)
				s.LinkSupplement(ctx, app.ID, sup.ID, nil)
			},
			want: func(a *Application) { a.Supplements = []Supplement{{ID: "id-2", Title: "Portfolio"}} },
		},
		{
			name: "remove supplement",
			mutate: func(s *Store, app Application) {
				sup, _ := s.AddSupplement(ctx, app.ID, "Portfolio")
				s.AddSupplement(ctx, app.ID, "Essay")
				s.RemoveSupplement(ctx, app.ID, sup.ID)
			},
			want: func(a *Application) { a.Supplements = []Supplement{{ID: "id-3", Title: "Essay"}} },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t)
			app := s.AddApplication(ctx, NewApplication{UniversityID: "uni-uct"})

			want := app.clone()
			tt.want(&want)
			tt.mutate(s, app)

			got, err := s.Get(app.ID)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStore_missingIDs(t *testing.T) {
	ctx := context.Background()
	s, st := newTestStore(t)
	app := s.AddApplication(ctx, NewApplication{UniversityID: "uni-uct"})
	before := s.List()
	saves := st.Saves()
	docID := "doc-1"

	s.UpdateStatus(ctx, "unknown", StatusSubmitted)
	s.UpdateMajors(ctx, "unknown", Majors{First: "Law"})
	s.UpdateNotes(ctx, "unknown", "x")
	_, ok := s.AddSupplement(ctx, "unknown", "Essay")
	s.RemoveSupplement(ctx, app.ID, "unknown")
	s.RemoveSupplement(ctx, "unknown", "unknown")
	s.LinkSupplement(ctx, app.ID, "unknown", &docID)
	s.LinkSupplement(ctx, "unknown", "unknown", &docID)
	s.UnlinkDocument(ctx, docID)

	assert.False(t, ok)
	assert.Equal(t, before, s.List())
	assert.Equal(t, saves, st.Saves())

	_, err := s.Get("unknown")
	assert.Equal(t, ErrNotFound, err)
}

func TestStore_copyOnWrite(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	app := s.AddApplication(ctx, NewApplication{UniversityID: "uni-uct"})
	sup, _ := s.AddSupplement(ctx, app.ID, "Essay")

	snapshot := s.List()
	want := make([]Application, len(snapshot))
	for i, a := range snapshot {
		want[i] = a.clone()
	}

	docID := "doc-1"
	s.UpdateStatus(ctx, app.ID, StatusInProgress)
	s.LinkSupplement(ctx, app.ID, sup.ID, &docID)
	s.AddSupplement(ctx, app.ID, "Portfolio")
	s.AddApplication(ctx, NewApplication{UniversityID: "uni-mit"})

	if diff := cmp.Diff(want, snapshot); diff != "" {
		t.Errorf("earlier snapshot was modified (-want +got):\n%s", diff)
	}
	assert.Len(t, s.List(), 2)
}

func TestStore_UnlinkDocument(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	removed, kept := "doc-removed", "doc-kept"

	a1 := s.AddApplication(ctx, NewApplication{UniversityID: "uni-uct"})
	s1, _ := s.AddSupplement(ctx, a1.ID, "Essay")
	s2, _ := s.AddSupplement(ctx, a1.ID, "Portfolio")
	s.LinkSupplement(ctx, a1.ID, s1.ID, &removed)
	s.LinkSupplement(ctx, a1.ID, s2.ID, &kept)

	a2 := s.AddApplication(ctx, NewApplication{UniversityID: "uni-mit"})
	s3, _ := s.AddSupplement(ctx, a2.ID, "Essay")
	s.LinkSupplement(ctx, a2.ID, s3.ID, &removed)

	s.UnlinkDocument(ctx, removed)

	got1, _ := s.Get(a1.ID)
	got2, _ := s.Get(a2.ID)
	assert.Equal(t, []Supplement{{ID: s1.ID, Title: "Essay"}, {ID: s2.ID, Title: "Portfolio", LinkedDocumentID: &kept}}, got1.Supplements)
	assert.Equal(t, []Supplement{{ID: s3.ID, Title: "Essay"}}, got2.Supplements)
}

func TestNewStore_restore(t *testing.T) {
	st := testutil.NewStorage(t)
	testutil.Seed(t, st, core.ApplicationsKey, []map[string]interface{}{
		{"id": "a1", "universityId": "uni-uct", "status": "Submitted"},
	})
	s := NewStore(context.Background(), st, testutil.NewLogger(t))

	got, err := s.Get("a1")
	require.NoError(t, err)
	assert.Equal(t, StatusSubmitted, got.Status)
	assert.Equal(t, EntityUniversity, got.EntityType)
	assert.NotNil(t, got.Supplements)
}
