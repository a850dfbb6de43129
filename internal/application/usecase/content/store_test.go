package content

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/scholar-folio/adapters/persistence"
	persistUC "github.com/khoahotran/scholar-folio/internal/application/usecase/persistence"
	"github.com/khoahotran/scholar-folio/internal/domain/content"
	"github.com/khoahotran/scholar-folio/internal/domain/profile"
	"github.com/khoahotran/scholar-folio/internal/seed"
	"github.com/khoahotran/scholar-folio/pkg/apperror"
	"github.com/khoahotran/scholar-folio/pkg/logger"
)

type fakePersister struct {
	snaps []content.Snapshot
	err   error
}

func (f *fakePersister) Persist(_ context.Context, snap content.Snapshot) error {
	f.snaps = append(f.snaps, snap)
	return f.err
}

func (f *fakePersister) last() content.Snapshot {
	return f.snaps[len(f.snaps)-1]
}

func newStore(t *testing.T) (*Store, *fakePersister) {
	t.Helper()
	p := &fakePersister{}
	return NewStore(seed.Defaults(), p, logger.NewNopLogger()), p
}

func TestSetProfile_ShallowReplace(t *testing.T) {
	s, p := newStore(t)
	ctx := context.Background()
	before := s.Profile()

	name := "Prof. New"
	social := profile.SocialLinks{GitHub: "https://github.com/new"}
	got, err := s.SetProfile(ctx, profile.Patch{Name: &name, Social: &social})
	require.NoError(t, err)

	assert.Equal(t, "Prof. New", got.Name)
	assert.Equal(t, "https://github.com/new", got.Social.GitHub)
	// Nested objects are replaced whole.
	assert.Empty(t, got.Social.LinkedIn)
	assert.Equal(t, before.Email, got.Email)
	require.Len(t, p.snaps, 1)
	assert.Equal(t, "Prof. New", p.last().Profile.Name)
}

func TestSetProfile_EmptyPatchDoesNotPersist(t *testing.T) {
	s, p := newStore(t)
	_, err := s.SetProfile(context.Background(), profile.Patch{})
	require.NoError(t, err)
	assert.Empty(t, p.snaps)
}

func TestReplaceProfile(t *testing.T) {
	s, p := newStore(t)

	got, err := s.ReplaceProfile(context.Background(), profile.Profile{Name: "Only Name"})
	require.NoError(t, err)
	assert.Equal(t, "Only Name", got.Name)
	assert.Empty(t, got.Email)
	assert.Equal(t, got, s.Profile())
	assert.True(t, got.IsSectionVisible(profile.SectionAwards))
	require.Len(t, p.snaps, 1)
	assert.Equal(t, "Only Name", p.last().Profile.Name)
}

func TestReadsAreCopies(t *testing.T) {
	s, _ := newStore(t)

	skills := Get(s, content.Skills)
	skills[0].Name = "mutated"
	pr := s.Profile()
	pr.Titles[0] = "mutated"

	assert.NotEqual(t, "mutated", Get(s, content.Skills)[0].Name)
	assert.NotEqual(t, "mutated", s.Profile().Titles[0])
}

func TestSet_PreservesOrderAndAssignsIDs(t *testing.T) {
	s, p := newStore(t)
	ctx := context.Background()

	items := []content.Skill{
		{ID: "b", Name: "B", Level: 10, Category: "tool"},
		{Name: "No id", Level: 20, Category: "tool"},
		{ID: "a", Name: "A", Level: 30, Category: "tool"},
	}
	require.NoError(t, Set(ctx, s, content.Skills, items))

	got := Get(s, content.Skills)
	require.Len(t, got, 3)
	assert.Equal(t, "b", got[0].ID)
	assert.NotEmpty(t, got[1].ID)
	assert.Equal(t, "a", got[2].ID)
	assert.Len(t, p.snaps, 1)
}

func TestSet_RejectsDuplicateIDs(t *testing.T) {
	s, p := newStore(t)
	err := Set(context.Background(), s, content.Skills, []content.Skill{{ID: "x"}, {ID: "x"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Empty(t, p.snaps)
}

func TestAdd_UniqueIDs(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	a, err := Add(ctx, s, content.Awards, content.Award{Title: "One"})
	require.NoError(t, err)
	b, err := Add(ctx, s, content.Awards, content.Award{Title: "Two"})
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.NoError(t, content.CheckIDs(Get(s, content.Awards)))
}

func TestAdd_ValidationFailureLeavesState(t *testing.T) {
	s, p := newStore(t)
	before := Get(s, content.Skills)

	_, err := Add(context.Background(), s, content.Skills, content.Skill{Name: "X", Level: 150, Category: "tool"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Equal(t, before, Get(s, content.Skills))
	assert.Empty(t, p.snaps)
}

func TestUpdateAndDelete(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	id := Get(s, content.Awards)[0].ID

	require.NoError(t, Update(ctx, s, content.Awards, id, content.Award{Title: "Renamed"}))
	assert.Equal(t, "Renamed", Get(s, content.Awards)[0].Title)
	assert.Equal(t, id, Get(s, content.Awards)[0].ID)

	err := Update(ctx, s, content.Awards, "missing", content.Award{Title: "x"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	require.NoError(t, Delete(ctx, s, content.Awards, id))
	assert.ErrorIs(t, Delete(ctx, s, content.Awards, id), apperror.ErrNotFound)
}

func TestFeaturedNews(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, Set(ctx, s, content.News, []content.NewsItem{
		{ID: "A", Title: "A", Category: "general", Featured: true},
		{ID: "B", Title: "B", Category: "general", Featured: true},
	}))
	got := Get(s, content.News)
	assert.False(t, got[0].Featured)
	assert.True(t, got[1].Featured)

	require.NoError(t, Set(ctx, s, content.News, []content.NewsItem{
		{ID: "A", Title: "A", Category: "general", Featured: true},
		{ID: "B", Title: "B", Category: "general", Featured: true},
		{ID: "C", Title: "C", Category: "general", Featured: true},
	}))
	got = Get(s, content.News)
	assert.Equal(t, []bool{false, false, true}, []bool{got[0].Featured, got[1].Featured, got[2].Featured})

	_, err := Add(ctx, s, content.News, content.NewsItem{Title: "D", Category: "talk", Featured: true})
	require.NoError(t, err)
	featured := 0
	for _, n := range Get(s, content.News) {
		if n.Featured {
			featured++
			assert.Equal(t, "D", n.Title)
		}
	}
	assert.Equal(t, 1, featured)
}

func TestPersistFailureIsNotFatal(t *testing.T) {
	s, p := newStore(t)
	p.err = apperror.NewStorageUnavailable("k", errors.New("quota"))

	_, err := Add(context.Background(), s, content.Awards, content.Award{Title: "Kept"})
	require.NoError(t, err)
	titles := []string{}
	for _, a := range Get(s, content.Awards) {
		titles = append(titles, a.Title)
	}
	assert.Contains(t, titles, "Kept")
}

func TestJSONOperations(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	_, err := s.CollectionJSON("unknown")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	require.NoError(t, s.SetCollectionJSON(ctx, content.NameAwards, []byte(`[{"id":"x","title":"X"}]`)))
	raw, err := s.CollectionJSON(content.NameAwards)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"x","title":"X","issuer":"","year":"","description":""}]`, string(raw))

	err = s.SetCollectionJSON(ctx, content.NameAwards, []byte(`[{"id":"d"},{"id":"d"}]`))
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	err = s.SetCollectionJSON(ctx, content.NameAwards, []byte(`{"id":"x"}`))
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Len(t, Get(s, content.Awards), 1)

	// Items without an id get one, as with the typed Set.
	require.NoError(t, s.SetCollectionJSON(ctx, content.NameAwards, []byte(`[{"id":"x","title":"X"},{"title":"fresh"}]`)))
	awards := Get(s, content.Awards)
	require.Len(t, awards, 2)
	assert.NotEmpty(t, awards[1].ID)
	require.NoError(t, s.SetCollectionJSON(ctx, content.NameAwards, []byte(`[{"id":"x","title":"X"}]`)))

	id, err := s.AddItemJSON(ctx, content.NameAwards, []byte(`{"title":"Y"}`))
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	require.NoError(t, s.UpdateItemJSON(ctx, content.NameAwards, id, []byte(`{"title":"Z"}`)))
	assert.Equal(t, "Z", Get(s, content.Awards)[1].Title)
	assert.ErrorIs(t, s.UpdateItemJSON(ctx, content.NameAwards, "nope", []byte(`{}`)), apperror.ErrNotFound)
	require.NoError(t, s.DeleteItem(ctx, content.NameAwards, id))
	assert.Len(t, Get(s, content.Awards), 1)
}

func TestReplaceAll(t *testing.T) {
	s, p := newStore(t)
	ctx := context.Background()

	next := seed.Defaults()
	next.Profile.Name = "Imported"
	next.Awards = nil
	require.NoError(t, s.ReplaceAll(ctx, next))
	assert.Equal(t, "Imported", s.Profile().Name)
	assert.Empty(t, Get(s, content.Awards))
	assert.Len(t, p.snaps, 1)

	bad := seed.Defaults()
	bad.Skills = append(bad.Skills, bad.Skills[0])
	err := s.ReplaceAll(ctx, bad)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Equal(t, "Imported", s.Profile().Name)
}

func TestActiveHighlight(t *testing.T) {
	s, p := newStore(t)
	assert.Empty(t, s.ActiveHighlight())
	s.SetActiveHighlight("ml")
	assert.Equal(t, "ml", s.ActiveHighlight())
	assert.Empty(t, p.snaps)
}

func TestSetCollection_IdempotentBlob(t *testing.T) {
	ctx := context.Background()
	log := logger.NewNopLogger()
	kv := persistence.NewMemoryKV()
	controller := persistUC.NewController(persistUC.NewAdapter(kv, "folio:", log), 0, log)
	snap, _ := controller.Hydrate(ctx)
	s := NewStore(snap, controller, log)

	list := Get(s, content.Projects)
	require.NoError(t, Set(ctx, s, content.Projects, list))
	first, err := kv.Get(ctx, "folio:collection:projects")
	require.NoError(t, err)

	require.NoError(t, Set(ctx, s, content.Projects, list))
	second, err := kv.Get(ctx, "folio:collection:projects")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var stored []content.Project
	require.NoError(t, json.Unmarshal([]byte(second), &stored))
	assert.Len(t, stored, len(list))
}
