package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_ReplacesOnlyGivenTopLevelFields(t *testing.T) {
	base := Profile{
		Name:     "Ada",
		Location: "London",
		Titles:   []string{"PhD Candidate"},
		SectionText: map[SectionID]SectionText{
			SectionAbout:    {Title: "About"},
			SectionProjects: {Title: "Work"},
		},
	}
	name := "Ada Lovelace"
	text := map[SectionID]SectionText{SectionAbout: {Title: "Who I am"}}

	got := base.Apply(Patch{Name: &name, SectionText: &text})

	assert.Equal(t, "Ada Lovelace", got.Name)
	assert.Equal(t, "London", got.Location)
	assert.Equal(t, []string{"PhD Candidate"}, got.Titles)
	// nested maps are replaced wholesale, not merged
	assert.Len(t, got.SectionText, 1)
	assert.Equal(t, "Who I am", got.SectionText[SectionAbout].Title)
	// the receiver is untouched
	assert.Equal(t, "Ada", base.Name)
	assert.Len(t, base.SectionText, 2)
}

func TestApply_DoesNotAliasPatchValues(t *testing.T) {
	titles := []string{"Lecturer"}
	got := Profile{}.Apply(Patch{Titles: &titles})
	titles[0] = "changed"
	assert.Equal(t, "Lecturer", got.Titles[0])
}

func TestNormalize_FillsEverySection(t *testing.T) {
	p := Profile{
		SectionVisibility: map[SectionID]bool{SectionBlog: false},
		SectionText:       map[SectionID]SectionText{SectionBlog: {Title: "Writing"}},
	}.Normalize()

	for _, id := range Sections {
		_, ok := p.SectionVisibility[id]
		assert.True(t, ok, "visibility for %s", id)
		_, ok = p.SectionText[id]
		assert.True(t, ok, "text for %s", id)
	}
	assert.False(t, p.SectionVisibility[SectionBlog])
	assert.Equal(t, "Writing", p.SectionText[SectionBlog].Title)
	assert.NotNil(t, p.Titles)
}

func TestAccessors_FallBackToDefaults(t *testing.T) {
	p := Profile{SectionText: map[SectionID]SectionText{SectionNews: {Subtitle: "Fresh"}}}

	assert.True(t, p.IsSectionVisible(SectionNews))
	assert.Equal(t, DefaultSectionText(SectionNews).Title, p.TextFor(SectionNews).Title)
	assert.Equal(t, "Fresh", p.TextFor(SectionNews).Subtitle)
	assert.Equal(t, DefaultSectionText(SectionAwards), p.TextFor(SectionAwards))
}

func TestDecodePatch(t *testing.T) {
	patch, err := DecodePatch([]byte(`{"quote":"Stay curious","availability":{"status":"open","message":"PhD positions"}}`))
	require.NoError(t, err)

	require.NotNil(t, patch.Quote)
	assert.Equal(t, "Stay curious", *patch.Quote)
	require.NotNil(t, patch.Availability)
	assert.Equal(t, "open", patch.Availability.Status)
	assert.Nil(t, patch.Name)
	assert.False(t, patch.IsEmpty())

	empty, err := DecodePatch([]byte(`{}`))
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())
}

func TestDecodePatch_RejectsUnknownSections(t *testing.T) {
	_, err := DecodePatch([]byte(`{"sectionVisibility":{"news":false,"guestbook":true}}`))
	assert.ErrorContains(t, err, "guestbook")

	_, err = DecodePatch([]byte(`{"sectionText":{"shop":{"title":"Shop"}}}`))
	assert.ErrorContains(t, err, "shop")

	patch, err := DecodePatch([]byte(`{"sectionVisibility":{"news":false},"sectionText":{"awards":{"title":"Honors"}}}`))
	require.NoError(t, err)
	assert.False(t, (*patch.SectionVisibility)[SectionNews])
	assert.True(t, IsKnownSection(SectionAwards))
}
