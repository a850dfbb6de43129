package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/khoahotran/scholar-folio/internal/domain/content"
	"github.com/khoahotran/scholar-folio/internal/domain/profile"
)

func TestDefaults_Shape(t *testing.T) {
	d := Defaults()

	assert.NotEmpty(t, d.Profile.Name)
	for _, id := range profile.Sections {
		_, ok := d.Profile.SectionText[id]
		assert.True(t, ok, "section text for %s", id)
	}
	for _, c := range content.All() {
		assert.Greater(t, c.Len(&d), 0, "collection %s", c.Name())
		assert.NoError(t, c.CheckIDs(&d))
	}

	featured := 0
	for _, n := range d.News {
		if n.Featured {
			featured++
		}
	}
	assert.LessOrEqual(t, featured, 1)
}

func TestDefaults_ReturnsCopy(t *testing.T) {
	d := Defaults()
	d.Skills[0].Name = "changed"
	d.Profile.Titles[0] = "changed"

	again := Defaults()
	assert.NotEqual(t, "changed", again.Skills[0].Name)
	assert.NotEqual(t, "changed", again.Profile.Titles[0])
}
