package content

import (
	"github.com/khoahotran/scholar-folio/internal/domain/profile"
)

// Snapshot is the full content graph: the profile and every collection.
// Its JSON form is the export/import document body.
type Snapshot struct {
	Profile      profile.Profile   `json:"profile"`
	Timeline     []TimelineItem    `json:"timeline"`
	Projects     []Project         `json:"projects"`
	Publications []Publication     `json:"publications"`
	Skills       []Skill           `json:"skills"`
	News         []NewsItem        `json:"news"`
	Blog         []BlogPost        `json:"blog"`
	Awards       []Award           `json:"awards"`
	Resources    []Resource        `json:"resources"`
	PersonalDev  []PersonalDevItem `json:"personalDev"`
	Testimonials []Testimonial     `json:"testimonials"`
	Affiliations []Affiliation     `json:"affiliations"`
}

// ProfileKey is the top-level document key holding the profile.
const ProfileKey = "profile"

// Clone returns a copy that shares no slices or maps with s.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{Profile: s.Profile.Clone()}
	for _, c := range All() {
		c.copyFrom(&out, &s)
	}
	return out
}
