package profile

// SectionID names a presentational section of the portfolio page.
type SectionID string

const (
	SectionHero         SectionID = "hero"
	SectionAbout        SectionID = "about"
	SectionTimeline     SectionID = "timeline"
	SectionResearch     SectionID = "research"
	SectionProjects     SectionID = "projects"
	SectionPublications SectionID = "publications"
	SectionSkills       SectionID = "skills"
	SectionNews         SectionID = "news"
	SectionBlog         SectionID = "blog"
	SectionAwards       SectionID = "awards"
	SectionResources    SectionID = "resources"
	SectionPersonalDev  SectionID = "personalDev"
	SectionTestimonials SectionID = "testimonials"
	SectionAffiliations SectionID = "affiliations"
	SectionGallery      SectionID = "gallery"
	SectionContact      SectionID = "contact"
)

// Sections lists every known section in page order.
var Sections = []SectionID{
	SectionHero, SectionAbout, SectionTimeline, SectionResearch, SectionProjects,
	SectionPublications, SectionSkills, SectionNews, SectionBlog, SectionAwards,
	SectionResources, SectionPersonalDev, SectionTestimonials, SectionAffiliations,
	SectionGallery, SectionContact,
}

type SectionText struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	Description string `json:"description,omitempty"`
}

var defaultSectionText = map[SectionID]SectionText{
	SectionHero:         {Title: "Welcome"},
	SectionAbout:        {Title: "About Me", Subtitle: "Background and interests"},
	SectionTimeline:     {Title: "Journey", Subtitle: "Education and experience"},
	SectionResearch:     {Title: "Research", Subtitle: "Current directions"},
	SectionProjects:     {Title: "Projects", Subtitle: "Selected work"},
	SectionPublications: {Title: "Publications", Subtitle: "Papers and articles"},
	SectionSkills:       {Title: "Skills", Subtitle: "Tools and expertise"},
	SectionNews:         {Title: "News", Subtitle: "Recent updates"},
	SectionBlog:         {Title: "Blog", Subtitle: "Notes and essays"},
	SectionAwards:       {Title: "Awards", Subtitle: "Honors and grants"},
	SectionResources:    {Title: "Resources", Subtitle: "Curated links"},
	SectionPersonalDev:  {Title: "Personal Development", Subtitle: "Always learning"},
	SectionTestimonials: {Title: "Testimonials", Subtitle: "Kind words"},
	SectionAffiliations: {Title: "Affiliations", Subtitle: "Memberships and labs"},
	SectionGallery:      {Title: "Gallery", Subtitle: "Moments"},
	SectionContact:      {Title: "Contact", Subtitle: "Get in touch"},
}

// DefaultSectionText is the hardcoded text used when a profile has none.
func DefaultSectionText(id SectionID) SectionText {
	if t, ok := defaultSectionText[id]; ok {
		return t
	}
	return SectionText{Title: string(id)}
}

func IsKnownSection(id SectionID) bool {
	_, ok := defaultSectionText[id]
	return ok
}
