package content

import (
	"errors"
	"slices"
	"strings"
)

const (
	TimelineEducation  = "education"
	TimelineExperience = "experience"
)

type TimelineItem struct {
	ID          string   `json:"id"`
	Kind        string   `json:"type"`
	Year        string   `json:"year"`
	Title       string   `json:"title"`
	Institution string   `json:"institution"`
	Description string   `json:"description"`
	Courses     []string `json:"courses,omitempty"`
}

func (t TimelineItem) EntityID() string { return t.ID }
func (t TimelineItem) WithID(id string) TimelineItem { t.ID = id; return t }
func (t TimelineItem) Clone() TimelineItem { t.Courses = slices.Clone(t.Courses); return t }

func (t TimelineItem) Validate() error {
	if t.Title == "" {
		return errors.New("title is required")
	}
	return oneOf("timeline type", t.Kind, TimelineEducation, TimelineExperience)
}

type ProjectLinks struct {
	GitHub string `json:"github,omitempty"`
	Demo   string `json:"demo,omitempty"`
	Paper  string `json:"paper,omitempty"`
}

type Project struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Category    string       `json:"category"`
	Description string       `json:"description"`
	Tech        []string     `json:"tech"`
	Links       ProjectLinks `json:"links"`
	Complexity  int          `json:"complexity"`
	Image       string       `json:"image,omitempty"`
}

func (p Project) EntityID() string { return p.ID }
func (p Project) WithID(id string) Project { p.ID = id; return p }
func (p Project) Clone() Project { p.Tech = slices.Clone(p.Tech); return p }

func (p Project) Validate() error {
	if p.Title == "" {
		return errors.New("title is required")
	}
	return checkPercent("complexity", p.Complexity)
}

const (
	PublicationJournal    = "journal"
	PublicationConference = "conference"
	PublicationPreprint   = "preprint"
	PublicationBook       = "book"
	PublicationThesis     = "thesis"
	PublicationChapter    = "chapter"
)

type Publication struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Authors   []string `json:"authors"`
	Venue     string   `json:"venue"`
	Year      int      `json:"year"`
	Type      string   `json:"type"`
	Citations int      `json:"citations"`
	DOI       string   `json:"doi,omitempty"`
	Impact    string   `json:"impact,omitempty"`
	Abstract  string   `json:"abstract,omitempty"`
}

func (p Publication) EntityID() string { return p.ID }
func (p Publication) WithID(id string) Publication { p.ID = id; return p }
func (p Publication) Clone() Publication { p.Authors = slices.Clone(p.Authors); return p }

func (p Publication) Validate() error {
	if p.Title == "" {
		return errors.New("title is required")
	}
	if p.Citations < 0 {
		return errors.New("citations cannot be negative")
	}
	return oneOf("publication type", p.Type,
		PublicationJournal, PublicationConference, PublicationPreprint,
		PublicationBook, PublicationThesis, PublicationChapter)
}

const (
	SkillTechnical = "technical"
	SkillResearch  = "research"
	SkillLanguage  = "language"
	SkillSoft      = "soft"
	SkillTool      = "tool"
)

type Skill struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Level    int    `json:"level"`
	Category string `json:"category"`
}

func (s Skill) EntityID() string { return s.ID }
func (s Skill) WithID(id string) Skill { s.ID = id; return s }

func (s Skill) Validate() error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	if err := checkPercent("level", s.Level); err != nil {
		return err
	}
	return oneOf("skill category", s.Category, SkillTechnical, SkillResearch, SkillLanguage, SkillSoft, SkillTool)
}

const (
	NewsAward       = "award"
	NewsPublication = "publication"
	NewsTalk        = "talk"
	NewsGrant       = "grant"
	NewsGeneral     = "general"
)

type NewsItem struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Title    string `json:"title"`
	Body     string `json:"content"`
	Category string `json:"category"`
	Featured bool   `json:"featured"`
	Link     string `json:"link,omitempty"`
}

func (n NewsItem) EntityID() string { return n.ID }
func (n NewsItem) WithID(id string) NewsItem { n.ID = id; return n }

func (n NewsItem) Validate() error {
	if n.Title == "" {
		return errors.New("title is required")
	}
	return oneOf("news category", n.Category, NewsAward, NewsPublication, NewsTalk, NewsGrant, NewsGeneral)
}

type BlogPost struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Slug     string   `json:"slug"`
	Excerpt  string   `json:"excerpt"`
	Content  string   `json:"content"`
	Date     string   `json:"date"`
	Tags     []string `json:"tags"`
	ReadTime int      `json:"readTime"`
}

func (b BlogPost) EntityID() string { return b.ID }
func (b BlogPost) WithID(id string) BlogPost { b.ID = id; return b }
func (b BlogPost) Clone() BlogPost { b.Tags = slices.Clone(b.Tags); return b }

func (b BlogPost) Validate() error {
	if b.Title == "" {
		return errors.New("title is required")
	}
	return nil
}

type Award struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Issuer      string `json:"issuer"`
	Year        string `json:"year"`
	Description string `json:"description"`
}

func (a Award) EntityID() string { return a.ID }
func (a Award) WithID(id string) Award { a.ID = id; return a }

// CategorySeparator splits hierarchical resource categories, as in "Tools > Writing".
const CategorySeparator = " > "

type Resource struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (r Resource) EntityID() string { return r.ID }
func (r Resource) WithID(id string) Resource { r.ID = id; return r }

// CategoryPath returns the trimmed, non-empty segments of the category.
func (r Resource) CategoryPath() []string {
	parts := strings.Split(r.Category, ">")
	path := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			path = append(path, p)
		}
	}
	return path
}

func (r Resource) RootCategory() string {
	if path := r.CategoryPath(); len(path) > 0 {
		return path[0]
	}
	return ""
}

type PersonalDevItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Kind        string `json:"type"`
	Status      string `json:"status"`
	Progress    int    `json:"progress"`
	Description string `json:"description"`
}

func (p PersonalDevItem) EntityID() string { return p.ID }
func (p PersonalDevItem) WithID(id string) PersonalDevItem { p.ID = id; return p }

func (p PersonalDevItem) Validate() error {
	return checkPercent("progress", p.Progress)
}

type Testimonial struct {
	ID          string `json:"id"`
	Author      string `json:"name"`
	Role        string `json:"role"`
	Institution string `json:"institution"`
	Quote       string `json:"text"`
	Avatar      string `json:"avatar,omitempty"`
}

func (t Testimonial) EntityID() string { return t.ID }
func (t Testimonial) WithID(id string) Testimonial { t.ID = id; return t }

type Affiliation struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	URL   string `json:"url,omitempty"`
	Logo  string `json:"logo,omitempty"`
	Since string `json:"since,omitempty"`
}

func (a Affiliation) EntityID() string { return a.ID }
func (a Affiliation) WithID(id string) Affiliation { a.ID = id; return a }

// JoinCategory builds a hierarchical resource category from its segments.
func JoinCategory(path ...string) string {
	return strings.Join(path, CategorySeparator)
}
