package profile

import (
	"encoding/json"
	"fmt"
	"iter"
	"maps"
	"slices"
)

type SocialLinks struct {
	GitHub       string       `json:"github"`
	LinkedIn     string       `json:"linkedin"`
	Twitter      string       `json:"twitter"`
	Scholar      string       `json:"scholar"`
	ORCID        string       `json:"orcid"`
	ResearchGate string       `json:"researchgate"`
	Custom       []CustomLink `json:"custom"`
}

type CustomLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type MediaLinks struct {
	Photo          string `json:"photo"`
	HeroBackground string `json:"heroBackground"`
	AboutPhoto     string `json:"aboutPhoto"`
	CV             string `json:"cv"`
	AudioGreeting  string `json:"audioGreeting"`
}

// EffectSettings tunes one visual effect of the view layer.
type EffectSettings struct {
	Enabled   bool    `json:"enabled"`
	Intensity float64 `json:"intensity"`
	Speed     float64 `json:"speed"`
	Color     string  `json:"color,omitempty"`
}

type Availability struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type CitationStats struct {
	Total      int    `json:"total"`
	HIndex     int    `json:"hIndex"`
	I10Index   int    `json:"i10Index"`
	ScholarURL string `json:"scholarUrl"`
}

type Profile struct {
	Name              string                    `json:"name"`
	Initials          string                    `json:"initials"`
	Titles            []string                  `json:"titles"`
	Location          string                    `json:"location"`
	Email             string                    `json:"email"`
	Social            SocialLinks               `json:"social"`
	Media             MediaLinks                `json:"media"`
	About             string                    `json:"about"`
	Quote             string                    `json:"quote"`
	FooterText        string                    `json:"footerText"`
	Effects           map[string]EffectSettings `json:"effects"`
	Language          string                    `json:"language"`
	Availability      Availability              `json:"availability"`
	Citations         CitationStats             `json:"citations"`
	SectionVisibility map[SectionID]bool        `json:"sectionVisibility"`
	SectionText       map[SectionID]SectionText `json:"sectionText"`
}

// Patch carries a partial profile update. Each non-nil field replaces the
// matching Profile field wholesale; nested objects are never merged key by key,
// so callers send the complete nested value they want stored.
type Patch struct {
	Name              *string                    `json:"name,omitempty"`
	Initials          *string                    `json:"initials,omitempty"`
	Titles            *[]string                  `json:"titles,omitempty"`
	Location          *string                    `json:"location,omitempty"`
	Email             *string                    `json:"email,omitempty"`
	Social            *SocialLinks               `json:"social,omitempty"`
	Media             *MediaLinks                `json:"media,omitempty"`
	About             *string                    `json:"about,omitempty"`
	Quote             *string                    `json:"quote,omitempty"`
	FooterText        *string                    `json:"footerText,omitempty"`
	Effects           *map[string]EffectSettings `json:"effects,omitempty"`
	Language          *string                    `json:"language,omitempty"`
	Availability      *Availability              `json:"availability,omitempty"`
	Citations         *CitationStats             `json:"citations,omitempty"`
	SectionVisibility *map[SectionID]bool        `json:"sectionVisibility,omitempty"`
	SectionText       *map[SectionID]SectionText `json:"sectionText,omitempty"`
}

func (p *Patch) IsEmpty() bool {
	return *p == Patch{}
}

// Apply returns a copy of p with every field set in patch replaced.
func (p Profile) Apply(patch Patch) Profile {
	out := p.Clone()
	setIf(&out.Name, patch.Name)
	setIf(&out.Initials, patch.Initials)
	setIf(&out.Location, patch.Location)
	setIf(&out.Email, patch.Email)
	setIf(&out.About, patch.About)
	setIf(&out.Quote, patch.Quote)
	setIf(&out.FooterText, patch.FooterText)
	setIf(&out.Language, patch.Language)
	setIf(&out.Availability, patch.Availability)
	setIf(&out.Citations, patch.Citations)
	setIf(&out.Media, patch.Media)
	if patch.Titles != nil {
		out.Titles = slices.Clone(*patch.Titles)
	}
	if patch.Social != nil {
		out.Social = *patch.Social
		out.Social.Custom = slices.Clone(patch.Social.Custom)
	}
	if patch.Effects != nil {
		out.Effects = maps.Clone(*patch.Effects)
	}
	if patch.SectionVisibility != nil {
		out.SectionVisibility = maps.Clone(*patch.SectionVisibility)
	}
	if patch.SectionText != nil {
		out.SectionText = maps.Clone(*patch.SectionText)
	}
	return out
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Clone returns a deep copy so callers cannot alias the store's maps and slices.
func (p Profile) Clone() Profile {
	out := p
	out.Titles = slices.Clone(p.Titles)
	out.Social.Custom = slices.Clone(p.Social.Custom)
	out.Effects = maps.Clone(p.Effects)
	out.SectionVisibility = maps.Clone(p.SectionVisibility)
	out.SectionText = maps.Clone(p.SectionText)
	return out
}

// Normalize fills every known section missing from the visibility and text maps
// with its default entry. Existing entries are left untouched.
func (p Profile) Normalize() Profile {
	out := p.Clone()
	if out.SectionVisibility == nil {
		out.SectionVisibility = make(map[SectionID]bool, len(Sections))
	}
	if out.SectionText == nil {
		out.SectionText = make(map[SectionID]SectionText, len(Sections))
	}
	for _, id := range Sections {
		if _, ok := out.SectionVisibility[id]; !ok {
			out.SectionVisibility[id] = true
		}
		if _, ok := out.SectionText[id]; !ok {
			out.SectionText[id] = DefaultSectionText(id)
		}
	}
	if out.Titles == nil {
		out.Titles = []string{}
	}
	if out.Effects == nil {
		out.Effects = map[string]EffectSettings{}
	}
	return out
}

// IsSectionVisible falls back to visible for sections the map does not mention.
func (p Profile) IsSectionVisible(id SectionID) bool {
	v, ok := p.SectionVisibility[id]
	return !ok || v
}

// TextFor returns the section's text, with empty fields taken from the defaults.
func (p Profile) TextFor(id SectionID) SectionText {
	def := DefaultSectionText(id)
	t, ok := p.SectionText[id]
	if !ok {
		return def
	}
	if t.Title == "" {
		t.Title = def.Title
	}
	if t.Subtitle == "" {
		t.Subtitle = def.Subtitle
	}
	if t.Description == "" {
		t.Description = def.Description
	}
	return t
}

// DecodePatch parses a JSON object into a Patch; absent keys stay nil.
// Section maps may only name known sections.
func DecodePatch(raw []byte) (Patch, error) {
	var patch Patch
	if err := json.Unmarshal(raw, &patch); err != nil {
		return Patch{}, err
	}
	if patch.SectionVisibility != nil {
		if err := checkSections(maps.Keys(*patch.SectionVisibility)); err != nil {
			return Patch{}, err
		}
	}
	if patch.SectionText != nil {
		if err := checkSections(maps.Keys(*patch.SectionText)); err != nil {
			return Patch{}, err
		}
	}
	return patch, nil
}

func checkSections(ids iter.Seq[SectionID]) error {
	for id := range ids {
		if !IsKnownSection(id) {
			return fmt.Errorf("unknown section %q", id)
		}
	}
	return nil
}
