package content

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Name identifies a collection. It doubles as the storage key suffix and the
// top-level key in export documents.
type Name string

const (
	NameTimeline     Name = "timeline"
	NameProjects     Name = "projects"
	NamePublications Name = "publications"
	NameSkills       Name = "skills"
	NameNews         Name = "news"
	NameBlog         Name = "blog"
	NameAwards       Name = "awards"
	NameResources    Name = "resources"
	NamePersonalDev  Name = "personalDev"
	NameTestimonials Name = "testimonials"
	NameAffiliations Name = "affiliations"
)

// Descriptor gives typed access to one collection of a Snapshot.
type Descriptor[T Entity[T]] struct {
	name      Name
	get       func(*Snapshot) []T
	set       func(*Snapshot, []T)
	normalize func(prev, next []T) []T
}

func (d Descriptor[T]) Name() Name { return d.name }

// Get returns a copy of the collection.
func (d Descriptor[T]) Get(s *Snapshot) []T {
	return cloneItems(d.get(s))
}

// Put replaces the collection with a copy of items, applying the collection's
// normalization against the list it replaces.
func (d Descriptor[T]) Put(s *Snapshot, items []T) {
	next := cloneItems(items)
	if next == nil {
		next = []T{}
	}
	if d.normalize != nil {
		next = d.normalize(d.get(s), next)
	}
	d.set(s, next)
}

// Add appends item, assigning a fresh id when it has none. It returns the stored item.
func (d Descriptor[T]) Add(s *Snapshot, item T) (T, error) {
	if item.EntityID() == "" {
		item = item.WithID(NewID())
	}
	if err := validate(item); err != nil {
		return item, err
	}
	list := d.get(s)
	for _, it := range list {
		if it.EntityID() == item.EntityID() {
			return item, fmt.Errorf("%s %s: %w", d.name, item.EntityID(), ErrDuplicateID)
		}
	}
	d.Put(s, append(slices.Clone(list), item))
	return item, nil
}

// Update replaces the item whose id matches. It reports false when no item matches.
func (d Descriptor[T]) Update(s *Snapshot, id string, item T) (bool, error) {
	item = item.WithID(id)
	if err := validate(item); err != nil {
		return false, err
	}
	list := slices.Clone(d.get(s))
	for i, it := range list {
		if it.EntityID() == id {
			list[i] = item
			d.Put(s, list)
			return true, nil
		}
	}
	return false, nil
}

// Delete removes the item with id. It reports false when no item matches.
func (d Descriptor[T]) Delete(s *Snapshot, id string) bool {
	list := d.get(s)
	idx := slices.IndexFunc(list, func(it T) bool { return it.EntityID() == id })
	if idx < 0 {
		return false
	}
	d.set(s, slices.Delete(slices.Clone(list), idx, idx+1))
	return true
}

// Collection is the untyped view of a Descriptor used where the collection is
// only known by name: storage blobs, backup documents and the HTTP surface.
type Collection interface {
	Name() Name
	Len(s *Snapshot) int
	Marshal(s *Snapshot) ([]byte, error)
	// Unmarshal decodes a JSON array and stores it in s via Put.
	Unmarshal(s *Snapshot, raw []byte) error
	// Load is Unmarshal that assigns missing ids and rejects repeated ones.
	// s is untouched on error.
	Load(s *Snapshot, raw []byte) error
	CheckIDs(s *Snapshot) error
	AddJSON(s *Snapshot, raw []byte) (string, error)
	UpdateJSON(s *Snapshot, id string, raw []byte) (bool, error)
	Delete(s *Snapshot, id string) bool
	copyFrom(dst, src *Snapshot)
}

func (d Descriptor[T]) Len(s *Snapshot) int { return len(d.get(s)) }

func (d Descriptor[T]) Marshal(s *Snapshot) ([]byte, error) {
	list := d.get(s)
	if list == nil {
		list = []T{}
	}
	return json.Marshal(list)
}

func (d Descriptor[T]) Unmarshal(s *Snapshot, raw []byte) error {
	items, err := decodeList[T](raw)
	if err != nil {
		return fmt.Errorf("decode %s: %w", d.name, err)
	}
	d.Put(s, items)
	return nil
}

func (d Descriptor[T]) Load(s *Snapshot, raw []byte) error {
	items, err := decodeList[T](raw)
	if err != nil {
		return fmt.Errorf("decode %s: %w", d.name, err)
	}
	items = FillIDs(items)
	if err := CheckIDs(items); err != nil {
		return fmt.Errorf("%s: %w", d.name, err)
	}
	d.Put(s, items)
	return nil
}

func (d Descriptor[T]) CheckIDs(s *Snapshot) error {
	if err := CheckIDs(d.get(s)); err != nil {
		return fmt.Errorf("%s: %w", d.name, err)
	}
	return nil
}

func (d Descriptor[T]) AddJSON(s *Snapshot, raw []byte) (string, error) {
	var item T
	if err := json.Unmarshal(raw, &item); err != nil {
		return "", fmt.Errorf("decode %s item: %w", d.name, err)
	}
	stored, err := d.Add(s, item)
	return stored.EntityID(), err
}

func (d Descriptor[T]) UpdateJSON(s *Snapshot, id string, raw []byte) (bool, error) {
	var item T
	if err := json.Unmarshal(raw, &item); err != nil {
		return false, fmt.Errorf("decode %s item: %w", d.name, err)
	}
	return d.Update(s, id, item)
}

func (d Descriptor[T]) copyFrom(dst, src *Snapshot) {
	d.set(dst, cloneItems(d.get(src)))
}

func decodeList[T any](raw []byte) ([]T, error) {
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	if items == nil {
		return nil, fmt.Errorf("expected a JSON array")
	}
	return items, nil
}

type cloner[T any] interface {
	Clone() T
}

func cloneItems[T any](items []T) []T {
	if items == nil {
		return nil
	}
	out := make([]T, len(items))
	for i, it := range items {
		if c, ok := any(it).(cloner[T]); ok {
			out[i] = c.Clone()
		} else {
			out[i] = it
		}
	}
	return out
}

var (
	Timeline = Descriptor[TimelineItem]{
		name: NameTimeline,
		get:  func(s *Snapshot) []TimelineItem { return s.Timeline },
		set:  func(s *Snapshot, v []TimelineItem) { s.Timeline = v },
	}
	Projects = Descriptor[Project]{
		name: NameProjects,
		get:  func(s *Snapshot) []Project { return s.Projects },
		set:  func(s *Snapshot, v []Project) { s.Projects = v },
	}
	Publications = Descriptor[Publication]{
		name: NamePublications,
		get:  func(s *Snapshot) []Publication { return s.Publications },
		set:  func(s *Snapshot, v []Publication) { s.Publications = v },
	}
	Skills = Descriptor[Skill]{
		name: NameSkills,
		get:  func(s *Snapshot) []Skill { return s.Skills },
		set:  func(s *Snapshot, v []Skill) { s.Skills = v },
	}
	News = Descriptor[NewsItem]{
		name:      NameNews,
		get:       func(s *Snapshot) []NewsItem { return s.News },
		set:       func(s *Snapshot, v []NewsItem) { s.News = v },
		normalize: NormalizeFeatured,
	}
	Blog = Descriptor[BlogPost]{
		name: NameBlog,
		get:  func(s *Snapshot) []BlogPost { return s.Blog },
		set:  func(s *Snapshot, v []BlogPost) { s.Blog = v },
	}
	Awards = Descriptor[Award]{
		name: NameAwards,
		get:  func(s *Snapshot) []Award { return s.Awards },
		set:  func(s *Snapshot, v []Award) { s.Awards = v },
	}
	Resources = Descriptor[Resource]{
		name: NameResources,
		get:  func(s *Snapshot) []Resource { return s.Resources },
		set:  func(s *Snapshot, v []Resource) { s.Resources = v },
	}
	PersonalDev = Descriptor[PersonalDevItem]{
		name: NamePersonalDev,
		get:  func(s *Snapshot) []PersonalDevItem { return s.PersonalDev },
		set:  func(s *Snapshot, v []PersonalDevItem) { s.PersonalDev = v },
	}
	Testimonials = Descriptor[Testimonial]{
		name: NameTestimonials,
		get:  func(s *Snapshot) []Testimonial { return s.Testimonials },
		set:  func(s *Snapshot, v []Testimonial) { s.Testimonials = v },
	}
	Affiliations = Descriptor[Affiliation]{
		name: NameAffiliations,
		get:  func(s *Snapshot) []Affiliation { return s.Affiliations },
		set:  func(s *Snapshot, v []Affiliation) { s.Affiliations = v },
	}
)

var collections = []Collection{
	Timeline, Projects, Publications, Skills, News, Blog,
	Awards, Resources, PersonalDev, Testimonials, Affiliations,
}

// All returns every collection in document order.
func All() []Collection {
	return slices.Clone(collections)
}

// Lookup finds a collection by name.
func Lookup(name Name) (Collection, bool) {
	for _, c := range collections {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// NormalizeFeatured keeps at most one featured news item. The winner is the
// last item in next that was not already featured in prev; when every featured
// item in next was featured before, the last of them wins.
func NormalizeFeatured(prev, next []NewsItem) []NewsItem {
	wasFeatured := make(map[string]bool, len(prev))
	for _, n := range prev {
		if n.Featured {
			wasFeatured[n.ID] = true
		}
	}
	winner, fallback := -1, -1
	for i, n := range next {
		if !n.Featured {
			continue
		}
		fallback = i
		if !wasFeatured[n.ID] {
			winner = i
		}
	}
	if winner < 0 {
		winner = fallback
	}
	if winner < 0 {
		return next
	}
	for i := range next {
		next[i].Featured = i == winner
	}
	return next
}
