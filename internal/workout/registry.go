package workout

import (
	"log/slog"
	"strings"

	"github.com/myrjola/wodgen/internal/errors"
)

// ErrEmptyCatalog is returned when a registry would be built with no
// movements. An empty catalog is a configuration fault, never a degraded
// mode.
var ErrEmptyCatalog = errors.NewSentinel("movement catalog is empty")

// Registry is the read-only movement catalog. Movements keep their
// insertion order so that seeded selection downstream walks a stable list.
type Registry struct {
	movements []Movement
	byID      map[string]int
}

// NewRegistry builds a registry from the source movement list. Movement IDs
// are derived from names, missing pattern and equipment tags fall back to
// their explicit defaults, and duplicate IDs are rejected.
func NewRegistry(movements []Movement) (*Registry, error) {
	if len(movements) == 0 {
		return nil, ErrEmptyCatalog
	}

	r := &Registry{
		movements: make([]Movement, 0, len(movements)),
		byID:      make(map[string]int, len(movements)),
	}
	for _, m := range movements {
		if m.ID == "" {
			m.ID = Slugify(m.Name)
		}
		if m.ID == "" {
			return nil, errors.New("movement has neither id nor name")
		}
		if len(m.Patterns) == 0 {
			m.Patterns = []Pattern{PatternGeneral}
		}
		if len(m.Equipment) == 0 {
			m.Equipment = []string{EquipmentBodyweight}
		}
		if _, exists := r.byID[m.ID]; exists {
			return nil, errors.New("duplicate movement id", slog.String("id", m.ID))
		}
		r.byID[m.ID] = len(r.movements)
		r.movements = append(r.movements, m)
	}
	return r, nil
}

// Len returns the number of movements in the catalog.
func (r *Registry) Len() int {
	return len(r.movements)
}

// Get looks up a movement by ID.
func (r *Registry) Get(id string) (Movement, bool) {
	idx, ok := r.byID[id]
	if !ok {
		return Movement{}, false
	}
	return r.movements[idx], true
}

// EquipmentTags returns every distinct equipment tag in the catalog in
// first-seen order. Callers use it as the "fully equipped gym" default.
func (r *Registry) EquipmentTags() []string {
	seen := make(map[string]bool)
	var tags []string
	for _, m := range r.movements {
		for _, e := range m.Equipment {
			if !seen[e] {
				seen[e] = true
				tags = append(tags, e)
			}
		}
	}
	return tags
}

// Filter constrains a registry query. Empty dimensions match everything;
// within a dimension the values are OR'd, across dimensions AND'd. A nil
// Equipment slice means no equipment constraint at all, which is how
// selection widens a draw without disturbing candidate order.
type Filter struct {
	Categories []Category
	Patterns   []Pattern
	Modalities []Modality
	Equipment  []string
	ExcludeIDs []string
}

// Query returns the movements matching the filter in insertion order.
// Bodyweight movements always satisfy the equipment constraint.
func (r *Registry) Query(f Filter) []Movement {
	available := make(map[string]bool, len(f.Equipment)+1)
	available[EquipmentBodyweight] = true
	for _, e := range f.Equipment {
		available[strings.ToLower(strings.TrimSpace(e))] = true
	}
	excluded := make(map[string]bool, len(f.ExcludeIDs))
	for _, id := range f.ExcludeIDs {
		excluded[id] = true
	}

	var matched []Movement
	for _, m := range r.movements {
		if excluded[m.ID] {
			continue
		}
		if !matchesAny(m.Category, f.Categories) {
			continue
		}
		if !matchesAnyPattern(m, f.Patterns) {
			continue
		}
		if !matchesAny(m.Modality, f.Modalities) {
			continue
		}
		if f.Equipment != nil && !equipmentCovered(m, available) {
			continue
		}
		matched = append(matched, m)
	}
	return matched
}

// matchesAny reports whether v is in wanted, with an empty wanted slice
// matching everything.
func matchesAny[T comparable](v T, wanted []T) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, w := range wanted {
		if v == w {
			return true
		}
	}
	return false
}

func matchesAnyPattern(m Movement, wanted []Pattern) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, p := range wanted {
		if m.HasPattern(p) {
			return true
		}
	}
	return false
}

// equipmentCovered reports whether every equipment tag the movement needs
// is available.
func equipmentCovered(m Movement, available map[string]bool) bool {
	for _, e := range m.Equipment {
		if !available[e] {
			return false
		}
	}
	return true
}

// Slugify derives the stable catalog ID from a movement name: lowercase,
// apostrophes elided, runs of other non-alphanumerics collapse to single
// dashes ("Child's Pose" becomes "childs-pose"). Rebuilding the catalog
// from the same names always yields the same IDs.
func Slugify(name string) string {
	var b strings.Builder
	dashPending := false
	for _, r := range strings.ToLower(name) {
		if r == '\'' || r == '’' {
			continue
		}
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			dashPending = b.Len() > 0
			continue
		}
		if dashPending {
			b.WriteByte('-')
			dashPending = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
