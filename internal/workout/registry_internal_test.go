package workout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewRegistryNormalization(t *testing.T) {
	registry, err := NewRegistry([]Movement{
		{Name: "Back Squat", Category: CategoryPowerlifting, Patterns: []Pattern{PatternSquat}, Equipment: []string{"barbell"}},
		{Name: "Push-Up", Category: CategoryGymnastics},
	})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	squat, ok := registry.Get("back-squat")
	if !ok {
		t.Fatal("back-squat not found by derived ID")
	}
	if squat.Name != "Back Squat" {
		t.Errorf("Name = %q, want Back Squat", squat.Name)
	}

	pushUp, ok := registry.Get("push-up")
	if !ok {
		t.Fatal("push-up not found by derived ID")
	}
	if diff := cmp.Diff([]Pattern{PatternGeneral}, pushUp.Patterns); diff != "" {
		t.Errorf("pattern fallback mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{EquipmentBodyweight}, pushUp.Equipment); diff != "" {
		t.Errorf("equipment fallback mismatch (-want +got):\n%s", diff)
	}
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	_, err := NewRegistry([]Movement{
		{Name: "Back Squat", Category: CategoryPowerlifting},
		{Name: "Back  Squat!", Category: CategoryPowerlifting},
	})
	if err == nil {
		t.Error("expected duplicate-ID error for names that slug identically")
	}
}

func TestQueryDimensions(t *testing.T) {
	registry, err := NewRegistry(createMovementPool())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{
			name:   "category and pattern AND together",
			filter: Filter{Categories: []Category{CategoryPowerlifting}, Patterns: []Pattern{PatternSquat}, Equipment: fullGym()},
			want:   []string{"back-squat", "front-squat"},
		},
		{
			name: "values within a dimension OR together",
			filter: Filter{
				Categories: []Category{CategoryOlympic},
				Patterns:   []Pattern{PatternSnatch, PatternCleanAndJerk},
				Equipment:  fullGym(),
			},
			want: []string{"snatch", "power-snatch", "clean-and-jerk", "power-clean"},
		},
		{
			name: "equipment must cover every tag",
			filter: Filter{
				Categories: []Category{CategoryPowerlifting},
				Patterns:   []Pattern{PatternPress},
				Equipment:  []string{"barbell"},
			},
			// Bench Press needs barbell and bench, so only the overhead
			// press survives.
			want: []string{"overhead-press"},
		},
		{
			name: "bodyweight always available",
			filter: Filter{
				Categories: []Category{CategoryGymnastics},
				Patterns:   []Pattern{PatternCore},
				Equipment:  []string{},
			},
			want: []string{"handstand-hold", "hollow-rock", "plank", "wall-sit"},
		},
		{
			name: "excluded IDs drop out",
			filter: Filter{
				Categories: []Category{CategoryPowerlifting},
				Patterns:   []Pattern{PatternSquat},
				Equipment:  fullGym(),
				ExcludeIDs: []string{"back-squat"},
			},
			want: []string{"front-squat"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, m := range registry.Query(tt.filter) {
				got = append(got, m.ID)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Query mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestQueryOrderStableUnderWidening verifies that dropping the equipment
// constraint only appends candidates, never reorders the ones already
// visible. Seeded selection depends on this.
func TestQueryOrderStableUnderWidening(t *testing.T) {
	registry, err := NewRegistry(createMovementPool())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	narrow := Filter{Categories: []Category{CategoryGymnastics}, Equipment: []string{}}
	wide := Filter{Categories: []Category{CategoryGymnastics}, Equipment: nil}

	narrowIDs := map[string]bool{}
	var narrowOrder []string
	for _, m := range registry.Query(narrow) {
		narrowIDs[m.ID] = true
		narrowOrder = append(narrowOrder, m.ID)
	}

	var wideOrder []string
	for _, m := range registry.Query(wide) {
		if narrowIDs[m.ID] {
			wideOrder = append(wideOrder, m.ID)
		}
	}
	if diff := cmp.Diff(narrowOrder, wideOrder); diff != "" {
		t.Errorf("widening reordered shared candidates (-narrow +wide):\n%s", diff)
	}
	if len(registry.Query(wide)) <= len(narrowOrder) {
		t.Error("widening should surface additional movements")
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Back Squat", want: "back-squat"},
		{in: "Clean and Jerk", want: "clean-and-jerk"},
		{in: "World's Greatest Stretch", want: "worlds-greatest-stretch"},
		{in: "Child's Pose", want: "childs-pose"},
		{in: "Child’s Pose", want: "childs-pose"},
		{in: "  Toes-to-Bar  ", want: "toes-to-bar"},
		{in: "!!!", want: ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEquipmentTags(t *testing.T) {
	registry, err := NewRegistry(createMovementPool())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	tags := registry.EquipmentTags()
	if len(tags) == 0 {
		t.Fatal("expected some equipment tags")
	}
	seen := map[string]bool{}
	for _, tag := range tags {
		if seen[tag] {
			t.Errorf("duplicate tag %q", tag)
		}
		seen[tag] = true
	}
	if !seen["barbell"] || !seen[EquipmentBodyweight] {
		t.Errorf("tags missing expected entries: %v", tags)
	}
}
