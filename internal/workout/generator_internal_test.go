package workout

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/wodgen/internal/ptr"
)

// testMov builds a catalog entry for tests. The ID is derived from the name
// exactly as the registry does it.
func testMov(name string, cat Category, patterns []Pattern, equipment []string, modality Modality, level Level) Movement {
	return Movement{
		Name:      name,
		Category:  cat,
		Patterns:  patterns,
		Equipment: equipment,
		Modality:  modality,
		Level:     level,
	}
}

// createMovementPool returns a catalog slice covering every style the pack
// builder knows, small enough to reason about by hand.
func createMovementPool() []Movement {
	barbell := []string{"barbell"}
	dumbbell := []string{"dumbbell"}
	bodyweight := []string{EquipmentBodyweight}

	pool := []Movement{
		testMov("Snatch", CategoryOlympic, []Pattern{PatternSnatch, PatternHinge}, barbell, ModalityStrength, LevelAdvanced),
		testMov("Power Snatch", CategoryOlympic, []Pattern{PatternSnatch}, barbell, ModalityStrength, LevelIntermediate),
		testMov("Clean and Jerk", CategoryOlympic, []Pattern{PatternCleanAndJerk, PatternPress}, barbell, ModalityStrength, LevelAdvanced),
		testMov("Power Clean", CategoryOlympic, []Pattern{PatternCleanAndJerk, PatternHinge}, barbell, ModalityStrength, LevelIntermediate),

		testMov("Back Squat", CategoryPowerlifting, []Pattern{PatternSquat}, barbell, ModalityStrength, LevelIntermediate),
		testMov("Front Squat", CategoryPowerlifting, []Pattern{PatternSquat}, barbell, ModalityStrength, LevelIntermediate),
		testMov("Bench Press", CategoryPowerlifting, []Pattern{PatternPress}, []string{"barbell", "bench"}, ModalityStrength, LevelBeginner),
		testMov("Overhead Press", CategoryPowerlifting, []Pattern{PatternPress}, barbell, ModalityStrength, LevelBeginner),
		testMov("Deadlift", CategoryPowerlifting, []Pattern{PatternHinge}, barbell, ModalityStrength, LevelIntermediate),
		testMov("Romanian Deadlift", CategoryPowerlifting, []Pattern{PatternHinge}, barbell, ModalityStrength, LevelBeginner),

		testMov("Dumbbell Bench Press", CategoryBodybuildingUpper, []Pattern{PatternPress}, []string{"dumbbell", "bench"}, ModalityStrength, LevelBeginner),
		testMov("Dumbbell Row", CategoryBodybuildingUpper, []Pattern{PatternPull}, dumbbell, ModalityStrength, LevelBeginner),
		testMov("Biceps Curl", CategoryBodybuildingUpper, []Pattern{PatternPull}, dumbbell, ModalityStrength, LevelBeginner),
		testMov("Lateral Raise", CategoryBodybuildingUpper, []Pattern{PatternPress}, dumbbell, ModalityStrength, LevelBeginner),

		testMov("Goblet Squat", CategoryBodybuildingLower, []Pattern{PatternSquat}, dumbbell, ModalityStrength, LevelBeginner),
		testMov("Dumbbell Walking Lunge", CategoryBodybuildingLower, []Pattern{PatternLunge}, dumbbell, ModalityStrength, LevelBeginner),
		testMov("Hip Thrust", CategoryBodybuildingLower, []Pattern{PatternHinge}, []string{"barbell", "bench"}, ModalityStrength, LevelBeginner),

		testMov("Dumbbell Deadlift", CategoryBodybuildingFull, []Pattern{PatternHinge}, dumbbell, ModalityStrength, LevelBeginner),
		testMov("Farmer Carry", CategoryBodybuildingFull, []Pattern{PatternCarry}, dumbbell, ModalityStrength, LevelBeginner),

		testMov("Pull-Up", CategoryGymnastics, []Pattern{PatternPull}, []string{"pull-up-bar"}, ModalitySkill, LevelIntermediate),
		testMov("Handstand Hold", CategoryGymnastics, []Pattern{PatternPress, PatternCore}, bodyweight, ModalitySkill, LevelIntermediate),
		testMov("Ring Dip", CategoryGymnastics, []Pattern{PatternPress}, []string{"rings"}, ModalitySkill, LevelIntermediate),
		testMov("Push-Up", CategoryGymnastics, []Pattern{PatternPress}, bodyweight, ModalityConditioning, LevelBeginner),
		testMov("Air Squat", CategoryGymnastics, []Pattern{PatternSquat}, bodyweight, ModalityConditioning, LevelBeginner),
		testMov("Hollow Rock", CategoryGymnastics, []Pattern{PatternCore}, bodyweight, ModalityConditioning, LevelBeginner),
		testMov("Toes-to-Bar", CategoryGymnastics, []Pattern{PatternCore}, []string{"pull-up-bar"}, ModalityConditioning, LevelIntermediate),

		testMov("Burpee", CategoryMixed, []Pattern{PatternCardio}, bodyweight, ModalityConditioning, LevelBeginner),
		testMov("Kettlebell Swing", CategoryMixed, []Pattern{PatternHinge, PatternCardio}, []string{"kettlebell"}, ModalityConditioning, LevelBeginner),
		testMov("Box Jump", CategoryMixed, []Pattern{PatternCardio}, []string{"box"}, ModalityConditioning, LevelBeginner),
		testMov("Thruster", CategoryMixed, []Pattern{PatternSquat, PatternPress}, barbell, ModalityConditioning, LevelIntermediate),
		testMov("Double-Under", CategoryMixed, []Pattern{PatternCardio}, []string{"jump-rope"}, ModalityConditioning, LevelIntermediate),

		testMov("Run", CategoryAerobic, []Pattern{PatternCardio}, bodyweight, ModalityAerobic, LevelBeginner),
		testMov("Row Erg", CategoryAerobic, []Pattern{PatternCardio}, []string{"rower"}, ModalityAerobic, LevelBeginner),
		testMov("Bike Erg", CategoryAerobic, []Pattern{PatternCardio}, []string{"bike"}, ModalityAerobic, LevelBeginner),

		testMov("World's Greatest Stretch", CategoryMobility, []Pattern{PatternMobilityDynamic}, bodyweight, ModalityMobility, LevelBeginner),
		testMov("Leg Swing", CategoryMobility, []Pattern{PatternMobilityDynamic}, bodyweight, ModalityMobility, LevelBeginner),
		testMov("Inchworm", CategoryMobility, []Pattern{PatternMobilityDynamic}, bodyweight, ModalityMobility, LevelBeginner),
		testMov("Cat-Cow", CategoryMobility, []Pattern{PatternMobilityDynamic}, bodyweight, ModalityMobility, LevelBeginner),
		testMov("Couch Stretch", CategoryMobility, []Pattern{PatternMobilityStatic}, bodyweight, ModalityMobility, LevelBeginner),
		testMov("Pigeon Pose", CategoryMobility, []Pattern{PatternMobilityStatic}, bodyweight, ModalityMobility, LevelBeginner),
		testMov("Hamstring Stretch", CategoryMobility, []Pattern{PatternMobilityStatic}, bodyweight, ModalityMobility, LevelBeginner),
	}

	// Main-banned filler movements.
	plank := testMov("Plank", CategoryGymnastics, []Pattern{PatternCore}, bodyweight, ModalityConditioning, LevelBeginner)
	plank.MainBannedWithEquipment = true
	wallSit := testMov("Wall Sit", CategoryGymnastics, []Pattern{PatternSquat, PatternCore}, bodyweight, ModalityConditioning, LevelBeginner)
	wallSit.MainBannedWithEquipment = true
	jumpingJack := testMov("Jumping Jack", CategoryMixed, []Pattern{PatternCardio}, bodyweight, ModalityConditioning, LevelBeginner)
	jumpingJack.MainBannedWithEquipment = true

	return append(pool, plank, wallSit, jumpingJack)
}

func fullGym() []string {
	return []string{
		"barbell", "bench", "dumbbell", "kettlebell", "pull-up-bar",
		"rings", "box", "jump-rope", "rower", "bike",
	}
}

func newTestGenerator(t *testing.T, pool []Movement) *Generator {
	t.Helper()
	registry, err := NewRegistry(pool)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	gen, err := NewGenerator(registry)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	return gen
}

// TestGenerateDeterminism verifies that identical requests with identical
// seeds replay the same workout down to the last prescription.
func TestGenerateDeterminism(t *testing.T) {
	gen := newTestGenerator(t, createMovementPool())

	for _, style := range []string{"olympic", "powerlifting", "hypertrophy", "gymnastics", "metcon", "cardio", "mobility"} {
		t.Run(style, func(t *testing.T) {
			req := Request{
				Style:     style,
				Minutes:   45,
				Intensity: 6,
				Equipment: fullGym(),
				Seed:      "determinism-check",
			}
			first, err := gen.Generate(req)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			second, err := gen.Generate(req)
			if err != nil {
				t.Fatalf("Generate again: %v", err)
			}
			if diff := cmp.Diff(first, second); diff != "" {
				t.Errorf("repeated generation differs (-first +second):\n%s", diff)
			}
		})
	}
}

// TestGenerateSeedSensitivity verifies that the seed actually steers
// selection: at least one different seed must change the chosen movements.
func TestGenerateSeedSensitivity(t *testing.T) {
	gen := newTestGenerator(t, createMovementPool())

	base := Request{Style: "bodybuilding-full", Minutes: 45, Intensity: 6, Equipment: fullGym(), Seed: "alpha"}
	first, err := gen.Generate(base)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// A single pair can tie legitimately on a small pool, so require a
	// majority of a batch of seed pairs to differ.
	const pairs = 24
	differing := 0
	for i := range pairs {
		req := base
		req.Seed = fmt.Sprintf("seed-%02d", i)
		other, err := gen.Generate(req)
		if err != nil {
			t.Fatalf("Generate seed %q: %v", req.Seed, err)
		}
		if diff := cmp.Diff(mainMovementIDs(first.Workout), mainMovementIDs(other.Workout)); diff != "" {
			differing++
		}
	}
	if differing <= pairs/2 {
		t.Errorf("only %d of %d seed pairs changed the main-block selection", differing, pairs)
	}
}

// TestGenerateBlockMinutes pins the duration-aware structure of two-lift
// sessions: a 45-minute request splits the lifts, a 20-minute one merges
// them, and both land inside the time-fit tolerance.
func TestGenerateBlockMinutes(t *testing.T) {
	gen := newTestGenerator(t, createMovementPool())

	tests := []struct {
		name    string
		minutes int
		want    []int
		total   int
	}{
		{name: "45 minutes splits the lifts", minutes: 45, want: []int{8, 16, 16, 6}, total: 46},
		{name: "20 minutes merges the lifts", minutes: 20, want: []int{6, 10, 4}, total: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := gen.Generate(Request{
				Style: "olympic", Minutes: tt.minutes, Intensity: 7, Equipment: fullGym(), Seed: "blocks",
			})
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}

			var got []int
			for _, b := range result.Workout.Blocks {
				got = append(got, b.Minutes)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("block minutes mismatch (-want +got):\n%s", diff)
			}
			if result.Workout.Meta.TotalMinutes != tt.total {
				t.Errorf("TotalMinutes = %d, want %d", result.Workout.Meta.TotalMinutes, tt.total)
			}
			if !result.Workout.Meta.AcceptanceFlags.TimeFit {
				t.Error("expected timeFit to pass")
			}
		})
	}
}

// TestGenerateRequiredPatterns verifies required-group coverage for the
// styles with multi-group requirements.
func TestGenerateRequiredPatterns(t *testing.T) {
	gen := newTestGenerator(t, createMovementPool())

	tests := []struct {
		style  string
		groups [][]Pattern
	}{
		{style: "olympic", groups: [][]Pattern{{PatternSnatch}, {PatternCleanAndJerk}}},
		{style: "powerlifting", groups: [][]Pattern{{PatternSquat}, {PatternHinge}, {PatternPress}}},
		{style: "gymnastics", groups: [][]Pattern{{PatternPull, PatternPress}, {PatternCore}}},
	}

	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			result, err := gen.Generate(Request{
				Style: tt.style, Minutes: 45, Intensity: 6, Equipment: fullGym(), Seed: "patterns",
			})
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if !result.Workout.Meta.AcceptanceFlags.PatternsLocked {
				t.Error("expected patternsLocked to pass")
			}
			mains := result.Workout.MainBlocks()
			for _, group := range tt.groups {
				if !groupCovered(mains, group) {
					t.Errorf("required group %v not covered", group)
				}
			}
		})
	}
}

// TestGenerateBannedNames verifies banned movements stay out of the whole
// document, warmup and cooldown included.
func TestGenerateBannedNames(t *testing.T) {
	gen := newTestGenerator(t, createMovementPool())

	result, err := gen.Generate(Request{
		Style: "olympic", Minutes: 45, Intensity: 6, Equipment: fullGym(), Seed: "banned",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, b := range result.Workout.Blocks {
		for _, item := range b.Items {
			name := strings.ToLower(item.Movement.Name)
			if strings.Contains(name, "burpee") || strings.Contains(name, "jumping jack") {
				t.Errorf("banned movement %q appeared in block %q", item.Movement.Name, b.Title)
			}
		}
	}
	if !result.Workout.Meta.AcceptanceFlags.StyleOK {
		t.Error("expected styleOk to pass")
	}
}

// TestGenerateLoadedRatio verifies the loaded-ratio floor for a barbell
// style with a full gym.
func TestGenerateLoadedRatio(t *testing.T) {
	gen := newTestGenerator(t, createMovementPool())

	result, err := gen.Generate(Request{
		Style: "olympic", Minutes: 45, Intensity: 6, Equipment: fullGym(), Seed: "loaded",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if ratio := result.Workout.Meta.MainLoadedRatio; ratio < 0.85 {
		t.Errorf("MainLoadedRatio = %v, want >= 0.85", ratio)
	}
	if !result.Workout.Meta.AcceptanceFlags.LoadedRatioOK {
		t.Error("expected loadedRatioOk to pass")
	}
}

// TestGenerateEquipmentFiltering verifies that a bodyweight-only request
// never yields equipment movements, across every block.
func TestGenerateEquipmentFiltering(t *testing.T) {
	gen := newTestGenerator(t, createMovementPool())

	for _, style := range []string{"mixed", "gymnastics"} {
		t.Run(style, func(t *testing.T) {
			result, err := gen.Generate(Request{
				Style: style, Minutes: 30, Intensity: 6,
				Equipment: []string{EquipmentBodyweight}, Seed: "bw-only",
			})
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			for _, b := range result.Workout.Blocks {
				for _, item := range b.Items {
					for _, e := range item.Movement.Equipment {
						if e == "barbell" || e == "dumbbell" {
							t.Errorf("movement %q requires %s despite bodyweight-only request", item.Movement.Name, e)
						}
					}
				}
			}
		})
	}
}

// TestGenerateFallbackNonCrash verifies that a block with zero eligible
// movements short-fills with a note instead of failing, as long as the
// style finds anything at all.
func TestGenerateFallbackNonCrash(t *testing.T) {
	// A powerlifting catalog without any press movement: the press block
	// must come up empty while squat and hinge still fill.
	pool := []Movement{
		testMov("Back Squat", CategoryPowerlifting, []Pattern{PatternSquat}, []string{"barbell"}, ModalityStrength, LevelIntermediate),
		testMov("Deadlift", CategoryPowerlifting, []Pattern{PatternHinge}, []string{"barbell"}, ModalityStrength, LevelIntermediate),
	}
	gen := newTestGenerator(t, pool)

	result, err := gen.Generate(Request{
		Style: "powerlifting", Minutes: 45, Intensity: 6, Equipment: fullGym(), Seed: "fallback",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if result.Workout.Meta.AcceptanceFlags.PatternsLocked {
		t.Error("expected patternsLocked to fail with no press movements")
	}
	if len(result.Workout.Meta.Notes) == 0 {
		t.Error("expected a shortfall note")
	}
}

// TestGenerateBarbellOnlySurvivesWidening verifies that equipment widening
// for a barbell-only style never reaches for dumbbell variants, even when
// the caller's gym has no barbell.
func TestGenerateBarbellOnlySurvivesWidening(t *testing.T) {
	pool := []Movement{
		testMov("Back Squat", CategoryPowerlifting, []Pattern{PatternSquat}, []string{"barbell"}, ModalityStrength, LevelIntermediate),
		testMov("Goblet Squat", CategoryPowerlifting, []Pattern{PatternSquat}, []string{"dumbbell"}, ModalityStrength, LevelBeginner),
		testMov("Deadlift", CategoryPowerlifting, []Pattern{PatternHinge}, []string{"barbell"}, ModalityStrength, LevelIntermediate),
		testMov("Dumbbell Romanian Deadlift", CategoryPowerlifting, []Pattern{PatternHinge}, []string{"dumbbell"}, ModalityStrength, LevelBeginner),
		testMov("Bench Press", CategoryPowerlifting, []Pattern{PatternPress}, []string{"barbell", "bench"}, ModalityStrength, LevelIntermediate),
		testMov("Dumbbell Bench Press", CategoryPowerlifting, []Pattern{PatternPress}, []string{"dumbbell", "bench"}, ModalityStrength, LevelBeginner),
	}
	gen := newTestGenerator(t, pool)

	result, err := gen.Generate(Request{
		Style: "powerlifting", Minutes: 45, Intensity: 6,
		Equipment: []string{"dumbbell", "bench"}, Seed: "no-barbell",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	sawBarbell := false
	for _, b := range result.Workout.Blocks {
		for _, item := range b.Items {
			for _, e := range item.Movement.Equipment {
				if e == "dumbbell" {
					t.Errorf("dumbbell movement %q selected for a barbell-only style", item.Movement.Name)
				}
				if e == "barbell" {
					sawBarbell = true
				}
			}
		}
	}
	if !sawBarbell {
		t.Error("widening should have surfaced the barbell lifts")
	}
}

// TestGenerateEmptyCatalogFatal verifies the one fatal condition.
func TestGenerateEmptyCatalogFatal(t *testing.T) {
	if _, err := NewRegistry(nil); err == nil {
		t.Error("NewRegistry(nil) should fail")
	}
	if _, err := NewGenerator(nil); err == nil {
		t.Error("NewGenerator(nil) should fail")
	}
}

// TestGenerateReadinessCap verifies that low readiness caps the estimated
// intensity and leaves a coaching note.
func TestGenerateReadinessCap(t *testing.T) {
	gen := newTestGenerator(t, createMovementPool())

	result, err := gen.Generate(Request{
		Style: "powerlifting", Minutes: 45, Intensity: 8, Equipment: fullGym(),
		Seed: "readiness", Readiness: ptr.Ref(4),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got := result.Workout.Meta.EstimatedIntensity; got > 5 {
		t.Errorf("EstimatedIntensity = %d, want <= 5 with readiness 4", got)
	}

	found := false
	for _, note := range result.Workout.Meta.Notes {
		if strings.Contains(note, "capped") {
			found = true
		}
	}
	if !found {
		t.Error("expected an intensity cap note")
	}
}

// TestGenerateConstraints verifies that constrained movement names never
// appear anywhere in the workout.
func TestGenerateConstraints(t *testing.T) {
	gen := newTestGenerator(t, createMovementPool())

	result, err := gen.Generate(Request{
		Style: "powerlifting", Minutes: 45, Intensity: 6, Equipment: fullGym(),
		Seed: "constraints", Constraints: []string{"Back Squat"},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, b := range result.Workout.Blocks {
		for _, item := range b.Items {
			if item.Movement.ID == "back-squat" {
				t.Errorf("constrained movement appeared in block %q", b.Title)
			}
		}
	}
}

// TestGenerateConstraintsApostrophe verifies that a constrained name with
// an apostrophe resolves to the same ID the catalog derives, so the
// exclusion actually bites.
func TestGenerateConstraintsApostrophe(t *testing.T) {
	gen := newTestGenerator(t, createMovementPool())

	result, err := gen.Generate(Request{
		Style: "mobility", Minutes: 30, Intensity: 3, Equipment: fullGym(),
		Seed: "apostrophe", Constraints: []string{"World's Greatest Stretch"},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, b := range result.Workout.Blocks {
		for _, item := range b.Items {
			if item.Movement.ID == "worlds-greatest-stretch" {
				t.Errorf("constrained movement appeared in block %q", b.Title)
			}
		}
	}
}

// TestGenerateChoices verifies the reproducibility audit trail.
func TestGenerateChoices(t *testing.T) {
	gen := newTestGenerator(t, createMovementPool())

	result, err := gen.Generate(Request{
		Style: "olympic", Minutes: 45, Intensity: 7, Equipment: fullGym(), Seed: "choices",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if result.Choices.TemplateID != "oly-two-lift-split" {
		t.Errorf("TemplateID = %q, want oly-two-lift-split", result.Choices.TemplateID)
	}
	if len(result.Choices.MovementPoolIDs) == 0 {
		t.Error("expected a recorded movement pool")
	}
	if result.Choices.SchemeID == "" {
		t.Error("expected a recorded scheme ID")
	}
}

func mainMovementIDs(w GeneratedWorkout) []string {
	var ids []string
	for _, b := range w.MainBlocks() {
		for _, item := range b.Items {
			ids = append(ids, item.Movement.ID)
		}
	}
	return ids
}
