package workout

import (
	"math"
	"strings"
)

// Acceptance tolerances.
const (
	timeFitMinSlackMinutes = 2
	timeFitSlackFraction   = 0.05
)

// The acceptance validator re-checks an assembled workout against its
// style policy. All checks are pure functions over already-built data; none
// retry generation. They run at the end of every generation call and can
// also be run standalone against externally constructed workouts, which is
// how the smoketest binary uses them.

// Validate computes the full flag set for a workout.
func Validate(w GeneratedWorkout, policy StylePolicy, requestedMinutes int) AcceptanceFlags {
	return AcceptanceFlags{
		TimeFit:        CheckTimeFit(w, requestedMinutes),
		StyleOK:        CheckStyle(w, policy),
		PatternsLocked: CheckRequiredPatterns(w, policy),
		LoadedRatioOK:  CheckLoadedRatio(w, policy),
	}
}

// CheckTimeFit passes when the workout's total minutes are within
// max(2, 5%) of the requested duration.
func CheckTimeFit(w GeneratedWorkout, requestedMinutes int) bool {
	slack := math.Max(timeFitMinSlackMinutes, float64(requestedMinutes)*timeFitSlackFraction)
	return math.Abs(float64(w.totalMinutes()-requestedMinutes)) <= slack
}

// CheckStyle passes when no exercise name is banned, every main-block
// movement sits in an allowed category, and the estimated intensity clears
// the style's hardness floor.
func CheckStyle(w GeneratedWorkout, policy StylePolicy) bool {
	if !CheckBannedNames(w, policy) {
		return false
	}
	if len(policy.AllowedCategories) > 0 {
		for _, b := range w.MainBlocks() {
			for _, item := range b.Items {
				if !matchesAny(item.Movement.Category, policy.AllowedCategories) {
					return false
				}
			}
		}
	}
	return w.Meta.EstimatedIntensity >= policy.HardnessFloor
}

// CheckRequiredPatterns passes when every required pattern group is
// represented by at least one movement somewhere in the main blocks.
func CheckRequiredPatterns(w GeneratedWorkout, policy StylePolicy) bool {
	mains := w.MainBlocks()
	for _, group := range policy.RequiredPatternGroups {
		if !groupCovered(mains, group) {
			return false
		}
	}
	return true
}

func groupCovered(mains []Block, group []Pattern) bool {
	for _, b := range mains {
		for _, item := range b.Items {
			for _, p := range group {
				if item.Movement.HasPattern(p) {
					return true
				}
			}
		}
	}
	return false
}

// CheckBannedNames passes when no exercise name anywhere in the workout
// matches a banned-name rule. Matching is case-insensitive substring.
func CheckBannedNames(w GeneratedWorkout, policy StylePolicy) bool {
	if len(policy.BannedNamePatterns) == 0 {
		return true
	}
	for _, b := range w.Blocks {
		for _, item := range b.Items {
			name := strings.ToLower(item.Movement.Name)
			for _, banned := range policy.BannedNamePatterns {
				if strings.Contains(name, strings.ToLower(banned)) {
					return false
				}
			}
		}
	}
	return true
}

// CheckLoadedRatio passes when the fraction of main-block slots using
// non-bodyweight equipment reaches the policy's minimum. A zero minimum
// always passes.
func CheckLoadedRatio(w GeneratedWorkout, policy StylePolicy) bool {
	if policy.MinLoadedRatio <= 0 {
		return true
	}
	return MainLoadedRatio(w) >= policy.MinLoadedRatio
}

// MainLoadedRatio computes the fraction of main-block exercise slots whose
// movement requires equipment beyond bodyweight. A workout without main
// slots has ratio zero.
func MainLoadedRatio(w GeneratedWorkout) float64 {
	slots, loaded := 0, 0
	for _, b := range w.MainBlocks() {
		for _, item := range b.Items {
			slots++
			if item.Movement.Loaded() {
				loaded++
			}
		}
	}
	if slots == 0 {
		return 0
	}
	return float64(loaded) / float64(slots)
}
