// Package workout generates structured, reproducible training sessions.
package workout

import "strings"

// Style represents the training discipline of a generated session.
type Style string

// Style constants. Unknown requests resolve to StyleMixed.
const (
	StyleOlympic           Style = "olympic-lifting"
	StylePowerlifting      Style = "powerlifting"
	StyleBodybuildingFull  Style = "bodybuilding-full"
	StyleBodybuildingUpper Style = "bodybuilding-upper"
	StyleBodybuildingLower Style = "bodybuilding-lower"
	StyleGymnastics        Style = "gymnastics"
	StyleMixed             Style = "mixed-conditioning"
	StyleAerobic           Style = "aerobic"
	StyleMobility          Style = "mobility"
)

// Category classifies a movement by its home discipline. Categories share
// names with styles but are a property of the catalog, not of a request.
type Category string

// Category constants.
const (
	CategoryOlympic           Category = "olympic-lifting"
	CategoryPowerlifting      Category = "powerlifting"
	CategoryBodybuildingFull  Category = "bodybuilding-full"
	CategoryBodybuildingUpper Category = "bodybuilding-upper"
	CategoryBodybuildingLower Category = "bodybuilding-lower"
	CategoryGymnastics        Category = "gymnastics"
	CategoryMixed             Category = "mixed-conditioning"
	CategoryAerobic           Category = "aerobic"
	CategoryMobility          Category = "mobility"
)

// Pattern tags the movement shape trained by an exercise.
type Pattern string

// Pattern constants. PatternGeneral is the fallback for movements that fit
// no specific shape; every movement carries at least one pattern.
const (
	PatternSquat           Pattern = "squat"
	PatternHinge           Pattern = "hinge"
	PatternPress           Pattern = "press"
	PatternPull            Pattern = "pull"
	PatternLunge           Pattern = "lunge"
	PatternCarry           Pattern = "carry"
	PatternSnatch          Pattern = "olympic-snatch"
	PatternCleanAndJerk    Pattern = "olympic-clean-and-jerk"
	PatternCardio          Pattern = "cardio"
	PatternCore            Pattern = "core"
	PatternMobilityStatic  Pattern = "mobility-static"
	PatternMobilityDynamic Pattern = "mobility-dynamic"
	PatternGeneral         Pattern = "general"
)

// Modality describes the training stimulus of a movement or block.
type Modality string

// Modality constants.
const (
	ModalityStrength     Modality = "strength"
	ModalityConditioning Modality = "conditioning"
	ModalitySkill        Modality = "skill"
	ModalityAerobic      Modality = "aerobic"
	ModalityMobility     Modality = "mobility"
)

// Level grades the skill demanded by a movement.
type Level string

// Level constants.
const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// EquipmentBodyweight marks movements that need no implements. Movements
// with an empty equipment list are normalized to carry it explicitly.
const EquipmentBodyweight = "bodyweight"

// Movement is a single catalog entry. Movements are built once at startup
// and never mutated afterwards.
type Movement struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  Category  `json:"category"`
	Patterns  []Pattern `json:"patterns"`
	Equipment []string  `json:"equipment"`
	Modality  Modality  `json:"modality"`
	Level     Level     `json:"level"`
	// MainBannedWithEquipment marks filler movements (static holds and the
	// like) that must not fill main-block slots once real equipment is on
	// hand.
	MainBannedWithEquipment bool `json:"mainBannedWithEquipment,omitempty"`
}

// Loaded reports whether performing the movement requires anything beyond
// bodyweight.
func (m Movement) Loaded() bool {
	for _, e := range m.Equipment {
		if e != EquipmentBodyweight {
			return true
		}
	}
	return false
}

// HasPattern reports whether the movement carries the given pattern tag.
func (m Movement) HasPattern(p Pattern) bool {
	for _, mp := range m.Patterns {
		if mp == p {
			return true
		}
	}
	return false
}

// StylePolicy holds the declarative content rules for one style. Policies
// are consulted both while building packs and when validating the
// assembled workout.
type StylePolicy struct {
	AllowedCategories     []Category
	RequiredPatternGroups [][]Pattern
	// BannedNamePatterns are matched case-insensitively as substrings
	// against every exercise name in the workout.
	BannedNamePatterns []string
	// MinLoadedRatio is the minimum fraction of main-block slots that must
	// use non-bodyweight equipment. Zero means no requirement.
	MinLoadedRatio float64
	// RequireBarbellOnly restricts loaded main-block work to the barbell.
	RequireBarbellOnly bool
	// HardnessFloor is the minimum acceptable estimated intensity.
	HardnessFloor int
}

// Shape describes the timing semantics of a block.
type Shape string

// Shape constants.
const (
	// ShapeFixedInterval is lifting on a fixed clock, e.g. a set every 2:00.
	ShapeFixedInterval Shape = "fixed-interval-repeats"
	// ShapeEMOM is every-minute-on-the-minute rotating work.
	ShapeEMOM Shape = "every-minute-on-the-minute"
	// ShapeAMRAP is as-many-rounds-as-possible in the block's minutes.
	ShapeAMRAP Shape = "as-many-rounds-as-possible"
	// ShapeChipper is a descending-rep ladder done for time.
	ShapeChipper Shape = "ladder-chipper"
	// ShapeSteady is continuous single-effort aerobic work.
	ShapeSteady Shape = "steady-state"
	// ShapeIntervals is repeated work/rest aerobic efforts.
	ShapeIntervals Shape = "interval-repeats"
	// ShapeQuality is untimed quality practice or mobility work.
	ShapeQuality Shape = "quality"
)

// Selection is one constraint used to draw movements for a block. Within a
// dimension the values are OR'd; across dimensions they are AND'd.
type Selection struct {
	Categories []Category
	Patterns   []Pattern
	Modalities []Modality
	ItemCount  int
	// RequireLoaded forces the draw to prefer non-bodyweight movements,
	// widening the equipment filter if the caller's gear has none.
	RequireLoaded bool
}

// PatternBlock is one unit of the main workout in a pack. A block draws its
// movements from an ordered list of selections so that a single block can
// guarantee several distinct movement families.
type PatternBlock struct {
	Shape      Shape
	Minutes    int
	Kind       Modality
	Selections []Selection
	Title      string
}

// PatternPack is the concrete plan skeleton for a single generation call.
// Packs are built fresh per request and never shared.
type PatternPack struct {
	TemplateID      string
	WarmupMinutes   int
	CooldownMinutes int
	MainBlocks      []PatternBlock
	HardnessFloor   int
	// RequiredPatterns overrides the style policy's requirement when the
	// duration forces a different structure.
	RequiredPatterns [][]Pattern
}

// BlockRole distinguishes the three segments of a generated workout.
type BlockRole string

// Block role constants.
const (
	RoleWarmup   BlockRole = "warmup"
	RoleMain     BlockRole = "main"
	RoleCooldown BlockRole = "cooldown"
)

// ExerciseEntry is one resolved slot in a generated block.
type ExerciseEntry struct {
	Movement     Movement `json:"movement"`
	Prescription string   `json:"prescription"`
	Notes        string   `json:"notes,omitempty"`
}

// Block is one assembled segment of the output document.
type Block struct {
	Role    BlockRole       `json:"role"`
	Title   string          `json:"title"`
	Shape   Shape           `json:"shape"`
	Minutes int             `json:"minutes"`
	Scheme  string          `json:"scheme"`
	Items   []ExerciseEntry `json:"items"`
}

// AcceptanceFlags carries the machine-readable policy-compliance results
// attached to every generated workout.
type AcceptanceFlags struct {
	TimeFit        bool `json:"timeFit"`
	StyleOK        bool `json:"styleOk"`
	PatternsLocked bool `json:"patternsLocked"`
	LoadedRatioOK  bool `json:"loadedRatioOk"`
}

// Meta describes how and from what a workout was generated.
type Meta struct {
	Generator          string          `json:"generatorName"`
	Seed               string          `json:"seed"`
	Style              Style           `json:"style"`
	TotalMinutes       int             `json:"totalMinutes"`
	EstimatedIntensity int             `json:"estimatedIntensity"`
	MainLoadedRatio    float64         `json:"mainLoadedRatio"`
	AcceptanceFlags    AcceptanceFlags `json:"acceptanceFlags"`
	Notes              []string        `json:"notes,omitempty"`
}

// GeneratedWorkout is the output document: warmup, mains, cooldown.
type GeneratedWorkout struct {
	Blocks []Block `json:"blocks"`
	Meta   Meta    `json:"meta"`
}

// MainBlocks returns the main segments of the workout in order.
func (w GeneratedWorkout) MainBlocks() []Block {
	var mains []Block
	for _, b := range w.Blocks {
		if b.Role == RoleMain {
			mains = append(mains, b)
		}
	}
	return mains
}

// totalMinutes sums the minutes of every block.
func (w GeneratedWorkout) totalMinutes() int {
	total := 0
	for _, b := range w.Blocks {
		total += b.Minutes
	}
	return total
}

// Request describes one generation call. Style, Goal, and Focus are
// synonymous inputs; the first non-empty one wins.
type Request struct {
	Style       string
	Goal        string
	Focus       string
	Minutes     int
	Intensity   int
	Equipment   []string
	Seed        string
	Constraints []string
	// Readiness is an optional 1-10 recovery score. Low readiness caps the
	// achievable intensity and leaves a coaching note on the workout.
	Readiness *int
}

// styleInput returns the style field the caller actually filled in.
func (r Request) styleInput() string {
	for _, s := range []string{r.Style, r.Goal, r.Focus} {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// Choices records which template, candidate pool, and scheme a generation
// used so that callers can audit reproducibility.
type Choices struct {
	TemplateID      string   `json:"templateId"`
	MovementPoolIDs []string `json:"movementPoolIds"`
	SchemeID        string   `json:"schemeId"`
}

// Result pairs the generated workout with its audit trail.
type Result struct {
	Workout GeneratedWorkout `json:"workout"`
	Choices Choices          `json:"choices"`
}
