package workout

// Pack construction constants.
const (
	// Warmup/cooldown tiers. Long sessions (>= longSessionMinutes) get the
	// full ramp, short ones the compact ramp.
	longSessionMinutes   = 35
	longWarmupMinutes    = 8
	longCooldownMinutes  = 6
	shortWarmupMinutes   = 6
	shortCooldownMinutes = 4

	// Absolute floors when a tight budget forces further shrinking.
	minWarmupMinutes   = 3
	minCooldownMinutes = 2

	// Main-block sizing.
	minMainMinutes      = 10
	twoLiftSplitBudget  = 24
	liftBlockMinMinutes = 10
	liftBlockMaxMinutes = 16
	accessoryMinMinutes = 3

	// Tight-duration compression of static packs.
	tightSlackMinutes     = 10
	compressedWarmupMin   = 6
	compressedCooldownMin = 4

	// Aerobic intensity routing.
	steadyMaxIntensity = 5
	tempoMaxIntensity  = 7
)

// blockDef is one main-block template inside a static pack definition. The
// weight decides the block's share of the main-minute budget.
type blockDef struct {
	title      string
	shape      Shape
	kind       Modality
	weight     int
	selections []Selection
}

// packDef is a duration-insensitive pack template.
type packDef struct {
	templateID string
	blocks     []blockDef
}

// staticPacks are the templates for styles whose structure does not change
// with available time. Each required pattern group of the style's policy
// has a dedicated selection somewhere in the pack so that coverage never
// depends on luck of the draw.
var staticPacks = map[Style]packDef{
	StylePowerlifting: {
		templateID: "power-three-lift",
		blocks: []blockDef{
			{
				title: "Squat", shape: ShapeFixedInterval, kind: ModalityStrength, weight: 1,
				selections: []Selection{{
					Categories: []Category{CategoryPowerlifting},
					Patterns:   []Pattern{PatternSquat},
					Modalities: []Modality{ModalityStrength},
					ItemCount:  1, RequireLoaded: true,
				}},
			},
			{
				title: "Press", shape: ShapeFixedInterval, kind: ModalityStrength, weight: 1,
				selections: []Selection{{
					Categories: []Category{CategoryPowerlifting},
					Patterns:   []Pattern{PatternPress},
					Modalities: []Modality{ModalityStrength},
					ItemCount:  1, RequireLoaded: true,
				}},
			},
			{
				title: "Hinge", shape: ShapeFixedInterval, kind: ModalityStrength, weight: 1,
				selections: []Selection{{
					Categories: []Category{CategoryPowerlifting},
					Patterns:   []Pattern{PatternHinge},
					Modalities: []Modality{ModalityStrength},
					ItemCount:  1, RequireLoaded: true,
				}},
			},
		},
	},
	StyleBodybuildingFull: {
		templateID: "bb-full-split",
		blocks: []blockDef{
			{
				title: "Upper body", shape: ShapeFixedInterval, kind: ModalityStrength, weight: 2,
				selections: []Selection{{
					Categories: []Category{CategoryBodybuildingUpper, CategoryBodybuildingFull},
					Patterns:   []Pattern{PatternPress, PatternPull},
					ItemCount:  2, RequireLoaded: true,
				}},
			},
			{
				title: "Lower body", shape: ShapeFixedInterval, kind: ModalityStrength, weight: 2,
				selections: []Selection{{
					Categories: []Category{CategoryBodybuildingLower, CategoryBodybuildingFull},
					Patterns:   []Pattern{PatternSquat, PatternHinge, PatternLunge},
					ItemCount:  2, RequireLoaded: true,
				}},
			},
			{
				title: "Finisher", shape: ShapeAMRAP, kind: ModalityConditioning, weight: 1,
				selections: []Selection{{
					Categories: []Category{CategoryBodybuildingFull, CategoryBodybuildingUpper, CategoryBodybuildingLower},
					ItemCount:  2,
				}},
			},
		},
	},
	StyleBodybuildingUpper: {
		templateID: "bb-upper-split",
		blocks: []blockDef{
			{
				title: "Push", shape: ShapeFixedInterval, kind: ModalityStrength, weight: 2,
				selections: []Selection{
					{
						Categories: []Category{CategoryBodybuildingUpper},
						Patterns:   []Pattern{PatternPress},
						ItemCount:  2, RequireLoaded: true,
					},
				},
			},
			{
				title: "Pull", shape: ShapeFixedInterval, kind: ModalityStrength, weight: 2,
				selections: []Selection{
					{
						Categories: []Category{CategoryBodybuildingUpper, CategoryGymnastics},
						Patterns:   []Pattern{PatternPull},
						ItemCount:  2,
					},
				},
			},
		},
	},
	StyleBodybuildingLower: {
		templateID: "bb-lower-split",
		blocks: []blockDef{
			{
				title: "Squat and lunge", shape: ShapeFixedInterval, kind: ModalityStrength, weight: 2,
				selections: []Selection{{
					Categories: []Category{CategoryBodybuildingLower, CategoryPowerlifting},
					Patterns:   []Pattern{PatternSquat, PatternLunge},
					ItemCount:  2, RequireLoaded: true,
				}},
			},
			{
				title: "Hinge", shape: ShapeFixedInterval, kind: ModalityStrength, weight: 2,
				selections: []Selection{{
					Categories: []Category{CategoryBodybuildingLower, CategoryPowerlifting},
					Patterns:   []Pattern{PatternHinge},
					ItemCount:  2, RequireLoaded: true,
				}},
			},
		},
	},
	StyleGymnastics: {
		templateID: "gymnastics-skill-metcon",
		blocks: []blockDef{
			{
				title: "Skill practice", shape: ShapeQuality, kind: ModalitySkill, weight: 2,
				selections: []Selection{
					{
						Categories: []Category{CategoryGymnastics},
						Patterns:   []Pattern{PatternPull, PatternPress},
						Modalities: []Modality{ModalitySkill},
						ItemCount:  1,
					},
					{
						Categories: []Category{CategoryGymnastics},
						Modalities: []Modality{ModalitySkill},
						ItemCount:  1,
					},
				},
			},
			{
				title: "Bodyweight conditioning", shape: ShapeAMRAP, kind: ModalityConditioning, weight: 2,
				selections: []Selection{
					{
						Categories: []Category{CategoryGymnastics},
						Patterns:   []Pattern{PatternCore},
						ItemCount:  1,
					},
					{
						Categories: []Category{CategoryGymnastics},
						Modalities: []Modality{ModalityConditioning},
						ItemCount:  2,
					},
				},
			},
		},
	},
	StyleMixed: {
		templateID: "mixed-emom-metcon",
		blocks: []blockDef{
			{
				title: "Strength piece", shape: ShapeEMOM, kind: ModalityStrength, weight: 1,
				selections: []Selection{{
					Categories: []Category{CategoryMixed, CategoryPowerlifting, CategoryBodybuildingFull},
					Modalities: []Modality{ModalityStrength, ModalityConditioning},
					ItemCount:  2,
				}},
			},
			{
				title: "Metcon", shape: ShapeAMRAP, kind: ModalityConditioning, weight: 2,
				selections: []Selection{
					{
						Categories: []Category{CategoryMixed, CategoryGymnastics, CategoryAerobic},
						Patterns:   []Pattern{PatternCardio},
						ItemCount:  1,
					},
					{
						Categories: []Category{CategoryMixed, CategoryGymnastics},
						Modalities: []Modality{ModalityConditioning},
						ItemCount:  2,
					},
				},
			},
		},
	},
	StyleMobility: {
		templateID: "mobility-flow",
		blocks: []blockDef{
			{
				title: "Flow", shape: ShapeQuality, kind: ModalityMobility, weight: 1,
				selections: []Selection{{
					Categories: []Category{CategoryMobility},
					Patterns:   []Pattern{PatternMobilityDynamic},
					ItemCount:  3,
				}},
			},
			{
				title: "Long holds", shape: ShapeQuality, kind: ModalityMobility, weight: 1,
				selections: []Selection{{
					Categories: []Category{CategoryMobility},
					Patterns:   []Pattern{PatternMobilityStatic},
					ItemCount:  3,
				}},
			},
		},
	},
}

// BuildPack translates (style, minutes, intensity) into the concrete plan
// skeleton for one generation call. The result always carries at least one
// main block with at least minMainMinutes of work.
func BuildPack(style Style, minutes, intensity int) PatternPack {
	policy := PolicyFor(style)
	switch style {
	case StyleOlympic:
		return buildTwoLiftPack(style, policy, minutes)
	case StyleAerobic:
		return buildAerobicPack(policy, minutes, intensity)
	default:
		def, ok := staticPacks[style]
		if !ok {
			def = staticPacks[StyleMixed]
		}
		return buildStaticPack(def, policy, minutes)
	}
}

// rampMinutes picks the warmup/cooldown tier for duration-aware packs.
func rampMinutes(minutes int) (warmup, cooldown int) {
	if minutes >= longSessionMinutes {
		return longWarmupMinutes, longCooldownMinutes
	}
	return shortWarmupMinutes, shortCooldownMinutes
}

// fitMainBudget computes the main-minute budget, shrinking warmup and
// cooldown towards their absolute floors when the requested duration is too
// tight. The returned budget is never below minMainMinutes: a pack with no
// main work is not a workout.
func fitMainBudget(minutes, warmup, cooldown int) (int, int, int) {
	budget := minutes - warmup - cooldown
	for budget < minMainMinutes && (warmup > minWarmupMinutes || cooldown > minCooldownMinutes) {
		if warmup > minWarmupMinutes {
			warmup--
			budget++
		}
		if budget < minMainMinutes && cooldown > minCooldownMinutes {
			cooldown--
			budget++
		}
	}
	if budget < minMainMinutes {
		budget = minMainMinutes
	}
	return warmup, cooldown, budget
}

// buildTwoLiftPack handles styles whose structure is coupled to the time
// budget through two required lift families. Enough budget splits the
// session into one dedicated block per family; a tight budget combines both
// families into a single block whose paired selections still guarantee each
// family one slot. Budget beyond the two clamped lift blocks becomes an
// accessory block so long sessions stay filled.
func buildTwoLiftPack(style Style, policy StylePolicy, minutes int) PatternPack {
	warmup, cooldown := rampMinutes(minutes)
	warmup, cooldown, budget := fitMainBudget(minutes, warmup, cooldown)

	first := policy.RequiredPatternGroups[0]
	second := policy.RequiredPatternGroups[1]

	pack := PatternPack{
		WarmupMinutes:    warmup,
		CooldownMinutes:  cooldown,
		HardnessFloor:    policy.HardnessFloor,
		RequiredPatterns: policy.RequiredPatternGroups,
	}

	if budget < twoLiftSplitBudget {
		pack.TemplateID = "oly-combined"
		pack.MainBlocks = []PatternBlock{{
			Title:   "Snatch and clean complex",
			Shape:   ShapeFixedInterval,
			Kind:    ModalityStrength,
			Minutes: budget,
			Selections: []Selection{
				liftSelection(first, 1),
				liftSelection(second, 1),
			},
		}}
		return pack
	}

	per := clampInt((budget+1)/2, liftBlockMinMinutes, liftBlockMaxMinutes)
	pack.TemplateID = "oly-two-lift-split"
	pack.MainBlocks = []PatternBlock{
		{
			Title:      "Snatch work",
			Shape:      ShapeFixedInterval,
			Kind:       ModalityStrength,
			Minutes:    per,
			Selections: []Selection{liftSelection(first, 1)},
		},
		{
			Title:      "Clean and jerk work",
			Shape:      ShapeFixedInterval,
			Kind:       ModalityStrength,
			Minutes:    per,
			Selections: []Selection{liftSelection(second, 1)},
		},
	}

	if leftover := budget - 2*per; leftover >= accessoryMinMinutes {
		pack.MainBlocks = append(pack.MainBlocks, PatternBlock{
			Title:   "Accessory strength",
			Shape:   ShapeEMOM,
			Kind:    ModalityStrength,
			Minutes: leftover,
			Selections: []Selection{{
				Categories: []Category{CategoryBodybuildingLower, CategoryBodybuildingFull, CategoryPowerlifting},
				Patterns:   []Pattern{PatternSquat, PatternPull, PatternHinge},
				ItemCount:  2, RequireLoaded: true,
			}},
		})
	}
	return pack
}

// liftSelection is the single-movement draw dedicated to one required lift
// family.
func liftSelection(family []Pattern, count int) Selection {
	return Selection{
		Categories:    []Category{CategoryOlympic},
		Patterns:      family,
		Modalities:    []Modality{ModalityStrength},
		ItemCount:     count,
		RequireLoaded: true,
	}
}

// buildAerobicPack routes the single main block by intensity: long steady
// work at low intensity, tempo intervals in the middle band, short hard
// repeats at the top.
func buildAerobicPack(policy StylePolicy, minutes, intensity int) PatternPack {
	warmup, cooldown := rampMinutes(minutes)
	warmup, cooldown, budget := fitMainBudget(minutes, warmup, cooldown)

	selection := Selection{
		Categories: []Category{CategoryAerobic},
		Patterns:   []Pattern{PatternCardio},
		Modalities: []Modality{ModalityAerobic},
		ItemCount:  1,
	}

	var block PatternBlock
	var templateID string
	switch {
	case intensity <= steadyMaxIntensity:
		templateID = "aerobic-steady"
		block = PatternBlock{
			Title: "Steady state", Shape: ShapeSteady, Kind: ModalityAerobic,
			Minutes: budget, Selections: []Selection{selection},
		}
	case intensity <= tempoMaxIntensity:
		templateID = "aerobic-tempo"
		block = PatternBlock{
			Title: "Tempo intervals", Shape: ShapeIntervals, Kind: ModalityAerobic,
			Minutes: budget, Selections: []Selection{selection},
		}
	default:
		templateID = "aerobic-hiit"
		block = PatternBlock{
			Title: "Hard intervals", Shape: ShapeIntervals, Kind: ModalityAerobic,
			Minutes: budget, Selections: []Selection{selection},
		}
	}

	return PatternPack{
		TemplateID:       templateID,
		WarmupMinutes:    warmup,
		CooldownMinutes:  cooldown,
		MainBlocks:       []PatternBlock{block},
		HardnessFloor:    policy.HardnessFloor,
		RequiredPatterns: policy.RequiredPatternGroups,
	}
}

// buildStaticPack sizes a duration-insensitive template. Tight sessions
// compress warmup and cooldown symmetrically without handing the savings
// back to the mains beyond what the budget arithmetic implies.
func buildStaticPack(def packDef, policy StylePolicy, minutes int) PatternPack {
	warmup, cooldown := longWarmupMinutes, longCooldownMinutes
	if minutes <= warmup+cooldown+tightSlackMinutes {
		warmup = max(compressedWarmupMin, warmup-2)
		cooldown = max(compressedCooldownMin, cooldown-2)
	}
	warmup, cooldown, budget := fitMainBudget(minutes, warmup, cooldown)

	totalWeight := 0
	for _, b := range def.blocks {
		totalWeight += b.weight
	}

	blocks := make([]PatternBlock, 0, len(def.blocks))
	allocated, cumWeight := 0, 0
	for _, b := range def.blocks {
		cumWeight += b.weight
		share := budget*cumWeight/totalWeight - allocated
		allocated += share
		blocks = append(blocks, PatternBlock{
			Title:      b.title,
			Shape:      b.shape,
			Kind:       b.kind,
			Minutes:    share,
			Selections: b.selections,
		})
	}

	return PatternPack{
		TemplateID:       def.templateID,
		WarmupMinutes:    warmup,
		CooldownMinutes:  cooldown,
		MainBlocks:       blocks,
		HardnessFloor:    policy.HardnessFloor,
		RequiredPatterns: policy.RequiredPatternGroups,
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
