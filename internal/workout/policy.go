package workout

// stylePolicies is the declarative per-style rule table. Policies are data,
// not control flow: the generator and the validator both consult the same
// record instead of branching per style.
var stylePolicies = map[Style]StylePolicy{
	StyleOlympic: {
		AllowedCategories: []Category{
			CategoryOlympic, CategoryPowerlifting, CategoryBodybuildingLower, CategoryBodybuildingFull,
		},
		RequiredPatternGroups: [][]Pattern{
			{PatternSnatch},
			{PatternCleanAndJerk},
		},
		BannedNamePatterns: []string{"burpee", "jumping jack"},
		MinLoadedRatio:     0.85,
		HardnessFloor:      5,
	},
	StylePowerlifting: {
		AllowedCategories: []Category{CategoryPowerlifting},
		RequiredPatternGroups: [][]Pattern{
			{PatternSquat},
			{PatternHinge},
			{PatternPress},
		},
		BannedNamePatterns: []string{"burpee", "double-under", "jumping jack"},
		MinLoadedRatio:     0.9,
		RequireBarbellOnly: true,
		HardnessFloor:      5,
	},
	StyleBodybuildingFull: {
		AllowedCategories: []Category{
			CategoryBodybuildingFull, CategoryBodybuildingUpper, CategoryBodybuildingLower, CategoryPowerlifting,
		},
		RequiredPatternGroups: [][]Pattern{
			{PatternPress, PatternPull},
			{PatternSquat, PatternHinge, PatternLunge},
		},
		MinLoadedRatio: 0.6,
		HardnessFloor:  3,
	},
	StyleBodybuildingUpper: {
		AllowedCategories: []Category{CategoryBodybuildingUpper, CategoryGymnastics, CategoryPowerlifting},
		RequiredPatternGroups: [][]Pattern{
			{PatternPress},
			{PatternPull},
		},
		MinLoadedRatio: 0.6,
		HardnessFloor:  3,
	},
	StyleBodybuildingLower: {
		AllowedCategories: []Category{CategoryBodybuildingLower, CategoryPowerlifting},
		RequiredPatternGroups: [][]Pattern{
			{PatternSquat, PatternLunge},
			{PatternHinge},
		},
		MinLoadedRatio: 0.6,
		HardnessFloor:  3,
	},
	StyleGymnastics: {
		AllowedCategories: []Category{CategoryGymnastics},
		RequiredPatternGroups: [][]Pattern{
			{PatternPull, PatternPress},
			{PatternCore},
		},
		BannedNamePatterns: []string{"barbell", "deadlift"},
		MinLoadedRatio:     0,
		HardnessFloor:      3,
	},
	StyleMixed: {
		AllowedCategories: []Category{
			CategoryMixed, CategoryGymnastics, CategoryAerobic, CategoryPowerlifting, CategoryBodybuildingFull,
		},
		RequiredPatternGroups: [][]Pattern{
			{PatternCardio},
		},
		MinLoadedRatio: 0,
		HardnessFloor:  4,
	},
	StyleAerobic: {
		AllowedCategories: []Category{CategoryAerobic},
		RequiredPatternGroups: [][]Pattern{
			{PatternCardio},
		},
		BannedNamePatterns: []string{"snatch", "clean", "deadlift"},
		MinLoadedRatio:     0,
		HardnessFloor:      1,
	},
	StyleMobility: {
		AllowedCategories:     []Category{CategoryMobility},
		RequiredPatternGroups: [][]Pattern{{PatternMobilityStatic, PatternMobilityDynamic}},
		MinLoadedRatio:        0,
		HardnessFloor:         1,
	},
}

// PolicyFor returns the policy record for a style. Every style the pack
// builder knows has a policy; anything else gets the mixed default so the
// lookup is total.
func PolicyFor(style Style) StylePolicy {
	if policy, ok := stylePolicies[style]; ok {
		return policy
	}
	return stylePolicies[StyleMixed]
}
