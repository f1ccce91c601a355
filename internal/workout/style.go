package workout

import "strings"

// styleAliases maps every recognized style/goal/focus spelling to its
// canonical style. Lookup keys are normalized to lowercase with separators
// stripped, so "Olympic Lifting", "olympic_lifting", and "oly" all land on
// StyleOlympic.
var styleAliases = map[string]Style{
	"olympiclifting":       StyleOlympic,
	"olympicweightlifting": StyleOlympic,
	"olympic":              StyleOlympic,
	"weightlifting":        StyleOlympic,
	"oly":                  StyleOlympic,
	"snatchandjerk":        StyleOlympic,

	"powerlifting": StylePowerlifting,
	"power":        StylePowerlifting,
	"powerlifts":   StylePowerlifting,
	"strength":     StylePowerlifting,
	"maxstrength":  StylePowerlifting,

	"bodybuilding":     StyleBodybuildingFull,
	"bodybuildingfull": StyleBodybuildingFull,
	"hypertrophy":      StyleBodybuildingFull,
	"fullbody":         StyleBodybuildingFull,

	"bodybuildingupper": StyleBodybuildingUpper,
	"upper":             StyleBodybuildingUpper,
	"upperbody":         StyleBodybuildingUpper,
	"pushpull":          StyleBodybuildingUpper,

	"bodybuildinglower": StyleBodybuildingLower,
	"lower":             StyleBodybuildingLower,
	"lowerbody":         StyleBodybuildingLower,
	"legs":              StyleBodybuildingLower,
	"legday":            StyleBodybuildingLower,

	"gymnastics":   StyleGymnastics,
	"calisthenics": StyleGymnastics,
	"bodyweight":   StyleGymnastics,
	"skill":        StyleGymnastics,

	"mixedconditioning": StyleMixed,
	"mixed":             StyleMixed,
	"metcon":            StyleMixed,
	"crossfit":          StyleMixed,
	"conditioning":      StyleMixed,
	"hiit":              StyleMixed,
	"wod":               StyleMixed,
	"functional":        StyleMixed,

	"aerobic":   StyleAerobic,
	"cardio":    StyleAerobic,
	"endurance": StyleAerobic,
	"run":       StyleAerobic,
	"running":   StyleAerobic,
	"engine":    StyleAerobic,
	"zone2":     StyleAerobic,

	"mobility":    StyleMobility,
	"yoga":        StyleMobility,
	"stretch":     StyleMobility,
	"stretching":  StyleMobility,
	"recovery":    StyleMobility,
	"flexibility": StyleMobility,
}

// NormalizeStyle resolves any style/goal/focus input to a canonical style.
// The mapping is total: inputs that match no alias resolve to StyleMixed.
func NormalizeStyle(input string) Style {
	if style, ok := styleAliases[foldStyleKey(input)]; ok {
		return style
	}
	return StyleMixed
}

// foldStyleKey lowercases the input and strips separators so that casing
// and word-joining variants share one alias entry.
func foldStyleKey(input string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(input)) {
		switch r {
		case ' ', '-', '_', '/':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
