package workout

import "fmt"

// Rep scheme constants.
const (
	liftIntervalMinutes = 2
	minLiftSets         = 3

	heavySingleIntensity = 8
	heavyTripleIntensity = 6
	moderateIntensity    = 4

	hiitWorkSeconds  = 30
	hiitRestSeconds  = 90
	tempoRoundLength = 4
)

// scheme is the deterministic rep/time/load assignment for one block. It is
// a pure function of (shape, minutes, intensity): determinism here needs no
// seeding at all.
type scheme struct {
	id string
	// prescribe renders the prescription for one slot of the block.
	prescribe func(slot, itemCount int) string
}

// assignScheme picks the scheme for a block shape at the given minutes and
// intensity.
func assignScheme(shape Shape, minutes, intensity int) scheme {
	switch shape {
	case ShapeFixedInterval:
		return liftScheme(minutes, intensity)
	case ShapeEMOM:
		return emomScheme(minutes)
	case ShapeAMRAP:
		return amrapScheme(minutes, intensity)
	case ShapeChipper:
		return chipperScheme(intensity)
	case ShapeSteady:
		return steadyScheme(minutes, intensity)
	case ShapeIntervals:
		return intervalScheme(minutes, intensity)
	case ShapeQuality:
		return qualityScheme()
	default:
		return qualityScheme()
	}
}

// liftScheme is barbell work on a running clock: a set every two minutes,
// reps shrinking as intensity climbs.
func liftScheme(minutes, intensity int) scheme {
	reps := 8
	switch {
	case intensity >= heavySingleIntensity:
		reps = 2
	case intensity >= heavyTripleIntensity:
		reps = 3
	case intensity >= moderateIntensity:
		reps = 5
	}
	totalSets := max(minLiftSets, minutes/liftIntervalMinutes)
	return scheme{
		id: fmt.Sprintf("lift-%dx%d", totalSets, reps),
		prescribe: func(_, itemCount int) string {
			sets := max(minLiftSets, totalSets/max(itemCount, 1))
			return fmt.Sprintf("Every %d:00 for %d sets: %d reps, building load", liftIntervalMinutes, sets, reps)
		},
	}
}

// emomScheme rotates the block's movements minute by minute.
func emomScheme(minutes int) scheme {
	return scheme{
		id: fmt.Sprintf("emom-%d", minutes),
		prescribe: func(slot, itemCount int) string {
			cycle := max(itemCount, 1)
			return fmt.Sprintf("EMOM %d, minute %d of every %d: steady unbroken set", minutes, slot+1, cycle)
		},
	}
}

// amrapScheme is a fixed-time rep round; rep counts ascend through the
// slots and ease off as intensity climbs.
func amrapScheme(minutes, intensity int) scheme {
	base := clampInt(12-intensity, 4, 12)
	return scheme{
		id: fmt.Sprintf("amrap-%d", minutes),
		prescribe: func(slot, _ int) string {
			return fmt.Sprintf("AMRAP %d: %d reps per round", minutes, base+4*slot)
		},
	}
}

// chipperScheme is a descending ladder done for time.
func chipperScheme(intensity int) scheme {
	ladder := "15-12-9-6"
	if intensity >= heavyTripleIntensity+1 {
		ladder = "21-15-9"
	}
	return scheme{
		id: "chipper-" + ladder,
		prescribe: func(_, _ int) string {
			return fmt.Sprintf("%s reps of each, for time", ladder)
		},
	}
}

// steadyScheme is one continuous effort at conversational-to-strong pace.
func steadyScheme(minutes, intensity int) scheme {
	rpe := clampInt(3+intensity/2, 3, 6)
	return scheme{
		id: fmt.Sprintf("steady-%d", minutes),
		prescribe: func(_, _ int) string {
			return fmt.Sprintf("%d minutes continuous at RPE %d", minutes, rpe)
		},
	}
}

// intervalScheme is repeated work/rest efforts: short and hard at the top
// of the intensity scale, longer tempo pieces below it.
func intervalScheme(minutes, intensity int) scheme {
	if intensity >= heavySingleIntensity {
		rounds := max(4, minutes/2)
		return scheme{
			id: fmt.Sprintf("hiit-%d-%dx%d", hiitWorkSeconds, hiitRestSeconds, rounds),
			prescribe: func(_, _ int) string {
				return fmt.Sprintf("%d rounds: 0:%02d near-max / 1:%02d easy", rounds, hiitWorkSeconds, hiitRestSeconds-60)
			},
		}
	}
	rounds := max(2, minutes/tempoRoundLength)
	return scheme{
		id: fmt.Sprintf("tempo-3-1x%d", rounds),
		prescribe: func(_, _ int) string {
			return fmt.Sprintf("%d rounds: 3:00 strong / 1:00 easy", rounds)
		},
	}
}

// qualityScheme is unhurried practice, used for skill and mobility blocks.
func qualityScheme() scheme {
	return scheme{
		id: "quality-3",
		prescribe: func(_, _ int) string {
			return "3 quality rounds: 0:40 focused work, rest as needed"
		},
	}
}
