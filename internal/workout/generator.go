package workout

import (
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"

	"github.com/myrjola/wodgen/internal/errors"
)

// GeneratorName identifies this generator in workout metadata.
const GeneratorName = "wodgen-core/1"

// Request bounds and intensity model constants.
const (
	minRequestMinutes = 5
	maxRequestMinutes = 120
	minIntensity      = 1
	maxIntensity      = 10

	// Estimated intensity scales with the achieved loaded ratio: an
	// all-bodyweight session lands at 70% of the requested intensity, a
	// fully loaded one at 100%.
	loadedRatioBaseline = 0.7
	loadedRatioSpan     = 0.3

	// Readiness below neutral caps the achievable intensity one point per
	// missing readiness point.
	readinessNeutral = 7

	// Warmup and cooldown draw sizes.
	warmupItemCount   = 3
	cooldownItemCount = 2
)

// ErrNoEligibleMovements is returned when a style finds nothing at all to
// train with. This is the one fatal generation condition: it means the
// catalog is misconfigured, not that the request was unlucky.
var ErrNoEligibleMovements = errors.NewSentinel("no eligible movements for style")

// barbellOnlyEquipment is the gear kept visible to barbell-only styles.
var barbellOnlyEquipment = map[string]bool{
	"barbell":           true,
	"bench":             true,
	EquipmentBodyweight: true,
}

// Generator materializes workouts from the movement registry. It holds no
// mutable state: concurrent Generate calls need no coordination.
type Generator struct {
	registry *Registry
}

// NewGenerator constructs a generator over a populated registry.
func NewGenerator(registry *Registry) (*Generator, error) {
	if registry == nil || registry.Len() == 0 {
		return nil, ErrEmptyCatalog
	}
	return &Generator{registry: registry}, nil
}

// Generate assembles one workout. It is deterministic: identical requests
// with identical seeds produce byte-identical results. Selection shortfalls
// surface as notes and acceptance flags; the only error is a catalog that
// cannot serve the style at all.
func (g *Generator) Generate(req Request) (Result, error) {
	minutes := clampInt(req.Minutes, minRequestMinutes, maxRequestMinutes)
	intensity := clampInt(req.Intensity, minIntensity, maxIntensity)
	style := NormalizeStyle(req.styleInput())
	policy := PolicyFor(style)
	pack := BuildPack(style, minutes, intensity)

	equipment := normalizeEquipment(req.Equipment)
	hasLoaded := hasLoadedEquipment(equipment)
	avoidIDs := slugifyAll(req.Constraints)

	var (
		blocks     []Block
		notes      []string
		poolIDs    []string
		schemeIDs  []string
		poolSeen   = make(map[string]bool)
		mainPicked int
	)

	// Block ordinals are part of the seeding key: warmup is 0, mains count
	// up from 1, cooldown follows the last main.
	blockIdx := 0
	blocks = append(blocks, g.supportBlock(req.Seed, blockIdx, RoleWarmup, pack.WarmupMinutes, policy, equipment, avoidIDs))

	for _, pb := range pack.MainBlocks {
		blockIdx++
		sch := assignScheme(pb.Shape, pb.Minutes, intensity)
		schemeIDs = append(schemeIDs, sch.id)

		var picked []Movement
		wanted := 0
		for selIdx, sel := range pb.Selections {
			wanted += sel.ItemCount
			exclude := append(movementIDs(picked), avoidIDs...)
			candidates := g.candidates(sel, policy, equipment, hasLoaded, exclude)
			for _, c := range candidates {
				if !poolSeen[c.ID] {
					poolSeen[c.ID] = true
					poolIDs = append(poolIDs, c.ID)
				}
			}
			rng := newChoiceRand(req.Seed, blockIdx, selIdx)
			picked = append(picked, pickDistinct(rng, candidates, sel.ItemCount)...)
		}
		if len(picked) < wanted {
			notes = append(notes, fmt.Sprintf("%s: only %d of %d movements available with current equipment",
				pb.Title, len(picked), wanted))
		}
		mainPicked += len(picked)

		items := make([]ExerciseEntry, 0, len(picked))
		for slot, m := range picked {
			items = append(items, ExerciseEntry{
				Movement:     m,
				Prescription: sch.prescribe(slot, len(picked)),
			})
		}
		blocks = append(blocks, Block{
			Role:    RoleMain,
			Title:   pb.Title,
			Shape:   pb.Shape,
			Minutes: pb.Minutes,
			Scheme:  sch.id,
			Items:   items,
		})
	}

	if mainPicked == 0 {
		return Result{}, errors.Wrap(ErrNoEligibleMovements, "generate workout",
			slog.String("style", string(style)))
	}

	blockIdx++
	blocks = append(blocks, g.supportBlock(req.Seed, blockIdx, RoleCooldown, pack.CooldownMinutes, policy, equipment, avoidIDs))

	workout := GeneratedWorkout{Blocks: blocks}
	ratio := MainLoadedRatio(workout)
	estimated, capNote := estimateIntensity(intensity, ratio, req.Readiness)
	if capNote != "" {
		notes = append(notes, capNote)
	}

	workout.Meta = Meta{
		Generator:          GeneratorName,
		Seed:               req.Seed,
		Style:              style,
		TotalMinutes:       workout.totalMinutes(),
		EstimatedIntensity: estimated,
		MainLoadedRatio:    ratio,
		Notes:              notes,
	}
	workout.Meta.AcceptanceFlags = Validate(workout, policy, minutes)

	return Result{
		Workout: workout,
		Choices: Choices{
			TemplateID:      pack.TemplateID,
			MovementPoolIDs: poolIDs,
			SchemeID:        strings.Join(schemeIDs, "+"),
		},
	}, nil
}

// candidates resolves one selection against the registry and the caller's
// equipment. When the selection requires loaded work and the available
// equipment yields none, the query widens on the equipment dimension only;
// category, pattern, and modality constraints are never relaxed. Widening
// preserves registry order, so candidates already visible keep their
// relative positions.
func (g *Generator) candidates(sel Selection, policy StylePolicy, equipment []string, hasLoaded bool, exclude []string) []Movement {
	equipmentFilter := equipment
	if policy.RequireBarbellOnly {
		equipmentFilter = intersectEquipment(equipment, barbellOnlyEquipment)
	}
	filter := Filter{
		Categories: sel.Categories,
		Patterns:   sel.Patterns,
		Modalities: sel.Modalities,
		Equipment:  equipmentFilter,
		ExcludeIDs: exclude,
	}
	candidates := dropBannedNames(g.registry.Query(filter), policy.BannedNamePatterns)
	if hasLoaded {
		candidates = dropMainBanned(candidates)
	}

	if sel.RequireLoaded && !anyLoaded(candidates) {
		widened := filter
		widened.Equipment = nil
		if policy.RequireBarbellOnly {
			// Widening relaxes the caller's equipment, never the
			// barbell-only policy.
			widened.Equipment = equipmentList(barbellOnlyEquipment)
		}
		loaded := filterLoaded(dropBannedNames(g.registry.Query(widened), policy.BannedNamePatterns))
		if len(loaded) > 0 {
			return loaded
		}
	}
	return candidates
}

// supportBlock assembles the warmup or cooldown segment: dynamic movement
// and easy cardio on the way in, static holds on the way out. It uses the
// same seeded machinery as the mains so the whole document replays from
// one seed.
func (g *Generator) supportBlock(seed string, blockIdx int, role BlockRole, minutes int, policy StylePolicy, equipment, avoidIDs []string) Block {
	title, prescription := "Warm-up", "0:45 easy effort, smooth transitions"
	patterns := []Pattern{PatternMobilityDynamic, PatternCardio}
	count := warmupItemCount
	if role == RoleCooldown {
		title, prescription = "Cool-down", "1:00 per side, easy breathing"
		patterns = []Pattern{PatternMobilityStatic}
		count = cooldownItemCount
	}

	candidates := dropBannedNames(g.registry.Query(Filter{
		Patterns:   patterns,
		Equipment:  equipment,
		ExcludeIDs: avoidIDs,
	}), policy.BannedNamePatterns)
	picked := pickDistinct(newChoiceRand(seed, blockIdx, 0), candidates, count)

	items := make([]ExerciseEntry, 0, len(picked))
	for _, m := range picked {
		items = append(items, ExerciseEntry{Movement: m, Prescription: prescription})
	}
	return Block{
		Role:    role,
		Title:   title,
		Shape:   ShapeQuality,
		Minutes: minutes,
		Scheme:  "quality-3",
		Items:   items,
	}
}

// estimateIntensity derives the achievable intensity from the requested
// one and the achieved loaded ratio, then applies the readiness cap. A cap
// never bites silently: it always returns a coaching note.
func estimateIntensity(requested int, loadedRatio float64, readiness *int) (int, string) {
	estimated := int(math.Round(float64(requested) * (loadedRatioBaseline + loadedRatioSpan*loadedRatio)))
	if estimated < minIntensity {
		estimated = minIntensity
	}

	if readiness == nil || *readiness >= readinessNeutral {
		return estimated, ""
	}
	ceiling := clampInt(requested-(readinessNeutral-*readiness), minIntensity, maxIntensity)
	if estimated <= ceiling {
		return estimated, ""
	}
	note := fmt.Sprintf("intensity capped at %d: readiness %d/10 is below target for the requested %d",
		ceiling, *readiness, requested)
	return ceiling, note
}

func normalizeEquipment(equipment []string) []string {
	seen := make(map[string]bool, len(equipment))
	normalized := make([]string, 0, len(equipment))
	for _, e := range equipment {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		normalized = append(normalized, e)
	}
	return normalized
}

func hasLoadedEquipment(equipment []string) bool {
	for _, e := range equipment {
		if e != EquipmentBodyweight {
			return true
		}
	}
	return false
}

func equipmentList(allowed map[string]bool) []string {
	tags := make([]string, 0, len(allowed))
	for e := range allowed {
		tags = append(tags, e)
	}
	slices.Sort(tags)
	return tags
}

func intersectEquipment(equipment []string, allowed map[string]bool) []string {
	kept := make([]string, 0, len(equipment))
	for _, e := range equipment {
		if allowed[e] {
			kept = append(kept, e)
		}
	}
	return kept
}

func movementIDs(movements []Movement) []string {
	ids := make([]string, 0, len(movements))
	for _, m := range movements {
		ids = append(ids, m.ID)
	}
	return ids
}

func slugifyAll(names []string) []string {
	slugs := make([]string, 0, len(names))
	for _, n := range names {
		if s := Slugify(n); s != "" {
			slugs = append(slugs, s)
		}
	}
	return slugs
}

// dropBannedNames removes movements whose name matches a banned-name rule.
// Filtering preserves order so seeded selection stays stable.
func dropBannedNames(movements []Movement, banned []string) []Movement {
	if len(banned) == 0 {
		return movements
	}
	kept := make([]Movement, 0, len(movements))
	for _, m := range movements {
		name := strings.ToLower(m.Name)
		ok := true
		for _, b := range banned {
			if strings.Contains(name, strings.ToLower(b)) {
				ok = false
				break
			}
		}
		if ok {
			kept = append(kept, m)
		}
	}
	return kept
}

func dropMainBanned(movements []Movement) []Movement {
	kept := make([]Movement, 0, len(movements))
	for _, m := range movements {
		if !m.MainBannedWithEquipment {
			kept = append(kept, m)
		}
	}
	return kept
}

func anyLoaded(movements []Movement) bool {
	for _, m := range movements {
		if m.Loaded() {
			return true
		}
	}
	return false
}

func filterLoaded(movements []Movement) []Movement {
	kept := make([]Movement, 0, len(movements))
	for _, m := range movements {
		if m.Loaded() {
			kept = append(kept, m)
		}
	}
	return kept
}
