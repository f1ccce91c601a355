// Command smoketest sweeps the generator across a matrix of styles,
// durations, intensities, and seeds, and fails when determinism or the
// acceptance flags regress. It is meant to run in CI against the embedded
// catalog.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/myrjola/wodgen/internal/envstruct"
	"github.com/myrjola/wodgen/internal/errors"
	"github.com/myrjola/wodgen/internal/sqlite"
	"github.com/myrjola/wodgen/internal/testhelpers"
	"github.com/myrjola/wodgen/internal/workout"
	"golang.org/x/sync/errgroup"
)

type config struct {
	// SqliteURL points at the movement catalog. The default exercises the
	// embedded seed data, which is what production ships.
	SqliteURL string `env:"WODGEN_SQLITE_URL" envDefault:":memory:"`
}

var styles = []string{
	"olympic-lifting",
	"powerlifting",
	"bodybuilding-full",
	"bodybuilding-upper",
	"bodybuilding-lower",
	"gymnastics",
	"mixed-conditioning",
	"aerobic",
	"mobility",
}

var durations = []int{20, 30, 45, 60}

var intensities = []int{3, 6, 9}

type tally struct {
	generations    atomic.Int64
	failures       atomic.Int64
	timeFitMisses  atomic.Int64
	styleMisses    atomic.Int64
	patternMisses  atomic.Int64
	loadedMisses   atomic.Int64
	seedPairs      atomic.Int64
	seedPairsAlike atomic.Int64
}

// checkCase generates the same request twice and verifies byte-identical
// output, then records which acceptance flags the workout missed.
func checkCase(service *workout.Service, counts *tally, style string, minutes, intensity int, seed string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()

	req := workout.Request{
		Style:     style,
		Minutes:   minutes,
		Intensity: intensity,
		Equipment: service.Registry().EquipmentTags(),
		Seed:      seed,
	}

	first, err := service.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("generate %s/%dmin/%d: %w", style, minutes, intensity, err)
	}
	second, err := service.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("regenerate %s/%dmin/%d: %w", style, minutes, intensity, err)
	}

	firstJSON, err := json.Marshal(first.Workout)
	if err != nil {
		return fmt.Errorf("marshal first workout: %w", err)
	}
	secondJSON, err := json.Marshal(second.Workout)
	if err != nil {
		return fmt.Errorf("marshal second workout: %w", err)
	}
	if string(firstJSON) != string(secondJSON) {
		return fmt.Errorf("non-deterministic output for %s/%dmin/%d seed %q", style, minutes, intensity, seed)
	}

	counts.generations.Add(1)
	flags := first.Workout.Meta.AcceptanceFlags
	if !flags.TimeFit {
		counts.timeFitMisses.Add(1)
	}
	if !flags.StyleOK {
		counts.styleMisses.Add(1)
	}
	if !flags.PatternsLocked {
		counts.patternMisses.Add(1)
	}
	if !flags.LoadedRatioOK {
		counts.loadedMisses.Add(1)
	}
	return nil
}

// checkSeedSensitivity verifies that changing only the seed changes the
// workout for most requests. A handful of collisions is tolerated because
// short mobility sessions draw from a small pool.
func checkSeedSensitivity(service *workout.Service, counts *tally) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second) //nolint:mnd // 30 seconds
	defer cancel()

	for _, style := range styles {
		for _, minutes := range []int{30, 60} {
			req := workout.Request{
				Style:     style,
				Minutes:   minutes,
				Intensity: 6,
				Equipment: service.Registry().EquipmentTags(),
				Seed:      "alpha",
			}
			first, err := service.Generate(ctx, req)
			if err != nil {
				return fmt.Errorf("seed alpha %s/%dmin: %w", style, minutes, err)
			}
			req.Seed = "bravo"
			second, err := service.Generate(ctx, req)
			if err != nil {
				return fmt.Errorf("seed bravo %s/%dmin: %w", style, minutes, err)
			}

			firstJSON, err := json.Marshal(first.Workout.Blocks)
			if err != nil {
				return fmt.Errorf("marshal alpha blocks: %w", err)
			}
			secondJSON, err := json.Marshal(second.Workout.Blocks)
			if err != nil {
				return fmt.Errorf("marshal bravo blocks: %w", err)
			}

			counts.seedPairs.Add(1)
			if string(firstJSON) == string(secondJSON) {
				counts.seedPairsAlike.Add(1)
			}
		}
	}

	pairs := counts.seedPairs.Load()
	alike := counts.seedPairsAlike.Load()
	if alike > pairs/2 {
		return fmt.Errorf("seed has too little effect: %d of %d pairs identical", alike, pairs)
	}
	return nil
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.LogAttrs(ctx, slog.LevelError, "close db", errors.SlogError(closeErr))
		}
	}()

	service, err := workout.NewService(ctx, db, logger)
	if err != nil {
		return errors.Wrap(err, "initialise workout service")
	}

	var counts tally
	group, _ := errgroup.WithContext(ctx)
	group.SetLimit(8) //nolint:mnd // generation is CPU-cheap, keep the pool small.
	for _, style := range styles {
		for _, minutes := range durations {
			for _, intensity := range intensities {
				for _, seed := range []string{"smoke-a", "smoke-b"} {
					group.Go(func() error {
						if caseErr := checkCase(service, &counts, style, minutes, intensity, seed); caseErr != nil {
							counts.failures.Add(1)
							return caseErr
						}
						return nil
					})
				}
			}
		}
	}
	if err = group.Wait(); err != nil {
		return errors.Wrap(err, "generation matrix")
	}

	if err = checkSeedSensitivity(service, &counts); err != nil {
		return errors.Wrap(err, "seed sensitivity")
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "matrix complete",
		slog.Int64("generations", counts.generations.Load()),
		slog.Int64("time_fit_misses", counts.timeFitMisses.Load()),
		slog.Int64("style_misses", counts.styleMisses.Load()),
		slog.Int64("pattern_misses", counts.patternMisses.Load()),
		slog.Int64("loaded_ratio_misses", counts.loadedMisses.Load()),
		slog.Int64("seed_pairs_alike", counts.seedPairsAlike.Load()))

	// Fully equipped requests should pass every acceptance gate.
	if counts.timeFitMisses.Load() > 0 || counts.patternMisses.Load() > 0 {
		return errors.New("acceptance flags regressed",
			slog.Int64("time_fit_misses", counts.timeFitMisses.Load()),
			slog.Int64("pattern_misses", counts.patternMisses.Load()))
	}
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()
	start := time.Now()

	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "smoke test failed", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌", slog.Duration("duration", time.Since(start)))
	os.Exit(0)
}
