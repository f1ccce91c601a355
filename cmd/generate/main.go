package main

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/myrjola/wodgen/internal/envstruct"
	"github.com/myrjola/wodgen/internal/errors"
	"github.com/myrjola/wodgen/internal/logging"
	"github.com/myrjola/wodgen/internal/ptr"
	"github.com/myrjola/wodgen/internal/sqlite"
	"github.com/myrjola/wodgen/internal/workout"
)

type config struct {
	// SqliteURL is the URL to the SQLite database holding the movement
	// catalog. ":memory:" builds an ethereal catalog from the embedded seed.
	SqliteURL string `env:"WODGEN_SQLITE_URL" envDefault:":memory:"`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool), args []string) error {
	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	flags := flag.NewFlagSet("generate", flag.ContinueOnError)
	var (
		style       = flags.String("style", "", "training style, goal, or focus (e.g. olympic, strength, metcon)")
		minutes     = flags.Int("minutes", 45, "session length in minutes")
		intensity   = flags.Int("intensity", 6, "requested intensity 1-10")
		equipment   = flags.String("equipment", "", "comma-separated equipment list; empty means a fully equipped gym")
		seed        = flags.String("seed", "", "seed for reproducible output; empty picks a random one")
		readiness   = flags.Int("readiness", 0, "optional 1-10 recovery score; 0 omits it")
		constraints = flags.String("exclude", "", "comma-separated movement names to avoid")
		format      = flags.String("format", "markdown", "output format: json, markdown, or html")
	)
	if err := flags.Parse(args); err != nil {
		return errors.Wrap(err, "parse flags")
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

	req := workout.Request{
		Style:       *style,
		Minutes:     *minutes,
		Intensity:   *intensity,
		Equipment:   splitCSV(*equipment),
		Seed:        *seed,
		Constraints: splitCSV(*constraints),
	}
	if req.Seed == "" {
		req.Seed = randomSeed()
	}
	if len(req.Equipment) == 0 {
		req.Equipment = service.Registry().EquipmentTags()
	}
	if *readiness > 0 {
		req.Readiness = ptr.Ref(*readiness)
	}

	result, err := service.Generate(ctx, req)
	if err != nil {
		return errors.Wrap(err, "generate workout")
	}

	switch *format {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err = encoder.Encode(result.Workout); err != nil {
			return errors.Wrap(err, "encode workout")
		}
	case "markdown":
		fmt.Print(renderMarkdown(result.Workout))
	case "html":
		var html string
		if html, err = renderHTML(result.Workout); err != nil {
			return errors.Wrap(err, "render html")
		}
		fmt.Print(html)
	default:
		return errors.New("unknown format", slog.String("format", *format))
	}
	return nil
}

// randomSeed returns a fresh seed so unseeded runs still record one in the
// output metadata.
func randomSeed() string {
	return rand.Text()
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelInfo,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	if err := run(ctx, logger, os.LookupEnv, os.Args[1:]); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure generating workout", errors.SlogError(err))
		os.Exit(1)
	}
}
