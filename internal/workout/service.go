package workout

import (
	"context"
	"log/slog"

	"github.com/myrjola/wodgen/internal/errors"
	"github.com/myrjola/wodgen/internal/sqlite"
)

// Service handles the business logic for workout generation. The movement
// catalog is read once at construction; requests after that touch no I/O.
type Service struct {
	registry *Registry
	gen      *Generator
	logger   *slog.Logger
}

// NewService builds the registry from the database catalog and wires a
// generator on top of it. An empty catalog is a configuration error.
func NewService(ctx context.Context, db *sqlite.Database, logger *slog.Logger) (*Service, error) {
	movements, err := newSQLiteMovementRepository(db).List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list movement catalog")
	}
	registry, err := NewRegistry(movements)
	if err != nil {
		return nil, errors.Wrap(err, "build movement registry")
	}
	gen, err := NewGenerator(registry)
	if err != nil {
		return nil, errors.Wrap(err, "build generator")
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "movement catalog loaded",
		slog.Int("movements", registry.Len()))
	return &Service{
		registry: registry,
		gen:      gen,
		logger:   logger,
	}, nil
}

// Registry exposes the loaded movement catalog.
func (s *Service) Registry() *Registry {
	return s.registry
}

// Generate produces a workout for the request and logs its acceptance flags.
func (s *Service) Generate(ctx context.Context, req Request) (Result, error) {
	result, err := s.gen.Generate(req)
	if err != nil {
		return Result{}, errors.Wrap(err, "generate workout",
			slog.String("style", req.styleInput()),
			slog.String("seed", req.Seed))
	}

	flags := result.Workout.Meta.AcceptanceFlags
	s.logger.LogAttrs(ctx, slog.LevelInfo, "workout generated",
		slog.String("style", string(result.Workout.Meta.Style)),
		slog.String("seed", result.Workout.Meta.Seed),
		slog.Int("total_minutes", result.Workout.Meta.TotalMinutes),
		slog.Bool("time_fit", flags.TimeFit),
		slog.Bool("style_ok", flags.StyleOK),
		slog.Bool("patterns_locked", flags.PatternsLocked),
		slog.Bool("loaded_ratio_ok", flags.LoadedRatioOK))
	return result, nil
}
