package workout

import (
	"context"
	"fmt"

	"github.com/myrjola/wodgen/internal/errors"
	"github.com/myrjola/wodgen/internal/sqlite"
)

// sqliteMovementRepository loads the movement catalog from SQLite.
type sqliteMovementRepository struct {
	db *sqlite.Database
}

// newSQLiteMovementRepository creates a new SQLite movement repository.
func newSQLiteMovementRepository(db *sqlite.Database) *sqliteMovementRepository {
	return &sqliteMovementRepository{db: db}
}

// List returns every movement in catalog order. Patterns and equipment are
// loaded in bulk so a full catalog read stays at three queries.
func (r *sqliteMovementRepository) List(ctx context.Context) (_ []Movement, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, name, category, modality, level, main_banned_with_equipment
		FROM movements
		ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query movements: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var (
		movements []Movement
		index     = make(map[string]int)
	)
	for rows.Next() {
		var (
			m                  Movement
			category, modality string
			level              string
		)
		if err = rows.Scan(&m.ID, &m.Name, &category, &modality, &level, &m.MainBannedWithEquipment); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Category = Category(category)
		m.Modality = Modality(modality)
		m.Level = Level(level)
		index[m.ID] = len(movements)
		movements = append(movements, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("movement rows: %w", err)
	}

	if err = r.fetchPatterns(ctx, movements, index); err != nil {
		return nil, err
	}
	if err = r.fetchEquipment(ctx, movements, index); err != nil {
		return nil, err
	}

	return movements, nil
}

func (r *sqliteMovementRepository) fetchPatterns(
	ctx context.Context,
	movements []Movement,
	index map[string]int,
) (err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT mp.movement_id, mp.pattern
		FROM movement_patterns mp
		JOIN movements m ON m.id = mp.movement_id
		ORDER BY m.seq, mp.pattern`)
	if err != nil {
		return fmt.Errorf("query movement patterns: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	for rows.Next() {
		var movementID, pattern string
		if err = rows.Scan(&movementID, &pattern); err != nil {
			return fmt.Errorf("scan movement pattern: %w", err)
		}
		i, ok := index[movementID]
		if !ok {
			continue
		}
		movements[i].Patterns = append(movements[i].Patterns, Pattern(pattern))
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("movement pattern rows: %w", err)
	}
	return nil
}

func (r *sqliteMovementRepository) fetchEquipment(
	ctx context.Context,
	movements []Movement,
	index map[string]int,
) (err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT me.movement_id, me.equipment
		FROM movement_equipment me
		JOIN movements m ON m.id = me.movement_id
		ORDER BY m.seq, me.equipment`)
	if err != nil {
		return fmt.Errorf("query movement equipment: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	for rows.Next() {
		var movementID, equipment string
		if err = rows.Scan(&movementID, &equipment); err != nil {
			return fmt.Errorf("scan movement equipment: %w", err)
		}
		i, ok := index[movementID]
		if !ok {
			continue
		}
		movements[i].Equipment = append(movements[i].Equipment, equipment)
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("movement equipment rows: %w", err)
	}
	return nil
}
