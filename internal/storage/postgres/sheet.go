package postgres

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/charsim/internal/game/character"
)

// ErrSheetNotFound is returned when a sheet lookup yields no results.
var ErrSheetNotFound = errors.New("character sheet not found")

// SheetRepository stores character sheets per simulation run. Character ids
// are only unique within one process, so every row is keyed by run and id.
type SheetRepository struct {
	db *pgxpool.Pool
}

// NewSheetRepository creates a SheetRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewSheetRepository(db *pgxpool.Pool) *SheetRepository {
	return &SheetRepository{db: db}
}

// execer is satisfied by both the pool and a transaction.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const upsertSheet = `
	INSERT INTO character_sheets
		(run_id, character_id, name, role, level, experience, magic_level, dead, sheet)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	ON CONFLICT (run_id, character_id) DO UPDATE SET
		name = EXCLUDED.name,
		role = EXCLUDED.role,
		level = EXCLUDED.level,
		experience = EXCLUDED.experience,
		magic_level = EXCLUDED.magic_level,
		dead = EXCLUDED.dead,
		sheet = EXCLUDED.sheet,
		saved_at = NOW()`

// experienceColumn converts experience for the BIGINT column, clamping at
// math.MaxInt64. The JSONB sheet keeps the exact value.
func experienceColumn(exp uint64) int64 {
	if exp > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(exp)
}

func saveSheet(ctx context.Context, db execer, run uuid.UUID, s character.Sheet) error {
	if run == uuid.Nil {
		return errors.New("saving sheet: run id must be set")
	}
	_, err := db.Exec(ctx, upsertSheet,
		run, s.ID, s.Name, s.Role, s.Level, experienceColumn(s.Experience), s.MagicLevel, s.Dead, s)
	if err != nil {
		return fmt.Errorf("saving sheet %d: %w", s.ID, err)
	}
	return nil
}

// Save inserts or replaces the sheet of s.ID within run.
//
// Precondition: run is not uuid.Nil.
// Postcondition: Get(ctx, run, s.ID) returns s.
func (r *SheetRepository) Save(ctx context.Context, run uuid.UUID, s character.Sheet) error {
	return saveSheet(ctx, r.db, run, s)
}

// SaveAll saves every sheet in one transaction.
//
// Postcondition: either all sheets are saved or none is.
func (r *SheetRepository) SaveAll(ctx context.Context, run uuid.UUID, sheets []character.Sheet) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning sheet transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, s := range sheets {
		if err := saveSheet(ctx, tx, run, s); err != nil {
			return err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing sheets: %w", err)
	}
	return nil
}

// Get retrieves one sheet.
//
// Postcondition: Returns the sheet or ErrSheetNotFound.
func (r *SheetRepository) Get(ctx context.Context, run uuid.UUID, id int64) (character.Sheet, error) {
	var s character.Sheet
	err := r.db.QueryRow(ctx, `
		SELECT sheet FROM character_sheets WHERE run_id = $1 AND character_id = $2`,
		run, id,
	).Scan(&s)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return character.Sheet{}, ErrSheetNotFound
		}
		return character.Sheet{}, fmt.Errorf("querying sheet %d: %w", id, err)
	}
	return s, nil
}

// List returns every sheet of run, highest level first, then by id.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *SheetRepository) List(ctx context.Context, run uuid.UUID) ([]character.Sheet, error) {
	rows, err := r.db.Query(ctx, `
		SELECT sheet FROM character_sheets
		WHERE run_id = $1
		ORDER BY level DESC, character_id ASC`,
		run,
	)
	if err != nil {
		return nil, fmt.Errorf("listing sheets: %w", err)
	}
	defer rows.Close()

	sheets := make([]character.Sheet, 0)
	for rows.Next() {
		var s character.Sheet
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scanning sheet row: %w", err)
		}
		sheets = append(sheets, s)
	}
	return sheets, rows.Err()
}

// Runs returns every stored run id, most recent first.
func (r *SheetRepository) Runs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `
		SELECT run_id FROM character_sheets
		GROUP BY run_id
		ORDER BY MAX(saved_at) DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	runs := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		runs = append(runs, id)
	}
	return runs, rows.Err()
}
