// Package postgres stores the character sheets of finished simulation runs in
// PostgreSQL. Rows live in the character_sheets table, keyed by run id and
// character id; the full sheet is kept as JSONB next to a few queryable
// columns.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/charsim/internal/config"
)

// Pool owns the connection pool shared by the sheet repository.
type Pool struct {
	pool *pgxpool.Pool
}

// NewPool connects to the database named by cfg and verifies it with a ping.
//
// Precondition: cfg passed config validation.
// Postcondition: returns a pingable Pool or a non-nil error; on error no
// connections are left open.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing sheet store dsn: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("opening sheet store: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging sheet store: %w", err)
	}
	return &Pool{pool: pool}, nil
}

// Health pings the database, giving up after timeout.
func (p *Pool) Health(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return p.pool.Ping(ctx)
}

// Close releases every connection.
func (p *Pool) Close() {
	p.pool.Close()
}

// Sheets returns a SheetRepository sharing this pool.
func (p *Pool) Sheets() *SheetRepository {
	return NewSheetRepository(p.pool)
}

// DB exposes the raw pool so test fixtures can truncate or inspect
// character_sheets without going through SheetRepository.
func (p *Pool) DB() *pgxpool.Pool {
	return p.pool
}
