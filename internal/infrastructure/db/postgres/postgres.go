// Package postgres is the relational Persistence Store, backed by a pgx pool.
package postgres

import (
	"context"
	"fmt"
	"time"

	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"

	"github.com/99minutos/catalog-api/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings needed to open the pool.
type Config struct {
	DSN      string
	MaxConns int32
	// Trace logs every query through the given logger when true.
	Trace bool
}

// DB wraps the shared connection pool.
type DB struct {
	Pool *pgxpool.Pool
	log  zerolog.Logger
}

// Connect opens the pool and pings it so startup fails fast when the
// database is unreachable.
func Connect(ctx context.Context, cfg Config, log zerolog.Logger) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse pgx pool config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.Trace {
		poolCfg.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(log.With().Str("component", "pgx").Logger()),
			LogLevel: traceLevel(log.GetLevel()),
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Info().Int32("max_conns", poolCfg.MaxConns).Msg("connected to postgres")
	return &DB{Pool: pool, log: log}, nil
}

func (db *DB) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

func (db *DB) Close(context.Context) error {
	db.log.Info().Msg("closing postgres pool")
	db.Pool.Close()
	return nil
}

// NewStore bundles the Postgres repositories.
func NewStore(db *DB) ports.Store {
	return ports.Store{
		Users:    NewUserRepository(db.Pool),
		Data:     NewDataRepository(db.Pool),
		Services: NewServiceRepository(db.Pool),
		Lookup:   NewLookup(db.Pool),
		Ping:     db.Ping,
		Close:    db.Close,
	}
}

func traceLevel(l zerolog.Level) tracelog.LogLevel {
	switch l {
	case zerolog.TraceLevel:
		return tracelog.LogLevelTrace
	case zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case zerolog.InfoLevel:
		return tracelog.LogLevelInfo
	case zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	case zerolog.ErrorLevel:
		return tracelog.LogLevelError
	default:
		return tracelog.LogLevelNone
	}
}
