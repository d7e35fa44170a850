package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"goal-detector/internal/shared/telemetry"
)

// ErrNoURL is returned by Connect when no connection string is configured.
var ErrNoURL = errors.New("DATABASE_URL is empty")

// Pool sizes the connection pool and bounds the startup ping.
type Pool struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// ServerPool is sized for the long-running API process.
func ServerPool() Pool {
	return Pool{
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 2 * time.Minute,
		PingTimeout:     5 * time.Second,
	}
}

// MigratePool holds a single connection for one-shot migrations.
func MigratePool() Pool {
	p := ServerPool()
	p.MaxOpenConns, p.MaxIdleConns = 1, 1
	return p
}

// Override returns p with every positive field of o applied.
func (p Pool) Override(o Pool) Pool {
	if o.MaxOpenConns > 0 {
		p.MaxOpenConns = o.MaxOpenConns
	}
	if o.MaxIdleConns > 0 {
		p.MaxIdleConns = o.MaxIdleConns
	}
	if o.ConnMaxLifetime > 0 {
		p.ConnMaxLifetime = o.ConnMaxLifetime
	}
	if o.ConnMaxIdleTime > 0 {
		p.ConnMaxIdleTime = o.ConnMaxIdleTime
	}
	if o.PingTimeout > 0 {
		p.PingTimeout = o.PingTimeout
	}
	return p
}

// openPGX parses the URL with pgx and wraps the driver in a *sql.DB.
var openPGX = func(databaseURL string) (*sql.DB, error) {
	cfg, err := pgx.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	return stdlib.OpenDB(*cfg), nil
}

// Connect opens the roadmap database and verifies it answers a ping.
// The returned *sql.DB is shared by the whole process.
func Connect(ctx context.Context, databaseURL string, pool Pool) (*sql.DB, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, ErrNoURL
	}
	pool = ServerPool().Override(pool)

	db, err := openPGX(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	db.SetConnMaxIdleTime(pool.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, pool.PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	stats := db.Stats()
	telemetry.Info("db.init", map[string]any{
		"max_open":    stats.MaxOpenConnections,
		"open":        stats.OpenConnections,
		"idle":        stats.Idle,
		"ping_ms":     pool.PingTimeout.Milliseconds(),
		"max_idle":    pool.MaxIdleConns,
		"lifetime_ms": pool.ConnMaxLifetime.Milliseconds(),
	})
	return db, nil
}
