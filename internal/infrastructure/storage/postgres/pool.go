// Package postgres provides PostgreSQL infrastructure components.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PoolConfig sizes the connection pool. Values come from the database
// section of the config file; zero fields keep the defaults.
type PoolConfig struct {
	DSN               string
	MaxConns          int32
	MinConns          int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
}

// DefaultPoolConfig returns a pool sizing that suits a single API instance.
func DefaultPoolConfig(dsn string) PoolConfig {
	return PoolConfig{
		DSN:               dsn,
		MaxConns:          25,
		MinConns:          5,
		MaxConnLifetime:   time.Hour,
		MaxConnIdleTime:   30 * time.Minute,
		HealthCheckPeriod: time.Minute,
	}
}

// Pool wraps pgxpool.Pool so callers outside this package depend on a
// narrow surface instead of the driver type.
type Pool struct {
	*pgxpool.Pool
}

// Close releases every connection in the pool.
func (p *Pool) Close() {
	if p.Pool != nil {
		p.Pool.Close()
	}
}

// Unwrap exposes the underlying pgxpool.Pool for components that need
// the raw driver, such as the reference generator.
func (p *Pool) Unwrap() *pgxpool.Pool {
	return p.Pool
}

// NewPool connects to PostgreSQL and verifies the connection with a ping.
func NewPool(ctx context.Context, cfg PoolConfig) (*Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolConfig.HealthCheckPeriod = cfg.HealthCheckPeriod

	// Tag sessions so they are recognizable in pg_stat_activity.
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, "SET application_name = 'stockmaster'")
		return err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// RegisterPoolMetrics exports pool gauges on the default prometheus
// registry. Call once per process, after the pool is created.
func RegisterPoolMetrics(p *Pool) {
	gauge := func(name, help string, value func(*pgxpool.Stat) float64) {
		promauto.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: "stockmaster",
				Subsystem: "db",
				Name:      name,
				Help:      help,
			},
			func() float64 { return value(p.Stat()) },
		)
	}

	gauge("pool_total_conns", "Connections currently in the pool.",
		func(s *pgxpool.Stat) float64 { return float64(s.TotalConns()) })
	gauge("pool_acquired_conns", "Connections currently checked out.",
		func(s *pgxpool.Stat) float64 { return float64(s.AcquiredConns()) })
	gauge("pool_idle_conns", "Connections sitting idle.",
		func(s *pgxpool.Stat) float64 { return float64(s.IdleConns()) })
	gauge("pool_max_conns", "Configured pool ceiling.",
		func(s *pgxpool.Stat) float64 { return float64(s.MaxConns()) })
}
