// Package main applies SQL migrations in filename order.
package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"

	"stockmaster/internal/config"
	"stockmaster/internal/infrastructure/storage/postgres"
	"stockmaster/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	dir := flag.String("dir", "migrations", "directory with .sql migration files")
	flag.Parse()

	log, err := logger.New(logger.Config{Level: "info", Development: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalw("failed to load configuration", "error", err)
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.Database.DSN))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	if err := run(ctx, pool.Unwrap(), *dir, log); err != nil {
		log.Fatalw("migration failed", "error", err)
	}

	log.Info("all migrations applied")
}

func run(ctx context.Context, db *pgxpool.Pool, dir string, log *logger.Logger) error {
	if _, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename    TEXT PRIMARY KEY,
			checksum    TEXT NOT NULL,
			executed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no migration files in %s", dir)
	}
	sort.Strings(files)

	applied, err := appliedMigrations(ctx, db)
	if err != nil {
		return fmt.Errorf("read applied migrations: %w", err)
	}

	for _, file := range files {
		name := filepath.Base(file)

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		checksum := checksumOf(content)

		if prev, ok := applied[name]; ok {
			if prev != checksum {
				return fmt.Errorf("%s changed after being applied (checksum mismatch)", name)
			}
			log.Infow("migration already applied", "file", name)
			continue
		}

		log.Infow("applying migration", "file", name)

		tx, err := db.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx for %s: %w", name, err)
		}

		if _, err := tx.Exec(ctx, string(content)); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("apply %s: %w", name, err)
		}

		if _, err := tx.Exec(ctx,
			"INSERT INTO schema_migrations (filename, checksum) VALUES ($1, $2)",
			name, checksum,
		); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("record %s: %w", name, err)
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit %s: %w", name, err)
		}

		log.Infow("migration applied", "file", name)
	}

	return nil
}

func appliedMigrations(ctx context.Context, db *pgxpool.Pool) (map[string]string, error) {
	rows, err := db.Query(ctx, "SELECT filename, checksum FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[string]string)
	for rows.Next() {
		var filename, checksum string
		if err := rows.Scan(&filename, &checksum); err != nil {
			return nil, err
		}
		applied[filename] = checksum
	}
	return applied, rows.Err()
}

func checksumOf(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
