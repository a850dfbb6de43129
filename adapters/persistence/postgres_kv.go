package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/khoahotran/scholar-folio/internal/application/service"
	"github.com/khoahotran/scholar-folio/internal/config"
	"github.com/khoahotran/scholar-folio/pkg/logger"
)

const blobTable = "content_blobs"

const createBlobTable = `CREATE TABLE IF NOT EXISTS content_blobs (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func NewPostgresPool(cfg config.Config, log logger.Logger) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(context.Background(), cfg.DB.DSN)
	if err != nil {
		return nil, fmt.Errorf("do not create connection pool: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database failed: %w", err)
	}

	log.Info("Connect PostgreSQL successfully.")
	return pool, nil
}

// PostgresKV keeps one row per key in content_blobs.
type PostgresKV struct {
	db     *pgxpool.Pool
	logger logger.Logger
	psql   sq.StatementBuilderType
}

// NewPostgresKV creates the blob table when it is missing.
func NewPostgresKV(ctx context.Context, db *pgxpool.Pool, log logger.Logger) (*PostgresKV, error) {
	if _, err := db.Exec(ctx, createBlobTable); err != nil {
		return nil, fmt.Errorf("create %s: %w", blobTable, err)
	}
	return &PostgresKV{
		db:     db,
		logger: log,
		psql:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}, nil
}

func (r *PostgresKV) Get(ctx context.Context, key string) (string, error) {
	query, args, err := r.psql.Select("value").From(blobTable).Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return "", fmt.Errorf("build select: %w", err)
	}
	var value string
	if err := r.db.QueryRow(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", service.ErrKeyNotFound
		}
		r.logger.Error("Failed to read blob", err)
		return "", fmt.Errorf("select %s: %w", key, err)
	}
	return value, nil
}

func (r *PostgresKV) Set(ctx context.Context, key, value string) error {
	query, args, err := r.psql.Insert(blobTable).
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UTC()).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		r.logger.Error("Failed to write blob", err)
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (r *PostgresKV) Delete(ctx context.Context, key string) error {
	query, args, err := r.psql.Delete(blobTable).Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (r *PostgresKV) Close() error {
	r.db.Close()
	return nil
}
