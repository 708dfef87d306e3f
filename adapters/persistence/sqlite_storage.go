package persistence

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/khoahotran/portfolio/internal/domain/storage"
	"github.com/khoahotran/portfolio/pkg/apperror"
)

type sqliteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage creates the kv table when missing.
func NewSQLiteStorage(ctx context.Context, db *sql.DB) (storage.Storage, error) {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS kv_store (
    item_key TEXT PRIMARY KEY,
    item_value TEXT NOT NULL,
    updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);`)
	if err != nil {
		return nil, apperror.NewInternal("failed to create kv_store table", err)
	}
	return &sqliteStorage{db: db}, nil
}

var sqlitePsql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func (r *sqliteStorage) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := sqlitePsql.Select("item_value").From(kvTable).
		Where(sq.Eq{"item_key": key}).
		RunWith(r.db).
		QueryRowContext(ctx).
		Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, apperror.NewUnavailable("sqlite get "+key, err)
	}
	return value, true, nil
}

func (r *sqliteStorage) Set(ctx context.Context, key, value string) error {
	_, err := sqlitePsql.Insert(kvTable).
		Columns("item_key", "item_value", "updated_at").
		Values(key, value, sq.Expr("CURRENT_TIMESTAMP")).
		Suffix("ON CONFLICT(item_key) DO UPDATE SET item_value = excluded.item_value, updated_at = CURRENT_TIMESTAMP").
		RunWith(r.db).
		ExecContext(ctx)
	if err != nil {
		return apperror.NewUnavailable("sqlite set "+key, err)
	}
	return nil
}

func (r *sqliteStorage) Remove(ctx context.Context, key string) error {
	_, err := sqlitePsql.Delete(kvTable).
		Where(sq.Eq{"item_key": key}).
		RunWith(r.db).
		ExecContext(ctx)
	if err != nil {
		return apperror.NewUnavailable("sqlite delete "+key, err)
	}
	return nil
}
