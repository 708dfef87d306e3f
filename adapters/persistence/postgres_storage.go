package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/portfolio/internal/domain/storage"
	"github.com/khoahotran/portfolio/pkg/apperror"
)

const kvTable = "kv_store"

type postgresStorage struct {
	db *pgxpool.Pool
}

func NewPostgresStorage(db *pgxpool.Pool) storage.Storage {
	return &postgresStorage{db: db}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *postgresStorage) Get(ctx context.Context, key string) (string, bool, error) {
	query, args, err := psql.Select("item_value").From(kvTable).Where(sq.Eq{"item_key": key}).ToSql()
	if err != nil {
		return "", false, apperror.NewInternal("failed to build kv get query", err)
	}

	var value string
	if err := r.db.QueryRow(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, apperror.NewUnavailable("postgres get "+key, err)
	}
	return value, true, nil
}

func (r *postgresStorage) Set(ctx context.Context, key, value string) error {
	query, args, err := psql.Insert(kvTable).
		Columns("item_key", "item_value", "updated_at").
		Values(key, value, sq.Expr("NOW()")).
		Suffix("ON CONFLICT (item_key) DO UPDATE SET item_value = EXCLUDED.item_value, updated_at = NOW()").
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build kv set query", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return apperror.NewUnavailable("postgres set "+key, err)
	}
	return nil
}

func (r *postgresStorage) Remove(ctx context.Context, key string) error {
	query, args, err := psql.Delete(kvTable).Where(sq.Eq{"item_key": key}).ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build kv delete query", err)
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return apperror.NewUnavailable("postgres delete "+key, err)
	}
	return nil
}
