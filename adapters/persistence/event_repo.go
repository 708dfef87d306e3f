package persistence

import (
	"context"
	"encoding/json"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/domain/event"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type postgresEventRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresEventRepo(db *pgxpool.Pool, logger logger.Logger) event.Repository {
	return &postgresEventRepo{db: db, logger: logger}
}

func (r *postgresEventRepo) Append(ctx context.Context, e event.ContentEvent) error {
	attrs, err := json.Marshal(e.Attributes)
	if err != nil {
		return apperror.NewInternal("failed to marshal event attributes", err)
	}

	query, args, err := insertEventQuery(e, attrs).ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build append event query", err)
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return apperror.NewInternal("failed to append content event", err)
	}
	return nil
}

// insertEventQuery skips events already recorded, since Kafka may redeliver.
func insertEventQuery(e event.ContentEvent, attrs []byte) sq.InsertBuilder {
	sections := e.Sections
	if sections == nil {
		sections = []string{}
	}
	return psql.Insert("content_events").
		Columns("id", "event_type", "sections", "attributes", "occurred_at").
		Values(e.ID, string(e.Type), sections, attrs, e.OccurredAt).
		Suffix("ON CONFLICT (id) DO NOTHING")
}

func (r *postgresEventRepo) List(ctx context.Context, limit, offset int) ([]event.ContentEvent, error) {
	query, args, err := psql.Select("id, event_type, sections, attributes, occurred_at").
		From("content_events").
		OrderBy("occurred_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list events query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query content events", err)
	}
	return r.scanEvents(rows)
}

func (r *postgresEventRepo) scanEvents(rows pgx.Rows) ([]event.ContentEvent, error) {
	defer rows.Close()
	events := make([]event.ContentEvent, 0)

	for rows.Next() {
		var (
			e         event.ContentEvent
			eventType string
			attrs     []byte
		)
		if err := rows.Scan(&e.ID, &eventType, &e.Sections, &attrs, &e.OccurredAt); err != nil {
			return nil, apperror.NewInternal("failed to scan content event", err)
		}
		e.Type = event.Type(eventType)
		if len(attrs) > 0 {
			if err := json.Unmarshal(attrs, &e.Attributes); err != nil {
				r.logger.Warn("Failed to unmarshal event attributes", zap.String("event_id", e.ID.String()), zap.Error(err))
			}
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating content event rows", err)
	}
	return events, nil
}
