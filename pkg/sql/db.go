package lsql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.10.0"
	"go.opentelemetry.io/otel/trace"
)

func NewInstance(cfg *Config) (*Instance, error) {
	db, err := sqlx.Connect(cfg.Engine, cfg.FullAddress())
	if err != nil {
		return nil, err
	}

	db.SetConnMaxLifetime(cfg.MaxLifetime)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetMaxOpenConns(cfg.MaxOpenConns)

	tracer := otel.Tracer("lsql")

	return &Instance{
		cfg:    cfg,
		db:     db,
		tracer: tracer,
	}, nil
}

type Instance struct {
	cfg    *Config
	db     *sqlx.DB
	tracer trace.Tracer
}

func (db *Instance) GetDatabaseEngine() string {
	return db.cfg.Engine
}

func (db *Instance) Ping(ctx context.Context) error {
	return db.db.PingContext(ctx)
}

func (db *Instance) Close() error {
	return db.db.Close()
}

func startSpan(ctx context.Context, db *Instance, spanName string, query string) (context.Context, trace.Span) {
	return db.tracer.Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			semconv.DBStatementKey.String(query),
			semconv.DBSystemKey.String(db.GetDatabaseEngine()),
			semconv.PeerServiceKey.String(fmt.Sprintf("%s(%s)", db.GetDatabaseEngine(), db.cfg.Address)),
		))
}

func (db *Instance) QueryRowContext(ctx context.Context, query string, args ...interface{}) *Row {
	ctx, span := startSpan(ctx, db, "QueryRowContext", query)
	defer span.End()

	finalQuery := db.db.Rebind(query)
	return &Row{row: db.db.QueryRowxContext(ctx, finalQuery, args...)}
}

func (db *Instance) QueryContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error) {
	ctx, span := startSpan(ctx, db, "QueryContext", query)
	defer span.End()

	if len(args) > 0 {
		var err error
		query, args, err = sqlx.In(query, args...)
		if err != nil {
			return nil, err
		}
	}

	finalQuery := db.db.Rebind(query)
	return db.db.QueryxContext(ctx, finalQuery, args...)
}

func (db *Instance) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	ctx, span := startSpan(ctx, db, "ExecContext", query)
	defer span.End()

	finalQuery := db.db.Rebind(query)
	return db.db.ExecContext(ctx, finalQuery, args...)
}

func (db *Instance) ExecAndReturnId(ctx context.Context, query string, args ...interface{}) (int64, error) {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}
