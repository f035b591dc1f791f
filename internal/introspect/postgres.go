package introspect

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/Lumos-Labs-HQ/datamock/internal/classify"
	"github.com/Lumos-Labs-HQ/datamock/internal/types"
)

type postgresInspector struct {
	db *sqlx.DB
	qb squirrel.StatementBuilderType
}

func newPostgres(db *sqlx.DB) *postgresInspector {
	return &postgresInspector{
		db: db,
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func openPostgres(ctx context.Context, url string) (*postgresInspector, error) {
	config, err := pgx.ParseConfig(url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse connection URL")
	}
	config.DefaultQueryExecMode = pgx.QueryExecModeExec

	db := sqlx.NewDb(stdlib.OpenDB(*config), "pgx")
	db.SetMaxOpenConns(2)
	db.SetConnMaxIdleTime(3 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to ping PostgreSQL")
	}
	return newPostgres(db), nil
}

func (p *postgresInspector) Dialect() classify.Dialect {
	return classify.DialectPostgres
}

func (p *postgresInspector) tablesQuery() squirrel.SelectBuilder {
	return p.qb.Select("table_name").
		From("information_schema.tables").
		Where("table_schema = current_schema()").
		Where(squirrel.Eq{"table_type": "BASE TABLE"}).
		OrderBy("table_name")
}

func (p *postgresInspector) Tables(ctx context.Context) ([]string, error) {
	query, args, err := p.tablesQuery().ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build tables query")
	}
	var names []string
	if err := p.db.SelectContext(ctx, &names, query, args...); err != nil {
		return nil, errors.Wrap(err, "failed to list tables")
	}
	return names, nil
}

// columnsQuery reports user defined types by their udt name and keeps the
// interval fields so intervals classify by their range.
func (p *postgresInspector) columnsQuery(schema, table string) squirrel.SelectBuilder {
	q := p.qb.Select(
		"column_name AS name",
		"CASE WHEN data_type = 'USER-DEFINED' THEN udt_name ELSE data_type END AS type",
		"is_nullable AS nullable",
		"character_maximum_length AS width",
		"numeric_precision AS precision",
		"COALESCE(numeric_scale, datetime_precision) AS scale",
		"interval_type",
	).
		From("information_schema.columns").
		Where(squirrel.Eq{"table_name": table}).
		OrderBy("ordinal_position")
	if schema == "" {
		return q.Where("table_schema = current_schema()")
	}
	return q.Where(squirrel.Eq{"table_schema": schema})
}

func (p *postgresInspector) Columns(ctx context.Context, name string) (types.Table, error) {
	schema, table := splitTable(name)
	query, args, err := p.columnsQuery(schema, table).ToSql()
	if err != nil {
		return types.Table{}, errors.Wrap(err, "failed to build columns query")
	}
	var rows []columnRow
	if err := p.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return types.Table{}, errors.Wrapf(err, "failed to read columns of %s", name)
	}
	if len(rows) == 0 {
		return types.Table{}, fmt.Errorf("table %s not found", name)
	}
	return toTable(table, schema, rows), nil
}

func (p *postgresInspector) Close() error {
	return p.db.Close()
}
