package introspect

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Lumos-Labs-HQ/datamock/internal/classify"
	"github.com/Lumos-Labs-HQ/datamock/internal/types"
)

// Inspector reads table metadata from a live database.
type Inspector interface {
	Dialect() classify.Dialect
	Tables(ctx context.Context) ([]string, error)
	Columns(ctx context.Context, table string) (types.Table, error)
	Close() error
}

// Open connects to the database at url and verifies the connection.
func Open(ctx context.Context, provider, url string) (Inspector, error) {
	switch strings.ToLower(provider) {
	case "mysql":
		return openMySQL(ctx, url)
	case "postgresql", "postgres":
		return openPostgres(ctx, url)
	default:
		return nil, fmt.Errorf("unsupported database provider: %s", provider)
	}
}

// columnRow is one information_schema.columns row.
type columnRow struct {
	Name         string         `db:"name"`
	Type         string         `db:"type"`
	Nullable     string         `db:"nullable"`
	Width        sql.NullInt64  `db:"width"`
	Precision    sql.NullInt64  `db:"precision"`
	Scale        sql.NullInt64  `db:"scale"`
	IntervalType sql.NullString `db:"interval_type"`
}

func (r columnRow) column() types.Column {
	col := types.Column{
		ColumnName: r.Name,
		ColumnType: r.Type,
		Nullable:   strings.EqualFold(r.Nullable, "YES"),
	}
	if r.IntervalType.Valid && r.IntervalType.String != "" {
		col.ColumnType = "INTERVAL " + r.IntervalType.String
	}
	if r.Width.Valid {
		col.ColumnObj.Width = types.Int64(r.Width.Int64)
	}
	if r.Precision.Valid {
		col.ColumnObj.Precision = types.Int64(r.Precision.Int64)
	}
	if r.Scale.Valid {
		col.ColumnObj.Scale = types.Int64(r.Scale.Int64)
	}
	return col
}

func toTable(name, schema string, rows []columnRow) types.Table {
	t := types.Table{Name: name, Schema: schema, Columns: make([]types.Column, 0, len(rows))}
	for _, r := range rows {
		t.Columns = append(t.Columns, r.column())
	}
	return t
}

// splitTable splits "schema.table" into its parts.
func splitTable(name string) (schema, table string) {
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}
