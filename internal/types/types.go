package types

// ColumnObj is the raw size metadata schema introspection reports for a column.
type ColumnObj struct {
	Width     *int64 `json:"width,omitempty" yaml:"width,omitempty" db:"width"`
	Precision *int64 `json:"precision,omitempty" yaml:"precision,omitempty" db:"precision"`
	Scale     *int64 `json:"scale,omitempty" yaml:"scale,omitempty" db:"scale"`
}

// Column describes one column of a table selected for mocking. It is
// immutable for the duration of an editing session.
type Column struct {
	ColumnName string    `json:"columnName" yaml:"columnName"`
	ColumnType string    `json:"columnType" yaml:"columnType"`
	ColumnObj  ColumnObj `json:"columnObj" yaml:"columnObj"`
	Nullable   bool      `json:"nullable,omitempty" yaml:"nullable,omitempty"`
}

type Table struct {
	Name    string   `json:"tableName" yaml:"tableName"`
	Schema  string   `json:"schemaName,omitempty" yaml:"schemaName,omitempty"`
	Columns []Column `json:"columns" yaml:"columns"`
}

// Int64 returns a pointer to v, for building ColumnObj literals.
func Int64(v int64) *int64 {
	return &v
}
