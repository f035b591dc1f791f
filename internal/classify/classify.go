package classify

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Lumos-Labs-HQ/datamock/internal/rule"
)

// Dialect selects which classification table applies.
type Dialect string

const (
	DialectMySQL    Dialect = "MYSQL"
	DialectOracle   Dialect = "ORACLE"
	DialectPostgres Dialect = "POSTGRESQL"
)

var ErrUnknownDialect = errors.New("unknown dialect")

var dialectAliases = map[string]Dialect{
	"mysql":            DialectMySQL,
	"ob_mysql":         DialectMySQL,
	"obmysql":          DialectMySQL,
	"oceanbase_mysql":  DialectMySQL,
	"doris":            DialectMySQL,
	"oracle":           DialectOracle,
	"ob_oracle":        DialectOracle,
	"oboracle":         DialectOracle,
	"oceanbase_oracle": DialectOracle,
	"postgres":         DialectPostgres,
	"postgresql":       DialectPostgres,
	"pg":               DialectPostgres,
}

// ParseDialect maps a connection mode or provider name onto a dialect.
func ParseDialect(s string) (Dialect, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "-", "_")
	if d, ok := dialectAliases[key]; ok {
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDialect, s)
}

var tables = map[Dialect]map[string]rule.Category{
	DialectMySQL: {
		"TINYINT":    rule.CategoryNumber,
		"SMALLINT":   rule.CategoryNumber,
		"MEDIUMINT":  rule.CategoryNumber,
		"INT":        rule.CategoryNumber,
		"INTEGER":    rule.CategoryNumber,
		"BIGINT":     rule.CategoryNumber,
		"DECIMAL":    rule.CategoryNumber,
		"DEC":        rule.CategoryNumber,
		"NUMERIC":    rule.CategoryNumber,
		"FIXED":      rule.CategoryNumber,
		"FLOAT":      rule.CategoryNumber,
		"DOUBLE":     rule.CategoryNumber,
		"REAL":       rule.CategoryNumber,
		"CHAR":       rule.CategoryChar,
		"VARCHAR":    rule.CategoryChar,
		"TINYTEXT":   rule.CategoryChar,
		"TEXT":       rule.CategoryChar,
		"MEDIUMTEXT": rule.CategoryChar,
		"LONGTEXT":   rule.CategoryChar,
		"DATE":       rule.CategoryDate,
		"DATETIME":   rule.CategoryDate,
		"TIMESTAMP":  rule.CategoryDate,
	},
	DialectOracle: {
		"NUMBER":                         rule.CategoryNumber,
		"INTEGER":                        rule.CategoryNumber,
		"INT":                            rule.CategoryNumber,
		"SMALLINT":                       rule.CategoryNumber,
		"DECIMAL":                        rule.CategoryNumber,
		"NUMERIC":                        rule.CategoryNumber,
		"FLOAT":                          rule.CategoryNumber,
		"BINARY_FLOAT":                   rule.CategoryNumber,
		"BINARY_DOUBLE":                  rule.CategoryNumber,
		"CHAR":                           rule.CategoryChar,
		"NCHAR":                          rule.CategoryChar,
		"VARCHAR":                        rule.CategoryChar,
		"VARCHAR2":                       rule.CategoryChar,
		"NVARCHAR2":                      rule.CategoryChar,
		"CLOB":                           rule.CategoryChar,
		"NCLOB":                          rule.CategoryChar,
		"DATE":                           rule.CategoryDate,
		"TIMESTAMP":                      rule.CategoryDate,
		"TIMESTAMP WITH TIME ZONE":       rule.CategoryDate,
		"TIMESTAMP WITH LOCAL TIME ZONE": rule.CategoryDate,
		"INTERVAL YEAR TO MONTH":         rule.CategoryIntervalYearToMonth,
		"INTERVAL DAY TO SECOND":         rule.CategoryIntervalDayToSecond,
	},
	DialectPostgres: {
		"SMALLINT":                    rule.CategoryNumber,
		"INTEGER":                     rule.CategoryNumber,
		"INT":                         rule.CategoryNumber,
		"INT2":                        rule.CategoryNumber,
		"INT4":                        rule.CategoryNumber,
		"INT8":                        rule.CategoryNumber,
		"BIGINT":                      rule.CategoryNumber,
		"SMALLSERIAL":                 rule.CategoryNumber,
		"SERIAL":                      rule.CategoryNumber,
		"BIGSERIAL":                   rule.CategoryNumber,
		"DECIMAL":                     rule.CategoryNumber,
		"NUMERIC":                     rule.CategoryNumber,
		"REAL":                        rule.CategoryNumber,
		"FLOAT4":                      rule.CategoryNumber,
		"FLOAT8":                      rule.CategoryNumber,
		"DOUBLE PRECISION":            rule.CategoryNumber,
		"CHAR":                        rule.CategoryChar,
		"CHARACTER":                   rule.CategoryChar,
		"BPCHAR":                      rule.CategoryChar,
		"VARCHAR":                     rule.CategoryChar,
		"CHARACTER VARYING":           rule.CategoryChar,
		"TEXT":                        rule.CategoryChar,
		"DATE":                        rule.CategoryDate,
		"TIMESTAMP":                   rule.CategoryDate,
		"TIMESTAMPTZ":                 rule.CategoryDate,
		"TIMESTAMP WITHOUT TIME ZONE": rule.CategoryDate,
		"TIMESTAMP WITH TIME ZONE":    rule.CategoryDate,
		"INTERVAL YEAR TO MONTH":      rule.CategoryIntervalYearToMonth,
		"INTERVAL DAY TO SECOND":      rule.CategoryIntervalDayToSecond,
		"INTERVAL":                    rule.CategoryIntervalDayToSecond,
	},
}

var (
	parenGroup = regexp.MustCompile(`\([^)]*\)`)
	modifiers  = regexp.MustCompile(`\b(UNSIGNED|SIGNED|ZEROFILL)\b`)
	spaces     = regexp.MustCompile(`\s+`)
)

// NormalizeType reduces a native column type to its lookup key, e.g.
// "varchar(64)" -> "VARCHAR", "TIMESTAMP(6) WITH TIME ZONE" ->
// "TIMESTAMP WITH TIME ZONE", "int(11) unsigned" -> "INT".
func NormalizeType(columnType string) string {
	t := strings.ToUpper(columnType)
	t = parenGroup.ReplaceAllString(t, " ")
	t = modifiers.ReplaceAllString(t, " ")
	t = spaces.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

// Classify returns the category of columnType under dialect d. The second
// result is false when the type is not listed.
func Classify(d Dialect, columnType string) (rule.Category, bool) {
	table, ok := tables[d]
	if !ok {
		return "", false
	}
	c, ok := table[NormalizeType(columnType)]
	return c, ok
}

// CategoryOf is Classify with unlisted types folded into OTHER.
func CategoryOf(d Dialect, columnType string) rule.Category {
	if c, ok := Classify(d, columnType); ok {
		return c
	}
	return rule.CategoryOther
}

// Types lists the normalized types known to dialect d, sorted.
func Types(d Dialect) []string {
	table := tables[d]
	out := make([]string, 0, len(table))
	for t := range table {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Dialects lists the supported dialects.
func Dialects() []Dialect {
	return []Dialect{DialectMySQL, DialectOracle, DialectPostgres}
}

// IsUnsigned reports whether a MySQL column type carries the UNSIGNED modifier.
func IsUnsigned(columnType string) bool {
	return strings.Contains(strings.ToUpper(columnType), "UNSIGNED")
}
