package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lumos-Labs-HQ/datamock/internal/rule"
)

func TestNormalizeType(t *testing.T) {
	cases := map[string]string{
		"varchar(64)":                       "VARCHAR",
		"int(11) unsigned zerofill":         "INT",
		"DECIMAL(10, 2)":                    "DECIMAL",
		"TIMESTAMP(6) WITH TIME ZONE":       "TIMESTAMP WITH TIME ZONE",
		"interval year(2) to month":         "INTERVAL YEAR TO MONTH",
		"INTERVAL DAY(2) TO SECOND(6)":      "INTERVAL DAY TO SECOND",
		"  character   varying(255) ":       "CHARACTER VARYING",
		"timestamp(3) with local time zone": "TIMESTAMP WITH LOCAL TIME ZONE",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeType(in), in)
	}
}

func TestClassifyTotality(t *testing.T) {
	valid := map[rule.Category]bool{
		rule.CategoryNumber:              true,
		rule.CategoryChar:                true,
		rule.CategoryDate:                true,
		rule.CategoryIntervalYearToMonth: true,
		rule.CategoryIntervalDayToSecond: true,
	}
	for _, d := range Dialects() {
		types := Types(d)
		require.NotEmpty(t, types, d)
		for _, typ := range types {
			c, ok := Classify(d, typ)
			require.Truef(t, ok, "%s %s", d, typ)
			assert.Truef(t, valid[c], "%s %s -> %s", d, typ, c)
		}
	}
}

func TestClassifyWithSuffixes(t *testing.T) {
	cases := []struct {
		dialect Dialect
		typ     string
		want    rule.Category
	}{
		{DialectMySQL, "varchar(255)", rule.CategoryChar},
		{DialectMySQL, "bigint(20) unsigned", rule.CategoryNumber},
		{DialectMySQL, "datetime(3)", rule.CategoryDate},
		{DialectOracle, "NUMBER(38,0)", rule.CategoryNumber},
		{DialectOracle, "VARCHAR2(120 BYTE)", rule.CategoryChar},
		{DialectOracle, "INTERVAL YEAR(2) TO MONTH", rule.CategoryIntervalYearToMonth},
		{DialectOracle, "INTERVAL DAY(3) TO SECOND(2)", rule.CategoryIntervalDayToSecond},
		{DialectPostgres, "timestamp without time zone", rule.CategoryDate},
		{DialectPostgres, "interval", rule.CategoryIntervalDayToSecond},
	}
	for _, tc := range cases {
		c, ok := Classify(tc.dialect, tc.typ)
		require.Truef(t, ok, "%s %s", tc.dialect, tc.typ)
		assert.Equal(t, tc.want, c)
	}
}

func TestClassifyMiss(t *testing.T) {
	for _, typ := range []string{"GEOMETRY", "SDO_GEOMETRY", "", "((", "json", "INTERVAL YEAR TO MONTH"} {
		assert.NotPanics(t, func() {
			_, ok := Classify(DialectMySQL, typ)
			assert.False(t, ok, typ)
		})
	}
	assert.Equal(t, rule.CategoryOther, CategoryOf(DialectOracle, "SDO_GEOMETRY"))

	_, ok := Classify(Dialect("SYBASE"), "INT")
	assert.False(t, ok)
}

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect("OB-Oracle")
	require.NoError(t, err)
	assert.Equal(t, DialectOracle, d)

	d, err = ParseDialect("mysql")
	require.NoError(t, err)
	assert.Equal(t, DialectMySQL, d)

	_, err = ParseDialect("db2")
	assert.ErrorIs(t, err, ErrUnknownDialect)
}
