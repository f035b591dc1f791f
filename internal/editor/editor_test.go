package editor

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lumos-Labs-HQ/datamock/internal/classify"
	"github.com/Lumos-Labs-HQ/datamock/internal/converter"
	"github.com/Lumos-Labs-HQ/datamock/internal/rule"
	"github.com/Lumos-Labs-HQ/datamock/internal/types"
)

var shanghai = time.FixedZone("GMT+0800", 8*3600)

func testRegistry() *converter.Registry {
	return converter.NewRegistry(converter.Options{
		Location: shanghai,
		Now: func() time.Time {
			return time.Date(2024, 3, 15, 10, 30, 0, 0, shanghai)
		},
	})
}

func varchar(width int64) types.Column {
	return types.Column{
		ColumnName: "name",
		ColumnType: "VARCHAR",
		ColumnObj:  types.ColumnObj{Width: types.Int64(width)},
	}
}

func TestNewSelectsDefaults(t *testing.T) {
	e, err := New(testRegistry(), classify.DialectMySQL, varchar(20), "", nil)
	require.NoError(t, err)

	assert.Equal(t, rule.CategoryChar, e.Category())
	assert.Equal(t, rule.CharRandomText, e.Rule())
	assert.False(t, e.Editing())
	assert.Equal(t, []string{"1", "20"}, e.Value().Range)
	assert.Equal(t, rule.AllLowerCase, e.Value().GenParams.CaseOption)
}

func TestNewRejectsForeignRule(t *testing.T) {
	_, err := New(testRegistry(), classify.DialectMySQL, varchar(20), rule.DateOrder, nil)
	assert.True(t, errors.Is(err, converter.ErrUnknownRule))
}

func TestConfirmCommitsDraft(t *testing.T) {
	e, err := New(testRegistry(), classify.DialectMySQL, varchar(20), "", nil)
	require.NoError(t, err)
	assert.Nil(t, e.Draft())

	e.Edit()
	require.True(t, e.Editing())
	e.Draft().Range = []string{"3", "8"}
	assert.Equal(t, []string{"1", "20"}, e.Value().Range, "draft leaked into committed value")

	require.NoError(t, e.Confirm())
	assert.False(t, e.Editing())
	assert.Equal(t, []string{"3", "8"}, e.Value().Range)
	assert.Equal(t, "length 3 ~ 8, all_lower_case", e.Summary())
}

func TestConfirmFailureKeepsEditing(t *testing.T) {
	e, err := New(testRegistry(), classify.DialectMySQL, varchar(20), "", nil)
	require.NoError(t, err)

	e.Edit()
	e.Draft().Range = []string{"9", "50"}
	err = e.Confirm()

	var fe FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Contains(t, fe, "range.high")
	assert.True(t, e.Editing())
	assert.Equal(t, []string{"1", "20"}, e.Value().Range)

	e.Draft().Range = []string{"9", "5"}
	err = e.Confirm()
	require.True(t, errors.As(err, &fe))
	assert.Contains(t, fe, "range")
}

func TestCancelDiscardsDraft(t *testing.T) {
	e, err := New(testRegistry(), classify.DialectMySQL, types.Column{ColumnName: "id", ColumnType: "INT"}, rule.NumberOrder, nil)
	require.NoError(t, err)

	e.Edit()
	e.Draft().LowValue = "100"
	e.Cancel()

	assert.False(t, e.Editing())
	assert.Nil(t, e.Draft())
	assert.Equal(t, "1", e.Value().LowValue)
}

func TestSetRuleResetsValueAndEditing(t *testing.T) {
	e, err := New(testRegistry(), classify.DialectMySQL, varchar(20), "", nil)
	require.NoError(t, err)

	e.Edit()
	require.NoError(t, e.SetRule(rule.CharBool))
	assert.False(t, e.Editing())
	assert.Equal(t, rule.CharBool, e.Rule())
	require.NotNil(t, e.Value().GenParams.FixText)
	assert.Equal(t, "true", *e.Value().GenParams.FixText)

	err = e.SetRule(rule.DateOrder)
	assert.True(t, errors.Is(err, converter.ErrUnknownRule))
	assert.Equal(t, rule.CharBool, e.Rule())
}

func TestFromColumnRoundTrip(t *testing.T) {
	reg := testRegistry()
	col := types.Column{ColumnName: "id", ColumnType: "BIGINT"}
	step := converter.FormColumn{
		Column: col,
		Rule:   rule.NumberOrder,
		TypeConfig: converter.FormValue{
			LowValue:  "10",
			Order:     rule.OrderDesc,
			GenParams: converter.FormParams{Step: "5"},
		},
	}
	servers, err := reg.ConvertFormToServerColumns(classify.DialectMySQL, []converter.FormColumn{step})
	require.NoError(t, err)
	forms, err := reg.ConvertServerColumnsToFormColumns(classify.DialectMySQL, servers)
	require.NoError(t, err)

	e, err := FromColumn(reg, classify.DialectMySQL, forms[0])
	require.NoError(t, err)
	assert.Equal(t, rule.NumberOrder, e.Rule())
	assert.Equal(t, "from 10, step 5 desc", e.Summary())
	assert.Equal(t, step, e.Column())
}

func TestValidate(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, shanghai)
	tests := []struct {
		name   string
		col    types.Column
		rule   rule.Type
		value  converter.FormValue
		fields []string
	}{
		{
			name:  "number range ok",
			col:   types.Column{ColumnType: "TINYINT"},
			rule:  rule.NumberRandom,
			value: converter.FormValue{Range: []string{"-5", "100"}},
		},
		{
			name:   "number range beyond type",
			col:    types.Column{ColumnType: "TINYINT"},
			rule:   rule.NumberRandom,
			value:  converter.FormValue{Range: []string{"0", "300"}},
			fields: []string{"range.high"},
		},
		{
			name:   "number range not numeric",
			col:    types.Column{ColumnType: "INT"},
			rule:   rule.NumberRandom,
			value:  converter.FormValue{Range: []string{"a", ""}},
			fields: []string{"range.low", "range.high"},
		},
		{
			name:   "zero step",
			col:    types.Column{ColumnType: "INT"},
			rule:   rule.NumberOrder,
			value:  converter.FormValue{LowValue: "1", Order: rule.OrderAsc, GenParams: converter.FormParams{Step: "0"}},
			fields: []string{"genParams.step"},
		},
		{
			name:   "missing order",
			col:    types.Column{ColumnType: "INT"},
			rule:   rule.NumberOrder,
			value:  converter.FormValue{LowValue: "1", GenParams: converter.FormParams{Step: "1"}},
			fields: []string{"order"},
		},
		{
			name:   "text as number beyond digits",
			col:    varchar(2),
			rule:   rule.CharRandomNumber,
			value:  converter.FormValue{Range: []string{"0", "100"}},
			fields: []string{"range.high"},
		},
		{
			name:  "number in longtext",
			col:   types.Column{ColumnType: "longtext", ColumnObj: types.ColumnObj{Width: types.Int64(4294967295)}},
			rule:  rule.CharNormalNumber,
			value: converter.FormValue{GenParams: converter.FormParams{FixNum: "7"}},
		},
		{
			name:  "order number in mediumtext",
			col:   types.Column{ColumnType: "mediumtext", ColumnObj: types.ColumnObj{Width: types.Int64(16777215)}},
			rule:  rule.CharOrderNumber,
			value: converter.FormValue{LowValue: "100", Order: rule.OrderDesc, GenParams: converter.FormParams{Step: "3"}},
		},
		{
			name:   "fixed text too long",
			col:    varchar(2),
			rule:   rule.CharNormalText,
			value:  converter.FormValue{GenParams: converter.FormParams{FixText: strPtr("abc")}},
			fields: []string{"genParams.fixText"},
		},
		{
			name:   "bad regexp",
			col:    varchar(20),
			rule:   rule.CharRegexpText,
			value:  converter.FormValue{GenParams: converter.FormParams{RegText: "[a-"}},
			fields: []string{"genParams.regText"},
		},
		{
			name:   "bool must be true or false",
			col:    varchar(5),
			rule:   rule.CharBool,
			value:  converter.FormValue{GenParams: converter.FormParams{FixText: strPtr("yes")}},
			fields: []string{"genParams.fixText"},
		},
		{
			name:  "random bool needs nothing",
			col:   varchar(5),
			rule:  rule.CharRandomBool,
			value: converter.FormValue{},
		},
		{
			name: "date order ok",
			col:  types.Column{ColumnType: "DATETIME"},
			rule: rule.DateOrder,
			value: converter.FormValue{
				LowDate:   &day,
				Order:     rule.OrderAsc,
				GenParams: converter.FormParams{Step: "2", TimeUnit: rule.Hours},
			},
		},
		{
			name: "date order bad unit",
			col:  types.Column{ColumnType: "DATETIME"},
			rule: rule.DateOrder,
			value: converter.FormValue{
				LowDate:   &day,
				Order:     rule.OrderAsc,
				GenParams: converter.FormParams{Step: "2", TimeUnit: "WEEKS"},
			},
			fields: []string{"genParams.timeUnit"},
		},
		{
			name:   "date range reversed",
			col:    types.Column{ColumnType: "DATE"},
			rule:   rule.DateRandom,
			value:  converter.FormValue{DateRange: []time.Time{day, day.AddDate(0, 0, -1)}},
			fields: []string{"dateRange"},
		},
		{
			name:  "null needs nothing",
			col:   types.Column{ColumnType: "DATE"},
			rule:  rule.DateNull,
			value: converter.FormValue{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := classify.CategoryOf(classify.DialectMySQL, tt.col.ColumnType)
			err := Validate(classify.DialectMySQL, tt.col, c, tt.rule, tt.value)
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}
			var fe FieldErrors
			require.True(t, errors.As(err, &fe), "got %v", err)
			for _, f := range tt.fields {
				assert.Contains(t, fe, f)
			}
		})
	}
}

func TestValidateInterval(t *testing.T) {
	col := types.Column{ColumnType: "INTERVAL DAY(2) TO SECOND(6)"}
	c := classify.CategoryOf(classify.DialectOracle, col.ColumnType)
	require.Equal(t, rule.CategoryIntervalDayToSecond, c)

	ok := converter.FormValue{GenParams: converter.FormParams{Interval: &converter.Interval{Days: 3, Hours: 23, Minutes: 59, Seconds: 1}}}
	assert.NoError(t, Validate(classify.DialectOracle, col, c, rule.IntervalNormal, ok))

	bad := converter.FormValue{GenParams: converter.FormParams{Interval: &converter.Interval{Hours: 24}}}
	var fe FieldErrors
	require.True(t, errors.As(Validate(classify.DialectOracle, col, c, rule.IntervalNormal, bad), &fe))
	assert.Contains(t, fe, "genParams.interval.hours")
}

func TestSummarize(t *testing.T) {
	day := time.Date(2024, 1, 2, 3, 4, 5, 0, shanghai)
	tests := []struct {
		name string
		c    rule.Category
		rule rule.Type
		v    converter.FormValue
		want string
	}{
		{"unknown rule", rule.CategoryNumber, "BOGUS", converter.FormValue{}, "-"},
		{"empty rule", rule.CategoryChar, "", converter.FormValue{}, "-"},
		{"null", rule.CategoryOther, rule.OtherNull, converter.FormValue{}, "NULL"},
		{"random number", rule.CategoryNumber, rule.NumberRandom, converter.FormValue{Range: []string{"0", "10"}}, "0 ~ 10"},
		{"fixed date", rule.CategoryDate, rule.DateNormal, converter.FormValue{GenParams: converter.FormParams{FixDate: &day}}, "2024-01-02 03:04:05"},
		{"regexp", rule.CategoryChar, rule.CharRegexpText, converter.FormValue{GenParams: converter.FormParams{RegText: "[a-z]{3}"}}, "/[a-z]{3}/"},
		{"interval", rule.CategoryIntervalYearToMonth, rule.IntervalNormal, converter.FormValue{GenParams: converter.FormParams{Interval: &converter.Interval{Years: 1, Months: 6}}}, "1 years 6 months"},
		{"missing fixed text", rule.CategoryChar, rule.CharNormalText, converter.FormValue{}, "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.c, tt.rule, tt.v))
		})
	}
}

func strPtr(s string) *string {
	return &s
}
