package preview

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lumos-Labs-HQ/datamock/internal/converter"
	"github.com/Lumos-Labs-HQ/datamock/internal/rule"
)

var shanghai = time.FixedZone("GMT+0800", 8*3600)

func newSampler(t *testing.T) *Sampler {
	s, err := New(42, converter.Options{Location: shanghai})
	require.NoError(t, err)
	return s
}

func server(name string, g rule.Generator, low, high interface{}, p *converter.GenParams) converter.ServerColumn {
	return converter.ServerColumn{
		ColumnName: name,
		TypeConfig: converter.TypeConfig{Generator: g, LowValue: low, HighValue: high, GenParams: p},
	}
}

func strPtr(s string) *string { return &s }

func TestStepNumbers(t *testing.T) {
	s := newSampler(t)

	values, ok, err := s.Column(server("id", rule.StepGenerator, "10", nil, &converter.GenParams{Step: "-2.5"}), 4)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []interface{}{"10", "7.5", "5", "2.5"}, values)
}

func TestStepNumbersFromJSON(t *testing.T) {
	s := newSampler(t)

	values, _, err := s.Column(server("id", rule.StepGenerator, json.Number("9007199254740993"), nil, &converter.GenParams{Step: "1"}), 2)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"9007199254740993", "9007199254740994"}, values)
}

func TestRandomDecimalWithinRange(t *testing.T) {
	s := newSampler(t)
	low, high := decimal.RequireFromString("0.5"), decimal.RequireFromString("2")

	values, _, err := s.Column(server("price", rule.RandomGenerator, "0.5", "2", nil), 200)
	require.NoError(t, err)
	for _, v := range values {
		d := decimal.RequireFromString(v.(string))
		assert.True(t, d.GreaterThanOrEqual(low) && d.LessThanOrEqual(high), "%s out of range", d)
		assert.GreaterOrEqual(t, d.Exponent(), int32(-1))
	}
}

func TestRandomDecimalBeyondInt64(t *testing.T) {
	s := newSampler(t)

	values, _, err := s.Column(server("big", rule.RandomGenerator, "18446744073709551610", "18446744073709551615", nil), 20)
	require.NoError(t, err)
	for _, v := range values {
		assert.True(t, strings.HasPrefix(v.(string), "1844674407370955161"))
	}
}

func TestRandomText(t *testing.T) {
	s := newSampler(t)
	tests := []struct {
		option rule.CaseOption
		check  func(string) bool
	}{
		{rule.AllLowerCase, func(v string) bool { return v == strings.ToLower(v) }},
		{rule.AllUpperCase, func(v string) bool { return v == strings.ToUpper(v) }},
		{rule.UpperAndLowerCase, func(string) bool { return true }},
	}
	for _, tt := range tests {
		t.Run(string(tt.option), func(t *testing.T) {
			values, _, err := s.Column(server("name", rule.RandomStringGenerator, int64(3), json.Number("12"), &converter.GenParams{CaseOption: tt.option}), 50)
			require.NoError(t, err)
			for _, v := range values {
				text := v.(string)
				assert.GreaterOrEqual(t, len([]rune(text)), 3)
				assert.LessOrEqual(t, len([]rune(text)), 12)
				assert.True(t, tt.check(text), text)
			}
		})
	}
}

func TestDates(t *testing.T) {
	s := newSampler(t)
	start := time.Date(2024, 1, 31, 9, 0, 0, 0, shanghai)

	values, _, err := s.Column(server("d", rule.StepDateGenerator, start.UnixMilli(), nil,
		&converter.GenParams{Step: "1", TimeUnit: rule.Months, Timezone: "GMT+0800"}), 3)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"2024-01-31 09:00:00", "2024-03-02 09:00:00", "2024-03-31 09:00:00"}, values)

	values, _, err = s.Column(server("d", rule.StepDateGenerator, strconv.FormatInt(start.UnixMilli(), 10), nil,
		&converter.GenParams{Step: "-2", TimeUnit: rule.Hours, Timezone: "GMT+0000"}), 2)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"2024-01-31 01:00:00", "2024-01-30 23:00:00"}, values)

	ts := start.UnixMilli()
	values, _, err = s.Column(server("d", rule.FixedDateGenerator, nil, nil, &converter.GenParams{Timestamp: &ts, Timezone: "GMT+0800"}), 1)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"2024-01-31 09:00:00"}, values)

	end := start.AddDate(0, 0, 1)
	values, _, err = s.Column(server("d", rule.RandomDateGenerator, start.UnixMilli(), end.UnixMilli(), &converter.GenParams{Timezone: "GMT+0800"}), 20)
	require.NoError(t, err)
	for _, v := range values {
		d, err := time.ParseInLocation(DateLayout, v.(string), shanghai)
		require.NoError(t, err)
		assert.False(t, d.Before(start.Truncate(time.Second)) || d.After(end))
	}
}

func TestFixedBoolNullAndSkip(t *testing.T) {
	s := newSampler(t)

	values, _, err := s.Column(server("flag", rule.BoolCharGenerator, nil, nil, &converter.GenParams{FixText: strPtr("false")}), 2)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"false", "false"}, values)

	values, _, err = s.Column(server("flag", rule.BoolCharGenerator, nil, nil, &converter.GenParams{}), 20)
	require.NoError(t, err)
	for _, v := range values {
		assert.Contains(t, []interface{}{"true", "false"}, v)
	}

	values, _, err = s.Column(server("span", rule.FixedGenerator, nil, nil, &converter.GenParams{FixText: strPtr("+01-06")}), 1)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"+01-06"}, values)

	values, ok, err := s.Column(server("n", rule.NullGenerator, nil, nil, nil), 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []interface{}{nil, nil}, values)

	_, ok, err = s.Column(server("n", rule.SkipGenerator, nil, nil, nil), 2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRowsLeaveOutSkipped(t *testing.T) {
	s := newSampler(t)
	cols := []converter.ServerColumn{
		server("id", rule.StepGenerator, "1", nil, &converter.GenParams{Step: "1"}),
		server("note", rule.SkipGenerator, nil, nil, nil),
		server("name", rule.FixedStringGenerator, nil, nil, &converter.GenParams{FixText: strPtr("x")}),
	}

	rows, err := s.Rows(cols, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, map[string]interface{}{"id": "2", "name": "x"}, rows[1])
}

func TestErrors(t *testing.T) {
	s := newSampler(t)

	_, _, err := s.Column(server("x", "UUID_GENERATOR", nil, nil, nil), 1)
	assert.True(t, errors.Is(err, ErrUnsupportedGenerator))

	_, _, err = s.Column(server("x", rule.RandomGenerator, "10", "1", nil), 1)
	assert.Error(t, err)

	_, _, err = s.Column(server("x", rule.StepGenerator, "abc", nil, &converter.GenParams{Step: "1"}), 1)
	assert.Error(t, err)
}

func TestRandomDateFullInt64Span(t *testing.T) {
	s := newSampler(t)
	low, high := int64(-9e18), int64(9e18)

	var values []interface{}
	var err error
	require.NotPanics(t, func() {
		values, _, err = s.Column(server("d", rule.RandomDateGenerator, low, high, &converter.GenParams{Timezone: "GMT+0000"}), 10)
	})
	require.NoError(t, err)
	assert.Len(t, values, 10)
}

func TestFractionalDateStepRejected(t *testing.T) {
	s := newSampler(t)
	_, _, err := s.Column(server("d", rule.StepDateGenerator, int64(0), nil,
		&converter.GenParams{Step: "0.5", TimeUnit: rule.Days, Timezone: "GMT+0000"}), 3)
	assert.ErrorContains(t, err, "whole number")
}

func TestRandomTextLengthCapped(t *testing.T) {
	s := newSampler(t)
	values, _, err := s.Column(server("body", rule.RandomStringGenerator, json.Number("1000000000000"), json.Number("1000000000000"), &converter.GenParams{}), 2)
	require.NoError(t, err)
	for _, v := range values {
		assert.Len(t, []rune(v.(string)), MaxTextLength)
	}
}

func TestRowsRejectsNonPositiveCount(t *testing.T) {
	s := newSampler(t)
	cols := []converter.ServerColumn{server("n", rule.NullGenerator, nil, nil, nil)}

	_, err := s.Rows(cols, -1)
	assert.Error(t, err)
	_, err = s.Rows(cols, 0)
	assert.Error(t, err)
}
