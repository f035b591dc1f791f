package converter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Lumos-Labs-HQ/datamock/internal/rule"
)

// Shape is the layout of form and server values a rule works with. Several
// categories share shapes, e.g. a CHAR column ordered as numbers uses the same
// layout as a NUMBER column ordered.
type Shape int

const (
	ShapeNone Shape = iota
	ShapeFixedNumber
	ShapeOrderNumber
	ShapeRandomNumber
	ShapeFixedDate
	ShapeOrderDate
	ShapeRandomDate
	ShapeFixedText
	ShapeRandomText
	ShapeRegexpText
	ShapeBool
	ShapeRandomBool
	ShapeInterval
)

var shapeTable = map[rule.Category]map[rule.Type]Shape{
	rule.CategoryNumber: {
		rule.NumberNormal: ShapeFixedNumber,
		rule.NumberOrder:  ShapeOrderNumber,
		rule.NumberRandom: ShapeRandomNumber,
	},
	rule.CategoryChar: {
		rule.CharNormalText:   ShapeFixedText,
		rule.CharRandomText:   ShapeRandomText,
		rule.CharRegexpText:   ShapeRegexpText,
		rule.CharBool:         ShapeBool,
		rule.CharRandomBool:   ShapeRandomBool,
		rule.CharNormalDate:   ShapeFixedDate,
		rule.CharOrderDate:    ShapeOrderDate,
		rule.CharRandomDate:   ShapeRandomDate,
		rule.CharNormalNumber: ShapeFixedNumber,
		rule.CharOrderNumber:  ShapeOrderNumber,
		rule.CharRandomNumber: ShapeRandomNumber,
	},
	rule.CategoryDate: {
		rule.DateNormal: ShapeFixedDate,
		rule.DateOrder:  ShapeOrderDate,
		rule.DateRandom: ShapeRandomDate,
	},
	rule.CategoryIntervalYearToMonth: {
		rule.IntervalNormal: ShapeInterval,
	},
	rule.CategoryIntervalDayToSecond: {
		rule.IntervalNormal: ShapeInterval,
	},
	rule.CategoryOther: {},
}

// ShapeOf returns the value layout of rule t in category c. Null, skip and
// unknown rules have ShapeNone.
func ShapeOf(c rule.Category, t rule.Type) Shape {
	return shapeTable[c][t]
}

var (
	rangeDateLow  = [3]int{1980, 1, 1}
	rangeDateHigh = [3]int{2060, 1, 1}
)

// base carries the parts every category converter shares.
type base struct {
	category rule.Category
	shapes   map[rule.Type]Shape
	opts     Options
}

func (b *base) Category() rule.Category {
	return b.category
}

func (b *base) resolve(t rule.Type) (rule.Type, rule.Generator, error) {
	if t == "" {
		t = rule.DefaultRule(b.category)
	}
	g, ok := rule.GeneratorOf(b.category, t)
	if !ok {
		return "", "", fmt.Errorf("%w: %s is not a %s rule", ErrUnknownRule, t, b.category)
	}
	return t, g, nil
}

func (b *base) toServer(col FormColumn) (ServerColumn, error) {
	t, g, err := b.resolve(col.Rule)
	if err != nil {
		return ServerColumn{}, err
	}
	sc := ServerColumn{
		ColumnName: col.ColumnName,
		TypeConfig: TypeConfig{ColumnType: col.ColumnType, Generator: g},
	}
	if err := b.encode(b.shapes[t], col.TypeConfig, &sc.TypeConfig); err != nil {
		return ServerColumn{}, fmt.Errorf("column %s: %w", col.ColumnName, err)
	}
	return sc, nil
}

func (b *base) toForm(sc ServerColumn, t rule.Type) (FormColumn, error) {
	fc := FormColumn{Rule: t}
	fc.ColumnName = sc.ColumnName
	fc.ColumnType = sc.TypeConfig.ColumnType
	if t == "" {
		return fc, nil
	}
	if err := b.decode(b.shapes[t], sc.TypeConfig, &fc.TypeConfig); err != nil {
		return FormColumn{}, fmt.Errorf("column %s: %w", sc.ColumnName, err)
	}
	return fc, nil
}

func (b *base) encode(s Shape, v FormValue, tc *TypeConfig) error {
	p := v.GenParams
	switch s {
	case ShapeFixedNumber:
		tc.GenParams = &GenParams{FixNum: strings.TrimSpace(p.FixNum)}
	case ShapeOrderNumber:
		step, err := encodeStep(p.Step, v.Order)
		if err != nil {
			return err
		}
		tc.LowValue = strings.TrimSpace(v.LowValue)
		tc.GenParams = &GenParams{Step: step}
	case ShapeRandomNumber:
		low, high, err := rangeBounds(v.Range)
		if err != nil {
			return err
		}
		tc.LowValue, tc.HighValue = low, high
	case ShapeFixedDate:
		tc.GenParams = &GenParams{
			Timestamp: millis(p.FixDate),
			Timezone:  b.opts.zoneFor(p.FixDate),
		}
	case ShapeOrderDate:
		step, err := encodeStep(p.Step, v.Order)
		if err != nil {
			return err
		}
		if !decimal.RequireFromString(step).IsInteger() {
			return fmt.Errorf("date step %q is not a whole number of %s", p.Step, strings.ToLower(string(p.TimeUnit)))
		}
		if ms := millis(v.LowDate); ms != nil {
			tc.LowValue = *ms
		}
		tc.GenParams = &GenParams{
			Step:     step,
			TimeUnit: p.TimeUnit,
			Timezone: b.opts.zoneFor(v.LowDate),
		}
	case ShapeRandomDate:
		if len(v.DateRange) != 2 {
			return fmt.Errorf("date range needs exactly two bounds, got %d", len(v.DateRange))
		}
		tc.LowValue = v.DateRange[0].UnixMilli()
		tc.HighValue = v.DateRange[1].UnixMilli()
		tc.GenParams = &GenParams{Timezone: b.opts.zoneFor(&v.DateRange[0])}
	case ShapeFixedText, ShapeBool:
		tc.GenParams = &GenParams{FixText: copyString(p.FixText)}
	case ShapeRandomText:
		low, high, err := rangeBounds(v.Range)
		if err != nil {
			return err
		}
		lo, err := parseLength(low)
		if err != nil {
			return err
		}
		hi, err := parseLength(high)
		if err != nil {
			return err
		}
		tc.LowValue, tc.HighValue = lo, hi
		tc.GenParams = &GenParams{CaseOption: p.CaseOption}
	case ShapeRegexpText:
		tc.GenParams = &GenParams{RegText: p.RegText}
	case ShapeRandomBool:
		tc.GenParams = &GenParams{}
	}
	return nil
}

func (b *base) decode(s Shape, tc TypeConfig, v *FormValue) error {
	p := tc.GenParams
	if p == nil {
		p = &GenParams{}
	}
	switch s {
	case ShapeFixedNumber:
		v.GenParams.FixNum = p.FixNum
	case ShapeOrderNumber:
		low, err := ValueString(tc.LowValue)
		if err != nil {
			return err
		}
		step, order, err := decodeStep(p.Step)
		if err != nil {
			return err
		}
		v.LowValue, v.GenParams.Step, v.Order = low, step, order
	case ShapeRandomNumber:
		low, err := ValueString(tc.LowValue)
		if err != nil {
			return err
		}
		high, err := ValueString(tc.HighValue)
		if err != nil {
			return err
		}
		v.Range = []string{low, high}
	case ShapeFixedDate:
		if p.Timestamp != nil {
			t := fromMillis(*p.Timestamp, b.opts.LocationFor(p.Timezone))
			v.GenParams.FixDate = &t
		}
	case ShapeOrderDate:
		low, err := ValueInt64(tc.LowValue)
		if err != nil {
			return err
		}
		if low != nil {
			t := fromMillis(*low, b.opts.LocationFor(p.Timezone))
			v.LowDate = &t
		}
		step, order, err := decodeStep(p.Step)
		if err != nil {
			return err
		}
		v.GenParams.Step, v.GenParams.TimeUnit, v.Order = step, p.TimeUnit, order
	case ShapeRandomDate:
		low, err := ValueInt64(tc.LowValue)
		if err != nil {
			return err
		}
		high, err := ValueInt64(tc.HighValue)
		if err != nil {
			return err
		}
		if low != nil && high != nil {
			loc := b.opts.LocationFor(p.Timezone)
			v.DateRange = []time.Time{fromMillis(*low, loc), fromMillis(*high, loc)}
		}
	case ShapeFixedText, ShapeBool:
		v.GenParams.FixText = copyString(p.FixText)
	case ShapeRandomText:
		low, err := ValueInt64(tc.LowValue)
		if err != nil {
			return err
		}
		high, err := ValueInt64(tc.HighValue)
		if err != nil {
			return err
		}
		if low != nil && high != nil {
			v.Range = []string{strconv.FormatInt(*low, 10), strconv.FormatInt(*high, 10)}
		}
		v.GenParams.CaseOption = p.CaseOption
	case ShapeRegexpText:
		v.GenParams.RegText = p.RegText
	}
	return nil
}

// defaultFor builds the initial form value of shape s.
func (b *base) defaultFor(s Shape, size Size) FormValue {
	var v FormValue
	switch s {
	case ShapeFixedNumber:
		v.GenParams.FixNum = "0"
	case ShapeOrderNumber:
		v.LowValue = "1"
		v.GenParams.Step = "1"
		v.Order = rule.OrderAsc
	case ShapeRandomNumber:
		high := capDecimal(decimal.NewFromInt(defaultNumberHigh), size.Max)
		v.Range = []string{"0", high.String()}
	case ShapeFixedDate:
		today := b.opts.today()
		v.GenParams.FixDate = &today
	case ShapeOrderDate:
		today := b.opts.today()
		v.LowDate = &today
		v.GenParams.Step = "1"
		v.GenParams.TimeUnit = rule.Days
		v.Order = rule.OrderAsc
	case ShapeRandomDate:
		loc := b.opts.location()
		v.DateRange = []time.Time{
			time.Date(rangeDateLow[0], time.Month(rangeDateLow[1]), rangeDateLow[2], 0, 0, 0, 0, loc),
			time.Date(rangeDateHigh[0], time.Month(rangeDateHigh[1]), rangeDateHigh[2], 0, 0, 0, 0, loc),
		}
	case ShapeFixedText:
		v.GenParams.FixText = stringPtr("")
	case ShapeRandomText:
		high := capLength(defaultTextLength, size.MaxLength)
		v.Range = []string{"1", strconv.FormatInt(high, 10)}
		v.GenParams.CaseOption = rule.AllLowerCase
	case ShapeRegexpText:
		v.GenParams.RegText = ""
	case ShapeBool:
		v.GenParams.FixText = stringPtr("true")
	case ShapeInterval:
		v.GenParams.Interval = &Interval{}
	}
	return v
}

func (b *base) emptyFor(s Shape, v FormValue) bool {
	p := v.GenParams
	switch s {
	case ShapeFixedNumber:
		return strings.TrimSpace(p.FixNum) == ""
	case ShapeOrderNumber:
		return strings.TrimSpace(v.LowValue) == "" || strings.TrimSpace(p.Step) == ""
	case ShapeRandomNumber, ShapeRandomText:
		return len(v.Range) != 2 || strings.TrimSpace(v.Range[0]) == "" || strings.TrimSpace(v.Range[1]) == ""
	case ShapeFixedDate:
		return p.FixDate == nil
	case ShapeOrderDate:
		return v.LowDate == nil || strings.TrimSpace(p.Step) == "" || p.TimeUnit == ""
	case ShapeRandomDate:
		return len(v.DateRange) != 2
	case ShapeFixedText:
		return p.FixText == nil || *p.FixText == ""
	case ShapeBool:
		return p.FixText == nil
	case ShapeRegexpText:
		return p.RegText == ""
	case ShapeInterval:
		return p.Interval == nil
	}
	return false
}

func (b *base) DefaultValue(t rule.Type, size Size) FormValue {
	return b.defaultFor(b.shapes[t], size)
}

func (b *base) IsEmpty(t rule.Type, v FormValue) bool {
	return b.emptyFor(b.shapes[t], v)
}
