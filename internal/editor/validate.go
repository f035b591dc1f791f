package editor

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/Lumos-Labs-HQ/datamock/internal/classify"
	"github.com/Lumos-Labs-HQ/datamock/internal/converter"
	"github.com/Lumos-Labs-HQ/datamock/internal/rule"
	"github.com/Lumos-Labs-HQ/datamock/internal/types"
)

// FieldErrors maps a form field path (e.g. "genParams.step") to the reason it
// was rejected.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "invalid value: " + strings.Join(parts, "; ")
}

func (e FieldErrors) add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Inputs checked per layout. The json names double as field paths.
type (
	fixedNumberInput struct {
		FixNum string `json:"genParams.fixNum" validate:"required,numeric"`
	}
	orderNumberInput struct {
		LowValue string     `json:"lowValue" validate:"required,numeric"`
		Step     string     `json:"genParams.step" validate:"required,numeric"`
		Order    rule.Order `json:"order" validate:"required,oneof=asc desc"`
	}
	rangeInput struct {
		Low  string `json:"range.low" validate:"required,numeric"`
		High string `json:"range.high" validate:"required,numeric"`
	}
	lengthRangeInput struct {
		Low        string          `json:"range.low" validate:"required,number"`
		High       string          `json:"range.high" validate:"required,number"`
		CaseOption rule.CaseOption `json:"genParams.caseOption" validate:"required,oneof=ALL_LOWER_CASE ALL_UPPER_CASE UPPER_AND_LOWER_CASE"`
	}
	fixedDateInput struct {
		FixDate *time.Time `json:"genParams.fixDate" validate:"required"`
	}
	orderDateInput struct {
		LowDate  *time.Time    `json:"lowDate" validate:"required"`
		Step     string        `json:"genParams.step" validate:"required,number"`
		TimeUnit rule.TimeUnit `json:"genParams.timeUnit" validate:"required,oneof=YEARS MONTHS DAYS HOURS MINUTES SECONDS"`
		Order    rule.Order    `json:"order" validate:"required,oneof=asc desc"`
	}
	dateRangeInput struct {
		DateRange []time.Time `json:"dateRange" validate:"len=2"`
	}
	fixedTextInput struct {
		FixText string `json:"genParams.fixText" validate:"required"`
	}
	regexpInput struct {
		RegText string `json:"genParams.regText" validate:"required"`
	}
	boolInput struct {
		FixText string `json:"genParams.fixText" validate:"required,oneof=true false"`
	}
	intervalInput struct {
		Years   int64 `json:"genParams.interval.years" validate:"gte=0"`
		Months  int64 `json:"genParams.interval.months" validate:"gte=0,lte=11"`
		Days    int64 `json:"genParams.interval.days" validate:"gte=0"`
		Hours   int64 `json:"genParams.interval.hours" validate:"gte=0,lte=23"`
		Minutes int64 `json:"genParams.interval.minutes" validate:"gte=0,lte=59"`
		Seconds int64 `json:"genParams.interval.seconds" validate:"gte=0,lte=59"`
		Nanos   int64 `json:"genParams.interval.nanos" validate:"gte=0,lte=999999999"`
	}
)

// Validate checks v against the inputs rule t needs on col. It returns
// FieldErrors when a field is missing or out of bounds.
func Validate(d classify.Dialect, col types.Column, c rule.Category, t rule.Type, v converter.FormValue) error {
	if !rule.Valid(c, t) {
		return fmt.Errorf("%w: %s is not a %s rule", converter.ErrUnknownRule, t, c)
	}
	size := sizeFor(d, col, c, t)
	errs := FieldErrors{}
	p := v.GenParams

	switch converter.ShapeOf(c, t) {
	case converter.ShapeFixedNumber:
		if check(errs, fixedNumberInput{FixNum: p.FixNum}) {
			withinMax(errs, "genParams.fixNum", p.FixNum, size.Max)
		}
	case converter.ShapeOrderNumber:
		if check(errs, orderNumberInput{LowValue: v.LowValue, Step: p.Step, Order: v.Order}) {
			positive(errs, "genParams.step", p.Step)
			withinMax(errs, "lowValue", v.LowValue, size.Max)
		}
	case converter.ShapeRandomNumber:
		low, high := bounds(v.Range)
		if check(errs, rangeInput{Low: low, High: high}) {
			ordered(errs, low, high)
			withinMax(errs, "range.low", low, size.Max)
			withinMax(errs, "range.high", high, size.Max)
		}
	case converter.ShapeFixedDate:
		check(errs, fixedDateInput{FixDate: p.FixDate})
	case converter.ShapeOrderDate:
		if check(errs, orderDateInput{LowDate: v.LowDate, Step: p.Step, TimeUnit: p.TimeUnit, Order: v.Order}) {
			positive(errs, "genParams.step", p.Step)
		}
	case converter.ShapeRandomDate:
		if check(errs, dateRangeInput{DateRange: v.DateRange}) && v.DateRange[1].Before(v.DateRange[0]) {
			errs.add("dateRange", "start must not be after end")
		}
	case converter.ShapeFixedText:
		if check(errs, fixedTextInput{FixText: deref(p.FixText)}) && size.MaxLength > 0 &&
			int64(len([]rune(*p.FixText))) > size.MaxLength {
			errs.add("genParams.fixText", fmt.Sprintf("longer than the column length %d", size.MaxLength))
		}
	case converter.ShapeRandomText:
		low, high := bounds(v.Range)
		if check(errs, lengthRangeInput{Low: low, High: high, CaseOption: p.CaseOption}) {
			ordered(errs, low, high)
			if size.MaxLength > 0 {
				limit := decimal.NewFromInt(size.MaxLength)
				withinMax(errs, "range.high", high, &limit)
			}
		}
	case converter.ShapeRegexpText:
		if check(errs, regexpInput{RegText: p.RegText}) {
			if _, err := regexp.Compile(p.RegText); err != nil {
				errs.add("genParams.regText", err.Error())
			}
		}
	case converter.ShapeBool:
		check(errs, boolInput{FixText: deref(p.FixText)})
	case converter.ShapeInterval:
		if p.Interval == nil {
			errs.add("genParams.interval", "required")
			break
		}
		iv := p.Interval
		in := intervalInput{Years: iv.Years, Months: iv.Months, Nanos: iv.Nanos}
		if c == rule.CategoryIntervalDayToSecond {
			in = intervalInput{Days: iv.Days, Hours: iv.Hours, Minutes: iv.Minutes, Seconds: iv.Seconds, Nanos: iv.Nanos}
		}
		check(errs, in)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// check runs the struct tags of in and records every failure. It reports
// whether in passed.
func check(errs FieldErrors, in interface{}) bool {
	err := validate.Struct(in)
	if err == nil {
		return true
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs.add("value", err.Error())
		return false
	}
	for _, fe := range verrs {
		errs.add(fe.Field(), message(fe))
	}
	return false
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "numeric":
		return "must be a decimal number"
	case "number":
		return "must be a non-negative integer"
	case "oneof":
		return "must be one of " + fe.Param()
	case "len":
		return "needs exactly " + fe.Param() + " values"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	}
	return "failed " + fe.Tag()
}

func bounds(r []string) (string, string) {
	if len(r) != 2 {
		return "", ""
	}
	return strings.TrimSpace(r[0]), strings.TrimSpace(r[1])
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ordered(errs FieldErrors, low, high string) {
	l, err1 := decimal.NewFromString(low)
	h, err2 := decimal.NewFromString(high)
	if err1 == nil && err2 == nil && l.GreaterThan(h) {
		errs.add("range", "low must not exceed high")
	}
}

func positive(errs FieldErrors, field, s string) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err == nil && !d.IsPositive() {
		errs.add(field, "must be greater than 0")
	}
}

func withinMax(errs FieldErrors, field, s string, limit *decimal.Decimal) {
	if limit == nil {
		return
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err == nil && d.Abs().GreaterThan(*limit) {
		errs.add(field, "exceeds the column maximum "+limit.String())
	}
}

// sizeFor is the column size, with text columns holding numbers bounded by
// their length.
func sizeFor(d classify.Dialect, col types.Column, c rule.Category, t rule.Type) converter.Size {
	size := converter.SizeOf(d, col.ColumnType, col.ColumnObj)
	if c == rule.CategoryChar {
		size = converter.TextNumberSize(size, t)
	}
	return size
}
