package editor

import (
	"fmt"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/datamock/internal/converter"
	"github.com/Lumos-Labs-HQ/datamock/internal/rule"
)

const (
	noSummary  = "-"
	dateLayout = "2006-01-02 15:04:05"
)

// Summarize renders the read-only form of a rule value, e.g. "1 ~ 100" or
// "from 1, step 2 desc". Rules without a layout and unknown rules render "-".
func Summarize(c rule.Category, t rule.Type, v converter.FormValue) string {
	if !rule.Valid(c, t) {
		return noSummary
	}
	if rule.IsNullOrSkip(t) {
		return string(t)
	}
	p := v.GenParams
	switch converter.ShapeOf(c, t) {
	case converter.ShapeFixedNumber:
		return orDash(p.FixNum)
	case converter.ShapeOrderNumber:
		return fmt.Sprintf("from %s, step %s %s", orDash(v.LowValue), orDash(p.Step), v.Order)
	case converter.ShapeRandomNumber:
		low, high := bounds(v.Range)
		return fmt.Sprintf("%s ~ %s", orDash(low), orDash(high))
	case converter.ShapeFixedDate:
		return formatDate(p.FixDate)
	case converter.ShapeOrderDate:
		return fmt.Sprintf("from %s, step %s %s %s", formatDate(v.LowDate), orDash(p.Step), strings.ToLower(string(p.TimeUnit)), v.Order)
	case converter.ShapeRandomDate:
		if len(v.DateRange) != 2 {
			return noSummary
		}
		return fmt.Sprintf("%s ~ %s", formatDate(&v.DateRange[0]), formatDate(&v.DateRange[1]))
	case converter.ShapeFixedText, converter.ShapeBool:
		if p.FixText == nil {
			return noSummary
		}
		return fmt.Sprintf("%q", *p.FixText)
	case converter.ShapeRandomText:
		low, high := bounds(v.Range)
		return fmt.Sprintf("length %s ~ %s, %s", orDash(low), orDash(high), strings.ToLower(string(p.CaseOption)))
	case converter.ShapeRegexpText:
		return "/" + p.RegText + "/"
	case converter.ShapeRandomBool:
		return "true | false"
	case converter.ShapeInterval:
		return formatInterval(c, p.Interval)
	}
	return noSummary
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return noSummary
	}
	return s
}

func formatDate(t *time.Time) string {
	if t == nil {
		return noSummary
	}
	return t.Format(dateLayout)
}

func formatInterval(c rule.Category, iv *converter.Interval) string {
	if iv == nil {
		return noSummary
	}
	sign := ""
	if iv.Negative {
		sign = "-"
	}
	if c == rule.CategoryIntervalYearToMonth {
		return fmt.Sprintf("%s%d years %d months", sign, iv.Years, iv.Months)
	}
	return fmt.Sprintf("%s%d days %02d:%02d:%02d", sign, iv.Days, iv.Hours, iv.Minutes, iv.Seconds)
}
