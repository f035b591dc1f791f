package converter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Lumos-Labs-HQ/datamock/internal/rule"
)

// intervalConverter stores fixed intervals as Oracle interval literals:
// "+YY-MM" for year to month and "+DD HH:MI:SS[.fffffffff]" for day to second.
type intervalConverter struct {
	base
}

func newInterval(c rule.Category, opts Options) *intervalConverter {
	return &intervalConverter{base{
		category: c,
		opts:     opts,
		shapes:   shapeTable[c],
	}}
}

var (
	yearToMonth = regexp.MustCompile(`^([+-])?(\d+)-(\d+)$`)
	dayToSecond = regexp.MustCompile(`^([+-])?(\d+) (\d+):(\d+):(\d+)(?:\.(\d{1,9}))?$`)
)

func (c *intervalConverter) ToServer(col FormColumn) (ServerColumn, error) {
	sc, err := c.toServer(col)
	if err != nil {
		return sc, err
	}
	t, _, _ := c.resolve(col.Rule)
	if c.shapes[t] != ShapeInterval {
		return sc, nil
	}
	iv := col.TypeConfig.GenParams.Interval
	if iv == nil {
		iv = &Interval{}
	}
	literal, err := c.format(*iv)
	if err != nil {
		return sc, fmt.Errorf("column %s: %w", col.ColumnName, err)
	}
	sc.TypeConfig.GenParams = &GenParams{FixText: stringPtr(literal)}
	return sc, nil
}

func (c *intervalConverter) ToForm(sc ServerColumn) (FormColumn, error) {
	t, _ := rule.RuleOf(c.category, sc.TypeConfig.Generator)
	fc, err := c.toForm(sc, t)
	if err != nil || c.shapes[t] != ShapeInterval {
		return fc, err
	}
	p := sc.TypeConfig.GenParams
	if p == nil || p.FixText == nil {
		return fc, nil
	}
	iv, err := c.parse(*p.FixText)
	if err != nil {
		return FormColumn{}, fmt.Errorf("column %s: %w", sc.ColumnName, err)
	}
	fc.TypeConfig.GenParams.Interval = &iv
	return fc, nil
}

// format renders iv as a literal. The sign lives in Negative only, so
// negative components are rejected.
func (c *intervalConverter) format(iv Interval) (string, error) {
	for _, v := range []int64{iv.Years, iv.Months, iv.Days, iv.Hours, iv.Minutes, iv.Seconds, iv.Nanos} {
		if v < 0 {
			return "", fmt.Errorf("interval components must not be negative, use the sign instead")
		}
	}
	sign := "+"
	if iv.Negative {
		sign = "-"
	}
	if c.category == rule.CategoryIntervalYearToMonth {
		return fmt.Sprintf("%s%02d-%02d", sign, iv.Years, iv.Months), nil
	}
	s := fmt.Sprintf("%s%02d %02d:%02d:%02d", sign, iv.Days, iv.Hours, iv.Minutes, iv.Seconds)
	if iv.Nanos > 0 {
		s += "." + strings.TrimRight(fmt.Sprintf("%09d", iv.Nanos), "0")
	}
	return s, nil
}

func (c *intervalConverter) parse(literal string) (Interval, error) {
	literal = strings.TrimSpace(literal)
	var iv Interval
	if c.category == rule.CategoryIntervalYearToMonth {
		m := yearToMonth.FindStringSubmatch(literal)
		if m == nil {
			return iv, fmt.Errorf("invalid year to month interval %q", literal)
		}
		iv.Negative = m[1] == "-"
		err := parseFields(literal, []string{m[2], m[3]}, &iv.Years, &iv.Months)
		return iv, err
	}
	m := dayToSecond.FindStringSubmatch(literal)
	if m == nil {
		return iv, fmt.Errorf("invalid day to second interval %q", literal)
	}
	iv.Negative = m[1] == "-"
	nanos := "0"
	if m[6] != "" {
		nanos = m[6] + strings.Repeat("0", 9-len(m[6]))
	}
	err := parseFields(literal, []string{m[2], m[3], m[4], m[5], nanos},
		&iv.Days, &iv.Hours, &iv.Minutes, &iv.Seconds, &iv.Nanos)
	return iv, err
}

func parseFields(literal string, fields []string, dst ...*int64) error {
	for i, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid interval %q: %w", literal, err)
		}
		*dst[i] = v
	}
	return nil
}
