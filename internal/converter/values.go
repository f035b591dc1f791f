package converter

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"github.com/Lumos-Labs-HQ/datamock/internal/rule"
)

// Options carries the session context converters need for dates.
type Options struct {
	// Location is the session time zone. Defaults to time.Local.
	Location *time.Location
	// Now is the clock. Defaults to time.Now.
	Now func() time.Time
}

func (o Options) location() *time.Location {
	if o.Location != nil {
		return o.Location
	}
	return time.Local
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now().In(o.location())
	}
	return time.Now().In(o.location())
}

func (o Options) today() time.Time {
	n := o.now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, o.location())
}

var gmtOffset = regexp.MustCompile(`GMT[+-]\d+`)

// timezoneOf extracts the GMT offset of t the way it is printed in a long date
// string, e.g. "GMT+0800".
func timezoneOf(t time.Time) string {
	return gmtOffset.FindString(t.Format("Mon Jan 02 2006 15:04:05 GMT-0700"))
}

// zoneFor returns the offset of t, or of the current instant in the session
// location when no date is at hand.
func (o Options) zoneFor(t *time.Time) string {
	if t != nil {
		return timezoneOf(*t)
	}
	return timezoneOf(o.now())
}

var gmtParts = regexp.MustCompile(`^GMT([+-])(\d{2})(\d{2})?$`)

// LocationFor turns a stored "GMT+0800" offset back into a fixed zone. Missing
// or malformed offsets fall back to the session location.
func (o Options) LocationFor(tz string) *time.Location {
	m := gmtParts.FindStringSubmatch(tz)
	if m == nil {
		return o.location()
	}
	hours, _ := strconv.Atoi(m[2])
	minutes := 0
	if m[3] != "" {
		minutes, _ = strconv.Atoi(m[3])
	}
	offset := hours*3600 + minutes*60
	if m[1] == "-" {
		offset = -offset
	}
	return time.FixedZone(tz, offset)
}

// encodeStep folds the order into the sign of the step: ascending keeps the
// magnitude, descending negates it.
func encodeStep(step string, order rule.Order) (string, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(step))
	if err != nil {
		return "", fmt.Errorf("invalid step %q: %w", step, err)
	}
	d = d.Abs()
	if order == rule.OrderDesc {
		d = d.Neg()
	}
	return d.String(), nil
}

// decodeStep splits a signed step into its magnitude and order.
func decodeStep(step string) (string, rule.Order, error) {
	if strings.TrimSpace(step) == "" {
		return "", rule.OrderAsc, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(step))
	if err != nil {
		return "", "", fmt.Errorf("invalid step %q: %w", step, err)
	}
	if d.Sign() < 0 {
		return d.Abs().String(), rule.OrderDesc, nil
	}
	return d.String(), rule.OrderAsc, nil
}

func millis(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

func fromMillis(ms int64, loc *time.Location) time.Time {
	return time.UnixMilli(ms).In(loc)
}

// ValueString coerces a loosely typed server value (string, json.Number,
// float64, int64) into its textual form.
func ValueString(v interface{}) (string, error) {
	if v == nil {
		return "", nil
	}
	switch n := v.(type) {
	case json.Number:
		return n.String(), nil
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64), nil
	}
	return cast.ToStringE(v)
}

// ValueInt64 coerces a loosely typed server value into an integer, nil when
// the value is absent.
func ValueInt64(v interface{}) (*int64, error) {
	if v == nil {
		return nil, nil
	}
	if n, ok := v.(json.Number); ok {
		v = n.String()
	}
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q: %w", s, err)
		}
		return &n, nil
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func parseLength(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid length %q: %w", s, err)
	}
	return n, nil
}

func rangeBounds(r []string) (string, string, error) {
	if len(r) != 2 {
		return "", "", fmt.Errorf("range needs exactly two bounds, got %d", len(r))
	}
	return strings.TrimSpace(r[0]), strings.TrimSpace(r[1]), nil
}
