package preview

import (
	"errors"
	"fmt"
	"math/big"
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/manveru/faker"
	"github.com/shopspring/decimal"

	"github.com/Lumos-Labs-HQ/datamock/internal/converter"
	"github.com/Lumos-Labs-HQ/datamock/internal/rule"
)

const DateLayout = "2006-01-02 15:04:05"

// MaxTextLength caps generated text. Column lengths can reach billions.
const MaxTextLength = 4096

var ErrUnsupportedGenerator = errors.New("unsupported generator")

// Sampler materialises sample values from server generator configs. Values are
// strings, or nil for NULL. It is not safe for concurrent use.
type Sampler struct {
	rand *rand.Rand
	fake *faker.Faker
	opts converter.Options
}

// New builds a sampler. A zero seed picks one from the clock.
func New(seed int64, opts converter.Options) (*Sampler, error) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	fake, err := faker.New("en")
	if err != nil {
		return nil, fmt.Errorf("failed to load word list: %w", err)
	}
	r := rand.New(rand.NewSource(seed))
	fake.Rand = r
	return &Sampler{rand: r, fake: fake, opts: opts}, nil
}

// Column returns n values for col. The second result is false for skipped
// columns, which produce no values at all.
func (s *Sampler) Column(col converter.ServerColumn, n int) ([]interface{}, bool, error) {
	tc := col.TypeConfig
	if tc.Generator == rule.SkipGenerator {
		return nil, false, nil
	}
	p := tc.GenParams
	if p == nil {
		p = &converter.GenParams{}
	}

	values := make([]interface{}, 0, n)
	add := func(v string) { values = append(values, v) }

	switch tc.Generator {
	case rule.NullGenerator:
		for i := 0; i < n; i++ {
			values = append(values, nil)
		}
	case rule.FixedGenerator:
		v := p.FixNum
		if v == "" && p.FixText != nil {
			v = *p.FixText
		}
		for i := 0; i < n; i++ {
			add(v)
		}
	case rule.FixedStringGenerator:
		for i := 0; i < n; i++ {
			add(deref(p.FixText))
		}
	case rule.StepGenerator:
		seq, err := s.steps(tc.LowValue, p.Step, n)
		if err != nil {
			return nil, true, fmt.Errorf("column %s: %w", col.ColumnName, err)
		}
		for _, v := range seq {
			add(v)
		}
	case rule.RandomGenerator:
		low, high, err := decimalRange(tc.LowValue, tc.HighValue)
		if err != nil {
			return nil, true, fmt.Errorf("column %s: %w", col.ColumnName, err)
		}
		for i := 0; i < n; i++ {
			add(s.randomDecimal(low, high).String())
		}
	case rule.RandomStringGenerator:
		low, high, err := lengthRange(tc.LowValue, tc.HighValue)
		if err != nil {
			return nil, true, fmt.Errorf("column %s: %w", col.ColumnName, err)
		}
		for i := 0; i < n; i++ {
			add(s.randomText(low, high, p.CaseOption))
		}
	case rule.RegexpStringGenerator:
		for i := 0; i < n; i++ {
			add(p.RegText)
		}
	case rule.BoolCharGenerator:
		for i := 0; i < n; i++ {
			if p.FixText != nil {
				add(*p.FixText)
			} else {
				add(fmt.Sprint(s.rand.Intn(2) == 1))
			}
		}
	case rule.FixedDateGenerator:
		if p.Timestamp == nil {
			return nil, true, fmt.Errorf("column %s: fixed date has no timestamp", col.ColumnName)
		}
		v := s.date(*p.Timestamp, p.Timezone)
		for i := 0; i < n; i++ {
			add(v.Format(DateLayout))
		}
	case rule.StepDateGenerator:
		seq, err := s.dateSteps(tc.LowValue, p, n)
		if err != nil {
			return nil, true, fmt.Errorf("column %s: %w", col.ColumnName, err)
		}
		for _, v := range seq {
			add(v.Format(DateLayout))
		}
	case rule.RandomDateGenerator:
		low, err := converter.ValueInt64(tc.LowValue)
		if err != nil {
			return nil, true, fmt.Errorf("column %s: %w", col.ColumnName, err)
		}
		high, err := converter.ValueInt64(tc.HighValue)
		if err != nil {
			return nil, true, fmt.Errorf("column %s: %w", col.ColumnName, err)
		}
		if low == nil || high == nil || *low > *high {
			return nil, true, fmt.Errorf("column %s: invalid date range", col.ColumnName)
		}
		lo := big.NewInt(*low)
		span := new(big.Int).Sub(big.NewInt(*high), lo)
		span.Add(span, big.NewInt(1))
		for i := 0; i < n; i++ {
			ms := new(big.Int).Rand(s.rand, span)
			add(s.date(ms.Add(ms, lo).Int64(), p.Timezone).Format(DateLayout))
		}
	default:
		return nil, true, fmt.Errorf("%w: %s", ErrUnsupportedGenerator, tc.Generator)
	}
	return values, true, nil
}

// Rows samples every column n times and lays the values out row by row.
// Skipped columns are left out of the rows.
func (s *Sampler) Rows(cols []converter.ServerColumn, n int) ([]map[string]interface{}, error) {
	if n <= 0 {
		return nil, fmt.Errorf("row count must be positive, got %d", n)
	}
	rows := make([]map[string]interface{}, n)
	for i := range rows {
		rows[i] = make(map[string]interface{}, len(cols))
	}
	for _, col := range cols {
		values, ok, err := s.Column(col, n)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		for i, v := range values {
			rows[i][col.ColumnName] = v
		}
	}
	return rows, nil
}

func (s *Sampler) steps(lowValue interface{}, step string, n int) ([]string, error) {
	lowStr, err := converter.ValueString(lowValue)
	if err != nil {
		return nil, err
	}
	low, err := decimal.NewFromString(strings.TrimSpace(lowStr))
	if err != nil {
		return nil, fmt.Errorf("invalid start %q: %w", lowStr, err)
	}
	inc, err := decimal.NewFromString(strings.TrimSpace(step))
	if err != nil {
		return nil, fmt.Errorf("invalid step %q: %w", step, err)
	}
	out := make([]string, n)
	for i := range out {
		out[i] = low.Add(inc.Mul(decimal.NewFromInt(int64(i)))).String()
	}
	return out, nil
}

func (s *Sampler) date(ms int64, tz string) time.Time {
	return time.UnixMilli(ms).In(s.opts.LocationFor(tz))
}

func (s *Sampler) dateSteps(lowValue interface{}, p *converter.GenParams, n int) ([]time.Time, error) {
	low, err := converter.ValueInt64(lowValue)
	if err != nil {
		return nil, err
	}
	if low == nil {
		return nil, fmt.Errorf("ordered date has no start")
	}
	step, err := decimal.NewFromString(strings.TrimSpace(p.Step))
	if err != nil {
		return nil, fmt.Errorf("invalid step %q: %w", p.Step, err)
	}
	if !step.IsInteger() {
		return nil, fmt.Errorf("date step %s is not a whole number of %s", p.Step, strings.ToLower(string(p.TimeUnit)))
	}
	k := int(step.IntPart())
	start := s.date(*low, p.Timezone)

	out := make([]time.Time, n)
	for i := range out {
		d := k * i
		switch p.TimeUnit {
		case rule.Years:
			out[i] = start.AddDate(d, 0, 0)
		case rule.Months:
			out[i] = start.AddDate(0, d, 0)
		case rule.Hours:
			out[i] = start.Add(time.Duration(d) * time.Hour)
		case rule.Minutes:
			out[i] = start.Add(time.Duration(d) * time.Minute)
		case rule.Seconds:
			out[i] = start.Add(time.Duration(d) * time.Second)
		default:
			out[i] = start.AddDate(0, 0, d)
		}
	}
	return out, nil
}

func decimalRange(lowValue, highValue interface{}) (decimal.Decimal, decimal.Decimal, error) {
	lowStr, err := converter.ValueString(lowValue)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	highStr, err := converter.ValueString(highValue)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	low, err := decimal.NewFromString(strings.TrimSpace(lowStr))
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("invalid low value %q: %w", lowStr, err)
	}
	high, err := decimal.NewFromString(strings.TrimSpace(highStr))
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("invalid high value %q: %w", highStr, err)
	}
	if low.GreaterThan(high) {
		return decimal.Zero, decimal.Zero, fmt.Errorf("low value %s exceeds high value %s", low, high)
	}
	return low, high, nil
}

// randomDecimal draws uniformly from [low, high] at the finer of the two
// scales, so "0.5 ~ 2" yields values like 1.3.
func (s *Sampler) randomDecimal(low, high decimal.Decimal) decimal.Decimal {
	exp := low.Exponent()
	if high.Exponent() < exp {
		exp = high.Exponent()
	}
	if exp > 0 {
		exp = 0
	}
	lo := low.Shift(-exp).BigInt()
	hi := high.Shift(-exp).BigInt()

	span := new(big.Int).Sub(hi, lo)
	span.Add(span, big.NewInt(1))
	r := new(big.Int).Rand(s.rand, span)
	return decimal.NewFromBigInt(r.Add(r, lo), exp)
}

func lengthRange(lowValue, highValue interface{}) (int, int, error) {
	low, err := converter.ValueInt64(lowValue)
	if err != nil {
		return 0, 0, err
	}
	high, err := converter.ValueInt64(highValue)
	if err != nil {
		return 0, 0, err
	}
	if low == nil || high == nil || *low < 0 || *low > *high {
		return 0, 0, fmt.Errorf("invalid length range")
	}
	return int(min(*low, MaxTextLength)), int(min(*high, MaxTextLength)), nil
}

func (s *Sampler) randomText(minLen, maxLen int, c rule.CaseOption) string {
	n := minLen
	if maxLen > minLen {
		n += s.rand.Intn(maxLen - minLen + 1)
	}
	text := make([]rune, 0, n)
	for len(text) < n {
		word := strings.Join(s.fake.Words(3, false), "")
		if word == "" {
			word = "x"
		}
		text = append(text, []rune(word)...)
	}
	text = text[:n]
	for i, r := range text {
		switch c {
		case rule.AllUpperCase:
			text[i] = unicode.ToUpper(r)
		case rule.UpperAndLowerCase:
			if s.rand.Intn(2) == 1 {
				text[i] = unicode.ToUpper(r)
			} else {
				text[i] = unicode.ToLower(r)
			}
		default:
			text[i] = unicode.ToLower(r)
		}
	}
	return string(text)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
