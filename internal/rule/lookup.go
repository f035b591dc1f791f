package rule

type entry struct {
	rule      Type
	generator Generator
}

// Forward tables are ordered: the reverse table is built by walking them and
// the last rule seen for a generator wins.
var forward = map[Category][]entry{
	CategoryNumber: {
		{NumberNormal, FixedGenerator},
		{NumberOrder, StepGenerator},
		{NumberRandom, RandomGenerator},
		{NumberNull, NullGenerator},
		{NumberSkip, SkipGenerator},
	},
	CategoryChar: {
		{CharNormalText, FixedStringGenerator},
		{CharRandomText, RandomStringGenerator},
		{CharRegexpText, RegexpStringGenerator},
		{CharBool, BoolCharGenerator},
		{CharRandomBool, BoolCharGenerator},
		{CharNormalDate, FixedDateGenerator},
		{CharOrderDate, StepDateGenerator},
		{CharRandomDate, RandomDateGenerator},
		{CharNormalNumber, FixedGenerator},
		{CharOrderNumber, StepGenerator},
		{CharRandomNumber, RandomGenerator},
		{CharNull, NullGenerator},
		{CharSkip, SkipGenerator},
	},
	CategoryDate: {
		{DateNormal, FixedDateGenerator},
		{DateOrder, StepDateGenerator},
		{DateRandom, RandomDateGenerator},
		{DateNull, NullGenerator},
		{DateSkip, SkipGenerator},
	},
	CategoryIntervalYearToMonth: {
		{IntervalNormal, FixedGenerator},
		{IntervalNull, NullGenerator},
		{IntervalSkip, SkipGenerator},
	},
	CategoryIntervalDayToSecond: {
		{IntervalNormal, FixedGenerator},
		{IntervalNull, NullGenerator},
		{IntervalSkip, SkipGenerator},
	},
	CategoryOther: {
		{OtherNull, NullGenerator},
		{OtherSkip, SkipGenerator},
	},
}

var defaults = map[Category]Type{
	CategoryNumber:              NumberRandom,
	CategoryChar:                CharRandomText,
	CategoryDate:                DateRandom,
	CategoryIntervalYearToMonth: IntervalNormal,
	CategoryIntervalDayToSecond: IntervalNormal,
	CategoryOther:               OtherNull,
}

var (
	generatorByRule = make(map[Category]map[Type]Generator, len(forward))
	ruleByGenerator = make(map[Category]map[Generator]Type, len(forward))
)

func init() {
	for category, entries := range forward {
		fwd := make(map[Type]Generator, len(entries))
		rev := make(map[Generator]Type, len(entries))
		for _, e := range entries {
			fwd[e.rule] = e.generator
			rev[e.generator] = e.rule
		}
		generatorByRule[category] = fwd
		ruleByGenerator[category] = rev
	}
}

// GeneratorOf returns the generator that backs rule t within category c.
func GeneratorOf(c Category, t Type) (Generator, bool) {
	g, ok := generatorByRule[c][t]
	return g, ok
}

// RuleOf resolves the rule tag for generator g within category c. When two
// rules share a generator the one declared last is returned.
func RuleOf(c Category, g Generator) (Type, bool) {
	t, ok := ruleByGenerator[c][g]
	return t, ok
}

// Rules returns the rule tags of category c in declaration order.
func Rules(c Category) []Type {
	entries := forward[c]
	out := make([]Type, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.rule)
	}
	return out
}

// Generators returns the distinct generators used by category c.
func Generators(c Category) []Generator {
	seen := make(map[Generator]bool)
	var out []Generator
	for _, e := range forward[c] {
		if seen[e.generator] {
			continue
		}
		seen[e.generator] = true
		out = append(out, e.generator)
	}
	return out
}

// Valid reports whether t is a rule of category c.
func Valid(c Category, t Type) bool {
	_, ok := generatorByRule[c][t]
	return ok
}

// DefaultRule is the rule preselected for a freshly classified column.
func DefaultRule(c Category) Type {
	if t, ok := defaults[c]; ok {
		return t
	}
	return OtherNull
}
