package rule

// Category is the semantic class of a column type. It decides which rule set
// and which converter apply to the column.
type Category string

const (
	CategoryNumber              Category = "NUMBER"
	CategoryChar                Category = "CHAR"
	CategoryDate                Category = "DATE"
	CategoryIntervalYearToMonth Category = "INTERVAL_YEAR_TO_MONTH"
	CategoryIntervalDayToSecond Category = "INTERVAL_DAY_TO_SECOND"
	CategoryOther               Category = "OTHER"
)

// Categories lists every category in a stable order.
var Categories = []Category{
	CategoryNumber,
	CategoryChar,
	CategoryDate,
	CategoryIntervalYearToMonth,
	CategoryIntervalDayToSecond,
	CategoryOther,
}

// IsInterval reports whether c is one of the two interval categories.
func (c Category) IsInterval() bool {
	return c == CategoryIntervalYearToMonth || c == CategoryIntervalDayToSecond
}

// Type is a rule tag: the data generation strategy a user picked for a column.
// Tags are only meaningful together with their category.
type Type string

// Number rules
const (
	NumberNormal Type = "NORMAL"
	NumberOrder  Type = "ORDER"
	NumberRandom Type = "RANDOM"
	NumberNull   Type = "NULL"
	NumberSkip   Type = "SKIP"
)

// Char rules. Besides plain text, character columns can hold booleans, dates
// and numbers rendered as text.
const (
	CharNormalText   Type = "NORMAL_TEXT"
	CharRandomText   Type = "RANDOM_TEXT"
	CharRegexpText   Type = "REGEXP_TEXT"
	CharBool         Type = "BOOL"
	CharRandomBool   Type = "RANDOM_BOOL"
	CharNormalDate   Type = "NORMAL_DATE"
	CharOrderDate    Type = "ORDER_DATE"
	CharRandomDate   Type = "RANDOM_DATE"
	CharNormalNumber Type = "NORMAL_NUMBER"
	CharOrderNumber  Type = "ORDER_NUMBER"
	CharRandomNumber Type = "RANDOM_NUMBER"
	CharNull         Type = "NULL"
	CharSkip         Type = "SKIP"
)

// Date rules
const (
	DateNormal Type = "NORMAL"
	DateOrder  Type = "ORDER"
	DateRandom Type = "RANDOM"
	DateNull   Type = "NULL"
	DateSkip   Type = "SKIP"
)

// Interval rules, shared by both interval categories.
const (
	IntervalNormal Type = "NORMAL"
	IntervalNull   Type = "NULL"
	IntervalSkip   Type = "SKIP"
)

// Other rules
const (
	OtherNull Type = "NULL"
	OtherSkip Type = "SKIP"
)

// Generator identifies the backend routine that synthesizes the column data.
type Generator string

const (
	FixedGenerator        Generator = "FIXED_GENERATOR"
	StepGenerator         Generator = "STEP_GENERATOR"
	RandomGenerator       Generator = "RANDOM_GENERATOR"
	NullGenerator         Generator = "NULL_GENERATOR"
	SkipGenerator         Generator = "SKIP_GENERATOR"
	FixedStringGenerator  Generator = "FIXED_STRING_GENERATOR"
	RandomStringGenerator Generator = "RANDOM_STRING_GENERATOR"
	RegexpStringGenerator Generator = "REGEXP_STRING_GENERATOR"
	BoolCharGenerator     Generator = "BOOL_CHAR_GENERATOR"
	FixedDateGenerator    Generator = "FIXED_DATE_GENERATOR"
	StepDateGenerator     Generator = "STEP_DATE_GENERATOR"
	RandomDateGenerator   Generator = "RANDOM_DATE_GENERATOR"
)

// Order is the direction of an ordered sequence.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// TimeUnit is the unit of a date step.
type TimeUnit string

const (
	Years   TimeUnit = "YEARS"
	Months  TimeUnit = "MONTHS"
	Days    TimeUnit = "DAYS"
	Hours   TimeUnit = "HOURS"
	Minutes TimeUnit = "MINUTES"
	Seconds TimeUnit = "SECONDS"
)

// TimeUnits lists the accepted date step units.
var TimeUnits = []TimeUnit{Years, Months, Days, Hours, Minutes, Seconds}

// CaseOption controls letter case of random text.
type CaseOption string

const (
	AllLowerCase      CaseOption = "ALL_LOWER_CASE"
	AllUpperCase      CaseOption = "ALL_UPPER_CASE"
	UpperAndLowerCase CaseOption = "UPPER_AND_LOWER_CASE"
)

// IsNullOrSkip reports whether t carries no generator parameters at all.
func IsNullOrSkip(t Type) bool {
	return t == "NULL" || t == "SKIP"
}
