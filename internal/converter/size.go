package converter

import (
	"github.com/shopspring/decimal"

	"github.com/Lumos-Labs-HQ/datamock/internal/classify"
	"github.com/Lumos-Labs-HQ/datamock/internal/rule"
	"github.com/Lumos-Labs-HQ/datamock/internal/types"
)

// Size bounds the default ranges offered for a column.
type Size struct {
	// MaxLength is the character length of text columns, 0 when unknown.
	MaxLength int64
	// Max is the largest magnitude a numeric column can hold, nil when unknown.
	Max *decimal.Decimal
}

const (
	defaultTextLength = 1000
	defaultNumberHigh = 1000
)

type intBound struct {
	signed, unsigned string
}

var integerBounds = map[string]intBound{
	"TINYINT":     {"127", "255"},
	"SMALLINT":    {"32767", "65535"},
	"INT2":        {"32767", "32767"},
	"SMALLSERIAL": {"32767", "32767"},
	"MEDIUMINT":   {"8388607", "16777215"},
	"INT":         {"2147483647", "4294967295"},
	"INTEGER":     {"2147483647", "4294967295"},
	"INT4":        {"2147483647", "2147483647"},
	"SERIAL":      {"2147483647", "2147483647"},
	"BIGINT":      {"9223372036854775807", "18446744073709551615"},
	"INT8":        {"9223372036854775807", "9223372036854775807"},
	"BIGSERIAL":   {"9223372036854775807", "9223372036854775807"},
}

const (
	// oracleMaxDigits is the precision of an unconstrained Oracle NUMBER.
	oracleMaxDigits = 38
	// MaxTextDigits caps the digits of numbers written into text columns,
	// MySQL's DECIMAL maximum. LONGTEXT and CLOB report widths in the billions.
	MaxTextDigits = 65
)

// SizeOf derives the size bounds of a column from its type and metadata.
func SizeOf(d classify.Dialect, columnType string, obj types.ColumnObj) Size {
	var s Size
	if obj.Width != nil && *obj.Width > 0 {
		s.MaxLength = *obj.Width
	}

	normalized := classify.NormalizeType(columnType)
	if b, ok := integerBounds[normalized]; ok && d != classify.DialectOracle {
		v := b.signed
		if classify.IsUnsigned(columnType) {
			v = b.unsigned
		}
		m := decimal.RequireFromString(v)
		s.Max = &m
		return s
	}

	if obj.Precision != nil && *obj.Precision > 0 {
		var scale int64
		if obj.Scale != nil {
			scale = *obj.Scale
		}
		m := maxForPrecision(*obj.Precision, scale)
		s.Max = &m
		return s
	}

	if d == classify.DialectOracle && (normalized == "NUMBER" || normalized == "INTEGER" || normalized == "INT" || normalized == "SMALLINT") {
		m := maxForPrecision(oracleMaxDigits, 0)
		s.Max = &m
	}
	return s
}

// maxForPrecision is 10^(p-s) - 10^-s: the largest value with p significant
// digits of which s are fractional.
func maxForPrecision(precision, scale int64) decimal.Decimal {
	return decimal.New(1, int32(precision-scale)).Sub(decimal.New(1, -int32(scale)))
}

// MaxForDigits is the largest integer that fits in n characters, with n
// clamped to MaxTextDigits.
func MaxForDigits(n int64) decimal.Decimal {
	if n > MaxTextDigits {
		n = MaxTextDigits
	}
	return decimal.New(1, int32(n)).Sub(decimal.NewFromInt(1))
}

// TextNumberSize bounds the number rules of a text column by its length.
func TextNumberSize(size Size, t rule.Type) Size {
	if size.MaxLength <= 0 {
		return size
	}
	switch t {
	case rule.CharNormalNumber, rule.CharOrderNumber, rule.CharRandomNumber:
		m := MaxForDigits(size.MaxLength)
		size.Max = &m
	}
	return size
}

func capDecimal(v decimal.Decimal, limit *decimal.Decimal) decimal.Decimal {
	if limit != nil && limit.LessThan(v) {
		return *limit
	}
	return v
}

func capLength(v, limit int64) int64 {
	if limit > 0 && limit < v {
		return limit
	}
	return v
}
