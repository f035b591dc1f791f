package converter

import (
	"fmt"

	"github.com/Lumos-Labs-HQ/datamock/internal/classify"
	"github.com/Lumos-Labs-HQ/datamock/internal/rule"
	"github.com/Lumos-Labs-HQ/datamock/internal/types"
)

// Converter maps the form values of one column category to server generator
// configs and back.
type Converter interface {
	Category() rule.Category
	// ToServer builds the generator config for col. An empty rule means the
	// category default.
	ToServer(col FormColumn) (ServerColumn, error)
	// ToForm rebuilds the form column from a server config. A generator the
	// category does not know yields an empty rule and value, not an error.
	ToForm(col ServerColumn) (FormColumn, error)
	// DefaultValue is the initial form value for rule t.
	DefaultValue(t rule.Type, size Size) FormValue
	// IsEmpty reports whether v lacks the inputs rule t requires.
	IsEmpty(t rule.Type, v FormValue) bool
}

// Registry selects a converter by category. It is safe for concurrent use.
type Registry struct {
	opts       Options
	converters map[rule.Category]Converter
}

func NewRegistry(opts Options) *Registry {
	return &Registry{
		opts: opts,
		converters: map[rule.Category]Converter{
			rule.CategoryNumber:              newNumber(opts),
			rule.CategoryChar:                newChar(opts),
			rule.CategoryDate:                newDate(opts),
			rule.CategoryIntervalYearToMonth: newInterval(rule.CategoryIntervalYearToMonth, opts),
			rule.CategoryIntervalDayToSecond: newInterval(rule.CategoryIntervalDayToSecond, opts),
			rule.CategoryOther:               newOther(opts),
		},
	}
}

func (r *Registry) Options() Options {
	return r.opts
}

// For returns the converter of category c, the OTHER converter when c is unknown.
func (r *Registry) For(c rule.Category) Converter {
	if conv, ok := r.converters[c]; ok {
		return conv
	}
	return r.converters[rule.CategoryOther]
}

// ForColumn classifies columnType and returns the matching converter.
func (r *Registry) ForColumn(d classify.Dialect, columnType string) Converter {
	return r.For(classify.CategoryOf(d, columnType))
}

// DefaultColumn selects the category default rule for col and fills in its
// default value.
func (r *Registry) DefaultColumn(d classify.Dialect, col types.Column) FormColumn {
	conv := r.ForColumn(d, col.ColumnType)
	t := rule.DefaultRule(conv.Category())
	return FormColumn{
		Column:     col,
		Rule:       t,
		TypeConfig: conv.DefaultValue(t, SizeOf(d, col.ColumnType, col.ColumnObj)),
	}
}

// DefaultValue is the initial value for rule t on col.
func (r *Registry) DefaultValue(d classify.Dialect, col types.Column, t rule.Type) (FormValue, error) {
	conv := r.ForColumn(d, col.ColumnType)
	if !rule.Valid(conv.Category(), t) {
		return FormValue{}, fmt.Errorf("%w: %s is not a %s rule", ErrUnknownRule, t, conv.Category())
	}
	return conv.DefaultValue(t, SizeOf(d, col.ColumnType, col.ColumnObj)), nil
}

// ConvertFormToServerColumns dispatches every column through the converter of
// its category. Columns without a rule get the category default.
func (r *Registry) ConvertFormToServerColumns(d classify.Dialect, cols []FormColumn) ([]ServerColumn, error) {
	out := make([]ServerColumn, 0, len(cols))
	for _, col := range cols {
		conv := r.ForColumn(d, col.ColumnType)
		if col.Rule == "" {
			col = r.DefaultColumn(d, col.Column)
		}
		sc, err := conv.ToServer(col)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, nil
}

// ConvertServerColumnsToFormColumns is the inverse of ConvertFormToServerColumns.
func (r *Registry) ConvertServerColumnsToFormColumns(d classify.Dialect, cols []ServerColumn) ([]FormColumn, error) {
	out := make([]FormColumn, 0, len(cols))
	for _, col := range cols {
		conv := r.ForColumn(d, col.TypeConfig.ColumnType)
		fc, err := conv.ToForm(col)
		if err != nil {
			return nil, err
		}
		out = append(out, fc)
	}
	return out, nil
}
