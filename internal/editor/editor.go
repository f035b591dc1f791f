package editor

import (
	"fmt"

	"github.com/Lumos-Labs-HQ/datamock/internal/classify"
	"github.com/Lumos-Labs-HQ/datamock/internal/converter"
	"github.com/Lumos-Labs-HQ/datamock/internal/rule"
	"github.com/Lumos-Labs-HQ/datamock/internal/types"
)

// Editor holds the rule and value of one column while a user works on it. It
// is either displaying the committed value or editing a draft copy of it. The
// editing flag belongs to the editor, never to the value.
//
// An Editor is not safe for concurrent use.
type Editor struct {
	reg      *converter.Registry
	dialect  classify.Dialect
	column   types.Column
	category rule.Category
	rule     rule.Type
	value    converter.FormValue
	draft    converter.FormValue
	editing  bool
}

// New starts an editor on col. An empty rule selects the category default and
// a nil value the rule default.
func New(reg *converter.Registry, d classify.Dialect, col types.Column, t rule.Type, v *converter.FormValue) (*Editor, error) {
	e := &Editor{
		reg:      reg,
		dialect:  d,
		column:   col,
		category: classify.CategoryOf(d, col.ColumnType),
	}
	if t == "" {
		t = rule.DefaultRule(e.category)
	}
	if !rule.Valid(e.category, t) {
		return nil, fmt.Errorf("%w: %s is not a %s rule", converter.ErrUnknownRule, t, e.category)
	}
	e.rule = t
	if v != nil {
		e.value = v.Clone()
	} else {
		e.value = e.defaultValue(t)
	}
	return e, nil
}

// FromColumn starts an editor on a form column, e.g. one rebuilt from a
// server config.
func FromColumn(reg *converter.Registry, d classify.Dialect, fc converter.FormColumn) (*Editor, error) {
	v := fc.TypeConfig
	if fc.Rule == "" {
		return New(reg, d, fc.Column, "", nil)
	}
	return New(reg, d, fc.Column, fc.Rule, &v)
}

func (e *Editor) Category() rule.Category { return e.category }

func (e *Editor) Rule() rule.Type { return e.rule }

func (e *Editor) Editing() bool { return e.editing }

// Value returns a copy of the committed value.
func (e *Editor) Value() converter.FormValue { return e.value.Clone() }

// Column returns the column with its committed rule and value.
func (e *Editor) Column() converter.FormColumn {
	return converter.FormColumn{
		Column:     e.column,
		Rule:       e.rule,
		TypeConfig: e.value.Clone(),
	}
}

// Edit switches to editing on a fresh copy of the committed value. Calling it
// while already editing keeps the current draft.
func (e *Editor) Edit() {
	if e.editing {
		return
	}
	e.draft = e.value.Clone()
	e.editing = true
}

// Draft is the value under edit, nil when not editing. Changes made through it
// reach the committed value only on Confirm.
func (e *Editor) Draft() *converter.FormValue {
	if !e.editing {
		return nil
	}
	return &e.draft
}

// SetRule selects another rule. The value is replaced by the default of the
// new rule and any draft is dropped.
func (e *Editor) SetRule(t rule.Type) error {
	if !rule.Valid(e.category, t) {
		return fmt.Errorf("%w: %s is not a %s rule", converter.ErrUnknownRule, t, e.category)
	}
	e.rule = t
	e.value = e.defaultValue(t)
	e.draft = converter.FormValue{}
	e.editing = false
	return nil
}

// Confirm validates the draft and commits it. On failure the editor stays in
// editing with the committed value untouched, and the returned error is
// FieldErrors.
func (e *Editor) Confirm() error {
	if !e.editing {
		return nil
	}
	if err := Validate(e.dialect, e.column, e.category, e.rule, e.draft); err != nil {
		return err
	}
	e.value = e.draft
	e.draft = converter.FormValue{}
	e.editing = false
	return nil
}

// Cancel discards the draft.
func (e *Editor) Cancel() {
	e.draft = converter.FormValue{}
	e.editing = false
}

// Summary describes the committed value in one line.
func (e *Editor) Summary() string {
	return Summarize(e.category, e.rule, e.value)
}

func (e *Editor) defaultValue(t rule.Type) converter.FormValue {
	v, err := e.reg.DefaultValue(e.dialect, e.column, t)
	if err != nil {
		return converter.FormValue{}
	}
	return v
}
