package converter

import (
	"github.com/Lumos-Labs-HQ/datamock/internal/rule"
)

type charConverter struct {
	base
}

func newChar(opts Options) *charConverter {
	return &charConverter{base{
		category: rule.CategoryChar,
		opts:     opts,
		shapes:   shapeTable[rule.CategoryChar],
	}}
}

func (c *charConverter) ToServer(col FormColumn) (ServerColumn, error) {
	sc, err := c.toServer(col)
	if err != nil {
		return sc, err
	}
	sc.TypeConfig.Width = col.ColumnObj.Width
	return sc, nil
}

func (c *charConverter) ToForm(sc ServerColumn) (FormColumn, error) {
	t, _ := rule.RuleOf(c.category, sc.TypeConfig.Generator)
	// BOOL and RANDOM_BOOL share a generator; only the fixed one stores a value.
	if sc.TypeConfig.Generator == rule.BoolCharGenerator {
		t = rule.CharRandomBool
		if p := sc.TypeConfig.GenParams; p != nil && p.FixText != nil {
			t = rule.CharBool
		}
	}
	fc, err := c.toForm(sc, t)
	if err != nil {
		return fc, err
	}
	fc.ColumnObj.Width = sc.TypeConfig.Width
	return fc, nil
}

// DefaultValue bounds numbers rendered as text by the column length.
func (c *charConverter) DefaultValue(t rule.Type, size Size) FormValue {
	return c.defaultFor(c.shapes[t], TextNumberSize(size, t))
}
