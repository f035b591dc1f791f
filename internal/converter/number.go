package converter

import (
	"github.com/Lumos-Labs-HQ/datamock/internal/rule"
)

type numberConverter struct {
	base
}

func newNumber(opts Options) *numberConverter {
	return &numberConverter{base{
		category: rule.CategoryNumber,
		opts:     opts,
		shapes:   shapeTable[rule.CategoryNumber],
	}}
}

func (c *numberConverter) ToServer(col FormColumn) (ServerColumn, error) {
	sc, err := c.toServer(col)
	if err != nil {
		return sc, err
	}
	sc.TypeConfig.Width = col.ColumnObj.Precision
	sc.TypeConfig.Scale = col.ColumnObj.Scale
	return sc, nil
}

func (c *numberConverter) ToForm(sc ServerColumn) (FormColumn, error) {
	t, _ := rule.RuleOf(c.category, sc.TypeConfig.Generator)
	fc, err := c.toForm(sc, t)
	if err != nil {
		return fc, err
	}
	fc.ColumnObj.Precision = sc.TypeConfig.Width
	fc.ColumnObj.Scale = sc.TypeConfig.Scale
	return fc, nil
}
