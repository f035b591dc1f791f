package converter

import (
	"github.com/Lumos-Labs-HQ/datamock/internal/rule"
)

type dateConverter struct {
	base
}

func newDate(opts Options) *dateConverter {
	return &dateConverter{base{
		category: rule.CategoryDate,
		opts:     opts,
		shapes:   shapeTable[rule.CategoryDate],
	}}
}

func (c *dateConverter) ToServer(col FormColumn) (ServerColumn, error) {
	sc, err := c.toServer(col)
	if err != nil {
		return sc, err
	}
	// fractional second digits of TIMESTAMP(n)
	sc.TypeConfig.Scale = col.ColumnObj.Scale
	return sc, nil
}

func (c *dateConverter) ToForm(sc ServerColumn) (FormColumn, error) {
	t, _ := rule.RuleOf(c.category, sc.TypeConfig.Generator)
	fc, err := c.toForm(sc, t)
	if err != nil {
		return fc, err
	}
	fc.ColumnObj.Scale = sc.TypeConfig.Scale
	return fc, nil
}
