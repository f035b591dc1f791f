package converter

import (
	"github.com/Lumos-Labs-HQ/datamock/internal/rule"
)

// otherConverter handles columns no category claims. Only null and skip
// generators apply, so it passes name and type through untouched.
type otherConverter struct {
	base
}

func newOther(opts Options) *otherConverter {
	return &otherConverter{base{
		category: rule.CategoryOther,
		opts:     opts,
		shapes:   shapeTable[rule.CategoryOther],
	}}
}

func (c *otherConverter) ToServer(col FormColumn) (ServerColumn, error) {
	return c.toServer(col)
}

func (c *otherConverter) ToForm(sc ServerColumn) (FormColumn, error) {
	t, _ := rule.RuleOf(c.category, sc.TypeConfig.Generator)
	return c.toForm(sc, t)
}
