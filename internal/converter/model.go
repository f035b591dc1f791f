package converter

import (
	"errors"
	"time"

	"github.com/Lumos-Labs-HQ/datamock/internal/rule"
	"github.com/Lumos-Labs-HQ/datamock/internal/types"
)

var ErrUnknownRule = errors.New("rule does not belong to the column category")

// Interval is the editable form of a fixed interval value. Year to month
// intervals use Years and Months only.
type Interval struct {
	Negative bool  `json:"negative,omitempty" yaml:"negative,omitempty"`
	Years    int64 `json:"years,omitempty" yaml:"years,omitempty"`
	Months   int64 `json:"months,omitempty" yaml:"months,omitempty"`
	Days     int64 `json:"days,omitempty" yaml:"days,omitempty"`
	Hours    int64 `json:"hours,omitempty" yaml:"hours,omitempty"`
	Minutes  int64 `json:"minutes,omitempty" yaml:"minutes,omitempty"`
	Seconds  int64 `json:"seconds,omitempty" yaml:"seconds,omitempty"`
	Nanos    int64 `json:"nanos,omitempty" yaml:"nanos,omitempty"`
}

// FormParams holds the rule specific inputs of a form value.
type FormParams struct {
	FixText    *string         `json:"fixText,omitempty" yaml:"fixText,omitempty"`
	FixNum     string          `json:"fixNum,omitempty" yaml:"fixNum,omitempty"`
	FixDate    *time.Time      `json:"fixDate,omitempty" yaml:"fixDate,omitempty"`
	Interval   *Interval       `json:"interval,omitempty" yaml:"interval,omitempty"`
	Step       string          `json:"step,omitempty" yaml:"step,omitempty"`
	TimeUnit   rule.TimeUnit   `json:"timeUnit,omitempty" yaml:"timeUnit,omitempty"`
	CaseOption rule.CaseOption `json:"caseOption,omitempty" yaml:"caseOption,omitempty"`
	RegText    string          `json:"regText,omitempty" yaml:"regText,omitempty"`
}

// FormValue is what a rule editor works on. Which fields are meaningful
// depends on the rule:
//
//	random number/text  Range (decimal strings / text lengths)
//	random date         DateRange
//	ordered number      LowValue, GenParams.Step, Order
//	ordered date        LowDate, GenParams.Step, GenParams.TimeUnit, Order
//	fixed values        GenParams.FixText | FixNum | FixDate | Interval
type FormValue struct {
	Range     []string    `json:"range,omitempty" yaml:"range,omitempty"`
	DateRange []time.Time `json:"dateRange,omitempty" yaml:"dateRange,omitempty"`
	LowValue  string      `json:"lowValue,omitempty" yaml:"lowValue,omitempty"`
	LowDate   *time.Time  `json:"lowDate,omitempty" yaml:"lowDate,omitempty"`
	Order     rule.Order  `json:"order,omitempty" yaml:"order,omitempty"`
	GenParams FormParams  `json:"genParams" yaml:"genParams"`
}

// FormColumn is a column together with its selected rule and form value.
type FormColumn struct {
	types.Column `yaml:",inline"`
	Rule         rule.Type `json:"rule" yaml:"rule"`
	TypeConfig   FormValue `json:"typeConfig" yaml:"typeConfig"`
}

// GenParams is the generator specific part of a server config.
type GenParams struct {
	FixText    *string         `json:"fixText,omitempty" yaml:"fixText,omitempty"`
	FixNum     string          `json:"fixNum,omitempty" yaml:"fixNum,omitempty"`
	Timestamp  *int64          `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Step       string          `json:"step,omitempty" yaml:"step,omitempty"`
	TimeUnit   rule.TimeUnit   `json:"timeUnit,omitempty" yaml:"timeUnit,omitempty"`
	CaseOption rule.CaseOption `json:"caseOption,omitempty" yaml:"caseOption,omitempty"`
	RegText    string          `json:"regText,omitempty" yaml:"regText,omitempty"`
	Timezone   string          `json:"timezone,omitempty" yaml:"timezone,omitempty"`
}

// TypeConfig is the generator configuration the task executor consumes.
// LowValue and HighValue hold decimal strings for numbers, integer lengths for
// random text and epoch milliseconds for dates.
type TypeConfig struct {
	ColumnType string         `json:"columnType" yaml:"columnType"`
	LowValue   interface{}    `json:"lowValue,omitempty" yaml:"lowValue,omitempty"`
	HighValue  interface{}    `json:"highValue,omitempty" yaml:"highValue,omitempty"`
	GenParams  *GenParams     `json:"genParams,omitempty" yaml:"genParams,omitempty"`
	Generator  rule.Generator `json:"generator" yaml:"generator"`
	Width      *int64         `json:"width,omitempty" yaml:"width,omitempty"`
	Scale      *int64         `json:"scale,omitempty" yaml:"scale,omitempty"`
}

type ServerColumn struct {
	ColumnName string     `json:"columnName" yaml:"columnName"`
	TypeConfig TypeConfig `json:"typeConfig" yaml:"typeConfig"`
}

func stringPtr(s string) *string {
	return &s
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	return stringPtr(*s)
}

// Clone returns a deep copy of v so that edits to the copy never reach v.
func (v FormValue) Clone() FormValue {
	c := v
	if v.Range != nil {
		c.Range = append([]string(nil), v.Range...)
	}
	if v.DateRange != nil {
		c.DateRange = append([]time.Time(nil), v.DateRange...)
	}
	if v.LowDate != nil {
		t := *v.LowDate
		c.LowDate = &t
	}
	c.GenParams.FixText = copyString(v.GenParams.FixText)
	if v.GenParams.FixDate != nil {
		t := *v.GenParams.FixDate
		c.GenParams.FixDate = &t
	}
	if v.GenParams.Interval != nil {
		iv := *v.GenParams.Interval
		c.GenParams.Interval = &iv
	}
	return c
}
