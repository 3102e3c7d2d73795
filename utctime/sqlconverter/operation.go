package sqlconverter

import (
	"fmt"

	"github.com/AntonStoeckl/utctimestamp-go/utctime"
)

// Operation names a calendar arithmetic method of utctime.Timestamp that can be translated to SQL.
type Operation string

const (
	OpAddSeconds Operation = "AddSeconds"
	OpAddMinutes Operation = "AddMinutes"
	OpAddHours   Operation = "AddHours"
	OpAddDays    Operation = "AddDays"
	OpAddMonths  Operation = "AddMonths"
	OpAddYears   Operation = "AddYears"
)

var operationUnits = map[Operation]utctime.Unit{
	OpAddSeconds: utctime.UnitSecond,
	OpAddMinutes: utctime.UnitMinute,
	OpAddHours:   utctime.UnitHour,
	OpAddDays:    utctime.UnitDay,
	OpAddMonths:  utctime.UnitMonth,
	OpAddYears:   utctime.UnitYear,
}

// Operations returns all translatable operations in unit order.
func Operations() []Operation {
	return []Operation{OpAddSeconds, OpAddMinutes, OpAddHours, OpAddDays, OpAddMonths, OpAddYears}
}

// Unit returns the calendar unit op adds.
func (op Operation) Unit() (utctime.Unit, error) {
	unit, ok := operationUnits[op]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownOperation, string(op))
	}

	return unit, nil
}

// Apply performs op in memory, the counterpart of its SQL translation.
func (op Operation) Apply(ts utctime.Timestamp, amount float64) (utctime.Timestamp, error) {
	unit, err := op.Unit()
	if err != nil {
		return utctime.Timestamp{}, err
	}

	return ts.AddUnit(unit, amount)
}
