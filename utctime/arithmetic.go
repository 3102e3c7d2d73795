package utctime

import (
	"fmt"
	"math"
	"time"

	"github.com/jinzhu/now"
)

// Unit is a calendar unit usable with AddUnit.
type Unit int

const (
	UnitSecond Unit = iota + 1
	UnitMinute
	UnitHour
	UnitDay
	UnitMonth
	UnitYear
)

const (
	maxMonths = 120_000
	maxYears  = 10_000
)

var unitNames = map[Unit]string{
	UnitSecond: "second",
	UnitMinute: "minute",
	UnitHour:   "hour",
	UnitDay:    "day",
	UnitMonth:  "month",
	UnitYear:   "year",
}

// String returns the lower-case singular unit name, e.g. "day".
func (u Unit) String() string {
	if name, ok := unitNames[u]; ok {
		return name
	}

	return fmt.Sprintf("Unit(%d)", int(u))
}

// IsCalendar reports whether u is a variable-length unit (month or year).
func (u Unit) IsCalendar() bool {
	return u == UnitMonth || u == UnitYear
}

// Add returns ts+d.
func (ts Timestamp) Add(d time.Duration) (Timestamp, error) {
	return fromUTC(ts.t.Add(d))
}

// Subtract returns ts-d.
func (ts Timestamp) Subtract(d time.Duration) (Timestamp, error) {
	if d == math.MinInt64 {
		return fromUTC(ts.t.Add(math.MaxInt64).Add(time.Nanosecond))
	}

	return ts.Add(-d)
}

// Sub returns the duration ts-u.
// Like time.Time.Sub the result saturates at the minimum or maximum time.Duration,
// which covers roughly 292 years.
func (ts Timestamp) Sub(u Timestamp) time.Duration {
	return ts.t.Sub(u.t)
}

// AddSeconds adds a possibly fractional number of seconds, rounded to the nearest tick.
func (ts Timestamp) AddSeconds(amount float64) (Timestamp, error) {
	return ts.addScaled(amount, float64(ticksPerSecond))
}

// AddMinutes adds a possibly fractional number of minutes, rounded to the nearest tick.
func (ts Timestamp) AddMinutes(amount float64) (Timestamp, error) {
	return ts.addScaled(amount, float64(ticksPerSecond*60))
}

// AddHours adds a possibly fractional number of hours, rounded to the nearest tick.
func (ts Timestamp) AddHours(amount float64) (Timestamp, error) {
	return ts.addScaled(amount, float64(ticksPerSecond*3600))
}

// AddDays adds a possibly fractional number of days, rounded to the nearest tick.
func (ts Timestamp) AddDays(amount float64) (Timestamp, error) {
	return ts.addScaled(amount, float64(ticksPerSecond*86400))
}

// addScaled adds amount units of ticksPerUnit ticks, rounded to the nearest tick.
// The sum is computed in ticks, so spans beyond the time.Duration range work.
func (ts Timestamp) addScaled(amount float64, ticksPerUnit float64) (Timestamp, error) {
	delta := math.Round(amount * ticksPerUnit)
	if math.IsNaN(delta) || math.Abs(delta) > float64(MaxTicks) {
		return Timestamp{}, fmt.Errorf("%w: cannot add %v", ErrOutOfRange, amount)
	}

	return FromTicks(ts.Ticks() + int64(delta))
}

// AddMonths adds whole months. When the target month is shorter the day is clamped
// to its last day, so January 31 plus one month is February 28 or 29.
func (ts Timestamp) AddMonths(months int) (Timestamp, error) {
	if months < -maxMonths || months > maxMonths {
		return Timestamp{}, fmt.Errorf("%w: cannot add %d months", ErrOutOfRange, months)
	}

	year, month, day := ts.t.Date()
	total := year*12 + int(month) - 1 + months

	if total < 12 || total >= 10_000*12 {
		return Timestamp{}, fmt.Errorf("%w: cannot add %d months to %s", ErrOutOfRange, months, ts)
	}

	targetYear, targetMonth := total/12, time.Month(total%12+1)
	lastDay := now.With(time.Date(targetYear, targetMonth, 1, 0, 0, 0, 0, time.UTC)).EndOfMonth().Day()
	day = min(day, lastDay)

	return fromUTC(time.Date(targetYear, targetMonth, day, 0, 0, 0, 0, time.UTC).Add(ts.TimeOfDay()))
}

// AddYears adds whole years with the day clamping of AddMonths (February 29 becomes February 28).
func (ts Timestamp) AddYears(years int) (Timestamp, error) {
	if years < -maxYears || years > maxYears {
		return Timestamp{}, fmt.Errorf("%w: cannot add %d years", ErrOutOfRange, years)
	}

	return ts.AddMonths(years * 12)
}

// AddUnit adds amount of unit. Month and year amounts must be whole numbers.
func (ts Timestamp) AddUnit(unit Unit, amount float64) (Timestamp, error) {
	if unit.IsCalendar() && amount != math.Trunc(amount) {
		return Timestamp{}, fmt.Errorf("%w: %v %ss", ErrInvalidAmount, amount, unit)
	}

	switch unit {
	case UnitSecond:
		return ts.AddSeconds(amount)
	case UnitMinute:
		return ts.AddMinutes(amount)
	case UnitHour:
		return ts.AddHours(amount)
	case UnitDay:
		return ts.AddDays(amount)
	case UnitMonth:
		if math.Abs(amount) > maxMonths {
			return Timestamp{}, fmt.Errorf("%w: cannot add %v months", ErrOutOfRange, amount)
		}

		return ts.AddMonths(int(amount))
	case UnitYear:
		if math.Abs(amount) > maxYears {
			return Timestamp{}, fmt.Errorf("%w: cannot add %v years", ErrOutOfRange, amount)
		}

		return ts.AddYears(int(amount))
	default:
		return Timestamp{}, fmt.Errorf("%w: unknown unit %s", ErrInvalidAmount, unit)
	}
}
