package utctime

import (
	"fmt"
	"time"

	"github.com/jinzhu/now"
)

// Layout is the canonical text form: ISO-8601 with up to seven fractional digits, trailing zeros trimmed.
const Layout = "2006-01-02T15:04:05.9999999Z"

const (
	tick               = 100 * time.Nanosecond
	ticksPerSecond     = int64(10_000_000)
	nanosecondsPerTick = int64(100)
	unixEpochTicks     = int64(621_355_968_000_000_000)

	// MaxTicks is the tick count of MaxValue.
	MaxTicks = int64(3_155_378_975_999_999_999)
)

var (
	minTime = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	maxTime = time.Date(9999, time.December, 31, 23, 59, 59, 999_999_900, time.UTC)

	// MinValue is the earliest representable instant and equal to the zero Timestamp.
	MinValue = Timestamp{t: minTime}

	// MaxValue is the latest representable instant.
	MaxValue = Timestamp{t: maxTime}
)

// Timestamp is an instant in UTC with a resolution of 100 nanoseconds.
//
// The wrapped time.Time is always tagged time.UTC, carries no monotonic clock reading
// and lies within [MinValue, MaxValue], so two Timestamps can be compared with ==.
type Timestamp struct {
	t time.Time
}

// Now returns the current instant.
func Now() Timestamp {
	return Timestamp{t: time.Now().UTC().Truncate(tick)}
}

// ConvertFrom wraps a time.Time that is tagged time.UTC.
// Inputs whose wall clock equals MinValue or MaxValue are accepted in any zone.
func ConvertFrom(t time.Time) (Timestamp, error) {
	if sentinel, ok := sentinelOf(t); ok {
		return sentinel, nil
	}

	if t.Location() != time.UTC {
		return Timestamp{}, fmt.Errorf("%w: location is %q", ErrNotUTC, t.Location())
	}

	return fromUTC(t)
}

// Unspecified tags a wall clock that does not belong to any zone yet, e.g. a value read
// from a column without time zone. Only such values are interpreted by ConvertFromZone.
var Unspecified = time.FixedZone("Unspecified", 0)

// ConvertFromZone normalizes t to UTC using zone.
//
// UTC input is wrapped unchanged. A wall clock tagged Unspecified is interpreted in zone.
// Input already tagged zone (time.Local included) is a resolved instant and only
// normalized. Input tagged with any other zone conflicts with zone and fails with ErrInvalidZone.
func ConvertFromZone(t time.Time, zone *time.Location) (Timestamp, error) {
	if sentinel, ok := sentinelOf(t); ok {
		return sentinel, nil
	}

	if t.Location() == time.UTC {
		return fromUTC(t)
	}

	if zone == nil {
		return Timestamp{}, fmt.Errorf("%w: no zone supplied for %s", ErrInvalidZone, t)
	}

	switch {
	case t.Location() == Unspecified:
		return interpretIn(t, zone)
	case sameZone(t.Location(), zone):
		return fromUTC(t.UTC())
	default:
		return Timestamp{}, fmt.Errorf("%w: time tagged %q cannot be interpreted in %q", ErrInvalidZone, t.Location(), zone)
	}
}

// sameZone treats two loads of the same IANA zone as equal.
func sameZone(a, b *time.Location) bool {
	return a == b || a.String() == b.String()
}

// interpretIn reads the wall clock of t in zone. A wall clock skipped by a daylight saving
// transition does not exist there.
func interpretIn(t time.Time, zone *time.Location) (Timestamp, error) {
	year, month, day := t.Date()
	hour, minute, second := t.Clock()
	inZone := time.Date(year, month, day, hour, minute, second, t.Nanosecond(), zone)

	if inZone.Day() != day || inZone.Hour() != hour || inZone.Minute() != minute {
		return Timestamp{}, fmt.Errorf("%w: %s does not exist in %q", ErrInvalidZone, t.Format(time.DateTime), zone)
	}

	return fromUTC(inZone.UTC())
}

// LoadZone returns the IANA zone with the given name.
func LoadZone(name string) (*time.Location, error) {
	zone, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidZone, err)
	}

	return zone, nil
}

// FromFields builds a Timestamp from proleptic Gregorian calendar fields.
// Up to three clock fields (hour, minute, second) may follow, missing ones default to zero.
func FromFields(year int, month time.Month, day int, clock ...int) (Timestamp, error) {
	if len(clock) > 3 {
		return Timestamp{}, fmt.Errorf("%w: expected at most 3 clock fields, got %d", ErrInvalidField, len(clock))
	}

	var hms [3]int
	copy(hms[:], clock)

	if err := checkField("year", year, 1, 9999); err != nil {
		return Timestamp{}, err
	}

	if err := checkField("month", int(month), 1, 12); err != nil {
		return Timestamp{}, err
	}

	if err := checkField("day", day, 1, daysIn(year, month)); err != nil {
		return Timestamp{}, err
	}

	if err := checkField("hour", hms[0], 0, 23); err != nil {
		return Timestamp{}, err
	}

	if err := checkField("minute", hms[1], 0, 59); err != nil {
		return Timestamp{}, err
	}

	if err := checkField("second", hms[2], 0, 59); err != nil {
		return Timestamp{}, err
	}

	return fromUTC(time.Date(year, month, day, hms[0], hms[1], hms[2], 0, time.UTC))
}

func checkField(name string, value, lowest, highest int) error {
	if value < lowest || value > highest {
		return fmt.Errorf("%w: %s %d not in [%d, %d]", ErrInvalidField, name, value, lowest, highest)
	}

	return nil
}

// daysIn returns the number of days of month in year.
func daysIn(year int, month time.Month) int {
	return now.With(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)).EndOfMonth().Day()
}

// fromUTC truncates to whole ticks and checks the supported range.
func fromUTC(t time.Time) (Timestamp, error) {
	t = t.UTC().Truncate(tick)

	if t.Before(minTime) || t.After(maxTime) {
		return Timestamp{}, fmt.Errorf("%w: %s", ErrOutOfRange, t.Format(time.RFC3339Nano))
	}

	return Timestamp{t: t}, nil
}

// sentinelOf reports whether the wall clock of t, read in its own zone, is one of the range boundaries.
func sentinelOf(t time.Time) (Timestamp, bool) {
	year, month, day := t.Date()
	hour, minute, second := t.Clock()
	nanos := t.Nanosecond()

	switch {
	case year == 1 && month == time.January && day == 1 && hour == 0 && minute == 0 && second == 0 &&
		nanos < int(nanosecondsPerTick):
		return MinValue, true

	case year == 9999 && month == time.December && day == 31 && hour == 23 && minute == 59 && second == 59 &&
		nanos >= maxTime.Nanosecond():
		return MaxValue, true

	default:
		return Timestamp{}, false
	}
}

func (ts Timestamp) Year() int               { return ts.t.Year() }
func (ts Timestamp) Month() time.Month       { return ts.t.Month() }
func (ts Timestamp) Day() int                { return ts.t.Day() }
func (ts Timestamp) Hour() int               { return ts.t.Hour() }
func (ts Timestamp) Minute() int             { return ts.t.Minute() }
func (ts Timestamp) Second() int             { return ts.t.Second() }
func (ts Timestamp) Nanosecond() int         { return ts.t.Nanosecond() }
func (ts Timestamp) Millisecond() int        { return ts.t.Nanosecond() / int(time.Millisecond) }
func (ts Timestamp) Weekday() time.Weekday   { return ts.t.Weekday() }
func (ts Timestamp) YearDay() int            { return ts.t.YearDay() }
func (ts Timestamp) IsMin() bool             { return ts == MinValue }
func (ts Timestamp) IsMax() bool             { return ts == MaxValue }
func (ts Timestamp) Unix() int64             { return ts.t.Unix() }
func (ts Timestamp) UnixMilli() int64        { return ts.t.UnixMilli() }
func (ts Timestamp) Before(u Timestamp) bool { return ts.t.Before(u.t) }
func (ts Timestamp) After(u Timestamp) bool  { return ts.t.After(u.t) }
func (ts Timestamp) Equal(u Timestamp) bool  { return ts == u }

// Date returns the Timestamp truncated to midnight.
func (ts Timestamp) Date() Timestamp {
	year, month, day := ts.t.Date()

	return Timestamp{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// TimeOfDay returns the time elapsed since midnight.
func (ts Timestamp) TimeOfDay() time.Duration {
	return ts.t.Sub(ts.Date().t)
}

// ToTime returns the wrapped time.Time, tagged time.UTC.
func (ts Timestamp) ToTime() time.Time {
	return ts.t
}

// ToLocalTime returns the instant in zone, or in time.Local if zone is nil.
func (ts Timestamp) ToLocalTime(zone *time.Location) time.Time {
	if zone == nil {
		zone = time.Local
	}

	return ts.t.In(zone)
}

// Compare returns -1, 0 or +1 depending on whether ts is before, equal to or after u.
func (ts Timestamp) Compare(u Timestamp) int {
	return ts.t.Compare(u.t)
}

// Compare is the free form of Timestamp.Compare, usable with slices.SortFunc.
func Compare(a, b Timestamp) int {
	return a.Compare(b)
}

// String renders ts with Layout.
func (ts Timestamp) String() string {
	return ts.t.Format(Layout)
}

// Format renders ts with a time package layout. The zone is always UTC.
func (ts Timestamp) Format(layout string) string {
	return ts.t.Format(layout)
}

// MarshalText implements encoding.TextMarshaler.
func (ts Timestamp) MarshalText() ([]byte, error) {
	return []byte(ts.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler with the semantics of Parse.
func (ts *Timestamp) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}

	*ts = parsed

	return nil
}
