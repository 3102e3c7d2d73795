package helper

import (
	"time"

	"pgregory.net/rapid"

	"github.com/AntonStoeckl/utctimestamp-go/utctime"
)

// TimestampGenerator draws Timestamps from the whole representable range, sentinels included.
func TimestampGenerator() *rapid.Generator[utctime.Timestamp] {
	return rapid.Custom(func(t *rapid.T) utctime.Timestamp {
		ticks := rapid.OneOf(
			rapid.Int64Range(0, utctime.MaxTicks),
			rapid.SampledFrom([]int64{0, 1, utctime.MaxTicks - 1, utctime.MaxTicks}),
		).Draw(t, "ticks")

		return mustFromTicks(ticks)
	})
}

// InnerTimestampGenerator draws Timestamps strictly between MinValue and MaxValue.
func InnerTimestampGenerator() *rapid.Generator[utctime.Timestamp] {
	return rapid.Custom(func(t *rapid.T) utctime.Timestamp {
		return mustFromTicks(rapid.Int64Range(1, utctime.MaxTicks-1).Draw(t, "ticks"))
	})
}

// StoredTimestampGenerator draws Timestamps at the microsecond resolution PostgreSQL keeps,
// between the years 1 and 9999.
func StoredTimestampGenerator() *rapid.Generator[utctime.Timestamp] {
	return rapid.Custom(func(t *rapid.T) utctime.Timestamp {
		const ticksPerMicrosecond = int64(time.Microsecond / 100)

		micros := rapid.Int64Range(0, utctime.MaxTicks/ticksPerMicrosecond).Draw(t, "micros")

		return mustFromTicks(micros * ticksPerMicrosecond)
	})
}

// DurationGenerator draws tick-aligned durations up to about a century in both directions.
func DurationGenerator() *rapid.Generator[time.Duration] {
	return rapid.Custom(func(t *rapid.T) time.Duration {
		const century = 100 * 365 * 24 * time.Hour

		ticks := rapid.Int64Range(-int64(century/100), int64(century/100)).Draw(t, "duration ticks")

		return time.Duration(ticks) * 100
	})
}

func mustFromTicks(ticks int64) utctime.Timestamp {
	ts, err := utctime.FromTicks(ticks)
	if err != nil {
		panic(err)
	}

	return ts
}
