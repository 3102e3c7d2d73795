package utctime_test

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/utctimestamp-go/utctime"
)

func Test_Timestamp_Value(t *testing.T) {
	// arrange
	ts, err := utctime.Parse("2024-03-15T10:30:00.1234567Z")
	require.NoError(t, err)

	// act
	value, valueErr := ts.Value()

	// assert
	require.NoError(t, valueErr)
	assert.Equal(t, time.Date(2024, time.March, 15, 10, 30, 0, 123_456_000, time.UTC), value)
}

func Test_Timestamp_Scan(t *testing.T) {
	expected := mustFields(t, 2024, time.March, 15, 10, 30, 0)
	berlin := mustZone(t, "Europe/Berlin")

	testCases := []struct {
		name     string
		src      any
		expected utctime.Timestamp
	}{
		{name: "utc time", src: expected.ToTime(), expected: expected},
		{name: "time tagged with the driver's session zone", src: expected.ToTime().In(berlin), expected: expected},
		{name: "text", src: "2024-03-15 10:30:00+00", expected: expected},
		{name: "bytes", src: []byte("2024-03-15T10:30:00Z"), expected: expected},
		{name: "infinity", src: "infinity", expected: utctime.MaxValue},
		{name: "negative infinity", src: []byte("-infinity"), expected: utctime.MinValue},
		{name: "maximum at microsecond resolution", src: utctime.MaxValue.ToTime().Truncate(time.Microsecond), expected: utctime.MaxValue},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			var scanned utctime.Timestamp
			err := scanned.Scan(tc.src)

			// assert
			require.NoError(t, err)
			assert.Equal(t, tc.expected, scanned)
		})
	}
}

func Test_Timestamp_Scan_ShouldFail(t *testing.T) {
	original := mustFields(t, 2024, time.March, 15)

	testCases := []struct {
		name        string
		src         any
		expectedErr error
	}{
		{name: "NULL", src: nil, expectedErr: utctime.ErrNullValue},
		{name: "integer", src: int64(42), expectedErr: utctime.ErrUnsupportedScanType},
		{name: "malformed text", src: "yesterday", expectedErr: utctime.ErrFormat},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			scanned := original

			err := scanned.Scan(tc.src)

			assert.ErrorIs(t, err, tc.expectedErr)
			assert.Equal(t, original, scanned)
		})
	}
}

func Test_Timestamp_PgxHooks(t *testing.T) {
	ts := mustFields(t, 2024, time.March, 15, 10, 30, 0)

	t.Run("timestamptz value", func(t *testing.T) {
		value, err := ts.TimestamptzValue()

		require.NoError(t, err)
		assert.Equal(t, pgtype.Timestamptz{Time: ts.ToTime(), Valid: true}, value)
	})

	t.Run("timestamp value", func(t *testing.T) {
		value, err := ts.TimestampValue()

		require.NoError(t, err)
		assert.Equal(t, pgtype.Timestamp{Time: ts.ToTime(), Valid: true}, value)
	})

	t.Run("scan timestamptz in a session zone", func(t *testing.T) {
		var scanned utctime.Timestamp

		err := scanned.ScanTimestamptz(pgtype.Timestamptz{Time: ts.ToTime().Local(), Valid: true})

		require.NoError(t, err)
		assert.Equal(t, ts, scanned)
	})

	t.Run("scan infinity", func(t *testing.T) {
		var positive, negative utctime.Timestamp

		require.NoError(t, positive.ScanTimestamptz(pgtype.Timestamptz{InfinityModifier: pgtype.Infinity, Valid: true}))
		require.NoError(t, negative.ScanTimestamp(pgtype.Timestamp{InfinityModifier: pgtype.NegativeInfinity, Valid: true}))

		assert.Equal(t, utctime.MaxValue, positive)
		assert.Equal(t, utctime.MinValue, negative)
	})

	t.Run("scan NULL", func(t *testing.T) {
		var scanned utctime.Timestamp

		assert.ErrorIs(t, scanned.ScanTimestamptz(pgtype.Timestamptz{}), utctime.ErrNullValue)
		assert.ErrorIs(t, scanned.ScanTimestamp(pgtype.Timestamp{}), utctime.ErrNullValue)
	})

	t.Run("gorm data type", func(t *testing.T) {
		assert.Equal(t, "timestamptz", ts.GormDataType())
	})
}

func Test_NullTimestamp(t *testing.T) {
	ts := mustFields(t, 2024, time.March, 15, 10, 30, 0)

	t.Run("NULL round trip", func(t *testing.T) {
		var null utctime.NullTimestamp

		value, err := null.Value()
		require.NoError(t, err)
		assert.Nil(t, value)

		require.NoError(t, null.Scan(nil))
		assert.False(t, null.Valid)
		assert.Nil(t, null.Ptr())

		require.NoError(t, null.ScanTimestamptz(pgtype.Timestamptz{}))
		assert.False(t, null.Valid)

		pgValue, err := null.TimestamptzValue()
		require.NoError(t, err)
		assert.False(t, pgValue.Valid)
	})

	t.Run("valid round trip", func(t *testing.T) {
		var null utctime.NullTimestamp

		require.NoError(t, null.Scan(ts.ToTime()))
		assert.Equal(t, utctime.NewNullTimestamp(ts), null)
		assert.Equal(t, ts, *null.Ptr())

		value, err := null.Value()
		require.NoError(t, err)
		assert.Equal(t, ts.ToTime(), value)

		require.NoError(t, null.ScanTimestamp(pgtype.Timestamp{Time: ts.ToTime(), Valid: true}))
		assert.True(t, null.Valid)
	})

	t.Run("scan failure keeps the previous value", func(t *testing.T) {
		null := utctime.NewNullTimestamp(ts)

		assert.ErrorIs(t, null.Scan(3.14), utctime.ErrUnsupportedScanType)
		assert.Equal(t, utctime.NewNullTimestamp(ts), null)
	})
}
