package sqlconverter_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/utctimestamp-go/testutil/helper"
	"github.com/AntonStoeckl/utctimestamp-go/utctime"
	"github.com/AntonStoeckl/utctimestamp-go/utctime/sqlconverter"
)

func givenModel(t *testing.T, options ...sqlconverter.ModelOption) *sqlconverter.Model {
	t.Helper()

	model, err := sqlconverter.NewModel(options...)
	require.NoError(t, err)

	return model.UseUTCTimestamp()
}

func Test_Model_Translate_Postgres(t *testing.T) {
	testCases := []struct {
		op           sqlconverter.Operation
		amount       any
		expectedSQL  string
		expectedArgs []any
	}{
		{
			op:           sqlconverter.OpAddSeconds,
			amount:       90.5,
			expectedSQL:  `SELECT ("issued_at" + (INTERVAL '1 second' * CAST($1 AS DOUBLE PRECISION))) FROM "sessions"`,
			expectedArgs: []any{90.5},
		},
		{
			op:           sqlconverter.OpAddMinutes,
			amount:       -15,
			expectedSQL:  `SELECT ("issued_at" + (INTERVAL '1 minute' * CAST($1 AS DOUBLE PRECISION))) FROM "sessions"`,
			expectedArgs: []any{int64(-15)},
		},
		{
			op:           sqlconverter.OpAddHours,
			amount:       1.25,
			expectedSQL:  `SELECT ("issued_at" + (INTERVAL '1 hour' * CAST($1 AS DOUBLE PRECISION))) FROM "sessions"`,
			expectedArgs: []any{1.25},
		},
		{
			op:           sqlconverter.OpAddDays,
			amount:       2.5,
			expectedSQL:  `SELECT ("issued_at" + (INTERVAL '1 day' * CAST($1 AS DOUBLE PRECISION))) FROM "sessions"`,
			expectedArgs: []any{2.5},
		},
		{
			op:           sqlconverter.OpAddMonths,
			amount:       1,
			expectedSQL:  `SELECT ("issued_at" + (INTERVAL '1 month' * CAST($1 AS INTEGER))) FROM "sessions"`,
			expectedArgs: []any{int64(1)},
		},
		{
			op:           sqlconverter.OpAddYears,
			amount:       -3,
			expectedSQL:  `SELECT ("issued_at" + (INTERVAL '1 year' * CAST($1 AS INTEGER))) FROM "sessions"`,
			expectedArgs: []any{int64(-3)},
		},
	}

	model := givenModel(t)

	for _, tc := range testCases {
		t.Run(string(tc.op), func(t *testing.T) {
			// arrange
			expression, err := model.Translate(tc.op, goqu.C("issued_at"), tc.amount)
			require.NoError(t, err)

			// act
			sqlQuery, args, toSQLErr := goqu.Dialect("postgres").
				From("sessions").
				Select(expression).
				Prepared(true).
				ToSQL()

			// assert
			require.NoError(t, toSQLErr)
			assert.Equal(t, tc.expectedSQL, sqlQuery)
			assert.Equal(t, tc.expectedArgs, args)
		})
	}
}

func Test_Model_Translate_Postgres_TimestampValueIsCast(t *testing.T) {
	// arrange
	model := givenModel(t)
	ts, err := utctime.FromFields(2024, time.January, 31, 12, 0, 0)
	require.NoError(t, err)

	expression, err := model.Translate(sqlconverter.OpAddMonths, ts, goqu.C("months"))
	require.NoError(t, err)

	// act
	sqlQuery, args, toSQLErr := goqu.Dialect("postgres").
		From("subscriptions").
		Where(goqu.C("renews_at").Lt(expression)).
		Prepared(true).
		ToSQL()

	// assert
	require.NoError(t, toSQLErr)
	assert.Equal(
		t,
		`SELECT * FROM "subscriptions" WHERE ("renews_at" < (CAST($1 AS TIMESTAMPTZ) + (INTERVAL '1 month' * CAST("months" AS INTEGER))))`,
		sqlQuery,
	)
	assert.Equal(t, []any{ts.ToTime()}, args)
}

func Test_Model_Translate_AmountIsInlined_UnlessPrepared(t *testing.T) {
	// arrange
	model := givenModel(t)
	expression, err := model.Translate(sqlconverter.OpAddDays, goqu.C("issued_at"), 2.5)
	require.NoError(t, err)

	update := goqu.Dialect("postgres").
		Update("sessions").
		Set(goqu.Record{"expires_at": expression}).
		Where(goqu.C("id").Eq("session-1"))

	// act
	inlinedSQL, inlinedArgs, inlinedErr := update.ToSQL()
	preparedSQL, preparedArgs, preparedErr := sqlconverter.Prepare(update).ToSQL()

	// assert
	require.NoError(t, inlinedErr)
	assert.Contains(t, inlinedSQL, `CAST(2.5 AS DOUBLE PRECISION)`)
	assert.Empty(t, inlinedArgs)

	require.NoError(t, preparedErr)
	assert.Contains(t, preparedSQL, `CAST($1 AS DOUBLE PRECISION)`)
	assert.NotContains(t, preparedSQL, "2.5")
	assert.Equal(t, []any{2.5, "session-1"}, preparedArgs)
}

func Test_Prepare_LeavesOtherStatementsUnchanged(t *testing.T) {
	// arrange
	ddl := sqlconverter.RawSQL("DROP TABLE sessions")

	// act
	sqlQuery, args, err := sqlconverter.Prepare(ddl).ToSQL()

	// assert
	require.NoError(t, err)
	assert.Equal(t, "DROP TABLE sessions", sqlQuery)
	assert.Empty(t, args)
}

func Test_Model_Translate_MySQL(t *testing.T) {
	// arrange
	model := givenModel(t, sqlconverter.WithDialect("mysql"))

	days, err := model.Translate(sqlconverter.OpAddDays, goqu.C("issued_at"), 1.5)
	require.NoError(t, err)

	years, err := model.Translate(sqlconverter.OpAddYears, goqu.C("issued_at"), 2)
	require.NoError(t, err)

	// act
	sqlQuery, args, toSQLErr := goqu.Dialect("mysql").
		From("sessions").
		Select(days, years).
		Prepared(true).
		ToSQL()

	// assert
	require.NoError(t, toSQLErr)
	assert.Equal(
		t,
		"SELECT (`issued_at` + INTERVAL ROUND(? * 86400000000) MICROSECOND), (`issued_at` + INTERVAL ? YEAR) FROM `sessions`",
		sqlQuery,
	)
	assert.Equal(t, []any{1.5, int64(2)}, args)
	assert.Equal(t, "mysql", model.Dialect())
}

func Test_Model_Translate_ShouldFail(t *testing.T) {
	t.Run("translations not registered", func(t *testing.T) {
		model, err := sqlconverter.NewModel()
		require.NoError(t, err)

		_, translateErr := model.Translate(sqlconverter.OpAddDays, goqu.C("issued_at"), 1)

		assert.ErrorIs(t, translateErr, sqlconverter.ErrTranslationNotRegistered)
		assert.False(t, model.IsRegistered(sqlconverter.OpAddDays))
	})

	t.Run("unknown operation", func(t *testing.T) {
		model := givenModel(t)

		_, translateErr := model.Translate("AddFortnights", goqu.C("issued_at"), 1)

		assert.ErrorIs(t, translateErr, sqlconverter.ErrUnknownOperation)
	})
}

func Test_NewModel_ShouldFail_WithUnsupportedDialect(t *testing.T) {
	model, err := sqlconverter.NewModel(sqlconverter.WithDialect("oracle"))

	assert.ErrorIs(t, err, sqlconverter.ErrUnsupportedDialect)
	assert.Nil(t, model)
}

func Test_Model_UseUTCTimestamp_IsIdempotent(t *testing.T) {
	// arrange
	logHandlerSpy := helper.NewLogHandlerSpy(false)
	model, err := sqlconverter.NewModel(sqlconverter.WithModelLogger(slog.New(logHandlerSpy)))
	require.NoError(t, err)

	// act
	model.UseUTCTimestamp().UseUTCTimestamp()

	// assert
	for _, op := range sqlconverter.Operations() {
		assert.True(t, model.IsRegistered(op), op)
	}

	assert.Equal(t, 6, logHandlerSpy.CountLogsWithMessage(slog.LevelDebug, "timestamp translation registered"))
	assert.True(
		t,
		logHandlerSpy.HasDebugLogWithMessage("timestamp translation registered").
			WithAttr("operation", "AddSeconds").
			WithAttr("dialect", "postgres").
			Assert(),
	)
}
