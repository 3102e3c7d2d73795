//go:build integration

package sqlconverter_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/AntonStoeckl/utctimestamp-go/testutil/config"
	"github.com/AntonStoeckl/utctimestamp-go/testutil/helper"
	"github.com/AntonStoeckl/utctimestamp-go/testutil/helper/postgreswrapper"
	"github.com/AntonStoeckl/utctimestamp-go/utctime"
	"github.com/AntonStoeckl/utctimestamp-go/utctime/sqlconverter"
)

var postgres = goqu.Dialect("postgres")

func skipInShortMode(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}
}

func givenTimestamp(t *testing.T, text string) utctime.Timestamp {
	t.Helper()

	ts, err := utctime.Parse(text)
	require.NoError(t, err)

	return ts
}

func givenSessionsWereInserted(
	t *testing.T,
	ctx context.Context,
	executor *sqlconverter.Executor,
	table string,
	rows ...goqu.Record,
) {
	t.Helper()

	rowsAffected, err := executor.Exec(ctx, postgres.Insert(table).Rows(toInterfaces(rows)...))
	require.NoError(t, err, "error in arranging test data")
	require.Equal(t, int64(len(rows)), rowsAffected)
}

func toInterfaces(rows []goqu.Record) []any {
	values := make([]any, 0, len(rows))
	for _, row := range rows {
		values = append(values, row)
	}

	return values
}

func Test_Executor_Integration(t *testing.T) {
	skipInShortMode(t)

	dsn := helper.PostgresDSN(t)
	logHandlerSpy := helper.NewLogHandlerSpy(false)
	wrapper := postgreswrapper.CreateWrapper(t, dsn, sqlconverter.WithLogger(slog.New(logHandlerSpy)))
	executor := wrapper.GetExecutor()
	ctx := context.Background()

	model, err := sqlconverter.NewModel()
	require.NoError(t, err)
	model.UseUTCTimestamp()

	t.Run("round trip keeps values and sentinels", func(t *testing.T) {
		// arrange
		table := helper.GivenSessionsTable(t, ctx, executor)
		issuedAt := givenTimestamp(t, "2024-03-15T10:30:00.123456Z")

		givenSessionsWereInserted(t, ctx, executor, table,
			goqu.Record{"id": "a", "issued_at": issuedAt, "expires_at": utctime.NullTimestamp{}},
			goqu.Record{"id": "b", "issued_at": utctime.MinValue, "expires_at": utctime.NewNullTimestamp(issuedAt)},
			goqu.Record{"id": "c", "issued_at": utctime.MaxValue, "expires_at": utctime.NewNullTimestamp(utctime.MaxValue)},
		)

		// act
		timestamps, queryErr := executor.QueryTimestamps(
			ctx,
			postgres.From(table).Select("issued_at").Order(goqu.C("id").Asc()),
		)

		// assert
		require.NoError(t, queryErr)
		assert.Equal(t, []utctime.Timestamp{issuedAt, utctime.MinValue, utctime.MaxValue}, timestamps)
		assert.True(t, logHandlerSpy.HasInfoLogWithMessage("sqlconverter operation: timestamps queried").
			WithRowCount().
			WithDurationMS().
			Assert())
		assert.True(t, logHandlerSpy.HasInfoLogWithMessage("sqlconverter operation: statement executed").
			WithRowsAffected().
			Assert())
		assert.True(t, logHandlerSpy.HasDebugLogWithMessage("executed sql for: query").WithDurationMS().Assert())
	})

	t.Run("NULL fails for Timestamp", func(t *testing.T) {
		// arrange
		table := helper.GivenSessionsTable(t, ctx, executor)
		givenSessionsWereInserted(t, ctx, executor, table,
			goqu.Record{"id": "a", "issued_at": utctime.Now(), "expires_at": utctime.NullTimestamp{}},
		)

		// act
		_, queryErr := executor.QueryTimestamp(ctx, postgres.From(table).Select("expires_at"))

		// assert
		assert.ErrorIs(t, queryErr, sqlconverter.ErrScanningRowFailed)
		assert.ErrorIs(t, queryErr, utctime.ErrNullValue)
	})

	t.Run("no rows", func(t *testing.T) {
		table := helper.GivenSessionsTable(t, ctx, executor)

		_, queryErr := executor.QueryTimestamp(ctx, postgres.From(table).Select("issued_at"))

		assert.ErrorIs(t, queryErr, sqlconverter.ErrNoRows)
	})

	t.Run("more than one row", func(t *testing.T) {
		// arrange
		table := helper.GivenSessionsTable(t, ctx, executor)
		givenSessionsWereInserted(t, ctx, executor, table,
			goqu.Record{"id": "a", "issued_at": utctime.Now()},
			goqu.Record{"id": "b", "issued_at": utctime.Now()},
		)

		// act
		_, queryErr := executor.QueryTimestamp(ctx, postgres.From(table).Select("issued_at"))

		// assert
		assert.ErrorIs(t, queryErr, sqlconverter.ErrTooManyRows)
	})

	t.Run("update with a translated amount on an unprepared dataset", func(t *testing.T) {
		// arrange
		table := helper.GivenSessionsTable(t, ctx, executor)
		givenSessionsWereInserted(t, ctx, executor, table,
			goqu.Record{"id": "a", "issued_at": givenTimestamp(t, "2024-03-15T10:00:00Z")},
		)

		expiry, translateErr := model.Translate(sqlconverter.OpAddDays, goqu.C("issued_at"), 2.5)
		require.NoError(t, translateErr)

		// act
		rowsAffected, execErr := executor.Exec(
			ctx,
			postgres.Update(table).Set(goqu.Record{"expires_at": expiry}).Where(goqu.C("id").Eq("a")),
		)

		// assert
		require.NoError(t, execErr)
		assert.Equal(t, int64(1), rowsAffected)

		expiresAt, queryErr := executor.QueryTimestamp(ctx, postgres.From(table).Select("expires_at"))
		require.NoError(t, queryErr)
		assert.Equal(t, givenTimestamp(t, "2024-03-17T22:00:00Z"), expiresAt)
	})

	t.Run("translations match in-memory arithmetic", func(t *testing.T) {
		testCases := []struct {
			op     sqlconverter.Operation
			from   string
			amount float64
		}{
			{op: sqlconverter.OpAddSeconds, from: "2024-01-31T08:00:00Z", amount: 1.5},
			{op: sqlconverter.OpAddSeconds, from: "2024-01-31T08:00:00Z", amount: -0.000125},
			{op: sqlconverter.OpAddMinutes, from: "2024-01-31T08:00:00Z", amount: -90},
			{op: sqlconverter.OpAddHours, from: "2024-01-31T08:00:00Z", amount: 36.25},
			{op: sqlconverter.OpAddDays, from: "2024-01-31T08:00:00Z", amount: 2.5},
			{op: sqlconverter.OpAddDays, from: "2024-03-30T12:00:00Z", amount: -0.75},
			{op: sqlconverter.OpAddMonths, from: "2024-01-31T08:00:00Z", amount: 1},
			{op: sqlconverter.OpAddMonths, from: "2024-03-31T23:59:59Z", amount: -13},
			{op: sqlconverter.OpAddYears, from: "2024-02-29T06:00:00Z", amount: 1},
			{op: sqlconverter.OpAddYears, from: "2024-02-29T06:00:00Z", amount: -4},
		}

		for _, tc := range testCases {
			t.Run(string(tc.op), func(t *testing.T) {
				// arrange
				from := givenTimestamp(t, tc.from)

				var amount any = tc.amount
				if unit, _ := tc.op.Unit(); unit.IsCalendar() {
					amount = int(tc.amount)
				}

				expression, translateErr := model.Translate(tc.op, from, amount)
				require.NoError(t, translateErr)

				expected, applyErr := tc.op.Apply(from, tc.amount)
				require.NoError(t, applyErr)

				// act
				actual, queryErr := executor.QueryTimestamp(ctx, postgres.Select(expression))

				// assert
				require.NoError(t, queryErr)
				assert.Equal(t, expected, actual, "%s(%s, %v)", tc.op, tc.from, tc.amount)
			})
		}
	})

	t.Run("translated column expression in a filter", func(t *testing.T) {
		// arrange
		table := helper.GivenSessionsTable(t, ctx, executor)
		cutoff := givenTimestamp(t, "2024-03-15T00:00:00Z")

		givenSessionsWereInserted(t, ctx, executor, table,
			goqu.Record{"id": "expired", "issued_at": givenTimestamp(t, "2024-03-10T00:00:00Z")},
			goqu.Record{"id": "active", "issued_at": givenTimestamp(t, "2024-03-14T00:00:00Z")},
		)

		expiry, translateErr := model.Translate(sqlconverter.OpAddDays, goqu.C("issued_at"), 3)
		require.NoError(t, translateErr)

		// act
		timestamps, queryErr := executor.QueryTimestamps(
			ctx,
			postgres.From(table).Select(expiry).Where(goqu.L("? > ?", expiry, cutoff)),
		)

		// assert
		require.NoError(t, queryErr)
		assert.Equal(t, []utctime.Timestamp{givenTimestamp(t, "2024-03-17T00:00:00Z")}, timestamps)
	})
}

type sessionRecord struct {
	ID        string                `db:"id"`
	IssuedAt  utctime.Timestamp     `db:"issued_at"`
	ExpiresAt utctime.NullTimestamp `db:"expires_at"`
}

func Test_SQLX_StructScanning_Integration(t *testing.T) {
	skipInShortMode(t)

	// arrange
	ctx := context.Background()
	db := config.PostgresSQLXConfig(helper.PostgresDSN(t))
	defer func() { _ = db.Close() }()

	executor, err := sqlconverter.NewExecutorFromSQLX(db)
	require.NoError(t, err)

	table := helper.GivenSessionsTable(t, ctx, executor)
	issuedAt := givenTimestamp(t, "2024-03-15T10:30:00Z")

	givenSessionsWereInserted(t, ctx, executor, table,
		goqu.Record{"id": "a", "issued_at": issuedAt, "expires_at": utctime.NewNullTimestamp(utctime.MaxValue)},
		goqu.Record{"id": "b", "issued_at": issuedAt, "expires_at": utctime.NullTimestamp{}},
	)

	query, args, err := postgres.From(table).
		Select("id", "issued_at", "expires_at").
		Order(goqu.C("id").Asc()).
		Prepared(true).
		ToSQL()
	require.NoError(t, err)

	// act
	var records []sessionRecord
	selectErr := db.SelectContext(ctx, &records, query, args...)

	// assert
	require.NoError(t, selectErr)
	assert.Equal(t, []sessionRecord{
		{ID: "a", IssuedAt: issuedAt, ExpiresAt: utctime.NewNullTimestamp(utctime.MaxValue)},
		{ID: "b", IssuedAt: issuedAt},
	}, records)
}

type gormSession struct {
	ID        string `gorm:"primaryKey"`
	IssuedAt  utctime.Timestamp
	ExpiresAt utctime.NullTimestamp
}

func Test_Gorm_Integration(t *testing.T) {
	skipInShortMode(t)

	// arrange
	db := config.PostgresGormConfig(helper.PostgresDSN(t))
	table := helper.GivenUniqueTableName(t, "gorm_sessions")

	require.NoError(t, db.Table(table).AutoMigrate(&gormSession{}))
	t.Cleanup(func() { _ = db.Migrator().DropTable(table) })

	issuedAt := givenTimestamp(t, "2024-01-31T08:00:00Z")
	sessions := []gormSession{
		{ID: "monthly", IssuedAt: issuedAt, ExpiresAt: utctime.NewNullTimestamp(utctime.MaxValue)},
		{ID: "fresh", IssuedAt: givenTimestamp(t, "2024-03-01T00:00:00Z")},
	}
	require.NoError(t, db.Table(table).Create(&sessions).Error)

	model, err := sqlconverter.NewModel()
	require.NoError(t, err)

	renewal, err := model.UseUTCTimestamp().TranslateGorm(sqlconverter.OpAddMonths, "issued_at", 1)
	require.NoError(t, err)

	// act
	var due []gormSession
	findErr := db.Table(table).
		Where(gorm.Expr("? <= ?", renewal, givenTimestamp(t, "2024-02-29T08:00:00Z"))).
		Find(&due).
		Error

	// assert
	require.NoError(t, findErr)
	require.Len(t, due, 1)
	assert.Equal(t, sessions[0], due[0])
	assert.Equal(t, time.UTC, due[0].IssuedAt.ToTime().Location())
}
