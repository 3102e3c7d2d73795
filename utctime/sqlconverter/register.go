package sqlconverter

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AntonStoeckl/utctimestamp-go/utctime"
)

const pgTypeTimestamptz = "timestamptz"

// RegisterTypes makes timestamptz the default PostgreSQL type of Timestamp and NullTimestamp
// on m. Registering twice has no further effect.
func RegisterTypes(m *pgtype.Map) {
	m.RegisterDefaultPgType(utctime.Timestamp{}, pgTypeTimestamptz)
	m.RegisterDefaultPgType(&utctime.Timestamp{}, pgTypeTimestamptz)
	m.RegisterDefaultPgType(utctime.NullTimestamp{}, pgTypeTimestamptz)
	m.RegisterDefaultPgType(&utctime.NullTimestamp{}, pgTypeTimestamptz)
}

// AfterConnect registers the types on a new connection. It fits pgxpool.Config.AfterConnect.
func AfterConnect(_ context.Context, conn *pgx.Conn) error {
	RegisterTypes(conn.TypeMap())

	return nil
}

// ConfigurePool chains AfterConnect behind an already configured hook and returns cfg.
func ConfigurePool(cfg *pgxpool.Config) *pgxpool.Config {
	previous := cfg.AfterConnect

	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		if previous != nil {
			if err := previous(ctx, conn); err != nil {
				return err
			}
		}

		return AfterConnect(ctx, conn)
	}

	return cfg
}
