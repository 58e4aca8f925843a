// Command punchlog-server runs the reference API backend on sqlite.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/punchlog/go-punchlog/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "punchlog-server:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		addr          string
		dsn           string
		signingKey    string
		issuer        string
		expiration    time.Duration
		adminEmail    string
		adminPassword string
		debug         bool
	)

	pflag.StringVar(&addr, "addr", ":8080", "listen address")
	pflag.StringVar(&dsn, "db", "file:punchlog.db?cache=shared&mode=rwc", "sqlite DSN")
	pflag.StringVar(&signingKey, "signing-key", "", "token signing key")
	pflag.StringVar(&issuer, "issuer", "punchlog", "token issuer")
	pflag.DurationVar(&expiration, "token-expiration", 24*time.Hour, "token lifetime")
	pflag.StringVar(&adminEmail, "admin-email", "", "seed an admin account with this email")
	pflag.StringVar(&adminPassword, "admin-password", "", "password for the seeded admin account")
	pflag.BoolVar(&debug, "debug", false, "dump request payloads")
	pflag.Parse()

	if signingKey == "" {
		signingKey = os.Getenv("PUNCHLOG_SIGNING_KEY")
	}
	if signingKey == "" {
		return fmt.Errorf("missing signing key: pass --signing-key or set PUNCHLOG_SIGNING_KEY")
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return err
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	defer db.Close()

	ctx := context.Background()

	if err := server.Migrate(ctx, db); err != nil {
		return err
	}

	logger := server.DefaultLogger()
	users := server.NewUsersRepository(db)
	records := server.NewClockRecordsRepository(db)
	tokens := server.NewTokenService([]byte(signingKey), expiration, issuer, logger)

	if adminEmail != "" && adminPassword != "" {
		if _, err := server.SeedAdmin(ctx, users, adminEmail, adminPassword); err != nil {
			return err
		}
		logger.Info("seeded admin account", "email", adminEmail)
	}

	app := server.NewApp(users, records, tokens,
		server.WithDebug(debug),
		server.WithAppLogger(logger),
	)

	return app.Listen(addr)
}
