package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"tpv/internal/config"
)

// DSN builds the MySQL DSN. Dates are parsed into loc so DATE columns
// round-trip as calendar days of the authoritative zone.
func DSN(cfg config.DBConfig, loc *time.Location) string {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Pass
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	mc.DBName = cfg.Name
	mc.ParseTime = true
	mc.Loc = loc
	return mc.FormatDSN()
}

// Connect opens the pool and waits for the server to answer a ping.
func Connect(cfg config.DBConfig, loc *time.Location) (*sql.DB, error) {
	dsn := DSN(cfg, loc)
	retries := cfg.ConnectRetries
	if retries < 1 {
		retries = 1
	}

	var db *sql.DB
	var err error
	for i := 0; i < retries; i++ {
		db, err = sql.Open("mysql", dsn)
		if err == nil {
			err = db.Ping()
			if err == nil {
				db.SetMaxOpenConns(25)
				db.SetMaxIdleConns(5)
				db.SetConnMaxLifetime(5 * time.Minute)
				log.Info().Str("db", cfg.Name).Msg("connected to database")
				return db, nil
			}
			db.Close()
		}
		log.Warn().Err(err).Int("attempt", i+1).Str("db", cfg.Name).Str("addr", cfg.Host+":"+cfg.Port).Msg("failed to connect to database")
		if i < retries-1 {
			time.Sleep(3 * time.Second)
		}
	}
	return nil, errors.Wrapf(err, "failed to connect to DB %s at %s:%s after %d attempts", cfg.Name, cfg.Host, cfg.Port, retries)
}
