// Package database opens the MySQL connection pool shared by the API
// server and the slug backfill binary.
package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Pool sizing for this workload: short point queries from the HTTP
// handlers plus the backfill job's batch scans.
const (
	maxOpenConns    = 25
	maxIdleConns    = 10
	connMaxLifetime = 30 * time.Minute
)

// Open builds the DSN through the driver's config type, opens a pool and
// verifies connectivity before returning. DATETIME columns are scanned
// as UTC time.Time values so listing and rating timestamps compare
// consistently across layers.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	dc := mysql.NewConfig()
	dc.User = user
	dc.Passwd = pass
	dc.Net = "tcp"
	dc.Addr = host + ":" + port
	dc.DBName = name
	dc.ParseTime = true
	dc.Loc = time.UTC
	dc.Params = map[string]string{"charset": "utf8mb4"}

	db, err := sql.Open("mysql", dc.FormatDSN())
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
