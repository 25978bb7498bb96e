package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	log "github.com/sirupsen/logrus"

	"koon7r-storefront/apperr"
)

// DB holds the database connection. Nil when no database is configured.
var DB *sql.DB

// InitDB opens the connection described by dsn. An empty dsn leaves DB nil:
// reads then return empty results and writes fail with apperr.ErrDatabaseUnavailable.
func InitDB(ctx context.Context, dsn string) error {
	if dsn == "" {
		log.Printf("⚠️ InitDB: No database configured, running without persistence")
		return nil
	}

	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(30 * time.Minute)

	// Test the connection
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	DB = conn
	log.Printf("✅ InitDB: Database connection established successfully")
	return nil
}

// Available reports whether a database is configured
func Available() bool {
	return DB != nil
}

// Require returns apperr.ErrDatabaseUnavailable when no database is configured
func Require() error {
	if DB == nil {
		return apperr.ErrDatabaseUnavailable
	}
	return nil
}

// CloseDB closes the database connection
func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
