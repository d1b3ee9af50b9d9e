package supabase

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
)

// ErrInsufficientCredits is returned by ledger mutations when the account
// balance cannot cover the requested debit. Handlers map it to 402 so the
// client can route the user to the purchase flow.
var ErrInsufficientCredits = errors.New("insufficient credits")

// DatabaseClient talks straight to the Supabase Postgres instance over
// DATABASE_URL. All ledger mutations are single conditional statements so
// concurrent requests cannot lose updates.
type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}
