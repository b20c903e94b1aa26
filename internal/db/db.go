package db

import (
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/Dhoini/Billing-microservice/pkg/logger"
)

// DBClient owns the database connection pool for the service.
type DBClient struct {
	db  *sqlx.DB
	log *logger.Logger
}

// NewDBClient connects to PostgreSQL via the pgx stdlib driver and
// verifies the connection.
func NewDBClient(dsn string, log *logger.Logger) (*DBClient, error) {
	conn, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		log.Errorw("Failed to connect to database", "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		log.Errorw("Failed to ping database", "error", err)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DBClient{db: conn, log: log}, nil
}

// DB exposes the underlying sqlx pool for the repository layer.
func (dc *DBClient) DB() *sqlx.DB {
	return dc.db
}

// Close closes the database connection pool.
func (dc *DBClient) Close() error {
	if err := dc.db.Close(); err != nil {
		dc.log.Errorw("Failed to close database connection", "error", err)
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}
