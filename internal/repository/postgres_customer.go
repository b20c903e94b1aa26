package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/Dhoini/Billing-microservice/internal/domain"
	"github.com/Dhoini/Billing-microservice/pkg/logger"
)

const uniqueViolationCode = "23505"

// postgresCustomerRepo implements CustomerRepository for PostgreSQL.
type postgresCustomerRepo struct {
	db  *sqlx.DB
	log *logger.Logger
}

// NewPostgresCustomerRepository creates a new PostgreSQL-backed customer
// repository.
func NewPostgresCustomerRepository(db *sqlx.DB, log *logger.Logger) CustomerRepository {
	return &postgresCustomerRepo{
		db:  db,
		log: log,
	}
}

// EnsureCustomerSchema creates the customers table if it does not exist
// yet. The service owns its schema; there is no external migration tool.
func EnsureCustomerSchema(ctx context.Context, db *sqlx.DB) error {
	schema := `
        CREATE TABLE IF NOT EXISTS customers (
            id              BIGSERIAL PRIMARY KEY,
            name            VARCHAR(100) NOT NULL,
            email           VARCHAR(150) NOT NULL UNIQUE,
            age             INTEGER NOT NULL,
            address         VARCHAR(200) NOT NULL DEFAULT '',
            phone           VARCHAR(20) NOT NULL DEFAULT '',
            services        TEXT NOT NULL,
            expiration_date VARCHAR(30) NOT NULL,
            notes           TEXT NOT NULL DEFAULT '',
            created_at      TIMESTAMPTZ NOT NULL,
            updated_at      TIMESTAMPTZ NOT NULL
        )`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("repository: failed to ensure customers schema: %w", err)
	}
	return nil
}

// GetAll returns every stored customer ordered by ID.
func (r *postgresCustomerRepo) GetAll(ctx context.Context) ([]domain.Customer, error) {
	var customers []domain.Customer
	query := `
        SELECT id, name, email, age, address, phone, services,
               expiration_date, notes, created_at, updated_at
        FROM customers
        ORDER BY id`

	if err := r.db.SelectContext(ctx, &customers, query); err != nil {
		r.log.Errorw("Failed to get customers from DB", "error", err)
		return nil, fmt.Errorf("repository: failed to get customers: %w", err)
	}

	r.log.Debugw("Successfully retrieved customers", "count", len(customers))
	if customers == nil {
		customers = []domain.Customer{}
	}
	return customers, nil
}

// GetByID returns the customer with the given ID.
func (r *postgresCustomerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	var customer domain.Customer
	query := `
        SELECT id, name, email, age, address, phone, services,
               expiration_date, notes, created_at, updated_at
        FROM customers
        WHERE id = $1`

	if err := r.db.GetContext(ctx, &customer, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnw("Customer not found by ID", "customerID", id)
			return nil, ErrNotFound
		}
		r.log.Errorw("Failed to get customer by ID from DB", "error", err, "customerID", id)
		return nil, fmt.Errorf("repository: failed to get customer by ID: %w", err)
	}

	return &customer, nil
}

// Create inserts a new customer and fills in the generated ID.
func (r *postgresCustomerRepo) Create(ctx context.Context, customer *domain.Customer) error {
	now := time.Now()
	customer.CreatedAt = now
	customer.UpdatedAt = now

	query := `
        INSERT INTO customers (
            name, email, age, address, phone, services,
            expiration_date, notes, created_at, updated_at
        ) VALUES (
            :name, :email, :age, :address, :phone, :services,
            :expiration_date, :notes, :created_at, :updated_at
        ) RETURNING id`

	rows, err := r.db.NamedQueryContext(ctx, query, customer)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			r.log.Warnw("Customer with this email already exists", "email", customer.Email)
			return ErrDuplicate
		}
		r.log.Errorw("Failed to create customer in DB", "error", err, "email", customer.Email)
		return fmt.Errorf("repository: failed to create customer: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&customer.ID); err != nil {
			r.log.Errorw("Failed to scan generated customer ID", "error", err, "email", customer.Email)
			return fmt.Errorf("repository: failed to scan customer ID: %w", err)
		}
	}

	r.log.Debugw("Successfully created customer in DB", "customerID", customer.ID, "email", customer.Email)
	return nil
}

// UpdateStatus writes the computed lifecycle status into the notes
// column. Each call runs in its own short transaction on its own pooled
// connection, so concurrent workers never share a session.
func (r *postgresCustomerRepo) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.log.Errorw("Failed to begin status update transaction", "error", err, "customerID", id)
		return fmt.Errorf("repository: failed to begin transaction: %w", err)
	}

	query := `UPDATE customers SET notes = $1, updated_at = $2 WHERE id = $3`
	result, err := tx.ExecContext(ctx, query, string(status), time.Now(), id)
	if err != nil {
		_ = tx.Rollback()
		r.log.Errorw("Failed to update customer status in DB", "error", err, "customerID", id)
		return fmt.Errorf("repository: failed to update customer status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err == nil && rowsAffected == 0 {
		_ = tx.Rollback()
		r.log.Warnw("Customer status update affected 0 rows", "customerID", id)
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		r.log.Errorw("Failed to commit status update", "error", err, "customerID", id)
		return fmt.Errorf("repository: failed to commit status update: %w", err)
	}

	r.log.Debugw("Successfully updated customer status", "customerID", id, "status", status)
	return nil
}
