package repository

import (
	"context"

	"github.com/Dhoini/Billing-microservice/internal/domain"
)

// CustomerRepository defines the persistence operations the service
// needs for customers. Implementations must return the package sentinel
// errors so callers can log and continue instead of aborting a batch.
type CustomerRepository interface {
	// GetAll returns every stored customer. An empty store yields an
	// empty slice, not an error.
	GetAll(ctx context.Context) ([]domain.Customer, error)

	// GetByID returns the customer with the given ID or ErrNotFound.
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)

	// Create inserts a new customer and fills in its generated ID and
	// timestamps. Returns ErrDuplicate when the email is already taken.
	Create(ctx context.Context, customer *domain.Customer) error

	// UpdateStatus persists a newly computed lifecycle status into the
	// customer's notes column.
	UpdateStatus(ctx context.Context, id int64, status domain.Status) error
}
