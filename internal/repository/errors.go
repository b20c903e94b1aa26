package repository

import "github.com/Dhoini/Billing-microservice/internal/domain"

// Aliases for the shared application errors so repository code does not
// import domain everywhere just for sentinels. errors.Is matches either
// name.
var (
	ErrNotFound  = domain.ErrNotFound
	ErrDuplicate = domain.ErrDuplicate
)
