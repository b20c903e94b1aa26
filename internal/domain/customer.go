package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and storage format for expiration dates.
const DateLayout = "2006-01-02"

// Customer is a subscriber with a set of purchased services and an
// expiration date. Notes holds the last lifecycle status computed by the
// batch processor; nothing else writes it.
type Customer struct {
	ID             int64     `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Email          string    `db:"email" json:"email"`
	Age            int       `db:"age" json:"age"`
	Address        string    `db:"address" json:"address,omitempty"`
	Phone          string    `db:"phone" json:"phone,omitempty"`
	Services       string    `db:"services" json:"services"`
	ExpirationDate string    `db:"expiration_date" json:"expiration_date"`
	Notes          string    `db:"notes" json:"notes,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// ServiceList splits the comma-joined services column into individual
// entries. An empty column yields an empty list.
func (c *Customer) ServiceList() []string {
	if c.Services == "" {
		return []string{}
	}
	return strings.Split(c.Services, ",")
}

// CustomerRequest is the payload for creating a customer.
type CustomerRequest struct {
	Name           string   `json:"name" binding:"required"`
	Email          string   `json:"email" binding:"required,email"`
	Age            int      `json:"age" binding:"required,gt=0"`
	Address        string   `json:"address"`
	Phone          string   `json:"phone"`
	Services       []string `json:"services" binding:"required,min=1"`
	ExpirationDate string   `json:"expiration_date" binding:"required"`
	Notes          string   `json:"notes"`
}

// CustomerResponse is the shape returned by the list endpoint: services
// come back as a list and the stored notes column is surfaced as status.
type CustomerResponse struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Address        string   `json:"address,omitempty"`
	Phone          string   `json:"phone,omitempty"`
	Services       []string `json:"services"`
	ExpirationDate string   `json:"expiration_date"`
	Status         string   `json:"status,omitempty"`
}

// CreatedCustomerResponse is the payload returned on successful creation.
type CreatedCustomerResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// ParseExpirationDate normalizes an expiration date. It accepts the
// "YYYY-MM-DD" storage form as well as a full timestamp, which is what a
// DATE column scanned as text can look like. Any other shape is a data
// error for the record that carries it.
func ParseExpirationDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("%w: expiration date %q is not a date or YYYY-MM-DD string", ErrInvalidInput, raw)
}

// DaysUntilExpiration returns the number of whole calendar days between
// now and the expiration date. Negative means already expired.
func DaysUntilExpiration(expiration, now time.Time) int {
	e := time.Date(expiration.Year(), expiration.Month(), expiration.Day(), 0, 0, 0, 0, time.UTC)
	n := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(n).Hours() / 24)
}
