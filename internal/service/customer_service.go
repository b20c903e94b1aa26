package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Dhoini/Billing-microservice/internal/domain"
	"github.com/Dhoini/Billing-microservice/internal/metrics"
	"github.com/Dhoini/Billing-microservice/internal/repository"
	"github.com/Dhoini/Billing-microservice/pkg/logger"
)

// CustomerService exposes the customer read/create operations behind the
// HTTP API.
type CustomerService interface {
	// GetAll returns every stored customer whose record passes shape
	// validation. Malformed records are logged and dropped, never
	// failing the whole listing.
	GetAll(ctx context.Context) ([]domain.CustomerResponse, error)

	// Create validates and stores a new customer. The expiration date
	// must be strictly in the future; this is the only place that
	// invariant is enforced.
	Create(ctx context.Context, req domain.CustomerRequest) (*domain.Customer, error)
}

type customerService struct {
	repo    repository.CustomerRepository
	metrics metrics.ProcessingMetrics
	now     func() time.Time
	log     *logger.Logger
}

// NewCustomerService creates the customer service.
func NewCustomerService(repo repository.CustomerRepository, m metrics.ProcessingMetrics, log *logger.Logger) CustomerService {
	return &customerService{
		repo:    repo,
		metrics: m,
		now:     time.Now,
		log:     log,
	}
}

func (s *customerService) GetAll(ctx context.Context) ([]domain.CustomerResponse, error) {
	customers, err := s.repo.GetAll(ctx)
	if err != nil {
		s.log.Errorw("Failed to retrieve customers", "error", err)
		return nil, err
	}

	valid := make([]domain.CustomerResponse, 0, len(customers))
	for _, customer := range customers {
		resp, err := shapeCustomer(customer)
		if err != nil {
			s.log.Errorw("Dropping malformed customer record from listing", "error", err, "customerID", customer.ID)
			continue
		}
		valid = append(valid, *resp)
	}

	s.log.Debugw("Validated customer listing", "total", len(customers), "valid", len(valid))
	return valid, nil
}

func (s *customerService) Create(ctx context.Context, req domain.CustomerRequest) (*domain.Customer, error) {
	expiration, err := domain.ParseExpirationDate(req.ExpirationDate)
	if err != nil {
		return nil, err
	}

	today := s.now()
	if domain.DaysUntilExpiration(expiration, today) <= 0 {
		return nil, fmt.Errorf("%w: expiration date must be in the future", domain.ErrInvalidInput)
	}

	for _, svc := range req.Services {
		if strings.TrimSpace(svc) == "" {
			return nil, fmt.Errorf("%w: services must not contain empty entries", domain.ErrInvalidInput)
		}
	}

	customer := &domain.Customer{
		Name:           req.Name,
		Email:          req.Email,
		Age:            req.Age,
		Address:        req.Address,
		Phone:          req.Phone,
		Services:       strings.Join(req.Services, ","),
		ExpirationDate: expiration.Format(domain.DateLayout),
		Notes:          req.Notes,
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err
	}

	s.metrics.IncCustomerCreated()
	s.log.Infow("Customer created", "customerID", customer.ID, "email", customer.Email)
	return customer, nil
}

// shapeCustomer validates a stored record before it is returned by the
// list endpoint: it must carry a name, an email, at least one service
// and a parseable expiration date.
func shapeCustomer(customer domain.Customer) (*domain.CustomerResponse, error) {
	if customer.Name == "" || customer.Email == "" {
		return nil, fmt.Errorf("%w: missing name or email", domain.ErrInvalidInput)
	}
	if customer.Services == "" {
		return nil, fmt.Errorf("%w: empty services", domain.ErrInvalidInput)
	}
	expiration, err := domain.ParseExpirationDate(customer.ExpirationDate)
	if err != nil {
		return nil, err
	}

	return &domain.CustomerResponse{
		ID:             customer.ID,
		Name:           customer.Name,
		Email:          customer.Email,
		Address:        customer.Address,
		Phone:          customer.Phone,
		Services:       customer.ServiceList(),
		ExpirationDate: expiration.Format(domain.DateLayout),
		Status:         customer.Notes,
	}, nil
}
