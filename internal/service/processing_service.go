package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Dhoini/Billing-microservice/internal/domain"
	"github.com/Dhoini/Billing-microservice/internal/kafka"
	"github.com/Dhoini/Billing-microservice/internal/metrics"
	"github.com/Dhoini/Billing-microservice/internal/notification"
	"github.com/Dhoini/Billing-microservice/internal/repository"
	"github.com/Dhoini/Billing-microservice/pkg/logger"
)

const defaultWorkers = 2

// Email bodies chosen by status, as rendered in the debit-note mail.
const (
	bodyExpired  = "Segue em anexo sua nota de débito."
	bodyExpiring = "Lembrete de Expiração"
)

// ProcessingService runs the per-customer pipeline over the whole store:
// normalize the expiration date, price the services, classify the
// lifecycle status, persist it, and email a debit note to expiring or
// expired customers. One customer's failure never affects another's.
type ProcessingService struct {
	repo     repository.CustomerRepository
	notifier notification.Notifier
	producer kafka.Producer // nil when event publishing is disabled
	metrics  metrics.ProcessingMetrics
	workers  int
	now      func() time.Time
	log      *logger.Logger
}

// NewProcessingService creates the batch processor. workers <= 0 falls
// back to the default pool size of 2.
func NewProcessingService(
	repo repository.CustomerRepository,
	notifier notification.Notifier,
	producer kafka.Producer,
	m metrics.ProcessingMetrics,
	workers int,
	log *logger.Logger,
) *ProcessingService {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &ProcessingService{
		repo:     repo,
		notifier: notifier,
		producer: producer,
		metrics:  m,
		workers:  workers,
		now:      time.Now,
		log:      log,
	}
}

// ProcessAll fetches every customer and fans the per-customer pipeline
// out over a fixed worker pool. It is best-effort: outcomes are logged
// per customer and the run never aborts as a whole. Re-running with
// unchanged data and an unchanged clock recomputes the same statuses and
// re-sends the same notifications (at-least-once, no dedup).
func (s *ProcessingService) ProcessAll(ctx context.Context) {
	start := s.now()
	s.log.Infow("Processing all customers")

	customers, err := s.repo.GetAll(ctx)
	if err != nil {
		s.log.Errorw("Failed to fetch customers for processing", "error", err)
		return
	}
	if len(customers) == 0 {
		s.log.Warnw("No customers to process")
		return
	}

	jobs := make(chan domain.Customer)
	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for customer := range jobs {
				s.processCustomerSafe(ctx, customer)
			}
		}()
	}

	for _, customer := range customers {
		jobs <- customer
	}
	close(jobs)
	wg.Wait()

	elapsed := s.now().Sub(start)
	s.metrics.ObserveBatchDuration(elapsed.Seconds())
	s.log.Infow("Finished processing all customers", "count", len(customers), "elapsed", elapsed.String())
}

// processCustomerSafe is the per-customer recovery boundary: every error
// from the pipeline is logged with the customer's email and swallowed.
func (s *ProcessingService) processCustomerSafe(ctx context.Context, customer domain.Customer) {
	status, notified, err := s.processCustomer(ctx, customer)
	if err != nil {
		s.metrics.IncProcessingFailed()
		s.log.Errorw("Failed to process customer", "error", err, "email", customer.Email)
		return
	}

	s.metrics.IncProcessed(string(status))
	s.log.Infow("Customer processed", "email", customer.Email, "status", status, "notified", notified)
}

// processCustomer runs one customer's pipeline. The steps are strictly
// sequential; a status-persistence failure is logged but does not stop
// the notification, since delivering the note matters more than keeping
// the stored status in sync for one run.
func (s *ProcessingService) processCustomer(ctx context.Context, customer domain.Customer) (domain.Status, bool, error) {
	expiration, err := domain.ParseExpirationDate(customer.ExpirationDate)
	if err != nil {
		return "", false, err
	}

	prices := domain.CalculatePrice(customer.ServiceList(), customer.Age)
	daysLeft := domain.DaysUntilExpiration(expiration, s.now())
	status := domain.StatusForDaysLeft(daysLeft)

	if err := s.repo.UpdateStatus(ctx, customer.ID, status); err != nil {
		s.log.Errorw("Failed to persist customer status", "error", err, "email", customer.Email, "status", status)
	}

	notified := false
	if status.NeedsNotification() {
		if err := s.sendDebitNote(customer, status, prices); err != nil {
			s.metrics.IncNotificationFailed()
			return status, false, err
		}
		s.metrics.IncNotificationSent(string(status))
		notified = true
	}

	s.publishOutcome(ctx, customer, status, prices, notified)
	return status, notified, nil
}

func (s *ProcessingService) sendDebitNote(customer domain.Customer, status domain.Status, prices domain.PriceBreakdown) error {
	document, err := s.notifier.GenerateDebitNote(customer, status, prices)
	if err != nil {
		return fmt.Errorf("failed to generate debit note: %w", err)
	}

	subject := "Sua Nota de Débito - " + string(status)
	body := bodyExpiring
	if status == domain.StatusExpired {
		body = bodyExpired
	}

	if err := s.notifier.Send(customer.Email, subject, body, document); err != nil {
		return fmt.Errorf("failed to send debit note: %w", err)
	}

	s.log.Infow("Debit note sent", "email", customer.Email, "status", status, "document", document)
	return nil
}

func (s *ProcessingService) publishOutcome(ctx context.Context, customer domain.Customer, status domain.Status, prices domain.PriceBreakdown, notified bool) {
	if s.producer == nil {
		return
	}

	event := &kafka.ProcessedEvent{
		CustomerID:  customer.ID,
		Email:       customer.Email,
		Status:      string(status),
		FinalPrice:  prices.FinalPrice,
		Notified:    notified,
		ProcessedAt: s.now(),
	}
	if err := s.producer.PublishProcessedEvent(ctx, event); err != nil {
		s.log.Warnw("Failed to publish processed event", "error", err, "email", customer.Email)
	}
}
