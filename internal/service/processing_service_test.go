package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dhoini/Billing-microservice/internal/domain"
	"github.com/Dhoini/Billing-microservice/internal/kafka"
	"github.com/Dhoini/Billing-microservice/internal/metrics"
	"github.com/Dhoini/Billing-microservice/pkg/logger"
)

type fakeCustomerRepo struct {
	mu         sync.Mutex
	customers  []domain.Customer
	statuses   map[int64]domain.Status
	failUpdate bool
	listErr    error
}

func newFakeCustomerRepo(customers ...domain.Customer) *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: customers, statuses: make(map[int64]domain.Status)}
}

func (f *fakeCustomerRepo) GetAll(_ context.Context) ([]domain.Customer, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.customers, nil
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id int64) (*domain.Customer, error) {
	for i := range f.customers {
		if f.customers[i].ID == id {
			return &f.customers[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCustomerRepo) Create(_ context.Context, customer *domain.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	customer.ID = int64(len(f.customers) + 1)
	f.customers = append(f.customers, *customer)
	return nil
}

func (f *fakeCustomerRepo) UpdateStatus(_ context.Context, id int64, status domain.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdate {
		return errors.New("storage unavailable")
	}
	f.statuses[id] = status
	return nil
}

type sentMail struct {
	to      string
	subject string
	body    string
	doc     string
}

type fakeNotifier struct {
	mu           sync.Mutex
	generated    []int64
	sent         []sentMail
	failGenerate bool
}

func (f *fakeNotifier) GenerateDebitNote(customer domain.Customer, _ domain.Status, _ domain.PriceBreakdown) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGenerate {
		return "", errors.New("render failed")
	}
	f.generated = append(f.generated, customer.ID)
	return "/tmp/out.pdf", nil
}

func (f *fakeNotifier) Send(to, subject, body, attachment string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body, doc: attachment})
	return nil
}

func (f *fakeNotifier) sentTo(email string) *sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.sent {
		if f.sent[i].to == email {
			return &f.sent[i]
		}
	}
	return nil
}

type fakeProducer struct {
	mu     sync.Mutex
	events []kafka.ProcessedEvent
}

func (f *fakeProducer) PublishProcessedEvent(_ context.Context, event *kafka.ProcessedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, *event)
	return nil
}

func (f *fakeProducer) Close() error { return nil }

func testMetrics() metrics.ProcessingMetrics {
	return metrics.NewProcessingMetrics(prometheus.NewRegistry())
}

func newTestProcessor(repo *fakeCustomerRepo, notifier *fakeNotifier, producer kafka.Producer) *ProcessingService {
	svc := NewProcessingService(repo, notifier, producer, testMetrics(), 2, logger.New("error"))
	svc.now = func() time.Time {
		return time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestProcessAllEmptyStore(t *testing.T) {
	repo := newFakeCustomerRepo()
	notifier := &fakeNotifier{}

	newTestProcessor(repo, notifier, nil).ProcessAll(context.Background())

	assert.Empty(t, repo.statuses)
	assert.Empty(t, notifier.generated)
	assert.Empty(t, notifier.sent)
}

func TestProcessAllClassifiesAndNotifies(t *testing.T) {
	repo := newFakeCustomerRepo(
		domain.Customer{ID: 1, Name: "Ana", Email: "ana@example.com", Age: 30, Services: "A,B", ExpirationDate: "2025-03-05"},
		domain.Customer{ID: 2, Name: "Bruno", Email: "bruno@example.com", Age: 65, Services: "C", ExpirationDate: "2025-03-13"},
		domain.Customer{ID: 3, Name: "Carla", Email: "carla@example.com", Age: 40, Services: "D", ExpirationDate: "2025-09-01"},
	)
	notifier := &fakeNotifier{}
	producer := &fakeProducer{}

	newTestProcessor(repo, notifier, producer).ProcessAll(context.Background())

	assert.Equal(t, domain.StatusExpired, repo.statuses[1])
	assert.Equal(t, domain.StatusExpiring, repo.statuses[2])
	assert.Equal(t, domain.StatusActive, repo.statuses[3])

	require.Len(t, notifier.sent, 2)
	expired := notifier.sentTo("ana@example.com")
	require.NotNil(t, expired)
	assert.Equal(t, "Sua Nota de Débito - Expirado", expired.subject)
	assert.Equal(t, "Segue em anexo sua nota de débito.", expired.body)
	assert.Equal(t, "/tmp/out.pdf", expired.doc)

	expiring := notifier.sentTo("bruno@example.com")
	require.NotNil(t, expiring)
	assert.Equal(t, "Sua Nota de Débito - Expirando em breve", expiring.subject)
	assert.Equal(t, "Lembrete de Expiração", expiring.body)

	assert.Nil(t, notifier.sentTo("carla@example.com"))
	assert.Len(t, producer.events, 3)
}

func TestProcessAllIsolatesFailures(t *testing.T) {
	repo := newFakeCustomerRepo(
		domain.Customer{ID: 1, Name: "Ana", Email: "ana@example.com", Age: 30, Services: "A", ExpirationDate: "2025-03-01"},
		domain.Customer{ID: 2, Name: "Bruno", Email: "bruno@example.com", Age: 30, Services: "B", ExpirationDate: "not-a-date"},
		domain.Customer{ID: 3, Name: "Carla", Email: "carla@example.com", Age: 30, Services: "C", ExpirationDate: "2025-03-02"},
	)
	notifier := &fakeNotifier{}

	newTestProcessor(repo, notifier, nil).ProcessAll(context.Background())

	assert.Equal(t, domain.StatusExpired, repo.statuses[1])
	assert.Equal(t, domain.StatusExpired, repo.statuses[3])
	_, touched := repo.statuses[2]
	assert.False(t, touched)

	assert.NotNil(t, notifier.sentTo("ana@example.com"))
	assert.Nil(t, notifier.sentTo("bruno@example.com"))
	assert.NotNil(t, notifier.sentTo("carla@example.com"))
}

func TestProcessAllPersistFailureStillNotifies(t *testing.T) {
	repo := newFakeCustomerRepo(
		domain.Customer{ID: 1, Name: "Ana", Email: "ana@example.com", Age: 30, Services: "A", ExpirationDate: "2025-03-01"},
	)
	repo.failUpdate = true
	notifier := &fakeNotifier{}

	newTestProcessor(repo, notifier, nil).ProcessAll(context.Background())

	assert.Empty(t, repo.statuses)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "ana@example.com", notifier.sent[0].to)
}

func TestProcessAllRerunRepeatsNotifications(t *testing.T) {
	repo := newFakeCustomerRepo(
		domain.Customer{ID: 1, Name: "Ana", Email: "ana@example.com", Age: 30, Services: "A", ExpirationDate: "2025-03-01"},
	)
	notifier := &fakeNotifier{}
	svc := newTestProcessor(repo, notifier, nil)

	svc.ProcessAll(context.Background())
	svc.ProcessAll(context.Background())

	assert.Equal(t, domain.StatusExpired, repo.statuses[1])
	assert.Len(t, notifier.sent, 2)
}

func TestProcessAllGenerateFailureSkipsSend(t *testing.T) {
	repo := newFakeCustomerRepo(
		domain.Customer{ID: 1, Name: "Ana", Email: "ana@example.com", Age: 30, Services: "A", ExpirationDate: "2025-03-01"},
	)
	notifier := &fakeNotifier{failGenerate: true}

	newTestProcessor(repo, notifier, nil).ProcessAll(context.Background())

	assert.Equal(t, domain.StatusExpired, repo.statuses[1])
	assert.Empty(t, notifier.sent)
}
