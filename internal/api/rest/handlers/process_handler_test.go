package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dhoini/Billing-microservice/pkg/logger"
)

type stubProcessor struct {
	mu      sync.Mutex
	calls   int
	started chan struct{}
}

func (s *stubProcessor) ProcessAll(_ context.Context) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	s.started <- struct{}{}
}

func newProcessRouter(processor *stubProcessor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewProcessHandler(processor, logger.New("error"))

	r := gin.New()
	r.POST("/process", handler.Process)
	r.GET("/gerar_notas", handler.Process)
	return r
}

func waitForStart(t *testing.T, processor *stubProcessor) {
	t.Helper()
	select {
	case <-processor.started:
	case <-time.After(2 * time.Second):
		t.Fatal("batch run was never started")
	}
}

func TestProcessRespondsBeforeBatchFinishes(t *testing.T) {
	processor := &stubProcessor{started: make(chan struct{}, 1)}
	router := newProcessRouter(processor)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/process", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Processamento iniciado")

	waitForStart(t, processor)
	assert.Equal(t, 1, processor.calls)
}

func TestProcessLegacyAlias(t *testing.T) {
	processor := &stubProcessor{started: make(chan struct{}, 1)}
	router := newProcessRouter(processor)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/gerar_notas", nil))

	require.Equal(t, http.StatusOK, w.Code)
	waitForStart(t, processor)
	assert.Equal(t, 1, processor.calls)
}
