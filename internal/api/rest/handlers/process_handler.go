package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/Dhoini/Billing-microservice/pkg/logger"
	"github.com/Dhoini/Billing-microservice/pkg/res"
)

// BatchProcessor runs the notification pipeline over every customer.
type BatchProcessor interface {
	ProcessAll(ctx context.Context)
}

// ProcessHandler triggers the batch pipeline over all customers.
type ProcessHandler struct {
	processor BatchProcessor
	log       *logger.Logger
}

func NewProcessHandler(processor BatchProcessor, log *logger.Logger) *ProcessHandler {
	return &ProcessHandler{processor: processor, log: log}
}

// Process starts the batch run in the background and returns at once.
// The run is detached from the request context so that a closed client
// connection cannot cancel it halfway through.
func (h *ProcessHandler) Process(c *gin.Context) {
	h.log.Infow("Batch processing requested", "clientIP", c.ClientIP())

	go h.processor.ProcessAll(context.Background())

	res.OK(c, "Processamento iniciado", nil)
}
