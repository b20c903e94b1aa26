package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Dhoini/Billing-microservice/internal/domain"
	"github.com/Dhoini/Billing-microservice/internal/service"
	"github.com/Dhoini/Billing-microservice/pkg/logger"
	"github.com/Dhoini/Billing-microservice/pkg/res"
)

// CustomerHandler serves the customer listing and registration endpoints.
type CustomerHandler struct {
	service service.CustomerService
	log     *logger.Logger
}

func NewCustomerHandler(svc service.CustomerService, log *logger.Logger) *CustomerHandler {
	return &CustomerHandler{service: svc, log: log}
}

// GetCustomers returns every stored customer that passes validation.
func (h *CustomerHandler) GetCustomers(c *gin.Context) {
	customers, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.log.Errorw("Failed to list customers", "error", err)
		res.InternalError(c, "Erro ao listar usuários")
		return
	}

	res.OK(c, "Usuários listados com sucesso", customers)
}

// CreateCustomer validates and registers a new customer.
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req domain.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnw("Rejected customer payload", "error", err)
		res.BadRequest(c, "Dados inválidos: "+bindingMessage(err))
		return
	}

	customer, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			h.log.Warnw("Rejected customer", "error", err, "email", req.Email)
			res.BadRequest(c, err.Error())
		case errors.Is(err, domain.ErrDuplicate):
			h.log.Warnw("Duplicate customer email", "email", req.Email)
			res.Conflict(c, "Email já cadastrado")
		default:
			h.log.Errorw("Failed to create customer", "error", err, "email", req.Email)
			res.InternalError(c, "Erro ao criar usuário")
		}
		return
	}

	res.Created(c, "Usuário criado com sucesso", domain.CreatedCustomerResponse{
		ID:    customer.ID,
		Email: customer.Email,
	})
}

// bindingMessage turns validator errors into one readable line instead
// of the raw struct-level dump gin produces.
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("campo %s falhou na regra %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
