package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/prestamos-api/internal/services"
	"github.com/sjperalta/prestamos-api/pkg/logger"
)

// Handlers holds all handler instances
type Handlers struct {
	Health      *HealthHandler
	Client      *ClientHandler
	Loan        *LoanHandler
	Installment *InstallmentHandler
	Payment     *PaymentHandler
	Audit       *AuditHandler
	Job         *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:      NewHealthHandler(),
		Client:      NewClientHandler(svcs.Client, svcs.Loan),
		Loan:        NewLoanHandler(svcs.Loan, svcs.Installment, svcs.Document),
		Installment: NewInstallmentHandler(svcs.Installment, svcs.Settlement),
		Payment:     NewPaymentHandler(svcs.Document),
		Audit:       NewAuditHandler(svcs.Audit),
		Job:         NewJobHandler(svcs.Job),
	}
}

// respondError maps service errors to HTTP statuses. Storage failures are
// logged and answered with a generic message.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrInvalidState), errors.Is(err, services.ErrDuplicate):
		status = http.StatusConflict
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrNotActivated):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		logger.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(status, gin.H{"error": "Error interno, intente nuevamente"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func attachment(c *gin.Context, contentType, filename string, data []byte) {
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, data)
}
