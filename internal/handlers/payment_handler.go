package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sjperalta/prestamos-api/internal/services"
)

type PaymentHandler struct {
	documentService *services.DocumentService
}

func NewPaymentHandler(documentService *services.DocumentService) *PaymentHandler {
	return &PaymentHandler{documentService: documentService}
}

// @Summary Download Receipt
// @Description Download the PDF receipt of a payment
// @Tags Payments
// @Produce application/pdf
// @Param payment_id path int true "Payment ID"
// @Success 200 {file} file
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /payments/{payment_id}/receipt [get]
func (h *PaymentHandler) Receipt(c *gin.Context) {
	id, ok := parseID(c, "payment_id")
	if !ok {
		return
	}
	data, filename, err := h.documentService.ReceiptPDF(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	attachment(c, "application/pdf", filename, data)
}
