package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sjperalta/prestamos-api/internal/middleware"
	"github.com/sjperalta/prestamos-api/internal/services"
)

type InstallmentHandler struct {
	installmentService *services.InstallmentService
	settlementService  *services.SettlementService
}

func NewInstallmentHandler(installmentService *services.InstallmentService, settlementService *services.SettlementService) *InstallmentHandler {
	return &InstallmentHandler{
		installmentService: installmentService,
		settlementService:  settlementService,
	}
}

// PayRequest registers a payment toward an installment's principal.
// Days, when sent, replaces the elapsed days counted from the start date.
type PayRequest struct {
	InstallmentID uint             `json:"installment_id"`
	Amount        *decimal.Decimal `json:"amount"`
	PaymentDate   string           `json:"payment_date"`
	Days          *int             `json:"days"`
}

// @Summary Pay Installment
// @Description Register a payment toward an installment's principal and cascade the remaining balance
// @Tags Installments
// @Accept json
// @Produce json
// @Param request body PayRequest true "Payment Data"
// @Success 201 {object} services.SettlementResult
// @Failure 400,404,409,422 {object} map[string]string
// @Security BearerAuth
// @Router /installments/pay [post]
func (h *InstallmentHandler) Pay(c *gin.Context) {
	var req PayRequest
	if err := BindNestedOrFlat(c, "payment", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "JSON inválido"})
		return
	}
	if req.InstallmentID == 0 || req.Amount == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "installment_id y amount son requeridos"})
		return
	}
	if req.Amount.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount no puede ser negativo"})
		return
	}
	if req.Days != nil && *req.Days < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "days no puede ser negativo"})
		return
	}
	paymentDate, err := parseDate(req.PaymentDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.settlementService.RegisterPayment(c.Request.Context(), services.RegisterPaymentInput{
		InstallmentID: req.InstallmentID,
		Amount:        *req.Amount,
		PaymentDate:   paymentDate,
		DaysOverride:  req.Days,
		ActorID:       middleware.GetUserID(c),
		IP:            c.ClientIP(),
		UserAgent:     c.Request.UserAgent(),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// @Summary List Pending Installments
// @Description List clients with installments still waiting for a payment
// @Tags Installments
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /installments/pending [get]
func (h *InstallmentHandler) Pending(c *gin.Context) {
	pending, err := h.installmentService.Pending(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": pending})
}

// @Summary Preview Interest
// @Description Compute the interest a payment would be charged without storing anything
// @Tags Installments
// @Produce json
// @Param installment_id path int true "Installment ID"
// @Param amount query number false "Amount to pay"
// @Param payment_date query string false "Payment date (YYYY-MM-DD)"
// @Param days query int false "Elapsed days override"
// @Success 200 {object} services.InterestPreview
// @Failure 400,404,422 {object} map[string]string
// @Security BearerAuth
// @Router /installments/{installment_id}/interest [get]
func (h *InstallmentHandler) Interest(c *gin.Context) {
	id, ok := parseID(c, "installment_id")
	if !ok {
		return
	}

	in := services.InterestPreviewInput{InstallmentID: id}

	if raw := c.Query("amount"); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil || amount.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount inválido"})
			return
		}
		in.Amount = &amount
	}
	if raw := c.Query("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days inválido"})
			return
		}
		in.DaysOverride = &days
	}
	paymentDate, err := parseDate(c.Query("payment_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in.PaymentDate = paymentDate

	preview, err := h.installmentService.PreviewInterest(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

type UpdateInterestRequest struct {
	InterestAmount *decimal.Decimal `json:"interest_amount"`
	TotalDue       *decimal.Decimal `json:"total_due"`
}

// @Summary Update Installment Interest
// @Description Set an installment's interest and total due by hand
// @Tags Installments
// @Accept json
// @Produce json
// @Param installment_id path int true "Installment ID"
// @Param request body UpdateInterestRequest true "Interest Data"
// @Success 200 {object} map[string]interface{}
// @Failure 400,404,409 {object} map[string]string
// @Security BearerAuth
// @Router /installments/{installment_id}/interest [put]
func (h *InstallmentHandler) UpdateInterest(c *gin.Context) {
	id, ok := parseID(c, "installment_id")
	if !ok {
		return
	}

	var req UpdateInterestRequest
	if err := BindNestedOrFlat(c, "installment", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "JSON inválido"})
		return
	}
	if req.InterestAmount == nil || req.TotalDue == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "interest_amount y total_due son requeridos"})
		return
	}

	inst, err := h.installmentService.UpdateInterest(c.Request.Context(), id, *req.InterestAmount, *req.TotalDue,
		middleware.GetUserID(c), c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"installment": inst})
}
