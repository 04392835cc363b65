package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sjperalta/prestamos-api/internal/middleware"
	"github.com/sjperalta/prestamos-api/internal/services"
)

type LoanHandler struct {
	loanService        *services.LoanService
	installmentService *services.InstallmentService
	documentService    *services.DocumentService
}

func NewLoanHandler(loanService *services.LoanService, installmentService *services.InstallmentService, documentService *services.DocumentService) *LoanHandler {
	return &LoanHandler{
		loanService:        loanService,
		installmentService: installmentService,
		documentService:    documentService,
	}
}

type CreateLoanRequest struct {
	ClientID     uint             `json:"client_id"`
	Principal    *decimal.Decimal `json:"principal"`
	DailyRate    *decimal.Decimal `json:"daily_rate"`
	StartDate    string           `json:"start_date"`
	Installments int              `json:"installments"`
}

// @Summary Create Loan
// @Description Open a loan with its installment schedule. Only the first installment starts accruing.
// @Tags Loans
// @Accept json
// @Produce json
// @Param request body CreateLoanRequest true "Loan Data"
// @Success 201 {object} map[string]interface{}
// @Failure 400,404,422 {object} map[string]string
// @Security BearerAuth
// @Router /loans [post]
func (h *LoanHandler) Create(c *gin.Context) {
	var req CreateLoanRequest
	if err := BindNestedOrFlat(c, "loan", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "JSON inválido"})
		return
	}
	if req.ClientID == 0 || req.Principal == nil || req.DailyRate == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client_id, principal y daily_rate son requeridos"})
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loan, err := h.loanService.Create(c.Request.Context(), services.CreateLoanInput{
		ClientID:     req.ClientID,
		Principal:    *req.Principal,
		DailyRate:    *req.DailyRate,
		StartDate:    start,
		Installments: req.Installments,
		ActorID:      middleware.GetUserID(c),
		IP:           c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"loan": loan})
}

// @Summary Get Loan
// @Description Get the loan's payment book: loan, client and installments
// @Tags Loans
// @Produce json
// @Param loan_id path int true "Loan ID"
// @Success 200 {object} services.LoanSchedule
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /loans/{loan_id} [get]
func (h *LoanHandler) Show(c *gin.Context) {
	id, ok := parseID(c, "loan_id")
	if !ok {
		return
	}
	schedule, err := h.loanService.Schedule(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// @Summary List Loan Installments
// @Description List the schedule with today's display state
// @Tags Loans
// @Produce json
// @Param loan_id path int true "Loan ID"
// @Param status query string false "Filter by display state"
// @Success 200 {object} services.InstallmentList
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /loans/{loan_id}/installments [get]
func (h *LoanHandler) Installments(c *gin.Context) {
	id, ok := parseID(c, "loan_id")
	if !ok {
		return
	}
	list, err := h.installmentService.ListByLoan(c.Request.Context(), id, c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary List Loan Payments
// @Tags Loans
// @Produce json
// @Param loan_id path int true "Loan ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /loans/{loan_id}/payments [get]
func (h *LoanHandler) Payments(c *gin.Context) {
	id, ok := parseID(c, "loan_id")
	if !ok {
		return
	}
	payments, err := h.loanService.Payments(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"loan_id": id, "payments": payments})
}

// @Summary Export Loan Payments
// @Description Download the loan's payments as CSV
// @Tags Loans
// @Produce text/csv
// @Param loan_id path int true "Loan ID"
// @Success 200 {file} file
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /loans/{loan_id}/payments.csv [get]
func (h *LoanHandler) PaymentsCSV(c *gin.Context) {
	id, ok := parseID(c, "loan_id")
	if !ok {
		return
	}
	data, filename, err := h.documentService.PaymentsCSV(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	attachment(c, "text/csv", filename, data)
}

// @Summary Export Payment Book
// @Description Download the installment schedule as an Excel workbook
// @Tags Loans
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param loan_id path int true "Loan ID"
// @Success 200 {file} file
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /loans/{loan_id}/schedule.xlsx [get]
func (h *LoanHandler) ScheduleXLSX(c *gin.Context) {
	id, ok := parseID(c, "loan_id")
	if !ok {
		return
	}
	data, filename, err := h.documentService.ScheduleXLSX(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	attachment(c, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", filename, data)
}
