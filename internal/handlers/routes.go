package handlers

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the authenticated API on rg
func (h *Handlers) RegisterRoutes(rg *gin.RouterGroup) {
	clients := rg.Group("/clients")
	{
		clients.GET("", h.Client.Index)
		clients.POST("", h.Client.Create)
		clients.GET("/types", h.Client.ListTypes)
		clients.POST("/types", h.Client.CreateType)
		clients.GET("/:client_id", h.Client.Show)
		clients.GET("/:client_id/loans", h.Client.Loans)
	}

	loans := rg.Group("/loans")
	{
		loans.POST("", h.Loan.Create)
		loans.GET("/:loan_id", h.Loan.Show)
		loans.GET("/:loan_id/installments", h.Loan.Installments)
		loans.GET("/:loan_id/payments", h.Loan.Payments)
		loans.GET("/:loan_id/payments.csv", h.Loan.PaymentsCSV)
		loans.GET("/:loan_id/schedule.xlsx", h.Loan.ScheduleXLSX)
	}

	// static routes before :installment_id
	installments := rg.Group("/installments")
	{
		installments.POST("/pay", h.Installment.Pay)
		installments.GET("/pending", h.Installment.Pending)
		installments.GET("/:installment_id/interest", h.Installment.Interest)
		installments.PUT("/:installment_id/interest", h.Installment.UpdateInterest)
	}

	rg.GET("/payments/:payment_id/receipt", h.Payment.Receipt)
	rg.GET("/audits", h.Audit.Index)
	rg.GET("/jobs/status", h.Job.Status)
	rg.POST("/jobs/:name/trigger", h.Job.Trigger)
}
