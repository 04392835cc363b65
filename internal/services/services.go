package services

import (
	"github.com/sjperalta/prestamos-api/internal/interest"
	"github.com/sjperalta/prestamos-api/internal/jobs"
	"github.com/sjperalta/prestamos-api/internal/repository"
	"gorm.io/gorm"
)

// Services holds all service instances
type Services struct {
	Client      *ClientService
	Loan        *LoanService
	Installment *InstallmentService
	Settlement  *SettlementService
	Overdue     *OverdueService
	Document    *DocumentService
	Audit       *AuditService
	Job         *JobService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, calendar *interest.Calendar, db *gorm.DB) *Services {
	auditSvc := NewAuditService(db)

	return &Services{
		Client:      NewClientService(repos.Client, auditSvc),
		Loan:        NewLoanService(repos, calendar, auditSvc),
		Installment: NewInstallmentService(repos, calendar, auditSvc),
		Settlement:  NewSettlementService(repos, calendar, auditSvc),
		Overdue:     NewOverdueService(repos, calendar, auditSvc),
		Document:    NewDocumentService(repos),
		Audit:       auditSvc,
		Job:         NewJobService(worker),
	}
}
