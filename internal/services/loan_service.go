package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/prestamos-api/internal/interest"
	"github.com/sjperalta/prestamos-api/internal/models"
	"github.com/sjperalta/prestamos-api/internal/repository"
)

const maxInstallments = 360

// CreateLoanInput holds the terms of a new loan
type CreateLoanInput struct {
	ClientID     uint
	Principal    decimal.Decimal
	DailyRate    decimal.Decimal
	StartDate    *time.Time // defaults to today
	Installments int
	ActorID      uint
	IP           string
	UserAgent    string
}

// ClientLoans groups a client's loans by status
type ClientLoans struct {
	Client  *models.Client `json:"client"`
	Loans   []models.Loan  `json:"loans"`
	Count   int            `json:"count"`
	IDs     []uint         `json:"ids"`
	Pending []uint         `json:"pending"`
	PastDue []uint         `json:"past_due"`
	Closed  []uint         `json:"closed"`
}

// LoanSchedule is the payment book (talonario) of a loan
type LoanSchedule struct {
	Loan             *models.Loan         `json:"loan"`
	Client           *models.Client       `json:"client"`
	InstallmentCount int                  `json:"installment_count"`
	Installments     []models.Installment `json:"installments"`
}

type LoanService struct {
	repos    *repository.Repositories
	calendar *interest.Calendar
	auditSvc *AuditService
}

func NewLoanService(repos *repository.Repositories, calendar *interest.Calendar, auditSvc *AuditService) *LoanService {
	return &LoanService{
		repos:    repos,
		calendar: calendar,
		auditSvc: auditSvc,
	}
}

// Create opens a loan with its installment schedule. The first installment
// starts on the loan's start date; the rest wait, unstarted, for the
// settlement of their predecessor. Every installment holds the full
// principal until payments cascade a smaller balance into it.
func (s *LoanService) Create(ctx context.Context, in CreateLoanInput) (*models.Loan, error) {
	if !in.Principal.IsPositive() {
		return nil, fmt.Errorf("%w: el capital debe ser mayor a cero", ErrValidation)
	}
	if in.DailyRate.IsNegative() {
		return nil, fmt.Errorf("%w: la tasa no puede ser negativa", ErrValidation)
	}
	if in.Installments < 1 || in.Installments > maxInstallments {
		return nil, fmt.Errorf("%w: el número de cuotas debe estar entre 1 y %d", ErrValidation, maxInstallments)
	}

	startDate := s.calendar.Today()
	if in.StartDate != nil {
		startDate = interest.Date(*in.StartDate)
	}
	dueDate := startDate.AddDate(0, 0, in.Installments*interest.MaxDays)

	loan := &models.Loan{
		ClientID:         in.ClientID,
		Principal:        in.Principal,
		DailyRate:        in.DailyRate,
		StartDate:        startDate,
		DueDate:          &dueDate,
		Status:           models.LoanStatusPending,
		InstallmentCount: in.Installments,
		UserID:           in.ActorID,
	}

	for n := 1; n <= in.Installments; n++ {
		inst := models.Installment{
			Number:         n,
			Principal:      in.Principal,
			DailyRate:      in.DailyRate,
			InterestFactor: decimal.Zero,
			InterestAmount: decimal.Zero,
			PrincipalPaid:  decimal.Zero,
			Balance:        in.Principal,
			TotalDue:       in.Principal,
			Status:         models.InstallmentStatusPending,
			Active:         true,
		}
		if n == 1 {
			start := startDate
			inst.StartDate = &start
		}
		loan.Installments = append(loan.Installments, inst)
	}

	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		if _, err := tx.Client.FindByID(ctx, in.ClientID); err != nil {
			return lookupError("cliente", in.ClientID, err)
		}
		if err := tx.Loan.Create(ctx, loan); err != nil {
			return storageError("crear préstamo", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.auditSvc != nil {
		s.auditSvc.Record(ctx, in.ActorID, models.AuditActionCreate, models.AuditEntityLoan, loan.ID,
			fmt.Sprintf("Préstamo de %s al %s%% diario en %d cuotas", in.Principal.StringFixed(2), in.DailyRate.String(), in.Installments),
			in.IP, in.UserAgent)
	}

	return loan, nil
}

func (s *LoanService) FindByID(ctx context.Context, id uint) (*models.Loan, error) {
	loan, err := s.repos.Loan.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError("préstamo", id, err)
	}
	return loan, nil
}

// Schedule returns the loan with its client and installments in order
func (s *LoanService) Schedule(ctx context.Context, id uint) (*LoanSchedule, error) {
	loan, err := s.repos.Loan.FindByIDWithDetails(ctx, id)
	if err != nil {
		return nil, lookupError("préstamo", id, err)
	}

	installments := loan.Installments
	sort.SliceStable(installments, func(i, j int) bool { return installments[i].Number < installments[j].Number })
	loan.Installments = nil

	return &LoanSchedule{
		Loan:             loan,
		Client:           loan.Client,
		InstallmentCount: len(installments),
		Installments:     installments,
	}, nil
}

// ClientSummary lists a client's loans, optionally restricted to some
// status codes, with the ids grouped by status.
func (s *LoanService) ClientSummary(ctx context.Context, clientID uint, statuses []int) (*ClientLoans, error) {
	client, err := s.repos.Client.FindByID(ctx, clientID)
	if err != nil {
		return nil, lookupError("cliente", clientID, err)
	}

	loans, err := s.repos.Loan.FindByClient(ctx, clientID, statuses)
	if err != nil {
		return nil, storageError("listar préstamos", err)
	}
	sort.SliceStable(loans, func(i, j int) bool { return loans[i].Status < loans[j].Status })

	summary := &ClientLoans{
		Client:  client,
		Loans:   loans,
		Count:   len(loans),
		IDs:     []uint{},
		Pending: []uint{},
		PastDue: []uint{},
		Closed:  []uint{},
	}
	for _, loan := range loans {
		summary.IDs = append(summary.IDs, loan.ID)
		switch loan.Status {
		case models.LoanStatusPending:
			summary.Pending = append(summary.Pending, loan.ID)
		case models.LoanStatusPastDue:
			summary.PastDue = append(summary.PastDue, loan.ID)
		case models.LoanStatusClosed:
			summary.Closed = append(summary.Closed, loan.ID)
		}
	}
	return summary, nil
}

// Payments returns the payment ledger of a loan
func (s *LoanService) Payments(ctx context.Context, loanID uint) ([]models.Payment, error) {
	if _, err := s.repos.Loan.FindByID(ctx, loanID); err != nil {
		return nil, lookupError("préstamo", loanID, err)
	}
	payments, err := s.repos.Payment.FindByLoan(ctx, loanID)
	if err != nil {
		return nil, storageError("listar pagos", err)
	}
	return payments, nil
}
