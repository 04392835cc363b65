package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/prestamos-api/internal/interest"
	"github.com/sjperalta/prestamos-api/internal/models"
	"github.com/sjperalta/prestamos-api/internal/repository"
)

// InstallmentView is an installment with its display state for today
type InstallmentView struct {
	models.Installment
	ElapsedDays   int    `json:"elapsed_days"`
	DisplayStatus string `json:"display_status"`
}

// InstallmentList is a loan's schedule with the loan-wide sums
type InstallmentList struct {
	LoanID       uint                       `json:"loan_id"`
	Installments []InstallmentView          `json:"installments"`
	Sums         repository.InstallmentSums `json:"sums"`
}

// InterestPreviewInput describes a hypothetical payment
type InterestPreviewInput struct {
	InstallmentID uint
	Amount        *decimal.Decimal // defaults to the whole principal
	PaymentDate   *time.Time
	DaysOverride  *int
}

// InterestPreview is what RegisterPayment would charge, without writing anything
type InterestPreview struct {
	InstallmentID uint                     `json:"installment_id"`
	Principal     decimal.Decimal          `json:"principal"`
	Amount        decimal.Decimal          `json:"amount"`
	PaymentDate   time.Time                `json:"payment_date"`
	FullPayoff    bool                     `json:"full_payoff"`
	Interest      interest.Result          `json:"interest"`
	Split         interest.Split           `json:"split"`
	TotalDue      decimal.Decimal          `json:"total_due"`
	DisplayStatus string                   `json:"display_status"`
	Rule          interest.TierExplanation `json:"rule"`
}

type InstallmentService struct {
	repos    *repository.Repositories
	calendar *interest.Calendar
	auditSvc *AuditService
}

func NewInstallmentService(repos *repository.Repositories, calendar *interest.Calendar, auditSvc *AuditService) *InstallmentService {
	return &InstallmentService{
		repos:    repos,
		calendar: calendar,
		auditSvc: auditSvc,
	}
}

func (s *InstallmentService) FindByID(ctx context.Context, id uint) (*models.Installment, error) {
	inst, err := s.repos.Installment.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError("cuota", id, err)
	}
	return inst, nil
}

// ListByLoan returns the loan's installments in schedule order, optionally
// filtered by status, with interest and principal sums over the whole loan.
func (s *InstallmentService) ListByLoan(ctx context.Context, loanID uint, status string) (*InstallmentList, error) {
	if _, err := s.repos.Loan.FindByID(ctx, loanID); err != nil {
		return nil, lookupError("préstamo", loanID, err)
	}

	installments, err := s.repos.Installment.FindByLoan(ctx, loanID, status)
	if err != nil {
		return nil, storageError("listar cuotas", err)
	}

	sums, err := s.repos.Installment.SumsByLoan(ctx, loanID)
	if err != nil {
		return nil, storageError("sumar cuotas", err)
	}

	views := make([]InstallmentView, 0, len(installments))
	for _, inst := range installments {
		views = append(views, s.view(inst))
	}

	return &InstallmentList{LoanID: loanID, Installments: views, Sums: *sums}, nil
}

func (s *InstallmentService) view(inst models.Installment) InstallmentView {
	v := InstallmentView{Installment: inst, DisplayStatus: inst.Status}
	if !inst.IsActivated() || !inst.MayReceivePayment() {
		return v
	}
	days, err := s.calendar.DaysElapsed(inst.StartDate, nil)
	if err != nil {
		return v
	}
	v.ElapsedDays = days
	v.DisplayStatus = interest.ClassifyState(inst.Status, days)
	return v
}

// PreviewInterest applies the same rules as RegisterPayment to a
// hypothetical payment and reports the result.
func (s *InstallmentService) PreviewInterest(ctx context.Context, in InterestPreviewInput) (*InterestPreview, error) {
	if in.Amount != nil && in.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: el monto no puede ser negativo", ErrValidation)
	}
	if in.DaysOverride != nil && *in.DaysOverride < 0 {
		return nil, fmt.Errorf("%w: los días no pueden ser negativos", ErrValidation)
	}

	inst, err := s.repos.Installment.FindByID(ctx, in.InstallmentID)
	if err != nil {
		return nil, lookupError("cuota", in.InstallmentID, err)
	}
	if !inst.IsActivated() {
		return nil, fmt.Errorf("cuota %d: %w", inst.ID, ErrNotActivated)
	}

	paymentDate := s.calendar.Today()
	if in.PaymentDate != nil {
		paymentDate = interest.Date(*in.PaymentDate)
	}

	days := 0
	if in.DaysOverride != nil {
		days = *in.DaysOverride
	} else {
		days, err = s.calendar.DaysElapsed(inst.StartDate, &paymentDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}

	amount := inst.Principal
	if in.Amount != nil {
		amount = decimal.Min(*in.Amount, inst.Principal)
	}
	isFullPayoff := amount.GreaterThanOrEqual(inst.Principal)

	calc := interest.ComputeInterest(inst.Principal, inst.DailyRate, days, true, isFullPayoff, &amount)
	split := interest.ComputePaymentSplit(inst.Principal, amount, calc)

	return &InterestPreview{
		InstallmentID: inst.ID,
		Principal:     inst.Principal,
		Amount:        amount,
		PaymentDate:   paymentDate,
		FullPayoff:    isFullPayoff,
		Interest:      calc,
		Split:         split,
		TotalDue:      calc.InterestAmount.Add(amount).Ceil(),
		DisplayStatus: interest.ClassifyState(inst.Status, days),
		Rule:          interest.ExplainTier(days),
	}, nil
}

// UpdateInterest overrides the interest and total due of an installment by
// hand. From then on payments accumulate into the total instead of
// recomputing it.
func (s *InstallmentService) UpdateInterest(ctx context.Context, id uint, interestAmount, totalDue decimal.Decimal, actorID uint, ip, userAgent string) (*models.Installment, error) {
	if interestAmount.IsNegative() || totalDue.IsNegative() {
		return nil, fmt.Errorf("%w: los montos no pueden ser negativos", ErrValidation)
	}

	inst, err := s.repos.Installment.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError("cuota", id, err)
	}
	if inst.Status == models.InstallmentStatusCancelled {
		return nil, fmt.Errorf("cuota %d cancelada: %w", id, ErrInvalidState)
	}

	if err := s.repos.Installment.UpdateInterest(ctx, id, interestAmount, totalDue, actorID); err != nil {
		return nil, storageError("actualizar interés", err)
	}

	inst.InterestAmount = interestAmount
	inst.TotalDue = totalDue
	inst.Active = false
	inst.UserID = &actorID

	if s.auditSvc != nil {
		s.auditSvc.Record(ctx, actorID, models.AuditActionUpdateInterest, models.AuditEntityInstallment, id,
			fmt.Sprintf("Interés %s, total %s", interestAmount.StringFixed(2), totalDue.StringFixed(2)), ip, userAgent)
	}

	return inst, nil
}

// Pending lists clients with installments still waiting for a payment
func (s *InstallmentService) Pending(ctx context.Context) ([]repository.ClientInstallments, error) {
	result, err := s.repos.Client.FindWithPendingInstallments(ctx)
	if err != nil {
		return nil, storageError("listar cuotas pendientes", err)
	}
	return result, nil
}
