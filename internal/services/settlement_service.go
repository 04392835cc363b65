package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/shopspring/decimal"
	"github.com/sjperalta/prestamos-api/internal/interest"
	"github.com/sjperalta/prestamos-api/internal/models"
	"github.com/sjperalta/prestamos-api/internal/repository"
	"github.com/sjperalta/prestamos-api/internal/statemachine"
	"github.com/sjperalta/prestamos-api/pkg/logger"
)

// RegisterPaymentInput describes a payment toward an installment's principal
type RegisterPaymentInput struct {
	InstallmentID uint
	Amount        decimal.Decimal
	PaymentDate   *time.Time // defaults to today
	DaysOverride  *int       // replaces the computed elapsed days
	ActorID       uint
	IP            string
	UserAgent     string
}

// SettlementResult is what a registered payment changed
type SettlementResult struct {
	Payment               *models.Payment     `json:"payment"`
	Installment           *models.Installment `json:"installment"`
	Interest              interest.Result     `json:"interest"`
	Split                 interest.Split      `json:"split"`
	FullPayoff            bool                `json:"full_payoff"`
	CancelledInstallments int64               `json:"cancelled_installments"`
	UpdatedInstallments   []uint              `json:"updated_installments"`
	CreatedInstallment    *models.Installment `json:"created_installment,omitempty"`
	LoanStatus            int                 `json:"loan_status"`
	LoanClosed            bool                `json:"loan_closed"`
}

// SettlementService registers payments against installments. Each payment
// is one database transaction: the installment, the ledger entry, the
// follow-up installments and the loan status change together or not at all.
type SettlementService struct {
	repos    *repository.Repositories
	calendar *interest.Calendar
	auditSvc *AuditService
}

func NewSettlementService(repos *repository.Repositories, calendar *interest.Calendar, auditSvc *AuditService) *SettlementService {
	return &SettlementService{
		repos:    repos,
		calendar: calendar,
		auditSvc: auditSvc,
	}
}

// RegisterPayment applies a payment to an installment and cascades the
// remaining balance to the rest of the loan.
func (s *SettlementService) RegisterPayment(ctx context.Context, in RegisterPaymentInput) (*SettlementResult, error) {
	if in.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: el monto no puede ser negativo", ErrValidation)
	}
	if in.DaysOverride != nil && *in.DaysOverride < 0 {
		return nil, fmt.Errorf("%w: los días no pueden ser negativos", ErrValidation)
	}

	var (
		result   *SettlementResult
		computed *interest.Result
	)

	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		var err error
		result, err = s.settle(ctx, tx, in, &computed)
		return err
	})
	if err != nil {
		s.reportFailure(in, computed, err)
		return nil, err
	}

	if s.auditSvc != nil {
		s.auditSvc.Record(ctx, in.ActorID, models.AuditActionPay, models.AuditEntityInstallment, in.InstallmentID,
			fmt.Sprintf("Pago %s: capital %s, interés %s, total %s",
				result.Payment.Reference,
				result.Payment.PrincipalPaid.StringFixed(2),
				result.Payment.InterestPaid.StringFixed(2),
				result.Payment.TotalPaid.StringFixed(2)),
			in.IP, in.UserAgent)
	}

	logger.Info("payment registered",
		"reference", result.Payment.Reference,
		"installment_id", in.InstallmentID,
		"loan_id", result.Payment.LoanID,
		"actor_id", in.ActorID,
		"status", result.Installment.Status,
	)

	return result, nil
}

func (s *SettlementService) settle(ctx context.Context, tx *repository.Repositories, in RegisterPaymentInput, computed **interest.Result) (*SettlementResult, error) {
	inst, err := tx.Installment.FindByIDForUpdate(ctx, in.InstallmentID)
	if err != nil {
		return nil, lookupError("cuota", in.InstallmentID, err)
	}

	loan, err := tx.Loan.FindByID(ctx, inst.LoanID)
	if err != nil {
		return nil, lookupError("préstamo", inst.LoanID, err)
	}

	paymentDate := s.calendar.Today()
	if in.PaymentDate != nil {
		paymentDate = interest.Date(*in.PaymentDate)
	}

	if !inst.IsActivated() {
		return nil, fmt.Errorf("cuota %d: %w", inst.ID, ErrNotActivated)
	}
	if inst.IsSettled() {
		return nil, fmt.Errorf("cuota %d ya está %s: %w", inst.ID, inst.Status, ErrInvalidState)
	}
	startDate := interest.Date(*inst.StartDate)

	var days int
	if in.DaysOverride != nil {
		days = *in.DaysOverride
	} else {
		days, err = s.calendar.DaysElapsed(&startDate, &paymentDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}

	principal := inst.Principal
	amount := decimal.Min(in.Amount, principal)
	isFullPayoff := amount.GreaterThanOrEqual(principal)

	calc := interest.ComputeInterest(principal, inst.DailyRate, days, true, isFullPayoff, &amount)
	*computed = &calc

	split := interest.ComputePaymentSplit(principal, amount, calc)
	totalDue := calc.InterestAmount.Add(amount).Ceil()

	if err := statemachine.NewInstallmentFSM(inst).ApplyPayment(ctx, split.Status); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}

	actorID := in.ActorID
	inst.DueDate = &paymentDate
	inst.Days = days
	inst.InterestFactor = calc.InterestFactor
	inst.PrincipalPaid = amount
	inst.Balance = split.RemainingBalance
	inst.UserID = &actorID

	if inst.Active {
		inst.InterestAmount = calc.InterestAmount
		inst.TotalDue = totalDue
		if err := tx.Installment.Settle(ctx, inst); err != nil {
			return nil, storageError("actualizar cuota", err)
		}
	} else {
		if err := tx.Installment.Accumulate(ctx, inst, amount); err != nil {
			return nil, storageError("actualizar cuota", err)
		}
		inst.TotalDue = inst.TotalDue.Add(amount)
	}

	payment, err := s.recordPayment(ctx, tx, loan, inst, principal, paymentDate, amount, calc, actorID)
	if err != nil {
		return nil, err
	}

	result := &SettlementResult{
		Payment:     payment,
		Installment: inst,
		Interest:    calc,
		Split:       split,
		FullPayoff:  isFullPayoff,
	}

	if isFullPayoff {
		cancelled, err := tx.Installment.CancelAfter(ctx, loan.ID, inst.Number)
		if err != nil {
			return nil, storageError("cancelar cuotas restantes", err)
		}
		result.CancelledInstallments = cancelled
	} else {
		newStart := paymentDate
		if days <= interest.MinDays {
			newStart = startDate
		}
		if err := s.cascade(ctx, tx, loan, inst, split.RemainingBalance, newStart, result); err != nil {
			return nil, err
		}
	}

	result.LoanClosed = s.closeLoanIfSettled(ctx, tx, loan)
	result.LoanStatus = loan.Status

	return result, nil
}

func (s *SettlementService) recordPayment(ctx context.Context, tx *repository.Repositories, loan *models.Loan, inst *models.Installment,
	principal decimal.Decimal, paymentDate time.Time, amount decimal.Decimal, calc interest.Result, actorID uint) (*models.Payment, error) {

	maxID, err := tx.Payment.MaxID(ctx)
	if err != nil {
		return nil, storageError("obtener número de recibo", err)
	}

	payment := &models.Payment{
		Reference:       models.PaymentReference(s.calendar.Today(), maxID+1),
		LoanID:          loan.ID,
		InstallmentID:   inst.ID,
		Principal:       principal,
		PaymentDate:     paymentDate,
		PrincipalPaid:   amount,
		InterestPaid:    calc.InterestAmount,
		TotalPaid:       amount.Add(calc.InterestAmount),
		InterestReduced: calc.InterestReduced,
		UserID:          actorID,
	}

	if err := tx.Payment.Create(ctx, payment); err != nil {
		return nil, storageError("registrar pago", err)
	}
	return payment, nil
}

// cascade rolls the unpaid principal forward. The first pending installment
// after the paid one takes the remaining balance and starts on newStart;
// every later pending installment copies the principal its predecessor holds
// once updated. With nothing pending, a new installment is appended.
func (s *SettlementService) cascade(ctx context.Context, tx *repository.Repositories, loan *models.Loan, paid *models.Installment,
	remaining decimal.Decimal, newStart time.Time, result *SettlementResult) error {

	next := paid.Number + 1

	pending, err := tx.Installment.FindPending(ctx, loan.ID, next)
	if err != nil {
		return storageError("buscar cuotas pendientes", err)
	}

	for i := range pending {
		if i == 0 {
			pending[i].Principal = remaining
			pending[i].Balance = remaining
			pending[i].StartDate = &newStart
			if err := tx.Installment.Activate(ctx, pending[i].ID, remaining, newStart); err != nil {
				return storageError("actualizar cuota pendiente", err)
			}
		} else {
			carried := pending[i-1].Principal
			pending[i].Principal = carried
			pending[i].Balance = carried
			if err := tx.Installment.SetPrincipal(ctx, pending[i].ID, carried); err != nil {
				return storageError("actualizar cuota pendiente", err)
			}
		}
		result.UpdatedInstallments = append(result.UpdatedInstallments, pending[i].ID)
	}

	if len(pending) > 0 || !remaining.IsPositive() {
		return nil
	}

	calc := interest.ComputeInterest(remaining, paid.DailyRate, 0, true, false, nil)
	created := &models.Installment{
		LoanID:         loan.ID,
		Number:         next,
		Principal:      remaining,
		DailyRate:      paid.DailyRate,
		StartDate:      &newStart,
		Days:           0,
		InterestFactor: calc.InterestFactor,
		InterestAmount: calc.InterestAmount.Ceil(),
		PrincipalPaid:  decimal.Zero,
		Balance:        remaining,
		TotalDue:       remaining.Add(calc.InterestAmount).Ceil(),
		Status:         models.InstallmentStatusPending,
		Active:         true,
	}
	if err := tx.Installment.Create(ctx, created); err != nil {
		return storageError("crear cuota", err)
	}

	count, err := tx.Installment.CountByLoan(ctx, loan.ID)
	if err != nil {
		return storageError("contar cuotas", err)
	}
	if err := tx.Loan.UpdateInstallmentCount(ctx, loan.ID, int(count)); err != nil {
		return storageError("actualizar número de cuotas", err)
	}
	loan.InstallmentCount = int(count)

	result.CreatedInstallment = created
	return nil
}

// closeLoanIfSettled closes the loan when the installment of its latest
// payment is paid. It runs in a savepoint: a failure here is logged and
// undone without aborting the payment.
func (s *SettlementService) closeLoanIfSettled(ctx context.Context, tx *repository.Repositories, loan *models.Loan) bool {
	previous := loan.Status
	closed := false

	err := tx.Transaction(ctx, func(sp *repository.Repositories) error {
		latest, err := sp.Payment.Latest(ctx, loan.ID)
		if err != nil {
			return err
		}
		if latest == nil || latest.Installment == nil || latest.Installment.Status != models.InstallmentStatusPaid {
			return nil
		}

		lfsm := statemachine.NewLoanFSM(loan)
		if !lfsm.Can(statemachine.EventClose) {
			return nil
		}
		if err := lfsm.Close(ctx); err != nil {
			return err
		}
		if err := sp.Loan.UpdateStatus(ctx, loan.ID, loan.Status); err != nil {
			return err
		}
		closed = true
		return nil
	})
	if err != nil {
		loan.Status = previous
		logger.Error("error al actualizar estado del préstamo", "loan_id", loan.ID, "error", err)
		return false
	}
	return closed
}

func (s *SettlementService) reportFailure(in RegisterPaymentInput, computed *interest.Result, err error) {
	attrs := []any{
		"installment_id", in.InstallmentID,
		"actor_id", in.ActorID,
		"error", err,
	}
	if computed != nil {
		attrs = append(attrs,
			"days", computed.Days,
			"effective_days", computed.EffectiveDays,
			"interest_factor", computed.InterestFactor.String(),
			"interest_amount", computed.InterestAmount.String(),
			"tier", string(computed.Tier),
		)
	}
	logger.Error("error al registrar pago", attrs...)

	if errors.Is(err, ErrTransactionFailure) {
		sentry.CaptureException(err)
	}
}
