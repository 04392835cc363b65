package services

import (
	"context"
	"fmt"

	"github.com/sjperalta/prestamos-api/internal/interest"
	"github.com/sjperalta/prestamos-api/internal/models"
	"github.com/sjperalta/prestamos-api/internal/repository"
	"github.com/sjperalta/prestamos-api/internal/statemachine"
	"github.com/sjperalta/prestamos-api/pkg/logger"
)

// OverdueService moves pending loans to past due once one of their started
// installments has gone unpaid for longer than a full period.
type OverdueService struct {
	repos    *repository.Repositories
	calendar *interest.Calendar
	auditSvc *AuditService
}

func NewOverdueService(repos *repository.Repositories, calendar *interest.Calendar, auditSvc *AuditService) *OverdueService {
	return &OverdueService{
		repos:    repos,
		calendar: calendar,
		auditSvc: auditSvc,
	}
}

// MarkPastDueLoans returns the number of loans it marked
func (s *OverdueService) MarkPastDueLoans(ctx context.Context) (int, error) {
	installments, err := s.repos.Installment.FindOpenActivated(ctx)
	if err != nil {
		return 0, storageError("buscar cuotas abiertas", err)
	}

	overdue := make(map[uint]models.Installment)
	var order []uint
	for _, inst := range installments {
		if _, seen := overdue[inst.LoanID]; seen {
			continue
		}
		days, err := s.calendar.DaysElapsed(inst.StartDate, nil)
		if err != nil {
			continue
		}
		if interest.ClassifyState(inst.Status, days) != models.InstallmentStatusOverdue {
			continue
		}
		overdue[inst.LoanID] = inst
		order = append(order, inst.LoanID)
	}

	marked := 0
	for _, loanID := range order {
		select {
		case <-ctx.Done():
			return marked, ctx.Err()
		default:
		}

		inst := overdue[loanID]
		changed := false
		err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
			loan, err := tx.Loan.FindByID(ctx, loanID)
			if err != nil {
				return err
			}
			// the loan may have been closed since the scan
			lfsm := statemachine.NewLoanFSM(loan)
			if !lfsm.Can(statemachine.EventMarkPastDue) {
				return nil
			}
			if err := lfsm.MarkPastDue(ctx); err != nil {
				return err
			}
			if err := tx.Loan.UpdateStatus(ctx, loan.ID, loan.Status); err != nil {
				return err
			}
			changed = true
			return nil
		})
		if err != nil {
			logger.Error("error al marcar préstamo vencido", "loan_id", loanID, "error", err)
			continue
		}
		if !changed {
			logger.Debug("préstamo ya no admite vencimiento", "loan_id", loanID)
			continue
		}

		marked++
		logger.Info("préstamo vencido", "loan_id", loanID, "installment_id", inst.ID, "number", inst.Number)
		if s.auditSvc != nil {
			s.auditSvc.Record(ctx, 0, models.AuditActionMarkPastDue, models.AuditEntityLoan, loanID,
				fmt.Sprintf("Cuota %d sin pagar desde %s", inst.Number, formatDate(inst.StartDate)), "", "")
		}
	}

	return marked, nil
}
