package statemachine

import (
	"context"
	"fmt"
	"strconv"

	"github.com/looplab/fsm"
	"github.com/sjperalta/prestamos-api/internal/models"
)

const (
	EventMarkPastDue = "mark_past_due"
	EventClose       = "close"
)

var (
	loanPending = strconv.Itoa(models.LoanStatusPending)
	loanPastDue = strconv.Itoa(models.LoanStatusPastDue)
	loanClosed  = strconv.Itoa(models.LoanStatusClosed)
)

// LoanFSM wraps a loan's numeric status code with a state machine
type LoanFSM struct {
	loan *models.Loan
	fsm  *fsm.FSM
}

// NewLoanFSM creates a new loan state machine
func NewLoanFSM(loan *models.Loan) *LoanFSM {
	lfsm := &LoanFSM{loan: loan}

	lfsm.fsm = fsm.NewFSM(
		strconv.Itoa(loan.Status),
		fsm.Events{
			// pending → past due
			{Name: EventMarkPastDue, Src: []string{loanPending}, Dst: loanPastDue},

			// pending/past due → closed
			{Name: EventClose, Src: []string{loanPending, loanPastDue}, Dst: loanClosed},
		},
		fsm.Callbacks{},
	)

	return lfsm
}

// MarkPastDue transitions the loan to past due
func (l *LoanFSM) MarkPastDue(ctx context.Context) error {
	return l.fire(ctx, EventMarkPastDue)
}

// Close transitions the loan to closed
func (l *LoanFSM) Close(ctx context.Context) error {
	return l.fire(ctx, EventClose)
}

func (l *LoanFSM) fire(ctx context.Context, event string) error {
	if !l.fsm.Can(event) {
		return fmt.Errorf("%w: loan %d cannot %s from status %s", ErrTransitionNotAllowed, l.loan.ID, event, l.fsm.Current())
	}

	if err := l.fsm.Event(ctx, event); err != nil {
		return fmt.Errorf("failed to %s loan: %w", event, err)
	}

	status, err := strconv.Atoi(l.fsm.Current())
	if err != nil {
		return fmt.Errorf("invalid loan status %q: %w", l.fsm.Current(), err)
	}
	l.loan.Status = status
	return nil
}

// Can checks if a transition is possible
func (l *LoanFSM) Can(event string) bool {
	return l.fsm.Can(event)
}
