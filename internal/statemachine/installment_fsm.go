package statemachine

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/sjperalta/prestamos-api/internal/models"
)

// ErrTransitionNotAllowed is returned when the current state does not accept the event
var ErrTransitionNotAllowed = errors.New("transition not allowed")

const (
	EventPayPartial = "pay_partial"
	EventPayFull    = "pay_full"
)

// InstallmentFSM wraps an installment with its state machine. Only payments
// go through it: installments cancelled by a payoff are rewritten in bulk by
// InstallmentRepository.CancelAfter.
type InstallmentFSM struct {
	installment *models.Installment
	fsm         *fsm.FSM
}

// NewInstallmentFSM creates a new installment state machine
func NewInstallmentFSM(installment *models.Installment) *InstallmentFSM {
	ifsm := &InstallmentFSM{
		installment: installment,
	}

	open := []string{models.InstallmentStatusPending, models.InstallmentStatusPartial}

	ifsm.fsm = fsm.NewFSM(
		installment.Status,
		fsm.Events{
			// pending/partial → partial (principal still outstanding)
			{Name: EventPayPartial, Src: open, Dst: models.InstallmentStatusPartial},

			// pending/partial → paid
			{Name: EventPayFull, Src: open, Dst: models.InstallmentStatusPaid},
		},
		fsm.Callbacks{},
	)

	return ifsm
}

// ApplyPayment moves the installment to the status computed for a payment
// (Parcial or Pagado).
func (i *InstallmentFSM) ApplyPayment(ctx context.Context, status string) error {
	switch status {
	case models.InstallmentStatusPartial:
		return i.fire(ctx, EventPayPartial)
	case models.InstallmentStatusPaid:
		return i.fire(ctx, EventPayFull)
	default:
		return fmt.Errorf("%w: payment cannot leave an installment %s", ErrTransitionNotAllowed, status)
	}
}

func (i *InstallmentFSM) fire(ctx context.Context, event string) error {
	if !i.fsm.Can(event) {
		return fmt.Errorf("%w: installment %d cannot %s from %s", ErrTransitionNotAllowed, i.installment.ID, event, i.fsm.Current())
	}

	if err := i.fsm.Event(ctx, event); err != nil {
		// partial → partial is a self transition, which looplab/fsm reports as NoTransitionError
		var noTransition fsm.NoTransitionError
		if !errors.As(err, &noTransition) {
			return fmt.Errorf("failed to %s installment: %w", event, err)
		}
	}

	i.installment.Status = i.fsm.Current()
	return nil
}

// Current returns the current state
func (i *InstallmentFSM) Current() string {
	return i.fsm.Current()
}

// Can checks if a transition is possible
func (i *InstallmentFSM) Can(event string) bool {
	return i.fsm.Can(event)
}
