package services

import (
	"context"
	"errors"
	"testing"

	"github.com/sjperalta/prestamos-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSettlement(env *testEnv) *SettlementService {
	return NewSettlementService(env.repos, env.calendar, env.audit)
}

func TestRegisterPayment_Validation(t *testing.T) {
	env := newTestEnv(t, "2024-03-20")
	svc := newSettlement(env)
	ctx := context.Background()

	_, err := svc.RegisterPayment(ctx, RegisterPaymentInput{InstallmentID: 1, Amount: dec("-1")})
	assert.ErrorIs(t, err, ErrValidation)

	negative := -3
	_, err = svc.RegisterPayment(ctx, RegisterPaymentInput{InstallmentID: 1, Amount: dec("10"), DaysOverride: &negative})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.RegisterPayment(ctx, RegisterPaymentInput{InstallmentID: 999, Amount: dec("10")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegisterPayment_NotActivated(t *testing.T) {
	env := newTestEnv(t, "2024-03-20")
	client := env.createClient(t, "40112233")
	loan := env.createLoan(t, client.ID, "1000", 3, "2024-03-01")
	second := env.installments(t, loan.ID)[1]

	_, err := newSettlement(env).RegisterPayment(context.Background(), RegisterPaymentInput{
		InstallmentID: second.ID,
		Amount:        dec("100"),
	})
	assert.ErrorIs(t, err, ErrNotActivated)

	payments, err := env.repos.Payment.FindByLoan(context.Background(), loan.ID)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestRegisterPayment_PartialCascadesBalance(t *testing.T) {
	env := newTestEnv(t, "2024-03-20")
	client := env.createClient(t, "40112233")
	loan := env.createLoan(t, client.ID, "1000", 3, "2024-03-01")
	first := env.installments(t, loan.ID)[0]

	res, err := newSettlement(env).RegisterPayment(context.Background(), RegisterPaymentInput{
		InstallmentID: first.ID,
		Amount:        dec("400"),
		ActorID:       7,
	})
	require.NoError(t, err)

	// 20 days elapsed, charged as 30 on the whole principal
	assert.Equal(t, 20, res.Interest.Days)
	assert.Equal(t, 30, res.Interest.EffectiveDays)
	assertDecimal(t, "30", res.Interest.InterestAmount)
	assert.False(t, res.FullPayoff)
	assert.False(t, res.LoanClosed)
	assert.Equal(t, models.LoanStatusPending, res.LoanStatus)

	assert.Equal(t, "REC-20240320-00001", res.Payment.Reference)
	assertDecimal(t, "1000", res.Payment.Principal)
	assertDecimal(t, "400", res.Payment.PrincipalPaid)
	assertDecimal(t, "30", res.Payment.InterestPaid)
	assertDecimal(t, "430", res.Payment.TotalPaid)
	assert.Equal(t, uint(7), res.Payment.UserID)

	list := env.installments(t, loan.ID)
	require.Len(t, list, 3)

	assert.Equal(t, models.InstallmentStatusPartial, list[0].Status)
	assertDecimal(t, "400", list[0].PrincipalPaid)
	assertDecimal(t, "600", list[0].Balance)
	assertDecimal(t, "430", list[0].TotalDue)
	assert.Equal(t, 20, list[0].Days)
	assert.Equal(t, "2024-03-20", formatDate(list[0].DueDate))

	// the next installment starts on the payment date with the remaining balance
	assertDecimal(t, "600", list[1].Principal)
	assertDecimal(t, "600", list[1].Balance)
	assert.Equal(t, "2024-03-20", formatDate(list[1].StartDate))
	assert.Equal(t, models.InstallmentStatusPending, list[1].Status)

	// later installments copy their predecessor and stay unstarted
	assertDecimal(t, "600", list[2].Principal)
	assert.Nil(t, list[2].StartDate)

	assert.Equal(t, []uint{list[1].ID, list[2].ID}, res.UpdatedInstallments)
	assert.Nil(t, res.CreatedInstallment)
}

func TestRegisterPayment_ShortTierKeepsStartDate(t *testing.T) {
	env := newTestEnv(t, "2024-03-20")
	client := env.createClient(t, "40112233")
	loan := env.createLoan(t, client.ID, "1000", 2, "2024-03-01")
	first := env.installments(t, loan.ID)[0]

	days := 10
	res, err := newSettlement(env).RegisterPayment(context.Background(), RegisterPaymentInput{
		InstallmentID: first.ID,
		Amount:        dec("400"),
		DaysOverride:  &days,
	})
	require.NoError(t, err)

	// short tier: 15 days charged on the amount paid
	assert.Equal(t, 15, res.Interest.EffectiveDays)
	assertDecimal(t, "6", res.Interest.InterestAmount)
	assert.True(t, res.Interest.InterestReduced)
	assert.True(t, res.Payment.InterestReduced)

	list := env.installments(t, loan.ID)
	assert.Equal(t, "2024-03-01", formatDate(list[1].StartDate))
	assert.Equal(t, 10, list[0].Days)
}

func TestRegisterPayment_FullPayoffClosesLoan(t *testing.T) {
	env := newTestEnv(t, "2024-03-20")
	client := env.createClient(t, "40112233")
	loan := env.createLoan(t, client.ID, "1000", 3, "2024-03-01")
	first := env.installments(t, loan.ID)[0]
	svc := newSettlement(env)

	res, err := svc.RegisterPayment(context.Background(), RegisterPaymentInput{
		InstallmentID: first.ID,
		Amount:        dec("1500"),
	})
	require.NoError(t, err)

	assert.True(t, res.FullPayoff)
	assertDecimal(t, "1000", res.Payment.PrincipalPaid)
	assertDecimal(t, "1030", res.Payment.TotalPaid)
	assert.Equal(t, int64(2), res.CancelledInstallments)
	assert.True(t, res.LoanClosed)
	assert.Equal(t, models.LoanStatusClosed, res.LoanStatus)

	list := env.installments(t, loan.ID)
	assert.Equal(t, models.InstallmentStatusPaid, list[0].Status)
	assertDecimal(t, "0", list[0].Balance)
	for _, inst := range list[1:] {
		assert.Equal(t, models.InstallmentStatusCancelled, inst.Status)
		assert.Nil(t, inst.StartDate)
		assertDecimal(t, "0", inst.Principal)
	}

	stored, err := env.repos.Loan.FindByID(context.Background(), loan.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LoanStatusClosed, stored.Status)

	// a paid installment takes no further payments
	_, err = svc.RegisterPayment(context.Background(), RegisterPaymentInput{InstallmentID: first.ID, Amount: dec("10")})
	assert.ErrorIs(t, err, ErrInvalidState)

	// cancelled installments were never started
	_, err = svc.RegisterPayment(context.Background(), RegisterPaymentInput{InstallmentID: list[1].ID, Amount: dec("10")})
	assert.ErrorIs(t, err, ErrNotActivated)
}

func TestRegisterPayment_AppendsInstallmentWhenScheduleRunsOut(t *testing.T) {
	env := newTestEnv(t, "2024-03-20")
	client := env.createClient(t, "40112233")
	loan := env.createLoan(t, client.ID, "1000", 1, "2024-03-01")
	first := env.installments(t, loan.ID)[0]

	res, err := newSettlement(env).RegisterPayment(context.Background(), RegisterPaymentInput{
		InstallmentID: first.ID,
		Amount:        dec("250"),
	})
	require.NoError(t, err)
	require.NotNil(t, res.CreatedInstallment)

	created := res.CreatedInstallment
	assert.Equal(t, 2, created.Number)
	assertDecimal(t, "750", created.Principal)
	assertDecimal(t, "750", created.Balance)
	assert.Equal(t, "2024-03-20", formatDate(created.StartDate))
	assert.Equal(t, models.InstallmentStatusPending, created.Status)
	assert.True(t, created.Active)

	stored, err := env.repos.Loan.FindByID(context.Background(), loan.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.InstallmentCount)
	assert.Len(t, env.installments(t, loan.ID), 2)
}

func TestRegisterPayment_SequentialReferences(t *testing.T) {
	env := newTestEnv(t, "2024-03-20")
	client := env.createClient(t, "40112233")
	loan := env.createLoan(t, client.ID, "1000", 3, "2024-03-01")
	svc := newSettlement(env)
	ctx := context.Background()

	first := env.installments(t, loan.ID)[0]
	res1, err := svc.RegisterPayment(ctx, RegisterPaymentInput{InstallmentID: first.ID, Amount: dec("300")})
	require.NoError(t, err)

	second := env.installments(t, loan.ID)[1]
	res2, err := svc.RegisterPayment(ctx, RegisterPaymentInput{InstallmentID: second.ID, Amount: dec("100")})
	require.NoError(t, err)

	assert.Equal(t, "REC-20240320-00001", res1.Payment.Reference)
	assert.Equal(t, "REC-20240320-00002", res2.Payment.Reference)

	// started today, so one day elapsed: short tier on the 100 paid, 1.5 rounded up
	assert.Equal(t, 1, res2.Interest.Days)
	assertDecimal(t, "2", res2.Interest.InterestAmount)

	list := env.installments(t, loan.ID)
	assertDecimal(t, "600", list[2].Principal)
	assert.Equal(t, "2024-03-20", formatDate(list[2].StartDate))
}

func TestRegisterPayment_AccumulatesAfterManualInterest(t *testing.T) {
	env := newTestEnv(t, "2024-03-20")
	client := env.createClient(t, "40112233")
	loan := env.createLoan(t, client.ID, "1000", 2, "2024-03-01")
	first := env.installments(t, loan.ID)[0]
	ctx := context.Background()

	_, err := NewInstallmentService(env.repos, env.calendar, env.audit).
		UpdateInterest(ctx, first.ID, dec("50"), dec("100"), 3, "", "")
	require.NoError(t, err)

	_, err = newSettlement(env).RegisterPayment(ctx, RegisterPaymentInput{InstallmentID: first.ID, Amount: dec("400")})
	require.NoError(t, err)

	stored := env.installments(t, loan.ID)[0]
	assertDecimal(t, "50", stored.InterestAmount)
	assertDecimal(t, "500", stored.TotalDue)
	assertDecimal(t, "600", stored.Balance)
	assert.False(t, stored.Active)
}

func TestRegisterPayment_RollsBackOnFailure(t *testing.T) {
	env := newTestEnv(t, "2024-03-20")
	client := env.createClient(t, "40112233")
	loan := env.createLoan(t, client.ID, "1000", 3, "2024-03-01")
	first := env.installments(t, loan.ID)[0]

	require.NoError(t, env.db.Callback().Create().Before("gorm:create").Register("test:fail_payments", func(tx *gorm.DB) {
		if tx.Statement.Schema != nil && tx.Statement.Schema.Table == "payments" {
			_ = tx.AddError(errors.New("disk full"))
		}
	}))

	_, err := newSettlement(env).RegisterPayment(context.Background(), RegisterPaymentInput{
		InstallmentID: first.ID,
		Amount:        dec("400"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransactionFailure)

	list := env.installments(t, loan.ID)
	assert.Equal(t, models.InstallmentStatusPending, list[0].Status)
	assertDecimal(t, "1000", list[0].Balance)
	assertDecimal(t, "0", list[0].PrincipalPaid)
	assertDecimal(t, "1000", list[1].Principal)
	assert.Nil(t, list[1].StartDate)

	payments, err := env.repos.Payment.FindByLoan(context.Background(), loan.ID)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestRegisterPayment_LoanStatusFailureKeepsPayment(t *testing.T) {
	env := newTestEnv(t, "2024-03-20")
	client := env.createClient(t, "40112233")
	loan := env.createLoan(t, client.ID, "1000", 3, "2024-03-01")
	first := env.installments(t, loan.ID)[0]

	require.NoError(t, env.db.Callback().Update().Before("gorm:update").Register("test:fail_loans", func(tx *gorm.DB) {
		if tx.Statement.Schema != nil && tx.Statement.Schema.Table == "loans" {
			_ = tx.AddError(errors.New("lock timeout"))
		}
	}))

	res, err := newSettlement(env).RegisterPayment(context.Background(), RegisterPaymentInput{
		InstallmentID: first.ID,
		Amount:        dec("1000"),
	})
	require.NoError(t, err)

	assert.True(t, res.FullPayoff)
	assert.False(t, res.LoanClosed)
	assert.Equal(t, models.LoanStatusPending, res.LoanStatus)

	stored, err := env.repos.Loan.FindByID(context.Background(), loan.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LoanStatusPending, stored.Status)

	list := env.installments(t, loan.ID)
	assert.Equal(t, models.InstallmentStatusPaid, list[0].Status)
	assertDecimal(t, "0", list[0].Balance)

	payments, err := env.repos.Payment.FindByLoan(context.Background(), loan.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 1)
}

// A second payment on a partial installment replaces its paid principal and
// recomputes the balance from the unchanged principal.
func TestRegisterPayment_RepayingPartialOverwritesPaidPrincipal(t *testing.T) {
	env := newTestEnv(t, "2024-03-20")
	client := env.createClient(t, "40112233")
	loan := env.createLoan(t, client.ID, "1000", 3, "2024-03-01")
	first := env.installments(t, loan.ID)[0]
	svc := newSettlement(env)

	_, err := svc.RegisterPayment(context.Background(), RegisterPaymentInput{InstallmentID: first.ID, Amount: dec("400")})
	require.NoError(t, err)

	list := env.installments(t, loan.ID)
	require.Equal(t, models.InstallmentStatusPartial, list[0].Status)
	assertDecimal(t, "400", list[0].PrincipalPaid)
	assertDecimal(t, "600", list[0].Balance)

	_, err = svc.RegisterPayment(context.Background(), RegisterPaymentInput{InstallmentID: first.ID, Amount: dec("100")})
	require.NoError(t, err)

	list = env.installments(t, loan.ID)
	assert.Equal(t, models.InstallmentStatusPartial, list[0].Status)
	assertDecimal(t, "1000", list[0].Principal)
	assertDecimal(t, "100", list[0].PrincipalPaid)
	assertDecimal(t, "900", list[0].Balance)
	for _, inst := range list[1:] {
		assertDecimal(t, "900", inst.Principal)
	}

	payments, err := env.repos.Payment.FindByLoan(context.Background(), loan.ID)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	paid := payments[0].PrincipalPaid.Add(payments[1].PrincipalPaid)
	assertDecimal(t, "500", paid)
}
