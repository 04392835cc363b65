package services

import (
	"context"
	"testing"

	"github.com/sjperalta/prestamos-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoanService_CreateBuildsSchedule(t *testing.T) {
	env := newTestEnv(t, "2024-03-20")
	client := env.createClient(t, "40112233")
	loan := env.createLoan(t, client.ID, "1200", 4, "2024-03-01")

	assert.Equal(t, models.LoanStatusPending, loan.Status)
	assert.Equal(t, 4, loan.InstallmentCount)
	assert.Equal(t, "2024-06-29", formatDate(loan.DueDate))

	list := env.installments(t, loan.ID)
	require.Len(t, list, 4)
	for i, inst := range list {
		assert.Equal(t, i+1, inst.Number)
		assertDecimal(t, "1200", inst.Principal)
		assertDecimal(t, "1200", inst.Balance)
		assertDecimal(t, "1200", inst.TotalDue)
		assert.Equal(t, models.InstallmentStatusPending, inst.Status)
		assert.True(t, inst.Active)
	}
	assert.Equal(t, "2024-03-01", formatDate(list[0].StartDate))
	for _, inst := range list[1:] {
		assert.Nil(t, inst.StartDate)
	}

	logs, err := env.audit.List(context.Background(), models.AuditEntityLoan, loan.ID, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.AuditActionCreate, logs[0].Action)
}

func TestLoanService_CreateValidation(t *testing.T) {
	env := newTestEnv(t, "2024-03-20")
	svc := NewLoanService(env.repos, env.calendar, env.audit)
	client := env.createClient(t, "40112233")

	tests := []struct {
		name string
		in   CreateLoanInput
		err  error
	}{
		{"zero principal", CreateLoanInput{ClientID: client.ID, Principal: dec("0"), DailyRate: dec("1"), Installments: 1}, ErrValidation},
		{"negative rate", CreateLoanInput{ClientID: client.ID, Principal: dec("100"), DailyRate: dec("-1"), Installments: 1}, ErrValidation},
		{"no installments", CreateLoanInput{ClientID: client.ID, Principal: dec("100"), DailyRate: dec("1")}, ErrValidation},
		{"unknown client", CreateLoanInput{ClientID: 999, Principal: dec("100"), DailyRate: dec("1"), Installments: 1}, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.in)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestLoanService_CreateDefaultsToToday(t *testing.T) {
	env := newTestEnv(t, "2024-03-20")
	client := env.createClient(t, "40112233")

	loan, err := NewLoanService(env.repos, env.calendar, env.audit).Create(context.Background(), CreateLoanInput{
		ClientID:     client.ID,
		Principal:    dec("500"),
		DailyRate:    dec("2"),
		Installments: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-20", loan.StartDate.Format("2006-01-02"))
}

func TestLoanService_ScheduleAndSummary(t *testing.T) {
	env := newTestEnv(t, "2024-03-20")
	client := env.createClient(t, "40112233")
	open := env.createLoan(t, client.ID, "1000", 2, "2024-03-01")
	paid := env.createLoan(t, client.ID, "300", 1, "2024-03-01")
	svc := NewLoanService(env.repos, env.calendar, env.audit)
	ctx := context.Background()

	first := env.installments(t, paid.ID)[0]
	_, err := newSettlement(env).RegisterPayment(ctx, RegisterPaymentInput{InstallmentID: first.ID, Amount: dec("300")})
	require.NoError(t, err)

	schedule, err := svc.Schedule(ctx, open.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, schedule.InstallmentCount)
	require.NotNil(t, schedule.Client)
	assert.Equal(t, "40112233", schedule.Client.DNI)
	assert.Equal(t, 1, schedule.Installments[0].Number)
	assert.Equal(t, 2, schedule.Installments[1].Number)

	summary, err := svc.ClientSummary(ctx, client.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, []uint{open.ID}, summary.Pending)
	assert.Equal(t, []uint{paid.ID}, summary.Closed)
	assert.Empty(t, summary.PastDue)
	assert.Equal(t, []uint{open.ID, paid.ID}, summary.IDs)

	filtered, err := svc.ClientSummary(ctx, client.ID, []int{models.LoanStatusClosed})
	require.NoError(t, err)
	assert.Equal(t, []uint{paid.ID}, filtered.IDs)

	payments, err := svc.Payments(ctx, paid.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assertDecimal(t, "300", payments[0].PrincipalPaid)

	_, err = svc.Schedule(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.ClientSummary(ctx, 999, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientService(t *testing.T) {
	env := newTestEnv(t, "2024-03-20")
	svc := NewClientService(env.repos.Client, env.audit)
	ctx := context.Background()

	ct, err := svc.CreateType(ctx, "  Comerciante ", 1)
	require.NoError(t, err)
	assert.Equal(t, "Comerciante", ct.Name)
	assert.Equal(t, models.ClientTypeStatusActive, ct.Status)

	client, err := svc.Create(ctx, &models.Client{DNI: " 70001122 ", FirstName: "Luis", LastName: "Mamani", TypeID: &ct.ID}, 1, "", "")
	require.NoError(t, err)
	assert.Equal(t, "70001122", client.DNI)

	found, err := svc.FindByID(ctx, client.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Type)
	assert.Equal(t, "Comerciante", found.Type.Name)
	assert.Equal(t, "Luis Mamani", found.FullName())

	_, err = svc.Create(ctx, &models.Client{DNI: "70001122", FirstName: "Otro", LastName: "Cliente"}, 1, "", "")
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = svc.Create(ctx, &models.Client{DNI: "", FirstName: "Sin", LastName: "DNI"}, 1, "", "")
	assert.ErrorIs(t, err, ErrValidation)

	matches, err := svc.Search(ctx, "mam", 0)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, client.ID, matches[0].ID)

	byDNI, err := svc.Search(ctx, "7000", 0)
	require.NoError(t, err)
	assert.Len(t, byDNI, 1)

	none, err := svc.Search(ctx, "zz", 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	types, err := svc.ListTypes(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 1)

	_, err = svc.FindByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}
