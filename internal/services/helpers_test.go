package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/prestamos-api/internal/database"
	"github.com/sjperalta/prestamos-api/internal/interest"
	"github.com/sjperalta/prestamos-api/internal/models"
	"github.com/sjperalta/prestamos-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db       *gorm.DB
	repos    *repository.Repositories
	calendar *interest.Calendar
	audit    *AuditService
}

func lima(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Lima")
	require.NoError(t, err)
	return loc
}

// newTestEnv opens a private in-memory database with the full schema and a
// calendar frozen at noon of today in Lima.
func newTestEnv(t *testing.T, today string) *testEnv {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", name), nil)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	loc := lima(t)
	day, err := time.ParseInLocation("2006-01-02", today, loc)
	require.NoError(t, err)
	noon := day.Add(12 * time.Hour)

	return &testEnv{
		db:       db,
		repos:    repository.NewRepositories(db),
		calendar: interest.NewCalendar(loc).WithClock(func() time.Time { return noon }),
		audit:    NewAuditService(db),
	}
}

func date(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return &d
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual), "expected %s, got %s", expected, actual.String())
}

func (e *testEnv) createClient(t *testing.T, dni string) *models.Client {
	t.Helper()
	client, err := NewClientService(e.repos.Client, e.audit).Create(context.Background(), &models.Client{
		DNI:       dni,
		FirstName: "Rosa",
		LastName:  "Quispe Huamán",
	}, 1, "127.0.0.1", "test")
	require.NoError(t, err)
	return client
}

// createLoan opens a loan at a daily rate of 10, so 30 charged days cost 30 per 1000
func (e *testEnv) createLoan(t *testing.T, clientID uint, principal string, installments int, start string) *models.Loan {
	t.Helper()
	loan, err := NewLoanService(e.repos, e.calendar, e.audit).Create(context.Background(), CreateLoanInput{
		ClientID:     clientID,
		Principal:    dec(principal),
		DailyRate:    dec("10"),
		StartDate:    date(t, start),
		Installments: installments,
		ActorID:      1,
	})
	require.NoError(t, err)
	return loan
}

func (e *testEnv) installments(t *testing.T, loanID uint) []models.Installment {
	t.Helper()
	list, err := e.repos.Installment.FindByLoan(context.Background(), loanID, "")
	require.NoError(t, err)
	return list
}
