package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/prestamos-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InstallmentRepository defines the interface for installment data access.
//
// Settlement writes go through Settle or Accumulate depending on the
// installment's Active flag; no other method touches interest figures except
// UpdateInterest.
type InstallmentRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Installment, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*models.Installment, error)
	FindByLoan(ctx context.Context, loanID uint, status string) ([]models.Installment, error)
	FindPending(ctx context.Context, loanID uint, minNumber int) ([]models.Installment, error)
	FindOpenActivated(ctx context.Context) ([]models.Installment, error)
	CountByLoan(ctx context.Context, loanID uint) (int64, error)
	SumsByLoan(ctx context.Context, loanID uint) (*InstallmentSums, error)
	Create(ctx context.Context, installment *models.Installment) error
	Settle(ctx context.Context, installment *models.Installment) error
	Accumulate(ctx context.Context, installment *models.Installment, amount decimal.Decimal) error
	CancelAfter(ctx context.Context, loanID uint, number int) (int64, error)
	Activate(ctx context.Context, id uint, principal decimal.Decimal, startDate time.Time) error
	SetPrincipal(ctx context.Context, id uint, principal decimal.Decimal) error
	UpdateInterest(ctx context.Context, id uint, interest, total decimal.Decimal, userID uint) error
}

// InstallmentSums aggregates the payable figures of a loan's schedule
type InstallmentSums struct {
	InterestAmount decimal.Decimal `json:"interest_amount"`
	PrincipalPaid  decimal.Decimal `json:"principal_paid"`
	Total          decimal.Decimal `json:"total"`
}

type installmentRepository struct {
	db *gorm.DB
}

// NewInstallmentRepository creates a new installment repository
func NewInstallmentRepository(db *gorm.DB) InstallmentRepository {
	return &installmentRepository{db: db}
}

func (r *installmentRepository) FindByID(ctx context.Context, id uint) (*models.Installment, error) {
	var installment models.Installment
	err := r.db.WithContext(ctx).First(&installment, id).Error
	if err != nil {
		return nil, err
	}
	return &installment, nil
}

// FindByIDForUpdate reads the installment with a row lock held until the
// surrounding transaction ends. SQLite ignores the locking clause.
func (r *installmentRepository) FindByIDForUpdate(ctx context.Context, id uint) (*models.Installment, error) {
	var installment models.Installment
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&installment, id).Error
	if err != nil {
		return nil, err
	}
	return &installment, nil
}

func (r *installmentRepository) FindByLoan(ctx context.Context, loanID uint, status string) ([]models.Installment, error) {
	var installments []models.Installment
	db := r.db.WithContext(ctx).Where("loan_id = ?", loanID)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	err := db.Order("number ASC").Find(&installments).Error
	return installments, err
}

// FindPending lists Pendiente installments of a loan from minNumber on, in schedule order
func (r *installmentRepository) FindPending(ctx context.Context, loanID uint, minNumber int) ([]models.Installment, error) {
	var installments []models.Installment
	err := r.db.WithContext(ctx).
		Where("loan_id = ? AND number >= ? AND status = ?", loanID, minNumber, models.InstallmentStatusPending).
		Order("number ASC").
		Find(&installments).Error
	return installments, err
}

// FindOpenActivated lists started, unpaid installments of loans that are still pending
func (r *installmentRepository) FindOpenActivated(ctx context.Context) ([]models.Installment, error) {
	var installments []models.Installment
	err := r.db.WithContext(ctx).
		Joins("Loan").
		Where("installments.start_date IS NOT NULL").
		Where("installments.status IN ?", []string{models.InstallmentStatusPending, models.InstallmentStatusPartial}).
		Where(`"Loan"."status" = ?`, models.LoanStatusPending).
		Order("installments.loan_id ASC, installments.number ASC").
		Find(&installments).Error
	return installments, err
}

func (r *installmentRepository) CountByLoan(ctx context.Context, loanID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Installment{}).
		Where("loan_id = ?", loanID).
		Count(&count).Error
	return count, err
}

func (r *installmentRepository) SumsByLoan(ctx context.Context, loanID uint) (*InstallmentSums, error) {
	var row struct {
		InterestAmount decimal.Decimal
		PrincipalPaid  decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.Installment{}).
		Select("COALESCE(SUM(interest_amount), 0) AS interest_amount, COALESCE(SUM(principal_paid), 0) AS principal_paid").
		Where("loan_id = ?", loanID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &InstallmentSums{
		InterestAmount: row.InterestAmount,
		PrincipalPaid:  row.PrincipalPaid,
		Total:          row.InterestAmount.Add(row.PrincipalPaid),
	}, nil
}

func (r *installmentRepository) Create(ctx context.Context, installment *models.Installment) error {
	return r.db.WithContext(ctx).Create(installment).Error
}

// Settle writes the result of a payment on an engine-managed installment,
// replacing interest and total due.
func (r *installmentRepository) Settle(ctx context.Context, inst *models.Installment) error {
	return r.db.WithContext(ctx).
		Model(&models.Installment{}).
		Where("id = ?", inst.ID).
		Updates(map[string]interface{}{
			"due_date":        inst.DueDate,
			"days":            inst.Days,
			"interest_factor": inst.InterestFactor,
			"interest_amount": inst.InterestAmount,
			"principal_paid":  inst.PrincipalPaid,
			"balance":         inst.Balance,
			"total_due":       inst.TotalDue,
			"status":          inst.Status,
			"user_id":         inst.UserID,
		}).Error
}

// Accumulate writes the result of a payment on an installment whose interest
// was set by hand. Interest stays as entered and amount is added to the
// running total due.
func (r *installmentRepository) Accumulate(ctx context.Context, inst *models.Installment, amount decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&models.Installment{}).
		Where("id = ?", inst.ID).
		Updates(map[string]interface{}{
			"due_date":        inst.DueDate,
			"days":            inst.Days,
			"interest_factor": inst.InterestFactor,
			"principal_paid":  inst.PrincipalPaid,
			"balance":         inst.Balance,
			"total_due":       gorm.Expr("total_due + ?", amount),
			"status":          inst.Status,
			"user_id":         inst.UserID,
		}).Error
}

// CancelAfter cancels every installment of the loan numbered after number
func (r *installmentRepository) CancelAfter(ctx context.Context, loanID uint, number int) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Installment{}).
		Where("loan_id = ? AND number > ?", loanID, number).
		Updates(map[string]interface{}{
			"status":     models.InstallmentStatusCancelled,
			"start_date": nil,
			"principal":  decimal.Zero,
			"balance":    decimal.Zero,
		})
	return result.RowsAffected, result.Error
}

// Activate hands the carried-over balance to the next installment and starts it
func (r *installmentRepository) Activate(ctx context.Context, id uint, principal decimal.Decimal, startDate time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Installment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"principal":  principal,
			"balance":    principal,
			"start_date": startDate,
		}).Error
}

func (r *installmentRepository) SetPrincipal(ctx context.Context, id uint, principal decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&models.Installment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"principal": principal,
			"balance":   principal,
		}).Error
}

// UpdateInterest stores a hand-entered interest and total and switches the
// installment to accumulate mode.
func (r *installmentRepository) UpdateInterest(ctx context.Context, id uint, interest, total decimal.Decimal, userID uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.Installment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"interest_amount": interest,
			"total_due":       total,
			"active":          false,
			"user_id":         userID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
