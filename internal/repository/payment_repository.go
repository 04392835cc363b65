package repository

import (
	"context"
	"errors"

	"github.com/sjperalta/prestamos-api/internal/models"
	"gorm.io/gorm"
)

// PaymentRepository defines the interface for the payment ledger. There is
// no update or delete: payments are append-only.
type PaymentRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Payment, error)
	FindByLoan(ctx context.Context, loanID uint) ([]models.Payment, error)
	Latest(ctx context.Context, loanID uint) (*models.Payment, error)
	MaxID(ctx context.Context) (uint, error)
	Create(ctx context.Context, payment *models.Payment) error
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// FindByID loads a payment with the installment, loan and client needed to print a receipt
func (r *paymentRepository) FindByID(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).
		Joins("Installment").
		Preload("Loan.Client").
		First(&payment, id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindByLoan(ctx context.Context, loanID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("id ASC").
		Find(&payments).Error
	return payments, err
}

// Latest returns the most recently registered payment of a loan, or nil if there is none
func (r *paymentRepository) Latest(ctx context.Context, loanID uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).
		Joins("Installment").
		Where("payments.loan_id = ?", loanID).
		Order("payments.id DESC").
		First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// MaxID returns the highest payment id, 0 for an empty ledger
func (r *paymentRepository) MaxID(ctx context.Context) (uint, error) {
	var maxID uint
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select("COALESCE(MAX(id), 0)").
		Scan(&maxID).Error
	return maxID, err
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}
