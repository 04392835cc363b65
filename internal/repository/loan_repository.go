package repository

import (
	"context"

	"github.com/sjperalta/prestamos-api/internal/models"
	"gorm.io/gorm"
)

// LoanRepository defines the interface for loan data access
type LoanRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Loan, error)
	FindByIDWithDetails(ctx context.Context, id uint) (*models.Loan, error)
	FindByClient(ctx context.Context, clientID uint, statuses []int) ([]models.Loan, error)
	Create(ctx context.Context, loan *models.Loan) error
	UpdateStatus(ctx context.Context, id uint, status int) error
	UpdateInstallmentCount(ctx context.Context, id uint, count int) error
}

type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) FindByID(ctx context.Context, id uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).First(&loan, id).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// FindByIDWithDetails loads the loan with its client and the full schedule
func (r *loanRepository) FindByIDWithDetails(ctx context.Context, id uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).
		Joins("Client").
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("number ASC")
		}).
		First(&loan, id).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *loanRepository) FindByClient(ctx context.Context, clientID uint, statuses []int) ([]models.Loan, error) {
	var loans []models.Loan
	db := r.db.WithContext(ctx).Where("client_id = ?", clientID)
	if len(statuses) > 0 {
		db = db.Where("status IN ?", statuses)
	}
	err := db.Order("start_date DESC, id DESC").Find(&loans).Error
	return loans, err
}

// Create inserts the loan together with any installments attached to it
func (r *loanRepository) Create(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

func (r *loanRepository) UpdateStatus(ctx context.Context, id uint, status int) error {
	return r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *loanRepository) UpdateInstallmentCount(ctx context.Context, id uint, count int) error {
	return r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Where("id = ?", id).
		Update("installment_count", count).Error
}
