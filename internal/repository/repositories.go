package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repositories holds all repository instances bound to one connection or transaction
type Repositories struct {
	db *gorm.DB

	Client      ClientRepository
	Loan        LoanRepository
	Installment InstallmentRepository
	Payment     PaymentRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:          db,
		Client:      NewClientRepository(db),
		Loan:        NewLoanRepository(db),
		Installment: NewInstallmentRepository(db),
		Payment:     NewPaymentRepository(db),
	}
}

// Transaction runs fn with repositories bound to a single database
// transaction. The transaction commits when fn returns nil and rolls back
// otherwise. Called on repositories that are already transactional, it opens
// a savepoint, so a failing fn only undoes its own writes.
func (r *Repositories) Transaction(ctx context.Context, fn func(tx *Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
