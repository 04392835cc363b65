package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Installment (cuota) is one period of a loan's repayment schedule.
//
// StartDate is nil until the installment is activated by the settlement of
// its predecessor. Active is true while the settlement engine owns the
// interest and total figures; a manual interest override clears it, after
// which payments accumulate into TotalDue instead of overwriting it.
type Installment struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	LoanID         uint            `gorm:"not null;uniqueIndex:idx_installments_loan_number" json:"loan_id"`
	Number         int             `gorm:"not null;uniqueIndex:idx_installments_loan_number" json:"number"`
	Principal      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"principal"`
	DailyRate      decimal.Decimal `gorm:"type:decimal(8,4);not null" json:"daily_rate"`
	StartDate      *time.Time      `gorm:"type:date" json:"start_date"`
	DueDate        *time.Time      `gorm:"type:date" json:"due_date"`
	Days           int             `gorm:"not null" json:"days"`
	InterestFactor decimal.Decimal `gorm:"type:decimal(12,6);not null" json:"interest_factor"`
	InterestAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"interest_amount"`
	PrincipalPaid  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"principal_paid"`
	Balance        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"balance"`
	TotalDue       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_due"`
	Status         string          `gorm:"size:20;not null;index" json:"status"`
	Active         bool            `gorm:"not null" json:"active"`
	UserID         *uint           `gorm:"index" json:"user_id"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	// Associations
	Loan *Loan `gorm:"foreignKey:LoanID" json:"loan,omitempty"`
}

// TableName specifies the table name for Installment
func (Installment) TableName() string {
	return "installments"
}

// Installment status constants
const (
	InstallmentStatusPending   = "Pendiente"
	InstallmentStatusPartial   = "Parcial"
	InstallmentStatusPaid      = "Pagado"
	InstallmentStatusOverdue   = "Vencido"
	InstallmentStatusCancelled = "Cancelado"
)

// IsActivated returns true once the installment has a start date
func (i *Installment) IsActivated() bool {
	return i.StartDate != nil
}

// IsSettled returns true for the terminal states
func (i *Installment) IsSettled() bool {
	return i.Status == InstallmentStatusPaid || i.Status == InstallmentStatusCancelled
}

// MayReceivePayment returns true if a payment can be registered against the installment
func (i *Installment) MayReceivePayment() bool {
	return i.Status == InstallmentStatusPending || i.Status == InstallmentStatusPartial
}
