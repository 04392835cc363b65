package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrImmutablePayment is returned when something tries to change a registered payment
var ErrImmutablePayment = errors.New("los pagos registrados no se pueden modificar")

// Payment is an entry of the append-only payment ledger
type Payment struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Reference       string          `gorm:"size:30;uniqueIndex;not null" json:"reference"`
	LoanID          uint            `gorm:"not null;index" json:"loan_id"`
	InstallmentID   uint            `gorm:"not null;index" json:"installment_id"`
	Principal       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"principal"` // installment principal when paid
	PaymentDate     time.Time       `gorm:"type:date;not null;index" json:"payment_date"`
	PrincipalPaid   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"principal_paid"`
	InterestPaid    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"interest_paid"`
	TotalPaid       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_paid"`
	InterestReduced bool            `gorm:"not null" json:"interest_reduced"`
	UserID          uint            `gorm:"index" json:"user_id"`
	CreatedAt       time.Time       `json:"created_at"`

	// Associations
	Installment *Installment `gorm:"foreignKey:InstallmentID" json:"installment,omitempty"`
	Loan        *Loan        `gorm:"foreignKey:LoanID" json:"loan,omitempty"`
}

// TableName specifies the table name for Payment
func (Payment) TableName() string {
	return "payments"
}

// BeforeUpdate keeps the ledger append-only
func (p *Payment) BeforeUpdate(tx *gorm.DB) error {
	return ErrImmutablePayment
}

// BeforeDelete keeps the ledger append-only
func (p *Payment) BeforeDelete(tx *gorm.DB) error {
	return ErrImmutablePayment
}

// PaymentReference builds a receipt code such as REC-20240131-00042.
func PaymentReference(day time.Time, sequence uint) string {
	return fmt.Sprintf("REC-%s-%05d", day.Format("20060102"), sequence)
}
