package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan represents a loan (préstamo) granted to a client
type Loan struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	ClientID         uint            `gorm:"not null;index" json:"client_id"`
	Principal        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"principal"`
	DailyRate        decimal.Decimal `gorm:"type:decimal(8,4);not null" json:"daily_rate"` // percent per day
	StartDate        time.Time       `gorm:"type:date;not null" json:"start_date"`
	DueDate          *time.Time      `gorm:"type:date" json:"due_date"`
	Status           int             `gorm:"not null;index" json:"status"`
	InstallmentCount int             `gorm:"not null" json:"installment_count"`
	UserID           uint            `gorm:"index" json:"user_id"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	// Associations
	Client       *Client       `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Installments []Installment `gorm:"foreignKey:LoanID" json:"installments,omitempty"`
}

// TableName specifies the table name for Loan
func (Loan) TableName() string {
	return "loans"
}

// Loan status codes. The numeric values are shared with the legacy
// back office and must not change.
const (
	LoanStatusPending = 1
	LoanStatusPastDue = 2
	LoanStatusClosed  = 4
)

// LoanStatusName returns the display name of a loan status code.
func LoanStatusName(status int) string {
	switch status {
	case LoanStatusPending:
		return "pendiente"
	case LoanStatusPastDue:
		return "vencido"
	case LoanStatusClosed:
		return "cancelado"
	default:
		return "desconocido"
	}
}
