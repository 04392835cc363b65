package models

import (
	"strings"
	"time"
)

// Client is a borrower
type Client struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	DNI       string    `gorm:"size:20;uniqueIndex;not null" json:"dni"`
	FirstName string    `gorm:"size:100;not null" json:"first_name"`
	LastName  string    `gorm:"size:100;not null" json:"last_name"`
	Phone     string    `gorm:"size:30" json:"phone"`
	Address   string    `gorm:"size:255" json:"address"`
	Email     string    `gorm:"size:120" json:"email"`
	Workplace string    `gorm:"size:150" json:"workplace"`
	TypeID    *uint     `gorm:"index" json:"client_type_id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Type  *ClientType `gorm:"foreignKey:TypeID" json:"client_type,omitempty"`
	Loans []Loan      `gorm:"foreignKey:ClientID" json:"loans,omitempty"`
}

// TableName specifies the table name for Client
func (Client) TableName() string {
	return "clients"
}

// FullName joins first and last names
func (c *Client) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// ClientType is a borrower category (tipo de cliente)
type ClientType struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Status    string    `gorm:"size:10;not null" json:"status"`
	UserID    uint      `gorm:"index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for ClientType
func (ClientType) TableName() string {
	return "client_types"
}

// Client type status constants
const (
	ClientTypeStatusActive   = "activo"
	ClientTypeStatusInactive = "inactivo"
)
