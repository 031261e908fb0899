package model

import (
	"time"
)

// Transaction represents the database model for payment attempts
type Transaction struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement:false"`
	GatewayName  string    `gorm:"not null;size:32;index"`
	Amount       int64     `gorm:"not null"`
	RefID        string    `gorm:"size:255;index"`
	TrackingCode string    `gorm:"size:64"`
	CardNumber   string    `gorm:"size:32"`
	Status       string    `gorm:"not null;size:32;index:idx_transactions_status_updated,priority:1"`
	CallbackURL  string    `gorm:"type:text;not null"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime:false;index:idx_transactions_status_updated,priority:2"`

	Logs []TransactionLog `gorm:"foreignKey:TransactionID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}

// TransactionLog is one append-only history line of a transaction
type TransactionLog struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	TransactionID uint64    `gorm:"not null;index"`
	ResultCode    string    `gorm:"size:64;not null"`
	ResultMessage string    `gorm:"type:text"`
	Status        string    `gorm:"size:32;not null"`
	LogDate       time.Time `gorm:"not null"`
}

// TableName specifies the table name for TransactionLog
func (TransactionLog) TableName() string {
	return "transaction_logs"
}
