package model

import (
	"time"

	"gorm.io/datatypes"
)

// Gateway stores the connection settings of one bank gateway.
// ConnectionInfo holds the credential map, e.g. {"terminalId": "...", "username": "..."}.
type Gateway struct {
	ID             uint              `gorm:"primaryKey;autoIncrement"`
	Name           string            `gorm:"uniqueIndex;size:32;not null"`
	ConnectionInfo datatypes.JSONMap `gorm:"not null"`
	CallbackURL    string            `gorm:"type:text"`
	Enabled        bool              `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for Gateway
func (Gateway) TableName() string {
	return "gateways"
}
