package model

import (
	"time"
)

// Lease is a named, expiring lock held by one service instance
type Lease struct {
	Name      string    `gorm:"primaryKey;size:128"`
	Owner     string    `gorm:"size:128;not null"`
	LockedAt  time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for Lease
func (Lease) TableName() string {
	return "leases"
}
